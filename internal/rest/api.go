package rest

import (
	"github.com/dfryer1193/postapi/blog/application"
	"github.com/gin-gonic/gin"
)

func NewApi(router *gin.Engine, service *application.PostService) {
	postsApi := NewPostsApi(service)

	posts := router.Group("/posts")
	{
		posts.GET("", postsApi.GetPosts)
		posts.POST("", postsApi.CreatePost)
		posts.GET("/:postId", postsApi.GetPost)
		posts.PUT("/:postId", postsApi.UpdatePost)
		posts.DELETE("/:postId", postsApi.DeletePost)
	}
}
