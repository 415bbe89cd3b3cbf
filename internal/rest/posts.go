package rest

import (
	"errors"
	"net/http"

	"github.com/dfryer1193/postapi/api"
	"github.com/dfryer1193/postapi/blog/application"
	"github.com/dfryer1193/postapi/blog/domain"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// PostsApi exposes the post service as the /posts HTTP resource.
type PostsApi struct {
	service *application.PostService
}

func NewPostsApi(service *application.PostService) *PostsApi {
	return &PostsApi{
		service: service,
	}
}

func (h *PostsApi) GetPosts(c *gin.Context) {
	posts, err := h.service.ListPosts(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}

	responses := make([]api.Post, 0, len(posts))
	for _, p := range posts {
		responses = append(responses, toResponse(p))
	}

	c.JSON(http.StatusOK, responses)
}

func (h *PostsApi) GetPost(c *gin.Context) {
	postId := c.Param("postId")

	post, err := h.service.GetPost(c.Request.Context(), postId)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toResponse(post))
}

func (h *PostsApi) CreatePost(c *gin.Context) {
	req := &api.CreatePostRequest{}
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request body"})
		return
	}

	in := domain.PostInput{
		Title:   req.Title,
		Content: req.Content,
	}
	if req.Author != nil {
		in.Author = domain.Author{
			FirstName: req.Author.FirstName,
			LastName:  req.Author.LastName,
		}
	}

	post, err := h.service.CreatePost(c.Request.Context(), in)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toResponse(post))
}

func (h *PostsApi) UpdatePost(c *gin.Context) {
	postId := c.Param("postId")

	req := &api.UpdatePostRequest{}
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request body"})
		return
	}

	if req.ID != postId {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "body id does not match path id"})
		return
	}

	update := domain.PostUpdate{
		Title:   req.Title,
		Content: req.Content,
	}
	if req.Author != nil {
		update.Author = &domain.Author{
			FirstName: req.Author.FirstName,
			LastName:  req.Author.LastName,
		}
	}

	if err := h.service.UpdatePost(c.Request.Context(), postId, update); err != nil {
		h.writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// DeletePost always answers 204 for a reachable store; deleting an absent
// post is a successful no-op.
func (h *PostsApi) DeletePost(c *gin.Context) {
	postId := c.Param("postId")

	if err := h.service.DeletePost(c.Request.Context(), postId); err != nil {
		h.writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// writeError maps service errors onto the status-code contract. Anything that
// is neither a validation failure nor a missing post is a storage failure and
// surfaces as a generic 500.
func (h *PostsApi) writeError(c *gin.Context, err error) {
	var validationErr *application.ValidationError
	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: validationErr.Error()})
	case errors.Is(err, domain.ErrPostNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "post not found"})
	default:
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Request failed")
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal server error"})
	}
}

func toResponse(p *domain.Post) api.Post {
	return api.Post{
		ID:      p.ID,
		Title:   p.Title,
		Content: p.Content,
		Author:  p.Author.DisplayName(),
		Created: p.Created,
	}
}
