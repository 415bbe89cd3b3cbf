// Seed tool: fills the posts collection with synthetic data for development
// and test environments. Posts go through the same service layer as the HTTP
// API, so seeded records satisfy the same validation rules.
package main

import (
	"context"
	"flag"
	"strings"
	"time"

	"github.com/dfryer1193/postapi/blog/application"
	"github.com/dfryer1193/postapi/blog/domain"
	"github.com/dfryer1193/postapi/blog/persistence"
	"github.com/dfryer1193/postapi/internal/config"
	"github.com/dfryer1193/postapi/shared/db/mongodb"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/rs/zerolog/log"
)

func main() {
	count := flag.Int("count", 10, "number of posts to generate")
	batchSize := flag.Int("batch", 100, "insert batch size")
	seed := flag.Int64("seed", 0, "RNG seed (0 = random)")
	flag.Parse()

	cfg := config.Load()

	database := mongodb.NewMongoDB(&mongodb.MongoConfig{
		URI:      cfg.MongoURI,
		Database: cfg.MongoDatabase,
	})
	if err := database.Connect(); err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer func() {
		if err := database.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close database connection")
		}
	}()

	postService := application.NewPostService(persistence.NewPostRepository(database.DB()))
	faker := gofakeit.New(*seed)

	start := time.Now()
	remaining := *count
	for remaining > 0 {
		n := remaining
		if n > *batchSize {
			n = *batchSize
		}

		inputs := make([]domain.PostInput, 0, n)
		for i := 0; i < n; i++ {
			inputs = append(inputs, domain.PostInput{
				Title:   strings.TrimSuffix(faker.Sentence(4), "."),
				Content: faker.Paragraph(2, 4, 12, "\n\n"),
				Author: domain.Author{
					FirstName: faker.FirstName(),
					LastName:  faker.LastName(),
				},
			})
		}

		if _, err := postService.CreatePosts(context.Background(), inputs); err != nil {
			log.Fatal().Err(err).Msg("Failed to insert posts")
		}

		remaining -= n
	}

	log.Info().
		Int("count", *count).
		Dur("duration", time.Since(start)).
		Msg("Seeding complete")
}
