// Command seed fills a development database with fake bilingual portfolio
// content through the service layer.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/bilingual-portfolio-backend/cache"
	"github.com/rpupo63/bilingual-portfolio-backend/config"
	"github.com/rpupo63/bilingual-portfolio-backend/database"
	"github.com/rpupo63/bilingual-portfolio-backend/models"
	"github.com/rpupo63/bilingual-portfolio-backend/services"
)

func main() {
	counts := Counts{}
	flag.IntVar(&counts.Experiences, "experiences", 4, "number of experiences")
	flag.IntVar(&counts.Projects, "projects", 6, "number of projects")
	flag.IntVar(&counts.Activities, "activities", 4, "number of activities")
	flag.IntVar(&counts.Posts, "posts", 12, "number of blog posts")
	flag.IntVar(&counts.Tags, "tags", 5, "number of blog tags")
	seed := flag.Int64("seed", 0, "random seed, 0 for a random run")
	admin := flag.String("admin", "", "user id to grant the admin role")
	flag.Parse()

	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	c := config.Load()
	db, err := database.Connect(c)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}

	currentDB := database.New(db)
	if err := currentDB.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("Failed to migrate schema")
	}

	ctx := context.Background()
	if *admin != "" {
		userID, err := uuid.Parse(*admin)
		if err != nil {
			log.Fatal().Err(err).Str("admin", *admin).Msg("Invalid admin user id")
		}
		if err := currentDB.UserRoleRepo().Grant(ctx, userID, models.RoleAdmin); err != nil {
			log.Fatal().Err(err).Msg("Failed to grant admin role")
		}
		log.Info().Str("userID", userID.String()).Msg("Granted admin role")
	}

	if *seed != 0 {
		gofakeit.Seed(*seed)
	}

	contentCache := cache.New(cache.NewMemoryStore())
	svc := services.New(currentDB, contentCache)
	Seed(ctx, svc, counts)
	contentCache.Wait()
}
