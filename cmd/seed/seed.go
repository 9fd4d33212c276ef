package main

import (
	"context"
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"

	"github.com/rpupo63/bilingual-portfolio-backend/models"
	"github.com/rpupo63/bilingual-portfolio-backend/services"
)

// Counts is how many records of each kind Seed creates.
type Counts struct {
	Experiences int
	Projects    int
	Activities  int
	Posts       int
	Tags        int
}

// Seed creates a profile when there is none, then the requested number of
// records of each kind. Failures are logged and seeding goes on.
func Seed(ctx context.Context, svc *services.Services, counts Counts) {
	log.Info().Interface("counts", counts).Msg("Seeding portfolio content")

	seedProfile(ctx, svc)

	for i := 0; i < counts.Experiences; i++ {
		start := gofakeit.DateRange(time.Now().AddDate(-10, 0, 0), time.Now().AddDate(-1, 0, 0))
		current := i == 0
		experience := &models.Experience{
			TitleEn:        gofakeit.JobTitle(),
			TitleVi:        viText(gofakeit.JobTitle()),
			CompanyEn:      gofakeit.Company(),
			CompanyVi:      viText(gofakeit.Company()),
			DescriptionEn:  ptr(gofakeit.Paragraph(1, 3, 12, " ")),
			Location:       ptr(gofakeit.City()),
			StartDate:      datatypes.Date(start),
			IsCurrent:      current,
			AchievementsEn: sentences(3),
			AchievementsVi: viList(sentences(3)),
			Published:      true,
			DisplayOrder:   i,
		}
		if !current {
			end := datatypes.Date(start.AddDate(gofakeit.Number(1, 3), 0, 0))
			experience.EndDate = &end
		}
		result, err := svc.Experiences.Create(ctx, experience)
		report("experience", i, counts.Experiences, result, err)
	}

	for i := 0; i < counts.Projects; i++ {
		date := datatypes.Date(gofakeit.PastDate())
		title := fmt.Sprintf("%s %s", gofakeit.AppName(), gofakeit.BuzzWord())
		project := &models.Project{
			TitleEn:       title,
			TitleVi:       viText(gofakeit.AppName()),
			Slug:          uniqueSlug("project", title, i),
			DescriptionEn: ptr(gofakeit.Sentence(16)),
			DescriptionVi: ptr(viText(gofakeit.Sentence(16))),
			ProblemEn:     ptr(gofakeit.Paragraph(1, 2, 14, " ")),
			ActionEn:      ptr(gofakeit.Paragraph(1, 3, 14, " ")),
			ResultEn:      ptr(gofakeit.Paragraph(1, 2, 14, " ")),
			ImageURL:      ptr(gofakeit.ImageURL(1200, 630)),
			GalleryURLs:   []string{gofakeit.ImageURL(800, 600), gofakeit.ImageURL(800, 600)},
			Tags:          []string{gofakeit.ProgrammingLanguage(), gofakeit.ProgrammingLanguage()},
			ProjectURL:    ptr(gofakeit.URL()),
			ProjectDate:   &date,
			Published:     true,
			Featured:      i < 3,
			DisplayOrder:  i,
		}
		result, err := svc.Projects.Create(ctx, project)
		report("project", i, counts.Projects, result, err)
	}

	for i := 0; i < counts.Activities; i++ {
		activity := &models.Activity{
			TitleEn:        gofakeit.Hobby(),
			TitleVi:        viText(gofakeit.Hobby()),
			OrganizationEn: gofakeit.Company(),
			OrganizationVi: viText(gofakeit.Company()),
			RoleEn:         ptr(gofakeit.JobDescriptor()),
			DescriptionEn:  ptr(gofakeit.Sentence(20)),
			StartDate:      datatypes.Date(gofakeit.PastDate()),
			AchievementsEn: sentences(2),
			Published:      true,
			Featured:       i < 2,
			DisplayOrder:   i,
		}
		result, err := svc.Activities.Create(ctx, activity)
		report("activity", i, counts.Activities, result, err)
	}

	var tagIDs []uuid.UUID
	for i := 0; i < counts.Tags; i++ {
		name := gofakeit.ProgrammingLanguage()
		tag := &models.BlogTag{
			NameEn: name,
			NameVi: name,
			Slug:   uniqueSlug("tag", name, i),
		}
		result, err := svc.Blog.CreateTag(ctx, tag)
		report("tag", i, counts.Tags, result, err)
		if err == nil {
			tagIDs = append(tagIDs, result.Data.ID)
		}
	}

	for i := 0; i < counts.Posts; i++ {
		title := gofakeit.Sentence(gofakeit.Number(4, 9))
		post := &models.BlogPost{
			TitleEn:          title,
			TitleVi:          viText(gofakeit.Sentence(gofakeit.Number(4, 9))),
			Slug:             uniqueSlug("post", title, i),
			ContentEn:        gofakeit.Paragraph(4, 5, 20, "\n\n"),
			ContentVi:        viText(gofakeit.Paragraph(3, 5, 20, "\n\n")),
			ExcerptEn:        ptr(gofakeit.Sentence(18)),
			CategoryEn:       ptr(gofakeit.RandomString([]string{"Engineering", "Career", "Notes"})),
			CategoryVi:       ptr(gofakeit.RandomString([]string{"Kỹ thuật", "Sự nghiệp", "Ghi chép"})),
			FeaturedImageURL: ptr(gofakeit.ImageURL(1200, 630)),
			AuthorName:       ptr(gofakeit.Name()),
			Published:        i%4 != 3,
			Featured:         i < 3,
		}
		result, err := svc.Blog.Create(ctx, post)
		report("post", i, counts.Posts, result, err)
		if err == nil && len(tagIDs) > 0 {
			picked := []uuid.UUID{tagIDs[i%len(tagIDs)], tagIDs[(i+1)%len(tagIDs)]}
			if _, err := svc.Blog.ReplacePostTags(ctx, result.Data.ID, picked); err != nil {
				log.Error().Err(err).Str("postID", result.Data.ID.String()).Msg("Failed to tag post")
			}
		}
	}

	if _, err := svc.Settings.Upsert(ctx, models.SettingUpsert{
		Key: services.FooterTextKey,
		SettingUpdate: models.SettingUpdate{
			ValueEn: models.Some("Built with Go and a lot of coffee."),
			ValueVi: models.Some("Được xây dựng bằng Go và rất nhiều cà phê."),
		},
	}); err != nil {
		log.Error().Err(err).Msg("Failed to save footer text")
	}

	log.Info().Msg("Seeding finished")
}

func seedProfile(ctx context.Context, svc *services.Services) {
	existing, err := svc.Profile.Get(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to load profile")
		return
	}
	if existing != nil {
		log.Info().Str("profileID", existing.ID.String()).Msg("Profile exists, keeping it")
		return
	}
	title := gofakeit.JobTitle()
	_, err = svc.Profile.Create(ctx, &models.Profile{
		Name:        gofakeit.Name(),
		TitleEn:     title,
		TitleVi:     viText(title),
		TaglineEn:   ptr(gofakeit.HipsterSentence(8)),
		SummaryEn:   ptr(gofakeit.Paragraph(1, 3, 16, " ")),
		SummaryVi:   ptr(viText(gofakeit.Paragraph(1, 3, 16, " "))),
		StoryEn:     ptr(gofakeit.Paragraph(3, 4, 18, "\n\n")),
		Email:       ptr(gofakeit.Email()),
		Phone:       ptr(gofakeit.Phone()),
		Location:    ptr(gofakeit.City()),
		AvatarURL:   ptr(gofakeit.ImageURL(400, 400)),
		GithubURL:   ptr("https://github.com/" + gofakeit.Username()),
		LinkedinURL: ptr("https://www.linkedin.com/in/" + gofakeit.Username()),
	})
	if err != nil {
		log.Error().Err(err).Msg("Failed to create profile")
	}
}

// report logs the outcome of one created record
func report[T any](kind string, index, total int, result services.Mutation[T], err error) {
	logger := log.With().Str("kind", kind).Int("index", index+1).Int("total", total).Logger()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to seed record")
		return
	}
	logger.Debug().Msg(result.Message)
}

// uniqueSlug suffixes the slug of title with the record index since fake
// titles repeat
func uniqueSlug(kind, title string, index int) string {
	base := services.Slugify(title)
	if base == "" {
		base = kind
	}
	return fmt.Sprintf("%s-%d", base, index+1)
}

// viText marks fake text as the Vietnamese variant so fallbacks are visible
func viText(s string) string {
	return "[vi] " + s
}

func viList(items []string) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = viText(item)
	}
	return out
}

func sentences(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = gofakeit.Sentence(gofakeit.Number(6, 12))
	}
	return out
}

func ptr[T any](v T) *T {
	return &v
}
