package main

import (
	"context"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpupo63/bilingual-portfolio-backend/cache"
	"github.com/rpupo63/bilingual-portfolio-backend/database"
	"github.com/rpupo63/bilingual-portfolio-backend/database/databasetest"
	"github.com/rpupo63/bilingual-portfolio-backend/services"
)

func TestSeedCreatesContent(t *testing.T) {
	gofakeit.Seed(42)
	db := database.New(databasetest.Open(t))
	c := cache.New(cache.NewMemoryStore())
	t.Cleanup(c.Wait)
	svc := services.New(db, c)
	ctx := context.Background()

	Seed(ctx, svc, Counts{Experiences: 2, Projects: 3, Activities: 2, Posts: 4, Tags: 2})

	profile, err := svc.Profile.Get(ctx)
	require.NoError(t, err)
	require.NotNil(t, profile)

	experiences, err := svc.Experiences.All(ctx)
	require.NoError(t, err)
	assert.Len(t, experiences, 2)
	assert.True(t, experiences[0].IsCurrent)
	assert.Nil(t, experiences[0].EndDate)

	projects, err := svc.Projects.All(ctx)
	require.NoError(t, err)
	assert.Len(t, projects, 3)

	posts, err := svc.Blog.All(ctx)
	require.NoError(t, err)
	assert.Len(t, posts, 4)
	for _, post := range posts {
		assert.NotEmpty(t, post.Slug)
		require.NotNil(t, post.ReadingTime)

		tags, err := svc.Blog.TagsForPost(ctx, post.ID)
		require.NoError(t, err)
		assert.Len(t, tags, 2)
	}

	footer, err := svc.Settings.ByKey(ctx, services.FooterTextKey)
	require.NoError(t, err)
	require.NotNil(t, footer)

	// a second run keeps the existing profile
	Seed(ctx, svc, Counts{})
	again, err := svc.Profile.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, profile.ID, again.ID)
}
