package services

import (
	"context"

	"github.com/rpupo63/bilingual-portfolio-backend/models"
	"golang.org/x/sync/errgroup"
)

// HomePage is the data behind the landing page.
type HomePage struct {
	Profile     *models.Profile      `json:"profile"`
	Experiences []*models.Experience `json:"experiences"`
	Projects    []*models.Project    `json:"projects"`
	Posts       []*models.BlogPost   `json:"posts"`
	Activities  []*models.Activity   `json:"activities"`
}

type AboutPage struct {
	Profile     *models.Profile      `json:"profile"`
	Experiences []*models.Experience `json:"experiences"`
	Activities  []*models.Activity   `json:"activities"`
}

type ContactPage struct {
	Profile *models.Profile `json:"profile"`
}

type Footer struct {
	Profile *models.Profile `json:"profile"`
	Text    *models.Setting `json:"text"`
}

// PageService composes the cached reads a public page needs.
type PageService struct {
	profile     *ProfileService
	experiences *ExperienceService
	projects    *ProjectService
	activities  *ActivityService
	blog        *BlogService
	settings    *SettingService
}

// Home loads the profile, published experiences and the featured projects,
// posts and activities concurrently. The first error cancels the rest.
func (s *PageService) Home(ctx context.Context) (*HomePage, error) {
	var page HomePage
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		page.Profile, err = s.profile.Get(ctx)
		return err
	})
	g.Go(func() (err error) {
		page.Experiences, err = s.experiences.Published(ctx)
		return err
	})
	g.Go(func() (err error) {
		page.Projects, err = s.projects.Featured(ctx, 0)
		return err
	})
	g.Go(func() (err error) {
		page.Posts, err = s.blog.Featured(ctx, 0)
		return err
	})
	g.Go(func() (err error) {
		page.Activities, err = s.activities.Featured(ctx, 0)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &page, nil
}

func (s *PageService) About(ctx context.Context) (*AboutPage, error) {
	var page AboutPage
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		page.Profile, err = s.profile.Get(ctx)
		return err
	})
	g.Go(func() (err error) {
		page.Experiences, err = s.experiences.Published(ctx)
		return err
	})
	g.Go(func() (err error) {
		page.Activities, err = s.activities.Published(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &page, nil
}

func (s *PageService) Contact(ctx context.Context) (*ContactPage, error) {
	profile, err := s.profile.Get(ctx)
	if err != nil {
		return nil, err
	}
	return &ContactPage{Profile: profile}, nil
}

func (s *PageService) Footer(ctx context.Context) (*Footer, error) {
	var footer Footer
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		footer.Profile, err = s.profile.Get(ctx)
		return err
	})
	g.Go(func() (err error) {
		footer.Text, err = s.settings.ByKey(ctx, FooterTextKey)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &footer, nil
}
