package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/bilingual-portfolio-backend/database"
	"github.com/rpupo63/bilingual-portfolio-backend/i18n"
	"github.com/rpupo63/bilingual-portfolio-backend/models"
	"github.com/rpupo63/bilingual-portfolio-backend/services"
	"gorm.io/datatypes"
)

// Public payloads carry one language. Every bilingual column is resolved
// through i18n so a missing translation falls back to English.

type ProfileView struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Title       string    `json:"title"`
	Tagline     string    `json:"tagline"`
	Summary     string    `json:"summary"`
	Story       string    `json:"story"`
	Email       *string   `json:"email"`
	Phone       *string   `json:"phone"`
	Location    *string   `json:"location"`
	AvatarURL   *string   `json:"avatar_url"`
	GithubURL   *string   `json:"github_url"`
	LinkedinURL *string   `json:"linkedin_url"`
	TwitterURL  *string   `json:"twitter_url"`
}

type ExperienceView struct {
	ID           uuid.UUID       `json:"id"`
	Title        string          `json:"title"`
	Company      string          `json:"company"`
	Description  string          `json:"description"`
	Location     *string         `json:"location"`
	StartDate    datatypes.Date  `json:"start_date"`
	EndDate      *datatypes.Date `json:"end_date"`
	IsCurrent    bool            `json:"is_current"`
	Achievements []string        `json:"achievements"`
	ImageURL     *string         `json:"image_url"`
}

type ProjectView struct {
	ID          uuid.UUID       `json:"id"`
	Slug        string          `json:"slug"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Problem     string          `json:"problem"`
	Action      string          `json:"action"`
	Result      string          `json:"result"`
	ImageURL    *string         `json:"image_url"`
	GalleryURLs []string        `json:"gallery_urls"`
	Tags        []string        `json:"tags"`
	ProjectURL  *string         `json:"project_url"`
	ProjectDate *datatypes.Date `json:"project_date"`
	Featured    bool            `json:"featured"`
}

type ActivityView struct {
	ID           uuid.UUID       `json:"id"`
	Title        string          `json:"title"`
	Organization string          `json:"organization"`
	Role         string          `json:"role"`
	Description  string          `json:"description"`
	StartDate    datatypes.Date  `json:"start_date"`
	EndDate      *datatypes.Date `json:"end_date"`
	Achievements []string        `json:"achievements"`
	ImageURL     *string         `json:"image_url"`
	Featured     bool            `json:"featured"`
}

type TagView struct {
	ID   uuid.UUID `json:"id"`
	Slug string    `json:"slug"`
	Name string    `json:"name"`
}

type PostView struct {
	ID               uuid.UUID  `json:"id"`
	Slug             string     `json:"slug"`
	Title            string     `json:"title"`
	Content          string     `json:"content,omitempty"`
	Excerpt          string     `json:"excerpt"`
	Category         string     `json:"category"`
	FeaturedImageURL *string    `json:"featured_image_url"`
	AuthorName       *string    `json:"author_name"`
	ReadingTime      *int       `json:"reading_time"`
	Views            int        `json:"views"`
	PublishedAt      *time.Time `json:"published_at"`
	Featured         bool       `json:"featured"`
	Tags             []TagView  `json:"tags"`
}

type PostPageView struct {
	Posts   []PostView `json:"posts"`
	Count   int64      `json:"count"`
	HasMore bool       `json:"hasMore"`
}

type SettingView struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type HomePageView struct {
	Lang        i18n.Language    `json:"lang"`
	Profile     *ProfileView     `json:"profile"`
	Experiences []ExperienceView `json:"experiences"`
	Projects    []ProjectView    `json:"projects"`
	Posts       []PostView       `json:"posts"`
	Activities  []ActivityView   `json:"activities"`
}

type AboutPageView struct {
	Lang        i18n.Language    `json:"lang"`
	Profile     *ProfileView     `json:"profile"`
	Experiences []ExperienceView `json:"experiences"`
	Activities  []ActivityView   `json:"activities"`
}

type ContactPageView struct {
	Lang    i18n.Language `json:"lang"`
	Profile *ProfileView  `json:"profile"`
}

type FooterView struct {
	Lang    i18n.Language `json:"lang"`
	Profile *ProfileView  `json:"profile"`
	Text    string        `json:"text"`
}

func presentProfile(p *models.Profile, lang i18n.Language) *ProfileView {
	if p == nil {
		return nil
	}
	return &ProfileView{
		ID:          p.ID,
		Name:        p.Name,
		Title:       i18n.Text(p, lang, "title"),
		Tagline:     i18n.Text(p, lang, "tagline"),
		Summary:     i18n.Text(p, lang, "summary"),
		Story:       i18n.Text(p, lang, "story"),
		Email:       p.Email,
		Phone:       p.Phone,
		Location:    p.Location,
		AvatarURL:   p.AvatarURL,
		GithubURL:   p.GithubURL,
		LinkedinURL: p.LinkedinURL,
		TwitterURL:  p.TwitterURL,
	}
}

func presentExperiences(items []*models.Experience, lang i18n.Language) []ExperienceView {
	out := make([]ExperienceView, 0, len(items))
	for _, e := range items {
		out = append(out, ExperienceView{
			ID:           e.ID,
			Title:        i18n.Text(e, lang, "title"),
			Company:      i18n.Text(e, lang, "company"),
			Description:  i18n.Text(e, lang, "description"),
			Location:     e.Location,
			StartDate:    e.StartDate,
			EndDate:      e.EndDate,
			IsCurrent:    e.IsCurrent,
			Achievements: i18n.List(e, lang, "achievements"),
			ImageURL:     e.ImageURL,
		})
	}
	return out
}

func presentProject(p *models.Project, lang i18n.Language) ProjectView {
	return ProjectView{
		ID:          p.ID,
		Slug:        p.Slug,
		Title:       i18n.Text(p, lang, "title"),
		Description: i18n.Text(p, lang, "description"),
		Problem:     i18n.Text(p, lang, "problem"),
		Action:      i18n.Text(p, lang, "action"),
		Result:      i18n.Text(p, lang, "result"),
		ImageURL:    p.ImageURL,
		GalleryURLs: nonNil(p.GalleryURLs),
		Tags:        nonNil(p.Tags),
		ProjectURL:  p.ProjectURL,
		ProjectDate: p.ProjectDate,
		Featured:    p.Featured,
	}
}

func presentProjects(items []*models.Project, lang i18n.Language) []ProjectView {
	out := make([]ProjectView, 0, len(items))
	for _, p := range items {
		out = append(out, presentProject(p, lang))
	}
	return out
}

func presentActivities(items []*models.Activity, lang i18n.Language) []ActivityView {
	out := make([]ActivityView, 0, len(items))
	for _, a := range items {
		out = append(out, ActivityView{
			ID:           a.ID,
			Title:        i18n.Text(a, lang, "title"),
			Organization: i18n.Text(a, lang, "organization"),
			Role:         i18n.Text(a, lang, "role"),
			Description:  i18n.Text(a, lang, "description"),
			StartDate:    a.StartDate,
			EndDate:      a.EndDate,
			Achievements: i18n.List(a, lang, "achievements"),
			ImageURL:     a.ImageURL,
			Featured:     a.Featured,
		})
	}
	return out
}

func presentTags[T models.BlogTag | *models.BlogTag](items []T, lang i18n.Language) []TagView {
	out := make([]TagView, 0, len(items))
	for _, item := range items {
		var t models.BlogTag
		switch v := any(item).(type) {
		case models.BlogTag:
			t = v
		case *models.BlogTag:
			t = *v
		}
		out = append(out, TagView{ID: t.ID, Slug: t.Slug, Name: i18n.Text(t, lang, "name")})
	}
	return out
}

// presentPost resolves a post. Lists leave out the body.
func presentPost(p *models.BlogPost, lang i18n.Language, withContent bool) PostView {
	view := PostView{
		ID:               p.ID,
		Slug:             p.Slug,
		Title:            i18n.Text(p, lang, "title"),
		Excerpt:          i18n.Text(p, lang, "excerpt"),
		Category:         i18n.Text(p, lang, "category"),
		FeaturedImageURL: p.FeaturedImageURL,
		AuthorName:       p.AuthorName,
		ReadingTime:      p.ReadingTime,
		Views:            p.Views,
		PublishedAt:      p.PublishedAt,
		Featured:         p.Featured,
		Tags:             presentTags(p.Tags, lang),
	}
	if withContent {
		view.Content = i18n.Text(p, lang, "content")
	}
	return view
}

func presentPosts(items []*models.BlogPost, lang i18n.Language) []PostView {
	out := make([]PostView, 0, len(items))
	for _, p := range items {
		out = append(out, presentPost(p, lang, false))
	}
	return out
}

func presentPostPage(page *database.PostPage, lang i18n.Language) PostPageView {
	return PostPageView{
		Posts:   presentPosts(page.Posts, lang),
		Count:   page.Count,
		HasMore: page.HasMore,
	}
}

func presentSetting(s *models.Setting, lang i18n.Language) SettingView {
	return SettingView{Key: s.Key, Value: i18n.Text(s, lang, "value")}
}

func presentSettings(items []*models.Setting, lang i18n.Language) []SettingView {
	out := make([]SettingView, 0, len(items))
	for _, s := range items {
		out = append(out, presentSetting(s, lang))
	}
	return out
}

func presentHome(page *services.HomePage, lang i18n.Language) HomePageView {
	return HomePageView{
		Lang:        lang,
		Profile:     presentProfile(page.Profile, lang),
		Experiences: presentExperiences(page.Experiences, lang),
		Projects:    presentProjects(page.Projects, lang),
		Posts:       presentPosts(page.Posts, lang),
		Activities:  presentActivities(page.Activities, lang),
	}
}

func presentAbout(page *services.AboutPage, lang i18n.Language) AboutPageView {
	return AboutPageView{
		Lang:        lang,
		Profile:     presentProfile(page.Profile, lang),
		Experiences: presentExperiences(page.Experiences, lang),
		Activities:  presentActivities(page.Activities, lang),
	}
}

func presentFooter(footer *services.Footer, lang i18n.Language) FooterView {
	view := FooterView{Lang: lang, Profile: presentProfile(footer.Profile, lang)}
	if footer.Text != nil {
		view.Text = i18n.Text(footer.Text, lang, "value")
	}
	return view
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
