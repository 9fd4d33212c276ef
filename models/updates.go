package models

import (
	"time"

	"gorm.io/datatypes"
)

// Update request types list every column an admin may change. Changes returns
// the column map of the fields that were actually sent.

type ProfileUpdate struct {
	Name        Optional[string] `json:"name"`
	TitleEn     Optional[string] `json:"title_en"`
	TitleVi     Optional[string] `json:"title_vi"`
	TaglineEn   Optional[string] `json:"tagline_en"`
	TaglineVi   Optional[string] `json:"tagline_vi"`
	SummaryEn   Optional[string] `json:"summary_en"`
	SummaryVi   Optional[string] `json:"summary_vi"`
	StoryEn     Optional[string] `json:"story_en"`
	StoryVi     Optional[string] `json:"story_vi"`
	Email       Optional[string] `json:"email"`
	Phone       Optional[string] `json:"phone"`
	Location    Optional[string] `json:"location"`
	AvatarURL   Optional[string] `json:"avatar_url"`
	GithubURL   Optional[string] `json:"github_url"`
	LinkedinURL Optional[string] `json:"linkedin_url"`
	TwitterURL  Optional[string] `json:"twitter_url"`
}

func (u ProfileUpdate) Changes() map[string]any {
	m := map[string]any{}
	u.Name.put(m, "name")
	u.TitleEn.put(m, "title_en")
	u.TitleVi.put(m, "title_vi")
	u.TaglineEn.put(m, "tagline_en")
	u.TaglineVi.put(m, "tagline_vi")
	u.SummaryEn.put(m, "summary_en")
	u.SummaryVi.put(m, "summary_vi")
	u.StoryEn.put(m, "story_en")
	u.StoryVi.put(m, "story_vi")
	u.Email.put(m, "email")
	u.Phone.put(m, "phone")
	u.Location.put(m, "location")
	u.AvatarURL.put(m, "avatar_url")
	u.GithubURL.put(m, "github_url")
	u.LinkedinURL.put(m, "linkedin_url")
	u.TwitterURL.put(m, "twitter_url")
	return m
}

type ExperienceUpdate struct {
	TitleEn        Optional[string]                      `json:"title_en"`
	TitleVi        Optional[string]                      `json:"title_vi"`
	CompanyEn      Optional[string]                      `json:"company_en"`
	CompanyVi      Optional[string]                      `json:"company_vi"`
	DescriptionEn  Optional[string]                      `json:"description_en"`
	DescriptionVi  Optional[string]                      `json:"description_vi"`
	Location       Optional[string]                      `json:"location"`
	StartDate      Optional[datatypes.Date]              `json:"start_date"`
	EndDate        Optional[datatypes.Date]              `json:"end_date"`
	IsCurrent      Optional[bool]                        `json:"is_current"`
	AchievementsEn Optional[datatypes.JSONSlice[string]] `json:"achievements_en"`
	AchievementsVi Optional[datatypes.JSONSlice[string]] `json:"achievements_vi"`
	ImageURL       Optional[string]                      `json:"image_url"`
	Published      Optional[bool]                        `json:"published"`
	DisplayOrder   Optional[int]                         `json:"display_order"`
}

func (u ExperienceUpdate) Changes() map[string]any {
	m := map[string]any{}
	u.TitleEn.put(m, "title_en")
	u.TitleVi.put(m, "title_vi")
	u.CompanyEn.put(m, "company_en")
	u.CompanyVi.put(m, "company_vi")
	u.DescriptionEn.put(m, "description_en")
	u.DescriptionVi.put(m, "description_vi")
	u.Location.put(m, "location")
	u.StartDate.put(m, "start_date")
	u.EndDate.put(m, "end_date")
	u.IsCurrent.put(m, "is_current")
	u.AchievementsEn.put(m, "achievements_en")
	u.AchievementsVi.put(m, "achievements_vi")
	u.ImageURL.put(m, "image_url")
	u.Published.put(m, "published")
	u.DisplayOrder.put(m, "display_order")
	if u.IsCurrent.Present() && u.IsCurrent.Value {
		m["end_date"] = nil
	}
	return m
}

type ProjectUpdate struct {
	TitleEn       Optional[string]                      `json:"title_en"`
	TitleVi       Optional[string]                      `json:"title_vi"`
	Slug          Optional[string]                      `json:"slug"`
	DescriptionEn Optional[string]                      `json:"description_en"`
	DescriptionVi Optional[string]                      `json:"description_vi"`
	ProblemEn     Optional[string]                      `json:"problem_en"`
	ProblemVi     Optional[string]                      `json:"problem_vi"`
	ActionEn      Optional[string]                      `json:"action_en"`
	ActionVi      Optional[string]                      `json:"action_vi"`
	ResultEn      Optional[string]                      `json:"result_en"`
	ResultVi      Optional[string]                      `json:"result_vi"`
	ImageURL      Optional[string]                      `json:"image_url"`
	GalleryURLs   Optional[datatypes.JSONSlice[string]] `json:"gallery_urls"`
	Tags          Optional[datatypes.JSONSlice[string]] `json:"tags"`
	ProjectURL    Optional[string]                      `json:"project_url"`
	ProjectDate   Optional[datatypes.Date]              `json:"project_date"`
	Published     Optional[bool]                        `json:"published"`
	Featured      Optional[bool]                        `json:"featured"`
	DisplayOrder  Optional[int]                         `json:"display_order"`
}

func (u ProjectUpdate) Changes() map[string]any {
	m := map[string]any{}
	u.TitleEn.put(m, "title_en")
	u.TitleVi.put(m, "title_vi")
	u.Slug.put(m, "slug")
	u.DescriptionEn.put(m, "description_en")
	u.DescriptionVi.put(m, "description_vi")
	u.ProblemEn.put(m, "problem_en")
	u.ProblemVi.put(m, "problem_vi")
	u.ActionEn.put(m, "action_en")
	u.ActionVi.put(m, "action_vi")
	u.ResultEn.put(m, "result_en")
	u.ResultVi.put(m, "result_vi")
	u.ImageURL.put(m, "image_url")
	u.GalleryURLs.put(m, "gallery_urls")
	u.Tags.put(m, "tags")
	u.ProjectURL.put(m, "project_url")
	u.ProjectDate.put(m, "project_date")
	u.Published.put(m, "published")
	u.Featured.put(m, "featured")
	u.DisplayOrder.put(m, "display_order")
	return m
}

type ActivityUpdate struct {
	TitleEn        Optional[string]                      `json:"title_en"`
	TitleVi        Optional[string]                      `json:"title_vi"`
	OrganizationEn Optional[string]                      `json:"organization_en"`
	OrganizationVi Optional[string]                      `json:"organization_vi"`
	RoleEn         Optional[string]                      `json:"role_en"`
	RoleVi         Optional[string]                      `json:"role_vi"`
	DescriptionEn  Optional[string]                      `json:"description_en"`
	DescriptionVi  Optional[string]                      `json:"description_vi"`
	StartDate      Optional[datatypes.Date]              `json:"start_date"`
	EndDate        Optional[datatypes.Date]              `json:"end_date"`
	AchievementsEn Optional[datatypes.JSONSlice[string]] `json:"achievements_en"`
	AchievementsVi Optional[datatypes.JSONSlice[string]] `json:"achievements_vi"`
	ImageURL       Optional[string]                      `json:"image_url"`
	Published      Optional[bool]                        `json:"published"`
	Featured       Optional[bool]                        `json:"featured"`
	DisplayOrder   Optional[int]                         `json:"display_order"`
}

func (u ActivityUpdate) Changes() map[string]any {
	m := map[string]any{}
	u.TitleEn.put(m, "title_en")
	u.TitleVi.put(m, "title_vi")
	u.OrganizationEn.put(m, "organization_en")
	u.OrganizationVi.put(m, "organization_vi")
	u.RoleEn.put(m, "role_en")
	u.RoleVi.put(m, "role_vi")
	u.DescriptionEn.put(m, "description_en")
	u.DescriptionVi.put(m, "description_vi")
	u.StartDate.put(m, "start_date")
	u.EndDate.put(m, "end_date")
	u.AchievementsEn.put(m, "achievements_en")
	u.AchievementsVi.put(m, "achievements_vi")
	u.ImageURL.put(m, "image_url")
	u.Published.put(m, "published")
	u.Featured.put(m, "featured")
	u.DisplayOrder.put(m, "display_order")
	return m
}

type BlogPostUpdate struct {
	TitleEn          Optional[string]    `json:"title_en"`
	TitleVi          Optional[string]    `json:"title_vi"`
	Slug             Optional[string]    `json:"slug"`
	ContentEn        Optional[string]    `json:"content_en"`
	ContentVi        Optional[string]    `json:"content_vi"`
	ExcerptEn        Optional[string]    `json:"excerpt_en"`
	ExcerptVi        Optional[string]    `json:"excerpt_vi"`
	CategoryEn       Optional[string]    `json:"category_en"`
	CategoryVi       Optional[string]    `json:"category_vi"`
	FeaturedImageURL Optional[string]    `json:"featured_image_url"`
	AuthorName       Optional[string]    `json:"author_name"`
	ReadingTime      Optional[int]       `json:"reading_time"`
	Published        Optional[bool]      `json:"published"`
	PublishedAt      Optional[time.Time] `json:"published_at"`
	Featured         Optional[bool]      `json:"featured"`
}

func (u BlogPostUpdate) Changes() map[string]any {
	m := map[string]any{}
	u.TitleEn.put(m, "title_en")
	u.TitleVi.put(m, "title_vi")
	u.Slug.put(m, "slug")
	u.ContentEn.put(m, "content_en")
	u.ContentVi.put(m, "content_vi")
	u.ExcerptEn.put(m, "excerpt_en")
	u.ExcerptVi.put(m, "excerpt_vi")
	u.CategoryEn.put(m, "category_en")
	u.CategoryVi.put(m, "category_vi")
	u.FeaturedImageURL.put(m, "featured_image_url")
	u.AuthorName.put(m, "author_name")
	u.ReadingTime.put(m, "reading_time")
	u.Published.put(m, "published")
	u.PublishedAt.put(m, "published_at")
	u.Featured.put(m, "featured")
	return m
}

type MediaItemUpdate struct {
	Filename  Optional[string] `json:"filename"`
	AltTextEn Optional[string] `json:"alt_text_en"`
	AltTextVi Optional[string] `json:"alt_text_vi"`
}

func (u MediaItemUpdate) Changes() map[string]any {
	m := map[string]any{}
	u.Filename.put(m, "filename")
	u.AltTextEn.put(m, "alt_text_en")
	u.AltTextVi.put(m, "alt_text_vi")
	return m
}

type SettingUpdate struct {
	ValueEn     Optional[string] `json:"value_en"`
	ValueVi     Optional[string] `json:"value_vi"`
	Description Optional[string] `json:"description"`
}

func (u SettingUpdate) Changes() map[string]any {
	m := map[string]any{}
	u.ValueEn.put(m, "value_en")
	u.ValueVi.put(m, "value_vi")
	u.Description.put(m, "description")
	return m
}

// SettingUpsert saves the setting under Key. When Key already exists only the
// values that were sent are written.
type SettingUpsert struct {
	Key string `json:"key"`
	SettingUpdate
}

// Setting returns the row inserted when Key is new.
func (u SettingUpsert) Setting() *Setting {
	return &Setting{
		Key:         u.Key,
		ValueEn:     u.ValueEn.Ptr(),
		ValueVi:     u.ValueVi.Ptr(),
		Description: u.Description.Ptr(),
	}
}
