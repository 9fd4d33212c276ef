package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/bilingual-portfolio-backend/cache"
	"github.com/rpupo63/bilingual-portfolio-backend/database"
	"github.com/rpupo63/bilingual-portfolio-backend/database/databasetest"
	"github.com/rpupo63/bilingual-portfolio-backend/errs"
	"github.com/rpupo63/bilingual-portfolio-backend/i18n"
	"github.com/rpupo63/bilingual-portfolio-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var fixedNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func strPtr(s string) *string { return &s }

type fakeObjects struct {
	mu       sync.Mutex
	uploaded map[string][]byte
	deleted  []string
	err      error
}

func newFakeObjects() *fakeObjects {
	return &fakeObjects{uploaded: map[string][]byte{}}
}

func (f *fakeObjects) Upload(_ context.Context, path string, body io.Reader, _ int64, _ string) error {
	if f.err != nil {
		return f.err
	}
	b, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uploaded[path] = b
	return nil
}

func (f *fakeObjects) Delete(_ context.Context, path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, path)
	delete(f.uploaded, path)
	return nil
}

func (f *fakeObjects) PublicURL(path string) string {
	return "https://proj.supabase.co/storage/v1/object/public/portfolio-media/" + path
}

func (f *fakeObjects) ObjectPath(url string) (string, bool) {
	prefix := "https://proj.supabase.co/storage/v1/object/public/portfolio-media/"
	if !strings.HasPrefix(url, prefix) {
		return "", false
	}
	return strings.TrimPrefix(url, prefix), true
}

type fakeMailer struct {
	sent []Email
	err  error
}

func (f *fakeMailer) Send(_ context.Context, email Email) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, email)
	return nil
}

type fixture struct {
	db      database.Database
	svc     *Services
	objects *fakeObjects
	mailer  *fakeMailer
	cache   *cache.Cache
}

func newFixture(t *testing.T, opts ...Option) fixture {
	t.Helper()
	db := database.New(databasetest.Open(t))
	c := cache.New(cache.NewMemoryStore(), cache.WithStaleAfter(time.Hour))
	objects := newFakeObjects()
	mailer := &fakeMailer{}
	opts = append([]Option{
		WithObjectStore(objects),
		WithMailer(mailer, "fallback@example.com"),
		withClock(func() time.Time { return fixedNow }),
	}, opts...)
	t.Cleanup(c.Wait)
	return fixture{db: db, svc: New(db, c, opts...), objects: objects, mailer: mailer, cache: c}
}

func newPost(slug string, published bool) *models.BlogPost {
	return &models.BlogPost{
		TitleEn:   "Title " + slug,
		TitleVi:   "Tiêu đề " + slug,
		Slug:      slug,
		ContentEn: "some content here",
		ContentVi: "nội dung",
		Published: published,
	}
}

func TestCreatePostInvalidatesCachedListings(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	all, err := f.svc.Blog.All(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	res, err := f.svc.Blog.Create(ctx, newPost("", true))
	require.NoError(t, err)
	assert.Equal(t, "Post created successfully", res.Message)
	assert.Equal(t, "title", res.Data.Slug)
	require.NotNil(t, res.Data.PublishedAt)
	assert.True(t, res.Data.PublishedAt.Equal(fixedNow))
	require.NotNil(t, res.Data.ReadingTime)
	assert.Equal(t, 1, *res.Data.ReadingTime)

	all, err = f.svc.Blog.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestValidationFailureSkipsBackend(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	post := newPost("draft", false)
	post.TitleEn = "  "
	post.Slug = "draft"

	_, err := f.svc.Blog.Create(ctx, post)
	require.Error(t, err)
	assert.True(t, errs.IsMutationError(err))
	assert.True(t, errs.IsMissingRequiredFieldError(err))
	assert.Equal(t, http.StatusBadRequest, errs.StatusCode(err))
	assert.True(t, strings.HasPrefix(err.Error(), "Failed to create post: "))
	assert.Contains(t, err.Error(), "title_en")

	var count int64
	require.NoError(t, f.db.BlogPostRepo().GetDB().Model(&models.BlogPost{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestFailedWriteLeavesCacheUntouched(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Projects.All(ctx)
	require.NoError(t, err)

	// a row written behind the cache's back stays invisible until a successful write
	require.NoError(t, f.db.ProjectRepo().Create(ctx, &models.Project{TitleEn: "Hidden", TitleVi: "Ẩn", Slug: "hidden"}))

	_, err = f.svc.Projects.TogglePublished(ctx, uuid.New())
	require.Error(t, err)
	assert.True(t, errs.IsNotFound(err))
	assert.Equal(t, http.StatusNotFound, errs.StatusCode(err))
	assert.True(t, strings.HasPrefix(err.Error(), "Failed to update status: "))

	projects, err := f.svc.Projects.All(ctx)
	require.NoError(t, err)
	assert.Empty(t, projects)

	_, err = f.svc.Projects.Create(ctx, &models.Project{TitleEn: "Visible", TitleVi: "Hiện"})
	require.NoError(t, err)
	projects, err = f.svc.Projects.All(ctx)
	require.NoError(t, err)
	assert.Len(t, projects, 2)
}

func TestDuplicateSlugIsConflict(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Blog.Create(ctx, newPost("same-slug", false))
	require.NoError(t, err)

	_, err = f.svc.Blog.Create(ctx, newPost("same-slug", false))
	require.Error(t, err)
	assert.True(t, errs.IsAlreadyExists(err))
	assert.True(t, errs.IsMutationError(err))
	assert.Equal(t, http.StatusConflict, errs.StatusCode(err))
	assert.Equal(t, "Failed to create post: post already exists", err.Error())
}

func TestProjectSlugValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Projects.Create(ctx, &models.Project{TitleEn: "A", TitleVi: "B", Slug: "Not A Slug"})
	assert.True(t, errs.IsInvalidFieldError(err))

	res, err := f.svc.Projects.Create(ctx, &models.Project{TitleEn: "Tối ưu Hóa Website!", TitleVi: "B", Published: true})
	require.NoError(t, err)
	assert.Equal(t, "toi-uu-hoa-website", res.Data.Slug)

	_, err = f.svc.Projects.Update(ctx, res.Data.ID, models.ProjectUpdate{Slug: models.Some("")})
	assert.True(t, errs.IsMissingRequiredFieldError(err))

	found, err := f.svc.Projects.BySlug(ctx, "toi-uu-hoa-website")
	require.NoError(t, err)
	assert.Equal(t, res.Data.ID, found.ID)
}

func TestExperienceCreateClearsEndDateWhenCurrent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	end := datatypes.Date(time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC))
	res, err := f.svc.Experiences.Create(ctx, &models.Experience{
		TitleEn: "Engineer", TitleVi: "Kỹ sư", CompanyEn: "Acme", CompanyVi: "Acme",
		StartDate: datatypes.Date(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)),
		EndDate:   &end,
		IsCurrent: true,
	})
	require.NoError(t, err)
	assert.Nil(t, res.Data.EndDate)

	_, err = f.svc.Experiences.Create(ctx, &models.Experience{TitleEn: "x", TitleVi: "x", CompanyEn: "x", CompanyVi: "x"})
	assert.True(t, errs.IsMissingRequiredFieldError(err))
}

func TestExperienceUpdateKeepsCurrentWithoutEndDate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.svc.Experiences.Create(ctx, &models.Experience{
		TitleEn: "Engineer", TitleVi: "Kỹ sư", CompanyEn: "Acme", CompanyVi: "Acme",
		StartDate: datatypes.Date(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)),
		IsCurrent: true,
	})
	require.NoError(t, err)

	res, err := f.svc.Experiences.Update(ctx, created.Data.ID, models.ExperienceUpdate{
		EndDate: models.Some(datatypes.Date(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))),
	})
	require.NoError(t, err)
	assert.True(t, res.Data.IsCurrent)
	assert.Nil(t, res.Data.EndDate)

	stored, err := f.svc.Experiences.ByID(ctx, created.Data.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.EndDate)
}

func TestCommitNamesRecordInDatabaseErrors(t *testing.T) {
	f := newFixture(t)
	o := outcome{entity: cache.Projects, noun: "project", action: "toggle_featured", success: "Project featured status updated", failure: "update featured status"}

	_, err := commit(context.Background(), f.cache, o, func(context.Context) (*models.Project, error) {
		return nil, gorm.ErrRecordNotFound
	})
	require.Error(t, err)
	assert.Equal(t, "Failed to update featured status: project not found", err.Error())
	assert.True(t, errs.IsNotFound(err))
	assert.Equal(t, http.StatusNotFound, errs.StatusCode(err))
}

func TestUpdatePublishStampsPublishedAt(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.svc.Blog.Create(ctx, newPost("later", false))
	require.NoError(t, err)
	assert.Nil(t, created.Data.PublishedAt)

	updated, err := f.svc.Blog.Update(ctx, created.Data.ID, models.BlogPostUpdate{Published: models.Some(true)})
	require.NoError(t, err)
	assert.Equal(t, "Post updated successfully", updated.Message)
	require.NotNil(t, updated.Data.PublishedAt)
	assert.True(t, updated.Data.PublishedAt.Equal(fixedNow))
}

func TestSearchRequiresThreeCharacters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Blog.Create(ctx, newPost("golang-tips", true))
	require.NoError(t, err)

	posts, err := f.svc.Blog.Search(ctx, "go")
	require.NoError(t, err)
	assert.NotNil(t, posts)
	assert.Empty(t, posts)

	posts, err = f.svc.Blog.Search(ctx, "golang")
	require.NoError(t, err)
	assert.Len(t, posts, 1)
}

func TestPublishedPageClampsArguments(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, slug := range []string{"a", "b", "c"} {
		_, err := f.svc.Blog.Create(ctx, newPost(slug, true))
		require.NoError(t, err)
	}

	page, err := f.svc.Blog.Published(ctx, 0, 2)
	require.NoError(t, err)
	assert.Len(t, page.Posts, 2)
	assert.EqualValues(t, 3, page.Count)
	assert.True(t, page.HasMore)

	page, err = f.svc.Blog.Published(ctx, 2, 2)
	require.NoError(t, err)
	assert.Len(t, page.Posts, 1)
	assert.False(t, page.HasMore)
}

func TestByCategoryUsesLanguage(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	post := newPost("cat", true)
	post.CategoryEn = strPtr("Engineering")
	post.CategoryVi = strPtr("Kỹ thuật")
	_, err := f.svc.Blog.Create(ctx, post)
	require.NoError(t, err)

	en, err := f.svc.Blog.ByCategory(ctx, "Engineering", i18n.English)
	require.NoError(t, err)
	assert.Len(t, en, 1)

	vi, err := f.svc.Blog.ByCategory(ctx, "Engineering", i18n.Vietnamese)
	require.NoError(t, err)
	assert.Empty(t, vi)
}

func TestReplacePostTagsInvalidatesPosts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	post, err := f.svc.Blog.Create(ctx, newPost("tagged", true))
	require.NoError(t, err)
	goTag, err := f.svc.Blog.CreateTag(ctx, &models.BlogTag{NameEn: "Go", NameVi: "Go"})
	require.NoError(t, err)
	assert.Equal(t, "go", goTag.Data.Slug)

	byTag, err := f.svc.Blog.ByTag(ctx, goTag.Data.ID)
	require.NoError(t, err)
	assert.Empty(t, byTag)

	res, err := f.svc.Blog.ReplacePostTags(ctx, post.Data.ID, []uuid.UUID{goTag.Data.ID, goTag.Data.ID})
	require.NoError(t, err)
	assert.Len(t, res.Data, 1)

	byTag, err = f.svc.Blog.ByTag(ctx, goTag.Data.ID)
	require.NoError(t, err)
	assert.Len(t, byTag, 1)

	_, err = f.svc.Blog.DeleteTag(ctx, goTag.Data.ID)
	require.NoError(t, err)
	tags, err := f.svc.Blog.TagsForPost(ctx, post.Data.ID)
	require.NoError(t, err)
	assert.Empty(t, tags)
}

func TestBySlugCountsEveryView(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Blog.Create(ctx, newPost("viewed", true))
	require.NoError(t, err)

	_, err = f.svc.Blog.BySlug(ctx, "viewed")
	require.NoError(t, err)
	post, err := f.svc.Blog.BySlug(ctx, "viewed")
	require.NoError(t, err)
	assert.Equal(t, 2, post.Views)
}

func TestUploadRejectsOversizedFileBeforeStorage(t *testing.T) {
	f := newFixture(t, WithMaxUploadBytes(4))
	ctx := context.Background()

	_, err := f.svc.Media.Upload(ctx, Upload{Filename: "big.png", Size: 5, Body: bytes.NewReader([]byte("12345"))})
	require.Error(t, err)
	assert.True(t, errs.IsMaxBodySizeExceededError(err))
	assert.Equal(t, http.StatusRequestEntityTooLarge, errs.StatusCode(err))
	assert.Empty(t, f.objects.uploaded)
}

func TestUploadUnderstatedSizeIsRemoved(t *testing.T) {
	f := newFixture(t, WithMaxUploadBytes(4))
	ctx := context.Background()

	_, err := f.svc.Media.Upload(ctx, Upload{Filename: "big.png", Size: 2, Body: bytes.NewReader([]byte("123456"))})
	assert.True(t, errs.IsMaxBodySizeExceededError(err))
	assert.Empty(t, f.objects.uploaded)
	assert.Len(t, f.objects.deleted, 1)
}

func TestUploadStoresObjectAndMetadata(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res, err := f.svc.Media.Upload(ctx, Upload{
		Filename: "Photo.JPG",
		Size:     3,
		Body:     bytes.NewReader([]byte("abc")),
	})
	require.NoError(t, err)
	assert.Equal(t, "File uploaded successfully", res.Message)

	item := res.Data
	assert.Equal(t, "Photo.JPG", item.Filename)
	require.NotNil(t, item.FileType)
	assert.Equal(t, "image/jpeg", *item.FileType)
	require.NotNil(t, item.FileSize)
	assert.EqualValues(t, 3, *item.FileSize)

	path, ok := f.objects.ObjectPath(item.URL)
	require.True(t, ok)
	assert.Regexp(t, `^[0-9a-f-]{36}-1709294400000\.jpg$`, path)
	assert.Equal(t, []byte("abc"), f.objects.uploaded[path])

	media, err := f.svc.Media.All(ctx)
	require.NoError(t, err)
	assert.Len(t, media, 1)

	_, err = f.svc.Media.Delete(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{path}, f.objects.deleted)
}

func TestUploadStorageFailure(t *testing.T) {
	f := newFixture(t)
	f.objects.err = errors.New("bucket unavailable")

	_, err := f.svc.Media.Upload(context.Background(), Upload{Filename: "a.png", Size: 1, Body: bytes.NewReader([]byte("a"))})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadGateway, errs.StatusCode(err))
	assert.True(t, strings.HasPrefix(err.Error(), "Failed to upload file: "))
}

func TestUploadRejectsUnsupportedType(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Media.Upload(context.Background(), Upload{Filename: "notes.pdf", Size: 1, Body: bytes.NewReader([]byte("a"))})
	require.Error(t, err)
	assert.Equal(t, http.StatusUnsupportedMediaType, errs.StatusCode(err))
	assert.True(t, strings.HasPrefix(err.Error(), "Failed to upload file: "))
	assert.Empty(t, f.objects.uploaded)
}

func TestFilterMedia(t *testing.T) {
	items := []*models.MediaItem{
		{Filename: "cat.png", FileType: strPtr("image/png"), AltTextVi: strPtr("Con mèo")},
		{Filename: "intro.mp4", FileType: strPtr("video/mp4")},
		{Filename: "notes.pdf", FileType: strPtr("application/pdf")},
		{Filename: "unknown"},
	}

	assert.Len(t, FilterMedia(items, "all", ""), 4)
	assert.Len(t, FilterMedia(items, "", ""), 4)
	assert.Equal(t, []*models.MediaItem{items[0]}, FilterMedia(items, "image", ""))
	assert.Equal(t, []*models.MediaItem{items[1]}, FilterMedia(items, "video", ""))
	assert.Equal(t, []*models.MediaItem{items[0]}, FilterMedia(items, "all", "MÈO"))
	assert.Equal(t, []*models.MediaItem{items[2]}, FilterMedia(items, "all", "notes"))
	assert.Empty(t, FilterMedia(items, "video", "cat"))
}

func TestSettingsUpsertAndFooter(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	footer, err := f.svc.Pages.Footer(ctx)
	require.NoError(t, err)
	assert.Nil(t, footer.Text)

	_, err = f.svc.Settings.Upsert(ctx, models.SettingUpsert{Key: "Footer Text"})
	assert.True(t, errs.IsInvalidFieldError(err))

	res, err := f.svc.Settings.Upsert(ctx, models.SettingUpsert{
		Key:           FooterTextKey,
		SettingUpdate: models.SettingUpdate{ValueEn: models.Some("Made in Hanoi")},
	})
	require.NoError(t, err)
	assert.Equal(t, "Setting saved successfully", res.Message)

	footer, err = f.svc.Pages.Footer(ctx)
	require.NoError(t, err)
	require.NotNil(t, footer.Text)
	assert.Equal(t, "Made in Hanoi", *footer.Text.ValueEn)

	_, err = f.svc.Settings.UpdateByKey(ctx, "missing", models.SettingUpdate{ValueEn: models.Some("x")})
	assert.True(t, errs.IsNotFound(err))
}

func TestHomePage(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Profile.Create(ctx, &models.Profile{Name: "Lan", TitleEn: "Engineer", TitleVi: "Kỹ sư"})
	require.NoError(t, err)
	project, err := f.svc.Projects.Create(ctx, &models.Project{TitleEn: "Site", TitleVi: "Trang", Published: true, Featured: true})
	require.NoError(t, err)
	post := newPost("featured", true)
	post.Featured = true
	_, err = f.svc.Blog.Create(ctx, post)
	require.NoError(t, err)

	home, err := f.svc.Pages.Home(ctx)
	require.NoError(t, err)
	require.NotNil(t, home.Profile)
	assert.Equal(t, "Lan", home.Profile.Name)
	require.Len(t, home.Projects, 1)
	assert.Equal(t, project.Data.ID, home.Projects[0].ID)
	assert.Len(t, home.Posts, 1)
	assert.Empty(t, home.Experiences)
	assert.Empty(t, home.Activities)
}

func TestSendContactMessage(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	msg := ContactMessage{Name: "Minh <b>", Email: "minh@example.com", Message: "Hello\nthere"}

	res, err := f.svc.Contact.SendContactMessage(ctx, msg)
	require.NoError(t, err)
	assert.Equal(t, "Message sent successfully", res.Message)
	require.Len(t, f.mailer.sent, 1)
	assert.Equal(t, []string{"fallback@example.com"}, f.mailer.sent[0].To)
	assert.Equal(t, "minh@example.com", f.mailer.sent[0].ReplyTo)
	assert.Contains(t, f.mailer.sent[0].HTML, "Minh &lt;b&gt;")
	assert.Contains(t, f.mailer.sent[0].HTML, "Hello<br>there")

	_, err = f.svc.Profile.Create(ctx, &models.Profile{Name: "Lan", TitleEn: "E", TitleVi: "K", Email: strPtr("lan@example.com")})
	require.NoError(t, err)
	_, err = f.svc.Contact.SendContactMessage(ctx, msg)
	require.NoError(t, err)
	assert.Equal(t, []string{"lan@example.com"}, f.mailer.sent[1].To)

	_, err = f.svc.Contact.SendContactMessage(ctx, ContactMessage{Name: "x", Email: "not-an-email", Message: "hi"})
	assert.True(t, errs.IsInvalidFieldError(err))

	f.mailer.err = errors.New("smtp down")
	_, err = f.svc.Contact.SendContactMessage(ctx, msg)
	assert.Equal(t, http.StatusBadGateway, errs.StatusCode(err))
}

func TestSlugify(t *testing.T) {
	tests := map[string]string{
		"Hello World":             "hello-world",
		"  Multiple   spaces  ":   "multiple-spaces",
		"Đà Nẵng trip":            "da-nang-trip",
		"C++ & Go: a comparison!": "c-go-a-comparison",
		"already-a-slug":          "already-a-slug",
		"snake_case stays":        "snake_case-stays",
		"---dashes---":            "dashes",
		"":                        "",
	}
	for in, want := range tests {
		assert.Equal(t, want, Slugify(in), in)
	}
}

func TestReadingTime(t *testing.T) {
	assert.Equal(t, 1, ReadingTime(""))
	assert.Equal(t, 1, ReadingTime(strings.Repeat("word ", 200)))
	assert.Equal(t, 2, ReadingTime(strings.Repeat("word ", 201)))
}
