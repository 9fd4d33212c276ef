package database

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/bilingual-portfolio-backend/errs"
	"github.com/rpupo63/bilingual-portfolio-backend/i18n"
	"github.com/rpupo63/bilingual-portfolio-backend/models"
	"gorm.io/gorm"
)

const (
	DefaultPostsPerPage  = 10
	DefaultFeaturedPosts = 3

	publishedOrder = "published_at DESC, created_at DESC"
)

// PostPage is one page of published posts.
type PostPage struct {
	Posts   []*models.BlogPost `json:"posts"`
	Count   int64              `json:"count"`
	HasMore bool               `json:"hasMore"`
}

type BlogPostRepo struct {
	db *gorm.DB
}

func NewBlogPostRepo(db *gorm.DB) *BlogPostRepo {
	return &BlogPostRepo{db}
}

// GetDB returns the underlying database connection for debugging purposes
func (r *BlogPostRepo) GetDB() *gorm.DB {
	return r.db
}

func (r *BlogPostRepo) published(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.BlogPost{}).Where("published = ?", true)
}

// FindPublished returns page (1-based) of published posts, newest first.
// HasMore is set when rows exist beyond this page.
func (r *BlogPostRepo) FindPublished(ctx context.Context, page, limit int) (*PostPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPostsPerPage
	}

	var count int64
	if err := r.published(ctx).Count(&count).Error; err != nil {
		return nil, err
	}

	posts := []*models.BlogPost{}
	err := r.published(ctx).
		Order(publishedOrder).
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}

	return &PostPage{
		Posts:   posts,
		Count:   count,
		HasMore: int64(page)*int64(limit) < count,
	}, nil
}

// FindFeatured returns at most limit published, featured posts
func (r *BlogPostRepo) FindFeatured(ctx context.Context, limit int) ([]*models.BlogPost, error) {
	if limit <= 0 {
		limit = DefaultFeaturedPosts
	}
	var posts []*models.BlogPost
	err := r.published(ctx).Where("featured = ?", true).Order(publishedOrder).Limit(limit).Find(&posts).Error
	return posts, err
}

// FindPublishedBySlug returns the published post with slug and its tags, and
// counts the fetch as one view. The returned post includes that view.
func (r *BlogPostRepo) FindPublishedBySlug(ctx context.Context, slug string) (*models.BlogPost, error) {
	var post models.BlogPost
	if err := r.published(ctx).Where("slug = ?", slug).First(&post).Error; err != nil {
		return nil, errs.NotFoundOr("post", err)
	}

	err := r.db.WithContext(ctx).Model(&models.BlogPost{}).Where("id = ?", post.ID).
		UpdateColumn("views", gorm.Expr("views + ?", 1)).Error
	if err != nil {
		return nil, err
	}
	post.Views++

	tags, err := findTagsForPost(ctx, r.db, post.ID)
	if err != nil {
		return nil, err
	}
	post.Tags = tags
	return &post, nil
}

// Search matches published posts whose title or excerpt contains query in
// either language, ignoring case.
func (r *BlogPostRepo) Search(ctx context.Context, query string) ([]*models.BlogPost, error) {
	pattern := "%" + escapeLike(strings.ToLower(query)) + "%"
	posts := []*models.BlogPost{}
	err := r.published(ctx).
		Where(`LOWER(title_en) LIKE ? ESCAPE '\' OR LOWER(title_vi) LIKE ? ESCAPE '\' OR LOWER(excerpt_en) LIKE ? ESCAPE '\' OR LOWER(excerpt_vi) LIKE ? ESCAPE '\'`,
			pattern, pattern, pattern, pattern).
		Order(publishedOrder).
		Find(&posts).Error
	return posts, err
}

// FindByCategory matches category against the column of lang
func (r *BlogPostRepo) FindByCategory(ctx context.Context, category string, lang i18n.Language) ([]*models.BlogPost, error) {
	column := "category_en"
	if lang == i18n.Vietnamese {
		column = "category_vi"
	}
	posts := []*models.BlogPost{}
	err := r.published(ctx).Where(column+" = ?", category).Order(publishedOrder).Find(&posts).Error
	return posts, err
}

// FindByTag returns the published posts linked to tagID
func (r *BlogPostRepo) FindByTag(ctx context.Context, tagID uuid.UUID) ([]*models.BlogPost, error) {
	posts := []*models.BlogPost{}
	err := r.published(ctx).
		Where("id IN (?)", r.db.Model(&models.BlogPostTag{}).Select("post_id").Where("tag_id = ?", tagID)).
		Order(publishedOrder).
		Find(&posts).Error
	return posts, err
}

// FindAll returns every post for the admin area, newest first
func (r *BlogPostRepo) FindAll(ctx context.Context) ([]*models.BlogPost, error) {
	var posts []*models.BlogPost
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&posts).Error
	return posts, err
}

// FindByID returns a blog post and its tags
func (r *BlogPostRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.BlogPost, error) {
	post, err := findByID[models.BlogPost](ctx, r.db, "post", id)
	if err != nil {
		return nil, err
	}
	if post.Tags, err = findTagsForPost(ctx, r.db, id); err != nil {
		return nil, err
	}
	return post, nil
}

// Create inserts a new blog post into the database
func (r *BlogPostRepo) Create(ctx context.Context, post *models.BlogPost) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *BlogPostRepo) Update(ctx context.Context, id uuid.UUID, update models.BlogPostUpdate) (*models.BlogPost, error) {
	return updateByID[models.BlogPost](ctx, r.db, "post", id, update.Changes())
}

// Delete removes a blog post and its tag links
func (r *BlogPostRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.BlogPostTag{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&models.BlogPost{}).Error
	})
}

// TogglePublished flips published. The first transition to published stamps
// published_at; later transitions keep it.
func (r *BlogPostRepo) TogglePublished(ctx context.Context, id uuid.UUID) (*models.BlogPost, error) {
	result := r.db.WithContext(ctx).Model(&models.BlogPost{}).Where("id = ?", id).
		UpdateColumns(map[string]any{
			"published":    gorm.Expr("NOT published"),
			"published_at": gorm.Expr("CASE WHEN published_at IS NULL AND NOT published THEN ? ELSE published_at END", time.Now().UTC()),
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, errs.NewNotFound("post")
	}
	return findWritten[models.BlogPost](ctx, r.db, "post", id)
}

func (r *BlogPostRepo) ToggleFeatured(ctx context.Context, id uuid.UUID) (*models.BlogPost, error) {
	return toggleColumn[models.BlogPost](ctx, r.db, "post", id, "featured")
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
