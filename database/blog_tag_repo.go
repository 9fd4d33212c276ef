package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/rpupo63/bilingual-portfolio-backend/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BlogTagRepo struct {
	db *gorm.DB
}

func NewBlogTagRepo(db *gorm.DB) *BlogTagRepo {
	return &BlogTagRepo{db}
}

// GetDB returns the underlying database connection for debugging purposes
func (r *BlogTagRepo) GetDB() *gorm.DB {
	return r.db
}

// FindAll returns all blog tags ordered by English name
func (r *BlogTagRepo) FindAll(ctx context.Context) ([]*models.BlogTag, error) {
	var blogTags []*models.BlogTag
	err := r.db.WithContext(ctx).Order("name_en ASC").Find(&blogTags).Error
	return blogTags, err
}

func (r *BlogTagRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.BlogTag, error) {
	return findByID[models.BlogTag](ctx, r.db, "tag", id)
}

// FindForPost returns the tags linked to postID
func (r *BlogTagRepo) FindForPost(ctx context.Context, postID uuid.UUID) ([]models.BlogTag, error) {
	return findTagsForPost(ctx, r.db, postID)
}

// Create inserts a new blog tag into the database
func (r *BlogTagRepo) Create(ctx context.Context, blogTag *models.BlogTag) error {
	return r.db.WithContext(ctx).Create(blogTag).Error
}

// Delete removes a blog tag and every link to it
func (r *BlogTagRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tag_id = ?", id).Delete(&models.BlogPostTag{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&models.BlogTag{}).Error
	})
}

// LinkPostToTags adds links from postID to tagIDs. Existing links are kept.
func (r *BlogTagRepo) LinkPostToTags(ctx context.Context, postID uuid.UUID, tagIDs []uuid.UUID) error {
	return linkTags(r.db.WithContext(ctx), postID, tagIDs)
}

// UnlinkPostFromTag removes one link
func (r *BlogTagRepo) UnlinkPostFromTag(ctx context.Context, postID, tagID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("post_id = ? AND tag_id = ?", postID, tagID).
		Delete(&models.BlogPostTag{}).Error
}

// ReplacePostTags makes tagIDs the exact tag set of postID. The delete and the
// insert run in one transaction, so a failure leaves the old set in place.
func (r *BlogTagRepo) ReplacePostTags(ctx context.Context, postID uuid.UUID, tagIDs []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", postID).Delete(&models.BlogPostTag{}).Error; err != nil {
			return err
		}
		return linkTags(tx, postID, tagIDs)
	})
}

func linkTags(db *gorm.DB, postID uuid.UUID, tagIDs []uuid.UUID) error {
	seen := make(map[uuid.UUID]bool, len(tagIDs))
	links := make([]models.BlogPostTag, 0, len(tagIDs))
	for _, tagID := range tagIDs {
		if seen[tagID] {
			continue
		}
		seen[tagID] = true
		links = append(links, models.BlogPostTag{PostID: postID, TagID: tagID})
	}
	if len(links) == 0 {
		return nil
	}
	return db.Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "post_id"}, {Name: "tag_id"}},
			DoNothing: true,
		}).
		Create(&links).Error
}

func findTagsForPost(ctx context.Context, db *gorm.DB, postID uuid.UUID) ([]models.BlogTag, error) {
	tags := []models.BlogTag{}
	err := db.WithContext(ctx).
		Select("blog_tags.*").
		Joins("JOIN blog_post_tags ON blog_post_tags.tag_id = blog_tags.id").
		Where("blog_post_tags.post_id = ?", postID).
		Order("blog_tags.name_en ASC").
		Find(&tags).Error
	return tags, err
}
