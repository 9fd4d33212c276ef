package services

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rpupo63/bilingual-portfolio-backend/cache"
	"github.com/rpupo63/bilingual-portfolio-backend/database"
	"github.com/rpupo63/bilingual-portfolio-backend/i18n"
	"github.com/rpupo63/bilingual-portfolio-backend/models"
)

const (
	// MinSearchLength is the shortest query that reaches the backend.
	MinSearchLength = 3
	MaxPostsPerPage = 50

	wordsPerMinute = 200
)

type BlogService struct {
	cache *cache.Cache
	posts *database.BlogPostRepo
	tags  *database.BlogTagRepo
	now   func() time.Time
}

func (s *BlogService) Published(ctx context.Context, page, limit int) (*database.PostPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = database.DefaultPostsPerPage
	}
	if limit > MaxPostsPerPage {
		limit = MaxPostsPerPage
	}
	return cache.Fetch(ctx, s.cache, cache.NewKey(cache.BlogPosts, "published", page, limit), func(ctx context.Context) (*database.PostPage, error) {
		return s.posts.FindPublished(ctx, page, limit)
	})
}

func (s *BlogService) Featured(ctx context.Context, limit int) ([]*models.BlogPost, error) {
	if limit <= 0 {
		limit = database.DefaultFeaturedPosts
	}
	return cache.Fetch(ctx, s.cache, cache.NewKey(cache.BlogPosts, "featured", limit), func(ctx context.Context) ([]*models.BlogPost, error) {
		return s.posts.FindFeatured(ctx, limit)
	})
}

// BySlug returns a published post and counts the view. It is never cached.
func (s *BlogService) BySlug(ctx context.Context, slug string) (*models.BlogPost, error) {
	return s.posts.FindPublishedBySlug(ctx, slug)
}

// Search matches published posts by title or content. Queries shorter than
// MinSearchLength return no results without a backend call.
func (s *BlogService) Search(ctx context.Context, query string) ([]*models.BlogPost, error) {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < MinSearchLength {
		return []*models.BlogPost{}, nil
	}
	return cache.Fetch(ctx, s.cache, cache.NewKey(cache.BlogPosts, "search", query), func(ctx context.Context) ([]*models.BlogPost, error) {
		return s.posts.Search(ctx, query)
	})
}

func (s *BlogService) ByCategory(ctx context.Context, category string, lang i18n.Language) ([]*models.BlogPost, error) {
	if category == "" {
		return []*models.BlogPost{}, nil
	}
	return cache.Fetch(ctx, s.cache, cache.NewKey(cache.BlogPosts, "category", category, lang), func(ctx context.Context) ([]*models.BlogPost, error) {
		return s.posts.FindByCategory(ctx, category, lang)
	})
}

func (s *BlogService) ByTag(ctx context.Context, tagID uuid.UUID) ([]*models.BlogPost, error) {
	return cache.Fetch(ctx, s.cache, cache.NewKey(cache.BlogPosts, "tag", tagID), func(ctx context.Context) ([]*models.BlogPost, error) {
		return s.posts.FindByTag(ctx, tagID)
	})
}

func (s *BlogService) All(ctx context.Context) ([]*models.BlogPost, error) {
	return cache.Fetch(ctx, s.cache, cache.NewKey(cache.BlogPosts, "all"), s.posts.FindAll)
}

func (s *BlogService) ByID(ctx context.Context, id uuid.UUID) (*models.BlogPost, error) {
	return cache.Fetch(ctx, s.cache, cache.NewKey(cache.BlogPosts, id), func(ctx context.Context) (*models.BlogPost, error) {
		return s.posts.FindByID(ctx, id)
	})
}

// Create stores a post. A blank slug is derived from title_en, a missing
// reading time is estimated from content_en, and a post created published is
// stamped with published_at.
func (s *BlogService) Create(ctx context.Context, post *models.BlogPost) (Mutation[*models.BlogPost], error) {
	o := outcome{entity: cache.BlogPosts, noun: "post", action: "create", success: "Post created successfully", failure: "create post"}
	if post.Slug == "" {
		post.Slug = Slugify(post.TitleEn)
	}
	if err := firstError(
		required("title_en", post.TitleEn),
		required("title_vi", post.TitleVi),
		required("content_en", post.ContentEn),
		required("content_vi", post.ContentVi),
		validSlug("slug", post.Slug),
	); err != nil {
		return reject[*models.BlogPost](o, err)
	}
	if post.ReadingTime == nil {
		minutes := ReadingTime(post.ContentEn)
		post.ReadingTime = &minutes
	}
	if post.Published && post.PublishedAt == nil {
		now := s.now().UTC()
		post.PublishedAt = &now
	}
	post.Tags = nil
	return commit(ctx, s.cache, o, func(ctx context.Context) (*models.BlogPost, error) {
		return post, s.posts.Create(ctx, post)
	})
}

func (s *BlogService) Update(ctx context.Context, id uuid.UUID, update models.BlogPostUpdate) (Mutation[*models.BlogPost], error) {
	o := outcome{entity: cache.BlogPosts, noun: "post", action: "update", success: "Post updated successfully", failure: "update post"}
	err := firstError(
		keepRequired("title_en", update.TitleEn),
		keepRequired("title_vi", update.TitleVi),
		keepRequired("content_en", update.ContentEn),
		keepRequired("content_vi", update.ContentVi),
		keepRequired("slug", update.Slug),
	)
	if err == nil && update.Slug.Present() {
		err = validSlug("slug", update.Slug.Value)
	}
	if err != nil {
		return reject[*models.BlogPost](o, err)
	}
	return commit(ctx, s.cache, o, func(ctx context.Context) (*models.BlogPost, error) {
		if update.Published.Present() && update.Published.Value && !update.PublishedAt.Set {
			current, err := s.posts.FindByID(ctx, id)
			if err != nil {
				return nil, err
			}
			if current.PublishedAt == nil {
				update.PublishedAt = models.Some(s.now().UTC())
			}
		}
		return s.posts.Update(ctx, id, update)
	})
}

func (s *BlogService) Delete(ctx context.Context, id uuid.UUID) (Mutation[uuid.UUID], error) {
	o := outcome{entity: cache.BlogPosts, noun: "post", action: "delete", success: "Post deleted successfully", failure: "delete post"}
	return commit(ctx, s.cache, o, func(ctx context.Context) (uuid.UUID, error) {
		return id, s.posts.Delete(ctx, id)
	})
}

func (s *BlogService) TogglePublished(ctx context.Context, id uuid.UUID) (Mutation[*models.BlogPost], error) {
	o := outcome{entity: cache.BlogPosts, noun: "post", action: "toggle_published", success: "Post status updated", failure: "update status"}
	return commit(ctx, s.cache, o, func(ctx context.Context) (*models.BlogPost, error) {
		return s.posts.TogglePublished(ctx, id)
	})
}

func (s *BlogService) ToggleFeatured(ctx context.Context, id uuid.UUID) (Mutation[*models.BlogPost], error) {
	o := outcome{entity: cache.BlogPosts, noun: "post", action: "toggle_featured", success: "Post featured status updated", failure: "update featured status"}
	return commit(ctx, s.cache, o, func(ctx context.Context) (*models.BlogPost, error) {
		return s.posts.ToggleFeatured(ctx, id)
	})
}

func (s *BlogService) Tags(ctx context.Context) ([]*models.BlogTag, error) {
	return cache.Fetch(ctx, s.cache, cache.NewKey(cache.BlogTags), s.tags.FindAll)
}

func (s *BlogService) TagsForPost(ctx context.Context, postID uuid.UUID) ([]models.BlogTag, error) {
	return cache.Fetch(ctx, s.cache, cache.NewKey(cache.BlogTags, "post", postID), func(ctx context.Context) ([]models.BlogTag, error) {
		return s.tags.FindForPost(ctx, postID)
	})
}

// CreateTag stores a tag, deriving the slug from name_en when it is blank.
func (s *BlogService) CreateTag(ctx context.Context, tag *models.BlogTag) (Mutation[*models.BlogTag], error) {
	o := outcome{entity: cache.BlogTags, noun: "tag", action: "create", success: "Tag created successfully", failure: "create tag"}
	if tag.Slug == "" {
		tag.Slug = Slugify(tag.NameEn)
	}
	if err := firstError(
		required("name_en", tag.NameEn),
		required("name_vi", tag.NameVi),
		validSlug("slug", tag.Slug),
	); err != nil {
		return reject[*models.BlogTag](o, err)
	}
	return commit(ctx, s.cache, o, func(ctx context.Context) (*models.BlogTag, error) {
		return tag, s.tags.Create(ctx, tag)
	})
}

// DeleteTag removes a tag and its links, so post listings are invalidated too.
func (s *BlogService) DeleteTag(ctx context.Context, id uuid.UUID) (Mutation[uuid.UUID], error) {
	o := outcome{entity: cache.BlogTags, noun: "tag", action: "delete", success: "Tag deleted successfully", failure: "delete tag", also: []cache.Entity{cache.BlogPosts}}
	return commit(ctx, s.cache, o, func(ctx context.Context) (uuid.UUID, error) {
		return id, s.tags.Delete(ctx, id)
	})
}

// ReplacePostTags makes tagIDs the exact tag set of the post.
func (s *BlogService) ReplacePostTags(ctx context.Context, postID uuid.UUID, tagIDs []uuid.UUID) (Mutation[[]models.BlogTag], error) {
	o := outcome{entity: cache.BlogPosts, noun: "post", action: "relink_tags", success: "Post tags updated successfully", failure: "update post tags", also: []cache.Entity{cache.BlogTags}}
	return commit(ctx, s.cache, o, func(ctx context.Context) ([]models.BlogTag, error) {
		if err := s.tags.ReplacePostTags(ctx, postID, tagIDs); err != nil {
			return nil, err
		}
		return s.tags.FindForPost(ctx, postID)
	})
}

func (s *BlogService) LinkPostToTags(ctx context.Context, postID uuid.UUID, tagIDs []uuid.UUID) (Mutation[[]models.BlogTag], error) {
	o := outcome{entity: cache.BlogPosts, noun: "post", action: "link_tags", success: "Post tags updated successfully", failure: "update post tags", also: []cache.Entity{cache.BlogTags}}
	return commit(ctx, s.cache, o, func(ctx context.Context) ([]models.BlogTag, error) {
		if err := s.tags.LinkPostToTags(ctx, postID, tagIDs); err != nil {
			return nil, err
		}
		return s.tags.FindForPost(ctx, postID)
	})
}

func (s *BlogService) UnlinkPostFromTag(ctx context.Context, postID, tagID uuid.UUID) (Mutation[[]models.BlogTag], error) {
	o := outcome{entity: cache.BlogPosts, noun: "post", action: "unlink_tag", success: "Post tags updated successfully", failure: "update post tags", also: []cache.Entity{cache.BlogTags}}
	return commit(ctx, s.cache, o, func(ctx context.Context) ([]models.BlogTag, error) {
		if err := s.tags.UnlinkPostFromTag(ctx, postID, tagID); err != nil {
			return nil, err
		}
		return s.tags.FindForPost(ctx, postID)
	})
}

// ReadingTime estimates minutes of reading for content, at least one.
func ReadingTime(content string) int {
	words := len(strings.Fields(content))
	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		return 1
	}
	return minutes
}
