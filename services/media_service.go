package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/bilingual-portfolio-backend/cache"
	"github.com/rpupo63/bilingual-portfolio-backend/database"
	"github.com/rpupo63/bilingual-portfolio-backend/errs"
	"github.com/rpupo63/bilingual-portfolio-backend/models"
	"github.com/rs/zerolog/log"
)

const DefaultMaxUploadBytes int64 = 10 * 1024 * 1024

// AcceptedMediaTypes are the file_type prefixes the library takes uploads for.
var AcceptedMediaTypes = []string{"image/", "video/"}

// ObjectStore is the bucket uploaded media lives in.
type ObjectStore interface {
	Upload(ctx context.Context, path string, body io.Reader, size int64, contentType string) error
	Delete(ctx context.Context, path string) error
	PublicURL(path string) string
	ObjectPath(publicURL string) (string, bool)
}

// Upload is one file sent to the media library.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
	AltTextEn   *string
	AltTextVi   *string
	UploadedBy  *uuid.UUID
}

type MediaService struct {
	cache    *cache.Cache
	repo     *database.MediaRepo
	objects  ObjectStore
	maxBytes int64
	now      func() time.Time
}

func (s *MediaService) MaxUploadBytes() int64 {
	return s.maxBytes
}

func (s *MediaService) All(ctx context.Context) ([]*models.MediaItem, error) {
	return cache.Fetch(ctx, s.cache, cache.NewKey(cache.Media), s.repo.FindAll)
}

// ByType returns items whose file_type equals fileType exactly.
func (s *MediaService) ByType(ctx context.Context, fileType string) ([]*models.MediaItem, error) {
	if fileType == "" {
		return s.All(ctx)
	}
	return cache.Fetch(ctx, s.cache, cache.NewKey(cache.Media, fileType), func(ctx context.Context) ([]*models.MediaItem, error) {
		return s.repo.FindByType(ctx, fileType)
	})
}

// Create records metadata for an object that is already stored.
func (s *MediaService) Create(ctx context.Context, item *models.MediaItem) (Mutation[*models.MediaItem], error) {
	o := outcome{entity: cache.Media, noun: "media item", action: "create", success: "Media item created successfully", failure: "create media item"}
	if err := firstError(
		required("filename", item.Filename),
		required("url", item.URL),
	); err != nil {
		return reject[*models.MediaItem](o, err)
	}
	return commit(ctx, s.cache, o, func(ctx context.Context) (*models.MediaItem, error) {
		return item, s.repo.Create(ctx, item)
	})
}

// Upload checks the size ceiling, stores the file under a generated unique
// path and records its metadata with the public URL. The object is removed
// again when the metadata row cannot be written.
func (s *MediaService) Upload(ctx context.Context, in Upload) (Mutation[*models.MediaItem], error) {
	o := outcome{entity: cache.Media, noun: "media item", action: "upload", success: "File uploaded successfully", failure: "upload file"}
	if in.Size > s.maxBytes {
		return reject[*models.MediaItem](o, errs.NewMaxBodySizeExceededError(s.maxBytes))
	}
	if err := required("filename", in.Filename); err != nil {
		return reject[*models.MediaItem](o, err)
	}
	if in.Body == nil {
		return reject[*models.MediaItem](o, errs.NewMissingRequiredFieldError("file"))
	}
	if s.objects == nil {
		return reject[*models.MediaItem](o, errs.NewExternalServiceError("storage", errors.New("media bucket is not configured")))
	}

	contentType := in.ContentType
	if contentType == "" || contentType == "application/octet-stream" {
		if byExt := mime.TypeByExtension(filepath.Ext(in.Filename)); byExt != "" {
			contentType = byExt
		}
	}
	if !acceptedMediaType(contentType) {
		return reject[*models.MediaItem](o, errs.NewUnsupportedMediaTypeError(contentType, AcceptedMediaTypes))
	}
	path := s.objectPath(in.Filename)

	return commit(ctx, s.cache, o, func(ctx context.Context) (*models.MediaItem, error) {
		// one byte past the ceiling is enough to detect an understated size
		body := io.LimitReader(in.Body, s.maxBytes+1)
		counted := &countingReader{r: body}
		if err := s.objects.Upload(ctx, path, counted, in.Size, contentType); err != nil {
			return nil, errs.NewStorageUploadError(path, err)
		}
		if counted.n > s.maxBytes {
			s.removeObject(ctx, path)
			return nil, errs.NewMaxBodySizeExceededError(s.maxBytes)
		}

		size := counted.n
		item := &models.MediaItem{
			Filename:   in.Filename,
			URL:        s.objects.PublicURL(path),
			FileSize:   &size,
			AltTextEn:  in.AltTextEn,
			AltTextVi:  in.AltTextVi,
			UploadedBy: in.UploadedBy,
		}
		if contentType != "" {
			item.FileType = &contentType
		}
		if err := s.repo.Create(ctx, item); err != nil {
			s.removeObject(ctx, path)
			return nil, err
		}
		return item, nil
	})
}

func (s *MediaService) Update(ctx context.Context, id uuid.UUID, update models.MediaItemUpdate) (Mutation[*models.MediaItem], error) {
	o := outcome{entity: cache.Media, noun: "media item", action: "update", success: "Media item updated successfully", failure: "update media item"}
	if err := keepRequired("filename", update.Filename); err != nil {
		return reject[*models.MediaItem](o, err)
	}
	return commit(ctx, s.cache, o, func(ctx context.Context) (*models.MediaItem, error) {
		return s.repo.Update(ctx, id, update)
	})
}

// Delete removes the metadata row, then the stored object when the URL points
// into the media bucket. A failed object removal is logged only.
func (s *MediaService) Delete(ctx context.Context, id uuid.UUID) (Mutation[uuid.UUID], error) {
	o := outcome{entity: cache.Media, noun: "media item", action: "delete", success: "Media item deleted successfully", failure: "delete media item"}
	return commit(ctx, s.cache, o, func(ctx context.Context) (uuid.UUID, error) {
		item, err := s.repo.FindByID(ctx, id)
		if err != nil {
			return uuid.Nil, err
		}
		if err := s.repo.Delete(ctx, id); err != nil {
			return uuid.Nil, err
		}
		if s.objects != nil {
			if path, ok := s.objects.ObjectPath(item.URL); ok {
				s.removeObject(ctx, path)
			}
		}
		return id, nil
	})
}

// objectPath builds {random}-{unix millis}{.ext} from the uploaded filename.
func (s *MediaService) objectPath(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return fmt.Sprintf("%s-%d%s", uuid.NewString(), s.now().UnixMilli(), ext)
}

func (s *MediaService) removeObject(ctx context.Context, path string) {
	if err := s.objects.Delete(context.WithoutCancel(ctx), path); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("Failed to remove stored media object")
	}
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

// FilterMedia keeps the items matching kind and query. kind "" or "all"
// matches every item, otherwise file_type must start with it ("image",
// "video"). query matches the filename or either alt text, ignoring case.
func FilterMedia(items []*models.MediaItem, kind, query string) []*models.MediaItem {
	query = strings.ToLower(strings.TrimSpace(query))
	out := make([]*models.MediaItem, 0, len(items))
	for _, item := range items {
		if kind != "" && kind != "all" {
			if item.FileType == nil || !strings.HasPrefix(*item.FileType, kind) {
				continue
			}
		}
		if query != "" && !mediaMatches(item, query) {
			continue
		}
		out = append(out, item)
	}
	return out
}

func mediaMatches(item *models.MediaItem, query string) bool {
	if strings.Contains(strings.ToLower(item.Filename), query) {
		return true
	}
	for _, alt := range []*string{item.AltTextEn, item.AltTextVi} {
		if alt != nil && strings.Contains(strings.ToLower(*alt), query) {
			return true
		}
	}
	return false
}

func acceptedMediaType(contentType string) bool {
	for _, prefix := range AcceptedMediaTypes {
		if strings.HasPrefix(contentType, prefix) {
			return true
		}
	}
	return false
}
