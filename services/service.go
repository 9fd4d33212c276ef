// Package services wraps the repositories with the read-through cache. Every
// read is cached under a key built from the operation and its parameters.
// Every write invalidates the entities it touches and carries the notice the
// admin area shows.
package services

import (
	"context"
	"time"

	"github.com/rpupo63/bilingual-portfolio-backend/cache"
	"github.com/rpupo63/bilingual-portfolio-backend/database"
	"github.com/rpupo63/bilingual-portfolio-backend/errs"
	"github.com/rpupo63/bilingual-portfolio-backend/metrics"
	"github.com/rs/zerolog/log"
)

const (
	resultSuccess  = "success"
	resultError    = "error"
	resultRejected = "rejected"
)

// Mutation is the result of a successful write: the stored record and the
// success notice.
type Mutation[T any] struct {
	Data    T      `json:"data"`
	Message string `json:"message"`
}

// outcome describes the notices and invalidations of one write operation.
type outcome struct {
	entity  cache.Entity
	// noun names the record in database errors, such as "post"
	noun    string
	action  string
	success string
	// failure completes "Failed to ..."
	failure string
	also    []cache.Entity
}

// commit runs write and, only when it succeeds, invalidates the affected
// entities. A failed write leaves the cache untouched.
func commit[T any](ctx context.Context, c *cache.Cache, o outcome, write func(context.Context) (T, error)) (Mutation[T], error) {
	data, err := write(ctx)
	if err != nil {
		metrics.RecordMutation(string(o.entity), o.action, resultError)
		return Mutation[T]{}, errs.NewMutationError(o.failure, errs.NewDatabaseError(o.action, o.noun, err))
	}

	entities := append([]cache.Entity{o.entity}, o.also...)
	if err := c.Invalidate(context.WithoutCancel(ctx), entities...); err != nil {
		log.Error().Err(err).Str("entity", string(o.entity)).Str("action", o.action).Msg("Cache invalidation failed after write")
	}

	metrics.RecordMutation(string(o.entity), o.action, resultSuccess)
	return Mutation[T]{Data: data, Message: o.success}, nil
}

// reject fails a write before any backend call.
func reject[T any](o outcome, err error) (Mutation[T], error) {
	metrics.RecordMutation(string(o.entity), o.action, resultRejected)
	return Mutation[T]{}, errs.NewMutationError(o.failure, err)
}

// Services groups one service per entity over a shared cache.
type Services struct {
	Profile     *ProfileService
	Experiences *ExperienceService
	Projects    *ProjectService
	Activities  *ActivityService
	Blog        *BlogService
	Media       *MediaService
	Settings    *SettingService
	Pages       *PageService
	Contact     *ContactService
}

type options struct {
	objects        ObjectStore
	maxUploadBytes int64
	mailer         Mailer
	contactTo      string
	now            func() time.Time
}

type Option func(*options)

// WithObjectStore sets the bucket media uploads go to.
func WithObjectStore(store ObjectStore) Option {
	return func(o *options) {
		o.objects = store
	}
}

// WithMaxUploadBytes sets the upload size ceiling.
func WithMaxUploadBytes(n int64) Option {
	return func(o *options) {
		if n > 0 {
			o.maxUploadBytes = n
		}
	}
}

// WithMailer sets the mailer contact messages are sent through. fallbackTo
// receives messages when the profile has no email.
func WithMailer(mailer Mailer, fallbackTo string) Option {
	return func(o *options) {
		o.mailer = mailer
		o.contactTo = fallbackTo
	}
}

func withClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

func New(db database.Database, c *cache.Cache, opts ...Option) *Services {
	o := options{
		maxUploadBytes: DefaultMaxUploadBytes,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}

	s := &Services{
		Profile:     &ProfileService{cache: c, repo: db.ProfileRepo()},
		Experiences: &ExperienceService{cache: c, repo: db.ExperienceRepo()},
		Projects:    &ProjectService{cache: c, repo: db.ProjectRepo()},
		Activities:  &ActivityService{cache: c, repo: db.ActivityRepo()},
		Blog:        &BlogService{cache: c, posts: db.BlogPostRepo(), tags: db.BlogTagRepo(), now: o.now},
		Media:       &MediaService{cache: c, repo: db.MediaRepo(), objects: o.objects, maxBytes: o.maxUploadBytes, now: o.now},
		Settings:    &SettingService{cache: c, repo: db.SettingRepo()},
	}
	s.Pages = &PageService{
		profile:     s.Profile,
		experiences: s.Experiences,
		projects:    s.Projects,
		activities:  s.Activities,
		blog:        s.Blog,
		settings:    s.Settings,
	}
	s.Contact = &ContactService{profile: s.Profile, mailer: o.mailer, fallbackTo: o.contactTo}
	return s
}
