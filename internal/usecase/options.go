package usecase

import (
	"time"

	"go-jobboard-backend/internal/domain"
)

type options struct {
	now      func() time.Time
	notifier domain.StatusNotifier
	pictures domain.PictureProcessor
}

// Option customises a usecase at construction time.
type Option func(*options)

// WithClock replaces time.Now. Tests use it to age job listings.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithNotifier sets who is told about recruiter-side status changes.
func WithNotifier(n domain.StatusNotifier) Option {
	return func(o *options) { o.notifier = n }
}

// WithPictureProcessor sets how uploaded profile pictures are stored.
func WithPictureProcessor(p domain.PictureProcessor) Option {
	return func(o *options) { o.pictures = p }
}

func buildOptions(opts []Option) options {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
