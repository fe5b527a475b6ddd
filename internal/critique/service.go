package critique

import (
	"context"
	"fmt"
	"time"

	zlog "github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/digietal/artgallery/internal/gallery"
)

// DefaultTimeout bounds one critique, image download included.
const DefaultTimeout = 30 * time.Second

// Options configures a Service.
type Options struct {
	Timeout           time.Duration
	RequestsPerMinute int
	MaxImageBytes     int64
}

// Service is the critique collaborator seen by the UI: artwork in, prose or error out.
// A nil provider means the feature is disabled.
type Service struct {
	provider Provider
	fetcher  *Fetcher
	limiter  *rate.Limiter
	timeout  time.Duration
}

func NewService(p Provider, opts Options) *Service {
	s := &Service{
		provider: p,
		fetcher:  &Fetcher{MaxBytes: opts.MaxImageBytes},
		timeout:  opts.Timeout,
	}
	if s.timeout <= 0 {
		s.timeout = DefaultTimeout
	}
	if opts.RequestsPerMinute > 0 {
		s.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(opts.RequestsPerMinute)), 1)
	}
	return s
}

// SetFetcher replaces the image fetcher.
func (s *Service) SetFetcher(f *Fetcher) { s.fetcher = f }

func (s *Service) Enabled() bool { return s != nil && s.provider != nil }

// Critique fetches the artwork's image and asks the provider for a critique.
// There is no retry.
func (s *Service) Critique(ctx context.Context, a gallery.Artwork) (string, error) {
	if !s.Enabled() {
		return "", ErrDisabled
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("critique: %w", err)
		}
	}
	data, mime, err := s.fetcher.Fetch(ctx, a.ImageURL)
	if err != nil {
		return "", err
	}
	start := time.Now()
	text, err := s.provider.Critique(ctx, Request{
		Title:       a.Title,
		Artist:      a.Artist,
		Description: a.Description,
		Image:       data,
		MIMEType:    mime,
	})
	if err != nil {
		zlog.Warn().Err(err).Str("artwork_id", a.ID).Msg("critique failed")
		return "", err
	}
	zlog.Info().Str("artwork_id", a.ID).Dur("took", time.Since(start)).Int("chars", len(text)).Msg("critique ready")
	return text, nil
}
