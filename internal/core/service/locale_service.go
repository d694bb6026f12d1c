package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/teamsite/content-api/internal/core/domain"
	"github.com/teamsite/content-api/internal/core/ports"
)

// LocaleService manages the language tags records reference. Authentication
// for these admin operations happens at the HTTP middleware, not here.
type LocaleService struct {
	locales ports.LocaleRepository
	cache   ports.ListCache // optional
	logger  zerolog.Logger
}

func NewLocaleService(locales ports.LocaleRepository, logger zerolog.Logger) *LocaleService {
	return &LocaleService{locales: locales, logger: logger}
}

func (s *LocaleService) WithCache(cache ports.ListCache) *LocaleService {
	s.cache = cache
	return s
}

func (s *LocaleService) ListLocales(ctx context.Context) ([]domain.Locale, error) {
	if s.cache != nil {
		if locales, ok := s.cache.GetLocales(ctx); ok {
			return locales, nil
		}
	}

	locales, err := s.locales.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.SetLocales(ctx, locales)
	}
	return locales, nil
}

// CreateLocale registers a language tag; creating an existing tag is a no-op.
func (s *LocaleService) CreateLocale(ctx context.Context, language string) error {
	if language == "" {
		return &domain.MissingFieldError{Field: "locale"}
	}
	if err := s.locales.Create(ctx, language); err != nil {
		return err
	}
	if s.cache != nil {
		s.cache.DropLocales(ctx)
	}
	s.logger.Info().Str("language", language).Msg("locale created")
	return nil
}

func (s *LocaleService) DeleteLocale(ctx context.Context, language string) error {
	if err := s.locales.Delete(ctx, language); err != nil {
		return err
	}
	if s.cache != nil {
		s.cache.DropLocales(ctx)
	}
	s.logger.Info().Str("language", language).Msg("locale deleted")
	return nil
}
