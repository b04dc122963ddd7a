package news

import (
	"context"
	"log/slog"

	"NetShield/internal/config"
	"NetShield/internal/domain"
	"NetShield/internal/ports"
)

// Source implements ports.NewsSource by folding the configured provider
// strategies. Per-provider failures are logged and swallowed so the
// pipeline always sees the uniform empty-result contract.
type Source struct {
	registry *Registry
	sites    []config.NewsSiteConfig
	logger   *slog.Logger
}

var _ ports.NewsSource = (*Source)(nil)

// NewSource wires the scanner registry with config-defined providers.
func NewSource(reg *Registry, sites []config.NewsSiteConfig, log *slog.Logger) *Source {
	return &Source{
		registry: reg,
		sites:    sites,
		logger:   log,
	}
}

// Search queries each configured provider until limit snippets are
// collected. It never returns an error; an upstream failure contributes
// zero snippets.
func (s *Source) Search(ctx context.Context, query string, limit int) ([]domain.NewsSnippet, error) {
	if s.registry == nil || limit <= 0 {
		return nil, nil
	}

	var collected []domain.NewsSnippet
	for _, site := range s.sites {
		if len(collected) >= limit {
			break
		}

		strategy, err := s.registry.Resolve(site.Scanner)
		if err != nil {
			s.warn("provider not registered", "site", site.Name, "scanner", site.Scanner)
			continue
		}

		results, err := strategy.Search(ctx, query, limit-len(collected))
		if err != nil {
			s.warn("provider search failed", "site", site.Name, "query", query, "error", err)
			continue
		}

		s.debug("provider produced snippets", "site", site.Name, "count", len(results))
		collected = append(collected, results...)
	}

	return collected, nil
}

func (s *Source) warn(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Warn(msg, args...)
	}
}

func (s *Source) debug(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}
