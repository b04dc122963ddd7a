package news

import (
	"context"
	"fmt"

	"NetShield/internal/domain"
)

// Scanner captures a single news-provider strategy (Google News, a
// regional outlet search page, etc.).
type Scanner interface {
	Name() string
	Search(ctx context.Context, query string, limit int) ([]domain.NewsSnippet, error)
}

// Registry keeps a mapping from scanner names to their implementations.
type Registry struct {
	scanners map[string]Scanner
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{scanners: map[string]Scanner{}}
}

// Register adds or replaces a scanner implementation.
func (r *Registry) Register(scanner Scanner) {
	if r.scanners == nil {
		r.scanners = map[string]Scanner{}
	}
	r.scanners[scanner.Name()] = scanner
}

// Resolve returns a scanner by name or an error if it is absent.
func (r *Registry) Resolve(name string) (Scanner, error) {
	if scanner, ok := r.scanners[name]; ok {
		return scanner, nil
	}
	return nil, fmt.Errorf("news scanner %s is not registered", name)
}
