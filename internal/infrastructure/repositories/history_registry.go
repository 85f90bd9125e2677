package repositories

import (
	"fmt"
	"sort"

	"github.com/rios0rios0/reftrack/internal/domain/entities"
	domainRepos "github.com/rios0rios0/reftrack/internal/domain/repositories"
)

// HistoryFactory opens a history backend for the working tree at dir.
type HistoryFactory func(dir string) (domainRepos.HistoryRepository, error)

// HistoryRegistry manages all registered history backends.
type HistoryRegistry struct {
	backends map[string]HistoryFactory
}

// NewHistoryRegistry creates an empty backend registry.
func NewHistoryRegistry() *HistoryRegistry {
	return &HistoryRegistry{
		backends: make(map[string]HistoryFactory),
	}
}

// Register adds a backend factory under the given name (e.g. "git").
func (r *HistoryRegistry) Register(name string, factory HistoryFactory) {
	r.backends[name] = factory
}

// Open returns the named backend opened on dir.
func (r *HistoryRegistry) Open(name, dir string) (domainRepos.HistoryRepository, error) {
	factory, ok := r.backends[name]
	if !ok {
		return nil, entities.NewTrackingError(entities.ErrUnknownBackend, dir, fmt.Sprintf("backend %q", name))
	}
	return factory(dir)
}

// Names returns the sorted list of registered backend names.
func (r *HistoryRegistry) Names() []string {
	names := make([]string, 0, len(r.backends))
	for name := range r.backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
