package repositories

import (
	"go.uber.org/dig"

	gitRepo "github.com/rios0rios0/reftrack/internal/infrastructure/repositories/git"
)

// RegisterProviders registers all repository providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register history registry with all backend factories
	if err := container.Provide(func() *HistoryRegistry {
		reg := NewHistoryRegistry()
		reg.Register("git", gitRepo.NewHistoryRepository)
		return reg
	}); err != nil {
		return err
	}

	return nil
}
