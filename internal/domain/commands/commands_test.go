//go:build unit

package commands_test

import (
	"github.com/rios0rios0/reftrack/internal/domain/entities"
	"github.com/rios0rios0/reftrack/internal/domain/repositories"
	infraRepos "github.com/rios0rios0/reftrack/internal/infrastructure/repositories"
	doubles "github.com/rios0rios0/reftrack/test/infrastructure/repositorydoubles"
)

// mainGoHistory is a file that got two lines prepended in its second commit.
func mainGoHistory() *doubles.SpyHistoryRepository {
	return &doubles.SpyHistoryRepository{
		Head: "c2",
		ChangeLogs: map[string][]string{
			"main.go": {"Commit: c1", "A\tmain.go", "Commit: c2", "M\tmain.go"},
			"old.go":  {"Commit: c1", "A\told.go", "Commit: c2", "D\told.go"},
		},
		Files: map[string]string{
			doubles.RevisionKey("c1", "main.go"): "alpha\nbeta\ngamma\n",
			doubles.RevisionKey("c2", "main.go"): "// header\n\nalpha\nbeta\ngamma\n",
			doubles.RevisionKey("c1", "old.go"):  "package old\n",
		},
	}
}

func stubRegistry(repository repositories.HistoryRepository) *infraRepos.HistoryRegistry {
	registry := infraRepos.NewHistoryRegistry()
	registry.Register("stub", func(_ string) (repositories.HistoryRepository, error) {
		return repository, nil
	})
	return registry
}

func stubSettings() *entities.Settings {
	settings := entities.DefaultSettings()
	settings.Backend = "stub"
	return settings
}
