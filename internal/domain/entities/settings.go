package entities

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	defaultSimilarity   = 60
	defaultContextLines = 3
	defaultShingleSize  = 2
	defaultHashBits     = 32
	maxHashBits         = 64
	defaultMappingFloor = 0.45
	defaultMappingMatch = 0.65
	defaultSplitMatch   = 0.85
	maxPercentage       = 100
)

// Settings is the top-level configuration for reftrack.
type Settings struct {
	Repository string             `yaml:"repository"`
	Backend    string             `yaml:"backend"`
	Similarity SimilaritySettings `yaml:"similarity"`
	Tracking   TrackingSettings   `yaml:"tracking"`
	References []ReferenceConfig  `yaml:"references"`
}

// SimilaritySettings holds the percentage thresholds used while resolving history.
type SimilaritySettings struct {
	File      int `yaml:"file"`      // rename-detection score passed to the history query
	Directory int `yaml:"directory"` // share of files that must land under one parent
	Line      int `yaml:"line"`
}

// TrackingSettings tunes the line relocation algorithm.
type TrackingSettings struct {
	ContextLines  int     `yaml:"context_lines"`
	ShingleSize   int     `yaml:"shingle_size"`
	HashBits      int     `yaml:"hash_bits"`
	RoundScores   bool    `yaml:"round_scores"`
	MappingFloor  float64 `yaml:"mapping_floor"`
	MappingAccept float64 `yaml:"mapping_accept"`
	SplitAccept   float64 `yaml:"split_accept"`
}

// ReferenceConfig is one reference tracked by the batch run.
type ReferenceConfig struct {
	Path     string `yaml:"path"`
	Revision string `yaml:"revision"`
}

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)}`)

// DefaultSettings returns the settings used when no file overrides them.
func DefaultSettings() *Settings {
	return &Settings{
		Repository: ".",
		Backend:    "git",
		Similarity: SimilaritySettings{
			File:      defaultSimilarity,
			Directory: defaultSimilarity,
			Line:      defaultSimilarity,
		},
		Tracking: TrackingSettings{
			ContextLines:  defaultContextLines,
			ShingleSize:   defaultShingleSize,
			HashBits:      defaultHashBits,
			RoundScores:   true,
			MappingFloor:  defaultMappingFloor,
			MappingAccept: defaultMappingMatch,
			SplitAccept:   defaultSplitMatch,
		},
	}
}

// NewSettings reads and parses a configuration file on top of the defaults.
func NewSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	settings := DefaultSettings()
	if unmarshalErr := yaml.Unmarshal(data, settings); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", unmarshalErr)
	}
	settings.Repository = expandEnv(settings.Repository)

	if validateErr := settings.Validate(); validateErr != nil {
		return nil, validateErr
	}
	return settings, nil
}

// FindConfigFile searches for a configuration file in standard locations.
func FindConfigFile() (string, error) {
	locations := []string{".", ".config", "configs"}
	if homeDir, err := os.UserHomeDir(); err == nil && homeDir != "" {
		locations = append(locations, homeDir, filepath.Join(homeDir, ".config"))
	}

	patterns := []string{
		".reftrack.yaml",
		".reftrack.yml",
		"reftrack.yaml",
		"reftrack.yml",
	}

	for _, loc := range locations {
		for _, pat := range patterns {
			p := filepath.Join(loc, pat)
			if _, statErr := os.Stat(p); statErr == nil {
				return p, nil
			}
		}
	}

	return "", errors.New("config file not found in default locations")
}

// Validate checks that every threshold lies in its range.
func (it *Settings) Validate() error {
	for key, value := range map[string]int{
		"similarity.file":      it.Similarity.File,
		"similarity.directory": it.Similarity.Directory,
		"similarity.line":      it.Similarity.Line,
	} {
		if value < 0 || value > maxPercentage {
			return fmt.Errorf("%s must be between 0 and 100, got %d", key, value)
		}
	}

	if it.Tracking.ContextLines < 0 {
		return fmt.Errorf("tracking.context_lines must not be negative, got %d", it.Tracking.ContextLines)
	}
	if it.Tracking.ShingleSize < 1 {
		return fmt.Errorf("tracking.shingle_size must be at least 1, got %d", it.Tracking.ShingleSize)
	}
	if it.Tracking.HashBits < 1 || it.Tracking.HashBits > maxHashBits {
		return fmt.Errorf("tracking.hash_bits must be between 1 and 64, got %d", it.Tracking.HashBits)
	}

	for key, value := range map[string]float64{
		"tracking.mapping_floor":  it.Tracking.MappingFloor,
		"tracking.mapping_accept": it.Tracking.MappingAccept,
		"tracking.split_accept":   it.Tracking.SplitAccept,
	} {
		if value < 0 || value > 1 {
			return fmt.Errorf("%s must be between 0 and 1, got %v", key, value)
		}
	}

	for i, ref := range it.References {
		if ref.Path == "" {
			return fmt.Errorf("references[%d].path is required", i)
		}
	}
	return nil
}

// expandEnv expands ${VAR} placeholders, warning about unset variables.
func expandEnv(raw string) string {
	return envVarPattern.ReplaceAllStringFunc(raw, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		logger.Warnf("Environment variable %q is not set", varName)
		return ""
	})
}
