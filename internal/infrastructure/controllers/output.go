package controllers

import (
	"fmt"
	"io"
	"text/tabwriter"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rios0rios0/reftrack/internal/domain/entities"
)

const (
	outputText = "text"
	outputYAML = "yaml"
)

// resultView is the printable form of a TrackResult.
type resultView struct {
	Reference      string    `yaml:"reference"`
	Status         string    `yaml:"status"`
	After          string    `yaml:"after"`
	RequiresUpdate bool      `yaml:"requires_update"`
	Error          string    `yaml:"error,omitempty"`
	Hops           []hopView `yaml:"hops,omitempty"`
}

type hopView struct {
	Revision    string `yaml:"revision,omitempty"`
	Path        string `yaml:"path"`
	Uncommitted bool   `yaml:"uncommitted,omitempty"`
}

func newResultView(result entities.TrackResult) resultView {
	view := resultView{
		Reference:      result.Reference.String(),
		Status:         result.Status(),
		After:          result.AfterPath(),
		RequiresUpdate: result.RequiresUpdate(),
	}
	if result.Err != nil {
		view.Error = result.Err.Error()
	}

	var change *entities.FileChange
	switch {
	case result.LineChange != nil:
		change = &result.LineChange.FileChange
	case result.LinesChange != nil:
		change = &result.LinesChange.FileChange
	default:
		change = result.FileChange
	}
	if change != nil {
		for _, hop := range change.HistoryHops {
			view.Hops = append(view.Hops, hopView{
				Revision:    hop.Revision,
				Path:        hop.Path,
				Uncommitted: hop.FromUncommittedState,
			})
		}
	}
	return view
}

// printResults writes results in the format selected by --output.
func printResults(out io.Writer, format string, results []entities.TrackResult) error {
	views := make([]resultView, 0, len(results))
	for _, result := range results {
		views = append(views, newResultView(result))
	}

	switch format {
	case outputYAML:
		encoder := yaml.NewEncoder(out)
		defer encoder.Close()
		return encoder.Encode(views)
	case outputText, "":
		writer := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		for _, view := range views {
			after := view.After
			if view.Error != "" {
				after = view.Error
			}
			fmt.Fprintf(writer, "%s\t%s\t%s\n", view.Reference, view.Status, after)
		}
		return writer.Flush()
	default:
		return fmt.Errorf("unknown output format %q, expected %q or %q", format, outputText, outputYAML)
	}
}

// loadSettings reads --config or the auto-detected file. When required is false and
// no file is found, the defaults are used.
func loadSettings(cmd *cobra.Command, required bool) (*entities.Settings, error) {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		var err error
		configPath, err = entities.FindConfigFile()
		if err != nil {
			if required {
				return nil, fmt.Errorf(
					"no config file found: %w\nSpecify one with --config or create .reftrack.yaml", err)
			}
			logger.Debug("No config file found, using defaults")
			return entities.DefaultSettings(), nil
		}
	}

	logger.Infof("Using config file: %s", configPath)
	return entities.NewSettings(configPath)
}
