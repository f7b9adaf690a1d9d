package shared

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// InsightDirConfig represents the insight directory configuration.
type InsightDirConfig struct {
	// DirPath is the path to the directory holding insight payloads.
	DirPath string
	// Logger is the insight directory logger.
	Logger *zerolog.Logger
}

// InsightDir loads external analysis payloads from a directory, one file
// per market named after it with a .json or .txt extension.
type InsightDir struct {
	cfg *InsightDirConfig
}

// Ensure InsightDir implements the InsightSource interface.
var _ InsightSource = (*InsightDir)(nil)

// NewInsightDir initializes a new insight directory source.
func NewInsightDir(cfg *InsightDirConfig) (*InsightDir, error) {
	info, err := os.Stat(cfg.DirPath)
	if err != nil {
		return nil, fmt.Errorf("loading insight directory '%s': %v", cfg.DirPath, err)
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("insight path '%s' is not a directory", cfg.DirPath)
	}

	return &InsightDir{
		cfg: cfg,
	}, nil
}

// FetchInsight returns the analysis payload for the provided market. The
// boolean reports whether a payload was found, a market without one is not
// an error.
func (d *InsightDir) FetchInsight(market string) ([]byte, bool, error) {
	names := []string{market + ".json", market + ".txt"}
	for idx := range names {
		path := filepath.Join(d.cfg.DirPath, names[idx])

		payload, err := os.ReadFile(path)
		switch {
		case err == nil:
			d.cfg.Logger.Debug().Msgf("loaded insight payload %s for %s", names[idx], market)
			return payload, true, nil
		case os.IsNotExist(err):
			continue
		default:
			return nil, false, fmt.Errorf("reading insight file '%s': %v", path, err)
		}
	}

	return nil, false, nil
}
