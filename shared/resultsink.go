package shared

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// FileResultSinkConfig represents the file result sink configuration.
type FileResultSinkConfig struct {
	// DirPath is the path to the directory results are written to.
	DirPath string
	// Logger is the result sink logger.
	Logger *zerolog.Logger
}

// FileResultSink persists analysis results as json files, one per market
// and timeframe.
type FileResultSink struct {
	cfg *FileResultSinkConfig
}

// Ensure FileResultSink implements the ResultSink interface.
var _ ResultSink = (*FileResultSink)(nil)

// NewFileResultSink initializes a new file result sink.
func NewFileResultSink(cfg *FileResultSinkConfig) (*FileResultSink, error) {
	err := os.MkdirAll(cfg.DirPath, 0o755)
	if err != nil {
		return nil, fmt.Errorf("creating results directory '%s': %v", cfg.DirPath, err)
	}

	return &FileResultSink{
		cfg: cfg,
	}, nil
}

// StoreResult persists the provided analysis result.
func (s *FileResultSink) StoreResult(result *WaveAnalysisResult) error {
	payload, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling %s [%s] result: %v",
			result.Market, result.Timeframe.String(), err)
	}

	name := fmt.Sprintf("%s-%s.json", result.Market, result.Timeframe.String())
	path := filepath.Join(s.cfg.DirPath, name)

	err = os.WriteFile(path, payload, 0o644)
	if err != nil {
		return fmt.Errorf("writing result file '%s': %v", path, err)
	}

	s.cfg.Logger.Info().Msgf("%s [%s]: %d waves, %d invalidated, %d fib targets, %s trend",
		result.Market, result.Timeframe.String(), len(result.Waves),
		len(result.InvalidWaves), len(result.FibTargets), result.Trend.String())

	return nil
}
