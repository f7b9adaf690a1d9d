package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/dnldd/elliott/shared"
	"github.com/dnldd/elliott/wave"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"
)

// AnalysisConfig represents the configuration struct for the analysis
// service.
type AnalysisConfig struct {
	// Markets restricts the analysis to the provided markets, all
	// discovered markets are analyzed when empty.
	Markets []string
	// DataDir is the path to the directory holding market history files.
	DataDir string
	// InsightDir is the path to the directory holding external insight
	// payloads.
	InsightDir string
	// OutputDir is the path to the directory results are written to.
	OutputDir string
	// Cancel is the context cancellation function.
	Cancel context.CancelFunc
}

// Validate asserts the config sane inputs.
func (cfg *AnalysisConfig) Validate() error {
	var errs error

	if cfg.DataDir == "" {
		errs = errors.Join(errs, fmt.Errorf("data directory cannot be an empty string"))
	}
	if cfg.OutputDir == "" {
		errs = errors.Join(errs, fmt.Errorf("output directory cannot be an empty string"))
	}
	if cfg.Cancel == nil {
		errs = errors.Join(errs, fmt.Errorf("context cancellation function cannot be nil"))
	}

	return errs
}

// Analysis represents a wave analysis service.
type Analysis struct {
	cfg       *AnalysisConfig
	histories []*shared.MarketHistory
	insights  shared.InsightSource
	sink      shared.ResultSink
	manager   *wave.Manager
	logger    *zerolog.Logger
	wg        sync.WaitGroup
}

// loadHistories loads all market history files from the provided directory,
// optionally filtered to the provided markets.
func loadHistories(dir string, markets []string, logger *zerolog.Logger) ([]*shared.MarketHistory, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading data directory '%s': %v", dir, err)
	}

	wanted := make(map[string]bool)
	for idx := range markets {
		wanted[markets[idx]] = true
	}

	histories := make([]*shared.MarketHistory, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		historyLogger := logger.With().Str("component", "markethistory").Logger()
		history, err := shared.NewMarketHistory(&shared.MarketHistoryConfig{
			FilePath: filepath.Join(dir, entry.Name()),
			Logger:   &historyLogger,
		})
		if err != nil {
			return nil, fmt.Errorf("loading market history '%s': %v", entry.Name(), err)
		}

		if len(wanted) > 0 && !wanted[history.FetchMarket()] {
			continue
		}

		histories = append(histories, history)
	}

	if len(histories) == 0 {
		return nil, fmt.Errorf("no market history files found in '%s'", dir)
	}

	return histories, nil
}

// NewAnalysis initializes a new analysis service.
func NewAnalysis(cfg *AnalysisConfig) (*Analysis, error) {
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack

	logger := log.With().Str("service", "analysis").Logger()

	err := cfg.Validate()
	if err != nil {
		return nil, err
	}

	histories, err := loadHistories(cfg.DataDir, cfg.Markets, &logger)
	if err != nil {
		return nil, err
	}

	var insights shared.InsightSource
	if cfg.InsightDir != "" {
		insightLogger := logger.With().Str("component", "insightdir").Logger()
		insights, err = shared.NewInsightDir(&shared.InsightDirConfig{
			DirPath: cfg.InsightDir,
			Logger:  &insightLogger,
		})
		if err != nil {
			return nil, fmt.Errorf("creating insight source: %v", err)
		}
	}

	sinkLogger := logger.With().Str("component", "resultsink").Logger()
	sink, err := shared.NewFileResultSink(&shared.FileResultSinkConfig{
		DirPath: cfg.OutputDir,
		Logger:  &sinkLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("creating result sink: %v", err)
	}

	managerLogger := logger.With().Str("component", "wavemanager").Logger()
	manager := wave.NewManager(&wave.ManagerConfig{
		StoreResult: sink.StoreResult,
		Progress: func(pivots int) {
			managerLogger.Debug().Msgf("wave analysis progress: %d pivots detected", pivots)
		},
		Logger: &managerLogger,
	})

	service := &Analysis{
		cfg:       cfg,
		histories: histories,
		insights:  insights,
		sink:      sink,
		manager:   manager,
		logger:    &logger,
	}

	return service, nil
}

// fetchInsight returns the insight payload for the provided market, if any.
func (a *Analysis) fetchInsight(market string) []byte {
	if a.insights == nil {
		return nil
	}

	payload, found, err := a.insights.FetchInsight(market)
	if err != nil {
		a.logger.Error().Msgf("fetching insight for %s: %v", market, err)
		return nil
	}
	if !found {
		return nil
	}

	return payload
}

// analyzeMarkets runs wave analysis for every loaded market across all of
// its timeframes.
func (a *Analysis) analyzeMarkets(ctx context.Context) {
	for _, history := range a.histories {
		market := history.FetchMarket()
		insight := a.fetchInsight(market)

		for _, timeframe := range history.FetchTimeframes() {
			bars, err := history.FetchBars(timeframe)
			if err != nil {
				a.logger.Error().Msgf("fetching %s bars for %s: %v",
					timeframe.String(), market, err)
				continue
			}

			req := shared.NewAnalysisRequest(market, timeframe, bars, insight)
			a.manager.SendAnalysisRequest(req)

			select {
			case <-ctx.Done():
				return
			case result := <-req.Response:
				a.logger.Info().Msgf("%s [%s]: analysis %s done, %d waves, trend %s",
					market, timeframe.String(), result.ID, len(result.Waves),
					result.Trend.String())
			case <-time.After(shared.TimeoutDuration):
				a.logger.Error().Msgf("timed out waiting for %s [%s] analysis",
					market, timeframe.String())
			}
		}
	}
}

// Run handles the lifecycle processes of the analysis service.
func (a *Analysis) Run(ctx context.Context) {
	a.wg.Add(1)

	go func() {
		a.manager.Run(ctx)
		a.wg.Done()
	}()

	go func() {
		// wait briefly for initialization.
		time.Sleep(time.Second * 1)

		a.analyzeMarkets(ctx)
		a.logger.Info().Msgf("analysis for %d markets done, review results in %s",
			len(a.histories), a.cfg.OutputDir)
		a.cfg.Cancel()
	}()

	a.wg.Wait()
}
