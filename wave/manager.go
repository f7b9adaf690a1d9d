package wave

import (
	"context"
	"fmt"
	"sync"

	"github.com/dnldd/elliott/shared"
	"github.com/rs/zerolog"
	"go.uber.org/atomic"
)

const (
	// bufferSize is the default buffer size for channels.
	bufferSize = 64
	// maxWorkers is the maximum number of concurrent workers.
	maxWorkers = 8
)

// ManagerConfig represents the wave manager configuration.
type ManagerConfig struct {
	// StoreResult persists the provided analysis result.
	StoreResult func(result *shared.WaveAnalysisResult) error
	// Progress relays wave analysis progress updates.
	Progress ProgressFunc
	// Logger represents the application logger.
	Logger *zerolog.Logger
}

// Manager represents the wave analysis manager.
type Manager struct {
	cfg                *ManagerConfig
	analyzer           *Analyzer
	snapshots          map[string]*ResultSnapshot
	snapshotsMtx       sync.RWMutex
	analysisRequests   chan *shared.AnalysisRequest
	lastResultRequests chan *shared.LastResultRequest
	workers            chan struct{}
	processed          atomic.Int64
}

// NewManager initializes a new wave analysis manager.
func NewManager(cfg *ManagerConfig) *Manager {
	analyzerCfg := &AnalyzerConfig{
		Progress: cfg.Progress,
		Logger:   cfg.Logger,
	}

	return &Manager{
		cfg:                cfg,
		analyzer:           NewAnalyzer(analyzerCfg),
		snapshots:          make(map[string]*ResultSnapshot),
		analysisRequests:   make(chan *shared.AnalysisRequest, bufferSize),
		lastResultRequests: make(chan *shared.LastResultRequest, bufferSize),
		workers:            make(chan struct{}, maxWorkers),
	}
}

// SendAnalysisRequest relays the provided analysis request for processing.
func (m *Manager) SendAnalysisRequest(req *shared.AnalysisRequest) {
	select {
	case m.analysisRequests <- req:
		// do nothing.
	default:
		m.cfg.Logger.Error().Msgf("analysis request channel at capacity: %d/%d",
			len(m.analysisRequests), bufferSize)
	}
}

// SendLastResultRequest relays the provided last result request for processing.
func (m *Manager) SendLastResultRequest(req *shared.LastResultRequest) {
	select {
	case m.lastResultRequests <- req:
		// do nothing.
	default:
		m.cfg.Logger.Error().Msgf("last result request channel at capacity: %d/%d",
			len(m.lastResultRequests), bufferSize)
	}
}

// fetchSnapshot returns the result snapshot for the provided market key,
// creating it on first use.
func (m *Manager) fetchSnapshot(key string) (*ResultSnapshot, error) {
	m.snapshotsMtx.RLock()
	snapshot, ok := m.snapshots[key]
	m.snapshotsMtx.RUnlock()
	if ok {
		return snapshot, nil
	}

	m.snapshotsMtx.Lock()
	defer m.snapshotsMtx.Unlock()

	snapshot, ok = m.snapshots[key]
	if !ok {
		var err error
		snapshot, err = NewResultSnapshot(SnapshotSize)
		if err != nil {
			return nil, fmt.Errorf("creating result snapshot for %s: %v", key, err)
		}

		m.snapshots[key] = snapshot
	}

	return snapshot, nil
}

// handleAnalysisRequest processes the provided analysis request.
func (m *Manager) handleAnalysisRequest(req *shared.AnalysisRequest) error {
	result := m.analyzer.Analyze(req)

	snapshot, err := m.fetchSnapshot(shared.MarketKey(req.Market, req.Timeframe))
	if err != nil {
		return err
	}

	snapshot.Update(result)
	m.processed.Add(1)

	req.Response <- result.Clone()

	if m.cfg.StoreResult != nil {
		err := m.cfg.StoreResult(result.Clone())
		if err != nil {
			return fmt.Errorf("storing %s [%s] result: %v", req.Market, req.Timeframe.String(), err)
		}
	}

	return nil
}

// handleLastResultRequest processes the provided last result request.
func (m *Manager) handleLastResultRequest(req *shared.LastResultRequest) {
	var result *shared.WaveAnalysisResult

	m.snapshotsMtx.RLock()
	snapshot, ok := m.snapshots[shared.MarketKey(req.Market, req.Timeframe)]
	m.snapshotsMtx.RUnlock()

	if ok {
		last := snapshot.Last()
		if last != nil {
			result = last.Clone()
		}
	}

	req.Response <- result
}

// ProcessedAnalyses returns the number of analysis requests processed.
func (m *Manager) ProcessedAnalyses() int64 {
	return m.processed.Load()
}

// Run manages the lifecycle processes of the wave analysis manager.
func (m *Manager) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case req := <-m.analysisRequests:
			m.workers <- struct{}{}
			go func(req *shared.AnalysisRequest) {
				err := m.handleAnalysisRequest(req)
				if err != nil {
					m.cfg.Logger.Error().Err(err).Send()
				}
				<-m.workers
			}(req)
		case req := <-m.lastResultRequests:
			m.workers <- struct{}{}
			go func(req *shared.LastResultRequest) {
				m.handleLastResultRequest(req)
				<-m.workers
			}(req)
		default:
			// fallthrough
		}
	}
}
