package wave

import (
	"context"
	"testing"
	"time"

	"github.com/dnldd/elliott/shared"
	"github.com/peterldowns/testy/assert"
	"github.com/rs/zerolog/log"
)

// setupManager initializes a wave manager for testing, relaying stored
// results on the returned channel.
func setupManager() (*Manager, chan *shared.WaveAnalysisResult) {
	stored := make(chan *shared.WaveAnalysisResult, 8)
	storeResult := func(result *shared.WaveAnalysisResult) error {
		stored <- result
		return nil
	}

	cfg := &ManagerConfig{
		StoreResult: storeResult,
		Logger:      &log.Logger,
	}

	return NewManager(cfg), stored
}

func TestManager(t *testing.T) {
	mgr, stored := setupManager()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Ensure the manager can be run.
	done := make(chan struct{})
	go func() {
		mgr.Run(ctx)
		close(done)
	}()

	// Ensure the manager processes analysis requests and relays the
	// result to both the requester and the result store.
	bars := barsFromValues(vShapeValues())
	req := shared.NewAnalysisRequest(testMarket, shared.OneDay, bars, nil)
	mgr.SendAnalysisRequest(req)

	var result *shared.WaveAnalysisResult
	select {
	case result = <-req.Response:
	case <-time.After(shared.TimeoutDuration):
		t.Fatal("timed out waiting for an analysis response")
	}

	assert.Equal(t, result.Market, testMarket)
	assert.Equal(t, len(result.Waves), 1)
	assert.Equal(t, result.Waves[0].Number, shared.W1)

	select {
	case storedResult := <-stored:
		assert.Equal(t, storedResult.ID, result.ID)
	case <-time.After(shared.TimeoutDuration):
		t.Fatal("timed out waiting for a stored result")
	}

	// Ensure the last result for an analyzed market can be fetched.
	lastReq := shared.NewLastResultRequest(testMarket, shared.OneDay)
	mgr.SendLastResultRequest(lastReq)

	select {
	case last := <-lastReq.Response:
		assert.NotNil(t, last)
		assert.Equal(t, last.ID, result.ID)
	case <-time.After(shared.TimeoutDuration):
		t.Fatal("timed out waiting for a last result response")
	}

	// Ensure fetching the last result for an unknown market returns
	// nothing.
	unknownReq := shared.NewLastResultRequest("TSLA", shared.OneHour)
	mgr.SendLastResultRequest(unknownReq)

	select {
	case last := <-unknownReq.Response:
		assert.Nil(t, last)
	case <-time.After(shared.TimeoutDuration):
		t.Fatal("timed out waiting for a last result response")
	}

	assert.Equal(t, mgr.ProcessedAnalyses(), int64(1))

	cancel()
	<-done
}

func TestFillManagerChannels(t *testing.T) {
	mgr, _ := setupManager()

	bars := barsFromValues(vShapeValues())

	// Fill all the channels used by the manager.
	for range bufferSize + 1 {
		mgr.SendAnalysisRequest(shared.NewAnalysisRequest(testMarket, shared.OneDay, bars, nil))
		mgr.SendLastResultRequest(shared.NewLastResultRequest(testMarket, shared.OneDay))
	}

	assert.Equal(t, len(mgr.analysisRequests), bufferSize)
	assert.Equal(t, len(mgr.lastResultRequests), bufferSize)
}

func TestHandleAnalysisRequest(t *testing.T) {
	mgr, stored := setupManager()

	// Ensure analysis requests are processed directly with the snapshot
	// updated before the response is relayed.
	bars := barsFromValues(zigzagValues())
	req := shared.NewAnalysisRequest(testMarket, shared.OneDay, bars, nil)

	err := mgr.handleAnalysisRequest(req)
	assert.NoError(t, err)

	result := <-req.Response
	assert.Equal(t, len(result.Waves), 11)
	<-stored

	snapshot, err := mgr.fetchSnapshot(shared.MarketKey(testMarket, shared.OneDay))
	assert.NoError(t, err)
	assert.NotNil(t, snapshot.Last())
	assert.Equal(t, snapshot.Last().ID, result.ID)
	assert.Equal(t, mgr.ProcessedAnalyses(), int64(1))
}
