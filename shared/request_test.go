package shared

import (
	"testing"

	"github.com/peterldowns/testy/assert"
)

func TestRequestResponse(t *testing.T) {
	// Ensure requests can be created and can receive their responses on
	// their corresponding channels.
	market := "AAPL"
	timeframe := OneDay
	bars := []PriceBar{{Timestamp: 1700000000, Open: 10, High: 12, Low: 9, Close: 11}}

	analysisReq := NewAnalysisRequest(market, timeframe, bars, nil)
	assert.NotNil(t, analysisReq)
	assert.NotEqual(t, analysisReq.ID, "")
	go func() { analysisReq.Response <- NewWaveAnalysisResult(market, timeframe) }()
	analysisResp := <-analysisReq.Response
	assert.NotNil(t, analysisResp)
	assert.Equal(t, analysisResp.Market, market)

	lastResultReq := NewLastResultRequest(market, timeframe)
	assert.NotNil(t, lastResultReq)
	go func() { lastResultReq.Response <- nil }()
	lastResultResp := <-lastResultReq.Response
	assert.Nil(t, lastResultResp)
}
