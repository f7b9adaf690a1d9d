package shared

// HistorySource defines the provider of historical price data for a market.
type HistorySource interface {
	// FetchMarket returns the market the source covers.
	FetchMarket() string
	// FetchTimeframes returns the timeframes the source carries data for.
	FetchTimeframes() []Timeframe
	// FetchBars returns the bars covering the provided timeframe.
	FetchBars(timeframe Timeframe) ([]PriceBar, error)
}

// InsightSource defines the provider of externally generated analysis
// payloads for markets.
type InsightSource interface {
	// FetchInsight returns the raw analysis payload for the provided
	// market. The boolean reports whether a payload was available.
	FetchInsight(market string) ([]byte, bool, error)
}

// ResultSink defines the consumer of finished analysis results. Caching and
// persistence concerns live behind this boundary.
type ResultSink interface {
	// StoreResult hands a finished result to the sink.
	StoreResult(result *WaveAnalysisResult) error
}
