package shared

// FibTarget represents a fibonacci retracement or extension price level
// derived from a reference wave.
type FibTarget struct {
	Label       string  `json:"label"`
	Price       float64 `json:"price"`
	IsExtension bool    `json:"isExtension"`
	IsCritical  bool    `json:"isCritical"`
}
