package shared

import (
	"testing"

	"github.com/peterldowns/testy/assert"
)

func TestTimeframeString(t *testing.T) {
	tests := []struct {
		name      string
		timeframe Timeframe
		want      string
	}{
		{
			"one day",
			OneDay,
			"1d",
		},
		{
			"one week",
			OneWeek,
			"1wk",
		},
		{
			"one hour",
			OneHour,
			"1h",
		},
		{
			"five minute",
			FiveMinute,
			"5m",
		},
		{
			"unknown timeframe",
			Timeframe(999),
			"unknown",
		},
	}

	for _, test := range tests {
		str := test.timeframe.String()
		if str != test.want {
			t.Errorf("%s: expected %v, got %v", test.name, test.want, str)
		}
	}
}

func TestParseTimeframe(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    Timeframe
		wantErr bool
	}{
		{
			"one day",
			"1d",
			OneDay,
			false,
		},
		{
			"one week",
			"1wk",
			OneWeek,
			false,
		},
		{
			"one hour",
			"1h",
			OneHour,
			false,
		},
		{
			"five minute",
			"5m",
			FiveMinute,
			false,
		},
		{
			"unsupported timeframe",
			"3m",
			0,
			true,
		},
	}

	for _, test := range tests {
		timeframe, err := ParseTimeframe(test.value)
		if (err != nil) != test.wantErr {
			t.Errorf("%s: unexpected error status, got %v", test.name, err)
		}

		if !test.wantErr && timeframe != test.want {
			t.Errorf("%s: expected %v, got %v", test.name, test.want, timeframe)
		}
	}
}

func TestMarketKey(t *testing.T) {
	// Ensure market keys combine the market and timeframe.
	key := MarketKey("AAPL", OneDay)
	assert.Equal(t, key, "AAPL:1d")

	key = MarketKey("^GSPC", OneWeek)
	assert.Equal(t, key, "^GSPC:1wk")
}
