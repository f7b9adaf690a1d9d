package wave

import (
	"fmt"
	"testing"

	"github.com/dnldd/elliott/shared"
	"github.com/peterldowns/testy/assert"
)

func TestResultSnapshot(t *testing.T) {
	// Ensure result snapshot size cannot be negative or zero.
	snapshot, err := NewResultSnapshot(-1)
	assert.Error(t, err)

	snapshot, err = NewResultSnapshot(0)
	assert.Error(t, err)

	// Ensure a result snapshot can be created.
	size := int32(4)
	snapshot, err = NewResultSnapshot(size)
	assert.NoError(t, err)

	// Ensure calling last on an empty snapshot returns nothing.
	last := snapshot.Last()
	assert.Nil(t, last)

	// Ensure calling LastN on an empty snapshot returns an empty set.
	lastN := snapshot.LastN(size)
	assert.Equal(t, len(lastN), 0)

	// Ensure calling LastN with zero or negative size returns nil.
	lastN = snapshot.LastN(-1)
	assert.Nil(t, lastN)

	// Ensure the snapshot can be updated with results.
	for idx := range size {
		result := shared.NewWaveAnalysisResult(testMarket, shared.OneDay)
		result.Analysis = fmt.Sprintf("analysis %d", idx)
		snapshot.Update(result)
	}

	assert.Equal(t, snapshot.count.Load(), size)
	assert.Equal(t, snapshot.size.Load(), size)
	assert.Equal(t, snapshot.start.Load(), 0)
	assert.Equal(t, len(snapshot.data), int(size))

	// Ensure calling last on a valid snapshot returns the last added entry.
	last = snapshot.Last()
	assert.Equal(t, last.Analysis, "analysis 3")

	// Ensure calling LastN with a larger size than the snapshot gets
	// clamped to the snapshot's size.
	lastN = snapshot.LastN(size + 1)
	assert.Equal(t, len(lastN), int(size))

	// Ensure updates at capacity overwrite the oldest entry.
	overflow := shared.NewWaveAnalysisResult(testMarket, shared.OneDay)
	overflow.Analysis = "analysis 4"
	snapshot.Update(overflow)

	assert.Equal(t, snapshot.count.Load(), size)
	assert.Equal(t, snapshot.start.Load(), 1)

	// Ensure the last n elements can be fetched from the snapshot.
	nSet := snapshot.LastN(2)
	assert.Equal(t, len(nSet), 2)
	assert.Equal(t, nSet[0].Analysis, "analysis 3")
	assert.Equal(t, nSet[1].Analysis, "analysis 4")
	assert.Equal(t, snapshot.Last().Analysis, "analysis 4")
}
