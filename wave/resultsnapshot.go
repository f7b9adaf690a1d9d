package wave

import (
	"errors"
	"sync"

	"github.com/dnldd/elliott/shared"
	"go.uber.org/atomic"
)

const (
	// SnapshotSize is the maximum number of entries for a result snapshot.
	SnapshotSize = 24
)

// ResultSnapshot represents a snapshot of wave analysis results.
type ResultSnapshot struct {
	data    []*shared.WaveAnalysisResult
	dataMtx sync.RWMutex
	start   atomic.Int32
	count   atomic.Int32
	size    atomic.Int32
}

// NewResultSnapshot initializes a new result snapshot.
func NewResultSnapshot(size int32) (*ResultSnapshot, error) {
	if size < 0 {
		return nil, errors.New("snapshot size cannot be negative")
	}
	if size == 0 {
		return nil, errors.New("snapshot size cannot be zero")
	}

	snapshot := &ResultSnapshot{
		data: make([]*shared.WaveAnalysisResult, size),
	}

	snapshot.size.Store(int32(size))
	return snapshot, nil
}

// Update adds the provided result to the snapshot.
func (s *ResultSnapshot) Update(result *shared.WaveAnalysisResult) {
	s.dataMtx.Lock()
	defer s.dataMtx.Unlock()

	start := s.start.Load()
	count := s.count.Load()
	size := s.size.Load()
	end := (start + count) % size
	s.data[end] = result

	if count == size {
		// Overwrite the oldest entry when the snapshot is at capacity.
		s.start.Store((start + 1) % size)
	} else {
		s.count.Add(1)
	}
}

// Last returns the last added entry for the snapshot.
func (s *ResultSnapshot) Last() *shared.WaveAnalysisResult {
	s.dataMtx.RLock()
	defer s.dataMtx.RUnlock()

	start := s.start.Load()
	count := s.count.Load()
	size := s.size.Load()
	if count == 0 {
		return nil
	}

	end := (start + count - 1) % size
	return s.data[end]
}

// LastN fetches the last n number of elements from the snapshot.
func (s *ResultSnapshot) LastN(n int32) []*shared.WaveAnalysisResult {
	s.dataMtx.RLock()
	defer s.dataMtx.RUnlock()

	if n <= 0 {
		return nil
	}

	start := s.start.Load()
	count := s.count.Load()
	size := s.size.Load()

	// Clamp the number of elements expected if it is greater than the snapshot count.
	if n > count {
		n = count
	}

	set := make([]*shared.WaveAnalysisResult, n)
	start = (start + count - n + size) % size

	for i := range n {
		idx := (start + i) % size
		set[i] = s.data[idx]
	}

	return set
}
