package field

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

var (
	ErrHeaderMismatch    = errors.New("row length differs from header")
	ErrNonMonotonicFrame = errors.New("frame indices not strictly increasing")
	ErrEmptySeries       = errors.New("series has no data rows")
	ErrMalformedValue    = errors.New("malformed numeric value")
)

// Series is an immutable time-indexed table of per-node scalar values.
// Rows are frames, columns follow the header node ids.
type Series struct {
	Name       string
	nodeIDs    []int
	labels     []string  // raw first-column frame labels
	times      []float64 // parsed frame index/time values
	data       *mat.Dense
	rmin, rmax float64
}

// NewSeries validates and freezes a parsed field matrix. All-or-nothing:
// any violation returns an error and no Series.
func NewSeries(name string, nodeIDs []int, labels []string, times []float64, rows [][]float64) (*Series, error) {
	if len(rows) == 0 {
		return nil, ErrEmptySeries
	}
	nc := len(nodeIDs)
	for i, row := range rows {
		if len(row) != nc {
			return nil, fmt.Errorf("row %d has %d values, header has %d: %w",
				i+1, len(row), nc, ErrHeaderMismatch)
		}
	}
	for i := 1; i < len(times); i++ {
		if times[i] <= times[i-1] {
			return nil, fmt.Errorf("frame %d (%g) after %g: %w",
				i, times[i], times[i-1], ErrNonMonotonicFrame)
		}
	}
	data := mat.NewDense(len(rows), nc, nil)
	for i, row := range rows {
		data.SetRow(i, row)
	}
	raw := data.RawMatrix().Data
	s := &Series{
		Name:    name,
		nodeIDs: nodeIDs,
		labels:  labels,
		times:   times,
		data:    data,
		rmin:    floats.Min(raw),
		rmax:    floats.Max(raw),
	}
	return s, nil
}

func (s *Series) FrameCount() int { return len(s.labels) }
func (s *Series) NumNodes() int   { return len(s.nodeIDs) }
func (s *Series) NodeIDs() []int  { return s.nodeIDs }

// Label returns the raw frame label from the source file
func (s *Series) Label(frame int) string { return s.labels[frame] }

// Time returns the parsed frame index/time value
func (s *Series) Time(frame int) float64 { return s.times[frame] }

// Frame returns one frame's values in header column order. The slice
// aliases internal storage and must not be mutated.
func (s *Series) Frame(frame int) []float64 {
	return s.data.RawRowView(frame)
}

// GlobalRange is the min/max over all frames, computed once at load
func (s *Series) GlobalRange() (min, max float64) {
	return s.rmin, s.rmax
}
