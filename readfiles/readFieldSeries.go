package readfiles

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fieldvis/fieldvis/field"
)

// ReadFieldSeries reads a CSV field matrix: header row of node ids (first
// cell names the frame column and is skipped), then one row per frame of
// "frame_index_or_time, v1, v2, ..." positionally aligned to the header.
// The series name is the file basename without extension, matching how
// solver export scripts name one file per output variable.
func ReadFieldSeries(filename string, verbose bool) (*field.Series, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1 // ragged rows reported as HeaderMismatch, not csv errors
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err == io.EOF {
		return nil, parseErr(filename, 0, 0, "%w: empty file", field.ErrEmptySeries)
	}
	if err != nil {
		return nil, err
	}
	if len(header) < 2 {
		return nil, parseErr(filename, 1, 0,
			"header needs a frame column and at least one node id, got %d columns", len(header))
	}
	nodeIDs := make([]int, len(header)-1)
	for j, cell := range header[1:] {
		id, err := strconv.Atoi(strings.TrimSpace(cell))
		if err != nil {
			return nil, parseErr(filename, 1, j+2,
				"%w: header node id %q", field.ErrMalformedValue, cell)
		}
		nodeIDs[j] = id
	}

	var (
		labels []string
		times  []float64
		rows   [][]float64
		lineNo = 1
	)
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		lineNo++
		if len(rec) != len(header) {
			return nil, parseErr(filename, lineNo, 0,
				"%w: row has %d columns, header has %d",
				field.ErrHeaderMismatch, len(rec), len(header))
		}
		label := strings.TrimSpace(rec[0])
		tv, err := strconv.ParseFloat(label, 64)
		if err != nil {
			return nil, parseErr(filename, lineNo, 1,
				"%w: frame index %q", field.ErrMalformedValue, rec[0])
		}
		row := make([]float64, len(rec)-1)
		for j, cell := range rec[1:] {
			v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
			if err != nil {
				return nil, parseErr(filename, lineNo, j+2,
					"%w: %q", field.ErrMalformedValue, cell)
			}
			row[j] = v
		}
		labels = append(labels, label)
		times = append(times, tv)
		rows = append(rows, row)
	}

	name := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	s, err := field.NewSeries(name, nodeIDs, labels, times, rows)
	if err != nil {
		return nil, &ParseError{File: filename, Err: err}
	}
	if verbose {
		min, max := s.GlobalRange()
		fmt.Printf("Read %s: %d frames x %d nodes, range [%g, %g]\n",
			filename, s.FrameCount(), s.NumNodes(), min, max)
	}
	return s, nil
}
