package data

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// Options describes the column layout of a CSV table.
type Options struct {
	// FeatureCount is the number of numeric columns read, left to right, skipping LabelCol.
	FeatureCount int
	// LabelCol is the index of the label column.
	LabelCol int
	// Logger receives a warning for every skipped record. Zero value is silent.
	Logger zerolog.Logger
}

// IrisOptions matches the UCI iris.data layout: four measurements then the class.
func IrisOptions() Options {
	return Options{FeatureCount: 4, LabelCol: 4, Logger: zerolog.Nop()}
}

func (o Options) validate() error {
	if o.FeatureCount < 1 {
		return fmt.Errorf("%w: feature count must be positive, got %d", ErrInvalidArgument, o.FeatureCount)
	}
	if o.LabelCol < 0 {
		return fmt.Errorf("%w: label column must be non-negative, got %d", ErrInvalidArgument, o.LabelCol)
	}
	return nil
}

// decodeRecord turns one CSV record into a Sample.
func decodeRecord(rec []string, o Options) (Sample, error) {
	if o.LabelCol >= len(rec) {
		return Sample{}, fmt.Errorf("label column %d out of bounds for %d fields", o.LabelCol, len(rec))
	}
	x := make([]float64, 0, o.FeatureCount)
	for i, s := range rec {
		if len(x) == o.FeatureCount {
			break
		}
		if i == o.LabelCol {
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return Sample{}, fmt.Errorf("column %d: %w", i, err)
		}
		x = append(x, v)
	}
	if len(x) != o.FeatureCount {
		return Sample{}, fmt.Errorf("expected %d features, found %d", o.FeatureCount, len(x))
	}
	return Sample{Features: x, Label: strings.TrimSpace(rec[o.LabelCol])}, nil
}

func newReader(r io.Reader) *csv.Reader {
	reader := csv.NewReader(bufio.NewReader(r))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	return reader
}

// ParseCSV reads the whole table and fails on the first malformed record.
// Blank lines are ignored.
func ParseCSV(r io.Reader, o Options) (Dataset, error) {
	if err := o.validate(); err != nil {
		return nil, err
	}
	reader := newReader(r)
	var ds Dataset
	for {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		line, _ := reader.FieldPos(0)
		s, err := decodeRecord(rec, o)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		ds = append(ds, s)
	}
	return ds, nil
}

// streamRecords decodes r record by record into out until EOF, a read error,
// or done is closed. Malformed records are logged and skipped; a read error
// that is not a CSV parse error ends the stream and is returned.
func streamRecords(r io.Reader, name string, o Options, out chan<- Sample, done <-chan struct{}) error {
	reader := newReader(r)
	for {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			var perr *csv.ParseError
			if !errors.As(err, &perr) {
				return fmt.Errorf("read %s: %w", name, err)
			}
			o.Logger.Warn().Err(err).Str("path", name).Msg("skipping unreadable record")
			continue
		}
		s, err := decodeRecord(rec, o)
		if err != nil {
			line, _ := reader.FieldPos(0)
			o.Logger.Warn().Err(err).Str("path", name).Int("line", line).Msg("skipping malformed record")
			continue
		}
		select {
		case <-done:
			return nil
		case out <- s:
		}
	}
}

// StreamCSV streams CSV rows as Samples through out. Malformed records are
// logged and skipped. Close the returned done chan to stop early; out is
// closed when streaming ends. A read failure is logged and ends the stream;
// use ReadFile when it must be reported.
func StreamCSV(path string, o Options, out chan<- Sample) (done chan struct{}, err error) {
	if err := o.validate(); err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	done = make(chan struct{})
	go func() {
		defer file.Close()
		defer close(out)
		if err := streamRecords(file, path, o, out, done); err != nil {
			o.Logger.Error().Err(err).Str("path", path).Msg("read failed")
		}
	}()
	return done, nil
}

// ReadCSV loads every well-formed record from r, skipping malformed ones.
// It fails if r itself fails before EOF.
func ReadCSV(r io.Reader, name string, o Options) (Dataset, error) {
	if err := o.validate(); err != nil {
		return nil, err
	}
	out := make(chan Sample, 64)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		errc <- streamRecords(r, name, o, out, nil)
	}()
	var ds Dataset
	for s := range out {
		ds = append(ds, s)
	}
	if err := <-errc; err != nil {
		return nil, err
	}
	return ds, nil
}

// ReadFile loads every well-formed record of the CSV file at path.
func ReadFile(path string, o Options) (Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return ReadCSV(file, path, o)
}
