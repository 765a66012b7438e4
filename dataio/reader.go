// SPDX-License-Identifier: MIT

// Package dataio loads point sets and matrices from comma-separated text
// (optionally gzip-compressed) and renders results with four decimals.
package dataio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/klauspost/compress/gzip"
)

var (
	// ErrExtension: the file name does not end in .txt, .csv (optionally + .gz).
	ErrExtension = errors.New("dataio: unsupported file extension")

	// ErrUnreadable: the source could not be opened or decompressed.
	ErrUnreadable = errors.New("dataio: unreadable source")

	// ErrMalformed: a line has an unparsable number or a different field count.
	ErrMalformed = errors.New("dataio: malformed input")

	// ErrEmpty: the source holds no rows.
	ErrEmpty = errors.New("dataio: empty input")

	// ErrNotSquare: a matrix source is not n×n.
	ErrNotSquare = errors.New("dataio: matrix is not square")
)

// Dataset is a parsed source.
type Dataset struct {
	Path   string
	Rows   [][]float64
	Digest uint64 // xxhash64 of the decompressed bytes
}

// N returns the number of rows.
func (d *Dataset) N() int { return len(d.Rows) }

// Dim returns the number of columns.
func (d *Dataset) Dim() int {
	if len(d.Rows) == 0 {
		return 0
	}

	return len(d.Rows[0])
}

// CheckExtension accepts .txt and .csv, each optionally followed by .gz.
func CheckExtension(path string) (gz bool, err error) {
	name := strings.ToLower(filepath.Base(path))
	if strings.HasSuffix(name, ".gz") {
		gz = true
		name = strings.TrimSuffix(name, ".gz")
	}
	switch filepath.Ext(name) {
	case ".txt", ".csv":
		return gz, nil
	default:
		return false, fmt.Errorf("%q: %w", path, ErrExtension)
	}
}

// Load reads path as rows of numbers; .gz files are decompressed on the fly.
func Load(path string) (*Dataset, error) {
	gz, err := CheckExtension(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnreadable, err)
	}
	defer f.Close()

	var src io.Reader = f
	if gz {
		zr, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("%q: %w: %w", path, ErrUnreadable, err)
		}
		defer zr.Close()
		src = zr
	}

	ds, err := Read(src)
	if err != nil {
		return nil, fmt.Errorf("%q: %w", path, err)
	}
	ds.Path = path

	return ds, nil
}

// Read parses comma-separated rows from r. Blank lines are skipped; every
// row must have the field count of the first.
// Complexity: O(bytes).
func Read(r io.Reader) (*Dataset, error) {
	h := xxhash.New()
	cr := csv.NewReader(io.TeeReader(r, h))
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	var rows [][]float64
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
			}
			return nil, fmt.Errorf("%w: %w", ErrUnreadable, err)
		}

		row := make([]float64, len(rec))
		for j, field := range rec {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, fmt.Errorf("line %d field %d: %w: %w", len(rows)+1, j+1, ErrMalformed, err)
			}
			row[j] = v
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmpty
	}

	return &Dataset{Rows: rows, Digest: h.Sum64()}, nil
}

// ReadPoints loads a point set: n rows of dim coordinates.
func ReadPoints(path string) (*Dataset, error) {
	return Load(path)
}

// ReadMatrix loads a square matrix.
func ReadMatrix(path string) (*Dataset, error) {
	ds, err := Load(path)
	if err != nil {
		return nil, err
	}
	if ds.N() != ds.Dim() {
		return nil, fmt.Errorf("%q: %dx%d: %w", path, ds.N(), ds.Dim(), ErrNotSquare)
	}

	return ds, nil
}
