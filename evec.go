// Copyright (C) The Evecplot Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package evecplot

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/pgzip"
	"github.com/kshedden/gonpy"
	"gonum.org/v1/gonum/mat"
)

// sampleRecord is one row of a PCA coordinate table: the population
// code used to join against the population table, the free-text
// sample name, and the principal component coordinates (component i
// at PC[i-1]).
type sampleRecord struct {
	Code  string
	Label string
	PC    []float64
}

// openInput opens fnm, transparently decompressing if the name ends
// in ".gz". The caller must close the returned ReadCloser.
func openInput(fnm string) (io.ReadCloser, error) {
	f, err := os.Open(fnm)
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(fnm, ".gz") {
		return f, nil
	}
	gzr, err := pgzip.NewReader(bufio.NewReaderSize(f, 1<<20))
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%s: %w", fnm, err)
	}
	return gzInput{Reader: gzr, f: f}, nil
}

type gzInput struct {
	*pgzip.Reader
	f *os.File
}

func (in gzInput) Close() error {
	err := in.Reader.Close()
	if errf := in.f.Close(); err == nil {
		err = errf
	}
	return err
}

// loadCoords reads a PCA coordinate table. Text tables (smartpca
// .evec style) are whitespace delimited with no header: column 1 is
// the population code, column 2 the sample name, remaining columns
// the PC coordinates. A ".npy" table is a float64 matrix whose rows
// correspond, in order, to the entries of the sample list file given
// with -samples.
func loadCoords(fnm, samplesFilename string) ([]sampleRecord, error) {
	if strings.HasSuffix(fnm, ".npy") {
		return loadNpyCoords(fnm, samplesFilename)
	}
	f, err := openInput(fnm)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readEvec(f, fnm)
}

func readEvec(rdr io.Reader, fnm string) ([]sampleRecord, error) {
	var samples []sampleRecord
	ncols := 0
	lineno := 0
	scanner := bufio.NewScanner(rdr)
	scanner.Buffer(make([]byte, 1<<20), 1<<20)
	for scanner.Scan() {
		lineno++
		line := scanner.Text()
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			// smartpca writes an "#eigvals:" comment line
			continue
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if len(fields) < 3 {
			return nil, fmt.Errorf("%s line %d: expected at least 3 columns (code, sample, PC1), got %d", fnm, lineno, len(fields))
		}
		if ncols == 0 {
			ncols = len(fields)
		} else if len(fields) != ncols {
			return nil, fmt.Errorf("%s line %d: expected %d columns, got %d", fnm, lineno, ncols, len(fields))
		}
		rec := sampleRecord{
			Code:  fields[0],
			Label: fields[1],
			PC:    make([]float64, len(fields)-2),
		}
		for i, field := range fields[2:] {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("%s line %d column %d: %w", fnm, lineno, i+3, err)
			}
			rec.PC[i] = v
		}
		samples = append(samples, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", fnm, err)
	}
	if len(samples) == 0 {
		return nil, fmt.Errorf("%s: no sample rows found", fnm)
	}
	return samples, nil
}

// loadNpyCoords reads coordinates from a numpy matrix (e.g., the
// pca.npy written by a PCA pipeline stage) paired with a sample list
// CSV whose rows, after the header, give the Code and Label for the
// corresponding matrix row.
func loadNpyCoords(fnm, samplesFilename string) ([]sampleRecord, error) {
	if samplesFilename == "" {
		return nil, fmt.Errorf("%s: -samples file is required with .npy coordinate input", fnm)
	}
	codes, labels, err := loadSampleList(samplesFilename)
	if err != nil {
		return nil, err
	}
	rdr, err := gonpy.NewFileReader(fnm)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fnm, err)
	}
	if len(rdr.Shape) != 2 {
		return nil, fmt.Errorf("%s: expected 2-dimensional array, got shape %v", fnm, rdr.Shape)
	}
	if rdr.ColumnMajor {
		return nil, fmt.Errorf("%s: column-major arrays are not supported", fnm)
	}
	data, err := rdr.GetFloat64()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fnm, err)
	}
	rows, cols := rdr.Shape[0], rdr.Shape[1]
	if rows != len(codes) {
		return nil, fmt.Errorf("%s: %d rows, but %s lists %d samples", fnm, rows, samplesFilename, len(codes))
	}
	m := mat.NewDense(rows, cols, data)
	samples := make([]sampleRecord, rows)
	for i := 0; i < rows; i++ {
		pc := make([]float64, cols)
		copy(pc, m.RawRowView(i))
		samples[i] = sampleRecord{Code: codes[i], Label: labels[i], PC: pc}
	}
	return samples, nil
}

// loadSampleList reads a CSV with a header row containing Code and
// Label columns.
func loadSampleList(fnm string) (codes, labels []string, err error) {
	f, err := openInput(fnm)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()
	csvr := csv.NewReader(f)
	header, err := csvr.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("%s: reading header: %w", fnm, err)
	}
	codeCol, labelCol := -1, -1
	for i, name := range header {
		switch name {
		case "Code":
			codeCol = i
		case "Label":
			labelCol = i
		}
	}
	if codeCol < 0 || labelCol < 0 {
		return nil, nil, fmt.Errorf("%s: header must include Code and Label columns, got %q", fnm, header)
	}
	for {
		rec, err := csvr.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", fnm, err)
		}
		codes = append(codes, rec[codeCol])
		labels = append(labels, rec[labelCol])
	}
	return codes, labels, nil
}

// loadPVE reads the percent-variance-explained vector: one fraction
// per component, in component order. Each value is returned as a
// percentage rounded to 1 decimal place, ready for axis labels.
func loadPVE(fnm string) ([]float64, error) {
	var fracs []float64
	if strings.HasSuffix(fnm, ".npy") {
		rdr, err := gonpy.NewFileReader(fnm)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", fnm, err)
		}
		fracs, err = rdr.GetFloat64()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", fnm, err)
		}
	} else {
		f, err := openInput(fnm)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		lineno := 0
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			lineno++
			line := strings.TrimSpace(scanner.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			v, err := strconv.ParseFloat(strings.Fields(line)[0], 64)
			if err != nil {
				return nil, fmt.Errorf("%s line %d: %w", fnm, lineno, err)
			}
			fracs = append(fracs, v)
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("%s: %w", fnm, err)
		}
	}
	if len(fracs) == 0 {
		return nil, fmt.Errorf("%s: no values found", fnm)
	}
	pve := make([]float64, len(fracs))
	for i, v := range fracs {
		pve[i] = math.Round(v*1000) / 10
	}
	return pve, nil
}
