// Copyright (C) The Evecplot Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package evecplot

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// popInfo is one row of the population reference table: display
// attributes for every population code that may appear in a
// coordinate table. The table is read once and treated as read-only.
type popInfo struct {
	Code     string
	TypeName string
	Colour   string
	Shape    int
	Order    int
}

var popNamesColumns = []string{"Code", "Type.Name", "Colour", "Shape", "Order"}

// loadPopNames parses the population reference table: quoted CSV, a
// header row is required, columns are resolved by name (extra
// columns are ignored, missing ones are an error).
func loadPopNames(fnm string) (map[string]popInfo, error) {
	f, err := openInput(fnm)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readPopNames(f, fnm)
}

func readPopNames(rdr io.Reader, fnm string) (map[string]popInfo, error) {
	csvr := csv.NewReader(rdr)
	header, err := csvr.Read()
	if err != nil {
		return nil, fmt.Errorf("%s: reading header: %w", fnm, err)
	}
	col := map[string]int{}
	for i, name := range header {
		col[name] = i
	}
	for _, name := range popNamesColumns {
		if _, ok := col[name]; !ok {
			return nil, fmt.Errorf("%s: no column named %q in header row %q", fnm, name, header)
		}
	}
	pops := map[string]popInfo{}
	lineno := 1
	for {
		rec, err := csvr.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, fmt.Errorf("%s: %w", fnm, err)
		}
		lineno++
		info := popInfo{
			Code:     rec[col["Code"]],
			TypeName: rec[col["Type.Name"]],
			Colour:   rec[col["Colour"]],
		}
		info.Shape, err = strconv.Atoi(rec[col["Shape"]])
		if err != nil {
			return nil, fmt.Errorf("%s line %d: Shape: %w", fnm, lineno, err)
		}
		info.Order, err = strconv.Atoi(rec[col["Order"]])
		if err != nil {
			return nil, fmt.Errorf("%s line %d: Order: %w", fnm, lineno, err)
		}
		if _, dup := pops[info.Code]; dup {
			return nil, fmt.Errorf("%s line %d: duplicate population code %q", fnm, lineno, info.Code)
		}
		pops[info.Code] = info
	}
	if len(pops) == 0 {
		return nil, fmt.Errorf("%s: no population rows found", fnm)
	}
	return pops, nil
}
