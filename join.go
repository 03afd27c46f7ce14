// Copyright (C) The Evecplot Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package evecplot

import "sort"

// point is a sample row joined with its population's display
// attributes.
type point struct {
	Code     string
	Label    string
	PC       []float64
	TypeName string
	Colour   string
	Shape    int
	Order    int
}

// legendEntry describes one legend key. There is exactly one entry
// per distinct TypeName, in factor level order (first occurrence in
// the Order-sorted combined table).
type legendEntry struct {
	TypeName string
	Colour   string
	Shape    int
	Order    int
}

// hollowShape maps the filled R pch marker codes to their hollow
// counterparts. Any other code passes through unchanged.
var hollowShape = map[int]int{15: 0, 16: 1, 17: 2, 18: 5}

// joinPops inner-joins samples against the population table on Code.
// Rows whose code has no population entry are dropped, and their
// codes returned, in input order, for the caller to report (or not:
// the historical behavior is to drop them silently). With hollow set
// (projected samples), filled marker shapes are substituted with
// their hollow counterparts.
func joinPops(samples []sampleRecord, pops map[string]popInfo, hollow bool) (joined []point, dropped []string) {
	for _, rec := range samples {
		info, ok := pops[rec.Code]
		if !ok {
			dropped = append(dropped, rec.Code)
			continue
		}
		shape := info.Shape
		if hollow {
			if h, ok := hollowShape[shape]; ok {
				shape = h
			}
		}
		joined = append(joined, point{
			Code:     rec.Code,
			Label:    rec.Label,
			PC:       rec.PC,
			TypeName: info.TypeName,
			Colour:   info.Colour,
			Shape:    shape,
			Order:    info.Order,
		})
	}
	return joined, dropped
}

// combine concatenates the calculated and projected rows (calculated
// first) and stable-sorts by Order ascending, so rows with equal
// Order keep their concatenation order.
func combine(calc, proj []point) []point {
	all := make([]point, 0, len(calc)+len(proj))
	all = append(all, calc...)
	all = append(all, proj...)
	sort.SliceStable(all, func(i, j int) bool { return all[i].Order < all[j].Order })
	return all
}

// buildLegend returns one entry per distinct TypeName, in order of
// first occurrence in the (sorted) combined rows. This order is also
// the factor level order used by the renderer, so legend keys and
// point aesthetics always agree.
func buildLegend(combined []point) []legendEntry {
	var legend []legendEntry
	seen := map[string]bool{}
	for _, pt := range combined {
		if seen[pt.TypeName] {
			continue
		}
		seen[pt.TypeName] = true
		legend = append(legend, legendEntry{
			TypeName: pt.TypeName,
			Colour:   pt.Colour,
			Shape:    pt.Shape,
			Order:    pt.Order,
		})
	}
	return legend
}

// typeLevels returns the TypeName factor levels (legend order).
func typeLevels(combined []point) []string {
	legend := buildLegend(combined)
	levels := make([]string, len(legend))
	for i, ent := range legend {
		levels[i] = ent.TypeName
	}
	return levels
}

// pointGroup is a run of combined rows sharing identical aesthetics.
// Grouping is finer than TypeName: projected samples share a
// population's TypeName and colour but carry a hollow shape, and must
// render with it.
type pointGroup struct {
	TypeName string
	Colour   string
	Shape    int
	Points   []point
}

// groupPoints splits the combined rows into aesthetic groups,
// preserving first-occurrence order (so the first group of each
// TypeName appears in factor level order).
func groupPoints(combined []point) []pointGroup {
	type key struct {
		typeName string
		colour   string
		shape    int
	}
	index := map[key]int{}
	var groups []pointGroup
	for _, pt := range combined {
		k := key{pt.TypeName, pt.Colour, pt.Shape}
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, pointGroup{TypeName: pt.TypeName, Colour: pt.Colour, Shape: pt.Shape})
		}
		groups[i].Points = append(groups[i].Points, pt)
	}
	return groups
}
