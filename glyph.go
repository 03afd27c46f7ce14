// Copyright (C) The Evecplot Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package evecplot

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// glyphForShape maps an R "pch" marker code from the population table
// to a glyph drawer. The codes used by the population tables are the
// four filled markers 15..18 and their hollow counterparts 0, 1, 2,
// 5 (produced by the projected-sample remap), plus 3 and 4.
func glyphForShape(pch int) (draw.GlyphDrawer, error) {
	switch pch {
	case 0:
		return draw.SquareGlyph{}, nil
	case 1:
		return draw.RingGlyph{}, nil
	case 2:
		return draw.TriangleGlyph{}, nil
	case 3:
		return draw.PlusGlyph{}, nil
	case 4:
		return draw.CrossGlyph{}, nil
	case 5:
		return diamondGlyph{}, nil
	case 15:
		return draw.BoxGlyph{}, nil
	case 16:
		return draw.CircleGlyph{}, nil
	case 17:
		return draw.PyramidGlyph{}, nil
	case 18:
		return solidDiamondGlyph{}, nil
	}
	return nil, fmt.Errorf("unsupported marker shape %d", pch)
}

// diamondGlyph draws the outline of a diamond (R pch 5). gonum/plot
// has no diamond among its stock glyphs.
type diamondGlyph struct{}

func (diamondGlyph) DrawGlyph(c *draw.Canvas, sty draw.GlyphStyle, pt vg.Point) {
	c.SetLineStyle(draw.LineStyle{Color: sty.Color, Width: vg.Points(0.5)})
	c.Stroke(diamondPath(sty.Radius, pt))
}

// solidDiamondGlyph draws a filled diamond (R pch 18).
type solidDiamondGlyph struct{}

func (solidDiamondGlyph) DrawGlyph(c *draw.Canvas, sty draw.GlyphStyle, pt vg.Point) {
	c.SetColor(sty.Color)
	c.Fill(diamondPath(sty.Radius, pt))
}

func diamondPath(r vg.Length, pt vg.Point) vg.Path {
	var p vg.Path
	p.Move(vg.Point{X: pt.X, Y: pt.Y + r})
	p.Line(vg.Point{X: pt.X + r, Y: pt.Y})
	p.Line(vg.Point{X: pt.X, Y: pt.Y - r})
	p.Line(vg.Point{X: pt.X - r, Y: pt.Y})
	p.Close()
	return p
}

// parseColour resolves a colour spec from the population table:
// either an SVG/R colour name ("red", "darkgreen") or a hex
// "#RRGGBB" / "#RRGGBBAA" value.
func parseColour(spec string) (color.Color, error) {
	if strings.HasPrefix(spec, "#") {
		hex := spec[1:]
		var alpha uint64 = 0xff
		switch len(hex) {
		case 8:
			a, err := strconv.ParseUint(hex[6:], 16, 8)
			if err != nil {
				return nil, fmt.Errorf("unparseable colour %q", spec)
			}
			alpha = a
			hex = hex[:6]
		case 6:
		default:
			return nil, fmt.Errorf("unparseable colour %q", spec)
		}
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return nil, fmt.Errorf("unparseable colour %q", spec)
		}
		return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: uint8(alpha)}, nil
	}
	if c, ok := colornames.Map[strings.ToLower(spec)]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("unrecognized colour %q", spec)
}
