// Copyright (C) The Evecplot Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package evecplot

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"regexp"

	log "github.com/sirupsen/logrus"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

const (
	pointRadius   = vg.Length(3) // marker radius, points
	labelFontSize = vg.Length(7) // point label font size, points
	plotWidth     = 10 * vg.Inch // output page width
	plotHeight    = 7 * vg.Inch  // output page height
)

// labelPrefix matches the "Population:" prefix of a sample name;
// point labels show only the part after the first colon.
var labelPrefix = regexp.MustCompile(`^[^:]*:`)

type plotCmd struct {
	inputs inputFlags
	x      int
	y      int
	labels bool
	output string
}

func (cmd *plotCmd) RunCommand(prog string, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	err := cmd.run(prog, args, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "%s\n", err)
		return 1
	}
	return 0
}

func (cmd *plotCmd) run(prog string, args []string, stderr io.Writer) error {
	flags := flag.NewFlagSet("", flag.ContinueOnError)
	flags.SetOutput(stderr)
	cmd.inputs.Flags(flags)
	flags.IntVar(&cmd.x, "x", 1, "1-based PCA component to plot on x axis")
	flags.IntVar(&cmd.y, "y", 2, "1-based PCA component to plot on y axis")
	flags.BoolVar(&cmd.labels, "labels", false, "label each point with its sample name")
	flags.StringVar(&cmd.output, "o", "", "output `filename` (e.g., './plot.svg'; format chosen by extension)")
	err := flags.Parse(args)
	if err == flag.ErrHelp {
		return nil
	} else if err != nil {
		return err
	} else if flags.NArg() > 0 {
		return fmt.Errorf("errant command line arguments after parsed flags: %v", flags.Args())
	}
	if cmd.output == "" {
		return errors.New("must specify -o filename.svg (or try -help)")
	}

	data, err := cmd.inputs.Load()
	if err != nil {
		return err
	}
	for _, comp := range []int{cmd.x, cmd.y} {
		if err := data.checkComponent(comp); err != nil {
			return err
		}
	}

	calc, droppedCalc := joinPops(data.Calc, data.Pops, false)
	proj, droppedProj := joinPops(data.Proj, data.Pops, true)
	if n := len(droppedCalc) + len(droppedProj); n > 0 {
		// Historically these rows disappear without comment;
		// leave them out of the plot but say so.
		log.Warnf("dropped %d samples with codes missing from %s (run check for details)", n, cmd.inputs.PopNamesFilename)
	}
	combined := combine(calc, proj)
	if len(combined) == 0 {
		return errors.New("no samples left after joining against population table")
	}

	log.Infof("plotting %d samples, PC%d vs PC%d", len(combined), cmd.x, cmd.y)
	p, err := cmd.render(combined, data.PVE)
	if err != nil {
		return err
	}
	log.Infof("writing %s", cmd.output)
	err = p.Save(plotWidth, plotHeight, cmd.output)
	if err != nil {
		return err
	}
	log.Info("done")
	return nil
}

func (cmd *plotCmd) render(combined []point, pve []float64) (*plot.Plot, error) {
	p := plot.New()
	p.X.Label.Text = fmt.Sprintf("PC%d (%g%%)", cmd.x, pve[cmd.x-1])
	p.Y.Label.Text = fmt.Sprintf("PC%d (%g%%)", cmd.y, pve[cmd.y-1])
	p.Add(plotter.NewGrid())
	p.Legend.Top = true

	inLegend := map[string]bool{}
	for _, group := range groupPoints(combined) {
		xys := make(plotter.XYs, len(group.Points))
		for i, pt := range group.Points {
			xys[i].X = pt.PC[cmd.x-1]
			xys[i].Y = pt.PC[cmd.y-1]
		}
		s, err := plotter.NewScatter(xys)
		if err != nil {
			return nil, err
		}
		colour, err := parseColour(group.Colour)
		if err != nil {
			return nil, fmt.Errorf("population type %q: %w", group.TypeName, err)
		}
		glyph, err := glyphForShape(group.Shape)
		if err != nil {
			return nil, fmt.Errorf("population type %q: %w", group.TypeName, err)
		}
		s.GlyphStyle = draw.GlyphStyle{Color: colour, Radius: pointRadius, Shape: glyph}
		p.Add(s)
		if !inLegend[group.TypeName] {
			// first group of each TypeName comes up in
			// factor level order, so the legend does too
			inLegend[group.TypeName] = true
			p.Legend.Add(group.TypeName, s)
		}
	}

	if cmd.labels {
		lbls, err := pointLabels(combined, cmd.x, cmd.y)
		if err != nil {
			return nil, err
		}
		p.Add(lbls)
	}
	return p, nil
}

// pointLabels builds the optional per-point text labels: the sample
// name with any leading "Population:" prefix stripped, slightly right
// of the point and aligned to its bottom.
func pointLabels(combined []point, x, y int) (*plotter.Labels, error) {
	xyl := plotter.XYLabels{
		XYs:    make(plotter.XYs, len(combined)),
		Labels: make([]string, len(combined)),
	}
	for i, pt := range combined {
		xyl.XYs[i].X = pt.PC[x-1]
		xyl.XYs[i].Y = pt.PC[y-1]
		xyl.Labels[i] = stripLabel(pt.Label)
	}
	lbls, err := plotter.NewLabels(xyl)
	if err != nil {
		return nil, err
	}
	lbls.Offset = vg.Point{X: vg.Points(2)}
	for i := range lbls.TextStyle {
		lbls.TextStyle[i].Font.Size = labelFontSize
		lbls.TextStyle[i].XAlign = draw.XLeft
		lbls.TextStyle[i].YAlign = draw.YBottom
	}
	return lbls, nil
}

func stripLabel(name string) string {
	return labelPrefix.ReplaceAllString(name, "")
}
