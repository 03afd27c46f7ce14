package evecplot

import "gopkg.in/check.v1"

type joinSuite struct{}

var _ = check.Suite(&joinSuite{})

func pops3() map[string]popInfo {
	return map[string]popInfo{
		"A": {Code: "A", TypeName: "TypeX", Colour: "red", Shape: 16, Order: 1},
		"B": {Code: "B", TypeName: "TypeY", Colour: "blue", Shape: 17, Order: 2},
		"C": {Code: "C", TypeName: "TypeX", Colour: "red", Shape: 16, Order: 1},
	}
}

func (s *joinSuite) TestJoinKeepsAttributes(c *check.C) {
	pts, dropped := joinPops([]sampleRecord{
		{Code: "A", Label: "A:s1", PC: []float64{1, 2}},
		{Code: "B", Label: "B:s2", PC: []float64{3, 4}},
	}, pops3(), false)
	c.Check(dropped, check.IsNil)
	c.Assert(pts, check.HasLen, 2)
	c.Check(pts[0].TypeName, check.Equals, "TypeX")
	c.Check(pts[0].Colour, check.Equals, "red")
	c.Check(pts[0].Shape, check.Equals, 16)
	c.Check(pts[0].Order, check.Equals, 1)
	c.Check(pts[1].PC, check.DeepEquals, []float64{3, 4})
}

func (s *joinSuite) TestJoinDropsUnmatchedCodes(c *check.C) {
	pts, dropped := joinPops([]sampleRecord{
		{Code: "A", PC: []float64{1}},
		{Code: "NOPE", PC: []float64{2}},
		{Code: "B", PC: []float64{3}},
	}, pops3(), false)
	c.Check(dropped, check.DeepEquals, []string{"NOPE"})
	c.Assert(pts, check.HasLen, 2)
	c.Check(pts[0].Code, check.Equals, "A")
	c.Check(pts[1].Code, check.Equals, "B")
}

func (s *joinSuite) TestHollowRemapProjectedOnly(c *check.C) {
	samples := []sampleRecord{{Code: "A", PC: []float64{0}}}
	pops := map[string]popInfo{"A": {Code: "A", TypeName: "T", Colour: "red", Shape: 16, Order: 1}}

	pts, _ := joinPops(samples, pops, false)
	c.Check(pts[0].Shape, check.Equals, 16)

	pts, _ = joinPops(samples, pops, true)
	c.Check(pts[0].Shape, check.Equals, 1)
}

func (s *joinSuite) TestHollowRemapTable(c *check.C) {
	for in, out := range map[int]int{15: 0, 16: 1, 17: 2, 18: 5} {
		pops := map[string]popInfo{"A": {Code: "A", Shape: in}}
		pts, _ := joinPops([]sampleRecord{{Code: "A"}}, pops, true)
		c.Check(pts[0].Shape, check.Equals, out)
	}
	// non-filled codes pass through unchanged
	for _, in := range []int{0, 1, 2, 3, 4, 5, 19} {
		pops := map[string]popInfo{"A": {Code: "A", Shape: in}}
		pts, _ := joinPops([]sampleRecord{{Code: "A"}}, pops, true)
		c.Check(pts[0].Shape, check.Equals, in)
	}
}

func (s *joinSuite) TestCombineStableSort(c *check.C) {
	calc := []point{
		{Code: "B", Order: 2},
		{Code: "A", Order: 1},
	}
	proj := []point{
		{Code: "C", Order: 1},
	}
	combined := combine(calc, proj)
	// Order ascending; A precedes C because equal-Order rows keep
	// concatenation order (calculated table first)
	c.Check(combined[0].Code, check.Equals, "A")
	c.Check(combined[1].Code, check.Equals, "C")
	c.Check(combined[2].Code, check.Equals, "B")
}

func (s *joinSuite) TestCombineDoesNotMutateInputs(c *check.C) {
	calc := []point{{Code: "B", Order: 2}, {Code: "A", Order: 1}}
	combine(calc, nil)
	c.Check(calc[0].Code, check.Equals, "B")
}

func (s *joinSuite) TestTypeLevelsFirstOccurrenceAfterSort(c *check.C) {
	combined := combine([]point{
		{Code: "Z", TypeName: "Zed", Order: 9},
		{Code: "M", TypeName: "Mid", Order: 5},
		{Code: "M2", TypeName: "Mid", Order: 5},
		{Code: "A", TypeName: "First", Order: 1},
	}, nil)
	// neither alphabetical nor input order: Order-sorted first occurrence
	c.Check(typeLevels(combined), check.DeepEquals, []string{"First", "Mid", "Zed"})
}

func (s *joinSuite) TestLegendDedup(c *check.C) {
	combined := []point{
		{TypeName: "TypeX", Colour: "red", Shape: 16, Order: 1},
		{TypeName: "TypeX", Colour: "red", Shape: 1, Order: 1}, // projected, hollow
		{TypeName: "TypeY", Colour: "blue", Shape: 17, Order: 2},
	}
	legend := buildLegend(combined)
	c.Assert(legend, check.HasLen, 2)
	c.Check(legend[0], check.DeepEquals, legendEntry{TypeName: "TypeX", Colour: "red", Shape: 16, Order: 1})
	c.Check(legend[1], check.DeepEquals, legendEntry{TypeName: "TypeY", Colour: "blue", Shape: 17, Order: 2})
}

func (s *joinSuite) TestGroupPointsScenario(c *check.C) {
	// calc {A,B}, proj {C}; A and C share TypeX but C was remapped
	// hollow, so it renders in its own group.
	calc, _ := joinPops([]sampleRecord{
		{Code: "A", PC: []float64{1}},
		{Code: "B", PC: []float64{2}},
	}, pops3(), false)
	proj, dropped := joinPops([]sampleRecord{
		{Code: "C", PC: []float64{3}},
	}, pops3(), true)
	c.Check(dropped, check.IsNil)
	c.Check(proj[0].Shape, check.Equals, 1)

	combined := combine(calc, proj)
	c.Check(combined[0].Code, check.Equals, "A")
	c.Check(combined[1].Code, check.Equals, "C")
	c.Check(combined[2].Code, check.Equals, "B")

	groups := groupPoints(combined)
	c.Assert(groups, check.HasLen, 3)
	c.Check(groups[0].TypeName, check.Equals, "TypeX")
	c.Check(groups[0].Shape, check.Equals, 16)
	c.Check(groups[1].TypeName, check.Equals, "TypeX")
	c.Check(groups[1].Shape, check.Equals, 1)
	c.Check(groups[2].TypeName, check.Equals, "TypeY")

	// legend still has one TypeX entry, and levels stay ordered
	c.Check(typeLevels(combined), check.DeepEquals, []string{"TypeX", "TypeY"})
}
