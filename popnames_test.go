package evecplot

import (
	"strings"

	"gopkg.in/check.v1"
)

type popNamesSuite struct{}

var _ = check.Suite(&popNamesSuite{})

func (s *popNamesSuite) TestReadPopNames(c *check.C) {
	pops, err := readPopNames(strings.NewReader(`"Code","Type.Name","Colour","Shape","Order"
"WEUR","West Eurasian","red",16,1
"AFR","African","#9932CC",15,3
`), "pop_names.csv")
	c.Assert(err, check.IsNil)
	c.Assert(pops, check.HasLen, 2)
	c.Check(pops["WEUR"], check.DeepEquals, popInfo{Code: "WEUR", TypeName: "West Eurasian", Colour: "red", Shape: 16, Order: 1})
	c.Check(pops["AFR"].Colour, check.Equals, "#9932CC")
}

func (s *popNamesSuite) TestReadPopNamesColumnOrder(c *check.C) {
	// columns are found by header name, not position
	pops, err := readPopNames(strings.NewReader(`Order,Code,Colour,Shape,Type.Name,Note
2,"X","blue",17,"Type X","ignored"
`), "pop_names.csv")
	c.Assert(err, check.IsNil)
	c.Check(pops["X"], check.DeepEquals, popInfo{Code: "X", TypeName: "Type X", Colour: "blue", Shape: 17, Order: 2})
}

func (s *popNamesSuite) TestReadPopNamesMissingColumn(c *check.C) {
	_, err := readPopNames(strings.NewReader("Code,Colour,Shape,Order\nA,red,1,1\n"), "pop_names.csv")
	c.Check(err, check.ErrorMatches, `pop_names.csv: no column named "Type.Name" in header row .*`)
}

func (s *popNamesSuite) TestReadPopNamesBadShape(c *check.C) {
	_, err := readPopNames(strings.NewReader(`Code,Type.Name,Colour,Shape,Order
A,TypeA,red,circle,1
`), "pop_names.csv")
	c.Check(err, check.ErrorMatches, `pop_names.csv line 2: Shape: .*`)
}

func (s *popNamesSuite) TestReadPopNamesDuplicateCode(c *check.C) {
	_, err := readPopNames(strings.NewReader(`Code,Type.Name,Colour,Shape,Order
A,TypeA,red,16,1
A,TypeA,red,16,1
`), "pop_names.csv")
	c.Check(err, check.ErrorMatches, `pop_names.csv line 3: duplicate population code "A"`)
}

func (s *popNamesSuite) TestLoadPopNamesTestdata(c *check.C) {
	pops, err := loadPopNames("testdata/pop_names.csv")
	c.Assert(err, check.IsNil)
	c.Check(pops, check.HasLen, 4)
	c.Check(pops["OUT"].TypeName, check.Equals, "Outgroup")
}
