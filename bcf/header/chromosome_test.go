// Copyright ©2015 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package header

import (
	"testing"

	"gopkg.in/check.v1"
)

func Test(t *testing.T) { check.TestingT(t) }

type S struct{}

var _ = check.Suite(&S{})

func (s *S) TestString(c *check.C) {
	c.Check(Chromosome{Kind: ChromosomeName, Value: "sq0"}.String(), check.Equals, "sq0")
	c.Check(Chromosome{Kind: ChromosomeSymbol, Value: "sq0"}.String(), check.Equals, "<sq0>")
}

func (s *S) TestParseChromosome(c *check.C) {
	got, err := ParseChromosome("sq0")
	c.Assert(err, check.IsNil)
	c.Check(got, check.Equals, Chromosome{Kind: ChromosomeName, Value: "sq0"})

	got, err = ParseChromosome("<sq0>")
	c.Assert(err, check.IsNil)
	c.Check(got, check.Equals, Chromosome{Kind: ChromosomeSymbol, Value: "sq0"})

	_, err = ParseChromosome("")
	c.Assert(err, check.FitsTypeOf, &ParseError{})
	c.Check(err.(*ParseError).Kind, check.Equals, ParseErrorEmpty)

	_, err = ParseChromosome(".")
	c.Check(err.(*ParseError).Kind, check.Equals, ParseErrorMissing)

	for _, bad := range []string{"sq 0", "sq[0]", ">sq0", "*sq0", "=sq0"} {
		_, err = ParseChromosome(bad)
		c.Check(err.(*ParseError).Kind, check.Equals, ParseErrorInvalid, check.Commentf("input %q", bad))
	}
}
