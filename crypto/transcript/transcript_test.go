package transcript

import (
	"math/big"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/barnettsmart/mentalpoker/crypto/ecc/bn254"
)

func curve() *bn254.G1 {
	g := (&bn254.G1{}).New().(*bn254.G1)
	g.SetGenerator()
	return g
}

func TestDeterminism(t *testing.T) {
	c := qt.New(t)
	order := curve().Order()

	run := func() *big.Int {
		ts := New([]byte("seed"))
		ts.AbsorbLabel("a")
		ts.AbsorbScalar("b", big.NewInt(42))
		ts.AbsorbUint32("c", 7)
		return ts.SqueezeScalar(order)
	}

	c.Assert(run().Cmp(run()), qt.Equals, 0)
}

func TestDifferentSeedsDiverge(t *testing.T) {
	c := qt.New(t)
	order := curve().Order()

	ts1 := New([]byte("seed-a"))
	ts2 := New([]byte("seed-b"))

	c.Assert(ts1.SqueezeScalar(order).Cmp(ts2.SqueezeScalar(order)), qt.Not(qt.Equals), 0)
}

func TestAbsorbOrderMatters(t *testing.T) {
	c := qt.New(t)
	order := curve().Order()

	ts1 := New([]byte("seed"))
	ts1.AbsorbLabel("x")
	ts1.AbsorbLabel("y")

	ts2 := New([]byte("seed"))
	ts2.AbsorbLabel("y")
	ts2.AbsorbLabel("x")

	c.Assert(ts1.SqueezeScalar(order).Cmp(ts2.SqueezeScalar(order)), qt.Not(qt.Equals), 0)
}

func TestSqueezeScalarInRange(t *testing.T) {
	c := qt.New(t)
	order := curve().Order()
	ts := New([]byte("seed"))
	for i := 0; i < 20; i++ {
		s := ts.SqueezeScalar(order)
		c.Assert(s.Sign() >= 0 && s.Cmp(order) < 0, qt.IsTrue)
	}
}

func TestSqueezeGroupDeterministic(t *testing.T) {
	c := qt.New(t)
	cv := curve()

	ts1 := New([]byte("seed"))
	p1 := ts1.SqueezeGroup(cv)

	ts2 := New([]byte("seed"))
	p2 := ts2.SqueezeGroup(cv)

	c.Assert(p1.Equal(p2), qt.IsTrue)
}
