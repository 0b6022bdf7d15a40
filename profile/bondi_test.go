package profile

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/floats"

	"github.com/astroflux/agnjet/input"
)

func testProfile() Bondi {
	return Bondi{
		G: 1, M: 1, Epsilon: 0.1,
		K: 0.5, Gamma: 5.0 / 3.0,
		RVir: 2.0, RhoVir: 0.2,
		RhoCGM: 0.01, CsCGM: 0.05,
	}
}

func TestPhi(t *testing.T) {
	b := testProfile()
	// Softening keeps the origin finite
	assert.InDelta(t, -1.0/0.1, b.Phi(0), 1.e-14)
	assert.InDelta(t, -1.0/math.Sqrt(1.01), b.Phi(1), 1.e-14)
	// Phi is monotonically increasing toward zero
	assert.Greater(t, b.Phi(2), b.Phi(1))
	assert.Less(t, b.Phi(100), 0.0)
}

func TestDensityProfile(t *testing.T) {
	var (
		b  = testProfile()
		rs = make([]float64, 200)
	)
	floats.Span(rs, 0, 2*b.RVir)
	prev := math.Inf(1)
	for _, r := range rs {
		dens, err := b.Density(r)
		assert.NoError(t, err)
		assert.Greater(t, dens, 0.0)
		if r < b.RVir {
			// monotonically non-increasing inside the virial radius
			assert.LessOrEqual(t, dens, prev)
			prev = dens
		} else {
			// hard cut to the ambient density at and beyond r_vir
			assert.Equal(t, b.RhoCGM, dens)
		}
	}
	// Anchor: rho(r_vir^-) approaches rho_vir as the bracket terms cancel
	dens, err := b.Density(b.RVir - 1.e-12)
	assert.NoError(t, err)
	assert.InDelta(t, b.RhoVir, dens, 1.e-9)
}

func TestState(t *testing.T) {
	b := testProfile()
	// Polytropic relation inside
	dens, pres, err := b.State(0.5)
	assert.NoError(t, err)
	assert.InDelta(t, b.K*math.Pow(dens, b.Gamma), pres, 1.e-14)
	// Isothermal-like ambient relation outside
	dens, pres, err = b.State(b.RVir)
	assert.NoError(t, err)
	assert.Equal(t, b.RhoCGM, dens)
	assert.Equal(t, b.RhoCGM*b.CsCGM*b.CsCGM, pres)
}

func TestBracketGuard(t *testing.T) {
	// A negative point mass flips the potential's sign, driving the
	// hydrostatic bracket negative: the solver must fail, not emit NaN
	b := testProfile()
	b.M = -1
	_, err := b.Density(0.5)
	assert.Error(t, err)
	_, _, err = b.State(0.5)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	b := testProfile()
	assert.NoError(t, b.Validate())
	for _, mutate := range []func(*Bondi){
		func(b *Bondi) { b.Gamma = 1.0 },
		func(b *Bondi) { b.K = 0 },
		func(b *Bondi) { b.RVir = -1 },
		func(b *Bondi) { b.RhoCGM = 0 },
	} {
		bad := testProfile()
		mutate(&bad)
		assert.Error(t, bad.Validate())
	}
}

func TestFromInput(t *testing.T) {
	deck := []byte(`
problem:
  CONST_G: 1.0
  CONST_K: 0.5
  M_bh: 1.0
  epsilon: 0.1
  r_vir: 2.0
  rho_vir: 0.2
  rho_cgm: 0.01
  cs_cgm: 0.05
hydro:
  gamma: 1.6666666666666667
`)
	pin := input.NewParameterInput()
	assert.NoError(t, pin.Parse(deck))
	b, err := FromInput(pin)
	assert.NoError(t, err)
	assert.Equal(t, 0.1, b.Epsilon)
	assert.Equal(t, 2.0, b.RVir)

	// A missing required key aborts setup
	pin = input.NewParameterInput()
	assert.NoError(t, pin.Parse([]byte("problem:\n  CONST_G: 1.0\n")))
	_, err = FromInput(pin)
	assert.Error(t, err)
}
