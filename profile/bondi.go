package profile

import (
	"fmt"
	"math"

	"github.com/astroflux/agnjet/input"
)

/*
	Bondi evaluates the steady hydrostatic state of a polytropic gas
	(p = K*rho^gamma) in the softened point-mass potential

		Phi(r) = -G*M / sqrt(r^2 + epsilon^2).

	Inside the virial radius the density follows the closed-form inversion
	of hydrostatic balance anchored to rho_vir at r_vir:

		rho(r) = rho_vir + B(r)^(1/(gamma-1)) - B(r_vir)^(1/(gamma-1)),
		B(r)   = -(gamma-1)/(K*gamma) * Phi(r).

	At and beyond r_vir the gas is the uniform circumgalactic ambient state
	(rho_cgm, cs_cgm) with p = rho_cgm*cs_cgm^2. The switch is a hard cut,
	not a blend.
*/
type Bondi struct {
	G, M    float64 // gravitational constant and point mass, code units
	Epsilon float64 // softening length
	K       float64 // polytropic constant
	Gamma   float64 // adiabatic index
	RVir    float64 // virial radius, reference anchor of the inversion
	RhoVir  float64 // density at RVir
	RhoCGM  float64 // ambient density beyond RVir
	CsCGM   float64 // ambient sound speed beyond RVir
}

func FromInput(pin *input.ParameterInput) (b Bondi, err error) {
	type item struct {
		dst *float64
		key string
	}
	for _, it := range []item{
		{&b.G, "CONST_G"}, {&b.M, "M_bh"}, {&b.Epsilon, "epsilon"},
		{&b.K, "CONST_K"}, {&b.RVir, "r_vir"}, {&b.RhoVir, "rho_vir"},
		{&b.RhoCGM, "rho_cgm"}, {&b.CsCGM, "cs_cgm"},
	} {
		if *it.dst, err = pin.GetReal("problem", it.key); err != nil {
			return
		}
	}
	if b.Gamma, err = pin.GetReal("hydro", "gamma"); err != nil {
		return
	}
	err = b.Validate()
	return
}

func (b Bondi) Validate() error {
	switch {
	case b.Gamma <= 1:
		return fmt.Errorf("adiabatic index must exceed 1, have %g", b.Gamma)
	case b.K <= 0:
		return fmt.Errorf("polytropic constant must be positive, have %g", b.K)
	case b.RVir <= 0:
		return fmt.Errorf("virial radius must be positive, have %g", b.RVir)
	case b.RhoCGM <= 0 || b.RhoVir <= 0:
		return fmt.Errorf("densities must be positive, have rho_vir %g, rho_cgm %g", b.RhoVir, b.RhoCGM)
	}
	return nil
}

// Phi is the softened point-mass potential; finite at r = 0 for epsilon > 0
func (b Bondi) Phi(r float64) float64 {
	return -b.G * b.M / math.Sqrt(r*r+b.Epsilon*b.Epsilon)
}

// bracket is the term raised to the fractional power 1/(gamma-1). It must be
// non-negative before exponentiation; a negative value would turn into NaN.
func (b Bondi) bracket(r float64) float64 {
	gm1 := b.Gamma - 1
	return -gm1 / (b.K * b.Gamma) * b.Phi(r)
}

// Density returns rho(r), failing fast when the hydrostatic bracket goes
// negative or the inverted profile is non-physical.
func (b Bondi) Density(r float64) (dens float64, err error) {
	if r >= b.RVir {
		return b.RhoCGM, nil
	}
	var (
		gm1    = b.Gamma - 1
		t1, t2 = b.bracket(r), b.bracket(b.RVir)
	)
	if t1 < 0 || t2 < 0 {
		err = fmt.Errorf("hydrostatic bracket negative at r=%g (%g, %g): fractional power of a negative base", r, t1, t2)
		return
	}
	dens = b.RhoVir + math.Pow(t1, 1/gm1) - math.Pow(t2, 1/gm1)
	if dens <= 0 || math.IsNaN(dens) {
		err = fmt.Errorf("inverted profile density %g at r=%g is non-physical", dens, r)
	}
	return
}

// State returns (density, pressure) at radius r
func (b Bondi) State(r float64) (dens, pres float64, err error) {
	if r >= b.RVir {
		dens = b.RhoCGM
		pres = b.RhoCGM * b.CsCGM * b.CsCGM
		return
	}
	if dens, err = b.Density(r); err != nil {
		return
	}
	pres = b.K * math.Pow(dens, b.Gamma)
	return
}
