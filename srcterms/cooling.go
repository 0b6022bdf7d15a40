package srcterms

import (
	"math"
	"sync/atomic"

	"github.com/astroflux/agnjet/mesh"
	"github.com/astroflux/agnjet/par"
	"github.com/astroflux/agnjet/state"
	"github.com/astroflux/agnjet/units"
)

// CoolFn is an externally supplied cooling function Lambda(T): temperature in
// Kelvin to an emissivity coefficient in erg cm^3 s^-1.
type CoolFn func(tempCGS float64) float64

/*
	Cooling subtracts optically-thin radiative losses from the total
	energy. Density and internal energy are read from the primitive field,
	converted to cgs, turned into a number density and temperature, and the
	volumetric rate n^2*Lambda(T) is converted back to code units before
	the bdt-scaled subtraction.

	Overcooled cells are clamped to PresFloor rather than left with
	negative internal energy; the per-pass clamp count is kept so a driver
	can report runaway cooling instead of silently flooring large regions.
*/
type Cooling struct {
	Gamma     float64
	Units     units.Units
	Lambda    CoolFn
	PresFloor float64 // pressure floor in code units

	clamped atomic.Int64
}

func (c *Cooling) Label() string { return "cooling" }

// Clamped reports how many cells hit the pressure floor in the last pass
func (c *Cooling) Clamped() int64 { return c.clamped.Load() }

func (c *Cooling) Apply(msh *mesh.Mesh, np int, bdt float64, u, w *state.Field) error {
	var (
		ud, wd = u.Data(), w.Data()
		gm1    = c.Gamma - 1

		rhoCGS   = c.Units.DensityCGS()
		vCGS     = c.Units.VelocityCGS()
		tempUnit = c.Units.TemperatureUnit()
		rateUnit = c.Units.CoolingRateCGS()

		eFloor = c.PresFloor / gm1
	)
	c.clamped.Store(0)
	par.CellSweep(np, msh.NBlocks(), u.Indcs, func(m, k, j, i int) {
		densCGS := wd[w.Idx(m, state.IDN, k, j, i)] * rhoCGS
		presCGS := wd[w.Idx(m, state.IEN, k, j, i)] * gm1 * rhoCGS * vCGS * vCGS
		tempCGS := presCGS / densCGS * tempUnit

		nCGS := c.Units.NumberDensityCGS(densCGS)
		rateCode := nCGS * nCGS * c.Lambda(tempCGS) / rateUnit

		ien := u.Idx(m, state.IEN, k, j, i)
		ud[ien] -= rateCode * bdt

		// Floor on the post-update internal energy
		ke := state.KineticEnergy(
			ud[u.Idx(m, state.IDN, k, j, i)],
			ud[u.Idx(m, state.IM1, k, j, i)],
			ud[u.Idx(m, state.IM2, k, j, i)],
			ud[u.Idx(m, state.IM3, k, j, i)])
		if ud[ien]-ke < eFloor {
			ud[ien] = eFloor + ke
			c.clamped.Add(1)
		}
	})
	return nil
}

// Tcool estimates the cooling time of a uniform state in code units, handy
// for choosing stable substep durations in drivers and tests.
func (c *Cooling) Tcool(densCode, presCode float64) float64 {
	var (
		gm1     = c.Gamma - 1
		rhoCGS  = c.Units.DensityCGS()
		vCGS    = c.Units.VelocityCGS()
		densCGS = densCode * rhoCGS
		presCGS = presCode * rhoCGS * vCGS * vCGS
		tempCGS = presCGS / densCGS * c.Units.TemperatureUnit()
		nCGS    = c.Units.NumberDensityCGS(densCGS)
		rateCGS = nCGS * nCGS * c.Lambda(tempCGS)
	)
	if rateCGS == 0 {
		return math.Inf(1)
	}
	eCode := presCode / gm1
	return eCode / (rateCGS / c.Units.CoolingRateCGS())
}
