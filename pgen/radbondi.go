package pgen

import (
	"math"
	"sync"

	"github.com/astroflux/agnjet/cooling"
	"github.com/astroflux/agnjet/input"
	"github.com/astroflux/agnjet/mesh"
	"github.com/astroflux/agnjet/par"
	"github.com/astroflux/agnjet/profile"
	"github.com/astroflux/agnjet/srcterms"
	"github.com/astroflux/agnjet/state"
	"github.com/astroflux/agnjet/units"
)

/*
	"radbondi": hydrostatic Bondi profile inside the virial radius, uniform
	circumgalactic medium outside, under point-mass gravity with tabulated
	radiative cooling. The gravity source scales with the cell's current
	conserved density. An optional v_bh sets a radial infall speed inside
	r_vir; the default is a medium initially at rest.
*/
func setupRadBondi(pin *input.ParameterInput, msh *mesh.Mesh, np int,
	u *state.Field, restart bool) (ops []srcterms.Operator, err error) {
	var (
		b  profile.Bondi
		un units.Units
	)
	if b, err = profile.FromInput(pin); err != nil {
		return
	}
	if un, err = units.FromInput(pin); err != nil {
		return
	}
	vBH := pin.GetOrAddReal("problem", "v_bh", 0.0)
	pFloor := pin.GetOrAddReal("hydro", "pfloor", 1.e-12)

	ops = []srcterms.Operator{
		&srcterms.Gravity{G: b.G, M: b.M, Epsilon: b.Epsilon, Mode: srcterms.ConservedDensity},
		&srcterms.Cooling{Gamma: b.Gamma, Units: un, Lambda: cooling.ISM().Lambda, PresFloor: pFloor},
	}
	if restart {
		return
	}

	var (
		ud   = u.Data()
		gm1  = b.Gamma - 1
		once sync.Once
		kerr error
	)
	par.CellSweep(np, msh.NBlocks(), u.Indcs, func(m, k, j, i int) {
		x1v, x2v, x3v := msh.CellCenter(m, k, j, i)
		rad := math.Sqrt(x1v*x1v + x2v*x2v + x3v*x3v)
		dens, pres, serr := b.State(rad)
		if serr != nil {
			once.Do(func() { kerr = serr })
			return
		}
		idn := u.Idx(m, state.IDN, k, j, i)
		im1, im2, im3 := u.Idx(m, state.IM1, k, j, i), u.Idx(m, state.IM2, k, j, i), u.Idx(m, state.IM3, k, j, i)
		ud[idn] = dens
		if vBH != 0 && rad > 0 && rad < b.RVir {
			// radial infall toward the point mass, scaled by local density
			ud[im1] = -dens * vBH * x1v / rad
			ud[im2] = -dens * vBH * x2v / rad
			ud[im3] = -dens * vBH * x3v / rad
		} else {
			// rad == 0 falls through here: no direction to point along
			ud[im1] = 0.0
			ud[im2] = 0.0
			ud[im3] = 0.0
		}
		ud[u.Idx(m, state.IEN, k, j, i)] = pres/gm1 +
			state.KineticEnergy(dens, ud[im1], ud[im2], ud[im3])
		for n := state.NHydro; n < u.NVar; n++ {
			ud[u.Idx(m, n, k, j, i)] = 0.0
		}
	})
	err = kerr
	return
}
