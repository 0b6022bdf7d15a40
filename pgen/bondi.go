package pgen

import (
	"github.com/astroflux/agnjet/input"
	"github.com/astroflux/agnjet/mesh"
	"github.com/astroflux/agnjet/par"
	"github.com/astroflux/agnjet/srcterms"
	"github.com/astroflux/agnjet/state"
)

// "bondi": uniform ambient medium accreting onto a softened point mass.
// The gravity source scales with the fixed ambient density.
func setupBondi(pin *input.ParameterInput, msh *mesh.Mesh, np int,
	u *state.Field, restart bool) (ops []srcterms.Operator, err error) {
	var (
		csAmb, dAmb, mBH, eps, constG, gamma float64
	)
	type item struct {
		dst      *float64
		sec, key string
	}
	for _, it := range []item{
		{&csAmb, "problem", "cs_amb"}, {&dAmb, "problem", "d_amb"},
		{&mBH, "problem", "M_bh"}, {&eps, "problem", "epsilon"},
		{&constG, "problem", "CONST_G"}, {&gamma, "hydro", "gamma"},
	} {
		if *it.dst, err = pin.GetReal(it.sec, it.key); err != nil {
			return
		}
	}
	ops = []srcterms.Operator{
		&srcterms.Gravity{G: constG, M: mBH, Epsilon: eps, DAmb: dAmb, Mode: srcterms.AmbientDensity},
	}
	if restart {
		return
	}

	var (
		ud   = u.Data()
		gm1  = gamma - 1
		pres = dAmb * csAmb * csAmb
	)
	par.CellSweep(np, msh.NBlocks(), u.Indcs, func(m, k, j, i int) {
		ud[u.Idx(m, state.IDN, k, j, i)] = dAmb
		ud[u.Idx(m, state.IM1, k, j, i)] = 0.0
		ud[u.Idx(m, state.IM2, k, j, i)] = 0.0
		ud[u.Idx(m, state.IM3, k, j, i)] = 0.0
		ud[u.Idx(m, state.IEN, k, j, i)] = pres / gm1
		for n := state.NHydro; n < u.NVar; n++ {
			ud[u.Idx(m, n, k, j, i)] = 0.0
		}
	})
	return
}
