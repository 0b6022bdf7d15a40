package pgen

import (
	"math"

	"github.com/astroflux/agnjet/input"
	"github.com/astroflux/agnjet/mesh"
	"github.com/astroflux/agnjet/par"
	"github.com/astroflux/agnjet/srcterms"
	"github.com/astroflux/agnjet/state"
)

/*
	"jet": a confined cylindrical jet launched into a uniform ambient
	medium. The jet density follows from the kinetic luminosity l_jet
	through rho = 2*l / (v^3 * A) with A the cylinder cross-section, so the
	deck prescribes power rather than density. The injection operator pins
	the launch region every substep; the initial kernel stamps the same
	state so t=0 is consistent with every later time.
*/
func setupJet(pin *input.ParameterInput, msh *mesh.Mesh, np int,
	u *state.Field, restart bool) (ops []srcterms.Operator, err error) {
	var (
		gamma, csAmb, lJet, rJet, hJet, vJet float64
	)
	type item struct {
		dst      *float64
		sec, key string
	}
	for _, it := range []item{
		{&gamma, "hydro", "gamma"}, {&csAmb, "problem", "cs_amb"},
		{&lJet, "problem", "l_jet"}, {&rJet, "problem", "r_jet"},
		{&hJet, "problem", "h_jet"}, {&vJet, "problem", "v_jet"},
	} {
		if *it.dst, err = pin.GetReal(it.sec, it.key); err != nil {
			return
		}
	}
	dAmb := pin.GetOrAddReal("problem", "d_amb", 1.0)

	var (
		areaJet = math.Pi * rJet * rJet
		rhoJet  = 2 * lJet / (vJet * vJet * vJet * areaJet)
		pres    = dAmb * csAmb * csAmb // jet carries the ambient pressure
		gm1     = gamma - 1
		region  = srcterms.JetRegion{Radius: rJet, HalfLength: hJet}
	)
	ops = []srcterms.Operator{
		&srcterms.JetInjection{Region: region, RhoJet: rhoJet, VJet: vJet, Pres: pres, Gamma: gamma},
	}
	if restart {
		return
	}

	ud := u.Data()
	par.CellSweep(np, msh.NBlocks(), u.Indcs, func(m, k, j, i int) {
		x1v, x2v, x3v := msh.CellCenter(m, k, j, i)
		var (
			scal float64
			idn  = u.Idx(m, state.IDN, k, j, i)
			im1  = u.Idx(m, state.IM1, k, j, i)
			im2  = u.Idx(m, state.IM2, k, j, i)
			im3  = u.Idx(m, state.IM3, k, j, i)
		)
		if region.Contains(x1v, x2v, x3v) {
			scal = 1.0
			ud[idn] = rhoJet
			rad := math.Sqrt(x1v*x1v + x2v*x2v + x3v*x3v)
			if rad > 0 {
				ud[im1] = rhoJet * vJet
			} else {
				ud[im1] = 0.0
			}
			ud[im2] = 0.0
			ud[im3] = 0.0
		} else {
			scal = 0.0
			ud[idn] = dAmb
			ud[im1] = 0.0
			ud[im2] = 0.0
			ud[im3] = 0.0
		}
		ud[u.Idx(m, state.IEN, k, j, i)] = pres/gm1 +
			state.KineticEnergy(ud[idn], ud[im1], ud[im2], ud[im3])
		for n := state.NHydro; n < u.NVar; n++ {
			ud[u.Idx(m, n, k, j, i)] = scal
		}
	})
	return
}
