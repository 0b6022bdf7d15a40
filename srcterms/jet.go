package srcterms

import (
	"math"

	"github.com/astroflux/agnjet/mesh"
	"github.com/astroflux/agnjet/par"
	"github.com/astroflux/agnjet/state"
)

// JetRegion is the cylindrical launch region: axis along x1, radius in the
// x2-x3 plane, extending HalfLength to either side of the origin. The
// boundary is inclusive on both tests.
type JetRegion struct {
	Radius, HalfLength float64
}

func (r JetRegion) Contains(x1v, x2v, x3v float64) bool {
	r2 := x2v*x2v + x3v*x3v
	return r2 <= r.Radius*r.Radius && math.Abs(x1v) <= r.HalfLength
}

/*
	JetInjection pins the launch region to fixed injection values on every
	substep: density, axis-aligned momentum, total energy and the passive
	tracer are overwritten, not added to. Dirichlet-style forcing, so it
	must run after every additive operator in the substep.
*/
type JetInjection struct {
	Region JetRegion
	RhoJet float64
	VJet   float64
	Pres   float64 // injection pressure, matches the ambient medium
	Gamma  float64
}

func (jet *JetInjection) Label() string { return "jet_inject" }

func (jet *JetInjection) Apply(msh *mesh.Mesh, np int, bdt float64, u, w *state.Field) error {
	var (
		ud  = u.Data()
		gm1 = jet.Gamma - 1
	)
	par.CellSweep(np, msh.NBlocks(), u.Indcs, func(m, k, j, i int) {
		x1v, x2v, x3v := msh.CellCenter(m, k, j, i)
		if !jet.Region.Contains(x1v, x2v, x3v) {
			return
		}
		idn := u.Idx(m, state.IDN, k, j, i)
		im1, im2, im3 := u.Idx(m, state.IM1, k, j, i), u.Idx(m, state.IM2, k, j, i), u.Idx(m, state.IM3, k, j, i)

		ud[idn] = jet.RhoJet
		rad := math.Sqrt(x1v*x1v + x2v*x2v + x3v*x3v)
		if rad > 0 {
			ud[im1] = jet.RhoJet * jet.VJet
		} else {
			ud[im1] = 0.0 // cell centered exactly on the origin
		}
		ud[im2] = 0.0
		ud[im3] = 0.0
		ud[u.Idx(m, state.IEN, k, j, i)] = jet.Pres/gm1 +
			state.KineticEnergy(ud[idn], ud[im1], ud[im2], ud[im3])
		for n := state.NHydro; n < u.NVar; n++ {
			ud[u.Idx(m, n, k, j, i)] = 1.0
		}
	})
	return nil
}
