package srcterms

import (
	"math"

	"github.com/astroflux/agnjet/mesh"
	"github.com/astroflux/agnjet/par"
	"github.com/astroflux/agnjet/state"
)

// GravityDensityMode selects which density scales the momentum source:
// the fixed ambient constant or the cell's current conserved density.
// Both variants are physical choices made per problem configuration.
type GravityDensityMode uint8

const (
	AmbientDensity GravityDensityMode = iota
	ConservedDensity
)

/*
	Gravity applies the softened inverse-square pull of a central point
	mass. With Phi(r) = -G*M/sqrt(r^2+eps^2) the acceleration magnitude
	divided by r is

		a(r)/r = G*M / (r^2 + eps^2)^(3/2)

	so each momentum component loses rho*a(r)/r*bdt*x_n. The energy update
	is the work done on the *updated* momentum, p'.x * a(r)/r * bdt, which
	is why momentum must be written before energy within one cell.
*/
type Gravity struct {
	G, M    float64
	Epsilon float64
	DAmb    float64 // momentum scale in AmbientDensity mode
	Mode    GravityDensityMode
}

func (g *Gravity) Label() string { return "gravity" }

func (g *Gravity) Apply(msh *mesh.Mesh, np int, bdt float64, u, w *state.Field) error {
	var (
		ud   = u.Data()
		eps2 = g.Epsilon * g.Epsilon
	)
	par.CellSweep(np, msh.NBlocks(), u.Indcs, func(m, k, j, i int) {
		x1v, x2v, x3v := msh.CellCenter(m, k, j, i)
		rad2 := x1v*x1v + x2v*x2v + x3v*x3v
		gradPhiByR := g.G * g.M / math.Pow(rad2+eps2, 1.5)

		dens := g.DAmb
		if g.Mode == ConservedDensity {
			dens = ud[u.Idx(m, state.IDN, k, j, i)]
		}
		im1, im2, im3 := u.Idx(m, state.IM1, k, j, i), u.Idx(m, state.IM2, k, j, i), u.Idx(m, state.IM3, k, j, i)
		ud[im1] -= dens * gradPhiByR * bdt * x1v
		ud[im2] -= dens * gradPhiByR * bdt * x2v
		ud[im3] -= dens * gradPhiByR * bdt * x3v
		pDotR := ud[im1]*x1v + ud[im2]*x2v + ud[im3]*x3v
		ud[u.Idx(m, state.IEN, k, j, i)] -= pDotR * gradPhiByR * bdt
	})
	return nil
}
