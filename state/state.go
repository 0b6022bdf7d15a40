package state

import (
	"math"

	"github.com/astroflux/agnjet/mesh"
)

// Variable slots in a conserved Field. Passive scalars occupy slots
// NHydro..NHydro+NScalars-1.
const (
	IDN = iota // density
	IM1        // momentum components
	IM2
	IM3
	IEN // total energy density
	NHydro
)

// Primitive slot aliases: a primitive Field stores density, the three
// velocity components and the internal energy density in the same slots.
const (
	IVX = IM1
	IVY = IM2
	IVZ = IM3
)

/*
	Field is the 5-D state container indexed (block, variable, k, j, i) over
	one flat backing slice, padded with ghost cells on the three spatial
	axes. The conserved field is mutated in place by the initial-state
	kernel and the source-term operators; the primitive field is derived
	between substeps and read-only inside operator passes.
*/
type Field struct {
	NMb, NVar  int
	Indcs      mesh.Indices
	n1, n2, n3 int // padded extents, cached off Indcs
	data       []float64
}

func NewField(nmb, nvar int, indcs mesh.Indices) (f *Field) {
	f = &Field{
		NMb:   nmb,
		NVar:  nvar,
		Indcs: indcs,
		n1:    indcs.NCells1(),
		n2:    indcs.NCells2(),
		n3:    indcs.NCells3(),
	}
	f.data = make([]float64, nmb*nvar*f.n3*f.n2*f.n1)
	return
}

func (f *Field) NScalars() int { return f.NVar - NHydro }

// Idx flattens (m, n, k, j, i) into the backing slice offset
func (f *Field) Idx(m, n, k, j, i int) int {
	return (((m*f.NVar+n)*f.n3+k)*f.n2+j)*f.n1 + i
}

func (f *Field) At(m, n, k, j, i int) float64 {
	return f.data[f.Idx(m, n, k, j, i)]
}

func (f *Field) Set(m, n, k, j, i int, v float64) {
	f.data[f.Idx(m, n, k, j, i)] = v
}

// Data exposes the backing slice; kernels index it via Idx to avoid
// re-deriving strides per variable
func (f *Field) Data() []float64 {
	return f.data
}

func (f *Field) Copy() (g *Field) {
	g = NewField(f.NMb, f.NVar, f.Indcs)
	copy(g.data, f.data)
	return
}

// Equal reports bit-identical contents, used by idempotence checks
func (f *Field) Equal(g *Field) bool {
	if f.NMb != g.NMb || f.NVar != g.NVar || len(f.data) != len(g.data) {
		return false
	}
	for i, v := range f.data {
		if v != g.data[i] && !(math.IsNaN(v) && math.IsNaN(g.data[i])) {
			return false
		}
	}
	return true
}

// KineticEnergy is the kinetic energy density of one conserved cell
func KineticEnergy(dens, m1, m2, m3 float64) float64 {
	return 0.5 * (m1*m1 + m2*m2 + m3*m3) / dens
}

/*
	ComputePrimitives fills w from u: density carries over, velocities are
	momentum over density, and slot IEN holds the internal energy density
	e = E - ke (pressure is (gamma-1)*e). Passive scalars become mass
	fractions. The real conversion lives with the external integrator; this
	one keeps the CLI driver and the tests self-contained.
*/
func ComputePrimitives(u, w *Field) {
	// Interior cells only: ghost zones belong to the boundary-condition
	// machinery and may hold unset (zero-density) values.
	var (
		ud, wd = u.data, w.data
		indcs  = u.Indcs
	)
	for m := 0; m < u.NMb; m++ {
		for k := indcs.Ks; k <= indcs.Ke; k++ {
			for j := indcs.Js; j <= indcs.Je; j++ {
				for i := indcs.Is; i <= indcs.Ie; i++ {
					dens := ud[u.Idx(m, IDN, k, j, i)]
					m1 := ud[u.Idx(m, IM1, k, j, i)]
					m2 := ud[u.Idx(m, IM2, k, j, i)]
					m3 := ud[u.Idx(m, IM3, k, j, i)]
					wd[w.Idx(m, IDN, k, j, i)] = dens
					wd[w.Idx(m, IVX, k, j, i)] = m1 / dens
					wd[w.Idx(m, IVY, k, j, i)] = m2 / dens
					wd[w.Idx(m, IVZ, k, j, i)] = m3 / dens
					wd[w.Idx(m, IEN, k, j, i)] = ud[u.Idx(m, IEN, k, j, i)] - KineticEnergy(dens, m1, m2, m3)
					for n := NHydro; n < u.NVar; n++ {
						wd[w.Idx(m, n, k, j, i)] = ud[u.Idx(m, n, k, j, i)] / dens
					}
				}
			}
		}
	}
}
