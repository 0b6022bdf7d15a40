package mesh

import (
	"fmt"

	"github.com/astroflux/agnjet/input"
)

/*
	The mesh decomposes a rectangular domain into rectangular blocks of
	cells. Every block shares one set of Indices (interior cell counts and
	ghost margins); each block carries its own bounding box. Refinement,
	ghost-zone exchange and the flux integrator live outside this core: the
	kernels here only ever read bounding boxes and index ranges.
*/

// Indices holds the per-block cell counts and the inclusive interior index
// ranges, following the convention that ghost cells pad each axis on both
// sides: is = nghost, ie = is + nx1 - 1.
type Indices struct {
	Nx1, Nx2, Nx3          int
	NGhost                 int
	Is, Ie, Js, Je, Ks, Ke int
}

func NewIndices(nx1, nx2, nx3, nghost int) (indcs Indices) {
	indcs = Indices{
		Nx1: nx1, Nx2: nx2, Nx3: nx3,
		NGhost: nghost,
		Is:     nghost, Ie: nghost + nx1 - 1,
		Js: nghost, Je: nghost + nx2 - 1,
		Ks: nghost, Ke: nghost + nx3 - 1,
	}
	return
}

// NCells1 is the padded extent of axis 1 including ghost cells
func (indcs Indices) NCells1() int { return indcs.Nx1 + 2*indcs.NGhost }
func (indcs Indices) NCells2() int { return indcs.Nx2 + 2*indcs.NGhost }
func (indcs Indices) NCells3() int { return indcs.Nx3 + 2*indcs.NGhost }

// BlockSize is one block's bounding box
type BlockSize struct {
	X1Min, X1Max float64
	X2Min, X2Max float64
	X3Min, X3Max float64
}

type Mesh struct {
	Indcs  Indices
	Blocks []BlockSize // locally-owned blocks
}

func (m *Mesh) NBlocks() int { return len(m.Blocks) }

// CellCenterX maps a local interior cell index (0-based, ghosts excluded) to
// the physical center coordinate on one axis. Pure affine, no failure modes.
func CellCenterX(ithCell, nCells int, xMin, xMax float64) float64 {
	return xMin + (float64(ithCell)+0.5)*(xMax-xMin)/float64(nCells)
}

// CellCenter yields the physical center of interior cell (k, j, i) of block m,
// where the indices include the ghost offset as stored in a Field.
func (m *Mesh) CellCenter(mb, k, j, i int) (x1v, x2v, x3v float64) {
	var (
		indcs = m.Indcs
		size  = m.Blocks[mb]
	)
	x1v = CellCenterX(i-indcs.Is, indcs.Nx1, size.X1Min, size.X1Max)
	x2v = CellCenterX(j-indcs.Js, indcs.Nx2, size.X2Min, size.X2Max)
	x3v = CellCenterX(k-indcs.Ks, indcs.Nx3, size.X3Min, size.X3Max)
	return
}

// NewUniformMesh splits the root domain [x1min,x1max]x[x2min,x2max]x[x3min,x3max]
// into nmb1*nmb2*nmb3 equal blocks of nx1*nx2*nx3 interior cells each.
func NewUniformMesh(indcs Indices, x1min, x1max, x2min, x2max, x3min, x3max float64,
	nmb1, nmb2, nmb3 int) (m *Mesh, err error) {
	if indcs.Nx1 < 1 || indcs.Nx2 < 1 || indcs.Nx3 < 1 {
		err = fmt.Errorf("cell counts must be >= 1, have (%d,%d,%d)", indcs.Nx1, indcs.Nx2, indcs.Nx3)
		return
	}
	if nmb1 < 1 || nmb2 < 1 || nmb3 < 1 {
		err = fmt.Errorf("block counts must be >= 1, have (%d,%d,%d)", nmb1, nmb2, nmb3)
		return
	}
	if x1max <= x1min || x2max <= x2min || x3max <= x3min {
		err = fmt.Errorf("degenerate domain [%g,%g]x[%g,%g]x[%g,%g]",
			x1min, x1max, x2min, x2max, x3min, x3max)
		return
	}
	m = &Mesh{Indcs: indcs}
	var (
		d1 = (x1max - x1min) / float64(nmb1)
		d2 = (x2max - x2min) / float64(nmb2)
		d3 = (x3max - x3min) / float64(nmb3)
	)
	for b3 := 0; b3 < nmb3; b3++ {
		for b2 := 0; b2 < nmb2; b2++ {
			for b1 := 0; b1 < nmb1; b1++ {
				m.Blocks = append(m.Blocks, BlockSize{
					X1Min: x1min + float64(b1)*d1, X1Max: x1min + float64(b1+1)*d1,
					X2Min: x2min + float64(b2)*d2, X2Max: x2min + float64(b2+1)*d2,
					X3Min: x3min + float64(b3)*d3, X3Max: x3min + float64(b3+1)*d3,
				})
			}
		}
	}
	return
}

// FromInput builds a uniform mesh from the <mesh> section of an input deck.
func FromInput(pin *input.ParameterInput) (m *Mesh, err error) {
	var (
		nx1, nx2, nx3                            int
		x1min, x1max, x2min, x2max, x3min, x3max float64
	)
	if nx1, err = pin.GetInt("mesh", "nx1"); err != nil {
		return
	}
	if nx2, err = pin.GetInt("mesh", "nx2"); err != nil {
		return
	}
	if nx3, err = pin.GetInt("mesh", "nx3"); err != nil {
		return
	}
	if x1min, err = pin.GetReal("mesh", "x1min"); err != nil {
		return
	}
	if x1max, err = pin.GetReal("mesh", "x1max"); err != nil {
		return
	}
	if x2min, err = pin.GetReal("mesh", "x2min"); err != nil {
		return
	}
	if x2max, err = pin.GetReal("mesh", "x2max"); err != nil {
		return
	}
	if x3min, err = pin.GetReal("mesh", "x3min"); err != nil {
		return
	}
	if x3max, err = pin.GetReal("mesh", "x3max"); err != nil {
		return
	}
	nghost := pin.GetOrAddInt("mesh", "nghost", 2)
	nmb1 := pin.GetOrAddInt("mesh", "nmb1", 1)
	nmb2 := pin.GetOrAddInt("mesh", "nmb2", 1)
	nmb3 := pin.GetOrAddInt("mesh", "nmb3", 1)
	indcs := NewIndices(nx1, nx2, nx3, nghost)
	return NewUniformMesh(indcs, x1min, x1max, x2min, x2max, x3min, x3max, nmb1, nmb2, nmb3)
}
