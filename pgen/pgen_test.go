package pgen

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/astroflux/agnjet/input"
	"github.com/astroflux/agnjet/mesh"
	"github.com/astroflux/agnjet/profile"
	"github.com/astroflux/agnjet/state"
)

const gammaGas = 5.0 / 3.0

func parseDeck(t *testing.T, deck string) *input.ParameterInput {
	pin := input.NewParameterInput()
	assert.NoError(t, pin.Parse([]byte(deck)))
	return pin
}

func testMesh(t *testing.T, ext float64, nx int) *mesh.Mesh {
	indcs := mesh.NewIndices(nx, nx, nx, 2)
	m, err := mesh.NewUniformMesh(indcs, -ext, ext, -ext, ext, -ext, ext, 2, 1, 1)
	assert.NoError(t, err)
	return m
}

const bondiDeck = `
job:
  problem_id: bondi
problem:
  cs_amb: 0.3
  d_amb: 1.0
  M_bh: 1.0
  epsilon: 0.1
  CONST_G: 1.0
hydro:
  gamma: 1.6666666666666667
`

const radBondiDeck = `
job:
  problem_id: radbondi
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
units:
  length_cgs: 3.086e21
  mass_cgs: 1.989e33
  time_cgs: 3.156e13
`

const jetDeck = `
job:
  problem_id: jet
problem:
  cs_amb: 0.3
  l_jet: 0.1
  r_jet: 0.3
  h_jet: 0.5
  v_jet: 1.0
hydro:
  gamma: 1.6666666666666667
`

func TestNames(t *testing.T) {
	assert.Equal(t, []string{"bondi", "jet", "radbondi"}, Names())
}

func TestNewRejects(t *testing.T) {
	msh := testMesh(t, 1, 4)
	u := state.NewField(msh.NBlocks(), state.NHydro, msh.Indcs)

	// Unknown problem id
	pin := parseDeck(t, "job:\n  problem_id: warpdrive\n")
	_, err := New(pin, msh, u, false, 1)
	assert.Error(t, err)
	// Missing problem id entirely
	pin = parseDeck(t, "problem:\n  cs_amb: 1.0\n")
	_, err = New(pin, msh, u, false, 1)
	assert.Error(t, err)
	// Missing required physics key
	pin = parseDeck(t, "job:\n  problem_id: bondi\nproblem:\n  cs_amb: 1.0\n")
	_, err = New(pin, msh, u, false, 1)
	assert.Error(t, err)
	// Block-count mismatch between field and mesh
	pin = parseDeck(t, bondiDeck)
	short := state.NewField(1, state.NHydro, msh.Indcs)
	_, err = New(pin, msh, short, false, 1)
	assert.Error(t, err)
}

func TestBondiInit(t *testing.T) {
	var (
		msh = testMesh(t, 1, 4)
		u   = state.NewField(msh.NBlocks(), state.NHydro, msh.Indcs)
	)
	p, err := New(parseDeck(t, bondiDeck), msh, u, false, 2)
	assert.NoError(t, err)
	assert.Equal(t, "bondi", p.Name)
	assert.Equal(t, []string{"gravity"}, p.Dispatcher.Labels())

	var (
		indcs = msh.Indcs
		pres  = 1.0 * 0.3 * 0.3
		wantE = pres / (gammaGas - 1)
	)
	for m := 0; m < msh.NBlocks(); m++ {
		for k := indcs.Ks; k <= indcs.Ke; k++ {
			for j := indcs.Js; j <= indcs.Je; j++ {
				for i := indcs.Is; i <= indcs.Ie; i++ {
					assert.Equal(t, 1.0, u.At(m, state.IDN, k, j, i))
					assert.Equal(t, 0.0, u.At(m, state.IM1, k, j, i))
					assert.InDelta(t, wantE, u.At(m, state.IEN, k, j, i), 1.e-15)
				}
			}
		}
	}
}

func TestRadBondiInitMatchesProfile(t *testing.T) {
	var (
		msh = testMesh(t, 3, 6)
		u   = state.NewField(msh.NBlocks(), state.NHydro+1, msh.Indcs)
		pin = parseDeck(t, radBondiDeck)
	)
	p, err := New(pin, msh, u, false, 3)
	assert.NoError(t, err)
	assert.Equal(t, []string{"gravity", "cooling"}, p.Dispatcher.Labels())

	b, err := profile.FromInput(pin)
	assert.NoError(t, err)

	var (
		indcs         = msh.Indcs
		sawIn, sawOut bool
	)
	for m := 0; m < msh.NBlocks(); m++ {
		for k := indcs.Ks; k <= indcs.Ke; k++ {
			for j := indcs.Js; j <= indcs.Je; j++ {
				for i := indcs.Is; i <= indcs.Ie; i++ {
					x1v, x2v, x3v := msh.CellCenter(m, k, j, i)
					rad := math.Sqrt(x1v*x1v + x2v*x2v + x3v*x3v)
					dens, pres, serr := b.State(rad)
					assert.NoError(t, serr)
					assert.Equal(t, dens, u.At(m, state.IDN, k, j, i))
					assert.InDelta(t, pres/(gammaGas-1), u.At(m, state.IEN, k, j, i), 1.e-14)
					// At rest, and no marked region for the tracer
					assert.Equal(t, 0.0, u.At(m, state.IM1, k, j, i))
					assert.Equal(t, 0.0, u.At(m, state.NHydro, k, j, i))
					if rad < b.RVir {
						sawIn = true
					} else {
						sawOut = true
						assert.Equal(t, b.RhoCGM, u.At(m, state.IDN, k, j, i))
					}
				}
			}
		}
	}
	// The test domain must exercise both branches of the hard cut
	assert.True(t, sawIn)
	assert.True(t, sawOut)
}

func TestRadBondiInfall(t *testing.T) {
	var (
		msh = testMesh(t, 1, 4)
		u   = state.NewField(msh.NBlocks(), state.NHydro, msh.Indcs)
	)
	pin := parseDeck(t, radBondiDeck)
	pin.Sections["problem"]["v_bh"] = 0.1
	_, err := New(pin, msh, u, false, 2)
	assert.NoError(t, err)

	var (
		indcs = msh.Indcs
		m     = 0
		k, j  = indcs.Ks, indcs.Js
		i     = indcs.Is
	)
	// Momentum points inward along the radius and scales with local density
	x1v, x2v, x3v := msh.CellCenter(m, k, j, i)
	rad := math.Sqrt(x1v*x1v + x2v*x2v + x3v*x3v)
	dens := u.At(m, state.IDN, k, j, i)
	assert.InDelta(t, -dens*0.1*x1v/rad, u.At(m, state.IM1, k, j, i), 1.e-14)
	// Inward: momentum opposes position
	dot := u.At(m, state.IM1, k, j, i)*x1v + u.At(m, state.IM2, k, j, i)*x2v + u.At(m, state.IM3, k, j, i)*x3v
	assert.Less(t, dot, 0.0)
}

func TestJetInitScalars(t *testing.T) {
	var (
		msh = testMesh(t, 1, 8)
		u   = state.NewField(msh.NBlocks(), state.NHydro+2, msh.Indcs)
		pin = parseDeck(t, jetDeck)
	)
	p, err := New(pin, msh, u, false, 2)
	assert.NoError(t, err)
	assert.Equal(t, []string{"jet_inject"}, p.Dispatcher.Labels())

	var (
		indcs   = msh.Indcs
		rhoJet  = 2 * 0.1 / (1.0 * math.Pi * 0.3 * 0.3)
		nInside int
	)
	for m := 0; m < msh.NBlocks(); m++ {
		for k := indcs.Ks; k <= indcs.Ke; k++ {
			for j := indcs.Js; j <= indcs.Je; j++ {
				for i := indcs.Is; i <= indcs.Ie; i++ {
					x1v, x2v, x3v := msh.CellCenter(m, k, j, i)
					inside := x2v*x2v+x3v*x3v <= 0.3*0.3 && math.Abs(x1v) <= 0.5
					// Tracer marks the launch region in every scalar slot
					for n := state.NHydro; n < u.NVar; n++ {
						if inside {
							assert.Equal(t, 1.0, u.At(m, n, k, j, i))
						} else {
							assert.Equal(t, 0.0, u.At(m, n, k, j, i))
						}
					}
					if inside {
						nInside++
						assert.InDelta(t, rhoJet, u.At(m, state.IDN, k, j, i), 1.e-14)
						assert.InDelta(t, rhoJet*1.0, u.At(m, state.IM1, k, j, i), 1.e-14)
					} else {
						assert.Equal(t, 1.0, u.At(m, state.IDN, k, j, i))
					}
				}
			}
		}
	}
	assert.Greater(t, nInside, 0)
}

func TestInitIdempotentAndRestart(t *testing.T) {
	for _, deck := range []string{bondiDeck, radBondiDeck, jetDeck} {
		var (
			msh = testMesh(t, 3, 6)
			u1  = state.NewField(msh.NBlocks(), state.NHydro+1, msh.Indcs)
			u2  = state.NewField(msh.NBlocks(), state.NHydro+1, msh.Indcs)
		)
		// Two fresh activations with identical parameters agree bit for bit
		_, err := New(parseDeck(t, deck), msh, u1, false, 2)
		assert.NoError(t, err)
		_, err = New(parseDeck(t, deck), msh, u2, false, 4)
		assert.NoError(t, err)
		assert.True(t, u1.Equal(u2))
		// Re-running on the same field changes nothing
		_, err = New(parseDeck(t, deck), msh, u1, false, 2)
		assert.NoError(t, err)
		assert.True(t, u1.Equal(u2))

		// With the restart flag the kernel is a no-op but operators are
		// still registered
		u3 := u2.Copy()
		p, err := New(parseDeck(t, deck), msh, u3, true, 2)
		assert.NoError(t, err)
		assert.True(t, u3.Equal(u2))
		assert.NotEmpty(t, p.Dispatcher.Labels())
	}
}
