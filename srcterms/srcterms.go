package srcterms

import (
	"fmt"

	"github.com/astroflux/agnjet/mesh"
	"github.com/astroflux/agnjet/state"
)

/*
	A source-term Operator is one per-cell update rule applied once per
	integration substep: it may read the read-only primitive field w and
	its own parameters, and mutates the conserved field u in place. Every
	cell is touched by exactly one goroutine per pass (par.CellSweep), so
	operators never need locks as long as they stay within their own cell.

	Operators compose sequentially in registration order and that order is
	part of the physics: additive operators (gravity, cooling) must come
	before any overwrite operator (jet injection) so the injection region's
	state is pinned regardless of what was added earlier in the substep.
*/
type Operator interface {
	Label() string
	Apply(msh *mesh.Mesh, np int, bdt float64, u, w *state.Field) error
}

// Dispatcher is the per-substep entry point the external time integrator
// calls with the substep duration bdt.
type Dispatcher struct {
	Mesh   *mesh.Mesh
	Degree int // goroutine count per sweep, 0 = one per CPU
	ops    []Operator
}

func NewDispatcher(msh *mesh.Mesh, procLimit int, ops ...Operator) (d *Dispatcher) {
	d = &Dispatcher{Mesh: msh, Degree: procLimit}
	d.Register(ops...)
	return
}

func (d *Dispatcher) Register(ops ...Operator) {
	d.ops = append(d.ops, ops...)
}

func (d *Dispatcher) Labels() (labels []string) {
	for _, op := range d.ops {
		labels = append(labels, op.Label())
	}
	return
}

// Apply runs every registered operator over every cell of every local block,
// in registration order. A failing operator aborts the substep.
func (d *Dispatcher) Apply(bdt float64, u, w *state.Field) error {
	for _, op := range d.ops {
		if err := op.Apply(d.Mesh, d.Degree, bdt, u, w); err != nil {
			return fmt.Errorf("source term %q: %v", op.Label(), err)
		}
	}
	return nil
}
