package pgen

import (
	"fmt"
	"sort"

	"github.com/astroflux/agnjet/input"
	"github.com/astroflux/agnjet/mesh"
	"github.com/astroflux/agnjet/srcterms"
	"github.com/astroflux/agnjet/state"
)

/*
	A problem generator couples three things for one named problem: the
	parameters read from the input deck, the initial-state kernel that
	fills the conserved field once per activation, and the ordered list of
	source-term operators the external integrator drives every substep.

	On restart the initial state comes from a checkpoint owned elsewhere:
	parameters are still read and operators still registered, but the
	kernel never touches the field.
*/

type setupFn func(pin *input.ParameterInput, msh *mesh.Mesh, np int,
	u *state.Field, restart bool) (ops []srcterms.Operator, err error)

var generators = map[string]setupFn{
	"bondi":    setupBondi,
	"radbondi": setupRadBondi,
	"jet":      setupJet,
}

type Problem struct {
	Name       string
	Restart    bool
	Mesh       *mesh.Mesh
	Dispatcher *srcterms.Dispatcher
}

func Names() (names []string) {
	for name := range generators {
		names = append(names, name)
	}
	sort.Strings(names)
	return
}

// New activates the problem named by job/problem_id: it populates the
// parameters, runs the initial-state kernel over u (skipped when restart is
// set) and returns the configured source-term dispatcher.
func New(pin *input.ParameterInput, msh *mesh.Mesh, u *state.Field,
	restart bool, procLimit int) (p *Problem, err error) {
	var (
		name  string
		setup setupFn
		ok    bool
		ops   []srcterms.Operator
	)
	if name, err = pin.GetString("job", "problem_id"); err != nil {
		return
	}
	if setup, ok = generators[name]; !ok {
		err = fmt.Errorf("unknown problem_id %q, have %v", name, Names())
		return
	}
	if u.NVar < state.NHydro {
		err = fmt.Errorf("conserved field carries %d variables, need at least %d", u.NVar, state.NHydro)
		return
	}
	if u.NMb != msh.NBlocks() {
		err = fmt.Errorf("conserved field holds %d blocks, mesh owns %d", u.NMb, msh.NBlocks())
		return
	}
	if ops, err = setup(pin, msh, procLimit, u, restart); err != nil {
		return
	}
	p = &Problem{
		Name:       name,
		Restart:    restart,
		Mesh:       msh,
		Dispatcher: srcterms.NewDispatcher(msh, procLimit, ops...),
	}
	return
}
