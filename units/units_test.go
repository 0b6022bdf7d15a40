package units

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/astroflux/agnjet/input"
)

func TestUnits(t *testing.T) {
	deck := []byte(`
units:
  length_cgs: 3.086e21  # kpc
  mass_cgs: 1.989e33    # Msun
  time_cgs: 3.156e13    # Myr
`)
	pin := input.NewParameterInput()
	assert.NoError(t, pin.Parse(deck))
	u, err := FromInput(pin)
	assert.NoError(t, err)
	assert.Equal(t, 0.6, u.Mu) // default mean molecular weight

	// Compound factors against hand-computed values
	assert.InEpsilon(t, 1.989e33/(3.086e21*3.086e21*3.086e21), u.DensityCGS(), 1.e-12)
	assert.InEpsilon(t, 3.086e21/3.156e13, u.VelocityCGS(), 1.e-12)
	assert.InEpsilon(t, 1.989e33/(3.086e21*3.156e13*3.156e13*3.156e13), u.CoolingRateCGS(), 1.e-12)
	assert.InEpsilon(t, 0.6*MProtonCGS/KBoltzmannCGS, u.TemperatureUnit(), 1.e-12)

	// Number density of one cgs mass density unit
	assert.InEpsilon(t, 1.0/(0.6*MProtonCGS), u.NumberDensityCGS(1.0), 1.e-12)
}

func TestUnitsMissingAndInvalid(t *testing.T) {
	pin := input.NewParameterInput()
	assert.NoError(t, pin.Parse([]byte("units:\n  length_cgs: 1.0\n")))
	_, err := FromInput(pin)
	assert.Error(t, err) // mass_cgs missing

	pin = input.NewParameterInput()
	assert.NoError(t, pin.Parse([]byte("units:\n  length_cgs: -1.0\n  mass_cgs: 1.0\n  time_cgs: 1.0\n")))
	_, err = FromInput(pin)
	assert.Error(t, err)
}
