package units

import (
	"fmt"
	"math"

	"github.com/astroflux/agnjet/input"
)

// Physical constants in cgs
const (
	KBoltzmannCGS = 1.380649e-16 // erg/K
	MProtonCGS    = 1.67262192e-24
)

/*
	Units holds the cgs values of the three base code units and derives the
	compound conversion factors the cooling kernel needs. A quantity in code
	units times the matching factor is the same quantity in cgs.
*/
type Units struct {
	LengthCGS, MassCGS, TimeCGS float64
	Mu                          float64 // mean molecular weight
}

func FromInput(pin *input.ParameterInput) (u Units, err error) {
	if u.LengthCGS, err = pin.GetReal("units", "length_cgs"); err != nil {
		return
	}
	if u.MassCGS, err = pin.GetReal("units", "mass_cgs"); err != nil {
		return
	}
	if u.TimeCGS, err = pin.GetReal("units", "time_cgs"); err != nil {
		return
	}
	u.Mu = pin.GetOrAddReal("units", "mu", 0.6)
	if u.LengthCGS <= 0 || u.MassCGS <= 0 || u.TimeCGS <= 0 {
		err = fmt.Errorf("code units must be positive, have length %g, mass %g, time %g",
			u.LengthCGS, u.MassCGS, u.TimeCGS)
	}
	return
}

func (u Units) DensityCGS() float64 {
	return u.MassCGS / math.Pow(u.LengthCGS, 3)
}

func (u Units) VelocityCGS() float64 {
	return u.LengthCGS / u.TimeCGS
}

// TemperatureUnit converts (p/rho) in cgs to Kelvin: T = (p/rho)*mu*m_p/k_B
func (u Units) TemperatureUnit() float64 {
	return u.Mu * MProtonCGS / KBoltzmannCGS
}

// CoolingRateCGS is the code unit of volumetric energy-loss rate,
// erg cm^-3 s^-1 expressed in the base units: mass/(length*time^3).
func (u Units) CoolingRateCGS() float64 {
	return u.MassCGS / (u.LengthCGS * math.Pow(u.TimeCGS, 3))
}

// NumberDensityCGS converts a cgs mass density to a particle number density.
func (u Units) NumberDensityCGS(densCGS float64) float64 {
	return densCGS / (u.Mu * MProtonCGS)
}
