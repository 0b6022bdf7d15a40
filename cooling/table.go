package cooling

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/interp"
)

/*
	Table is an optically-thin radiative cooling function Lambda(T) built
	from tabulated (T, Lambda) samples in cgs (K, erg cm^3 s^-1). The
	samples are interpolated piecewise-linearly in log-log space, the usual
	representation for cooling curves spanning many decades. Below the
	first tabulated temperature the gas is treated as thermally inert and
	Lambda is zero; above the last tabulated temperature the curve is held
	at its endpoint value.
*/
type Table struct {
	pl               interp.PiecewiseLinear
	logTMin, logTMax float64
}

func NewTable(tempK, lambda []float64) (t *Table, err error) {
	if len(tempK) != len(lambda) {
		err = fmt.Errorf("cooling table has %d temperatures but %d rates", len(tempK), len(lambda))
		return
	}
	if len(tempK) < 2 {
		err = fmt.Errorf("cooling table needs at least 2 samples, have %d", len(tempK))
		return
	}
	var (
		logT = make([]float64, len(tempK))
		logL = make([]float64, len(lambda))
	)
	for n := range tempK {
		if tempK[n] <= 0 || lambda[n] <= 0 {
			err = fmt.Errorf("cooling table sample %d (%g K, %g) is not positive", n, tempK[n], lambda[n])
			return
		}
		if n > 0 && tempK[n] <= tempK[n-1] {
			err = fmt.Errorf("cooling table temperatures must be strictly increasing at sample %d", n)
			return
		}
		logT[n] = math.Log10(tempK[n])
		logL[n] = math.Log10(lambda[n])
	}
	t = &Table{logTMin: logT[0], logTMax: logT[len(logT)-1]}
	if err = t.pl.Fit(logT, logL); err != nil {
		t = nil
	}
	return
}

// Lambda evaluates the cooling function at a temperature in Kelvin
func (t *Table) Lambda(tempCGS float64) (lambda float64) {
	if tempCGS <= 0 {
		return 0
	}
	logT := math.Log10(tempCGS)
	if logT < t.logTMin {
		return 0
	}
	if logT > t.logTMax {
		logT = t.logTMax
	}
	return math.Pow(10, t.pl.Predict(logT))
}

// ismSamples approximates a solar-metallicity collisional-ionization-
// equilibrium curve: the Lyman-alpha wall near 2e4 K, the metal-line peak
// around 2e5 K, and the slow bremsstrahlung recovery at high T.
var ismSamples = [][2]float64{
	{4.0, -23.80}, {4.2, -22.70}, {4.4, -22.00}, {4.6, -21.80},
	{4.8, -21.60}, {5.0, -21.30}, {5.2, -21.10}, {5.4, -21.00},
	{5.6, -21.08}, {5.8, -21.20}, {6.0, -21.40}, {6.2, -21.70},
	{6.4, -21.90}, {6.6, -22.05}, {6.8, -22.20}, {7.0, -22.35},
	{7.2, -22.45}, {7.4, -22.50}, {7.6, -22.50}, {7.8, -22.48},
	{8.0, -22.45}, {8.5, -22.30}, {9.0, -22.10},
}

// ISM returns the built-in interstellar-medium cooling table
func ISM() (t *Table) {
	var (
		tempK  = make([]float64, len(ismSamples))
		lambda = make([]float64, len(ismSamples))
		err    error
	)
	for n, s := range ismSamples {
		tempK[n] = math.Pow(10, s[0])
		lambda[n] = math.Pow(10, s[1])
	}
	if t, err = NewTable(tempK, lambda); err != nil {
		panic(err) // static table, cannot fail
	}
	return
}
