/*
Copyright © 2020 the ChemScheme authors.
This file is part of ChemScheme.

ChemScheme is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

ChemScheme is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with ChemScheme.  If not, see <http://www.gnu.org/licenses/>.
*/

package rate

import (
	"fmt"
	"math"

	"github.com/ctessum/unit"
)

const (
	boltzmann = 1.380649e-23 // J K-1

	// Volume mixing ratios of nitrogen and oxygen in dry air.
	n2Fraction = 0.7809
	o2Fraction = 0.2095
)

// AirComposition returns the number concentrations (molecule cm-3) of third
// bodies (M), nitrogen, oxygen and water vapor in air at temperature T (K),
// pressure P (Pa) and relative humidity RH (fraction, 0 to 1).
func AirComposition(T, P, RH float64) (M, N2, O2, H2O float64, err error) {
	if T <= 0 || P < 0 || RH < 0 {
		return 0, 0, 0, 0, fmt.Errorf("rate: invalid air state T=%g K, P=%g Pa, RH=%g", T, P, RH)
	}
	kB := unit.New(boltzmann, unit.Dimensions{unit.MassDim: 1, unit.LengthDim: 2,
		unit.TimeDim: -2, unit.TemperatureDim: -1})
	temp := unit.New(T, unit.Dimensions{unit.TemperatureDim: 1})
	pressure := unit.New(P, unit.Dimensions{unit.MassDim: 1, unit.LengthDim: -1, unit.TimeDim: -2})

	nAir := unit.Div(pressure, unit.Mul(kB, temp)) // m-3
	if err := nAir.Check(unit.Dimensions{unit.LengthDim: -3}); err != nil {
		return 0, 0, 0, 0, fmt.Errorf("rate: calculating air number density: %v", err)
	}
	M = nAir.Value() * 1.0e-6

	// Saturation vapor pressure over water (Pa), August-Roche-Magnus form.
	tc := T - 273.15
	es := unit.New(610.94*math.Exp(17.625*tc/(tc+243.04)), pressure.Dimensions())
	nH2O := unit.Div(unit.Mul(unit.New(RH, unit.Dimensions{}), es), unit.Mul(kB, temp))
	if err := nH2O.Check(unit.Dimensions{unit.LengthDim: -3}); err != nil {
		return 0, 0, 0, 0, fmt.Errorf("rate: calculating water vapor number density: %v", err)
	}
	return M, M * n2Fraction, M * o2Fraction, nH2O.Value() * 1.0e-6, nil
}
