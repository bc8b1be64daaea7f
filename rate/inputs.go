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

// Inputs holds the runtime state rate expressions are evaluated at.
type Inputs struct {
	// RO2 is the summed concentration of the peroxy radical pool
	// (molecule cm-3).
	RO2 float64

	// H2O is the water vapor concentration (molecule cm-3).
	H2O float64

	// TEMP is the temperature (K).
	TEMP float64

	// Light reports whether the lights (or sun) are on. When it is
	// false every photolysis rate is zero.
	Light bool

	// Time is the simulation time (s).
	Time float64

	// Lat and Lon are the latitude and longitude (degrees).
	Lat, Lon float64

	// DayOfYear is the day of the year, starting at 1.
	DayOfYear int

	// M, N2 and O2 are the concentrations of third bodies, nitrogen and
	// oxygen (molecule cm-3).
	M, N2, O2 float64
}

// Names of the runtime inputs available to rate expressions.
const (
	InRO2       = "RO2"
	InH2O       = "H2O"
	InTEMP      = "TEMP"
	InLight     = "lightm"
	InTime      = "time"
	InLat       = "lat"
	InLon       = "lon"
	InDayOfYear = "DayOfYear"
	InM         = "M"
	InN2        = "N2"
	InO2        = "O2"
)

// InputNames returns the names of the runtime inputs.
func InputNames() []string {
	return []string{InRO2, InH2O, InTEMP, InLight, InTime, InLat, InLon,
		InDayOfYear, InM, InN2, InO2}
}

func isInput(name string) bool {
	for _, n := range InputNames() {
		if n == name {
			return true
		}
	}
	return false
}

// get returns the named input and whether it exists.
func (in *Inputs) get(name string) (float64, bool) {
	switch name {
	case InRO2:
		return in.RO2, true
	case InH2O:
		return in.H2O, true
	case InTEMP:
		return in.TEMP, true
	case InLight:
		if in.Light {
			return 1, true
		}
		return 0, true
	case InTime:
		return in.Time, true
	case InLat:
		return in.Lat, true
	case InLon:
		return in.Lon, true
	case InDayOfYear:
		return float64(in.DayOfYear), true
	case InM:
		return in.M, true
	case InN2:
		return in.N2, true
	case InO2:
		return in.O2, true
	}
	return 0, false
}
