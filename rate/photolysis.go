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
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// PhotolysisRequest holds the arguments passed to a photolysis calculator.
type PhotolysisRequest struct {
	Time     float64
	Lat, Lon float64
	TEMP     float64

	// FluxFile describes the actinic flux. Its meaning is up to the
	// calculator.
	FluxFile string

	DayOfYear int

	// ParamFile holds absorption cross sections and quantum yields.
	ParamFile string

	// N is the length of the rate vector to return. Index 0 is unused.
	N int
}

// Photolysis calculates photolysis rates (s-1). Element n of the returned
// slice is the rate referred to as J(n) in rate expressions.
type Photolysis interface {
	Rates(PhotolysisRequest) ([]float64, error)
}

// PhotolysisFunc adapts a function to the Photolysis interface.
type PhotolysisFunc func(PhotolysisRequest) ([]float64, error)

// Rates calls f.
func (f PhotolysisFunc) Rates(r PhotolysisRequest) ([]float64, error) { return f(r) }

// FixedPhotolysis returns prescribed photolysis rates regardless of the
// request.
type FixedPhotolysis []float64

// Rates returns a copy of f.
func (f FixedPhotolysis) Rates(PhotolysisRequest) ([]float64, error) {
	return append([]float64(nil), f...), nil
}

// CountPhotolysis returns the length of the photolysis rate vector needed
// for the parameter file read from r. Absorption cross section headers are
// counted while they run in sequence from "J_1_axs": a header is counted
// only once the header before it has been seen, so a file with J_1, J_2
// and J_4 needs a vector of length 3.
func CountPhotolysis(r io.Reader) (int, error) {
	n := 1
	s := bufio.NewScanner(r)
	for s.Scan() {
		if strings.TrimSpace(s.Text()) == "J_"+strconv.Itoa(n)+"_axs" {
			n++
		}
	}
	if err := s.Err(); err != nil {
		return 0, fmt.Errorf("rate: reading photolysis parameters: %v", err)
	}
	return n, nil
}
