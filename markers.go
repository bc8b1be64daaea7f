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

package chemscheme

import (
	"fmt"
	"strings"
)

// NumMarkers is the number of tokens in a marker configuration.
const NumMarkers = 12

// Markers holds the delimiter tokens that define how each category of
// line in a mechanism file is recognized. Markers are data: nothing in the
// parser assumes a particular token value. Empty markers are allowed where
// noted and switch the corresponding check off.
type Markers struct {
	// GasReaction begins every gas-phase reaction line.
	GasReaction string

	// RO2Start opens the peroxy radical (RO2) pool declaration.
	RO2Start string

	// RO2Separator separates species in the RO2 pool declaration.
	RO2Separator string

	// RO2Prefix and RO2Suffix wrap each species name in the RO2 pool
	// declaration, for example "C(ind_" and ")". They may be empty.
	RO2Prefix, RO2Suffix string

	// RO2End terminates the RO2 pool declaration. If it is empty, the
	// declaration ends at the first line without RO2Continue.
	RO2End string

	// RO2Continue marks an RO2 pool line that continues onto the next line.
	RO2Continue string

	// GenericEnd must be present on generic rate coefficient lines if it
	// is not empty.
	GenericEnd string

	// AqueousReaction begins every aqueous-phase reaction line. If it is
	// empty, aqueous-phase reactions are not parsed.
	AqueousReaction string

	// RateStart separates a reaction equation from its rate expression.
	RateStart string

	// LabelEnd ends an optional reaction label such as "{12.}" that
	// precedes the equation. It may be empty.
	LabelEnd string

	// ReactionEnd terminates a reaction line.
	ReactionEnd string
}

// DefaultMarkers returns the markers for mechanisms in the format written by
// the Master Chemical Mechanism website for the kinetic pre-processor (KPP).
func DefaultMarkers() Markers {
	m, err := NewMarkers([]string{"{", "RO2", "+", "C(ind_", ")", "", "&", "", "", ":", "}", ";"})
	if err != nil {
		panic(err)
	}
	return m
}

// NewMarkers creates a marker configuration from the ordered list of
// NumMarkers tokens: gas reaction start, RO2 start, RO2 separator,
// RO2 prefix, RO2 suffix, RO2 end, RO2 continuation, generic rate
// coefficient end, aqueous reaction start, rate expression start,
// reaction label end and reaction end. The configuration is validated
// before it is returned.
func NewMarkers(tokens []string) (Markers, error) {
	if len(tokens) != NumMarkers {
		return Markers{}, &MarkerError{Msg: fmt.Sprintf("need %d tokens but got %d", NumMarkers, len(tokens))}
	}
	t := make([]string, len(tokens))
	for i, v := range tokens {
		t[i] = strings.TrimSpace(v)
	}
	m := Markers{
		GasReaction:     t[0],
		RO2Start:        t[1],
		RO2Separator:    t[2],
		RO2Prefix:       t[3],
		RO2Suffix:       t[4],
		RO2End:          t[5],
		RO2Continue:     t[6],
		GenericEnd:      t[7],
		AqueousReaction: t[8],
		RateStart:       t[9],
		LabelEnd:        t[10],
		ReactionEnd:     t[11],
	}
	if err := m.Validate(); err != nil {
		return Markers{}, err
	}
	return m, nil
}

// Tokens returns the markers in their configuration order.
func (m Markers) Tokens() []string {
	return []string{m.GasReaction, m.RO2Start, m.RO2Separator, m.RO2Prefix,
		m.RO2Suffix, m.RO2End, m.RO2Continue, m.GenericEnd, m.AqueousReaction,
		m.RateStart, m.LabelEnd, m.ReactionEnd}
}

// Validate checks that the markers can classify well-formed lines without
// ambiguity. Within each family of markers that are searched for in the
// same text, no marker may equal or be a prefix of another.
func (m Markers) Validate() error {
	required := []struct{ name, v string }{
		{"gas reaction start", m.GasReaction},
		{"RO2 start", m.RO2Start},
		{"RO2 separator", m.RO2Separator},
		{"rate expression start", m.RateStart},
		{"reaction end", m.ReactionEnd},
	}
	for _, r := range required {
		if r.v == "" {
			return &MarkerError{Msg: fmt.Sprintf("the %s marker must not be empty", r.name)}
		}
	}
	if m.RO2End == "" && m.RO2Continue == "" {
		return &MarkerError{Msg: "at least one of the RO2 end and RO2 continuation markers must be set"}
	}
	families := [][]struct{ name, v string }{
		{ // line starts; an RO2 declaration that begins like a reaction is never read
			{"gas reaction start", m.GasReaction},
			{"aqueous reaction start", m.AqueousReaction},
			{"RO2 start", m.RO2Start},
		},
		{ // reaction line body
			{"rate expression start", m.RateStart},
			{"reaction label end", m.LabelEnd},
			{"reaction end", m.ReactionEnd},
		},
		{ // RO2 block
			{"RO2 separator", m.RO2Separator},
			{"RO2 end", m.RO2End},
			{"RO2 continuation", m.RO2Continue},
		},
	}
	for _, f := range families {
		for i := 0; i < len(f); i++ {
			for j := i + 1; j < len(f); j++ {
				a, b := f[i], f[j]
				if a.v == "" || b.v == "" {
					continue
				}
				if strings.HasPrefix(a.v, b.v) || strings.HasPrefix(b.v, a.v) {
					return &MarkerError{Msg: fmt.Sprintf("the %s marker %q collides with the %s marker %q",
						a.name, a.v, b.name, b.v)}
				}
			}
		}
	}
	return nil
}
