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
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// SideEntry is one record of a species side table.
type SideEntry struct {
	// Number is the species identifier used by the table.
	Number string `toml:"number"`

	// Name is the name the mechanism file uses for the species.
	Name string `toml:"name"`

	// Structure is the optional canonical structure string (SMILES).
	Structure string `toml:"smiles"`
}

// SideTable maps mechanism species names to canonical identifiers.
// A nil *SideTable is valid and maps every name to its default identifier.
type SideTable struct {
	entries []SideEntry
	byName  map[string]int
}

// NewSideTable creates a side table from entries. Entries that repeat a
// name must agree on its structure; otherwise a *ConsistencyError is
// returned.
func NewSideTable(entries []SideEntry) (*SideTable, error) {
	s := &SideTable{byName: make(map[string]int)}
	for _, e := range entries {
		e.Name = strings.TrimSpace(e.Name)
		e.Structure = strings.TrimSpace(e.Structure)
		if e.Name == "" {
			continue
		}
		if i, ok := s.byName[e.Name]; ok {
			if s.entries[i].Structure != e.Structure {
				return nil, &ConsistencyError{Msg: fmt.Sprintf("side table gives species %s two structures: %q and %q",
					e.Name, s.entries[i].Structure, e.Structure)}
			}
			continue
		}
		s.byName[e.Name] = len(s.entries)
		s.entries = append(s.entries, e)
	}
	return s, nil
}

// Len returns the number of distinct species in the table.
func (s *SideTable) Len() int {
	if s == nil {
		return 0
	}
	return len(s.entries)
}

// Entries returns the table entries in file order.
func (s *SideTable) Entries() []SideEntry {
	if s == nil {
		return nil
	}
	return append([]SideEntry(nil), s.entries...)
}

// Canonical returns the canonical identifier for the named species and
// whether the species is in the table. Species without a structure string,
// and species that aren't in the table, get DefaultCanonical(name).
func (s *SideTable) Canonical(name string) (string, bool) {
	if s == nil {
		return DefaultCanonical(name), false
	}
	i, ok := s.byName[name]
	if !ok {
		return DefaultCanonical(name), false
	}
	if st := s.entries[i].Structure; st != "" {
		return st, true
	}
	return DefaultCanonical(name), true
}

// xmlMechanism is the layout of a species XML file.
type xmlMechanism struct {
	XMLName xml.Name `xml:"mechanism"`
	Species []struct {
		Number string `xml:"species_number,attr"`
		Name   string `xml:"species_name,attr"`
		Smiles string `xml:"smiles"`
	} `xml:"species_defs>species"`
}

// ReadSideTableXML reads a side table in the XML format
//
//	<mechanism>
//	  <species_defs>
//	    <species species_number="s1" species_name="O3"><smiles>[O-][O+]=O</smiles></species>
//	  </species_defs>
//	</mechanism>
func ReadSideTableXML(r io.Reader) (*SideTable, error) {
	var doc xmlMechanism
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("chemscheme: decoding species XML: %v", err)
	}
	entries := make([]SideEntry, len(doc.Species))
	for i, s := range doc.Species {
		entries[i] = SideEntry{Number: s.Number, Name: s.Name, Structure: s.Smiles}
	}
	return NewSideTable(entries)
}

// ReadSideTableTOML reads a side table in the TOML format
//
//	[[species]]
//	number = "s1"
//	name = "O3"
//	smiles = "[O-][O+]=O"
func ReadSideTableTOML(r io.Reader) (*SideTable, error) {
	var doc struct {
		Species []SideEntry `toml:"species"`
	}
	if _, err := toml.DecodeReader(r, &doc); err != nil {
		return nil, fmt.Errorf("chemscheme: decoding species TOML: %v", err)
	}
	return NewSideTable(doc.Species)
}

// ReadSideTable reads the side table at path. Files ending in ".toml" are
// read as TOML; all others as XML.
func ReadSideTable(path string) (*SideTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &IOError{Path: path, Err: err}
	}
	var s *SideTable
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		s, err = ReadSideTableTOML(f)
	} else {
		s, err = ReadSideTableXML(f)
	}
	if cerr := f.Close(); cerr != nil && err == nil {
		return nil, &IOError{Path: path, Err: cerr}
	}
	return s, err
}
