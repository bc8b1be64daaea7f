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

import "fmt"

// ConsistencyError is returned when the species side table and the
// mechanism disagree about species identity in a way that can't be
// reconciled automatically. It aborts the whole parse.
type ConsistencyError struct {
	Msg string
}

func (e *ConsistencyError) Error() string {
	return "chemscheme: inconsistent species information: " + e.Msg
}

// IOError is returned when the mechanism file or the species side table
// can't be read.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("chemscheme: reading %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *IOError) Unwrap() error { return e.Err }

// MarkerError is returned when a marker configuration can't be used to
// classify lines unambiguously.
type MarkerError struct {
	Msg string
}

func (e *MarkerError) Error() string {
	return "chemscheme: invalid marker configuration: " + e.Msg
}
