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

import "fmt"

// SyntaxError is returned when a rate expression can't be parsed.
type SyntaxError struct {
	// Expr is the expression text.
	Expr string

	// Offset is the byte offset in Expr where the problem was found.
	Offset int

	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("rate: syntax error at offset %d in %q: %s", e.Offset, e.Expr, e.Msg)
}

// UndefinedError is returned when a rate expression refers to a name that
// is neither a runtime input nor a previously defined rate coefficient.
type UndefinedError struct {
	Name string
	Expr string
}

func (e *UndefinedError) Error() string {
	return fmt.Sprintf("rate: undefined name %q in %q", e.Name, e.Expr)
}
