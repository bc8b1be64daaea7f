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
	"context"
	"reflect"
	"testing"
)

func TestCache(t *testing.T) {
	e, err := Compile(nil, []string{"ARR(2.7D-12, 360, 0)", "1.4D-12*EXP(-1310/TEMP)"}, Config{})
	if err != nil {
		t.Fatal(err)
	}
	c := NewCache(e, 2, 10)
	ctx := context.Background()

	temps := []float64{250, 300, 250, 300, 275}
	for _, T := range temps {
		in := testInputs
		in.TEMP = T
		have, err := c.Evaluate(ctx, in)
		if err != nil {
			t.Fatal(err)
		}
		want, err := e.Evaluate(in)
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(have, want) {
			t.Errorf("TEMP %g: have %v, want %v", T, have, want)
		}
		have[0] = -1 // must not change the cached value
	}
	total, evaluated := c.Requests()
	if total != 5 || evaluated != 3 {
		t.Errorf("have %d requests and %d evaluations, want 5 and 3", total, evaluated)
	}
}

func TestCacheError(t *testing.T) {
	e, err := Compile(nil, []string{"J(2)"}, Config{})
	if err != nil {
		t.Fatal(err)
	}
	c := NewCache(e, 1, 10)
	// The lights are on but there is no photolysis calculator.
	for i := 0; i < 2; i++ {
		if _, err := c.Evaluate(context.Background(), testInputs); err == nil {
			t.Errorf("attempt %d: expected an error", i)
		}
	}
}
