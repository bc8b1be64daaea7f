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

package chemutil

import (
	"bytes"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spatialmodel/chemscheme"
)

func init() {
	os.Setenv("CHEMSCHEME_TESTDATA", "../testdata")
}

// run executes the command line args with the example configuration and
// returns what the command printed.
func run(t *testing.T, args ...string) string {
	Cfg.Set("config", "../testdata/config.toml")
	var buf bytes.Buffer
	Root.SetOutput(&buf)
	Root.SetArgs(args)
	if err := Root.Execute(); err != nil {
		t.Fatal(err)
	}
	return buf.String()
}

func TestVersion(t *testing.T) {
	out := run(t, "version")
	if want := "ChemScheme v" + chemscheme.Version; !strings.Contains(out, want) {
		t.Errorf("have %q, want %q", out, want)
	}
}

func TestParseCmd(t *testing.T) {
	out := run(t, "parse")
	for _, want := range []string{
		"species: 11\n",
		"gas reactions: 11\n",
		"aqueous reactions: 0\n",
		"generic rate coefficients: 9\n",
		"RO2 pool: 3 (2 resolved)\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q doesn't contain %q", out, want)
		}
	}
}

func TestSpeciesCmd(t *testing.T) {
	out := run(t, "species")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 11 {
		t.Fatalf("have %d lines, want 11", len(lines))
	}
	if lines[1] != "1\tO3\t[O-][O+]=O" {
		t.Errorf("second species: have %q", lines[1])
	}
}

func TestRatesCmd(t *testing.T) {
	out := run(t, "rates")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 11 {
		t.Fatalf("have %d lines, want 11", len(lines))
	}
	if lines[5] != "5\tJ<4>\t0.008" {
		t.Errorf("photolysis rate: have %q", lines[5])
	}
	if lines[6] != "6\tJ<1>\t1e-05" {
		t.Errorf("photolysis rate: have %q", lines[6])
	}
}

func TestExportCmd(t *testing.T) {
	dir, err := ioutil.TempDir("", "chemutil")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, "mcm.db")
	Cfg.Set("OutputFile", path)
	out := run(t, "export")
	if !strings.Contains(out, path) {
		t.Errorf("output %q doesn't name the database", out)
	}
	if _, err := os.Stat(path); err != nil {
		t.Error(err)
	}
}

func TestCheckOutputFile(t *testing.T) {
	if _, err := checkOutputFile(""); err == nil {
		t.Errorf("empty output file should be an error")
	}
	if _, err := checkOutputFile("/no/such/directory/mech.db"); err == nil {
		t.Errorf("missing output directory should be an error")
	}
}

func TestFixedJ(t *testing.T) {
	j, err := fixedJ([]interface{}{"0", " 1e-5 ", ""})
	if err != nil {
		t.Fatal(err)
	}
	if len(j) != 2 || j[1] != 1e-5 {
		t.Errorf("have %v, want [0 1e-05]", j)
	}
	if _, err := fixedJ([]string{"abc"}); err == nil {
		t.Errorf("invalid photolysis rate should be an error")
	}
}

func TestSweepCmd(t *testing.T) {
	Cfg.Set("Sweep.TMin", 280.0)
	Cfg.Set("Sweep.TMax", 300.0)
	Cfg.Set("Sweep.Steps", 3)
	out := run(t, "sweep")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 4 {
		t.Fatalf("have %d lines, want 4: %q", len(lines), out)
	}
	header := strings.Split(lines[0], "\t")
	if len(header) != 12 || header[0] != "TEMP" || header[11] != "10" {
		t.Errorf("header: have %q", lines[0])
	}
	for i, want := range []string{"280", "290", "300"} {
		cells := strings.Split(lines[i+1], "\t")
		if cells[0] != want {
			t.Errorf("row %d: have temperature %s, want %s", i, cells[0], want)
		}
		if len(cells) != 12 {
			t.Errorf("row %d: have %d columns, want 12", i, len(cells))
		}
		if cells[6] != "0.008" {
			t.Errorf("row %d: photolysis rate %s, want 0.008", i, cells[6])
		}
	}
}

func TestSweepTemperatures(t *testing.T) {
	Cfg.Set("Sweep.Steps", 0)
	if _, err := sweepTemperatures(Cfg); err == nil {
		t.Errorf("zero steps should be an error")
	}
	Cfg.Set("Sweep.Steps", 1)
	Cfg.Set("Sweep.TMin", 298.0)
	if temps, err := sweepTemperatures(Cfg); err != nil || len(temps) != 1 || temps[0] != 298 {
		t.Errorf("have %v, %v; want [298]", temps, err)
	}
}

func TestExportXLSX(t *testing.T) {
	dir, err := ioutil.TempDir("", "chemutil")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, "mcm.xlsx")
	Cfg.Set("OutputFile", path)
	run(t, "export")
	if _, err := os.Stat(path); err != nil {
		t.Error(err)
	}
}
