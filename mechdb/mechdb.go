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

// Package mechdb stores parsed chemical mechanisms in SQLite databases so
// that solvers and analysis tools written in other languages can use them.
package mechdb

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"

	"github.com/spatialmodel/chemscheme"

	_ "modernc.org/sqlite" // pure go sqlite driver
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS mechanism (
		fingerprint TEXT NOT NULL,
		markers TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS species (
		idx INTEGER PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		canonical TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS reactions (
		phase TEXT NOT NULL,
		reaction INTEGER NOT NULL,
		rate TEXT NOT NULL,
		PRIMARY KEY (phase, reaction)
	)`,
	`CREATE TABLE IF NOT EXISTS reaction_terms (
		phase TEXT NOT NULL,
		reaction INTEGER NOT NULL,
		side TEXT NOT NULL,
		col INTEGER NOT NULL,
		species INTEGER NOT NULL,
		stoich REAL NOT NULL,
		PRIMARY KEY (phase, reaction, side, col)
	)`,
	`CREATE TABLE IF NOT EXISTS generic_rates (
		position INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		expr TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS ro2 (
		pool_position INTEGER PRIMARY KEY,
		species INTEGER NOT NULL
	)`,
}

var tables = []string{"mechanism", "species", "reactions", "reaction_terms", "generic_rates", "ro2"}

// Create writes m to a new SQLite database file at path, replacing any
// file that is already there.
func Create(ctx context.Context, path string, m *chemscheme.Mechanism) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("mechdb: removing old database: %v", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("mechdb: opening %s: %v", path, err)
	}
	if err := Write(ctx, db, m); err != nil {
		db.Close()
		return err
	}
	return db.Close()
}

// Write stores m in db in a single transaction, replacing any mechanism
// already stored there.
func Write(ctx context.Context, db *sql.DB, m *chemscheme.Mechanism) (retErr error) {
	for _, s := range schema {
		if _, err := db.ExecContext(ctx, s); err != nil {
			return fmt.Errorf("mechdb: creating tables: %v", err)
		}
	}
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("mechdb: %v", err)
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()
	for _, t := range tables {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+t); err != nil {
			return fmt.Errorf("mechdb: clearing %s: %v", t, err)
		}
	}

	if _, err := tx.ExecContext(ctx, `INSERT INTO mechanism (fingerprint, markers) VALUES (?, ?)`,
		m.Fingerprint(), strings.Join(m.Markers.Tokens(), "\t")); err != nil {
		return fmt.Errorf("mechdb: writing mechanism: %v", err)
	}
	for _, s := range m.Species.All() {
		if _, err := tx.ExecContext(ctx, `INSERT INTO species (idx, name, canonical) VALUES (?, ?, ?)`,
			s.Index, s.Name, s.Canonical); err != nil {
			return fmt.Errorf("mechdb: writing species %s: %v", s.Name, err)
		}
	}
	for _, p := range []chemscheme.Phase{chemscheme.Gas, chemscheme.Aqueous} {
		if err := writePhase(ctx, tx, m.DB(p)); err != nil {
			return err
		}
	}
	for i, d := range m.Generic {
		if _, err := tx.ExecContext(ctx, `INSERT INTO generic_rates (position, name, expr) VALUES (?, ?, ?)`,
			i, d.Name, d.Expr); err != nil {
			return fmt.Errorf("mechdb: writing rate coefficient %s: %v", d.Name, err)
		}
	}
	for _, r := range m.RO2 {
		if _, err := tx.ExecContext(ctx, `INSERT INTO ro2 (pool_position, species) VALUES (?, ?)`,
			r.Pool, r.Species); err != nil {
			return fmt.Errorf("mechdb: writing RO2 index: %v", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("mechdb: %v", err)
	}
	return nil
}

func writePhase(ctx context.Context, tx *sql.Tx, rdb *chemscheme.ReactionDB) error {
	phase := rdb.Phase.String()
	for i := 0; i < rdb.Len(); i++ {
		r := rdb.Reaction(i)
		if _, err := tx.ExecContext(ctx, `INSERT INTO reactions (phase, reaction, rate) VALUES (?, ?, ?)`,
			phase, i, r.Rate); err != nil {
			return fmt.Errorf("mechdb: writing %s reaction %d: %v", phase, i, err)
		}
		sides := []struct {
			name  string
			terms []chemscheme.Term
		}{{"reactant", r.Reactants}, {"product", r.Products}}
		for _, side := range sides {
			for j, t := range side.terms {
				if _, err := tx.ExecContext(ctx, `INSERT INTO reaction_terms (phase, reaction, side, col, species, stoich)
					VALUES (?, ?, ?, ?, ?, ?)`, phase, i, side.name, j, t.Species, t.Stoich); err != nil {
					return fmt.Errorf("mechdb: writing %s reaction %d: %v", phase, i, err)
				}
			}
		}
	}
	return nil
}

// Counts holds the number of records of each kind in a mechanism database.
type Counts struct {
	Species, GasReactions, AqueousReactions, Terms, Generic, RO2 int
	Fingerprint                                                  string
}

// Count returns the record counts of the mechanism stored in db.
func Count(ctx context.Context, db *sql.DB) (Counts, error) {
	var c Counts
	queries := []struct {
		q    string
		args []interface{}
		dst  *int
	}{
		{`SELECT COUNT(*) FROM species`, nil, &c.Species},
		{`SELECT COUNT(*) FROM reactions WHERE phase = ?`, []interface{}{chemscheme.Gas.String()}, &c.GasReactions},
		{`SELECT COUNT(*) FROM reactions WHERE phase = ?`, []interface{}{chemscheme.Aqueous.String()}, &c.AqueousReactions},
		{`SELECT COUNT(*) FROM reaction_terms`, nil, &c.Terms},
		{`SELECT COUNT(*) FROM generic_rates`, nil, &c.Generic},
		{`SELECT COUNT(*) FROM ro2`, nil, &c.RO2},
	}
	for _, q := range queries {
		if err := db.QueryRowContext(ctx, q.q, q.args...).Scan(q.dst); err != nil {
			return c, fmt.Errorf("mechdb: counting: %v", err)
		}
	}
	if err := db.QueryRowContext(ctx, `SELECT fingerprint FROM mechanism`).Scan(&c.Fingerprint); err != nil {
		return c, fmt.Errorf("mechdb: reading fingerprint: %v", err)
	}
	return c, nil
}
