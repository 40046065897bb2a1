// Package migrations holds the versioned schema changes of the lens store.
package migrations

import (
	"cmp"
	"database/sql"
	"fmt"
	"slices"
	"strings"
)

// BaseVersion is the version of a store holding only the tables created by
// the kv package itself.
const BaseVersion = 1

// Step moves the store schema to Version. Its statements must tolerate
// running again against a store that already has the change.
type Step struct {
	Version     int
	Description string
	Statements  []string
}

// Apply runs the statements of the step in order.
func (s Step) Apply(db *sql.DB) error {
	for _, stmt := range s.Statements {
		if _, err := db.Exec(stmt); err != nil && !alreadyApplied(err) {
			return fmt.Errorf("v%d %q: %w", s.Version, stmt, err)
		}
	}

	return nil
}

// steps is kept sorted by version.
var steps []Step

func add(s Step) {
	steps = append(steps, s)
	slices.SortFunc(steps, func(a, b Step) int { return cmp.Compare(a.Version, b.Version) })
}

// Steps returns every known step, oldest first.
func Steps() []Step {
	return slices.Clone(steps)
}

// Head is the version of a fully migrated store.
func Head() int {
	if len(steps) == 0 {
		return BaseVersion
	}

	return max(BaseVersion, steps[len(steps)-1].Version)
}

// Since returns the steps a store at version still needs, oldest first.
func Since(version int) []Step {
	i := slices.IndexFunc(steps, func(s Step) bool { return s.Version > version })
	if i < 0 {
		return nil
	}

	return slices.Clone(steps[i:])
}

// alreadyApplied matches the SQLite errors a repeated step produces.
func alreadyApplied(err error) bool {
	msg := err.Error()

	return strings.Contains(msg, "duplicate column") || strings.Contains(msg, "already exists")
}
