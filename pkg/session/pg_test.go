package session

import (
	"regexp"
	"strings"
	"testing"
)

// Fully reserved PostgreSQL keywords that have previously leaked into
// column names. A bare occurrence in a column position is a syntax
// error at runtime, so the queries and the migration are checked here
// without a live database.
var pgReservedColumns = map[string]bool{
	"values":  true,
	"user":    true,
	"order":   true,
	"group":   true,
	"table":   true,
	"when":    true,
	"default": true,
}

func pgStatementColumns(t *testing.T) map[string][]string {
	t.Helper()

	insertCols := regexp.MustCompile(`INSERT INTO sessions \(([^)]+)\)`).FindStringSubmatch(pgInsertSession)
	if insertCols == nil {
		t.Fatal("insert statement has no column list")
	}
	selectCols := regexp.MustCompile(`SELECT (.+)\n`).FindStringSubmatch(pgSelectSession)
	if selectCols == nil {
		t.Fatal("select statement has no column list")
	}
	setCols := regexp.MustCompile(`(?s)SET (.+?)\s+WHERE`).FindStringSubmatch(pgUpdateSession)
	if setCols == nil {
		t.Fatal("update statement has no SET clause")
	}

	split := func(list string) []string {
		var out []string
		for _, col := range strings.Split(list, ",") {
			col = strings.TrimSpace(col)
			// For SET clauses keep only the assignment target.
			if i := strings.IndexByte(col, '='); i >= 0 {
				col = strings.TrimSpace(col[:i])
			}
			out = append(out, col)
		}
		return out
	}

	return map[string][]string{
		"insert": split(insertCols[1]),
		"select": split(selectCols[1]),
		"update": split(setCols[1]),
	}
}

func TestPgStore_QueriesAvoidReservedColumns(t *testing.T) {
	for stmt, cols := range pgStatementColumns(t) {
		for _, col := range cols {
			if pgReservedColumns[strings.ToLower(col)] {
				t.Errorf("%s statement uses reserved keyword %q as a column", stmt, col)
			}
			if !regexp.MustCompile(`^[a-z_]+$`).MatchString(col) {
				t.Errorf("%s statement has malformed column %q", stmt, col)
			}
		}
	}
}

func TestPgStore_MigrationMatchesQueries(t *testing.T) {
	schema, err := Migrations.ReadFile("migrations/00001_create_sessions.sql")
	if err != nil {
		t.Fatalf("read migration: %v", err)
	}

	defined := map[string]bool{}
	inTable := false
	for _, line := range strings.Split(string(schema), "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "CREATE TABLE sessions"):
			inTable = true
		case inTable && strings.HasPrefix(line, ");"):
			inTable = false
		case inTable:
			col := strings.SplitN(line, " ", 2)[0]
			if col != "" {
				defined[col] = true
			}
		}
	}
	if len(defined) == 0 {
		t.Fatal("no columns parsed from migration")
	}

	for col := range defined {
		if pgReservedColumns[strings.ToLower(col)] {
			t.Errorf("migration defines reserved keyword %q as a column", col)
		}
	}

	for stmt, cols := range pgStatementColumns(t) {
		for _, col := range cols {
			if !defined[col] {
				t.Errorf("%s statement references column %q not defined by the migration", stmt, col)
			}
		}
	}
}
