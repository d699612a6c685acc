package main

import (
	"strings"
	"testing"
)

func TestSplitStatementsDropsComments(t *testing.T) {
	script := `
-- a comment; with a semicolon inside
CREATE TABLE a (id INT);

-- another comment
CREATE TABLE b (id INT);
`

	got := splitStatements(script)
	if len(got) != 2 {
		t.Fatalf("expected 2 statements, got %d: %q", len(got), got)
	}
	if got[0] != "CREATE TABLE a (id INT)" {
		t.Fatalf("unexpected first statement: %q", got[0])
	}
}

func TestEmbeddedScriptsSplitIntoExecutableStatements(t *testing.T) {
	for name, script := range map[string]string{"schema": schemaSQL, "seed": seedSQL} {
		statements := splitStatements(script)
		if len(statements) == 0 {
			t.Fatalf("%s: no statements found", name)
		}

		for _, stmt := range statements {
			upper := strings.ToUpper(stmt)
			if !strings.HasPrefix(upper, "CREATE ") && !strings.HasPrefix(upper, "INSERT ") {
				t.Fatalf("%s: fragment is not a statement: %q", name, summarize(stmt))
			}
		}
	}
}
