package schema

import (
	"errors"
	"testing"
)

func TestProjectDropsExtraColumns(t *testing.T) {
	table := NewTable([]string{"id", "name", "badge_color"})
	table.Rows = [][]string{{"1", "Ada", "green"}}

	projected, err := table.Project([]string{"id", "name"})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(projected.Columns) != 2 {
		t.Fatalf("expected 2 columns, got %v", projected.Columns)
	}
	if projected.Rows[0][0] != "1" || projected.Rows[0][1] != "Ada" {
		t.Fatalf("unexpected row: %v", projected.Rows[0])
	}
}

func TestProjectReorders(t *testing.T) {
	table := NewTable([]string{"name", "id"})
	table.Rows = [][]string{{"Ada", "1"}}

	projected, err := table.Project([]string{"id", "name"})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if projected.Rows[0][0] != "1" || projected.Rows[0][1] != "Ada" {
		t.Fatalf("unexpected row order: %v", projected.Rows[0])
	}
}

func TestProjectMissingColumnIsSchemaMismatch(t *testing.T) {
	table := NewTable([]string{"id", "name"})

	_, err := table.Project([]string{"id", "salary"})
	if !errors.Is(err, ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch, got %v", err)
	}
}

func TestCloneIsDeep(t *testing.T) {
	table := NewTable([]string{"id"})
	table.Rows = [][]string{{"1"}}

	clone := table.Clone()
	clone.Rows[0][0] = "2"
	clone.Columns[0] = "changed"

	if table.Rows[0][0] != "1" || table.Columns[0] != "id" {
		t.Fatalf("clone shares memory with original: %v %v", table.Columns, table.Rows)
	}
}

func TestStageErrorUnwraps(t *testing.T) {
	err := StageFailure("silver", ErrSourceNotFound)
	if !errors.Is(err, ErrSourceNotFound) {
		t.Fatalf("expected wrapped ErrSourceNotFound, got %v", err)
	}

	var stageErr *StageError
	if !errors.As(err, &stageErr) || stageErr.Stage != "silver" {
		t.Fatalf("expected silver StageError, got %v", err)
	}

	if StageFailure("gold", nil) != nil {
		t.Fatal("expected nil for nil error")
	}
}
