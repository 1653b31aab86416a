// Package cmd provides tests for CLI command handlers.
package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"

	"todocli/internal/todo"
)

// setupStorage points the CLI at a fresh storage file under a temp dir.
func setupStorage(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "storage", "todo-file.json")
	t.Setenv("TODO_FILE", path)
	t.Setenv("TODO_SCHEMA", filepath.Join(tmpDir, "todo-file.schema.json"))
	origDir, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(origDir); err != nil {
			t.Fatal(err)
		}
	})
	return path
}

func TestRun(t *testing.T) {
	t.Run("shows help with --help flag", func(t *testing.T) {
		setupStorage(t)
		if err := Run(context.Background(), []string{"--help"}); err != nil {
			t.Errorf("expected no error with --help, got %v", err)
		}
	})

	t.Run("shows version with -v flag", func(t *testing.T) {
		setupStorage(t)
		if err := Run(context.Background(), []string{"-v"}); err != nil {
			t.Errorf("expected no error with -v, got %v", err)
		}
	})

	t.Run("unknown command returns error", func(t *testing.T) {
		setupStorage(t)
		err := Run(context.Background(), []string{"frobnicate"})
		if err == nil {
			t.Fatal("expected error for unknown command, got nil")
		}
		if !strings.Contains(err.Error(), "unknown command") {
			t.Errorf("expected 'unknown command' error, got %v", err)
		}
	})

	t.Run("no arguments lists tasks", func(t *testing.T) {
		setupStorage(t)
		if err := Run(context.Background(), nil); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})
}

func TestAddRemoveCompleteEndToEnd(t *testing.T) {
	path := setupStorage(t)
	ctx := context.Background()

	if err := Run(ctx, []string{"add", "Buy groceries"}); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := Run(ctx, []string{"add", "Walk", "the", "dog"}); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	list, err := todo.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("task count: got %d, want 2", len(list))
	}
	if list[1].Description != "Walk the dog" {
		t.Errorf("multi-word description: got %q", list[1].Description)
	}

	if err := Run(ctx, []string{"complete", "0"}); err != nil {
		t.Fatalf("complete failed: %v", err)
	}
	list, err = todo.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if !list[0].Completed || list[1].Completed {
		t.Errorf("complete mutated wrong task: %+v", list)
	}

	if err := Run(ctx, []string{"remove", "1"}); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	list, err = todo.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].Description != "Buy groceries" {
		t.Errorf("unexpected list after remove: %+v", list)
	}
}

func TestOutOfRangeIndexSurfacesError(t *testing.T) {
	path := setupStorage(t)
	ctx := context.Background()

	if err := Run(ctx, []string{"add", "only task"}); err != nil {
		t.Fatal(err)
	}

	for _, args := range [][]string{
		{"complete", "5"},
		{"remove", "5"},
		{"complete", "-1"},
	} {
		err := Run(ctx, args)
		var idxErr *todo.IndexError
		if !errors.As(err, &idxErr) {
			t.Errorf("%v: expected *todo.IndexError, got %v", args, err)
		}
	}

	// The list must be untouched by the failed operations.
	list, err := todo.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].Completed {
		t.Errorf("list corrupted by out-of-range ops: %+v", list)
	}
}

func TestInvalidIndexArgument(t *testing.T) {
	setupStorage(t)
	err := Run(context.Background(), []string{"remove", "abc"})
	if err == nil {
		t.Fatal("expected error for non-numeric index")
	}
	if !strings.Contains(err.Error(), "invalid index") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestAddRequiresDescription(t *testing.T) {
	setupStorage(t)
	if err := Run(context.Background(), []string{"add"}); err == nil {
		t.Fatal("expected error for add without description")
	}
}

func TestListIsReadOnly(t *testing.T) {
	path := setupStorage(t)
	ctx := context.Background()

	if err := Run(ctx, []string{"add", "a task"}); err != nil {
		t.Fatal(err)
	}
	before, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if err := Run(ctx, []string{"list"}); err != nil {
		t.Fatalf("list failed: %v", err)
	}

	after, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(before, after) {
		t.Error("list rewrote the storage file")
	}
}

func TestListFailsOnMalformedStorage(t *testing.T) {
	path := setupStorage(t)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("{broken"), 0644); err != nil {
		t.Fatal(err)
	}

	err := Run(context.Background(), []string{"list"})
	if err == nil {
		t.Fatal("expected error for malformed storage file")
	}
	if !strings.Contains(err.Error(), "parse todo file") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestWriteListFormat(t *testing.T) {
	origNoColor := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = origNoColor }()

	list := todo.List{
		{Description: "Buy groceries", Completed: true},
		{Description: "Walk the dog"},
	}

	var buf bytes.Buffer
	writeList(&buf, list)

	want := "0: Buy groceries [x]\n1: Walk the dog [ ]\n"
	if buf.String() != want {
		t.Errorf("list output:\ngot  %q\nwant %q", buf.String(), want)
	}
}

func TestParseIndex(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    int
		wantErr bool
	}{
		{name: "valid", args: []string{"3"}, want: 3},
		{name: "zero", args: []string{"0"}, want: 0},
		{name: "negative passes through", args: []string{"-2"}, want: -2},
		{name: "no args", args: nil, wantErr: true},
		{name: "too many args", args: []string{"1", "2"}, wantErr: true},
		{name: "not a number", args: []string{"x"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseIndex("test", tt.args)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestConfigCommand(t *testing.T) {
	setupStorage(t)
	ctx := context.Background()

	if err := Run(ctx, []string{"config"}); err != nil {
		t.Errorf("config failed: %v", err)
	}
	if err := Run(ctx, []string{"config", "-example"}); err != nil {
		t.Errorf("config -example failed: %v", err)
	}
	if err := Run(ctx, []string{"config", "extra"}); err == nil {
		t.Error("expected error for unexpected arguments")
	}
}

func TestDoctorCommand(t *testing.T) {
	setupStorage(t)
	ctx := context.Background()

	// Doctor passes on a missing storage file (bootstrapped later).
	if err := Run(ctx, []string{"doctor"}); err != nil {
		t.Errorf("doctor on fresh dir failed: %v", err)
	}

	// And on a valid one.
	if err := Run(ctx, []string{"add", "something"}); err != nil {
		t.Fatal(err)
	}
	if err := Run(ctx, []string{"doctor"}); err != nil {
		t.Errorf("doctor on valid storage failed: %v", err)
	}
}

func TestDoctorFailsOnInvalidStorage(t *testing.T) {
	path := setupStorage(t)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(`{"not": "an array"}`), 0644); err != nil {
		t.Fatal(err)
	}

	if err := Run(context.Background(), []string{"doctor"}); err == nil {
		t.Error("expected doctor to fail on invalid storage shape")
	}
}
