package cmd

import (
	"flag"
	"fmt"
	"os"

	"todocli/internal/config"
	"todocli/internal/todo"
)

// doctorCommand checks config, the storage file, and schema validity.
func doctorCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("todo doctor", flag.ContinueOnError)
	verbose := fs.Bool("v", false, "Verbose output")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if remaining := fs.Args(); len(remaining) > 0 {
		return fmt.Errorf("unexpected arguments: %v", remaining)
	}

	fmt.Println("Todo Doctor")
	fmt.Println("===========")
	fmt.Println()

	allOK := true

	// Check working directory
	fmt.Printf("Working directory: %s\n", cfg.WorkDir)
	if _, err := os.Stat(cfg.WorkDir); err != nil {
		fmt.Printf("  ❌ Error: %v\n", err)
		allOK = false
	} else {
		fmt.Println("  ✅ OK")
	}
	fmt.Println()

	// Check storage file
	fmt.Printf("Storage file: %s\n", cfg.TodoFile)
	info, err := os.Stat(cfg.TodoFile)
	switch {
	case os.IsNotExist(err):
		fmt.Println("  ⚠️  Not found (will be bootstrapped on first use)")
	case err != nil:
		fmt.Printf("  ❌ Error: %v\n", err)
		allOK = false
	case info.IsDir():
		fmt.Println("  ❌ Error: path is a directory")
		allOK = false
	default:
		fmt.Println("  ✅ OK")
		if !checkStorageContents(cfg, *verbose) {
			allOK = false
		}
	}
	fmt.Println()

	// Check schema file
	fmt.Printf("Schema file: %s\n", cfg.SchemaFile)
	if info, err := os.Stat(cfg.SchemaFile); err != nil {
		if os.IsNotExist(err) {
			fmt.Println("  ⚠️  Not found (doctor falls back to minimal checks)")
		} else {
			fmt.Printf("  ❌ Error: %v\n", err)
			allOK = false
		}
	} else if info.IsDir() {
		fmt.Println("  ❌ Error: path is a directory")
		allOK = false
	} else {
		fmt.Println("  ✅ OK")
	}
	fmt.Println()

	if allOK {
		fmt.Println("✅ All checks passed!")
		return nil
	}
	fmt.Println("⚠️  Some checks failed.")
	return fmt.Errorf("doctor checks failed")
}

// checkStorageContents loads and validates an existing storage file,
// printing per-check lines. Returns false when any check fails.
func checkStorageContents(cfg *config.Config, verbose bool) bool {
	list, err := todo.Load(cfg.TodoFile)
	if err != nil {
		fmt.Printf("  ❌ Load error: %v\n", err)
		return false
	}

	result, err := todo.ValidateFile(cfg.TodoFile, todo.ValidationOptions{SchemaPath: cfg.SchemaFile})
	if err != nil {
		fmt.Printf("  ❌ Validation error: %v\n", err)
		return false
	}

	for _, w := range result.Warnings {
		fmt.Printf("  ⚠️  %s\n", w)
	}
	ok := true
	if result.Valid {
		if result.UsedSchema {
			fmt.Println("  ✅ Valid (schema)")
		} else {
			fmt.Println("  ✅ Valid (minimal checks)")
		}
	} else {
		fmt.Println("  ❌ Validation failed:")
		for _, e := range result.Errors {
			fmt.Printf("     - %v\n", e)
		}
		ok = false
	}

	if verbose {
		fmt.Printf("  Tasks: %d\n", len(list))
		for i, t := range list {
			fmt.Printf("    - %d: %s [%s]\n", i, t.Description, t.Marker())
		}
	}

	return ok
}
