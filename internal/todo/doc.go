// Package todo holds the task list data model and its JSON persistence.
//
// The storage file (storage/todo-file.json) is a plain JSON array:
//
//	[
//	  {
//	    "description": "Buy groceries",
//	    "completed": false
//	  }
//	]
//
// Tasks have no identifier beyond their position in the array; insertion
// order is display order is index basis. Each save rewrites the whole file.
//
// # Index handling
//
// Remove and Complete take zero-based indices. An index outside
// [0, len(list)) returns an *IndexError and leaves the list untouched.
// Earlier versions silently ignored bad indices; surfacing the error is a
// deliberate behavior change.
//
// # Validation
//
// Validate checks the storage file contents against a JSON Schema
// (draft 2020-12) when one is available, and falls back to minimal
// structural checks otherwise. Used by the doctor command.
//
// # File format
//
// When writing the storage file, the package uses:
//   - 2-space indentation
//   - Trailing newline
//   - Stable key order (description, completed)
package todo
