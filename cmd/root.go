// Package cmd implements the CLI command structure for todocli.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/fatih/color"

	"todocli/internal/config"
	"todocli/internal/logging"
	"todocli/internal/todo"
	"todocli/internal/ui"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Run executes the todocli CLI.
func Run(ctx context.Context, args []string) error {
	// Create a flag set for global options
	fs := flag.NewFlagSet("todo", flag.ContinueOnError)
	fs.Usage = func() {
		printUsage(fs, os.Stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	// Global flags
	cfg, err := config.Load(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *help {
		printUsage(fs, os.Stdout)
		return nil
	}
	if *showVersion {
		return versionCommand()
	}

	logger := logging.FromConfig(cfg.LogLevel, cfg.LogFormat, cfg.LogTimestamps)
	if cfg.NoColor {
		color.NoColor = true
	}

	// Determine the subcommand; with no arguments, show the list.
	subcommand := "list"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 {
		subcommand = remainingArgs[0]
		remainingArgs = remainingArgs[1:]
	}

	// Execute the subcommand
	switch subcommand {
	case "add":
		return addCommand(cfg, logger, remainingArgs)
	case "remove", "rm":
		return removeCommand(cfg, logger, remainingArgs)
	case "list", "ls":
		return listCommand(cfg, logger, remainingArgs)
	case "complete", "done":
		return completeCommand(cfg, logger, remainingArgs)
	case "config":
		return configCommand(cfg, remainingArgs)
	case "doctor":
		return doctorCommand(cfg, remainingArgs)
	case "tui":
		return tuiCommand(ctx, cfg, remainingArgs)
	case "version", "--version", "-v":
		return versionCommand()
	case "help", "--help", "-h":
		printUsage(fs, os.Stdout)
		return nil
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, os.Stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// addCommand appends a new task and saves the list.
func addCommand(cfg *config.Config, logger *log.Logger, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("add requires a description")
	}
	description := strings.Join(args, " ")

	list, err := todo.Load(cfg.TodoFile)
	if err != nil {
		return err
	}

	list.Add(description)
	if err := list.Save(cfg.TodoFile); err != nil {
		return err
	}

	logger.Debug("task added", "index", len(list)-1, "tasks", len(list))
	fmt.Printf("Added: %s\n", description)
	return nil
}

// removeCommand deletes the task at the given index and saves the list.
func removeCommand(cfg *config.Config, logger *log.Logger, args []string) error {
	index, err := parseIndex("remove", args)
	if err != nil {
		return err
	}

	list, err := todo.Load(cfg.TodoFile)
	if err != nil {
		return err
	}

	removed, err := list.Remove(index)
	if err != nil {
		return err
	}
	if err := list.Save(cfg.TodoFile); err != nil {
		return err
	}

	logger.Debug("task removed", "index", index, "tasks", len(list))
	fmt.Printf("Removed: %s\n", removed.Description)
	return nil
}

// listCommand prints all tasks. Read-only: the storage file is never
// rewritten, so repeated listing leaves it byte-identical.
func listCommand(cfg *config.Config, logger *log.Logger, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("unexpected arguments: %v", args)
	}

	list, err := todo.Load(cfg.TodoFile)
	if err != nil {
		return err
	}

	if len(list) == 0 {
		logger.Debug("no tasks", "file", cfg.TodoFile)
		return nil
	}

	writeList(os.Stdout, list)
	return nil
}

// completeCommand marks the task at the given index as done and saves the list.
func completeCommand(cfg *config.Config, logger *log.Logger, args []string) error {
	index, err := parseIndex("complete", args)
	if err != nil {
		return err
	}

	list, err := todo.Load(cfg.TodoFile)
	if err != nil {
		return err
	}

	done, err := list.Complete(index)
	if err != nil {
		return err
	}
	if err := list.Save(cfg.TodoFile); err != nil {
		return err
	}

	logger.Debug("task completed", "index", index)
	fmt.Printf("Task '%s' marked as complete\n", done.Description)
	return nil
}

// tuiCommand launches the interactive list.
func tuiCommand(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("unexpected arguments: %v", args)
	}
	return ui.RunTUI(ctx, cfg.TodoFile)
}

// configCommand prints the resolved configuration, or an example config
// file with -example.
func configCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("todo config", flag.ContinueOnError)
	example := fs.Bool("example", false, "Print an example configuration file")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if remaining := fs.Args(); len(remaining) > 0 {
		return fmt.Errorf("unexpected arguments: %v", remaining)
	}

	if *example {
		fmt.Print(config.ExampleConfig())
		return nil
	}

	fmt.Printf("todo_file = %q\n", cfg.TodoFile)
	fmt.Printf("schema_file = %q\n", cfg.SchemaFile)
	fmt.Printf("log_level = %q\n", cfg.LogLevel)
	fmt.Printf("log_format = %q\n", cfg.LogFormat)
	fmt.Printf("log_timestamps = %v\n", cfg.LogTimestamps)
	fmt.Printf("no_color = %v\n", cfg.NoColor)
	return nil
}

// versionCommand prints version information.
func versionCommand() error {
	fmt.Printf("todo version %s\n", Version)
	return nil
}

// parseIndex extracts the single zero-based index argument of a command.
func parseIndex(command string, args []string) (int, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("%s requires exactly one index argument", command)
	}
	index, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("invalid index %q: %w", args[0], err)
	}
	return index, nil
}

// writeList renders the task list, one line per task:
//
//	{index}: {description} [{x or space}]
func writeList(w io.Writer, list todo.List) {
	done := color.New(color.FgGreen)
	for i, task := range list {
		marker := task.Marker()
		if task.Completed {
			marker = done.Sprint(marker)
		}
		fmt.Fprintf(w, "%d: %s [%s]\n", i, task.Description, marker)
	}
}

// printUsage prints the CLI usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "todo - A todo list manager with JSON file persistence")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  todo [command] [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  add <description>   Add a new task")
	fmt.Fprintln(w, "  remove <index>      Remove the task at the given index")
	fmt.Fprintln(w, "  list                List all tasks (default command)")
	fmt.Fprintln(w, "  complete <index>    Mark the task at the given index as complete")
	fmt.Fprintln(w, "  tui                 Launch the interactive terminal UI")
	fmt.Fprintln(w, "  config              Print the resolved configuration")
	fmt.Fprintln(w, "  doctor              Check config, storage file, and schema validity")
	fmt.Fprintln(w, "  version             Show version information")
	fmt.Fprintln(w, "  help                Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
}
