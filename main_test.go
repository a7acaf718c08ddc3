package main

import (
	"testing"

	"github.com/alecthomas/kong"
)

func TestCLI_Structure(t *testing.T) {
	// Test that the CLI struct has the expected commands
	var cli CLI

	// This is a compile-time check - if the struct changes, this will fail
	_ = cli.Create
	_ = cli.Wizard
}

func TestCreateCmdDefaults(t *testing.T) {
	dir := t.TempDir()

	var cli CLI
	parser, err := kong.New(&cli)
	if err != nil {
		t.Fatalf("Failed to build parser: %v", err)
	}

	if _, err := parser.Parse([]string{"create", dir}); err != nil {
		t.Fatalf("Failed to parse arguments: %v", err)
	}

	if cli.Create.Duration != 2.0 {
		t.Errorf("Expected default duration 2.0, got %g", cli.Create.Duration)
	}
	if cli.Create.Sort != "name" {
		t.Errorf("Expected default sort 'name', got %q", cli.Create.Sort)
	}
	if cli.Create.Output != "timelapse" {
		t.Errorf("Expected default output 'timelapse', got %q", cli.Create.Output)
	}
	if cli.Create.Threshold != 5 {
		t.Errorf("Expected default threshold 5, got %d", cli.Create.Threshold)
	}
}

func TestCreateCmdRejectsUnknownSortMode(t *testing.T) {
	dir := t.TempDir()

	var cli CLI
	parser, err := kong.New(&cli)
	if err != nil {
		t.Fatalf("Failed to build parser: %v", err)
	}

	if _, err := parser.Parse([]string{"create", dir, "--sort", "random"}); err == nil {
		t.Error("Expected parse error for unknown sort mode")
	}
}

func TestCreateCmdRejectsMissingDirectory(t *testing.T) {
	var cli CLI
	parser, err := kong.New(&cli)
	if err != nil {
		t.Fatalf("Failed to build parser: %v", err)
	}

	if _, err := parser.Parse([]string{"create", "/does/not/exist"}); err == nil {
		t.Error("Expected parse error for missing directory")
	}
}
