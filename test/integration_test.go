// ABOUTME: Integration tests for full workflow
// ABOUTME: Tests CLI commands end-to-end

package test

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func TestFullWorkflow(t *testing.T) {
	projectRoot, err := filepath.Abs("..")
	if err != nil {
		t.Fatalf("Failed to get project root: %v", err)
	}

	binary := filepath.Join(projectRoot, "fueltrack")
	buildCmd := exec.Command("go", "build", "-o", binary, "./cmd/fueltrack")
	buildCmd.Dir = projectRoot
	buildOutput, err := buildCmd.CombinedOutput()
	if err != nil {
		t.Fatalf("Failed to build: %v\nOutput: %s", err, buildOutput)
	}
	defer func() { _ = os.Remove(binary) }()

	tmpDir := t.TempDir()

	run := func(args ...string) (string, error) {
		cmd := exec.Command(binary, args...)
		cmd.Env = append(os.Environ(),
			"XDG_CONFIG_HOME="+filepath.Join(tmpDir, "config"),
			"FUELTRACK_DATA_DIR="+filepath.Join(tmpDir, "data"),
			"NO_COLOR=1",
		)
		output, err := cmd.CombinedOutput()
		return string(output), err
	}

	// Record a fill-up
	output, err := run("fillup", "40", "5.89", "--type", "gasoline", "--full")
	if err != nil {
		t.Fatalf("Failed to fillup: %v\n%s", err, output)
	}
	if !strings.Contains(output, "Registered fill-up") {
		t.Error("Expected success message")
	}

	// Drive some distance
	output, err = run("drive", "110")
	if err != nil {
		t.Fatalf("Failed to drive: %v\n%s", err, output)
	}
	if !strings.Contains(output, "Recorded 110.00 km") {
		t.Errorf("Expected distance confirmation, got:\n%s", output)
	}

	// Status shows depleted fuel
	output, err = run("status")
	if err != nil {
		t.Fatalf("Failed to get status: %v\n%s", err, output)
	}
	if !strings.Contains(output, "40.0 / 50.0 L") {
		t.Errorf("Expected 10 L burned at default efficiency, got:\n%s", output)
	}

	// Second full fill-up closes an efficiency sample
	output, err = run("fillup", "10", "6.10", "--type", "gasoline", "--full")
	if err != nil {
		t.Fatalf("Failed to fillup: %v\n%s", err, output)
	}
	if !strings.Contains(output, "1 samples") {
		t.Errorf("Expected one efficiency sample, got:\n%s", output)
	}

	// List shows both records
	output, err = run("list")
	if err != nil {
		t.Fatalf("Failed to list: %v\n%s", err, output)
	}
	if !strings.Contains(output, "2 fill-ups") {
		t.Errorf("Expected 2 fill-ups, got:\n%s", output)
	}

	// Export as CSV
	output, err = run("export", "--format", "csv")
	if err != nil {
		t.Fatalf("Failed to export: %v\n%s", err, output)
	}
	if !strings.Contains(output, "id,date,liters") {
		t.Errorf("Expected CSV header, got:\n%s", output)
	}

	// Adjust tank capacity
	output, err = run("set", "tank", "60")
	if err != nil {
		t.Fatalf("Failed to set tank: %v\n%s", err, output)
	}
	if !strings.Contains(output, "60 L") {
		t.Errorf("Expected capacity confirmation, got:\n%s", output)
	}

	// Reset everything
	output, err = run("reset", "--confirm")
	if err != nil {
		t.Fatalf("Failed to reset: %v\n%s", err, output)
	}

	output, err = run("list")
	if err != nil {
		t.Fatalf("Failed to list: %v\n%s", err, output)
	}
	if !strings.Contains(output, "No fill-ups") {
		t.Errorf("Expected empty history after reset, got:\n%s", output)
	}
}

func TestBadgerBackendWorkflow(t *testing.T) {
	projectRoot, err := filepath.Abs("..")
	if err != nil {
		t.Fatalf("Failed to get project root: %v", err)
	}

	binary := filepath.Join(projectRoot, "fueltrack-badger")
	buildCmd := exec.Command("go", "build", "-o", binary, "./cmd/fueltrack")
	buildCmd.Dir = projectRoot
	buildOutput, err := buildCmd.CombinedOutput()
	if err != nil {
		t.Fatalf("Failed to build: %v\nOutput: %s", err, buildOutput)
	}
	defer func() { _ = os.Remove(binary) }()

	tmpDir := t.TempDir()

	run := func(args ...string) (string, error) {
		cmd := exec.Command(binary, args...)
		cmd.Env = append(os.Environ(),
			"XDG_CONFIG_HOME="+filepath.Join(tmpDir, "config"),
			"FUELTRACK_DATA_DIR="+filepath.Join(tmpDir, "data"),
			"FUELTRACK_BACKEND=badger",
			"NO_COLOR=1",
		)
		output, err := cmd.CombinedOutput()
		return string(output), err
	}

	output, err := run("fillup", "30", "5.50", "--type", "diesel")
	if err != nil {
		t.Fatalf("Failed to fillup: %v\n%s", err, output)
	}

	// State survives process restarts
	output, err = run("list")
	if err != nil {
		t.Fatalf("Failed to list: %v\n%s", err, output)
	}
	if !strings.Contains(output, "1 fill-ups") {
		t.Errorf("Expected persisted fill-up, got:\n%s", output)
	}
}
