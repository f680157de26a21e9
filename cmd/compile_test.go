package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pl0c/report"
)

func TestLoadConfigDefaults(t *testing.T) {
	dir := t.TempDir()
	config := loadConfig(filepath.Join(dir, "prog.pl0"))

	if config.LogLevel != "error" || config.OutputPath != "" {
		t.Errorf("defaults = %q, %q", config.LogLevel, config.OutputPath)
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()

	project := "log-level = \"verbose\"\noutput-path = \"prog.lst\"\n"
	if err := os.WriteFile(filepath.Join(dir, configFileName), []byte(project), 0o644); err != nil {
		t.Fatal(err)
	}

	config := loadConfig(filepath.Join(dir, "prog.pl0"))

	if config.LogLevel != "verbose" {
		t.Errorf("log level = %q, want verbose", config.LogLevel)
	}

	if config.OutputPath != "prog.lst" {
		t.Errorf("output path = %q, want prog.lst", config.OutputPath)
	}
}

func TestCompileWritesListing(t *testing.T) {
	dir := t.TempDir()
	srcPath := filepath.Join(dir, "prog.pl0")
	outPath := filepath.Join(dir, "prog.lst")

	source := `
		var x: int;
		begin x := 2; write x end.`
	if err := os.WriteFile(srcPath, []byte(source), 0o644); err != nil {
		t.Fatal(err)
	}

	report.InitReporter(report.LogLevelSilent, srcPath)

	if !NewCompiler(srcPath, outPath).Compile() {
		t.Fatal("compilation failed")
	}

	listing, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{"main:", "LOAD_CONST 2", "WRITE", "RETURN"} {
		if !strings.Contains(string(listing), want) {
			t.Errorf("listing missing %q:\n%s", want, listing)
		}
	}
}

func TestCompileStopsOnCheckErrors(t *testing.T) {
	dir := t.TempDir()
	srcPath := filepath.Join(dir, "prog.pl0")

	source := `
		var x: boolean;
		    y: int;
		begin x := y end.`
	if err := os.WriteFile(srcPath, []byte(source), 0o644); err != nil {
		t.Fatal(err)
	}

	report.InitReporter(report.LogLevelSilent, srcPath)

	if NewCompiler(srcPath, "").Compile() {
		t.Fatal("compilation succeeded on an ill-typed program")
	}

	if report.ErrorCount() != 1 {
		t.Errorf("error count = %d, want 1", report.ErrorCount())
	}
}
