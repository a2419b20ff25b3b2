//go:build stave

package main

import (
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/yaklabco/stave/pkg/sh"
	"github.com/yaklabco/stave/pkg/st"
	"github.com/yaklabco/stave/pkg/target"
)

// Default target when running `stave` with no arguments.
var Default = All

// Aliases for common targets.
var Aliases = map[string]interface{}{
	"b": Build,
	"t": Test,
	"l": Lint,
	"c": Clean,
}

// All runs the complete build pipeline: lint, test, and build.
func All() error {
	st.Deps(Init)
	st.Deps(Lint, Test)
	st.Deps(Build)
	return nil
}

// Init ensures the module dependencies are up to date.
func Init() error {
	return sh.Run("go", "mod", "tidy")
}

// Build compiles the qna-cli binary.
func Build() error {
	st.Deps(Init)
	st.Deps(Build_CLI)
	return nil
}

// Build_CLI compiles the qna-cli binary with version information.
func Build_CLI() error {
	st.Deps(Init)

	// Check if rebuild is needed
	rebuild, err := target.Glob("bin/qna-cli", "**/*.go", "go.mod", "go.sum")
	if err != nil {
		return fmt.Errorf("checking rebuild: %w", err)
	}
	if !rebuild {
		if st.Verbose() {
			fmt.Println("qna-cli is up to date")
		}
		return nil
	}

	ldflags := buildLdflags()
	return sh.RunV("go", "build", "-ldflags", ldflags, "-o", "bin/qna-cli", "./cmd/qna-cli")
}

// buildLdflags returns ldflags for version injection.
func buildLdflags() string {
	version, _ := sh.Output("git", "describe", "--tags", "--always", "--dirty")
	commit, _ := sh.Output("git", "rev-parse", "--short", "HEAD")
	date := time.Now().Format(time.RFC3339)

	return fmt.Sprintf(
		"-X main.version=%s -X main.commit=%s -X main.date=%s",
		strings.TrimSpace(version),
		strings.TrimSpace(commit),
		date,
	)
}

// Test runs all tests with race detection and coverage.
func Test() error {
	st.Deps(Init)
	return sh.RunV("go", "test", "-race", "-cover", "./...")
}

// TestShort runs tests in short mode (skips long-running tests).
func TestShort() error {
	st.Deps(Init)
	return sh.RunV("go", "test", "-short", "-race", "./...")
}

// TestVerbose runs tests with verbose output.
func TestVerbose() error {
	st.Deps(Init)
	return sh.RunV("go", "test", "-race", "-cover", "-v", "./...")
}

// Lint runs golangci-lint on the codebase.
func Lint() error {
	return sh.RunV("golangci-lint", "run", "./...")
}

// LintFix runs golangci-lint with auto-fix enabled.
func LintFix() error {
	return sh.RunV("golangci-lint", "run", "--fix", "./...")
}

// Fmt formats all Go code using gofmt and goimports.
func Fmt() error {
	if err := sh.Run("gofmt", "-w", "."); err != nil {
		return fmt.Errorf("gofmt: %w", err)
	}
	if err := sh.Run("goimports", "-w", "."); err != nil {
		return fmt.Errorf("goimports: %w", err)
	}
	return nil
}

// Vet runs go vet on all packages.
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Clean removes build artifacts.
func Clean() error {
	artifacts := []string{
		"bin/",
		"qna-cli",
		"coverage.out",
		"coverage.html",
	}
	for _, a := range artifacts {
		if err := sh.Rm(a); err != nil {
			return fmt.Errorf("removing %s: %w", a, err)
		}
	}
	return nil
}

// Install builds and installs the binaries to GOBIN.
func Install() error {
	st.Deps(Build)

	gocmd := st.GoCmd()
	bin, err := sh.Output(gocmd, "env", "GOBIN")
	if err != nil {
		return fmt.Errorf("determining GOBIN: %w", err)
	}
	if bin == "" {
		gopath, err := sh.Output(gocmd, "env", "GOPATH")
		if err != nil {
			return fmt.Errorf("determining GOPATH: %w", err)
		}
		bin = gopath + "/bin"
	}

	binaries := []string{"qna-cli"}
	for _, name := range binaries {
		src := "bin/" + name
		dst := bin + "/" + name
		if runtime.GOOS == "windows" {
			dst += ".exe"
		}
		if err := sh.Copy(dst, src); err != nil {
			return fmt.Errorf("installing %s: %w", name, err)
		}
		if st.Verbose() {
			fmt.Printf("Installed %s to %s\n", name, dst)
		}
	}
	return nil
}

// Data namespace for running the CLI against a dataset.
type Data st.Namespace

// Run derives the configured documents. Without QNA_INPUT and without a
// dataset at data/input.json the bundled fixture is used.
func (Data) Run() error {
	st.Deps(Build_CLI)

	args := []string{"run"}
	if os.Getenv("QNA_INPUT") == "" {
		if _, err := os.Stat("data/input.json"); os.IsNotExist(err) {
			args = append(args, "--input", "testdata/input.json")
		}
	}
	return sh.RunV("./bin/qna-cli", args...)
}

// Similar runs the filter and TF-IDF similarity pass over a flattened
// answers file. Set QNA_ANSWERS to choose the file (default:
// data/output/answers_flat.json).
func (Data) Similar() error {
	st.Deps(Build_CLI)

	answers := os.Getenv("QNA_ANSWERS")
	if answers == "" {
		answers = "data/output/answers_flat.json"
	}
	outDir := os.Getenv("QNA_OUTPUT_DIR")
	if outDir == "" {
		outDir = "data/output"
	}

	return sh.RunV("./bin/qna-cli", "similar", "-i", answers, "-o", outDir)
}

// Keyword prints the keyword of each title passed in QNA_TITLE.
func (Data) Keyword() error {
	st.Deps(Build_CLI)

	title := os.Getenv("QNA_TITLE")
	if title == "" {
		return fmt.Errorf("QNA_TITLE is not set")
	}
	return sh.RunV("./bin/qna-cli", "keyword", title)
}

// CI runs the full CI pipeline (lint, test, build).
func CI() error {
	st.Deps(Init)
	st.SerialDeps(Lint, Test, Build)
	return nil
}

// Check runs quick validation (vet, lint, short tests).
func Check() error {
	st.Deps(Vet, Lint, TestShort)
	return nil
}

// Coverage generates a coverage report.
func Coverage() error {
	st.Deps(Init)
	if err := sh.RunV("go", "test", "-race", "-coverprofile=coverage.out", "./..."); err != nil {
		return err
	}
	return sh.RunV("go", "tool", "cover", "-html=coverage.out", "-o", "coverage.html")
}

// Tidy runs go mod tidy and verifies the go.sum is clean.
func Tidy() error {
	if err := sh.Run("go", "mod", "tidy"); err != nil {
		return err
	}
	// Verify no changes to go.sum (useful for CI)
	output, err := sh.Output("git", "diff", "--exit-code", "go.sum")
	if err != nil {
		if output != "" {
			return fmt.Errorf("go.sum is not clean:\n%s", output)
		}
	}
	return nil
}
