package main_test

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

const (
	binaryBaseName    = "ctxprompt_integration_test_binary"
	defaultOutputName = "project_context.txt"
)

// #nosec G204
func buildBinary(testSetup *testing.T) string {
	testSetup.Helper()
	binaryName := binaryBaseName
	if runtime.GOOS == "windows" {
		binaryName += ".exe"
	}
	binaryPath := filepath.Join(testSetup.TempDir(), binaryName)

	packageDirectory, directoryError := os.Getwd()
	if directoryError != nil {
		testSetup.Fatalf("Failed to get current working directory: %v", directoryError)
	}
	buildCommand := exec.Command("go", "build", "-o", binaryPath, ".")
	buildCommand.Dir = packageDirectory
	outputData, buildErr := buildCommand.CombinedOutput()
	if buildErr != nil {
		testSetup.Fatalf("Failed to build binary in %s: %v\nBuild Output:\n%s", packageDirectory, buildErr, string(outputData))
	}
	return binaryPath
}

// #nosec G204
func runBinary(testSetup *testing.T, binaryPath string, workingDirectory string, arguments ...string) (string, string, int) {
	testSetup.Helper()
	command := exec.Command(binaryPath, arguments...)
	command.Dir = workingDirectory
	command.Env = append(os.Environ(), "HOME="+testSetup.TempDir())

	var standardOutputBuffer, standardErrorBuffer bytes.Buffer
	command.Stdout = &standardOutputBuffer
	command.Stderr = &standardErrorBuffer

	exitCode := 0
	if runError := command.Run(); runError != nil {
		var exitError *exec.ExitError
		if !errors.As(runError, &exitError) {
			testSetup.Fatalf("Command %s %s did not run: %v", filepath.Base(binaryPath), strings.Join(arguments, " "), runError)
		}
		exitCode = exitError.ExitCode()
	}
	return standardOutputBuffer.String(), standardErrorBuffer.String(), exitCode
}

func TestBinaryGeneratesPrompt(testSetup *testing.T) {
	if testing.Short() {
		testSetup.Skip("builds the binary")
	}
	binaryPath := buildBinary(testSetup)
	workingDirectory := testSetup.TempDir()
	sourcePath := filepath.Join(workingDirectory, "src", "main.ts")
	if makeDirError := os.MkdirAll(filepath.Dir(sourcePath), 0o755); makeDirError != nil {
		testSetup.Fatalf("mkdir: %v", makeDirError)
	}
	if writeError := os.WriteFile(sourcePath, []byte("console.log(1);\n"), 0o644); writeError != nil {
		testSetup.Fatalf("write: %v", writeError)
	}

	standardOutput, standardError, exitCode := runBinary(testSetup, binaryPath, workingDirectory)
	if exitCode != 0 {
		testSetup.Fatalf("unexpected exit code %d\nstdout:\n%s\nstderr:\n%s", exitCode, standardOutput, standardError)
	}
	if !strings.Contains(standardOutput, "Prompt saved to: ") || !strings.Contains(standardOutput, "Approximate token count: ") {
		testSetup.Fatalf("missing report lines:\n%s", standardOutput)
	}
	if !strings.Contains(standardError, "Scanning project") {
		testSetup.Fatalf("missing progress log on stderr:\n%s", standardError)
	}
	document, readError := os.ReadFile(filepath.Join(workingDirectory, defaultOutputName))
	if readError != nil {
		testSetup.Fatalf("prompt file not written: %v", readError)
	}
	if !strings.Contains(string(document), "--- START OF FILE: src/main.ts ---") {
		testSetup.Fatalf("unexpected prompt:\n%s", document)
	}
}

func TestBinaryFailsForMissingRoot(testSetup *testing.T) {
	if testing.Short() {
		testSetup.Skip("builds the binary")
	}
	binaryPath := buildBinary(testSetup)
	workingDirectory := testSetup.TempDir()

	_, standardError, exitCode := runBinary(testSetup, binaryPath, workingDirectory, "does-not-exist")
	if exitCode != 1 {
		testSetup.Fatalf("expected exit code 1, got %d", exitCode)
	}
	expectedMessage := fmt.Sprintf("path '%s' does not exist", "does-not-exist")
	if !strings.Contains(standardError, expectedMessage) {
		testSetup.Fatalf("stderr misses %q:\n%s", expectedMessage, standardError)
	}
	if _, statError := os.Stat(filepath.Join(workingDirectory, defaultOutputName)); !errors.Is(statError, os.ErrNotExist) {
		testSetup.Fatalf("no output expected for a missing root")
	}
}
