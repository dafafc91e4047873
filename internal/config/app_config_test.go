package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/temirov/ctxprompt/internal/utils"
)

type configTestCase struct {
	name              string
	globalContent     string
	localContent      string
	explicitPath      string
	explicitContent   string
	expectOutput      string
	expectClipboard   *bool
	expectUseDefaults *bool
	expectDirectories []string
	expectPatterns    []string
}

func boolPointer(value bool) *bool {
	pointer := value
	return &pointer
}

func TestLoadApplicationConfigurationMergesSources(t *testing.T) {
	testCases := []configTestCase{
		{
			name:              "local_overrides_global",
			globalContent:     "output: global.txt\nclipboard: true\nignore:\n  directories: [tmp]\n",
			localContent:      "output: local.txt\nignore:\n  directories: [build, build]\n  patterns: ['*.spec.ts']\n",
			expectOutput:      "local.txt",
			expectClipboard:   boolPointer(true),
			expectDirectories: []string{"build"},
			expectPatterns:    []string{"*.spec.ts"},
		},
		{
			name:              "global_only",
			globalContent:     "ignore:\n  use_defaults: false\n  directories: [vendor]\n",
			expectUseDefaults: boolPointer(false),
			expectDirectories: []string{"vendor"},
		},
		{
			name:            "explicit_path_replaces_local",
			localContent:    "output: local.txt\n",
			explicitPath:    "custom.yaml",
			explicitContent: "output: explicit.txt\nclipboard: false\n",
			expectOutput:    "explicit.txt",
			expectClipboard: boolPointer(false),
		},
		{
			name:            "explicit_path_without_extension",
			explicitPath:    "ctxpromptrc",
			explicitContent: "output: plain.txt\n",
			expectOutput:    "plain.txt",
		},
		{
			name: "no_files",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			homeDir := t.TempDir()
			workingDir := t.TempDir()
			if testCase.globalContent != "" {
				configDir := filepath.Join(homeDir, utils.GlobalConfigDirectoryName)
				if err := os.MkdirAll(configDir, 0o755); err != nil {
					t.Fatalf("create config dir: %v", err)
				}
				globalPath := filepath.Join(configDir, utils.GlobalConfigFileName)
				if err := os.WriteFile(globalPath, []byte(testCase.globalContent), 0o600); err != nil {
					t.Fatalf("write global config: %v", err)
				}
			}
			if testCase.localContent != "" {
				localPath := filepath.Join(workingDir, utils.LocalConfigFileName)
				if err := os.WriteFile(localPath, []byte(testCase.localContent), 0o600); err != nil {
					t.Fatalf("write local config: %v", err)
				}
			}
			if testCase.explicitPath != "" {
				target := filepath.Join(workingDir, testCase.explicitPath)
				if err := os.WriteFile(target, []byte(testCase.explicitContent), 0o600); err != nil {
					t.Fatalf("write explicit config: %v", err)
				}
			}

			t.Setenv("HOME", homeDir)
			t.Setenv("USERPROFILE", homeDir)

			loadedConfig, err := LoadApplicationConfiguration(LoadOptions{
				WorkingDirectory: workingDir,
				ExplicitFilePath: testCase.explicitPath,
			})
			if err != nil {
				t.Fatalf("LoadApplicationConfiguration error: %v", err)
			}
			if loadedConfig.Output != testCase.expectOutput {
				t.Fatalf("expected output %q, got %q", testCase.expectOutput, loadedConfig.Output)
			}
			assertBoolPointer(t, "clipboard", testCase.expectClipboard, loadedConfig.Clipboard)
			assertBoolPointer(t, "use_defaults", testCase.expectUseDefaults, loadedConfig.Ignore.UseDefaults)
			if len(testCase.expectDirectories) > 0 && !reflect.DeepEqual(loadedConfig.Ignore.Directories, testCase.expectDirectories) {
				t.Fatalf("expected directories %v, got %v", testCase.expectDirectories, loadedConfig.Ignore.Directories)
			}
			if len(testCase.expectPatterns) > 0 && !reflect.DeepEqual(loadedConfig.Ignore.Patterns, testCase.expectPatterns) {
				t.Fatalf("expected patterns %v, got %v", testCase.expectPatterns, loadedConfig.Ignore.Patterns)
			}
		})
	}
}

func TestLoadApplicationConfigurationMissingExplicitFile(t *testing.T) {
	homeDir := t.TempDir()
	t.Setenv("HOME", homeDir)
	t.Setenv("USERPROFILE", homeDir)
	_, err := LoadApplicationConfiguration(LoadOptions{WorkingDirectory: t.TempDir(), ExplicitFilePath: "absent.yaml"})
	if err == nil {
		t.Fatalf("expected error for missing explicit configuration")
	}
}

func TestLoadApplicationConfigurationRejectsMalformedYAML(t *testing.T) {
	homeDir := t.TempDir()
	t.Setenv("HOME", homeDir)
	t.Setenv("USERPROFILE", homeDir)
	workingDir := t.TempDir()
	localPath := filepath.Join(workingDir, utils.LocalConfigFileName)
	if err := os.WriteFile(localPath, []byte("ignore: [unterminated\n"), 0o600); err != nil {
		t.Fatalf("write local config: %v", err)
	}
	if _, err := LoadApplicationConfiguration(LoadOptions{WorkingDirectory: workingDir}); err == nil {
		t.Fatalf("expected error for malformed configuration")
	}
}

func assertBoolPointer(t *testing.T, name string, expected *bool, actual *bool) {
	t.Helper()
	if expected == nil {
		if actual != nil {
			t.Fatalf("expected %s to be unset, got %v", name, *actual)
		}
		return
	}
	if actual == nil || *actual != *expected {
		t.Fatalf("expected %s %v, got %v", name, *expected, actual)
	}
}
