package commands_test

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const (
	angularComponentPath    = "src/app/app.component.ts"
	angularComponentContent = "export class AppComponent {}\n"
	appSourcePath           = "src/app.ts"
	appSourceContent        = "export const x = 1;"
	dependencyFilePath      = "node_modules/lib/index.js"
	readmeFileName          = "README.md"
	readmeContent           = "hello"
	logoFileName            = "logo.png"
)

// writeProjectFiles creates every relative path in files under rootDirectory with its content.
func writeProjectFiles(testingHandle *testing.T, rootDirectory string, files map[string]string) {
	testingHandle.Helper()
	for relativePath, content := range files {
		absolutePath := filepath.Join(rootDirectory, filepath.FromSlash(relativePath))
		if makeDirError := os.MkdirAll(filepath.Dir(absolutePath), 0o755); makeDirError != nil {
			testingHandle.Fatalf("mkdir for %s: %v", relativePath, makeDirError)
		}
		if writeError := os.WriteFile(absolutePath, []byte(content), 0o644); writeError != nil {
			testingHandle.Fatalf("writing %s: %v", relativePath, writeError)
		}
	}
}

// newObservedLogger returns a logger recording every entry at debug level and above.
func newObservedLogger() (*zap.Logger, *observer.ObservedLogs) {
	core, recorded := observer.New(zapcore.DebugLevel)
	return zap.New(core), recorded
}
