package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/temirov/ctxprompt/internal/config"
	"github.com/temirov/ctxprompt/internal/utils"
)

// WalkEventKind distinguishes directory and file events.
type WalkEventKind int

const (
	// WalkEventDirectory is emitted when a retained directory is entered.
	WalkEventDirectory WalkEventKind = iota
	// WalkEventFile is emitted for every retained file.
	WalkEventFile
)

const (
	warningListDirectoryMessage = "skipping unreadable directory"
	debugSpecialFileMessage     = "skipping special file"
	errorNilHandlerMessage      = "walk handler is nil"
	errorStatRootFormat         = "stat root %s: %w"
	errorRootNotDirectoryFormat = "root %s is not a directory"
	logFieldPath                = "path"
)

// WalkEvent describes one retained directory or file.
type WalkEvent struct {
	Kind         WalkEventKind
	Name         string
	Path         string
	RelativePath string
	Depth        int
}

// WalkOptions configures a traversal.
type WalkOptions struct {
	Root          string
	Rules         *config.IgnoreRules
	ExcludedFiles []string
	Logger        *zap.Logger
}

type directoryWalker struct {
	options       WalkOptions
	logger        *zap.Logger
	excludedFiles []os.FileInfo
	handler       func(WalkEvent) error
}

// Walk visits the tree under options.Root depth first. Every directory event is
// followed by the events of its retained files in lexicographic order, then by
// the retained subdirectories in lexicographic order. Ignored directories are
// never descended into. Unreadable directories are skipped with a warning.
func Walk(options WalkOptions, handler func(WalkEvent) error) error {
	if handler == nil {
		return errors.New(errorNilHandlerMessage)
	}
	if options.Rules == nil {
		options.Rules = config.DefaultIgnoreRules()
	}
	logger := options.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	rootInfo, statErr := os.Stat(options.Root)
	if statErr != nil {
		return fmt.Errorf(errorStatRootFormat, options.Root, statErr)
	}
	if !rootInfo.IsDir() {
		return fmt.Errorf(errorRootNotDirectoryFormat, options.Root)
	}

	walker := directoryWalker{options: options, logger: logger, handler: handler}
	for _, excludedPath := range options.ExcludedFiles {
		if excludedInfo, excludedStatErr := os.Stat(excludedPath); excludedStatErr == nil {
			walker.excludedFiles = append(walker.excludedFiles, excludedInfo)
		}
	}

	return walker.walkDirectory(options.Root, filepath.Base(options.Root), ".", 0)
}

func (walker *directoryWalker) walkDirectory(path string, name string, relativePath string, depth int) error {
	entries, readErr := os.ReadDir(path)
	if readErr != nil {
		walker.logger.Warn(warningListDirectoryMessage, zap.String(logFieldPath, path), zap.Error(readErr))
		return nil
	}

	if err := walker.handler(WalkEvent{
		Kind:         WalkEventDirectory,
		Name:         name,
		Path:         path,
		RelativePath: relativePath,
		Depth:        depth,
	}); err != nil {
		return err
	}

	var subdirectories []os.DirEntry
	for _, entry := range entries {
		entryName := entry.Name()
		childPath := filepath.Join(path, entryName)
		childRelativePath := utils.JoinRelativePath(relativePath, entryName)

		kind, retained := walker.classify(entry, childPath)
		if !retained {
			continue
		}
		if kind == WalkEventDirectory {
			if walker.options.Rules.ShouldSkipDirectory(entryName, childRelativePath) {
				continue
			}
			subdirectories = append(subdirectories, entry)
			continue
		}
		if walker.options.Rules.ShouldSkipFile(entryName, childRelativePath) {
			continue
		}
		if walker.isExcludedFile(entry) {
			continue
		}
		if err := walker.handler(WalkEvent{
			Kind:         WalkEventFile,
			Name:         entryName,
			Path:         childPath,
			RelativePath: childRelativePath,
			Depth:        depth + 1,
		}); err != nil {
			return err
		}
	}

	for _, subdirectory := range subdirectories {
		subdirectoryName := subdirectory.Name()
		if err := walker.walkDirectory(
			filepath.Join(path, subdirectoryName),
			subdirectoryName,
			utils.JoinRelativePath(relativePath, subdirectoryName),
			depth+1,
		); err != nil {
			return err
		}
	}
	return nil
}

// classify reports whether an entry is a directory or a file and whether it takes part in the walk.
// Symbolic links to directories are not followed. Symbolic links to files and dangling links count
// as files. Pipes, sockets and devices are left out.
func (walker *directoryWalker) classify(entry os.DirEntry, childPath string) (WalkEventKind, bool) {
	entryType := entry.Type()
	switch {
	case entryType.IsDir():
		return WalkEventDirectory, true
	case entryType.IsRegular():
		return WalkEventFile, true
	case entryType&fs.ModeSymlink != 0:
		targetInfo, statErr := os.Stat(childPath)
		if statErr != nil {
			return WalkEventFile, true
		}
		if targetInfo.IsDir() {
			return WalkEventDirectory, false
		}
		return WalkEventFile, targetInfo.Mode().IsRegular()
	default:
		walker.logger.Debug(debugSpecialFileMessage, zap.String(logFieldPath, childPath))
		return WalkEventFile, false
	}
}

func (walker *directoryWalker) isExcludedFile(entry os.DirEntry) bool {
	if len(walker.excludedFiles) == 0 {
		return false
	}
	entryInfo, infoErr := entry.Info()
	if infoErr != nil {
		return false
	}
	for _, excludedInfo := range walker.excludedFiles {
		if os.SameFile(entryInfo, excludedInfo) {
			return true
		}
	}
	return false
}
