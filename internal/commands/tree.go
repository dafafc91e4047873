package commands

import (
	"strings"

	"github.com/temirov/ctxprompt/internal/output"
)

// RenderTree produces the indented listing of retained directories and files under options.Root.
// The listing starts with the project structure header and ends with a blank line.
// A directory whose files are all filtered out is still listed by name.
func RenderTree(options WalkOptions) (string, error) {
	var treeBuilder strings.Builder
	treeBuilder.WriteString(output.TreeHeader())

	handler := func(event WalkEvent) error {
		treeBuilder.WriteString(output.FormatTreeLine(event.Depth, event.Name, event.Kind == WalkEventDirectory))
		return nil
	}
	if walkErr := Walk(options, handler); walkErr != nil {
		return "", walkErr
	}

	treeBuilder.WriteString(output.TreeFooter())
	return treeBuilder.String(), nil
}
