package commands

import (
	"github.com/temirov/ctxprompt/internal/output"
)

// PromptDocument is an assembled prompt together with the content collection outcome.
type PromptDocument struct {
	Text    string
	Content ContentResult
}

// BuildPrompt renders the tree listing, then collects file contents, and joins both
// into a single document. Both stages share options and therefore the same ignore rules.
func BuildPrompt(options WalkOptions) (PromptDocument, error) {
	treeListing, treeErr := RenderTree(options)
	if treeErr != nil {
		return PromptDocument{}, treeErr
	}
	contentResult, contentErr := CollectContent(options)
	if contentErr != nil {
		return PromptDocument{}, contentErr
	}
	return PromptDocument{
		Text:    output.AssembleDocument(treeListing, contentResult.Blocks),
		Content: contentResult,
	}, nil
}
