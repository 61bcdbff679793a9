package pycode

import (
	"context"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// IsValid reports whether the source parses as syntactically valid Python.
// Parsers are not safe for concurrent use, so one is created per call.
func IsValid(source string) bool {
	parser := sitter.NewParser()
	parser.SetLanguage(python.GetLanguage())

	tree, err := parser.ParseCtx(context.Background(), nil, []byte(source))
	if err != nil {
		return false
	}
	defer tree.Close()

	return !tree.RootNode().HasError()
}
