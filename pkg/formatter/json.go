package formatter

import (
	"encoding/json"
	"fmt"

	"github.com/kataras/figma-dtcg/pkg/dtcg"
)

// ToJSON serializes a token tree as indented DTCG JSON (two spaces) with a
// trailing newline. Key order follows the tree's insertion order.
func ToJSON(tree *dtcg.Tree) ([]byte, error) {
	data, err := json.MarshalIndent(tree, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode token tree: %w", err)
	}
	return append(data, '\n'), nil
}
