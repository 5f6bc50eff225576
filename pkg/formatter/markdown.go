package formatter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/kataras/figma-dtcg/pkg/dtcg"
)

// ToMarkdown summarizes an export as a markdown document. It lists the
// generated files and token counts per DTCG type, then every token whose
// value is an unresolved-reference sentinel.
func ToMarkdown(files []dtcg.TokenFile, title string) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# Design Tokens - %s\n\n", title))
	sb.WriteString("This document summarizes the DTCG token files exported from the Figma file.\n\n")

	total, aliases := 0, 0
	counts := make(map[string]int)
	type unresolved struct {
		file, path, value string
	}
	var broken []unresolved

	// Files
	sb.WriteString("## Files\n\n")
	sb.WriteString("| File | Collection | Mode | Tokens |\n")
	sb.WriteString("|------|------------|------|--------|\n")
	for _, f := range files {
		n := 0
		f.Content.Walk(func(path []string, tok *dtcg.Token) {
			n++
			typ := string(tok.Type)
			if typ == "" {
				typ = "(untyped)"
			}
			counts[typ]++
			switch {
			case dtcg.IsSentinel(tok.Value):
				broken = append(broken, unresolved{f.Filename, strings.Join(path, "."), tok.Value.(string)})
			case dtcg.IsReference(tok.Value):
				aliases++
			}
		})
		total += n

		mode := f.ModeName
		if mode == "" {
			mode = "-"
		}
		sb.WriteString(fmt.Sprintf("| `%s` | %s | %s | %d |\n", f.Filename, f.CollectionName, mode, n))
	}
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("- **Files**: %d\n", len(files)))
	sb.WriteString(fmt.Sprintf("- **Tokens**: %d\n", total))
	sb.WriteString(fmt.Sprintf("- **References**: %d\n\n", aliases))

	// Types
	if len(counts) > 0 {
		types := make([]string, 0, len(counts))
		for typ := range counts {
			types = append(types, typ)
		}
		sort.Strings(types)

		sb.WriteString("## Token Types\n\n")
		sb.WriteString("| Type | Tokens |\n")
		sb.WriteString("|------|--------|\n")
		for _, typ := range types {
			sb.WriteString(fmt.Sprintf("| %s | %d |\n", typ, counts[typ]))
		}
		sb.WriteString("\n")
	}

	// Unresolved references
	if len(broken) > 0 {
		sb.WriteString("## Unresolved References\n\n")
		for _, u := range broken {
			sb.WriteString(fmt.Sprintf("- `%s` %s: `%s`\n", u.file, u.path, u.value))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
