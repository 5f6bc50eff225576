package converter

import (
	"github.com/kataras/figma-dtcg/pkg/dtcg"
	"github.com/kataras/figma-dtcg/pkg/extractor"
)

// BuildTokenTree builds the token tree of one collection in one mode.
// Variables without a value for modeID are skipped.
func BuildTokenTree(coll *extractor.Collection, modeID string, r *Resolver) *dtcg.Tree {
	tree := dtcg.NewTree()
	for i := range coll.Variables {
		v := &coll.Variables[i]
		value, ok := r.Value(v, modeID)
		if !ok {
			continue
		}

		tok := &dtcg.Token{Value: value, Type: InferType(v)}
		if r.cfg.IncludeDescriptions {
			tok.Description = v.Description
		}
		tree.Insert(v.Name, tok)
	}
	return tree
}

// ConvertCollections returns one token file per selected collection and
// mode, in document order.
func ConvertCollections(colls []extractor.Collection, cfg *Config, r *Resolver) []dtcg.TokenFile {
	selected := make(map[string]bool, len(cfg.Collections))
	for _, id := range cfg.Collections {
		selected[id] = true
	}

	var files []dtcg.TokenFile
	for i := range colls {
		coll := &colls[i]
		if !selected[coll.ID] {
			continue
		}
		for _, mode := range coll.Modes {
			if !cfg.modeSelected(coll.ID, mode.ModeID) {
				continue
			}
			name := dtcg.Filename(coll.Name, mode.Name)
			files = append(files, dtcg.TokenFile{
				Filename:       name,
				CollectionName: coll.Name,
				ModeName:       mode.Name,
				Content:        BuildTokenTree(coll, mode.ModeID, r),
			})
		}
	}
	return files
}
