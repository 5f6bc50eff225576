// Package extractor holds the engine's input model (collections, variables,
// text and effect styles) and the code that produces it, either by decoding
// an extraction document or by normalizing a Figma REST API response.
package extractor

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/kataras/figma-dtcg/pkg/figma"
)

// FromLocalVariables normalizes a local variables API response into engine
// collections.
//
// Collections are ordered by name, then ID, since the API keys them by ID.
// Variables follow the collection's variableIds order, and each variable's
// values follow the collection's mode order, so the first mode of a variable
// is always the collection's first mode it has a value for. Remote (library)
// collections are kept so that aliases into them still resolve.
func FromLocalVariables(resp *figma.LocalVariablesResponse) ([]Collection, error) {
	colls := make([]figma.VariableCollection, 0, len(resp.Meta.VariableCollections))
	for _, c := range resp.Meta.VariableCollections {
		colls = append(colls, c)
	}
	sort.Slice(colls, func(i, j int) bool {
		if colls[i].Name != colls[j].Name {
			return colls[i].Name < colls[j].Name
		}
		return colls[i].ID < colls[j].ID
	})

	// Variables whose collection does not list them are appended after the
	// listed ones, in name order.
	orphans := make(map[string][]figma.Variable)
	listed := make(map[string]bool)
	for _, c := range colls {
		for _, id := range c.VariableIDs {
			listed[id] = true
		}
	}
	for id, v := range resp.Meta.Variables {
		if !listed[id] {
			orphans[v.VariableCollectionID] = append(orphans[v.VariableCollectionID], v)
		}
	}

	result := make([]Collection, 0, len(colls))
	for _, c := range colls {
		coll := Collection{
			ID:    c.ID,
			Name:  c.Name,
			Modes: make([]Mode, 0, len(c.Modes)),
		}
		for _, m := range c.Modes {
			coll.Modes = append(coll.Modes, Mode{ModeID: m.ModeID, Name: m.Name})
		}

		for _, id := range c.VariableIDs {
			v, ok := resp.Meta.Variables[id]
			if !ok {
				continue
			}
			variable, err := fromVariable(v, c)
			if err != nil {
				return nil, err
			}
			coll.Variables = append(coll.Variables, variable)
		}

		extra := orphans[c.ID]
		sort.Slice(extra, func(i, j int) bool { return extra[i].Name < extra[j].Name })
		for _, v := range extra {
			variable, err := fromVariable(v, c)
			if err != nil {
				return nil, err
			}
			coll.Variables = append(coll.Variables, variable)
		}

		result = append(result, coll)
	}

	return result, nil
}

func fromVariable(v figma.Variable, c figma.VariableCollection) (Variable, error) {
	variable := Variable{
		ID:           v.ID,
		Name:         v.Name,
		Description:  v.Description,
		ResolvedType: ResolvedType(v.ResolvedType),
		Scopes:       v.Scopes,
		CollectionID: c.ID,
	}

	seen := make(map[string]bool, len(v.ValuesByMode))
	for _, m := range c.Modes {
		raw, ok := v.ValuesByMode[m.ModeID]
		if !ok {
			continue
		}
		value, err := parseRESTValue(raw)
		if err != nil {
			return Variable{}, fmt.Errorf("variable %s (%s) mode %s: %w", v.Name, v.ID, m.ModeID, err)
		}
		variable.ValuesByMode.Set(m.ModeID, value)
		seen[m.ModeID] = true
	}

	// Values for modes the collection no longer lists still count as
	// fallbacks; keep them after the known modes, in ID order.
	var rest []string
	for modeID := range v.ValuesByMode {
		if !seen[modeID] {
			rest = append(rest, modeID)
		}
	}
	sort.Strings(rest)
	for _, modeID := range rest {
		value, err := parseRESTValue(v.ValuesByMode[modeID])
		if err != nil {
			return Variable{}, fmt.Errorf("variable %s (%s) mode %s: %w", v.Name, v.ID, modeID, err)
		}
		variable.ValuesByMode.Set(modeID, value)
	}

	return variable, nil
}

// parseRESTValue converts a raw API value: a VARIABLE_ALIAS object or a literal.
func parseRESTValue(raw json.RawMessage) (VariableValue, error) {
	var alias figma.VariableAlias
	if err := json.Unmarshal(raw, &alias); err == nil && alias.Type == "VARIABLE_ALIAS" {
		if alias.ID == "" {
			return nil, fmt.Errorf("alias without variable id")
		}
		return Alias{VariableID: alias.ID}, nil
	}
	return ParseLiteral(raw)
}
