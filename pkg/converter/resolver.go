package converter

import (
	"github.com/kataras/figma-dtcg/pkg/dtcg"
	"github.com/kataras/figma-dtcg/pkg/extractor"
)

// VariableMap indexes the variables of every collection by id, so that
// aliases across collections resolve.
type VariableMap map[string]*extractor.Variable

// BuildVariableMap indexes all variables of colls. The map points into colls,
// which must not be modified while it is in use.
func BuildVariableMap(colls []extractor.Collection) VariableMap {
	m := make(VariableMap)
	for i := range colls {
		for j := range colls[i].Variables {
			v := &colls[i].Variables[j]
			m[v.ID] = v
		}
	}
	return m
}

// Resolver renders variable values, following aliases either into {path}
// references or into the literal value at the end of the chain.
//
// A Resolver holds no per-resolution state and can be reused for any number
// of variables and modes.
type Resolver struct {
	vars   VariableMap
	cfg    *Config
	logger Logger
}

// NewResolver returns a Resolver over vars. A nil logger discards warnings.
func NewResolver(vars VariableMap, cfg *Config, logger Logger) *Resolver {
	return &Resolver{vars: vars, cfg: cfg, logger: orNop(logger)}
}

// Value returns the $value of v in modeID, or false when v has no value for
// that mode.
func (r *Resolver) Value(v *extractor.Variable, modeID string) (any, bool) {
	val, ok := v.ValuesByMode.Get(modeID)
	if !ok {
		return nil, false
	}

	alias, isAlias := val.(extractor.Alias)
	if !isAlias {
		return r.literal(v, val), true
	}
	if r.cfg.ResolveReferences {
		return r.Resolve(v, alias, modeID), true
	}
	return r.Reference(v, alias, modeID), true
}

// Reference renders alias, owned by from, as a one-hop DTCG reference to its
// target. The rest of the chain is still walked in modeID and a chain that
// loops back yields the circular sentinel.
func (r *Resolver) Reference(from *extractor.Variable, alias extractor.Alias, modeID string) string {
	target, ok := r.vars[alias.VariableID]
	if !ok {
		r.logger.Warnf("Unknown variable reference: %s", alias.VariableID)
		return dtcg.SentinelUnknown
	}

	visited := map[string]struct{}{from.ID: {}}
	cur := target
	for {
		if _, seen := visited[cur.ID]; seen {
			r.logger.Warnf("Circular reference detected: %s", cur.ID)
			return dtcg.SentinelCircular
		}
		visited[cur.ID] = struct{}{}

		val, ok := modeValue(cur, modeID)
		if !ok {
			break
		}
		next, isAlias := val.(extractor.Alias)
		if !isAlias {
			break
		}
		if cur, ok = r.vars[next.VariableID]; !ok {
			break
		}
	}

	return dtcg.Reference(target.Name)
}

// Resolve follows alias, owned by from, to the first literal value and
// converts it using the metadata of the variable holding that literal.
// Every hop uses modeID, falling back to the first mode of a variable that
// lacks it.
func (r *Resolver) Resolve(from *extractor.Variable, alias extractor.Alias, modeID string) any {
	visited := map[string]struct{}{from.ID: {}}
	id := alias.VariableID
	for {
		if _, seen := visited[id]; seen {
			r.logger.Warnf("Circular reference detected: %s", id)
			return dtcg.SentinelCircular
		}
		visited[id] = struct{}{}

		target, ok := r.vars[id]
		if !ok {
			r.logger.Warnf("Unknown variable reference: %s", id)
			return dtcg.SentinelUnknown
		}

		val, ok := modeValue(target, modeID)
		if !ok {
			r.logger.Warnf("No value found for variable: %s", target.Name)
			return dtcg.SentinelNoValue
		}

		next, isAlias := val.(extractor.Alias)
		if !isAlias {
			return r.literal(target, val)
		}
		id = next.VariableID
	}
}

// modeValue returns the value of v in modeID or, failing that, in its first
// mode.
func modeValue(v *extractor.Variable, modeID string) (extractor.VariableValue, bool) {
	if val, ok := v.ValuesByMode.Get(modeID); ok {
		return val, true
	}
	_, val, ok := v.ValuesByMode.First()
	return val, ok
}

// literal converts a direct value. The kind of the value decides the
// conversion; v supplies the name and scopes used to classify numbers.
func (r *Resolver) literal(v *extractor.Variable, val extractor.VariableValue) any {
	switch lit := val.(type) {
	case extractor.ColorValue:
		return convertColor(extractor.RGBA(lit), r.cfg.ColorFormat)
	case extractor.FloatValue:
		if IsPlainNumber(v) {
			return float64(lit)
		}
		return dimension(float64(lit), r.cfg.DefaultUnit)
	case extractor.StringValue:
		return string(lit)
	case extractor.BoolValue:
		if lit {
			return 1
		}
		return 0
	}
	return nil
}
