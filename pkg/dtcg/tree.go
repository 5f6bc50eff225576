package dtcg

import (
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// PathSeparator splits hierarchical Figma names into group segments.
const PathSeparator = "/"

// Tree is a DTCG group: an insertion-ordered mapping from names to either
// nested groups (*Tree) or tokens (*Token). Groups and tokens share a single
// namespace per level.
//
// The zero value is an empty tree ready to use.
type Tree struct {
	entries *orderedmap.OrderedMap[string, any]
}

// NewTree returns an empty tree.
func NewTree() *Tree {
	return &Tree{entries: orderedmap.New[string, any]()}
}

func (t *Tree) init() {
	if t.entries == nil {
		t.entries = orderedmap.New[string, any]()
	}
}

// Len returns the number of direct children.
func (t *Tree) Len() int {
	if t == nil || t.entries == nil {
		return 0
	}
	return t.entries.Len()
}

// Keys returns the direct children names in insertion order.
func (t *Tree) Keys() []string {
	if t == nil || t.entries == nil {
		return nil
	}
	keys := make([]string, 0, t.entries.Len())
	for pair := t.entries.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// Get returns the direct child called name, either a *Tree or a *Token.
func (t *Tree) Get(name string) (any, bool) {
	if t == nil || t.entries == nil {
		return nil, false
	}
	return t.entries.Get(name)
}

// Lookup follows a slash-delimited path and returns the token at its end.
func (t *Tree) Lookup(path string) (*Token, bool) {
	parts := strings.Split(path, PathSeparator)
	cur := t
	for _, part := range parts[:len(parts)-1] {
		v, ok := cur.Get(part)
		if !ok {
			return nil, false
		}
		sub, isGroup := v.(*Tree)
		if !isGroup {
			return nil, false
		}
		cur = sub
	}
	v, ok := cur.Get(parts[len(parts)-1])
	if !ok {
		return nil, false
	}
	tok, isToken := v.(*Token)
	return tok, isToken
}

// Insert places tok at the slash-delimited path name, creating intermediate
// groups as needed.
//
// A path segment that currently holds a token is replaced by a fresh, empty
// group: a later group always wins over an earlier token of the same name.
// An existing key keeps its original position when its value is replaced.
func (t *Tree) Insert(name string, tok *Token) {
	t.init()

	parts := strings.Split(name, PathSeparator)
	leaf := parts[len(parts)-1]

	cur := t
	for _, part := range parts[:len(parts)-1] {
		existing, ok := cur.entries.Get(part)
		sub, isGroup := existing.(*Tree)
		if !ok || !isGroup {
			sub = NewTree()
			cur.entries.Set(part, sub)
		}
		cur = sub
	}

	cur.entries.Set(leaf, tok)
}

// Walk visits every token depth-first in insertion order. path holds the
// group names leading to the token followed by the token name.
func (t *Tree) Walk(fn func(path []string, tok *Token)) {
	t.walk(nil, fn)
}

func (t *Tree) walk(prefix []string, fn func(path []string, tok *Token)) {
	if t == nil || t.entries == nil {
		return
	}
	for pair := t.entries.Oldest(); pair != nil; pair = pair.Next() {
		path := append(prefix[:len(prefix):len(prefix)], pair.Key)
		switch v := pair.Value.(type) {
		case *Tree:
			v.walk(path, fn)
		case *Token:
			fn(path, v)
		}
	}
}

// CountTokens returns the number of tokens in the tree, at any depth.
func (t *Tree) CountTokens() int {
	n := 0
	t.Walk(func([]string, *Token) { n++ })
	return n
}

// MarshalJSON encodes the tree as a JSON object preserving insertion order.
func (t *Tree) MarshalJSON() ([]byte, error) {
	if t == nil || t.entries == nil {
		return []byte("{}"), nil
	}
	return t.entries.MarshalJSON()
}
