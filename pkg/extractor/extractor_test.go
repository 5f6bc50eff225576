package extractor

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/kataras/figma-dtcg/pkg/figma"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const document = `{
  "collections": [
    {
      "id": "c1",
      "name": "Primitives",
      "modes": [{"modeId": "m2", "name": "Dark"}, {"modeId": "m1", "name": "Light"}],
      "variables": [
        {
          "id": "v1",
          "name": "colors/blue",
          "resolvedType": "COLOR",
          "valuesByMode": {
            "m2": {"type": "DIRECT", "value": {"r": 0, "g": 0, "b": 1}},
            "m1": {"type": "DIRECT", "value": {"r": 0, "g": 0, "b": 0.5, "a": 0.5}}
          }
        },
        {
          "id": "v2",
          "name": "brand",
          "resolvedType": "COLOR",
          "scopes": ["ALL_FILLS"],
          "collectionId": "other",
          "valuesByMode": {"m1": {"type": "ALIAS", "variableId": "v1"}}
        },
        {
          "id": "v3",
          "name": "flags/on",
          "resolvedType": "BOOLEAN",
          "valuesByMode": {"m1": {"type": "DIRECT", "value": true}}
        },
        {
          "id": "v4",
          "name": "font",
          "resolvedType": "STRING",
          "valuesByMode": {"m1": {"type": "DIRECT", "value": "Inter"}}
        },
        {
          "id": "v5",
          "name": "space",
          "resolvedType": "FLOAT",
          "valuesByMode": {"m1": {"type": "VARIABLE_ALIAS", "id": "v9"}, "m2": {"type": "DIRECT", "value": 4}}
        }
      ]
    }
  ],
  "textStyles": [
    {
      "id": "t1",
      "name": "Heading/Large",
      "fontFamily": {"type": "reference", "variableName": "font"},
      "fontSize": {"type": "value", "value": 32},
      "fontWeight": {"value": 700},
      "lineHeight": {"value": "AUTO"},
      "letterSpacing": {"reference": "space"},
      "textCase": "UPPER"
    }
  ],
  "effectStyles": [
    {
      "id": "e1",
      "name": "Shadow/Card",
      "effects": [
        {"type": "DROP_SHADOW", "color": {"value": {"r": 0, "g": 0, "b": 0, "a": 0.25}}, "offsetX": {"value": 0}, "offsetY": {"value": 4}, "blur": {"value": 8}, "spread": {"value": 0}},
        {"type": "INNER_SHADOW", "visible": false, "color": {"reference": "colors/blue"}}
      ]
    }
  ]
}`

func TestLoad(t *testing.T) {
	doc, err := Load(strings.NewReader(document))
	require.NoError(t, err)
	require.Len(t, doc.Collections, 1)

	coll := doc.Collections[0]
	assert.Equal(t, []Mode{{ModeID: "m2", Name: "Dark"}, {ModeID: "m1", Name: "Light"}}, coll.Modes)
	require.Len(t, coll.Variables, 5)

	blue := coll.Variables[0]
	assert.Equal(t, "c1", blue.CollectionID)
	assert.Equal(t, []string{"m2", "m1"}, blue.ValuesByMode.ModeIDs())

	dark, ok := blue.ValuesByMode.Get("m2")
	require.True(t, ok)
	assert.Equal(t, ColorValue{R: 0, G: 0, B: 1, A: 1}, dark)

	light, ok := blue.ValuesByMode.Get("m1")
	require.True(t, ok)
	assert.Equal(t, ColorValue{R: 0, G: 0, B: 0.5, A: 0.5}, light)

	brand := coll.Variables[1]
	assert.Equal(t, "other", brand.CollectionID)
	assert.True(t, brand.HasScope("ALL_FILLS"))
	_, v, ok := brand.ValuesByMode.First()
	require.True(t, ok)
	assert.Equal(t, Alias{VariableID: "v1"}, v)

	on, _ := coll.Variables[2].ValuesByMode.Get("m1")
	assert.Equal(t, BoolValue(true), on)

	font, _ := coll.Variables[3].ValuesByMode.Get("m1")
	assert.Equal(t, StringValue("Inter"), font)

	space := coll.Variables[4]
	first, v, ok := space.ValuesByMode.First()
	require.True(t, ok)
	assert.Equal(t, "m1", first)
	assert.Equal(t, Alias{VariableID: "v9"}, v)
	four, _ := space.ValuesByMode.Get("m2")
	assert.Equal(t, FloatValue(4), four)
}

func TestLoadStyles(t *testing.T) {
	doc, err := Load(strings.NewReader(document))
	require.NoError(t, err)

	require.Len(t, doc.TextStyles, 1)
	ts := doc.TextStyles[0]

	ref, ok := ts.FontFamily.Reference()
	assert.True(t, ok)
	assert.Equal(t, "font", ref)

	size, ok := ts.FontSize.Value()
	assert.True(t, ok)
	assert.Equal(t, 32.0, size)

	weight, ok := ts.FontWeight.Value()
	assert.True(t, ok)
	assert.Equal(t, 700.0, weight)

	lh, ok := ts.LineHeight.Value()
	assert.True(t, ok)
	assert.True(t, lh.Auto)

	ls, ok := ts.LetterSpacing.Reference()
	assert.True(t, ok)
	assert.Equal(t, "space", ls)
	assert.Equal(t, TextCaseUpper, ts.TextCase)

	require.Len(t, doc.EffectStyles, 1)
	effects := doc.EffectStyles[0].Effects
	require.Len(t, effects, 2)
	assert.True(t, effects[0].Visible, "missing visible defaults to true")
	assert.Equal(t, EffectDropShadow, effects[0].Type)
	c, ok := effects[0].Color.Value()
	require.True(t, ok)
	assert.Equal(t, RGBA{A: 0.25}, c)

	assert.False(t, effects[1].Visible)
	assert.Equal(t, EffectInnerShadow, effects[1].Type)
	assert.False(t, effects[1].OffsetX.IsSet())
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "not json", doc: `nope`},
		{name: "unknown value type", doc: `{"collections":[{"id":"c","variables":[{"id":"v","valuesByMode":{"m":{"type":"WHAT"}}}]}]}`},
		{name: "alias without id", doc: `{"collections":[{"id":"c","variables":[{"id":"v","valuesByMode":{"m":{"type":"ALIAS"}}}]}]}`},
		{name: "null literal", doc: `{"collections":[{"id":"c","variables":[{"id":"v","valuesByMode":{"m":{"type":"DIRECT","value":null}}}]}]}`},
		{name: "bound with both", doc: `{"textStyles":[{"id":"t","fontSize":{"reference":"a","value":1}}]}`},
		{name: "bound with neither", doc: `{"textStyles":[{"id":"t","fontSize":{}}]}`},
		{name: "bad line height", doc: `{"textStyles":[{"id":"t","lineHeight":{"value":"tall"}}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.doc))
			assert.Error(t, err)
		})
	}
}

func TestBoundValue(t *testing.T) {
	var zero BoundValue[float64]
	assert.False(t, zero.IsSet())
	_, ok := zero.Value()
	assert.False(t, ok)
	_, ok = zero.Reference()
	assert.False(t, ok)

	ref := Ref[float64]("spacing/md")
	assert.True(t, ref.IsSet())
	name, ok := ref.Reference()
	assert.True(t, ok)
	assert.Equal(t, "spacing/md", name)
	_, ok = ref.Value()
	assert.False(t, ok)

	lit := Literal(0.0)
	assert.True(t, lit.IsSet(), "explicit zero is present")
	v, ok := lit.Value()
	assert.True(t, ok)
	assert.Equal(t, 0.0, v)

	var null BoundValue[string]
	require.NoError(t, json.Unmarshal([]byte(`null`), &null))
	assert.False(t, null.IsSet())
}

func TestBoundValueJSON(t *testing.T) {
	data, err := json.Marshal(Ref[float64]("a/b"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"reference","variableName":"a/b"}`, string(data))

	data, err = json.Marshal(Literal(FixedLineHeight(24)))
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"value","value":24}`, string(data))

	data, err = json.Marshal(Literal(AutoLineHeight()))
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"value","value":"AUTO"}`, string(data))

	var back BoundValue[LineHeight]
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, Literal(AutoLineHeight()), back)
}

func TestModeValues(t *testing.T) {
	var mv ModeValues
	assert.Equal(t, 0, mv.Len())
	_, _, ok := mv.First()
	assert.False(t, ok)

	mv = NewModeValues("b", FloatValue(1), "a", FloatValue(2))
	mv.Set("b", FloatValue(3))
	assert.Equal(t, []string{"b", "a"}, mv.ModeIDs())

	id, v, ok := mv.First()
	require.True(t, ok)
	assert.Equal(t, "b", id)
	assert.Equal(t, FloatValue(3), v)

	data, err := json.Marshal(mv)
	require.NoError(t, err)
	assert.Equal(t, `{"b":{"type":"DIRECT","value":3},"a":{"type":"DIRECT","value":2}}`, string(data))
}

func TestParseLiteral(t *testing.T) {
	tests := []struct {
		in   string
		want VariableValue
	}{
		{in: `{"r":1,"g":0.5,"b":0}`, want: ColorValue{R: 1, G: 0.5, B: 0, A: 1}},
		{in: `12.5`, want: FloatValue(12.5)},
		{in: ` "Inter" `, want: StringValue("Inter")},
		{in: `false`, want: BoolValue(false)},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLiteral([]byte(tt.in))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseLiteral([]byte(``))
	assert.Error(t, err)
}

func TestColorAlphaDefault(t *testing.T) {
	lit, err := ParseLiteral([]byte(`{"r":0,"g":0,"b":0}`))
	require.NoError(t, err)
	assert.Equal(t, ColorValue{A: 1}, lit)

	var effect ShadowEffect
	require.NoError(t, json.Unmarshal([]byte(`{"type":"DROP_SHADOW","color":{"value":{"r":0,"g":0,"b":0}}}`), &effect))
	c, ok := effect.Color.Value()
	require.True(t, ok)
	assert.Equal(t, RGBA{A: 1}, c)
}

func TestFromLocalVariables(t *testing.T) {
	raw := func(s string) json.RawMessage { return json.RawMessage(s) }

	resp := &figma.LocalVariablesResponse{
		Status: 200,
		Meta: figma.LocalVariablesMeta{
			VariableCollections: map[string]figma.VariableCollection{
				"C:2": {
					ID:          "C:2",
					Name:        "Semantic",
					Modes:       []figma.Mode{{ModeID: "2:0", Name: "Light"}, {ModeID: "2:1", Name: "Dark"}},
					VariableIDs: []string{"V:3", "V:missing"},
				},
				"C:1": {
					ID:          "C:1",
					Name:        "Primitives",
					Modes:       []figma.Mode{{ModeID: "1:0", Name: "Value"}},
					VariableIDs: []string{"V:2", "V:1"},
					Remote:      true,
				},
			},
			Variables: map[string]figma.Variable{
				"V:1": {
					ID: "V:1", Name: "blue/500", VariableCollectionID: "C:1", ResolvedType: "COLOR",
					ValuesByMode: map[string]json.RawMessage{"1:0": raw(`{"r":0,"g":0,"b":1,"a":1}`)},
				},
				"V:2": {
					ID: "V:2", Name: "radius/sm", VariableCollectionID: "C:1", ResolvedType: "FLOAT",
					Scopes:       []string{"CORNER_RADIUS"},
					ValuesByMode: map[string]json.RawMessage{"1:0": raw(`4`)},
				},
				"V:3": {
					ID: "V:3", Name: "surface", VariableCollectionID: "C:2", ResolvedType: "COLOR",
					Description: "Default surface",
					ValuesByMode: map[string]json.RawMessage{
						"2:1": raw(`{"type":"VARIABLE_ALIAS","id":"V:1"}`),
						"2:0": raw(`{"r":1,"g":1,"b":1,"a":1}`),
					},
				},
				"V:4": {
					ID: "V:4", Name: "zeta", VariableCollectionID: "C:2", ResolvedType: "STRING",
					ValuesByMode: map[string]json.RawMessage{"2:0": raw(`"z"`)},
				},
				"V:5": {
					ID: "V:5", Name: "alpha", VariableCollectionID: "C:2", ResolvedType: "BOOLEAN",
					ValuesByMode: map[string]json.RawMessage{"2:1": raw(`true`)},
				},
			},
		},
	}

	colls, err := FromLocalVariables(resp)
	require.NoError(t, err)
	require.Len(t, colls, 2)

	assert.Equal(t, "Primitives", colls[0].Name)
	assert.Equal(t, "Semantic", colls[1].Name)

	var names []string
	for _, v := range colls[0].Variables {
		names = append(names, v.Name)
	}
	assert.Equal(t, []string{"radius/sm", "blue/500"}, names)

	names = nil
	for _, v := range colls[1].Variables {
		names = append(names, v.Name)
	}
	assert.Equal(t, []string{"surface", "alpha", "zeta"}, names)

	surface := colls[1].Variables[0]
	assert.Equal(t, "C:2", surface.CollectionID)
	assert.Equal(t, ResolvedColor, surface.ResolvedType)
	assert.Equal(t, "Default surface", surface.Description)
	assert.Equal(t, []string{"2:0", "2:1"}, surface.ValuesByMode.ModeIDs())
	dark, _ := surface.ValuesByMode.Get("2:1")
	assert.Equal(t, Alias{VariableID: "V:1"}, dark)

	radius := colls[0].Variables[0]
	assert.True(t, radius.HasScope("CORNER_RADIUS"))
	v, _ := radius.ValuesByMode.Get("1:0")
	assert.Equal(t, FloatValue(4), v)
}

func TestFromLocalVariablesBadValue(t *testing.T) {
	resp := &figma.LocalVariablesResponse{
		Meta: figma.LocalVariablesMeta{
			VariableCollections: map[string]figma.VariableCollection{
				"C:1": {ID: "C:1", Name: "A", Modes: []figma.Mode{{ModeID: "1:0"}}, VariableIDs: []string{"V:1"}},
			},
			Variables: map[string]figma.Variable{
				"V:1": {ID: "V:1", Name: "broken", ValuesByMode: map[string]json.RawMessage{"1:0": json.RawMessage(`null`)}},
			},
		},
	}

	_, err := FromLocalVariables(resp)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken")
}
