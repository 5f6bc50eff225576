package figma

import "encoding/json"

// LocalVariablesResponse represents the response from the Figma local variables endpoint
// (GET /v1/files/:key/variables/local). It contains every local variable and collection of the file,
// plus the remote (library) variables the file uses.
type LocalVariablesResponse struct {
	Status int                `json:"status"`
	Error  bool               `json:"error"`
	Meta   LocalVariablesMeta `json:"meta"`
}

// LocalVariablesMeta holds the variables and collections of a file keyed by their IDs.
type LocalVariablesMeta struct {
	Variables           map[string]Variable           `json:"variables"`
	VariableCollections map[string]VariableCollection `json:"variableCollections"`
}

// Variable represents a Figma variable as returned by the REST API.
// ValuesByMode holds raw values: a color object, a number, a string, a boolean,
// or a {"type":"VARIABLE_ALIAS","id":"..."} alias object.
type Variable struct {
	ID                   string                     `json:"id"`
	Name                 string                     `json:"name"`
	Key                  string                     `json:"key"`
	VariableCollectionID string                     `json:"variableCollectionId"`
	ResolvedType         string                     `json:"resolvedType"`
	ValuesByMode         map[string]json.RawMessage `json:"valuesByMode"`
	Remote               bool                       `json:"remote"`
	Description          string                     `json:"description"`
	HiddenFromPublishing bool                       `json:"hiddenFromPublishing"`
	Scopes               []string                   `json:"scopes"`
}

// VariableCollection represents a Figma variable collection with its ordered modes
// and the IDs of the variables it owns.
type VariableCollection struct {
	ID                   string   `json:"id"`
	Name                 string   `json:"name"`
	Key                  string   `json:"key"`
	Modes                []Mode   `json:"modes"`
	DefaultModeID        string   `json:"defaultModeId"`
	Remote               bool     `json:"remote"`
	HiddenFromPublishing bool     `json:"hiddenFromPublishing"`
	VariableIDs          []string `json:"variableIds"`
}

// Mode is a named variant of a collection.
type Mode struct {
	ModeID string `json:"modeId"`
	Name   string `json:"name"`
}

// VariableAlias is the raw alias object Figma uses in place of a literal value.
type VariableAlias struct {
	Type string `json:"type"` // "VARIABLE_ALIAS"
	ID   string `json:"id"`
}
