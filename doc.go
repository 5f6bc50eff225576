// Package figmadtcg converts Figma variables, text styles and effect styles
// into W3C Design Tokens Community Group (DTCG) JSON files.
//
// The CLI lives in cmd/figma-dtcg; this root package exposes the same
// pipeline as a Go API so that callers can embed the export in their own
// tools without shelling out.
//
// # Import
//
// The module path contains a hyphen but Go package names cannot, so the
// package is named figmadtcg:
//
//	import "github.com/kataras/figma-dtcg" // package figmadtcg
//
// # Quick start
//
//	result, err := figmadtcg.Run(figmadtcg.Options{
//	    InputFile: "figma-export.json",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, f := range result.Files {
//	    data, _ := formatter.ToJSON(f.Content)
//	    os.WriteFile(f.Filename, data, 0644)
//	}
//
// Variables can also be fetched straight from the Figma REST API, which
// requires an Enterprise plan and a token with the file_variables:read scope:
//
//	result, err := figmadtcg.Run(figmadtcg.Options{
//	    FileURL:     "https://www.figma.com/design/ABC123/Tokens",
//	    AccessToken: os.Getenv("FIGMA_TOKEN"),
//	})
//
// # Selection
//
// A nil [Options.Config] exports every collection, mode and style. Pass a
// [converter.Config] to choose collections, modes per collection, styles,
// the dimension unit, the color format and whether aliases are kept as
// {path} references or flattened to values.
//
// # Logging
//
// Pass a [Logger] implementation in [Options.Logger] to receive progress
// messages and warnings about circular, unknown or empty references. A nil
// Logger silences all output. *zap.SugaredLogger satisfies Logger.
package figmadtcg
