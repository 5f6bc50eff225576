package figmadtcg

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kataras/figma-dtcg/pkg/converter"
	"github.com/kataras/figma-dtcg/pkg/dtcg"
	"github.com/kataras/figma-dtcg/pkg/extractor"
	"github.com/kataras/figma-dtcg/pkg/figma"
)

// Version is the current release.
const Version = "0.3.0"

// ErrEmptySelection is returned when nothing is selected for export.
var ErrEmptySelection = converter.ErrEmptySelection

// Options configures a conversion.
type Options struct {
	InputFile     string // extraction document (JSON); takes precedence over FileURL
	FileURL       string // Figma file URL, variables only
	AccessToken   string
	ClientOptions []figma.ClientOption
	Config        *converter.Config // nil = defaults with everything selected
	SelectAll     bool              // select every collection and style of the document
	Logger        Logger            // nil = no logging
}

// Logger receives progress messages and conversion warnings. A nil Logger
// means silent operation.
type Logger = converter.Logger

// Result contains the conversion output.
type Result struct {
	Files    []dtcg.TokenFile
	Document *extractor.Document
	Source   string // input file path or Figma file key
}

func (o *Options) logInfo(f string, a ...any) {
	if o.Logger != nil {
		o.Logger.Infof(f, a...)
	}
}

// Run loads the input document and converts it.
func Run(opts Options) (*Result, error) {
	doc, source, err := load(&opts)
	if err != nil {
		return nil, err
	}

	res, err := Convert(doc, opts)
	if err != nil {
		return nil, err
	}
	res.Source = source
	return res, nil
}

func load(opts *Options) (*extractor.Document, string, error) {
	if opts.InputFile != "" {
		opts.logInfo("Loading %s...", opts.InputFile)
		doc, err := extractor.LoadFile(opts.InputFile)
		if err != nil {
			return nil, "", fmt.Errorf("load document: %w", err)
		}
		return doc, opts.InputFile, nil
	}

	if opts.FileURL == "" {
		return nil, "", errors.New("no input: set an input file or a Figma file URL")
	}
	if opts.AccessToken == "" {
		return nil, "", errors.New("a Figma access token is required to fetch variables")
	}

	opts.logInfo("Extracting file key from URL...")
	fileKey, err := figma.ExtractFileKey(opts.FileURL)
	if err != nil {
		return nil, "", fmt.Errorf("extract file key: %w", err)
	}
	opts.logInfo("File key: %s", fileKey)

	opts.logInfo("Fetching local variables from Figma...")
	client := figma.NewClient(opts.AccessToken, opts.ClientOptions...)
	resp, err := client.GetLocalVariables(fileKey)
	if err != nil {
		return nil, "", fmt.Errorf("fetch variables: %w", err)
	}

	colls, err := extractor.FromLocalVariables(resp)
	if err != nil {
		return nil, "", fmt.Errorf("read variables: %w", err)
	}
	opts.logInfo("Retrieved %d collection(s), %d variable(s)", len(colls), len(resp.Meta.Variables))

	return &extractor.Document{Collections: colls}, fileKey, nil
}

// Convert converts doc into token files. Any unexpected panic during the
// conversion is returned as an error.
func Convert(doc *extractor.Document, opts Options) (res *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			res, err = nil, fmt.Errorf("conversion failed: %v", r)
		}
	}()

	if doc == nil {
		return nil, errors.New("no document to convert")
	}

	var cfg converter.Config
	if opts.Config != nil {
		cfg = *opts.Config
	} else {
		cfg = *converter.NewDefaultConfig()
		opts.SelectAll = true
	}
	if opts.SelectAll {
		cfg.SelectAll(doc)
	}

	opts.logInfo("Converting %d collection(s), %d text style(s), %d effect style(s)...",
		len(cfg.Collections), len(cfg.TextStyles), len(cfg.EffectStyles))

	files, err := converter.Convert(doc, &cfg, opts.Logger)
	if err != nil {
		return nil, err
	}

	return &Result{Files: files, Document: doc}, nil
}

// ParseIDs parses a comma-separated list of ids, dropping blanks.
func ParseIDs(ids string) []string {
	parts := strings.Split(ids, ",")
	result := make([]string, 0, len(parts))

	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}

// ParseModes parses a mode selection of the form
// "collectionId:modeId,collectionId:modeId". Figma ids contain colons
// themselves ("VariableCollectionId:1:2", "1:0"), so "collectionId=modeId"
// is accepted too and takes precedence. A "collectionId:" entry selects no
// mode of that collection.
func ParseModes(modes string) (map[string][]string, error) {
	result := make(map[string][]string)
	for _, entry := range ParseIDs(modes) {
		sep := ":"
		if strings.Contains(entry, "=") {
			sep = "="
		}
		collID, modeID, ok := strings.Cut(entry, sep)
		collID, modeID = strings.TrimSpace(collID), strings.TrimSpace(modeID)
		if !ok || collID == "" {
			return nil, fmt.Errorf("invalid mode selection %q: want collectionId:modeId", entry)
		}
		if _, ok := result[collID]; !ok {
			result[collID] = []string{}
		}
		if modeID != "" {
			result[collID] = append(result[collID], modeID)
		}
	}
	return result, nil
}
