package figmadtcg

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/kataras/figma-dtcg/pkg/converter"
	"github.com/kataras/figma-dtcg/pkg/dtcg"
	"github.com/kataras/figma-dtcg/pkg/extractor"
	"github.com/kataras/figma-dtcg/pkg/figma"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func filenames(files []dtcg.TokenFile) []string {
	names := make([]string, 0, len(files))
	for _, f := range files {
		names = append(names, f.Filename)
	}
	return names
}

func TestRunInputFile(t *testing.T) {
	res, err := Run(Options{InputFile: filepath.Join("testdata", "document.json")})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join("testdata", "document.json"), res.Source)
	assert.Equal(t, []string{
		"primitives-value.json",
		"semantic-colors-light.json",
		"semantic-colors-dark.json",
		"typography.json",
		"shadow.json",
	}, filenames(res.Files))

	light, ok := res.Files[1].Content.Lookup("surface/primary")
	require.True(t, ok)
	assert.Equal(t, "{color.blue.500}", light.Value)
	assert.Equal(t, "Default surface", light.Description)

	dark, ok := res.Files[2].Content.Lookup("surface/primary")
	require.True(t, ok)
	assert.Equal(t, "#00000080", dark.Value)

	body, ok := res.Files[3].Content.Lookup("Body/Regular")
	require.True(t, ok)
	typo, ok := body.Value.(dtcg.Typography)
	require.True(t, ok)
	assert.Equal(t, "{font.family.base}", typo.FontFamily)
	assert.Equal(t, "auto", typo.LineHeight)
}

func TestRunWithConfig(t *testing.T) {
	cfg := converter.NewDefaultConfig()
	cfg.Collections = []string{"VariableCollectionId:2:1"}
	cfg.Modes = map[string][]string{"VariableCollectionId:2:1": {"2:0"}}
	cfg.ResolveReferences = true

	res, err := Run(Options{InputFile: filepath.Join("testdata", "document.json"), Config: cfg})
	require.NoError(t, err)
	require.Equal(t, []string{"semantic-colors-light.json"}, filenames(res.Files))

	tok, _ := res.Files[0].Content.Lookup("surface/primary")
	assert.Equal(t, "#336699", tok.Value)
	assert.Empty(t, cfg.TextStyles, "caller config is not modified")
}

func TestRunFromFigma(t *testing.T) {
	body := `{"status":200,"error":false,"meta":{
		"variableCollections":{"C:1":{"id":"C:1","name":"Colors","modes":[{"modeId":"1:0","name":"Light"}],"variableIds":["V:1","V:2"]}},
		"variables":{
			"V:1":{"id":"V:1","name":"blue","variableCollectionId":"C:1","resolvedType":"COLOR","valuesByMode":{"1:0":{"r":0,"g":0,"b":1,"a":1}}},
			"V:2":{"id":"V:2","name":"primary","variableCollectionId":"C:1","resolvedType":"COLOR","valuesByMode":{"1:0":{"type":"VARIABLE_ALIAS","id":"V:1"}}}
		}}}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/files/KEY123/variables/local", r.URL.Path)
		w.Write([]byte(body))
	}))
	defer srv.Close()

	res, err := Run(Options{
		FileURL:       "https://www.figma.com/design/KEY123/Tokens",
		AccessToken:   "secret",
		ClientOptions: []figma.ClientOption{figma.WithBaseURL(srv.URL), figma.WithRetryDelay(0)},
	})
	require.NoError(t, err)
	assert.Equal(t, "KEY123", res.Source)
	require.Equal(t, []string{"colors-light.json"}, filenames(res.Files))

	tok, _ := res.Files[0].Content.Lookup("primary")
	assert.Equal(t, "{blue}", tok.Value)
}

func TestRunErrors(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want string
	}{
		{name: "no input", opts: Options{}, want: "no input"},
		{name: "no token", opts: Options{FileURL: "https://www.figma.com/file/ABC/x"}, want: "access token"},
		{name: "bad url", opts: Options{FileURL: "https://example.com/file/ABC", AccessToken: "x"}, want: "extract file key"},
		{name: "missing file", opts: Options{InputFile: filepath.Join("testdata", "missing.json")}, want: "load document"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Run(tt.opts)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestConvertEmptySelection(t *testing.T) {
	doc := &extractor.Document{}
	_, err := Convert(doc, Options{})
	assert.ErrorIs(t, err, ErrEmptySelection)
	assert.EqualError(t, err, "no collections or styles selected")

	_, err = Convert(nil, Options{})
	assert.Error(t, err)
}

type panicLogger struct{}

func (panicLogger) Infof(string, ...any)  {}
func (panicLogger) Warnf(string, ...any)  { panic("boom") }
func (panicLogger) Errorf(string, ...any) {}

func TestConvertRecoversPanics(t *testing.T) {
	doc := &extractor.Document{Collections: []extractor.Collection{{
		ID:    "c",
		Name:  "C",
		Modes: []extractor.Mode{{ModeID: "m", Name: "M"}},
		Variables: []extractor.Variable{{
			ID: "v", Name: "v", ResolvedType: extractor.ResolvedColor,
			ValuesByMode: extractor.NewModeValues("m", extractor.Alias{VariableID: "nope"}),
		}},
	}}}

	res, err := Convert(doc, Options{Logger: panicLogger{}})
	require.Error(t, err)
	assert.Nil(t, res)
	assert.Contains(t, err.Error(), "boom")
}

func TestParseIDs(t *testing.T) {
	assert.Equal(t, []string{"a", "b:1", "c"}, ParseIDs(" a, b:1,, c ,"))
	assert.Empty(t, ParseIDs(""))
}

func TestParseModes(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    map[string][]string
		wantErr bool
	}{
		{name: "empty", in: "", want: map[string][]string{}},
		{name: "pairs", in: "c1:m1,c1:m2,c2:m3", want: map[string][]string{"c1": {"m1", "m2"}, "c2": {"m3"}}},
		{name: "no mode", in: "c1:", want: map[string][]string{"c1": {}}},
		{
			name: "figma ids",
			in:   "VariableCollectionId:1:2=1:0, VariableCollectionId:1:2=1:1",
			want: map[string][]string{"VariableCollectionId:1:2": {"1:0", "1:1"}},
		},
		{name: "missing separator", in: "c1", wantErr: true},
		{name: "missing collection", in: ":m1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseModes(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWatch(t *testing.T) {
	src, err := os.ReadFile(filepath.Join("testdata", "document.json"))
	require.NoError(t, err)

	input := filepath.Join(t.TempDir(), "document.json")
	require.NoError(t, os.WriteFile(input, src, 0644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	results := make(chan *Result, 8)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, Options{InputFile: input}, func(res *Result, err error) {
			if err == nil {
				results <- res
			}
		})
	}()

	next := func() *Result {
		t.Helper()
		select {
		case res := <-results:
			return res
		case <-time.After(5 * time.Second):
			t.Fatal("no conversion within 5s")
			return nil
		}
	}

	first := next()
	assert.Len(t, first.Files, 5)

	changed := strings.Replace(string(src), `"name": "Primitives"`, `"name": "Base"`, 1)
	require.NoError(t, os.WriteFile(input, []byte(changed), 0644))

	second := next()
	assert.Equal(t, "base-value.json", second.Files[0].Filename)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
}

func TestWatchRequiresInput(t *testing.T) {
	err := Watch(context.Background(), Options{}, func(*Result, error) {})
	assert.Error(t, err)
}
