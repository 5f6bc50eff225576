package writer

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/kataras/figma-dtcg/pkg/dtcg"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tokenFile(name string, value any) dtcg.TokenFile {
	tree := dtcg.NewTree()
	tree.Insert("color/primary", &dtcg.Token{Value: value, Type: dtcg.TypeColor})
	return dtcg.TokenFile{Filename: name, CollectionName: "Colors", ModeName: "Light", Content: tree}
}

func TestUniqueNames(t *testing.T) {
	tests := []struct {
		name  string
		files []string
		want  []string
	}{
		{
			name:  "no collisions",
			files: []string{"a-light.json", "a-dark.json"},
			want:  []string{"a-light.json", "a-dark.json"},
		},
		{
			name:  "repeats are numbered",
			files: []string{"a.json", "a.json", "a.json"},
			want:  []string{"a.json", "a-2.json", "a-3.json"},
		},
		{
			name:  "numbered name already taken",
			files: []string{"a-2.json", "a.json", "a.json"},
			want:  []string{"a-2.json", "a.json", "a-3.json"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var files []dtcg.TokenFile
			for _, n := range tt.files {
				files = append(files, tokenFile(n, "#000000"))
			}
			assert.Equal(t, tt.want, uniqueNames(files))
		})
	}
}

func TestWriteDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "tokens")
	files := []dtcg.TokenFile{
		tokenFile("colors-light.json", "#ffffff"),
		tokenFile("colors-light.json", "#000000"),
	}

	res, err := Write(files, Config{OutputDir: dir})
	require.NoError(t, err)
	require.Len(t, res.Files, 2)
	assert.Equal(t, "colors-light.json", res.Files[0].Filename)
	assert.Equal(t, "colors-light-2.json", res.Files[1].Filename)
	assert.Equal(t, 1, res.Files[0].Tokens)
	assert.Empty(t, res.ZipPath)

	data, err := os.ReadFile(filepath.Join(dir, "colors-light.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"color":{"primary":{"$value":"#ffffff","$type":"color"}}}`, string(data))

	data, err = os.ReadFile(filepath.Join(dir, "colors-light-2.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"color":{"primary":{"$value":"#000000","$type":"color"}}}`, string(data))
}

func TestWriteZip(t *testing.T) {
	dir := t.TempDir()
	files := []dtcg.TokenFile{
		tokenFile("colors-light.json", "#ffffff"),
		tokenFile(dtcg.ShadowFilename, "#000000"),
	}

	res, err := Write(files, Config{OutputDir: dir, Zip: true})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, DefaultZipName), res.ZipPath)

	_, err = os.Stat(filepath.Join(dir, "colors-light.json"))
	assert.True(t, os.IsNotExist(err), "archive mode writes no loose files")

	r, err := zip.OpenReader(res.ZipPath)
	require.NoError(t, err)
	defer r.Close()

	require.Len(t, r.File, 2)
	assert.Equal(t, "colors-light.json", r.File[0].Name)
	assert.Equal(t, "shadow.json", r.File[1].Name)

	rc, err := r.File[0].Open()
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	rc.Close()
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"color\": {\n    \"primary\": {\n      \"$value\": \"#ffffff\",\n      \"$type\": \"color\"\n    }\n  }\n}\n", string(data))
}

func TestWriteCustomZipName(t *testing.T) {
	dir := t.TempDir()
	res, err := Write([]dtcg.TokenFile{tokenFile("a.json", "#ffffff")}, Config{OutputDir: dir, Zip: true, ZipName: "brand.zip"})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "brand.zip"), res.ZipPath)
	assert.FileExists(t, res.ZipPath)
}

func TestWriteCollectsErrors(t *testing.T) {
	dir := t.TempDir()
	// A directory in place of the target file makes that write fail.
	require.NoError(t, os.Mkdir(filepath.Join(dir, "broken.json"), 0755))

	files := []dtcg.TokenFile{
		tokenFile("broken.json", "#ffffff"),
		tokenFile("fine.json", "#000000"),
	}

	res, err := Write(files, Config{OutputDir: dir})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken.json")
	require.NotNil(t, res)
	assert.FileExists(t, filepath.Join(dir, "fine.json"))
}

func TestWriteBadOutputDir(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, nil, 0644))

	_, err := Write([]dtcg.TokenFile{tokenFile("a.json", "#ffffff")}, Config{OutputDir: filepath.Join(file, "sub")})
	assert.Error(t, err)
}
