// Package writer stores converted token files on disk, either as separate
// JSON files in a directory or bundled into a single zip archive.
package writer

import (
	"archive/zip"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/kataras/figma-dtcg/pkg/dtcg"
	"github.com/kataras/figma-dtcg/pkg/formatter"

	"go.uber.org/multierr"
)

// DefaultZipName is the archive name used when Config.ZipName is empty.
const DefaultZipName = "design-tokens.zip"

const maxParallelWrites = 5

// Config holds configuration for writing token files.
type Config struct {
	OutputDir string // created when missing
	Zip       bool   // bundle all files into one archive instead
	ZipName   string // default "design-tokens.zip"
}

// WrittenFile is one file stored by Write.
type WrittenFile struct {
	Filename       string // final name, after collision handling
	CollectionName string
	ModeName       string
	Tokens         int
}

// Result holds the results of a write operation.
type Result struct {
	Files   []WrittenFile
	ZipPath string // set when writing an archive
}

// Write stores files under cfg.OutputDir. Files sharing a name are kept
// apart by numbering the later ones: "colors-light.json",
// "colors-light-2.json" and so on.
//
// Writing continues past per-file failures; all of them are returned
// together.
func Write(files []dtcg.TokenFile, cfg Config) (*Result, error) {
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory %q: %w", cfg.OutputDir, err)
	}

	names := uniqueNames(files)
	result := &Result{Files: make([]WrittenFile, len(files))}
	for i, f := range files {
		result.Files[i] = WrittenFile{
			Filename:       names[i],
			CollectionName: f.CollectionName,
			ModeName:       f.ModeName,
			Tokens:         f.Content.CountTokens(),
		}
	}

	if cfg.Zip {
		zipName := cfg.ZipName
		if zipName == "" {
			zipName = DefaultZipName
		}
		result.ZipPath = filepath.Join(cfg.OutputDir, zipName)
		if err := writeZip(result.ZipPath, files, names); err != nil {
			return nil, err
		}
		return result, nil
	}

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs error
	)
	sem := make(chan struct{}, maxParallelWrites)

	for i := range files {
		wg.Add(1)
		go func(f dtcg.TokenFile, name string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			if err := writeFile(filepath.Join(cfg.OutputDir, name), f.Content); err != nil {
				mu.Lock()
				errs = multierr.Append(errs, err)
				mu.Unlock()
			}
		}(files[i], names[i])
	}
	wg.Wait()

	if errs != nil {
		return result, errs
	}
	return result, nil
}

func writeFile(path string, tree *dtcg.Tree) error {
	data, err := formatter.ToJSON(tree)
	if err != nil {
		return fmt.Errorf("failed to encode %q: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write file %q: %w", path, err)
	}
	return nil
}

func writeZip(path string, files []dtcg.TokenFile, names []string) (err error) {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create archive %q: %w", path, err)
	}
	defer func() {
		if er := out.Close(); er != nil {
			err = multierr.Append(err, fmt.Errorf("failed to close archive %q: %w", path, er))
		}
	}()

	arc := zip.NewWriter(out)
	now := time.Now()
	for i, f := range files {
		data, er := formatter.ToJSON(f.Content)
		if er != nil {
			err = multierr.Append(err, fmt.Errorf("failed to encode %q: %w", names[i], er))
			continue
		}
		w, er := arc.CreateHeader(&zip.FileHeader{Name: names[i], Method: zip.Deflate, Modified: now})
		if er != nil {
			err = multierr.Append(err, fmt.Errorf("failed to add %q to archive: %w", names[i], er))
			continue
		}
		if _, er := w.Write(data); er != nil {
			err = multierr.Append(err, fmt.Errorf("failed to write %q to archive: %w", names[i], er))
		}
	}
	if er := arc.Close(); er != nil {
		err = multierr.Append(err, fmt.Errorf("failed to finish archive %q: %w", path, er))
	}
	return err
}

// uniqueNames returns the output name of every file, numbering repeats.
func uniqueNames(files []dtcg.TokenFile) []string {
	usedNames := make(map[string]bool)
	names := make([]string, len(files))
	for i, f := range files {
		fileName := f.Filename
		if usedNames[fileName] {
			ext := filepath.Ext(fileName)
			base := strings.TrimSuffix(fileName, ext)
			for n := 2; ; n++ {
				candidate := fmt.Sprintf("%s-%d%s", base, n, ext)
				if !usedNames[candidate] {
					fileName = candidate
					break
				}
			}
		}
		usedNames[fileName] = true
		names[i] = fileName
	}
	return names
}
