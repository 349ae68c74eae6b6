package pipeline

import (
	"io/fs"
	"path/filepath"
)

// LoadableExt is the extension of source documents.
const LoadableExt = ".mml"

// LoadableFiles returns every regular *.mml file under baseDir,
// recursively, in walker order.
func LoadableFiles(baseDir string) ([]string, error) {
	files := []string{}
	err := filepath.WalkDir(baseDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if filepath.Ext(path) != LoadableExt {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}
