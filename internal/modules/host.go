package modules

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"golang.org/x/tools/txtar"
)

// Host gives the registry access to source files.
type Host interface {
	ReadFile(path string) (string, error)
	Exists(path string) bool
}

// OSHost reads from the local file system.
type OSHost struct{}

func (OSHost) ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (OSHost) Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// MapHost serves files from memory, keyed by cleaned path.
type MapHost map[string]string

func (h MapHost) ReadFile(path string) (string, error) {
	src, ok := h[filepath.Clean(path)]
	if !ok {
		return "", &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	return src, nil
}

func (h MapHost) Exists(path string) bool {
	_, ok := h[filepath.Clean(path)]
	return ok
}

// NewTxtarHost serves the files of a txtar archive, placed under root.
func NewTxtarHost(ar *txtar.Archive, root string) MapHost {
	h := make(MapHost, len(ar.Files))
	for _, f := range ar.Files {
		h[filepath.Join(root, f.Name)] = string(f.Data)
	}
	return h
}

// ParseTxtarHost parses a txtar archive and serves its files under root.
func ParseTxtarHost(data []byte, root string) (MapHost, error) {
	ar := txtar.Parse(data)
	if len(ar.Files) == 0 {
		return nil, errors.New("txtar archive contains no files")
	}
	return NewTxtarHost(ar, root), nil
}
