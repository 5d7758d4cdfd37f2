package prefabs

import (
	"embed"
	"errors"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

//go:embed *.yaml scripts/*.tengo
var embedded embed.FS

// DiskDir is read before the embedded copies so field and script edits apply
// without a rebuild.
var DiskDir = "prefabs"

const scriptsDir = "scripts"

// Origin says where a file was read from.
type Origin string

const (
	OriginDisk     Origin = "disk"
	OriginEmbedded Origin = "embedded"
)

// Load reads a field file, disk first.
func Load(name string) ([]byte, error) {
	data, _, err := read(fieldPath(name))
	return data, err
}

// LoadScript reads a filler script, disk first.
func LoadScript(name string) ([]byte, error) {
	data, _, err := read(scriptPath(name))
	return data, err
}

// Locate reports where a field file would be read from.
func Locate(name string) (Origin, bool) {
	_, origin, err := read(fieldPath(name))
	return origin, err == nil
}

func read(rel string) ([]byte, Origin, error) {
	if rel == "" {
		return nil, "", fs.ErrNotExist
	}
	data, err := os.ReadFile(filepath.Join(DiskDir, filepath.FromSlash(rel)))
	if err == nil {
		return data, OriginDisk, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, "", err
	}
	data, err = embedded.ReadFile(rel)
	if err != nil {
		return nil, "", err
	}
	return data, OriginEmbedded, nil
}

// fieldPath strips a leading prefabs/ so "prefabs/shapes.yaml" and
// "shapes.yaml" name the same file.
func fieldPath(name string) string {
	if name == "" {
		return ""
	}
	s := strings.TrimPrefix(filepath.ToSlash(name), DiskDir+"/")
	return path.Clean(s)
}

func scriptPath(name string) string {
	s := fieldPath(name)
	if s == "" {
		return ""
	}
	return path.Join(scriptsDir, strings.TrimPrefix(s, scriptsDir+"/"))
}

// WatchDirs lists the on-disk directories that exist and hold field files or
// scripts.
func WatchDirs() []string {
	var dirs []string
	for _, d := range []string{DiskDir, filepath.Join(DiskDir, scriptsDir)} {
		if info, err := os.Stat(d); err == nil && info.IsDir() {
			dirs = append(dirs, d)
		}
	}
	return dirs
}
