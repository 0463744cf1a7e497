// Package project locates interface files in a source tree.
package project

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Extension is the file extension of interface files.
const Extension = ".vi"

// Project is a source tree and the interface files found in it.
type Project struct {
	RootDir string
	Files   []string
}

// Load scans the current directory for interface files.
func Load() (*Project, error) {
	return LoadFrom(".")
}

// LoadFrom scans the given directory recursively for interface files.
// Hidden directories and directories starting with '_' are skipped.
func LoadFrom(rootDir string) (*Project, error) {
	info, err := os.Stat(rootDir)
	if err != nil {
		return nil, fmt.Errorf("read project root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", rootDir)
	}

	var files []string
	err = filepath.WalkDir(rootDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != rootDir && (strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")) {
				return filepath.SkipDir
			}
			return nil
		}
		if IsInterfaceFile(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", rootDir, err)
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("no %s files found under %s", Extension, rootDir)
	}

	sort.Strings(files)
	return &Project{RootDir: rootDir, Files: files}, nil
}

// IsInterfaceFile reports whether path names an interface file.
func IsInterfaceFile(path string) bool {
	return filepath.Ext(path) == Extension
}
