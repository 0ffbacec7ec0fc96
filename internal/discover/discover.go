// Package discover scans a directory of client work for project-like
// subdirectories. It only produces candidate names; registering them as
// projects is the caller's concern.
package discover

import (
	"os"
	"path/filepath"
	"strings"
)

// DefaultPrefix marks discovered projects apart from manually created ones.
const DefaultPrefix = "[CLIENT]"

// Candidate is a directory that looks like a client project.
type Candidate struct {
	// Name is the prefixed project name to register.
	Name string
	Path string
	Git  bool
}

// Candidates lists the immediate subdirectories of basePath, skipping hidden
// directories. Each candidate name is the directory name with the prefix
// prepended.
func Candidates(basePath, prefix string) ([]Candidate, error) {
	if prefix == "" {
		prefix = DefaultPrefix
	}

	dirEntries, err := os.ReadDir(basePath)
	if err != nil {
		return nil, err
	}

	var candidates []Candidate

	for _, entry := range dirEntries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}

		path := filepath.Join(basePath, entry.Name())

		info, err := os.Stat(filepath.Join(path, ".git"))
		isGit := err == nil && info.IsDir()

		candidates = append(candidates, Candidate{
			Name: prefix + " " + entry.Name(),
			Path: path,
			Git:  isGit,
		})
	}

	return candidates, nil
}
