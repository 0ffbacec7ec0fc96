package gitimport

import (
	"path/filepath"
	"strings"

	"github.com/ayoisaiah/timespan/internal/models"
)

// keywords is the closed set matched against commit messages. The order
// matters nowhere here; classification priority lives in the estimator.
var keywords = []string{"fix", "bug", "test", "doc", "refactor"}

// Analyze structures a raw commit into the features the estimator consumes:
// a file-extension histogram and the matched message keywords. It performs
// no estimation.
func Analyze(c models.GitCommit) models.CommitAnalysis {
	a := models.CommitAnalysis{
		Commit:     c,
		Extensions: make(map[string]int),
		Keywords:   make(map[string]bool),
	}

	for _, f := range c.FilesChanged {
		ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(f), "."))
		if ext == "" {
			continue
		}

		a.Extensions[ext]++
	}

	msg := strings.ToLower(c.Message)
	for _, kw := range keywords {
		if strings.Contains(msg, kw) {
			a.Keywords[kw] = true
		}
	}

	return a
}
