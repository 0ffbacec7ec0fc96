package gitimport

import (
	"math"
	"time"

	"github.com/ayoisaiah/timespan/internal/config"
	"github.com/ayoisaiah/timespan/internal/models"
)

const (
	baseEstimate = 15 * time.Minute
	maxEstimate  = 4 * time.Hour
	bugFixBonus  = 10 * time.Minute
	linesDivisor = 50.0
)

// Estimator maps a commit analysis to an estimated duration and a
// classification. Estimate is deterministic and side-effect-free.
type Estimator struct {
	codeBonus time.Duration
	docBonus  time.Duration
	codeExts  map[string]struct{}
	docExts   map[string]struct{}
}

// NewEstimator builds an estimator from the configured weight table.
// Negative bonuses are floored at zero.
func NewEstimator(cfg config.EstimatorConfig) *Estimator {
	e := &Estimator{
		codeBonus: max(cfg.CodeBonus, 0),
		docBonus:  max(cfg.DocBonus, 0),
		codeExts:  make(map[string]struct{}),
		docExts:   make(map[string]struct{}),
	}

	for _, ext := range cfg.CodeExtensions {
		e.codeExts[ext] = struct{}{}
	}

	for _, ext := range cfg.DocExtensions {
		e.docExts[ext] = struct{}{}
	}

	return e
}

// DefaultEstimator uses the default weight table.
func DefaultEstimator() *Estimator {
	cfg, _ := config.New()
	return NewEstimator(cfg.Estimator)
}

// Estimate derives the duration and classification for one commit:
//
//  1. start from a 15 minute base
//  2. add round((insertions+deletions)/50 * 10) minutes
//  3. add the weight-table bonus once per distinct extension touched
//  4. add 10 minutes when the message mentions a fix or a bug
//  5. clamp the total at 4 hours
func (e *Estimator) Estimate(a models.CommitAnalysis) models.CommitEstimate {
	total := baseEstimate

	linesFactor := float64(a.Commit.TotalChanges()) / linesDivisor
	total += time.Duration(math.Round(linesFactor*10)) * time.Minute

	for ext := range a.Extensions {
		total += e.extensionBonus(ext)
	}

	if a.Keywords["fix"] || a.Keywords["bug"] {
		total += bugFixBonus
	}

	if total > maxEstimate {
		total = maxEstimate
	}

	class, confidence := e.classify(a)

	return models.CommitEstimate{
		Duration:       total,
		Classification: class,
		Confidence:     confidence,
	}
}

func (e *Estimator) extensionBonus(ext string) time.Duration {
	if _, ok := e.codeExts[ext]; ok {
		return e.codeBonus
	}

	if _, ok := e.docExts[ext]; ok {
		return e.docBonus
	}

	return 0
}

// classify decides the commit category by fixed priority and scores the
// agreement between the two independent signals (message keywords and file
// extension category): confidence = agreeing / considered.
func (e *Estimator) classify(
	a models.CommitAnalysis,
) (models.Classification, float64) {
	keywordClass := keywordClassification(a)
	extClass := e.extensionClassification(a)

	class := keywordClass
	if class == "" {
		if extClass == models.Feature {
			class = models.Feature
		} else {
			class = models.Other
		}
	}

	var considered, agreeing int

	if keywordClass != "" {
		considered++
		if keywordClass == class {
			agreeing++
		}
	}

	if extClass != "" {
		considered++
		if extClass == class {
			agreeing++
		}
	}

	if considered == 0 {
		return class, 0
	}

	return class, float64(agreeing) / float64(considered)
}

// keywordClassification applies the documented priority order over the
// matched message keywords. Empty when no keyword matched.
func keywordClassification(a models.CommitAnalysis) models.Classification {
	switch {
	case a.Keywords["fix"] || a.Keywords["bug"]:
		return models.BugFix
	case a.Keywords["test"]:
		return models.Test
	case a.Keywords["doc"]:
		return models.Documentation
	case a.Keywords["refactor"]:
		return models.Refactor
	default:
		return ""
	}
}

// extensionClassification is the file-extension signal: code extensions
// suggest Feature, documentation extensions suggest Documentation, anything
// else suggests Other. Empty when the commit touched no classifiable file.
func (e *Estimator) extensionClassification(
	a models.CommitAnalysis,
) models.Classification {
	if len(a.Extensions) == 0 {
		return ""
	}

	for ext := range a.Extensions {
		if _, ok := e.codeExts[ext]; ok {
			return models.Feature
		}
	}

	for ext := range a.Extensions {
		if _, ok := e.docExts[ext]; ok {
			return models.Documentation
		}
	}

	return models.Other
}
