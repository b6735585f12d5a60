// Package analysis implements the brand-scoring engine: alias matching,
// sentence segmentation, salience detection, per-answer metric
// extraction, cross-answer aggregation, and composite scoring.
package analysis

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
)

// Common errors returned by analysis components.
var (
	// ErrEmptyDictionary is returned when a matcher is constructed
	// without any brand entries.
	ErrEmptyDictionary = errors.New("brand dictionary has no entries")

	// ErrEmptyAlias is returned when a dictionary entry carries an
	// empty alias. Empty aliases must be filtered at config-load time.
	ErrEmptyAlias = errors.New("brand alias cannot be empty")

	// ErrNilExtractor is returned when an aggregator is constructed
	// without a metrics extractor.
	ErrNilExtractor = errors.New("metrics extractor is required")
)

// Package-level validator instance for configuration validation.
// Uses go-playground/validator v10 for struct tag-based validation.
var validate = validator.New()

// foldCaser is a package-level Unicode case folder used for containment
// tests that do not need byte offsets. Positional scans use
// strings.ToLower instead, so that offsets remain comparable across the
// whole answer.
var foldCaser = cases.Fold()
