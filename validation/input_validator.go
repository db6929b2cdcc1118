// Package validation checks user input before it reaches the clinical checks.
package validation

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/giygas/clinpharm-api/interfaces"
)

const (
	maxDrugNameLength = 50
	maxFreeTextLength = 1000
)

var (
	// Drug names: letters (any script), digits, spaces and the punctuation
	// found in product names such as "co-amoxiclav" or "insulin 100U/ml"
	drugNameRegex = regexp.MustCompile(`^[\p{L}\p{M}0-9\s\-\.\+'/%()]+$`)

	// Markup and script injection, checked on every input
	markupPatterns = []string{
		"<script", "</script>", "javascript:", "vbscript:", "onload=", "onerror=",
		"onclick=", "onmouseover=", "onfocus=", "onblur=", "onchange=", "onsubmit=",
		"eval(", "expression(", "url(", "@import", "binding(", "behavior(",
		"<iframe", "<img", "<svg", "data:text/html",
	}

	// Query, command and path injection, checked on single drug names only.
	// Free text keeps separators like "; " and "--" that clinicians type.
	injectionPatterns = []string{
		"' or ", "\" or ", "union select", "drop table", "delete from", "insert into",
		"--", "/*", "*/", "exec(", "execute(",
		"`", "$(", "${",
		"../", "..\\", "%2e%2e", "file://",
		"{$ne:", "{$gt:", "{$where:", "{$or:", "{$regex:", "{$expr:",
	}
)

// Compile-time check to ensure InputValidatorImpl implements InputValidator
var _ interfaces.InputValidator = (*InputValidatorImpl)(nil)

// InputValidatorImpl implements the interfaces.InputValidator interface
type InputValidatorImpl struct{}

// NewInputValidator creates a new input validator
func NewInputValidator() interfaces.InputValidator {
	return &InputValidatorImpl{}
}

// ValidateDrugName validates a single drug name. An empty name is accepted:
// the checks answer it with their "not available" default.
func (v *InputValidatorImpl) ValidateDrugName(input string) error {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return nil
	}

	if !utf8.ValidString(input) {
		return fmt.Errorf("drug name is not valid UTF-8")
	}

	length := utf8.RuneCountInString(trimmed)
	if length < 2 {
		return fmt.Errorf("drug name too short: minimum 2 characters")
	}
	if length > maxDrugNameLength {
		return fmt.Errorf("drug name too long: maximum %d characters", maxDrugNameLength)
	}

	lower := strings.ToLower(input)
	if containsAny(lower, markupPatterns) || containsAny(lower, injectionPatterns) {
		return fmt.Errorf("drug name contains potentially dangerous content")
	}

	if !drugNameRegex.MatchString(trimmed) {
		return fmt.Errorf("drug name contains invalid characters. Only letters, numbers, spaces, hyphens, apostrophes, periods, slashes, parentheses, plus and percent signs are allowed")
	}

	if hasExcessiveRepetition(trimmed) {
		return fmt.Errorf("drug name contains excessive character repetition")
	}

	return nil
}

// ValidateFreeText validates a medication list or infection description
func (v *InputValidatorImpl) ValidateFreeText(input string) error {
	if !utf8.ValidString(input) {
		return fmt.Errorf("text is not valid UTF-8")
	}

	if utf8.RuneCountInString(input) > maxFreeTextLength {
		return fmt.Errorf("text too long: maximum %d characters", maxFreeTextLength)
	}

	if strings.ContainsRune(input, 0) {
		return fmt.Errorf("text contains null bytes")
	}

	if containsAny(strings.ToLower(input), markupPatterns) {
		return fmt.Errorf("text contains potentially dangerous content")
	}

	return nil
}

// ValidateMeasurement checks that value is finite and within [min, max]
func (v *InputValidatorImpl) ValidateMeasurement(name string, value, min, max float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return fmt.Errorf("%s must be a finite number", name)
	}

	if value < min || value > max {
		return fmt.Errorf("%s must be between %g and %g, got %g", name, min, max, value)
	}

	return nil
}

func containsAny(s string, patterns []string) bool {
	for _, pattern := range patterns {
		if strings.Contains(s, pattern) {
			return true
		}
	}
	return false
}

// hasExcessiveRepetition reports whether any character repeats more than 10
// times in a row
func hasExcessiveRepetition(input string) bool {
	runes := []rune(input)
	run := 1
	for i := 1; i < len(runes); i++ {
		if runes[i] == runes[i-1] {
			run++
			if run > 10 {
				return true
			}
		} else {
			run = 1
		}
	}
	return false
}
