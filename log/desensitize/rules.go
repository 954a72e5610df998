package desensitize

import (
	"fmt"
	"regexp"
	"sync/atomic"
)

// Rule rewrites sensitive content in a log line
type Rule interface {
	Name() string
	Enabled() bool
	SetEnabled(enabled bool)
	Process(s string) string
}

// ContentRule masks any match of a pattern, wherever it appears
type ContentRule struct {
	name        string
	pattern     *regexp.Regexp
	replacement string
	enabled     atomic.Bool
}

// NewContentRule compiles pattern; replacement may reference groups ($1)
func NewContentRule(name, pattern, replacement string) (*ContentRule, error) {
	if name == "" {
		return nil, fmt.Errorf("rule name cannot be empty")
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}

	r := &ContentRule{name: name, pattern: re, replacement: replacement}
	r.enabled.Store(true)
	return r, nil
}

// MustNewContentRule panics on an invalid pattern; for package-level rules
func MustNewContentRule(name, pattern, replacement string) *ContentRule {
	r, err := NewContentRule(name, pattern, replacement)
	if err != nil {
		panic(err)
	}
	return r
}

func (r *ContentRule) Name() string            { return r.name }
func (r *ContentRule) Enabled() bool           { return r.enabled.Load() }
func (r *ContentRule) SetEnabled(enabled bool) { r.enabled.Store(enabled) }

func (r *ContentRule) Process(s string) string {
	if !r.Enabled() {
		return s
	}
	return r.pattern.ReplaceAllString(s, r.replacement)
}

// FieldRule replaces the value of a JSON string field, e.g. "password":"..."
type FieldRule struct {
	name        string
	field       string
	replacement string
	pattern     *regexp.Regexp
	enabled     atomic.Bool
}

// NewFieldRule masks every string value stored under field
func NewFieldRule(name, field, replacement string) (*FieldRule, error) {
	if name == "" || field == "" {
		return nil, fmt.Errorf("rule and field name cannot be empty")
	}
	re, err := regexp.Compile(`"` + regexp.QuoteMeta(field) + `"\s*:\s*"[^"]*"`)
	if err != nil {
		return nil, err
	}

	r := &FieldRule{name: name, field: field, replacement: replacement, pattern: re}
	r.enabled.Store(true)
	return r, nil
}

// MustNewFieldRule panics on invalid input; for package-level rules
func MustNewFieldRule(name, field, replacement string) *FieldRule {
	r, err := NewFieldRule(name, field, replacement)
	if err != nil {
		panic(err)
	}
	return r
}

func (r *FieldRule) Name() string            { return r.name }
func (r *FieldRule) Enabled() bool           { return r.enabled.Load() }
func (r *FieldRule) SetEnabled(enabled bool) { r.enabled.Store(enabled) }

func (r *FieldRule) Process(s string) string {
	if !r.Enabled() {
		return s
	}
	return r.pattern.ReplaceAllLiteralString(s, `"`+r.field+`":"`+r.replacement+`"`)
}
