package domain

import (
	"fmt"
	"regexp"
	"strings"
)

// NamePlaceholder is the literal a pattern rule must contain; it is
// substituted with the original display name.
const NamePlaceholder = "{name}"

// TransformRule describes how the clone engine derives a new display name
// from an original. At least one field must be set.
type TransformRule struct {
	// Prefix is prepended to the name.
	Prefix string
	// Suffix is appended to the name.
	Suffix string
	// Find is a regular expression replaced globally by Replace.
	Find string
	// Replace is the replacement text for Find matches.
	Replace string
	// Pattern is a template containing NamePlaceholder.
	Pattern string
}

// Validate rejects rules that cannot produce a name: no field set, a Find
// without a Replace, a Pattern missing the placeholder, or an
// uncompilable Find expression.
func (r TransformRule) Validate() error {
	if r.Prefix == "" && r.Suffix == "" && r.Find == "" && r.Pattern == "" {
		return fmt.Errorf("%w: no transformation set", ErrInvalidRule)
	}
	if r.Find != "" {
		if r.Replace == "" {
			return fmt.Errorf("%w: find without replace", ErrInvalidRule)
		}
		if _, err := regexp.Compile(r.Find); err != nil {
			return fmt.Errorf("%w: bad find expression: %v", ErrInvalidRule, err)
		}
	}
	if r.Pattern != "" && !strings.Contains(r.Pattern, NamePlaceholder) {
		return fmt.Errorf("%w: pattern missing %s placeholder", ErrInvalidRule, NamePlaceholder)
	}
	return nil
}

// Apply derives the new display name. Rules compose in a fixed order:
// find/replace first, then pattern, then prefix and suffix.
func (r TransformRule) Apply(original string) (string, error) {
	if err := r.Validate(); err != nil {
		return "", err
	}

	name := original
	if r.Find != "" {
		re, err := regexp.Compile(r.Find)
		if err != nil {
			return "", fmt.Errorf("%w: bad find expression: %v", ErrInvalidRule, err)
		}
		name = re.ReplaceAllString(name, r.Replace)
	}
	if r.Pattern != "" {
		name = strings.ReplaceAll(r.Pattern, NamePlaceholder, name)
	}
	return r.Prefix + name + r.Suffix, nil
}
