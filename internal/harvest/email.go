// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package harvest

import (
	"fmt"
	"strings"
)

// Recognized email template placeholders.
const (
	placeholderFirst        = "{first}"
	placeholderLast         = "{last}"
	placeholderFirstInitial = "{f}"
	placeholderLastInitial  = "{l}"
)

// ValidateTemplate checks an email template before a run starts. An empty
// template is valid and disables synthesis. A non-empty template must have
// balanced braces and at least one recognized placeholder.
func ValidateTemplate(template string) error {
	if template == "" {
		return nil
	}
	depth := 0
	for _, r := range template {
		switch r {
		case '{':
			depth++
			if depth > 1 {
				return fmt.Errorf("%w: nested brace in email template %q", ErrInvalidInput, template)
			}
		case '}':
			depth--
			if depth < 0 {
				return fmt.Errorf("%w: unbalanced brace in email template %q", ErrInvalidInput, template)
			}
		}
	}
	if depth != 0 {
		return fmt.Errorf("%w: unbalanced brace in email template %q", ErrInvalidInput, template)
	}
	for _, p := range []string{placeholderFirst, placeholderLast, placeholderFirstInitial, placeholderLastInitial} {
		if strings.Contains(template, p) {
			return nil
		}
	}
	return fmt.Errorf("%w: email template %q has no {first}, {last}, {f} or {l} placeholder", ErrInvalidInput, template)
}

// Synthesize fills template with the folded parts of n. Unrecognized
// placeholders are left as written. It returns ErrNoTemplate when template
// is empty and ErrUnsplittable when a name part folds to nothing.
func Synthesize(template string, n Name) (string, error) {
	if template == "" {
		return "", ErrNoTemplate
	}
	first, last := Fold(n.First), Fold(n.Last)
	if first == "" || last == "" {
		return "", fmt.Errorf("%w: %q %q has no usable characters", ErrUnsplittable, n.First, n.Last)
	}

	r := strings.NewReplacer(
		placeholderFirst, first,
		placeholderLast, last,
		placeholderFirstInitial, first[:1],
		placeholderLastInitial, last[:1],
	)
	return r.Replace(template), nil
}
