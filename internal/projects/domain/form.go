package domain

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Normalize trims every text field, drops empty and duplicate tech labels
// (first occurrence wins) and drops empty screenshot entries. Order is kept.
func (d ProjectFormData) Normalize() ProjectFormData {
	out := ProjectFormData{
		Title:       strings.TrimSpace(d.Title),
		Description: strings.TrimSpace(d.Description),
		GithubURL:   strings.TrimSpace(d.GithubURL),
		LiveURL:     strings.TrimSpace(d.LiveURL),
		TechStack:   make([]string, 0, len(d.TechStack)),
		Screenshots: make([]string, 0, len(d.Screenshots)),
	}

	seen := make(map[string]struct{}, len(d.TechStack))
	for _, t := range d.TechStack {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out.TechStack = append(out.TechStack, t)
	}

	for _, s := range d.Screenshots {
		if s = strings.TrimSpace(s); s != "" {
			out.Screenshots = append(out.Screenshots, s)
		}
	}

	return out
}

// Validate applies the admin form rules: title, description and at least one
// tech label are required; URLs, when present, must be absolute.
func (d ProjectFormData) Validate() error {
	if err := validate.Struct(d); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidForm, err)
	}
	return nil
}
