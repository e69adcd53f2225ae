package repository

import (
	"fmt"
	"strings"
	"time"

	"github.com/iamdominic/portfolio-backend/internal/projects/domain"
)

// fromDocument maps a raw schemaless document onto a Project. Missing lists
// default to empty and missing URLs to "not provided"; a missing title or
// description, or any field of the wrong type, is rejected.
func fromDocument(id string, data map[string]any) (domain.Project, error) {
	p := domain.Project{ID: id}
	if id == "" {
		return p, fmt.Errorf("%w: empty id", domain.ErrMalformedRecord)
	}

	var err error
	if p.Title, err = requiredString(data, fieldTitle); err != nil {
		return p, err
	}
	if p.Description, err = requiredString(data, fieldDescription); err != nil {
		return p, err
	}
	if p.GithubURL, err = optionalString(data, fieldGithubURL); err != nil {
		return p, err
	}
	if p.LiveURL, err = optionalString(data, fieldLiveURL); err != nil {
		return p, err
	}
	if p.TechStack, err = stringList(data, fieldTechStack); err != nil {
		return p, err
	}
	if p.Screenshots, err = stringList(data, fieldScreenshots); err != nil {
		return p, err
	}

	// pending server timestamps come back as nil; leave them zero
	p.CreatedAt, _ = data[fieldCreatedAt].(time.Time)
	p.UpdatedAt, _ = data[fieldUpdatedAt].(time.Time)

	return p, nil
}

// toDocument is the inverse of fromDocument for the mutable fields.
// Empty URLs are left out.
func toDocument(d domain.ProjectFormData) map[string]any {
	doc := map[string]any{
		fieldTitle:       d.Title,
		fieldDescription: d.Description,
		fieldTechStack:   nonNil(d.TechStack),
		fieldScreenshots: nonNil(d.Screenshots),
	}
	if d.GithubURL != "" {
		doc[fieldGithubURL] = d.GithubURL
	}
	if d.LiveURL != "" {
		doc[fieldLiveURL] = d.LiveURL
	}
	return doc
}

func requiredString(data map[string]any, key string) (string, error) {
	v, ok := data[key]
	if !ok || v == nil {
		return "", fmt.Errorf("%w: missing %s", domain.ErrMalformedRecord, key)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: %s is %T", domain.ErrMalformedRecord, key, v)
	}
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("%w: empty %s", domain.ErrMalformedRecord, key)
	}
	return s, nil
}

func optionalString(data map[string]any, key string) (string, error) {
	v, ok := data[key]
	if !ok || v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: %s is %T", domain.ErrMalformedRecord, key, v)
	}
	return strings.TrimSpace(s), nil
}

func stringList(data map[string]any, key string) ([]string, error) {
	v, ok := data[key]
	if !ok || v == nil {
		return []string{}, nil
	}

	switch list := v.(type) {
	case []string:
		return append([]string{}, list...), nil
	case []any:
		out := make([]string, 0, len(list))
		for i, item := range list {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%w: %s[%d] is %T", domain.ErrMalformedRecord, key, i, item)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %s is %T", domain.ErrMalformedRecord, key, v)
	}
}

// screenshotRefs reads the screenshots field without validating the rest of
// the document. Non-string entries are ignored.
func screenshotRefs(data map[string]any) []string {
	switch v := data[fieldScreenshots].(type) {
	case string:
		return []string{v}
	case []string:
		return append([]string{}, v...)
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

func nonNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
