package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	in := ProjectFormData{
		Title:       "  Portfolio ",
		Description: "\tsite\n",
		TechStack:   []string{" Go", "", "Rust", "Go ", "  "},
		GithubURL:   " ",
		Screenshots: []string{"https://x/1.png", " ", "https://x/0.png"},
	}

	got := in.Normalize()

	assert.Equal(t, "Portfolio", got.Title)
	assert.Equal(t, "site", got.Description)
	assert.Equal(t, []string{"Go", "Rust"}, got.TechStack)
	assert.Empty(t, got.GithubURL)
	assert.Equal(t, []string{"https://x/1.png", "https://x/0.png"}, got.Screenshots)
}

func TestValidate(t *testing.T) {
	valid := ProjectFormData{
		Title:       "A",
		Description: "d",
		TechStack:   []string{"Go"},
		Screenshots: []string{},
	}

	cases := []struct {
		name    string
		mutate  func(*ProjectFormData)
		wantErr bool
	}{
		{"valid", func(*ProjectFormData) {}, false},
		{"valid with urls", func(d *ProjectFormData) {
			d.GithubURL = "https://github.com/me/a"
			d.LiveURL = "https://a.dev"
		}, false},
		{"missing title", func(d *ProjectFormData) { d.Title = "" }, true},
		{"missing description", func(d *ProjectFormData) { d.Description = "" }, true},
		{"no tech", func(d *ProjectFormData) { d.TechStack = nil }, true},
		{"empty tech label", func(d *ProjectFormData) { d.TechStack = []string{""} }, true},
		{"bad github url", func(d *ProjectFormData) { d.GithubURL = "not a url" }, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := valid
			d.TechStack = append([]string(nil), valid.TechStack...)
			tc.mutate(&d)
			err := d.Validate()
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrInvalidForm)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestWithIDCopiesSlices(t *testing.T) {
	d := ProjectFormData{Title: "A", TechStack: []string{"Go"}, Screenshots: []string{"u"}}
	p := d.WithID("abc")
	d.TechStack[0] = "Rust"

	assert.Equal(t, "abc", p.ID)
	assert.Equal(t, []string{"Go"}, p.TechStack)
	assert.Equal(t, d.Screenshots, p.FormData().Screenshots)
}
