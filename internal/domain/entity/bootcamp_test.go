package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Devworks Bootcamp":      "devworks-bootcamp",
		"ModernTech  Bootcamp":   "moderntech-bootcamp",
		"Codemasters!":           "codemasters",
		"  UI/UX & Design 101 ":  "ui-ux-design-101",
		"already-a-slug":         "already-a-slug",
	}
	for in, want := range cases {
		assert.Equal(t, want, Slugify(in), "input %q", in)
	}
}
