package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := map[string]string{
		"Hello World":                   "hello-world",
		"  10 Tips for Better Sleep!  ": "10-tips-for-better-sleep",
		"Heart & Lungs -- a guide":      "heart-lungs-a-guide",
		"???":                           "",
	}

	for title, want := range tests {
		assert.Equal(t, want, Slugify(title), title)
	}
}
