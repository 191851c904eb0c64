package utils_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"codeweave/internal/utils"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Build me a todo app":    "build-me-a-todo-app",
		"  Hello,   World  ":     "hello-world",
		"What's new in Go 1.23?": "what-s-new-in-go-1-23",
		"???":                    "",
		"":                       "",
		"already-a-slug":         "already-a-slug",
	}
	for input, want := range cases {
		assert.Equal(t, want, utils.Slugify(input), "input %q", input)
	}
}

func TestTruncateWords(t *testing.T) {
	assert.Equal(t, "short", utils.TruncateWords("short", 60))
	assert.Equal(t, "short", utils.TruncateWords("  short  ", 60))

	// cuts at a word boundary when one falls in the second half
	got := utils.TruncateWords("Build me a todo app with drag and drop", 20)
	assert.Equal(t, "Build me a todo app", got)

	// single long token just gets truncated
	got = utils.TruncateWords("aaaaaaaaaaaaaaaaaaaaaaaa", 10)
	assert.Equal(t, "aaaaaaaaaa", got)
}
