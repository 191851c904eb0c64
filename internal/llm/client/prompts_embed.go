package client

import (
	"embed"
	"strings"
)

// embeddedPrompts holds the built-in prompt templates so packaged executables
// can load them without needing access to the source tree.
//
//go:embed prompts/*.txt
var embeddedPrompts embed.FS

// SystemPrompt returns the base system prompt, optionally extended with
// UI-library context generated from the component dumps.
func SystemPrompt(uiLibraryContext string) string {
	data, err := embeddedPrompts.ReadFile("prompts/system.txt")
	if err != nil {
		return uiLibraryContext
	}
	prompt := strings.TrimSpace(string(data))
	if uiLibraryContext == "" {
		return prompt
	}
	return prompt + "\n\n" + uiLibraryContext
}
