// Package uilibrary formats static component-library metadata into prompt
// context so generated code imports real components from the selected
// library instead of inventing them.
package uilibrary

import (
	"embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"codeweave/internal/models"
)

//go:embed dumps/*.json
var dumps embed.FS

type componentDump struct {
	Library    string      `json:"library"`
	ImportPath string      `json:"importPath"`
	Components []component `json:"components"`
}

type component struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Props       []string `json:"props,omitempty"`
}

var dumpFiles = map[string]string{
	models.UILibraryShadcn:   "dumps/shadcn.json",
	models.UILibraryNextUI:   "dumps/nextui.json",
	models.UILibraryFlowbite: "dumps/flowbite.json",
}

// Context renders the component dump for the selected library as system
// prompt text. Unknown or "None" selections produce no context.
func Context(library string) (string, error) {
	file, ok := dumpFiles[library]
	if !ok {
		return "", nil
	}
	data, err := dumps.ReadFile(file)
	if err != nil {
		return "", fmt.Errorf("read component dump for %s: %w", library, err)
	}
	var dump componentDump
	if err := json.Unmarshal(data, &dump); err != nil {
		return "", fmt.Errorf("parse component dump for %s: %w", library, err)
	}

	sort.Slice(dump.Components, func(i, j int) bool {
		return dump.Components[i].Name < dump.Components[j].Name
	})

	var b strings.Builder
	fmt.Fprintf(&b, "The user builds with %s. Import components from %q. Available components:\n", dump.Library, dump.ImportPath)
	for _, c := range dump.Components {
		fmt.Fprintf(&b, "- %s", c.Name)
		if c.Description != "" {
			fmt.Fprintf(&b, ": %s", c.Description)
		}
		if len(c.Props) > 0 {
			fmt.Fprintf(&b, " (props: %s)", strings.Join(c.Props, ", "))
		}
		b.WriteByte('\n')
	}
	return b.String(), nil
}

// Libraries lists the libraries with an embedded dump, for the settings form.
func Libraries() []string {
	names := make([]string, 0, len(dumpFiles))
	for name := range dumpFiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
