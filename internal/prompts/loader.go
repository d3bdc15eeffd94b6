// Package prompts holds the prompt templates sent on external assist calls.
// The catalogue is a single JSON file keyed by prompt name and embedded at
// compile time, so a deployed binary never depends on a prompts directory.
package prompts

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	_ "embed"
)

//go:embed assessment.json
var catalogueJSON []byte

// catalogue parses the embedded file once. Template lookups after the first
// are map reads.
var catalogue = sync.OnceValues(func() (map[string]string, error) {
	var templates map[string]string
	if err := json.Unmarshal(catalogueJSON, &templates); err != nil {
		return nil, fmt.Errorf("parse embedded prompt catalogue: %w", err)
	}
	return templates, nil
})

// Get returns the template stored under name.
func Get(name string) (string, error) {
	templates, err := catalogue()
	if err != nil {
		return "", err
	}
	template, ok := templates[name]
	if !ok {
		return "", fmt.Errorf("prompt %q not in catalogue", name)
	}
	return template, nil
}

// MustGet returns the template stored under name, panicking when it is
// missing. The catalogue ships inside the binary, so a miss is a build
// defect, not a runtime condition.
func MustGet(name string) string {
	template, err := Get(name)
	if err != nil {
		panic(err)
	}
	return template
}

// Names returns the catalogue's prompt names in sorted order.
func Names() ([]string, error) {
	templates, err := catalogue()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(templates))
	for name := range templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Format substitutes {{.Key}} placeholders with values from data. Unmatched
// placeholders are left in place.
func Format(template string, data map[string]string) string {
	out := template
	for key, value := range data {
		out = strings.ReplaceAll(out, "{{."+key+"}}", value)
	}
	return out
}
