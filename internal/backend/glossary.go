package backend

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v2"
)

// Glossary translates by exact lookup. Text it does not know is returned
// unchanged.
type Glossary map[string]string

// Translate returns the glossary entry for text, or text itself.
func (g Glossary) Translate(text string) string {
	if t, ok := g[strings.TrimSpace(text)]; ok && t != "" {
		return t
	}
	return text
}

// ParseGlossary reads "source: target" pairs from YAML.
func ParseGlossary(data []byte) (Glossary, error) {
	g := Glossary{}
	if err := yaml.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("failed to parse glossary: %w", err)
	}
	return g, nil
}

// LoadGlossary reads a glossary file. An empty path yields an empty glossary.
func LoadGlossary(path string) (Glossary, error) {
	if path == "" {
		return Glossary{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read glossary: %w", err)
	}
	return ParseGlossary(data)
}
