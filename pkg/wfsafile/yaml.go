package wfsafile

import (
	"gopkg.in/yaml.v3"

	"github.com/ha1tch/wfsa-toolkit/pkg/wfsa"
)

// ParseYAML parses a weighted automaton from YAML. The document shape
// is the same as the JSON format.
func ParseYAML(data []byte) (*wfsa.Automaton, error) {
	var doc fileAutomaton
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return buildAutomaton(&doc)
}

// ToYAML converts a weighted automaton to YAML.
func ToYAML(a *wfsa.Automaton) ([]byte, error) {
	return yaml.Marshal(buildDocument(a))
}
