package wfsafile

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ha1tch/wfsa-toolkit/pkg/wfsa"
)

// Load reads a weighted automaton from a file, dispatching on the
// extension: .json, .yaml or .yml.
func Load(path string) (*wfsa.Automaton, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	switch filepath.Ext(path) {
	case ".json":
		return ParseJSON(data)
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return nil, fmt.Errorf("unknown file format: %s", filepath.Ext(path))
	}
}
