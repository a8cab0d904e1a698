package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hejijunhao/seclog/internal/model"
)

// fileFormat is the on-disk shape of a catalog override. Patterns are a list
// rather than a map so declaration order survives the round trip.
type fileFormat struct {
	Patterns []model.Pattern `yaml:"patterns"`
}

// LoadFile reads a YAML catalog override:
//
//	patterns:
//	  - name: Logon Failure
//	    codes: [4625]
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse builds a Catalog from YAML bytes in the LoadFile format.
func Parse(data []byte) (*Catalog, error) {
	var f fileFormat
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("catalog: parse: %w", err)
	}
	if len(f.Patterns) == 0 {
		return nil, fmt.Errorf("catalog: no patterns defined")
	}
	return New(f.Patterns)
}
