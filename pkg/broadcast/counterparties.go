package broadcast

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/bolibazaar/bolibazaar/pkg/domain"
)

//go:embed counterparties.yaml
var counterpartiesYAML []byte

type counterpartyFile struct {
	Counterparties []domain.Counterparty `yaml:"counterparties"`
}

// LoadCounterparties parses the embedded counterparty registry.
func LoadCounterparties() ([]domain.Counterparty, error) {
	var file counterpartyFile
	if err := yaml.Unmarshal(counterpartiesYAML, &file); err != nil {
		return nil, fmt.Errorf("failed to parse counterparty registry: %w", err)
	}
	for _, c := range file.Counterparties {
		if c.Reliability < 1 || c.Reliability > 5 {
			return nil, fmt.Errorf("counterparty %q: reliability %d out of range", c.Name, c.Reliability)
		}
	}
	return file.Counterparties, nil
}
