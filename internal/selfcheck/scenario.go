package selfcheck

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/tiaki/internal/region"
)

//go:embed canary.yaml
var defaultScenario []byte

// Scenario fixes the expectations of a self-check run.
type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`

	// Council is the council canary locations are classified against.
	Council string `yaml:"council"`

	// CommunityMarker must appear in the community document.
	CommunityMarker string `yaml:"community_marker"`

	Canaries []Canary `yaml:"canaries"`
}

// Canary is a location with its expected resolved label.
type Canary struct {
	Location string `yaml:"location"`
	Expect   string `yaml:"expect"`
}

// DefaultScenario returns the embedded canary scenario.
func DefaultScenario() *Scenario {
	s, err := ParseScenario(defaultScenario)
	if err != nil {
		panic(fmt.Sprintf("selfcheck: embedded scenario: %v", err))
	}
	return s
}

// LoadScenario reads a scenario file. Unknown fields are rejected.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario decodes and validates scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	var s Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&s); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := validateScenario(&s); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &s, nil
}

func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if _, err := region.ParseCouncil(s.Council); err != nil {
		return fmt.Errorf("council: %w", err)
	}
	if s.CommunityMarker == "" {
		return fmt.Errorf("community_marker is required")
	}
	if len(s.Canaries) == 0 {
		return fmt.Errorf("canaries list is required and must be non-empty")
	}
	for i, c := range s.Canaries {
		if c.Location == "" || c.Expect == "" {
			return fmt.Errorf("canaries[%d]: location and expect are required", i)
		}
	}
	return nil
}
