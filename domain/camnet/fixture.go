package camnet

import (
	"fmt"
	"os"

	"camconsole/entity"

	"gopkg.in/yaml.v3"
)

// Fixture is the YAML description of a camera network.
type Fixture struct {
	MapRef  string          `yaml:"map_ref"`
	Style   string          `yaml:"style"`
	Active  string          `yaml:"active"`
	Cameras []entity.Camera `yaml:"cameras"`
}

func ParseFixture(data []byte) (Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Fixture{}, fmt.Errorf("parse fixture: %w", err)
	}
	return f, nil
}

func LoadFixture(path string) (Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Fixture{}, fmt.Errorf("read fixture: %w", err)
	}
	return ParseFixture(data)
}

// Network builds a network from the fixture. An Active name that does not
// resolve to an online camera leaves nothing active.
func (f Fixture) Network() *Network {
	n := New(entity.Snapshot{Cameras: f.Cameras, MapRef: f.MapRef}, f.Style)
	if f.Active != "" {
		n.Switch(f.Active)
	}
	return n
}
