package prompt

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed default_profile.yaml
var defaultProfileYAML []byte

// Profile is the regional market baseline and the numeric realism bands the
// prompt pins the model to.
type Profile struct {
	Language       string `yaml:"language"`
	Region         string `yaml:"region"`
	Market         string `yaml:"market"`
	Population     string `yaml:"population"`
	Currency       string `yaml:"currency"`
	Units          Units  `yaml:"units"`
	Bands          []Band `yaml:"hypothesisBands"`
	ScaledBusiness string `yaml:"scaledBusiness"`
}

type Units struct {
	Money     string `yaml:"money"`
	People    string `yaml:"people"`
	Percent   string `yaml:"percent"`
	Frequency string `yaml:"frequency"`
}

// Band is an inclusive range one hypothesis leg must stay within.
type Band struct {
	Leg   string  `yaml:"leg"`
	Label string  `yaml:"label"`
	Min   float64 `yaml:"min"`
	Max   float64 `yaml:"max"`
	Unit  string  `yaml:"unit"`
}

// DefaultProfile returns the embedded South Korea profile.
func DefaultProfile() Profile {
	p, err := ParseProfile(defaultProfileYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded market profile is invalid: %v", err))
	}
	return p
}

// LoadProfile reads a profile from path, or returns the default when path is
// empty.
func LoadProfile(path string) (Profile, error) {
	if strings.TrimSpace(path) == "" {
		return DefaultProfile(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, fmt.Errorf("failed to read market profile: %w", err)
	}
	return ParseProfile(data)
}

func ParseProfile(data []byte) (Profile, error) {
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Profile{}, fmt.Errorf("failed to parse market profile: %w", err)
	}
	if err := p.Validate(); err != nil {
		return Profile{}, err
	}
	return p, nil
}

func (p Profile) Validate() error {
	var missing []string
	for name, v := range map[string]string{
		"language":   p.Language,
		"region":     p.Region,
		"market":     p.Market,
		"population": p.Population,
		"currency":   p.Currency,
	} {
		if strings.TrimSpace(v) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		slices.Sort(missing)
		return fmt.Errorf("market profile is missing %s", strings.Join(missing, ", "))
	}
	for _, b := range p.Bands {
		switch b.Leg {
		case "x", "y", "z":
		default:
			return fmt.Errorf("market profile band %q has unknown leg %q", b.Label, b.Leg)
		}
		if b.Min > b.Max {
			return errors.New("market profile band " + b.Label + " has min greater than max")
		}
	}
	return nil
}
