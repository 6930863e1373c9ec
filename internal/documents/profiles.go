package documents

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed profiles.yaml
var profilesYAML []byte

// RGB is a palette entry.
type RGB [3]int

// Profile is one named design profile for the renderer.
type Profile struct {
	Name         string `yaml:"name"`
	Brand        string `yaml:"brand"`
	Tagline      string `yaml:"tagline"`
	FromName     string `yaml:"from_name"`
	FromLocation string `yaml:"from_location"`
	FromEmail    string `yaml:"from_email"`
	Primary      RGB    `yaml:"primary"`
	Accent       RGB    `yaml:"accent"`
	Mint         RGB    `yaml:"mint"`
	TextDark     RGB    `yaml:"text_dark"`
	TextGray     RGB    `yaml:"text_gray"`
}

type profileFile struct {
	Profiles []Profile `yaml:"profiles"`
}

// LoadProfiles parses a profiles document.
func LoadProfiles(data []byte) (map[string]Profile, error) {
	var pf profileFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("parse profiles: %w", err)
	}
	out := make(map[string]Profile, len(pf.Profiles))
	for _, p := range pf.Profiles {
		if p.Name == "" {
			return nil, fmt.Errorf("profile with empty name")
		}
		out[p.Name] = p
	}
	return out, nil
}

// BuiltinProfile returns a named profile from the embedded set.
func BuiltinProfile(name string) (Profile, error) {
	profiles, err := LoadProfiles(profilesYAML)
	if err != nil {
		return Profile{}, err
	}
	p, ok := profiles[name]
	if !ok {
		return Profile{}, fmt.Errorf("unknown document profile: %s", name)
	}
	return p, nil
}
