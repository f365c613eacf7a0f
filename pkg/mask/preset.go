package mask

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// PresetFile represents the structure of a YAML preset file: named pattern
// masks, named number masks, and extra rules shared by every pattern mask.
//
//	rules:
//	  - char: "A"
//	    class: "[A-Z]"
//	masks:
//	  date:
//	    pattern: "##//##//####"
//	numbers:
//	  price:
//	    decimals: 2
//	    group: " "
//	    decimal: ","
//	    group_size: [3]
type PresetFile struct {
	Rules   []RuleEntry             `yaml:"rules,omitempty"`
	Masks   map[string]Config       `yaml:"masks,omitempty"`
	Numbers map[string]NumberConfig `yaml:"numbers,omitempty"`
}

// UnmarshalYAML fills fields missing from a number preset with the
// defaults of DefaultNumberFormat.
func (c *NumberConfig) UnmarshalYAML(value *yaml.Node) error {
	type plain NumberConfig
	cfg := plain{Format: DefaultNumberFormat()}
	if err := value.Decode(&cfg); err != nil {
		return err
	}
	*c = NumberConfig(cfg)
	return nil
}

// LoadPresetFile loads and parses a YAML preset file
func LoadPresetFile(filename string) (*PresetFile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read preset file '%s': %w", filename, err)
	}

	presets, err := ParsePresets(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse YAML in preset file '%s': %w", filename, err)
	}
	return presets, nil
}

// ParsePresets parses preset YAML.
func ParsePresets(data []byte) (*PresetFile, error) {
	var presets PresetFile
	if err := yaml.Unmarshal(data, &presets); err != nil {
		return nil, err
	}
	return &presets, nil
}

// Names returns every preset name in sorted order.
func (p *PresetFile) Names() []string {
	names := make([]string, 0, len(p.Masks)+len(p.Numbers))
	for name := range p.Masks {
		names = append(names, name)
	}
	for name := range p.Numbers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Masker builds the named preset.
func (p *PresetFile) Masker(name string) (Masker, error) {
	cfg, isMask := p.Masks[name]
	number, isNumber := p.Numbers[name]

	switch {
	case isMask && isNumber:
		return nil, fmt.Errorf("%w: %q is both a mask and a number preset", ErrInvalidPreset, name)
	case isMask:
		rules, err := ApplyRules(DefaultRules(), p.Rules)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %w", ErrInvalidPreset, name, err)
		}
		cfg.Rules = rules
		m, err := Compile(cfg)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %w", ErrInvalidPreset, name, err)
		}
		return m, nil
	case isNumber:
		m, err := NewNumberMask(number)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %w", ErrInvalidPreset, name, err)
		}
		return m, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrPresetNotFound, name)
	}
}

// Build compiles every preset, failing on the first invalid one.
func (p *PresetFile) Build() (map[string]Masker, error) {
	maskers := make(map[string]Masker, len(p.Masks)+len(p.Numbers))
	for _, name := range p.Names() {
		m, err := p.Masker(name)
		if err != nil {
			return nil, err
		}
		maskers[name] = m
	}
	return maskers, nil
}
