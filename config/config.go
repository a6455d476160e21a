// Package config holds the exporter defaults and the naming configuration
// shared by the s2dm commands.
package config

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// ConceptNamespace and ConceptPrefix name the concept URIs of the
	// registry and SKOS exporters.
	ConceptNamespace string `yaml:"concept_namespace"`
	ConceptPrefix    string `yaml:"concept_prefix"`

	// Language is the BCP 47 tag used for skos:prefLabel literals.
	Language string `yaml:"language"`

	ShapesNamespace       string `yaml:"shapes_namespace"`
	ShapesNamespacePrefix string `yaml:"shapes_namespace_prefix"`
	ModelNamespace        string `yaml:"model_namespace"`
	ModelNamespacePrefix  string `yaml:"model_namespace_prefix"`

	// Debounce is the quiet period the compose watcher waits for.
	Debounce time.Duration `yaml:"debounce"`
}

func Default() *Config {
	return &Config{
		ConceptNamespace:      "https://example.org/vss#",
		ConceptPrefix:         "ns",
		Language:              "en",
		ShapesNamespace:       "http://example.ns/shapes#",
		ShapesNamespacePrefix: "shapes",
		ModelNamespace:        "http://example.ns/model#",
		ModelNamespacePrefix:  "model",
		Debounce:              200 * time.Millisecond,
	}
}

// Load reads a YAML file over the defaults. An empty path returns the
// defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return cfg, nil
}

// Element types a naming rule can apply to.
const (
	ElementType        = "type"
	ElementField       = "field"
	ElementArgument    = "argument"
	ElementEnumValue   = "enumValue"
	ElementInstanceTag = "instanceTag"
)

// ValidCases lists the case conventions a naming rule may ask for.
var ValidCases = []string{
	"COBOL-CASE",
	"MACROCASE",
	"PascalCase",
	"TitleCase",
	"camelCase",
	"flatcase",
	"kebab-case",
	"snake_case",
}

var validElements = []string{ElementArgument, ElementEnumValue, ElementField, ElementInstanceTag, ElementType}

var validContexts = map[string][]string{
	ElementType:     {"enum", "input", "interface", "object", "scalar", "union"},
	ElementField:    {"input", "interface", "object"},
	ElementArgument: {"field"},
}

// NamingRule is either a single case for every context or a case per context.
//
//	type: PascalCase
//	field:
//	  object: camelCase
//	  input: snake_case
type NamingRule struct {
	Case     string
	Contexts map[string]string
}

func (r *NamingRule) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		return value.Decode(&r.Case)
	case yaml.MappingNode:
		return value.Decode(&r.Contexts)
	}
	return fmt.Errorf("line %d: expected string or mapping", value.Line)
}

// Naming maps element types to naming rules.
type Naming map[string]NamingRule

// CaseFor returns the case configured for element in context, or "".
func (n Naming) CaseFor(element, context string) string {
	rule, ok := n[element]
	if !ok {
		return ""
	}
	if rule.Contexts != nil {
		return rule.Contexts[context]
	}
	return rule.Case
}

// Validate checks element types, contexts and cases.
func (n Naming) Validate() error {
	cases := strings.Join(ValidCases, ", ")

	elements := make([]string, 0, len(n))
	for element := range n {
		elements = append(elements, element)
	}
	sort.Strings(elements)

	for _, element := range elements {
		rule := n[element]
		if !contains(validElements, element) {
			return fmt.Errorf("invalid element type '%s'. Valid types: %s", element, strings.Join(validElements, ", "))
		}

		if rule.Contexts != nil {
			allowed, ok := validContexts[element]
			if !ok {
				return fmt.Errorf("element type '%s' cannot have contexts", element)
			}
			contexts := make([]string, 0, len(rule.Contexts))
			for context := range rule.Contexts {
				contexts = append(contexts, context)
			}
			sort.Strings(contexts)
			for _, context := range contexts {
				if !contains(allowed, context) {
					return fmt.Errorf("invalid context '%s' for '%s'. Valid contexts: %s", context, element, strings.Join(allowed, ", "))
				}
				if c := rule.Contexts[context]; !contains(ValidCases, c) {
					return fmt.Errorf("invalid case type for '%s.%s': '%s'. Valid cases: %s", element, context, c, cases)
				}
			}
			continue
		}

		if !contains(ValidCases, rule.Case) {
			return fmt.Errorf("invalid case type for '%s': '%s'. Valid cases: %s", element, rule.Case, cases)
		}
	}

	if _, ok := n[ElementEnumValue]; ok {
		if _, ok := n[ElementInstanceTag]; !ok {
			return fmt.Errorf("if '%s' is present, '%s' must also be present", ElementEnumValue, ElementInstanceTag)
		}
	}
	return nil
}

// LoadNaming reads and validates a naming configuration. An empty path or an
// empty document yields a nil Naming.
func LoadNaming(path string) (Naming, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open naming config file %s: %w", path, err)
	}

	var naming Naming
	if err := yaml.Unmarshal(data, &naming); err != nil {
		return nil, fmt.Errorf("failed to load naming config from %s: %w", path, err)
	}
	if len(naming) == 0 {
		return nil, nil
	}
	if err := naming.Validate(); err != nil {
		return nil, err
	}
	return naming, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
