package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// EnvVarSpec is a parsed config value: either a literal or a reference to
// an environment variable with an optional default.
type EnvVarSpec struct {
	VarName      string
	HasDefault   bool
	DefaultValue string
	IsLiteral    bool
	LiteralValue string
}

// envVarPattern matches ${VAR} and ${VAR:default}.
var envVarPattern = regexp.MustCompile(`^\$\{([A-Z_][A-Z0-9_]*)(:[^}]*)?\}$`)

// ParseEnvVar parses a config value.
//
//	ParseEnvVar("${LINKEDAPI_TOKEN}")            -> required variable
//	ParseEnvVar("${LINKEDAPI_URL:https://...}")  -> variable with default
//	ParseEnvVar("https://api.linkedapi.io")      -> literal
func ParseEnvVar(value string) (*EnvVarSpec, error) {
	matches := envVarPattern.FindStringSubmatch(value)
	if matches == nil {
		if strings.HasPrefix(value, "${") && strings.HasSuffix(value, "}") {
			return nil, fmt.Errorf("invalid environment variable reference: %s", value)
		}
		return &EnvVarSpec{IsLiteral: true, LiteralValue: value}, nil
	}

	spec := &EnvVarSpec{VarName: matches[1], HasDefault: matches[2] != ""}
	if spec.HasDefault {
		spec.DefaultValue = strings.TrimPrefix(matches[2], ":")
	}
	return spec, nil
}

// Resolve returns the value of spec using lookup, which has the signature
// of os.LookupEnv. A required variable that is unset is an error.
func (s *EnvVarSpec) Resolve(lookup func(string) (string, bool)) (string, error) {
	if s.IsLiteral {
		return s.LiteralValue, nil
	}
	if v, ok := lookup(s.VarName); ok {
		return v, nil
	}
	if s.HasDefault {
		return s.DefaultValue, nil
	}
	return "", fmt.Errorf("environment variable %s is not set", s.VarName)
}

// expandEnv substitutes environment references in every scalar of a YAML
// document, before it is decoded into typed config.
func expandEnv(node *yaml.Node, lookup func(string) (string, bool)) error {
	if node.Kind == yaml.ScalarNode {
		spec, err := ParseEnvVar(node.Value)
		if err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}
		if spec.IsLiteral {
			return nil
		}
		v, err := spec.Resolve(lookup)
		if err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}
		node.Value = v
		// Let the target type drive decoding of the substituted value.
		node.Tag = ""
		node.Style = 0
		return nil
	}

	for _, child := range node.Content {
		if err := expandEnv(child, lookup); err != nil {
			return err
		}
	}
	return nil
}

var lookupEnv = os.LookupEnv
