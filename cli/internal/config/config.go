// Package config loads the linkedapi CLI configuration file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/linkedapi/linkedapi-go/journal"
	"github.com/linkedapi/linkedapi-go/linkedapi"
	"github.com/linkedapi/linkedapi-go/transport"
	"github.com/linkedapi/linkedapi-go/workflow"
)

// DefaultPath is read when no --config flag is given.
const DefaultPath = "linkedapi.yaml"

// File is the linkedapi.yaml structure. Scalars may reference environment
// variables with ${VAR} or ${VAR:default}.
//
//	transport:
//	  api_token: ${LINKEDAPI_TOKEN}
//	  identification_token: ${LINKEDAPI_IDENTIFICATION_TOKEN}
//	poll:
//	  poll_interval: 5s
//	journal:
//	  driver: redis
//	  redis:
//	    address: ${REDIS_ADDR:localhost:6379}
type File struct {
	Transport transport.Config     `yaml:"transport"`
	Poll      workflow.PollOptions `yaml:"poll"`
	Journal   journal.Config       `yaml:"journal"`
}

// Client returns the library configuration.
func (f *File) Client() linkedapi.Config {
	return linkedapi.Config{Transport: f.Transport, Poll: f.Poll}
}

// Load reads path. A missing file is not an error when allowMissing is set,
// so credentials can come from the environment alone.
func Load(path string, allowMissing bool) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if allowMissing && errors.Is(err, os.ErrNotExist) {
			return fromEnv(), nil
		}
		return nil, fmt.Errorf("failed to read config %q: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a config document after environment substitution.
func Parse(data []byte) (*File, error) {
	var cfg File
	if len(bytes.TrimSpace(data)) == 0 {
		return &cfg, nil
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := expandEnv(&doc, lookupEnv); err != nil {
		return nil, fmt.Errorf("failed to expand config: %w", err)
	}
	if err := doc.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

// fromEnv builds a config from LINKEDAPI_* variables only.
func fromEnv() *File {
	var cfg File
	cfg.Transport.APIToken, _ = lookupEnv("LINKEDAPI_TOKEN")
	cfg.Transport.IdentificationToken, _ = lookupEnv("LINKEDAPI_IDENTIFICATION_TOKEN")
	cfg.Transport.BaseURL, _ = lookupEnv("LINKEDAPI_BASE_URL")
	return &cfg
}

// ReadParams decodes a YAML or JSON params document into a map. "-" reads
// from stdin.
func ReadParams(path string, stdin io.Reader) (map[string]any, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read params %q: %w", path, err)
	}

	params := map[string]any{}
	if err := yaml.Unmarshal(data, &params); err != nil {
		return nil, fmt.Errorf("failed to parse params %q: %w", path, err)
	}
	return params, nil
}
