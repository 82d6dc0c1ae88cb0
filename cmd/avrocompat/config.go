package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/syssam/avrocompat/adapter"
)

// fileConfig is the YAML configuration file:
//
//	java: /usr/bin/java
//	workers: 4
//	release: "1.7"
//	target: "1.4"
//	out: gen-src
//	releases:
//	  "1.7": { jar: /opt/avro/avro-tools-1.7.7.jar }
type fileConfig struct {
	Java     string                    `yaml:"java,omitempty"`
	Workers  int                       `yaml:"workers,omitempty"`
	Release  string                    `yaml:"release,omitempty"`
	Target   string                    `yaml:"target,omitempty"`
	Out      string                    `yaml:"out,omitempty"`
	Releases map[string]adapter.Config `yaml:"releases,omitempty"`
}

// loadConfig reads the configuration file at path. Unknown keys are errors.
func loadConfig(path string) (*fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg fileConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &cfg, nil
}
