// Package config holds the eedis tool configuration.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/invopop/jsonschema"
	"gopkg.in/yaml.v3"

	"github.com/sarchlab/eelift/fetch"
)

// ErrUnknownFormat is returned for config files that are neither JSON nor
// YAML.
var ErrUnknownFormat = errors.New("unknown config format")

// ICacheConfig is the geometry of the fetch cache.
type ICacheConfig struct {
	// Size in bytes. Default: 16 KiB.
	Size int `json:"size" yaml:"size" jsonschema:"description=Cache size in bytes,minimum=1"`

	// Associativity is the number of ways. Default: 2.
	Associativity int `json:"associativity" yaml:"associativity" jsonschema:"description=Number of ways,minimum=1"`

	// BlockSize is the line size in bytes. Default: 64.
	BlockSize int `json:"block_size" yaml:"block_size" jsonschema:"description=Line size in bytes,minimum=4"`
}

// Config holds the disassembler and lifter options.
type Config struct {
	// Pseudo renders pseudo-op forms (li, move, b, ...). Default: true.
	Pseudo bool `json:"pseudo" yaml:"pseudo" jsonschema:"title=Pseudo-ops,description=Render pseudo-op forms"`

	// HexThreshold is the magnitude from which immediates print in hex.
	// Default: 10.
	HexThreshold int64 `json:"hex_threshold" yaml:"hex_threshold" jsonschema:"description=Immediates at or above this magnitude print in hex,minimum=0"`

	// Color enables syntax colouring on terminals. Default: true.
	Color bool `json:"color" yaml:"color" jsonschema:"description=Colour listings on terminals"`

	// RequireEEFlag rejects ELF files without the R5900 e_flags bit.
	// Default: true.
	RequireEEFlag bool `json:"require_ee_flag" yaml:"require_ee_flag" jsonschema:"description=Reject ELF files without the R5900 flag"`

	// MaxInstructions caps listings and block discovery. 0 is unlimited.
	MaxInstructions int `json:"max_instructions" yaml:"max_instructions" jsonschema:"description=Instruction cap (0 is unlimited),minimum=0"`

	// Workers is the decode parallelism of a sweep. Default: 4.
	Workers int `json:"workers" yaml:"workers" jsonschema:"description=Parallel decode workers,minimum=1"`

	ICache ICacheConfig `json:"icache" yaml:"icache"`
}

// DefaultConfig returns a Config with the default values.
func DefaultConfig() *Config {
	ic := fetch.DefaultConfig()
	return &Config{
		Pseudo:          true,
		HexThreshold:    10,
		Color:           true,
		RequireEEFlag:   true,
		MaxInstructions: 0,
		Workers:         4,
		ICache: ICacheConfig{
			Size:          ic.Size,
			Associativity: ic.Associativity,
			BlockSize:     ic.BlockSize,
		},
	}
}

// LoadConfig loads a Config from a JSON or YAML file, picked by
// extension. Missing fields keep their defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		err = json.Unmarshal(data, config)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, config)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// SaveConfig writes the Config as JSON or YAML, picked by extension.
func (c *Config) SaveConfig(path string) error {
	var (
		data []byte
		err  error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		data, err = json.MarshalIndent(c, "", "  ")
	case ".yaml", ".yml":
		data, err = yaml.Marshal(c)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate checks value ranges and the cache geometry.
func (c *Config) Validate() error {
	if c.HexThreshold < 0 {
		return fmt.Errorf("hex_threshold must be >= 0")
	}
	if c.MaxInstructions < 0 {
		return fmt.Errorf("max_instructions must be >= 0")
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be > 0")
	}

	ic := c.ICache
	if ic.Size <= 0 || ic.Associativity <= 0 || ic.BlockSize <= 0 {
		return fmt.Errorf("icache size, associativity and block_size must be > 0")
	}
	if ic.BlockSize%4 != 0 || ic.BlockSize&(ic.BlockSize-1) != 0 {
		return fmt.Errorf("icache block_size must be a power of two and a multiple of 4")
	}
	if ic.Size%(ic.Associativity*ic.BlockSize) != 0 {
		return fmt.Errorf("icache size must be a multiple of associativity * block_size")
	}
	return nil
}

// Clone returns a copy of the Config.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// FetchConfig returns the fetch cache geometry.
func (c *Config) FetchConfig() fetch.Config {
	return fetch.Config{
		Size:          c.ICache.Size,
		Associativity: c.ICache.Associativity,
		BlockSize:     c.ICache.BlockSize,
	}
}

// Schema returns the JSON schema of Config.
func Schema() ([]byte, error) {
	reflector := new(jsonschema.Reflector)
	bts, err := json.MarshalIndent(reflector.Reflect(&Config{}), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	return bts, nil
}
