package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/invopop/jsonschema"
)

//go:embed schema.json
var embeddedSchema string

// schemaDoc is the part of a reflected schema needed to check config keys
type schemaDoc struct {
	Ref  string                `json:"$ref"`
	Defs map[string]schemaNode `json:"$defs"`
}

type schemaNode struct {
	Ref        string                `json:"$ref"`
	Type       string                `json:"type"`
	Properties map[string]schemaNode `json:"properties"`
}

// VerifyAgainstEmbeddedSchema validates the config against the embedded JSON schema
func VerifyAgainstEmbeddedSchema(cfg *Config) error {
	return verify([]byte(embeddedSchema), cfg)
}

// VerifyAgainstSchema validates the config against the JSON schema from file
func VerifyAgainstSchema(cfg *Config, schemaPath string) error {
	schemaData, err := os.ReadFile(schemaPath) //nolint:gosec // schema path is controlled by us
	if err != nil {
		return fmt.Errorf("read schema file: %w", err)
	}
	return verify(schemaData, cfg)
}

func verify(schemaData []byte, cfg *Config) error {
	var schema schemaDoc
	if err := json.Unmarshal(schemaData, &schema); err != nil {
		return fmt.Errorf("parse schema: %w", err)
	}

	// convert config to JSON for validation
	configData, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	var configMap map[string]any
	if err := json.Unmarshal(configData, &configMap); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}

	root, ok := schema.resolve(schemaNode{Ref: schema.Ref})
	if !ok {
		return fmt.Errorf("schema has no root definition %q", schema.Ref)
	}
	if err := schema.check("", root, configMap); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	// basic validation - check required fields match
	if err := validateRequiredFields(cfg); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}

func (s schemaDoc) resolve(n schemaNode) (schemaNode, bool) {
	if n.Ref == "" {
		return n, true
	}
	def, ok := s.Defs[strings.TrimPrefix(n.Ref, "#/$defs/")]
	return def, ok
}

// check walks config values and fails on keys the schema does not describe
func (s schemaDoc) check(path string, node schemaNode, value map[string]any) error {
	keys := make([]string, 0, len(value))
	for k := range value {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		prop, ok := node.Properties[k]
		if !ok {
			return fmt.Errorf("%s%s is not in schema", path, k)
		}
		nested, isMap := value[k].(map[string]any)
		if !isMap {
			continue
		}
		def, ok := s.resolve(prop)
		if !ok {
			return fmt.Errorf("%s%s refers to missing definition %q", path, k, prop.Ref)
		}
		if err := s.check(path+k+".", def, nested); err != nil {
			return err
		}
	}
	return nil
}

// validateRequiredFields performs basic validation of required fields
func validateRequiredFields(cfg *Config) error {
	if cfg.Player.Socket == "" {
		return fmt.Errorf("player.socket is required")
	}
	if cfg.Database.DSN == "" {
		return fmt.Errorf("database.dsn is required")
	}
	if cfg.Server.Listen == "" {
		return fmt.Errorf("server.listen is required")
	}
	if cfg.Server.Timeout == 0 {
		return fmt.Errorf("server.timeout is required")
	}
	return nil
}

// GenerateSchema generates a JSON schema for the Config struct
func GenerateSchema() (*jsonschema.Schema, error) {
	return jsonschema.Reflect(&Config{}), nil
}
