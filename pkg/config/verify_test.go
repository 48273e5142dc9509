package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyAgainstEmbeddedSchema(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(cfg *Config)
		wantErr bool
		errMsg  string
	}{
		{name: "valid config", modify: func(*Config) {}},
		{name: "with criteria overrides", modify: func(cfg *Config) {
			on := true
			cfg.Defaults.Keywords = []string{"song"}
			cfg.Defaults.SearchInChannel = &on
		}},
		{name: "missing socket", modify: func(cfg *Config) { cfg.Player.Socket = "" }, wantErr: true, errMsg: "player.socket is required"},
		{name: "missing dsn", modify: func(cfg *Config) { cfg.Database.DSN = "" }, wantErr: true, errMsg: "database.dsn is required"},
		{name: "missing listen", modify: func(cfg *Config) { cfg.Server.Listen = "" }, wantErr: true, errMsg: "server.listen is required"},
		{name: "missing timeout", modify: func(cfg *Config) { cfg.Server.Timeout = 0 }, wantErr: true, errMsg: "server.timeout is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := VerifyAgainstEmbeddedSchema(cfg)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestVerify_UnknownKeys(t *testing.T) {
	var schema map[string]any
	require.NoError(t, json.Unmarshal([]byte(embeddedSchema), &schema))
	player := schema["$defs"].(map[string]any)["PlayerConfig"].(map[string]any)
	delete(player["properties"].(map[string]any), "dial_retries")
	data, err := json.Marshal(schema)
	require.NoError(t, err)

	err = verify(data, Default())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "player.dial_retries is not in schema")

	err = verify([]byte(`{"$ref": "#/$defs/Missing", "$defs": {}}`), Default())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no root definition")

	err = verify([]byte(`not json`), Default())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse schema")
}

func TestVerifyAgainstSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.json")
	require.NoError(t, os.WriteFile(path, []byte(embeddedSchema), 0o600))
	require.NoError(t, VerifyAgainstSchema(Default(), path))

	err := VerifyAgainstSchema(Default(), filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read schema file")
}

func TestGenerateSchema(t *testing.T) {
	schema, err := GenerateSchema()
	require.NoError(t, err)
	require.NotNil(t, schema)

	data, err := json.Marshal(schema)
	require.NoError(t, err)
	for _, section := range []string{"PlayerConfig", "EngineConfig", "DatabaseConfig", "ServerConfig", "CriteriaDefaults"} {
		assert.Contains(t, string(data), section)
	}
}

func TestEmbeddedSchemaMatchesGenerated(t *testing.T) {
	generated, err := GenerateSchema()
	require.NoError(t, err)
	data, err := json.Marshal(generated)
	require.NoError(t, err)

	var gen, embedded schemaDoc
	require.NoError(t, json.Unmarshal(data, &gen))
	require.NoError(t, json.Unmarshal([]byte(embeddedSchema), &embedded))

	// every generated property must be known to the embedded schema, run go generate otherwise
	for name, def := range gen.Defs {
		emb, ok := embedded.Defs[name]
		require.True(t, ok, "definition %s missing in embedded schema", name)
		for prop := range def.Properties {
			assert.Contains(t, emb.Properties, prop, "%s.%s missing in embedded schema", name, prop)
		}
	}
}
