package validation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const personSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"properties": {
		"name": {"type": "string"},
		"age": {"type": "integer", "minimum": 0}
	},
	"required": ["name"]
}`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestSchemaValidator_ValidateFile(t *testing.T) {
	validator := NewSchemaValidator()
	tmpDir := t.TempDir()
	schemaPath := writeFile(t, tmpDir, "test.schema.json", personSchema)

	tests := []struct {
		name      string
		data      string
		wantError bool
		errorMsg  string
	}{
		{name: "valid data", data: `{"name": "John", "age": 30}`},
		{name: "valid data without optional field", data: `{"name": "Jane"}`},
		{name: "missing required field", data: `{"age": 25}`, wantError: true, errorMsg: "required"},
		{name: "wrong type for field", data: `{"name": "John", "age": "thirty"}`, wantError: true, errorMsg: "age"},
		{name: "constraint violation", data: `{"name": "John", "age": -5}`, wantError: true, errorMsg: "minimum"},
		{name: "invalid JSON", data: `{"name": "John", "age": }`, wantError: true, errorMsg: "parse JSON"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dataPath := writeFile(t, tmpDir, "test_data.json", tt.data)

			err := validator.ValidateFile(dataPath, schemaPath)

			if tt.wantError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSchemaValidator_MissingFiles(t *testing.T) {
	validator := NewSchemaValidator()
	tmpDir := t.TempDir()
	schemaPath := writeFile(t, tmpDir, "test.schema.json", `{"type": "object"}`)
	dataPath := writeFile(t, tmpDir, "data.json", `{}`)

	err := validator.ValidateFile(dataPath, "nonexistent.schema.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load schema")

	err = validator.ValidateFile(filepath.Join(tmpDir, "nonexistent.json"), schemaPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read data file")
}

func TestSchemaValidator_RegisteredSchema(t *testing.T) {
	validator := NewSchemaValidator()

	require.NoError(t, validator.RegisterSchema("person.json", []byte(personSchema)))
	// registering twice is a no-op
	require.NoError(t, validator.RegisterSchema("person.json", []byte(personSchema)))

	assert.NoError(t, validator.Validate([]byte(`{"name": "Ann"}`), "person.json"))

	err := validator.Validate([]byte(`{"age": 3}`), "person.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema validation failed")

	err = validator.Validate([]byte(`{}`), "unknown.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not registered")
}

func TestSchemaValidator_InvalidSchema(t *testing.T) {
	validator := NewSchemaValidator()

	err := validator.RegisterSchema("broken.json", []byte(`{"type": 12}`))
	assert.Error(t, err)
}

func TestSchemaValidator_CachesCompiledSchemas(t *testing.T) {
	v := NewSchemaValidator().(*schemaValidator)
	tmpDir := t.TempDir()
	schemaPath := writeFile(t, tmpDir, "test.schema.json", `{"type": "object"}`)

	require.NoError(t, v.ValidateBytes([]byte(`{}`), schemaPath))
	require.NoError(t, os.Remove(schemaPath))

	// Served from cache even though the file is gone
	assert.NoError(t, v.ValidateBytes([]byte(`{}`), schemaPath))
	assert.Len(t, v.schemas, 1)
}
