package datasource

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSchema(t *testing.T) {
	data := map[string]any{
		"a": 1,
		"b": map[string]any{"c": "x"},
	}

	schema := GenerateSchema(data, "sample schema")
	assert.Equal(t, "1.0", schema.Version)
	assert.Equal(t, "sample schema", schema.Description)
	require.Len(t, schema.Variables, 2)

	a := schema.Variables[0]
	assert.Equal(t, "a", a.Path)
	assert.Equal(t, "number", a.Type)
	assert.False(t, a.IsArray)
	assert.Equal(t, 1, a.Example)

	b := schema.Variables[1]
	assert.Equal(t, "b", b.Path)
	assert.Equal(t, "object", b.Type)
	require.Len(t, b.Children, 1)
	assert.Equal(t, "b.c", b.Children[0].Path)
	assert.Equal(t, "string", b.Children[0].Type)
}

func TestGenerateSchemaArrays(t *testing.T) {
	data := map[string]any{
		"tags":  []any{"red", "blue"},
		"items": []any{map[string]any{"n": 1}},
		"empty": []any{},
	}

	schema := GenerateSchema(data, "")
	require.Len(t, schema.Variables, 3)

	byPath := map[string]VariableMetadata{}
	for _, v := range schema.Variables {
		byPath[v.Path] = v
	}

	assert.True(t, byPath["tags"].IsArray)
	assert.Equal(t, "string", byPath["tags"].Type, "array type follows the first element")
	assert.Equal(t, "object", byPath["items"].Type)
	assert.Empty(t, byPath["items"].Children, "array values get no children")
	assert.True(t, byPath["empty"].IsArray)
}

func TestGenerateSchemaNonObject(t *testing.T) {
	schema := GenerateSchema("just a string", "")
	assert.Empty(t, schema.Variables)
	assert.Equal(t, "1.0", schema.Version)
}

func TestValidateDataRequiredMissing(t *testing.T) {
	schema := Schema{Variables: []VariableMetadata{
		{Path: "user.name", Type: "string", Required: true},
	}}

	res := ValidateData(map[string]any{}, schema)
	assert.False(t, res.Valid)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "Required field missing: user.name", res.Errors[0])
	assert.Empty(t, res.Warnings)
}

func TestValidateDataOptionalMissing(t *testing.T) {
	schema := Schema{Variables: []VariableMetadata{
		{Path: "user.name", Type: "string"},
	}}

	res := ValidateData(map[string]any{}, schema)
	assert.True(t, res.Valid, "warnings never affect validity")
	assert.Empty(t, res.Errors)
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, "Optional field missing: user.name", res.Warnings[0])
}

func TestValidateDataTypeMismatch(t *testing.T) {
	schema := Schema{Variables: []VariableMetadata{
		{Path: "count", Type: "number", Required: true},
	}}

	res := ValidateData(map[string]any{"count": "ten"}, schema)
	assert.False(t, res.Valid)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "Type mismatch for count: expected number, got string", res.Errors[0])
}

func TestValidateDataArray(t *testing.T) {
	schema := Schema{Variables: []VariableMetadata{
		{Path: "items", Type: "object", IsArray: true, Required: true},
	}}

	res := ValidateData(map[string]any{"items": []any{map[string]any{}}}, schema)
	assert.True(t, res.Valid)

	res = ValidateData(map[string]any{"items": map[string]any{}}, schema)
	assert.False(t, res.Valid)
	assert.Contains(t, res.Errors[0], "expected array, got object")
}

func TestValidateDataChildren(t *testing.T) {
	schema := Schema{Variables: []VariableMetadata{
		{
			Path: "user", Type: "object", Required: true,
			Children: []VariableMetadata{
				{Path: "user.name", Type: "string", Required: true},
				{Path: "user.age", Type: "number"},
			},
		},
	}}

	res := ValidateData(map[string]any{
		"user": map[string]any{"name": "ada"},
	}, schema)
	assert.True(t, res.Valid)
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, "Optional field missing: user.age", res.Warnings[0])

	res = ValidateData(map[string]any{
		"user": map[string]any{"name": 42},
	}, schema)
	assert.False(t, res.Valid)
	assert.Contains(t, res.Errors[0], "Type mismatch for user.name")
}

func TestValidateDataGeneratedRoundTrip(t *testing.T) {
	data := map[string]any{
		"title": "hello",
		"meta":  map[string]any{"views": 10, "draft": false},
	}

	schema := GenerateSchema(data, "")
	res := ValidateData(data, schema)
	assert.True(t, res.Valid, "data must validate against its own schema: %v", res.Errors)
	assert.Empty(t, res.Errors)
	assert.Empty(t, res.Warnings)
}
