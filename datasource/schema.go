package datasource

import (
	"fmt"
	"sort"
	"strings"
)

// SchemaVersion is stamped on every generated schema.
const SchemaVersion = "1.0"

// VariableMetadata declares one expected variable path within bound data.
type VariableMetadata struct {
	// Path is the dot-notation location of the value.
	Path string `json:"path" yaml:"path"`
	// Type is the expected value category: string, number, boolean, object,
	// array or null.
	Type string `json:"type" yaml:"type"`
	// IsArray marks array-valued paths; it overrides Type during checks.
	IsArray bool `json:"isArray,omitempty" yaml:"isArray,omitempty"`
	// Required upgrades a missing value from warning to error.
	Required bool `json:"required,omitempty" yaml:"required,omitempty"`
	// Children describes the fields of object-typed values.
	Children []VariableMetadata `json:"children,omitempty" yaml:"children,omitempty"`
	// Example is a sample value for documentation and previews.
	Example any `json:"example,omitempty" yaml:"example,omitempty"`
}

// Schema is a declarative description of the data shape a template expects.
type Schema struct {
	Variables   []VariableMetadata `json:"variables" yaml:"variables"`
	Version     string             `json:"version" yaml:"version"`
	Description string             `json:"description,omitempty" yaml:"description,omitempty"`
}

// DataValidation is the outcome of ValidateData. Warnings never affect
// Valid; only Errors do.
type DataValidation struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// ValidateData checks data against a schema and reports every missing or
// mismatched field. Missing required paths are errors, missing optional
// paths are warnings, and a present value whose runtime type differs from
// the declared one is an error. Nothing is ever thrown: callers decide how
// to present the outcome.
func ValidateData(data any, schema Schema) DataValidation {
	res := DataValidation{}
	for _, v := range schema.Variables {
		validateVariable(data, v, v.Path, &res)
	}
	res.Valid = len(res.Errors) == 0
	return res
}

// validateVariable checks one metadata entry against scope. relPath is the
// variable's path relative to scope; messages always report the full path.
func validateVariable(scope any, v VariableMetadata, relPath string, res *DataValidation) {
	val, found := lookupPath(scope, relPath)
	if !found {
		if v.Required {
			res.Errors = append(res.Errors, "Required field missing: "+v.Path)
		} else {
			res.Warnings = append(res.Warnings, "Optional field missing: "+v.Path)
		}
		return
	}

	expected := v.Type
	if v.IsArray {
		expected = "array"
	}
	actual := typeName(val)
	if expected != "" && actual != expected {
		res.Errors = append(res.Errors,
			fmt.Sprintf("Type mismatch for %s: expected %s, got %s", v.Path, expected, actual))
		return
	}

	// Recurse into declared children when the value is a plain object.
	obj, isObj := val.(map[string]any)
	if len(v.Children) == 0 || !isObj {
		return
	}
	for _, child := range v.Children {
		validateVariable(obj, child, childRelPath(v.Path, child.Path), res)
	}
}

// childRelPath strips the parent prefix from a child's full path, so the
// child can be resolved against the parent's value. Children generated by
// GenerateSchema always carry the parent path as a prefix; hand-authored
// schemas may already use relative paths, which pass through unchanged.
func childRelPath(parent, child string) string {
	if rel, ok := strings.CutPrefix(child, parent+"."); ok {
		return rel
	}
	return child
}

// lookupPath walks a dot-separated path through nested objects, reporting
// whether a value exists at the destination. Any missing segment or
// non-object intermediate stops the walk.
func lookupPath(data any, path string) (any, bool) {
	cur := data
	for _, seg := range strings.Split(path, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = obj[seg]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// typeName reports the runtime category of a JSON-shaped value.
func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case string:
		return "string"
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return "number"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	default:
		return "unknown"
	}
}

// GenerateSchema infers a schema from sample data by recursively walking a
// plain object's keys. Array-valued keys take the type of their first
// element; object-valued keys get Children populated recursively. Keys are
// visited in sorted order so repeated generation is deterministic.
func GenerateSchema(data any, description string) Schema {
	schema := Schema{Version: SchemaVersion, Description: description}
	if obj, ok := data.(map[string]any); ok {
		schema.Variables = generateVariables(obj, "")
	}
	return schema
}

func generateVariables(obj map[string]any, prefix string) []VariableMetadata {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	vars := make([]VariableMetadata, 0, len(keys))
	for _, key := range keys {
		val := obj[key]
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}

		meta := VariableMetadata{
			Path:    path,
			Example: val,
		}

		switch t := val.(type) {
		case []any:
			meta.IsArray = true
			meta.Type = "array"
			if len(t) > 0 {
				meta.Type = typeName(t[0])
			}
		case map[string]any:
			meta.Type = "object"
			meta.Children = generateVariables(t, path)
		default:
			meta.Type = typeName(val)
		}

		vars = append(vars, meta)
	}
	return vars
}
