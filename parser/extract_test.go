package parser

import (
	"encoding/json"
	"reflect"
	"testing"
)

// dump renders a value as indented JSON for readable test failures.
func dump(v any) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

func TestExtractVariables(t *testing.T) {
	tests := []struct {
		name         string
		template     string
		variables    []string
		fields       []string
		conditionals []string
		loops        []string
		helpers      []string
	}{
		{
			name:      "No placeholders",
			template:  "static text",
			variables: nil,
		},
		{
			name:      "Single field",
			template:  "Hello {{name}}",
			variables: []string{"name"},
			fields:    []string{"name"},
		},
		{
			name:      "Duplicate fields deduplicated in variables only",
			template:  "{{name}} and {{name}} again",
			variables: []string{"name"},
			fields:    []string{"name", "name"},
		},
		{
			name:         "Nested blocks flatten across depth",
			template:     "{{#each items}}{{#if items.active}}{{name}}{{/if}}{{/each}}",
			variables:    []string{"items", "items.active", "name"},
			fields:       []string{"name"},
			conditionals: []string{"items.active"},
			loops:        []string{"items"},
		},
		{
			name:         "Unless shares the conditionals bucket",
			template:     "{{#unless archived}}{{title}}{{/unless}}",
			variables:    []string{"archived", "title"},
			fields:       []string{"title"},
			conditionals: []string{"archived"},
		},
		{
			name:      "Helper path collected by helper name",
			template:  `{{formatDate createdAt "YYYY"}}`,
			variables: []string{"formatDate"},
			helpers:   []string{"formatDate"},
		},
		{
			name:         "Else branch fields are not children",
			template:     "{{#if a}}{{x}}{{else}}{{y}}{{/if}}",
			variables:    []string{"a", "x"},
			fields:       []string{"x"},
			conditionals: []string{"a"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractVariables(tt.template)

			if !reflect.DeepEqual(got.Variables, tt.variables) {
				t.Errorf("variables = %v, want %v", got.Variables, tt.variables)
			}
			if !reflect.DeepEqual(got.ByType.Fields, tt.fields) {
				t.Errorf("fields = %v, want %v", got.ByType.Fields, tt.fields)
			}
			if !reflect.DeepEqual(got.ByType.Conditionals, tt.conditionals) {
				t.Errorf("conditionals = %v, want %v", got.ByType.Conditionals, tt.conditionals)
			}
			if !reflect.DeepEqual(got.ByType.Loops, tt.loops) {
				t.Errorf("loops = %v, want %v", got.ByType.Loops, tt.loops)
			}
			if !reflect.DeepEqual(got.ByType.Helpers, tt.helpers) {
				t.Errorf("helpers = %v, want %v", got.ByType.Helpers, tt.helpers)
			}
		})
	}
}

func TestExtractVariablesTreeAttached(t *testing.T) {
	got := ExtractVariables("{{#if a}}{{b}}{{/if}}")
	if len(got.Tree) != 1 || got.Tree[0].Type != TokenConditional {
		t.Fatalf("tree = %s", dump(got.Tree))
	}
}

func TestVariablePaths(t *testing.T) {
	tpl := "{{greeting}}, {{user.name}}! {{#if user.vip}}{{perk}}{{/if}}"
	want := []string{"greeting", "user.name", "user.vip", "perk"}
	if got := VariablePaths(tpl); !reflect.DeepEqual(got, want) {
		t.Errorf("VariablePaths = %v, want %v", got, want)
	}
}
