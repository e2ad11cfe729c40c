package parser

import (
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		template  string
		valid     bool
		errSubstr string
	}{
		{
			name:     "Plain text",
			template: "nothing here",
			valid:    true,
		},
		{
			name:     "Well-formed fields and blocks",
			template: "{{name}} {{#if a}}{{b}}{{else}}{{c}}{{/if}}",
			valid:    true,
		},
		{
			name:      "Unclosed if block",
			template:  "{{#if a}}b",
			valid:     false,
			errSubstr: "Unclosed block statement: {{#if a}}",
		},
		{
			name:      "Unclosed nested block",
			template:  "{{#each items}}{{#if x}}y{{/if}}",
			valid:     false,
			errSubstr: "Unclosed block statement: {{#each items}}",
		},
		{
			name:     "Stray close tag is tolerated",
			template: "{{/if}} {{name}}",
			valid:    true,
		},
		{
			name:     "Unterminated open delimiter is tolerated",
			template: "hello {{name",
			valid:    true,
		},
		{
			name:     "Deeply nested balanced blocks",
			template: "{{#if a}}{{#if b}}{{#if c}}x{{/if}}{{/if}}{{/if}}",
			valid:    true,
		},
		{
			name:      "Outer closed, inner unclosed",
			template:  "{{#each rows}}{{#unless done}}{{/each}}",
			valid:     false,
			errSubstr: "Unclosed block statement: {{#unless done}}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Validate(tt.template)

			if got.Valid != tt.valid {
				t.Errorf("valid = %v, want %v (errors: %v)", got.Valid, tt.valid, got.Errors)
			}
			if tt.valid && len(got.Errors) != 0 {
				t.Errorf("expected no errors, got %v", got.Errors)
			}
			if tt.errSubstr != "" {
				found := false
				for _, e := range got.Errors {
					if strings.Contains(e, tt.errSubstr) {
						found = true
						break
					}
				}
				if !found {
					t.Errorf("errors %v do not mention %q", got.Errors, tt.errSubstr)
				}
			}
		})
	}
}

func TestValidateCustomDelimiters(t *testing.T) {
	got := Validate("<%#if a%>b", WithDelimiters("<%", "%>"))
	if got.Valid {
		t.Fatalf("expected invalid, got %+v", got)
	}
	if len(got.Errors) == 0 || !strings.Contains(got.Errors[0], "<%#if a%>") {
		t.Errorf("errors = %v", got.Errors)
	}
}
