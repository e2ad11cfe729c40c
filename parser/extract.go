package parser

// ExtractVariables parses template and flattens the resulting tree into a
// deduplicated set of variable paths plus a per-type categorization.
//
// Traversal is pre-order: a token's own path is collected before its
// children, siblings in source order. The ByType buckets keep traversal
// order and may repeat a path; only Variables is deduplicated.
func ExtractVariables(template string, opts ...Option) ExtractionResult {
	tree := Parse(template, opts...)

	result := ExtractionResult{Tree: tree}
	seen := make(map[string]bool)

	var walk func([]*Token)
	walk = func(ts []*Token) {
		for _, t := range ts {
			if t.Path != "" {
				if !seen[t.Path] {
					seen[t.Path] = true
					result.Variables = append(result.Variables, t.Path)
				}
				switch t.Type {
				case TokenField:
					result.ByType.Fields = append(result.ByType.Fields, t.Path)
				case TokenConditional, TokenUnless:
					result.ByType.Conditionals = append(result.ByType.Conditionals, t.Path)
				case TokenLoop:
					result.ByType.Loops = append(result.ByType.Loops, t.Path)
				case TokenHelper:
					result.ByType.Helpers = append(result.ByType.Helpers, t.Path)
				}
			}
			walk(t.Children)
		}
	}
	walk(tree)

	return result
}

// VariablePaths returns just the deduplicated variable path set of
// template, equivalent to ExtractVariables(template).Variables.
func VariablePaths(template string, opts ...Option) []string {
	return ExtractVariables(template, opts...).Variables
}
