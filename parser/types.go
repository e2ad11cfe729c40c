package parser

// TokenType classifies a parsed template token.
type TokenType string

const (
	// TokenField is a plain variable reference, e.g. {{user.name}}.
	TokenField TokenType = "field"
	// TokenConditional is an {{#if path}}...{{/if}} block.
	TokenConditional TokenType = "conditional"
	// TokenUnless is an {{#unless path}}...{{/unless}} block.
	TokenUnless TokenType = "unless"
	// TokenLoop is an {{#each path}}...{{/each}} block.
	TokenLoop TokenType = "loop"
	// TokenHelper is a helper invocation, e.g. {{formatDate date "YYYY"}}.
	TokenHelper TokenType = "helper"
)

// IsBlock reports whether the token type is a paired open/close block
// statement (conditional, unless or loop).
func (t TokenType) IsBlock() bool {
	return t == TokenConditional || t == TokenUnless || t == TokenLoop
}

// Token is a single node in the parsed token tree.
type Token struct {
	// Type is the token classification.
	Type TokenType `json:"type"`
	// Raw is the exact tag substring including delimiters. For block tokens
	// this is the opening tag only, e.g. `{{#if user.active}}`.
	Raw string `json:"raw"`
	// Path is the variable or expression reference. For helper tokens it is
	// the helper name.
	Path string `json:"path"`
	// Args holds the remaining whitespace-separated helper arguments as raw,
	// unparsed strings. Empty for non-helper tokens.
	Args []string `json:"args,omitempty"`
	// Start is the byte offset of Raw within the source template.
	Start int `json:"start"`
	// End is the byte offset just past Raw within the source template.
	End int `json:"end"`
	// Content is the raw substring between a block's open tag and its
	// matching close tag, excluding any else branch.
	Content string `json:"content,omitempty"`
	// ElseContent is the raw substring after an {{else}} marker within a
	// block, when one is present at the block's own nesting level.
	ElseContent string `json:"elseContent,omitempty"`
	// HasElse records whether an else branch was found. ElseContent alone
	// cannot carry that distinction when the branch is empty.
	HasElse bool `json:"hasElse,omitempty"`
	// Children is the recursively parsed token list of Content.
	Children []*Token `json:"children,omitempty"`
	// Closed records that a block token's close tag was found. Parse never
	// emits an unclosed block, so this is true on every emitted block token;
	// Validate still checks it defensively.
	Closed bool `json:"-"`
}

// ExtractionResult is a derived view over a parsed token tree: the
// deduplicated set of variable paths the template references, a
// categorization by token type, and the tree itself.
type ExtractionResult struct {
	// Variables lists every distinct non-empty path in pre-order traversal
	// order (parent before children, siblings in source order).
	Variables []string `json:"variables"`
	// ByType buckets paths by their owning token's type. Buckets follow
	// traversal order and are not deduplicated; only Variables is.
	ByType TypeBuckets `json:"byType"`
	// Tree is the top-level token list the result was derived from.
	Tree []*Token `json:"tree"`
}

// TypeBuckets groups extracted variable paths by token type. Unless blocks
// share the Conditionals bucket.
type TypeBuckets struct {
	Fields       []string `json:"fields"`
	Conditionals []string `json:"conditionals"`
	Loops        []string `json:"loops"`
	Helpers      []string `json:"helpers"`
}

// Report is the outcome of Validate: accumulated human-readable problems,
// never a thrown error.
type Report struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// Option configures a single parser call.
type Option func(*options)

type options struct {
	open  string
	close string
}

// DefaultOpenDelim and DefaultCloseDelim are the delimiters used when no
// override is given.
const (
	DefaultOpenDelim  = "{{"
	DefaultCloseDelim = "}}"
)

// WithDelimiters overrides the open/close delimiter pair for one call.
// Empty strings are ignored and fall back to the defaults.
func WithDelimiters(open, close string) Option {
	return func(o *options) {
		if open != "" {
			o.open = open
		}
		if close != "" {
			o.close = close
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{open: DefaultOpenDelim, close: DefaultCloseDelim}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}
