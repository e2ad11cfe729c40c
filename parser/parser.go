// Package parser scans template strings for Handlebars-like placeholders
// ({{var}}, {{#if}}, {{#each}}, {{#unless}}, {{else}}) and produces a
// structured token tree.
/*
The parser is deliberately forgiving: malformed spans (unmatched delimiters,
empty tags, block statements with no matching close tag) are skipped and the
scan continues, so template authors editing interactively always get a
best-effort extraction instead of a hard failure. Structural problems are
surfaced only through Validate, as accumulated message strings.

The package provides:
  - Token tree parsing with configurable delimiters
  - Variable path extraction across arbitrary nesting
  - Cheap placeholder presence checks
  - Non-throwing structural validation
*/
package parser

import (
	"fmt"
	"strings"
)

// blockTag maps a block token type to its tag name as written in the
// template (#if ... /if, and so on).
var blockTag = map[TokenType]string{
	TokenConditional: "if",
	TokenUnless:      "unless",
	TokenLoop:        "each",
}

// Parse scans template left to right and returns the top-level token list.
//
// Scanning rules:
//   - No open delimiter left: scanning stops, tokens so far are returned.
//   - Open delimiter with no close delimiter after it: the occurrence is
//     skipped (advance past the open delimiter) and produces no token.
//   - Empty tag content after trimming: no token, scan advances past it.
//   - Block statements are matched against their close tag with full
//     nesting support; an unmatched block is discarded entirely and the
//     scan resumes just after its open tag.
//
// Parse never fails on malformed input. It is a pure function over the
// input string and safe for concurrent calls.
func Parse(template string, opts ...Option) []*Token {
	o := buildOptions(opts)
	return parseRegion(template, 0, len(template), o)
}

// parseRegion parses src[lo:hi]. Offsets recorded on tokens are absolute
// within src, so nested children keep the raw-substring round trip:
// src[tok.Start:tok.End] == tok.Raw at every depth.
func parseRegion(src string, lo, hi int, o options) []*Token {
	var tokens []*Token

	cur := lo
	for cur < hi {
		openIdx := indexWithin(src, o.open, cur, hi)
		if openIdx == -1 {
			break
		}

		closeIdx := indexWithin(src, o.close, openIdx+len(o.open), hi)
		if closeIdx == -1 {
			// Unterminated tag: skip the open delimiter and keep scanning.
			cur = openIdx + len(o.open)
			continue
		}

		inner := strings.TrimSpace(src[openIdx+len(o.open) : closeIdx])
		tagEnd := closeIdx + len(o.close)

		if inner == "" {
			cur = tagEnd
			continue
		}

		// Closing markers are consumed structurally by block matching and
		// never emitted standalone. A stray close tag is skipped.
		if strings.HasPrefix(inner, "/") {
			cur = tagEnd
			continue
		}

		if typ, path, ok := classifyBlock(inner); ok {
			tok, resume := parseBlock(src, hi, o, typ, path, openIdx, tagEnd)
			if tok != nil {
				tokens = append(tokens, tok)
			}
			cur = resume
			continue
		}

		tokens = append(tokens, classifyInline(src, inner, openIdx, tagEnd))
		cur = tagEnd
	}

	return tokens
}

// classifyBlock detects block open statements. The tag name must be
// followed by a space: `{{#if}}` without an expression is not a block.
func classifyBlock(inner string) (TokenType, string, bool) {
	for typ, tag := range blockTag {
		prefix := "#" + tag + " "
		if strings.HasPrefix(inner, prefix) {
			return typ, strings.TrimSpace(inner[len(prefix):]), true
		}
	}
	return "", "", false
}

// classifyInline builds a FIELD or HELPER token from non-block tag content.
// Content with a space or an open paren is a helper call: the first
// whitespace-separated segment is the helper name, the rest are raw args.
func classifyInline(src, inner string, start, end int) *Token {
	tok := &Token{
		Raw:   src[start:end],
		Start: start,
		End:   end,
	}

	if strings.ContainsAny(inner, " (") {
		parts := strings.Fields(inner)
		tok.Type = TokenHelper
		tok.Path = parts[0]
		if len(parts) > 1 {
			tok.Args = parts[1:]
		}
		return tok
	}

	tok.Type = TokenField
	tok.Path = inner
	return tok
}

// parseBlock matches a block statement's close tag and builds the block
// token.
//
// Matching walks the tags after the open statement, counting nesting depth
// of identical block-type open/close pairs. An {{else}} is honored only at
// depth 1 relative to this block's own open tag, and only the first one.
//
// Returns the token (nil when no matching close tag exists — the block is
// discarded per the silent-skip policy) and the offset at which the outer
// scan resumes: after the matched close tag, or just after the open tag's
// own span when the block is discarded.
func parseBlock(src string, hi int, o options, typ TokenType, path string, openIdx, tagEnd int) (*Token, int) {
	tag := blockTag[typ]
	openPrefix := "#" + tag + " "
	closeStmt := "/" + tag

	depth := 1
	elseOpen, elseEnd := -1, -1
	closeOpen, closeEnd := -1, -1

	pos := tagEnd
	for pos < hi {
		oIdx := indexWithin(src, o.open, pos, hi)
		if oIdx == -1 {
			break
		}
		cIdx := indexWithin(src, o.close, oIdx+len(o.open), hi)
		if cIdx == -1 {
			break
		}
		inner := strings.TrimSpace(src[oIdx+len(o.open) : cIdx])
		end := cIdx + len(o.close)

		switch {
		case strings.HasPrefix(inner, openPrefix):
			depth++
		case inner == closeStmt:
			depth--
			if depth == 0 {
				closeOpen, closeEnd = oIdx, end
			}
		case inner == "else" && depth == 1 && elseOpen == -1:
			elseOpen, elseEnd = oIdx, end
		}

		if closeOpen != -1 {
			break
		}
		pos = end
	}

	if closeOpen == -1 {
		return nil, tagEnd
	}

	tok := &Token{
		Type:   typ,
		Raw:    src[openIdx:tagEnd],
		Path:   path,
		Start:  openIdx,
		End:    tagEnd,
		Closed: true,
	}

	contentEnd := closeOpen
	if elseOpen != -1 {
		contentEnd = elseOpen
		tok.HasElse = true
		tok.ElseContent = src[elseEnd:closeOpen]
	}
	tok.Content = src[tagEnd:contentEnd]
	tok.Children = parseRegion(src, tagEnd, contentEnd, o)

	return tok, closeEnd
}

// indexWithin finds needle in src[from:hi] and returns its absolute index,
// or -1. The needle must end within the bound.
func indexWithin(src, needle string, from, hi int) int {
	if from >= hi {
		return -1
	}
	rel := strings.Index(src[from:hi], needle)
	if rel == -1 {
		return -1
	}
	return from + rel
}

// HasVariables reports whether both delimiters occur anywhere in template.
// It is a cheap presence check and does not imply Parse would produce a
// token (e.g. "{{}}" passes but yields none).
func HasVariables(template string, opts ...Option) bool {
	o := buildOptions(opts)
	return strings.Contains(template, o.open) && strings.Contains(template, o.close)
}

// Validate re-parses template and reports structural problems as
// accumulated message strings. It never panics: internal panics during the
// walk are captured as "Parse error: ..." entries.
//
// Unclosed block statements (an open tag with no matching close) are
// reported as "Unclosed block statement: <raw open tag>". Parse itself
// discards such blocks, so detection runs on a flat tag scan with an
// open-block stack; the per-token Closed check is kept as a defensive net
// should a partially populated token ever reach the tree.
func Validate(template string, opts ...Option) Report {
	o := buildOptions(opts)
	var errs []string

	func() {
		defer func() {
			if r := recover(); r != nil {
				errs = append(errs, fmt.Sprintf("Parse error: %v", r))
			}
		}()

		var walk func([]*Token)
		walk = func(ts []*Token) {
			for _, t := range ts {
				if t.Type.IsBlock() {
					if !t.Closed {
						errs = append(errs, "Unclosed block statement: "+t.Raw)
					}
					walk(t.Children)
				}
			}
		}
		walk(Parse(template, opts...))

		errs = append(errs, scanUnclosed(template, o)...)
	}()

	return Report{Valid: len(errs) == 0, Errors: errs}
}

// openFrame records an open block tag during the flat validation scan.
type openFrame struct {
	tag string // block tag name: if, unless, each
	raw string // full open tag text including delimiters
}

// scanUnclosed walks every tag in template once, pushing block opens and
// popping them on their matching close. Whatever remains on the stack at
// the end is an unclosed block. Stray close tags with no matching open are
// ignored, mirroring Parse's skip behavior.
func scanUnclosed(template string, o options) []string {
	var stack []openFrame

	cur := 0
	for cur < len(template) {
		openIdx := indexWithin(template, o.open, cur, len(template))
		if openIdx == -1 {
			break
		}
		closeIdx := indexWithin(template, o.close, openIdx+len(o.open), len(template))
		if closeIdx == -1 {
			break
		}
		inner := strings.TrimSpace(template[openIdx+len(o.open) : closeIdx])
		end := closeIdx + len(o.close)

		if typ, _, ok := classifyBlock(inner); ok {
			stack = append(stack, openFrame{tag: blockTag[typ], raw: template[openIdx:end]})
		} else if tag, ok := strings.CutPrefix(inner, "/"); ok {
			for i := len(stack) - 1; i >= 0; i-- {
				if stack[i].tag == tag {
					stack = append(stack[:i], stack[i+1:]...)
					break
				}
			}
		}

		cur = end
	}

	var errs []string
	for _, f := range stack {
		errs = append(errs, "Unclosed block statement: "+f.raw)
	}
	return errs
}
