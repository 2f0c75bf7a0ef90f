// Package iregexp compiles RFC 9485 I-Regexp patterns, as used by the
// match() and search() JSONPath functions, into a runnable matcher.
//
// I-Regexp's "." excludes only \n and \r (not the full Unicode line-break
// set RE2's default DOTALL-off mode excludes, and not nothing the way
// RE2's DOTALL-on mode would include everything), so patterns compiled
// with the standard library's RE2 engine have "." rewritten first. Most
// patterns compile that way; a second engine using dlclark/regexp2 — a
// backtracking engine with broader Unicode-property and construct
// support — is tried for patterns RE2's syntax cannot express at all.
// That fallback compiles the pattern unchanged, so there "." matches any
// character except \n (including \r).
package iregexp

import (
	"regexp"
	"regexp/syntax"
	"sync"

	"github.com/dlclark/regexp2"
)

// Matcher runs a compiled I-Regexp pattern against a string.
type Matcher interface {
	MatchString(s string) bool
}

type regexp2Matcher struct{ re *regexp2.Regexp }

func (m regexp2Matcher) MatchString(s string) bool {
	ok, err := m.re.MatchString(s)
	return err == nil && ok
}

var cache sync.Map // pattern string -> Matcher (or cacheMiss sentinel)

type cacheMiss struct{}

// Compile compiles pattern (already anchored by the caller for match(),
// left bare for search()) and returns a Matcher, or nil if the pattern
// is invalid under both engines. Results are cached by pattern text.
func Compile(pattern string) Matcher {
	if v, ok := cache.Load(pattern); ok {
		if _, miss := v.(cacheMiss); miss {
			return nil
		}
		return v.(Matcher)
	}

	m := compileUncached(pattern)
	if m == nil {
		cache.Store(pattern, cacheMiss{})
		return nil
	}
	cache.Store(pattern, m)
	return m
}

// clearCache drops all cached patterns. Only used for testing.
func clearCache() {
	cache.Range(func(key, _ any) bool {
		cache.Delete(key)
		return true
	})
}

func compileUncached(pattern string) Matcher {
	if re, err := compileRE2(pattern); err == nil {
		return re
	}
	if re, err := compileRegexp2(pattern); err == nil {
		return regexp2Matcher{re: re}
	}
	return nil
}

// crlf is the pre-compiled replacement for "." in I-Regexp patterns.
var crlf = mustParseSyntax(`[^\n\r]`, syntax.Perl)

func mustParseSyntax(pattern string, flags syntax.Flags) *syntax.Regexp {
	re, err := syntax.Parse(pattern, flags)
	if err != nil {
		panic("iregexp: bad constant pattern: " + err.Error())
	}
	return re
}

// compileRE2 compiles pattern with the standard library's RE2 engine
// after rewriting "." to exclude \n and \r per RFC 9485 §5.
func compileRE2(pattern string) (*regexp.Regexp, error) {
	parsed, err := syntax.Parse(pattern, syntax.Perl|syntax.DotNL)
	if err != nil {
		return nil, err
	}
	replaceDot(parsed)
	return regexp.Compile(parsed.String())
}

// replaceDot recursively replaces all OpAnyChar nodes with [^\n\r] nodes.
func replaceDot(re *syntax.Regexp) {
	if re.Op == syntax.OpAnyChar {
		*re = *crlf
		return
	}
	for _, sub := range re.Sub {
		replaceDot(sub)
	}
}

// compileRegexp2 compiles pattern with regexp2's backtracking engine, for
// constructs RE2 rejects outright (e.g. certain Unicode property escapes
// or backreferences). regexp2.None keeps "^"/"$" non-multiline. "." is not
// rewritten on this path: it matches any character except \n, so unlike
// the RE2 path it also matches \r.
func compileRegexp2(pattern string) (*regexp2.Regexp, error) {
	re, err := regexp2.Compile(pattern, regexp2.None)
	if err != nil {
		return nil, err
	}
	return re, nil
}
