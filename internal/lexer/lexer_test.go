package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scanAll drains l until EOF (inclusive) and returns every token produced,
// including the final EOF token.
func scanAll(l *Lexer) []Token {
	var toks []Token
	for {
		tok := l.Scan()
		toks = append(toks, tok)
		if tok.Kind == EOF || tok.Kind == Invalid {
			return toks
		}
	}
}

func kinds(toks []Token) []Kind {
	out := make([]Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func TestKind_String(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "$", Dollar.String())
	assert.Equal(t, "identifier", Ident.String())
	assert.Contains(t, Kind(999).String(), "Kind(999)")
}

func TestScan_SingleCharTokens(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		src  string
		want Kind
	}{
		{"$", Dollar},
		{"@", At},
		{"[", LeftBracket},
		{"]", RightBracket},
		{"(", LeftParen},
		{")", RightParen},
		{"*", Star},
		{"?", Question},
		{",", Comma},
		{":", Colon},
		{".", Dot},
		{"..", DotDot},
	} {
		t.Run(tc.src, func(t *testing.T) {
			t.Parallel()
			l := New(tc.src)
			tok := l.Scan()
			assert.Equal(t, tc.want, tok.Kind)
			assert.Equal(t, tc.src, tok.Val(tc.src))
		})
	}
}

func TestScan_Operators(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		src  string
		want Kind
	}{
		{"==", Equal},
		{"!=", NotEqual},
		{"<", Less},
		{"<=", LessEqual},
		{">", Greater},
		{">=", GreaterEqual},
		{"&&", And},
		{"||", Or},
		{"!", Not},
	} {
		t.Run(tc.src, func(t *testing.T) {
			t.Parallel()
			l := New(tc.src)
			tok := l.Scan()
			require.Equal(t, tc.want, tok.Kind)
			assert.Equal(t, EOF, l.Scan().Kind)
		})
	}
}

func TestScan_InvalidSingleAmpersandOrPipe(t *testing.T) {
	t.Parallel()

	for _, src := range []string{"&", "|", "="} {
		l := New(src)
		tok := l.Scan()
		assert.Equal(t, Invalid, tok.Kind)
		assert.Error(t, tok.Err(src))
	}
}

func TestScan_Keywords(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		src  string
		want Kind
	}{
		{"true", True},
		{"false", False},
		{"null", Null},
		{"length", Ident},
		{"_foo", Ident},
	} {
		l := New(tc.src)
		tok := l.Scan()
		assert.Equal(t, tc.want, tok.Kind, tc.src)
	}
}

func TestScan_Integers(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		src  string
		kind Kind
	}{
		{"0", Int},
		{"42", Int},
		{"-1", Int},
		{"-42", Int},
		{"-0", Number}, // negative zero has no int64 representation
	} {
		l := New(tc.src)
		tok := l.Scan()
		assert.Equal(t, tc.kind, tok.Kind, tc.src)
		assert.Equal(t, tc.src, tok.Val(tc.src))
	}
}

func TestScan_Numbers(t *testing.T) {
	t.Parallel()

	for _, src := range []string{"1.5", "1.5e10", "1e10", "1E10", "1e+10", "1e-10", "0.1", "-1.5"} {
		l := New(src)
		tok := l.Scan()
		assert.Equal(t, Number, tok.Kind, src)
	}
}

func TestScan_NumberErrors(t *testing.T) {
	t.Parallel()

	for _, src := range []string{"01", "-", "-a", "1.", "1.a", "1e", "1e+", "1e+a"} {
		l := New(src)
		tok := l.Scan()
		assert.Equal(t, Invalid, tok.Kind, src)
		assert.Error(t, tok.Err(src))
	}
}

func TestScan_Strings(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		src  string
		want string
	}{
		{`"hello"`, "hello"},
		{`'hello'`, "hello"},
		{`"it's"`, "it's"},
		{`'say "hi"'`, `say "hi"`},
		{`"\n\t\r\b\f"`, "\n\t\r\b\f"},
		{`"\\"`, `\`},
		{`"\/"`, "/"},
		{`"A"`, "A"},
		{`"😀"`, "😀"},
	} {
		t.Run(tc.src, func(t *testing.T) {
			t.Parallel()
			l := New(tc.src)
			tok := l.Scan()
			require.Equal(t, String, tok.Kind)
			assert.Equal(t, tc.want, tok.Value)
		})
	}
}

func TestScan_StringErrors(t *testing.T) {
	t.Parallel()

	for _, src := range []string{
		`"unterminated`,
		`"bad\escape"`,
		`"\u12"`,
		`"\ud83d"`,        // unpaired high surrogate
		`"\ud83dXXXXXX"`,  // high surrogate not followed by \u
		"\"\x01\"",        // raw control char inside string
	} {
		l := New(src)
		tok := l.Scan()
		assert.Equal(t, Invalid, tok.Kind, src)
		assert.Error(t, tok.Err(src))
	}
}

func TestScan_BlankSpaceSkipped(t *testing.T) {
	t.Parallel()

	src := "  \t\n\r $ "
	l := New(src)
	tok := l.Scan()
	assert.Equal(t, Dollar, tok.Kind)
}

func TestScan_EOFIsSticky(t *testing.T) {
	t.Parallel()

	l := New("")
	assert.Equal(t, EOF, l.Scan().Kind)
	assert.Equal(t, EOF, l.Scan().Kind)
}

func TestScan_UnexpectedCharacter(t *testing.T) {
	t.Parallel()

	l := New("#")
	tok := l.Scan()
	assert.Equal(t, Invalid, tok.Kind)
	assert.Contains(t, tok.Value, "unexpected character")
}

func TestScan_FullExpression(t *testing.T) {
	t.Parallel()

	src := `$.store.book[?(@.price < 10)].title`
	l := New(src)
	toks := scanAll(l)

	want := []Kind{
		Dollar, Dot, Ident, Dot, Ident, LeftBracket, Question, LeftParen,
		At, Dot, Ident, Less, Int, RightParen, RightBracket, Dot, Ident, EOF,
	}
	assert.Equal(t, want, kinds(toks))
}

func TestToken_Val_ZeroCopy(t *testing.T) {
	t.Parallel()

	src := "$.store"
	l := New(src)
	_ = l.Scan() // $
	tok := l.Scan()
	assert.Equal(t, Dot, tok.Kind)
	assert.Equal(t, ".", tok.Val(src))
}

func TestToken_Err_NonInvalid(t *testing.T) {
	t.Parallel()

	tok := Token{Kind: Dollar}
	assert.NoError(t, tok.Err("$"))
}

func TestLexer_Source(t *testing.T) {
	t.Parallel()

	l := New("$.a")
	assert.Equal(t, "$.a", l.Source())
}

func TestScan_NameFirstUnicode(t *testing.T) {
	t.Parallel()

	// A non-ASCII codepoint in the name-first range is a valid identifier
	// start per RFC 9535 §2.5.1.1.
	l := New("café")
	tok := l.Scan()
	assert.Equal(t, Ident, tok.Kind)
}
