package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allTokens(t *testing.T, src string, cfg Config) ([]Token, []*Error) {
	t.Helper()
	l := New(src, cfg)
	var toks []Token
	var errs []*Error
	for {
		tok, err, ok := l.Next()
		if !ok {
			break
		}
		if err != nil {
			errs = append(errs, err)
			continue
		}
		toks = append(toks, tok)
	}
	return toks, errs
}

func TestLexer_Punctuators(t *testing.T) {
	toks, errs := allTokens(t, `! $ & ( ) ... : = @ [ ] { | }`, Config{})
	require.Empty(t, errs)
	require.Len(t, toks, 14)
	for _, tok := range toks {
		assert.Equal(t, TokenKindPunctuator, tok.Kind)
	}
}

func TestLexer_NameAndNumbers(t *testing.T) {
	toks, errs := allTokens(t, `foo 123 -45 3.14 1.5e10`, Config{})
	require.Empty(t, errs)
	require.Len(t, toks, 5)
	assert.Equal(t, TokenKindName, toks[0].Kind)
	assert.Equal(t, "foo", toks[0].StringSlice)
	assert.Equal(t, TokenKindIntValue, toks[1].Kind)
	assert.EqualValues(t, 123, toks[1].IntPayload)
	assert.Equal(t, TokenKindIntValue, toks[2].Kind)
	assert.EqualValues(t, -45, toks[2].IntPayload)
	assert.Equal(t, TokenKindFloatValue, toks[3].Kind)
	assert.InDelta(t, 3.14, toks[3].FloatPayload, 1e-9)
	assert.Equal(t, TokenKindFloatValue, toks[4].Kind)
}

func TestLexer_IntegerValueTooLarge(t *testing.T) {
	toks, errs := allTokens(t, `99999999999999999999999999`, Config{})
	assert.Empty(t, toks)
	require.Len(t, errs, 1)
	assert.Equal(t, ErrorKindIntegerValueTooLarge, errs[0].Kind)
}

func TestLexer_StringEscapes(t *testing.T) {
	toks, errs := allTokens(t, `"hello\nworld"`, Config{})
	require.Empty(t, errs)
	require.Len(t, toks, 1)
	assert.Equal(t, "hello\nworld", toks[0].StringSlice)
}

func TestLexer_InvalidEscapedUnicode(t *testing.T) {
	_, errs := allTokens(t, `"\uZZZZ"`, Config{})
	require.Len(t, errs, 1)
	assert.Equal(t, ErrorKindStringWithInvalidEscapedUnicode, errs[0].Kind)
}

func TestLexer_BlockStringCommonIndentStripping(t *testing.T) {
	src := "\"\"\"\n    Hello,\n      World!\n\n    Yours,\n      GraphQL.\n  \"\"\""
	toks, errs := allTokens(t, src, Config{})
	require.Empty(t, errs)
	require.Len(t, toks, 1)
	assert.Equal(t, "Hello,\n  World!\n\nYours,\n  GraphQL.", toks[0].StringSlice)
}

func TestLexer_UnrecognizedToken(t *testing.T) {
	_, errs := allTokens(t, "`", Config{})
	require.Len(t, errs, 1)
	assert.Equal(t, ErrorKindUnrecognizedToken, errs[0].Kind)
}

func TestLexer_CommentsAndCommasSkipped(t *testing.T) {
	toks, errs := allTokens(t, "foo, # a comment\nbar", Config{})
	require.Empty(t, errs)
	require.Len(t, toks, 2)
	assert.Equal(t, "foo", toks[0].StringSlice)
	assert.Equal(t, "bar", toks[1].StringSlice)
}

// TestLexer_RubyCompatibilityFixture is the dedicated fixture spec.md §6
// requires: it enumerates exactly what ruby_compatibility changes. Any
// lexing difference between the two modes not covered here is, per
// spec.md's own instruction, a defect.
func TestLexer_RubyCompatibilityFixture(t *testing.T) {
	t.Run("split surrogate pair accepted only in ruby_compatibility", func(t *testing.T) {
		src := "\"\\uD83D\\uDE00\"" // 😀 (U+1F600), spread across two \u escapes

		_, baselineErrs := allTokens(t, src, Config{RubyCompatibility: false})
		require.Len(t, baselineErrs, 1, "baseline mode must reject a split surrogate pair")
		assert.Equal(t, ErrorKindStringWithInvalidEscapedUnicode, baselineErrs[0].Kind)

		rubyToks, rubyErrs := allTokens(t, src, Config{RubyCompatibility: true})
		require.Empty(t, rubyErrs, "ruby_compatibility mode must accept a split surrogate pair")
		require.Len(t, rubyToks, 1)
		assert.Equal(t, "😀", rubyToks[0].StringSlice)
	})

	t.Run("identifier grammar is unchanged by ruby_compatibility", func(t *testing.T) {
		_, baselineErrs := allTokens(t, "1abc", Config{RubyCompatibility: false})
		_, rubyErrs := allTokens(t, "1abc", Config{RubyCompatibility: true})
		assert.Empty(t, baselineErrs)
		assert.Empty(t, rubyErrs)
		// "1abc" lexes as IntValue(1) followed by Name(abc) in both modes;
		// ruby_compatibility does not loosen the Name grammar to permit a
		// leading digit.
	})
}

func TestLexer_EmptySpanAtEOF(t *testing.T) {
	l := New("foo", Config{})
	_, _, _ = l.Next()
	span := l.EmptySpan()
	assert.Equal(t, 3, span.Start)
	assert.Equal(t, 3, span.End)
}
