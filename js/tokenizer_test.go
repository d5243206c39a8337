package js

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenizeReservedWordsAndPunctuators(t *testing.T) {
	tokens, err := Tokenize("function foo(a, b) { return a; }")
	require.NoError(t, err)

	var kinds []TokenKind
	for _, tok := range tokens {
		kinds = append(kinds, tok.Kind)
	}
	assert.Equal(t, []TokenKind{
		TokenFunction, TokenIdentifier, TokenLParen, TokenIdentifier, TokenComma,
		TokenIdentifier, TokenRParen, TokenLBrace, TokenReturn, TokenIdentifier,
		TokenSemicolon, TokenRBrace, TokenEof,
	}, kinds)
}

func TestTokenizeStringLiteralEscapes(t *testing.T) {
	tokens, err := Tokenize(`"a\nb"`)
	require.NoError(t, err)
	require.Len(t, tokens, 2)
	assert.Equal(t, "a\nb", tokens[0].StringValue)
}

func TestTokenizeUnknownEscapeFails(t *testing.T) {
	_, err := Tokenize(`"a\qb"`)
	assert.ErrorIs(t, err, TokenizeError{Kind: ErrUnknownEscapeSequence})
}

func TestTokenizeUnterminatedStringFails(t *testing.T) {
	_, err := Tokenize(`"abc`)
	assert.ErrorIs(t, err, TokenizeError{Kind: ErrUnterminatedString})
}

func TestTokenizeIntLiteralOverflowFails(t *testing.T) {
	_, err := Tokenize("99999999999")
	assert.ErrorIs(t, err, TokenizeError{Kind: ErrIntLiteralOverflow})
}

func TestTokenizeMultiLineComment(t *testing.T) {
	tokens, err := Tokenize("/* hi */ x")
	require.NoError(t, err)
	require.Len(t, tokens, 3)
	assert.Equal(t, TokenComment, tokens[0].Kind)
	assert.Equal(t, " hi ", tokens[0].StringValue)
	assert.Equal(t, TokenIdentifier, tokens[1].Kind)
}

func TestTokenizeUnrecognizedCharacterFails(t *testing.T) {
	_, err := Tokenize("~")
	assert.ErrorIs(t, err, TokenizeError{Kind: ErrUnrecognizedCharacter})
}
