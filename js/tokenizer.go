package js

import "math"

// Tokenizer is a single-pass reader over a source string, producing
// one Token per call to next.
type Tokenizer struct {
	input string
	pos   int
}

// NewTokenizer returns a tokenizer positioned at the start of input.
func NewTokenizer(input string) *Tokenizer {
	return &Tokenizer{input: input}
}

func (t *Tokenizer) peek() (byte, bool) {
	if t.pos < len(t.input) {
		return t.input[t.pos], true
	}
	return 0, false
}

func (t *Tokenizer) consume() (byte, bool) {
	if t.pos < len(t.input) {
		c := t.input[t.pos]
		t.pos++
		return c, true
	}
	return 0, false
}

// next produces the next token, or a TokenizeError describing why
// none could be produced.
func (t *Tokenizer) next() (Token, error) {
	c, ok := t.consume()

	for ok && isWhitespace(c) {
		c, ok = t.consume()
	}

	if ok && c == '/' {
		if p, hasNext := t.peek(); hasNext && p == '*' {
			t.pos++
			return t.tokenizeComment()
		}
	}

	if !ok {
		return Token{Kind: TokenEof}, nil
	}

	switch c {
	case '(':
		return Token{Kind: TokenLParen}, nil
	case ')':
		return Token{Kind: TokenRParen}, nil
	case '{':
		return Token{Kind: TokenLBrace}, nil
	case '}':
		return Token{Kind: TokenRBrace}, nil
	case '[':
		return Token{Kind: TokenLBracket}, nil
	case ']':
		return Token{Kind: TokenRBracket}, nil
	case ';':
		return Token{Kind: TokenSemicolon}, nil
	case ',':
		return Token{Kind: TokenComma}, nil
	case '.':
		return Token{Kind: TokenPeriod}, nil
	case '=':
		return Token{Kind: TokenEquals}, nil
	case '+':
		return Token{Kind: TokenPlus}, nil
	case '*':
		return Token{Kind: TokenAsterisk}, nil
	case '\'', '"':
		return t.tokenizeStringLiteral(c)
	}

	if isNumeric(c) {
		return t.tokenizeIntLiteral(c)
	}

	if !isIdentStart(c) {
		return Token{}, TokenizeError{Kind: ErrUnrecognizedCharacter}
	}

	word := t.consumeWord(c)
	if kind, ok := reservedWords[word]; ok {
		return Token{Kind: kind}, nil
	}
	return Token{Kind: TokenIdentifier, StringValue: word}, nil
}

func (t *Tokenizer) tokenizeComment() (Token, error) {
	var comment []byte
	for {
		c, ok := t.consume()
		if !ok {
			return Token{Kind: TokenComment, StringValue: string(comment)}, nil
		}
		if c == '*' {
			if p, hasNext := t.peek(); hasNext && p == '/' {
				t.pos++
				return Token{Kind: TokenComment, StringValue: string(comment)}, nil
			}
		}
		comment = append(comment, c)
	}
}

// kInt32Max mirrors the tokenizer's overflow bound: values above this
// cannot round-trip through the int32-backed IntLiteral.
const kInt32Max = math.MaxInt32

func (t *Tokenizer) tokenizeIntLiteral(first byte) (Token, error) {
	var value uint64
	c := first
	for {
		value += uint64(c - '0')
		if value > kInt32Max {
			return Token{}, TokenizeError{Kind: ErrIntLiteralOverflow}
		}

		next, ok := t.peek()
		if !ok || !isNumeric(next) {
			break
		}
		value *= 10
		c = next
		t.pos++
	}
	return Token{Kind: TokenIntLiteral, IntValue: int32(value)}, nil
}

// https://tc39.es/ecma262/#prod-StringLiteral
func (t *Tokenizer) tokenizeStringLiteral(quote byte) (Token, error) {
	var str []byte
	for {
		c, ok := t.consume()
		if !ok {
			return Token{}, TokenizeError{Kind: ErrUnterminatedString}
		}
		if c == quote {
			return Token{Kind: TokenStringLiteral, StringValue: string(str)}, nil
		}
		if c == '\\' {
			escaped, err := t.consumeEscapeSequence()
			if err != nil {
				return Token{}, err
			}
			str = append(str, escaped)
			continue
		}
		str = append(str, c)
	}
}

// https://tc39.es/ecma262/#prod-SingleEscapeCharacter
func (t *Tokenizer) consumeEscapeSequence() (byte, error) {
	c, ok := t.consume()
	if !ok {
		return 0, TokenizeError{Kind: ErrUnterminatedEscapeSequence}
	}
	switch c {
	case '\'':
		return '\'', nil
	case '"':
		return '"', nil
	case '\\':
		return '\\', nil
	case 'b':
		return '\b', nil
	case 'f':
		return '\f', nil
	case 'n':
		return '\n', nil
	case 'r':
		return '\r', nil
	case 't':
		return '\t', nil
	case 'v':
		return '\v', nil
	default:
		return 0, TokenizeError{Kind: ErrUnknownEscapeSequence}
	}
}

func (t *Tokenizer) consumeWord(first byte) string {
	word := []byte{first}
	for {
		next, ok := t.peek()
		if !ok || !isIdentContinuation(next) {
			break
		}
		word = append(word, next)
		t.pos++
	}
	return string(word)
}

func isAlpha(c byte) bool { return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') }
func isNumeric(c byte) bool {
	return c >= '0' && c <= '9'
}
func isIdentStart(c byte) bool        { return isAlpha(c) || c == '_' }
func isIdentContinuation(c byte) bool { return isAlpha(c) || isNumeric(c) || c == '_' }

func isWhitespace(c byte) bool {
	switch c {
	case ' ', '\n', '\r', '\f', '\v', '\t':
		return true
	default:
		return false
	}
}

// Tokenize runs the tokenizer to completion, returning every token up
// to and including a trailing Eof.
func Tokenize(input string) ([]Token, error) {
	t := NewTokenizer(input)
	var tokens []Token
	for {
		tok, err := t.next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Kind == TokenEof {
			return tokens, nil
		}
	}
}
