// Package js implements a miniature JavaScript tokenizer, recursive
// descent parser, and tree-walking interpreter over a small grammar
// subset: function declarations, return, member and call expressions,
// assignment, and numeric/string literals. The interpreter also
// executes if and while statements built directly as AST nodes; the
// parser does not produce them.
package js

// TokenKind enumerates the ~55 token kinds the tokenizer produces:
// literals, punctuators, the ECMAScript reserved words, and Eof.
type TokenKind int

const (
	TokenIntLiteral TokenKind = iota
	TokenStringLiteral
	TokenIdentifier
	TokenComment
	TokenLParen
	TokenRParen
	TokenLBrace
	TokenRBrace
	TokenLBracket
	TokenRBracket
	TokenSemicolon
	TokenComma
	TokenPeriod
	TokenEquals
	TokenPlus
	TokenAsterisk
	TokenEof

	// Reserved words, https://tc39.es/ecma262/#prod-ReservedWord
	TokenAwait
	TokenBreak
	TokenCase
	TokenCatch
	TokenClass
	TokenConst
	TokenContinue
	TokenDebugger
	TokenDefault
	TokenDelete
	TokenDo
	TokenElse
	TokenEnum
	TokenExport
	TokenExtends
	TokenFalse
	TokenFinally
	TokenFor
	TokenFunction
	TokenIf
	TokenImport
	TokenIn
	TokenInstanceOf
	TokenNew
	TokenNull
	TokenReturn
	TokenSuper
	TokenSwitch
	TokenThis
	TokenThrow
	TokenTrue
	TokenTry
	TokenTypeOf
	TokenVar
	TokenVoid
	TokenWhile
	TokenWith
	TokenYield
)

// reservedWords maps the ECMAScript reserved word spelling to its
// token kind; the tokenizer looks each identifier up here.
var reservedWords = map[string]TokenKind{
	"await":      TokenAwait,
	"break":      TokenBreak,
	"case":       TokenCase,
	"catch":      TokenCatch,
	"class":      TokenClass,
	"const":      TokenConst,
	"continue":   TokenContinue,
	"debugger":   TokenDebugger,
	"default":    TokenDefault,
	"delete":     TokenDelete,
	"do":         TokenDo,
	"else":       TokenElse,
	"enum":       TokenEnum,
	"export":     TokenExport,
	"extends":    TokenExtends,
	"false":      TokenFalse,
	"finally":    TokenFinally,
	"for":        TokenFor,
	"function":   TokenFunction,
	"if":         TokenIf,
	"import":     TokenImport,
	"in":         TokenIn,
	"instanceof": TokenInstanceOf,
	"new":        TokenNew,
	"null":       TokenNull,
	"return":     TokenReturn,
	"super":      TokenSuper,
	"switch":     TokenSwitch,
	"this":       TokenThis,
	"throw":      TokenThrow,
	"true":       TokenTrue,
	"try":        TokenTry,
	"typeof":     TokenTypeOf,
	"var":        TokenVar,
	"void":       TokenVoid,
	"while":      TokenWhile,
	"with":       TokenWith,
	"yield":      TokenYield,
}

// Token is a flat tagged union: only the fields relevant to Kind are
// populated. IntValue backs TokenIntLiteral, StringValue backs both
// TokenStringLiteral and TokenIdentifier (the literal's text and the
// identifier's name, respectively) and TokenComment.
type Token struct {
	Kind        TokenKind
	IntValue    int32
	StringValue string
}
