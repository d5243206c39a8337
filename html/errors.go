package html

import "fmt"

// ErrorKind enumerates the tokenizer's parse-error taxonomy. Names
// follow the WHATWG tokenization spec's error names.
type ErrorKind int

const (
	UnexpectedNullCharacter ErrorKind = iota
	UnexpectedQuestionMarkInsteadOfTagName
	EOFBeforeTagName
	InvalidFirstCharacterOfTagName
	MissingEndTagName
	EOFInTag
	EOFInScriptHTMLCommentLikeText
	UnexpectedEqualsSignBeforeAttributeName
	UnexpectedCharacterInAttributeName
	MissingAttributeValue
	UnexpectedCharacterInUnquotedAttributeValue
	MissingWhitespaceBetweenAttributes
	UnexpectedSolidusInTag
	CDATAInHTMLContent
	IncorrectlyOpenedComment
	EOFInComment
	NestedComment
	IncorrectlyClosedComment
	EOFInDOCTYPE
	MissingWhitespaceBeforeDOCTYPEName
	MissingDOCTYPEName
	MissingWhitespaceAfterDOCTYPEPublicKeyword
	MissingWhitespaceAfterDOCTYPESystemKeyword
	MissingQuoteBeforeDOCTYPEPublicIdentifier
	MissingQuoteBeforeDOCTYPESystemIdentifier
	MissingDOCTYPEPublicIdentifier
	MissingDOCTYPESystemIdentifier
	AbruptDOCTYPEPublicIdentifier
	AbruptDOCTYPESystemIdentifier
	UnexpectedCharacterAfterDOCTYPESystemIdentifier
	MissingWhitespaceBetweenDOCTYPEPublicAndSystemIdentifiers
	EOFInCDATA
	AbsenceOfDigitsInNumericCharacterReference
	OutsideUnicodeRangeNumericCharacterReference
	SurrogateCharacterReference
	NoncharacterCharacterReference
	ControlCharacterReference
	NullCharacterReference
	MissingSemicolonAfterCharacterReference
	UnknownNamedCharacterReference
	EndTagWithAttributes
	EndTagWithTrailingSolidus
	DuplicateAttribute
	NonVoidHTMLElementStartTagWithTrailingSolidus
	ControlCharacterInInputStream
	NoncharacterInInputStream
)

var errorKindNames = [...]string{
	"unexpected-null-character",
	"unexpected-question-mark-instead-of-tag-name",
	"eof-before-tag-name",
	"invalid-first-character-of-tag-name",
	"missing-end-tag-name",
	"eof-in-tag",
	"eof-in-script-html-comment-like-text",
	"unexpected-equals-sign-before-attribute-name",
	"unexpected-character-in-attribute-name",
	"missing-attribute-value",
	"unexpected-character-in-unquoted-attribute-value",
	"missing-whitespace-between-attributes",
	"unexpected-solidus-in-tag",
	"cdata-in-html-content",
	"incorrectly-opened-comment",
	"eof-in-comment",
	"nested-comment",
	"incorrectly-closed-comment",
	"eof-in-doctype",
	"missing-whitespace-before-doctype-name",
	"missing-doctype-name",
	"missing-whitespace-after-doctype-public-keyword",
	"missing-whitespace-after-doctype-system-keyword",
	"missing-quote-before-doctype-public-identifier",
	"missing-quote-before-doctype-system-identifier",
	"missing-doctype-public-identifier",
	"missing-doctype-system-identifier",
	"abrupt-doctype-public-identifier",
	"abrupt-doctype-system-identifier",
	"unexpected-character-after-doctype-system-identifier",
	"missing-whitespace-between-doctype-public-and-system-identifiers",
	"eof-in-cdata",
	"absence-of-digits-in-numeric-character-reference",
	"outside-unicode-range-numeric-character-reference",
	"surrogate-character-reference",
	"noncharacter-character-reference",
	"control-character-reference",
	"null-character-reference",
	"missing-semicolon-after-character-reference",
	"unknown-named-character-reference",
	"end-tag-with-attributes",
	"end-tag-with-trailing-solidus",
	"duplicate-attribute",
	"non-void-html-element-start-tag-with-trailing-solidus",
	"control-character-in-input-stream",
	"noncharacter-in-input-stream",
}

func (k ErrorKind) String() string {
	if int(k) < 0 || int(k) >= len(errorKindNames) {
		return "unknown-parse-error"
	}
	return errorKindNames[k]
}

// SourceLocation is a 1-based line/column position in the input stream.
type SourceLocation struct {
	Line   int
	Column int
}

// ParseError is emitted by the tokenizer; it never aborts tokenization.
type ParseError struct {
	Kind     ErrorKind
	Location SourceLocation
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s at %d:%d", e.Kind, e.Location.Line, e.Location.Column)
}
