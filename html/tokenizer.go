package html

import (
	"strings"
	"unicode/utf8"
)

// State names the tokenizer's lexing mode. The full WHATWG tokenizer
// defines on the order of 96 states; this implementation covers the
// states needed to drive every implemented insertion mode faithfully
// (data/RCDATA/RAWTEXT/script-data switching, tags, attributes,
// comments, doctype, character references, CDATA) and collapses the
// script-data "escaped"/"double-escaped" sub-states into RAWTEXT-style
// handling, since no insertion mode implemented here inspects them
// separately.
type State int

const (
	DataState State = iota
	RCDATAState
	RAWTEXTState
	ScriptDataState
	PLAINTEXTState
	TagOpenState
	EndTagOpenState
	TagNameState
	RCDATALessThanSignState
	RCDATAEndTagOpenState
	RCDATAEndTagNameState
	RAWTEXTLessThanSignState
	RAWTEXTEndTagOpenState
	RAWTEXTEndTagNameState
	ScriptDataLessThanSignState
	ScriptDataEndTagOpenState
	ScriptDataEndTagNameState
	BeforeAttributeNameState
	AttributeNameState
	AfterAttributeNameState
	BeforeAttributeValueState
	AttributeValueDoubleQuotedState
	AttributeValueSingleQuotedState
	AttributeValueUnquotedState
	AfterAttributeValueQuotedState
	SelfClosingStartTagState
	BogusCommentState
	MarkupDeclarationOpenState
	CommentStartState
	CommentStartDashState
	CommentState
	CommentEndDashState
	CommentEndState
	CommentEndBangState
	DOCTYPEState
	BeforeDOCTYPENameState
	DOCTYPENameState
	AfterDOCTYPENameState
	AfterDOCTYPEPublicKeywordState
	BeforeDOCTYPEPublicIdentifierState
	DOCTYPEPublicIdentifierDoubleQuotedState
	DOCTYPEPublicIdentifierSingleQuotedState
	AfterDOCTYPEPublicIdentifierState
	BetweenDOCTYPEPublicAndSystemIdentifiersState
	AfterDOCTYPESystemKeywordState
	BeforeDOCTYPESystemIdentifierState
	DOCTYPESystemIdentifierDoubleQuotedState
	DOCTYPESystemIdentifierSingleQuotedState
	AfterDOCTYPESystemIdentifierState
	BogusDOCTYPEState
	CDATASectionState
	CharacterReferenceState
	NamedCharacterReferenceState
	AmbiguousAmpersandState
	NumericCharacterReferenceState
	HexadecimalCharacterReferenceStartState
	DecimalCharacterReferenceStartState
	HexadecimalCharacterReferenceState
	DecimalCharacterReferenceState
	NumericCharacterReferenceEndState
)

const replacementChar = '�'

// OnEmit receives each token as it's produced. The tokenizer is
// non-reentrant with respect to the call: it must return before the
// tokenizer is driven again.
type OnEmit func(Token)

// OnError receives each parse error as it's produced.
type OnError func(*ParseError)

// Tokenizer implements the WHATWG lexing automaton over a UTF-8 byte
// stream. Only bytes <= 0x7F are interpreted as ASCII structure; all
// other bytes pass through as characters without further validation.
type Tokenizer struct {
	input []byte
	pos   int

	line   int
	column int

	state       State
	returnState State

	current Token
	attrName  strings.Builder
	attrValue strings.Builder
	hasCurrentAttr bool

	tempBuffer strings.Builder

	lastStartTagName string

	charRefCode int64

	adjustedCurrentNodeInHTMLNamespace bool

	onEmit  OnEmit
	onError OnError
}

// NewTokenizer constructs a tokenizer over input. onError may be nil,
// in which case parse errors are silently discarded.
func NewTokenizer(input []byte, onEmit OnEmit, onError OnError) *Tokenizer {
	if onError == nil {
		onError = func(*ParseError) {}
	}
	return &Tokenizer{
		input:                               input,
		line:                                1,
		column:                              1,
		state:                               DataState,
		onEmit:                              onEmit,
		onError:                             onError,
		adjustedCurrentNodeInHTMLNamespace:  true,
	}
}

// SetState switches lexing mode. The consumer calls this from inside
// the token callback to handle <script>, <style>, <title>, <textarea>,
// and CDATA sections.
func (t *Tokenizer) SetState(s State) { t.state = s }

// SetAdjustedCurrentNodeInHTMLNamespace lets the consumer report
// whether the adjusted current node is in the HTML namespace, which
// affects CDATA handling.
func (t *Tokenizer) SetAdjustedCurrentNodeInHTMLNamespace(v bool) {
	t.adjustedCurrentNodeInHTMLNamespace = v
}

// CurrentSourceLocation reports the tokenizer's current position.
func (t *Tokenizer) CurrentSourceLocation() SourceLocation {
	return SourceLocation{Line: t.line, Column: t.column}
}

func (t *Tokenizer) emitError(k ErrorKind) {
	t.onError(&ParseError{Kind: k, Location: t.CurrentSourceLocation()})
}

func (t *Tokenizer) emit(tok Token) {
	if tok.Kind == StartTagToken {
		t.lastStartTagName = tok.Name
	}
	t.onEmit(tok)
}

func (t *Tokenizer) isEOF() bool { return t.pos >= len(t.input) }

// consumeNextInputCharacter returns the next rune and advances pos,
// tracking line/column. Returns (0, false) at EOF.
func (t *Tokenizer) consumeNextInputCharacter() (rune, bool) {
	if t.isEOF() {
		return 0, false
	}
	b := t.input[t.pos]
	var r rune
	var size int
	if b <= 0x7F {
		r, size = rune(b), 1
	} else {
		r, size = utf8.DecodeRune(t.input[t.pos:])
		if r == utf8.RuneError && size <= 1 {
			r, size = rune(b), 1
		}
	}
	t.pos += size
	if r == '\n' {
		t.line++
		t.column = 1
	} else {
		t.column++
	}
	return r, true
}

func (t *Tokenizer) peekNextInputCharacter() (rune, bool) {
	save := t.pos
	saveLine, saveCol := t.line, t.column
	r, ok := t.consumeNextInputCharacter()
	t.pos = save
	t.line, t.column = saveLine, saveCol
	return r, ok
}

// peekString reports whether the upcoming bytes, compared
// case-insensitively over ASCII, equal s.
func (t *Tokenizer) peekStringFold(s string) bool {
	if t.pos+len(s) > len(t.input) {
		return false
	}
	for i := 0; i < len(s); i++ {
		a, b := t.input[t.pos+i], s[i]
		if 'A' <= a && a <= 'Z' {
			a += 'a' - 'A'
		}
		if 'A' <= b && b <= 'Z' {
			b += 'a' - 'A'
		}
		if a != b {
			return false
		}
	}
	return true
}

func (t *Tokenizer) advance(n int) {
	for i := 0; i < n; i++ {
		t.consumeNextInputCharacter()
	}
}

func isASCIIAlpha(r rune) bool {
	return ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z')
}

func isASCIIUpper(r rune) bool { return 'A' <= r && r <= 'Z' }

func toLower(r rune) rune {
	if isASCIIUpper(r) {
		return r + ('a' - 'A')
	}
	return r
}

func isAppropriateEndTag(t *Tokenizer) bool {
	return t.lastStartTagName != "" && t.lastStartTagName == t.current.Name
}

// Run drives the tokenizer to completion, emitting tokens and errors
// via the callbacks given to NewTokenizer. It always ends by emitting
// exactly one EndOfFileToken.
func (t *Tokenizer) Run() {
	for {
		if !t.step() {
			t.emit(Token{Kind: EndOfFileToken})
			return
		}
	}
}

// step processes the tokenizer through one "iteration" of its current
// state, which may consume zero or more input characters and emit zero
// or more tokens. It returns false only when input is exhausted and no
// further progress is possible (EOF has been fully handled).
func (t *Tokenizer) step() bool {
	switch t.state {
	case DataState:
		return t.stepData()
	case RCDATAState:
		return t.stepRCDATA()
	case RAWTEXTState, ScriptDataState:
		return t.stepRawtextLike()
	case PLAINTEXTState:
		return t.stepPlaintext()
	case TagOpenState:
		return t.stepTagOpen()
	case EndTagOpenState:
		return t.stepEndTagOpen()
	case TagNameState:
		return t.stepTagName()
	case RCDATALessThanSignState:
		return t.stepLessThanSignGeneric(RCDATAState, RCDATAEndTagOpenState)
	case RCDATAEndTagOpenState:
		return t.stepEndTagOpenGeneric(RCDATAState, RCDATAEndTagNameState)
	case RCDATAEndTagNameState:
		return t.stepEndTagNameGeneric(RCDATAState)
	case RAWTEXTLessThanSignState:
		return t.stepLessThanSignGeneric(RAWTEXTState, RAWTEXTEndTagOpenState)
	case RAWTEXTEndTagOpenState:
		return t.stepEndTagOpenGeneric(RAWTEXTState, RAWTEXTEndTagNameState)
	case RAWTEXTEndTagNameState:
		return t.stepEndTagNameGeneric(RAWTEXTState)
	case ScriptDataLessThanSignState:
		return t.stepLessThanSignGeneric(ScriptDataState, ScriptDataEndTagOpenState)
	case ScriptDataEndTagOpenState:
		return t.stepEndTagOpenGeneric(ScriptDataState, ScriptDataEndTagNameState)
	case ScriptDataEndTagNameState:
		return t.stepEndTagNameGeneric(ScriptDataState)
	case BeforeAttributeNameState:
		return t.stepBeforeAttributeName()
	case AttributeNameState:
		return t.stepAttributeName()
	case AfterAttributeNameState:
		return t.stepAfterAttributeName()
	case BeforeAttributeValueState:
		return t.stepBeforeAttributeValue()
	case AttributeValueDoubleQuotedState:
		return t.stepAttributeValueQuoted('"')
	case AttributeValueSingleQuotedState:
		return t.stepAttributeValueQuoted('\'')
	case AttributeValueUnquotedState:
		return t.stepAttributeValueUnquoted()
	case AfterAttributeValueQuotedState:
		return t.stepAfterAttributeValueQuoted()
	case SelfClosingStartTagState:
		return t.stepSelfClosingStartTag()
	case BogusCommentState:
		return t.stepBogusComment()
	case MarkupDeclarationOpenState:
		return t.stepMarkupDeclarationOpen()
	case CommentStartState:
		return t.stepCommentStart()
	case CommentStartDashState:
		return t.stepCommentStartDash()
	case CommentState:
		return t.stepComment()
	case CommentEndDashState:
		return t.stepCommentEndDash()
	case CommentEndState:
		return t.stepCommentEnd()
	case CommentEndBangState:
		return t.stepCommentEndBang()
	case DOCTYPEState:
		return t.stepDOCTYPE()
	case BeforeDOCTYPENameState:
		return t.stepBeforeDOCTYPEName()
	case DOCTYPENameState:
		return t.stepDOCTYPEName()
	case AfterDOCTYPENameState:
		return t.stepAfterDOCTYPEName()
	case AfterDOCTYPEPublicKeywordState:
		return t.stepAfterDOCTYPEPublicKeyword()
	case BeforeDOCTYPEPublicIdentifierState:
		return t.stepBeforeDOCTYPEPublicIdentifier()
	case DOCTYPEPublicIdentifierDoubleQuotedState:
		return t.stepDOCTYPEPublicIdentifierQuoted('"')
	case DOCTYPEPublicIdentifierSingleQuotedState:
		return t.stepDOCTYPEPublicIdentifierQuoted('\'')
	case AfterDOCTYPEPublicIdentifierState:
		return t.stepAfterDOCTYPEPublicIdentifier()
	case BetweenDOCTYPEPublicAndSystemIdentifiersState:
		return t.stepBetweenDOCTYPEPublicAndSystemIdentifiers()
	case AfterDOCTYPESystemKeywordState:
		return t.stepAfterDOCTYPESystemKeyword()
	case BeforeDOCTYPESystemIdentifierState:
		return t.stepBeforeDOCTYPESystemIdentifier()
	case DOCTYPESystemIdentifierDoubleQuotedState:
		return t.stepDOCTYPESystemIdentifierQuoted('"')
	case DOCTYPESystemIdentifierSingleQuotedState:
		return t.stepDOCTYPESystemIdentifierQuoted('\'')
	case AfterDOCTYPESystemIdentifierState:
		return t.stepAfterDOCTYPESystemIdentifier()
	case BogusDOCTYPEState:
		return t.stepBogusDOCTYPE()
	case CDATASectionState:
		return t.stepCDATASection()
	case CharacterReferenceState:
		return t.stepCharacterReference()
	case NamedCharacterReferenceState:
		return t.stepNamedCharacterReference()
	case AmbiguousAmpersandState:
		return t.stepAmbiguousAmpersand()
	case NumericCharacterReferenceState:
		return t.stepNumericCharacterReference()
	case HexadecimalCharacterReferenceStartState:
		return t.stepHexadecimalCharacterReferenceStart()
	case DecimalCharacterReferenceStartState:
		return t.stepDecimalCharacterReferenceStart()
	case HexadecimalCharacterReferenceState:
		return t.stepHexadecimalCharacterReference()
	case DecimalCharacterReferenceState:
		return t.stepDecimalCharacterReference()
	case NumericCharacterReferenceEndState:
		return t.stepNumericCharacterReferenceEnd()
	default:
		return false
	}
}

func (t *Tokenizer) emitChar(r rune) {
	t.emit(Token{Kind: CharacterToken, Codepoint: r})
}

func (t *Tokenizer) stepData() bool {
	r, ok := t.consumeNextInputCharacter()
	if !ok {
		return false
	}
	switch r {
	case '&':
		t.returnState = DataState
		t.state = CharacterReferenceState
	case '<':
		t.state = TagOpenState
	case 0:
		t.emitError(UnexpectedNullCharacter)
		t.emitChar(replacementChar)
	default:
		t.emitChar(r)
	}
	return true
}

func (t *Tokenizer) stepRCDATA() bool {
	r, ok := t.consumeNextInputCharacter()
	if !ok {
		return false
	}
	switch r {
	case '&':
		t.returnState = RCDATAState
		t.state = CharacterReferenceState
	case '<':
		t.state = RCDATALessThanSignState
	case 0:
		t.emitError(UnexpectedNullCharacter)
		t.emitChar(replacementChar)
	default:
		t.emitChar(r)
	}
	return true
}

func (t *Tokenizer) stepRawtextLike() bool {
	r, ok := t.consumeNextInputCharacter()
	if !ok {
		return false
	}
	ltState := RAWTEXTLessThanSignState
	if t.state == ScriptDataState {
		ltState = ScriptDataLessThanSignState
	}
	switch r {
	case '<':
		t.state = ltState
	case 0:
		t.emitError(UnexpectedNullCharacter)
		t.emitChar(replacementChar)
	default:
		t.emitChar(r)
	}
	return true
}

func (t *Tokenizer) stepPlaintext() bool {
	r, ok := t.consumeNextInputCharacter()
	if !ok {
		return false
	}
	if r == 0 {
		t.emitError(UnexpectedNullCharacter)
		t.emitChar(replacementChar)
		return true
	}
	t.emitChar(r)
	return true
}

func (t *Tokenizer) stepTagOpen() bool {
	r, ok := t.peekNextInputCharacter()
	if !ok {
		t.emitError(EOFBeforeTagName)
		t.emitChar('<')
		return false
	}
	switch {
	case r == '!':
		t.advance(1)
		t.state = MarkupDeclarationOpenState
	case r == '/':
		t.advance(1)
		t.state = EndTagOpenState
	case isASCIIAlpha(r):
		t.current = Token{Kind: StartTagToken}
		t.state = TagNameState
	case r == '?':
		t.emitError(UnexpectedQuestionMarkInsteadOfTagName)
		t.current = Token{Kind: CommentToken}
		t.state = BogusCommentState
	default:
		t.emitChar('<')
		t.state = DataState
	}
	return true
}

func (t *Tokenizer) stepEndTagOpen() bool {
	r, ok := t.peekNextInputCharacter()
	if !ok {
		t.emitError(EOFBeforeTagName)
		t.emitChar('<')
		t.emitChar('/')
		return false
	}
	switch {
	case isASCIIAlpha(r):
		t.current = Token{Kind: EndTagToken}
		t.state = TagNameState
	case r == '>':
		t.advance(1)
		t.emitError(MissingEndTagName)
		t.state = DataState
	default:
		t.emitError(InvalidFirstCharacterOfTagName)
		t.current = Token{Kind: CommentToken}
		t.state = BogusCommentState
	}
	return true
}

func (t *Tokenizer) finishCurrentAttr() {
	if t.hasCurrentAttr {
		name := t.attrName.String()
		for _, a := range t.current.Attributes {
			if a.Name == name {
				t.emitError(DuplicateAttribute)
				t.hasCurrentAttr = false
				t.attrName.Reset()
				t.attrValue.Reset()
				return
			}
		}
		t.current.Attributes = append(t.current.Attributes, Attribute{Name: name, Value: t.attrValue.String()})
	}
	t.hasCurrentAttr = false
	t.attrName.Reset()
	t.attrValue.Reset()
}

func (t *Tokenizer) emitCurrentTag() {
	t.finishCurrentAttr()
	if t.current.Kind == EndTagToken {
		if len(t.current.Attributes) > 0 {
			t.emitError(EndTagWithAttributes)
		}
		if t.current.SelfClosing {
			t.emitError(EndTagWithTrailingSolidus)
		}
	}
	t.emit(t.current)
}

func (t *Tokenizer) stepTagName() bool {
	r, ok := t.consumeNextInputCharacter()
	if !ok {
		t.emitError(EOFInTag)
		return false
	}
	switch {
	case r == '\t' || r == '\n' || r == '\f' || r == ' ':
		t.state = BeforeAttributeNameState
	case r == '/':
		t.state = SelfClosingStartTagState
	case r == '>':
		t.state = DataState
		t.emitCurrentTag()
	case isASCIIUpper(r):
		t.current.Name += string(toLower(r))
	case r == 0:
		t.emitError(UnexpectedNullCharacter)
		t.current.Name += string(replacementChar)
	default:
		t.current.Name += string(r)
	}
	return true
}

func (t *Tokenizer) stepLessThanSignGeneric(elseState, endTagOpenState State) bool {
	r, ok := t.peekNextInputCharacter()
	if ok && r == '/' {
		t.advance(1)
		t.tempBuffer.Reset()
		t.state = endTagOpenState
		return true
	}
	t.emitChar('<')
	t.state = elseState
	return true
}

func (t *Tokenizer) stepEndTagOpenGeneric(elseState, endTagNameState State) bool {
	r, ok := t.peekNextInputCharacter()
	if ok && isASCIIAlpha(r) {
		t.current = Token{Kind: EndTagToken}
		t.state = endTagNameState
		return true
	}
	t.emitChar('<')
	t.emitChar('/')
	t.state = elseState
	return true
}

func (t *Tokenizer) stepEndTagNameGeneric(elseState State) bool {
	r, ok := t.consumeNextInputCharacter()
	if !ok {
		t.emitChar('<')
		t.emitChar('/')
		for _, c := range t.tempBuffer.String() {
			t.emitChar(c)
		}
		t.state = elseState
		return false
	}
	switch {
	case (r == '\t' || r == '\n' || r == '\f' || r == ' ') && isAppropriateEndTag(t):
		t.state = BeforeAttributeNameState
		return true
	case r == '/' && isAppropriateEndTag(t):
		t.state = SelfClosingStartTagState
		return true
	case r == '>' && isAppropriateEndTag(t):
		t.state = DataState
		t.emitCurrentTag()
		return true
	case isASCIIUpper(r):
		t.current.Name += string(toLower(r))
		t.tempBuffer.WriteRune(r)
		return true
	case isASCIIAlpha(r):
		t.current.Name += string(r)
		t.tempBuffer.WriteRune(r)
		return true
	default:
		t.emitChar('<')
		t.emitChar('/')
		for _, c := range t.tempBuffer.String() {
			t.emitChar(c)
		}
		t.pos-- // reconsume: cheap since all bytes here are ASCII
		t.column--
		t.state = elseState
		return true
	}
}

func (t *Tokenizer) stepBeforeAttributeName() bool {
	r, ok := t.peekNextInputCharacter()
	if !ok {
		return t.stepAfterAttributeNameEOF()
	}
	switch {
	case r == '\t' || r == '\n' || r == '\f' || r == ' ':
		t.advance(1)
	case r == '/' || r == '>':
		t.state = AfterAttributeNameState
	case r == '=':
		t.advance(1)
		t.emitError(UnexpectedEqualsSignBeforeAttributeName)
		t.finishCurrentAttr()
		t.hasCurrentAttr = true
		t.attrName.WriteRune(r)
		t.state = AttributeNameState
	default:
		t.finishCurrentAttr()
		t.hasCurrentAttr = true
		t.state = AttributeNameState
	}
	return true
}

func (t *Tokenizer) stepAfterAttributeNameEOF() bool {
	t.emitError(EOFInTag)
	return false
}

func (t *Tokenizer) stepAttributeName() bool {
	r, ok := t.consumeNextInputCharacter()
	if !ok {
		t.emitError(EOFInTag)
		return false
	}
	switch {
	case r == '\t' || r == '\n' || r == '\f' || r == ' ' || r == '/' || r == '>':
		t.pos--
		t.column--
		t.state = AfterAttributeNameState
	case r == '=':
		t.state = BeforeAttributeValueState
	case isASCIIUpper(r):
		t.attrName.WriteRune(toLower(r))
	case r == 0:
		t.emitError(UnexpectedNullCharacter)
		t.attrName.WriteRune(replacementChar)
	case r == '"' || r == '\'' || r == '<':
		t.emitError(UnexpectedCharacterInAttributeName)
		t.attrName.WriteRune(r)
	default:
		t.attrName.WriteRune(r)
	}
	return true
}

func (t *Tokenizer) stepAfterAttributeName() bool {
	r, ok := t.consumeNextInputCharacter()
	if !ok {
		t.emitError(EOFInTag)
		return false
	}
	switch {
	case r == '\t' || r == '\n' || r == '\f' || r == ' ':
	case r == '/':
		t.state = SelfClosingStartTagState
	case r == '=':
		t.state = BeforeAttributeValueState
	case r == '>':
		t.state = DataState
		t.emitCurrentTag()
	default:
		t.finishCurrentAttr()
		t.hasCurrentAttr = true
		t.pos--
		t.column--
		t.state = AttributeNameState
	}
	return true
}

func (t *Tokenizer) stepBeforeAttributeValue() bool {
	r, ok := t.peekNextInputCharacter()
	if !ok {
		t.state = AttributeValueUnquotedState
		return true
	}
	switch {
	case r == '\t' || r == '\n' || r == '\f' || r == ' ':
		t.advance(1)
	case r == '"':
		t.advance(1)
		t.state = AttributeValueDoubleQuotedState
	case r == '\'':
		t.advance(1)
		t.state = AttributeValueSingleQuotedState
	case r == '>':
		t.advance(1)
		t.emitError(MissingAttributeValue)
		t.state = DataState
		t.emitCurrentTag()
	default:
		t.state = AttributeValueUnquotedState
	}
	return true
}

func (t *Tokenizer) stepAttributeValueQuoted(quote rune) bool {
	r, ok := t.consumeNextInputCharacter()
	if !ok {
		t.emitError(EOFInTag)
		return false
	}
	switch {
	case r == quote:
		t.state = AfterAttributeValueQuotedState
	case r == '&':
		t.returnState = t.state
		t.state = CharacterReferenceState
	case r == 0:
		t.emitError(UnexpectedNullCharacter)
		t.attrValue.WriteRune(replacementChar)
	default:
		t.attrValue.WriteRune(r)
	}
	return true
}

func (t *Tokenizer) stepAttributeValueUnquoted() bool {
	r, ok := t.consumeNextInputCharacter()
	if !ok {
		t.emitError(EOFInTag)
		return false
	}
	switch {
	case r == '\t' || r == '\n' || r == '\f' || r == ' ':
		t.state = BeforeAttributeNameState
	case r == '&':
		t.returnState = t.state
		t.state = CharacterReferenceState
	case r == '>':
		t.state = DataState
		t.emitCurrentTag()
	case r == 0:
		t.emitError(UnexpectedNullCharacter)
		t.attrValue.WriteRune(replacementChar)
	case r == '"' || r == '\'' || r == '<' || r == '=' || r == '`':
		t.emitError(UnexpectedCharacterInUnquotedAttributeValue)
		t.attrValue.WriteRune(r)
	default:
		t.attrValue.WriteRune(r)
	}
	return true
}

func (t *Tokenizer) stepAfterAttributeValueQuoted() bool {
	r, ok := t.consumeNextInputCharacter()
	if !ok {
		t.emitError(EOFInTag)
		return false
	}
	switch {
	case r == '\t' || r == '\n' || r == '\f' || r == ' ':
		t.state = BeforeAttributeNameState
	case r == '/':
		t.state = SelfClosingStartTagState
	case r == '>':
		t.state = DataState
		t.emitCurrentTag()
	default:
		t.emitError(MissingWhitespaceBetweenAttributes)
		t.pos--
		t.column--
		t.state = BeforeAttributeNameState
	}
	return true
}

func (t *Tokenizer) stepSelfClosingStartTag() bool {
	r, ok := t.consumeNextInputCharacter()
	if !ok {
		t.emitError(EOFInTag)
		return false
	}
	if r == '>' {
		t.current.SelfClosing = true
		t.state = DataState
		t.emitCurrentTag()
		return true
	}
	t.emitError(UnexpectedSolidusInTag)
	t.pos--
	t.column--
	t.state = BeforeAttributeNameState
	return true
}

func (t *Tokenizer) stepBogusComment() bool {
	r, ok := t.consumeNextInputCharacter()
	if !ok {
		t.emit(t.current)
		return false
	}
	switch r {
	case '>':
		t.state = DataState
		t.emit(t.current)
	case 0:
		t.current.Data += string(replacementChar)
	default:
		t.current.Data += string(r)
	}
	return true
}

func (t *Tokenizer) stepMarkupDeclarationOpen() bool {
	switch {
	case t.peekStringFold("--"):
		t.advance(2)
		t.current = Token{Kind: CommentToken}
		t.state = CommentStartState
	case t.peekStringFold("doctype"):
		t.advance(7)
		t.state = DOCTYPEState
	case t.peekStringFold("[CDATA["):
		t.advance(7)
		if t.adjustedCurrentNodeInHTMLNamespace {
			t.emitError(CDATAInHTMLContent)
			t.current = Token{Kind: CommentToken, Data: "[CDATA["}
			t.state = BogusCommentState
		} else {
			t.state = CDATASectionState
		}
	default:
		t.emitError(IncorrectlyOpenedComment)
		t.current = Token{Kind: CommentToken}
		t.state = BogusCommentState
	}
	return true
}

func (t *Tokenizer) stepCommentStart() bool {
	r, ok := t.peekNextInputCharacter()
	if !ok {
		t.state = CommentState
		return true
	}
	switch r {
	case '-':
		t.advance(1)
		t.state = CommentStartDashState
	case '>':
		t.advance(1)
		t.emitError(IncorrectlyClosedComment)
		t.state = DataState
		t.emit(t.current)
	default:
		t.state = CommentState
	}
	return true
}

func (t *Tokenizer) stepCommentStartDash() bool {
	r, ok := t.consumeNextInputCharacter()
	if !ok {
		t.emitError(EOFInComment)
		t.emit(t.current)
		return false
	}
	switch r {
	case '-':
		t.state = CommentEndState
	case '>':
		t.emitError(IncorrectlyClosedComment)
		t.state = DataState
		t.emit(t.current)
	default:
		t.current.Data += "-"
		t.pos--
		t.column--
		t.state = CommentState
	}
	return true
}

func (t *Tokenizer) stepComment() bool {
	r, ok := t.consumeNextInputCharacter()
	if !ok {
		t.emitError(EOFInComment)
		t.emit(t.current)
		return false
	}
	switch r {
	case '<':
		t.current.Data += "<"
	case '-':
		t.state = CommentEndDashState
	case 0:
		t.emitError(UnexpectedNullCharacter)
		t.current.Data += string(replacementChar)
	default:
		t.current.Data += string(r)
	}
	return true
}

func (t *Tokenizer) stepCommentEndDash() bool {
	r, ok := t.consumeNextInputCharacter()
	if !ok {
		t.emitError(EOFInComment)
		t.emit(t.current)
		return false
	}
	if r == '-' {
		t.state = CommentEndState
		return true
	}
	t.current.Data += "-"
	t.pos--
	t.column--
	t.state = CommentState
	return true
}

func (t *Tokenizer) stepCommentEnd() bool {
	r, ok := t.consumeNextInputCharacter()
	if !ok {
		t.emitError(EOFInComment)
		t.emit(t.current)
		return false
	}
	switch r {
	case '>':
		t.state = DataState
		t.emit(t.current)
	case '!':
		t.state = CommentEndBangState
	case '-':
		t.current.Data += "-"
	default:
		t.current.Data += "--"
		t.pos--
		t.column--
		t.state = CommentState
	}
	return true
}

func (t *Tokenizer) stepCommentEndBang() bool {
	r, ok := t.consumeNextInputCharacter()
	if !ok {
		t.emitError(EOFInComment)
		t.emit(t.current)
		return false
	}
	switch r {
	case '-':
		t.current.Data += "--!"
		t.state = CommentEndDashState
	case '>':
		t.emitError(IncorrectlyClosedComment)
		t.state = DataState
		t.emit(t.current)
	default:
		t.current.Data += "--!"
		t.pos--
		t.column--
		t.state = CommentState
	}
	return true
}

func (t *Tokenizer) stepDOCTYPE() bool {
	r, ok := t.peekNextInputCharacter()
	if !ok {
		t.emitError(EOFInDOCTYPE)
		t.current = Token{Kind: DoctypeToken, ForceQuirks: true}
		t.emit(t.current)
		return false
	}
	if r == '\t' || r == '\n' || r == '\f' || r == ' ' {
		t.advance(1)
		t.state = BeforeDOCTYPENameState
		return true
	}
	t.emitError(MissingWhitespaceBeforeDOCTYPEName)
	t.state = BeforeDOCTYPENameState
	return true
}

func (t *Tokenizer) stepBeforeDOCTYPEName() bool {
	r, ok := t.consumeNextInputCharacter()
	if !ok {
		t.emitError(EOFInDOCTYPE)
		t.emit(Token{Kind: DoctypeToken, ForceQuirks: true})
		return false
	}
	switch {
	case r == '\t' || r == '\n' || r == '\f' || r == ' ':
		return true
	case isASCIIUpper(r):
		t.current = Token{Kind: DoctypeToken, Name: string(toLower(r))}
		t.state = DOCTYPENameState
	case r == 0:
		t.emitError(UnexpectedNullCharacter)
		t.current = Token{Kind: DoctypeToken, Name: string(replacementChar)}
		t.state = DOCTYPENameState
	case r == '>':
		t.emitError(MissingDOCTYPEName)
		t.emit(Token{Kind: DoctypeToken, ForceQuirks: true})
		t.state = DataState
	default:
		t.current = Token{Kind: DoctypeToken, Name: string(r)}
		t.state = DOCTYPENameState
	}
	return true
}

func (t *Tokenizer) stepDOCTYPEName() bool {
	r, ok := t.consumeNextInputCharacter()
	if !ok {
		t.emitError(EOFInDOCTYPE)
		t.current.ForceQuirks = true
		t.emit(t.current)
		return false
	}
	switch {
	case r == '\t' || r == '\n' || r == '\f' || r == ' ':
		t.state = AfterDOCTYPENameState
	case r == '>':
		t.state = DataState
		t.emit(t.current)
	case isASCIIUpper(r):
		t.current.Name += string(toLower(r))
	case r == 0:
		t.emitError(UnexpectedNullCharacter)
		t.current.Name += string(replacementChar)
	default:
		t.current.Name += string(r)
	}
	return true
}

func (t *Tokenizer) stepAfterDOCTYPEName() bool {
	r, ok := t.peekNextInputCharacter()
	if !ok {
		t.emitError(EOFInDOCTYPE)
		t.current.ForceQuirks = true
		t.emit(t.current)
		return false
	}
	switch {
	case r == '\t' || r == '\n' || r == '\f' || r == ' ':
		t.advance(1)
	case r == '>':
		t.advance(1)
		t.state = DataState
		t.emit(t.current)
	case t.peekStringFold("public"):
		t.advance(6)
		t.state = AfterDOCTYPEPublicKeywordState
	case t.peekStringFold("system"):
		t.advance(6)
		t.state = AfterDOCTYPESystemKeywordState
	default:
		t.advance(1)
		t.current.ForceQuirks = true
		t.state = BogusDOCTYPEState
	}
	return true
}

func (t *Tokenizer) stepAfterDOCTYPEPublicKeyword() bool {
	r, ok := t.consumeNextInputCharacter()
	if !ok {
		t.emitError(EOFInDOCTYPE)
		t.current.ForceQuirks = true
		t.emit(t.current)
		return false
	}
	switch {
	case r == '\t' || r == '\n' || r == '\f' || r == ' ':
		t.state = BeforeDOCTYPEPublicIdentifierState
	case r == '"':
		t.emitError(MissingWhitespaceAfterDOCTYPEPublicKeyword)
		t.current.HasPublicID = true
		t.state = DOCTYPEPublicIdentifierDoubleQuotedState
	case r == '\'':
		t.emitError(MissingWhitespaceAfterDOCTYPEPublicKeyword)
		t.current.HasPublicID = true
		t.state = DOCTYPEPublicIdentifierSingleQuotedState
	case r == '>':
		t.emitError(MissingDOCTYPEPublicIdentifier)
		t.current.ForceQuirks = true
		t.state = DataState
		t.emit(t.current)
	default:
		t.emitError(MissingQuoteBeforeDOCTYPEPublicIdentifier)
		t.current.ForceQuirks = true
		t.pos--
		t.column--
		t.state = BogusDOCTYPEState
	}
	return true
}

func (t *Tokenizer) stepBeforeDOCTYPEPublicIdentifier() bool {
	r, ok := t.consumeNextInputCharacter()
	if !ok {
		t.emitError(EOFInDOCTYPE)
		t.current.ForceQuirks = true
		t.emit(t.current)
		return false
	}
	switch {
	case r == '\t' || r == '\n' || r == '\f' || r == ' ':
		return true
	case r == '"':
		t.current.HasPublicID = true
		t.state = DOCTYPEPublicIdentifierDoubleQuotedState
	case r == '\'':
		t.current.HasPublicID = true
		t.state = DOCTYPEPublicIdentifierSingleQuotedState
	case r == '>':
		t.emitError(MissingDOCTYPEPublicIdentifier)
		t.current.ForceQuirks = true
		t.state = DataState
		t.emit(t.current)
	default:
		t.emitError(MissingQuoteBeforeDOCTYPEPublicIdentifier)
		t.current.ForceQuirks = true
		t.pos--
		t.column--
		t.state = BogusDOCTYPEState
	}
	return true
}

func (t *Tokenizer) stepDOCTYPEPublicIdentifierQuoted(quote rune) bool {
	r, ok := t.consumeNextInputCharacter()
	if !ok {
		t.emitError(EOFInDOCTYPE)
		t.current.ForceQuirks = true
		t.emit(t.current)
		return false
	}
	switch {
	case r == quote:
		t.state = AfterDOCTYPEPublicIdentifierState
	case r == 0:
		t.emitError(UnexpectedNullCharacter)
		t.current.PublicID += string(replacementChar)
	case r == '>':
		t.emitError(AbruptDOCTYPEPublicIdentifier)
		t.current.ForceQuirks = true
		t.state = DataState
		t.emit(t.current)
	default:
		t.current.PublicID += string(r)
	}
	return true
}

func (t *Tokenizer) stepAfterDOCTYPEPublicIdentifier() bool {
	r, ok := t.consumeNextInputCharacter()
	if !ok {
		t.emitError(EOFInDOCTYPE)
		t.current.ForceQuirks = true
		t.emit(t.current)
		return false
	}
	switch {
	case r == '\t' || r == '\n' || r == '\f' || r == ' ':
		t.state = BetweenDOCTYPEPublicAndSystemIdentifiersState
	case r == '>':
		t.state = DataState
		t.emit(t.current)
	case r == '"':
		t.emitError(MissingWhitespaceBetweenDOCTYPEPublicAndSystemIdentifiers)
		t.current.HasSystemID = true
		t.state = DOCTYPESystemIdentifierDoubleQuotedState
	case r == '\'':
		t.emitError(MissingWhitespaceBetweenDOCTYPEPublicAndSystemIdentifiers)
		t.current.HasSystemID = true
		t.state = DOCTYPESystemIdentifierSingleQuotedState
	default:
		t.emitError(MissingQuoteBeforeDOCTYPESystemIdentifier)
		t.current.ForceQuirks = true
		t.pos--
		t.column--
		t.state = BogusDOCTYPEState
	}
	return true
}

func (t *Tokenizer) stepBetweenDOCTYPEPublicAndSystemIdentifiers() bool {
	r, ok := t.consumeNextInputCharacter()
	if !ok {
		t.emitError(EOFInDOCTYPE)
		t.current.ForceQuirks = true
		t.emit(t.current)
		return false
	}
	switch {
	case r == '\t' || r == '\n' || r == '\f' || r == ' ':
		return true
	case r == '>':
		t.state = DataState
		t.emit(t.current)
	case r == '"':
		t.current.HasSystemID = true
		t.state = DOCTYPESystemIdentifierDoubleQuotedState
	case r == '\'':
		t.current.HasSystemID = true
		t.state = DOCTYPESystemIdentifierSingleQuotedState
	default:
		t.emitError(MissingQuoteBeforeDOCTYPESystemIdentifier)
		t.current.ForceQuirks = true
		t.pos--
		t.column--
		t.state = BogusDOCTYPEState
	}
	return true
}

func (t *Tokenizer) stepAfterDOCTYPESystemKeyword() bool {
	r, ok := t.consumeNextInputCharacter()
	if !ok {
		t.emitError(EOFInDOCTYPE)
		t.current.ForceQuirks = true
		t.emit(t.current)
		return false
	}
	switch {
	case r == '\t' || r == '\n' || r == '\f' || r == ' ':
		t.state = BeforeDOCTYPESystemIdentifierState
	case r == '"':
		t.emitError(MissingWhitespaceAfterDOCTYPESystemKeyword)
		t.current.HasSystemID = true
		t.state = DOCTYPESystemIdentifierDoubleQuotedState
	case r == '\'':
		t.emitError(MissingWhitespaceAfterDOCTYPESystemKeyword)
		t.current.HasSystemID = true
		t.state = DOCTYPESystemIdentifierSingleQuotedState
	case r == '>':
		t.emitError(MissingDOCTYPESystemIdentifier)
		t.current.ForceQuirks = true
		t.state = DataState
		t.emit(t.current)
	default:
		t.emitError(MissingQuoteBeforeDOCTYPESystemIdentifier)
		t.current.ForceQuirks = true
		t.pos--
		t.column--
		t.state = BogusDOCTYPEState
	}
	return true
}

func (t *Tokenizer) stepBeforeDOCTYPESystemIdentifier() bool {
	r, ok := t.consumeNextInputCharacter()
	if !ok {
		t.emitError(EOFInDOCTYPE)
		t.current.ForceQuirks = true
		t.emit(t.current)
		return false
	}
	switch {
	case r == '\t' || r == '\n' || r == '\f' || r == ' ':
		return true
	case r == '"':
		t.current.HasSystemID = true
		t.state = DOCTYPESystemIdentifierDoubleQuotedState
	case r == '\'':
		t.current.HasSystemID = true
		t.state = DOCTYPESystemIdentifierSingleQuotedState
	case r == '>':
		t.emitError(MissingDOCTYPESystemIdentifier)
		t.current.ForceQuirks = true
		t.state = DataState
		t.emit(t.current)
	default:
		t.emitError(MissingQuoteBeforeDOCTYPESystemIdentifier)
		t.current.ForceQuirks = true
		t.pos--
		t.column--
		t.state = BogusDOCTYPEState
	}
	return true
}

func (t *Tokenizer) stepDOCTYPESystemIdentifierQuoted(quote rune) bool {
	r, ok := t.consumeNextInputCharacter()
	if !ok {
		t.emitError(EOFInDOCTYPE)
		t.current.ForceQuirks = true
		t.emit(t.current)
		return false
	}
	switch {
	case r == quote:
		t.state = AfterDOCTYPESystemIdentifierState
	case r == 0:
		t.emitError(UnexpectedNullCharacter)
		t.current.SystemID += string(replacementChar)
	case r == '>':
		t.emitError(AbruptDOCTYPESystemIdentifier)
		t.current.ForceQuirks = true
		t.state = DataState
		t.emit(t.current)
	default:
		t.current.SystemID += string(r)
	}
	return true
}

func (t *Tokenizer) stepAfterDOCTYPESystemIdentifier() bool {
	r, ok := t.consumeNextInputCharacter()
	if !ok {
		t.emitError(EOFInDOCTYPE)
		t.current.ForceQuirks = true
		t.emit(t.current)
		return false
	}
	switch {
	case r == '\t' || r == '\n' || r == '\f' || r == ' ':
		return true
	case r == '>':
		t.state = DataState
		t.emit(t.current)
	default:
		t.emitError(UnexpectedCharacterAfterDOCTYPESystemIdentifier)
		t.pos--
		t.column--
		t.state = BogusDOCTYPEState
	}
	return true
}

func (t *Tokenizer) stepBogusDOCTYPE() bool {
	r, ok := t.consumeNextInputCharacter()
	if !ok {
		t.emit(t.current)
		return false
	}
	switch r {
	case '>':
		t.state = DataState
		t.emit(t.current)
	case 0:
		t.emitError(UnexpectedNullCharacter)
	default:
	}
	return true
}

func (t *Tokenizer) stepCDATASection() bool {
	if t.peekStringFold("]]>") {
		t.advance(3)
		t.state = DataState
		return true
	}
	r, ok := t.consumeNextInputCharacter()
	if !ok {
		t.emitError(EOFInCDATA)
		return false
	}
	t.emitChar(r)
	return true
}

func (t *Tokenizer) stepCharacterReference() bool {
	t.tempBuffer.Reset()
	t.tempBuffer.WriteByte('&')

	r, ok := t.peekNextInputCharacter()
	switch {
	case !ok:
		t.flushTempBufferAsCharacters()
		t.state = t.returnState
		return true
	case isASCIIAlpha(r):
		t.state = NamedCharacterReferenceState
		return true
	case r == '#':
		t.advance(1)
		t.tempBuffer.WriteByte('#')
		t.state = NumericCharacterReferenceState
	default:
		t.flushTempBufferAsCharacters()
		t.state = t.returnState
	}
	return true
}

func (t *Tokenizer) flushTempBufferAsCharacters() {
	if t.isInAttributeValue() {
		t.attrValue.WriteString(t.tempBuffer.String())
		return
	}
	for _, c := range t.tempBuffer.String() {
		t.emitChar(c)
	}
}

func (t *Tokenizer) isInAttributeValue() bool {
	switch t.returnState {
	case AttributeValueDoubleQuotedState, AttributeValueSingleQuotedState, AttributeValueUnquotedState:
		return true
	}
	return false
}

// stepNamedCharacterReference performs greedy longest-match lookup
// against namedCharRefs, matching the WHATWG algorithm's intent
// without its full trie; see entities.go for the table's scope.
func (t *Tokenizer) stepNamedCharacterReference() bool {
	rest := t.input[t.pos:]
	var bestName, bestVal string
	for name, val := range namedCharRefs {
		if len(name) <= len(rest) && string(rest[:len(name)]) == name {
			if len(name) > len(bestName) {
				bestName, bestVal = name, val
			}
		}
	}
	if bestName == "" {
		t.flushTempBufferAsCharacters()
		t.state = AmbiguousAmpersandState
		return true
	}
	t.advance(len(bestName))
	t.tempBuffer.WriteString(bestName)
	if !strings.HasSuffix(bestName, ";") {
		if n, ok := t.peekNextInputCharacter(); ok && (n == '=' || isASCIIAlpha(n) || (n >= '0' && n <= '9')) {
			t.flushTempBufferAsCharacters()
			t.state = t.returnState
			return true
		}
		t.emitError(MissingSemicolonAfterCharacterReference)
	}
	if t.isInAttributeValue() {
		t.attrValue.WriteString(bestVal)
	} else {
		for _, c := range bestVal {
			t.emitChar(c)
		}
	}
	t.state = t.returnState
	return true
}

func (t *Tokenizer) stepAmbiguousAmpersand() bool {
	r, ok := t.peekNextInputCharacter()
	if !ok {
		t.state = t.returnState
		return true
	}
	if isASCIIAlpha(r) || (r >= '0' && r <= '9') {
		t.advance(1)
		if t.isInAttributeValue() {
			t.attrValue.WriteRune(r)
		} else {
			t.emitChar(r)
		}
		return true
	}
	if r == ';' {
		t.emitError(UnknownNamedCharacterReference)
	}
	t.state = t.returnState
	return true
}

func (t *Tokenizer) stepNumericCharacterReference() bool {
	t.charRefCode = 0
	r, ok := t.peekNextInputCharacter()
	switch {
	case ok && (r == 'x' || r == 'X'):
		t.advance(1)
		t.tempBuffer.WriteRune(r)
		t.state = HexadecimalCharacterReferenceStartState
	default:
		t.state = DecimalCharacterReferenceStartState
	}
	return true
}

func isHexDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

func (t *Tokenizer) stepHexadecimalCharacterReferenceStart() bool {
	r, ok := t.peekNextInputCharacter()
	if ok && isHexDigit(r) {
		t.state = HexadecimalCharacterReferenceState
		return true
	}
	t.emitError(AbsenceOfDigitsInNumericCharacterReference)
	t.flushTempBufferAsCharacters()
	t.state = t.returnState
	return true
}

func (t *Tokenizer) stepDecimalCharacterReferenceStart() bool {
	r, ok := t.peekNextInputCharacter()
	if ok && r >= '0' && r <= '9' {
		t.state = DecimalCharacterReferenceState
		return true
	}
	t.emitError(AbsenceOfDigitsInNumericCharacterReference)
	t.flushTempBufferAsCharacters()
	t.state = t.returnState
	return true
}

func (t *Tokenizer) stepHexadecimalCharacterReference() bool {
	r, ok := t.consumeNextInputCharacter()
	if !ok {
		t.emitError(MissingSemicolonAfterCharacterReference)
		t.state = NumericCharacterReferenceEndState
		return true
	}
	switch {
	case r >= '0' && r <= '9':
		t.charRefCode = t.charRefCode*16 + int64(r-'0')
	case r >= 'a' && r <= 'f':
		t.charRefCode = t.charRefCode*16 + int64(r-'a'+10)
	case r >= 'A' && r <= 'F':
		t.charRefCode = t.charRefCode*16 + int64(r-'A'+10)
	case r == ';':
		t.state = NumericCharacterReferenceEndState
	default:
		t.emitError(MissingSemicolonAfterCharacterReference)
		t.pos--
		t.column--
		t.state = NumericCharacterReferenceEndState
	}
	return true
}

func (t *Tokenizer) stepDecimalCharacterReference() bool {
	r, ok := t.consumeNextInputCharacter()
	if !ok {
		t.emitError(MissingSemicolonAfterCharacterReference)
		t.state = NumericCharacterReferenceEndState
		return true
	}
	switch {
	case r >= '0' && r <= '9':
		t.charRefCode = t.charRefCode*10 + int64(r-'0')
	case r == ';':
		t.state = NumericCharacterReferenceEndState
	default:
		t.emitError(MissingSemicolonAfterCharacterReference)
		t.pos--
		t.column--
		t.state = NumericCharacterReferenceEndState
	}
	return true
}

func (t *Tokenizer) stepNumericCharacterReferenceEnd() bool {
	code := t.charRefCode
	r := rune(code)

	switch {
	case code == 0:
		t.emitError(NullCharacterReference)
		r = replacementChar
	case code > 0x10FFFF:
		t.emitError(OutsideUnicodeRangeNumericCharacterReference)
		r = replacementChar
	case isSurrogate(r):
		t.emitError(SurrogateCharacterReference)
		r = replacementChar
	case isNoncharacter(r):
		t.emitError(NoncharacterCharacterReference)
	case isControl(r):
		if repl, ok := numericReplacements[r]; ok {
			r = repl
		} else {
			t.emitError(ControlCharacterReference)
		}
	}

	if t.isInAttributeValue() {
		t.attrValue.WriteRune(r)
	} else {
		t.emitChar(r)
	}
	t.state = t.returnState
	return true
}
