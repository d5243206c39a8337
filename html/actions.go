package html

import "github.com/dpotapov/miniweb/dom"

// InsertionMode names a tree-construction state. Table/row/cell/select/
// template sub-states are recognized by name but deliberately not
// implemented.
type InsertionMode int

const (
	InitialMode InsertionMode = iota
	BeforeHtmlMode
	BeforeHeadMode
	InHeadMode
	InHeadNoscriptMode
	AfterHeadMode
	InBodyMode
	TextMode
	InTableMode
	InTableTextMode
	AfterBodyMode
	InFramesetMode
	AfterFramesetMode
	AfterAfterBodyMode
)

// Actions is the only coupling between the insertion-mode state
// machine and the document model. The mode handlers call nothing else.
type Actions interface {
	SetDoctypeFrom(tok Token)
	SetQuirksMode(dom.QuirksMode)
	QuirksMode() dom.QuirksMode
	Scripting() bool

	InsertElementForTag(tok Token) dom.NodeID
	InsertElementForComment(tok Token) dom.NodeID
	PopCurrentNode()
	CurrentNodeName() string
	NamesOfOpenElements() []string // most-recent first
	MergeIntoHTMLNode(attrs []Attribute)
	InsertCharacter(r rune)

	SetTokenizerState(s State)
	StoreOriginalInsertionMode(m InsertionMode)
	OriginalInsertionMode() InsertionMode
	CurrentInsertionMode() InsertionMode
	SetCurrentInsertionMode(m InsertionMode)

	PushHeadAsCurrentOpenElement()
	RemoveFromOpenElements(name string)

	ReconstructActiveFormattingElements() // no-op placeholder
	SetFramesetOK(bool)
	SetFosterParenting(bool)
}

// modeOverrideActions wraps an Actions and re-answers
// CurrentInsertionMode with a fixed value, forwarding everything else.
// A mode handler may re-dispatch a token to another mode's handler
// while still reporting itself as the active insertion mode (so nested
// InHead dispatch behaves correctly), without subclassing.
type modeOverrideActions struct {
	Actions
	mode InsertionMode
}

func withModeOverride(a Actions, mode InsertionMode) Actions {
	return &modeOverrideActions{Actions: a, mode: mode}
}

func (m *modeOverrideActions) CurrentInsertionMode() InsertionMode { return m.mode }

// domActions is the concrete Actions implementation backing Parse. The
// open-elements stack holds dom.NodeID values, arena indices rather
// than pointers, so stack entries cannot dangle across tree mutation.
type domActions struct {
	doc   *dom.Document
	open  []dom.NodeID // index 0 is the bottom of the stack (most recently pushed is last)
	mode  InsertionMode
	origMode InsertionMode

	quirks    dom.QuirksMode
	scripting bool

	tok *Tokenizer

	frameset bool
	foster   bool
}

func newDOMActions(doc *dom.Document, tok *Tokenizer) *domActions {
	a := &domActions{doc: doc, tok: tok, frameset: true}
	a.open = append(a.open, doc.Root)
	return a
}

func (a *domActions) current() dom.NodeID { return a.open[len(a.open)-1] }

func (a *domActions) SetDoctypeFrom(tok Token) {
	a.doc.HasDoctype = true
	a.doc.Doctype = dom.Doctype{
		Name:        tok.Name,
		PublicID:    tok.PublicID,
		SystemID:    tok.SystemID,
		ForceQuirks: tok.ForceQuirks,
	}
}

func (a *domActions) SetQuirksMode(q dom.QuirksMode) { a.quirks = q; a.doc.QuirksMode = q }
func (a *domActions) QuirksMode() dom.QuirksMode     { return a.quirks }
func (a *domActions) Scripting() bool                { return a.scripting }

func (a *domActions) InsertElementForTag(tok Token) dom.NodeID {
	id := a.doc.NewElement(tok.Name)
	for _, attr := range tok.Attributes {
		a.doc.SetAttr(id, attr.Name, attr.Value)
	}
	a.doc.AppendChild(a.current(), id)
	a.open = append(a.open, id)
	return id
}

func (a *domActions) InsertElementForComment(tok Token) dom.NodeID {
	// Comments seen before the html element is inserted (Initial and
	// BeforeHtml modes) are document-level: they precede the html
	// element and are recorded on the document rather than inserted
	// into the tree.
	if a.mode == InitialMode || a.mode == BeforeHtmlMode {
		a.doc.PreRootComments = append(a.doc.PreRootComments, tok.Data)
		return 0
	}
	id := a.doc.NewComment(tok.Data)
	a.doc.AppendChild(a.current(), id)
	return id
}

func (a *domActions) PopCurrentNode() {
	if len(a.open) > 1 {
		a.open = a.open[:len(a.open)-1]
	}
}

func (a *domActions) CurrentNodeName() string { return a.doc.Name(a.current()) }

func (a *domActions) NamesOfOpenElements() []string {
	names := make([]string, 0, len(a.open))
	for i := len(a.open) - 1; i >= 0; i-- {
		names = append(names, a.doc.Name(a.open[i]))
	}
	return names
}

func (a *domActions) MergeIntoHTMLNode(attrs []Attribute) {
	conv := make([]dom.Attr, len(attrs))
	for i, at := range attrs {
		conv[i] = dom.Attr{Name: at.Name, Value: at.Value}
	}
	a.doc.MergeAttrs(a.doc.Root, conv)
}

func (a *domActions) InsertCharacter(r rune) {
	cur := a.current()
	kids := a.doc.Children(cur)
	if len(kids) > 0 && a.doc.Kind(kids[len(kids)-1]) == dom.TextKind {
		a.doc.AppendData(kids[len(kids)-1], string(r))
		return
	}
	text := a.doc.NewText(string(r))
	a.doc.AppendChild(cur, text)
}

func (a *domActions) SetTokenizerState(s State) { a.tok.SetState(s) }

func (a *domActions) StoreOriginalInsertionMode(m InsertionMode) { a.origMode = m }
func (a *domActions) OriginalInsertionMode() InsertionMode       { return a.origMode }
func (a *domActions) CurrentInsertionMode() InsertionMode        { return a.mode }
func (a *domActions) SetCurrentInsertionMode(m InsertionMode)    { a.mode = m }

func (a *domActions) PushHeadAsCurrentOpenElement() {
	// Caller is expected to have already inserted <head>; this pushes
	// it back onto the open-elements stack without re-inserting it
	// into the tree (used by the "after head" fallback paths).
	kids := a.doc.Children(a.current())
	for i := len(kids) - 1; i >= 0; i-- {
		if a.doc.Kind(kids[i]) == dom.ElementKind && a.doc.Name(kids[i]) == "head" {
			a.open = append(a.open, kids[i])
			return
		}
	}
}

func (a *domActions) RemoveFromOpenElements(name string) {
	for i := len(a.open) - 1; i >= 0; i-- {
		if a.doc.Name(a.open[i]) == name {
			a.open = append(a.open[:i], a.open[i+1:]...)
			return
		}
	}
}

// ReconstructActiveFormattingElements is a no-op placeholder: nothing
// in the implemented subset populates a formatting-element list yet.
func (a *domActions) ReconstructActiveFormattingElements() {}

func (a *domActions) SetFramesetOK(ok bool) { a.frameset = ok }
func (a *domActions) SetFosterParenting(on bool) { a.foster = on }
