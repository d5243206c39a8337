// Package dom implements the tree data model the HTML core builds:
// documents, elements, text, comments, and doctypes. Nodes live in an
// arena owned by the Document; every reference to a node elsewhere
// (notably the HTML parser's open-elements stack) is a NodeID index
// into that arena rather than a pointer, so references can never
// dangle across a mutation.
package dom

// QuirksMode describes the document's compatibility-layout mode.
type QuirksMode int

const (
	NoQuirks QuirksMode = iota
	Quirks
	LimitedQuirks
)

func (q QuirksMode) String() string {
	switch q {
	case NoQuirks:
		return "no-quirks"
	case Quirks:
		return "quirks"
	case LimitedQuirks:
		return "limited-quirks"
	default:
		return "unknown"
	}
}

// Kind distinguishes node payload types.
type Kind int

const (
	ElementKind Kind = iota
	TextKind
	CommentKind
)

// NodeID indexes into Document.nodes. The zero value is never a valid
// node; Document.Root is always a non-zero id.
type NodeID int

// Attr is a single name/value pair. Element attributes are stored in
// an ordered slice, not a map, because the tree-construction algorithm
// cares about insertion order and "first wins on duplicate".
type Attr struct {
	Name  string
	Value string
}

// node is the arena-resident record for one tree node. Only the fields
// relevant to Kind are meaningful.
type node struct {
	kind Kind

	// Element fields.
	name     string
	attrs    []Attr
	children []NodeID
	parent   NodeID

	// Text/Comment field.
	data string
}

// Doctype records the doctype declaration seen before the root element,
// if any.
type Doctype struct {
	Name       string
	PublicID   string
	SystemID   string
	ForceQuirks bool
}

// Document owns every node reachable from its root element plus any
// comments that appeared before the root, a doctype record, and the
// resulting quirks mode.
type Document struct {
	nodes []node // index 0 is unused so the zero NodeID stays invalid

	Root NodeID

	Doctype      Doctype
	HasDoctype   bool
	QuirksMode   QuirksMode
	PreRootComments []string
}

// NewDocument creates an empty document whose root is an <html> element.
func NewDocument() *Document {
	d := &Document{nodes: make([]node, 1)} // nodes[0] is the invalid sentinel
	d.Root = d.newElement("html")
	return d
}

func (d *Document) newElement(name string) NodeID {
	id := NodeID(len(d.nodes))
	d.nodes = append(d.nodes, node{kind: ElementKind, name: name})
	return id
}

// NewElement allocates a new, parentless element node and returns its id.
func (d *Document) NewElement(name string) NodeID {
	return d.newElement(name)
}

// NewText allocates a new, parentless text node.
func (d *Document) NewText(data string) NodeID {
	id := NodeID(len(d.nodes))
	d.nodes = append(d.nodes, node{kind: TextKind, data: data})
	return id
}

// NewComment allocates a new, parentless comment node.
func (d *Document) NewComment(data string) NodeID {
	id := NodeID(len(d.nodes))
	d.nodes = append(d.nodes, node{kind: CommentKind, data: data})
	return id
}

// Kind returns the node kind for id.
func (d *Document) Kind(id NodeID) Kind { return d.nodes[id].kind }

// Name returns an element's tag name; other kinds return "".
func (d *Document) Name(id NodeID) string { return d.nodes[id].name }

// Data returns a text or comment node's payload.
func (d *Document) Data(id NodeID) string { return d.nodes[id].data }

// AppendData appends to a text node's payload (used by the tokenizer's
// "insert character" operation, which coalesces adjacent characters
// into the same text node).
func (d *Document) AppendData(id NodeID, s string) { d.nodes[id].data += s }

// Parent returns id's parent, or the zero NodeID if id is parentless.
func (d *Document) Parent(id NodeID) NodeID { return d.nodes[id].parent }

// Children returns id's children in document order. The returned slice
// must not be mutated by the caller.
func (d *Document) Children(id NodeID) []NodeID { return d.nodes[id].children }

// AppendChild appends child to parent's children, reparenting child.
func (d *Document) AppendChild(parent, child NodeID) {
	d.nodes[parent].children = append(d.nodes[parent].children, child)
	d.nodes[child].parent = parent
}

// Attrs returns an element's attributes in insertion order.
func (d *Document) Attrs(id NodeID) []Attr { return d.nodes[id].attrs }

// SetAttr appends an attribute, unless an attribute with the same name
// already exists: first writer wins. This is the rule for merging
// attributes into the root html element, and holds for start-tag
// attribute lists too (duplicate attribute names within one start tag
// keep their first occurrence by tokenizer convention).
func (d *Document) SetAttr(id NodeID, name, value string) {
	for _, a := range d.nodes[id].attrs {
		if a.Name == name {
			return
		}
	}
	d.nodes[id].attrs = append(d.nodes[id].attrs, Attr{Name: name, Value: value})
}

// MergeAttrs adds each of attrs to id, first writer wins.
func (d *Document) MergeAttrs(id NodeID, attrs []Attr) {
	for _, a := range attrs {
		d.SetAttr(id, a.Name, a.Value)
	}
}

// RemoveChild removes the first occurrence of child from parent's
// children, if present.
func (d *Document) RemoveChild(parent, child NodeID) {
	kids := d.nodes[parent].children
	for i, k := range kids {
		if k == child {
			d.nodes[parent].children = append(kids[:i], kids[i+1:]...)
			d.nodes[child].parent = 0
			return
		}
	}
}
