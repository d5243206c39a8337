// Package domxml renders a dom.Document as indented XML text, for
// debugging and for tests that want to assert on a tree shape without
// walking NodeIDs by hand.
package domxml

import (
	"github.com/beevik/etree"

	"github.com/dpotapov/miniweb/dom"
)

// Dump renders doc starting at its root element as an indented XML
// document string.
func Dump(doc *dom.Document) (string, error) {
	out := etree.NewDocument()
	if doc.HasDoctype {
		out.CreateDirective("DOCTYPE " + doc.Doctype.Name)
	}
	for _, c := range doc.PreRootComments {
		out.CreateComment(c)
	}

	appendNode(&out.Element, doc, doc.Root)

	out.Indent(2)
	return out.WriteToString()
}

func appendNode(parent *etree.Element, doc *dom.Document, id dom.NodeID) {
	switch doc.Kind(id) {
	case dom.ElementKind:
		el := parent.CreateElement(doc.Name(id))
		for _, a := range doc.Attrs(id) {
			el.CreateAttr(a.Name, a.Value)
		}
		for _, child := range doc.Children(id) {
			appendNode(el, doc, child)
		}
	case dom.TextKind:
		parent.CreateText(doc.Data(id))
	case dom.CommentKind:
		parent.CreateComment(doc.Data(id))
	}
}
