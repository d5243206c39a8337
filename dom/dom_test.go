package dom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewDocumentHasHTMLRoot(t *testing.T) {
	d := NewDocument()
	assert.Equal(t, "html", d.Name(d.Root))
	assert.Equal(t, ElementKind, d.Kind(d.Root))
}

func TestAppendChildReparents(t *testing.T) {
	d := NewDocument()
	body := d.NewElement("body")
	d.AppendChild(d.Root, body)

	assert.Equal(t, d.Root, d.Parent(body))
	assert.Equal(t, []NodeID{body}, d.Children(d.Root))
}

func TestSetAttrFirstWins(t *testing.T) {
	d := NewDocument()
	d.SetAttr(d.Root, "lang", "en")
	d.SetAttr(d.Root, "lang", "fr")

	attrs := d.Attrs(d.Root)
	assert.Len(t, attrs, 1)
	assert.Equal(t, "en", attrs[0].Value)
}

func TestRemoveChild(t *testing.T) {
	d := NewDocument()
	body := d.NewElement("body")
	d.AppendChild(d.Root, body)
	d.RemoveChild(d.Root, body)

	assert.Empty(t, d.Children(d.Root))
	assert.Equal(t, NodeID(0), d.Parent(body))
}

func TestAppendDataCoalescesText(t *testing.T) {
	d := NewDocument()
	text := d.NewText("hel")
	d.AppendData(text, "lo")
	assert.Equal(t, "hello", d.Data(text))
}
