package domxml

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dpotapov/miniweb/dom"
)

func TestDumpRendersElementsAttributesAndText(t *testing.T) {
	doc := dom.NewDocument()

	body := doc.NewElement("body")
	doc.SetAttr(body, "class", "main")
	doc.AppendChild(doc.Root, body)

	p := doc.NewElement("p")
	doc.AppendChild(body, p)

	text := doc.NewText("hello")
	doc.AppendChild(p, text)

	out, err := Dump(doc)
	require.NoError(t, err)

	assert.True(t, strings.Contains(out, `<html>`))
	assert.True(t, strings.Contains(out, `<body class="main">`))
	assert.True(t, strings.Contains(out, `<p>hello</p>`))
}

func TestDumpRendersComments(t *testing.T) {
	doc := dom.NewDocument()
	c := doc.NewComment("note")
	doc.AppendChild(doc.Root, c)

	out, err := Dump(doc)
	require.NoError(t, err)
	assert.True(t, strings.Contains(out, "<!--note-->"))
}
