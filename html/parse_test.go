package html

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dpotapov/miniweb/dom"
)

// findChild returns the first child of parent with the given element
// name, or the zero NodeID if none matches.
func findChild(doc *dom.Document, parent dom.NodeID, name string) dom.NodeID {
	for _, c := range doc.Children(parent) {
		if doc.Kind(c) == dom.ElementKind && doc.Name(c) == name {
			return c
		}
	}
	return 0
}

// elementNames returns the element-kind children of parent, in order.
func elementNames(doc *dom.Document, parent dom.NodeID) []string {
	var names []string
	for _, c := range doc.Children(parent) {
		if doc.Kind(c) == dom.ElementKind {
			names = append(names, doc.Name(c))
		}
	}
	return names
}

func textContent(doc *dom.Document, parent dom.NodeID) string {
	var s string
	for _, c := range doc.Children(parent) {
		if doc.Kind(c) == dom.TextKind {
			s += doc.Data(c)
		}
	}
	return s
}

func TestParseDoctypeHTML5SetsNoQuirks(t *testing.T) {
	doc := Parse([]byte("<!DOCTYPE html>"))
	require.True(t, doc.HasDoctype)
	assert.Equal(t, "html", doc.Doctype.Name)
	assert.Equal(t, dom.NoQuirks, doc.QuirksMode)
}

func TestParseDoctypeWithPublicIdentifierSetsQuirks(t *testing.T) {
	doc := Parse([]byte(`<!DOCTYPE html PUBLIC "HTML">`))
	assert.Equal(t, dom.Quirks, doc.QuirksMode)
}

func TestParseAdjacentPTagsProducesTwoSiblings(t *testing.T) {
	doc := Parse([]byte("<p>hello<p>world"))

	body := findChild(doc, doc.Root, "body")
	require.NotZero(t, body)

	ps := elementNames(doc, body)
	require.Equal(t, []string{"p", "p"}, ps)

	children := doc.Children(body)
	assert.Equal(t, "hello", textContent(doc, children[0]))
	assert.Equal(t, "world", textContent(doc, children[1]))
}

func TestParseProducesHeadAndBody(t *testing.T) {
	doc := Parse([]byte("<p>hello<p>world"))

	assert.Equal(t, "html", doc.Name(doc.Root))
	require.NotZero(t, findChild(doc, doc.Root, "head"))
	require.NotZero(t, findChild(doc, doc.Root, "body"))
}

// Tokenization plus tree construction must terminate (no loop, no
// panic) for a range of inputs, including malformed and empty ones.
func TestParseTerminatesOnVariousInputs(t *testing.T) {
	inputs := []string{
		"",
		"<html>",
		"</p></p></p>",
		"<div><div><div>",
		"<!DOCTYPE html><html><head><title>t</title></head><body><p>x</p></body></html>",
		"<table><tr><td>cell</td></tr></table>",
		"<frameset><frame></frameset>",
		"<script>var x = 1 < 2;</script>",
		"&amp;&#65;&#x41;",
		"<p>\x00null</p>",
	}
	for _, in := range inputs {
		in := in
		t.Run(in, func(t *testing.T) {
			assert.NotPanics(t, func() {
				Parse([]byte(in))
			})
		})
	}
}

// countEOF drives the tokenizer directly (bypassing tree construction)
// and counts EndOfFile tokens: exactly one must be emitted, last.
func countEOF(t *testing.T, input string) ([]Token, int) {
	t.Helper()
	var toks []Token
	tok := NewTokenizer([]byte(input), func(tk Token) {
		toks = append(toks, tk)
	}, func(*ParseError) {})
	tok.Run()

	eofCount := 0
	for _, tk := range toks {
		if tk.Kind == EndOfFileToken {
			eofCount++
		}
	}
	return toks, eofCount
}

func TestTokenizerEmitsExactlyOneTrailingEOF(t *testing.T) {
	for _, in := range []string{
		"",
		"hello",
		"<p>hello</p>",
		"<!-- comment --><div a=\"1\" b='2'>text</div>",
	} {
		toks, eofCount := countEOF(t, in)
		require.NotEmpty(t, toks)
		assert.Equal(t, 1, eofCount, "input %q", in)
		assert.Equal(t, EndOfFileToken, toks[len(toks)-1].Kind, "input %q", in)
	}
}

func TestTokenizerEmitsStartAndEndTags(t *testing.T) {
	toks, _ := countEOF(t, "<div class=\"a\">x</div>")

	require.GreaterOrEqual(t, len(toks), 3)
	assert.Equal(t, StartTagToken, toks[0].Kind)
	assert.Equal(t, "div", toks[0].Name)
	require.Len(t, toks[0].Attributes, 1)
	assert.Equal(t, "class", toks[0].Attributes[0].Name)
	assert.Equal(t, "a", toks[0].Attributes[0].Value)

	var sawEndTag bool
	for _, tk := range toks {
		if tk.Kind == EndTagToken && tk.Name == "div" {
			sawEndTag = true
		}
	}
	assert.True(t, sawEndTag)
}

func TestTokenizerCharacterTokensAreOneCodepointEach(t *testing.T) {
	toks, _ := countEOF(t, "hi")
	var chars []rune
	for _, tk := range toks {
		if tk.Kind == CharacterToken {
			chars = append(chars, tk.Codepoint)
		}
	}
	assert.Equal(t, []rune{'h', 'i'}, chars)
}

func TestTokenizerSelfClosingEndTagEmitsParseError(t *testing.T) {
	var errs []ErrorKind
	tok := NewTokenizer([]byte("<p></p/>"), func(Token) {}, func(e *ParseError) {
		errs = append(errs, e.Kind)
	})
	tok.Run()
	assert.Contains(t, errs, EndTagWithTrailingSolidus)
}

func TestTokenizerNullCharacterBecomesReplacementCharacter(t *testing.T) {
	toks, _ := countEOF(t, "a\x00b")
	require.Len(t, toks, 4) // 'a', U+FFFD, 'b', EOF
	assert.Equal(t, 'a', toks[0].Codepoint)
	assert.Equal(t, rune(0xFFFD), toks[1].Codepoint)
	assert.Equal(t, 'b', toks[2].Codepoint)
}

func TestParseRecordsPreRootComments(t *testing.T) {
	doc := Parse([]byte("<!-- before --><!DOCTYPE html><p>x"))
	assert.Equal(t, []string{" before "}, doc.PreRootComments)
}

func TestQuirksModeDetection(t *testing.T) {
	cases := []struct {
		name     string
		doctype  string
		expected dom.QuirksMode
	}{
		{"html5", "<!DOCTYPE html>", dom.NoQuirks},
		{"quirky public id", `<!DOCTYPE html PUBLIC "html">`, dom.Quirks},
		{"non-html name", `<!DOCTYPE foo>`, dom.Quirks},
		{
			"html4 transitional with system id",
			`<!DOCTYPE html PUBLIC "-//W3C//DTD HTML 4.01 Transitional//EN" "http://www.w3.org/TR/html4/loose.dtd">`,
			dom.LimitedQuirks,
		},
		{
			"html4 transitional without system id",
			`<!DOCTYPE html PUBLIC "-//W3C//DTD HTML 4.01 Transitional//EN">`,
			dom.Quirks,
		},
		{
			"xhtml1 transitional without system id",
			`<!DOCTYPE html PUBLIC "-//W3C//DTD XHTML 1.0 Transitional//EN">`,
			dom.LimitedQuirks,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			doc := Parse([]byte(c.doctype))
			assert.Equal(t, c.expected, doc.QuirksMode)
		})
	}
}

func TestHasElementInScope(t *testing.T) {
	names := []string{"p", "div", "body", "html"}
	assert.True(t, hasElementInScope(names, "p", defaultScope))
	assert.True(t, hasElementInScope(names, "div", defaultScope))
	assert.False(t, hasElementInScope(names, "table", defaultScope))

	tableBounded := []string{"td", "tr", "table"}
	assert.True(t, hasElementInScope(tableBounded, "td", tableScope))
	assert.False(t, hasElementInScope([]string{"td", "table", "tr"}, "tr", tableScope))
}

func TestScriptContentIsNotTokenizedAsMarkup(t *testing.T) {
	doc := Parse([]byte("<script>var x = 1 < 2;</script>"))
	head := findChild(doc, doc.Root, "head")
	require.NotZero(t, head)

	script := findChild(doc, head, "script")
	require.NotZero(t, script)
	assert.Equal(t, "var x = 1 < 2;", textContent(doc, script))
}

func TestParseOptionsScriptingAffectsNoscript(t *testing.T) {
	// With scripting off, noscript content is parsed as markup; a <p>
	// is not allowed in head, so it closes the noscript element and
	// ends up in body.
	scriptingOff := Parse([]byte("<noscript><p>hi</p></noscript>"))
	head := findChild(scriptingOff, scriptingOff.Root, "head")
	noscript := findChild(scriptingOff, head, "noscript")
	require.NotZero(t, noscript)
	assert.Empty(t, scriptingOff.Children(noscript))
	body := findChild(scriptingOff, scriptingOff.Root, "body")
	require.NotZero(t, body)
	p := findChild(scriptingOff, body, "p")
	require.NotZero(t, p)
	assert.Equal(t, "hi", textContent(scriptingOff, p))

	scriptingOn := Parse([]byte("<noscript>raw &amp; text</noscript>"), WithScripting(true))
	head2 := findChild(scriptingOn, scriptingOn.Root, "head")
	noscript2 := findChild(scriptingOn, head2, "noscript")
	require.NotZero(t, noscript2)
	assert.Equal(t, "raw &amp; text", textContent(scriptingOn, noscript2))
}

func TestParseCollectsErrorsViaCallback(t *testing.T) {
	var kinds []ErrorKind
	Parse([]byte("<p></p/>"), WithErrorCallback(func(e *ParseError) {
		kinds = append(kinds, e.Kind)
	}))
	assert.Contains(t, kinds, EndTagWithTrailingSolidus)
}
