package html

// scopeKind selects which has-element-in-X-scope variant to run. The
// boundary set is hard-coded per variant, but all variants dispatch
// through one parameterized function rather than four near-duplicate
// walks.
type scopeKind int

const (
	defaultScope scopeKind = iota
	buttonScope
	listItemScope
	tableScope
	selectScope
)

var defaultScopeBoundary = map[string]bool{
	"applet": true, "caption": true, "html": true, "table": true, "td": true,
	"th": true, "marquee": true, "object": true, "template": true,
}

var buttonScopeExtra = map[string]bool{"button": true}

var listItemScopeExtra = map[string]bool{"ol": true, "ul": true}

var tableScopeBoundary = map[string]bool{"html": true, "table": true, "template": true}

var selectScopeExcluded = map[string]bool{"optgroup": true, "option": true}

// hasElementInScope walks names (most-recent-first open-elements stack
// names) looking for target, stopping at the first scope-boundary
// element.
func hasElementInScope(names []string, target string, kind scopeKind) bool {
	for _, name := range names {
		if name == target {
			return true
		}
		switch kind {
		case defaultScope:
			if defaultScopeBoundary[name] {
				return false
			}
		case buttonScope:
			if defaultScopeBoundary[name] || buttonScopeExtra[name] {
				return false
			}
		case listItemScope:
			if defaultScopeBoundary[name] || listItemScopeExtra[name] {
				return false
			}
		case tableScope:
			if tableScopeBoundary[name] {
				return false
			}
		case selectScope:
			if !selectScopeExcluded[name] {
				return false
			}
		}
	}
	return false
}

// closesPElements is the set of start tags that implicitly close an
// open <p> element. Notably it includes "p" itself, which is what
// turns "<p>a<p>b" into two sibling paragraphs.
var closesPElements = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true,
	"details": true, "div": true, "dl": true, "fieldset": true,
	"figcaption": true, "figure": true, "footer": true, "form": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"header": true, "hgroup": true, "hr": true, "main": true, "menu": true,
	"nav": true, "ol": true, "p": true, "pre": true, "section": true,
	"summary": true, "table": true, "ul": true,
}

// impliedEndTagNames is the set the "generate implied end tags"
// algorithm pops while the current node's name is a member (and isn't
// the optional exception).
var impliedEndTagNames = map[string]bool{
	"dd": true, "dt": true, "li": true, "optgroup": true,
	"option": true, "p": true, "rb": true, "rp": true, "rt": true, "rtc": true,
}

// specialElements is the ~80-entry "special" table used to detect
// structural violations when scanning for matching end tags.
var specialElements = map[string]bool{
	"address": true, "applet": true, "area": true, "article": true,
	"aside": true, "base": true, "basefont": true, "bgsound": true,
	"blockquote": true, "body": true, "br": true, "button": true,
	"caption": true, "center": true, "col": true, "colgroup": true,
	"dd": true, "details": true, "dir": true, "div": true, "dl": true,
	"dt": true, "embed": true, "fieldset": true, "figcaption": true,
	"figure": true, "footer": true, "form": true, "frame": true,
	"frameset": true, "h1": true, "h2": true, "h3": true, "h4": true,
	"h5": true, "h6": true, "head": true, "header": true, "hgroup": true,
	"hr": true, "html": true, "iframe": true, "img": true, "input": true,
	"keygen": true, "li": true, "link": true, "listing": true, "main": true,
	"marquee": true, "menu": true, "menuitem": true, "meta": true, "nav": true,
	"noembed": true, "noframes": true, "noscript": true, "object": true,
	"ol": true, "p": true, "param": true, "plaintext": true, "pre": true,
	"script": true, "section": true, "select": true, "source": true,
	"style": true, "summary": true, "table": true, "tbody": true, "td": true,
	"template": true, "textarea": true, "tfoot": true, "th": true,
	"thead": true, "title": true, "tr": true, "track": true, "ul": true,
	"wbr": true, "xmp": true,
}

// immediatelyPoppedElements are void-ish elements whose start tag is
// inserted and then immediately popped back off the open-elements
// stack (they never contain children per this state machine's scope).
var immediatelyPoppedElements = map[string]bool{
	"area": true, "br": true, "embed": true, "img": true, "keygen": true,
	"wbr": true, "input": true, "param": true, "source": true, "track": true,
	"hr": true, "base": true, "basefont": true, "bgsound": true, "link": true,
	"meta": true,
}

func isBoringWhitespace(r rune) bool {
	switch r {
	case '\t', '\n', '\f', '\r', ' ':
		return true
	}
	return false
}
