package html

import "strings"

import "github.com/dpotapov/miniweb/dom"

// quirkyPublicIdentifiers is the exact-match list of public identifiers
// that trigger quirks mode on their own.
var quirkyPublicIdentifiers = []string{
	"-//w3o//dtd w3 html strict 3.0//en//",
	"-/w3c/dtd html 4.0 transitional/en",
	"html",
}

// quirkyStartsOfPublicIdentifier is the prefix list that triggers
// quirks mode regardless of what follows.
var quirkyStartsOfPublicIdentifier = []string{
	"+//silmaril//dtd html pro v0r11 19970101//",
	"-//as//dtd html 3.0 aswedit + extensions//",
	"-//advasoft ltd//dtd html 3.0 aswedit + extensions//",
	"-//ietf//dtd html 2.0 level 1//",
	"-//ietf//dtd html 2.0 level 2//",
	"-//ietf//dtd html 2.0 strict level 1//",
	"-//ietf//dtd html 2.0 strict level 2//",
	"-//ietf//dtd html 2.0 strict//",
	"-//ietf//dtd html 2.0//",
	"-//ietf//dtd html 2.1e//",
	"-//ietf//dtd html 3.0//",
	"-//ietf//dtd html 3.2 final//",
	"-//ietf//dtd html 3.2//",
	"-//ietf//dtd html 3//",
	"-//ietf//dtd html level 0//",
	"-//ietf//dtd html level 1//",
	"-//ietf//dtd html level 2//",
	"-//ietf//dtd html level 3//",
	"-//ietf//dtd html strict level 0//",
	"-//ietf//dtd html strict level 1//",
	"-//ietf//dtd html strict level 2//",
	"-//ietf//dtd html strict level 3//",
	"-//ietf//dtd html strict//",
	"-//ietf//dtd html//",
	"-//metrius//dtd metrius presentational//",
	"-//microsoft//dtd internet explorer 2.0 html strict//",
	"-//microsoft//dtd internet explorer 2.0 html//",
	"-//microsoft//dtd internet explorer 2.0 tables//",
	"-//microsoft//dtd internet explorer 3.0 html strict//",
	"-//microsoft//dtd internet explorer 3.0 html//",
	"-//microsoft//dtd internet explorer 3.0 tables//",
	"-//netscape comm. corp.//dtd html//",
	"-//netscape comm. corp.//dtd strict html//",
	"-//o'reilly and associates//dtd html 2.0//",
	"-//o'reilly and associates//dtd html extended 1.0//",
	"-//o'reilly and associates//dtd html extended relaxed 1.0//",
	"-//sq//dtd html 2.0 hotmetal + extensions//",
	"-//softquad software//dtd hotmetal pro 6.0::19990601::extensions to html 4.0//",
	"-//softquad//dtd hotmetal pro 4.0::19971010::extensions to html 4.0//",
	"-//spyglass//dtd html 2.0 extended//",
	"-//sun microsystems corp.//dtd hotjava html//",
	"-//sun microsystems corp.//dtd hotjava strict html//",
	"-//w3c//dtd html 3 1995-03-24//",
	"-//w3c//dtd html 3.2 draft//",
	"-//w3c//dtd html 3.2 final//",
	"-//w3c//dtd html 3.2//",
	"-//w3c//dtd html 3.2s draft//",
	"-//w3c//dtd html 4.0 frameset//",
	"-//w3c//dtd html 4.0 transitional//",
	"-//w3c//dtd html experimental 19960712//",
	"-//w3c//dtd html experimental 970421//",
	"-//w3c//dtd w3 html//",
	"-//w3o//dtd w3 html 3.0//",
	"-//webtechs//dtd mozilla html 2.0//",
	"-//webtechs//dtd mozilla html//",
}

const ibmXHTMLDTD = "-//ibm//dtd xhtml 1.1 multimedia//en"

var limitedQuirksStarts = []string{
	"-//w3c//dtd xhtml 1.0 frameset//",
	"-//w3c//dtd xhtml 1.0 transitional//",
}

var limitedQuirksStartsRequiringSystemID = []string{
	"-//w3c//dtd html 4.01 frameset//",
	"-//w3c//dtd html 4.01 transitional//",
}

func hasPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

func exactMatch(s string, candidates []string) bool {
	for _, c := range candidates {
		if s == c {
			return true
		}
	}
	return false
}

func isQuirkyPublicIdentifier(publicID string) bool {
	lower := strings.ToLower(publicID)
	return exactMatch(lower, quirkyPublicIdentifiers) || hasPrefix(lower, quirkyStartsOfPublicIdentifier)
}

// isQuirkyWhenSystemIdentifierIsEmpty reports whether publicID carries
// one of the HTML 4.01 frameset/transitional prefixes, which are full
// quirks when no system identifier is present and limited quirks when
// one is.
func isQuirkyWhenSystemIdentifierIsEmpty(publicID string) bool {
	return hasPrefix(strings.ToLower(publicID), limitedQuirksStartsRequiringSystemID)
}

// quirksModeFromDoctype implements the "quirks-mode detection"
// algorithm over a doctype token's name and identifiers.
func quirksModeFromDoctype(tok Token) dom.QuirksMode {
	publicID := strings.ToLower(tok.PublicID)
	systemID := strings.ToLower(tok.SystemID)

	if tok.ForceQuirks || !strings.EqualFold(tok.Name, "html") {
		return dom.Quirks
	}
	if exactMatch(publicID, quirkyPublicIdentifiers) || hasPrefix(publicID, quirkyStartsOfPublicIdentifier) {
		return dom.Quirks
	}
	if systemID == ibmXHTMLDTD {
		return dom.Quirks
	}
	if !tok.HasSystemID && isQuirkyWhenSystemIdentifierIsEmpty(publicID) {
		return dom.Quirks
	}
	if hasPrefix(publicID, limitedQuirksStarts) {
		return dom.LimitedQuirks
	}
	if tok.HasSystemID && hasPrefix(publicID, limitedQuirksStartsRequiringSystemID) {
		return dom.LimitedQuirks
	}
	return dom.NoQuirks
}
