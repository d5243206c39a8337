package html

// dispatch drives one token through the insertion-mode state machine,
// honoring the "delegation with override" pattern: a handler may
// recursively call another mode's handler through a modeOverrideActions
// wrapper so that CurrentInsertionMode() keeps reporting the delegating
// mode while the token is actually processed by the other mode's logic.
func dispatch(a Actions, tok Token) {
	switch a.CurrentInsertionMode() {
	case InitialMode:
		initialMode(a, tok)
	case BeforeHtmlMode:
		beforeHtmlMode(a, tok)
	case BeforeHeadMode:
		beforeHeadMode(a, tok)
	case InHeadMode:
		inHeadMode(a, tok)
	case InHeadNoscriptMode:
		inHeadNoscriptMode(a, tok)
	case AfterHeadMode:
		afterHeadMode(a, tok)
	case InBodyMode:
		inBodyMode(a, tok)
	case TextMode:
		textMode(a, tok)
	case InTableMode:
		inTableMode(a, tok)
	case InTableTextMode:
		inTableTextMode(a, tok)
	case AfterBodyMode:
		afterBodyMode(a, tok)
	case InFramesetMode:
		inFramesetMode(a, tok)
	case AfterFramesetMode:
		afterFramesetMode(a, tok)
	case AfterAfterBodyMode:
		afterAfterBodyMode(a, tok)
	}
}

func genericRawTextParse(a Actions, tok Token, tokenizerState State) {
	a.InsertElementForTag(tok)
	a.SetTokenizerState(tokenizerState)
	a.StoreOriginalInsertionMode(a.CurrentInsertionMode())
	a.SetCurrentInsertionMode(TextMode)
}

func initialMode(a Actions, tok Token) {
	switch tok.Kind {
	case CharacterToken:
		if isBoringWhitespace(tok.Codepoint) {
			return
		}
	case CommentToken:
		a.InsertElementForComment(tok)
		return
	case DoctypeToken:
		a.SetDoctypeFrom(tok)
		a.SetQuirksMode(quirksModeFromDoctype(tok))
		a.SetCurrentInsertionMode(BeforeHtmlMode)
		return
	}
	a.SetCurrentInsertionMode(BeforeHtmlMode)
	dispatch(a, tok)
}

func beforeHtmlMode(a Actions, tok Token) {
	switch tok.Kind {
	case DoctypeToken:
		return
	case CommentToken:
		a.InsertElementForComment(tok)
		return
	case CharacterToken:
		if isBoringWhitespace(tok.Codepoint) {
			return
		}
	case StartTagToken:
		if tok.Name == "html" {
			a.InsertElementForTag(tok)
			a.SetCurrentInsertionMode(BeforeHeadMode)
			return
		}
	case EndTagToken:
		switch tok.Name {
		case "head", "body", "html", "br":
		default:
			return
		}
	}
	a.SetCurrentInsertionMode(BeforeHeadMode)
	dispatch(a, tok)
}

func beforeHeadMode(a Actions, tok Token) {
	switch tok.Kind {
	case CharacterToken:
		if isBoringWhitespace(tok.Codepoint) {
			return
		}
	case CommentToken:
		a.InsertElementForComment(tok)
		return
	case DoctypeToken:
		return
	case StartTagToken:
		switch tok.Name {
		case "html":
			inBodyMode(withModeOverride(a, BeforeHeadMode), tok)
			return
		case "head":
			a.InsertElementForTag(tok)
			a.SetCurrentInsertionMode(InHeadMode)
			return
		}
	case EndTagToken:
		switch tok.Name {
		case "head", "body", "html", "br":
		default:
			return
		}
	}
	a.InsertElementForTag(Token{Kind: StartTagToken, Name: "head"})
	a.SetCurrentInsertionMode(InHeadMode)
	dispatch(a, tok)
}

func inHeadMode(a Actions, tok Token) {
	switch tok.Kind {
	case CharacterToken:
		if isBoringWhitespace(tok.Codepoint) {
			a.InsertCharacter(tok.Codepoint)
			return
		}
	case CommentToken:
		a.InsertElementForComment(tok)
		return
	case DoctypeToken:
		return
	case StartTagToken:
		switch tok.Name {
		case "html":
			inBodyMode(withModeOverride(a, InHeadMode), tok)
			return
		case "base", "basefont", "bgsound", "link", "meta":
			a.InsertElementForTag(tok)
			a.PopCurrentNode()
			return
		case "title":
			genericRawTextParse(a, tok, RCDATAState)
			return
		case "noscript":
			if a.Scripting() {
				genericRawTextParse(a, tok, RAWTEXTState)
				return
			}
			a.InsertElementForTag(tok)
			a.SetCurrentInsertionMode(InHeadNoscriptMode)
			return
		case "noframes", "style":
			genericRawTextParse(a, tok, RAWTEXTState)
			return
		case "script":
			genericRawTextParse(a, tok, ScriptDataState)
			return
		case "head":
			return
		}
	case EndTagToken:
		switch tok.Name {
		case "head":
			a.PopCurrentNode()
			a.SetCurrentInsertionMode(AfterHeadMode)
			return
		case "body", "html", "br":
		default:
			return
		}
	}
	a.PopCurrentNode()
	a.SetCurrentInsertionMode(AfterHeadMode)
	dispatch(a, tok)
}

func inHeadNoscriptMode(a Actions, tok Token) {
	switch tok.Kind {
	case DoctypeToken:
		return
	case StartTagToken:
		switch tok.Name {
		case "html":
			inBodyMode(withModeOverride(a, InHeadNoscriptMode), tok)
			return
		case "basefont", "bgsound", "link", "meta", "noframes", "style":
			inHeadMode(withModeOverride(a, InHeadNoscriptMode), tok)
			return
		}
	case EndTagToken:
		if tok.Name == "noscript" {
			a.PopCurrentNode()
			a.SetCurrentInsertionMode(InHeadMode)
			return
		}
		if tok.Name != "br" {
			return
		}
	case CommentToken:
		inHeadMode(withModeOverride(a, InHeadNoscriptMode), tok)
		return
	case CharacterToken:
		if isBoringWhitespace(tok.Codepoint) {
			inHeadMode(withModeOverride(a, InHeadNoscriptMode), tok)
			return
		}
	}
	a.PopCurrentNode()
	a.SetCurrentInsertionMode(InHeadMode)
	dispatch(a, tok)
}

func afterHeadMode(a Actions, tok Token) {
	switch tok.Kind {
	case CharacterToken:
		if isBoringWhitespace(tok.Codepoint) {
			a.InsertCharacter(tok.Codepoint)
			return
		}
	case CommentToken:
		a.InsertElementForComment(tok)
		return
	case DoctypeToken:
		return
	case StartTagToken:
		switch tok.Name {
		case "html":
			inBodyMode(withModeOverride(a, AfterHeadMode), tok)
			return
		case "body":
			a.InsertElementForTag(tok)
			a.SetFramesetOK(false)
			a.SetCurrentInsertionMode(InBodyMode)
			return
		case "frameset":
			a.InsertElementForTag(tok)
			a.SetCurrentInsertionMode(InFramesetMode)
			return
		case "base", "basefont", "bgsound", "link", "meta", "noframes",
			"script", "style", "title":
			a.PushHeadAsCurrentOpenElement()
			inHeadMode(withModeOverride(a, AfterHeadMode), tok)
			a.RemoveFromOpenElements("head")
			return
		case "head":
			return
		}
	case EndTagToken:
		switch tok.Name {
		case "body", "html", "br":
		default:
			return
		}
	}
	a.InsertElementForTag(Token{Kind: StartTagToken, Name: "body"})
	a.SetCurrentInsertionMode(InBodyMode)
	dispatch(a, tok)
}

func inBodyMode(a Actions, tok Token) {
	switch tok.Kind {
	case CharacterToken:
		if tok.Codepoint == 0 {
			return
		}
		a.InsertCharacter(tok.Codepoint)
		if !isBoringWhitespace(tok.Codepoint) {
			a.SetFramesetOK(false)
		}
		return

	case CommentToken:
		a.InsertElementForComment(tok)
		return

	case DoctypeToken:
		return

	case StartTagToken:
		switch tok.Name {
		case "html":
			a.MergeIntoHTMLNode(tok.Attributes)
			return
		case "base", "basefont", "bgsound", "link", "meta", "noframes",
			"script", "style", "title":
			inHeadMode(withModeOverride(a, InBodyMode), tok)
			return
		case "body":
			return
		case "frameset":
			return
		}

		if closesPElements[tok.Name] {
			closeAPElementIfInScope(a)
		}

		switch tok.Name {
		case "h1", "h2", "h3", "h4", "h5", "h6":
			if isHeadingName(a.CurrentNodeName()) {
				a.PopCurrentNode()
			}
			a.InsertElementForTag(tok)
			return
		case "li":
			closeListItemIfInScope(a)
			a.InsertElementForTag(tok)
			return
		case "dd", "dt":
			closeDdDtIfInScope(a)
			a.InsertElementForTag(tok)
			return
		case "table":
			a.InsertElementForTag(tok)
			a.SetCurrentInsertionMode(resetInsertionMode(a))
			return
		}

		a.InsertElementForTag(tok)
		if immediatelyPoppedElements[tok.Name] {
			a.PopCurrentNode()
		}
		if tok.Name != "image" && !immediatelyPoppedElements[tok.Name] {
			a.SetFramesetOK(false)
		}
		return

	case EndTagToken:
		switch tok.Name {
		case "body", "html":
			if hasElementInScope(a.NamesOfOpenElements(), "body", defaultScope) {
				a.SetCurrentInsertionMode(AfterBodyMode)
				if tok.Name == "html" {
					dispatch(a, tok)
				}
			}
			return
		case "p":
			closeAPElementIfInScope(a)
			return
		case "li":
			if hasElementInScope(a.NamesOfOpenElements(), "li", listItemScope) {
				generateImpliedEndTags(a, "li")
				popUntilName(a, "li")
			}
			return
		case "dd", "dt":
			if hasElementInScope(a.NamesOfOpenElements(), tok.Name, defaultScope) {
				generateImpliedEndTags(a, tok.Name)
				popUntilName(a, tok.Name)
			}
			return
		case "h1", "h2", "h3", "h4", "h5", "h6":
			if anyHeadingInScope(a) {
				generateImpliedEndTags(a, "")
				popUntilHeading(a)
			}
			return
		}

		// Any other end tag: walk the open elements most-recent-first.
		// Hitting a special element before the match means the end tag
		// is a structural violation and is ignored.
		for _, name := range a.NamesOfOpenElements() {
			if name == tok.Name {
				generateImpliedEndTags(a, tok.Name)
				popUntilName(a, tok.Name)
				return
			}
			if specialElements[name] {
				return
			}
		}
		return

	case EndOfFileToken:
		return
	}
}

// resetInsertionMode implements the "reset insertion mode" algorithm:
// scan the open-elements stack most-recent-first, and the first match
// of table/head/body/frameset/html wins; default InBody.
func resetInsertionMode(a Actions) InsertionMode {
	for _, name := range a.NamesOfOpenElements() {
		switch name {
		case "table":
			return InTableMode
		case "head":
			return InHeadMode
		case "body":
			return InBodyMode
		case "frameset":
			return InFramesetMode
		case "html":
			return AfterHeadMode
		}
	}
	return InBodyMode
}

func isHeadingName(name string) bool {
	switch name {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		return true
	}
	return false
}

func anyHeadingInScope(a Actions) bool {
	for _, h := range []string{"h1", "h2", "h3", "h4", "h5", "h6"} {
		if hasElementInScope(a.NamesOfOpenElements(), h, defaultScope) {
			return true
		}
	}
	return false
}

func popUntilHeading(a Actions) {
	for {
		name := a.CurrentNodeName()
		a.PopCurrentNode()
		if isHeadingName(name) {
			return
		}
	}
}

// closeAPElementIfInScope implements "close a p element": generate
// implied end tags except "p", then pop until "p" is gone.
func closeAPElementIfInScope(a Actions) {
	if !hasElementInScope(a.NamesOfOpenElements(), "p", buttonScope) {
		return
	}
	generateImpliedEndTags(a, "p")
	popUntilName(a, "p")
}

func closeListItemIfInScope(a Actions) {
	if !hasElementInScope(a.NamesOfOpenElements(), "li", listItemScope) {
		return
	}
	generateImpliedEndTags(a, "li")
	popUntilName(a, "li")
}

func closeDdDtIfInScope(a Actions) {
	for _, name := range []string{"dd", "dt"} {
		if hasElementInScope(a.NamesOfOpenElements(), name, defaultScope) {
			generateImpliedEndTags(a, name)
			popUntilName(a, name)
		}
	}
}

// generateImpliedEndTags pops elements whose name is in
// impliedEndTagNames and isn't except, until the current node doesn't
// qualify.
func generateImpliedEndTags(a Actions, except string) {
	for {
		name := a.CurrentNodeName()
		if name == except || !impliedEndTagNames[name] {
			return
		}
		a.PopCurrentNode()
	}
}

// popUntilName pops the open-elements stack (including the match)
// until an element named target has been popped, or the stack would
// otherwise run out.
func popUntilName(a Actions, target string) {
	for i := 0; i < 10000; i++ {
		name := a.CurrentNodeName()
		a.PopCurrentNode()
		if name == target {
			return
		}
		if len(a.NamesOfOpenElements()) <= 1 {
			return
		}
	}
}

func textMode(a Actions, tok Token) {
	switch tok.Kind {
	case CharacterToken:
		a.InsertCharacter(tok.Codepoint)
	case EndOfFileToken:
		a.PopCurrentNode()
		a.SetCurrentInsertionMode(a.OriginalInsertionMode())
		dispatch(a, tok)
	case EndTagToken:
		a.PopCurrentNode()
		a.SetCurrentInsertionMode(a.OriginalInsertionMode())
	}
}

func inTableMode(a Actions, tok Token) {
	switch tok.Kind {
	case CharacterToken:
		a.SetFosterParenting(true)
		a.StoreOriginalInsertionMode(InTableMode)
		a.SetCurrentInsertionMode(InTableTextMode)
		dispatch(a, tok)
		return
	case CommentToken:
		a.InsertElementForComment(tok)
		return
	case StartTagToken:
		if tok.Name == "table" {
			if hasElementInScope(a.NamesOfOpenElements(), "table", tableScope) {
				popUntilName(a, "table")
			}
			a.InsertElementForTag(tok)
			return
		}
	case EndTagToken:
		if tok.Name == "table" {
			if hasElementInScope(a.NamesOfOpenElements(), "table", tableScope) {
				popUntilName(a, "table")
				a.SetCurrentInsertionMode(InBodyMode)
			}
			return
		}
	}
	a.SetFosterParenting(true)
	inBodyMode(withModeOverride(a, InTableMode), tok)
	a.SetFosterParenting(false)
}

func inTableTextMode(a Actions, tok Token) {
	if tok.Kind == CharacterToken {
		a.InsertCharacter(tok.Codepoint)
		return
	}
	a.SetCurrentInsertionMode(a.OriginalInsertionMode())
	dispatch(a, tok)
}

func afterBodyMode(a Actions, tok Token) {
	switch tok.Kind {
	case CharacterToken:
		if isBoringWhitespace(tok.Codepoint) {
			inBodyMode(withModeOverride(a, AfterBodyMode), tok)
			return
		}
	case CommentToken:
		return
	case DoctypeToken:
		return
	case EndTagToken:
		if tok.Name == "html" {
			a.SetCurrentInsertionMode(AfterAfterBodyMode)
			return
		}
	case EndOfFileToken:
		return
	}
	a.SetCurrentInsertionMode(InBodyMode)
	dispatch(a, tok)
}

func inFramesetMode(a Actions, tok Token) {
	switch tok.Kind {
	case CharacterToken:
		if isBoringWhitespace(tok.Codepoint) {
			a.InsertCharacter(tok.Codepoint)
		}
		return
	case CommentToken:
		a.InsertElementForComment(tok)
		return
	case DoctypeToken:
		return
	case StartTagToken:
		switch tok.Name {
		case "html":
			inBodyMode(withModeOverride(a, InFramesetMode), tok)
			return
		case "frameset":
			a.InsertElementForTag(tok)
			return
		case "frame":
			a.InsertElementForTag(tok)
			a.PopCurrentNode()
			return
		case "noframes":
			inHeadMode(withModeOverride(a, InFramesetMode), tok)
			return
		}
	case EndTagToken:
		if tok.Name == "frameset" {
			a.PopCurrentNode()
			if len(a.NamesOfOpenElements()) > 0 && a.CurrentNodeName() != "frameset" {
				a.SetCurrentInsertionMode(AfterFramesetMode)
			}
			return
		}
	case EndOfFileToken:
		return
	}
}

func afterFramesetMode(a Actions, tok Token) {
	switch tok.Kind {
	case CharacterToken:
		if isBoringWhitespace(tok.Codepoint) {
			a.InsertCharacter(tok.Codepoint)
		}
		return
	case CommentToken:
		a.InsertElementForComment(tok)
		return
	case DoctypeToken:
		return
	case StartTagToken:
		switch tok.Name {
		case "html":
			inBodyMode(withModeOverride(a, AfterFramesetMode), tok)
			return
		case "noframes":
			inHeadMode(withModeOverride(a, AfterFramesetMode), tok)
			return
		}
	case EndTagToken:
		if tok.Name == "html" {
			a.SetCurrentInsertionMode(AfterAfterBodyMode)
			return
		}
	case EndOfFileToken:
		return
	}
}

func afterAfterBodyMode(a Actions, tok Token) {
	switch tok.Kind {
	case CommentToken:
		return
	case DoctypeToken:
		return
	case CharacterToken:
		if isBoringWhitespace(tok.Codepoint) {
			inBodyMode(withModeOverride(a, AfterAfterBodyMode), tok)
			return
		}
	case StartTagToken:
		if tok.Name == "html" {
			inBodyMode(withModeOverride(a, AfterAfterBodyMode), tok)
			return
		}
	case EndOfFileToken:
		return
	}
	a.SetCurrentInsertionMode(InBodyMode)
	dispatch(a, tok)
}
