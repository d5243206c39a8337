package html

import (
	"log/slog"

	"github.com/dpotapov/miniweb/dom"
)

// ParseOption configures Parse.
type ParseOption func(*parseConfig)

type parseConfig struct {
	logger    *slog.Logger
	scripting bool
	onError   OnError
}

// WithLogger sets the logger used to report parse errors at Debug
// level. Defaults to slog.Default().
func WithLogger(l *slog.Logger) ParseOption {
	return func(c *parseConfig) { c.logger = l }
}

// WithScripting enables scripting-aware behavior (currently only
// affects whether <noscript> content is treated as RAWTEXT).
func WithScripting(on bool) ParseOption {
	return func(c *parseConfig) { c.scripting = on }
}

// WithErrorCallback additionally forwards every tokenizer parse error
// to cb, on top of the default logging behavior.
func WithErrorCallback(cb OnError) ParseOption {
	return func(c *parseConfig) { c.onError = cb }
}

// Parse tokenizes input and drives it through the insertion-mode tree
// constructor, returning the resulting document. Parse errors never
// abort parsing — Parse always returns a document for any byte
// sequence, surfacing problems only through logging/the optional error
// callback.
func Parse(input []byte, opts ...ParseOption) *dom.Document {
	cfg := parseConfig{logger: slog.Default()}
	for _, opt := range opts {
		opt(&cfg)
	}

	doc := dom.NewDocument()

	actions := newDOMActions(doc, nil)
	actions.scripting = cfg.scripting

	onError := func(e *ParseError) {
		cfg.logger.Debug("html parse error", slog.String("kind", e.Kind.String()),
			slog.Int("line", e.Location.Line), slog.Int("column", e.Location.Column))
		if cfg.onError != nil {
			cfg.onError(e)
		}
	}

	onEmit := func(t Token) {
		dispatch(actions, t)
	}

	tok := NewTokenizer(input, onEmit, onError)
	actions.tok = tok

	tok.Run()

	return doc
}
