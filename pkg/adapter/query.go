package adapter

// Query is the opaque contract between the query-builder layer and the
// adapters: SQL text plus an ordered positional parameter list. The
// adapter layer never inspects or rewrites the text beyond prefixing it
// for EXPLAIN.
type Query interface {
	SQL() string
	Args() []any
}

// RawQuery is the trivial Query implementation for hand-written SQL.
type RawQuery struct {
	Text      string
	Arguments []any
}

// SQL returns the query text.
func (q RawQuery) SQL() string {
	return q.Text
}

// Args returns the ordered positional parameters.
func (q RawQuery) Args() []any {
	return q.Arguments
}

// Raw wraps SQL text and parameters as a Query.
func Raw(text string, args ...any) RawQuery {
	return RawQuery{Text: text, Arguments: args}
}
