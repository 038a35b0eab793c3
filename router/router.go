package router

import "github.com/khushparag/agentic-learning-coach/core"

// Router combines the static routing table with the keyword classifier and
// the minimum-confidence threshold the Orchestrator uses to decide whether
// a natural-language guess is trustworthy enough to act on (spec §4.5 mode
// 3, default 0.3 per §6's configuration surface).
type Router struct {
	Table         *Table
	Classifier    *Classifier
	MinConfidence float64
}

// Option configures a Router at construction time.
type Option func(*Router)

// WithMinConfidence overrides the default 0.3 minimum confidence.
func WithMinConfidence(min float64) Option {
	return func(r *Router) { r.MinConfidence = min }
}

// WithKeywordTable swaps in a product-tuned keyword table instead of
// DefaultKeywordTable.
func WithKeywordTable(keywords KeywordTable, declOrder []core.Intent) Option {
	return func(r *Router) { r.Classifier = NewClassifier(r.Table, keywords, declOrder) }
}

// New builds a Router over DefaultTable and DefaultKeywordTable, then
// applies opts.
func New(opts ...Option) *Router {
	table := DefaultTable()
	r := &Router{
		Table:         table,
		Classifier:    NewClassifier(table, DefaultKeywordTable(), core.RoutableIntents),
		MinConfidence: 0.3,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RouteIntent is the total Intent→AgentType lookup (spec §4.3a).
func (r *Router) RouteIntent(intent core.Intent) (core.AgentType, bool) {
	return r.Table.Route(intent)
}

// ClassifyMessage runs the keyword classifier over free text (spec §4.3b).
func (r *Router) ClassifyMessage(message string) Classification {
	return r.Classifier.Classify(message)
}
