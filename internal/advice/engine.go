package advice

// Engine runs all registered rules against a Context and collects the
// resulting advice.
type Engine struct {
	rules []Rule
}

// NewEngine creates a new advice engine with all built-in rules registered.
func NewEngine() *Engine {
	return &Engine{
		rules: []Rule{
			LateNightCutoff,
			OverBudget,
			DriftingSessions,
			UntaggedSessions,
			SparseLogging,
			AppConcentration,
			JournalHygiene,
			CompulsiveReopens,
		},
	}
}

// Run executes all registered rules against the given context and returns
// the collected advice sorted by impact score (highest first).
func (e *Engine) Run(ctx *Context) []Advice {
	var all []Advice
	for _, rule := range e.rules {
		all = append(all, rule(ctx)...)
	}
	return Rank(all)
}
