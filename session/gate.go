package session

// Decision is the outcome of the protected-view gate.
type Decision int

const (
	// DecisionLoading: session not settled yet, show a placeholder.
	DecisionLoading Decision = iota
	// DecisionLogin: settled with no identity, send the user to login.
	DecisionLogin
	// DecisionRender: authenticated, render protected content.
	DecisionRender
)

func (d Decision) String() string {
	switch d {
	case DecisionLoading:
		return "loading"
	case DecisionLogin:
		return "login"
	case DecisionRender:
		return "render"
	default:
		return "unknown"
	}
}

// Decide is the rule every protected view applies to the session state.
// It is pure and owns no state.
func Decide(s State) Decision {
	if s.Loading {
		return DecisionLoading
	}
	if s.Identity == nil {
		return DecisionLogin
	}
	return DecisionRender
}
