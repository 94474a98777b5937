package session

// State is the lifecycle of a Store.
type State int

const (
	StateUninitialized State = iota
	StateLoading
	StateLoggedOut
	StateLoggedIn
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateLoading:
		return "loading"
	case StateLoggedOut:
		return "logged-out"
	case StateLoggedIn:
		return "logged-in"
	default:
		return "unknown"
	}
}
