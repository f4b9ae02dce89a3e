package assist

// State is the lifecycle state of a site's pending command.
type State uint8

const (
	StateIdle State = iota
	StateInFlight
	StateSuccess
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateInFlight:
		return "in-flight"
	case StateSuccess:
		return "success"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Command is one pending rewrite: what to do and where to put the result.
type Command struct {
	ID          uint64
	Site        SiteKind
	Instruction string
	Selection   Selection
}

// Result is what Execute produced for a command.
type Result struct {
	Command Command
	// Text is the trimmed replacement; empty when Err is set.
	Text string
	Err  error
}

// Outcome reports what Finish (or a failed Begin) did.
type Outcome struct {
	Command Command
	State   State
	// Applied is set when the buffer text changed.
	Applied bool
	// Ignored is set for results the site no longer tracks.
	Ignored bool
	Err     error
	Message string
}
