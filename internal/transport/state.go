package transport

// State is the connection state of the push channel.
type State int

const (
	Disconnected State = iota
	Connecting
	Connected
	Authenticating
	Ready
)

func (s State) String() string {
	switch s {
	case Disconnected:
		return "disconnected"
	case Connecting:
		return "connecting"
	case Connected:
		return "connected"
	case Authenticating:
		return "authenticating"
	case Ready:
		return "ready"
	default:
		return "unknown"
	}
}
