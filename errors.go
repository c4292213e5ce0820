package magnet

import "errors"

var ErrInvalidNet = errors.New("invalid net")

// InvalidNetError reports a malformed bipartite structure or a dangling
// reference found at construction.
type InvalidNetError struct {
	NetID  string
	Reason string
}

func (e *InvalidNetError) Error() string {
	if e.NetID == "" {
		return "invalid net: " + e.Reason
	}
	return "invalid net " + e.NetID + ": " + e.Reason
}

func (e *InvalidNetError) Unwrap() error { return ErrInvalidNet }
