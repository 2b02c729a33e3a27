package session

import "errors"

// Local validation failures. These never reach the network.
var (
	// ErrEmptyMessage rejects blank or whitespace-only chat input.
	ErrEmptyMessage = errors.New("message is empty")

	// ErrBusy rejects an operation while another request of the same kind
	// is still in flight. At most one outstanding request per session.
	ErrBusy = errors.New("a request is already in flight")

	// ErrNoPriorMonth rejects a comparison for the first trend point or an
	// unknown month. Comparison needs a predecessor month.
	ErrNoPriorMonth = errors.New("not enough prior data")
)
