package gateway

import "errors"

var (
	// ErrAuthentication covers every credential failure during the
	// handshake. The caller sees this sentinel, never the raw token or
	// the parser's reason.
	ErrAuthentication = errors.New("authentication failed")

	// ErrNotRegistered is returned for operations on a connection the
	// registry does not know, usually after it disconnected.
	ErrNotRegistered = errors.New("connection not registered")

	// ErrOwnership is returned when a principal touches a resource
	// belonging to someone else.
	ErrOwnership = errors.New("not the owner of this resource")

	// ErrUnknownSession is returned for upload operations against a
	// session that was never opened or has already finished.
	ErrUnknownSession = errors.New("unknown upload session")

	// ErrBadChunk marks malformed upload chunks: bad index, missing
	// total, or payload over the size cap.
	ErrBadChunk = errors.New("invalid upload chunk")

	// ErrForbidden is returned when an event requires a role the
	// principal does not hold.
	ErrForbidden = errors.New("operation not permitted for this role")
)
