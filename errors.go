package loreyawen

import "errors"

// Input-shape and session-exhaustion errors are programmer bugs: a correct
// caller pre-validates payload sizes and never seals past session
// exhaustion. Seal reports the two below as ordinary errors (not panics) so
// a caller can still recover, but they are never expected to occur for a
// spec-conforming caller. The internal length guards of the stream cipher
// (buffer over MaxStreamBufferSize) and of computeMIC (header+payload over
// 255 bytes) panic instead; Seal's MaxPayloadSize check keeps both out of
// reach.
var (
	// ErrPayloadTooLarge is returned by Seal when plaintext exceeds
	// MaxPayloadSize.
	ErrPayloadTooLarge = errors.New("loreyawen: payload exceeds max payload size")

	// ErrSessionExhausted is returned by Seal when the session's counter
	// for the given direction is already at Exhausted.
	ErrSessionExhausted = errors.New("loreyawen: session frame counter is exhausted")
)

// ErrNoFrame is the single, cause-collapsing error Open returns for every
// untrusted-input validation failure: malformed bytes, wrong MHDR/FPort,
// address mismatch, a reserved/exhausted recovered counter, or MIC
// mismatch. The core does not distinguish these to the caller, so that no
// oracle about why a frame was rejected is ever exposed.
var ErrNoFrame = errors.New("loreyawen: no valid frame")
