package loreyawen

// SessionState is the mutable capability Seal and Open borrow for the
// duration of a single call. Implementations own the actual storage
// (in-memory, Redis, SQL, ...); the core only reads keys/address and the
// relevant direction's counter at the start of a call, and writes the
// counter back once all other checks have succeeded.
//
// Concurrent calls over the same SessionState are a programmer error: the
// core does not itself synchronize access. Callers sharing one SessionState
// across goroutines must serialize calls (e.g. with a mutex) or use a
// per-device SessionState.
type SessionState interface {
	// NwkSKey returns the network session key used to key the MIC.
	NwkSKey() AES128Key
	// AppSKey returns the application session key used to key the stream
	// cipher.
	AppSKey() AES128Key
	// DevAddr returns the device address this session is bound to.
	DevAddr() DevAddr
	// FrameCounter returns the current counter for the given direction.
	FrameCounter(direction Direction) FrameCounter
	// SetFrameCounter stores a new counter value for the given direction.
	// The core calls this only after a call has fully succeeded.
	SetFrameCounter(direction Direction, value FrameCounter)
}

// MemorySession is a bare in-memory SessionState, useful for tests and for
// single-process callers that don't need persistence across restarts.
type MemorySession struct {
	Nwkskey AES128Key
	Appskey AES128Key
	Addr    DevAddr

	uplinkCounter   FrameCounter
	downlinkCounter FrameCounter
}

// NewMemorySession creates an in-memory session with both counters at 0.
func NewMemorySession(nwkskey, appskey AES128Key, addr DevAddr) *MemorySession {
	return &MemorySession{Nwkskey: nwkskey, Appskey: appskey, Addr: addr}
}

// NwkSKey implements SessionState.
func (s *MemorySession) NwkSKey() AES128Key { return s.Nwkskey }

// AppSKey implements SessionState.
func (s *MemorySession) AppSKey() AES128Key { return s.Appskey }

// DevAddr implements SessionState.
func (s *MemorySession) DevAddr() DevAddr { return s.Addr }

// FrameCounter implements SessionState.
func (s *MemorySession) FrameCounter(direction Direction) FrameCounter {
	if direction == Uplink {
		return s.uplinkCounter
	}
	return s.downlinkCounter
}

// SetFrameCounter implements SessionState.
func (s *MemorySession) SetFrameCounter(direction Direction, value FrameCounter) {
	if direction == Uplink {
		s.uplinkCounter = value
	} else {
		s.downlinkCounter = value
	}
}
