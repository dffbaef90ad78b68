// Package store provides persistent SessionState capabilities for the
// loreyawen codec core: a Backend interface plus Redis- and SQL-backed
// implementations, and a Session wrapper that adapts a Backend record to
// loreyawen.SessionState.
package store

import (
	"context"
	"errors"
	"sync"

	"github.com/kizzycode/loreyawen"
	log "github.com/sirupsen/logrus"
)

// ErrNotFound is returned by a Backend's Load when no record exists yet
// for the given device address.
var ErrNotFound = errors.New("store: no session for device address")

// Record is the persisted representation of one device's session: wrapped
// keys, address, and both direction counters. Keys are stored wrapped under
// the KEK (see wrap.go); when the KEK is empty, KeyWrapper passes them
// through and the record holds the plain 16 byte keys.
type Record struct {
	DevAddr         loreyawen.DevAddr
	KEKLabel        string
	WrappedNwkSKey  []byte
	WrappedAppSKey  []byte
	UplinkCounter   uint32
	DownlinkCounter uint32
}

// Backend is the persistence contract that concrete stores (Redis, SQL)
// satisfy.
type Backend interface {
	Load(ctx context.Context, devAddr loreyawen.DevAddr) (*Record, error)
	Save(ctx context.Context, rec *Record) error
}

// Session adapts a Backend-persisted Record into a loreyawen.SessionState,
// unwrapping keys once at Load time and writing the counter back to the
// Backend on every SetFrameCounter call.
//
// A Session instance is safe for use by a single Seal/Open call at a time;
// concurrent callers sharing the same device address should share one
// Session instance (the internal mutex serializes counter updates) rather
// than each loading their own.
type Session struct {
	mu      sync.Mutex
	ctx     context.Context
	backend Backend
	rec     *Record

	nwkskey AES128Key
	appskey AES128Key
}

// AES128Key is a local alias kept for readability in this package; it is
// identical to loreyawen.AES128Key.
type AES128Key = loreyawen.AES128Key

// Load fetches the record for devAddr from backend and unwraps its keys
// with kek (pass nil if the record was provisioned without a KEK).
func Load(ctx context.Context, backend Backend, devAddr loreyawen.DevAddr, kek []byte) (*Session, error) {
	rec, err := backend.Load(ctx, devAddr)
	if err != nil {
		return nil, err
	}

	var wrapper KeyWrapper
	nwkskey, err := wrapper.Unwrap(kek, rec.WrappedNwkSKey)
	if err != nil {
		return nil, err
	}
	appskey, err := wrapper.Unwrap(kek, rec.WrappedAppSKey)
	if err != nil {
		return nil, err
	}

	return &Session{
		ctx:     ctx,
		backend: backend,
		rec:     rec,
		nwkskey: nwkskey,
		appskey: appskey,
	}, nil
}

// Provision wraps nwkskey/appskey under kek (tagged kekLabel, for the
// operator's own bookkeeping) and saves a fresh record through backend,
// returning a ready-to-use Session.
func Provision(ctx context.Context, backend Backend, devAddr loreyawen.DevAddr, nwkskey, appskey AES128Key, kekLabel string, kek []byte) (*Session, error) {
	var wrapper KeyWrapper

	wrappedNwk, err := wrapper.Wrap(kek, nwkskey)
	if err != nil {
		return nil, err
	}
	wrappedApp, err := wrapper.Wrap(kek, appskey)
	if err != nil {
		return nil, err
	}

	rec := &Record{
		DevAddr:        devAddr,
		KEKLabel:       kekLabel,
		WrappedNwkSKey: wrappedNwk,
		WrappedAppSKey: wrappedApp,
	}
	if err := backend.Save(ctx, rec); err != nil {
		return nil, err
	}

	return &Session{
		ctx:     ctx,
		backend: backend,
		rec:     rec,
		nwkskey: nwkskey,
		appskey: appskey,
	}, nil
}

// NwkSKey implements loreyawen.SessionState.
func (s *Session) NwkSKey() loreyawen.AES128Key {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nwkskey
}

// AppSKey implements loreyawen.SessionState.
func (s *Session) AppSKey() loreyawen.AES128Key {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.appskey
}

// DevAddr implements loreyawen.SessionState.
func (s *Session) DevAddr() loreyawen.DevAddr {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rec.DevAddr
}

// FrameCounter implements loreyawen.SessionState.
func (s *Session) FrameCounter(direction loreyawen.Direction) loreyawen.FrameCounter {
	s.mu.Lock()
	defer s.mu.Unlock()
	if direction == loreyawen.Uplink {
		return loreyawen.FrameCounter(s.rec.UplinkCounter)
	}
	return loreyawen.FrameCounter(s.rec.DownlinkCounter)
}

// SetFrameCounter implements loreyawen.SessionState. It persists the new
// counter through the backing Backend before returning. SessionState's
// interface has no error return, so a save failure is logged rather than
// propagated — matching spec.md's "no oracle, no I/O in the core" design:
// the core itself never sees this failure, only the store layer does.
func (s *Session) SetFrameCounter(direction loreyawen.Direction, value loreyawen.FrameCounter) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if direction == loreyawen.Uplink {
		s.rec.UplinkCounter = uint32(value)
	} else {
		s.rec.DownlinkCounter = uint32(value)
	}

	if err := s.backend.Save(s.ctx, s.rec); err != nil {
		log.WithFields(log.Fields{
			"dev_addr":  s.rec.DevAddr,
			"direction": direction,
		}).WithError(err).Error("store: failed to persist frame counter")
	}
}
