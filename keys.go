package loreyawen

import (
	"database/sql/driver"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
)

// AES128Key represents a 128 bit AES key (nwkskey or appskey).
type AES128Key [16]byte

// String implements fmt.Stringer.
func (k AES128Key) String() string {
	return hex.EncodeToString(k[:])
}

// MarshalText implements encoding.TextMarshaler.
func (k AES128Key) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *AES128Key) UnmarshalText(text []byte) error {
	b, err := hex.DecodeString(string(text))
	if err != nil {
		return err
	}
	if len(b) != len(k) {
		return fmt.Errorf("loreyawen: exactly %d bytes are expected", len(k))
	}
	copy(k[:], b)
	return nil
}

// Scan implements sql.Scanner, so session stores can persist keys directly.
func (k *AES128Key) Scan(src interface{}) error {
	b, ok := src.([]byte)
	if !ok {
		return errors.New("loreyawen: []byte type expected")
	}
	if len(b) != len(k) {
		return fmt.Errorf("loreyawen: []byte must have length %d", len(k))
	}
	copy(k[:], b)
	return nil
}

// Value implements driver.Valuer.
func (k AES128Key) Value() (driver.Value, error) {
	return k[:], nil
}

// DevAddr represents the 32 bit device address. On the wire it is encoded
// little-endian.
type DevAddr uint32

// String implements fmt.Stringer.
func (a DevAddr) String() string {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, uint32(a))
	return hex.EncodeToString(b)
}

// MIC represents the (truncated) message integrity code.
type MIC [4]byte

// String implements fmt.Stringer.
func (m MIC) String() string {
	return hex.EncodeToString(m[:])
}

// FrameCounter is the 32 bit, per-direction monotonic counter. The value
// Exhausted is reserved: it marks a session as terminally spent and must
// never be sealed or accepted.
type FrameCounter uint32

// Exhausted is the reserved frame-counter value 0xFFFFFFFF.
const Exhausted FrameCounter = 0xFFFFFFFF
