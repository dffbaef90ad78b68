package store

import (
	"crypto/aes"

	keywrap "github.com/NickBall/go-aes-key-wrap"
	"github.com/kizzycode/loreyawen"
	"github.com/pkg/errors"
)

// KeyWrapper wraps session keys with a key-encryption-key (KEK) before they
// are handed to a Backend to persist, using RFC 3394 AES key wrap — the
// same mechanism and library the LoRaWAN backend-interfaces join-server
// uses to envelope session keys for roaming partners.
//
// When kek is empty, Wrap/Unwrap pass the key through unwrapped; this
// mirrors the join-server's behavior of returning a plain AESKey envelope
// when no KEK exists for a label.
type KeyWrapper struct{}

// Wrap wraps key under kek. If kek is empty, key is returned as-is.
func (KeyWrapper) Wrap(kek []byte, key loreyawen.AES128Key) ([]byte, error) {
	if len(kek) == 0 {
		return append([]byte{}, key[:]...), nil
	}

	block, err := aes.NewCipher(kek)
	if err != nil {
		return nil, errors.Wrap(err, "store: new kek cipher")
	}

	wrapped, err := keywrap.Wrap(block, key[:])
	if err != nil {
		return nil, errors.Wrap(err, "store: key wrap")
	}
	return wrapped, nil
}

// Unwrap reverses Wrap. If kek is empty, wrapped is expected to be a plain
// 16 byte key.
func (KeyWrapper) Unwrap(kek, wrapped []byte) (loreyawen.AES128Key, error) {
	var key loreyawen.AES128Key

	if len(kek) == 0 {
		if len(wrapped) != len(key) {
			return key, errors.New("store: plain key has unexpected length")
		}
		copy(key[:], wrapped)
		return key, nil
	}

	block, err := aes.NewCipher(kek)
	if err != nil {
		return key, errors.Wrap(err, "store: new kek cipher")
	}

	raw, err := keywrap.Unwrap(block, wrapped)
	if err != nil {
		return key, errors.Wrap(err, "store: key unwrap")
	}
	if len(raw) != len(key) {
		return key, errors.New("store: unwrapped key has unexpected length")
	}
	copy(key[:], raw)
	return key, nil
}
