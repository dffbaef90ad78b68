package loreyawen

import "crypto/aes"

// AES128 is the block-cipher capability the stream engine is parameterized
// on. The core never holds a key schedule itself; it asks an AES128 value
// to encrypt a single 16 byte block under a given key. Any correct,
// constant-time AES-128 implementation is a valid substitute. An incorrect
// or non-constant-time implementation silently degrades the security of the
// whole scheme — this is a known hazard, documented rather than defended
// against.
//
// A single AES128 value is stateless with respect to any particular
// session: it is safe to share one instance across many Seal/Open calls
// over many different sessions.
type AES128 interface {
	// Encrypt encrypts the single 16 byte block src into dst under key.
	Encrypt(key AES128Key, dst, src *[16]byte)
}

// stdAES128 is the default AES128 capability, backed by the standard
// library's crypto/aes.
type stdAES128 struct{}

// NewStdAES128 returns the default AES128 capability backed by crypto/aes.
func NewStdAES128() AES128 {
	return stdAES128{}
}

// Encrypt implements AES128.
func (stdAES128) Encrypt(key AES128Key, dst, src *[16]byte) {
	block, err := aes.NewCipher(key[:])
	if err != nil {
		// key is always exactly 16 bytes (AES128Key is [16]byte), so
		// aes.NewCipher can only fail on a key-length mismatch.
		panic("loreyawen: aes.NewCipher: " + err.Error())
	}
	block.Encrypt(dst[:], src[:])
}
