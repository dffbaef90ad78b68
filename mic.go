package loreyawen

import (
	"crypto/subtle"
	"encoding/binary"

	"github.com/jacobsa/crypto/cmac"
)

// micDomainTag is the fixed first byte of the MIC context block B0.
const micDomainTag = 0x49

// buildB0 lays out the 16 byte MIC context block:
//
//	offset  size  value
//	0       1     0x49 (MIC domain tag)
//	1-4     4     0x00 0x00 0x00 0x00
//	5       1     direction octet
//	6-9     4     device address, little-endian
//	10-13   4     frame counter, little-endian
//	14      1     0x00
//	15      1     len(header)+len(payload), as a single octet
func buildB0(direction Direction, addr DevAddr, fcnt FrameCounter, totalLen int) (b0 [16]byte, ok bool) {
	if totalLen > 0xFF {
		return b0, false
	}
	b0[0] = micDomainTag
	b0[5] = byte(direction)
	binary.LittleEndian.PutUint32(b0[6:10], uint32(addr))
	binary.LittleEndian.PutUint32(b0[10:14], uint32(fcnt))
	b0[15] = byte(totalLen)
	return b0, true
}

// computeMIC computes the truncated CMAC over b0 || header || payload, keyed
// with nwkskey. It panics if len(header)+len(payload) exceeds 255 bytes,
// since that is a programmer error (input-shape failure per spec).
func computeMIC(nwkskey AES128Key, direction Direction, addr DevAddr, fcnt FrameCounter, header, payload []byte) MIC {
	b0, ok := buildB0(direction, addr, fcnt, len(header)+len(payload))
	if !ok {
		panic("loreyawen: header+payload exceeds 255 bytes")
	}

	hash, err := cmac.New(nwkskey[:])
	if err != nil {
		panic("loreyawen: cmac.New: " + err.Error())
	}
	if _, err := hash.Write(b0[:]); err != nil {
		panic("loreyawen: cmac write: " + err.Error())
	}
	if _, err := hash.Write(header); err != nil {
		panic("loreyawen: cmac write: " + err.Error())
	}
	if _, err := hash.Write(payload); err != nil {
		panic("loreyawen: cmac write: " + err.Error())
	}

	var mic MIC
	copy(mic[:], hash.Sum(nil)[0:4])
	return mic
}

// verifyMIC recomputes the MIC and compares it against expected in constant
// time. It returns false (without computing) when the length guard of
// computeMIC would have panicked, so that verify never panics on untrusted
// input.
func verifyMIC(nwkskey AES128Key, direction Direction, addr DevAddr, fcnt FrameCounter, header, payload []byte, expected MIC) bool {
	if len(header)+len(payload) > 0xFF {
		return false
	}
	got := computeMIC(nwkskey, direction, addr, fcnt, header, payload)
	return subtle.ConstantTimeCompare(got[:], expected[:]) == 1
}
