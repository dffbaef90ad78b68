package loreyawen

import "encoding/binary"

// streamDomainTag is the fixed first byte of the stream-cipher counter
// block 0 IV.
const streamDomainTag = 0x01

// maxStreamBlocks bounds the keystream to 255 blocks (4080 bytes), since
// the block-index counter lives entirely in the IV's low byte: letting it
// overflow into the next-higher byte would collide the keystreams of
// different messages (same rationale as spec.md §4.3).
const maxStreamBlocks = 255

// MaxStreamBufferSize is the largest buffer applyStream will accept.
const MaxStreamBufferSize = maxStreamBlocks * 16

// buildCounterIV lays out the 16 byte stream-cipher counter-block-0 IV:
//
//	offset  size  value
//	0       1     0x01 (stream domain tag)
//	1-4     4     0x00 0x00 0x00 0x00
//	5       1     direction octet
//	6-9     4     device address, little-endian
//	10-13   4     frame counter, little-endian
//	14      1     0x00
//	15      1     0x01 (first keystream block index)
func buildCounterIV(direction Direction, addr DevAddr, fcnt FrameCounter) [16]byte {
	var iv [16]byte
	iv[0] = streamDomainTag
	iv[5] = byte(direction)
	binary.LittleEndian.PutUint32(iv[6:10], uint32(addr))
	binary.LittleEndian.PutUint32(iv[10:14], uint32(fcnt))
	iv[15] = 0x01
	return iv
}

// applyStream XORs the AES-CTR keystream, derived from appskey and the
// (direction, addr, fcnt) context, into buf in place. Encryption and
// decryption are the identical operation: applying it twice to the same
// buffer is the identity (P9). buf must be at most MaxStreamBufferSize
// bytes; longer buffers are rejected as an input-shape error.
func applyStream(aesImpl AES128, appskey AES128Key, direction Direction, addr DevAddr, fcnt FrameCounter, buf []byte) {
	if len(buf) > MaxStreamBufferSize {
		panic("loreyawen: stream buffer exceeds 255 blocks")
	}

	iv := buildCounterIV(direction, addr, fcnt)
	var keystream, block [16]byte

	blocks := (len(buf) + 15) / 16
	for i := 0; i < blocks; i++ {
		block = iv
		block[15] = iv[15] + byte(i)

		aesImpl.Encrypt(appskey, &keystream, &block)

		start := i * 16
		end := start + 16
		if end > len(buf) {
			end = len(buf)
		}
		for j := start; j < end; j++ {
			buf[j] ^= keystream[j-start]
		}
	}
}
