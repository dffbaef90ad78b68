package loreyawen

import (
	"encoding/binary"
	"errors"
)

// Fixed wire constants. The proprietary frame carries only the LoRaWAN
// "proprietary" MHDR type and a fixed version-indicator FPort; any other
// value at those offsets renders a frame unparseable.
const (
	mhdrProprietary byte = 0b111_000_00 // 0xE0
	fPortVersion    byte = 0x01

	headerSize = 8
	micSize    = 4

	// MaxMessageSize is the largest sealed frame, header+payload+mic.
	MaxMessageSize = 256
	// MaxPayloadSize is the largest plaintext/ciphertext payload.
	MaxPayloadSize = MaxMessageSize - headerSize - micSize // 244
)

// rawFrame is the transient, in-memory representation of a sealed frame:
// header || payload || mic. It is constructed and consumed within a single
// Seal or Open call; no reference to it survives the call.
type rawFrame struct {
	header  [headerSize]byte
	payload [MaxPayloadSize]byte
	pLen    int
	mic     MIC
}

// newRawFrame constructs a raw frame with the fixed MHDR/FPort octets
// already set, ready for the seal pipeline to fill in address, counter,
// and payload.
func newRawFrame() *rawFrame {
	f := &rawFrame{}
	f.header[0] = mhdrProprietary
	f.header[7] = fPortVersion
	return f
}

// parseRawFrame decodes bytes into a raw frame. It rejects anything
// shorter than 12 bytes, anything whose MHDR or FPort octet doesn't match
// the fixed proprietary values, and anything whose payload would exceed
// MaxPayloadSize.
func parseRawFrame(data []byte) (*rawFrame, error) {
	if len(data) < headerSize+micSize {
		return nil, errors.New("loreyawen: frame too short")
	}

	f := &rawFrame{}
	copy(f.header[:], data[0:headerSize])

	if f.header[0] != mhdrProprietary {
		return nil, errors.New("loreyawen: unexpected MHDR")
	}
	if f.header[7] != fPortVersion {
		return nil, errors.New("loreyawen: unexpected FPort")
	}

	payload := data[headerSize : len(data)-micSize]
	if len(payload) > MaxPayloadSize {
		return nil, errors.New("loreyawen: payload too large")
	}
	f.pLen = copy(f.payload[:], payload)

	copy(f.mic[:], data[len(data)-micSize:])
	return f, nil
}

// serialize emits header || payload[0:pLen] || mic.
func (f *rawFrame) serialize() []byte {
	out := make([]byte, 0, headerSize+f.pLen+micSize)
	out = append(out, f.header[:]...)
	out = append(out, f.payload[:f.pLen]...)
	out = append(out, f.mic[:]...)
	return out
}

// payloadBytes returns the payload region, aliasing the frame's internal
// buffer so the stream cipher can operate on it in place.
func (f *rawFrame) payloadBytes() []byte {
	return f.payload[:f.pLen]
}

// setPayload copies plaintext into the frame's payload buffer.
func (f *rawFrame) setPayload(plaintext []byte) {
	f.pLen = copy(f.payload[:], plaintext)
}

// address decodes the little-endian DevAddr from header bytes 1-4.
func (f *rawFrame) address() DevAddr {
	return DevAddr(binary.LittleEndian.Uint32(f.header[1:5]))
}

// setAddress writes the little-endian DevAddr into header bytes 1-4.
func (f *rawFrame) setAddress(addr DevAddr) {
	binary.LittleEndian.PutUint32(f.header[1:5], uint32(addr))
}

// fcntLSBs decodes the 16 wire LSBs of the frame counter from header
// bytes 5-6.
func (f *rawFrame) fcntLSBs() uint16 {
	return binary.LittleEndian.Uint16(f.header[5:7])
}

// setFcntLSBs writes the low 16 bits of fcnt into header bytes 5-6.
func (f *rawFrame) setFcntLSBs(fcnt FrameCounter) {
	binary.LittleEndian.PutUint16(f.header[5:7], uint16(fcnt))
}

// setMIC stores the tag computed by the seal pipeline.
func (f *rawFrame) setMIC(mic MIC) {
	f.mic = mic
}
