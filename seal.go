package loreyawen

// Seal assembles, encrypts, and authenticates plaintext into a sealed
// frame, then advances the session's frame counter for direction.
//
// Seal fails with ErrPayloadTooLarge if len(plaintext) > MaxPayloadSize, and
// with ErrSessionExhausted if the session's counter for direction is
// already Exhausted — both are programmer errors; a spec-conforming caller
// never triggers them. On any such failure the session is left unchanged.
// Once the encrypt-then-MAC steps have both succeeded, the counter is
// advanced unconditionally before the bytes are returned, so the session
// is never left partially advanced.
func Seal(aesImpl AES128, session SessionState, direction Direction, plaintext []byte) ([]byte, error) {
	if len(plaintext) > MaxPayloadSize {
		return nil, ErrPayloadTooLarge
	}

	fcnt := session.FrameCounter(direction)
	if fcnt == Exhausted {
		return nil, ErrSessionExhausted
	}

	addr := session.DevAddr()

	frame := newRawFrame()
	frame.setAddress(addr)
	frame.setFcntLSBs(fcnt)
	frame.setPayload(plaintext)

	// encrypt-then-MAC: the MIC is computed over the ciphertext, which is
	// the generically secure composition.
	applyStream(aesImpl, session.AppSKey(), direction, addr, fcnt, frame.payloadBytes())
	mic := computeMIC(session.NwkSKey(), direction, addr, fcnt, frame.header[:], frame.payloadBytes())
	frame.setMIC(mic)

	session.SetFrameCounter(direction, nextCounter(fcnt))

	return frame.serialize(), nil
}

// nextCounter advances fcnt by one. Since Seal already rejects fcnt ==
// Exhausted before reaching here, the only way to land on Exhausted is the
// last permitted increment (fcnt == Exhausted-1); that is intentional and
// terminally marks the session for that direction.
func nextCounter(fcnt FrameCounter) FrameCounter {
	return fcnt + 1
}
