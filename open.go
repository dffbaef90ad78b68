package loreyawen

// Open parses, validates, and decrypts a sealed frame, then advances the
// session's frame counter for direction.
//
// Open returns (nil, ErrNoFrame) for every untrusted-input validation
// failure — malformed bytes, a mismatched address, a reserved/exhausted
// recovered counter, or a MIC mismatch — without distinguishing the cause.
// The MIC is checked before decryption, so an attacker never gets to
// observe a decryption of ciphertext that hasn't been authenticated. The
// session is left unchanged unless the call fully succeeds, in which case
// the counter is advanced to recovered+1 before the plaintext is returned.
func Open(aesImpl AES128, session SessionState, direction Direction, frameBytes []byte) ([]byte, error) {
	frame, err := parseRawFrame(frameBytes)
	if err != nil {
		return nil, ErrNoFrame
	}

	if frame.address() != session.DevAddr() {
		return nil, ErrNoFrame
	}

	next := session.FrameCounter(direction)
	recovered := recoverFrameCounter(frame.fcntLSBs(), next)
	if recovered == Exhausted {
		return nil, ErrNoFrame
	}

	if !verifyMIC(session.NwkSKey(), direction, frame.address(), recovered, frame.header[:], frame.payloadBytes(), frame.mic) {
		return nil, ErrNoFrame
	}

	applyStream(aesImpl, session.AppSKey(), direction, frame.address(), recovered, frame.payloadBytes())

	session.SetFrameCounter(direction, saturatingIncrement(recovered))

	plaintext := make([]byte, frame.pLen)
	copy(plaintext, frame.payloadBytes())
	return plaintext, nil
}

// saturatingIncrement advances a recovered counter by one, saturating at
// Exhausted rather than wrapping.
func saturatingIncrement(fcnt FrameCounter) FrameCounter {
	if fcnt == Exhausted {
		return Exhausted
	}
	return fcnt + 1
}
