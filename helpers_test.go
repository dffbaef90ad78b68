package loreyawen

// testKeys returns the nwkskey/appskey pair used throughout spec.md's
// concrete scenarios: nwkskey = 00 11 22 ... FF, appskey = FF EE ... 00.
func testKeys() (nwkskey, appskey AES128Key) {
	for i := 0; i < 16; i++ {
		nwkskey[i] = byte(i) * 0x11
		appskey[i] = byte(15-i) * 0x11
	}
	return nwkskey, appskey
}
