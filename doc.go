/*

Package loreyawen seals and opens authenticated, encrypted messages between
a constrained end-device and a back-end server, using a LoRaWAN-derived
proprietary frame format.

It reuses LoRaWAN's session-key security construction — an AES-CMAC
integrity code keyed with a network session key, and an AES-CTR keystream
keyed with an application session key, both bound to a per-message context
(device address, direction, frame counter) — over a compressed wire format.

See Seal and Open for the two directional transforms, and SessionState for
the capability the caller supplies to hold key/address/counter state.

*/
package loreyawen
