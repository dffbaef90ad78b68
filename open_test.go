package loreyawen

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestOpen(t *testing.T) {
	Convey("Given a sender and a matching receiver session", t, func() {
		nwkskey, appskey := testKeys()
		sender := NewMemorySession(nwkskey, appskey, DevAddr(0xDEADBEEF))
		receiver := NewMemorySession(nwkskey, appskey, DevAddr(0xDEADBEEF))
		aesImpl := NewStdAES128()

		Convey("Round-trip: open(seal(pt)) == pt (P1)", func() {
			sealed, err := Seal(aesImpl, sender, Uplink, []byte("Testolope"))
			So(err, ShouldBeNil)

			plaintext, err := Open(aesImpl, receiver, Uplink, sealed)
			So(err, ShouldBeNil)
			So(string(plaintext), ShouldEqual, "Testolope")
		})

		Convey("Opening advances the counter by exactly 1 (P2)", func() {
			sealed, _ := Seal(aesImpl, sender, Uplink, []byte("hi"))
			_, err := Open(aesImpl, receiver, Uplink, sealed)
			So(err, ShouldBeNil)
			So(receiver.FrameCounter(Uplink), ShouldEqual, FrameCounter(1))
		})

		Convey("A replayed frame fails once the counter has advanced past it (P3)", func() {
			sealed, _ := Seal(aesImpl, sender, Uplink, []byte("hi"))
			_, err := Open(aesImpl, receiver, Uplink, sealed)
			So(err, ShouldBeNil)

			_, err = Open(aesImpl, receiver, Uplink, sealed)
			So(err, ShouldEqual, ErrNoFrame)
		})

		Convey("A frame sealed with the wrong direction fails to open (P4)", func() {
			sealed, _ := Seal(aesImpl, sender, Uplink, []byte("hi"))
			_, err := Open(aesImpl, receiver, Downlink, sealed)
			So(err, ShouldEqual, ErrNoFrame)
		})

		Convey("A frame for a different address fails to open (P5)", func() {
			other := NewMemorySession(nwkskey, appskey, DevAddr(0xCAFEBABE))
			sealed, _ := Seal(aesImpl, sender, Uplink, []byte("hi"))
			_, err := Open(aesImpl, other, Uplink, sealed)
			So(err, ShouldEqual, ErrNoFrame)
		})

		Convey("Tampering with any byte causes a MIC failure (P6)", func() {
			sealed, _ := Seal(aesImpl, sender, Uplink, []byte("hi"))

			Convey("tampered header byte", func() {
				tampered := append([]byte{}, sealed...)
				tampered[1] ^= 0xFF
				_, err := Open(aesImpl, receiver, Uplink, tampered)
				So(err, ShouldEqual, ErrNoFrame)
			})

			Convey("tampered ciphertext byte", func() {
				tampered := append([]byte{}, sealed...)
				tampered[headerSize] ^= 0xFF
				_, err := Open(aesImpl, receiver, Uplink, tampered)
				So(err, ShouldEqual, ErrNoFrame)
			})

			Convey("tampered MIC byte", func() {
				tampered := append([]byte{}, sealed...)
				tampered[len(tampered)-1] ^= 0xFF
				_, err := Open(aesImpl, receiver, Uplink, tampered)
				So(err, ShouldEqual, ErrNoFrame)
			})
		})

		Convey("A frame sealed within the 2^16 counter window opens (P7)", func() {
			sender.SetFrameCounter(Uplink, 5)
			receiver.SetFrameCounter(Uplink, 5)
			sealed, _ := Seal(aesImpl, sender, Uplink, []byte("hi"))

			receiver.SetFrameCounter(Uplink, 0) // expected next is far behind
			_, err := Open(aesImpl, receiver, Uplink, sealed)
			So(err, ShouldBeNil)
		})

		Convey("A frame sealed >= 2^16 steps ahead fails (P7)", func() {
			sender.SetFrameCounter(Uplink, 0x10000)
			sealed, _ := Seal(aesImpl, sender, Uplink, []byte("hi"))

			receiver.SetFrameCounter(Uplink, 0)
			_, err := Open(aesImpl, receiver, Uplink, sealed)
			So(err, ShouldEqual, ErrNoFrame)
		})

		Convey("Opening when the recovered counter is the reserved value fails (P8)", func() {
			receiver.SetFrameCounter(Uplink, 0xFFFF0000)
			// any frame whose wire LSBs are 0xFFFF recovers to Exhausted
			f := newRawFrame()
			f.setAddress(receiver.DevAddr())
			f.setFcntLSBs(0xFFFF)
			b := f.serialize()

			_, err := Open(aesImpl, receiver, Uplink, b)
			So(err, ShouldEqual, ErrNoFrame)
			So(receiver.FrameCounter(Uplink), ShouldEqual, FrameCounter(0xFFFF0000))
		})

		Convey("Malformed bytes fail without touching the session (P8-adjacent)", func() {
			before := receiver.FrameCounter(Uplink)
			_, err := Open(aesImpl, receiver, Uplink, []byte{0, 1, 2})
			So(err, ShouldEqual, ErrNoFrame)
			So(receiver.FrameCounter(Uplink), ShouldEqual, before)
		})
	})
}
