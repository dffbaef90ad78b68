package loreyawen

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestRawFrameCodec(t *testing.T) {
	Convey("Given a freshly constructed raw frame", t, func() {
		f := newRawFrame()
		f.setAddress(DevAddr(0xDEADBEEF))
		f.setFcntLSBs(7)
		f.setPayload([]byte("hello"))
		f.setMIC(MIC{1, 2, 3, 4})

		Convey("Then serialize emits header || payload || mic", func() {
			b := f.serialize()
			So(len(b), ShouldEqual, 8+5+4)
			So(b[0], ShouldEqual, byte(0xE0))
			So(b[7], ShouldEqual, byte(0x01))
		})

		Convey("Then parseRawFrame round-trips the serialized bytes", func() {
			b := f.serialize()
			parsed, err := parseRawFrame(b)
			So(err, ShouldBeNil)
			So(parsed.address(), ShouldEqual, DevAddr(0xDEADBEEF))
			So(parsed.fcntLSBs(), ShouldEqual, uint16(7))
			So(parsed.payloadBytes(), ShouldResemble, []byte("hello"))
			So(parsed.mic, ShouldResemble, MIC{1, 2, 3, 4})
		})
	})

	Convey("Given bytes shorter than 12", t, func() {
		_, err := parseRawFrame(make([]byte, 11))
		Convey("Then parse fails", func() {
			So(err, ShouldNotBeNil)
		})
	})

	Convey("Given bytes with a wrong MHDR", t, func() {
		f := newRawFrame()
		f.header[0] = 0x00
		b := f.serialize()
		_, err := parseRawFrame(b)
		Convey("Then parse fails", func() {
			So(err, ShouldNotBeNil)
		})
	})

	Convey("Given bytes with a wrong FPort", t, func() {
		f := newRawFrame()
		f.header[7] = 0x00
		b := f.serialize()
		_, err := parseRawFrame(b)
		Convey("Then parse fails", func() {
			So(err, ShouldNotBeNil)
		})
	})

	Convey("Given a payload larger than MaxPayloadSize", t, func() {
		data := make([]byte, headerSize+MaxPayloadSize+1+micSize)
		data[0] = mhdrProprietary
		data[7] = fPortVersion
		_, err := parseRawFrame(data)
		Convey("Then parse fails", func() {
			So(err, ShouldNotBeNil)
		})
	})

	Convey("Given a frame with the maximum payload size", t, func() {
		f := newRawFrame()
		f.setPayload(make([]byte, MaxPayloadSize))
		b := f.serialize()
		Convey("Then serialize produces exactly MaxMessageSize bytes", func() {
			So(len(b), ShouldEqual, MaxMessageSize)
		})
		Convey("Then it parses back successfully", func() {
			_, err := parseRawFrame(b)
			So(err, ShouldBeNil)
		})
	})
}
