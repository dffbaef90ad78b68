package loreyawen

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestRecoverFrameCounterProperties(t *testing.T) {
	Convey("Given next=0", t, func() {
		var next FrameCounter = 0

		Convey("A wire lsbs of 0 recovers to 0", func() {
			So(recoverFrameCounter(0, next), ShouldEqual, FrameCounter(0))
		})

		Convey("A wire lsbs within the window recovers forward (P7)", func() {
			So(recoverFrameCounter(5, next), ShouldEqual, FrameCounter(5))
		})

		Convey("A wire lsbs of 0xFFFF recovers to 0xFFFF, not wrapping back to next", func() {
			So(recoverFrameCounter(0xFFFF, next), ShouldEqual, FrameCounter(0xFFFF))
		})
	})

	Convey("Given next=0x1_0005 (one window past a wrap)", t, func() {
		var next FrameCounter = 0x10005

		Convey("A wire lsbs equal to next's LSBs recovers to next", func() {
			So(recoverFrameCounter(0x0005, next), ShouldEqual, next)
		})

		Convey("A wire lsbs just below next's LSBs resynchronizes to the next epoch (P7)", func() {
			// candidate = 0x10000 | 0x0003 = 0x10003 < next, so it rolls
			// forward one window to 0x20003.
			So(recoverFrameCounter(0x0003, next), ShouldEqual, FrameCounter(0x20003))
		})

		Convey("A replayed frame's counter never recovers to less than next (P3)", func() {
			recovered := recoverFrameCounter(0x0003, next)
			So(uint32(recovered), ShouldBeGreaterThanOrEqualTo, uint32(next))
		})
	})

	Convey("Given next is within one window of Exhausted", t, func() {
		var next FrameCounter = 0xFFFF0000

		Convey("A wire lsbs of 0xFFFF recovers to Exhausted and is rejected by Open (P8)", func() {
			So(recoverFrameCounter(0xFFFF, next), ShouldEqual, Exhausted)
		})

		Convey("Recovery never overflows past Exhausted", func() {
			recovered := recoverFrameCounter(0xFFFF, next)
			So(uint32(recovered), ShouldBeLessThanOrEqualTo, uint32(Exhausted))
		})
	})
}
