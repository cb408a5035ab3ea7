package toml

import (
	"errors"
	"math"
	"testing"

	"github.com/smartystreets/goconvey/convey"
)

func TestParseInteger(t *testing.T) {
	convey.Convey("valid integers", t, func() {
		valid := map[string]int64{
			"0":                    0,
			"+0":                   0,
			"-0":                   0,
			"42":                   42,
			"+99":                  99,
			"-17":                  -17,
			"1_000":                1000,
			"5_349_221":            5349221,
			"0xDEADBEEF":           0xDEADBEEF,
			"0xdead_beef":          0xDEADBEEF,
			"0x_FF":                255,
			"0o01234567":           01234567,
			"0o755":                0755,
			"0b11010110":           214,
			"0b1010_1010":          170,
			"0x00ff":               255,
			"9223372036854775807":  math.MaxInt64,
			"-9223372036854775808": math.MinInt64,
			"0x7FFFFFFFFFFFFFFF":   math.MaxInt64,
		}
		for src, want := range valid {
			got, err := parseInteger(src)
			convey.So(err, convey.ShouldBeNil)
			convey.So(got, convey.ShouldEqual, want)
		}
	})

	convey.Convey("invalid integers", t, func() {
		invalid := []string{
			"", "01", "-01", "00", "_1", "1_", "1__0", "0x_", "0x", "0x__FF",
			"+0x1", "-0o7", "0o8", "0b2", "0xG", "9223372036854775808",
			"-9223372036854775809", "0x8000000000000000", "1a", "abc",
		}
		for _, src := range invalid {
			_, err := parseInteger(src)
			convey.So(err, convey.ShouldNotBeNil)
			convey.So(errors.Is(err, ErrSyntax), convey.ShouldBeTrue)
		}
	})
}

func TestParseFloat(t *testing.T) {
	convey.Convey("valid floats", t, func() {
		valid := map[string]float64{
			"+1.0":            1.0,
			"3.1415":          3.1415,
			"-0.01":           -0.01,
			"5e+22":           5e+22,
			"1e06":            1e06,
			"-2E-2":           -2e-2,
			"6.626e-34":       6.626e-34,
			"224_617.445_991": 224617.445991,
			"0.0":             0,
			"-0.0":            math.Copysign(0, -1),
			"1e1_0":           1e10,
		}
		for src, want := range valid {
			got, err := parseFloat(src)
			convey.So(err, convey.ShouldBeNil)
			convey.So(got, convey.ShouldEqual, want)
		}
	})

	convey.Convey("special values", t, func() {
		for _, src := range []string{"inf", "+inf"} {
			got, err := parseFloat(src)
			convey.So(err, convey.ShouldBeNil)
			convey.So(math.IsInf(got, 1), convey.ShouldBeTrue)
		}
		got, err := parseFloat("-inf")
		convey.So(err, convey.ShouldBeNil)
		convey.So(math.IsInf(got, -1), convey.ShouldBeTrue)
		for _, src := range []string{"nan", "+nan", "-nan"} {
			got, err := parseFloat(src)
			convey.So(err, convey.ShouldBeNil)
			convey.So(math.IsNaN(got), convey.ShouldBeTrue)
		}
	})

	convey.Convey("invalid floats", t, func() {
		invalid := []string{
			"1.", ".7", "7.e3", "3.e+20", "01.5", "1e", "1e+", "1_.5", "1._5",
			"1.5_", "1e_5", "1e5_", "Inf", "NaN", "1.2.3", "1e400",
		}
		for _, src := range invalid {
			_, err := parseFloat(src)
			convey.So(err, convey.ShouldNotBeNil)
		}
	})

	convey.Convey("float shape detection", t, func() {
		convey.So(isFloat("1.5"), convey.ShouldBeTrue)
		convey.So(isFloat("1e5"), convey.ShouldBeTrue)
		convey.So(isFloat("-inf"), convey.ShouldBeTrue)
		convey.So(isFloat("0xE"), convey.ShouldBeFalse)
		convey.So(isFloat("15"), convey.ShouldBeFalse)
	})
}
