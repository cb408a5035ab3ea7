package toml

import (
	"math"
	"math/big"
	"strconv"
	"strings"
)

// =========================
// Numeric Literals
// =========================

var radixPrefixes = map[string]int{
	"0x": 16,
	"0o": 8,
	"0b": 2,
}

func hasRadixPrefix(s string) bool {
	if len(s) < 2 {
		return false
	}
	_, ok := radixPrefixes[s[:2]]
	return ok
}

func splitSign(s string) (string, string) {
	if s != "" && (s[0] == '+' || s[0] == '-') {
		return s[:1], s[1:]
	}
	return "", s
}

// isFloat reports whether s has float shape; it does not validate it.
func isFloat(s string) bool {
	_, body := splitSign(s)
	if body == "inf" || body == "nan" {
		return true
	}
	if hasRadixPrefix(body) {
		return false
	}
	return strings.ContainsAny(body, ".eE")
}

// parseInteger decodes a decimal, hex, octal or binary integer. Values
// outside the int64 range are errors.
func parseInteger(s string) (int64, error) {
	sign, body := splitSign(s)
	radix := 10
	if hasRadixPrefix(body) {
		radix = radixPrefixes[body[:2]]
		if sign != "" {
			return 0, syntaxErrorf("sign not allowed on non-decimal integer %q", s)
		}
		body = body[2:]
		// the prefix counts as a digit boundary, so 0x_FF is accepted
		if len(body) > 1 && body[0] == '_' {
			body = body[1:]
		}
	}
	if !validDigits(body, radix) {
		return 0, syntaxErrorf("invalid integer %q", s)
	}
	digits := strings.ReplaceAll(body, "_", "")
	if radix == 10 && len(digits) > 1 && digits[0] == '0' {
		return 0, syntaxErrorf("leading zero in integer %q", s)
	}
	n, ok := new(big.Int).SetString(sign+digits, radix)
	if !ok {
		return 0, syntaxErrorf("invalid integer %q", s)
	}
	if !n.IsInt64() {
		return 0, syntaxErrorf("integer %q out of range", s)
	}
	return n.Int64(), nil
}

func parseFloat(s string) (float64, error) {
	sign, body := splitSign(s)
	switch body {
	case "inf":
		if sign == "-" {
			return math.Inf(-1), nil
		}
		return math.Inf(1), nil
	case "nan":
		return math.NaN(), nil
	}

	mantissa, exponent, hasExp := strings.Cut(body, "e")
	if !hasExp {
		mantissa, exponent, hasExp = strings.Cut(body, "E")
	}
	intPart, fracPart, hasFrac := strings.Cut(mantissa, ".")
	if !validDigits(intPart, 10) {
		return 0, syntaxErrorf("invalid float %q", s)
	}
	if digits := strings.ReplaceAll(intPart, "_", ""); len(digits) > 1 && digits[0] == '0' {
		return 0, syntaxErrorf("leading zero in float %q", s)
	}
	if hasFrac && !validDigits(fracPart, 10) {
		return 0, syntaxErrorf("invalid float %q", s)
	}
	if hasExp {
		_, expDigits := splitSign(exponent)
		if !validDigits(expDigits, 10) {
			return 0, syntaxErrorf("invalid float exponent %q", s)
		}
	}

	f, err := strconv.ParseFloat(strings.ReplaceAll(s, "_", ""), 64)
	if err != nil {
		return 0, syntaxErrorf("invalid float %q", s)
	}
	return f, nil
}

// validDigits checks that s is a non-empty run of radix digits where each
// underscore sits between two digits.
func validDigits(s string, radix int) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] == '_' {
			if i == 0 || i == len(s)-1 || s[i-1] == '_' || s[i+1] == '_' {
				return false
			}
			continue
		}
		if !isRadixDigit(s[i], radix) {
			return false
		}
	}
	return true
}

func isRadixDigit(c byte, radix int) bool {
	switch radix {
	case 2:
		return c == '0' || c == '1'
	case 8:
		return c >= '0' && c <= '7'
	case 16:
		return isHexDigit(c)
	default:
		return c >= '0' && c <= '9'
	}
}
