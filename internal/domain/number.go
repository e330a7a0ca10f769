package domain

import (
	"math"
	"strconv"
	"strings"
)

// numberSeparator stands in for the decimal point inside path segments.
const numberSeparator = "p"

// EncodeNumber renders a numeric value as a filesystem- and URI-safe token.
// Integers become their plain decimal string. Floats are formatted as the
// shortest decimal string that round-trips back to the same value, with the
// decimal point replaced by 'p'; integral floats still carry a "p0" fraction
// so decoding recovers a float, not an integer.
func EncodeNumber(v any) (string, error) {
	switch n := v.(type) {
	case int:
		return strconv.Itoa(n), nil
	case int8:
		return strconv.FormatInt(int64(n), 10), nil
	case int16:
		return strconv.FormatInt(int64(n), 10), nil
	case int32:
		return strconv.FormatInt(int64(n), 10), nil
	case int64:
		return strconv.FormatInt(n, 10), nil
	case uint:
		return strconv.FormatUint(uint64(n), 10), nil
	case uint8:
		return strconv.FormatUint(uint64(n), 10), nil
	case uint16:
		return strconv.FormatUint(uint64(n), 10), nil
	case uint32:
		return strconv.FormatUint(uint64(n), 10), nil
	case uint64:
		return strconv.FormatUint(n, 10), nil
	case float32:
		if math.IsNaN(float64(n)) || math.IsInf(float64(n), 0) {
			return "", &UnsupportedNumberTypeError{Value: v}
		}
		return encodeFloat(float64(n), 32), nil
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return "", &UnsupportedNumberTypeError{Value: v}
		}
		return encodeFloat(n, 64), nil
	default:
		return "", &UnsupportedNumberTypeError{Value: v}
	}
}

// encodeFloat relies on strconv.FormatFloat with precision -1, which produces
// the unique shortest decimal representation that parses back to the same
// value. The 'f' format keeps the token digit-only; no exponent notation.
func encodeFloat(f float64, bits int) string {
	s := strconv.FormatFloat(f, 'f', -1, bits)
	intPart, fracPart, found := strings.Cut(s, ".")
	if !found {
		fracPart = "0"
	}
	return intPart + numberSeparator + fracPart
}

// DecodeNumber parses a numeric token back into an int or a float64. A token
// containing the 'p' separator decodes as a float split at the separator's
// first occurrence; anything else decodes as an integer.
func DecodeNumber(token string) (any, error) {
	if intPart, fracPart, found := strings.Cut(token, numberSeparator); found {
		if !isDecimalInt(intPart) || !isDigits(fracPart) {
			return nil, &MalformedNumericTokenError{Token: token}
		}
		f, err := strconv.ParseFloat(intPart+"."+fracPart, 64)
		if err != nil {
			return nil, &MalformedNumericTokenError{Token: token}
		}
		return f, nil
	}

	if !isDecimalInt(token) {
		return nil, &MalformedNumericTokenError{Token: token}
	}
	n, err := strconv.Atoi(token)
	if err != nil {
		return nil, &MalformedNumericTokenError{Token: token}
	}
	return n, nil
}

// decodeFloatToken decodes a numeric token as a float64 regardless of whether
// it carries a fraction. Used by the bbox and resolution codecs, whose fields
// are floats even when the serialized token is integral.
func decodeFloatToken(token string) (float64, error) {
	v, err := DecodeNumber(token)
	if err != nil {
		return 0, err
	}
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	default:
		return 0, &MalformedNumericTokenError{Token: token}
	}
}

// isDecimalInt reports whether s is one or more decimal digits with at most
// one leading sign.
func isDecimalInt(s string) bool {
	if len(s) > 0 && (s[0] == '+' || s[0] == '-') {
		s = s[1:]
	}
	return isDigits(s)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
