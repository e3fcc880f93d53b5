package sqlt

import (
	"math"
	r "reflect"
	"strconv"
)

/*
Converts an argument to an integer the way the "?d" specifier does. Never fails
for the value kinds accepted in argument lists:

	* nil: 0.
	* Booleans: 1 or 0.
	* Signed integers: as-is.
	* Unsigned integers: as-is, saturated at `math.MaxInt64`.
	* Floats: truncated toward zero. NaN and infinities become 0, finite values
	  outside the int64 range saturate.
	* Strings and byte slices: the leading numeric prefix after leading
	  whitespace, such as "12" in "12abc" or "1.9" in "1.9", truncated.
	  Without a numeric prefix, 0. Out-of-range values saturate.
	* Lists: 0 when empty, otherwise 1.

`driver.Valuer` and pointers are normalized first. Other kinds such as maps and
structs return `ErrUnsupportedArgumentType`.
*/
func CoerceInt(val any) (out int64, err error) {
	defer rec(&err)
	return coerceInt(val), nil
}

/*
Converts an argument to a float the way the "?f" specifier does. Follows the
same rules as `CoerceInt` without truncation. The result may be NaN or an
infinity, for example for "1e400"; the "?f" specifier rejects such values.
*/
func CoerceFloat(val any) (out float64, err error) {
	defer rec(&err)
	return coerceFloat(val), nil
}

func coerceInt(src any) int64 {
	val := norm(src)
	if val == nil {
		return 0
	}

	rval := r.ValueOf(val)
	switch rval.Kind() {
	case r.Bool:
		if rval.Bool() {
			return 1
		}
		return 0

	case r.Int, r.Int8, r.Int16, r.Int32, r.Int64:
		return rval.Int()

	case r.Uint, r.Uint8, r.Uint16, r.Uint32, r.Uint64, r.Uintptr:
		if rval.Uint() > math.MaxInt64 {
			return math.MaxInt64
		}
		return int64(rval.Uint())

	case r.Float32, r.Float64:
		return floatToInt(rval.Float())

	case r.String:
		return parseIntPrefix(rval.String())

	case r.Slice, r.Array:
		if !isList(rval) {
			return parseIntPrefix(string(rval.Bytes()))
		}
		return lenFlag(rval)

	default:
		panic(errUnsupported(SpecInt, val))
	}
}

func coerceFloat(src any) float64 {
	out, _ := coerceFloatBits(src)
	return out
}

// Like `coerceFloat`, but also reports the bit size to format the result with:
// 32 for `float32` inputs and 64 otherwise.
func coerceFloatBits(src any) (float64, int) {
	val := norm(src)
	if val != nil && r.TypeOf(val).Kind() == r.Float32 {
		return r.ValueOf(val).Float(), 32
	}
	return coerceFloatAny(val), 64
}

func coerceFloatAny(val any) float64 {
	if val == nil {
		return 0
	}

	rval := r.ValueOf(val)
	switch rval.Kind() {
	case r.Bool:
		if rval.Bool() {
			return 1
		}
		return 0

	case r.Int, r.Int8, r.Int16, r.Int32, r.Int64:
		return float64(rval.Int())

	case r.Uint, r.Uint8, r.Uint16, r.Uint32, r.Uint64, r.Uintptr:
		return float64(rval.Uint())

	case r.Float32, r.Float64:
		return rval.Float()

	case r.String:
		return parseFloatPrefix(rval.String())

	case r.Slice, r.Array:
		if !isList(rval) {
			return parseFloatPrefix(string(rval.Bytes()))
		}
		return float64(lenFlag(rval))

	default:
		panic(errUnsupported(SpecFloat, val))
	}
}

func lenFlag(rval r.Value) int64 {
	if rval.Len() > 0 {
		return 1
	}
	return 0
}

func floatToInt(val float64) int64 {
	switch {
	case math.IsNaN(val), math.IsInf(val, 0):
		return 0
	case val >= math.MaxInt64:
		return math.MaxInt64
	case val <= math.MinInt64:
		return math.MinInt64
	default:
		return int64(val)
	}
}

func parseIntPrefix(src string) int64 {
	num, isInt := numericPrefix(src)
	if num == `` {
		return 0
	}
	if !isInt {
		return floatToInt(parseFloatPrefix(num))
	}

	val, err := strconv.ParseInt(num, 10, 64)
	if err != nil {
		// Only range errors are possible here.
		if num[0] == '-' {
			return math.MinInt64
		}
		return math.MaxInt64
	}
	return val
}

func parseFloatPrefix(src string) float64 {
	num, _ := numericPrefix(src)
	if num == `` {
		return 0
	}
	// On overflow, `ParseFloat` returns a signed infinity with a range error.
	val, _ := strconv.ParseFloat(num, 64)
	return val
}

/*
Returns the longest prefix of the input, after leading whitespace, that looks
like a decimal number: an optional sign, digits with an optional fraction, and
an optional exponent. The flag is true when the prefix has neither a fraction
nor an exponent. Returns "" when there are no digits.
*/
func numericPrefix(src string) (string, bool) {
	start := 0
	for start < len(src) && charsetSpace.has(src[start]) {
		start++
	}

	cursor := start
	if cursor < len(src) && charsetSign.has(src[cursor]) {
		cursor++
	}

	intDigits := skipDigits(src, cursor)
	cursor += intDigits
	isInt := true

	if cursor < len(src) && src[cursor] == '.' {
		fracDigits := skipDigits(src, cursor+1)
		if intDigits > 0 || fracDigits > 0 {
			cursor += 1 + fracDigits
			isInt = false
		}
		intDigits += fracDigits
	}

	if intDigits == 0 {
		return ``, true
	}

	if cursor < len(src) && charsetExponent.has(src[cursor]) {
		exp := cursor + 1
		if exp < len(src) && charsetSign.has(src[exp]) {
			exp++
		}
		if expDigits := skipDigits(src, exp); expDigits > 0 {
			cursor = exp + expDigits
			isInt = false
		}
	}

	return src[start:cursor], isInt
}

func skipDigits(src string, start int) int {
	cursor := start
	for cursor < len(src) && charsetDigitDec.has(src[cursor]) {
		cursor++
	}
	return cursor - start
}
