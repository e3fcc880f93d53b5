package sqlt

import (
	"errors"
	"fmt"
)

/*
Error codes. You probably shouldn't use this directly; instead, use the `Err`
variables with `errors.Is`.
*/
type ErrCode string

const (
	ErrCodeUnknown                 ErrCode = ""
	ErrCodeMalformedTemplate       ErrCode = "MalformedTemplate"
	ErrCodeUnsupportedNesting      ErrCode = "UnsupportedNesting"
	ErrCodeInvalidArgumentType     ErrCode = "InvalidArgumentType"
	ErrCodeUnsupportedArgumentType ErrCode = "UnsupportedArgumentType"
	ErrCodeMissingArgument         ErrCode = "MissingArgument"
	ErrCodeUnusedArgument          ErrCode = "UnusedArgument"
	ErrCodeMisplacedSkip           ErrCode = "MisplacedSkip"
	ErrCodeEscapeFailed            ErrCode = "EscapeFailed"
	ErrCodeInternal                ErrCode = "Internal"
)

/*
Use blank error variables to detect error types:

	if errors.Is(err, sqlt.ErrMalformedTemplate) {
		// Handle specific error.
	}

Note that errors returned by this package can't be compared via `==` because
they may include additional details about the circumstances. When compared by
`errors.Is`, they compare `.Cause` and fall back on `.Code`.
*/
var (
	ErrMalformedTemplate       Err = Err{Code: ErrCodeMalformedTemplate, Cause: errors.New(`malformed template`)}
	ErrUnsupportedNesting      Err = Err{Code: ErrCodeUnsupportedNesting, Cause: errors.New(`unsupported nesting`)}
	ErrInvalidArgumentType     Err = Err{Code: ErrCodeInvalidArgumentType, Cause: errors.New(`invalid argument type`)}
	ErrUnsupportedArgumentType Err = Err{Code: ErrCodeUnsupportedArgumentType, Cause: errors.New(`unsupported argument type`)}
	ErrMissingArgument         Err = Err{Code: ErrCodeMissingArgument, Cause: errors.New(`missing argument`)}
	ErrUnusedArgument          Err = Err{Code: ErrCodeUnusedArgument, Cause: errors.New(`unused argument`)}
	ErrMisplacedSkip           Err = Err{Code: ErrCodeMisplacedSkip, Cause: errors.New(`skip outside of conditional block`)}
	ErrEscapeFailed            Err = Err{Code: ErrCodeEscapeFailed, Cause: errors.New(`escape failed`)}
	ErrInternal                Err = Err{Code: ErrCodeInternal, Cause: errors.New(`internal error`)}
)

// Type of errors returned by this package.
type Err struct {
	Code  ErrCode
	While string
	Cause error
}

// Implement `error`.
func (self Err) Error() string {
	if self == (Err{}) {
		return ""
	}
	msg := `[sqlt]`
	if self.Code != ErrCodeUnknown {
		msg += fmt.Sprintf(` %s`, self.Code)
	} else {
		msg += ` error`
	}
	if self.While != "" {
		msg += fmt.Sprintf(` while %v`, self.While)
	}
	if self.Cause != nil {
		msg += `: ` + self.Cause.Error()
	}
	return msg
}

// Implement a hidden interface in "errors".
func (self Err) Is(other error) bool {
	if self.Cause != nil && errors.Is(self.Cause, other) {
		return true
	}
	err, ok := other.(Err)
	return ok && err.Code == self.Code
}

// Implement a hidden interface in "errors".
func (self Err) Unwrap() error {
	return self.Cause
}

func (self Err) while(while string) Err {
	self.While = while
	return self
}

func (self Err) because(cause error) Err {
	self.Cause = cause
	return self
}

// Returns the code of the first `Err` in the chain, or `ErrCodeUnknown`.
func CodeOf(err error) ErrCode {
	var val Err
	if errors.As(err, &val) {
		return val.Code
	}
	return ErrCodeUnknown
}

func errf(pattern string, args ...any) error { return fmt.Errorf(pattern, args...) }

func errUnclosedBlock(offset int) Err {
	return ErrMalformedTemplate.while(`parsing template`).because(
		errf(`unclosed block starting at offset %v`, offset),
	)
}

func errNestedBlock(outer, inner int) Err {
	return ErrUnsupportedNesting.while(`parsing template`).because(
		errf(`block starting at offset %v is nested in block starting at offset %v`, inner, outer),
	)
}

func errMissingArgument(index int) Err {
	return ErrMissingArgument.while(`building query`).because(
		errf(`no argument for placeholder %v`, index),
	)
}

func errUnusedArguments(used, total int) Err {
	return ErrUnusedArgument.while(`building query`).because(
		errf(`template consumed %v of %v arguments`, used, total),
	)
}

func errMisplacedSkip(index int) Err {
	return ErrMisplacedSkip.while(`building query`).because(
		errf(`argument %v is the skip sentinel but its placeholder is outside of a conditional block`, index),
	)
}

func errExpectedList(spec Spec, val any) Err {
	return ErrInvalidArgumentType.while(`formatting ` + spec.String()).because(
		errf(`expected a list, got %v`, typeNameOf(val)),
	)
}

func errInvalidElem(spec Spec, index int, val any) Err {
	return ErrInvalidArgumentType.while(`formatting ` + spec.String()).because(
		errf(`list element %v has non-scalar type %v`, index, typeNameOf(val)),
	)
}

func errNonFinite(val float64) Err {
	return ErrInvalidArgumentType.while(`formatting ` + SpecFloat.String()).because(
		errf(`%v is not representable as a SQL literal`, val),
	)
}

func errUnsupported(spec Spec, val any) Err {
	return ErrUnsupportedArgumentType.while(`formatting ` + spec.String()).because(
		errf(`unsupported type %v`, typeNameOf(val)),
	)
}

func errEscape(cause error) Err {
	return ErrEscapeFailed.while(`escaping value`).because(cause)
}
