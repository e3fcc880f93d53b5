package sqlt

import (
	"database/sql/driver"
	r "reflect"

	"github.com/mitranim/refut"
)

const (
	placeholderPrefix = '?'
	blockStart        = `?{`
	blockEnd          = '}'
	quoteSingle       = '\''

	timestampLayout = `2006-01-02 15:04:05.999999`
)

var (
	typeBytes = r.TypeOf((*[]byte)(nil)).Elem()

	charsetDigitDec = new(charset).addStr(`0123456789`)
	charsetSpec     = new(charset).addStr(`dfa#`)
	charsetSpace    = new(charset).addStr(" \t\n\r\v\f")
	charsetSign     = new(charset).addStr(`+-`)
	charsetExponent = new(charset).addStr(`eE`)
)

type charset [256]bool

func (self *charset) has(val byte) bool { return self[val] }

func (self *charset) addStr(vals string) *charset {
	for _, val := range vals {
		self[val] = true
	}
	return self
}

func try(err error) {
	if err != nil {
		panic(err)
	}
}

func try1[A any](val A, err error) A {
	try(err)
	return val
}

// Must be deferred.
func rec(ptr *error) {
	val := recover()
	if val == nil {
		return
	}

	err, _ := val.(error)
	if err != nil {
		*ptr = err
		return
	}

	panic(val)
}

/*
Reduces an argument to the value that gets formatted. Typed nil pointers become
nil, other pointers are dereferenced, and `driver.Valuer` implementations are
replaced with the output of their `.Value` method. The skip sentinel is
returned as-is.
*/
func norm(val any) any {
	if val == nil || IsSkip(val) {
		return val
	}

	valuer, _ := val.(driver.Valuer)
	if valuer != nil {
		if refut.IsNil(valuer) {
			return nil
		}
		out, err := valuer.Value()
		if err != nil {
			panic(ErrInvalidArgumentType.while(`converting driver.Valuer`).because(err))
		}
		return norm(out)
	}

	rval := r.ValueOf(val)
	if rval.Kind() == r.Ptr {
		if refut.IsRvalNil(rval) {
			return nil
		}
		return norm(rval.Elem().Interface())
	}
	return val
}

// True for slices and arrays, except byte slices which are treated as text.
func isList(rval r.Value) bool {
	switch rval.Kind() {
	case r.Slice, r.Array:
		return !rval.Type().ConvertibleTo(typeBytes)
	default:
		return false
	}
}

func typeName(typ r.Type) string {
	if typ == nil {
		return `nil`
	}
	return typ.String()
}

func typeNameOf(val any) string { return typeName(r.TypeOf(val)) }
