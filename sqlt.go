package sqlt

/*
Escapes text so it can be embedded in a SQL statement. Implementations apply
the literal-escaping rules of the target database and don't add surrounding
quotes. The engine decides when to escape and when to quote; escapers only
transform text.

Implementations must be safe for concurrent use if the `Builder` using them is
shared between goroutines.
*/
type Escaper interface {
	Escape(string) (string, error)
}

// Adapter for infallible escaping functions.
type EscaperFunc func(string) string

// Implement `Escaper`.
func (self EscaperFunc) Escape(src string) (string, error) { return self(src), nil }

/*
Short for "specifier". The optional character following the "?" trigger,
which selects the formatting rules for the placeholder's argument.
*/
type Spec byte

const (
	SpecNone  Spec = 0
	SpecInt   Spec = 'd'
	SpecFloat Spec = 'f'
	SpecList  Spec = 'a'
	SpecIdent Spec = '#'
)

// Implement `fmt.Stringer`. Returns the placeholder as written in templates.
func (self Spec) String() string {
	if self == SpecNone {
		return string(placeholderPrefix)
	}
	return string([]byte{placeholderPrefix, byte(self)})
}

type skip struct{}

// Implement `fmt.Stringer` for debug purposes.
func (skip) String() string { return `sqlt.Skip()` }

// Implement `fmt.GoStringer` for debug purposes.
func (skip) GoString() string { return `sqlt.Skip()` }

/*
Returns the skip sentinel. When any placeholder inside a conditional block
"?{...}" is bound to this value, the entire block is removed from the output.
Always returns the same value; compare with `IsSkip` or `==`.

	sqlt.Build(esc, `select * from users where true ?{and id = ?d}`, sqlt.Skip())
	// select * from users where true
*/
func Skip() any { return skip{} }

// True if the value is the sentinel returned by `Skip`.
func IsSkip(val any) bool {
	_, ok := val.(skip)
	return ok
}

/*
Builds a query from the template and arguments, escaping literals with the
given escaper. Parsed templates are cached via `Preparse`. Arguments left over
after all placeholders are bound are ignored. See `Builder` for a configurable
variant.
*/
func Build(esc Escaper, src string, args ...any) (string, error) {
	prep, err := Preparse(src)
	if err != nil {
		return ``, err
	}
	return prep.Build(esc, args...)
}

// Variant of `Build` that panics on error.
func TryBuild(esc Escaper, src string, args ...any) string {
	return try1(Build(esc, src, args...))
}
