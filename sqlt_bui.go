package sqlt

import (
	"math"
	r "reflect"
	"strconv"
	"time"
)

/*
Short for "builder". Appends the output of parsed template nodes to `.Text`,
consuming `.Args` from left to right. `.Cursor` is the index of the next
unconsumed argument. Used internally by `Prep.Append`; exported for code that
assembles queries from several templates into one buffer.

Methods panic on failure. A nil `.Esc` is treated as `StandardEscaper`.
*/
type Bui struct {
	Text   []byte
	Esc    Escaper
	Args   []any
	Cursor int
}

// Returns inner text as a string.
func (self Bui) String() string { return string(self.Text) }

// Appends each node by calling `(*Bui).Node`.
func (self *Bui) Nodes(nodes []Node) {
	for _, node := range nodes {
		self.Node(node)
	}
}

// Appends the output of one node: text verbatim, a placeholder formatted with
// the next argument, or a conditional block.
func (self *Bui) Node(node Node) {
	switch node.Type {
	case NodeTypeText:
		self.Text = append(self.Text, node.Text...)

	case NodeTypeParam:
		index, arg := self.next()
		if IsSkip(arg) {
			panic(errMisplacedSkip(index))
		}
		self.Param(node.Spec, arg)

	case NodeTypeBlock:
		self.Block(node)

	default:
		panic(ErrInternal.while(`building query`).because(
			errf(`unexpected node type %v`, node.Type),
		))
	}
}

/*
Appends a conditional block. If any placeholder in the block is bound to the
skip sentinel, the block is omitted, but its arguments are still consumed.
Otherwise the block's contents are appended without the delimiters.
*/
func (self *Bui) Block(node Node) {
	start := self.Cursor
	if start+node.Params > len(self.Args) {
		// Reports the first placeholder without an argument.
		self.Cursor = len(self.Args)
		panic(errMissingArgument(self.Cursor))
	}

	for _, arg := range self.Args[start : start+node.Params] {
		if IsSkip(arg) {
			self.Cursor = start + node.Params
			return
		}
	}

	self.Nodes(node.Nodes)
}

// Appends one argument formatted according to the specifier.
func (self *Bui) Param(spec Spec, arg any) {
	switch spec {
	case SpecInt:
		self.Text = strconv.AppendInt(self.Text, coerceInt(arg), 10)

	case SpecFloat:
		self.Float(coerceFloatBits(arg))

	case SpecList:
		val := norm(arg)
		rval := r.ValueOf(val)
		if val == nil || !isList(rval) {
			panic(errExpectedList(spec, val))
		}
		self.List(spec, rval)

	case SpecIdent:
		val := norm(arg)
		rval := r.ValueOf(val)
		if val != nil && isList(rval) {
			self.List(spec, rval)
			return
		}
		if !self.Scalar(val, false) {
			panic(errUnsupported(spec, val))
		}

	default:
		val := norm(arg)
		if !self.Scalar(val, true) {
			panic(errUnsupported(spec, val))
		}
	}
}

/*
Appends the elements of a list or array as "(one, two, three)". Strings are
escaped but not quoted. Elements must be scalars.
*/
func (self *Bui) List(spec Spec, rval r.Value) {
	self.Text = append(self.Text, `(`...)
	for ind := 0; ind < rval.Len(); ind++ {
		if ind > 0 {
			self.Text = append(self.Text, `, `...)
		}

		elem := norm(rval.Index(ind).Interface())
		if !self.Scalar(elem, false) {
			panic(errInvalidElem(spec, ind, elem))
		}
	}
	self.Text = append(self.Text, `)`...)
}

/*
Appends a scalar as a SQL literal. nil becomes "NULL", booleans "TRUE" or
"FALSE", numbers are written without quotes, text is escaped and, when `quote`
is set, wrapped in single quotes. Times are formatted as timestamps and treated
as text. Returns false without appending for unsupported kinds.
*/
func (self *Bui) Scalar(val any, quote bool) bool {
	if val == nil {
		self.Text = append(self.Text, `NULL`...)
		return true
	}

	if inst, ok := val.(time.Time); ok {
		self.Str(inst.Format(timestampLayout), quote)
		return true
	}

	rval := r.ValueOf(val)
	switch rval.Kind() {
	case r.Bool:
		if rval.Bool() {
			self.Text = append(self.Text, `TRUE`...)
		} else {
			self.Text = append(self.Text, `FALSE`...)
		}

	case r.Int, r.Int8, r.Int16, r.Int32, r.Int64:
		self.Text = strconv.AppendInt(self.Text, rval.Int(), 10)

	case r.Uint, r.Uint8, r.Uint16, r.Uint32, r.Uint64, r.Uintptr:
		self.Text = strconv.AppendUint(self.Text, rval.Uint(), 10)

	case r.Float32:
		self.Float(rval.Float(), 32)

	case r.Float64:
		self.Float(rval.Float(), 64)

	case r.String:
		self.Str(rval.String(), quote)

	case r.Slice:
		if isList(rval) {
			return false
		}
		self.Str(string(rval.Bytes()), quote)

	default:
		return false
	}
	return true
}

// Appends a finite float without the scientific notation. Panics on NaN and
// infinities, which have no SQL literal form.
func (self *Bui) Float(val float64, bitSize int) {
	if math.IsNaN(val) || math.IsInf(val, 0) {
		panic(errNonFinite(val))
	}
	self.Text = strconv.AppendFloat(self.Text, val, 'f', -1, bitSize)
}

// Appends escaped text, optionally wrapped in single quotes.
func (self *Bui) Str(val string, quote bool) {
	esc := self.Esc
	if esc == nil {
		esc = StandardEscaper{}
	}

	out, err := esc.Escape(val)
	if err != nil {
		panic(errEscape(err))
	}

	if quote {
		self.Text = append(self.Text, quoteSingle)
	}
	self.Text = append(self.Text, out...)
	if quote {
		self.Text = append(self.Text, quoteSingle)
	}
}

func (self *Bui) next() (int, any) {
	index := self.Cursor
	if index >= len(self.Args) {
		panic(errMissingArgument(index))
	}
	self.Cursor++
	return index, self.Args[index]
}
