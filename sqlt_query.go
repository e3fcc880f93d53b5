package sqlt

/*
Short for "query". A template together with its arguments, built on demand.
Useful for assembling a query from independently built fragments:

	where := []sqlt.Query{
		sqlt.Q(`id IN ?a`, ids),
		sqlt.Q(`?{name = ?}`, nameOrSkip),
	}
	cond, err := sqlt.Join(esc, ` AND `, where...)

Arguments are bound per fragment; arguments a fragment's placeholders don't
consume are ignored.
*/
type Query struct {
	Text string
	Args []any
}

// Shortcut for making a `Query`.
func Q(text string, args ...any) Query { return Query{text, args} }

// Builds the query with the given escaper.
func (self Query) Build(esc Escaper) (string, error) {
	return Build(esc, self.Text, self.Args...)
}

/*
Appends the built query to the buffer. On error the buffer is returned
unchanged, without partial output.
*/
func (self Query) AppendTo(text []byte, esc Escaper) ([]byte, error) {
	out, err := self.append(text, esc)
	if err != nil {
		return text, err
	}
	return out, nil
}

func (self Query) append(text []byte, esc Escaper) (out []byte, err error) {
	defer rec(&err)

	prep := try1(Preparse(self.Text))
	out, _ = prep.Append(text, esc, self.Args)
	return out, nil
}

// Implement `fmt.Stringer` for debug purposes. Returns the template.
func (self Query) String() string { return self.Text }

/*
Builds each query and joins the non-empty results with the delimiter. Queries
that build to empty text, such as a single skipped block, are omitted along
with their delimiter.
*/
func Join(esc Escaper, delim string, vals ...Query) (string, error) {
	var text []byte
	for _, val := range vals {
		if _, err := appendWith(&text, delim, val, esc); err != nil {
			return ``, err
		}
	}
	return string(text), nil
}

/*
Appends the delimiter, if the buffer is non-empty, and the built query. If the
query built to nothing, reverts the buffer to its original length, preserving
any added capacity, and returns false.
*/
func appendWith(text *[]byte, delim string, val Query, esc Escaper) (bool, error) {
	pre := len(*text)
	if pre > 0 {
		*text = append(*text, delim...)
	}

	mid := len(*text)
	out, err := val.AppendTo(*text, esc)
	if err != nil {
		*text = (*text)[:pre]
		return false, err
	}
	*text = out

	if mid == len(*text) {
		*text = (*text)[:pre]
		return false, nil
	}
	return true, nil
}
