package sqlt

/*
Short for "preparsed". Parsed representation of a query template, suited for
efficiently building queries by providing arguments. To avoid redundant work,
each template should be parsed only once; `Preparse` caches the result for
each source string. User code rarely needs to construct this directly.
*/
type Prep struct {
	Source string
	Nodes  []Node
	Params int
}

const (
	NodeTypeInvalid NodeType = iota
	NodeTypeText
	NodeTypeParam
	NodeTypeBlock
)

// Part of `Node`.
type NodeType byte

/*
Element of a parsed template. Text nodes hold verbatim template text. Param
nodes hold a placeholder's specifier. Block nodes hold the contents of a
conditional block, without its delimiters, and the count of placeholders
inside it.
*/
type Node struct {
	Type   NodeType
	Text   string
	Spec   Spec
	Nodes  []Node
	Params int
}

/*
Parses `self.Source`, modifying the receiver. Panics with
`ErrMalformedTemplate` when a block is never closed, and with
`ErrUnsupportedNesting` when a block starts inside another block.
*/
func (self *Prep) Parse() {
	tokenizer := Tokenizer{Source: self.Source}
	self.Nodes = nil
	self.Params = 0

	var block *Node
	var blockOffset int

	for {
		tok := tokenizer.Next()
		if tok.IsInvalid() {
			break
		}

		switch tok.Type {
		case TokenTypeBlockStart:
			if block != nil {
				panic(errNestedBlock(blockOffset, tok.Offset))
			}
			block = &Node{Type: NodeTypeBlock}
			blockOffset = tok.Offset

		case TokenTypeBlockEnd:
			if block == nil {
				appendText(&self.Nodes, tok.Text)
				continue
			}
			self.Nodes = append(self.Nodes, *block)
			block = nil

		case TokenTypePlaceholder:
			node := Node{Type: NodeTypeParam, Spec: tok.ParsePlaceholder()}
			self.Params++
			if block != nil {
				block.Nodes = append(block.Nodes, node)
				block.Params++
			} else {
				self.Nodes = append(self.Nodes, node)
			}

		default:
			if block != nil {
				appendText(&block.Nodes, tok.Text)
			} else {
				appendText(&self.Nodes, tok.Text)
			}
		}
	}

	if block != nil {
		panic(errUnclosedBlock(blockOffset))
	}
}

// True if the template has at least one placeholder.
func (self Prep) HasParams() bool { return self.Params > 0 }

// Implement `fmt.Stringer` for debug purposes.
func (self Prep) String() string { return self.Source }

// True if the template has no placeholders and no blocks.
func (self Prep) isPlain() bool {
	for _, node := range self.Nodes {
		if node.Type != NodeTypeText {
			return false
		}
	}
	return true
}

/*
Builds the query. Arguments left over after all placeholders are bound are
ignored; see `Prep.BuildStrict` for the variant that rejects them. See
`Prep.Append` for the lower-level variant.
*/
func (self Prep) Build(esc Escaper, args ...any) (string, error) {
	return self.build(esc, args, false)
}

// Like `Prep.Build`, but returns `ErrUnusedArgument` when some arguments are
// not consumed by any placeholder.
func (self Prep) BuildStrict(esc Escaper, args ...any) (string, error) {
	return self.build(esc, args, true)
}

func (self Prep) build(esc Escaper, args []any, strict bool) (out string, err error) {
	defer rec(&err)

	if self.isPlain() {
		if strict && len(args) > 0 {
			return ``, errUnusedArguments(0, len(args))
		}
		return self.Source, nil
	}

	text, used := self.Append(make([]byte, 0, len(self.Source)+8*len(args)), esc, args)
	if strict && used < len(args) {
		return ``, errUnusedArguments(used, len(args))
	}
	return string(text), nil
}

/*
Appends the built query to the buffer, binding arguments to placeholders from
left to right. Returns the count of consumed arguments, which may be less than
the count of provided arguments. Panics on failure with an `Err` describing the
cause; use `Prep.Build` to get an error instead.
*/
func (self Prep) Append(text []byte, esc Escaper, args []any) ([]byte, int) {
	bui := Bui{Text: text, Esc: esc, Args: args}
	bui.Nodes(self.Nodes)
	return bui.Text, bui.Cursor
}

func appendText(nodes *[]Node, text string) {
	if text == `` {
		return
	}

	last := len(*nodes) - 1
	if last >= 0 && (*nodes)[last].Type == NodeTypeText {
		(*nodes)[last].Text += text
		return
	}
	*nodes = append(*nodes, Node{Type: NodeTypeText, Text: text})
}
