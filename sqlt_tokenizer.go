package sqlt

import (
	"unicode/utf8"
)

/*
Template tokenizer used internally by `(*Prep).Parse`. Splits a template into
plain text, placeholders such as "?" or "?d", block starts "?{" and block ends
"}".

Goals:

	* Recognize every placeholder trigger, with or without a specifier.

	* Allocation-free tokenization. Token texts are substrings of the source.

Non-goals:

	* Parsing SQL. Quoted strings and comments are plain text, and a "?" inside
	  them is still a placeholder.

The tokenizer doesn't validate block structure. A "}" is always reported as
`TokenTypeBlockEnd`; the parser decides whether it closes a block or is plain
text.
*/
type Tokenizer struct {
	Source string
	cursor int
	next   Token
}

/*
Returns the next token if possible. When the tokenizer reaches the end, this
returns an empty `Token{}`. Call `Token.IsInvalid` to detect the end.
*/
func (self *Tokenizer) Next() Token {
	next := self.next
	if !next.IsInvalid() {
		self.next = Token{}
		return next
	}

	start := self.cursor

	for self.more() {
		mid := self.cursor
		if self.maybeBlockStart(); self.cursor > mid {
			return self.choose(start, mid, TokenTypeBlockStart)
		}
		if self.maybePlaceholder(); self.cursor > mid {
			return self.choose(start, mid, TokenTypePlaceholder)
		}
		if self.maybeBlockEnd(); self.cursor > mid {
			return self.choose(start, mid, TokenTypeBlockEnd)
		}
		self.skipChar()
	}

	if self.cursor > start {
		return Token{self.from(start), TokenTypeText, start}
	}
	return Token{}
}

func (self *Tokenizer) choose(start, mid int, typ TokenType) Token {
	tok := Token{self.from(mid), typ, mid}
	if mid > start {
		self.setNext(tok)
		return Token{self.Source[start:mid], TokenTypeText, start}
	}
	return tok
}

func (self *Tokenizer) setNext(val Token) {
	if !self.next.IsInvalid() {
		panic(ErrInternal.while(`tokenizing template`).because(errf(
			`attempted to overwrite non-empty pending token %#v with %#v`,
			self.next, val,
		)))
	}
	self.next = val
}

func (self *Tokenizer) maybeBlockStart() {
	self.maybeString(blockStart)
}

func (self *Tokenizer) maybePlaceholder() {
	if !self.skippedByte(placeholderPrefix) {
		return
	}
	if self.more() {
		_ = self.skippedByteFromCharset(charsetSpec)
	}
}

func (self *Tokenizer) maybeBlockEnd() {
	_ = self.skippedByte(blockEnd)
}

func (self *Tokenizer) maybeString(val string) {
	_ = self.skippedString(val)
}

func (self *Tokenizer) skipChar() {
	_, size := utf8.DecodeRuneInString(self.rest())
	self.skipBytes(size)
}

func (self *Tokenizer) skipBytes(val int) {
	self.cursor += val
}

func (self *Tokenizer) more() bool {
	return self.cursor < len(self.Source)
}

func (self *Tokenizer) rest() string {
	return self.Source[self.cursor:]
}

func (self *Tokenizer) from(start int) string {
	return self.Source[start:self.cursor]
}

func (self *Tokenizer) headByte() byte {
	return self.Source[self.cursor]
}

func (self *Tokenizer) skippedByte(val byte) bool {
	if self.headByte() == val {
		self.skipBytes(1)
		return true
	}
	return false
}

func (self *Tokenizer) skippedByteFromCharset(val *charset) bool {
	if val.has(self.headByte()) {
		self.skipBytes(1)
		return true
	}
	return false
}

func (self *Tokenizer) skippedString(val string) bool {
	if len(self.rest()) >= len(val) && self.rest()[:len(val)] == val {
		self.skipBytes(len(val))
		return true
	}
	return false
}

const (
	TokenTypeInvalid TokenType = iota
	TokenTypeText
	TokenTypePlaceholder
	TokenTypeBlockStart
	TokenTypeBlockEnd
)

// Part of `Token`.
type TokenType byte

// Implement `fmt.Stringer` for debug purposes.
func (self TokenType) String() string {
	switch self {
	case TokenTypeText:
		return `text`
	case TokenTypePlaceholder:
		return `placeholder`
	case TokenTypeBlockStart:
		return `block start`
	case TokenTypeBlockEnd:
		return `block end`
	default:
		return `invalid`
	}
}

// Represents an arbitrary chunk of template text parsed by `Tokenizer`.
// `Offset` is the byte offset of the chunk in the source.
type Token struct {
	Text   string
	Type   TokenType
	Offset int
}

/*
True if the token's type is `TokenTypeInvalid`. This is used to detect end of
iteration when calling `(*Tokenizer).Next`.
*/
func (self Token) IsInvalid() bool {
	return self.Type == TokenTypeInvalid
}

// Implement `fmt.Stringer` for debug purposes.
func (self Token) String() string { return self.Text }

/*
Assumes that the token has `TokenTypePlaceholder` and returns its specifier:
`SpecNone` for a bare "?", otherwise the character following the trigger.
Panics if the text had the wrong structure.
*/
func (self Token) ParsePlaceholder() Spec {
	text := self.Text
	if len(text) == 0 || text[0] != placeholderPrefix || len(text) > 2 {
		panic(ErrInternal.while(`parsing placeholder`).because(
			errf(`malformed placeholder token %q`, text),
		))
	}
	if len(text) == 1 {
		return SpecNone
	}
	return Spec(text[1])
}
