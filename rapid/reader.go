// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package rapid

import (
	"math"
	"strconv"
	"unicode/utf8"

	"github.com/creachadair/jch/internal/escape"

	"go4.org/mem"
)

// Flags control optional syntax and reporting behaviour of a Reader.
type Flags uint

// Constants defining the valid Flags bits.
const (
	// Comments treats C++ style block comments (/* ... */) and line comments
	// (// ...) as whitespace.
	Comments Flags = 1 << iota

	// TrailingCommas permits a comma after the last member of an object or
	// the last element of an array.
	TrailingCommas

	// NumbersAsStrings reports every number to Handler.RawNumber as its
	// literal text instead of converting it.
	NumbersAsStrings

	// StopWhenDone stops parsing after the first complete root value
	// instead of requiring the rest of the input to be whitespace.
	StopWhenDone

	// ValidateEncoding rejects strings whose decoded contents are not valid
	// UTF-8.
	ValidateEncoding
)

// DefaultMaxDepth is the nesting limit used when Reader.MaxDepth is not positive.
const DefaultMaxDepth = 512

// A Reader parses JSON text from a Stream and reports its structure to a
// Handler. The zero value is ready for use and parses standard JSON.
type Reader struct {
	Flags    Flags
	MaxDepth int // maximum nesting of objects and arrays; <= 0 means DefaultMaxDepth
}

func (r Reader) depthLimit() int {
	if r.MaxDepth <= 0 {
		return DefaultMaxDepth
	}
	return r.MaxDepth
}

// Parse consumes a single JSON document from s and delivers events to h. It
// returns nil if the document was complete and valid. Otherwise it returns a
// *ParseError giving the reason and the stream offset at which parsing
// stopped. If a Handler method returns false, parsing stops immediately and
// the error code is ErrTermination.
//
// Events delivered before an error are not retracted.
func (r Reader) Parse(s Stream, h Handler) (err error) {
	p := &parser{
		s:        s,
		h:        h,
		flags:    r.Flags,
		maxDepth: r.depthLimit(),
	}
	defer p.recoverParseError(&err)

	p.skipSpace()
	if p.atEnd() {
		p.fail(ErrDocumentEmpty)
	}
	p.parseValue(0)
	if p.flags&StopWhenDone == 0 {
		p.skipSpace()
		if !p.atEnd() {
			p.fail(ErrDocumentRootNotSingular)
		}
	}
	return nil
}

// Parse is shorthand for parsing s into h with a zero Reader.
func Parse(s Stream, h Handler) error { return Reader{}.Parse(s, h) }

type parser struct {
	s        Stream
	h        Handler
	flags    Flags
	maxDepth int

	raw []byte // raw text of the current string or number
	dec []byte // decoded text of the current string
}

// atEnd reports whether the input is exhausted. A 0 byte is taken as the end
// unless the stream is an Ender that says otherwise.
func (p *parser) atEnd() bool {
	if p.s.Peek() != 0 {
		return false
	}
	if e, ok := p.s.(Ender); ok {
		return e.AtEnd()
	}
	return true
}

var (
	litNull  = mem.S("null")
	litTrue  = mem.S("true")
	litFalse = mem.S("false")
)

func (p *parser) recoverParseError(errp *error) {
	if perr := recover(); perr != nil {
		if err, ok := perr.(*ParseError); ok {
			*errp = err
			return
		}
		panic(perr)
	}
}

func (p *parser) fail(code ErrorCode) { p.failAt(code, p.s.Tell()) }

func (p *parser) failAt(code ErrorCode, offset int) {
	panic(&ParseError{Code: code, Offset: offset})
}

// check stops the parse with ErrTermination if the handler declined to
// continue.
func (p *parser) check(ok bool) {
	if !ok {
		p.fail(ErrTermination)
	}
}

// parseValue consumes a single value of any type at the given nesting depth.
// Precondition: the stream is positioned at a non-space byte.
func (p *parser) parseValue(depth int) {
	switch p.s.Peek() {
	case 'n':
		p.parseLiteral(litNull)
		p.check(p.h.Null())
	case 't':
		p.parseLiteral(litTrue)
		p.check(p.h.Bool(true))
	case 'f':
		p.parseLiteral(litFalse)
		p.check(p.h.Bool(false))
	case '"':
		p.parseString(false)
	case '{':
		p.parseObject(depth + 1)
	case '[':
		p.parseArray(depth + 1)
	default:
		p.parseNumber()
	}
}

func (p *parser) parseLiteral(lit mem.RO) {
	for i := 0; i < lit.Len(); i++ {
		if p.s.Peek() != lit.At(i) {
			p.fail(ErrValueInvalid)
		}
		p.s.Take()
	}
}

func (p *parser) enter(depth int) {
	if depth > p.maxDepth {
		p.fail(ErrDepthExceeded)
	}
}

// parseObject consumes an object and its members.
// Precondition: the stream is positioned at "{".
func (p *parser) parseObject(depth int) {
	p.enter(depth)
	p.s.Take()
	p.check(p.h.StartObject())

	p.skipSpace()
	if p.consume('}') {
		p.check(p.h.EndObject(0))
		return
	}
	for n := 0; ; {
		if p.s.Peek() != '"' {
			p.fail(ErrObjectMissName)
		}
		p.parseString(true)

		p.skipSpace()
		if !p.consume(':') {
			p.fail(ErrObjectMissColon)
		}
		p.skipSpace()
		p.parseValue(depth)
		n++

		p.skipSpace()
		switch p.s.Peek() {
		case ',':
			p.s.Take()
			p.skipSpace()
			if p.flags&TrailingCommas != 0 && p.consume('}') {
				p.check(p.h.EndObject(n))
				return
			}
		case '}':
			p.s.Take()
			p.check(p.h.EndObject(n))
			return
		default:
			p.fail(ErrObjectMissCommaOrCurlyBracket)
		}
	}
}

// parseArray consumes an array and its elements.
// Precondition: the stream is positioned at "[".
func (p *parser) parseArray(depth int) {
	p.enter(depth)
	p.s.Take()
	p.check(p.h.StartArray())

	p.skipSpace()
	if p.consume(']') {
		p.check(p.h.EndArray(0))
		return
	}
	for n := 0; ; {
		p.parseValue(depth)
		n++

		p.skipSpace()
		switch p.s.Peek() {
		case ',':
			p.s.Take()
			p.skipSpace()
			if p.flags&TrailingCommas != 0 && p.consume(']') {
				p.check(p.h.EndArray(n))
				return
			}
		case ']':
			p.s.Take()
			p.check(p.h.EndArray(n))
			return
		default:
			p.fail(ErrArrayMissCommaOrSquareBracket)
		}
	}
}

// parseString consumes a quoted string and reports it as a key or a value.
// Escapes are checked here and decoded once the closing quote is found.
// Precondition: the stream is positioned at the opening quotation mark.
func (p *parser) parseString(isKey bool) {
	start := p.s.Tell()
	p.s.Take()
	p.raw = p.raw[:0]
	var hasEsc bool
	for {
		c := p.s.Peek()
		switch {
		case c == '"':
			p.s.Take()
			p.emitString(start, isKey, hasEsc)
			return
		case c == '\\':
			hasEsc = true
			p.scanEscape()
		case c == 0 && p.atEnd():
			p.fail(ErrStringMissQuotationMark)
		case c < ' ':
			p.fail(ErrStringInvalidEncoding)
		default:
			p.raw = append(p.raw, p.s.Take())
		}
	}
}

// scanEscape consumes and checks a single escape sequence, copying its raw
// text into the string buffer.
func (p *parser) scanEscape() {
	offset := p.s.Tell()
	p.raw = append(p.raw, p.s.Take())
	switch c := p.s.Peek(); c {
	case '"', '\\', '/', 'b', 'f', 'n', 'r', 't':
		p.raw = append(p.raw, p.s.Take())
	case 'u':
		p.raw = append(p.raw, p.s.Take())
		v := p.scanHex4()
		if escape.IsLowSurrogate(v) {
			p.failAt(ErrStringUnicodeSurrogateInvalid, offset)
		} else if escape.IsHighSurrogate(v) {
			if p.s.Peek() != '\\' {
				p.failAt(ErrStringUnicodeSurrogateInvalid, offset)
			}
			p.raw = append(p.raw, p.s.Take())
			if p.s.Peek() != 'u' {
				p.failAt(ErrStringUnicodeSurrogateInvalid, offset)
			}
			p.raw = append(p.raw, p.s.Take())
			if lo := p.scanHex4(); !escape.IsLowSurrogate(lo) {
				p.failAt(ErrStringUnicodeSurrogateInvalid, offset)
			}
		}
	default:
		p.failAt(ErrStringEscapeInvalid, offset)
	}
}

// scanHex4 consumes exactly four hexadecimal digits and returns their value.
func (p *parser) scanHex4() rune {
	var v rune
	for range 4 {
		c := p.s.Peek()
		v <<= 4
		switch {
		case '0' <= c && c <= '9':
			v += rune(c - '0')
		case 'a' <= c && c <= 'f':
			v += rune(c - 'a' + 10)
		case 'A' <= c && c <= 'F':
			v += rune(c - 'A' + 10)
		default:
			p.fail(ErrStringUnicodeEscapeInvalidHex)
		}
		p.raw = append(p.raw, p.s.Take())
	}
	return v
}

func (p *parser) emitString(start int, isKey, hasEsc bool) {
	text := p.raw
	if hasEsc {
		dec, err := escape.AppendUnquote(p.dec[:0], mem.B(p.raw))
		if err != nil {
			p.failAt(ErrStringEscapeInvalid, start) // unreachable; escapes were checked
		}
		p.dec = dec
		text = dec
	}
	if p.flags&ValidateEncoding != 0 && !utf8.Valid(text) {
		p.failAt(ErrStringInvalidEncoding, start)
	}

	// The buffers are reused for the next string, so the handler must copy.
	if isKey {
		p.check(p.h.Key(text, true))
	} else {
		p.check(p.h.String(text, true))
	}
}

// parseNumber consumes a number and reports it using the narrowest handler
// method that represents it exactly.
func (p *parser) parseNumber() {
	start := p.s.Tell()
	p.raw = p.raw[:0]

	minus := p.s.Peek() == '-'
	if minus {
		p.raw = append(p.raw, p.s.Take())
	}

	switch c := p.s.Peek(); {
	case c == '0':
		p.raw = append(p.raw, p.s.Take())
	case '1' <= c && c <= '9':
		p.takeDigits()
	default:
		p.fail(ErrValueInvalid)
	}

	isInt := true
	if p.s.Peek() == '.' {
		isInt = false
		p.raw = append(p.raw, p.s.Take())
		if !isDigit(p.s.Peek()) {
			p.fail(ErrNumberMissFraction)
		}
		p.takeDigits()
	}
	if c := p.s.Peek(); c == 'e' || c == 'E' {
		isInt = false
		p.raw = append(p.raw, p.s.Take())
		if c := p.s.Peek(); c == '+' || c == '-' {
			p.raw = append(p.raw, p.s.Take())
		}
		if !isDigit(p.s.Peek()) {
			p.fail(ErrNumberMissExponent)
		}
		p.takeDigits()
	}

	if p.flags&NumbersAsStrings != 0 {
		p.check(p.h.RawNumber(p.raw, true))
		return
	}

	text := string(p.raw)
	if isInt {
		if minus {
			if v, err := strconv.ParseInt(text, 10, 64); err == nil {
				if v >= math.MinInt32 {
					p.check(p.h.Int(int32(v)))
				} else {
					p.check(p.h.Int64(v))
				}
				return
			}
		} else if v, err := strconv.ParseUint(text, 10, 64); err == nil {
			if v <= math.MaxUint32 {
				p.check(p.h.Uint(uint32(v)))
			} else {
				p.check(p.h.Uint64(v))
			}
			return
		}
		// Out of range for 64 bits; fall through to floating point.
	}
	f, _ := strconv.ParseFloat(text, 64)
	if math.IsInf(f, 0) {
		p.failAt(ErrNumberTooBig, start)
	}
	p.check(p.h.Double(f))
}

func (p *parser) takeDigits() {
	for isDigit(p.s.Peek()) {
		p.raw = append(p.raw, p.s.Take())
	}
}

// consume reports whether the current byte is c, and if so consumes it.
func (p *parser) consume(c byte) bool {
	if p.s.Peek() == c {
		p.s.Take()
		return true
	}
	return false
}

func (p *parser) skipSpace() {
	for {
		switch p.s.Peek() {
		case ' ', '\n', '\r', '\t':
			p.s.Take()
		case '/':
			if p.flags&Comments == 0 {
				return
			}
			p.skipComment()
		default:
			return
		}
	}
}

// skipComment consumes a block or line comment. A line comment ends before
// its terminating newline, which is left for skipSpace.
// Precondition: the stream is positioned at "/".
func (p *parser) skipComment() {
	p.s.Take()
	switch p.s.Take() {
	case '*':
		for {
			switch p.s.Take() {
			case 0:
				p.fail(ErrUnspecificSyntax)
			case '*':
				if p.consume('/') {
					return
				}
			}
		}
	case '/':
		for c := p.s.Peek(); c != 0 && c != '\n'; c = p.s.Peek() {
			p.s.Take()
		}
	default:
		p.fail(ErrUnspecificSyntax)
	}
}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }
