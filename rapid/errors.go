// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package rapid

import "fmt"

// ErrorCode identifies the reason a parse stopped early. An ErrorCode is
// itself an error, so callers can write errors.Is(err, rapid.ErrTermination).
type ErrorCode int

// Constants defining the valid ErrorCode values.
const (
	ErrNone ErrorCode = iota // no error

	ErrDocumentEmpty           // the document is empty
	ErrDocumentRootNotSingular // the document root must not be followed by other values

	ErrValueInvalid // invalid value

	ErrObjectMissName                // missing a name for object member
	ErrObjectMissColon               // missing a colon after a name of object member
	ErrObjectMissCommaOrCurlyBracket // missing a comma or '}' after an object member

	ErrArrayMissCommaOrSquareBracket // missing a comma or ']' after an array element

	ErrStringUnicodeEscapeInvalidHex // incorrect hex digit after \u escape in string
	ErrStringUnicodeSurrogateInvalid // the surrogate pair in string is invalid
	ErrStringEscapeInvalid           // invalid escape character in string
	ErrStringMissQuotationMark       // missing a closing quotation mark in string
	ErrStringInvalidEncoding         // invalid encoding in string

	ErrNumberTooBig       // number too big to be stored in double
	ErrNumberMissFraction // missing fraction part in number
	ErrNumberMissExponent // missing exponent in number

	ErrTermination      // parsing was terminated by the handler
	ErrUnspecificSyntax // unspecific syntax error
	ErrDepthExceeded    // values are nested more deeply than allowed
)

var codeStr = [...]string{
	ErrNone: "no error",

	ErrDocumentEmpty:           "the document is empty",
	ErrDocumentRootNotSingular: "the document root must not be followed by other values",

	ErrValueInvalid: "invalid value",

	ErrObjectMissName:                "missing a name for object member",
	ErrObjectMissColon:               "missing a colon after a name of object member",
	ErrObjectMissCommaOrCurlyBracket: `missing a comma or "}" after an object member`,

	ErrArrayMissCommaOrSquareBracket: `missing a comma or "]" after an array element`,

	ErrStringUnicodeEscapeInvalidHex: `incorrect hex digit after \u escape in string`,
	ErrStringUnicodeSurrogateInvalid: "the surrogate pair in string is invalid",
	ErrStringEscapeInvalid:           "invalid escape character in string",
	ErrStringMissQuotationMark:       "missing a closing quotation mark in string",
	ErrStringInvalidEncoding:         "invalid encoding in string",

	ErrNumberTooBig:       "number too big to be stored in double",
	ErrNumberMissFraction: "missing fraction part in number",
	ErrNumberMissExponent: "missing exponent in number",

	ErrTermination:      "terminated by handler",
	ErrUnspecificSyntax: "unspecific syntax error",
	ErrDepthExceeded:    "maximum nesting depth exceeded",
}

func (c ErrorCode) String() string {
	if c < 0 || int(c) >= len(codeStr) {
		return fmt.Sprintf("unknown error %d", int(c))
	}
	return codeStr[c]
}

// Error satisfies the error interface.
func (c ErrorCode) Error() string { return c.String() }

// ParseError is the concrete type of errors reported by a Reader.
type ParseError struct {
	Code   ErrorCode // the reason parsing stopped
	Offset int       // the stream offset at which the condition was detected
}

// Error satisfies the error interface.
func (p *ParseError) Error() string {
	return fmt.Sprintf("at offset %d: %s", p.Offset, p.Code)
}

// Unwrap supports error wrapping. It reports the error code.
func (p *ParseError) Unwrap() error { return p.Code }

// Aborted reports whether p records a handler-requested stop rather than a
// problem with the input.
func (p *ParseError) Aborted() bool { return p.Code == ErrTermination }
