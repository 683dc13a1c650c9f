// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package escape handles quoting and unquoting of JSON strings.
package escape

import (
	"errors"
	"fmt"
	"unicode/utf16"
	"unicode/utf8"

	"go4.org/mem"
)

// Unquote decodes a byte slice containing the JSON encoding of a string. The
// input must have the enclosing double quotation marks already removed.
func Unquote(src mem.RO) ([]byte, error) {
	return AppendUnquote(make([]byte, 0, src.Len()), src)
}

// AppendUnquote decodes src as Unquote does, appending the result to dst and
// returning the extended slice.
//
// Escape sequences are replaced with their unescaped equivalents, and a
// \u escape for a high surrogate followed by a \u escape for a low surrogate
// is combined into a single rune. Invalid escapes and unpaired surrogates are
// replaced by the Unicode replacement rune. AppendUnquote reports an error for
// an incomplete escape sequence.
func AppendUnquote(dst []byte, src mem.RO) ([]byte, error) {
	i := mem.IndexByte(src, '\\')
	if i < 0 {
		return mem.Append(dst, src), nil
	}

	for src.Len() != 0 {
		dst = mem.Append(dst, src.SliceTo(i))

		src = src.SliceFrom(i + 1)
		if src.Len() == 0 {
			return nil, errors.New("incomplete escape sequence")
		}
		r, n := mem.DecodeRune(src)
		if n == 0 {
			n++
		}

		src = src.SliceFrom(n)
		switch r {
		case '"', '\\', '/':
			dst = append(dst, byte(r))
		case 'b':
			dst = append(dst, '\b')
		case 'f':
			dst = append(dst, '\f')
		case 'n':
			dst = append(dst, '\n')
		case 'r':
			dst = append(dst, '\r')
		case 't':
			dst = append(dst, '\t')
		case 'u':
			if src.Len() < 4 {
				return nil, errors.New("incomplete Unicode escape")
			}
			v, err := parseHex(src.SliceTo(4))
			src = src.SliceFrom(4)
			if err != nil {
				dst = utf8.AppendRune(dst, utf8.RuneError)
				break
			}
			r := rune(v)
			if utf16.IsSurrogate(r) {
				r, src = lowSurrogate(r, src)
			}
			dst = utf8.AppendRune(dst, r)
		default:
			dst = utf8.AppendRune(dst, utf8.RuneError)
		}

		i = mem.IndexByte(src, '\\')
		if i < 0 {
			dst = mem.Append(dst, src)
			break
		}
	}
	return dst, nil
}

// lowSurrogate attempts to complete the surrogate pair begun by hi from the
// front of src. It returns the combined rune and the remaining input, or the
// replacement rune and src unmodified if src does not begin with a matching
// low surrogate escape.
func lowSurrogate(hi rune, src mem.RO) (rune, mem.RO) {
	if src.Len() < 6 || src.At(0) != '\\' || src.At(1) != 'u' {
		return utf8.RuneError, src
	}
	v, err := parseHex(src.Slice(2, 6))
	if err != nil {
		return utf8.RuneError, src
	}
	r := utf16.DecodeRune(hi, rune(v))
	if r == utf8.RuneError {
		return r, src
	}
	return r, src.SliceFrom(6)
}

// IsHighSurrogate reports whether v is the first half of a UTF-16 surrogate
// pair.
func IsHighSurrogate(v rune) bool { return 0xd800 <= v && v < 0xdc00 }

// IsLowSurrogate reports whether v is the second half of a UTF-16 surrogate
// pair.
func IsLowSurrogate(v rune) bool { return 0xdc00 <= v && v < 0xe000 }

func parseHex(data mem.RO) (int64, error) {
	var v int64
	for i := 0; i < data.Len(); i++ {
		b := data.At(i)
		v <<= 4
		if '0' <= b && b <= '9' {
			v += int64(b - '0')
		} else if 'a' <= b && b <= 'f' {
			v += int64(b - 'a' + 10)
		} else if 'A' <= b && b <= 'F' {
			v += int64(b - 'A' + 10)
		} else {
			return 0, fmt.Errorf("invalid hex digit %q", b)
		}
	}
	return v, nil
}
