// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package escape handles quoting and unquoting of ESON escaped strings.
package escape

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"go4.org/mem"
)

// Unquote decodes the body of an ESON escaped string. The input must have the
// enclosing double quotation marks already removed.
//
// Escape sequences are replaced with their unescaped equivalents, and a
// backslash followed by whitespace is removed together with the whole run of
// whitespace after it. Unquote reports an error for an invalid or incomplete
// escape sequence.
func Unquote(src mem.RO) ([]byte, error) {
	dec := make([]byte, 0, src.Len())
	for {
		i := mem.IndexByte(src, '\\')
		if i < 0 {
			return mem.Append(dec, src), nil
		}
		dec = mem.Append(dec, src.SliceTo(i))

		var n int
		var err error
		dec, n, err = Decode(dec, src.SliceFrom(i+1))
		if err != nil {
			return nil, err
		}
		src = src.SliceFrom(i + 1 + n)
	}
}

// Decode decodes a single escape sequence at the beginning of src, which
// starts immediately after the backslash. It appends the decoded text to dst
// and returns the updated slice along with the number of bytes of src that
// were consumed.
//
// A line continuation (backslash followed by whitespace) decodes as empty.
func Decode(dst []byte, src mem.RO) ([]byte, int, error) {
	if src.Len() == 0 {
		return dst, 0, errors.New("incomplete escape sequence")
	}
	switch b := src.At(0); b {
	case '"', '\\', '/':
		return append(dst, b), 1, nil
	case 'b':
		return append(dst, '\b'), 1, nil
	case 'f':
		return append(dst, '\f'), 1, nil
	case 'n':
		return append(dst, '\n'), 1, nil
	case 'r':
		return append(dst, '\r'), 1, nil
	case 't':
		return append(dst, '\t'), 1, nil
	case ' ', '\t', '\n', '\r':
		n := 1
		for n < src.Len() && isSpace(src.At(n)) {
			n++
		}
		return dst, n, nil
	case 'u':
		r, n, err := decodeUnicode(src.SliceFrom(1))
		if err != nil {
			return dst, 0, err
		}
		return utf8.AppendRune(dst, r), 1 + n, nil
	default:
		r, _ := mem.DecodeRune(src)
		return dst, 0, fmt.Errorf("invalid escape sequence %q", `\`+string(r))
	}
}

// decodeUnicode decodes the operand of a \u escape, either a braced code
// point \u{H...} of 1 to 6 hex digits, or exactly four hex digits. A high
// surrogate in the four-digit form must be followed by an escaped low
// surrogate, and the pair decodes to a single rune.
func decodeUnicode(src mem.RO) (rune, int, error) {
	if src.Len() != 0 && src.At(0) == '{' {
		end := mem.IndexByte(src, '}')
		if end < 2 || end > 7 {
			return 0, 0, errors.New(`invalid Unicode escape: want \u{H} with 1 to 6 hex digits`)
		}
		v, err := parseHex(src.Slice(1, end))
		if err != nil {
			return 0, 0, err
		}
		if !isScalar(v) {
			return 0, 0, fmt.Errorf("invalid Unicode code point U+%X", v)
		}
		return rune(v), end + 1, nil
	}

	if src.Len() < 4 {
		return 0, 0, errors.New("incomplete Unicode escape")
	}
	v, err := parseHex(src.SliceTo(4))
	if err != nil {
		return 0, 0, err
	}
	if v < 0xD800 || v > 0xDFFF {
		return rune(v), 4, nil
	} else if v >= 0xDC00 {
		return 0, 0, fmt.Errorf("unpaired low surrogate U+%X", v)
	}

	// A high surrogate must be followed by \uDC00 to \uDFFF.
	rest := src.SliceFrom(4)
	if rest.Len() < 6 || rest.At(0) != '\\' || rest.At(1) != 'u' {
		return 0, 0, fmt.Errorf("unpaired high surrogate U+%X", v)
	}
	lo, err := parseHex(rest.Slice(2, 6))
	if err != nil {
		return 0, 0, err
	} else if lo < 0xDC00 || lo > 0xDFFF {
		return 0, 0, fmt.Errorf("unpaired high surrogate U+%X", v)
	}
	return rune(0x10000 + (v-0xD800)<<10 + (lo - 0xDC00)), 10, nil
}

func isScalar(v int64) bool { return v <= utf8.MaxRune && (v < 0xD800 || v > 0xDFFF) }

func isSpace(b byte) bool { return b == ' ' || b == '\t' || b == '\n' || b == '\r' }

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
