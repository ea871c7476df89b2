// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package escape

import (
	"unicode/utf8"

	"go4.org/mem"
)

var controlEsc = [...]byte{
	'\b': 'b',
	'\f': 'f',
	'\n': 'n',
	'\r': 'r',
	'\t': 't',
	' ':  ' ', // sentinel
}

var hexDigit = []byte("0123456789abcdef")

// Quote encodes src as an ESON escaped string, including the enclosing
// double quotation marks. Invalid UTF-8 is replaced by the Unicode
// replacement rune.
func Quote(src mem.RO) []byte {
	buf := make([]byte, 0, src.Len()+2)
	buf = append(buf, '"')
	for src.Len() != 0 {
		r, n := mem.DecodeRune(src)
		src = src.SliceFrom(max(n, 1))

		switch {
		case r < ' ':
			if b := controlEsc[r]; b != 0 {
				buf = append(buf, '\\', b)
			} else {
				buf = append(buf, '\\', 'u', '0', '0', hexDigit[int(r>>4)], hexDigit[int(r&15)])
			}
		case r == '\\' || r == '"':
			buf = append(buf, '\\', byte(r))
		case r == 0x7f, r == '\u2028', r == '\u2029':
			buf = append(buf, `\u{`...)
			buf = appendHex(buf, r)
			buf = append(buf, '}')
		default:
			buf = utf8.AppendRune(buf, r)
		}
	}
	return append(buf, '"')
}

func appendHex(buf []byte, r rune) []byte {
	var tmp [6]byte
	i := len(tmp)
	for {
		i--
		tmp[i] = hexDigit[r&15]
		r >>= 4
		if r == 0 {
			break
		}
	}
	return append(buf, tmp[i:]...)
}
