package xmlwriter

import (
	"strconv"
	"unicode/utf8"
)

// escapeOptions selects the numeric-reference policy for a single escaping
// run. Options are read from the Writer on every write, so toggling them
// takes effect on the next operation.
type escapeOptions struct {
	// nonASCII escapes every character above 0x7E as a numeric reference.
	nonASCII bool

	// decimal emits &#NNN; references instead of the default &#xHHH;.
	decimal bool
}

var (
	escAmp  = []byte("&amp;")
	escLt   = []byte("&lt;")
	escGt   = []byte("&gt;")
	escQuot = []byte("&quot;")
	escApos = []byte("&apos;")
	escFFFD = []byte("�")
)

// plainChar marks the bytes that never need escaping under any option set:
// tab, LF, CR and printable ASCII excluding the markup and quote characters.
var plainChar = func() (t [256]bool) {
	for c := 0x20; c <= 0x7E; c++ {
		t[c] = true
	}
	t['&'], t['<'], t['>'], t['"'], t['\''] = false, false, false, false, false
	t['\t'], t['\n'], t['\r'] = true, true, true
	return
}()

// escapeString writes s with XML escaping applied. The markup characters
// &, <, > always become named entities. Tab, LF and CR pass through raw so
// caller formatting survives. Other characters below 0x20, and characters
// above 0x7E when the non-ASCII option is on, become numeric character
// references; code points above the BMP are emitted as one reference for the
// full code point. Quote characters are escaped only in quoting mode, which
// printQuoted uses for attribute values.
func (p *printer) escapeString(s string, quoting bool, o escapeOptions) error {
	sz := len(s)
	i := 0
	for ; i < sz; i++ {
		if !plainChar[s[i]] {
			goto slow
		}
	}
	p.WriteString(s)
	return nil

slow:
	p.WriteString(s[:i])
	last := i
	for i < sz {
		r, width := utf8.DecodeRuneInString(s[i:])
		i += width
		var esc []byte
		switch r {
		case '&':
			esc = escAmp
		case '<':
			esc = escLt
		case '>':
			esc = escGt
		case '"':
			if !quoting {
				continue
			}
			esc = escQuot
		case '\'':
			if !quoting {
				continue
			}
			esc = escApos
		case '\t', '\n', '\r':
			continue
		default:
			if r == utf8.RuneError && width == 1 {
				esc = escFFFD
				break
			}
			if r < 0x20 || (o.nonASCII && r > 0x7E) {
				p.WriteString(s[last : i-width])
				p.writeCharRef(r, o)
				last = i
			}
			continue
		}
		p.WriteString(s[last : i-width])
		p.Write(esc)
		last = i
	}
	p.WriteString(s[last:])
	return p.cachedWriteError()
}

// writeCharRef writes a numeric character reference for r, hexadecimal by
// default or decimal when configured.
func (p *printer) writeCharRef(r rune, o escapeOptions) {
	if o.decimal {
		p.WriteString("&#")
		p.WriteString(strconv.FormatInt(int64(r), 10))
	} else {
		p.WriteString("&#x")
		p.WriteString(strconv.FormatInt(int64(r), 16))
	}
	p.WriteByte(';')
}
