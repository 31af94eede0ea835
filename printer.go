package xmlwriter

import (
	"bufio"
	"fmt"
	"strings"
)

// printer owns the output buffer. Write errors are sticky inside the
// bufio.Writer; cachedWriteError retrieves them so that long runs of writes
// only need a single error check at the end.
type printer struct {
	*bufio.Writer
}

func (p *printer) cachedWriteError() error {
	_, err := p.Write(nil)
	return err
}

// printQuoted writes value surrounded by double quotes, escaping the content
// with the quoting rules (embedded quotes become entities).
func (p *printer) printQuoted(value string, o escapeOptions) error {
	p.WriteByte('"')
	p.escapeString(value, true, o)
	p.WriteByte('"')
	return p.cachedWriteError()
}

// printAttr writes a name="value" pair preceded by a single space.
func (p *printer) printAttr(name, value string, o escapeOptions) error {
	p.WriteByte(' ')
	p.WriteString(name)
	p.WriteByte('=')
	return p.printQuoted(value, o)
}

// printExternalID writes the PUBLIC/SYSTEM identifier portion of a DOCTYPE
// declaration: PUBLIC "pub" "sys" when a public identifier is present,
// SYSTEM "sys" otherwise.
func (p *printer) printExternalID(publicID, systemID string) error {
	if publicID != "" {
		p.WriteString("PUBLIC \"")
		p.WriteString(publicID)
		p.WriteByte('"')
	} else {
		p.WriteString("SYSTEM")
	}
	p.WriteString(" \"")
	p.WriteString(systemID)
	p.WriteByte('"')
	return p.cachedWriteError()
}

// printEntityValue writes an entity value quoted with whichever quote
// character the value does not contain.
func (p *printer) printEntityValue(value string) error {
	var qc byte = '"'
	if strings.IndexByte(value, '"') >= 0 {
		if strings.IndexByte(value, '\'') >= 0 {
			return fmt.Errorf("xmlwriter: entity value must not contain both quote characters")
		}
		qc = '\''
	}
	p.WriteByte(qc)
	p.WriteString(value)
	p.WriteByte(qc)
	return p.cachedWriteError()
}
