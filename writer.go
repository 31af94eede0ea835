package xmlwriter

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"golang.org/x/text/encoding"
)

const (
	defaultBufsize = 2048
	defaultIndent  = "    "
	defaultVersion = "1.0"
)

// FormattingHint tells EntityRefHint whether the reference participates in
// inline character data or stands on a line of its own when pretty-printing.
type FormattingHint int

const (
	// HintInline writes the reference in place.
	HintInline FormattingHint = iota

	// HintBlock surrounds the reference with newline and indent when
	// pretty-printing is enabled.
	HintBlock
)

// Writer serializes a stream of structural events as XML text on an
// io.Writer. Operations are validated against a state machine covering the
// whole document lifecycle; an event that is not legal in the current state
// fails with an *EventError and the document cannot be continued.
//
// A Writer drives exactly one document from StartDocument to EndDocument.
// Reset returns it to the initial state for a further document; pair it with
// SetOutput if the old sink is no longer usable.
//
// The Writer is not safe for concurrent use.
type Writer struct {
	printer printer
	out     io.Writer
	state   State
	stack   elemStack

	encoding string

	ns            nsContext
	nsPrefixCount int
	nsPrefixes    map[string]string
	nsDecls       map[string]string
	nsRootDecls   []string

	prettyPrint    bool
	indentStr      string
	offsetStr      string
	minimize       bool
	attrPerLine    bool
	specifiedAttr  bool
	escapeNonASCII bool
	useDecimal     bool
	xmlVersion     string
	standalone     bool

	// Determines how much memory the internal buffer will use. Set to 0 to
	// use the default.
	InitialBufSize int

	// Defaults to \n.
	NewlineString string
}

// Option is an option to the Writer.
type Option func(w *Writer)

// WithPrettyPrint enables pretty-printed output:
//
//	w := xmlwriter.Open(b, xmlwriter.WithPrettyPrint())
func WithPrettyPrint() Option {
	return func(w *Writer) { w.prettyPrint = true }
}

// WithIndentString enables pretty-printing with a specific indent string:
//
//	w := xmlwriter.Open(b, xmlwriter.WithIndentString("  "))
func WithIndentString(indent string) Option {
	return func(w *Writer) {
		w.prettyPrint = true
		w.indentStr = indent
	}
}

// WithAttrPerLine places every attribute and namespace declaration on its
// own line.
func WithAttrPerLine() Option {
	return func(w *Writer) { w.attrPerLine = true }
}

func newWriter(out io.Writer, options ...Option) *Writer {
	xw := &Writer{}
	xw.stack = newElemStack()
	xw.ns = newNSContext()
	xw.nsPrefixes = map[string]string{}
	xw.nsDecls = map[string]string{}
	xw.minimize = true
	xw.specifiedAttr = true
	xw.standalone = true
	xw.indentStr = defaultIndent
	xw.xmlVersion = defaultVersion
	xw.NewlineString = "\n"
	for _, o := range options {
		o(xw)
	}
	if xw.InitialBufSize <= 0 {
		xw.InitialBufSize = defaultBufsize
	}
	xw.out = out
	xw.printer = printer{Writer: bufio.NewWriterSize(out, xw.InitialBufSize)}
	return xw
}

// Open opens a Writer producing UTF-8 output. No encoding declaration is
// written into the prolog unless one is passed to StartDocumentEncoding.
func Open(w io.Writer, options ...Option) *Writer {
	return newWriter(w, options...)
}

// OpenEncoding opens a Writer that transcodes its output on the fly using
// the supplied encoder, and declares encstr in the document prolog.
//
// This example opens a writer producing ISO-8859-1 output:
//
//	enc := charmap.ISO8859_1.NewEncoder()
//	w := xmlwriter.OpenEncoding(b, "ISO-8859-1", enc)
//
// You should still write UTF-8 strings to the writer - they are converted
// on the fly to the target encoding.
func OpenEncoding(w io.Writer, encstr string, encoder *encoding.Encoder, options ...Option) *Writer {
	enc := encoding.HTMLEscapeUnsupported(encoder).Writer(w)
	xw := newWriter(enc, options...)
	xw.encoding = encstr
	return xw
}

// SetOutput points the writer at a fresh sink. The previous buffer is
// abandoned, not flushed; use this together with Reset when the old sink is
// in an inconsistent state after an error.
func (w *Writer) SetOutput(out io.Writer) {
	w.out = out
	w.printer = printer{Writer: bufio.NewWriterSize(out, w.InitialBufSize)}
}

// State returns the writer's current document state.
func (w *Writer) State() State { return w.state }

// Depth returns the number of currently open elements.
func (w *Writer) Depth() int { return w.stack.depth() }

// Flush ensures the output buffer accumulated inside the Writer is fully
// written to the underlying io.Writer. Closing the sink remains the
// caller's responsibility.
func (w *Writer) Flush() error {
	return w.printer.Flush()
}

// Reset abandons the current document and returns the writer to its initial
// state: the element stack, namespace scopes, synthesized prefix counter and
// state machine are cleared. Configuration, registered prefix preferences
// and the URI-to-prefix resolution cache are kept.
func (w *Writer) Reset() {
	w.stack.clear()
	w.ns.reset()
	w.nsPrefixCount = 0
	w.state = StateBeforeDoc
}

// {{{ configuration

// SetPrettyPrint enables or disables pretty-printed output. Takes effect on
// the next write.
func (w *Writer) SetPrettyPrint(enable bool) { w.prettyPrint = enable }

// PrettyPrint reports whether pretty-printing is enabled.
func (w *Writer) PrettyPrint() bool { return w.prettyPrint }

// SetIndentString sets the string written per nesting level when
// pretty-printing. Defaults to four spaces.
func (w *Writer) SetIndentString(indent string) { w.indentStr = indent }

// IndentString returns the per-level indent string.
func (w *Writer) IndentString() string { return w.indentStr }

// SetIndentOffset sets a constant offset written at the start of every
// indented line, followed by the per-level indent string.
func (w *Writer) SetIndentOffset(offset, indent string) {
	w.offsetStr = offset
	w.indentStr = indent
}

// OffsetString returns the constant line offset string.
func (w *Writer) OffsetString() string { return w.offsetStr }

// SetMinimizeEmpty controls whether an element with no content collapses to
// a self-closing tag. Defaults to true.
func (w *Writer) SetMinimizeEmpty(minimize bool) { w.minimize = minimize }

// MinimizeEmpty reports whether empty-tag minimization is enabled.
func (w *Writer) MinimizeEmpty() bool { return w.minimize }

// SetAttrPerLine controls whether each attribute and namespace declaration
// is written on its own line.
func (w *Writer) SetAttrPerLine(perLine bool) { w.attrPerLine = perLine }

// AttrPerLine reports whether attribute-per-line layout is enabled.
func (w *Writer) AttrPerLine() bool { return w.attrPerLine }

// SetSpecifiedAttributes controls whether only attributes actually present
// in the source (i.e. not defaulted from a DTD) are written. Defaults to
// true.
func (w *Writer) SetSpecifiedAttributes(specified bool) { w.specifiedAttr = specified }

// SpecifiedAttributes reports whether specified-attributes-only mode is on.
func (w *Writer) SpecifiedAttributes() bool { return w.specifiedAttr }

// SetEscapeNonASCII controls whether characters above 0x7E are written as
// numeric character references.
func (w *Writer) SetEscapeNonASCII(enable bool) { w.escapeNonASCII = enable }

// EscapeNonASCII reports whether non-ASCII escaping is enabled.
func (w *Writer) EscapeNonASCII() bool { return w.escapeNonASCII }

// SetUseDecimal selects decimal numeric character references instead of the
// default hexadecimal form.
func (w *Writer) SetUseDecimal(enable bool) { w.useDecimal = enable }

// UseDecimal reports whether decimal references are selected.
func (w *Writer) UseDecimal() bool { return w.useDecimal }

// SetStandalone sets the standalone value declared by StartDocument.
// Defaults to true.
func (w *Writer) SetStandalone(standalone bool) { w.standalone = standalone }

// Standalone returns the configured standalone value.
func (w *Writer) Standalone() bool { return w.standalone }

// SetXMLVersion sets the version declared in the prolog. Defaults to "1.0".
func (w *Writer) SetXMLVersion(version string) { w.xmlVersion = version }

// XMLVersion returns the declared XML version.
func (w *Writer) XMLVersion() string { return w.xmlVersion }

func (w *Writer) escOpts() escapeOptions {
	return escapeOptions{nonASCII: w.escapeNonASCII, decimal: w.useDecimal}
}

// }}}

// {{{ namespace registration

// AddNSPrefix registers the preferred prefix for a namespace URI. The
// preference is consulted when the URI is first resolved; a prefix already
// bound to a different URI in scope is not hijacked.
func (w *Writer) AddNSPrefix(prefix, uri string) *Writer {
	w.nsPrefixes[uri] = prefix
	return w
}

// AddNSRootDecl forces the namespace URI to be declared on the document
// root element, even if it is first used much deeper in the document.
func (w *Writer) AddNSRootDecl(uri string) *Writer {
	for _, u := range w.nsRootDecls {
		if u == uri {
			return w
		}
	}
	w.nsRootDecls = append(w.nsRootDecls, uri)
	return w
}

// AddNSRootDeclPrefix registers a preferred prefix for the URI and forces
// its declaration on the root element.
func (w *Writer) AddNSRootDeclPrefix(prefix, uri string) *Writer {
	return w.AddNSPrefix(prefix, uri).AddNSRootDecl(uri)
}

// }}}

// {{{ document

// StartDocument begins the document, writing the XML prolog using the
// configured version and standalone values. The encoding passed to
// OpenEncoding, if any, is declared.
func (w *Writer) StartDocument() error {
	return w.startDocument(w.encoding, w.standalone, false)
}

// StartDocumentEncoding begins the document with an explicit encoding
// declaration and standalone value.
func (w *Writer) StartDocumentEncoding(encoding string, standalone bool) error {
	return w.startDocument(encoding, standalone, false)
}

// StartFragment begins a document fragment: the writer runs through the
// same states but no prolog is written.
func (w *Writer) StartFragment() error {
	return w.startDocument("", w.standalone, true)
}

func (w *Writer) startDocument(encoding string, standalone, fragment bool) error {
	if _, err := w.handle(EventStartDoc); err != nil {
		return err
	}
	if !fragment {
		w.printer.WriteString("<?xml version=")
		w.printer.printQuoted(w.xmlVersion, w.escOpts())
		if encoding != "" {
			w.printer.WriteString(" encoding=")
			w.printer.printQuoted(encoding, w.escOpts())
		}
		w.printer.WriteString(" standalone=")
		if standalone {
			w.printer.WriteString(`"yes"`)
		} else {
			w.printer.WriteString(`"no"`)
		}
		w.printer.WriteString("?>")
		w.writeNewline()
	}
	return w.printer.cachedWriteError()
}

// EndDocument terminates the document, closing a still-pending root start
// tag if necessary, and flushes the output buffer.
func (w *Writer) EndDocument() error {
	if _, err := w.handle(EventEndDoc); err != nil {
		return err
	}
	w.writeNewline()
	if err := w.printer.cachedWriteError(); err != nil {
		return err
	}
	return w.Flush()
}

// }}}

// {{{ elements

// StartElement opens an element with no namespace. Attributes may be
// supplied here or buffered afterwards with the AddAttribute methods, up to
// the point the start tag is flushed by the next structural event.
func (w *Writer) StartElement(local string, attrs ...Attr) error {
	return w.startElement("", local, "", attrs, false)
}

// StartElementNS opens an element with a namespace URI and an optional
// qualified-name hint for prefix resolution.
func (w *Writer) StartElementNS(uri, local, qname string, attrs ...Attr) error {
	return w.startElement(uri, local, qname, attrs, false)
}

// EmptyElement writes an element that self-closes when the next event
// arrives, regardless of the minimization setting.
func (w *Writer) EmptyElement(local string, attrs ...Attr) error {
	return w.startElement("", local, "", attrs, true)
}

// EmptyElementNS is EmptyElement with a namespace URI and qualified-name
// hint.
func (w *Writer) EmptyElementNS(uri, local, qname string, attrs ...Attr) error {
	return w.startElement(uri, local, qname, attrs, true)
}

func (w *Writer) startElement(uri, local, qname string, attrs []Attr, empty bool) error {
	prev, err := w.handle(EventStartElem)
	if err != nil {
		return err
	}
	w.ns.push()
	frame := element{uri: uri, local: local, qname: qname, empty: empty, containing: prev}
	if len(attrs) > 0 {
		frame.attrs = append(Attrs(nil), attrs...)
	}
	w.stack.push(frame)
	if w.stack.depth() == 1 {
		w.declareRootNamespaces()
	}
	return w.printer.cachedWriteError()
}

// EndElement closes the innermost open element. If its start tag is still
// pending the element is minimized to a self-closing tag when minimization
// is enabled.
func (w *Writer) EndElement() error {
	_, err := w.handle(EventEndElem)
	return err
}

// }}}

// {{{ attributes

// SetAttributes replaces the buffered attribute set of the pending start
// tag.
func (w *Writer) SetAttributes(attrs Attrs) error {
	if _, err := w.handle(EventAttribute); err != nil {
		return err
	}
	w.stack.top().attrs = append(Attrs(nil), attrs...)
	return nil
}

// AddAttributes appends to the buffered attribute set of the pending start
// tag.
func (w *Writer) AddAttributes(attrs Attrs) error {
	if _, err := w.handle(EventAttribute); err != nil {
		return err
	}
	top := w.stack.top()
	top.attrs = append(top.attrs, attrs...)
	return nil
}

// AddAttribute buffers a single un-namespaced attribute on the pending
// start tag.
func (w *Writer) AddAttribute(local, value string) error {
	return w.AddAttributeNS("", local, "", "", value)
}

// AddAttributeNS buffers a single fully qualified attribute on the pending
// start tag.
func (w *Writer) AddAttributeNS(uri, local, qname, typ, value string) error {
	if _, err := w.handle(EventAttribute); err != nil {
		return err
	}
	top := w.stack.top()
	top.attrs = append(top.attrs, Attr{URI: uri, Local: local, QName: qname, Type: typ, Value: value})
	return nil
}

// }}}

// {{{ content

// Characters writes escaped character data, or raw data when inside a CDATA
// section.
func (w *Writer) Characters(data string) error {
	if _, err := w.handle(EventCharacters); err != nil {
		return err
	}
	if w.state == StateInCData {
		w.printer.WriteString(data)
		return w.printer.cachedWriteError()
	}
	return w.printer.escapeString(data, false, w.escOpts())
}

// Data writes character data without any escaping. The caller is
// responsible for the well-formedness of the result.
func (w *Writer) Data(data string) error {
	if _, err := w.handle(EventCharacters); err != nil {
		return err
	}
	w.printer.WriteString(data)
	return w.printer.cachedWriteError()
}

// StartCData opens a CDATA section. Characters written until EndCData
// bypass escaping entirely.
func (w *Writer) StartCData() error {
	if _, err := w.handle(EventStartCData); err != nil {
		return err
	}
	w.printer.WriteString("<![CDATA[")
	return w.printer.cachedWriteError()
}

// EndCData closes the open CDATA section.
func (w *Writer) EndCData() error {
	if _, err := w.handle(EventEndCData); err != nil {
		return err
	}
	w.printer.WriteString("]]>")
	return w.printer.cachedWriteError()
}

// CDataSection writes a complete CDATA section around data.
func (w *Writer) CDataSection(data string) error {
	if err := w.StartCData(); err != nil {
		return err
	}
	if err := w.Characters(data); err != nil {
		return err
	}
	return w.EndCData()
}

// Comment writes an XML comment. Inside a DTD the comment is consumed
// without output.
func (w *Writer) Comment(text string) error {
	if _, err := w.handle(EventComment); err != nil {
		return err
	}
	if w.state != StateInDTD {
		w.printer.WriteString("<!--")
		w.printer.WriteString(text)
		w.printer.WriteString("-->")
	}
	return w.printer.cachedWriteError()
}

// PI writes a processing instruction: <?target data?>.
func (w *Writer) PI(target, data string) error {
	if _, err := w.handle(EventPI); err != nil {
		return err
	}
	w.printer.WriteString("<?")
	w.printer.WriteString(target)
	w.printer.WriteByte(' ')
	w.printer.WriteString(data)
	w.printer.WriteString("?>")
	return w.printer.cachedWriteError()
}

// EntityRef writes an inline entity reference: &name;.
func (w *Writer) EntityRef(name string) error {
	return w.EntityRefHint(name, HintInline)
}

// EntityRefHint writes an entity reference with a formatting hint. A block
// reference is set off with newline and indent on both sides when
// pretty-printing.
func (w *Writer) EntityRefHint(name string, hint FormattingHint) error {
	ev := EventInlineRef
	if hint == HintBlock {
		ev = EventBlockRef
	}
	if _, err := w.handle(ev); err != nil {
		return err
	}
	if w.prettyPrint && hint == HintBlock {
		w.writeNewline()
		w.writeIndent(1)
	}
	w.printer.WriteByte('&')
	w.printer.WriteString(name)
	w.printer.WriteByte(';')
	if w.prettyPrint && hint == HintBlock {
		w.writeNewline()
		w.writeIndent(1)
	}
	return w.printer.cachedWriteError()
}

// CharacterRef writes a decimal numeric character reference for r. The
// decimal form is used regardless of the UseDecimal setting.
func (w *Writer) CharacterRef(r rune) error {
	if _, err := w.handle(EventInlineRef); err != nil {
		return err
	}
	w.printer.WriteString("&#")
	w.printer.WriteString(strconv.Itoa(int(r)))
	w.printer.WriteByte(';')
	return w.printer.cachedWriteError()
}

// Newline writes a line break, followed by one extra level of indent when
// pretty-printing so trailing inline content lines up under the current
// element.
func (w *Writer) Newline() error {
	if _, err := w.handle(EventNewline); err != nil {
		return err
	}
	w.writeNewline()
	if w.prettyPrint && w.state != StateInCData {
		w.writeIndent(1)
	}
	return w.printer.cachedWriteError()
}

// }}}

// {{{ internal layout and tag assembly

func (w *Writer) writeNewline() {
	w.printer.WriteString(w.NewlineString)
}

// writeIndent emits offset + indent repeated (depth - 1 + levelAdjust)
// times. Depth 1 is the root element.
func (w *Writer) writeIndent(levelAdjust int) {
	if w.offsetStr != "" {
		w.printer.WriteString(w.offsetStr)
	}
	level := w.stack.depth() - 1 + levelAdjust
	for i := 0; i < level; i++ {
		w.printer.WriteString(w.indentStr)
	}
}

// writeStartElement flushes the pending start tag. When the element was
// pushed as empty, or minimized is true, the tag self-closes and the frame
// is popped.
func (w *Writer) writeStartElement(minimized bool) error {
	el := w.stack.top()
	if w.prettyPrint && el.containing != StateAfterData && w.stack.depth() > 1 {
		w.writeNewline()
		w.writeIndent(0)
	}
	w.printer.WriteByte('<')
	w.writeName(el.uri, el.local, el.qname, true)
	attrCount := len(el.attrs)
	w.writeAttrs(el.attrs)
	numDecls := w.writeNSDecls()
	if w.attrPerLine && attrCount+numDecls > 0 {
		w.writeNewline()
		w.writeIndent(0)
	}
	if el.empty || minimized {
		w.printer.WriteString("/>")
		w.closeElement()
	} else {
		w.printer.WriteByte('>')
	}
	return w.printer.cachedWriteError()
}

func (w *Writer) writeEndElement() error {
	if w.stack.depth() == 0 {
		return fmt.Errorf("xmlwriter: no open element to end")
	}
	el := w.stack.top()
	if w.prettyPrint && w.state != StateAfterData {
		w.writeNewline()
		w.writeIndent(0)
	}
	w.printer.WriteString("</")
	w.writeName(el.uri, el.local, el.qname, true)
	w.printer.WriteByte('>')
	w.closeElement()
	return w.printer.cachedWriteError()
}

func (w *Writer) closeElement() {
	w.stack.pop()
	w.ns.pop()
}

func (w *Writer) writeAttrs(attrs Attrs) {
	for _, a := range attrs {
		if w.specifiedAttr && a.Unspecified {
			continue
		}
		if w.attrPerLine {
			w.writeNewline()
			w.writeIndent(0)
			w.printer.WriteString(w.indentStr)
		} else {
			w.printer.WriteByte(' ')
		}
		w.writeName(a.URI, a.Local, a.QName, false)
		w.printer.WriteByte('=')
		w.printer.printQuoted(a.Value, w.escOpts())
	}
}

// writeNSDecls emits an xmlns attribute for every prefix declared while
// assembling the current start tag and reports how many were written.
func (w *Writer) writeNSDecls() int {
	prefixes := w.ns.declared()
	for _, prefix := range prefixes {
		if w.attrPerLine {
			w.writeNewline()
			w.writeIndent(0)
			w.printer.WriteString(w.indentStr)
		} else {
			w.printer.WriteByte(' ')
		}
		w.printer.WriteString("xmlns")
		if prefix != "" {
			w.printer.WriteByte(':')
			w.printer.WriteString(prefix)
		}
		w.printer.WriteByte('=')
		uri, _ := w.ns.uri(prefix)
		w.printer.printQuoted(uri, w.escOpts())
	}
	return len(prefixes)
}

// writeName resolves and writes a qualified name. An empty local name falls
// back to the qname verbatim.
func (w *Writer) writeName(uri, local, qname string, isElement bool) {
	prefix := w.findPrefix(uri, qname, isElement)
	if prefix != "" {
		w.printer.WriteString(prefix)
		w.printer.WriteByte(':')
	}
	if local == "" {
		w.printer.WriteString(qname)
	} else {
		w.printer.WriteString(local)
	}
}

// }}}
