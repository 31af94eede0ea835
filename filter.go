package xmlwriter

import (
	"encoding/xml"
	"errors"
	"io"
)

// TokenSource is an upstream producer of XML parse events. *xml.Decoder
// satisfies it.
type TokenSource interface {
	Token() (xml.Token, error)
}

// EventSink receives structural events. *Writer satisfies it; any other
// implementation can be put downstream of a Filter.
type EventSink interface {
	StartElementNS(uri, local, qname string, attrs ...Attr) error
	EndElement() error
	Characters(data string) error
	Comment(text string) error
	PI(target, data string) error
	Data(data string) error
}

// Filter relays an upstream event stream into a sink unchanged in meaning.
// Point it at a decoder and a writer to reformat a document:
//
//	w := xmlwriter.Open(buf)
//	f := xmlwriter.Filter{Source: xml.NewDecoder(r), Sink: w}
//	w.StartFragment()
//	if err := f.Run(); err != nil {
//		...
//	}
//	w.EndDocument()
//
// The Filter does not open or close the document; the caller owns the
// document lifecycle on the writer side.
type Filter struct {
	Source TokenSource
	Sink   EventSink
}

// Run relays tokens until the source is exhausted. Directives (such as
// DOCTYPE declarations) are relayed verbatim.
func (f *Filter) Run() error {
	for {
		tok, err := f.Source.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if err := f.relay(tok); err != nil {
			return err
		}
	}
}

func (f *Filter) relay(tok xml.Token) error {
	switch t := tok.(type) {
	case xml.StartElement:
		attrs := make([]Attr, 0, len(t.Attr))
		for _, a := range t.Attr {
			// xmlns bindings are re-derived by the sink from the
			// namespace URIs on names; relaying them as plain
			// attributes would declare them twice.
			if a.Name.Space == "xmlns" || a.Name.Local == "xmlns" {
				continue
			}
			attrs = append(attrs, Attr{URI: a.Name.Space, Local: a.Name.Local, Value: a.Value})
		}
		return f.Sink.StartElementNS(t.Name.Space, t.Name.Local, "", attrs...)
	case xml.EndElement:
		return f.Sink.EndElement()
	case xml.CharData:
		return f.Sink.Characters(string(t))
	case xml.Comment:
		return f.Sink.Comment(string(t))
	case xml.ProcInst:
		return f.Sink.PI(t.Target, string(t.Inst))
	case xml.Directive:
		return f.Sink.Data("<!" + string(t) + ">")
	}
	return nil
}
