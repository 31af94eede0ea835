package xmlwriter

import (
	"encoding/xml"
	"errors"
	"fmt"
	"strings"
	"testing"

	tt "github.com/cthing/xmlwriter/testtool"
)

func refilter(t *testing.T, in string, conf ...func(w *Writer)) string {
	t.Helper()
	b, w := open()
	for _, c := range conf {
		c(w)
	}
	f := Filter{Source: xml.NewDecoder(strings.NewReader(in)), Sink: w}
	tt.OK(t, w.StartFragment())
	tt.OK(t, f.Run())
	return str(b, w)
}

func TestFilterPassthrough(t *testing.T) {
	in := `<root><child id="1">hi &amp; bye</child><!-- note --><other/></root>`
	tt.Equals(t, in, refilter(t, in))
}

func TestFilterPI(t *testing.T) {
	in := `<?style sheet="a.xsl"?><root/>`
	tt.Equals(t, in, refilter(t, in))
}

func TestFilterDirective(t *testing.T) {
	in := `<!DOCTYPE root SYSTEM "root.dtd"><root/>`
	tt.Equals(t, in, refilter(t, in))
}

func TestFilterNamespaces(t *testing.T) {
	in := `<root xmlns="urn:d" xmlns:p="urn:p"><p:a/></root>`
	out := refilter(t, in, func(w *Writer) {
		w.AddNSPrefix("", "urn:d")
		w.AddNSPrefix("p", "urn:p")
	})
	tt.Equals(t, `<root xmlns="urn:d"><p:a xmlns:p="urn:p"/></root>`, out)
}

func TestFilterReformat(t *testing.T) {
	in := `<a><b><c x="1"/></b></a>`
	out := refilter(t, in, func(w *Writer) {
		w.SetPrettyPrint(true)
	})
	tt.Equals(t, "<a>\n    <b>\n        <c x=\"1\"/>\n    </b>\n</a>", out)
}

func TestFilterSourceError(t *testing.T) {
	fail := fmt.Errorf("upstream broke")
	f := Filter{
		Source: tokenSourceFunc(func() (xml.Token, error) { return nil, fail }),
		Sink:   openNull(),
	}
	tt.Assert(t, errors.Is(f.Run(), fail))
}

func TestFilterSinkError(t *testing.T) {
	// the sink was never opened, so the first relayed event is rejected
	w := openNull()
	f := Filter{Source: xml.NewDecoder(strings.NewReader("<root/>")), Sink: w}
	err := f.Run()
	tt.Assert(t, err != nil)
	tt.Pattern(t, `not allowed in state before-document`, err.Error())
}

type tokenSourceFunc func() (xml.Token, error)

func (fn tokenSourceFunc) Token() (xml.Token, error) { return fn() }
