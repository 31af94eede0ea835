package xmlwriter

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"testing"

	tt "github.com/cthing/xmlwriter/testtool"
)

func TestMinimalDocument(t *testing.T) {
	for _, tc := range []struct {
		encoding   string
		standalone bool
		fragment   bool
		out        string
	}{
		{"", true, false, "<?xml version=\"1.0\" standalone=\"yes\"?>\n\n"},
		{"", false, false, "<?xml version=\"1.0\" standalone=\"no\"?>\n\n"},
		{"UTF-8", false, false, "<?xml version=\"1.0\" encoding=\"UTF-8\" standalone=\"no\"?>\n\n"},
		{"UTF-8", false, true, "\n"},
	} {
		b, w := open()
		if tc.fragment {
			tt.OK(t, w.StartFragment())
		} else {
			tt.OK(t, w.StartDocumentEncoding(tc.encoding, tc.standalone))
		}
		tt.OK(t, w.EndDocument())
		tt.Equals(t, tc.out, str(b, w))

		// a reset writer pointed at a fresh sink repeats the document
		// byte for byte
		w.Reset()
		b = &bytes.Buffer{}
		w.SetOutput(b)
		if tc.fragment {
			tt.OK(t, w.StartFragment())
		} else {
			tt.OK(t, w.StartDocumentEncoding(tc.encoding, tc.standalone))
		}
		tt.OK(t, w.EndDocument())
		tt.Equals(t, tc.out, str(b, w))
	}
}

func TestSimpleDocument(t *testing.T) {
	b, w := open()
	tt.OK(t, w.StartDocument())
	tt.OK(t, w.StartElement("root"))
	tt.OK(t, w.Characters("hi"))
	tt.OK(t, w.EndElement())
	tt.OK(t, w.EndDocument())
	tt.Equals(t, prolog+"<root>hi</root>\n", str(b, w))
}

func TestElementNotMinimized(t *testing.T) {
	b, w := open()
	w.SetMinimizeEmpty(false)
	tt.OK(t, w.StartDocument())
	tt.OK(t, w.StartElement("elem1"))
	tt.OK(t, w.EndElement())
	tt.OK(t, w.EndDocument())
	tt.Equals(t, prolog+"<elem1></elem1>\n", str(b, w))
}

func TestElementMixedMinimize(t *testing.T) {
	b, w := open()
	tt.OK(t, w.StartDocument())
	tt.OK(t, w.StartElement("elem1"))
	tt.OK(t, w.StartElement("elem2"))
	tt.OK(t, w.EndElement())
	tt.OK(t, w.EmptyElement("elem3"))
	w.SetMinimizeEmpty(false)
	tt.OK(t, w.StartElement("elem4"))
	tt.OK(t, w.EndElement())
	tt.OK(t, w.EndElement())
	tt.OK(t, w.EndDocument())
	tt.Equals(t, prolog+"<elem1><elem2/><elem3/><elem4></elem4></elem1>\n", str(b, w))
}

func TestElementsPrettyPrint(t *testing.T) {
	b, w := open(WithPrettyPrint())
	tt.OK(t, w.StartDocument())
	tt.OK(t, w.StartElement("elem1"))
	tt.OK(t, w.StartElement("elem2"))
	tt.OK(t, w.EndElement())
	tt.OK(t, w.EmptyElement("elem3"))
	w.SetMinimizeEmpty(false)
	tt.OK(t, w.StartElement("elem4"))
	tt.OK(t, w.EndElement())
	tt.OK(t, w.StartElement("elem5"))
	tt.OK(t, w.StartElement("elem6"))
	tt.OK(t, w.EndElement())
	tt.OK(t, w.EndElement())
	tt.OK(t, w.EndElement())
	tt.OK(t, w.EndDocument())

	tt.Equals(t, prolog+
		"<elem1>\n"+
		"    <elem2/>\n"+
		"    <elem3/>\n"+
		"    <elem4>\n"+
		"    </elem4>\n"+
		"    <elem5>\n"+
		"        <elem6>\n"+
		"        </elem6>\n"+
		"    </elem5>\n"+
		"</elem1>\n", str(b, w))
}

func TestIndentString(t *testing.T) {
	b, w := open(WithIndentString("\t"))
	tt.OK(t, w.StartDocument())
	tt.OK(t, w.StartElement("a"))
	tt.OK(t, w.StartElement("b"))
	tt.OK(t, w.StartElement("c"))
	tt.OK(t, w.EndElement())
	tt.OK(t, w.EndElement())
	tt.OK(t, w.EndElement())
	tt.OK(t, w.EndDocument())
	tt.Equals(t, prolog+"<a>\n\t<b>\n\t\t<c/>\n\t</b>\n</a>\n", str(b, w))
}

func TestIndentOffset(t *testing.T) {
	b, w := open(WithPrettyPrint())
	w.SetIndentOffset("  ", "  ")
	tt.OK(t, w.StartFragment())
	tt.OK(t, w.StartElement("a"))
	tt.OK(t, w.StartElement("b"))
	tt.OK(t, w.EndElement())
	tt.OK(t, w.EndElement())
	tt.OK(t, w.EndDocument())
	tt.Equals(t, "<a>\n    <b/>\n  </a>\n", str(b, w))
}

func TestAttributes(t *testing.T) {
	attrs1, err := NewAttrs("a1", "v1", "a2", "v2", "a3", "v3")
	tt.OK(t, err)
	attrs2, err := NewAttrs("b1", "v10", "b2", "v20", "b3", "v30")
	tt.OK(t, err)

	b, w := open(WithPrettyPrint())
	tt.OK(t, w.StartDocument())
	tt.OK(t, w.StartElement("elem1", attrs1...))
	tt.OK(t, w.StartElement("elem2", attrs2...))
	tt.OK(t, w.EndElement())
	tt.OK(t, w.EndElement())
	tt.OK(t, w.EndDocument())

	tt.Equals(t, prolog+
		"<elem1 a1=\"v1\" a2=\"v2\" a3=\"v3\">\n"+
		"    <elem2 b1=\"v10\" b2=\"v20\" b3=\"v30\"/>\n"+
		"</elem1>\n", str(b, w))
}

func TestAttributesOnePerLine(t *testing.T) {
	attrs1, err := NewAttrs("a1", "v1", "a2", "v2", "a3", "v3")
	tt.OK(t, err)
	attrs2, err := NewAttrs("b1", "v10", "b2", "v20", "b3", "v30")
	tt.OK(t, err)

	b, w := open(WithPrettyPrint(), WithAttrPerLine())
	tt.OK(t, w.StartDocument())
	tt.OK(t, w.StartElement("elem1", attrs1...))
	tt.OK(t, w.StartElement("elem2", attrs2...))
	tt.OK(t, w.EndElement())
	tt.OK(t, w.EndElement())
	tt.OK(t, w.EndDocument())

	tt.Equals(t, prolog+
		"<elem1\n"+
		"    a1=\"v1\"\n"+
		"    a2=\"v2\"\n"+
		"    a3=\"v3\"\n"+
		">\n"+
		"    <elem2\n"+
		"        b1=\"v10\"\n"+
		"        b2=\"v20\"\n"+
		"        b3=\"v30\"\n"+
		"    />\n"+
		"</elem1>\n", str(b, w))
}

func TestAttributesAdded(t *testing.T) {
	attrs1, err := NewAttrs("a1", "v1", "a2", "v2", "a3", "v3")
	tt.OK(t, err)
	attrs2, err := NewAttrs("b1", "v10", "b2", "v20", "b3", "v30")
	tt.OK(t, err)

	b, w := open(WithPrettyPrint())
	tt.OK(t, w.StartDocument())
	tt.OK(t, w.EmptyElement("elem1", attrs1...))
	tt.OK(t, w.AddAttribute("z1", "13"))
	tt.OK(t, w.AddAttributes(attrs2))
	tt.OK(t, w.EndDocument())

	tt.Equals(t, prolog+
		"<elem1 a1=\"v1\" a2=\"v2\" a3=\"v3\" z1=\"13\" "+
		"b1=\"v10\" b2=\"v20\" b3=\"v30\"/>\n", str(b, w))
}

func TestAttributesReplaced(t *testing.T) {
	attrs, err := NewAttrs("a1", "v1")
	tt.OK(t, err)
	b, w := open()
	tt.OK(t, w.StartDocument())
	tt.OK(t, w.StartElement("elem1", Attr{Local: "gone", Value: "yep"}))
	tt.OK(t, w.SetAttributes(attrs))
	tt.OK(t, w.EndElement())
	tt.OK(t, w.EndDocument())
	tt.Equals(t, prolog+"<elem1 a1=\"v1\"/>\n", str(b, w))
}

func TestCharacterData(t *testing.T) {
	b, w := open()
	tt.OK(t, w.StartDocument())
	tt.OK(t, w.StartElement("elem1"))
	tt.OK(t, w.Characters("Hello World"))
	tt.OK(t, w.EndElement())
	tt.OK(t, w.EndDocument())
	tt.Equals(t, prolog+"<elem1>Hello World</elem1>\n", str(b, w))
}

func TestEmptyCharacterData(t *testing.T) {
	b, w := open()
	tt.OK(t, w.StartDocument())
	tt.OK(t, w.StartElement("elem1"))
	tt.OK(t, w.Characters(""))
	tt.OK(t, w.EndElement())
	tt.OK(t, w.EndDocument())

	// writing empty character data still flushes the start tag, so the
	// element cannot be minimized
	tt.Equals(t, prolog+"<elem1></elem1>\n", str(b, w))
}

func TestCharacterDataAndComments(t *testing.T) {
	b, w := open(WithPrettyPrint())
	ec := &ErrCollector{}
	ec.Must(
		w.StartDocument(),
		w.StartElement("elem1"),
		w.StartElement("elem2"),
		w.Characters("Hello World"),
		w.EndElement(),
		w.StartElement("elem3"),
		w.Newline(),
		w.Comment(" A comment "),
		w.EndElement(),
		w.EndElement(),
		w.EndDocument(),
	)

	tt.Equals(t, prolog+
		"<elem1>\n"+
		"    <elem2>Hello World</elem2>\n"+
		"    <elem3>\n"+
		"        <!-- A comment -->\n"+
		"    </elem3>\n"+
		"</elem1>\n", str(b, w))
}

func TestCharacterDataCDataAndComments(t *testing.T) {
	b, w := open(WithPrettyPrint())
	ec := &ErrCollector{}
	ec.Must(
		w.StartDocument(),
		w.StartElement("elem1"),
		w.Characters("Hello World"),
		w.EntityRef("amp"),
		w.CharacterRef('a'),
		w.StartElement("elem2"),
		w.CDataSection("This is a <test>"),
		w.Comment(" First comment "),
		w.EndElement(),
		w.EndElement(),
		w.EndDocument(),
	)

	tt.Equals(t, prolog+
		"<elem1>Hello World&amp;&#97;<elem2>"+
		"<![CDATA[This is a <test>]]>"+
		"<!-- First comment --></elem2>\n"+
		"</elem1>\n", str(b, w))
}

func TestCData(t *testing.T) {
	b, w := open()
	tt.OK(t, w.StartDocument())
	tt.OK(t, w.StartElement("e"))
	tt.OK(t, w.StartCData())
	tt.OK(t, w.Characters("a<b")) // no escaping inside the section
	tt.OK(t, w.EndCData())
	tt.OK(t, w.EndElement())
	tt.OK(t, w.EndDocument())
	tt.Equals(t, prolog+"<e><![CDATA[a<b]]></e>\n", str(b, w))
}

func TestEntityRefs(t *testing.T) {
	b, w := open(WithPrettyPrint())
	ec := &ErrCollector{}
	ec.Must(
		w.StartDocument(),
		w.StartElement("elem1"),
		w.Characters("This "),
		w.EntityRef("amp"),
		w.Characters(" that. The letter "),
		w.CharacterRef('a'),
		w.EmptyElement("elem2"),
		w.Newline(),
		w.Comment(" First comment "),
		w.Newline(),
		w.EntityRef("extFile"),
		w.Newline(),
		w.EmptyElement("elem3"),
		w.EmptyElement("elem4"),
		w.Newline(),
		w.Comment(" Second comment "),
		w.EntityRef("charFile"),
		w.Comment(" Third comment "),
		w.EmptyElement("elem5"),
		w.Newline(),
		w.Comment(" Fourth comment "),
		w.EntityRefHint("dataFile", HintBlock),
		w.Comment(" Fifth comment "),
		w.EmptyElement("elem6"),
		w.EndElement(),
		w.EndDocument(),
	)

	tt.Equals(t, prolog+
		"<elem1>This &amp; that. The letter &#97;<elem2/>\n"+
		"    <!-- First comment -->\n"+
		"    &extFile;\n"+
		"    <elem3/>\n"+
		"    <elem4/>\n"+
		"    <!-- Second comment -->&charFile;<!-- Third comment --><elem5/>\n"+
		"    <!-- Fourth comment -->\n"+
		"    &dataFile;\n"+
		"    <!-- Fifth comment -->\n"+
		"    <elem6/>\n"+
		"</elem1>\n", str(b, w))
}

func TestComments(t *testing.T) {
	b, w := open(WithPrettyPrint())
	ec := &ErrCollector{}
	ec.Must(
		w.StartDocument(),
		w.StartElement("elem1"),
		w.Comment(" A comment 1 "),
		w.EmptyElement("elem2"),
		w.EmptyElement("elem3"),
		w.EmptyElement("elem4"),
		w.EmptyElement("elem5"),
		w.StartElement("elem6"),
		w.Newline(),
		w.Comment(" A comment 2 "),
		w.Newline(),
		w.Comment(" A comment 3 "),
		w.Newline(),
		w.Newline(),
		w.Comment(" A comment 4 "),
		w.EmptyElement("elem7"),
		w.EndElement(),
		w.EndElement(),
		w.EndDocument(),
	)

	tt.Equals(t, prolog+
		"<elem1><!-- A comment 1 -->\n"+
		"    <elem2/>\n"+
		"    <elem3/>\n"+
		"    <elem4/>\n"+
		"    <elem5/>\n"+
		"    <elem6>\n"+
		"        <!-- A comment 2 -->\n"+
		"        <!-- A comment 3 -->\n"+
		"        \n"+
		"        <!-- A comment 4 -->\n"+
		"        <elem7/>\n"+
		"    </elem6>\n"+
		"</elem1>\n", str(b, w))
}

func TestPI(t *testing.T) {
	b, w := open()
	tt.OK(t, w.StartDocument())
	tt.OK(t, w.PI("foo", "bar=\"joe\""))
	tt.OK(t, w.StartElement("elem1"))
	tt.OK(t, w.EndElement())
	tt.OK(t, w.EndDocument())
	tt.Equals(t, prolog+"<?foo bar=\"joe\"?><elem1/>\n", str(b, w))
}

func TestEmptyElementDiscardsEndElement(t *testing.T) {
	// the end-element following an empty element closes its parent
	b, w := open()
	tt.OK(t, w.StartDocument())
	tt.OK(t, w.StartElement("outer"))
	tt.OK(t, w.EmptyElement("inner"))
	tt.OK(t, w.EndElement())
	tt.OK(t, w.EndDocument())
	tt.Equals(t, prolog+"<outer><inner/></outer>\n", str(b, w))
}

func TestDepthAndState(t *testing.T) {
	w := openNull()
	tt.Equals(t, StateBeforeDoc, w.State())
	tt.Equals(t, 0, w.Depth())
	tt.OK(t, w.StartDocument())
	tt.Equals(t, StateBeforeRoot, w.State())
	tt.OK(t, w.StartElement("a"))
	tt.Equals(t, StateInStartTag, w.State())
	tt.Equals(t, 1, w.Depth())
	tt.OK(t, w.StartElement("b"))
	tt.Equals(t, 2, w.Depth())
	tt.OK(t, w.Characters("x"))
	tt.Equals(t, StateAfterData, w.State())
	tt.OK(t, w.EndElement())
	tt.Equals(t, StateAfterTag, w.State())
	tt.OK(t, w.EndElement())
	tt.Equals(t, StateAfterRoot, w.State())
	tt.Equals(t, 0, w.Depth())
	tt.OK(t, w.EndDocument())
	tt.Equals(t, StateAfterDoc, w.State())
}

func TestResetMidDocument(t *testing.T) {
	b, w := open()
	tt.OK(t, w.StartDocument())
	tt.OK(t, w.StartElement("gone"))
	tt.OK(t, w.Characters("never finished"))

	w.Reset()
	b = &bytes.Buffer{}
	w.SetOutput(b)
	tt.OK(t, w.StartDocument())
	tt.OK(t, w.StartElement("fresh"))
	tt.OK(t, w.EndElement())
	tt.OK(t, w.EndDocument())
	tt.Equals(t, prolog+"<fresh/>\n", str(b, w))
}

func TestXMLVersion(t *testing.T) {
	b, w := open()
	w.SetXMLVersion("1.1")
	w.SetStandalone(false)
	tt.OK(t, w.StartDocument())
	tt.OK(t, w.EndDocument())
	tt.Equals(t, "<?xml version=\"1.1\" standalone=\"no\"?>\n\n", str(b, w))
}

func TestConfigAccessors(t *testing.T) {
	w := openNull()
	tt.Equals(t, true, w.MinimizeEmpty())
	tt.Equals(t, true, w.SpecifiedAttributes())
	tt.Equals(t, true, w.Standalone())
	tt.Equals(t, false, w.PrettyPrint())
	tt.Equals(t, false, w.AttrPerLine())
	tt.Equals(t, false, w.EscapeNonASCII())
	tt.Equals(t, false, w.UseDecimal())
	tt.Equals(t, "    ", w.IndentString())
	tt.Equals(t, "", w.OffsetString())
	tt.Equals(t, "1.0", w.XMLVersion())

	w.SetPrettyPrint(true)
	w.SetIndentString("\t")
	w.SetEscapeNonASCII(true)
	w.SetUseDecimal(true)
	tt.Equals(t, true, w.PrettyPrint())
	tt.Equals(t, "\t", w.IndentString())
	tt.Equals(t, true, w.EscapeNonASCII())
	tt.Equals(t, true, w.UseDecimal())
}

func TestWriteErrorPropagates(t *testing.T) {
	fail := fmt.Errorf("sink failed")
	d := &DodgyWriter{
		writer: io.Discard,
		shouldFail: func(b []byte) (bool, int, error) {
			return true, 0, fail
		},
	}
	w := Open(d)
	w.InitialBufSize = 1
	w.SetOutput(d)
	tt.OK(t, w.StartFragment())
	var err error
	for i := 0; i < 100 && err == nil; i++ {
		err = w.StartElement("pad")
	}
	if err == nil {
		err = w.Flush()
	}
	tt.Assert(t, errors.Is(err, fail))
}
