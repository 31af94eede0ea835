/*
Package xmlwriter provides an incremental, forward-only XML serializer.

The API is event driven: callers issue structural events (start/end
document, start/end element, attributes, text, comments, processing
instructions, CDATA sections, DOCTYPE declarations) and the writer emits
well-formed XML text as each event arrives. Nothing is buffered beyond the
stack of currently open elements, so memory use is flat no matter how large
the document.

Every event is validated against a state machine covering the document
lifecycle. An event that is not legal in the current state fails with an
*EventError and the document cannot be continued; the design favours failing
fast, since partial XML output is unrecoverable without buffering the whole
document.

# Creating

Open takes any io.Writer, along with a variable list of options:

	b := &bytes.Buffer{}
	w := xmlwriter.Open(b)

Options use the functional options pattern
(https://dave.cheney.net/2014/10/17/functional-options-for-friendly-apis):

	w := xmlwriter.Open(b, xmlwriter.WithIndentString("  "))

Provided options are:
  - WithPrettyPrint()
  - WithIndentString(string)
  - WithAttrPerLine()

All options are also available as setters (SetPrettyPrint, SetIndentString,
SetMinimizeEmpty, ...) which may be called at any time; changes take effect
on the next write.

# Writing

	w.StartDocument()
	w.StartElement("greeting")
	w.AddAttribute("lang", "en")
	w.Characters("hello")
	w.EndElement()
	w.EndDocument()

	// Output:
	// <?xml version="1.0" standalone="yes"?>
	// <greeting lang="en">hello</greeting>

An element started and immediately ended collapses to a self-closing tag
unless minimization is disabled with SetMinimizeEmpty(false).

# Namespaces

Elements and attributes written with the NS variants carry a namespace URI.
Prefixes are resolved automatically: an in-scope declaration is reused, a
preference registered with AddNSPrefix is honoured when possible, the prefix
portion of a supplied qualified name serves as a hint, and as a last resort
a fresh prefix of the form __NS1, __NS2, ... is synthesized. AddNSRootDecl
forces a namespace to be declared on the root element so that deep documents
do not re-declare it on every subtree.

# Encodings

xmlwriter supports encoders from the golang.org/x/text/encoding package.
Use OpenEncoding to transcode output on the fly; characters unsupported by
the target encoding degrade to numeric character references:

	enc := charmap.ISO8859_1.NewEncoder()
	w := xmlwriter.OpenEncoding(b, "ISO-8859-1", enc)

# Filtering

The Filter type relays an upstream token stream (for example an
*xml.Decoder) into any EventSink unchanged in meaning, which makes the
writer usable as a reformatting pass-through.
*/
package xmlwriter
