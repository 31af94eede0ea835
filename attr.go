package xmlwriter

import (
	"fmt"
	"strconv"
)

// Attr is a single element attribute. URI, Local and QName follow the usual
// namespace triplet: when Local is empty the QName is written verbatim, and
// the QName's prefix is used as a resolution hint when the URI has no
// binding in scope. Type is informational ("CDATA" when empty).
type Attr struct {
	URI   string
	Local string
	QName string
	Type  string
	Value string

	// Unspecified marks an attribute that was defaulted from a DTD rather
	// than present in the source document. The writer skips unspecified
	// attributes while specified-attributes-only mode is on.
	Unspecified bool
}

// Bool assigns a formatted bool to the Attr's value.
func (a Attr) Bool(v bool) Attr { a.Value = strconv.FormatBool(v); return a }

// Int assigns a formatted int to the Attr's value.
func (a Attr) Int(v int) Attr { a.Value = strconv.FormatInt(int64(v), 10); return a }

// Int64 assigns a formatted int64 to the Attr's value.
func (a Attr) Int64(v int64) Attr { a.Value = strconv.FormatInt(v, 10); return a }

// Uint64 assigns a formatted uint64 to the Attr's value.
func (a Attr) Uint64(v uint64) Attr { a.Value = strconv.FormatUint(v, 10); return a }

// Float64 assigns a formatted float64 to the Attr's value.
func (a Attr) Float64(v float64) Attr { a.Value = strconv.FormatFloat(v, 'g', -1, 64); return a }

// Attrs is a list of attributes with convenience builders. The zero value is
// ready to use.
type Attrs []Attr

// NewAttrs builds an attribute list from alternating name and value
// arguments. An odd number of arguments is reported as an error before any
// attribute is created.
func NewAttrs(nameValues ...string) (Attrs, error) {
	if len(nameValues)%2 != 0 {
		return nil, fmt.Errorf("xmlwriter: attrs require an even number of arguments (name, value)")
	}
	attrs := make(Attrs, 0, len(nameValues)/2)
	for i := 0; i < len(nameValues); i += 2 {
		attrs = append(attrs, Attr{Local: nameValues[i], Value: nameValues[i+1]})
	}
	return attrs, nil
}

// Add appends an un-namespaced attribute and returns the extended list.
func (a Attrs) Add(name, value string) Attrs {
	return append(a, Attr{Local: name, Value: value})
}

// AddInt appends an un-namespaced integer attribute.
func (a Attrs) AddInt(name string, value int) Attrs {
	return a.Add(name, strconv.Itoa(value))
}

// AddNS appends a fully qualified attribute.
func (a Attrs) AddNS(uri, local, qname, typ, value string) Attrs {
	return append(a, Attr{URI: uri, Local: local, QName: qname, Type: typ, Value: value})
}
