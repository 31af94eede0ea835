package xmlwriter

// Entity is an entity declaration for a DOCTYPE internal subset. An entity
// is internal when SystemID is empty, in which case Value is the replacement
// text:
//
//	Entity{Name: "nbsp", Value: "&#160;"}
//	<!ENTITY nbsp "&#160;">
//
//	Entity{Name: "logo", SystemID: "logo.gif", Notation: "gif"}
//	<!ENTITY logo SYSTEM "logo.gif" NDATA gif>
type Entity struct {
	Name     string
	Value    string
	PublicID string
	SystemID string

	// Notation names the notation for an unparsed external entity,
	// producing an NDATA clause.
	Notation string
}

// Notation is a notation declaration for a DOCTYPE internal subset.
//
//	Notation{Name: "gif", PublicID: "-//pub//gif"}
//	<!NOTATION gif PUBLIC "-//pub//gif">
type Notation struct {
	Name     string
	PublicID string
	SystemID string
}

// StartDTD opens a DOCTYPE declaration. Content written until EndDTD goes
// inside it; comments are consumed without output while the DTD is open.
// An empty publicID produces the SYSTEM form.
func (w *Writer) StartDTD(name, publicID, systemID string) error {
	if _, err := w.handle(EventStartDTD); err != nil {
		return err
	}
	w.printer.WriteString("<!DOCTYPE ")
	w.printer.WriteString(name)
	w.printer.WriteByte(' ')
	return w.printer.printExternalID(publicID, systemID)
}

// EndDTD closes the DOCTYPE declaration.
func (w *Writer) EndDTD() error {
	if _, err := w.handle(EventEndDTD); err != nil {
		return err
	}
	w.printer.WriteByte('>')
	w.writeNewline()
	w.writeNewline()
	return w.printer.cachedWriteError()
}

// Doctype writes a complete DOCTYPE declaration with no internal subset.
func (w *Writer) Doctype(name, publicID, systemID string) error {
	if err := w.StartDTD(name, publicID, systemID); err != nil {
		return err
	}
	return w.EndDTD()
}

// DoctypeDecls writes a complete DOCTYPE declaration carrying an internal
// subset with the given entity and notation declarations, each on its own
// indented line.
func (w *Writer) DoctypeDecls(name, publicID, systemID string, entities []Entity, notations []Notation) error {
	if err := w.StartDTD(name, publicID, systemID); err != nil {
		return err
	}
	if len(entities) > 0 || len(notations) > 0 {
		w.printer.WriteString(" [")
		for _, entity := range entities {
			w.writeNewline()
			w.printer.WriteString(w.offsetStr)
			w.printer.WriteString(w.indentStr)
			if err := w.writeEntityDecl(entity); err != nil {
				return err
			}
		}
		for _, notation := range notations {
			w.writeNewline()
			w.printer.WriteString(w.offsetStr)
			w.printer.WriteString(w.indentStr)
			if err := w.writeNotationDecl(notation); err != nil {
				return err
			}
		}
		w.writeNewline()
		w.printer.WriteByte(']')
	}
	return w.EndDTD()
}

func (w *Writer) writeEntityDecl(entity Entity) error {
	w.printer.WriteString("<!ENTITY ")
	w.printer.WriteString(entity.Name)
	w.printer.WriteByte(' ')
	if entity.SystemID == "" {
		if err := w.printer.printEntityValue(entity.Value); err != nil {
			return err
		}
	} else {
		if err := w.printer.printExternalID(entity.PublicID, entity.SystemID); err != nil {
			return err
		}
		if entity.Notation != "" {
			w.printer.WriteString(" NDATA ")
			w.printer.WriteString(entity.Notation)
		}
	}
	w.printer.WriteByte('>')
	return w.printer.cachedWriteError()
}

func (w *Writer) writeNotationDecl(notation Notation) error {
	w.printer.WriteString("<!NOTATION ")
	w.printer.WriteString(notation.Name)
	switch {
	case notation.PublicID != "" && notation.SystemID != "":
		w.printer.WriteString(" PUBLIC \"")
		w.printer.WriteString(notation.PublicID)
		w.printer.WriteString("\" \"")
		w.printer.WriteString(notation.SystemID)
		w.printer.WriteByte('"')
	case notation.PublicID != "":
		w.printer.WriteString(" PUBLIC \"")
		w.printer.WriteString(notation.PublicID)
		w.printer.WriteByte('"')
	case notation.SystemID != "":
		w.printer.WriteString(" SYSTEM \"")
		w.printer.WriteString(notation.SystemID)
		w.printer.WriteByte('"')
	}
	w.printer.WriteByte('>')
	return w.printer.cachedWriteError()
}
