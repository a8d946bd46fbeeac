package sink

import (
	"bytes"
	"html"
	"io"
	"strings"

	"github.com/matzehuels/linechart/pkg/chart/scene"
)

// Tags that must never be written in self-closing form.
var containerTags = map[string]bool{
	"div": true, "span": true, "p": true, "script": true, "style": true,
}

// WriteMarkup writes e and its subtree to w as indented markup.
// Text content is escaped; HTML content is written verbatim.
func WriteMarkup(w io.Writer, e *scene.Element) error {
	var buf bytes.Buffer
	writeElement(&buf, e, 0)
	_, err := w.Write(buf.Bytes())
	return err
}

func writeElement(buf *bytes.Buffer, e *scene.Element, depth int) {
	indent := strings.Repeat("  ", depth)
	buf.WriteString(indent)
	buf.WriteByte('<')
	buf.WriteString(e.Tag)
	for _, a := range e.Attrs() {
		writeAttr(buf, a[0], a[1])
	}
	if styles := e.Styles(); len(styles) > 0 {
		parts := make([]string, len(styles))
		for i, s := range styles {
			parts[i] = s[0] + ": " + s[1]
		}
		writeAttr(buf, "style", strings.Join(parts, "; "))
	}

	children := e.Children()
	switch {
	case len(children) > 0:
		buf.WriteString(">\n")
		for _, c := range children {
			writeElement(buf, c, depth+1)
		}
		buf.WriteString(indent)
	case e.HTML() != "":
		buf.WriteByte('>')
		buf.WriteString(e.HTML())
	case e.Text() != "":
		buf.WriteByte('>')
		buf.WriteString(html.EscapeString(e.Text()))
	case containerTags[e.Tag]:
		buf.WriteByte('>')
	default:
		buf.WriteString("/>\n")
		return
	}
	buf.WriteString("</")
	buf.WriteString(e.Tag)
	buf.WriteString(">\n")
}

func writeAttr(buf *bytes.Buffer, name, value string) {
	buf.WriteByte(' ')
	buf.WriteString(name)
	buf.WriteString(`="`)
	buf.WriteString(html.EscapeString(value))
	buf.WriteByte('"')
}
