package eml

import (
	"strings"
)

// PrintToSource renders compiled content back to markup text.
func PrintToSource(buf *strings.Builder, content ...Content) {
	for _, c := range content {
		printContent(buf, c, false)
	}
}

func printContent(buf *strings.Builder, c Content, raw bool) {
	switch v := c.(type) {
	case Text:
		buf.WriteString(escapeText(string(v)))
	case RawText:
		if raw {
			buf.WriteString(string(v))
		} else {
			buf.WriteString("<![CDATA[")
			buf.WriteString(string(v))
			buf.WriteString("]]>")
		}
	case Param:
		buf.WriteString("#param{")
		buf.WriteString(string(v))
		buf.WriteString("}")
	case *Element:
		printElement(buf, v)
	}
}

func printElement(buf *strings.Builder, el *Element) {
	buf.WriteString("<")
	buf.WriteString(el.Data)
	for _, attr := range el.Attr {
		buf.WriteString(" ")
		printAttribute(buf, attr)
	}
	buf.WriteString(">")
	if voidElements[el.DataAtom] {
		return
	}
	raw := rawTextElements[el.DataAtom]
	for _, c := range el.Children {
		printContent(buf, c, raw)
	}
	buf.WriteString("</")
	buf.WriteString(el.Data)
	buf.WriteString(">")
}

func printAttribute(buf *strings.Builder, attr Attribute) {
	buf.WriteString(attr.Key)
	switch v := attr.Val.(type) {
	case AttrText:
		if v == "" {
			return
		}
		buf.WriteString(`="` + escapeAttr(string(v)) + `"`)
	case AttrList:
		buf.WriteString(`="` + escapeAttr(strings.Join(v, " ")) + `"`)
	case AttrMixed:
		buf.WriteString(`="`)
		for _, part := range v {
			switch p := part.(type) {
			case AttrText:
				buf.WriteString(escapeAttr(string(p)))
			case AttrParam:
				buf.WriteString("#param{" + string(p) + "}")
			}
		}
		buf.WriteString(`"`)
	}
}

func escapeText(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	return strings.ReplaceAll(s, ">", "&gt;")
}

func escapeAttr(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	return strings.ReplaceAll(s, `"`, "&quot;")
}
