// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package document

import (
	"regexp"
	"strings"

	"github.com/beevik/etree"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
)

// 📄 Document is a parsed markup document whose attribute values can be
// edited in place and written back out.
//
// Writing keeps the input's line endings and declared encoding. A Document is
// not safe for concurrent use. Each file gets its own.
type Document struct {
	doc   *etree.Document
	index map[string][]*etree.Element

	crlf     bool              // every line ending in the input was \r\n
	encName  string            // declared encoding, empty for UTF-8
	encoding encoding.Encoding // nil for UTF-8
}

// 🔗 Element is a handle on one element of a Document.
type Element struct {
	el *etree.Element
}

var declEncoding = regexp.MustCompile(`encoding\s*=\s*["']([^"']+)["']`)

// 🏭 Parse parses markup text into a Document.
//
// The text must be a well formed document: exactly one root element and
// nothing but whitespace, comments, processing instructions and directives
// around it.
func Parse(text string) (*Document, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.PreserveCData = true
	doc.ReadSettings.CharsetReader = charset.NewReaderLabel
	doc.WriteSettings.CanonicalAttrVal = true

	if err := doc.ReadFromString(text); err != nil {
		return nil, errors.Errorf("reading markup: %w", err)
	}

	if err := checkTopLevel(doc); err != nil {
		return nil, err
	}

	d := &Document{
		doc:   doc,
		index: make(map[string][]*etree.Element),
		crlf:  strings.Contains(text, "\r\n") && strings.Count(text, "\n") == strings.Count(text, "\r\n"),
	}

	if err := d.detectEncoding(); err != nil {
		return nil, err
	}

	for _, el := range doc.ChildElements() {
		d.indexElement(el)
	}

	return d, nil
}

// checkTopLevel rejects documents etree reads leniently: stray text around the
// root and more than one root element.
func checkTopLevel(doc *etree.Document) error {
	roots := 0
	stray := false
	for _, tok := range doc.Child {
		switch t := tok.(type) {
		case *etree.Element:
			roots++
		case *etree.CharData:
			if strings.TrimSpace(t.Data) != "" {
				stray = true
			}
		}
	}

	switch {
	case roots == 0:
		return errors.New("document has no root element")
	case roots > 1:
		return errors.Errorf("document has %d root elements", roots)
	case stray:
		return errors.New("text outside the root element")
	}
	return nil
}

// detectEncoding records a non-UTF-8 encoding declared by the xml declaration
func (d *Document) detectEncoding() error {
	for _, tok := range d.doc.Child {
		pi, ok := tok.(*etree.ProcInst)
		if !ok || pi.Target != "xml" {
			continue
		}
		m := declEncoding.FindStringSubmatch(pi.Inst)
		if m == nil {
			return nil
		}
		enc, name := charset.Lookup(m[1])
		if enc == nil {
			return errors.Errorf("unsupported encoding %q", m[1])
		}
		if name != "utf-8" {
			d.encName = name
			d.encoding = enc
		}
		return nil
	}
	return nil
}

// indexElement records el under every attribute name it carries, in document order
func (d *Document) indexElement(el *etree.Element) {
	for _, a := range el.Attr {
		key := attrKey(a)
		list := d.index[key]
		if len(list) > 0 && list[len(list)-1] == el {
			continue
		}
		d.index[key] = append(list, el)
	}

	for _, child := range el.ChildElements() {
		d.indexElement(child)
	}
}

// 🔍 ElementsWithAttr returns every element carrying the named attribute, in document order.
func (d *Document) ElementsWithAttr(name string) []Element {
	list := d.index[name]
	if len(list) == 0 {
		return nil
	}

	out := make([]Element, len(list))
	for i, el := range list {
		out[i] = Element{el: el}
	}
	return out
}

// 📝 String serializes the document back to markup, in the input's line
// endings and declared encoding. Tab, newline and carriage return inside
// attribute values are written as character references.
func (d *Document) String() (string, error) {
	out, err := d.doc.WriteToString()
	if err != nil {
		return "", errors.Errorf("writing markup: %w", err)
	}

	if d.crlf {
		// comments and directives keep their raw line endings
		out = strings.ReplaceAll(out, "\r\n", "\n")
		out = strings.ReplaceAll(out, "\n", "\r\n")
	}

	if d.encoding != nil {
		// runes outside the charset become character references
		enc := encoding.HTMLEscapeUnsupported(d.encoding.NewEncoder())
		out, err = enc.String(out)
		if err != nil {
			return "", errors.Errorf("encoding markup as %s: %w", d.encName, err)
		}
	}

	return out, nil
}

// Attr returns the value of the named attribute and whether it is present.
func (e Element) Attr(name string) (string, bool) {
	for _, a := range e.el.Attr {
		if attrKey(a) == name {
			return a.Value, true
		}
	}
	return "", false
}

// SetAttr sets the named attribute, creating it when missing.
func (e Element) SetAttr(name, value string) {
	for i := range e.el.Attr {
		if attrKey(e.el.Attr[i]) == name {
			e.el.Attr[i].Value = value
			return
		}
	}
	e.el.CreateAttr(name, value)
}

func attrKey(a etree.Attr) string {
	if a.Space == "" {
		return a.Key
	}
	return a.Space + ":" + a.Key
}
