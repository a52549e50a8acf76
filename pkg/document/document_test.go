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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name        string
		text        string
		wantErr     bool
		errContains string
	}{
		{
			name: "single_element",
			text: `<PHONE_CONFIG><ALL reg.1.auth.userId="1234567" reg.1.label="00000"/></PHONE_CONFIG>`,
		},
		{
			name: "with_declaration",
			text: "<?xml version=\"1.0\" encoding=\"utf-8\"?>\n<PHONE_CONFIG>\n  <ALL reg.1.label=\"1\"/>\n</PHONE_CONFIG>\n",
		},
		{
			name:        "plain_text",
			text:        "this is not markup",
			wantErr:     true,
			errContains: "no root element",
		},
		{
			name:    "empty",
			text:    "",
			wantErr: true,
		},
		{
			name:        "text_before_root",
			text:        `junk<PHONE_CONFIG><ALL reg.1.label="1"/></PHONE_CONFIG>`,
			wantErr:     true,
			errContains: "text outside the root element",
		},
		{
			name:        "text_after_root",
			text:        `<PHONE_CONFIG><ALL reg.1.label="1"/></PHONE_CONFIG>trailing`,
			wantErr:     true,
			errContains: "text outside the root element",
		},
		{
			name:        "two_roots",
			text:        `<A reg.1.label="1"/><B/>`,
			wantErr:     true,
			errContains: "2 root elements",
		},
		{
			name: "whitespace_and_comments_around_root",
			text: "\n<!-- head -->\n<PHONE_CONFIG/>\n<!-- tail -->\n",
		},
		{
			name:        "unknown_encoding",
			text:        "<?xml version=\"1.0\" encoding=\"x-no-such-charset\"?>\n<PHONE_CONFIG/>",
			wantErr:     true,
			errContains: "reading markup",
		},
		{
			name:        "unquoted_attribute",
			text:        `<PHONE_CONFIG reg.1.label=00000/>`,
			wantErr:     true,
			errContains: "reading markup",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse(tt.text)
			if tt.wantErr {
				require.Error(t, err, "Parse should return error")
				assert.Contains(t, err.Error(), tt.errContains, "error should contain expected message")
				return
			}

			require.NoError(t, err, "Parse should succeed")
			require.NotNil(t, doc)
		})
	}
}

func TestElementsWithAttr(t *testing.T) {
	text := `<root>
	<a reg.1.auth.userId="111111" reg.1.label="1"/>
	<b>
		<c reg.1.auth.userId="222222"/>
	</b>
	<d reg.2.label="2"/>
</root>`

	doc, err := Parse(text)
	require.NoError(t, err)

	users := doc.ElementsWithAttr("reg.1.auth.userId")
	require.Len(t, users, 2, "should find both userId elements")
	v, ok := users[0].Attr("reg.1.auth.userId")
	assert.True(t, ok)
	assert.Equal(t, "111111", v, "first match should be in document order")

	v, ok = users[1].Attr("reg.1.auth.userId")
	assert.True(t, ok)
	assert.Equal(t, "222222", v)

	_, ok = users[1].Attr("reg.1.label")
	assert.False(t, ok, "nested element has no label")

	assert.Empty(t, doc.ElementsWithAttr("reg.3.label"), "unknown attribute should match nothing")
}

func TestSetAttr(t *testing.T) {
	doc, err := Parse(`<root><a reg.1.label="00000" other="x"/></root>`)
	require.NoError(t, err)

	labels := doc.ElementsWithAttr("reg.1.label")
	require.Len(t, labels, 1)
	labels[0].SetAttr("reg.1.label", "34567")

	out, err := doc.String()
	require.NoError(t, err)
	assert.Contains(t, out, `reg.1.label="34567"`)
	assert.Contains(t, out, `other="x"`, "untouched attributes should survive")
	assert.NotContains(t, out, "00000")

	// reparse to make sure the output is well formed
	again, err := Parse(out)
	require.NoError(t, err)
	v, ok := again.ElementsWithAttr("reg.1.label")[0].Attr("reg.1.label")
	assert.True(t, ok)
	assert.Equal(t, "34567", v)
}

func TestStringIsStable(t *testing.T) {
	text := "<?xml version=\"1.0\"?>\n<root>\n  <!-- phone -->\n  <a reg.1.label=\"1\"/>\n</root>\n"

	doc, err := Parse(text)
	require.NoError(t, err)
	first, err := doc.String()
	require.NoError(t, err)

	doc2, err := Parse(first)
	require.NoError(t, err)
	second, err := doc2.String()
	require.NoError(t, err)

	assert.Equal(t, first, second, "serializing twice should be a fixed point")
	assert.Contains(t, first, "<!-- phone -->", "comments should be kept")
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		check func(t *testing.T, out string)
	}{
		{
			name: "keeps_crlf",
			text: "<?xml version=\"1.0\"?>\r\n<root>\r\n  <!-- a\r\n  b -->\r\n  <a reg.1.label=\"1\"/>\r\n</root>\r\n",
			check: func(t *testing.T, out string) {
				assert.Equal(t, "<?xml version=\"1.0\"?>\r\n<root>\r\n  <!-- a\r\n  b -->\r\n  <a reg.1.label=\"34567\"/>\r\n</root>\r\n", out)
			},
		},
		{
			name: "keeps_lf",
			text: "<root>\n  <a reg.1.label=\"1\"/>\n</root>\n",
			check: func(t *testing.T, out string) {
				assert.Equal(t, "<root>\n  <a reg.1.label=\"34567\"/>\n</root>\n", out)
			},
		},
		{
			name: "escapes_whitespace_in_attributes",
			text: `<root x="a&#10;b" y="c&#9;d"><a reg.1.label="1"/></root>`,
			check: func(t *testing.T, out string) {
				assert.NotContains(t, out, "a\nb", "newline in an attribute should stay a character reference")
				assert.NotContains(t, out, "c\td", "tab in an attribute should stay a character reference")

				again, err := Parse(out)
				require.NoError(t, err)
				x, _ := again.ElementsWithAttr("x")[0].Attr("x")
				y, _ := again.ElementsWithAttr("y")[0].Attr("y")
				assert.Equal(t, "a\nb", x)
				assert.Equal(t, "c\td", y)
			},
		},
		{
			name: "keeps_declared_encoding",
			text: "<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?>\n<root name=\"Caf\xe9\"><a reg.1.label=\"1\"/></root>\n",
			check: func(t *testing.T, out string) {
				assert.Contains(t, out, "encoding=\"ISO-8859-1\"")
				assert.Contains(t, out, "name=\"Caf\xe9\"", "non-ASCII text should be written in the declared charset")
				assert.NotContains(t, out, "Caf\u00e9", "output should not be UTF-8")

				again, err := Parse(out)
				require.NoError(t, err)
				name, _ := again.ElementsWithAttr("name")[0].Attr("name")
				assert.Equal(t, "Caf\u00e9", name)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse(tt.text)
			require.NoError(t, err, "Parse should succeed")

			labels := doc.ElementsWithAttr("reg.1.label")
			require.Len(t, labels, 1)
			labels[0].SetAttr("reg.1.label", "34567")

			out, err := doc.String()
			require.NoError(t, err)
			tt.check(t, out)
		})
	}
}
