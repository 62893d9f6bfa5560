package xml_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/profedit/pkg/xml"
)

func TestUnmarshal(t *testing.T) {
	t.Parallel()

	input := `<?xml version="1.0" encoding="UTF-8"?>
<!-- leading comment -->
<Profile xmlns="http://soap.sforce.com/2006/04/metadata">
    <classAccesses>
        <!-- inner comment -->
        <apexClass>MyClass</apexClass>
        <enabled>false</enabled>
    </classAccesses>
    <description></description>
    <custom>false</custom>
</Profile>
`

	root, err := xml.Unmarshal([]byte(input))
	require.NoError(t, err)

	assert.Equal(t, "Profile", root.Name)
	assert.Equal(t, []xml.Attr{{Name: "xmlns", Value: "http://soap.sforce.com/2006/04/metadata"}}, root.Attrs)
	assert.Empty(t, root.Text)
	require.Len(t, root.Children, 3)

	ca := root.Children[0]
	assert.Equal(t, "classAccesses", ca.Name)
	require.Len(t, ca.Children, 2)

	name, ok := ca.ChildText("apexClass")
	require.True(t, ok)
	assert.Equal(t, "MyClass", name)

	desc := root.Child("description")
	require.NotNil(t, desc)
	assert.True(t, desc.IsLeaf())
	assert.Empty(t, desc.Text)

	assert.Nil(t, root.Child("missing"))
}

func TestUnmarshal_ByteOrderMark(t *testing.T) {
	t.Parallel()

	input := "\xef\xbb\xbf" + `<?xml version="1.0" encoding="UTF-8"?>
<Profile><custom>false</custom></Profile>
`

	root, err := xml.Unmarshal([]byte(input))
	require.NoError(t, err)
	assert.Equal(t, "Profile", root.Name)

	custom, ok := root.ChildText("custom")
	require.True(t, ok)
	assert.Equal(t, "false", custom)

	// Only a leading mark is skipped.
	_, err = xml.Unmarshal([]byte("<Profile/>\xef\xbb\xbf"))
	require.ErrorIs(t, err, xml.ErrSyntax)
}

func TestUnmarshal_Errors(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input string
		want  string
	}{
		"mismatched end element": {
			input: `<Profile><custom>false</other></Profile>`,
			want:  "element <custom> closed by </other>",
		},
		"unclosed element": {
			input: `<Profile><custom>false</custom>`,
			want:  "is not closed",
		},
		"empty input": {
			input: ``,
			want:  "no root element",
		},
		"only a comment": {
			input: `<!-- nothing -->`,
			want:  "no root element",
		},
		"second root": {
			input: `<Profile/><Profile/>`,
			want:  "after root element",
		},
		"text outside root": {
			input: `<Profile/>trailing`,
			want:  "outside of root element",
		},
		"bad syntax": {
			input: `<Profile><custom>false</custom`,
			want:  "",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := xml.Unmarshal([]byte(tc.input))
			require.Error(t, err)
			require.ErrorIs(t, err, xml.ErrSyntax)

			var parseErr *xml.ParseError
			require.ErrorAs(t, err, &parseErr)

			if tc.want != "" {
				assert.Contains(t, err.Error(), tc.want)
			}
		})
	}
}

func TestMarshal(t *testing.T) {
	t.Parallel()

	root := &xml.Node{
		Name:  "Profile",
		Attrs: []xml.Attr{{Name: "xmlns", Value: "http://soap.sforce.com/2006/04/metadata"}},
		Children: []*xml.Node{
			{
				Name: "classAccesses",
				Children: []*xml.Node{
					xml.NewLeaf("apexClass", "A&B"),
					xml.NewLeaf("enabled", "true"),
				},
			},
			xml.NewLeaf("description", ""),
		},
	}

	got, err := xml.Marshal(root)
	require.NoError(t, err)

	want := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Profile xmlns="http://soap.sforce.com/2006/04/metadata">
    <classAccesses>
        <apexClass>A&amp;B</apexClass>
        <enabled>true</enabled>
    </classAccesses>
    <description/>
</Profile>
`
	assert.Equal(t, want, string(got))
}

func TestMarshal_Options(t *testing.T) {
	t.Parallel()

	root := &xml.Node{Name: "a", Children: []*xml.Node{xml.NewLeaf("b", "c")}}

	got, err := xml.Marshal(root, xml.WithDeclaration(""), xml.WithIndent("\t"))
	require.NoError(t, err)
	assert.Equal(t, "<a>\n\t<b>c</b>\n</a>\n", string(got))
}

func TestMarshal_Escaping(t *testing.T) {
	t.Parallel()

	root := &xml.Node{
		Name:  "a",
		Attrs: []xml.Attr{{Name: "title", Value: "say \"hi\" & <go>\n"}},
		Text:  "x < y > z & 'q'",
	}

	got, err := xml.Marshal(root, xml.WithDeclaration(""))
	require.NoError(t, err)
	assert.Equal(t,
		`<a title="say &quot;hi&quot; &amp; &lt;go>&#xA;">x &lt; y &gt; z &amp; 'q'</a>`+"\n",
		string(got),
	)

	back, err := xml.Unmarshal(got)
	require.NoError(t, err)
	assert.Equal(t, root, back)
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	input := strings.Join([]string{
		`<Profile xmlns="urn:x" xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">`,
		`<loginIpRanges><endAddress>1.1.1.1</endAddress><startAddress>0.0.0.0</startAddress></loginIpRanges>`,
		`<xsi:nil>true</xsi:nil>`,
		`<custom><![CDATA[a<b]]></custom>`,
		`</Profile>`,
	}, "")

	first, err := xml.Unmarshal([]byte(input))
	require.NoError(t, err)

	out1, err := xml.Marshal(first)
	require.NoError(t, err)

	second, err := xml.Unmarshal(out1)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	out2, err := xml.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, string(out1), string(out2))

	assert.Contains(t, string(out1), "<xsi:nil>true</xsi:nil>")
	assert.Contains(t, string(out1), "<custom>a&lt;b</custom>")
}

func TestValidText(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input string
		want  bool
	}{
		"plain":             {input: "Account.Name", want: true},
		"empty":             {input: "", want: true},
		"markup characters": {input: `A<B>&"C"`, want: true},
		"whitespace":        {input: "a\tb\nc\rd", want: true},
		"non ascii":         {input: "Caf\u00e9 \U0001F600", want: true},
		"control character": {input: "New\x01Class", want: false},
		"nul":               {input: "\x00", want: false},
		"invalid utf8":      {input: "New\xffClass", want: false},
		"non character":     {input: "\uFFFE", want: false},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, xml.ValidText(tc.input))
		})
	}
}

func TestNode_Clone(t *testing.T) {
	t.Parallel()

	n := &xml.Node{
		Name:     "a",
		Attrs:    []xml.Attr{{Name: "k", Value: "v"}},
		Children: []*xml.Node{xml.NewLeaf("b", "1")},
	}

	c := n.Clone()
	assert.Equal(t, n, c)

	c.Children[0].Text = "2"
	c.Attrs[0].Value = "w"
	assert.Equal(t, "1", n.Children[0].Text)
	assert.Equal(t, "v", n.Attrs[0].Value)

	v, ok := n.Attr("k")
	assert.True(t, ok)
	assert.Equal(t, "v", v)
}
