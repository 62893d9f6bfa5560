package report_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/profedit/pkg/editor"
	"github.com/macropower/profedit/pkg/profile"
	"github.com/macropower/profedit/pkg/report"
)

const root = "/project"

var (
	original = []byte("<Profile>\n    <custom>false</custom>\n</Profile>\n")
	updated  = []byte("<Profile>\n    <custom>true</custom>\n</Profile>\n")
)

func results() []editor.Result {
	profiles := filepath.Join(root, "force-app", "main", "default", "profiles")

	return []editor.Result{
		{
			Path:     filepath.Join(profiles, "Admin.profile-meta.xml"),
			Status:   editor.StatusModified,
			Written:  true,
			Original: original,
			Updated:  updated,
		},
		{
			Path:   filepath.Join(profiles, "Sales.profile-meta.xml"),
			Status: editor.StatusNotFound,
			Missing: []editor.Missing{{
				Request:     profile.EditRequest{Category: profile.CategoryClass, Target: "MyClas"},
				Suggestions: []string{"MyClass"},
			}},
		},
		{
			Path:   filepath.Join(profiles, "Broken.profile-meta.xml"),
			Status: editor.StatusFailed,
			Err:    errors.New("parse profile: unexpected EOF"),
		},
	}
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	for _, name := range report.Formats() {
		f, err := report.ParseFormat(name)
		require.NoError(t, err)
		assert.Equal(t, report.Format(name), f)
	}

	f, err := report.ParseFormat("JSON")
	require.NoError(t, err)
	assert.Equal(t, report.FormatJSON, f)

	_, err = report.ParseFormat("xml")
	require.ErrorIs(t, err, report.ErrUnknownFormat)
}

func TestPrinter_Edit_Text(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		opts []report.Option
		want []string
		not  []string
	}{
		"default": {
			want: []string{
				"Action", "MetadataType", "ProjectFile",
				"Changed", "Profile", "force-app/main/default/profiles/Admin.profile-meta.xml",
				`class "MyClas" not found in force-app/main/default/profiles/Sales.profile-meta.xml (did you mean "MyClass"?)`,
				"error: parse profile: unexpected EOF",
				"3 profiles: 1 modified, 1 not found, and 1 failed (wrote 47 B)",
			},
			not: []string{"@@", "Would change"},
		},
		"dry run with diff": {
			opts: []report.Option{report.WithDryRun(true), report.WithDiff(true)},
			want: []string{
				"Would change",
				"--- a/force-app/main/default/profiles/Admin.profile-meta.xml",
				"+++ b/force-app/main/default/profiles/Admin.profile-meta.xml",
				"-    <custom>false</custom>",
				"+    <custom>true</custom>",
				"(would write 47 B)",
			},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			b := &bytes.Buffer{}
			opts := append([]report.Option{
				report.WithRoot(root),
				report.WithColorProfile(termenv.Ascii),
			}, tc.opts...)

			require.NoError(t, report.New(b, opts...).Edit(results()))

			for _, want := range tc.want {
				assert.Contains(t, b.String(), want)
			}
			for _, not := range tc.not {
				assert.NotContains(t, b.String(), not)
			}
		})
	}
}

func TestPrinter_Edit_NoChanges(t *testing.T) {
	t.Parallel()

	b := &bytes.Buffer{}
	p := report.New(b, report.WithColorProfile(termenv.Ascii))

	require.NoError(t, p.Edit([]editor.Result{{Path: "/a.xml", Status: editor.StatusUnchanged}}))
	assert.Equal(t, "1 profile: 1 unchanged\n", b.String())

	b.Reset()
	require.NoError(t, p.Edit(nil))
	assert.Equal(t, "no profiles\n", b.String())
}

func TestPrinter_Edit_JSON(t *testing.T) {
	t.Parallel()

	b := &bytes.Buffer{}
	p := report.New(b, report.WithRoot(root), report.WithFormat(report.FormatJSON), report.WithDiff(true))

	require.NoError(t, p.Edit(results()))

	var got report.EditReport
	require.NoError(t, json.Unmarshal(b.Bytes(), &got))

	require.Len(t, got.Files, 3)
	assert.Equal(t, report.Summary{Modified: 1, NotFound: 1, Failed: 1, Bytes: uint64(len(updated))}, got.Summary)
	assert.Equal(t, "force-app/main/default/profiles/Admin.profile-meta.xml", got.Files[0].Path)
	assert.True(t, got.Files[0].Written)
	assert.Contains(t, got.Files[0].Diff, "+    <custom>true</custom>")
	assert.Equal(t, "parse profile: unexpected EOF", got.Files[2].Error)
	require.Len(t, got.Files[1].Missing, 1)
	assert.Equal(t, []string{"MyClass"}, got.Files[1].Missing[0].Suggestions)

	assert.Contains(t, b.String(), `"status": "not-found"`)
}

func TestPrinter_Edit_YAML(t *testing.T) {
	t.Parallel()

	b := &bytes.Buffer{}
	p := report.New(b, report.WithRoot(root), report.WithFormat(report.FormatYAML))

	require.NoError(t, p.Edit(results()))

	assert.Contains(t, b.String(), "path: force-app/main/default/profiles/Admin.profile-meta.xml")
	assert.Contains(t, b.String(), "status: modified")
	assert.Contains(t, b.String(), "target: MyClas")
	assert.NotContains(t, b.String(), "diff:")
}

func TestPrinter_List(t *testing.T) {
	t.Parallel()

	listings := []editor.Listing{
		{
			Path:   "/project/Admin.profile-meta.xml",
			Status: editor.StatusUnchanged,
			Entries: []editor.EntryInfo{
				{Name: "AClass", Enabled: true},
				{Name: "BClass", Enabled: false},
			},
		},
		{Path: "/project/Guest.profile-meta.xml", Status: editor.StatusSkipped},
	}

	b := &bytes.Buffer{}
	p := report.New(b, report.WithRoot(root), report.WithColorProfile(termenv.Ascii))
	require.NoError(t, p.List(profile.CategoryClass, listings))

	for _, want := range []string{"ProjectFile", "apexClass", "enabled", "AClass", "true", "BClass", "false", "(skipped)"} {
		assert.Contains(t, b.String(), want)
	}

	b.Reset()
	p = report.New(b, report.WithRoot(root), report.WithFormat(report.FormatJSON))
	require.NoError(t, p.List(profile.CategoryClass, listings))

	var got []report.ListingReport
	require.NoError(t, json.Unmarshal(b.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "Admin.profile-meta.xml", got[0].Path)
	assert.Len(t, got[0].Entries, 2)
	assert.NotNil(t, got[1].Entries)
}

func TestPrinter_Categories(t *testing.T) {
	t.Parallel()

	b := &bytes.Buffer{}
	p := report.New(b, report.WithColorProfile(termenv.Ascii))
	require.NoError(t, p.Categories(profile.Descriptors()))

	for _, want := range []string{"Type", "classAccesses", "apexClass", "objectPermissions", "allowRead"} {
		assert.Contains(t, b.String(), want)
	}

	b.Reset()
	p = report.New(b, report.WithFormat(report.FormatJSON))
	require.NoError(t, p.Categories(profile.Descriptors()))

	var got []report.CategoryReport
	require.NoError(t, json.Unmarshal(b.Bytes(), &got))
	assert.Len(t, got, len(profile.Descriptors()))
}

func TestDiff(t *testing.T) {
	t.Parallel()

	assert.Empty(t, report.Diff("a.xml", original, original))

	d := report.Diff("a.xml", original, updated)
	assert.Contains(t, d, "--- a/a.xml")
	assert.Contains(t, d, "+++ b/a.xml")
	assert.Contains(t, d, "@@")
}

func TestPrinter_HighlightedDiff(t *testing.T) {
	t.Parallel()

	b := &bytes.Buffer{}
	p := report.New(b, report.WithColorProfile(termenv.TrueColor), report.WithDiff(true), report.WithStyle("monokai"))

	require.NoError(t, p.Edit(results()[:1]))
	assert.Contains(t, b.String(), "\x1b[")
	assert.Contains(t, b.String(), "custom")
}

func TestPrinter_Source(t *testing.T) {
	t.Parallel()

	src := []byte("edit:\n  create: true\n")

	tcs := map[string]struct {
		profile   termenv.Profile
		lang      string
		wantColor bool
	}{
		"ascii is plain": {
			profile: termenv.Ascii,
			lang:    "yaml",
		},
		"truecolor is highlighted": {
			profile:   termenv.TrueColor,
			lang:      "yaml",
			wantColor: true,
		},
		"unknown language is plain": {
			profile: termenv.TrueColor,
			lang:    "no-such-language",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			b := &bytes.Buffer{}
			p := report.New(b, report.WithColorProfile(tc.profile))
			require.NoError(t, p.Source(tc.lang, src))

			if tc.wantColor {
				assert.Contains(t, b.String(), "\x1b[")
				assert.Contains(t, b.String(), "create")
			} else {
				assert.Equal(t, string(src), b.String())
			}
		})
	}
}
