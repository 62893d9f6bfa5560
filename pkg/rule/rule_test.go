package rule_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/profedit/pkg/rule"
)

func TestNew(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		match   string
		action  rule.Action
		want    rule.Action
		wantErr error
	}{
		"include": {
			match:  `profile == "Admin"`,
			action: rule.ActionInclude,
			want:   rule.ActionInclude,
		},
		"exclude": {
			match:  `pathDir(file).contains("/legacy/")`,
			action: rule.ActionExclude,
			want:   rule.ActionExclude,
		},
		"default action": {
			match: `true`,
			want:  rule.ActionInclude,
		},
		"invalid action": {
			match:   `true`,
			action:  "skip",
			wantErr: rule.ErrInvalidAction,
		},
		"invalid expression": {
			match:  `path.invalidFunction()`,
			action: rule.ActionInclude,
		},
		"empty match": {
			action: rule.ActionInclude,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			r, err := rule.New(tc.match, tc.action)
			if tc.want == "" {
				require.Error(t, err)
				assert.Nil(t, r)
				if tc.wantErr != nil {
					require.ErrorIs(t, err, tc.wantErr)
				}

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.match, r.Match)
			assert.Equal(t, tc.want, r.Action)
		})
	}
}

func TestMustNew(t *testing.T) {
	t.Parallel()

	assert.NotPanics(t, func() {
		rule.MustNew(`profile == "Admin"`, rule.ActionExclude)
	})
	assert.Panics(t, func() {
		rule.MustNew(`invalid syntax [`, rule.ActionExclude)
	})
}

func TestMatchFile_Uncompiled(t *testing.T) {
	t.Parallel()

	r := &rule.Rule{Match: "true"}
	assert.Panics(t, func() {
		r.MatchFile("/a.xml")
	})
}

func TestIncluded(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	guest := filepath.Join(dir, "Guest.profile-meta.xml")
	require.NoError(t, os.WriteFile(guest, []byte(`<Profile>
    <userLicense>Guest User License</userLicense>
</Profile>
`), 0o644))

	rules := []*rule.Rule{
		rule.MustNew(`profile == "Admin"`, rule.ActionInclude),
		rule.MustNew(`profile.startsWith("Admin") || profile == "Integration"`, rule.ActionExclude),
		rule.MustNew(`profileField(file, "userLicense") == "Guest User License"`, rule.ActionExclude),
	}

	tcs := map[string]struct {
		path string
		want bool
	}{
		"first match wins":     {path: filepath.Join(dir, "Admin.profile-meta.xml"), want: true},
		"excluded by name":     {path: filepath.Join(dir, "Integration.profile-meta.xml"), want: false},
		"excluded by prefix":   {path: filepath.Join(dir, "AdminLite.profile-meta.xml"), want: false},
		"excluded by content":  {path: guest, want: false},
		"no match is included": {path: filepath.Join(dir, "Standard.profile-meta.xml"), want: true},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, rule.Included(rules, tc.path))
		})
	}

	assert.True(t, rule.Included(nil, guest))
}

func TestRule_String(t *testing.T) {
	t.Parallel()

	r := rule.MustNew(`profile == "Admin"`, rule.ActionExclude)
	assert.Equal(t, `exclude: profile == "Admin"`, r.String())
}
