package files_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/profedit/pkg/files"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestResolve(t *testing.T) {
	t.Parallel()

	dirs := []string{"/proj/force-app/main/default/profiles", "/proj/other/main/default/profiles"}

	tcs := map[string]struct {
		profiles []string
		want     []string
	}{
		"bare name": {
			profiles: []string{"Admin"},
			want: []string{
				"/proj/force-app/main/default/profiles/Admin.profile-meta.xml",
				"/proj/other/main/default/profiles/Admin.profile-meta.xml",
			},
		},
		"bare name with suffix": {
			profiles: []string{"Admin.profile-meta.xml"},
			want: []string{
				"/proj/force-app/main/default/profiles/Admin.profile-meta.xml",
				"/proj/other/main/default/profiles/Admin.profile-meta.xml",
			},
		},
		"relative path": {
			profiles: []string{"custom/profiles/Admin"},
			want:     []string{"/proj/custom/profiles/Admin.profile-meta.xml"},
		},
		"relative path with suffix": {
			profiles: []string{"custom/Standard.profile-meta.xml"},
			want:     []string{"/proj/custom/Standard.profile-meta.xml"},
		},
		"mixed": {
			profiles: []string{"a/B", "", "C"},
			want: []string{
				"/proj/a/B.profile-meta.xml",
				"/proj/force-app/main/default/profiles/C.profile-meta.xml",
				"/proj/other/main/default/profiles/C.profile-meta.xml",
			},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := files.Resolve(dirs, tc.profiles, "/proj")
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestResolve_ScanDirs(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	dir := filepath.Join(root, "profiles")

	writeFile(t, filepath.Join(dir, "Standard.profile-meta.xml"), "<Profile/>")
	writeFile(t, filepath.Join(dir, "Admin.profile-meta.xml"), "<Profile/>")
	writeFile(t, filepath.Join(dir, "README.md"), "docs")
	writeFile(t, filepath.Join(dir, "nested", "Other.profile-meta.xml"), "<Profile/>")

	got, err := files.Resolve([]string{dir, filepath.Join(root, "missing")}, nil, root)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "Admin.profile-meta.xml"),
		filepath.Join(dir, "Standard.profile-meta.xml"),
	}, got)
}

func TestProfileName(t *testing.T) {
	t.Parallel()

	tcs := map[string]string{
		"/a/b/Admin.profile-meta.xml":     "Admin",
		"Custom Profile.profile-meta.xml": "Custom Profile",
		"NoExt":                           "NoExt",
	}

	for input, want := range tcs {
		t.Run(input, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, want, files.ProfileName(input))
		})
	}
}

func TestManifest(t *testing.T) {
	t.Parallel()

	got := files.Manifest([]string{
		"/a/Admin.profile-meta.xml",
		"/b/Standard.profile-meta.xml",
		"/c/Admin.profile-meta.xml",
	})
	assert.Equal(t, []string{"Profile:Admin", "Profile:Standard"}, got)
}

func TestRel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, filepath.Join("force-app", "x.xml"), files.Rel("/proj", "/proj/force-app/x.xml"))
	assert.Equal(t, "/elsewhere/x.xml", files.Rel("/proj", "/elsewhere/x.xml"))
	assert.Equal(t, "/proj/x.xml", files.Rel("", "/proj/x.xml"))
}

func TestFindProject(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, files.ProjectFile), `{
  "packageDirectories": [
    {"path": "force-app", "default": true},
    {"path": "unpackaged"}
  ],
  "sourceApiVersion": "60.0"
}`)

	nested := filepath.Join(root, "force-app", "main")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	p, err := files.FindProject(nested)
	require.NoError(t, err)

	wantRoot, err := filepath.Abs(root)
	require.NoError(t, err)
	assert.Equal(t, wantRoot, p.Root)
	assert.Equal(t, []files.PackageDirectory{
		{Path: "force-app", Default: true},
		{Path: "unpackaged"},
	}, p.PackageDirectories)

	assert.Equal(t, []string{
		filepath.Join(wantRoot, "force-app", "main", "default", "profiles"),
		filepath.Join(wantRoot, "unpackaged", "main", "default", "profiles"),
	}, p.ProfileDirs(""))

	assert.Equal(t, []string{filepath.Join(wantRoot, "custom")}, p.ProfileDirs("custom"))
	assert.Equal(t, []string{"/abs/dir"}, p.ProfileDirs("/abs/dir"))
}

func TestFindProject_Errors(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		content string
	}{
		"no project": {},
		"invalid json": {
			content: `{"packageDirectories": [`,
		},
		"no package directories": {
			content: `{"packageDirectories": []}`,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			root := t.TempDir()
			if tc.content != "" {
				writeFile(t, filepath.Join(root, files.ProjectFile), tc.content)
			}

			_, err := files.FindProject(root)
			require.Error(t, err)
		})
	}
}
