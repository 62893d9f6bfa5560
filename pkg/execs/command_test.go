package execs_test

import (
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/profedit/pkg/execs"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input string
		want  execs.Command
		err   bool
	}{
		"simple": {
			input: "sf project deploy start",
			want:  execs.Command{Command: "sf", Args: []string{"project", "deploy", "start"}},
		},
		"quoted": {
			input: `sfdx force:source:deploy -m "${METADATA}" -u '${TARGET_ORG}'`,
			want: execs.Command{
				Command: "sfdx",
				Args:    []string{"force:source:deploy", "-m", "${METADATA}", "-u", "${TARGET_ORG}"},
			},
		},
		"empty": {
			input: "   ",
			err:   true,
		},
		"unterminated quote": {
			input: `sfdx "oops`,
			err:   true,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := execs.Parse(tc.input)
			if tc.err {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestCommand_Expand(t *testing.T) {
	t.Parallel()

	cmd := execs.Command{
		Command: "sfdx",
		Args:    []string{"force:source:deploy", "-m", "${METADATA}", "-u", "$TARGET_ORG", "${OTHER}"},
		Env:     []execs.EnvVar{{Name: "SF_TARGET_ORG", Value: "${TARGET_ORG}"}},
	}

	got := cmd.Expand(map[string]string{
		"METADATA":   "Profile:Admin,Profile:Standard",
		"TARGET_ORG": "me@example.com",
	})

	assert.Equal(t, []string{
		"force:source:deploy", "-m", "Profile:Admin,Profile:Standard", "-u", "me@example.com", "${OTHER}",
	}, got.Args)
	assert.Equal(t, []execs.EnvVar{{Name: "SF_TARGET_ORG", Value: "me@example.com"}}, got.Env)

	// The original is not modified.
	assert.Equal(t, "${METADATA}", cmd.Args[2])
}

func TestCommand_Environ(t *testing.T) {
	t.Parallel()

	cmd := execs.Command{
		Command:    "sfdx",
		Env:        []execs.EnvVar{{Name: "EXTRA", Value: "1"}, {Name: "HOME", Value: "/override"}},
		InheritEnv: []string{"SF_.*", "SFDX_ACCESS_TOKEN"},
	}
	require.NoError(t, cmd.Compile())

	got := cmd.Environ([]string{
		"PATH=/usr/bin",
		"HOME=/home/test",
		"SECRET=nope",
		"SF_LOG_LEVEL=debug",
		"SFDX_ACCESS_TOKEN=token",
		"SFDX_ACCESS_TOKEN_OLD=nope",
		"MALFORMED",
	})

	assert.Equal(t, []string{
		"EXTRA=1",
		"HOME=/override",
		"PATH=/usr/bin",
		"SFDX_ACCESS_TOKEN=token",
		"SF_LOG_LEVEL=debug",
	}, got)
}

func TestCommand_CompileError(t *testing.T) {
	t.Parallel()

	cmd := execs.Command{Command: "x", InheritEnv: []string{"("}}
	require.Error(t, cmd.Compile())
}

func TestCommand_String(t *testing.T) {
	t.Parallel()

	cmd := execs.Command{Command: "sfdx", Args: []string{"-m", "Profile:Custom Admin", ""}}
	assert.Equal(t, "sfdx -m 'Profile:Custom Admin' ''", cmd.String())
	assert.Equal(t, "sfdx", execs.Command{Command: "sfdx"}.String())
}

func TestExecutor_Exec(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}

	sh, err := exec.LookPath("sh")
	if err != nil {
		t.Skip("sh not found")
	}

	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)

	tcs := map[string]struct {
		cmd     execs.Command
		stdout  string
		wantErr error
	}{
		"runs in dir": {
			cmd:    execs.Command{Command: sh, Args: []string{"-c", "pwd -P"}},
			stdout: dir + "\n",
		},
		"failure with output": {
			cmd:     execs.Command{Command: sh, Args: []string{"-c", "echo oops; exit 3"}},
			stdout:  "oops\n",
			wantErr: execs.ErrCommandExecution,
		},
		"failure without output": {
			cmd:     execs.Command{Command: sh, Args: []string{"-c", "exit 1"}},
			wantErr: execs.ErrCommandExecution,
		},
		"empty command": {
			cmd:     execs.Command{},
			wantErr: execs.ErrEmptyCommand,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			res, err := execs.NewExecutor(tc.cmd).Exec(t.Context(), dir)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
			} else {
				require.NoError(t, err)
			}

			if tc.stdout == "" {
				assert.Nil(t, res)
				return
			}

			require.NotNil(t, res)
			assert.Equal(t, tc.stdout, res.Stdout)
		})
	}
}
