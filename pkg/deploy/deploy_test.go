package deploy_test

import (
	"os/exec"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/profedit/pkg/deploy"
	"github.com/macropower/profedit/pkg/execs"
)

func TestNewPlan(t *testing.T) {
	t.Parallel()

	paths := []string{
		"/proj/force-app/main/default/profiles/Admin.profile-meta.xml",
		"/proj/force-app/main/default/profiles/Custom Sales.profile-meta.xml",
	}

	plan, err := deploy.NewPlan(deploy.DefaultCommand(), "/proj", "me@example.com", paths)
	require.NoError(t, err)

	assert.Equal(t, []string{"Profile:Admin", "Profile:Custom Sales"}, plan.Members)
	assert.Equal(t, "Profile:Admin,Profile:Custom Sales", plan.Metadata())
	assert.Equal(t, "sfdx", plan.Command.Command)
	assert.Equal(t, []string{
		"force:source:deploy",
		"-m", "Profile:Admin,Profile:Custom Sales",
		"-u", "me@example.com",
	}, plan.Command.Args)
	assert.Equal(t, "/proj", plan.Dir)
	assert.Equal(t, `sfdx force:source:deploy -m 'Profile:Admin,Profile:Custom Sales' -u me@example.com`, plan.String())
}

func TestNewPlan_Errors(t *testing.T) {
	t.Parallel()

	_, err := deploy.NewPlan(deploy.DefaultCommand(), "/proj", "", []string{"/a/Admin.profile-meta.xml"})
	require.ErrorIs(t, err, deploy.ErrNoTargetOrg)

	_, err = deploy.NewPlan(deploy.DefaultCommand(), "/proj", "org", nil)
	require.ErrorIs(t, err, deploy.ErrNothingToDeploy)
}

func TestPlan_Run(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}

	sh, err := exec.LookPath("sh")
	if err != nil {
		t.Skip("sh not found")
	}

	cmd := execs.Command{
		Command: sh,
		Args:    []string{"-c", `echo "$0 $1"`, "${METADATA}", "${TARGET_ORG}"},
	}

	plan, err := deploy.NewPlan(cmd, t.TempDir(), "dev", []string{"/a/Admin.profile-meta.xml"})
	require.NoError(t, err)

	res, err := plan.Run(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "Profile:Admin dev\n", res.Stdout)

	failing := execs.Command{Command: sh, Args: []string{"-c", "exit 2"}}

	plan, err = deploy.NewPlan(failing, t.TempDir(), "dev", []string{"/a/Admin.profile-meta.xml"})
	require.NoError(t, err)

	_, err = plan.Run(t.Context())
	require.ErrorIs(t, err, execs.ErrCommandExecution)
	assert.Contains(t, err.Error(), "deploy to dev")
}
