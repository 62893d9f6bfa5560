// Package deploy pushes edited profiles to a Salesforce org by running an
// external deploy command.
package deploy

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/macropower/profedit/pkg/execs"
	"github.com/macropower/profedit/pkg/files"
)

// Variables available to deploy command arguments.
const (
	VarMetadata   = "METADATA"
	VarTargetOrg  = "TARGET_ORG"
	VarProjectDir = "PROJECT_DIR"
)

var (
	// ErrNothingToDeploy is returned when no profile changed.
	ErrNothingToDeploy = errors.New("no modified profiles to deploy")

	// ErrNoTargetOrg is returned when no target org is set.
	ErrNoTargetOrg = errors.New("target org is required")
)

// DefaultCommand is the deploy command used when none is configured.
func DefaultCommand() execs.Command {
	return execs.Command{
		Command: "sfdx",
		Args: []string{
			"force:source:deploy",
			"-m", "${" + VarMetadata + "}",
			"-u", "${" + VarTargetOrg + "}",
		},
		InheritEnv: []string{"SF_.*", "SFDX_.*"},
	}
}

// Plan is a deploy of a set of profiles to one org.
type Plan struct {
	// Command is the expanded command to run.
	Command execs.Command
	// Dir is the directory the command runs in, usually the project root.
	Dir string
	// TargetOrg is the username or alias of the org.
	TargetOrg string
	// Members are the manifest members, e.g. "Profile:Admin".
	Members []string
}

// NewPlan builds a deploy of the profiles at paths.
func NewPlan(cmd execs.Command, dir, targetOrg string, paths []string) (*Plan, error) {
	if targetOrg == "" {
		return nil, ErrNoTargetOrg
	}
	if len(paths) == 0 {
		return nil, ErrNothingToDeploy
	}

	members := files.Manifest(paths)

	return &Plan{
		Command: cmd.Expand(map[string]string{
			VarMetadata:   strings.Join(members, ","),
			VarTargetOrg:  targetOrg,
			VarProjectDir: dir,
		}),
		Dir:       dir,
		TargetOrg: targetOrg,
		Members:   members,
	}, nil
}

// Metadata returns the comma-joined manifest.
func (p *Plan) Metadata() string {
	return strings.Join(p.Members, ",")
}

// Run executes the deploy command.
func (p *Plan) Run(ctx context.Context) (*execs.Result, error) {
	res, err := execs.NewExecutor(p.Command).Exec(ctx, p.Dir)
	if err != nil {
		return res, fmt.Errorf("deploy to %s: %w", p.TargetOrg, err)
	}

	return res, nil
}

func (p *Plan) String() string {
	return p.Command.String()
}
