package execs

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/mattn/go-shellwords"
)

var (
	// ErrCommandExecution is returned when command execution fails.
	ErrCommandExecution = errors.New("run")

	// ErrEmptyCommand is returned when a command is empty.
	ErrEmptyCommand = errors.New("empty command")
)

// essentialEnv is always passed through from the caller.
var essentialEnv = []string{"PATH", "HOME", "USER", "TERM", "COLORTERM", "TMPDIR"}

// Result represents the result of a command execution.
type Result struct {
	Stdout string
	Stderr string
}

// EnvVar represents a static environment variable.
type EnvVar struct {
	// Name is the environment variable name.
	Name string `json:"name" jsonschema:"title=Name"`
	// Value is the environment variable value. It may reference variables.
	Value string `json:"value,omitempty" jsonschema:"title=Value"`
}

// Command is an external command definition.
type Command struct {
	inherit []*LazyRegexp

	// Command is the command to execute.
	Command string `json:"command" jsonschema:"title=Command,pattern=^\\S+$"`
	// Args contains the command line arguments. Arguments may reference
	// variables as `${NAME}`.
	Args []string `json:"args,omitempty" jsonschema:"title=Arguments" yaml:"args,flow,omitempty"`
	// Env contains additional environment variables.
	Env []EnvVar `json:"env,omitempty" jsonschema:"title=Environment Variables"`
	// InheritEnv contains regex patterns of caller environment variable
	// names to pass to the command, in addition to PATH, HOME and similar.
	InheritEnv []string `json:"inheritEnv,omitempty" jsonschema:"title=Inherit Environment,format=regex"`
}

// Parse parses a shell-style command line into a [Command].
func Parse(line string) (Command, error) {
	words, err := shellwords.Parse(line)
	if err != nil {
		return Command{}, fmt.Errorf("parse command %q: %w", line, err)
	}
	if len(words) == 0 {
		return Command{}, ErrEmptyCommand
	}

	return Command{Command: words[0], Args: words[1:]}, nil
}

// Compile compiles the InheritEnv patterns.
func (c *Command) Compile() error {
	c.inherit = make([]*LazyRegexp, 0, len(c.InheritEnv))

	for i, p := range c.InheritEnv {
		lr := NewLazyRegexp("^(?:" + p + ")$")

		_, err := lr.Get()
		if err != nil {
			return fmt.Errorf("inheritEnv[%d]: %w", i, err)
		}

		c.inherit = append(c.inherit, lr)
	}

	return nil
}

// Expand returns a copy of the command with `${NAME}` references in its
// arguments and env values replaced from vars. References to unknown names
// are left as they are.
func (c Command) Expand(vars map[string]string) Command {
	mapping := func(name string) string {
		if v, ok := vars[name]; ok {
			return v
		}

		return "${" + name + "}"
	}

	out := c
	out.Args = make([]string, len(c.Args))
	for i, arg := range c.Args {
		out.Args[i] = os.Expand(arg, mapping)
	}

	out.Env = make([]EnvVar, len(c.Env))
	for i, ev := range c.Env {
		out.Env[i] = EnvVar{Name: ev.Name, Value: os.Expand(ev.Value, mapping)}
	}

	return out
}

// Environ builds the command's environment from the caller's environment,
// in `KEY=value` form and sorted by key.
func (c *Command) Environ(base []string) []string {
	if c.inherit == nil && len(c.InheritEnv) > 0 {
		err := c.Compile()
		if err != nil {
			slog.Warn("ignoring invalid inheritEnv patterns", slog.Any("err", err))
		}
	}

	env := map[string]string{}

	for _, kv := range base {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}

		if slices.Contains(essentialEnv, key) || c.inherits(key) {
			env[key] = value
		}
	}

	for _, ev := range c.Env {
		if ev.Name != "" {
			env[ev.Name] = ev.Value
		}
	}

	out := make([]string, 0, len(env))
	for key, value := range env {
		out = append(out, key+"="+value)
	}

	slices.Sort(out)

	return out
}

func (c *Command) inherits(key string) bool {
	for _, lr := range c.inherit {
		re, err := lr.Get()
		if err == nil && re != nil && re.MatchString(key) {
			return true
		}
	}

	return false
}

func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Command
	}

	return c.Command + " " + shellJoin(c.Args)
}

func shellJoin(args []string) string {
	quoted := make([]string, len(args))
	for i, a := range args {
		if a == "" || strings.ContainsAny(a, " \t\"'$\\") {
			quoted[i] = "'" + strings.ReplaceAll(a, "'", `'\''`) + "'"
		} else {
			quoted[i] = a
		}
	}

	return strings.Join(quoted, " ")
}
