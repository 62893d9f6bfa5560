package rule

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/cel-go/cel"

	"github.com/macropower/profedit/pkg/expr"
)

// Action is what happens to a file matched by a [Rule].
type Action string

const (
	// ActionInclude keeps matched files in the edit.
	ActionInclude Action = "include"
	// ActionExclude removes matched files from the edit.
	ActionExclude Action = "exclude"
)

// ErrInvalidAction is returned for actions other than include and exclude.
var ErrInvalidAction = errors.New("invalid rule action")

// Rule uses a CEL matcher to determine whether a profile file is edited.
//
// CEL expressions have access to variables:
//   - `file` (string): The profile file path
//   - `dir` (string): The directory containing the file
//   - `profile` (string): The profile name, e.g. "Admin"
//
// CEL expressions must return a boolean value:
//   - profile == "Admin" - true for the Admin profile
//   - pathDir(file).contains("/force-app/") - true for files in force-app
//   - profileField(file, "userLicense") == "Guest User License" - true for guest profiles
//   - hasEntry(file, "class", "MyClass") - true if the profile has a MyClass entry
//
// CEL functions available:
//   - pathBase(string): Returns the last element of the path (filename)
//   - pathDir(string): Returns all but the last element of the path (directory)
//   - pathExt(string): Returns the file extension including the dot
//   - profileName(string): Returns the profile name of a path
//   - profileField(file, element): Returns the text of a top-level element (null if not found)
//   - hasEntry(file, category, name): Reports whether the profile has an entry
//
// CEL also provides standard functions like `endsWith`, `contains`,
// `startsWith` and `matches`, and logical operators like `&&`, `||`, and `!`.
type Rule struct {
	matchProgram cel.Program // Compiled CEL program for matching file paths.

	// Match is a CEL expression to match profile files.
	Match string `json:"match" jsonschema:"title=Match Expression"`
	// Action is applied to files matching the expression.
	Action Action `json:"action,omitempty" jsonschema:"title=Action,enum=include,enum=exclude,default=include"`
}

// New creates a new rule with the given match expression and action.
func New(match string, action Action) (*Rule, error) {
	r := &Rule{
		Match:  match,
		Action: action,
	}
	if err := r.CompileMatch(); err != nil {
		return nil, fmt.Errorf("rule %q: %w", match, err)
	}

	return r, nil
}

// MustNew creates a new rule and panics if there's an error.
func MustNew(match string, action Action) *Rule {
	r, err := New(match, action)
	if err != nil {
		panic(err)
	}

	return r
}

// CompileMatch validates the action and compiles the rule's match expression
// into a CEL program.
func (r *Rule) CompileMatch() error {
	switch r.Action {
	case "":
		r.Action = ActionInclude
	case ActionInclude, ActionExclude:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidAction, r.Action)
	}

	if r.matchProgram == nil {
		env, err := expr.NewEnvironment()
		if err != nil {
			return fmt.Errorf("create CEL environment: %w", err)
		}

		program, err := env.Compile(r.Match)
		if err != nil {
			return err //nolint:wrapcheck // Already wrapped.
		}

		r.matchProgram = program
	}

	return nil
}

// MatchFile evaluates the rule against a profile file path.
// Evaluation errors and non-boolean results count as a non-match.
func (r *Rule) MatchFile(path string) bool {
	if r.matchProgram == nil {
		panic(errors.New("rule missing a match expression"))
	}

	result, _, err := r.matchProgram.Eval(expr.Vars(path))
	if err != nil {
		slog.Debug("rule evaluation failed",
			slog.String("match", r.Match),
			slog.String("path", path),
			slog.Any("err", err),
		)

		return false
	}

	if boolVal, ok := result.Value().(bool); ok {
		return boolVal
	}

	return false
}

func (r *Rule) String() string {
	return fmt.Sprintf("%s: %s", r.Action, r.Match)
}

// Included reports whether path should be edited. The first matching rule
// decides. When no rule matches, the file is included.
func Included(rules []*Rule, path string) bool {
	for _, r := range rules {
		if r.MatchFile(path) {
			return r.Action != ActionExclude
		}
	}

	return true
}
