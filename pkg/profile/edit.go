package profile

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/sahilm/fuzzy"

	"github.com/macropower/profedit/pkg/xml"
)

// Outcome is the result of applying an [EditRequest] to a document.
type Outcome int

const (
	// OutcomeUnchanged means the document's state did not change.
	OutcomeUnchanged Outcome = iota
	// OutcomeModified means the document changed and should be written.
	OutcomeModified
	// OutcomeNotFound means the target entry was absent and not created.
	OutcomeNotFound
)

func (o Outcome) String() string {
	switch o {
	case OutcomeUnchanged:
		return "unchanged"
	case OutcomeModified:
		return "modified"
	case OutcomeNotFound:
		return "not-found"
	}

	return "Outcome(" + strconv.Itoa(int(o)) + ")"
}

// MarshalText implements [encoding.TextMarshaler].
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// EditRequest describes one edit to a permission entry.
type EditRequest struct {
	// Rename is the new component name. When the target does not exist and
	// creation is allowed, Rename is used as the name of the new entry.
	Rename *string `json:"rename,omitempty"`
	// Enabled overwrites the entry's enabled flag.
	Enabled *bool `json:"enabled,omitempty"`
	// Category selects the permission category.
	Category Category `json:"category"`
	// Target is the component name of the entry to edit.
	Target string `json:"target"`
}

// Validate checks that the request names a known category and a target, and
// that every name it carries can be written as XML text.
func (r EditRequest) Validate() error {
	if _, ok := r.Category.Descriptor(); !ok {
		return fmt.Errorf("%w: %w: %q", ErrInvalidRequest, ErrUnknownCategory, r.Category)
	}
	if r.Target == "" {
		return fmt.Errorf("%w: target name is required", ErrInvalidRequest)
	}
	if !xml.ValidText(r.Target) {
		return fmt.Errorf("%w: target %q contains characters not allowed in XML", ErrInvalidRequest, r.Target)
	}
	if r.Rename != nil && *r.Rename == "" {
		return fmt.Errorf("%w: rename must not be empty", ErrInvalidRequest)
	}
	if r.Rename != nil && !xml.ValidText(*r.Rename) {
		return fmt.Errorf("%w: rename %q contains characters not allowed in XML", ErrInvalidRequest, *r.Rename)
	}

	return nil
}

func (r EditRequest) String() string {
	s := fmt.Sprintf("%s %q", r.Category, r.Target)
	if r.Rename != nil {
		s += fmt.Sprintf(" rename=%q", *r.Rename)
	}
	if r.Enabled != nil {
		s += fmt.Sprintf(" enabled=%t", *r.Enabled)
	}

	return s
}

// ApplyOpt configures [Document.Apply].
type ApplyOpt func(*applyOptions)

type applyOptions struct {
	create bool
}

// WithCreate sets whether a missing entry is created. Defaults to true.
func WithCreate(create bool) ApplyOpt {
	return func(o *applyOptions) {
		o.create = create
	}
}

// Find returns the entry named name in category c. The match is exact and
// case-sensitive. It returns a [*NotFoundError] when there is no such entry.
func (d *Document) Find(c Category, name string) (*Entry, error) {
	i := d.index(c, name)
	if i == -1 {
		return nil, &NotFoundError{Category: c, Name: name}
	}

	return d.entries[c][i], nil
}

// Apply applies req to the document.
//
// An existing entry is renamed and/or has its enabled flag overwritten in
// place. A missing entry is appended to its category when creation is
// allowed, named after req.Rename if set and req.Target otherwise; if an
// entry with that name already exists, it is edited instead. The returned
// [Outcome] reports whether the document actually changed.
//
// Renaming an entry to a name already used by another entry in the category
// fails with a [*DuplicateEntryError] and leaves the document unchanged. Only
// creation falls back to editing an entry that already holds the name.
func (d *Document) Apply(req EditRequest, opts ...ApplyOpt) (Outcome, error) {
	options := &applyOptions{create: true}
	for _, opt := range opts {
		opt(options)
	}

	err := req.Validate()
	if err != nil {
		return OutcomeUnchanged, err
	}

	desc, _ := req.Category.Descriptor()

	e, err := d.Find(req.Category, req.Target)
	if err == nil {
		return d.update(e, req)
	}

	if !options.create {
		return OutcomeNotFound, nil
	}

	name := req.Target
	if req.Rename != nil {
		name = *req.Rename
	}

	if existing, err := d.Find(req.Category, name); err == nil {
		slog.Debug("entry already exists, editing it instead",
			slog.Any("err", &DuplicateEntryError{Category: req.Category, Name: name}),
		)

		return d.update(existing, EditRequest{Category: req.Category, Target: name, Enabled: req.Enabled})
	}

	enabled := false
	if req.Enabled != nil {
		enabled = *req.Enabled
	}

	d.entries[req.Category] = append(d.entries[req.Category], newEntry(desc, name, enabled))

	return OutcomeModified, nil
}

// update edits e in place. A rename onto another entry's name is reported as a
// [*DuplicateEntryError]; unlike creation it does not fall back to editing
// the entry that already holds the name.
func (d *Document) update(e *Entry, req EditRequest) (Outcome, error) {
	if req.Rename != nil && *req.Rename != e.name && d.index(req.Category, *req.Rename) != -1 {
		return OutcomeUnchanged, &DuplicateEntryError{Category: req.Category, Name: *req.Rename}
	}

	changed := false
	if req.Rename != nil && e.setName(*req.Rename) {
		changed = true
	}
	if req.Enabled != nil && e.setEnabled(*req.Enabled) {
		changed = true
	}

	if changed {
		return OutcomeModified, nil
	}

	return OutcomeUnchanged, nil
}

// Suggest returns up to limit entry names in category c that fuzzy-match name,
// best match first.
func (d *Document) Suggest(c Category, name string, limit int) []string {
	entries := d.entries[c]
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.name)
	}

	matches := fuzzy.Find(name, names)

	out := []string{}
	for _, m := range matches {
		if len(out) == limit {
			break
		}

		out = append(out, m.Str)
	}

	return out
}
