package brief

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/jonathan/copydesk/internal/types"
)

// Step is a page of the brief wizard.
type Step string

const (
	StepProject   Step = "project"
	StepAudience  Step = "audience"
	StepDetails   Step = "details"
	StepReview    Step = "review"
	StepSubmitted Step = "submitted"
)

// Steps lists the editable steps in order, followed by review.
var Steps = []Step{StepProject, StepAudience, StepDetails, StepReview}

// Fields lists the json field names collected on each step, in display order.
var Fields = map[Step][]string{
	StepProject:  {"projectTitle", "contentType"},
	StepAudience: {"targetAudience", "goals", "tone"},
	StepDetails:  {"keywords", "wordCount", "deadline", "references", "notes", "contactEmail"},
}

// struct field names for StructPartial, keyed by json name
var structFields = map[string]string{
	"projectTitle":   "ProjectTitle",
	"contentType":    "ContentType",
	"targetAudience": "TargetAudience",
	"goals":          "Goals",
	"tone":           "Tone",
	"keywords":       "Keywords",
	"wordCount":      "WordCount",
	"deadline":       "Deadline",
	"references":     "References",
	"notes":          "Notes",
	"contactEmail":   "ContactEmail",
}

// ErrUnknownField is returned by Set for a field the brief does not have.
var ErrUnknownField = errors.New("unknown brief field")

// StepError is an operation that is not valid on the current step.
type StepError struct {
	Step Step
	Op   string
}

func (e *StepError) Error() string {
	return fmt.Sprintf("cannot %s on step %s", e.Op, e.Step)
}

// Draft is the in-progress brief and the step the user is on.
type Draft struct {
	Step      Step        `json:"step"`
	Brief     types.Brief `json:"brief"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// NewDraft is an empty brief on the first step.
func NewDraft() Draft {
	return Draft{Step: StepProject}
}

func (d Draft) index() int {
	for i, s := range Steps {
		if s == d.Step {
			return i
		}
	}
	return -1
}

// Set parses value into the named field. Lists take comma or newline
// separated values. Set is allowed on every step before submission.
func (d Draft) Set(field, value string) (Draft, error) {
	if d.Step == StepSubmitted {
		return d, &StepError{Step: d.Step, Op: "edit"}
	}

	b := d.Brief
	value = strings.TrimSpace(value)
	switch field {
	case "projectTitle":
		b.ProjectTitle = value
	case "contentType":
		b.ContentType = value
	case "targetAudience":
		b.TargetAudience = value
	case "goals":
		b.Goals = value
	case "tone":
		b.Tone = value
	case "keywords":
		b.Keywords = splitList(value)
	case "wordCount":
		if value == "" {
			b.WordCount = 0
			break
		}
		n, err := strconv.Atoi(value)
		if err != nil {
			return d, &ValidationError{Fields: map[string]string{"wordCount": "Enter a whole number"}}
		}
		b.WordCount = n
	case "deadline":
		b.Deadline = value
	case "references":
		b.References = splitList(value)
	case "notes":
		b.Notes = value
	case "contactEmail":
		b.ContactEmail = value
	default:
		return d, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}

	d.Brief = b
	return d, nil
}

// Get returns the field formatted the way Set accepts it.
func (d Draft) Get(field string) string {
	b := d.Brief
	switch field {
	case "projectTitle":
		return b.ProjectTitle
	case "contentType":
		return b.ContentType
	case "targetAudience":
		return b.TargetAudience
	case "goals":
		return b.Goals
	case "tone":
		return b.Tone
	case "keywords":
		return strings.Join(b.Keywords, ", ")
	case "wordCount":
		if b.WordCount == 0 {
			return ""
		}
		return strconv.Itoa(b.WordCount)
	case "deadline":
		return b.Deadline
	case "references":
		return strings.Join(b.References, ", ")
	case "notes":
		return b.Notes
	case "contactEmail":
		return b.ContactEmail
	}
	return ""
}

// CheckStep validates the fields of the current step.
func (d Draft) CheckStep() error {
	names := make([]string, 0, len(Fields[d.Step]))
	for _, f := range Fields[d.Step] {
		names = append(names, structFields[f])
	}
	return validateFields(d.Brief, names...)
}

// Next moves forward once the current step is valid.
func (d Draft) Next() (Draft, error) {
	i := d.index()
	if i < 0 || d.Step == StepReview {
		return d, &StepError{Step: d.Step, Op: "advance"}
	}
	if err := d.CheckStep(); err != nil {
		return d, err
	}
	d.Step = Steps[i+1]
	return d, nil
}

// Back moves to the previous step without validating.
func (d Draft) Back() (Draft, error) {
	i := d.index()
	if i <= 0 {
		return d, &StepError{Step: d.Step, Op: "go back"}
	}
	d.Step = Steps[i-1]
	return d, nil
}

// DraftStore persists the in-progress draft between sessions.
type DraftStore interface {
	Save(ctx context.Context, d Draft) error
	// Load returns nil when no draft is stored.
	Load(ctx context.Context) (*Draft, error)
	Clear(ctx context.Context) error
}

// Wizard drives a Draft and decides when it is saved: after every edit and
// step change, and cleared once the brief is submitted.
type Wizard struct {
	draft     Draft
	store     DraftStore
	submitter Submitter
	receipt   *types.BriefReceipt
	now       func() time.Time
}

// NewWizard resumes the stored draft, or starts a new one.
func NewWizard(ctx context.Context, store DraftStore, submitter Submitter) (*Wizard, error) {
	w := &Wizard{draft: NewDraft(), store: store, submitter: submitter, now: time.Now}

	saved, err := store.Load(ctx)
	if err != nil {
		// A corrupt draft should not block a new brief.
		log.Printf("[brief] Discarding unreadable draft: %v", err)
		return w, nil
	}
	if saved != nil && saved.index() >= 0 {
		w.draft = *saved
	}
	return w, nil
}

// Draft returns the current draft.
func (w *Wizard) Draft() Draft {
	return w.draft
}

// Receipt returns the submission receipt once the brief has been submitted.
func (w *Wizard) Receipt() *types.BriefReceipt {
	return w.receipt
}

// Set updates a field and saves the draft.
func (w *Wizard) Set(ctx context.Context, field, value string) error {
	next, err := w.draft.Set(field, value)
	if err != nil {
		return err
	}
	return w.commit(ctx, next)
}

// Next advances a step and saves the draft.
func (w *Wizard) Next(ctx context.Context) error {
	next, err := w.draft.Next()
	if err != nil {
		return err
	}
	return w.commit(ctx, next)
}

// Back returns to the previous step and saves the draft.
func (w *Wizard) Back(ctx context.Context) error {
	next, err := w.draft.Back()
	if err != nil {
		return err
	}
	return w.commit(ctx, next)
}

// Submit validates the whole brief from the review step and hands it to the
// submitter. The stored draft is cleared only after the submitter succeeds.
func (w *Wizard) Submit(ctx context.Context) (*types.BriefReceipt, error) {
	if w.draft.Step != StepReview {
		return nil, &StepError{Step: w.draft.Step, Op: "submit"}
	}
	if err := Validate(w.draft.Brief); err != nil {
		return nil, err
	}

	receipt, err := w.submitter.Submit(ctx, w.draft.Brief)
	if err != nil {
		return nil, fmt.Errorf("submitting brief: %w", err)
	}

	w.draft.Step = StepSubmitted
	w.receipt = receipt
	if err := w.store.Clear(ctx); err != nil {
		log.Printf("[brief] Failed to clear draft after submit: %v", err)
	}
	return receipt, nil
}

// Discard throws the draft away and starts over.
func (w *Wizard) Discard(ctx context.Context) error {
	w.draft = NewDraft()
	w.receipt = nil
	return w.store.Clear(ctx)
}

func (w *Wizard) commit(ctx context.Context, next Draft) error {
	next.UpdatedAt = w.now().UTC()
	if err := w.store.Save(ctx, next); err != nil {
		return fmt.Errorf("saving draft: %w", err)
	}
	w.draft = next
	return nil
}

func splitList(value string) []string {
	parts := strings.FieldsFunc(value, func(r rune) bool {
		return r == ',' || r == '\n'
	})
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
