package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/jonathan/copydesk/internal/brief"
	"github.com/jonathan/copydesk/internal/types"
)

var placeholders = map[string]string{
	"projectTitle":   "Q3 product launch blog post",
	"contentType":    strings.Join(types.ContentTypes, ", "),
	"targetAudience": "Operations leads at mid-size logistics companies",
	"goals":          "Drive sign-ups for the beta",
	"tone":           "Optional",
	"keywords":       "Comma separated, optional",
	"wordCount":      "100 to 20000, optional",
	"deadline":       "YYYY-MM-DD, optional",
	"references":     "Comma separated URLs, optional",
	"notes":          "Optional",
	"contactEmail":   "you@company.com",
}

// briefSubmitted reports the outcome of a submission.
type briefSubmitted struct {
	receipt *types.BriefReceipt
	err     error
}

// BriefModel is the bubbletea model for the brief wizard. Every edit and step
// change goes through the wizard, which saves the draft.
type BriefModel struct {
	ctx    context.Context
	styles *Styles
	wizard *brief.Wizard

	fields []string
	inputs []textinput.Model
	focus  int

	fieldErrs  map[string]string
	err        error
	submitting bool
}

// NewBriefModel creates the model on the wizard's current step.
func NewBriefModel(ctx context.Context, w *brief.Wizard, s *Styles) *BriefModel {
	if s == nil {
		s = DefaultStyles()
	}
	m := &BriefModel{ctx: ctx, styles: s, wizard: w}
	m.loadStep()
	return m
}

// Draft returns the wizard's current draft.
func (m *BriefModel) Draft() brief.Draft {
	return m.wizard.Draft()
}

// loadStep rebuilds the inputs for the current step from the draft.
func (m *BriefModel) loadStep() {
	d := m.wizard.Draft()
	m.fields = brief.Fields[d.Step]
	m.inputs = make([]textinput.Model, len(m.fields))
	m.focus = 0

	for i, field := range m.fields {
		in := textinput.New()
		in.Prompt = ""
		in.Placeholder = placeholders[field]
		in.CharLimit = 5000
		in.Width = 60
		in.SetValue(d.Get(field))
		if field == "contentType" {
			in.SetSuggestions(types.ContentTypes)
			in.ShowSuggestions = true
		}
		if i == 0 {
			in.Focus()
		}
		m.inputs[i] = in
	}
}

// Init implements tea.Model.
func (m *BriefModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *BriefModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case briefSubmitted:
		m.submitting = false
		m.err = nil
		m.setFieldErrors(msg.err)
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.submitting {
			return m, nil
		}
		return m.handleKey(msg)
	}

	return m, m.updateInputs(msg)
}

func (m *BriefModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.wizard.Draft().Step {
	case brief.StepReview:
		switch msg.String() {
		case "enter", "ctrl+s":
			m.submitting = true
			m.err = nil
			return m, m.submit()
		case "b", "esc", "shift+tab":
			m.back()
		case "ctrl+x":
			m.discard()
		case "q":
			return m, tea.Quit
		}
		return m, nil

	case brief.StepSubmitted:
		switch msg.String() {
		case "enter", "q", "esc":
			return m, tea.Quit
		case "n":
			m.discard()
		}
		return m, nil
	}

	switch msg.String() {
	case "tab":
		if m.suggesting() {
			break
		}
		return m, m.setFocus(m.focus + 1)
	case "shift+tab":
		return m, m.setFocus(m.focus - 1)
	case "enter":
		if m.focus < len(m.inputs)-1 {
			return m, m.setFocus(m.focus + 1)
		}
		m.next()
		return m, nil
	case "esc", "ctrl+b":
		m.back()
		return m, nil
	case "ctrl+x":
		m.discard()
		return m, nil
	}

	return m, m.updateInputs(msg)
}

// suggesting reports whether tab should complete the focused input instead
// of moving focus.
func (m *BriefModel) suggesting() bool {
	if len(m.inputs) == 0 {
		return false
	}
	in := m.inputs[m.focus]
	s := in.CurrentSuggestion()
	return in.ShowSuggestions && s != "" && s != in.Value()
}

func (m *BriefModel) updateInputs(msg tea.Msg) tea.Cmd {
	cmds := make([]tea.Cmd, len(m.inputs))
	for i := range m.inputs {
		m.inputs[i], cmds[i] = m.inputs[i].Update(msg)
	}
	return tea.Batch(cmds...)
}

func (m *BriefModel) setFocus(i int) tea.Cmd {
	if len(m.inputs) == 0 {
		return nil
	}
	i = (i + len(m.inputs)) % len(m.inputs)
	m.inputs[m.focus].Blur()
	m.focus = i
	return m.inputs[i].Focus()
}

// store writes every input back into the draft. Field errors from parsing
// are kept so the user sees them next to the input.
func (m *BriefModel) store() bool {
	m.fieldErrs = nil
	m.err = nil
	ok := true
	for i, field := range m.fields {
		if err := m.wizard.Set(m.ctx, field, m.inputs[i].Value()); err != nil {
			m.setFieldErrors(err)
			ok = false
		}
	}
	return ok
}

func (m *BriefModel) next() {
	if !m.store() {
		return
	}
	if err := m.wizard.Next(m.ctx); err != nil {
		m.setFieldErrors(err)
		return
	}
	m.loadStep()
}

func (m *BriefModel) back() {
	if m.wizard.Draft().Step != brief.StepReview {
		m.store()
	}
	if err := m.wizard.Back(m.ctx); err != nil {
		m.err = err
		return
	}
	m.fieldErrs = nil
	m.loadStep()
}

func (m *BriefModel) discard() {
	m.fieldErrs = nil
	m.err = m.wizard.Discard(m.ctx)
	m.loadStep()
}

func (m *BriefModel) submit() tea.Cmd {
	return func() tea.Msg {
		receipt, err := m.wizard.Submit(m.ctx)
		return briefSubmitted{receipt: receipt, err: err}
	}
}

// setFieldErrors merges validation messages, or records a general error.
func (m *BriefModel) setFieldErrors(err error) {
	if err == nil {
		return
	}
	var verr *brief.ValidationError
	if !errors.As(err, &verr) {
		m.err = err
		return
	}
	if m.fieldErrs == nil {
		m.fieldErrs = make(map[string]string, len(verr.Fields))
	}
	for k, v := range verr.Fields {
		m.fieldErrs[k] = v
	}
}

// View implements tea.Model.
func (m *BriefModel) View() string {
	d := m.wizard.Draft()

	var b strings.Builder
	b.WriteString(m.styles.Title.Render("New Content Brief"))
	if !d.UpdatedAt.IsZero() && d.Step != brief.StepSubmitted {
		b.WriteString(m.styles.Muted.Render("  draft saved " + humanize.Time(d.UpdatedAt)))
	}
	b.WriteString("\n\n")
	b.WriteString(m.renderProgress(d.Step))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(m.styles.Error.Render(m.err.Error()))
		b.WriteString("\n\n")
	}

	switch d.Step {
	case brief.StepReview:
		b.WriteString(m.renderReview(d))
		b.WriteString("\n")
		if m.submitting {
			b.WriteString(m.styles.Muted.Render("Submitting..."))
		} else {
			b.WriteString(m.styles.Help.Render("enter: submit • b: back • ctrl+x: discard • q: quit"))
		}
	case brief.StepSubmitted:
		b.WriteString(m.renderReceipt())
		b.WriteString("\n")
		b.WriteString(m.styles.Help.Render("enter: done • n: new brief"))
	default:
		b.WriteString(m.renderInputs())
		b.WriteString("\n")
		b.WriteString(m.styles.Help.Render("tab: next field or complete • enter: continue • esc: back • ctrl+x: discard • ctrl+c: quit"))
	}
	return b.String()
}

func (m *BriefModel) renderProgress(step brief.Step) string {
	names := []string{"Project", "Audience", "Details", "Review", "Sent"}
	current := len(brief.Steps)
	for i, s := range brief.Steps {
		if s == step {
			current = i
		}
	}
	return m.styles.progress(names, current)
}

func (m *BriefModel) renderInputs() string {
	var b strings.Builder
	for i, field := range m.fields {
		label := brief.Label(field)
		if i == m.focus {
			label = m.styles.Selected.Render(label)
		} else {
			label = m.styles.Subtitle.Render(label)
		}
		b.WriteString(label)
		b.WriteString("\n")
		b.WriteString(m.styles.Box.Render(m.inputs[i].View()))
		b.WriteString("\n")
		if msg, ok := m.fieldErrs[field]; ok {
			b.WriteString(m.styles.Error.Render(msg))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m *BriefModel) renderReview(d brief.Draft) string {
	var b strings.Builder
	for _, step := range brief.Steps[:len(brief.Steps)-1] {
		for _, field := range brief.Fields[step] {
			value := d.Get(field)
			if value == "" {
				value = m.styles.Muted.Render("(none)")
			}
			b.WriteString(fmt.Sprintf("%-16s %s\n", brief.Label(field)+":", value))
			if msg, ok := m.fieldErrs[field]; ok {
				b.WriteString(m.styles.Error.Render("  " + msg))
				b.WriteString("\n")
			}
		}
	}
	return b.String()
}

func (m *BriefModel) renderReceipt() string {
	r := m.wizard.Receipt()
	if r == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(m.styles.Success.Render("Brief received. We'll be in touch within one business day."))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("Reference: %s\n", r.ID))
	b.WriteString(fmt.Sprintf("Status:    %s\n", r.Status))
	return b.String()
}
