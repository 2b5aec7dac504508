package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	"github.com/mesh-intelligence/nuzlocke/internal/editor"
	"github.com/mesh-intelligence/nuzlocke/internal/suggest"
	"github.com/mesh-intelligence/nuzlocke/pkg/types"
)

// field is one control of the drawer.
type field int

const (
	fieldNickname field = iota
	fieldLocation
	fieldStatus
	fieldPartner
)

var fieldLabels = map[field]string{
	fieldNickname: "Nickname",
	fieldLocation: "Location",
	fieldStatus:   "Status",
	fieldPartner:  "Partner",
}

// maxSuggestions is the number of locations offered under the input.
const maxSuggestions = 3

// drawer is the view state of the editor panel: which control has focus
// and the two text inputs. Every working value lives in the editor form;
// the inputs only mirror it.
type drawer struct {
	focus    field
	nickname textinput.Model
	location textinput.Model
}

func newDrawer(form *editor.Form) drawer {
	fields := form.Fields()

	nickname := textinput.New()
	nickname.Placeholder = "nickname"
	nickname.SetValue(fields.Nickname)
	nickname.CursorEnd()

	location := textinput.New()
	location.Placeholder = "where it was caught"
	location.SetValue(fields.Location)
	location.CursorEnd()

	d := drawer{nickname: nickname, location: location}
	d.focusField(fieldNickname)
	return d
}

// fields lists the controls in tab order. The partner select exists only
// for paired runs.
func (d drawer) fields(paired bool) []field {
	if paired {
		return []field{fieldNickname, fieldLocation, fieldStatus, fieldPartner}
	}
	return []field{fieldNickname, fieldLocation, fieldStatus}
}

func (d *drawer) focusField(f field) {
	d.focus = f
	d.nickname.Blur()
	d.location.Blur()
	switch f {
	case fieldNickname:
		d.nickname.Focus()
	case fieldLocation:
		d.location.Focus()
	}
}

// move shifts focus by delta with wrap-around.
func (d *drawer) move(delta int, paired bool) {
	order := d.fields(paired)
	current := 0
	for i, f := range order {
		if f == d.focus {
			current = i
		}
	}
	next := (current + delta + len(order)) % len(order)
	d.focusField(order[next])
}

// cycleStatus returns the status delta steps away from current in the
// vocabulary, wrapping. An unknown current status starts from the first.
func cycleStatus(current types.Status, delta int) types.Status {
	index := -1
	for i, s := range types.Statuses {
		if s == current {
			index = i
		}
	}
	if index < 0 {
		return types.Statuses[0]
	}
	n := len(types.Statuses)
	return types.Statuses[(index+delta+n)%n]
}

// cyclePartner returns the partner delta steps away from current over the
// options [none, candidates...], wrapping. nil means none.
func cyclePartner(current string, candidates []types.Candidate, delta int) *string {
	n := len(candidates) + 1
	index := 0
	for i, c := range candidates {
		if c.ID == current {
			index = i + 1
		}
	}
	next := (index + delta + n) % n
	if next == 0 {
		return nil
	}
	id := candidates[next-1].ID
	return &id
}

// partnerLabel names the working partner. A partner missing from the
// candidates is shown by id.
func partnerLabel(form *editor.Form, candidates []types.Candidate) string {
	id, ok := form.Partner()
	if !ok {
		return "none"
	}
	for _, c := range candidates {
		if c.ID == id {
			return c.Name
		}
	}
	return id
}

// view renders the drawer for the current session.
func (d drawer) view(ctrl *editor.Controller, theme Theme, spinnerView string, width int) string {
	entry, _ := ctrl.Entry()
	form := ctrl.Form()

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.HeaderForeground)
	faint := lipgloss.NewStyle().Foreground(theme.FaintText)
	errorStyle := lipgloss.NewStyle().Foreground(theme.ErrorText)

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Edit %s", entry.DisplayName())))
	b.WriteString(faint.Render(fmt.Sprintf("  #%d %s", entry.Species.ID, entry.Species.Name)))
	b.WriteString("\n\n")

	pool := ctrl.Pool()
	switch {
	case pool.Err != nil:
		b.WriteString(errorStyle.Render(pool.Err.Error()))
		b.WriteString("\n")
		b.WriteString(faint.Render("close and reopen to retry"))
		b.WriteString("\n")
	case pool.Data == nil:
		b.WriteString(spinnerView + " loading candidates…\n")
	default:
		b.WriteString(d.formView(ctrl, form, theme))
	}

	b.WriteString("\n")
	b.WriteString(actionView("C-s save", ctrl.Updating(), ctrl.UpdateErr(), theme))
	b.WriteString("\n")
	b.WriteString(actionView("C-d delete", ctrl.Deleting(), ctrl.DeleteErr(), theme))

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.BorderColor).
		Padding(0, 1)
	if width > 4 {
		box = box.Width(width - 2)
	}
	return box.Render(b.String())
}

func (d drawer) formView(ctrl *editor.Controller, form *editor.Form, theme Theme) string {
	labelStyle := lipgloss.NewStyle().Width(10).Foreground(theme.FaintText)
	focusLabel := labelStyle.Foreground(theme.FocusColor)
	faint := lipgloss.NewStyle().Foreground(theme.FaintText)

	label := func(f field) string {
		if f == d.focus {
			return focusLabel.Render(fieldLabels[f])
		}
		return labelStyle.Render(fieldLabels[f])
	}

	fields := form.Fields()
	candidates, _ := ctrl.Candidates()
	locations, _ := ctrl.Locations()

	var b strings.Builder
	for _, f := range d.fields(form.Paired()) {
		b.WriteString(label(f))
		switch f {
		case fieldNickname:
			b.WriteString(d.nickname.View())
		case fieldLocation:
			b.WriteString(d.location.View())
			if f == d.focus {
				if hints := suggest.Top(fields.Location, locations, maxSuggestions); len(hints) > 0 {
					b.WriteString("\n")
					b.WriteString(labelStyle.Render(""))
					b.WriteString(faint.Render(strings.Join(hints, " · ")))
				}
			}
		case fieldStatus:
			status := lipgloss.NewStyle().Foreground(theme.StatusColor(fields.Status)).
				Render(fields.Status.Label())
			b.WriteString(selectView(status, f == d.focus))
		case fieldPartner:
			b.WriteString(selectView(partnerLabel(form, candidates), f == d.focus))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func selectView(value string, focused bool) string {
	if focused {
		return "‹ " + value + " ›"
	}
	return "  " + value
}

// actionView renders an action with its busy state and last error. A busy
// action renders disabled.
func actionView(label string, busy bool, err error, theme Theme) string {
	style := lipgloss.NewStyle().Foreground(theme.NormalText)
	text := "[ " + label + " ]"
	if busy {
		style = style.Foreground(theme.FaintText)
		text = "[ " + label + " … ]"
	}
	out := style.Render(text)
	if err != nil {
		out += " " + lipgloss.NewStyle().Foreground(theme.ErrorText).Render(err.Error())
	}
	return out
}
