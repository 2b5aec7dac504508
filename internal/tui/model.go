// Package tui is the terminal editor for one run: a list of the run's
// entries and a drawer that edits the selected entry through an
// editor.Controller.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mesh-intelligence/nuzlocke/internal/cache"
	"github.com/mesh-intelligence/nuzlocke/internal/editor"
	"github.com/mesh-intelligence/nuzlocke/internal/suggest"
	"github.com/mesh-intelligence/nuzlocke/pkg/types"
)

// runLoadedMsg carries the result of the initial run fetch.
type runLoadedMsg struct {
	run types.Run
	err error
}

// poolLoadedMsg carries a candidate-pool fetch result.
type poolLoadedMsg struct {
	result editor.PoolResult
}

// updateResultMsg carries the outcome of a submitted update.
type updateResultMsg struct {
	result editor.UpdateResult
}

// deleteResultMsg carries the outcome of a delete.
type deleteResultMsg struct {
	result editor.DeleteResult
}

// Model is the bubbletea model of the editor.
type Model struct {
	ctx    context.Context
	client *cache.Client
	ctrl   *editor.Controller
	logger *slog.Logger

	runID  string
	run    types.Run
	loaded bool
	err    error
	cursor int

	drawer  drawer
	spinner spinner.Model
	keys    KeyMap
	theme   Theme
	width   int
	height  int
}

// NewModel returns a model that edits runID through client. Mutations are
// issued with ctx.
func NewModel(ctx context.Context, client *cache.Client, runID string, logger *slog.Logger) Model {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := spinner.New()
	s.Spinner = spinner.Dot
	return Model{
		ctx:     ctx,
		client:  client,
		ctrl:    editor.NewController(client, client.Cache(), logger),
		logger:  logger,
		runID:   runID,
		spinner: s,
		keys:    DefaultKeyMap,
		theme:   DefaultTheme,
	}
}

// Init fetches the run and starts the spinner.
func (model Model) Init() tea.Cmd {
	return tea.Batch(model.loadRun(), model.spinner.Tick)
}

func (model Model) loadRun() tea.Cmd {
	ctx, client, runID := model.ctx, model.client, model.runID
	return func() tea.Msg {
		run, err := client.GetRun(ctx, runID)
		return runLoadedMsg{run: run, err: err}
	}
}

// reloadRun refetches the run, replacing the cached image.
func (model Model) reloadRun() tea.Cmd {
	ctx, client, runID := model.ctx, model.client, model.runID
	return func() tea.Msg {
		run, err := client.Refresh(ctx, runID)
		return runLoadedMsg{run: run, err: err}
	}
}

func (model Model) fetchPool(ticket editor.PoolTicket) tea.Cmd {
	ctx, ctrl := model.ctx, model.ctrl
	return func() tea.Msg {
		return poolLoadedMsg{result: ctrl.FetchPool(ctx, ticket)}
	}
}

func (model Model) submit(ticket editor.UpdateTicket) tea.Cmd {
	ctx, ctrl := model.ctx, model.ctrl
	return func() tea.Msg {
		return updateResultMsg{result: ctrl.DoSubmit(ctx, ticket)}
	}
}

func (model Model) remove(ticket editor.DeleteTicket) tea.Cmd {
	ctx, ctrl := model.ctx, model.ctrl
	return func() tea.Msg {
		return deleteResultMsg{result: ctrl.DoDelete(ctx, ticket)}
	}
}

// Update handles one message.
func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.KeyMsg:
		if model.ctrl.Visible() {
			return model.handleDrawerKeys(message)
		}
		return model.handleListKeys(message)

	case runLoadedMsg:
		model.loaded = true
		model.err = message.err
		if message.err == nil {
			model.run = message.run
		}
		model.clampCursor()

	case poolLoadedMsg:
		model.ctrl.ApplyPool(message.result)

	case updateResultMsg:
		model.ctrl.FinishSubmit(message.result)
		model.refreshRun()

	case deleteResultMsg:
		model.ctrl.FinishDelete(message.result)
		model.refreshRun()

	case spinner.TickMsg:
		var cmd tea.Cmd
		model.spinner, cmd = model.spinner.Update(message)
		return model, cmd

	case tea.WindowSizeMsg:
		model.width = message.Width
		model.height = message.Height
	}
	return model, nil
}

func (model Model) handleListKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.Quit):
		return model, tea.Quit
	case key.Matches(message, model.keys.Up):
		if model.cursor > 0 {
			model.cursor--
		}
	case key.Matches(message, model.keys.Down):
		if model.cursor < len(model.run.Entries)-1 {
			model.cursor++
		}
	case key.Matches(message, model.keys.Open):
		return model.openSelected()
	case key.Matches(message, model.keys.Reload):
		return model, model.reloadRun()
	}
	return model, nil
}

// openSelected binds the drawer to the entry under the cursor and starts
// the candidate-pool fetch.
func (model Model) openSelected() (tea.Model, tea.Cmd) {
	if model.cursor >= len(model.run.Entries) {
		return model, nil
	}
	entry := model.run.Entries[model.cursor]
	if err := model.ctrl.Open(model.run, entry.ID); err != nil {
		model.logger.Warn("cannot open editor", "entry_id", entry.ID, "error", err)
		return model, nil
	}
	model.drawer = newDrawer(model.ctrl.Form())

	if ticket, ok := model.ctrl.PoolRequest(); ok {
		return model, model.fetchPool(ticket)
	}
	return model, nil
}

func (model Model) handleDrawerKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case message.String() == "ctrl+c":
		return model, tea.Quit

	case key.Matches(message, model.keys.Close):
		model.ctrl.Close()
		model.refreshRun()
		return model, nil

	case key.Matches(message, model.keys.Save):
		ticket, err := model.ctrl.BeginSubmit()
		if err != nil {
			model.logger.Debug("save refused", "error", err)
			return model, nil
		}
		return model, model.submit(ticket)

	case key.Matches(message, model.keys.Delete):
		ticket, err := model.ctrl.BeginDelete()
		if err != nil {
			model.logger.Debug("delete refused", "error", err)
			return model, nil
		}
		return model, model.remove(ticket)
	}

	form := model.ctrl.Form()
	if model.ctrl.Pool().Data == nil || form.State() != editor.StateEditing {
		return model, nil
	}
	paired := form.Paired()

	switch {
	case key.Matches(message, model.keys.NextField):
		model.drawer.move(1, paired)
		return model, nil
	case key.Matches(message, model.keys.PrevField):
		model.drawer.move(-1, paired)
		return model, nil
	}

	switch model.drawer.focus {
	case fieldStatus:
		if delta := cycleDelta(message, model.keys); delta != 0 {
			form.SetStatus(cycleStatus(form.Fields().Status, delta))
		}
	case fieldPartner:
		if delta := cycleDelta(message, model.keys); delta != 0 {
			candidates, _ := model.ctrl.Candidates()
			current, _ := form.Partner()
			form.SetPartner(cyclePartner(current, candidates, delta))
		}
	case fieldNickname:
		var cmd tea.Cmd
		model.drawer.nickname, cmd = model.drawer.nickname.Update(message)
		form.SetNickname(model.drawer.nickname.Value())
		return model, cmd
	case fieldLocation:
		if key.Matches(message, model.keys.AcceptSuggestion) {
			locations, _ := model.ctrl.Locations()
			if hints := suggest.Top(form.Fields().Location, locations, 1); len(hints) > 0 {
				model.drawer.location.SetValue(hints[0])
				model.drawer.location.CursorEnd()
				form.SetLocation(hints[0])
			}
			return model, nil
		}
		var cmd tea.Cmd
		model.drawer.location, cmd = model.drawer.location.Update(message)
		form.SetLocation(model.drawer.location.Value())
		return model, cmd
	}
	return model, nil
}

func cycleDelta(message tea.KeyMsg, keys KeyMap) int {
	switch {
	case key.Matches(message, keys.CycleBack):
		return -1
	case key.Matches(message, keys.CycleForward):
		return 1
	}
	return 0
}

// refreshRun re-reads the run from the cache, which mutations have
// already patched.
func (model *Model) refreshRun() {
	if run, ok := model.client.Cache().ReadRun(model.runID); ok {
		model.run = run
	}
	model.clampCursor()
}

func (model *Model) clampCursor() {
	if model.cursor >= len(model.run.Entries) {
		model.cursor = len(model.run.Entries) - 1
	}
	if model.cursor < 0 {
		model.cursor = 0
	}
}

// View renders the run list and, when a session is visible, the drawer.
func (model Model) View() string {
	if !model.loaded {
		return model.spinner.View() + " loading run…\n"
	}
	if model.err != nil {
		return lipgloss.NewStyle().Foreground(model.theme.ErrorText).
			Render(fmt.Sprintf("cannot load run %s: %v", model.runID, model.err)) + "\n"
	}

	var b strings.Builder
	b.WriteString(model.headerView())
	b.WriteString("\n\n")
	b.WriteString(model.listView())

	if model.ctrl.Visible() {
		b.WriteString("\n")
		b.WriteString(model.drawer.view(model.ctrl, model.theme, model.spinner.View(), model.width))
		b.WriteString("\n")
		b.WriteString(model.helpView(true))
	} else {
		b.WriteString("\n")
		b.WriteString(model.helpView(false))
	}
	return b.String()
}

func (model Model) headerView() string {
	style := lipgloss.NewStyle().Bold(true).Foreground(model.theme.HeaderForeground)
	faint := lipgloss.NewStyle().Foreground(model.theme.FaintText)
	return style.Render(string(model.run.Mode)) +
		faint.Render(fmt.Sprintf("  %s · %s · %d entries", model.run.RegionID, model.run.GameID, len(model.run.Entries)))
}

func (model Model) listView() string {
	if len(model.run.Entries) == 0 {
		return lipgloss.NewStyle().Foreground(model.theme.FaintText).Render("no entries yet") + "\n"
	}

	selected := lipgloss.NewStyle().
		Background(model.theme.SelectedBackground).
		Foreground(model.theme.SelectedForeground)
	nameStyle := lipgloss.NewStyle().Width(14)
	locationStyle := lipgloss.NewStyle().Width(18).Foreground(model.theme.FaintText)

	var b strings.Builder
	for i, e := range model.run.Entries {
		status := lipgloss.NewStyle().Width(9).Foreground(model.theme.StatusColor(e.Status)).Render(e.Status.Label())
		row := nameStyle.Render(e.DisplayName()) + locationStyle.Render(e.Location) + status
		if types.IsPaired(model.run) && e.Partner != nil {
			row += " ⇄ " + e.Partner.Name
		}
		if i == model.cursor {
			row = selected.Render("› " + row)
		} else {
			row = "  " + row
		}
		b.WriteString(row)
		b.WriteString("\n")
	}
	return b.String()
}

func (model Model) helpView(drawerOpen bool) string {
	var bindings []key.Binding
	if drawerOpen {
		bindings = []key.Binding{
			model.keys.NextField, model.keys.CycleForward, model.keys.AcceptSuggestion,
			model.keys.Save, model.keys.Delete, model.keys.Close,
		}
	} else {
		bindings = []key.Binding{model.keys.Up, model.keys.Down, model.keys.Open, model.keys.Reload, model.keys.Quit}
	}
	parts := make([]string, 0, len(bindings))
	for _, binding := range bindings {
		help := binding.Help()
		parts = append(parts, help.Key+" "+help.Desc)
	}
	return lipgloss.NewStyle().Foreground(model.theme.HelpText).Render(strings.Join(parts, "  ·  "))
}
