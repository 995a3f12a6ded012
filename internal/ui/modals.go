package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"pc1console/internal/model"
	"pc1console/internal/timefmt"
)

type moduleTypesMsg struct{ types []model.ModuleType }

// addModuleModel — модальное окно добавления модуля: выбор вида из
// реестра, созданный модуль сразу открывается в редакторе.
type addModuleModel struct {
	deps   *Deps
	pos    int // канал, в который назначить новый модуль; 0 — без назначения
	types  []model.ModuleType
	cursor int
	busy   bool
}

func newAddModuleModel(deps *Deps, pos int) *addModuleModel {
	return &addModuleModel{deps: deps, pos: pos}
}

func (a *addModuleModel) Init() tea.Cmd {
	deps := a.deps
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return moduleTypesMsg{types: deps.Registry.Get(ctx)}
	}
}

func (a *addModuleModel) handleKey(app *appModel, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		app.modal = modalNone
		app.addModal = nil
		return app, nil

	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
		}
		return app, nil

	case "down", "j":
		if a.cursor < len(a.types)-1 {
			a.cursor++
		}
		return app, nil

	case "enter":
		if a.busy || a.cursor >= len(a.types) {
			return app, nil
		}
		a.busy = true
		typeID := a.types[a.cursor].ID
		pos := a.pos
		deps := a.deps
		return app, func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()
			m, err := deps.Actions.CreateModule(ctx, typeID, "")
			if err != nil {
				return actionDoneMsg{err: err}
			}
			return moduleCreatedMsg{module: m, pos: pos}
		}
	}
	return app, nil
}

func (a *addModuleModel) view() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Add module"))
	b.WriteString("\n\n")
	if len(a.types) == 0 {
		b.WriteString(dimStyle.Render("Loading module types…"))
	}
	for i, t := range a.types {
		line := "  " + t.Label
		if t.Offline {
			line += dimStyle.Render("  offline")
		}
		if i == a.cursor {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter add · esc cancel"))
	return b.String()
}

// scheduleModel — модальное окно расписания канала
type scheduleModel struct {
	deps  *Deps
	pos   int
	times []string

	input   textinput.Model
	invalid bool
	cursor  int
}

func newScheduleModel(deps *Deps, pos int) *scheduleModel {
	s := &scheduleModel{deps: deps, pos: pos}
	s.times = append(s.times, deps.Store.Channel(pos).Schedule...)
	s.input = textinput.New()
	s.input.Placeholder = "HH:MM"
	s.input.Focus()
	return s
}

func (s *scheduleModel) handleKey(app *appModel, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		app.modal = modalNone
		app.scheduleModal = nil
		return app, nil

	case "enter":
		raw := strings.TrimSpace(s.input.Value())
		if raw == "" {
			// пустой ввод сохраняет расписание
			return app, s.saveCmd(app)
		}
		if !timefmt.ValidHHMM(raw) {
			s.invalid = true
			return app, nil
		}
		s.invalid = false
		s.times = timefmt.SortSchedule(append(s.times, raw))
		s.input.SetValue("")
		return app, nil

	case "up":
		if s.cursor > 0 {
			s.cursor--
		}
		return app, nil

	case "down":
		if s.cursor < len(s.times)-1 {
			s.cursor++
		}
		return app, nil

	case "ctrl+x":
		if s.cursor < len(s.times) {
			s.times = append(s.times[:s.cursor], s.times[s.cursor+1:]...)
			if s.cursor >= len(s.times) && s.cursor > 0 {
				s.cursor--
			}
		}
		return app, nil
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return app, cmd
}

func (s *scheduleModel) saveCmd(app *appModel) tea.Cmd {
	pos := s.pos
	times := append([]string(nil), s.times...)
	app.modal = modalNone
	app.scheduleModal = nil
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		return actionDoneMsg{err: app.deps.Actions.UpdateSchedule(ctx, pos, times)}
	}
}

func (s *scheduleModel) view() string {
	settings, _ := s.deps.Store.Settings()

	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("Channel %d schedule", s.pos)))
	b.WriteString("\n\n")
	if len(s.times) == 0 {
		b.WriteString(dimStyle.Render("  No scheduled times"))
		b.WriteString("\n")
	}
	for i, t := range s.times {
		line := "  " + timefmt.ForDisplay(t, settings.TimeFormat)
		if i == s.cursor {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("\n  ")
	b.WriteString(s.input.View())
	b.WriteString("\n")
	if s.invalid {
		b.WriteString(errorStyle.Render("  Enter a time as HH:MM"))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter add time · empty enter save · ctrl+x remove · esc cancel"))
	return b.String()
}

// tokenPromptModel — запрос администраторского токена. Reply получает
// введенное значение; esc отвечает пустой строкой, и исходный запрос
// завершается отказом.
type tokenPromptModel struct {
	req   TokenRequest
	input textinput.Model
}

func newTokenPromptModel(req TokenRequest) *tokenPromptModel {
	t := &tokenPromptModel{req: req}
	t.input = textinput.New()
	t.input.EchoMode = textinput.EchoPassword
	t.input.Placeholder = "Admin token"
	return t
}

func (t *tokenPromptModel) Init() tea.Cmd {
	return t.input.Focus()
}

func (t *tokenPromptModel) handleKey(app *appModel, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		t.req.Reply <- ""
		app.modal = modalNone
		app.tokenModal = nil
		return app, nil

	case "enter":
		t.req.Reply <- strings.TrimSpace(t.input.Value())
		app.modal = modalNone
		app.tokenModal = nil
		return app, nil
	}

	var cmd tea.Cmd
	t.input, cmd = t.input.Update(msg)
	return app, cmd
}

func (t *tokenPromptModel) view() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Authentication required"))
	b.WriteString("\n\n")
	b.WriteString("This device requires an admin token.\n\n  ")
	b.WriteString(t.input.View())
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("enter submit · esc cancel"))
	return b.String()
}

// updateModal направляет клавиши в активное модальное окно
func (m *appModel) updateModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.modal {
	case modalAddModule:
		if m.addModal != nil {
			return m.addModal.handleKey(m, msg)
		}

	case modalSchedule:
		if m.scheduleModal != nil {
			return m.scheduleModal.handleKey(m, msg)
		}

	case modalTokenPrompt:
		if m.tokenModal != nil {
			return m.tokenModal.handleKey(m, msg)
		}

	case modalConfirmReset:
		switch msg.String() {
		case "y", "enter":
			m.modal = modalNone
			return m, func() tea.Msg {
				ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
				defer cancel()
				return actionDoneMsg{err: m.deps.Actions.ResetSettings(ctx)}
			}
		case "n", "esc":
			m.modal = modalNone
			return m, nil
		}

	case modalConfirmDelete:
		switch msg.String() {
		case "y", "enter":
			id := m.deleteTarget
			m.modal = modalNone
			m.deleteTarget = ""
			return m, func() tea.Msg {
				ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
				defer cancel()
				return actionDoneMsg{err: m.deps.Actions.DeleteModule(ctx, id)}
			}
		case "n", "esc":
			m.modal = modalNone
			m.deleteTarget = ""
			return m, nil
		}

	case modalAPInstructions:
		if msg.String() == "esc" || msg.String() == "enter" {
			m.modal = modalNone
			return m, nil
		}
	}

	m.modal = modalNone
	return m, nil
}

// modalView отрисовывает активное модальное окно
func (m *appModel) modalView() string {
	var body string
	switch m.modal {
	case modalAddModule:
		if m.addModal != nil {
			body = m.addModal.view()
		}
	case modalSchedule:
		if m.scheduleModal != nil {
			body = m.scheduleModal.view()
		}
	case modalTokenPrompt:
		if m.tokenModal != nil {
			body = m.tokenModal.view()
		}
	case modalConfirmReset:
		body = headerStyle.Render("Reset settings") + "\n\n" +
			"Reset all settings and delete every module?\nThis cannot be undone.\n\n" +
			helpStyle.Render("y confirm · n cancel")
	case modalConfirmDelete:
		name := m.deleteTarget
		if mod, ok := m.deps.Store.Module(m.deleteTarget); ok {
			name = mod.Name
		}
		body = headerStyle.Render("Delete module") + "\n\n" +
			fmt.Sprintf("Delete %q and remove it from all channels?\n\n", name) +
			helpStyle.Render("y confirm · n cancel")
	case modalAPInstructions:
		body = headerStyle.Render("Setup mode") + "\n\n" +
			"The device is starting its own WiFi network.\n\n" +
			"1. Connect to the \"PC-1-Setup\" network\n" +
			"2. Open http://192.168.4.1 in a browser\n" +
			"3. Choose your WiFi network and enter its password\n\n" +
			helpStyle.Render("esc close")
	}
	return modalStyle.Render(body)
}
