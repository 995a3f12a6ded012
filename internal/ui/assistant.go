package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"pc1console/internal/api"
)

// Сообщения ассистента.
type (
	assistantReplyMsg struct {
		reply *api.AssistantReply
		err   error
	}
	assistantAppliedMsg struct{ err error }
)

type assistantRole int

const (
	roleUser assistantRole = iota
	roleAssistant
)

type assistantLine struct {
	role assistantRole
	text string
}

// assistantModel — чат с ассистентом устройства. Ответ может нести
// предложенные действия (выполняются цифрами) и готовую конфигурацию
// (применяется по ctrl+y).
type assistantModel struct {
	deps  *Deps
	input textinput.Model

	transcript []assistantLine
	actions    []string
	config     map[string]any
	busy       bool
}

func newAssistantModel(deps *Deps) *assistantModel {
	input := textinput.New()
	input.Placeholder = "Ask the assistant…"
	input.CharLimit = 500
	input.Focus()
	return &assistantModel{deps: deps, input: input}
}

func (a *assistantModel) Init() tea.Cmd {
	return textinput.Blink
}

func (a *assistantModel) sendCmd(message string) tea.Cmd {
	deps := a.deps
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		reply, err := deps.API.AssistantChat(ctx, message)
		return assistantReplyMsg{reply: reply, err: err}
	}
}

func (a *assistantModel) executeCmd(action string) tea.Cmd {
	deps := a.deps
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		reply, err := deps.API.AssistantExecute(ctx, action)
		return assistantReplyMsg{reply: reply, err: err}
	}
}

func (a *assistantModel) applyCmd(config map[string]any) tea.Cmd {
	deps := a.deps
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		return assistantAppliedMsg{err: deps.API.AssistantApplyConfig(ctx, config)}
	}
}

// updateAssistantKey обрабатывает клавиши чата на корневой модели
func (m *appModel) updateAssistantKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a := m.assistant
	if a == nil {
		m.view = viewChannels
		return m, nil
	}

	switch msg.String() {
	case "esc":
		m.assistant = nil
		m.view = viewChannels
		return m, nil

	case "enter":
		text := strings.TrimSpace(a.input.Value())
		if text == "" || a.busy {
			return m, nil
		}
		a.transcript = append(a.transcript, assistantLine{role: roleUser, text: text})
		a.input.Reset()
		a.actions = nil
		a.config = nil
		a.busy = true
		return m, a.sendCmd(text)

	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		// цифры выполняют предложенные действия, пока поле ввода пустое
		if a.busy || a.input.Value() != "" {
			break
		}
		idx := int(msg.String()[0] - '1')
		if idx < len(a.actions) {
			action := a.actions[idx]
			a.transcript = append(a.transcript, assistantLine{role: roleUser, text: "» " + action})
			a.actions = nil
			a.config = nil
			a.busy = true
			return m, a.executeCmd(action)
		}
		return m, nil

	case "ctrl+y":
		if a.config != nil && !a.busy {
			config := a.config
			a.config = nil
			a.busy = true
			return m, a.applyCmd(config)
		}
		return m, nil
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return m, cmd
}

// route принимает ответы ассистента и мигание курсора
func (a *assistantModel) route(m *appModel, msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case assistantReplyMsg:
		a.busy = false
		if msg.err != nil {
			a.transcript = append(a.transcript, assistantLine{
				role: roleAssistant,
				text: "Request failed: " + msg.err.Error(),
			})
			return m, nil
		}
		if msg.reply != nil {
			if msg.reply.Reply != "" {
				a.transcript = append(a.transcript, assistantLine{role: roleAssistant, text: msg.reply.Reply})
			}
			a.actions = msg.reply.Actions
			a.config = msg.reply.Config
		}
		return m, nil

	case assistantAppliedMsg:
		a.busy = false
		if msg.err != nil {
			a.transcript = append(a.transcript, assistantLine{
				role: roleAssistant,
				text: "Failed to apply configuration: " + msg.err.Error(),
			})
			return m, nil
		}
		a.transcript = append(a.transcript, assistantLine{role: roleAssistant, text: "Configuration applied."})
		// примененная конфигурация меняет настройки на устройстве
		return m, m.initialLoadCmd()
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return m, cmd
}

func (a *assistantModel) view(width int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(" Assistant "))
	b.WriteString("\n\n")

	if len(a.transcript) == 0 {
		b.WriteString(dimStyle.Render("  Describe what you want the printer to do.\n"))
	}
	for _, line := range a.transcript {
		switch line.role {
		case roleUser:
			b.WriteString(headerStyle.Render("  You: "))
		case roleAssistant:
			b.WriteString(infoStyle.Render("  PC-1: "))
		}
		b.WriteString(wrapIndent(line.text, width-9, 9))
		b.WriteString("\n")
	}

	if len(a.actions) > 0 {
		b.WriteString("\n")
		b.WriteString(headerStyle.Render("  Suggested actions"))
		b.WriteString("\n")
		for i, action := range a.actions {
			b.WriteString(fmt.Sprintf("  %d. %s\n", i+1, action))
		}
	}
	if a.config != nil {
		b.WriteString("\n")
		b.WriteString(infoStyle.Render("  Assistant proposed a configuration — ctrl+y to apply"))
		b.WriteString("\n")
	}

	b.WriteString("\n  ")
	b.WriteString(a.input.View())
	b.WriteString("\n")
	if a.busy {
		b.WriteString(dimStyle.Render("  Thinking…\n"))
	}
	b.WriteString(helpStyle.Render("  enter send · 1-9 run action · esc back"))
	return b.String()
}

// wrapIndent переносит длинный текст по ширине с отступом продолжения
func wrapIndent(text string, width, indent int) string {
	if width < 20 {
		return text
	}
	words := strings.Fields(text)
	if len(words) == 0 {
		return text
	}
	var b strings.Builder
	lineLen := 0
	pad := strings.Repeat(" ", indent)
	for i, word := range words {
		if i > 0 {
			if lineLen+1+len(word) > width {
				b.WriteString("\n" + pad)
				lineLen = 0
			} else {
				b.WriteString(" ")
				lineLen++
			}
		}
		b.WriteString(word)
		lineLen += len(word)
	}
	return b.String()
}
