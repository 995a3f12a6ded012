package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"pc1console/internal/model"
	"pc1console/internal/modkind"
	"pc1console/internal/timefmt"
)

// channelsModel — список каналов: восемь позиций, модули по порядку,
// расписания и точки входа во все модальные окна.
type channelsModel struct {
	deps *Deps

	selected    int // позиция канала 1..8
	moduleIndex int // индекс модуля внутри канала
}

func newChannelsModel(deps *Deps) *channelsModel {
	return &channelsModel{deps: deps, selected: 1}
}

func (c *channelsModel) currentModuleID() string {
	refs := c.deps.Store.Channel(c.selected).SortedModules()
	if c.moduleIndex < 0 || c.moduleIndex >= len(refs) {
		return ""
	}
	return refs[c.moduleIndex].ModuleID
}

func (c *channelsModel) clampModuleIndex() {
	count := len(c.deps.Store.Channel(c.selected).Modules)
	if c.moduleIndex >= count {
		c.moduleIndex = count - 1
	}
	if c.moduleIndex < 0 {
		c.moduleIndex = 0
	}
}

func (c *channelsModel) handleKey(app *appModel, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "down", "j":
		if c.moduleIndex < len(c.deps.Store.Channel(c.selected).Modules)-1 {
			c.moduleIndex++
		} else if c.selected < model.ChannelCount {
			c.selected++
			c.moduleIndex = 0
		}
		return app, nil

	case "up", "k":
		if c.moduleIndex > 0 {
			c.moduleIndex--
		} else if c.selected > 1 {
			c.selected--
			c.moduleIndex = len(c.deps.Store.Channel(c.selected).Modules) - 1
			c.clampModuleIndex()
		}
		return app, nil

	case "shift+down", "J":
		return app, c.moveCmd("down")

	case "shift+up", "K":
		return app, c.moveCmd("up")

	case "]":
		if c.selected < model.ChannelCount {
			return app, c.swapCmd(c.selected, c.selected+1)
		}
		return app, nil

	case "[":
		if c.selected > 1 {
			return app, c.swapCmd(c.selected, c.selected-1)
		}
		return app, nil

	case "enter":
		if id := c.currentModuleID(); id != "" {
			app.openEditor(id)
		}
		return app, nil

	case "a":
		app.addModal = newAddModuleModel(app.deps, c.selected)
		app.modal = modalAddModule
		return app, app.addModal.Init()

	case "s":
		app.scheduleModal = newScheduleModel(app.deps, c.selected)
		app.modal = modalSchedule
		return app, nil

	case "p":
		pos := c.selected
		return app, func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()
			return actionDoneMsg{err: app.deps.Actions.PrintChannel(ctx, pos)}
		}

	case "x":
		if id := c.currentModuleID(); id != "" {
			pos := c.selected
			return app, func() tea.Msg {
				ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
				defer cancel()
				return actionDoneMsg{err: app.deps.Actions.RemoveModuleFromChannel(ctx, pos, id)}
			}
		}
		return app, nil

	case "d":
		if id := c.currentModuleID(); id != "" {
			app.deleteTarget = id
			app.modal = modalConfirmDelete
		}
		return app, nil

	case "W":
		return app, func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()
			return actionDoneMsg{err: app.deps.Actions.DebugTestWebhook(ctx)}
		}
	}

	return app, nil
}

func (c *channelsModel) moveCmd(direction string) tea.Cmd {
	id := c.currentModuleID()
	if id == "" {
		return nil
	}
	pos := c.selected
	if direction == "up" && c.moduleIndex > 0 {
		c.moduleIndex--
	} else if direction == "down" {
		c.moduleIndex++
		c.clampModuleIndex()
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		return actionDoneMsg{err: c.deps.Actions.MoveModuleInChannel(ctx, pos, id, direction)}
	}
}

func (c *channelsModel) swapCmd(pos1, pos2 int) tea.Cmd {
	c.selected = pos2
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		return actionDoneMsg{err: c.deps.Actions.SwapChannels(ctx, pos1, pos2)}
	}
}

// statusDot возвращает индикатор настроенности модуля: серый — офлайновый
// вид или модуль полностью настроен, янтарный — онлайновый и не настроен,
// красный — сети нет.
func (c *channelsModel) statusDot(m model.Module, settings *model.Settings) string {
	offline := c.deps.Registry.Offline(context.Background(), m.Type)
	if !offline {
		if _, wifiStatus := c.deps.Store.WiFi(); !wifiStatus.Connected {
			return offlineDot
		}
	}
	if offline || modkind.ModuleIsConfigured(m, settings) {
		return readyDot
	}
	return pendingDot
}

func (c *channelsModel) view(width int) string {
	settings, _ := c.deps.Store.Settings()
	modules := c.deps.Store.Modules()

	var b strings.Builder
	b.WriteString(titleStyle.Render("PC-1 Channels"))
	b.WriteString("\n\n")

	for pos := 1; pos <= model.ChannelCount; pos++ {
		channel := settings.Channel(pos)
		header := fmt.Sprintf("Channel %d", pos)
		if pos == c.selected {
			header = selectedStyle.Render(header)
		} else {
			header = headerStyle.Render(header)
		}
		b.WriteString(header)
		b.WriteString("  ")
		b.WriteString(dimStyle.Render(scheduleSummary(channel, settings.TimeFormat)))
		b.WriteString("\n")

		refs := channel.SortedModules()
		if len(refs) == 0 {
			b.WriteString(dimStyle.Render("    (empty)"))
			b.WriteString("\n")
		}
		for i, ref := range refs {
			m, ok := modules[ref.ModuleID]
			if !ok {
				continue
			}
			line := fmt.Sprintf("  %s %s", c.statusDot(m, &settings), m.Name)
			if pos == c.selected && i == c.moduleIndex {
				line = selectedStyle.Render(line)
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("a add · s schedule · J/K reorder · [/] swap channel · x unassign · d delete"))
	return b.String()
}

func scheduleSummary(ch model.Channel, timeFormat string) string {
	if len(ch.Schedule) == 0 {
		return "No scheduled times"
	}
	formatted := make([]string, len(ch.Schedule))
	for i, t := range ch.Schedule {
		formatted[i] = timefmt.ForDisplay(t, timeFormat)
	}
	return strings.Join(formatted, ", ")
}
