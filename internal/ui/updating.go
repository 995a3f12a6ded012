package ui

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"pc1console/internal/model"
)

const updateProgressTick = 500 * time.Millisecond

type (
	installStartedMsg struct{ err error }
	deviceBackMsg     struct{ err error }
	updateTickMsg     struct{}
)

// updatingModel — экран установки обновления: запускает установку,
// ждет перезапуска устройства по health-опросу и возвращается к
// каналам. Если устройство так и не ответило, по таймауту пробуем
// обычную перезагрузку данных.
type updatingModel struct {
	deps    *Deps
	started time.Time
	waiting bool
	elapsed time.Duration
}

func newUpdatingModel(deps *Deps) *updatingModel {
	return &updatingModel{deps: deps, started: time.Now()}
}

func (u *updatingModel) start() tea.Cmd {
	deps := u.deps
	return tea.Batch(
		func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
			defer cancel()
			return installStartedMsg{err: deps.Actions.InstallUpdate(ctx)}
		},
		u.tickCmd(),
	)
}

func (u *updatingModel) tickCmd() tea.Cmd {
	return tea.Tick(updateProgressTick, func(time.Time) tea.Msg {
		return updateTickMsg{}
	})
}

func (u *updatingModel) waitCmd() tea.Cmd {
	deps := u.deps
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		return deviceBackMsg{err: deps.Actions.WaitForDevice(ctx)}
	}
}

func (u *updatingModel) route(app *appModel, msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case installStartedMsg:
		if msg.err != nil {
			app.deps.Store.SetStatus(model.StatusError, "Update failed: "+msg.err.Error())
			app.view = viewSettings
			app.updating = nil
			return app, nil
		}
		u.waiting = true
		return app, u.waitCmd()

	case deviceBackMsg:
		if msg.err != nil {
			app.deps.Store.SetStatus(model.StatusError, "Device did not come back: "+msg.err.Error())
		} else {
			app.deps.Store.SetStatus(model.StatusSuccess, "Update installed")
		}
		return u.finish(app)

	case updateTickMsg:
		u.elapsed = time.Since(u.started)
		if u.elapsed >= u.deps.Config.InstallFallbackReload {
			// health-опрос мог застрять; пробуем перезагрузку вслепую
			return u.finish(app)
		}
		return app, u.tickCmd()
	}
	return app, nil
}

func (u *updatingModel) finish(app *appModel) (tea.Model, tea.Cmd) {
	app.view = viewChannels
	app.updating = nil
	return app, app.initialLoadCmd()
}

func (u *updatingModel) view(width int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Installing update"))
	b.WriteString("\n\n")

	total := u.deps.Config.InstallFallbackReload
	frac := float64(u.elapsed) / float64(total)
	if frac > 1 {
		frac = 1
	}
	const barWidth = 40
	filled := int(frac * barWidth)
	b.WriteString("  [")
	b.WriteString(strings.Repeat("█", filled))
	b.WriteString(strings.Repeat("░", barWidth-filled))
	b.WriteString("]\n\n")

	if u.waiting {
		b.WriteString(dimStyle.Render("  Waiting for the device to restart…"))
	} else {
		b.WriteString(dimStyle.Render("  Starting installation…"))
	}
	b.WriteString("\n")
	return b.String()
}
