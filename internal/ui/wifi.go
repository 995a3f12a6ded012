package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"pc1console/internal/model"
)

type wifiNetworksMsg struct {
	networks []model.WiFiNetwork
	err      error
}

type wifiStep int

const (
	wifiStepList wifiStep = iota
	wifiStepPassword
	wifiStepManual
	wifiStepConnecting
)

// wifiModel — мастер подключения устройства к сети. Показывается, когда
// устройство в режиме точки доступа.
type wifiModel struct {
	deps *Deps

	step     wifiStep
	networks []model.WiFiNetwork
	cursor   int
	scanning bool
	scanErr  error

	ssid      string
	secured   bool
	passInput textinput.Model
	ssidInput textinput.Model
}

func newWiFiModel(deps *Deps) *wifiModel {
	return &wifiModel{deps: deps}
}

func (w *wifiModel) Init() tea.Cmd {
	return w.scanCmd()
}

func (w *wifiModel) scanCmd() tea.Cmd {
	w.scanning = true
	deps := w.deps
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		networks, err := deps.Actions.ScanWiFiNetworks(ctx)
		return wifiNetworksMsg{networks: networks, err: err}
	}
}

func (w *wifiModel) route(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case wifiNetworksMsg:
		w.scanning = false
		w.scanErr = msg.err
		if msg.err == nil {
			w.networks = msg.networks
			if w.cursor >= len(w.networks) {
				w.cursor = 0
			}
		}
		return nil
	}

	var cmd tea.Cmd
	switch w.step {
	case wifiStepPassword:
		w.passInput, cmd = w.passInput.Update(msg)
	case wifiStepManual:
		w.ssidInput, cmd = w.ssidInput.Update(msg)
	}
	return cmd
}

func (m *appModel) updateWiFiKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	w := m.wifi

	switch w.step {
	case wifiStepPassword:
		return m, w.handlePasswordKey(msg)
	case wifiStepManual:
		return m, w.handleManualKey(msg)
	case wifiStepConnecting:
		if msg.String() == "esc" {
			w.step = wifiStepList
		}
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c", "q":
		m.deps.Actions.FlushPendingWrites()
		return m, tea.Quit

	case "up", "k":
		if w.cursor > 0 {
			w.cursor--
		}
		return m, nil

	case "down", "j":
		if w.cursor < len(w.networks)-1 {
			w.cursor++
		}
		return m, nil

	case "r":
		return m, w.scanCmd()

	case "m":
		w.ssidInput = textinput.New()
		w.ssidInput.Placeholder = "Network name"
		w.step = wifiStepManual
		return m, w.ssidInput.Focus()

	case "enter":
		if w.cursor >= len(w.networks) {
			return m, nil
		}
		network := w.networks[w.cursor]
		w.ssid = network.SSID
		w.secured = network.Security != "" && network.Security != "open"
		if !w.secured {
			return m, w.connectCmd(nil)
		}
		w.passInput = textinput.New()
		w.passInput.EchoMode = textinput.EchoPassword
		w.passInput.Placeholder = "Password"
		w.step = wifiStepPassword
		return m, w.passInput.Focus()
	}
	return m, nil
}

func (w *wifiModel) handlePasswordKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		w.step = wifiStepList
		return nil
	case "enter":
		password := w.passInput.Value()
		return w.connectCmd(&password)
	}
	var cmd tea.Cmd
	w.passInput, cmd = w.passInput.Update(msg)
	return cmd
}

func (w *wifiModel) handleManualKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		w.step = wifiStepList
		return nil
	case "enter":
		ssid := strings.TrimSpace(w.ssidInput.Value())
		if ssid == "" {
			return nil
		}
		w.ssid = ssid
		w.passInput = textinput.New()
		w.passInput.EchoMode = textinput.EchoPassword
		w.passInput.Placeholder = "Password (empty for open network)"
		w.step = wifiStepPassword
		return w.passInput.Focus()
	}
	var cmd tea.Cmd
	w.ssidInput, cmd = w.ssidInput.Update(msg)
	return cmd
}

func (w *wifiModel) connectCmd(password *string) tea.Cmd {
	w.step = wifiStepConnecting
	ssid := w.ssid
	deps := w.deps
	if password != nil && *password == "" {
		password = nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		return actionDoneMsg{err: deps.Actions.ConnectWiFi(ctx, ssid, password)}
	}
}

func (w *wifiModel) view(width int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("WiFi Setup"))
	b.WriteString("\n\n")

	switch w.step {
	case wifiStepPassword:
		b.WriteString(fmt.Sprintf("Connect to %s\n\n  ", w.ssid))
		b.WriteString(w.passInput.View())
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter connect · esc back"))
		return b.String()

	case wifiStepManual:
		b.WriteString("Enter network name\n\n  ")
		b.WriteString(w.ssidInput.View())
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter next · esc back"))
		return b.String()

	case wifiStepConnecting:
		b.WriteString(fmt.Sprintf("Connecting to %s…\n\n", w.ssid))
		b.WriteString(dimStyle.Render("The device is switching networks. If it does not\nreappear, reconnect to its setup network and try again."))
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("esc back"))
		return b.String()
	}

	if w.scanning {
		b.WriteString(dimStyle.Render("Scanning for networks…"))
		b.WriteString("\n")
	} else if w.scanErr != nil {
		b.WriteString(errorStyle.Render("Scan failed: " + w.scanErr.Error()))
		b.WriteString("\n")
	} else if len(w.networks) == 0 {
		b.WriteString(dimStyle.Render("No networks found"))
		b.WriteString("\n")
	}

	for i, n := range w.networks {
		lock := " "
		if n.Security != "" && n.Security != "open" {
			lock = "🔒"
		}
		line := fmt.Sprintf("  %s %s %s", lock, n.SSID, dimStyle.Render(signalBars(n.Signal)))
		if i == w.cursor {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter connect · r rescan · m manual entry · q quit"))
	return b.String()
}

func signalBars(signal int) string {
	switch {
	case signal >= 75:
		return "▂▄▆█"
	case signal >= 50:
		return "▂▄▆"
	case signal >= 25:
		return "▂▄"
	default:
		return "▂"
	}
}
