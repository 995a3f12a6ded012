package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"pc1console/internal/model"
	"pc1console/internal/transport"
)

type view int

const (
	viewLoading view = iota
	viewChannels
	viewEditor
	viewSettings
	viewWiFiSetup
	viewUpdating
	viewAssistant
)

type modalKind int

const (
	modalNone modalKind = iota
	modalAddModule
	modalSchedule
	modalConfirmReset
	modalConfirmDelete
	modalAPInstructions
	modalTokenPrompt
)

// Сообщения интерфейса.
type (
	storeChangedMsg struct{}
	wifiTickMsg     struct{}
	wifiStatusMsg   struct {
		status *model.WiFiStatus
		err    error
	}
	initialLoadDoneMsg struct{ err error }
	actionDoneMsg      struct{ err error }
	moduleCreatedMsg   struct {
		module *model.Module
		pos    int
	}
	tokenPromptMsg struct{ req TokenRequest }
	reloadMsg      struct{}
)

// TokenRequest — запрос токена из транспорта; Reply получает введенное
// пользователем значение (пустая строка — отказ).
type TokenRequest struct {
	Reply chan string
}

// NewChannelPrompter строит transport.Prompter, пересылающий запросы
// токена в работающую программу интерфейса.
func NewChannelPrompter(requests chan<- TokenRequest) transport.PrompterFunc {
	return func() string {
		req := TokenRequest{Reply: make(chan string, 1)}
		requests <- req
		return <-req.Reply
	}
}

type appModel struct {
	deps *Deps

	width  int
	height int

	view  view
	modal modalKind

	channels  *channelsModel
	editor    *editorModel
	settings  *settingsModel
	wifi      *wifiModel
	updating  *updatingModel
	assistant *assistantModel

	addModal      *addModuleModel
	scheduleModal *scheduleModel
	deleteTarget  string
	tokenModal    *tokenPromptModel
}

func newAppModel(deps *Deps) *appModel {
	return &appModel{
		deps:     deps,
		view:     viewLoading,
		channels: newChannelsModel(deps),
		settings: newSettingsModel(deps),
		wifi:     newWiFiModel(deps),
	}
}

// Init запускает протокол инициализации: сперва режим сети; точка
// доступа уводит в мастер настройки, иначе параллельная загрузка
// настроек и модулей и запуск опроса сети.
func (m *appModel) Init() tea.Cmd {
	return m.queryWiFiCmd()
}

func (m *appModel) queryWiFiCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		status, err := m.deps.API.WiFiStatus(ctx)
		return wifiStatusMsg{status: status, err: err}
	}
}

func (m *appModel) initialLoadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		err := m.deps.Actions.Load(ctx)
		// прогреваем реестр видов, чтобы список каналов не ждал его
		m.deps.Registry.Get(ctx)
		return initialLoadDoneMsg{err: err}
	}
}

func (m *appModel) wifiTickCmd() tea.Cmd {
	return tea.Tick(m.deps.Config.WiFiPollInterval, func(time.Time) tea.Msg {
		return wifiTickMsg{}
	})
}

func (m *appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case storeChangedMsg:
		// store уже обновлен; хватает перерисовки
		return m, nil

	case wifiStatusMsg:
		return m.onWiFiStatus(msg)

	case wifiTickMsg:
		// периодический опрос трогает только сетевые ячейки
		return m, tea.Batch(
			func() tea.Msg {
				ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				_ = m.deps.Actions.RefreshWiFiStatus(ctx)
				return nil
			},
			m.wifiTickCmd(),
		)

	case initialLoadDoneMsg:
		if m.view == viewLoading {
			m.view = viewChannels
		}
		return m, nil

	case reloadMsg:
		return m, m.initialLoadCmd()

	case tokenPromptMsg:
		m.tokenModal = newTokenPromptModel(msg.req)
		m.modal = modalTokenPrompt
		return m, m.tokenModal.Init()

	case moduleTypesMsg:
		if m.addModal != nil {
			m.addModal.types = msg.types
		}
		return m, nil

	case moduleCreatedMsg:
		return m.onModuleCreated(msg)

	case tea.KeyMsg:
		return m.onKey(msg)
	}

	return m.routeToActive(msg)
}

func (m *appModel) onWiFiStatus(msg wifiStatusMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.deps.Logger.Warn("Initial WiFi status query failed", zap.Error(msg.err))
		// устройство могло быть недоступно; пробуем обычную загрузку
		if m.view == viewLoading {
			return m, tea.Batch(m.initialLoadCmd(), m.wifiTickCmd())
		}
		return m, nil
	}

	m.deps.Store.SetWiFi(*msg.status)
	if msg.status.Mode == "ap" {
		// в режиме точки доступа обычные вызовы API не выполняются
		m.view = viewWiFiSetup
		return m, m.wifi.Init()
	}
	if m.view == viewLoading {
		return m, tea.Batch(m.initialLoadCmd(), m.wifiTickCmd())
	}
	return m, nil
}

func (m *appModel) onModuleCreated(msg moduleCreatedMsg) (tea.Model, tea.Cmd) {
	if msg.module == nil {
		return m, nil
	}
	var assignCmd tea.Cmd
	if msg.pos >= 1 {
		pos := msg.pos
		id := msg.module.ID
		assignCmd = func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()
			return actionDoneMsg{err: m.deps.Actions.AssignModuleToChannel(ctx, pos, id)}
		}
	}
	// сценарий добавления заканчивается в редакторе нового модуля
	m.modal = modalNone
	m.addModal = nil
	m.openEditor(msg.module.ID)
	return m, assignCmd
}

func (m *appModel) openEditor(moduleID string) {
	m.editor = newEditorModel(m.deps, moduleID)
	m.view = viewEditor
}

func (m *appModel) closeEditor() {
	if m.editor != nil {
		// закрытие редактора отправляет отложенную запись немедленно
		m.deps.Actions.FlushModuleWrite(m.editor.moduleID)
		m.editor.close()
		m.editor = nil
	}
	m.view = viewChannels
}

func (m *appModel) onKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.modal != modalNone {
		return m.updateModal(msg)
	}

	switch m.view {
	case viewEditor:
		return m.updateEditorKey(msg)
	case viewSettings:
		return m.updateSettingsKey(msg)
	case viewWiFiSetup:
		return m.updateWiFiKey(msg)
	case viewUpdating:
		return m, nil
	case viewAssistant:
		return m.updateAssistantKey(msg)
	}

	// список каналов
	switch msg.String() {
	case "ctrl+c", "q":
		m.deps.Actions.FlushPendingWrites()
		return m, tea.Quit
	case "g":
		m.view = viewSettings
		return m, m.settings.Init()
	case "c":
		settings, ok := m.deps.Store.Settings()
		if !ok || !settings.AssistantEnabled() {
			m.deps.Store.SetStatus(model.StatusInfo, "Assistant is not configured")
			return m, nil
		}
		m.assistant = newAssistantModel(m.deps)
		m.view = viewAssistant
		return m, m.assistant.Init()
	default:
		return m.channels.handleKey(m, msg)
	}
}

func (m *appModel) routeToActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	// мигание курсора в полях ввода модальных окон
	switch {
	case m.modal == modalSchedule && m.scheduleModal != nil:
		var cmd tea.Cmd
		m.scheduleModal.input, cmd = m.scheduleModal.input.Update(msg)
		return m, cmd
	case m.modal == modalTokenPrompt && m.tokenModal != nil:
		var cmd tea.Cmd
		m.tokenModal.input, cmd = m.tokenModal.input.Update(msg)
		return m, cmd
	}

	switch m.view {
	case viewEditor:
		if m.editor != nil {
			return m, m.editor.route(msg)
		}
	case viewSettings:
		return m, m.settings.route(msg)
	case viewWiFiSetup:
		return m, m.wifi.route(msg)
	case viewUpdating:
		if m.updating != nil {
			return m.updating.route(m, msg)
		}
	case viewAssistant:
		if m.assistant != nil {
			return m.assistant.route(m, msg)
		}
	}
	return m, nil
}

func (m *appModel) View() string {
	var body string
	switch m.view {
	case viewLoading:
		body = dimStyle.Render("\n  Connecting to PC-1…")
	case viewChannels:
		body = m.channels.view(m.width)
	case viewEditor:
		if m.editor != nil {
			body = m.editor.view(m.width, m.height)
		}
	case viewSettings:
		body = m.settings.view(m.width, m.height)
	case viewWiFiSetup:
		body = m.wifi.view(m.width)
	case viewUpdating:
		if m.updating != nil {
			body = m.updating.view(m.width)
		}
	case viewAssistant:
		if m.assistant != nil {
			body = m.assistant.view(m.width)
		}
	}

	if m.modal != modalNone {
		body = m.modalView()
	}

	return body + "\n" + m.statusBar()
}

func (m *appModel) statusBar() string {
	status := m.deps.Store.Status()
	if status == nil {
		return helpStyle.Render("q quit · g settings · c assistant · enter edit · p print")
	}
	switch status.Kind {
	case model.StatusError:
		return errorStyle.Render("✗ " + status.Message)
	case model.StatusSuccess:
		return successStyle.Render("✓ " + status.Message)
	default:
		return infoStyle.Render("· " + status.Message)
	}
}

// Run запускает терминальный интерфейс. tokenRequests — канал запросов
// администраторского токена из транспортного слоя.
func Run(deps *Deps, tokenRequests <-chan TokenRequest) error {
	m := newAppModel(deps)
	p := tea.NewProgram(m, tea.WithAltScreen())

	deps.Send = p.Send
	deps.Store.SetOnChange(func() { p.Send(storeChangedMsg{}) })
	go func() {
		for req := range tokenRequests {
			p.Send(tokenPromptMsg{req: req})
		}
	}()

	_, err := p.Run()
	return err
}
