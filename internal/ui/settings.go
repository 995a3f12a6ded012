package ui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"pc1console/internal/location"
	"pc1console/internal/model"
	"pc1console/internal/timefmt"
)

// Сообщения вида настроек.
type (
	systemTimeMsg struct {
		now *model.SystemTime
		err error
	}
	timeTickMsg   struct{}
	versionMsg    struct{ info *model.VersionInfo }
	sshStatusMsg  struct{ status *model.SSHStatus }
	updateInfoMsg struct {
		info *model.UpdateInfo
		err  error
	}
)

type settingsRow int

const (
	rowTimezone settingsRow = iota
	rowCity
	rowState
	rowZipcode
	rowTimeFormat
	rowTimeSync
	rowSetDate
	rowSetTime
	rowSyncNow
	rowMaxPrintLines
	rowCutterFeedLines
	rowUseAPISearch
	rowInvertPrint
	rowSSHEnabled
	rowSSHPassword
	rowCheckUpdates
	rowInstallUpdate
	rowAPMode
	rowReset
)

type settingsRowDef struct {
	row   settingsRow
	label string
}

// settingsModel — глобальные настройки устройства: местоположение,
// время, печать, SSH и обновления.
type settingsModel struct {
	deps *Deps

	rows   []settingsRowDef
	cursor int

	editing bool
	input   textinput.Model

	searcher     *location.Searcher
	locResults   []model.LocationResult
	locSearching bool
	locCursor    int

	systemTime *model.SystemTime
	version    *model.VersionInfo
	sshEnabled bool
	updateInfo *model.UpdateInfo

	draftDate string
	draftTime string
}

func newSettingsModel(deps *Deps) *settingsModel {
	s := &settingsModel{deps: deps}
	s.searcher = location.New(deps.API, deps.Config.LocationDebounce, deps.Config.LocationSearchTimeout, deps.Logger)
	s.searcher.UseAPI = func() bool {
		settings, ok := deps.Store.Settings()
		return ok && settings.UseAPILocationSearch
	}
	s.searcher.OnSearching = func(v bool) {
		if deps.Send != nil {
			deps.Send(locationSearchingMsg{searching: v})
		}
	}
	s.searcher.OnResults = func(results []model.LocationResult) {
		if deps.Send != nil {
			deps.Send(locationResultsMsg{results: results})
		}
	}
	s.rebuildRows()
	return s
}

func (s *settingsModel) rebuildRows() {
	settings, _ := s.deps.Store.Settings()

	rows := []settingsRowDef{
		{rowTimezone, "Timezone"},
		{rowCity, "City"},
		{rowState, "State"},
		{rowZipcode, "Zipcode"},
		{rowTimeFormat, "Time format"},
		{rowTimeSync, "Time sync"},
	}
	if settings.TimeSyncMode == model.TimeSyncManual {
		rows = append(rows,
			settingsRowDef{rowSetDate, "Set date (YYYY-MM-DD)"},
			settingsRowDef{rowSetTime, "Set time (HH:MM:SS)"},
		)
	} else {
		rows = append(rows, settingsRowDef{rowSyncNow, "Sync time now"})
	}
	rows = append(rows,
		settingsRowDef{rowMaxPrintLines, "Max print lines"},
		settingsRowDef{rowCutterFeedLines, "Cutter feed lines"},
		settingsRowDef{rowUseAPISearch, "Online location search"},
		settingsRowDef{rowInvertPrint, "Invert print"},
		settingsRowDef{rowSSHEnabled, "SSH access"},
		settingsRowDef{rowSSHPassword, "SSH password"},
		settingsRowDef{rowCheckUpdates, "Check for updates"},
	)
	if s.updateInfo != nil && s.updateInfo.Available {
		rows = append(rows, settingsRowDef{rowInstallUpdate, "Install update " + s.updateInfo.Version})
	}
	rows = append(rows,
		settingsRowDef{rowAPMode, "Start WiFi setup mode"},
		settingsRowDef{rowReset, "Reset all settings"},
	)

	s.rows = rows
	if s.cursor >= len(s.rows) {
		s.cursor = len(s.rows) - 1
	}
}

// Init подтягивает системное время, версию и состояние SSH и запускает
// периодический опрос времени.
func (s *settingsModel) Init() tea.Cmd {
	return tea.Batch(s.fetchTimeCmd(), s.fetchVersionCmd(), s.fetchSSHCmd(), s.timeTickCmd())
}

func (s *settingsModel) fetchTimeCmd() tea.Cmd {
	deps := s.deps
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		now, err := deps.API.SystemTime(ctx)
		return systemTimeMsg{now: now, err: err}
	}
}

func (s *settingsModel) fetchVersionCmd() tea.Cmd {
	deps := s.deps
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		info, err := deps.API.Version(ctx)
		if err != nil {
			deps.Logger.Warn("Version query failed", zap.Error(err))
			return versionMsg{}
		}
		return versionMsg{info: info}
	}
}

func (s *settingsModel) fetchSSHCmd() tea.Cmd {
	deps := s.deps
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		status, err := deps.API.SSHStatus(ctx)
		if err != nil {
			deps.Logger.Warn("SSH status query failed", zap.Error(err))
			return sshStatusMsg{}
		}
		return sshStatusMsg{status: status}
	}
}

func (s *settingsModel) timeTickCmd() tea.Cmd {
	return tea.Tick(s.deps.Config.SystemTimePollInterval, func(time.Time) tea.Msg {
		return timeTickMsg{}
	})
}

func (s *settingsModel) route(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case systemTimeMsg:
		if msg.err == nil {
			s.systemTime = msg.now
		}
		return nil
	case timeTickMsg:
		return tea.Batch(s.fetchTimeCmd(), s.timeTickCmd())
	case versionMsg:
		s.version = msg.info
		return nil
	case sshStatusMsg:
		if msg.status != nil {
			s.sshEnabled = msg.status.Enabled
		}
		return nil
	case updateInfoMsg:
		if msg.err != nil {
			s.deps.Store.SetStatus(model.StatusError, "Update check failed: "+msg.err.Error())
			return nil
		}
		s.updateInfo = msg.info
		if msg.info != nil && !msg.info.Available {
			s.deps.Store.SetStatus(model.StatusInfo, "Already up to date")
		}
		s.rebuildRows()
		return nil
	case locationSearchingMsg:
		s.locSearching = msg.searching
		return nil
	case locationResultsMsg:
		s.locResults = msg.results
		if s.locCursor >= len(s.locResults) {
			s.locCursor = 0
		}
		return nil
	}

	if s.editing {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return cmd
	}
	return nil
}

func (s *settingsModel) currentRow() settingsRow {
	if s.cursor >= len(s.rows) {
		return rowTimezone
	}
	return s.rows[s.cursor].row
}

func (m *appModel) updateSettingsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := m.settings

	if s.editing {
		return m, s.handleEditingKey(msg)
	}

	s.rebuildRows()
	switch msg.String() {
	case "esc", "q":
		// уход с экрана гасит отложенный поиск; модель строится заново
		// при следующем входе
		s.close()
		m.settings = newSettingsModel(m.deps)
		m.view = viewChannels
		return m, nil

	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
		return m, nil

	case "down", "j", "tab":
		if s.cursor < len(s.rows)-1 {
			s.cursor++
		}
		return m, nil

	case "left", "right":
		s.cycleRow(msg.String() == "right")
		return m, nil

	case "enter", " ":
		return s.activateRow(m)
	}
	return m, nil
}

func (s *settingsModel) activateRow(app *appModel) (tea.Model, tea.Cmd) {
	settings, _ := s.deps.Store.Settings()

	switch s.currentRow() {
	case rowTimeFormat, rowTimeSync:
		s.cycleRow(true)
		return app, nil

	case rowUseAPISearch:
		v := !settings.UseAPILocationSearch
		s.queuePatch(model.SettingsPatch{UseAPILocationSearch: &v})
		return app, nil

	case rowInvertPrint:
		v := !settings.InvertPrint
		s.queuePatch(model.SettingsPatch{InvertPrint: &v})
		return app, nil

	case rowSSHEnabled:
		enabled := !s.sshEnabled
		s.sshEnabled = enabled
		deps := s.deps
		return app, func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()
			return actionDoneMsg{err: deps.Actions.SetSSHEnabled(ctx, enabled)}
		}

	case rowSyncNow:
		deps := s.deps
		return app, tea.Batch(func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()
			return actionDoneMsg{err: deps.Actions.SyncTimeNow(ctx)}
		}, s.fetchTimeCmd())

	case rowCheckUpdates:
		deps := s.deps
		return app, func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()
			info, err := deps.API.CheckUpdates(ctx)
			return updateInfoMsg{info: info, err: err}
		}

	case rowInstallUpdate:
		app.updating = newUpdatingModel(app.deps)
		app.view = viewUpdating
		return app, app.updating.start()

	case rowAPMode:
		app.modal = modalAPInstructions
		deps := s.deps
		return app, func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()
			return actionDoneMsg{err: deps.Actions.StartAPMode(ctx)}
		}

	case rowReset:
		app.modal = modalConfirmReset
		return app, nil

	default:
		return app, s.startEdit()
	}
}

func (s *settingsModel) cycleRow(forward bool) {
	settings, _ := s.deps.Store.Settings()

	switch s.currentRow() {
	case rowTimeFormat:
		next := model.TimeFormat24
		if settings.TimeFormat == model.TimeFormat24 {
			next = model.TimeFormat12
		}
		s.queuePatch(model.SettingsPatch{TimeFormat: &next})

	case rowTimeSync:
		next := model.TimeSyncAutomatic
		if settings.TimeSyncMode == model.TimeSyncAutomatic {
			next = model.TimeSyncManual
		}
		s.queuePatch(model.SettingsPatch{TimeSyncMode: &next})
		s.rebuildRows()
	}
}

func (s *settingsModel) queuePatch(patch model.SettingsPatch) {
	s.deps.Actions.SaveSettingsDebounced(context.Background(), patch)
}

func (s *settingsModel) startEdit() tea.Cmd {
	settings, _ := s.deps.Store.Settings()

	s.input = textinput.New()
	switch s.currentRow() {
	case rowTimezone:
		s.input.SetValue(settings.Timezone)
		s.input.Placeholder = "America/New_York"
	case rowCity:
		s.input.SetValue(settings.CityName)
		s.input.Placeholder = "Search city…"
		s.locCursor = 0
	case rowState:
		s.input.SetValue(settings.State)
	case rowZipcode:
		s.input.SetValue(settings.Zipcode)
	case rowSetDate:
		s.input.SetValue(s.draftDate)
		s.input.Placeholder = "2026-01-31"
	case rowSetTime:
		s.input.SetValue(s.draftTime)
		s.input.Placeholder = "14:30:00"
	case rowMaxPrintLines:
		s.input.SetValue(strconv.Itoa(settings.MaxPrintLines))
	case rowCutterFeedLines:
		s.input.SetValue(strconv.Itoa(settings.CutterFeedLines))
	case rowSSHPassword:
		s.input.EchoMode = textinput.EchoPassword
		s.input.Placeholder = "New SSH password"
	}
	s.editing = true
	return s.input.Focus()
}

func (s *settingsModel) handleEditingKey(msg tea.KeyMsg) tea.Cmd {
	row := s.currentRow()

	switch msg.String() {
	case "esc":
		s.stopEdit()
		return nil

	case "enter":
		if row == rowCity && len(s.locResults) > 0 {
			return s.pickLocation(s.locResults[min(s.locCursor, len(s.locResults)-1)])
		}
		return s.commitEdit()

	case "up":
		if row == rowCity && s.locCursor > 0 {
			s.locCursor--
			return nil
		}

	case "down":
		if row == rowCity && s.locCursor < len(s.locResults)-1 {
			s.locCursor++
			return nil
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	if row == rowCity {
		s.searcher.Query(s.input.Value())
	}
	return cmd
}

// Принтер подает после отреза не больше 20 строк.
const maxCutterFeedLines = 20

// parseCutterFeedLines разбирает и проверяет значение подачи после отреза
func parseCutterFeedLines(value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, model.ValidationError{Field: "cutter_feed_lines", Message: "must be a number"}
	}
	if err := model.ValidateRange("cutter_feed_lines", n, 0, maxCutterFeedLines); err != nil {
		return 0, err
	}
	return n, nil
}

func (s *settingsModel) commitEdit() tea.Cmd {
	value := strings.TrimSpace(s.input.Value())
	row := s.currentRow()
	s.stopEdit()

	switch row {
	case rowTimezone:
		s.queuePatch(model.SettingsPatch{Timezone: &value})
	case rowCity:
		s.queuePatch(model.SettingsPatch{CityName: &value})
	case rowState:
		s.queuePatch(model.SettingsPatch{State: &value})
	case rowZipcode:
		s.queuePatch(model.SettingsPatch{Zipcode: &value})

	case rowSetDate:
		s.draftDate = value
		return s.submitManualTime()
	case rowSetTime:
		s.draftTime = value
		return s.submitManualTime()

	case rowMaxPrintLines:
		if n, err := strconv.Atoi(value); err == nil && n >= 0 {
			s.queuePatch(model.SettingsPatch{MaxPrintLines: &n})
		}
	case rowCutterFeedLines:
		if n, err := parseCutterFeedLines(value); err == nil {
			s.queuePatch(model.SettingsPatch{CutterFeedLines: &n})
		} else {
			s.deps.Store.SetStatus(model.StatusError,
				fmt.Sprintf("Cutter feed lines must be between 0 and %d", maxCutterFeedLines))
		}

	case rowSSHPassword:
		if value == "" {
			return nil
		}
		deps := s.deps
		return func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()
			return actionDoneMsg{err: deps.Actions.SetSSHPassword(ctx, value)}
		}
	}
	return nil
}

// submitManualTime отправляет дату и время, когда заполнены оба поля
func (s *settingsModel) submitManualTime() tea.Cmd {
	if s.draftDate == "" || s.draftTime == "" {
		return nil
	}
	if !timefmt.ValidDate(s.draftDate) || !timefmt.ValidHHMMSS(s.draftTime) {
		s.deps.Store.SetStatus(model.StatusError, "Enter date as YYYY-MM-DD and time as HH:MM:SS")
		return nil
	}
	date, timeOfDay := s.draftDate, s.draftTime
	s.draftDate, s.draftTime = "", ""
	deps := s.deps
	return tea.Batch(func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		return actionDoneMsg{err: deps.Actions.SetSystemTime(ctx, date, timeOfDay)}
	}, s.fetchTimeCmd())
}

func (s *settingsModel) stopEdit() {
	s.editing = false
	s.locResults = nil
	s.locSearching = false
	s.searcher.Query("")
}

// close останавливает отложенный поиск местоположения
func (s *settingsModel) close() {
	if s.searcher != nil {
		s.searcher.Close()
	}
}

func (s *settingsModel) view(width, height int) string {
	settings, _ := s.deps.Store.Settings()

	var b strings.Builder
	b.WriteString(titleStyle.Render("Device Settings"))
	b.WriteString("\n")
	b.WriteString(s.statusLine())
	b.WriteString("\n\n")

	for i, def := range s.rows {
		selected := i == s.cursor
		var line string
		if selected && s.editing {
			line = fmt.Sprintf("  %s %s", fieldLabelStyle.Render(def.label+":"), s.input.View())
		} else {
			line = fmt.Sprintf("  %s %s", fieldLabelStyle.Render(def.label+":"), s.rowValue(def.row, &settings))
			if selected {
				line = selectedStyle.Render(line)
			}
		}
		b.WriteString(line)
		b.WriteString("\n")

		if selected && s.editing && def.row == rowCity {
			b.WriteString(s.locationDropdown())
		}
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter edit/toggle · ←/→ cycle · esc back"))
	return b.String()
}

func (s *settingsModel) statusLine() string {
	var parts []string
	if s.systemTime != nil {
		clock := s.systemTime.Formatted
		if clock == "" {
			clock = s.systemTime.Datetime
		}
		parts = append(parts, "Device time: "+clock)
	}
	if s.version != nil {
		parts = append(parts, "Version: "+s.version.Version)
	}
	if _, wifiStatus := s.deps.Store.WiFi(); wifiStatus.Connected {
		parts = append(parts, "WiFi: "+wifiStatus.SSID)
	} else {
		parts = append(parts, "WiFi: not connected")
	}
	return dimStyle.Render(strings.Join(parts, "  ·  "))
}

func (s *settingsModel) rowValue(row settingsRow, settings *model.Settings) string {
	switch row {
	case rowTimezone:
		return orEmpty(settings.Timezone)
	case rowCity:
		return orEmpty(settings.CityName)
	case rowState:
		return orEmpty(settings.State)
	case rowZipcode:
		return orEmpty(settings.Zipcode)
	case rowTimeFormat:
		return settings.TimeFormat
	case rowTimeSync:
		return settings.TimeSyncMode
	case rowSetDate:
		return orEmpty(s.draftDate)
	case rowSetTime:
		return orEmpty(s.draftTime)
	case rowSyncNow, rowCheckUpdates, rowInstallUpdate, rowAPMode, rowReset:
		return ""
	case rowMaxPrintLines:
		if settings.MaxPrintLines == 0 {
			return "0 " + dimStyle.Render("(unlimited)")
		}
		return strconv.Itoa(settings.MaxPrintLines)
	case rowCutterFeedLines:
		return strconv.Itoa(settings.CutterFeedLines)
	case rowUseAPISearch:
		return yesNo(settings.UseAPILocationSearch)
	case rowInvertPrint:
		return yesNo(settings.InvertPrint)
	case rowSSHEnabled:
		return yesNo(s.sshEnabled)
	case rowSSHPassword:
		return dimStyle.Render("(press enter to change)")
	}
	return ""
}

func (s *settingsModel) locationDropdown() string {
	var b strings.Builder
	if s.locSearching {
		b.WriteString(dimStyle.Render("    Searching…"))
		b.WriteString("\n")
	}
	for i, r := range s.locResults {
		line := "    " + locationLabel(r)
		if i == s.locCursor {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

// pickLocation применяет выбранный результат поиска. Выбор из списка —
// законченное действие, запись уходит сразу, без окна тишины.
func (s *settingsModel) pickLocation(r model.LocationResult) tea.Cmd {
	patch := model.LocationPatch(r)
	s.stopEdit()
	deps := s.deps
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		return actionDoneMsg{err: deps.Actions.SaveSettings(ctx, patch)}
	}
}

func orEmpty(v string) string {
	if v == "" {
		return dimStyle.Render("(not set)")
	}
	return v
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
