package ui

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"pc1console/internal/actions"
	"pc1console/internal/location"
	"pc1console/internal/model"
	"pc1console/internal/modkind"
	"pc1console/internal/richtext"
	"pc1console/internal/schema"
)

// Сообщения редактора.
type (
	locationSearchingMsg struct{ searching bool }
	locationResultsMsg   struct{ results []model.LocationResult }
	webhookPreviewMsg    struct {
		preview string
		err     error
	}
)

type fieldKind int

const (
	fieldText fieldKind = iota
	fieldBool
	fieldEnum
	fieldPreset
	fieldTextarea
	fieldRichText
	fieldKeyValue
	fieldLocation
	fieldAction
	fieldArrayAdd
)

// fieldPath адресует значение внутри config: свойство, необязательный
// индекс элемента массива и свойство внутри элемента.
type fieldPath struct {
	key string
	idx int
	sub string
}

func rootPath(key string) fieldPath { return fieldPath{key: key, idx: -1} }

type formField struct {
	path     fieldPath
	label    string
	prop     *schema.Schema
	hint     schema.Hint
	kind     fieldKind
	required bool
	// errPath — путь поля в ошибках валидации ("ical_sources.0.url")
	errPath string
}

// editorModel — редактор конфигурации одного модуля. Форма строится
// по схеме вида; каждое изменение валидируется и уходит отложенной
// записью, закрытие редактора отправляет ее немедленно.
type editorModel struct {
	deps     *Deps
	moduleID string
	kind     modkind.Kind
	schema   *schema.Schema
	hints    schema.Hints

	fields []formField
	cursor int

	editing   bool
	usingArea bool
	input     textinput.Model
	area      textarea.Model

	editingName bool
	nameInput   textinput.Model

	errs model.ValidationErrors

	searcher     *location.Searcher
	locResults   []model.LocationResult
	locSearching bool
	locCursor    int
	locOpen      bool

	webhookPreview string
}

func newEditorModel(deps *Deps, moduleID string) *editorModel {
	m, _ := deps.Store.Module(moduleID)
	kind := modkind.Get(m.Type)
	s, hints := kind.Schema()

	e := &editorModel{
		deps:     deps,
		moduleID: moduleID,
		kind:     kind,
		schema:   s,
		hints:    hints,
	}

	e.searcher = location.New(deps.API, deps.Config.LocationDebounce, deps.Config.LocationSearchTimeout, deps.Logger)
	e.searcher.UseAPI = func() bool {
		settings, ok := deps.Store.Settings()
		return ok && settings.UseAPILocationSearch
	}
	e.searcher.OnSearching = func(v bool) {
		if deps.Send != nil {
			deps.Send(locationSearchingMsg{searching: v})
		}
	}
	e.searcher.OnResults = func(results []model.LocationResult) {
		if deps.Send != nil {
			deps.Send(locationResultsMsg{results: results})
		}
	}

	e.rebuild()
	e.validate()
	return e
}

// close останавливает отложенный поиск местоположения
func (e *editorModel) close() {
	if e.searcher != nil {
		e.searcher.Close()
	}
}

func (e *editorModel) config() map[string]any {
	m, ok := e.deps.Store.Module(e.moduleID)
	if !ok {
		return map[string]any{}
	}
	if m.Config == nil {
		return map[string]any{}
	}
	return m.Config
}

// rebuild пересобирает плоский список полей формы из схемы и текущего
// config с учетом условной видимости.
func (e *editorModel) rebuild() {
	cfg := e.config()
	var fields []formField

	for _, name := range e.schema.OrderedProperties() {
		prop := e.schema.Properties[name]
		hint := e.hints[name]
		if !schema.Visible(hint, cfg) {
			continue
		}
		required := e.schema.IsRequired(name)

		switch {
		case hint.Widget == schema.WidgetKeyValueList:
			fields = append(fields, formField{
				path: rootPath(name), label: title(prop, name), prop: prop,
				hint: hint, kind: fieldKeyValue, required: required, errPath: name,
			})
		case hint.Widget == schema.WidgetRichText:
			fields = append(fields, formField{
				path: rootPath(name), label: title(prop, name), prop: prop,
				hint: hint, kind: fieldRichText, required: required, errPath: name,
			})
		case hint.Widget == schema.WidgetTextarea:
			fields = append(fields, formField{
				path: rootPath(name), label: title(prop, name), prop: prop,
				hint: hint, kind: fieldTextarea, required: required, errPath: name,
			})
		case hint.Widget == schema.WidgetLocationSearch:
			fields = append(fields, formField{
				path: rootPath(name), label: title(prop, name), prop: prop,
				hint: hint, kind: fieldLocation, required: required, errPath: name,
			})
		case hint.Widget == schema.WidgetPresetSelect:
			fields = append(fields, formField{
				path: rootPath(name), label: title(prop, name), prop: prop,
				hint: hint, kind: fieldPreset, required: required, errPath: name,
			})
		case prop.Type == schema.TypeBoolean:
			fields = append(fields, formField{
				path: rootPath(name), label: title(prop, name), prop: prop,
				hint: hint, kind: fieldBool, required: required, errPath: name,
			})
		case len(prop.Enum) > 0:
			fields = append(fields, formField{
				path: rootPath(name), label: title(prop, name), prop: prop,
				hint: hint, kind: fieldEnum, required: required, errPath: name,
			})
		case prop.Type == schema.TypeArray:
			fields = append(fields, e.arrayFields(name, prop, hint, cfg, required)...)
		default:
			fields = append(fields, formField{
				path: rootPath(name), label: title(prop, name), prop: prop,
				hint: hint, kind: fieldText, required: required, errPath: name,
			})
		}
	}

	// псевдосвойства подсказок — кнопки действий вида "_test", "_new"
	var actionKeys []string
	for key, hint := range e.hints {
		if hint.Widget == schema.WidgetActionButton || hint.Widget == schema.WidgetWebhookTest {
			actionKeys = append(actionKeys, key)
		}
	}
	sort.Strings(actionKeys)
	for _, key := range actionKeys {
		hint := e.hints[key]
		label := hint.ActionLabel
		if label == "" {
			label = key
		}
		fields = append(fields, formField{
			path: rootPath(key), label: label, hint: hint, kind: fieldAction,
		})
	}

	e.fields = fields
	if e.cursor >= len(e.fields) {
		e.cursor = len(e.fields) - 1
	}
	if e.cursor < 0 {
		e.cursor = 0
	}
}

func (e *editorModel) arrayFields(name string, prop *schema.Schema, hint schema.Hint, cfg map[string]any, required bool) []formField {
	var fields []formField
	list, _ := cfg[name].([]any)

	for i, el := range list {
		if prop.Items != nil && prop.Items.Type == schema.TypeObject {
			obj, _ := el.(map[string]any)
			_ = obj
			for _, sub := range prop.Items.OrderedProperties() {
				subProp := prop.Items.Properties[sub]
				fields = append(fields, formField{
					path:     fieldPath{key: name, idx: i, sub: sub},
					label:    fmt.Sprintf("%s %d · %s", title(prop, name), i+1, title(subProp, sub)),
					prop:     subProp,
					hint:     e.hints[name+"."+sub],
					kind:     fieldText,
					required: prop.Items.IsRequired(sub),
					errPath:  fmt.Sprintf("%s.%d.%s", name, i, sub),
				})
			}
		} else {
			itemHint := e.hints[name+".items"]
			fields = append(fields, formField{
				path:    fieldPath{key: name, idx: i},
				label:   fmt.Sprintf("%s %d", title(prop, name), i+1),
				prop:    prop.Items,
				hint:    itemHint,
				kind:    fieldText,
				errPath: fmt.Sprintf("%s.%d", name, i),
			})
		}
	}

	if prop.MaxItems == 0 || len(list) < prop.MaxItems {
		addLabel := hint.AddLabel
		if addLabel == "" {
			addLabel = "Add item"
		}
		fields = append(fields, formField{
			path: rootPath(name), label: addLabel, prop: prop, hint: hint,
			kind: fieldArrayAdd, required: required, errPath: name,
		})
	}
	return fields
}

func title(prop *schema.Schema, fallback string) string {
	if prop != nil && prop.Title != "" {
		return prop.Title
	}
	return fallback
}

func (e *editorModel) validate() {
	e.errs = modkind.ValidateConfig(e.kind.ID, e.config())
}

func valueAt(cfg map[string]any, p fieldPath) any {
	v := cfg[p.key]
	if p.idx < 0 {
		return v
	}
	list, _ := v.([]any)
	if p.idx >= len(list) {
		return nil
	}
	el := list[p.idx]
	if p.sub == "" {
		return el
	}
	obj, _ := el.(map[string]any)
	return obj[p.sub]
}

func setAt(cfg map[string]any, p fieldPath, v any) {
	if p.idx < 0 {
		cfg[p.key] = v
		return
	}
	list, _ := cfg[p.key].([]any)
	for len(list) <= p.idx {
		list = append(list, nil)
	}
	if p.sub == "" {
		list[p.idx] = v
	} else {
		obj, ok := list[p.idx].(map[string]any)
		if !ok {
			obj = map[string]any{}
		}
		obj[p.sub] = v
		list[p.idx] = obj
	}
	cfg[p.key] = list
}

func removeAt(cfg map[string]any, key string, idx int) {
	list, _ := cfg[key].([]any)
	if idx < 0 || idx >= len(list) {
		return
	}
	cfg[key] = append(list[:idx], list[idx+1:]...)
}

// applyConfig — оптимистичная запись config с отложенной отправкой
func (e *editorModel) applyConfig(cfg map[string]any) {
	err := e.deps.Actions.QueueModuleUpdate(context.Background(), e.moduleID, actions.ModuleUpdate{Config: cfg})
	if err != nil {
		e.deps.Logger.Warn("Module update rejected", zap.Error(err))
	}
	e.rebuild()
	e.validate()
}

func (e *editorModel) mutate(fn func(cfg map[string]any)) {
	m, ok := e.deps.Store.Module(e.moduleID)
	if !ok {
		return
	}
	cfg := m.Clone().Config
	fn(cfg)
	e.applyConfig(cfg)
}

// --- редактирование полей ---

func (e *editorModel) startEdit() tea.Cmd {
	if e.cursor >= len(e.fields) {
		return nil
	}
	f := e.fields[e.cursor]
	value := valueAt(e.config(), f.path)

	switch f.kind {
	case fieldText, fieldLocation:
		e.input = textinput.New()
		e.input.Placeholder = f.hint.Placeholder
		if f.hint.Widget == schema.WidgetPassword {
			e.input.EchoMode = textinput.EchoPassword
		}
		e.input.SetValue(editableString(value))
		e.editing = true
		e.usingArea = false
		if f.kind == fieldLocation {
			e.locOpen = true
			e.locCursor = 0
		}
		return e.input.Focus()

	case fieldTextarea:
		e.area = textarea.New()
		e.area.SetValue(editableString(value))
		e.editing = true
		e.usingArea = true
		return e.area.Focus()

	case fieldRichText:
		e.area = textarea.New()
		e.area.SetValue(richtext.PlainText(value))
		e.editing = true
		e.usingArea = true
		return e.area.Focus()

	case fieldKeyValue:
		e.area = textarea.New()
		e.area.SetValue(keyValueLines(value))
		e.editing = true
		e.usingArea = true
		return e.area.Focus()
	}
	return nil
}

func editableString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprintf("%v", t)
	}
}

func keyValueLines(v any) string {
	obj, _ := v.(map[string]any)
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var lines []string
	for _, k := range keys {
		lines = append(lines, fmt.Sprintf("%s: %s", k, editableString(obj[k])))
	}
	return strings.Join(lines, "\n")
}

func parseKeyValueLines(text string) map[string]any {
	out := map[string]any{}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		key, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		out[key] = strings.TrimSpace(value)
	}
	return out
}

func (e *editorModel) commitEdit() {
	if e.cursor >= len(e.fields) {
		e.stopEdit()
		return
	}
	f := e.fields[e.cursor]

	var value any
	switch f.kind {
	case fieldText, fieldLocation:
		value = parseScalar(e.input.Value(), f.prop)
	case fieldTextarea:
		value = e.area.Value()
	case fieldRichText:
		value = richtext.ToMap(richtext.FromPlainText(e.area.Value()))
	case fieldKeyValue:
		value = parseKeyValueLines(e.area.Value())
	default:
		e.stopEdit()
		return
	}

	path := f.path
	e.mutate(func(cfg map[string]any) { setAt(cfg, path, value) })
	e.stopEdit()
}

func parseScalar(text string, prop *schema.Schema) any {
	if prop == nil {
		return text
	}
	switch prop.Type {
	case schema.TypeInteger:
		if n, err := strconv.Atoi(strings.TrimSpace(text)); err == nil {
			return float64(n)
		}
		return text
	case schema.TypeNumber:
		if n, err := strconv.ParseFloat(strings.TrimSpace(text), 64); err == nil {
			return n
		}
		return text
	default:
		return text
	}
}

func (e *editorModel) stopEdit() {
	e.editing = false
	e.usingArea = false
	e.locOpen = false
	e.locResults = nil
	e.locSearching = false
}

// pickLocation переносит выбранный результат поиска в config модуля
func (e *editorModel) pickLocation(r model.LocationResult) {
	e.mutate(func(cfg map[string]any) {
		cfg["city_name"] = r.DisplayCity()
		cfg["state"] = r.State
		cfg["zipcode"] = r.Zipcode
		cfg["latitude"] = r.Latitude
		cfg["longitude"] = r.Longitude
		if r.Timezone != "" {
			cfg["timezone"] = r.Timezone
		}
	})
	e.stopEdit()
}

// --- обработка клавиш ---

func (m *appModel) updateEditorKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	e := m.editor
	if e == nil {
		m.view = viewChannels
		return m, nil
	}

	if e.editingName {
		return m, e.handleNameKey(msg)
	}
	if e.editing {
		return m, e.handleEditingKey(msg)
	}

	switch msg.String() {
	case "esc", "q":
		m.closeEditor()
		return m, nil

	case "up", "k":
		if e.cursor > 0 {
			e.cursor--
		}
		return m, nil

	case "down", "j", "tab":
		if e.cursor < len(e.fields)-1 {
			e.cursor++
		}
		return m, nil

	case "enter", " ":
		return m, e.activateField(m)

	case "left", "right":
		e.cycleField(msg.String() == "right")
		return m, nil

	case "x":
		if e.cursor < len(e.fields) {
			f := e.fields[e.cursor]
			if f.path.idx >= 0 {
				key, idx := f.path.key, f.path.idx
				e.mutate(func(cfg map[string]any) { removeAt(cfg, key, idx) })
			}
		}
		return m, nil

	case "n":
		e.nameInput = textinput.New()
		if mod, ok := e.deps.Store.Module(e.moduleID); ok {
			e.nameInput.SetValue(mod.Name)
		}
		e.editingName = true
		return m, e.nameInput.Focus()

	case "P":
		id := e.moduleID
		return m, func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()
			return actionDoneMsg{err: m.deps.Actions.DebugPrintModule(ctx, id)}
		}
	}
	return m, nil
}

func (e *editorModel) activateField(app *appModel) tea.Cmd {
	if e.cursor >= len(e.fields) {
		return nil
	}
	f := e.fields[e.cursor]

	switch f.kind {
	case fieldBool:
		path := f.path
		current, _ := valueAt(e.config(), path).(bool)
		e.mutate(func(cfg map[string]any) { setAt(cfg, path, !current) })
		return nil

	case fieldEnum, fieldPreset:
		e.cycleField(true)
		return nil

	case fieldArrayAdd:
		key := f.path.key
		prop := f.prop
		e.mutate(func(cfg map[string]any) {
			list, _ := cfg[key].([]any)
			cfg[key] = append(list, schema.CreateEmptyValue(prop.Items))
		})
		return nil

	case fieldAction:
		return e.runAction(f)

	default:
		return e.startEdit()
	}
}

// cycleField перебирает значения enum или пресеты
func (e *editorModel) cycleField(forward bool) {
	if e.cursor >= len(e.fields) {
		return
	}
	f := e.fields[e.cursor]
	path := f.path
	current := editableString(valueAt(e.config(), path))

	switch f.kind {
	case fieldEnum:
		if f.prop == nil || len(f.prop.Enum) == 0 {
			return
		}
		next := cycleEnum(f.prop.Enum, current, forward)
		e.mutate(func(cfg map[string]any) { setAt(cfg, path, next) })

	case fieldPreset:
		if len(f.hint.Presets) == 0 {
			return
		}
		idx := 0
		for i, p := range f.hint.Presets {
			if p.Label == current {
				idx = nextIndex(i, len(f.hint.Presets), forward)
				break
			}
		}
		preset := f.hint.Presets[idx]
		e.mutate(func(cfg map[string]any) {
			setAt(cfg, path, preset.Label)
			// значения пресета сливаются в корень формы
			for k, v := range preset.Values {
				cfg[k] = v
			}
		})
	}
}

func cycleEnum(enum []any, current string, forward bool) any {
	for i, v := range enum {
		if editableString(v) == current {
			return enum[nextIndex(i, len(enum), forward)]
		}
	}
	return enum[0]
}

func nextIndex(i, n int, forward bool) int {
	if forward {
		return (i + 1) % n
	}
	return (i - 1 + n) % n
}

func (e *editorModel) runAction(f formField) tea.Cmd {
	if f.hint.Widget == schema.WidgetWebhookTest {
		// предпросмотр уходит с актуальными данными формы
		e.deps.Actions.FlushModuleWrite(e.moduleID)
		cfg := e.config()
		api := e.deps.API
		return func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()
			preview, err := api.TestWebhook(ctx, cfg)
			return webhookPreviewMsg{preview: preview, err: err}
		}
	}

	action := f.hint.Action
	if action == "" {
		return nil
	}
	id := e.moduleID
	acts := e.deps.Actions
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		reload, err := acts.InvokeModuleAction(ctx, id, action)
		if err == nil && reload {
			return reloadMsg{}
		}
		return actionDoneMsg{err: err}
	}
}

func (e *editorModel) handleNameKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		e.editingName = false
		return nil
	case "enter":
		name := strings.TrimSpace(e.nameInput.Value())
		e.editingName = false
		if name == "" {
			return nil
		}
		err := e.deps.Actions.QueueModuleUpdate(context.Background(), e.moduleID, actions.ModuleUpdate{Name: &name})
		if err != nil {
			e.deps.Logger.Warn("Module rename rejected", zap.Error(err))
		}
		return nil
	}
	var cmd tea.Cmd
	e.nameInput, cmd = e.nameInput.Update(msg)
	return cmd
}

func (e *editorModel) handleEditingKey(msg tea.KeyMsg) tea.Cmd {
	f := e.fields[min(e.cursor, len(e.fields)-1)]

	if e.usingArea {
		// многострочные поля: esc сохраняет и закрывает
		if msg.String() == "esc" {
			e.commitEdit()
			return nil
		}
		var cmd tea.Cmd
		e.area, cmd = e.area.Update(msg)
		return cmd
	}

	switch msg.String() {
	case "esc":
		e.stopEdit()
		return nil

	case "enter":
		if f.kind == fieldLocation && e.locOpen && len(e.locResults) > 0 {
			e.pickLocation(e.locResults[min(e.locCursor, len(e.locResults)-1)])
			return nil
		}
		e.commitEdit()
		return nil

	case "up":
		if f.kind == fieldLocation && e.locCursor > 0 {
			e.locCursor--
			return nil
		}

	case "down":
		if f.kind == fieldLocation && e.locCursor < len(e.locResults)-1 {
			e.locCursor++
			return nil
		}
	}

	var cmd tea.Cmd
	e.input, cmd = e.input.Update(msg)
	if f.kind == fieldLocation {
		e.searcher.Query(e.input.Value())
	}
	return cmd
}

// route обрабатывает неклавиатурные сообщения редактора
func (e *editorModel) route(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case locationSearchingMsg:
		e.locSearching = msg.searching
		return nil
	case locationResultsMsg:
		e.locResults = msg.results
		if e.locCursor >= len(e.locResults) {
			e.locCursor = 0
		}
		return nil
	case webhookPreviewMsg:
		if msg.err != nil {
			e.webhookPreview = "Error: " + msg.err.Error()
		} else {
			e.webhookPreview = msg.preview
		}
		return nil
	}

	// мигание курсора и прочие сообщения полей ввода
	var cmd tea.Cmd
	switch {
	case e.editingName:
		e.nameInput, cmd = e.nameInput.Update(msg)
	case e.editing && e.usingArea:
		e.area, cmd = e.area.Update(msg)
	case e.editing:
		e.input, cmd = e.input.Update(msg)
	}
	return cmd
}

// --- отрисовка ---

func (e *editorModel) view(width, height int) string {
	m, ok := e.deps.Store.Module(e.moduleID)
	if !ok {
		return dimStyle.Render("Module no longer exists")
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.Name))
	b.WriteString(dimStyle.Render("  (" + e.kind.Label + ")"))
	b.WriteString("\n\n")

	if e.editingName {
		b.WriteString(fieldLabelStyle.Render("Name: "))
		b.WriteString(e.nameInput.View())
		b.WriteString("\n\n")
	}

	cfg := e.config()
	for i, f := range e.fields {
		line := e.fieldLine(f, cfg, i == e.cursor)
		b.WriteString(line)
		b.WriteString("\n")

		if msg := e.errs.ByField(f.errPath); msg != "" {
			b.WriteString(errorStyle.Render("    " + msg))
			b.WriteString("\n")
		}

		if i == e.cursor && e.editing && e.fields[e.cursor].kind == fieldLocation {
			b.WriteString(e.locationDropdown())
		}
	}

	if e.webhookPreview != "" {
		b.WriteString("\n")
		b.WriteString(headerStyle.Render("Preview"))
		b.WriteString("\n")
		b.WriteString(dimStyle.Render(e.webhookPreview))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter edit · ←/→ cycle · x remove item · n rename · P test print · esc back"))
	return b.String()
}

func (e *editorModel) fieldLine(f formField, cfg map[string]any, selected bool) string {
	label := f.label
	if f.required {
		label += requiredMark
	}

	var value string
	if selected && e.editing {
		if e.usingArea {
			return fieldLabelStyle.Render(label) + "\n" + e.area.View()
		}
		value = e.input.View()
	} else {
		value = displayValue(f, valueAt(cfg, f.path))
	}

	line := fmt.Sprintf("  %s %s", fieldLabelStyle.Render(label+":"), value)
	if f.kind == fieldAction || f.kind == fieldArrayAdd {
		line = "  [" + f.label + "]"
	}
	if selected && !e.editing {
		line = selectedStyle.Render(line)
	}
	return line
}

func displayValue(f formField, v any) string {
	switch f.kind {
	case fieldBool:
		if b, _ := v.(bool); b {
			return "yes"
		}
		return "no"
	case fieldRichText:
		text := richtext.PlainText(v)
		if line, _, found := strings.Cut(text, "\n"); found {
			return line + " …"
		}
		return text
	case fieldKeyValue:
		obj, _ := v.(map[string]any)
		if len(obj) == 0 {
			return dimStyle.Render("(none)")
		}
		return fmt.Sprintf("%d entries", len(obj))
	}

	if f.hint.Widget == schema.WidgetPassword {
		if editableString(v) == "" {
			return dimStyle.Render("(not set)")
		}
		return "••••••••"
	}

	s := editableString(v)
	if s == "" {
		if f.hint.Placeholder != "" {
			return dimStyle.Render(f.hint.Placeholder)
		}
		return dimStyle.Render("(empty)")
	}
	return s
}

func (e *editorModel) locationDropdown() string {
	var b strings.Builder
	if e.locSearching {
		b.WriteString(dimStyle.Render("    Searching…"))
		b.WriteString("\n")
	}
	for i, r := range e.locResults {
		line := "    " + locationLabel(r)
		if i == e.locCursor {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func locationLabel(r model.LocationResult) string {
	parts := []string{r.DisplayCity()}
	if r.State != "" {
		parts = append(parts, r.State)
	}
	if r.Zipcode != "" {
		parts = append(parts, r.Zipcode)
	}
	return strings.Join(parts, ", ")
}
