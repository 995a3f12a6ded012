// Package richtext содержит структурированный документ текстовых модулей.
//
// Документ — дерево узлов {type, content?, text?, attrs?, marks?}. Старые
// конфигурации хранили простую строку; она принимается и приводится к
// документу из абзацев по строкам.
package richtext

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Типы узлов.
const (
	TypeDoc            = "doc"
	TypeParagraph      = "paragraph"
	TypeHeading        = "heading"
	TypeBulletList     = "bulletList"
	TypeOrderedList    = "orderedList"
	TypeListItem       = "listItem"
	TypeTaskList       = "taskList"
	TypeTaskItem       = "taskItem"
	TypeHorizontalRule = "horizontalRule"
	TypeText           = "text"
)

// Типы пометок текста.
const (
	MarkBold   = "bold"
	MarkItalic = "italic"
)

// Mark — пометка текстового узла
type Mark struct {
	Type string `json:"type"`
}

// Node — узел документа
type Node struct {
	Type    string         `json:"type"`
	Text    string         `json:"text,omitempty"`
	Attrs   map[string]any `json:"attrs,omitempty"`
	Marks   []Mark         `json:"marks,omitempty"`
	Content []Node         `json:"content,omitempty"`
}

// EmptyDoc возвращает пустой документ
func EmptyDoc() Node {
	return Node{Type: TypeDoc}
}

// FromPlainText строит документ из простого текста: абзац на строку
func FromPlainText(text string) Node {
	doc := Node{Type: TypeDoc}
	for _, line := range strings.Split(text, "\n") {
		p := Node{Type: TypeParagraph}
		if line != "" {
			p.Content = []Node{{Type: TypeText, Text: line}}
		}
		doc.Content = append(doc.Content, p)
	}
	return doc
}

// Coerce приводит произвольное значение config к документу.
// Строка — легаси-формат, карта — сериализованный документ.
func Coerce(v any) Node {
	switch t := v.(type) {
	case nil:
		return EmptyDoc()
	case string:
		if t == "" {
			return EmptyDoc()
		}
		return FromPlainText(t)
	case Node:
		return t
	case map[string]any:
		raw, err := json.Marshal(t)
		if err != nil {
			return EmptyDoc()
		}
		var doc Node
		if err := json.Unmarshal(raw, &doc); err != nil || doc.Type == "" {
			return EmptyDoc()
		}
		return doc
	default:
		return EmptyDoc()
	}
}

// IsEmpty сообщает, пуст ли документ: нет ни текста, ни разделителей
func IsEmpty(v any) bool {
	doc := Coerce(v)
	return !hasContent(doc)
}

func hasContent(n Node) bool {
	if n.Type == TypeText && strings.TrimSpace(n.Text) != "" {
		return true
	}
	if n.Type == TypeHorizontalRule {
		return true
	}
	for _, child := range n.Content {
		if hasContent(child) {
			return true
		}
	}
	return false
}

// PlainText возвращает текстовое представление документа, строка на блок
func PlainText(v any) string {
	doc := Coerce(v)
	var lines []string
	for _, block := range doc.Content {
		lines = append(lines, blockText(block)...)
	}
	return strings.Join(lines, "\n")
}

func blockText(n Node) []string {
	switch n.Type {
	case TypeParagraph, TypeHeading:
		return []string{inlineText(n)}
	case TypeHorizontalRule:
		return []string{"---"}
	case TypeBulletList:
		var lines []string
		for _, item := range n.Content {
			lines = append(lines, "- "+itemText(item))
		}
		return lines
	case TypeOrderedList:
		var lines []string
		for i, item := range n.Content {
			lines = append(lines, strconv.Itoa(i+1)+". "+itemText(item))
		}
		return lines
	case TypeTaskList:
		var lines []string
		for _, item := range n.Content {
			box := "[ ] "
			if checked, _ := item.Attrs["checked"].(bool); checked {
				box = "[x] "
			}
			lines = append(lines, box+itemText(item))
		}
		return lines
	default:
		if text := inlineText(n); text != "" {
			return []string{text}
		}
		return nil
	}
}

func itemText(n Node) string {
	var parts []string
	for _, child := range n.Content {
		parts = append(parts, blockText(child)...)
	}
	return strings.Join(parts, " ")
}

func inlineText(n Node) string {
	if n.Type == TypeText {
		return n.Text
	}
	var b strings.Builder
	for _, child := range n.Content {
		b.WriteString(inlineText(child))
	}
	return b.String()
}

// ToMap сериализует документ в карту для хранения в config модуля
func ToMap(doc Node) map[string]any {
	raw, err := json.Marshal(doc)
	if err != nil {
		return map[string]any{"type": TypeDoc}
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return map[string]any{"type": TypeDoc}
	}
	return out
}
