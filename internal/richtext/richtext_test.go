package richtext

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromPlainText(t *testing.T) {
	doc := FromPlainText("first\n\nsecond")

	assert.Equal(t, TypeDoc, doc.Type)
	assert.Len(t, doc.Content, 3)
	assert.Equal(t, "first", doc.Content[0].Content[0].Text)
	assert.Empty(t, doc.Content[1].Content)
	assert.Equal(t, "second", doc.Content[2].Content[0].Text)
}

func TestCoerce(t *testing.T) {
	t.Run("nil is empty doc", func(t *testing.T) {
		assert.Equal(t, EmptyDoc(), Coerce(nil))
	})

	t.Run("legacy string becomes paragraphs", func(t *testing.T) {
		doc := Coerce("hello")
		assert.Equal(t, TypeDoc, doc.Type)
		assert.Equal(t, "hello", doc.Content[0].Content[0].Text)
	})

	t.Run("serialized map roundtrip", func(t *testing.T) {
		raw := map[string]any{
			"type": "doc",
			"content": []any{
				map[string]any{
					"type": "paragraph",
					"content": []any{
						map[string]any{"type": "text", "text": "from map"},
					},
				},
			},
		}
		doc := Coerce(raw)
		assert.Equal(t, "from map", doc.Content[0].Content[0].Text)
	})

	t.Run("unknown value is empty doc", func(t *testing.T) {
		assert.Equal(t, EmptyDoc(), Coerce(42))
	})
}

func TestIsEmpty(t *testing.T) {
	assert.True(t, IsEmpty(nil))
	assert.True(t, IsEmpty(""))
	assert.True(t, IsEmpty("   "))
	assert.False(t, IsEmpty("text"))

	// пустые абзацы без текста
	doc := Node{Type: TypeDoc, Content: []Node{{Type: TypeParagraph}}}
	assert.True(t, IsEmpty(ToMap(doc)))

	// разделитель сам по себе — содержимое
	doc = Node{Type: TypeDoc, Content: []Node{{Type: TypeHorizontalRule}}}
	assert.False(t, IsEmpty(ToMap(doc)))
}

func TestPlainText(t *testing.T) {
	doc := Node{Type: TypeDoc, Content: []Node{
		{Type: TypeHeading, Content: []Node{{Type: TypeText, Text: "Title"}}},
		{Type: TypeBulletList, Content: []Node{
			{Type: TypeListItem, Content: []Node{
				{Type: TypeParagraph, Content: []Node{{Type: TypeText, Text: "one"}}},
			}},
			{Type: TypeListItem, Content: []Node{
				{Type: TypeParagraph, Content: []Node{{Type: TypeText, Text: "two"}}},
			}},
		}},
		{Type: TypeOrderedList, Content: []Node{
			{Type: TypeListItem, Content: []Node{
				{Type: TypeParagraph, Content: []Node{{Type: TypeText, Text: "ordered"}}},
			}},
		}},
		{Type: TypeTaskList, Content: []Node{
			{Type: TypeTaskItem, Attrs: map[string]any{"checked": true}, Content: []Node{
				{Type: TypeParagraph, Content: []Node{{Type: TypeText, Text: "done"}}},
			}},
			{Type: TypeTaskItem, Content: []Node{
				{Type: TypeParagraph, Content: []Node{{Type: TypeText, Text: "open"}}},
			}},
		}},
		{Type: TypeHorizontalRule},
	}}

	want := "Title\n- one\n- two\n1. ordered\n[x] done\n[ ] open\n---"
	assert.Equal(t, want, PlainText(ToMap(doc)))
}

// Приведение текста в документ и обратно сохраняет строки
func TestPlainTextRoundtrip(t *testing.T) {
	text := "line one\nline two"
	assert.Equal(t, text, PlainText(ToMap(FromPlainText(text))))
}
