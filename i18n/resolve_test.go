package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
)

type post struct {
	ID      string                      `json:"id"`
	TitleEn string                      `json:"title_en"`
	TitleVi *string                     `json:"title_vi"`
	TagsEn  datatypes.JSONSlice[string] `json:"tags_en"`
	TagsVi  datatypes.JSONSlice[string] `json:"tags_vi"`
}

func strPtr(s string) *string { return &s }

func TestTextFallsBackToEnglishOnNull(t *testing.T) {
	p := post{TitleEn: "Hello"}

	assert.Equal(t, "Hello", Text(p, English, "title"))
	assert.Equal(t, "Hello", Text(p, Vietnamese, "title"))
	assert.Equal(t, "Hello", Text(&p, Vietnamese, "title"))
}

func TestTextEmptyStringIsAValue(t *testing.T) {
	p := post{TitleEn: "Hello", TitleVi: strPtr("")}
	assert.Equal(t, "", Text(p, Vietnamese, "title"))

	m := map[string]any{"title_en": "Hello", "title_vi": ""}
	assert.Equal(t, "", Text(m, Vietnamese, "title"))
}

func TestTextMaps(t *testing.T) {
	tests := []struct {
		name   string
		record map[string]any
		lang   Language
		want   string
	}{
		{"alternate present", map[string]any{"title_en": "Hello", "title_vi": "Xin chào"}, Vietnamese, "Xin chào"},
		{"alternate missing", map[string]any{"title_en": "Hello"}, Vietnamese, "Hello"},
		{"alternate nil", map[string]any{"title_en": "Hello", "title_vi": nil}, Vietnamese, "Hello"},
		{"both missing", map[string]any{}, Vietnamese, ""},
		{"english ignores vi", map[string]any{"title_vi": "Xin chào"}, English, ""},
		{"unknown language uses english", map[string]any{"title_en": "Hello", "title_fr": "Bonjour"}, Language("fr"), "Hello"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Text(tt.record, tt.lang, "title"))
		})
	}
}

func TestTextNeverPanics(t *testing.T) {
	assert.Equal(t, "", Text(nil, Vietnamese, "title"))
	assert.Equal(t, "", Text(42, Vietnamese, "title"))
	assert.Equal(t, "", Text((*post)(nil), Vietnamese, "title"))
	assert.Equal(t, "", Text(map[string]any{"title_en": 7}, English, "title"))
}

func TestTextDoesNotMutate(t *testing.T) {
	m := map[string]any{"title_en": "Hello", "title_vi": nil}
	_ = Text(m, Vietnamese, "title")
	assert.Len(t, m, 2)
	assert.Nil(t, m["title_vi"])
}

func TestList(t *testing.T) {
	p := post{TagsEn: datatypes.JSONSlice[string]{"go", "sql"}}
	assert.Equal(t, []string{"go", "sql"}, List(p, Vietnamese, "tags"))

	p.TagsVi = datatypes.JSONSlice[string]{}
	assert.Equal(t, []string{}, List(p, Vietnamese, "tags"))

	assert.Equal(t, []string{}, List(post{}, Vietnamese, "tags"))
	assert.NotNil(t, List(post{}, English, "tags"))

	m := map[string]any{"tags_en": []any{"a", "b"}}
	assert.Equal(t, []string{"a", "b"}, List(m, Vietnamese, "tags"))
}
