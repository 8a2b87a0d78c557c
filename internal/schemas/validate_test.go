package schemas

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validDoc = `{
	"resume": {
		"name": "Ada Lovelace",
		"experience": [{"title": "Analyst", "company": "Engine Works"}],
		"skills": {"items": [{"name": "Go", "level": "Advanced"}], "mode": "structured"}
	},
	"theme": {"primaryColor": "#2563eb", "fontSizeLevel": 3},
	"order": ["experience", "summary"],
	"style": "modern"
}`

func TestValidateDocument_Valid(t *testing.T) {
	assert.NoError(t, ValidateDocument([]byte(validDoc)))
}

func TestValidateDocument_MissingResume(t *testing.T) {
	err := ValidateDocument([]byte(`{"style": "modern"}`))
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.NotEmpty(t, verr.Errors)
}

// TestValidateDocument_OrderIsFreeForm 未知、重复或大小写不同的章节键交给顺序解析处理。
func TestValidateDocument_OrderIsFreeForm(t *testing.T) {
	assert.NoError(t, ValidateDocument([]byte(`{"resume": {}, "order": ["Summary", "photo", "summary"]}`)))

	err := ValidateDocument([]byte(`{"resume": {}, "order": ["summary", 3]}`))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Errors[0].Field, "order")
}

func TestValidateDocument_PrimaryColorForms(t *testing.T) {
	for _, c := range []string{"#abc", "2563eb", "#2563ebcc"} {
		assert.NoError(t, ValidateDocument([]byte(`{"resume": {}, "theme": {"primaryColor": "`+c+`"}}`)), c)
	}
	assert.Error(t, ValidateDocument([]byte(`{"resume": {}, "theme": {"primaryColor": "blue"}}`)))
}

func TestValidateDocument_WrongType(t *testing.T) {
	err := ValidateDocument([]byte(`{"resume": {"experience": "none"}, "theme": {"fontSizeLevel": "big"}}`))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Errors, 2)
	assert.Contains(t, err.Error(), "文档校验失败")
}

func TestValidateDocument_BadMode(t *testing.T) {
	err := ValidateDocument([]byte(`{"resume": {"projects": {"mode": "mixed"}}}`))
	assert.Error(t, err)
}

func TestValidateFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resume.json")
	require.NoError(t, os.WriteFile(path, []byte(validDoc), 0644))
	assert.NoError(t, ValidateFile(path))

	err := ValidateFile(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "文档不存在")
}

func TestValidateJSONString_BrokenSchema(t *testing.T) {
	err := ValidateJSONString(`{"type": 12}`, `{}`)
	require.Error(t, err)

	var lerr *SchemaLoadError
	assert.ErrorAs(t, err, &lerr)
}
