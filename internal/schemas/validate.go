// Package schemas 用 JSON Schema 校验命令行读入的简历文档。
package schemas

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed resume.schema.json
var resumeSchema string

// ResumeSchema 返回内置的输入文档 schema。
func ResumeSchema() string { return resumeSchema }

// ValidationError 汇总 schema 校验失败的字段。
type ValidationError struct {
	Errors []FieldError
}

// FieldError 是单个字段的校验错误。
type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("文档校验失败:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// SchemaLoadError 表示 schema 本身无法加载或解析。
type SchemaLoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("加载 schema %s 失败: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("加载 schema %s 失败: %s", e.Path, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

// ValidateDocument 用内置 schema 校验输入文档。
func ValidateDocument(data []byte) error {
	return validate("(内置 schema)", gojsonschema.NewStringLoader(resumeSchema), gojsonschema.NewBytesLoader(data))
}

// ValidateFile 读取并校验输入文档文件。
func ValidateFile(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("解析路径失败: %w", err)
	}
	if _, err := os.Stat(abs); os.IsNotExist(err) {
		return fmt.Errorf("文档不存在: %s", abs)
	}
	return validate("(内置 schema)", gojsonschema.NewStringLoader(resumeSchema), gojsonschema.NewReferenceLoader("file://"+abs))
}

// ValidateJSONString 用给定 schema 文本校验 JSON 文本。
func ValidateJSONString(schemaContent, jsonContent string) error {
	return validate("(字符串 schema)", gojsonschema.NewStringLoader(schemaContent), gojsonschema.NewStringLoader(jsonContent))
}

func validate(schemaPath string, schema, doc gojsonschema.JSONLoader) error {
	result, err := gojsonschema.Validate(schema, doc)
	if err != nil {
		return &SchemaLoadError{Path: schemaPath, Message: "校验前加载失败", Cause: err}
	}
	if result.Valid() {
		return nil
	}
	out := &ValidationError{Errors: make([]FieldError, 0, len(result.Errors()))}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		out.Errors = append(out.Errors, FieldError{Field: field, Message: desc.Description()})
	}
	return out
}
