package renderer

import (
	"fmt"

	"github.com/ByLCY/cvflow/layout"
)

// Meta 是写入导出文档的元数据。
type Meta struct {
	Title    string
	Subject  string
	Keywords []string
	Author   string
	Creator  string
}

// PDFRenderer 将分页结果输出为可打印文档，返回生成的二进制数据。
// 渲染器只绘制已排好的文本行，不得重新折行或测量。
type PDFRenderer interface {
	RenderPDF(pages []layout.Page, meta Meta) ([]byte, error)
}

// PreviewRenderer 将画布排版输出为预览图（纵向无界的单页）。
type PreviewRenderer interface {
	RenderPreview(plan *layout.Plan) ([]byte, error)
}

// RenderError 包装渲染阶段的失败。
type RenderError struct {
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("渲染失败: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("渲染失败: %s", e.Message)
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}
