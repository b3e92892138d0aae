package textrenderer

import (
	"bytes"

	"github.com/ByLCY/ragwrap/layout"
	"github.com/ByLCY/ragwrap/renderer"
)

// Renderer 输出纯文本：段内各行以换行连接，段落之间插入一行 "==="，最后一段之后不加分隔。
type Renderer struct{}

var _ renderer.Renderer = Renderer{}

func (Renderer) Render(result *layout.Result) ([]byte, error) {
	if result == nil {
		return nil, renderer.ErrEmptyResult
	}
	var buf bytes.Buffer
	for i, p := range result.Paragraphs {
		if i > 0 {
			buf.WriteString(renderer.Separator)
			buf.WriteByte('\n')
		}
		for _, ln := range p.Lines {
			buf.WriteString(ln.Content)
			buf.WriteByte('\n')
		}
	}
	return buf.Bytes(), nil
}
