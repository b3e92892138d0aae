package previewrenderer

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ByLCY/ragwrap/layout"
	"github.com/ByLCY/ragwrap/renderer"
)

// Renderer 在终端中预览排版结果：每段画一个宽度恰为 L 的边框，
// 便于直观地看到每行右侧的空白（即 raggedness 的来源）。
type Renderer struct {
	titleStyle lipgloss.Style
	boxStyle   lipgloss.Style
	warnStyle  lipgloss.Style
}

var _ renderer.Renderer = (*Renderer)(nil)

// NewRenderer 创建使用默认配色的预览渲染器。
func NewRenderer() *Renderer {
	return &Renderer{
		titleStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")),
		boxStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("241")).
			Padding(0, 1),
		warnStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
	}
}

func (r *Renderer) Render(result *layout.Result) ([]byte, error) {
	if result == nil {
		return nil, renderer.ErrEmptyResult
	}
	blocks := make([]string, 0, len(result.Paragraphs))
	for _, p := range result.Paragraphs {
		blocks = append(blocks, r.paragraph(p))
	}
	out := strings.Join(blocks, "\n\n")
	if out != "" {
		out += "\n"
	}
	return []byte(out), nil
}

func (r *Renderer) paragraph(p layout.Paragraph) string {
	header := fmt.Sprintf("#%d  L=%d  cost=%d  tail=%d  %s", p.Index+1, p.Width, p.Cost, p.Tail, p.Strategy)
	parts := []string{r.titleStyle.Render(header)}
	if p.Overflow {
		parts = append(parts, r.warnStyle.Render("overflow: a word is wider than L"))
	}

	inner := p.Width
	for _, ln := range p.Lines {
		if ln.Width > inner {
			inner = ln.Width
		}
	}
	body := strings.Join(p.Contents(), "\n")
	// Width 包含左右各 1 列内边距，不含边框。
	parts = append(parts, r.boxStyle.Width(inner+2).Render(body))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
