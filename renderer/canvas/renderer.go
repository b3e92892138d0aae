package canvasrenderer

import (
	"bytes"
	"fmt"
	"image/color"
	"sync"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"

	"github.com/ByLCY/ragwrap/fonts"
	"github.com/ByLCY/ragwrap/layout"
	"github.com/ByLCY/ragwrap/renderer"
)

const (
	a4Width   = 210.0
	a4Height  = 297.0
	ruleWidth = 0.2
)

var (
	textColor     = color.RGBA{R: 30, G: 30, B: 30, A: 255}
	overflowColor = color.RGBA{R: 200, G: 40, B: 40, A: 255}
	guideColor    = canvas.Hex("#c8d4f0")
	ruleColor     = canvas.Hex("#999999")
)

// Options 配置 PDF 输出。长度类字段保留作者书写的单位，渲染时统一换算为 mm。
type Options struct {
	PageWidth  float64 // mm，<=0 时使用 A4
	PageHeight float64 // mm，<=0 时使用 A4
	Margin     layout.Length
	FontSize   layout.Length
	LineHeight layout.LineHeightSpec
	Font       string // 见 fonts.Load，默认内置等宽字体
	Title      string
	Guides     bool // 在每行右侧画出第 L 列的参考线
}

// Renderer 使用 github.com/tdewolff/canvas 把排版结果绘制为 PDF。
// 每个字符占一列，等宽字体下 PDF 中的行宽与 Paragraph 中的宽度一致。
type Renderer struct {
	opts Options

	fontMu sync.Mutex
	family *canvas.FontFamily
}

var _ renderer.Renderer = (*Renderer)(nil)

// NewRenderer 创建 PDF 渲染器，未设置的选项使用默认值（A4、18mm 边距、10pt、1.4 倍行高）。
func NewRenderer(opts Options) *Renderer {
	if opts.PageWidth <= 0 || opts.PageHeight <= 0 {
		opts.PageWidth, opts.PageHeight = a4Width, a4Height
	}
	if opts.Margin.IsZero() {
		opts.Margin = layout.Length{Value: 18, Unit: layout.UnitMM}
	}
	if opts.FontSize.IsZero() {
		opts.FontSize = layout.Length{Value: 10, Unit: layout.UnitPT}
	}
	if opts.LineHeight.Kind == layout.LineHeightFactor && opts.LineHeight.Factor <= 0 {
		opts.LineHeight.Factor = 1.4
	}
	if opts.Font == "" {
		opts.Font = fonts.DefaultMono
	}
	return &Renderer{opts: opts}
}

// Render 将排版结果渲染为 PDF 字节切片。
func (r *Renderer) Render(result *layout.Result) ([]byte, error) {
	if result == nil || len(result.Paragraphs) == 0 {
		return nil, renderer.ErrEmptyResult
	}
	family, err := r.fontFamily()
	if err != nil {
		return nil, err
	}
	sizePt := r.opts.FontSize.ToPT()
	face := family.Face(sizePt, textColor, canvas.FontRegular, canvas.FontNormal)
	overflowFace := family.Face(sizePt, overflowColor, canvas.FontRegular, canvas.FontNormal)

	lineHeight := r.opts.LineHeight.ResolveMM(r.opts.FontSize)
	pages := r.paginate(result, lineHeight, face.TextWidth("M"))

	w, h := r.opts.PageWidth, r.opts.PageHeight
	var buf bytes.Buffer
	writer := pdf.New(&buf, w, h, nil)
	writer.SetInfo(r.opts.Title, "", "", "", "ragwrap")
	for i, pg := range pages {
		if i > 0 {
			writer.NewPage(w, h)
		}
		c := canvas.New(w, h)
		ctx := canvas.NewContext(c)
		ctx.SetCoordSystem(canvas.CartesianIV) // 使坐标与排版保持左上角为原点
		r.drawPage(ctx, pg, face, overflowFace)
		c.RenderTo(writer)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("写入 PDF 失败: %w", err)
	}
	return buf.Bytes(), nil
}

// placedLine 是已经确定页面坐标（mm）的一行文本，y 为行顶部。
type placedLine struct {
	x, y     float64
	height   float64
	text     string
	overflow bool
	guideX   float64
}

// placedRule 是段落之间的分隔线。
type placedRule struct {
	x, y, width float64
}

type pdfPage struct {
	lines []placedLine
	rules []placedRule
}

// paginate 自上而下放置每一行，放不下时换页。段落之间占用一行高度画分隔线。
func (r *Renderer) paginate(result *layout.Result, lineHeight, advance float64) []pdfPage {
	margin := r.opts.Margin.ToMM()
	top, bottom := margin, r.opts.PageHeight-margin
	if lineHeight <= 0 {
		lineHeight = r.opts.FontSize.ToMM()
	}

	pages := []pdfPage{{}}
	cursor := top
	reserve := func() *pdfPage {
		if cursor+lineHeight > bottom && cursor > top {
			pages = append(pages, pdfPage{})
			cursor = top
		}
		return &pages[len(pages)-1]
	}

	for i, p := range result.Paragraphs {
		columns := float64(p.Width)
		if i > 0 {
			pg := reserve()
			pg.rules = append(pg.rules, placedRule{x: margin, y: cursor + lineHeight/2, width: advance * columns})
			cursor += lineHeight
		}
		for _, ln := range p.Lines {
			pg := reserve()
			pg.lines = append(pg.lines, placedLine{
				x:        margin,
				y:        cursor,
				height:   lineHeight,
				text:     ln.Content,
				overflow: ln.Width > p.Width,
				guideX:   margin + advance*columns,
			})
			cursor += lineHeight
		}
	}
	return pages
}

func (r *Renderer) drawPage(ctx *canvas.Context, pg pdfPage, face, overflowFace *canvas.FontFace) {
	if r.opts.Guides {
		ctx.SetStrokeColor(guideColor)
		ctx.SetStrokeWidth(ruleWidth)
		for _, ln := range pg.lines {
			drawSegment(ctx, ln.guideX, ln.y, ln.guideX, ln.y+ln.height)
		}
	}

	ctx.SetStrokeColor(ruleColor)
	ctx.SetStrokeWidth(ruleWidth)
	for _, rule := range pg.rules {
		drawSegment(ctx, rule.x, rule.y, rule.x+rule.width, rule.y)
	}

	ascent := face.Metrics().Ascent
	for _, ln := range pg.lines {
		f := face
		if ln.overflow {
			f = overflowFace
		}
		// 基线位置：行顶部加上字体上升部
		ctx.DrawText(ln.x, ln.y+ascent, canvas.NewTextLine(f, ln.text, canvas.Left))
	}
}

func drawSegment(ctx *canvas.Context, x1, y1, x2, y2 float64) {
	p := &canvas.Path{}
	p.MoveTo(0, 0)
	p.LineTo(x2-x1, y2-y1)
	ctx.DrawPath(x1, y1, p)
}

func (r *Renderer) fontFamily() (*canvas.FontFamily, error) {
	r.fontMu.Lock()
	defer r.fontMu.Unlock()
	if r.family != nil {
		return r.family, nil
	}
	data, err := fonts.Load(r.opts.Font)
	if err != nil {
		return nil, err
	}
	family := canvas.NewFontFamily("ragwrap-mono")
	if err := family.LoadFont(data, 0, canvas.FontRegular); err != nil {
		return nil, fmt.Errorf("加载字体 %s 失败: %w", r.opts.Font, err)
	}
	r.family = family
	return family, nil
}
