package renderer

import (
	"errors"

	"github.com/ByLCY/ragwrap/layout"
)

// Separator 是文本输出中段落之间的分隔行。
const Separator = "==="

// ErrEmptyResult 表示没有可渲染的排版结果。
var ErrEmptyResult = errors.New("renderer: 排版结果为空")

// Renderer 将排版结果输出为最终格式，例如纯文本或 PDF。
// Render 返回生成的字节数据以及可能的错误。
type Renderer interface {
	Render(result *layout.Result) ([]byte, error)
}

// RenderFunc 让普通函数满足 Renderer 接口。
type RenderFunc func(result *layout.Result) ([]byte, error)

func (f RenderFunc) Render(result *layout.Result) ([]byte, error) { return f(result) }
