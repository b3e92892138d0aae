package layout

// 该文件定义排版结果，供求解器、渲染器与调试 JSON 共用。

// Result 保存一批段落的排版结果。
type Result struct {
	Paragraphs []Paragraph `json:"paragraphs"`
	Meta       BatchMeta   `json:"meta"`
}

// BatchMeta 记录整批输入的处理情况。
type BatchMeta struct {
	Strategy     Strategy `json:"strategy"`
	Stop         string   `json:"stop"`                   // eof / terminator / malformed-header
	StopLine     int      `json:"stopLine,omitempty"`     // 触发停止的输入行号（1 起）
	Skipped      int      `json:"skipped,omitempty"`      // 没有单词而被跳过的段落数
	DroppedLines int      `json:"droppedLines,omitempty"` // 超出每段行数上限而被丢弃的输入行
}

// Paragraph 表示一个已经断好行的段落。
type Paragraph struct {
	Index    int        `json:"index"`
	Width    int        `json:"width"` // 行宽上限 L
	Lines    []TextLine `json:"lines"`
	Cost     int        `json:"cost"`               // 除末行外各行 (L-w)² 之和
	Tail     int        `json:"tail"`               // 末行单词数
	Overflow bool       `json:"overflow,omitempty"` // 存在宽度超过 L 的单词，已单独成行
	Strategy Strategy   `json:"strategy"`

	Trials []TailTrial      `json:"trials,omitempty"`
	Debug  *ParagraphDebug `json:"debug,omitempty"`
}

// Contents 返回各行的文本。
func (p *Paragraph) Contents() []string {
	out := make([]string, len(p.Lines))
	for i, ln := range p.Lines {
		out[i] = ln.Content
	}
	return out
}

// TextLine 表示排版后的一行：Start/End 为单词下标（闭区间）。
type TextLine struct {
	Content string `json:"content"`
	Width   int    `json:"width"`
	Start   int    `json:"start"`
	End     int    `json:"end"`
}

// TailTrial 记录一次末行长度尝试及其得到的最小代价。
type TailTrial struct {
	Tail int `json:"tail"`
	Cost int `json:"cost"`
}

// ParagraphDebug 仅在 BuildOptions.Debug 开启时输出。
type ParagraphDebug struct {
	Words          int `json:"words"`
	GreedyCost     int `json:"greedyCost"`
	GreedyLines    int `json:"greedyLines"`
	OptimalSavings int `json:"optimalSavings"` // GreedyCost - 最优代价
}
