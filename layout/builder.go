package layout

import (
	"fmt"

	"github.com/ByLCY/ragwrap/binding"
	"github.com/ByLCY/ragwrap/input"
)

// Build 按顺序为 batch 中的每个段落断行。
// data 非空时先对单词做 ${} 插值；没有单词的段落会被跳过并计入 Meta.Skipped。
func Build(batch *input.Batch, data any, opts BuildOptions) (*Result, error) {
	if batch == nil {
		return nil, fmt.Errorf("layout: 输入为空")
	}
	strategy := opts.Strategy
	if strategy == "" {
		strategy = StrategyOptimal
	}

	res := &Result{
		Paragraphs: make([]Paragraph, 0, len(batch.Paragraphs)),
		Meta: BatchMeta{
			Strategy: strategy,
			Stop:     string(batch.Stop),
			StopLine: batch.StopLine,
		},
	}
	for i, src := range batch.Paragraphs {
		res.Meta.DroppedLines += src.Dropped
		if src.Dropped > 0 {
			opts.warnf("第 %d 段（第 %d 行）超过每段行数上限，丢弃 %d 行", i+1, src.Line, src.Dropped)
		}

		words := binding.InterpolateWords(src.Words, data)
		if len(words) == 0 {
			res.Meta.Skipped++
			opts.warnf("第 %d 段（第 %d 行）没有单词，已跳过", i+1, src.Line)
			continue
		}

		para, err := layoutParagraph(words, src.Width, strategy, opts.Debug)
		if err != nil {
			return nil, fmt.Errorf("第 %d 段（第 %d 行）排版失败: %w", i+1, src.Line, err)
		}
		para.Index = len(res.Paragraphs)
		if para.Overflow {
			opts.warnf("第 %d 段（第 %d 行）存在宽度超过 %d 的单词，已单独成行", i+1, src.Line, src.Width)
		}
		res.Paragraphs = append(res.Paragraphs, *para)
	}
	return res, nil
}

func layoutParagraph(words []string, width int, strategy Strategy, debug DebugOptions) (*Paragraph, error) {
	var (
		para *Paragraph
		err  error
	)
	switch strategy {
	case StrategyOptimal:
		para, err = Solve(words, width)
	case StrategyGreedy:
		para, err = Greedy(words, width)
	default:
		return nil, fmt.Errorf("layout: 未知的断行策略 %q", strategy)
	}
	if err != nil {
		return nil, err
	}
	if !debug.Trials {
		para.Trials = nil
	}
	if debug.Baseline {
		greedy, err := Greedy(words, width)
		if err != nil {
			return nil, err
		}
		para.Debug = &ParagraphDebug{
			Words:          len(words),
			GreedyCost:     greedy.Cost,
			GreedyLines:    len(greedy.Lines),
			OptimalSavings: greedy.Cost - para.Cost,
		}
	}
	return para, nil
}

func (o BuildOptions) warnf(format string, args ...any) {
	if o.Logger == nil {
		return
	}
	o.Logger.Printf("warn: "+format, args...)
}
