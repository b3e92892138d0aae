package input

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// MaxLinesPerParagraph 是每个段落最多接受的单词行数。
const MaxLinesPerParagraph = 250

// MaxWidth 是行宽 L 的上限：(L-w)² 的累加必须留在 int64 范围内。
const MaxWidth = math.MaxInt32

// StopReason 说明整批输入在何处结束。
type StopReason string

const (
	StopEOF             StopReason = "eof"              // 输入自然结束
	StopTerminator      StopReason = "terminator"       // 遇到行宽 0
	StopMalformedHeader StopReason = "malformed-header" // 行宽行不是单个 0..MaxWidth 的整数
)

// Paragraph 是一个待排版的段落：行宽上限与扁平化后的单词序列。
type Paragraph struct {
	Width   int
	Words   []string
	Line    int // 行宽行在输入中的行号（1 起）
	Dropped int // 超出每段行数上限被丢弃的单词行数
}

// Batch 是按顺序读取到的段落，以及读取停止的原因。
type Batch struct {
	Paragraphs []Paragraph
	Stop       StopReason
	StopLine   int
}

// Read 使用默认的每段行数上限读取整批输入，见 ReadLimit。
func Read(r io.Reader) (*Batch, error) {
	return ReadLimit(r, MaxLinesPerParagraph)
}

// ReadLimit 逐行读取 r，每读完一块（遇到空行或输入结束）就解析并整理这一块。
// 块的首行一读到就检查：行宽为 0 或不合法时立即返回，不再从 r 读取任何数据，
// 因此在保持打开的管道上也不会等待 EOF。maxLines <= 0 表示不限制每段的单词行数。
func ReadLimit(r io.Reader, maxLines int) (*Batch, error) {
	c := &collector{batch: &Batch{Stop: StopEOF}, maxLines: maxLines}
	br := bufio.NewReader(r)

	var (
		block  strings.Builder
		start  int
		lineNo int
	)
	// flush 解析已缓存的块，返回 false 表示整批已经结束。
	flush := func() (bool, error) {
		if block.Len() == 0 {
			return true, nil
		}
		doc, err := ParseString(block.String())
		block.Reset()
		if err != nil {
			return false, err
		}
		for _, b := range doc.Blocks {
			for _, ln := range b.Lines {
				ln.Pos.Line += start - 1
			}
			if !c.add(b) {
				return false, nil
			}
		}
		return true, nil
	}

	for {
		line, err := br.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, fmt.Errorf("读取输入失败: %w", err)
		}
		if line != "" {
			lineNo++
			if strings.TrimSpace(line) == "" {
				more, perr := flush()
				if perr != nil {
					return nil, perr
				}
				if !more {
					return c.batch, nil
				}
			} else {
				if block.Len() == 0 {
					start = lineNo
					head, perr := ParseString(line)
					if perr != nil {
						return nil, perr
					}
					if len(head.Blocks) > 0 {
						if _, ok := c.header(head.Blocks[0].Lines[0].Words, lineNo); !ok {
							return c.batch, nil
						}
					}
				}
				block.WriteString(line)
			}
		}
		if err == io.EOF {
			break
		}
	}
	if _, err := flush(); err != nil {
		return nil, err
	}
	return c.batch, nil
}

// Collect 把已经完整解析的语法树整理为段落序列。
//
// 每块的首行必须恰好是一个整数：为 0 时整批结束（后续段落全部忽略）；
// 无法解析、为负数或超过 MaxWidth 时视为输入结束，已读取的段落照常保留。
// maxLines <= 0 表示不限制每段的单词行数。
func Collect(doc *Document, maxLines int) *Batch {
	c := &collector{batch: &Batch{Stop: StopEOF}, maxLines: maxLines}
	if doc == nil {
		return c.batch
	}
	for _, block := range doc.Blocks {
		if !c.add(block) {
			break
		}
	}
	return c.batch
}

type collector struct {
	batch    *Batch
	maxLines int
}

// header 检查行宽行，返回 false 时已记录停止原因。
func (c *collector) header(words []string, line int) (int, bool) {
	width, ok := parseWidth(words)
	switch {
	case !ok:
		c.batch.Stop, c.batch.StopLine = StopMalformedHeader, line
		return 0, false
	case width == 0:
		c.batch.Stop, c.batch.StopLine = StopTerminator, line
		return 0, false
	}
	return width, true
}

// add 整理一块，返回 false 表示整批到此结束。
func (c *collector) add(block *Block) bool {
	if block == nil || len(block.Lines) == 0 {
		return true
	}
	head := block.Lines[0]
	width, ok := c.header(head.Words, head.Pos.Line)
	if !ok {
		return false
	}

	body := block.Lines[1:]
	p := Paragraph{Width: width, Line: head.Pos.Line}
	if c.maxLines > 0 && len(body) > c.maxLines {
		p.Dropped = len(body) - c.maxLines
		body = body[:c.maxLines]
	}
	for _, ln := range body {
		p.Words = append(p.Words, ln.Words...)
	}
	c.batch.Paragraphs = append(c.batch.Paragraphs, p)
	return true
}

func parseWidth(words []string) (int, bool) {
	if len(words) != 1 {
		return 0, false
	}
	v, err := strconv.Atoi(words[0])
	if err != nil || v < 0 || v > MaxWidth {
		return 0, false
	}
	return v, true
}
