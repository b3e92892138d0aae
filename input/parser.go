package input

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	batchLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Newline", Pattern: `\r?\n`},
		{Name: "Whitespace", Pattern: `[ \t\f\v\r]+`},
		{Name: "Word", Pattern: `[^\s\v]+`},
	})

	documentParser = participle.MustBuild[Document](
		participle.Lexer(batchLexer),
		participle.Elide("Whitespace"),
	)
)

// Document 是一批输入的语法树：由空行分隔的若干块组成。
type Document struct {
	Blocks []*Block `parser:"Newline* ( @@ Newline* )*"`
}

// Block 是一段连续的非空行。第一行应为行宽，其余为单词行。
type Block struct {
	Lines []*Line `parser:"@@+"`
}

// Line 是一行以空白分隔的单词（包括行宽行）。
type Line struct {
	Pos   lexer.Position `parser:"" json:"-"`
	Words []string       `parser:"@Word+ Newline"`
}

// ParseString 解析字符串形式的整批输入。
func ParseString(src string) (*Document, error) {
	// 每个单词行都以换行结束，缺失时补齐最后一行的换行。
	if src != "" && !strings.HasSuffix(src, "\n") {
		src += "\n"
	}
	doc, err := documentParser.ParseString("", src)
	if err != nil {
		return nil, fmt.Errorf("解析输入失败: %w", err)
	}
	return doc, nil
}
