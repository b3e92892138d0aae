package fonts

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-fonts/latin-modern/lmmono10regular"
)

// DefaultMono 是内置等宽字体的名称。
const DefaultMono = "lmmono10"

// Load 返回字体数据。name 可写为内置名称（"lmmono10"、"builtin:lmmono10"），
// 也可以是字体文件路径。等宽字体才能让 PDF 中的行宽与字符数一一对应。
func Load(name string) ([]byte, error) {
	key := strings.TrimPrefix(strings.TrimSpace(name), "builtin:")
	if key == "" || key == DefaultMono {
		return lmmono10regular.TTF, nil
	}
	data, err := os.ReadFile(key)
	if err != nil {
		return nil, fmt.Errorf("读取字体 %s 失败: %w", name, err)
	}
	return data, nil
}
