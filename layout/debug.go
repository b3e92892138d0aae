package layout

import (
	"encoding/json"
	"os"
)

// EncodeJSON 将排版结果编码为缩进 JSON。
func EncodeJSON(res *Result) ([]byte, error) {
	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// WriteDebugJSON 将排版结果输出为 JSON 文件，便于比较各末行长度的代价。
func WriteDebugJSON(res *Result, path string) error {
	if res == nil {
		return nil
	}
	data, err := EncodeJSON(res)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
