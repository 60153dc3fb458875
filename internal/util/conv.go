package util

import (
	"encoding/json"
	"strconv"
)

// ToScore 将提交的任意 JSON 值强转为分数。
// 前端可能传数字也可能传字符串，其余类型一律视为非法。
func ToScore(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	default:
		return 0, false
	}
}
