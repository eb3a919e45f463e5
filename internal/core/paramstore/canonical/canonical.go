// Package canonical 实现参数负载的规范化序列化与内容哈希
//
// 🎯 **核心职责**：
// - 规范化：将任意结构化负载确定性地序列化为字节串
// - 内容哈希：对规范化字节计算SHA-256摘要
//
// 💡 **设计特点**：
// - 确定性：对象键按字典序排序，结构相等的负载无论构造顺序如何，
//   产生完全相同的字节与哈希
// - 负载无关：基于通用标签值模型（null/bool/number/string/array/object），
//   不绑定任何业务类型
// - 快速失败：循环引用等无法序列化的输入立即返回 ErrSerialization
package canonical

import (
	"bytes"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// HashHexLength 哈希的十六进制字符串长度（0x + 64位小写十六进制）
const HashHexLength = 2 + 64

// ErrSerialization 负载无法规范化（如包含循环引用）
var ErrSerialization = errors.New("负载无法规范化序列化")

// Marshal 将负载规范化序列化为字节串
//
// 🎯 **核心流程**：
// 1. 通过encoding/json归一化为通用标签值模型（循环引用在此处被检出）
// 2. 数字以json.Number保留其自然文本形式
// 3. 递归序列化，对象键按字典序排序，数组保持元素顺序
//
// 输出为紧凑JSON（无多余空白），即落盘与哈希共用的字节形式。
func Marshal(payload interface{}) ([]byte, error) {
	normalized, err := normalize(payload)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := writeValue(&buf, normalized); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Hash 计算负载的内容哈希
// 返回 0x 前缀的64位小写十六进制字符串（32字节SHA-256摘要）
//
// 纯函数：结构相等的负载始终产生相同哈希，与构造顺序无关
func Hash(payload interface{}) (string, error) {
	data, err := Marshal(payload)
	if err != nil {
		return "", err
	}
	return HashBytes(data), nil
}

// HashBytes 对已规范化的字节计算内容哈希
func HashBytes(data []byte) string {
	digest := sha256.Sum256(data)
	return hexutil.Encode(digest[:])
}

// ValidHash 校验哈希格式（0x + 64位十六进制，32字节摘要）
func ValidHash(hash string) bool {
	if len(hash) != HashHexLength {
		return false
	}
	raw, err := hexutil.Decode(hash)
	if err != nil {
		return false
	}
	return len(raw) == sha256.Size
}

// Unmarshal 将规范化字节解析回通用标签值模型
// 数字以json.Number表示，保证再次Marshal时字节不变
func Unmarshal(data []byte) (interface{}, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	var value interface{}
	if err := decoder.Decode(&value); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSerialization, err)
	}
	return value, nil
}

// normalize 将任意负载归一化为通用标签值模型
// encoding/json负责检出循环引用与不可序列化类型
func normalize(payload interface{}) (interface{}, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSerialization, err)
	}
	return Unmarshal(raw)
}

// writeValue 递归写入规范化形式
func writeValue(buf *bytes.Buffer, value interface{}) error {
	switch v := value.(type) {
	case nil:
		buf.WriteString("null")
		return nil

	case bool:
		if v {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
		return nil

	case json.Number:
		buf.WriteString(v.String())
		return nil

	case string:
		encoded, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrSerialization, err)
		}
		buf.Write(encoded)
		return nil

	case []interface{}:
		buf.WriteByte('[')
		for i, elem := range v {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeValue(buf, elem); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil

	case map[string]interface{}:
		// 对象键按字典序排序，保证确定性
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		buf.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			encodedKey, err := json.Marshal(k)
			if err != nil {
				return fmt.Errorf("%w: %v", ErrSerialization, err)
			}
			buf.Write(encodedKey)
			buf.WriteByte(':')
			if err := writeValue(buf, v[k]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
		return nil

	default:
		// normalize之后不应出现其他类型
		return fmt.Errorf("%w: 未知类型 %T", ErrSerialization, value)
	}
}
