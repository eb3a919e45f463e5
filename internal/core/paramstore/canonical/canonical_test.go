// Package canonical 测试文件
package canonical

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMarshal_SortsObjectKeys 测试对象键按字典序排序
func TestMarshal_SortsObjectKeys(t *testing.T) {
	// Arrange
	payload := map[string]interface{}{
		"zeta":  1,
		"alpha": 2,
		"mid":   3,
	}

	// Act
	data, err := Marshal(payload)

	// Assert
	require.NoError(t, err, "规范化序列化应该成功")
	assert.Equal(t, `{"alpha":2,"mid":3,"zeta":1}`, string(data), "对象键应该按字典序排序")
}

// TestMarshal_PreservesArrayOrder 测试数组保持元素顺序
func TestMarshal_PreservesArrayOrder(t *testing.T) {
	// Arrange
	payload := []interface{}{3, 1, 2}

	// Act
	data, err := Marshal(payload)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, `[3,1,2]`, string(data), "数组应该保持元素顺序")
}

// TestMarshal_NestedStructures 测试嵌套结构的规范化
func TestMarshal_NestedStructures(t *testing.T) {
	// Arrange
	payload := map[string]interface{}{
		"b": map[string]interface{}{"y": nil, "x": true},
		"a": []interface{}{map[string]interface{}{"k2": "v", "k1": 1.5}},
	}

	// Act
	data, err := Marshal(payload)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, `{"a":[{"k1":1.5,"k2":"v"}],"b":{"x":true,"y":null}}`, string(data), "嵌套对象的键也应该排序")
}

// TestHash_StructurallyEqualPayloads_SameHash 测试结构相等的负载产生相同哈希
func TestHash_StructurallyEqualPayloads_SameHash(t *testing.T) {
	// Arrange：字段相同但插入顺序不同
	p1 := map[string]interface{}{"symbol": "ETH", "leverage": 3}
	p2 := map[string]interface{}{"leverage": 3, "symbol": "ETH"}

	// Act
	h1, err1 := Hash(p1)
	h2, err2 := Hash(p2)

	// Assert
	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, h1, h2, "结构相等的负载应该产生相同哈希")
}

// TestHash_DifferentPayloads_DifferentHash 测试不同负载产生不同哈希
func TestHash_DifferentPayloads_DifferentHash(t *testing.T) {
	// Act
	h1, err1 := Hash(map[string]interface{}{"symbol": "ETH"})
	h2, err2 := Hash(map[string]interface{}{"symbol": "BTC"})

	// Assert
	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.NotEqual(t, h1, h2, "不同负载应该产生不同哈希")
}

// TestHash_Format 测试哈希格式为0x+64位小写十六进制
func TestHash_Format(t *testing.T) {
	// Act
	h, err := Hash(map[string]interface{}{"symbol": "ETH", "leverage": 3})

	// Assert
	require.NoError(t, err)
	assert.Len(t, h, HashHexLength, "哈希长度应该为66（0x+64位十六进制）")
	assert.True(t, strings.HasPrefix(h, "0x"), "哈希应该以0x开头")
	assert.Equal(t, strings.ToLower(h), h, "哈希应该全部为小写")
	assert.True(t, ValidHash(h), "哈希应该通过格式校验")
}

// TestValidHash_InvalidInputs_ReturnsFalse 测试非法哈希格式被拒绝
func TestValidHash_InvalidInputs_ReturnsFalse(t *testing.T) {
	// Assert
	assert.False(t, ValidHash(""), "空字符串应该被拒绝")
	assert.False(t, ValidHash("0x1234"), "长度不足应该被拒绝")
	assert.False(t, ValidHash(strings.Repeat("a", 66)), "缺少0x前缀应该被拒绝")
	assert.False(t, ValidHash("0x"+strings.Repeat("zz", 32)), "非十六进制字符应该被拒绝")
}

// TestMarshal_CyclicStructure_ReturnsSerializationError 测试循环引用快速失败
func TestMarshal_CyclicStructure_ReturnsSerializationError(t *testing.T) {
	// Arrange：构造自引用的map
	cyclic := map[string]interface{}{}
	cyclic["self"] = cyclic

	// Act
	data, err := Marshal(cyclic)

	// Assert
	assert.Nil(t, data, "循环引用不应该产生输出")
	assert.ErrorIs(t, err, ErrSerialization, "应该返回ErrSerialization错误")
}

// TestMarshal_UnsupportedType_ReturnsSerializationError 测试不可序列化类型快速失败
func TestMarshal_UnsupportedType_ReturnsSerializationError(t *testing.T) {
	// Act
	_, err := Marshal(map[string]interface{}{"fn": func() {}})

	// Assert
	assert.ErrorIs(t, err, ErrSerialization, "函数值应该返回ErrSerialization错误")
}

// TestUnmarshal_RoundTrip_BytesStable 测试解析后重新序列化字节不变
func TestUnmarshal_RoundTrip_BytesStable(t *testing.T) {
	// Arrange
	payload := map[string]interface{}{"leverage": 3, "symbol": "ETH", "weights": []interface{}{0.25, 0.75}}
	data, err := Marshal(payload)
	require.NoError(t, err)

	// Act
	value, err := Unmarshal(data)
	require.NoError(t, err)
	again, err := Marshal(value)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, string(data), string(again), "规范化字节应该在往返后保持不变")
}

// TestMarshal_StructPayload_Normalized 测试结构体负载经归一化后可序列化
func TestMarshal_StructPayload_Normalized(t *testing.T) {
	// Arrange
	type strategyParams struct {
		Symbol   string `json:"symbol"`
		Leverage int    `json:"leverage"`
	}

	// Act
	h1, err1 := Hash(strategyParams{Symbol: "ETH", Leverage: 3})
	h2, err2 := Hash(map[string]interface{}{"leverage": 3, "symbol": "ETH"})

	// Assert
	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, h2, h1, "结构体与等价map应该产生相同哈希")
}
