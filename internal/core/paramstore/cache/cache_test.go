// Package cache 测试文件
package cache

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGet_Missing_ReturnsNotFound 测试未命中返回absent
func TestGet_Missing_ReturnsNotFound(t *testing.T) {
	// Arrange
	c := New(10, time.Minute)

	// Act
	data, ok := c.Get("strategies", "0xabc")

	// Assert
	assert.False(t, ok, "未写入的键应该未命中")
	assert.Nil(t, data, "未命中时数据应为nil")
}

// TestSetGet_RoundTrip 测试写入后可读取
func TestSetGet_RoundTrip(t *testing.T) {
	// Arrange
	c := New(10, time.Minute)
	payload := map[string]interface{}{"symbol": "ETH"}

	// Act
	c.Set("strategies", "0xabc", payload)
	data, ok := c.Get("strategies", "0xabc")

	// Assert
	require.True(t, ok, "写入后应该命中")
	assert.Equal(t, payload, data, "应该返回写入的负载")
}

// TestSet_OverCapacity_EvictsOldestInserted 测试容量溢出淘汰最早插入的条目
func TestSet_OverCapacity_EvictsOldestInserted(t *testing.T) {
	// Arrange
	const capacity = 5
	c := New(capacity, time.Minute)

	// Act：写入 capacity+1 个不同条目
	for i := 0; i <= capacity; i++ {
		c.Set("strategies", fmt.Sprintf("0x%064d", i), i)
	}

	// Assert：第一个条目被淘汰，其余条目保留
	_, ok := c.Get("strategies", fmt.Sprintf("0x%064d", 0))
	assert.False(t, ok, "最早插入的条目应该被淘汰")

	for i := 1; i <= capacity; i++ {
		_, ok := c.Get("strategies", fmt.Sprintf("0x%064d", i))
		assert.True(t, ok, "条目%d应该保留", i)
	}
	assert.Equal(t, capacity, c.Len(), "缓存大小应该等于容量")
}

// TestGet_AfterTTL_ReturnsNotFound 测试TTL过期后未命中
func TestGet_AfterTTL_ReturnsNotFound(t *testing.T) {
	// Arrange
	const ttl = time.Minute
	c := New(10, ttl)

	current := time.Unix(1700000000, 0)
	c.SetClock(func() time.Time { return current })
	c.Set("strategies", "0xabc", "payload")

	// Act：时间推进到 TTL+ε
	current = current.Add(ttl + time.Second)
	data, ok := c.Get("strategies", "0xabc")

	// Assert
	assert.False(t, ok, "超过TTL的条目应该未命中")
	assert.Nil(t, data)
	assert.Equal(t, 0, c.Len(), "过期条目应该被惰性淘汰")
}

// TestGet_WithinTTL_StillPresent 测试TTL内条目保持命中
func TestGet_WithinTTL_StillPresent(t *testing.T) {
	// Arrange
	const ttl = time.Minute
	c := New(10, ttl)

	current := time.Unix(1700000000, 0)
	c.SetClock(func() time.Time { return current })
	c.Set("strategies", "0xabc", "payload")

	// Act：时间推进但未超过TTL
	current = current.Add(ttl - time.Second)
	_, ok := c.Get("strategies", "0xabc")

	// Assert
	assert.True(t, ok, "TTL内的条目应该命中")
}

// TestSet_SameKey_RefreshesEntry 测试同键重复写入刷新条目
func TestSet_SameKey_RefreshesEntry(t *testing.T) {
	// Arrange
	c := New(10, time.Minute)
	c.Set("strategies", "0xabc", "v1")

	// Act
	c.Set("strategies", "0xabc", "v2")
	data, ok := c.Get("strategies", "0xabc")

	// Assert
	require.True(t, ok)
	assert.Equal(t, "v2", data, "应该返回最新写入的数据")
	assert.Equal(t, 1, c.Len(), "同键写入不应该产生重复条目")
}

// TestClear_RemovesAllEntries 测试清空缓存
func TestClear_RemovesAllEntries(t *testing.T) {
	// Arrange
	c := New(10, time.Minute)
	c.Set("strategies", "0xabc", 1)
	c.Set("pools", "0xdef", 2)

	// Act
	c.Clear()

	// Assert
	assert.Equal(t, 0, c.Len(), "清空后缓存应为空")
	_, ok := c.Get("strategies", "0xabc")
	assert.False(t, ok, "清空后不应该命中")
}

// TestGet_CollectionIsolation 测试不同集合之间互不干扰
func TestGet_CollectionIsolation(t *testing.T) {
	// Arrange
	c := New(10, time.Minute)
	c.Set("strategies", "0xabc", "strategy")

	// Act
	_, ok := c.Get("pools", "0xabc")

	// Assert
	assert.False(t, ok, "相同哈希在不同集合下不应该命中")
}
