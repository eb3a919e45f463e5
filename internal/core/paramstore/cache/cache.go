// Package cache 实现参数存储的有界TTL内存缓存
//
// 🎯 **核心职责**：
// - 缓存 (collection, hash) → 负载 的映射
// - 容量上限：达到容量时淘汰最早插入的条目（按插入顺序近似LRU）
// - TTL过期：访问时惰性淘汰超过生存时间的条目
//
// 💡 **设计特点**：
// - 并发安全：使用 RWMutex 保护共享状态（多线程移植要求）
// - 插入顺序淘汰：条目生命周期短，按插入顺序淘汰已经足够
// - 可注入时钟：便于测试TTL语义
package cache

import (
	"container/list"
	"sync"
	"time"
)

// entry 缓存条目
type entry struct {
	key        string
	data       interface{}
	insertedAt time.Time
}

// Cache 有界TTL内存缓存
type Cache struct {
	mu       sync.RWMutex
	capacity int
	ttl      time.Duration
	items    map[string]*list.Element // key → 插入顺序链表节点
	order    *list.List               // 插入顺序，队首为最旧
	now      func() time.Time         // 可注入时钟，默认time.Now
}

// New 创建缓存实例
//
// 参数：
//   - capacity: 容量上限（条目数），必须为正
//   - ttl: 条目生存时间，必须为正
func New(capacity int, ttl time.Duration) *Cache {
	return &Cache{
		capacity: capacity,
		ttl:      ttl,
		items:    make(map[string]*list.Element),
		order:    list.New(),
		now:      time.Now,
	}
}

// cacheKey 构建缓存键
func cacheKey(collection, hash string) string {
	return collection + "/" + hash
}

// Get 获取缓存条目
// 条目超过TTL时惰性淘汰并返回未命中
func (c *Cache) Get(collection, hash string) (interface{}, bool) {
	key := cacheKey(collection, hash)

	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.items[key]
	if !ok {
		return nil, false
	}

	ent := elem.Value.(*entry)
	if c.now().Sub(ent.insertedAt) > c.ttl {
		// 已过期：淘汰并按未命中处理
		c.removeElement(elem)
		return nil, false
	}

	return ent.data, true
}

// Set 写入缓存条目
// 缓存已满时先淘汰最早插入的条目；同键重复写入刷新数据与插入时间
func (c *Cache) Set(collection, hash string, data interface{}) {
	key := cacheKey(collection, hash)

	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		// 同键更新：移到队尾并刷新时间戳
		ent := elem.Value.(*entry)
		ent.data = data
		ent.insertedAt = c.now()
		c.order.MoveToBack(elem)
		return
	}

	if c.order.Len() >= c.capacity {
		// 淘汰最早插入的条目
		if oldest := c.order.Front(); oldest != nil {
			c.removeElement(oldest)
		}
	}

	elem := c.order.PushBack(&entry{
		key:        key,
		data:       data,
		insertedAt: c.now(),
	})
	c.items[key] = elem
}

// Clear 清空缓存
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]*list.Element)
	c.order.Init()
}

// Len 返回当前条目数
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.order.Len()
}

// SetClock 注入时钟（仅测试使用）
func (c *Cache) SetClock(now func() time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = now
}

// removeElement 移除链表节点及其索引
// 调用方必须持有写锁
func (c *Cache) removeElement(elem *list.Element) {
	ent := elem.Value.(*entry)
	delete(c.items, ent.key)
	c.order.Remove(elem)
}
