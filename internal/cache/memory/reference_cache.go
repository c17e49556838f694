package memory

import (
	"container/list"
	"context"
	"sync"
	"time"

	"github.com/Gunvolt24/ticketflow/internal/ports"
	"github.com/Gunvolt24/ticketflow/pkg/metrics"
)

// Проверка, что ReferenceCache удовлетворяет интерфейсу ReferenceCache.
var _ ports.ReferenceCache = (*ReferenceCache)(nil)

type entry struct {
	ref       string
	expiresAt time.Time
}

// ReferenceCache — LRU с TTL для недавно сохранённых номеров заказа.
// Отсекает повторные доставки без обращения к БД; источник истины — уникальный ключ в таблице.
type ReferenceCache struct {
	capacity int
	ttl      time.Duration
	now      func() time.Time

	ll    *list.List
	index map[string]*list.Element

	mu sync.Mutex
}

// NewReferenceCache — ttl <= 0 отключает истечение по времени.
func NewReferenceCache(capacity int, ttl time.Duration) *ReferenceCache {
	if capacity <= 0 {
		capacity = 1
	}
	return &ReferenceCache{
		capacity: capacity,
		ttl:      ttl,
		now:      time.Now,
		ll:       list.New(),
		index:    make(map[string]*list.Element),
	}
}

// Contains — был ли номер недавно сохранён; попадание продлевает срок жизни записи.
func (c *ReferenceCache) Contains(_ context.Context, ref string) bool {
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.index[ref]
	if !ok {
		metrics.CacheOps.WithLabelValues("miss").Inc()
		return false
	}
	ent := elem.Value.(*entry)
	if c.isExpired(ent, now) {
		metrics.CacheOps.WithLabelValues("expired").Inc()
		c.removeElement(elem)
		metrics.CacheSize.Set(float64(len(c.index)))
		return false
	}
	c.ll.MoveToFront(elem)
	ent.expiresAt = c.expiryFrom(now)

	metrics.CacheOps.WithLabelValues("hit").Inc()
	return true
}

// Add запоминает номер заказа; пустой номер игнорируется.
func (c *ReferenceCache) Add(_ context.Context, ref string) {
	if ref == "" {
		return
	}
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.index[ref]; ok {
		elem.Value.(*entry).expiresAt = c.expiryFrom(now)
		c.ll.MoveToFront(elem)
		return
	}

	c.pruneExpiredFromBack(now)

	c.index[ref] = c.ll.PushFront(&entry{ref: ref, expiresAt: c.expiryFrom(now)})
	if c.ll.Len() > c.capacity {
		c.evictLRU()
	}
	metrics.CacheSize.Set(float64(len(c.index)))
}

// Len — число записей (включая ещё не вычищенные просроченные).
func (c *ReferenceCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ll.Len()
}

// ------вспомогательные функции------

func (c *ReferenceCache) evictLRU() {
	if back := c.ll.Back(); back != nil {
		c.removeElement(back)
		metrics.CacheOps.WithLabelValues("evicted").Inc()
	}
}

func (c *ReferenceCache) removeElement(elem *list.Element) {
	delete(c.index, elem.Value.(*entry).ref)
	c.ll.Remove(elem)
}

func (c *ReferenceCache) isExpired(ent *entry, now time.Time) bool {
	if c.ttl <= 0 {
		return false
	}
	return now.After(ent.expiresAt)
}

func (c *ReferenceCache) expiryFrom(now time.Time) time.Time {
	if c.ttl <= 0 {
		return time.Time{}
	}
	return now.Add(c.ttl)
}

// pruneExpiredFromBack — хвост списка самый старый; чистим, пока встречаются просроченные.
func (c *ReferenceCache) pruneExpiredFromBack(now time.Time) {
	if c.ttl <= 0 {
		return
	}
	for back := c.ll.Back(); back != nil; back = c.ll.Back() {
		if !now.After(back.Value.(*entry).expiresAt) {
			return
		}
		c.removeElement(back)
		metrics.CacheOps.WithLabelValues("expired").Inc()
	}
}
