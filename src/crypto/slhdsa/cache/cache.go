// MIT License
//
// Copyright (c) 2024 sphinx-core
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// go/src/crypto/slhdsa/cache/cache.go
package cache

import "sync"

// DefaultCacheSize bounds the number of memoized tree nodes per call.
const DefaultCacheSize = 1 << 15

// Node kinds. FORS and XMSS trees use the same (height, index) coordinates, so
// the kind keeps their cache entries apart.
const (
	KindXMSS uint8 = iota
	KindFORS
)

// Key identifies one Merkle node by its structural position in the virtual
// hyper-tree. It deliberately mirrors the hash address fields so that two
// distinct nodes can never collide.
type Key struct {
	Kind   uint8
	Layer  uint32
	Tree   uint64
	Height uint32
	Index  uint32
}

// node is one entry of the intrusive LRU list.
type node struct {
	key   Key
	value []byte
	prev  *node
	next  *node
}

// NodeCache memoizes computed Merkle tree nodes during a single keygen, sign
// or verify call. It must not be shared between calls operating on different
// seeds; callers create a fresh instance per call. The mutex keeps it safe if
// subtree evaluation is ever parallelized within one call.
type NodeCache struct {
	mu       sync.Mutex
	capacity int
	cache    map[Key]*node
	head     *node
	tail     *node
}

// NewNodeCache initializes an empty cache holding at most capacity nodes.
func NewNodeCache(capacity int) *NodeCache {
	if capacity <= 0 {
		capacity = DefaultCacheSize
	}
	return &NodeCache{
		capacity: capacity,
		cache:    make(map[Key]*node),
	}
}

// Get retrieves a memoized node value.
func (l *NodeCache) Get(key Key) ([]byte, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if n, found := l.cache[key]; found {
		l.moveToFront(n)
		return n.value, true
	}
	return nil, false
}

// Put memoizes a node value, evicting the least recently used entry when the
// cache is full.
func (l *NodeCache) Put(key Key, value []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if n, found := l.cache[key]; found {
		n.value = value
		l.moveToFront(n)
		return
	}

	n := &node{key: key, value: value}
	l.cache[key] = n

	if l.head == nil {
		l.head = n
		l.tail = n
	} else {
		n.next = l.head
		l.head.prev = n
		l.head = n
	}

	if len(l.cache) > l.capacity {
		l.evict()
	}
}

// Len returns the number of memoized nodes.
func (l *NodeCache) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.cache)
}

// evict removes the least recently used entry.
func (l *NodeCache) evict() {
	if l.tail == nil {
		return
	}
	delete(l.cache, l.tail.key)
	l.tail = l.tail.prev
	if l.tail != nil {
		l.tail.next = nil
	} else {
		l.head = nil
	}
}

// moveToFront marks an entry as most recently used.
func (l *NodeCache) moveToFront(n *node) {
	if n == l.head {
		return
	}
	if n.prev != nil {
		n.prev.next = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	}
	if n == l.tail {
		l.tail = n.prev
	}
	n.prev = nil
	n.next = l.head
	l.head.prev = n
	l.head = n
}
