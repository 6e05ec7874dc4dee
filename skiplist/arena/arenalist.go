// Package arena 以節點池實作與 indexable 相同的 RankList 語意
// forward「指標」是 arena 內的整數索引而非記憶體位址，
// 節點的生命週期完全由串列本身持有：移除的節點進入 free list 等待重用，
// Reset 則一次回收整座 arena，沒有任何逐節點的參考計數
package arena

import (
	"math"
	"math/rand"

	"github.com/Hakuto4838/RankList.git/skiplist"
)

const probability = 0.5

// ref 是 arena 內的節點索引；tailRef 代表尾端哨兵（比任何值都大）
type ref = int32

const (
	headRef ref = 0
	tailRef ref = -1
)

type aNode struct {
	value skiplist.V
	next  []ref
	width []int
}

// ArenaList 與 indexable.IndexableList 遵守相同契約：
// 固定 maxLevels、允許重複值、Remove 針對 level-0 第一個相符節點
type ArenaList struct {
	nodes     []aNode // nodes[0] 永遠是 head 哨兵
	free      []ref
	maxLevels int
	size      int
	rand      *rand.Rand
	chain     []ref
	steps     []int
}

func New(expectedSize int, seed int64) *ArenaList {
	maxLevels := 1
	if expectedSize > 1 {
		if lv := int(math.Log2(float64(expectedSize))); lv > 1 {
			maxLevels = lv
		}
	}

	if expectedSize < 0 {
		expectedSize = 0
	}
	sl := &ArenaList{
		nodes:     make([]aNode, 1, expectedSize+1),
		maxLevels: maxLevels,
		rand:      rand.New(rand.NewSource(seed)),
		chain:     make([]ref, maxLevels),
		steps:     make([]int, maxLevels),
	}
	sl.initHead()
	return sl
}

func (sl *ArenaList) initHead() {
	head := &sl.nodes[headRef]
	head.value = math.NaN()
	head.next = make([]ref, sl.maxLevels)
	head.width = make([]int, sl.maxLevels)
	for i := 0; i < sl.maxLevels; i++ {
		head.next[i] = tailRef
		head.width[i] = 1
	}
}

// alloc 優先重用 free list 裡的節點，保留舊 slice 的容量
func (sl *ArenaList) alloc(value skiplist.V, levels int) ref {
	if n := len(sl.free); n > 0 {
		r := sl.free[n-1]
		sl.free = sl.free[:n-1]
		nd := &sl.nodes[r]
		nd.value = value
		if cap(nd.next) >= levels {
			nd.next = nd.next[:levels]
			nd.width = nd.width[:levels]
		} else {
			nd.next = make([]ref, levels)
			nd.width = make([]int, levels)
		}
		return r
	}
	sl.nodes = append(sl.nodes, aNode{
		value: value,
		next:  make([]ref, levels),
		width: make([]int, levels),
	})
	return ref(len(sl.nodes) - 1)
}

func (sl *ArenaList) lessThan(r ref, value skiplist.V) bool {
	return r != tailRef && sl.nodes[r].value < value
}

func (sl *ArenaList) randomLevel() int {
	lvl := 1
	for lvl < sl.maxLevels && sl.rand.Float64() < probability {
		lvl++
	}
	return lvl
}

func (sl *ArenaList) Insert(value skiplist.V) bool {
	node := headRef
	for level := sl.maxLevels - 1; level >= 0; level-- {
		sl.steps[level] = 0
		for sl.lessThan(sl.nodes[node].next[level], value) {
			sl.steps[level] += sl.nodes[node].width[level]
			node = sl.nodes[node].next[level]
		}
		sl.chain[level] = node
	}

	levels := sl.randomLevel()
	// alloc 可能搬移底層陣列，必須在取用節點欄位之前完成
	nn := sl.alloc(value, levels)

	steps := 0
	for level := 0; level < levels; level++ {
		prev := sl.chain[level]
		sl.nodes[nn].next[level] = sl.nodes[prev].next[level]
		sl.nodes[prev].next[level] = nn
		sl.nodes[nn].width[level] = sl.nodes[prev].width[level] - steps
		sl.nodes[prev].width[level] = steps + 1
		steps += sl.steps[level]
	}
	for level := levels; level < sl.maxLevels; level++ {
		sl.nodes[sl.chain[level]].width[level]++
	}

	sl.size++
	return true
}

func (sl *ArenaList) Remove(value skiplist.V) bool {
	node := headRef
	for level := sl.maxLevels - 1; level >= 0; level-- {
		for sl.lessThan(sl.nodes[node].next[level], value) {
			node = sl.nodes[node].next[level]
		}
		sl.chain[level] = node
	}

	target := sl.nodes[sl.chain[0]].next[0]
	if target == tailRef || sl.nodes[target].value != value {
		return false
	}

	levels := len(sl.nodes[target].next)
	for level := 0; level < levels; level++ {
		prev := sl.chain[level]
		sl.nodes[prev].width[level] += sl.nodes[target].width[level] - 1
		sl.nodes[prev].next[level] = sl.nodes[target].next[level]
	}
	for level := levels; level < sl.maxLevels; level++ {
		sl.nodes[sl.chain[level]].width[level]--
	}

	sl.free = append(sl.free, target)
	sl.size--
	return true
}

func (sl *ArenaList) Get(rank int) (skiplist.V, bool) {
	if rank < 0 || rank >= sl.size {
		return 0, false
	}

	node := headRef
	remain := rank + 1
	for level := sl.maxLevels - 1; level >= 0; level-- {
		for sl.nodes[node].width[level] <= remain {
			remain -= sl.nodes[node].width[level]
			node = sl.nodes[node].next[level]
		}
	}
	return sl.nodes[node].value, true
}

func (sl *ArenaList) Size() int {
	return sl.size
}

// Reset 一次回收所有節點並還原為空串列，arena 底層容量保留
func (sl *ArenaList) Reset() {
	sl.nodes = sl.nodes[:1]
	sl.free = sl.free[:0]
	sl.size = 0
	for i := 0; i < sl.maxLevels; i++ {
		sl.nodes[headRef].next[i] = tailRef
		sl.nodes[headRef].width[i] = 1
	}
}

// GetHead 實現 Analyable 介面
func (sl *ArenaList) GetHead() skiplist.Nodelike {
	return nodeRef{sl: sl, r: headRef}
}

func (sl *ArenaList) GetMaxStats() (int, int) {
	return sl.size, sl.maxLevels
}

// nodeRef 把 (arena, index) 包裝成 Nodelike 供分析工具走訪
type nodeRef struct {
	sl *ArenaList
	r  ref
}

func (a nodeRef) GetValue() skiplist.V {
	return a.sl.nodes[a.r].value
}

func (a nodeRef) GetLevel() int32 {
	return int32(len(a.sl.nodes[a.r].next) - 1)
}

func (a nodeRef) GetNextAt(level int32) skiplist.Nodelike {
	nd := &a.sl.nodes[a.r]
	if level < 0 || level >= int32(len(nd.next)) {
		return nil
	}
	if nd.next[level] == tailRef {
		return nil
	}
	return nodeRef{sl: a.sl, r: nd.next[level]}
}

func (a nodeRef) GetWidthAt(level int32) int {
	nd := &a.sl.nodes[a.r]
	if level < 0 || level >= int32(len(nd.width)) {
		return 0
	}
	return nd.width[level]
}
