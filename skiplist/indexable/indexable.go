package indexable

import (
	"math"
	"math/rand"

	"github.com/Hakuto4838/RankList.git/skiplist"
)

const probability = 0.5

// iNode 除了 forward 指標外，另紀錄每層跨越的 level-0 步數（width）
// tail 為尾端哨兵：零層、比任何實際值都大
type iNode struct {
	value skiplist.V
	next  []*iNode
	width []int
	tail  bool
}

// IndexableList 是固定層數上限的 rank-indexable skiplist
// 層數在建構時由 expectedSize 決定且不再成長：
// 若之後元素數遠超過 expectedSize，操作仍正確，但會逐漸退化為線性
type IndexableList struct {
	head      *iNode
	tail      *iNode
	maxLevels int
	size      int
	rand      *rand.Rand
	// 每次操作重複使用的工作緩衝，不在操作之間保留狀態
	chain []*iNode
	steps []int
}

func newNode(value skiplist.V, levels int) *iNode {
	return &iNode{
		value: value,
		next:  make([]*iNode, levels),
		width: make([]int, levels),
	}
}

// New 以預期容量建立串列，maxLevels = floor(log2(expectedSize))，下限 1 層
// head 的值為 NaN，僅作為哨兵、永遠不參與比較
func New(expectedSize int, seed int64) *IndexableList {
	maxLevels := 1
	if expectedSize > 1 {
		if lv := int(math.Log2(float64(expectedSize))); lv > 1 {
			maxLevels = lv
		}
	}

	head := newNode(math.NaN(), maxLevels)
	tail := &iNode{tail: true}
	for i := 0; i < maxLevels; i++ {
		head.next[i] = tail
		head.width[i] = 1
	}

	return &IndexableList{
		head:      head,
		tail:      tail,
		maxLevels: maxLevels,
		rand:      rand.New(rand.NewSource(seed)),
		chain:     make([]*iNode, maxLevels),
		steps:     make([]int, maxLevels),
	}
}

// lessThan 回報節點值是否嚴格小於 value；tail 視為比任何值都大
func (nd *iNode) lessThan(value skiplist.V) bool {
	return !nd.tail && nd.value < value
}

// randomLevel 以 1/2 連續擲幣決定新節點層數，P(levels >= k) = 2^-(k-1)
func (sl *IndexableList) randomLevel() int {
	lvl := 1
	for lvl < sl.maxLevels && sl.rand.Float64() < probability {
		lvl++
	}
	return lvl
}

// Insert 永遠成功，允許重複值；新的重複值會落在既有相等值之前
func (sl *IndexableList) Insert(value skiplist.V) bool {
	node := sl.head
	for level := sl.maxLevels - 1; level >= 0; level-- {
		sl.steps[level] = 0
		for node.next[level].lessThan(value) {
			sl.steps[level] += node.width[level]
			node = node.next[level]
		}
		sl.chain[level] = node
	}

	levels := sl.randomLevel()
	newNode := newNode(value, levels)

	// steps 累計 chain[level] 到插入點的 level-0 距離，
	// 由此把舊的 width 拆成前後兩段
	steps := 0
	for level := 0; level < levels; level++ {
		prev := sl.chain[level]
		newNode.next[level] = prev.next[level]
		prev.next[level] = newNode
		newNode.width[level] = prev.width[level] - steps
		prev.width[level] = steps + 1
		steps += sl.steps[level]
	}

	// 新節點在更高層不可見，但路徑上的 width 仍多跨過一個位置
	for level := levels; level < sl.maxLevels; level++ {
		sl.chain[level].width[level]++
	}

	sl.size++
	return true
}

// Remove 移除一個值恰好相等的節點（level-0 上第一個符合者），
// 不存在時回傳 false 且不更動任何狀態
func (sl *IndexableList) Remove(value skiplist.V) bool {
	node := sl.head
	for level := sl.maxLevels - 1; level >= 0; level-- {
		for node.next[level].lessThan(value) {
			node = node.next[level]
		}
		sl.chain[level] = node
	}

	target := sl.chain[0].next[0]
	if target.tail || target.value != value {
		return false
	}

	levels := len(target.next)
	for level := 0; level < levels; level++ {
		prev := sl.chain[level]
		prev.width[level] += target.width[level] - 1
		prev.next[level] = target.next[level]
		target.next[level] = nil
	}
	for level := levels; level < sl.maxLevels; level++ {
		sl.chain[level].width[level]--
	}

	sl.size--
	return true
}

// Get 回傳排序後第 rank 小的值（0-based）
// rank 超出範圍視為 not found，不會更動狀態
func (sl *IndexableList) Get(rank int) (skiplist.V, bool) {
	if rank < 0 || rank >= sl.size {
		return 0, false
	}

	// width 以 1 為基底，目標換算為 rank+1
	node := sl.head
	remain := rank + 1
	for level := sl.maxLevels - 1; level >= 0; level-- {
		for node.width[level] <= remain {
			remain -= node.width[level]
			node = node.next[level]
		}
	}
	return node.value, true
}

// Size 回傳目前儲存的實際值數量
func (sl *IndexableList) Size() int {
	return sl.size
}

// GetHead 實現 Analyable 介面
func (sl *IndexableList) GetHead() skiplist.Nodelike {
	return sl.head
}

func (sl *IndexableList) GetMaxStats() (int, int) {
	return sl.size, sl.maxLevels
}

// Nodelike 介面實作

func (nd *iNode) GetValue() skiplist.V {
	return nd.value
}

func (nd *iNode) GetLevel() int32 {
	return int32(len(nd.next) - 1)
}

func (nd *iNode) GetNextAt(level int32) skiplist.Nodelike {
	if level < 0 || level >= int32(len(nd.next)) {
		return nil
	}
	if nd.next[level] == nil || nd.next[level].tail {
		return nil
	}
	return nd.next[level]
}

func (nd *iNode) GetWidthAt(level int32) int {
	if level < 0 || level >= int32(len(nd.width)) {
		return 0
	}
	return nd.width[level]
}
