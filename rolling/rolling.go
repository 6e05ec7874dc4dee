// Package rolling 在滑動視窗上維護順序統計量
// 視窗每前進一步移除一個舊值、插入一個新值，
// 中位數與分位數都以 rank 查詢讀出，單步成本 O(log w)
package rolling

import (
	"math"

	"github.com/Hakuto4838/RankList.git/skiplist"
	"github.com/Hakuto4838/RankList.git/skiplist/indexable"
)

// Window 以環狀緩衝追蹤最近 w 筆值，並讓 RankList 持有視窗內的多重集合
// 單執行緒使用，與底層串列相同
type Window struct {
	list  skiplist.RankList
	buf   []skiplist.V
	next  int
	count int
}

// New 建立容量為 size 的視窗，底層使用 indexable 串列
// size 必須為正，否則 panic
func New(size int, seed int64) *Window {
	return NewWith(indexable.New(size, seed), size)
}

// NewWith 以呼叫端提供的 RankList 建立視窗
// list 必須為空；視窗不會檢查這件事
func NewWith(list skiplist.RankList, size int) *Window {
	if size <= 0 {
		panic("rolling: window size 必須為正")
	}
	return &Window{
		list: list,
		buf:  make([]skiplist.V, size),
	}
}

// Push 推入一筆新值；視窗已滿時先移除最舊的一筆
// 呼叫端負責過濾 NaN 之類的非序數值
func (w *Window) Push(value skiplist.V) {
	if w.count == len(w.buf) {
		w.list.Remove(w.buf[w.next])
	} else {
		w.count++
	}
	w.buf[w.next] = value
	w.next = (w.next + 1) % len(w.buf)
	w.list.Insert(value)
}

// Count 回傳目前視窗內的值數量（暖機期間小於容量）
func (w *Window) Count() int {
	return w.list.Size()
}

// Cap 回傳視窗容量
func (w *Window) Cap() int {
	return len(w.buf)
}

// Median 回傳視窗中位數；偶數個值時取中間兩值的平均
func (w *Window) Median() (skiplist.V, bool) {
	n := w.list.Size()
	if n == 0 {
		return 0, false
	}
	if n%2 == 1 {
		return w.list.Get(n / 2)
	}
	lo, _ := w.list.Get(n/2 - 1)
	hi, _ := w.list.Get(n / 2)
	return (lo + hi) / 2, true
}

// Quantile 回傳線性內插的 q 分位數，q 需落在 [0, 1]
func (w *Window) Quantile(q float64) (skiplist.V, bool) {
	n := w.list.Size()
	if n == 0 || q < 0 || q > 1 || math.IsNaN(q) {
		return 0, false
	}
	pos := q * float64(n-1)
	lower := int(math.Floor(pos))
	frac := pos - float64(lower)

	lo, ok := w.list.Get(lower)
	if !ok {
		return 0, false
	}
	if frac == 0 {
		return lo, true
	}
	hi, ok := w.list.Get(lower + 1)
	if !ok {
		return 0, false
	}
	return lo + (hi-lo)*frac, true
}

// Min 回傳視窗最小值
func (w *Window) Min() (skiplist.V, bool) {
	return w.list.Get(0)
}

// Max 回傳視窗最大值
func (w *Window) Max() (skiplist.V, bool) {
	return w.list.Get(w.list.Size() - 1)
}
