package rolling

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hakuto4838/RankList.git/skiplist"
	"github.com/Hakuto4838/RankList.git/skiplist/arena"
	"github.com/Hakuto4838/RankList.git/skiplist/naive"
)

func TestRollingMedianWindow3(t *testing.T) {
	w := New(3, 42)

	// 視窗 [2, 4, 6]，中位數 4
	w.Push(2)
	w.Push(4)
	w.Push(6)
	med, ok := w.Median()
	require.True(t, ok)
	require.Equal(t, skiplist.V(4), med)

	// 視窗前進：2 離開、8 進入 -> [4, 6, 8]，中位數 6
	w.Push(8)
	med, ok = w.Median()
	require.True(t, ok)
	require.Equal(t, skiplist.V(6), med)
	require.Equal(t, 3, w.Count())
}

func TestWarmup(t *testing.T) {
	w := New(4, 1)

	_, ok := w.Median()
	assert.False(t, ok, "empty window must have no median")

	w.Push(10)
	require.Equal(t, 1, w.Count())
	med, ok := w.Median()
	require.True(t, ok)
	assert.Equal(t, skiplist.V(10), med)

	// 暖機中：兩筆值取平均
	w.Push(20)
	med, ok = w.Median()
	require.True(t, ok)
	assert.Equal(t, skiplist.V(15), med)
}

func TestEvenWindowMedian(t *testing.T) {
	w := New(4, 3)
	for _, v := range []skiplist.V{1, 3, 5, 7} {
		w.Push(v)
	}
	med, ok := w.Median()
	require.True(t, ok)
	assert.Equal(t, skiplist.V(4), med)
}

func TestQuantile(t *testing.T) {
	w := New(5, 5)
	for _, v := range []skiplist.V{10, 20, 30, 40, 50} {
		w.Push(v)
	}

	for _, tc := range []struct {
		q    float64
		want skiplist.V
	}{
		{0, 10},
		{0.25, 20},
		{0.5, 30},
		{0.75, 40},
		{1, 50},
		{0.1, 14}, // 內插: 10 + 0.4*(20-10)
	} {
		got, ok := w.Quantile(tc.q)
		require.True(t, ok, "Quantile(%v)", tc.q)
		assert.InDelta(t, tc.want, got, 1e-9, "Quantile(%v)", tc.q)
	}

	_, ok := w.Quantile(-0.1)
	assert.False(t, ok)
	_, ok = w.Quantile(1.1)
	assert.False(t, ok)
}

func TestMinMax(t *testing.T) {
	w := New(3, 7)
	w.Push(5)
	w.Push(-2)
	w.Push(9)

	lo, ok := w.Min()
	require.True(t, ok)
	assert.Equal(t, skiplist.V(-2), lo)
	hi, ok := w.Max()
	require.True(t, ok)
	assert.Equal(t, skiplist.V(9), hi)

	// -2 滑出視窗
	w.Push(1)
	lo, _ = w.Min()
	assert.Equal(t, skiplist.V(1), lo)
}

// 刪除的是「值」而非特定節點：重複值滑出時只會拿掉一份
func TestEvictionWithDuplicates(t *testing.T) {
	w := New(3, 11)
	w.Push(5)
	w.Push(5)
	w.Push(5)
	w.Push(7) // 最舊的 5 離開

	require.Equal(t, 3, w.Count())
	med, ok := w.Median()
	require.True(t, ok)
	assert.Equal(t, skiplist.V(5), med)
	hi, _ := w.Max()
	assert.Equal(t, skiplist.V(7), hi)
}

func TestNewWithBackends(t *testing.T) {
	backends := map[string]skiplist.RankList{
		"arena": arena.New(8, 13),
		"naive": naive.New(8),
	}
	for name, list := range backends {
		w := NewWith(list, 3)
		w.Push(2)
		w.Push(4)
		w.Push(6)
		w.Push(8)
		med, ok := w.Median()
		require.True(t, ok, name)
		assert.Equal(t, skiplist.V(6), med, name)
	}
}

func TestInvalidSizePanics(t *testing.T) {
	assert.Panics(t, func() { New(0, 1) })
	assert.Panics(t, func() { NewWith(naive.New(4), -1) })
}

// 長串流下逐步與重新排序計算的中位數比對
func TestAgainstResort(t *testing.T) {
	const window = 16
	w := New(window, 99)
	rng := rand.New(rand.NewSource(99))

	recent := make([]skiplist.V, 0, window)
	for i := 0; i < 2000; i++ {
		v := skiplist.V(rng.Intn(50))
		w.Push(v)
		if len(recent) == window {
			recent = recent[1:]
		}
		recent = append(recent, v)

		sorted := append([]skiplist.V(nil), recent...)
		sort.Float64s(sorted)
		var want skiplist.V
		n := len(sorted)
		if n%2 == 1 {
			want = sorted[n/2]
		} else {
			want = (sorted[n/2-1] + sorted[n/2]) / 2
		}

		got, ok := w.Median()
		require.True(t, ok)
		require.Equal(t, want, got, "step %d", i)
	}
}
