package naive

import (
	"sort"

	"github.com/Hakuto4838/RankList.git/skiplist"
)

// NaiveList 以單一排序 slice 實作 RankList
// Insert/Remove 為 O(n) 搬移，Get 為 O(1)
// 作為 benchmark 基準線與測試時的 oracle
type NaiveList struct {
	values []skiplist.V
}

func New(expectedSize int) *NaiveList {
	if expectedSize < 0 {
		expectedSize = 0
	}
	return &NaiveList{
		values: make([]skiplist.V, 0, expectedSize),
	}
}

func (sl *NaiveList) Insert(value skiplist.V) bool {
	i := sort.SearchFloat64s(sl.values, value)
	sl.values = append(sl.values, 0)
	copy(sl.values[i+1:], sl.values[i:])
	sl.values[i] = value
	return true
}

func (sl *NaiveList) Remove(value skiplist.V) bool {
	i := sort.SearchFloat64s(sl.values, value)
	if i >= len(sl.values) || sl.values[i] != value {
		return false
	}
	copy(sl.values[i:], sl.values[i+1:])
	sl.values = sl.values[:len(sl.values)-1]
	return true
}

func (sl *NaiveList) Get(rank int) (skiplist.V, bool) {
	if rank < 0 || rank >= len(sl.values) {
		return 0, false
	}
	return sl.values[rank], true
}

func (sl *NaiveList) Size() int {
	return len(sl.values)
}
