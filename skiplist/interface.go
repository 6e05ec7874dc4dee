package skiplist

// V 為容器儲存的數值型別
type V = float64

// RankList 是可索引的排序多重集合介面
// Insert 永遠成功（允許重複值）；Remove 在值不存在時回傳 false
// Get 以 0-based rank 讀取排序後第 rank 小的值，超出範圍回傳 found=false
type RankList interface {
	Insert(value V) bool
	Remove(value V) bool
	Get(rank int) (V, bool)
	Size() int
}

// Analyable 提供分析功能的介面
type Analyable interface {
	RankList
	GetHead() Nodelike
	// GetMaxStats 獲取節點數和最大層級
	GetMaxStats() (maxNodes int, maxLevel int)
}

type Nodelike interface {
	GetValue() V
	GetLevel() int32
	GetNextAt(level int32) Nodelike
	GetWidthAt(level int32) int
}
