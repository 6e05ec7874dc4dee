package analyTool

import (
	"fmt"
	"math"

	"github.com/Hakuto4838/RankList.git/skiplist"
)

// AuditWidths 檢查 width 不變量，任何一處違反即回傳錯誤：
//   - level 0 的值必須非遞減，且節點數等於 Size()
//   - 每個節點在每層的 width 必須等於它與下一個節點之間的 level-0 距離
//   - 每層的 width 總和必須等於 size+1
func AuditWidths(sl skiplist.Analyable) error {
	head := sl.GetHead()
	if head == nil {
		return fmt.Errorf("audit: nil head")
	}
	size, maxLevel := sl.GetMaxStats()

	// 以 level 0 走訪建立每個節點的位置，head 視為位置 0
	pos := map[skiplist.Nodelike]int{head: 0}
	prev := math.Inf(-1)
	count := 0
	for nd := head.GetNextAt(0); nd != nil; nd = nd.GetNextAt(0) {
		count++
		pos[nd] = count
		v := nd.GetValue()
		if v < prev {
			return fmt.Errorf("audit: level 0 亂序, rank %d: %v < %v", count-1, v, prev)
		}
		prev = v
	}
	if count != size {
		return fmt.Errorf("audit: level 0 節點數 %d, Size() 為 %d", count, size)
	}

	for level := 0; level < maxLevel; level++ {
		sum := 0
		for nd := head; nd != nil; nd = nd.GetNextAt(int32(level)) {
			w := nd.GetWidthAt(int32(level))
			if w <= 0 {
				return fmt.Errorf("audit: level %d 位置 %d 的 width 為 %d", level, pos[nd], w)
			}
			// 尾端哨兵視為位置 size+1
			nextPos := size + 1
			if next := nd.GetNextAt(int32(level)); next != nil {
				nextPos = pos[next]
			}
			if nextPos-pos[nd] != w {
				return fmt.Errorf("audit: level %d 位置 %d 的 width %d, 實際距離 %d",
					level, pos[nd], w, nextPos-pos[nd])
			}
			sum += w
		}
		if sum != size+1 {
			return fmt.Errorf("audit: level %d 的 width 總和 %d, 應為 %d", level, sum, size+1)
		}
	}
	return nil
}

// LevelHistogram 統計各層級的節點數，索引為節點的最高層 (GetLevel)
func LevelHistogram(sl skiplist.Analyable) []int {
	head := sl.GetHead()
	_, maxLevel := sl.GetMaxStats()
	hist := make([]int, maxLevel)
	if head == nil {
		return hist
	}
	for nd := head.GetNextAt(0); nd != nil; nd = nd.GetNextAt(0) {
		lv := int(nd.GetLevel())
		if lv >= 0 && lv < maxLevel {
			hist[lv]++
		}
	}
	return hist
}

// AverageDepth 模擬對每個 rank 做一次查詢，回傳平均走訪步數
// （水平前進與垂直下降各算一步）
func AverageDepth(sl skiplist.Analyable) float64 {
	size, maxLevel := sl.GetMaxStats()
	if size == 0 {
		return 0
	}

	total := 0
	for rank := 0; rank < size; rank++ {
		node := sl.GetHead()
		remain := rank + 1
		for level := maxLevel - 1; level >= 0 && node != nil; level-- {
			for node != nil {
				w := node.GetWidthAt(int32(level))
				if w <= 0 || w > remain {
					break
				}
				remain -= w
				node = node.GetNextAt(int32(level))
				total++
			}
			if level > 0 {
				total++ // 下降也算一步
			}
		}
	}
	return float64(total) / float64(size)
}

// PrintList 打印串列的結構，每層至多顯示 maxNodes 個節點
// 格式為 value(width)
func PrintList(sl skiplist.Analyable, maxNodes int) {
	head := sl.GetHead()
	if head == nil {
		fmt.Println("list 為空")
		return
	}
	_, maxLevel := sl.GetMaxStats()

	output := make([]string, maxLevel)
	for i := maxLevel - 1; i >= 0; i-- {
		output[i] = fmt.Sprintf("level %d : ", i)
	}

	node := head.GetNextAt(0)
	for count := 0; node != nil && count < maxNodes; count++ {
		lv := int(node.GetLevel())
		for i := range output {
			if i <= lv {
				output[i] += fmt.Sprintf("%6.2f(%d) ->", node.GetValue(), node.GetWidthAt(int32(i)))
			} else {
				output[i] += "             "
			}
		}
		node = node.GetNextAt(0)
	}

	for i := maxLevel - 1; i >= 0; i-- {
		fmt.Println(output[i])
	}
}
