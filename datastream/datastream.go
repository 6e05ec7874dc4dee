package datastream

import "github.com/Hakuto4838/RankList.git/skiplist"

// ValueStream 定義數值串流的介面
type ValueStream interface {
	Close() error
	Next() skiplist.V
	Entropy() float64
}

// SequenceModel 以既有的數值序列提供順序重播
type SequenceModel struct {
	values []skiplist.V
	pos    int
}

// NewSequenceModelFromValues 由外部供給的數值序列建立模型
func NewSequenceModelFromValues(values []skiplist.V) *SequenceModel {
	cp := make([]skiplist.V, len(values))
	copy(cp, values)
	return &SequenceModel{values: cp}
}

// Next 回傳下一筆值，若結束則回傳零值與 false
func (m *SequenceModel) Next() (skiplist.V, bool) {
	if m.pos >= len(m.values) {
		return 0, false
	}
	v := m.values[m.pos]
	m.pos++
	return v, true
}

// NextN 回傳接下來 n 筆（或直到結束）的值
func (m *SequenceModel) NextN(n int) []skiplist.V {
	if n <= 0 || m.pos >= len(m.values) {
		return nil
	}
	end := m.pos + n
	if end > len(m.values) {
		end = len(m.values)
	}
	out := m.values[m.pos:end]
	m.pos = end
	// 回傳淺拷貝避免外部修改底層切片
	cp := make([]skiplist.V, len(out))
	copy(cp, out)
	return cp
}

// Reset 游標重置到起點
func (m *SequenceModel) Reset() { m.pos = 0 }
