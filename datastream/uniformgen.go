package datastream

import (
	"math"
	"math/rand"

	"github.com/Hakuto4838/RankList.git/skiplist"
)

// UniformValueGenerator 產生 [lo, hi) 區間的均勻分布數值串流
// lo: 下界
// hi: 上界
// seed: 隨機種子

type UniformValueGenerator struct {
	lo, hi float64
	rng    *rand.Rand
}

func NewUniformValueGenerator(lo, hi float64, seed int64) *UniformValueGenerator {
	if hi < lo {
		lo, hi = hi, lo
	}
	return &UniformValueGenerator{
		lo:  lo,
		hi:  hi,
		rng: rand.New(rand.NewSource(seed)),
	}
}

// Next 產生一筆數值
func (u *UniformValueGenerator) Next() skiplist.V {
	return u.lo + u.rng.Float64()*(u.hi-u.lo)
}

// GenerateSequence 產生指定長度的數值序列
func (u *UniformValueGenerator) GenerateSequence(seqLen int) []skiplist.V {
	seq := make([]skiplist.V, seqLen)
	for i := 0; i < seqLen; i++ {
		seq[i] = u.Next()
	}
	return seq
}

// Entropy 連續均勻分布的微分熵 log2(hi-lo)
func (u *UniformValueGenerator) Entropy() float64 {
	if u.hi == u.lo {
		return 0
	}
	return math.Log2(u.hi - u.lo)
}

func (u *UniformValueGenerator) Close() error {
	return nil
}
