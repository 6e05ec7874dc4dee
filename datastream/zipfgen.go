package datastream

import (
	"math"
	"math/rand"

	"github.com/Hakuto4838/RankList.git/skiplist"
)

// ZipfValueGenerator 自 n 個相異數值中以 Zipf 權重抽樣
// 熱門值出現頻率極高，產生大量重複值的串流，
// 用來壓測 RankList 的重複值處理
type ZipfValueGenerator struct {
	n       int
	a, b    float64
	Weights []float64
	cdf     []float64
	rng     *rand.Rand
}

func NewZipfValueGenerator(n int, a, b float64, seed int64) *ZipfValueGenerator {
	rng := rand.New(rand.NewSource(seed))
	weights := make([]float64, n)
	var sum float64
	for i := 1; i <= n; i++ {
		weights[i-1] = 1.0 / math.Pow(float64(i)+b, a)
		sum += weights[i-1]
	}
	// 正規化
	for i := range weights {
		weights[i] /= sum
	}
	rng.Shuffle(len(weights), func(i, j int) {
		weights[i], weights[j] = weights[j], weights[i]
	})
	// 建立累積分布函數 (CDF)
	cdf := make([]float64, n)
	cdf[0] = weights[0]
	for i := 1; i < n; i++ {
		cdf[i] = cdf[i-1] + weights[i]
	}
	return &ZipfValueGenerator{
		n:       n,
		a:       a,
		b:       b,
		Weights: weights,
		cdf:     cdf,
		rng:     rng,
	}
}

// Next 產生一筆數值（n 個相異值之一，以索引作為值）
func (z *ZipfValueGenerator) Next() skiplist.V {
	r := z.rng.Float64()
	// 二分搜尋 cdf
	lo, hi := 0, z.n-1
	for lo < hi {
		mid := (lo + hi) / 2
		if r > z.cdf[mid] {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return skiplist.V(lo)
}

// GenerateSequence 產生指定長度的數值序列
func (z *ZipfValueGenerator) GenerateSequence(seqLen int) []skiplist.V {
	seq := make([]skiplist.V, seqLen)
	for i := 0; i < seqLen; i++ {
		seq[i] = z.Next()
	}
	return seq
}

// Distinct 回傳相異值的數量
func (z *ZipfValueGenerator) Distinct() int {
	return z.n
}

// Entropy 計算權重分布的熵
func (z *ZipfValueGenerator) Entropy() float64 {
	h := 0.0
	for _, p := range z.Weights {
		if p > 0 {
			h -= p * math.Log2(p)
		}
	}
	return h
}

func (z *ZipfValueGenerator) Close() error {
	return nil
}
