package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/Hakuto4838/RankList.git/datastream"
)

// parseScientificNotation 解析科學記號字串（如 "1e5"）為整數
func parseScientificNotation(s string) (int, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}

// formatScientific 將數字格式化為科學記號（用於檔名）
func formatScientific(n int) string {
	if n == 0 {
		return "0"
	}

	exp := 0
	temp := n
	for temp >= 10 {
		temp /= 10
		exp++
	}

	divisor := 1
	for i := 0; i < exp; i++ {
		divisor *= 10
	}
	coefficient := float64(n) / float64(divisor)

	if coefficient == float64(int(coefficient)) {
		return fmt.Sprintf("%de%d", int(coefficient), exp)
	}
	return fmt.Sprintf("%.1fe%d", coefficient, exp)
}

func main() {
	var dir string
	var dist string
	var nStr string
	var a float64
	var b float64
	var lo float64
	var hi float64
	var kStr string
	var window int
	var seed int64
	var nums int

	flag.StringVar(&dir, "dir", ".", "output directory")
	flag.StringVar(&dist, "dist", "zipf", "value distribution: zipf or uniform")
	flag.StringVar(&nStr, "n", "1e3", "number of distinct values for Zipf generator (支援科學記號，如 1e5)")
	flag.Float64Var(&a, "a", 1.07, "Zipf parameter a")
	flag.Float64Var(&b, "b", 0.0, "Zipf parameter b")
	flag.Float64Var(&lo, "lo", 0.0, "uniform lower bound")
	flag.Float64Var(&hi, "hi", 1.0, "uniform upper bound")
	flag.StringVar(&kStr, "k", "1e5", "number of values to generate (支援科學記號)")
	flag.IntVar(&window, "window", 64, "rolling window size recorded in the file header")
	flag.Int64Var(&seed, "seed", time.Now().UnixNano(), "seed for the generator")
	flag.IntVar(&nums, "nums", 1, "how many files to generate (seed+i for the i-th file)")
	flag.Parse()

	n, err := parseScientificNotation(nStr)
	if err != nil {
		log.Fatalf("invalid -n: %v", err)
	}
	k, err := parseScientificNotation(kStr)
	if err != nil {
		log.Fatalf("invalid -k: %v", err)
	}
	if k <= 0 || window <= 0 || nums <= 0 {
		log.Fatalf("invalid params: k=%d window=%d nums=%d", k, window, nums)
	}
	if dist == "zipf" && n <= 0 {
		log.Fatalf("invalid -n for zipf: %d", n)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Fatalf("mkdir %s: %v", dir, err)
	}

	for i := 0; i < nums; i++ {
		s := seed + int64(i)
		var gen datastream.ValueStream
		var name string
		switch dist {
		case "zipf":
			gen = datastream.NewZipfValueGenerator(n, a, b, s)
			name = fmt.Sprintf("zipf_n%s_k%s_w%d_s%d.bin", formatScientific(n), formatScientific(k), window, s)
		case "uniform":
			gen = datastream.NewUniformValueGenerator(lo, hi, s)
			name = fmt.Sprintf("uniform_k%s_w%d_s%d.bin", formatScientific(k), window, s)
		default:
			log.Fatalf("unknown -dist: %s", dist)
		}

		path := filepath.Join(dir, name)
		id, err := datastream.WriteStreamFileFromStream(gen, k, window, path)
		if err != nil {
			log.Fatalf("write %s: %v", path, err)
		}
		fmt.Printf("[%d/%d] %s (id=%s, entropy=%.6f)\n", i+1, nums, path, id, gen.Entropy())
	}
}
