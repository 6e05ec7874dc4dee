package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/Hakuto4838/RankList.git/datastream"
	"github.com/Hakuto4838/RankList.git/rolling"
	"github.com/Hakuto4838/RankList.git/skiplist"
	"github.com/Hakuto4838/RankList.git/skiplist/analyTool"
	"github.com/Hakuto4838/RankList.git/skiplist/arena"
	"github.com/Hakuto4838/RankList.git/skiplist/indexable"
	"github.com/Hakuto4838/RankList.git/skiplist/naive"
	"github.com/olekukonko/tablewriter"
)

func main() {
	// Input: either provide -file, -dir, or provide -out and generation params
	var file string
	var dir string
	var out string
	var n int
	var a float64
	var b float64
	var k int
	var window int
	var seed int64

	var impls string
	var runs int
	var verify bool

	flag.StringVar(&file, "file", "", "existing streamfile (RWBENCH1 format)")
	flag.StringVar(&dir, "dir", "", "directory containing stream files to test (will test all .bin files)")
	flag.StringVar(&out, "out", "", "output path to write generated streamfile")
	flag.IntVar(&n, "n", 1000, "number of distinct values for Zipf generator")
	flag.Float64Var(&a, "a", 1.07, "Zipf parameter a")
	flag.Float64Var(&b, "b", 0.0, "Zipf parameter b")
	flag.IntVar(&k, "k", 0, "number of values to generate")
	flag.IntVar(&window, "window", 0, "override window size (0 = use file header)")
	flag.Int64Var(&seed, "seed", time.Now().UnixNano(), "seed for generators/structures where applicable")

	flag.StringVar(&impls, "impl", "all", "implementations to run: all or comma list (indexable,arena,naive)")
	flag.IntVar(&runs, "runs", 5, "how many times to repeat each benchmark")
	flag.BoolVar(&verify, "verify", true, "cross-check medians between implementations before timing")
	flag.Parse()

	var benchPaths []string

	// 判斷模式: -dir 優先於 -file
	if dir != "" {
		files, err := collectStreamFilesFromDir(dir)
		if err != nil {
			log.Fatalf("scan directory %s: %v", dir, err)
		}
		if len(files) == 0 {
			log.Fatalf("no .bin files found in directory: %s", dir)
		}
		benchPaths = files
		fmt.Printf("Found %d stream files in directory: %s\n", len(benchPaths), dir)
	} else if file != "" {
		benchPaths = []string{file}
		fmt.Printf("stream_file: %s\n", file)
	} else {
		if out == "" {
			log.Fatalf("either -file, -dir, or -out with generation params (-n,-a,-b,-k,-window,-seed) must be provided")
		}
		if n <= 0 || k <= 0 || window <= 0 {
			log.Fatalf("invalid -n, -k or -window: n=%d k=%d window=%d", n, k, window)
		}
		gen := datastream.NewZipfValueGenerator(n, a, b, seed)
		if _, err := datastream.WriteStreamFileFromStream(gen, k, window, out); err != nil {
			log.Fatalf("generate stream file: %v", err)
		}
		fmt.Printf("generated stream_file: %s\n", out)
		benchPaths = []string{out}
	}

	toRun := parseImpls(impls)
	fmt.Printf("implementations to test: %s\n", strings.Join(toRun, ","))
	fmt.Println(strings.Repeat("=", 80))

	if len(benchPaths) > 1 {
		runBatchBenchmark(benchPaths, toRun, runs, seed, window, verify)
	} else {
		runBenchmark(benchPaths[0], toRun, runs, seed, window, verify)
	}
}

// collectStreamFilesFromDir 收集指定目錄下所有 .bin 檔案
func collectStreamFilesFromDir(dir string) ([]string, error) {
	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && filepath.Ext(path) == ".bin" {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	// 排序檔案名稱以確保順序一致
	sort.Strings(files)
	return files, nil
}

// runBatchBenchmark 對多個 stream 檔案執行測試並匯總統計
func runBatchBenchmark(benchPaths []string, toRun []string, runs int, seed int64, windowOverride int, verify bool) {
	fmt.Printf("Testing %d stream files...\n\n", len(benchPaths))

	type implStats struct {
		avgMsList []float64
		minMsList []float64
		maxMsList []float64
		opsList   []int
		depthList []float64
		totalRuns int
	}

	allStats := make(map[string]*implStats)
	for _, impl := range toRun {
		allStats[impl] = &implStats{}
	}

	for idx, benchPath := range benchPaths {
		fmt.Printf("[%d/%d] Testing: %s\n", idx+1, len(benchPaths), filepath.Base(benchPath))

		sf, w, err := loadStreamFile(benchPath, windowOverride)
		if err != nil {
			log.Printf("  ERROR reading stream file: %v\n", err)
			continue
		}
		fmt.Printf("  id: %s, values: %d, window: %d\n", sf.ID, len(sf.Values), w)

		if verify {
			if err := crossCheck(sf.Values, w, seed); err != nil {
				log.Fatalf("  verification failed: %v", err)
			}
		}

		for _, impl := range toRun {
			fmt.Printf("  - benchmarking %s...\n", impl)
			stats := benchmarkImpl(sf.Values, w, impl, runs, seed)

			allStats[impl].avgMsList = append(allStats[impl].avgMsList, stats.avgMs)
			allStats[impl].minMsList = append(allStats[impl].minMsList, stats.minMs)
			allStats[impl].maxMsList = append(allStats[impl].maxMsList, stats.maxMs)
			allStats[impl].opsList = append(allStats[impl].opsList, len(sf.Values))
			if !math.IsNaN(stats.avgDepth) {
				allStats[impl].depthList = append(allStats[impl].depthList, stats.avgDepth)
			}
			allStats[impl].totalRuns += runs
		}
		fmt.Println()
	}

	fmt.Println(strings.Repeat("=", 80))
	fmt.Println("AGGREGATE STATISTICS (across all stream files)")
	fmt.Println(strings.Repeat("=", 80))

	rows := make([][]string, 0, len(toRun))
	for _, impl := range toRun {
		stats := allStats[impl]
		if len(stats.avgMsList) == 0 {
			continue
		}

		avgMs := average(stats.avgMsList)
		minMs := minFloat(stats.minMsList)
		maxMs := maxFloat(stats.maxMsList)

		totalOps := 0
		totalSec := 0.0
		for i, ops := range stats.opsList {
			totalOps += ops
			totalSec += stats.avgMsList[i] / 1000.0
		}
		avgThr := float64(totalOps) / totalSec

		depth := "N/A"
		if len(stats.depthList) > 0 {
			depth = fmt.Sprintf("%.6f", average(stats.depthList))
		}

		rows = append(rows, []string{
			impl,
			fmt.Sprintf("%d", stats.totalRuns),
			fmt.Sprintf("%.3f", avgMs),
			fmt.Sprintf("%.3f", minMs),
			fmt.Sprintf("%.3f", maxMs),
			fmt.Sprintf("%.2f", avgThr),
			depth,
		})
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Impl", "Total Runs", "Avg(ms)", "Min(ms)", "Max(ms)", "Avg Ops/s", "AvgDepth"})
	table.SetAlignment(tablewriter.ALIGN_CENTER)
	table.SetAutoWrapText(false)
	table.AppendBulk(rows)
	table.Render()
}

// runBenchmark 執行單一 stream 檔案的測試
func runBenchmark(benchPath string, toRun []string, runs int, seed int64, windowOverride int, verify bool) {
	sf, w, err := loadStreamFile(benchPath, windowOverride)
	if err != nil {
		log.Printf("ERROR reading stream file %s: %v", benchPath, err)
		return
	}

	fmt.Printf("stream_file: %s\n", benchPath)
	fmt.Printf("id: %s\n", sf.ID)
	fmt.Printf("values: %d\n", len(sf.Values))
	fmt.Printf("window: %d\n", w)

	if verify {
		if err := crossCheck(sf.Values, w, seed); err != nil {
			log.Fatalf("verification failed: %v", err)
		}
		fmt.Println("verification: implementations agree on every median")
	}

	rows := make([][]string, 0, len(toRun))
	for _, impl := range toRun {
		fmt.Printf("benchmarking %s...\n", impl)
		stats := benchmarkImpl(sf.Values, w, impl, runs, seed)
		thr := float64(len(sf.Values)) / (stats.avgMs / 1000.0)
		depth := "N/A"
		if !math.IsNaN(stats.avgDepth) {
			depth = fmt.Sprintf("%.6f", stats.avgDepth)
		}
		rows = append(rows, []string{
			impl,
			fmt.Sprintf("%d", runs),
			fmt.Sprintf("%.3f", stats.avgMs),
			fmt.Sprintf("%.3f", stats.minMs),
			fmt.Sprintf("%.3f", stats.maxMs),
			fmt.Sprintf("%.2f", thr),
			depth,
		})
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Impl", "Runs", "Avg(ms)", "Min(ms)", "Max(ms)", "Ops/s", "AvgDepth"})
	table.SetAlignment(tablewriter.ALIGN_CENTER)
	table.SetAutoWrapText(false)
	table.AppendBulk(rows)
	table.Render()
}

func loadStreamFile(path string, windowOverride int) (*datastream.StreamFile, int, error) {
	sf, err := datastream.ReadStreamFile(path)
	if err != nil {
		return nil, 0, err
	}
	w := sf.Window
	if windowOverride > 0 {
		w = windowOverride
	}
	if w <= 0 {
		return nil, 0, fmt.Errorf("invalid window size: %d", w)
	}
	return sf, w, nil
}

// crossCheck 以 lockstep 驅動所有實作，逐步比對中位數
// 順便對 skiplist 實作做 width 不變量稽核
func crossCheck(values []skiplist.V, window int, seed int64) error {
	lists := map[string]skiplist.RankList{
		"indexable": indexable.New(window, seed),
		"arena":     arena.New(window, seed),
		"naive":     naive.New(window),
	}
	windows := make(map[string]*rolling.Window, len(lists))
	for name, list := range lists {
		windows[name] = rolling.NewWith(list, window)
	}

	for i, v := range values {
		want := math.NaN()
		for _, name := range []string{"indexable", "arena", "naive"} {
			wd := windows[name]
			wd.Push(v)
			med, ok := wd.Median()
			if !ok {
				return fmt.Errorf("step %d: %s returned no median", i, name)
			}
			if math.IsNaN(want) {
				want = med
			} else if med != want {
				return fmt.Errorf("step %d: %s median %v, want %v", i, name, med, want)
			}
		}
	}

	for name, list := range lists {
		if analy, ok := list.(skiplist.Analyable); ok {
			if err := analyTool.AuditWidths(analy); err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
		}
	}
	return nil
}

type benchStats struct {
	avgMs    float64
	minMs    float64
	maxMs    float64
	avgDepth float64 // from one run (structure-dependent), NaN if not analyzable
}

func benchmarkImpl(values []skiplist.V, window int, impl string, runs int, seed int64) benchStats {
	durations := make([]float64, 0, runs)
	var sampleDepth = math.NaN()
	for i := 0; i < runs; i++ {
		list := newImpl(impl, window, seed)
		elapsed := runOpsAndTime(list, values, window)
		durations = append(durations, float64(elapsed.Microseconds())/1000.0)
		if math.IsNaN(sampleDepth) {
			if analy, ok := list.(skiplist.Analyable); ok {
				sampleDepth = analyTool.AverageDepth(analy)
			}
		}
	}
	sort.Float64s(durations)
	return benchStats{
		avgMs:    average(durations),
		minMs:    durations[0],
		maxMs:    durations[len(durations)-1],
		avgDepth: sampleDepth,
	}
}

func newImpl(impl string, window int, seed int64) skiplist.RankList {
	switch impl {
	case "indexable":
		return indexable.New(window, seed)
	case "arena":
		return arena.New(window, seed)
	case "naive":
		return naive.New(window)
	default:
		log.Fatalf("unknown -impl: %s", impl)
		return nil
	}
}

// runOpsAndTime 以 rolling median 工作負載計時：每筆值 Push 一次、讀一次中位數
func runOpsAndTime(list skiplist.RankList, values []skiplist.V, window int) time.Duration {
	wd := rolling.NewWith(list, window)
	var sink skiplist.V

	start := time.Now()
	for _, v := range values {
		wd.Push(v)
		if med, ok := wd.Median(); ok {
			sink = med
		}
	}
	elapsed := time.Since(start)

	_ = sink
	return elapsed
}

func parseImpls(s string) []string {
	if s == "" || s == "all" {
		return []string{"indexable", "arena", "naive"}
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	seen := map[string]bool{}
	for _, p := range parts {
		t := strings.TrimSpace(strings.ToLower(p))
		if t == "" || seen[t] {
			continue
		}
		switch t {
		case "indexable", "arena", "naive":
			out = append(out, t)
			seen[t] = true
		}
	}
	if len(out) == 0 {
		return []string{"indexable", "arena", "naive"}
	}
	return out
}

// 輔助函數：計算平均值
func average(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// 輔助函數：找最小值
func minFloat(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m := values[0]
	for _, v := range values[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

// 輔助函數：找最大值
func maxFloat(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m := values[0]
	for _, v := range values[1:] {
		if v > m {
			m = v
		}
	}
	return m
}
