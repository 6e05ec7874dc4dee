package arena

import (
	"math/rand"
	"testing"

	"github.com/Hakuto4838/RankList.git/skiplist"
	"github.com/Hakuto4838/RankList.git/skiplist/analyTool"
	"github.com/Hakuto4838/RankList.git/skiplist/naive"
)

func TestBasicContract(t *testing.T) {
	sl := New(16, 42)

	for _, v := range []skiplist.V{5, 3, 8, 1, 9} {
		if !sl.Insert(v) {
			t.Fatalf("Insert(%v) = false, want true", v)
		}
	}

	want := []skiplist.V{1, 3, 5, 8, 9}
	for i, w := range want {
		v, ok := sl.Get(i)
		if !ok || v != w {
			t.Errorf("Get(%d) = (%v, %v), want (%v, true)", i, v, ok, w)
		}
	}
	if sl.Size() != 5 {
		t.Errorf("Size() = %d, want 5", sl.Size())
	}

	if !sl.Remove(5) {
		t.Fatal("Remove(5) = false, want true")
	}
	if sl.Remove(5) {
		t.Error("Remove(5) second time = true, want false")
	}
	if _, ok := sl.Get(-1); ok {
		t.Error("Get(-1) found = true, want false")
	}
	if _, ok := sl.Get(sl.Size()); ok {
		t.Error("Get(size) found = true, want false")
	}
}

func TestDuplicates(t *testing.T) {
	sl := New(8, 7)
	sl.Insert(3)
	sl.Insert(3)
	sl.Insert(1)

	if sl.Size() != 3 {
		t.Fatalf("Size() = %d, want 3", sl.Size())
	}
	if v, _ := sl.Get(1); v != 3 {
		t.Errorf("Get(1) = %v, want 3", v)
	}
	if v, _ := sl.Get(2); v != 3 {
		t.Errorf("Get(2) = %v, want 3", v)
	}
	sl.Remove(3)
	if sl.Size() != 2 {
		t.Errorf("Size() = %d, want 2", sl.Size())
	}
	if v, _ := sl.Get(1); v != 3 {
		t.Errorf("Get(1) = %v, want 3 (one occurrence left)", v)
	}
}

// 被移除的節點會進 free list，後續插入必須重用而非無限增長
func TestNodeReuse(t *testing.T) {
	sl := New(16, 3)
	for i := 0; i < 16; i++ {
		sl.Insert(skiplist.V(i))
	}
	grown := len(sl.nodes)

	for round := 0; round < 100; round++ {
		v := skiplist.V(round % 16)
		if !sl.Remove(v) {
			t.Fatalf("round %d: Remove(%v) failed", round, v)
		}
		sl.Insert(v)
	}

	if len(sl.nodes) != grown {
		t.Errorf("arena grew from %d to %d nodes despite steady-state churn", grown, len(sl.nodes))
	}
}

func TestReset(t *testing.T) {
	sl := New(16, 11)
	for i := 0; i < 10; i++ {
		sl.Insert(skiplist.V(i))
	}
	sl.Remove(3)

	sl.Reset()
	if sl.Size() != 0 {
		t.Fatalf("Size() after Reset = %d, want 0", sl.Size())
	}
	if _, ok := sl.Get(0); ok {
		t.Error("Get(0) after Reset found = true, want false")
	}

	// Reset 後的串列必須可以正常重用
	for _, v := range []skiplist.V{2, 1, 3} {
		sl.Insert(v)
	}
	for i, w := range []skiplist.V{1, 2, 3} {
		if v, _ := sl.Get(i); v != w {
			t.Errorf("after Reset: Get(%d) = %v, want %v", i, v, w)
		}
	}
	if err := analyTool.AuditWidths(sl); err != nil {
		t.Fatalf("width audit after Reset: %v", err)
	}
}

func TestFuzzAgainstNaive(t *testing.T) {
	sl := New(64, 321)
	oracle := naive.New(64)
	rng := rand.New(rand.NewSource(321))

	for op := 0; op < 5000; op++ {
		v := skiplist.V(rng.Intn(80))
		if rng.Float64() < 0.6 || oracle.Size() == 0 {
			sl.Insert(v)
			oracle.Insert(v)
		} else {
			gotOK := sl.Remove(v)
			wantOK := oracle.Remove(v)
			if gotOK != wantOK {
				t.Fatalf("op %d: Remove(%v) = %v, oracle %v", op, v, gotOK, wantOK)
			}
		}

		if sl.Size() != oracle.Size() {
			t.Fatalf("op %d: Size() = %d, oracle %d", op, sl.Size(), oracle.Size())
		}
		if op%89 == 0 && sl.Size() > 0 {
			r := rng.Intn(sl.Size())
			got, _ := sl.Get(r)
			want, _ := oracle.Get(r)
			if got != want {
				t.Fatalf("op %d: Get(%d) = %v, oracle %v", op, r, got, want)
			}
		}
	}

	if err := analyTool.AuditWidths(sl); err != nil {
		t.Fatalf("width audit after fuzz: %v", err)
	}
}
