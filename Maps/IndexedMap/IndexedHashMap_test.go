package IndexedMap

import (
	"fmt"
	"testing"

	Go_Indexed "github.com/g-m-twostay/go-indexed"
	"github.com/g-m-twostay/go-indexed/Maps"
	"github.com/g-m-twostay/go-indexed/internal/churn"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

var _ Maps.IndexedMap[string, int] = (*IndexedHashMap[string, int])(nil)

func TestIndexedHashMap_All(t *testing.T) {
	M := NewOf[int, int](4, Go_Indexed.IntHash[int])
	for i := 0; i < 32; i++ {
		if j, existed := M.Add(i, i*10); existed || j != i {
			t.Error("wrong add", i, j)
		}
	}
	for i := 0; i < 32; i++ {
		if v, ok := M.Get(i); !ok || v != i*10 {
			t.Error("wrong get", i, v)
		}
		if k, ok := M.KeyAt(i); !ok || k != i {
			t.Error("wrong key at", i)
		}
		if v, ok := M.ValueAt(i); !ok || v != i*10 {
			t.Error("wrong value at", i)
		}
	}
	for i := 0; i < 32; i += 2 {
		if M.Remove(i) != i || M.Remove(i) != -1 {
			t.Error("wrong remove", i)
		}
	}
	for i := 0; i < 32; i++ {
		_, ok := M.Get(i)
		_, kok := M.KeyAt(i)
		_, vok := M.ValueAt(i)
		if want := i%2 == 1; ok != want || kok != want || vok != want || M.Has(i) != want {
			t.Error("wrong presence", i)
		}
	}
	if M.Size() != 16 {
		t.Error("wrong size", M.Size())
	}
}

func TestIndexedHashMap_AddOverwrites(t *testing.T) {
	M := NewOf[string, int](8, Go_Indexed.StringHash)
	i, _ := M.Add("k", 1)
	j, existed := M.Add("k", 2)
	if !existed || i != j || M.Size() != 1 {
		t.Error("wrong second add")
	}
	if v, _ := M.Get("k"); v != 2 {
		t.Error("value not overwritten", v)
	}
	l, existed := M.AddIfAbsent("k", 3)
	if !existed || l != i {
		t.Error("wrong add if absent on present key")
	}
	if v, _ := M.Get("k"); v != 2 {
		t.Error("add if absent overwrote", v)
	}
	n, existed := M.AddIfAbsent("n", 4)
	if existed || n != 1 {
		t.Error("wrong add if absent on new key")
	}
	if v, _ := M.ValueAt(n); v != 4 {
		t.Error("add if absent didn't store", v)
	}
}

func TestIndexedHashMap_SetValueAt(t *testing.T) {
	M := NewOf[string, string](2, Go_Indexed.StringHash)
	i, _ := M.Add("a", "x")
	if !M.SetValueAt(i, "y") {
		t.Error("set value at live index failed")
	}
	if v, _ := M.Get("a"); v != "y" {
		t.Error("wrong value", v)
	}
	M.Remove("a")
	if M.SetValueAt(i, "z") || M.SetValueAt(-1, "z") || M.SetValueAt(100, "z") {
		t.Error("set value at dead index succeeded")
	}
}

func TestIndexedHashMap_Reuse(t *testing.T) {
	M := NewOf[string, int](4, Go_Indexed.StringHash)
	M.Add("a", 1)
	M.Add("b", 2)
	if M.Remove("a") != 0 {
		t.Fatal("wrong remove")
	}
	if i, _ := M.Add("c", 3); i != 0 {
		t.Error("free slot not reused", i)
	}
	k, _ := M.KeyAt(0)
	v, _ := M.ValueAt(0)
	if k != "c" || v != 3 || M.Index("a") != -1 || M.Index("b") != 1 {
		t.Error("wrong state after reuse", k, v)
	}
}

func TestIndexedHashMap_IterateAndClear(t *testing.T) {
	M := NewOf[string, int](2, Go_Indexed.StringHash)
	for i, k := range []string{"a", "b", "c", "d"} {
		M.Add(k, i)
	}
	M.Remove("c")
	require.Equal(t, []interface{}{"a", "b", "d"}, M.Keys())
	require.Equal(t, []interface{}{0, 1, 3}, M.Values())
	require.Equal(t, "IndexedHashMap\n0: a=0\n1: b=1\n3: d=3\n", M.String())

	it := M.Iterator()
	require.True(t, it.NextTo(func(k, _ interface{}) bool { return k == "b" }))
	k, v := it.Entry()
	require.Equal(t, "b", k)
	require.Equal(t, 1, v)
	require.Equal(t, 1, it.Index())
	require.True(t, it.Remove())
	require.False(t, it.Remove())
	require.True(t, it.Next())
	require.Equal(t, "d", it.Key())
	require.Equal(t, 3, it.Value())
	require.False(t, it.Next())
	require.True(t, it.First())
	require.Equal(t, "a", it.Key())

	M.Clear()
	require.True(t, M.Empty())
	require.Empty(t, M.Keys())
	for i := 0; i < 4; i++ {
		j, existed := M.Add(fmt.Sprint(i), i)
		require.False(t, existed)
		require.Equal(t, i, j)
	}
}

// mapTarget adapts the map to churn.Target with the key length as value.
type mapTarget struct {
	*IndexedHashMap[string, int]
}

func (m mapTarget) Add(k string) (int, bool) {
	return m.IndexedHashMap.Add(k, len(k))
}

func (m mapTarget) At(i int) (string, bool) {
	return m.KeyAt(i)
}

func TestIndexedHashMap_Churn(t *testing.T) {
	l := log.New()
	l.SetLevel(log.WarnLevel)
	M := NewOf[string, int](16, Go_Indexed.StringHash)
	cfg := churn.DefaultConfig()
	cfg.Seed = 7
	st, err := churn.Run(mapTarget{M}, cfg, l)
	require.NoError(t, err)
	require.Equal(t, cfg.Steps, st.Checks)
	M.Range(func(i int, k string, v int) bool {
		require.Equal(t, len(k), v)
		return true
	})
}

func BenchmarkIndexedHashMap_ValueAt(b *testing.B) {
	const n = 1 << 12
	M := NewOf[int, int](n, Go_Indexed.IntHash[int])
	idx := make([]int, n)
	for i := range n {
		idx[i], _ = M.Add(i, i)
	}
	b.ResetTimer()
	for range b.N {
		for i, j := range idx {
			if v, _ := M.ValueAt(j); v != i {
				b.Fatal("wrong")
			}
		}
	}
}
