package main

import (
	"github.com/pkg/errors"

	Go_Indexed "github.com/g-m-twostay/go-indexed"
	"github.com/g-m-twostay/go-indexed/Maps/IndexedMap"
	"github.com/g-m-twostay/go-indexed/Sets/IndexedSet"
	"github.com/g-m-twostay/go-indexed/internal/churn"
)

// mapTarget stores the key's length as its value so values can be checked too.
type mapTarget struct {
	*IndexedMap.IndexedHashMap[string, int]
}

func (m mapTarget) Add(k string) (int, bool) {
	return m.IndexedHashMap.Add(k, len(k))
}

// At reports a slot whose value doesn't match its key as absent, so churn flags it.
func (m mapTarget) At(i int) (string, bool) {
	if k, ok := m.KeyAt(i); ok {
		if v, _ := m.ValueAt(i); v == len(k) {
			return k, true
		}
	}
	return "", false
}

func newTarget(kind string, capacity int) (churn.Target, error) {
	switch kind {
	case "set":
		return IndexedSet.NewOf[string](capacity, Go_Indexed.StringHash), nil
	case "map":
		return mapTarget{IndexedMap.NewOf[string, int](capacity, Go_Indexed.StringHash)}, nil
	default:
		return nil, errors.Errorf("unknown kind %q, want set or map", kind)
	}
}
