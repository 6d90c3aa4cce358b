package churn

import (
	"errors"
	"math/rand"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

// mapTarget is a correct Target built on builtin maps with a free list.
type mapTarget struct {
	idx  map[string]int
	keys map[int]string
	free []int
	next int
}

func newMapTarget() *mapTarget {
	return &mapTarget{idx: map[string]int{}, keys: map[int]string{}}
}

func (m *mapTarget) Add(k string) (int, bool) {
	if i, ok := m.idx[k]; ok {
		return i, true
	}
	var i int
	if n := len(m.free); n > 0 {
		i, m.free = m.free[n-1], m.free[:n-1]
	} else {
		i = m.next
		m.next++
	}
	m.idx[k], m.keys[i] = i, k
	return i, false
}

func (m *mapTarget) Remove(k string) int {
	i, ok := m.idx[k]
	if !ok {
		return -1
	}
	delete(m.idx, k)
	delete(m.keys, i)
	m.free = append(m.free, i)
	return i
}

func (m *mapTarget) Index(k string) int {
	if i, ok := m.idx[k]; ok {
		return i
	}
	return -1
}

func (m *mapTarget) At(i int) (string, bool) {
	k, ok := m.keys[i]
	return k, ok
}

func (m *mapTarget) Size() int { return len(m.idx) }

// forgetful loses every 100th removal.
type forgetful struct {
	*mapTarget
	n int
}

func (f *forgetful) Remove(k string) int {
	if f.n++; f.n%100 == 0 {
		return f.mapTarget.Index(k)
	}
	return f.mapTarget.Remove(k)
}

func quietLogger() *log.Logger {
	l := log.New()
	l.SetLevel(log.WarnLevel)
	return l
}

func TestRun_Correct(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Steps = 5000
	st, err := Run(newMapTarget(), cfg, quietLogger())
	require.NoError(t, err)
	require.Equal(t, cfg.Steps, st.Checks)
	require.Greater(t, st.Removes, 0)
	require.Greater(t, st.Reuses, 0)
	require.Greater(t, st.Readds, 0)
}

func TestRun_DetectsMismatch(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Steps = 5000
	_, err := Run(&forgetful{mapTarget: newMapTarget()}, cfg, quietLogger())
	require.Error(t, err)
	var m *MismatchError
	require.True(t, errors.As(err, &m))
	require.Equal(t, "index after remove", m.Op)
}

func TestRun_InvalidConfig(t *testing.T) {
	for _, cfg := range []Config{
		{Keys: 0, Steps: 1, KeyLen: 4},
		{Keys: 10, Steps: 1, KeyLen: 4, RemoveProb: 1.5},
		{Keys: 100, Steps: 1, KeyLen: 1},
	} {
		_, err := Run(newMapTarget(), cfg, quietLogger())
		require.Error(t, err, "%+v", cfg)
	}
}

func TestRun_NonEmptyTarget(t *testing.T) {
	m := newMapTarget()
	m.Add("x")
	_, err := Run(m, DefaultConfig(), quietLogger())
	require.Error(t, err)
}

func TestKeys(t *testing.T) {
	ks := Keys(rand.New(rand.NewSource(3)), 500, 3)
	require.Len(t, ks, 500)
	seen := map[string]bool{}
	for _, k := range ks {
		require.Len(t, k, 3)
		require.False(t, seen[k], k)
		seen[k] = true
	}
}
