// Package churn drives an index-stable collection through a long random sequence of adds and removes and checks
// it against a plain key->index model after every step.
package churn

import (
	"fmt"
	"math/rand"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Target is the part of an indexed collection that churn exercises. Both the set and the map (through an adapter)
// satisfy it.
type Target interface {
	Add(key string) (int, bool)
	Remove(key string) int
	Index(key string) int
	At(index int) (string, bool)
	Size() int
}

// Config of one churn run.
type Config struct {
	Keys       int     // distinct keys in the pool.
	Steps      int     // number of add/remove steps.
	RemoveProb float64 // probability of a removal after each add.
	KeyLen     int     // length of the random keys.
	Seed       int64
	LogEvery   int // debug progress interval in steps, 0 disables it.
}

// DefaultConfig is 2000 keys churned over 50000 steps with 90% removals.
func DefaultConfig() Config {
	return Config{Keys: 2000, Steps: 50000, RemoveProb: 0.9, KeyLen: 12, Seed: 1, LogEvery: 10000}
}

func (c Config) validate() error {
	if c.Keys <= 0 || c.Steps < 0 || c.KeyLen <= 0 {
		return errors.Errorf("invalid churn config: keys=%d steps=%d keyLen=%d", c.Keys, c.Steps, c.KeyLen)
	}
	if c.RemoveProb < 0 || c.RemoveProb > 1 {
		return errors.Errorf("invalid churn config: removeProb=%v", c.RemoveProb)
	}
	n := 1
	for i := 0; i < c.KeyLen && n < c.Keys; i++ {
		n *= len(letters)
	}
	if n < c.Keys {
		return errors.Errorf("invalid churn config: %d keys don't fit in length %d", c.Keys, c.KeyLen)
	}
	return nil
}

// Stats of a finished run.
type Stats struct {
	Adds, Readds, Removes, Reuses, Checks int
	MaxSize                               int
}

// MismatchError describes the first disagreement between the target and the model.
type MismatchError struct {
	Step      int
	Op        string
	Key       string
	Want, Got int
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("step %d: %s %q: want %d, got %d", e.Step, e.Op, e.Key, e.Want, e.Got)
}

const letters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Keys returns n distinct random strings of length keyLen.
func Keys(r *rand.Rand, n, keyLen int) []string {
	seen := make(map[string]struct{}, n)
	ks := make([]string, 0, n)
	b := make([]byte, keyLen)
	for len(ks) < n {
		for i := range b {
			b[i] = letters[r.Intn(len(letters))]
		}
		if _, ok := seen[string(b)]; !ok {
			seen[string(b)] = struct{}{}
			ks = append(ks, string(b))
		}
	}
	return ks
}

type model struct {
	byKey   map[string]int
	byIndex map[int]string
	live    []string //for picking a random removal victim.
	pos     map[string]int
	freed   map[int]struct{}
}

func (m *model) add(k string, i int) {
	m.byKey[k], m.byIndex[i] = i, k
	m.pos[k] = len(m.live)
	m.live = append(m.live, k)
	delete(m.freed, i)
}

func (m *model) remove(k string) int {
	i := m.byKey[k]
	delete(m.byKey, k)
	delete(m.byIndex, i)
	p, last := m.pos[k], len(m.live)-1
	m.live[p] = m.live[last]
	m.pos[m.live[p]] = p
	m.live = m.live[:last]
	delete(m.pos, k)
	m.freed[i] = struct{}{}
	return i
}

// Run churns t and returns the first mismatch found, if any. t must be empty.
func Run(t Target, cfg Config, logger log.FieldLogger) (Stats, error) {
	var st Stats
	if err := cfg.validate(); err != nil {
		return st, err
	}
	if t.Size() != 0 {
		return st, errors.Errorf("churn target isn't empty: size %d", t.Size())
	}
	r := rand.New(rand.NewSource(cfg.Seed))
	pool := Keys(r, cfg.Keys, cfg.KeyLen)
	m := &model{
		byKey:   make(map[string]int),
		byIndex: make(map[int]string),
		pos:     make(map[string]int),
		freed:   make(map[int]struct{}),
	}
	for step := 0; step < cfg.Steps; step++ {
		k := pool[r.Intn(len(pool))]
		i, existed := t.Add(k)
		if want, ok := m.byKey[k]; ok {
			st.Readds++
			if !existed || i != want {
				return st, errors.WithStack(&MismatchError{step, "re-add", k, want, i})
			}
		} else {
			if existed {
				return st, errors.WithStack(&MismatchError{step, "add reported existing", k, -1, i})
			}
			if other, taken := m.byIndex[i]; taken {
				return st, errors.WithStack(&MismatchError{step, "add reused live index of " + other, k, -1, i})
			}
			if _, ok := m.freed[i]; ok {
				st.Reuses++
			}
			st.Adds++
			m.add(k, i)
		}
		if len(m.live) > 0 && r.Float64() < cfg.RemoveProb {
			v := m.live[r.Intn(len(m.live))]
			want := m.remove(v)
			if got := t.Remove(v); got != want {
				return st, errors.WithStack(&MismatchError{step, "remove", v, want, got})
			}
			if got := t.Index(v); got != -1 {
				return st, errors.WithStack(&MismatchError{step, "index after remove", v, -1, got})
			}
			if got, ok := t.At(want); ok {
				return st, errors.WithStack(&MismatchError{step, "at freed index holds " + got, v, -1, want})
			}
			st.Removes++
		}
		if err := check(t, m, step); err != nil {
			return st, err
		}
		st.Checks++
		st.MaxSize = max(st.MaxSize, len(m.live))
		if cfg.LogEvery > 0 && (step+1)%cfg.LogEvery == 0 {
			logger.WithFields(log.Fields{"step": step + 1, "size": len(m.live), "reuses": st.Reuses}).Debug("churn progress")
		}
	}
	return st, nil
}

func check(t Target, m *model, step int) error {
	if t.Size() != len(m.byKey) {
		return errors.WithStack(&MismatchError{step, "size", "", len(m.byKey), t.Size()})
	}
	for k, want := range m.byKey {
		if got := t.Index(k); got != want {
			return errors.WithStack(&MismatchError{step, "index", k, want, got})
		}
		if got, ok := t.At(want); !ok || got != k {
			return errors.WithStack(&MismatchError{step, "at returned " + got, k, want, -1})
		}
	}
	return nil
}
