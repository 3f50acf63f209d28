package session

import (
	"math/rand"
	"strconv"
	"strings"
)

// Pool is the set of record ids not yet answered in a play round, kept as a
// slice so a uniform pick is one index.
type Pool []int64

// NewPool builds a pool from ids, dropping duplicates.
func NewPool(ids ...int64) Pool {
	seen := make(map[int64]struct{}, len(ids))
	p := make(Pool, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		p = append(p, id)
	}
	return p
}

func (p Pool) Len() int {
	return len(p)
}

// Pick returns a uniformly random id. The pool must not be empty.
func (p Pool) Pick(r *rand.Rand) int64 {
	return p[r.Intn(len(p))]
}

// Remove drops id and reports whether it was present. Order is not kept.
func (p *Pool) Remove(id int64) bool {
	s := *p
	for i := range s {
		if s[i] != id {
			continue
		}
		last := len(s) - 1
		s[i] = s[last]
		*p = s[:last]
		return true
	}
	return false
}

func (p Pool) String() string {
	arr := make([]string, len(p))
	for i := range p {
		arr[i] = strconv.FormatInt(p[i], 10)
	}
	return strings.Join(arr, " ")
}
