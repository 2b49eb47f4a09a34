// SPDX-License-Identifier: MIT

package cvx

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/speigh/matrix"
)

// psdSlack is the relative magnitude below which a negative eigenvalue of B
// is treated as round-off and dropped.
const psdSlack = 1e-10

// coneFactor holds F with FᵀF = B, so that zᵀBz ≤ 1 becomes the second-order
// cone constraint ‖Fz‖₂ ≤ 1. Only the rows of the nonzero spectrum are kept.
type coneFactor struct {
	n    int
	b    []float64 // copy of B, compared on cache hits
	rows int       // rank of B
	f    []float64 // rows×n, row-major: row k is sqrt(λ_k)·q_kᵀ
}

// newConeFactor eigen-decomposes a symmetric positive semidefinite b.
//
// Errors:
//   - ErrBadInput when b is not symmetric or has a clearly negative eigenvalue.
func newConeFactor(b *matrix.Dense) (*coneFactor, error) {
	n := b.Rows()
	raw := b.RawData()
	scale := floats.Norm(raw, 2)
	if scale == 0 {
		scale = 1
	}
	vals, Q, err := matrix.Eigen(b, matrix.DefaultEigenTol*scale, matrix.DefaultEigenMaxIter(n))
	if err != nil {
		return nil, fmt.Errorf("B: %v: %w", err, ErrBadInput)
	}
	top := math.Max(1, floats.Max(vals))
	q := Q.RawData()
	cf := &coneFactor{n: n, b: append([]float64(nil), raw...)}
	var i int
	for k, v := range vals {
		if v < -psdSlack*top {
			return nil, fmt.Errorf("B: eigenvalue %g < 0: %w", v, ErrBadInput)
		}
		if v <= psdSlack*top {
			continue
		}
		sv := math.Sqrt(v)
		for i = 0; i < n; i++ {
			cf.f = append(cf.f, sv*q[i*n+k])
		}
		cf.rows++
	}

	return cf, nil
}

// hashDense is FNV-64a over the IEEE-754 bits of the row-major buffer.
func hashDense(d *matrix.Dense) uint64 {
	h := fnv.New64a()
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(d.Rows()))
	_, _ = h.Write(buf[:])
	for _, v := range d.RawData() {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
		_, _ = h.Write(buf[:])
	}

	return h.Sum64()
}

// factorFor returns the cone factor of b, from the cache when an entry with
// identical contents exists.
func (s *Solver) factorFor(b *matrix.Dense) (*coneFactor, error) {
	if s.cache == nil {
		return newConeFactor(b)
	}
	key := hashDense(b)
	bucket, _ := s.cache.Get(key)
	for _, cf := range bucket {
		if cf.n == b.Rows() && floats.Same(cf.b, b.RawData()) {
			return cf, nil
		}
	}
	cf, err := newConeFactor(b)
	if err != nil {
		return nil, err
	}
	next := make([]*coneFactor, len(bucket), len(bucket)+1)
	copy(next, bucket)
	s.cache.Add(key, append(next, cf))

	return cf, nil
}
