package coder

import (
	"github.com/arloliu/sparcode/coding"
	"github.com/arloliu/sparcode/internal/pool"
)

// Scratch is the call-private working memory of a coding call, split into
// typed zones sized once from the parameters:
//
//   - last patch: the gather buffer of the current patch; after a call it
//     holds the last patch coded
//   - pending window: a ring of the coded patches of the current pooling
//     neighborhood
//   - matcher work: correlations, used flags and the coefficient buffer of one
//     matcher call
//   - accumulator: the pooled (atom, channel) slots of one neighborhood
//
// A Scratch may be reused across calls with parameters it fits, but never by
// two calls at the same time.
type Scratch struct {
	lastPatch []float64
	pending   patchRing
	corr      []float64
	used      []bool
	work      *coding.Work
	coeffs    []coding.Coefficient
	acc       []float64

	release []func()
}

// NewScratch allocates a scratch arena of CodingTmpsLength bytes for p.
// Zones are drawn from shared pools; call Release to give them back.
func NewScratch(p Params) *Scratch {
	k := min(p.CoeffCount, p.WordCount)
	window := p.ReduceSpread * p.ReduceSpread

	s := &Scratch{}
	s.lastPatch = s.float64s(p.Patch.Size())
	s.pending = patchRing{
		slots:  s.int32s(window * k),
		vals:   s.float64s(window * k),
		counts: s.int32s(window),
		stride: k,
	}
	s.corr = s.float64s(p.WordCount)
	s.used = s.bools(p.WordCount)
	s.work = coding.WorkFrom(s.corr, s.used)
	s.coeffs = make([]coding.Coefficient, 0, k)
	s.acc = s.float64s(p.WordCount * maxChannels)

	return s
}

func (s *Scratch) float64s(n int) []float64 {
	v, release := pool.GetFloat64Slice(n)
	s.release = append(s.release, release)

	return v
}

func (s *Scratch) int32s(n int) []int32 {
	v, release := pool.GetInt32Slice(n)
	s.release = append(s.release, release)

	return v
}

func (s *Scratch) bools(n int) []bool {
	v, release := pool.GetBoolSlice(n)
	s.release = append(s.release, release)

	return v
}

// Release returns the zones to their pools. The Scratch must not be used afterwards.
func (s *Scratch) Release() {
	for _, release := range s.release {
		release()
	}
	*s = Scratch{}
}

// Bytes returns the arena size in bytes; it equals CodingTmpsLength of the
// parameters the Scratch was created with.
func (s *Scratch) Bytes() int {
	return len(s.lastPatch)*sizeofFloat64 +
		len(s.pending.slots)*sizeofInt32 + len(s.pending.vals)*sizeofFloat64 + len(s.pending.counts)*sizeofInt32 +
		len(s.corr)*sizeofFloat64 + len(s.used) + cap(s.coeffs)*sizeofCoefficient +
		len(s.acc)*sizeofFloat64
}

// LastPatch returns the diagnostic copy of the last patch coded. It aliases the
// scratch and is overwritten by the next call.
func (s *Scratch) LastPatch() []float64 {
	return s.lastPatch
}

// fits reports whether every zone is large enough for p.
func (s *Scratch) fits(p Params) bool {
	k := min(p.CoeffCount, p.WordCount)
	window := p.ReduceSpread * p.ReduceSpread

	return len(s.lastPatch) >= p.Patch.Size() &&
		s.pending.stride >= k && len(s.pending.counts) >= window &&
		len(s.corr) >= p.WordCount && len(s.used) >= p.WordCount &&
		cap(s.coeffs) >= k &&
		len(s.acc) >= p.WordCount*p.Polarity.Channels()
}

// patchRing is a FIFO ring of coded patches. Each patch occupies a fixed
// stride of (slot, value) entries of which counts[i] are in use.
type patchRing struct {
	slots  []int32
	vals   []float64
	counts []int32
	stride int
	head   int
	size   int
}

func (r *patchRing) reset() {
	r.head, r.size = 0, 0
}

func (r *patchRing) len() int {
	return r.size
}

// push starts a new patch at the tail and returns its entry index.
// The ring must not be full.
func (r *patchRing) push() int {
	i := (r.head + r.size) % len(r.counts)
	r.counts[i] = 0
	r.size++

	return i
}

// add appends an entry to patch i.
func (r *patchRing) add(i, slot int, v float64) {
	n := int(r.counts[i])
	r.slots[i*r.stride+n] = int32(slot)
	r.vals[i*r.stride+n] = v
	r.counts[i]++
}

// pop removes the oldest patch and returns its entries.
func (r *patchRing) pop() ([]int32, []float64) {
	i := r.head
	r.head = (r.head + 1) % len(r.counts)
	r.size--

	start := i * r.stride
	end := start + int(r.counts[i])

	return r.slots[start:end], r.vals[start:end]
}
