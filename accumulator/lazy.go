package accumulator

import "github.com/hupe1980/lexgo/topk"

// lazyBlockLen is the number of documents covered by one lazily
// materialized block. Must be a power of two.
const lazyBlockLen = 1 << 12

// Lazy partitions the document range into fixed-size blocks whose score
// slots are allocated and zeroed only on first write per query. Reset is
// O(#blocks) instead of O(#docs): it bumps a generation counter, and a block
// whose generation lags is treated as all zero until touched.
type Lazy struct {
	blocks [][]float32
	gens   []uint32
	gen    uint32
}

var _ Accumulator = (*Lazy)(nil)

// NewLazy creates a lazy accumulator for numDocs documents.
func NewLazy(numDocs uint32) *Lazy {
	n := (int(numDocs) + lazyBlockLen - 1) / lazyBlockLen
	return &Lazy{
		blocks: make([][]float32, n),
		gens:   make([]uint32, n),
		gen:    1,
	}
}

func (a *Lazy) Reset() {
	a.gen++
}

func (a *Lazy) touch(b int) []float32 {
	if a.blocks[b] == nil {
		a.blocks[b] = make([]float32, lazyBlockLen)
	} else {
		clear(a.blocks[b])
	}
	a.gens[b] = a.gen
	return a.blocks[b]
}

func (a *Lazy) Accumulate(doc uint32, delta float32) {
	b := int(doc / lazyBlockLen)
	blk := a.blocks[b]
	if a.gens[b] != a.gen {
		blk = a.touch(b)
	}
	blk[doc%lazyBlockLen] += delta
}

func (a *Lazy) CollectInto(sel *topk.Selector) {
	for b, blk := range a.blocks {
		if a.gens[b] != a.gen {
			continue
		}
		base := uint32(b * lazyBlockLen)
		for i, s := range blk {
			if s != 0 {
				sel.Insert(s, base+uint32(i))
			}
		}
	}
}
