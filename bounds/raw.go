package bounds

// Raw is the uncompressed score-bound table: exact float32 bounds as
// computed at build time.
type Raw struct {
	blockLen int
	maxes    []float32
	lasts    [][]uint32
	bmax     [][]float32
}

var _ Table = (*Raw)(nil)

func (t *Raw) Kind() Kind       { return KindRaw }
func (t *Raw) NumTerms() uint32 { return uint32(len(t.maxes)) }

// BlockLen is the number of postings covered per block bound.
func (t *Raw) BlockLen() int { return t.blockLen }

func (t *Raw) MaxScore(term uint32) float32 {
	if term >= uint32(len(t.maxes)) {
		return 0
	}
	return t.maxes[term]
}

func (t *Raw) Blocks(term uint32) BlockList {
	if term >= uint32(len(t.lasts)) {
		return nil
	}
	return rawBlocks{lasts: t.lasts[term], maxes: t.bmax[term]}
}

type rawBlocks struct {
	lasts []uint32
	maxes []float32
}

func (b rawBlocks) NumBlocks() int         { return len(b.lasts) }
func (b rawBlocks) LastDocID(i int) uint32 { return b.lasts[i] }
func (b rawBlocks) MaxScore(i int) float32 { return b.maxes[i] }
