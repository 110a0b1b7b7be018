package bounds

import "math"

// Quantized stores one byte per bound on a uniform scale. Quantization
// rounds up, so a dequantized bound is always >= the exact bound it encodes;
// pruning against it stays sound, it just skips slightly less.
type Quantized struct {
	blockLen int
	scale    float32
	maxes    []uint8
	lasts    [][]uint32
	bmax     [][]uint8
}

var _ Table = (*Quantized)(nil)

// Quantize compresses a Raw table to one byte per bound.
func Quantize(t *Raw) *Quantized {
	var global float32
	for _, m := range t.maxes {
		if m > global {
			global = m
		}
	}
	scale := global / math.MaxUint8
	if scale <= 0 {
		scale = 1
	}
	// Nudge the scale until the top bucket covers the global maximum even
	// after float32 rounding.
	for float32(math.MaxUint8)*scale < global {
		scale = math.Nextafter32(scale, float32(math.Inf(1)))
	}

	q := &Quantized{
		blockLen: t.blockLen,
		scale:    scale,
		maxes:    make([]uint8, len(t.maxes)),
		lasts:    make([][]uint32, len(t.lasts)),
		bmax:     make([][]uint8, len(t.bmax)),
	}
	for term := range t.maxes {
		q.maxes[term] = quantizeUp(t.maxes[term], scale)
		q.lasts[term] = append([]uint32(nil), t.lasts[term]...)
		q.bmax[term] = make([]uint8, len(t.bmax[term]))
		for i, v := range t.bmax[term] {
			q.bmax[term][i] = quantizeUp(v, scale)
		}
	}
	return q
}

// quantizeUp returns the smallest bucket whose dequantized value is >= v.
func quantizeUp(v, scale float32) uint8 {
	if v <= 0 {
		return 0
	}
	u := uint32(math.Ceil(float64(v) / float64(scale)))
	for u < math.MaxUint8 && float32(u)*scale < v {
		u++
	}
	if u > math.MaxUint8 {
		u = math.MaxUint8
	}
	return uint8(u)
}

func (t *Quantized) Kind() Kind       { return KindQuantized }
func (t *Quantized) NumTerms() uint32 { return uint32(len(t.maxes)) }

// BlockLen is the number of postings covered per block bound.
func (t *Quantized) BlockLen() int { return t.blockLen }

func (t *Quantized) MaxScore(term uint32) float32 {
	if term >= uint32(len(t.maxes)) {
		return 0
	}
	return float32(t.maxes[term]) * t.scale
}

func (t *Quantized) Blocks(term uint32) BlockList {
	if term >= uint32(len(t.lasts)) {
		return nil
	}
	return quantizedBlocks{lasts: t.lasts[term], maxes: t.bmax[term], scale: t.scale}
}

type quantizedBlocks struct {
	lasts []uint32
	maxes []uint8
	scale float32
}

func (b quantizedBlocks) NumBlocks() int         { return len(b.lasts) }
func (b quantizedBlocks) LastDocID(i int) uint32 { return b.lasts[i] }
func (b quantizedBlocks) MaxScore(i int) float32 { return float32(b.maxes[i]) * b.scale }
