package cursor

import "github.com/hupe1980/lexgo/bounds"

// BlockMax is a MaxScored cursor that additionally tracks the block bounds
// of its term. The current block is advanced lazily: queries only ever move
// forward, so the block position is monotone and lookups stay O(1) amortized.
type BlockMax struct {
	MaxScored
	blocks bounds.BlockList
	block  int
}

var _ BlockMaxCursor = (*BlockMax)(nil)

// NewBlockMax wraps a max-scored cursor with its term's block bounds.
func NewBlockMax(c *MaxScored, blocks bounds.BlockList) *BlockMax {
	return &BlockMax{MaxScored: *c, blocks: blocks}
}

// seek advances the block position to the block containing the first
// posting with doc id >= d. Past the final block it stays clamped on the
// last one, whose bound still dominates nothing the cursor can return.
func (c *BlockMax) seek(d uint32) {
	for c.block < c.blocks.NumBlocks()-1 && c.blocks.LastDocID(c.block) < d {
		c.block++
	}
}

func (c *BlockMax) BlockMaxScore(d uint32) float32 {
	if c.blocks == nil || c.blocks.NumBlocks() == 0 {
		return c.MaxScore()
	}
	c.seek(d)
	return c.blocks.MaxScore(c.block)
}

func (c *BlockMax) BlockMaxDocID(d uint32) uint32 {
	if c.blocks == nil || c.blocks.NumBlocks() == 0 {
		return c.end
	}
	c.seek(d)
	return c.blocks.LastDocID(c.block)
}
