package index

import (
	"errors"
	"fmt"
	"hash/crc32"
	"io"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/klauspost/compress/zstd"

	"github.com/hupe1980/lexgo/internal/binio"
)

const (
	// indexMagic identifies lexgo index files (ASCII "LXI1").
	indexMagic = 0x4C584931
	// indexVersion is the current index file format version.
	indexVersion = 1

	headerSize = 16
)

var (
	ErrInvalidMagic   = errors.New("index: invalid magic number")
	ErrInvalidVersion = errors.New("index: unsupported format version")
	ErrChecksum       = errors.New("index: checksum mismatch")
)

// Encode writes an index artifact: a fixed header (magic, version, index
// type, CRC32 of the payload) followed by a zstd-compressed payload.
func Encode(w io.Writer, idx Index) error {
	body, err := encodeBody(idx)
	if err != nil {
		return err
	}

	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return fmt.Errorf("index: create compressor: %w", err)
	}
	payload := enc.EncodeAll(body, nil)
	if err := enc.Close(); err != nil {
		return err
	}

	header := make([]byte, 0, headerSize)
	header = binio.AppendUint32(header, indexMagic)
	header = binio.AppendUint32(header, indexVersion)
	header = append(header, byte(idx.Type()), 0, 0, 0)
	header = binio.AppendUint32(header, crc32.ChecksumIEEE(payload))
	if _, err := w.Write(header); err != nil {
		return err
	}
	_, err = w.Write(payload)
	return err
}

// Decode parses an index artifact produced by Encode. The data slice is not
// retained; decoding copies everything it needs.
func Decode(data []byte) (Index, error) {
	if len(data) < headerSize {
		return nil, ErrInvalidMagic
	}
	hdr := binio.NewReader(data[:headerSize])
	if hdr.Uint32() != indexMagic {
		return nil, ErrInvalidMagic
	}
	if hdr.Uint32() != indexVersion {
		return nil, ErrInvalidVersion
	}
	typ := Type(data[8])
	payload := data[headerSize:]
	want := binio.NewReader(data[12:16]).Uint32()
	if want != crc32.ChecksumIEEE(payload) {
		return nil, ErrChecksum
	}

	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("index: create decompressor: %w", err)
	}
	defer dec.Close()
	body, err := dec.DecodeAll(payload, nil)
	if err != nil {
		return nil, fmt.Errorf("index: decompress payload: %w", err)
	}

	switch typ {
	case TypeSlice:
		return decodeSliceBody(body)
	case TypeRoaring:
		return decodeRoaringBody(body)
	default:
		return nil, fmt.Errorf("index: unknown index type %d", typ)
	}
}

func encodeBody(idx Index) ([]byte, error) {
	var buf []byte
	buf = binio.AppendUint32(buf, idx.NumDocs())
	buf = binio.AppendUint32(buf, idx.NumTerms())
	for doc := uint32(0); doc < idx.NumDocs(); doc++ {
		buf = binio.AppendUint32(buf, idx.DocLen(doc))
	}

	switch v := idx.(type) {
	case *sliceIndex:
		for term := range v.docs {
			buf = binio.AppendUint32(buf, uint32(len(v.docs[term])))
			buf = binio.AppendUint32s(buf, v.docs[term])
			buf = binio.AppendUint32s(buf, v.freqs[term])
		}
	case *roaringIndex:
		for term := range v.bitmaps {
			bm, err := v.bitmaps[term].ToBytes()
			if err != nil {
				return nil, fmt.Errorf("index: serialize bitmap for term %d: %w", term, err)
			}
			buf = binio.AppendUint32(buf, uint32(len(bm)))
			buf = append(buf, bm...)
			buf = binio.AppendUint32(buf, uint32(len(v.freqs[term])))
			buf = binio.AppendUint32s(buf, v.freqs[term])
		}
	default:
		return nil, fmt.Errorf("index: cannot encode index of type %T", idx)
	}
	return buf, nil
}

func decodeSliceBody(body []byte) (Index, error) {
	r := binio.NewReader(body)
	numDocs := r.Uint32()
	numTerms := r.Uint32()
	docLens := r.Uint32s(int(numDocs))

	idx := &sliceIndex{
		numDocs: numDocs,
		docLens: docLens,
		docs:    make([][]uint32, numTerms),
		freqs:   make([][]uint32, numTerms),
	}
	for term := uint32(0); term < numTerms; term++ {
		n := int(r.Uint32())
		idx.docs[term] = r.Uint32s(n)
		idx.freqs[term] = r.Uint32s(n)
	}
	if err := r.Err(); err != nil {
		return nil, err
	}
	idx.avgDocLen = avgOf(docLens)
	return idx, nil
}

func decodeRoaringBody(body []byte) (Index, error) {
	r := binio.NewReader(body)
	numDocs := r.Uint32()
	numTerms := r.Uint32()
	docLens := r.Uint32s(int(numDocs))

	idx := &roaringIndex{
		numDocs: numDocs,
		docLens: docLens,
		bitmaps: make([]*roaring.Bitmap, numTerms),
		freqs:   make([][]uint32, numTerms),
	}
	for term := uint32(0); term < numTerms; term++ {
		raw := r.Bytes(int(r.Uint32()))
		if err := r.Err(); err != nil {
			return nil, err
		}
		bm := roaring.New()
		if err := bm.UnmarshalBinary(raw); err != nil {
			return nil, fmt.Errorf("index: parse bitmap for term %d: %w", term, err)
		}
		idx.bitmaps[term] = bm
		idx.freqs[term] = r.Uint32s(int(r.Uint32()))
	}
	if err := r.Err(); err != nil {
		return nil, err
	}
	idx.avgDocLen = avgOf(docLens)
	return idx, nil
}

func avgOf(lens []uint32) float64 {
	if len(lens) == 0 {
		return 0
	}
	var total uint64
	for _, l := range lens {
		total += uint64(l)
	}
	return float64(total) / float64(len(lens))
}
