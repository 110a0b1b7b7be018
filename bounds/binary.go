package bounds

import (
	"errors"
	"fmt"
	"hash/crc32"
	"io"

	"github.com/klauspost/compress/zstd"

	"github.com/hupe1980/lexgo/internal/binio"
)

const (
	// boundsMagic identifies lexgo score-bound files (ASCII "LXB1").
	boundsMagic = 0x4C584231
	// boundsVersion is the current bound file format version.
	boundsVersion = 1

	headerSize = 16
)

var (
	ErrInvalidMagic   = errors.New("bounds: invalid magic number")
	ErrInvalidVersion = errors.New("bounds: unsupported format version")
	ErrChecksum       = errors.New("bounds: checksum mismatch")
)

// Encode writes a score-bound artifact. The header records the
// representation kind, so Decode returns the same Table that was written.
func Encode(w io.Writer, t Table) error {
	var body []byte
	switch v := t.(type) {
	case *Raw:
		body = binio.AppendUint32(body, uint32(v.blockLen))
		body = binio.AppendUint32(body, uint32(len(v.maxes)))
		body = binio.AppendFloat32s(body, v.maxes)
		for term := range v.lasts {
			body = binio.AppendUint32(body, uint32(len(v.lasts[term])))
			body = binio.AppendUint32s(body, v.lasts[term])
			body = binio.AppendFloat32s(body, v.bmax[term])
		}
	case *Quantized:
		body = binio.AppendUint32(body, uint32(v.blockLen))
		body = binio.AppendUint32(body, uint32(len(v.maxes)))
		body = binio.AppendFloat32(body, v.scale)
		body = append(body, v.maxes...)
		for term := range v.lasts {
			body = binio.AppendUint32(body, uint32(len(v.lasts[term])))
			body = binio.AppendUint32s(body, v.lasts[term])
			body = append(body, v.bmax[term]...)
		}
	default:
		return fmt.Errorf("bounds: cannot encode table of type %T", t)
	}

	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return fmt.Errorf("bounds: create compressor: %w", err)
	}
	payload := enc.EncodeAll(body, nil)
	if err := enc.Close(); err != nil {
		return err
	}

	header := make([]byte, 0, headerSize)
	header = binio.AppendUint32(header, boundsMagic)
	header = binio.AppendUint32(header, boundsVersion)
	header = append(header, byte(t.Kind()), 0, 0, 0)
	header = binio.AppendUint32(header, crc32.ChecksumIEEE(payload))
	if _, err := w.Write(header); err != nil {
		return err
	}
	_, err = w.Write(payload)
	return err
}

// Decode parses a score-bound artifact produced by Encode.
func Decode(data []byte) (Table, error) {
	if len(data) < headerSize {
		return nil, ErrInvalidMagic
	}
	hdr := binio.NewReader(data[:headerSize])
	if hdr.Uint32() != boundsMagic {
		return nil, ErrInvalidMagic
	}
	if hdr.Uint32() != boundsVersion {
		return nil, ErrInvalidVersion
	}
	kind := Kind(data[8])
	payload := data[headerSize:]
	want := binio.NewReader(data[12:16]).Uint32()
	if want != crc32.ChecksumIEEE(payload) {
		return nil, ErrChecksum
	}

	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("bounds: create decompressor: %w", err)
	}
	defer dec.Close()
	body, err := dec.DecodeAll(payload, nil)
	if err != nil {
		return nil, fmt.Errorf("bounds: decompress payload: %w", err)
	}

	switch kind {
	case KindRaw:
		return decodeRaw(body)
	case KindQuantized:
		return decodeQuantized(body)
	default:
		return nil, fmt.Errorf("bounds: unknown table kind %d", kind)
	}
}

func decodeRaw(body []byte) (*Raw, error) {
	r := binio.NewReader(body)
	t := &Raw{blockLen: int(r.Uint32())}
	numTerms := int(r.Uint32())
	t.maxes = r.Float32s(numTerms)
	t.lasts = make([][]uint32, numTerms)
	t.bmax = make([][]float32, numTerms)
	for term := 0; term < numTerms; term++ {
		n := int(r.Uint32())
		t.lasts[term] = r.Uint32s(n)
		t.bmax[term] = r.Float32s(n)
	}
	if err := r.Err(); err != nil {
		return nil, err
	}
	return t, nil
}

func decodeQuantized(body []byte) (*Quantized, error) {
	r := binio.NewReader(body)
	t := &Quantized{blockLen: int(r.Uint32())}
	numTerms := int(r.Uint32())
	t.scale = r.Float32()
	t.maxes = r.Bytes(numTerms)
	t.lasts = make([][]uint32, numTerms)
	t.bmax = make([][]uint8, numTerms)
	for term := 0; term < numTerms; term++ {
		n := int(r.Uint32())
		t.lasts[term] = r.Uint32s(n)
		t.bmax[term] = r.Bytes(n)
	}
	if err := r.Err(); err != nil {
		return nil, err
	}
	return t, nil
}
