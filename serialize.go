package freqtable

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

// cellRecordSize is the wire size of one cell record: a 1-byte occupied
// flag followed by an 8-byte big-endian count. Key pointers are meaningless
// on the wire, so only the flag and count travel per cell; the keys
// themselves are carried separately in the keys blob.
const cellRecordSize = 9

// Snapshot serializes the counter into the wire format from SPEC_FULL.md
// §6: a fixed header (total, str_allocated, size, max_prune) followed by
// four length-prefixed blobs, in order: cells, keys, histogram, HLL
// registers. This mirrors the teacher's WriteTo length-prefixed
// encoding/binary convention. The bucket count is not part of the blob;
// callers record Buckets() themselves and pass it back to Restore.
func (c *Counter) Snapshot() ([]byte, error) {
	var buf bytes.Buffer

	if err := binary.Write(&buf, binary.BigEndian, c.total); err != nil {
		return nil, fmt.Errorf("%w: writing total: %v", ErrOutOfMemory, err)
	}
	if err := binary.Write(&buf, binary.BigEndian, c.strAlloc); err != nil {
		return nil, fmt.Errorf("%w: writing str_allocated: %v", ErrOutOfMemory, err)
	}
	if err := binary.Write(&buf, binary.BigEndian, uint32(c.size)); err != nil {
		return nil, fmt.Errorf("%w: writing size: %v", ErrOutOfMemory, err)
	}
	if err := binary.Write(&buf, binary.BigEndian, c.maxPrune); err != nil {
		return nil, fmt.Errorf("%w: writing max_prune: %v", ErrOutOfMemory, err)
	}

	cellsBytes := make([]byte, 0, len(c.cells)*cellRecordSize)
	var keysBytes []byte
	for i := range c.cells {
		cl := &c.cells[i]
		if cl.occupied() {
			cellsBytes = append(cellsBytes, 1)
			keysBytes = append(keysBytes, cl.key...)
			keysBytes = append(keysBytes, 0)
		} else {
			cellsBytes = append(cellsBytes, 0)
		}
		var countBytes [8]byte
		binary.BigEndian.PutUint64(countBytes[:], uint64(cl.count))
		cellsBytes = append(cellsBytes, countBytes[:]...)
	}

	histoBytes := make([]byte, histogramBins*4)
	for i, v := range c.histo {
		binary.BigEndian.PutUint32(histoBytes[i*4:], v)
	}

	hllBytes := c.sketch.Registers()

	for _, blob := range [][]byte{cellsBytes, keysBytes, histoBytes, hllBytes} {
		if err := binary.Write(&buf, binary.BigEndian, uint64(len(blob))); err != nil {
			return nil, fmt.Errorf("%w: writing blob length: %v", ErrOutOfMemory, err)
		}
		if _, err := buf.Write(blob); err != nil {
			return nil, fmt.Errorf("%w: writing blob: %v", ErrOutOfMemory, err)
		}
	}

	return buf.Bytes(), nil
}

// Restore rebuilds a counter of the given bucket count from a snapshot
// produced by Snapshot.
func Restore(buckets uint64, snapshot []byte) (*Counter, error) {
	c, err := New(buckets)
	if err != nil {
		return nil, err
	}

	r := bytes.NewReader(snapshot)

	if err := binary.Read(r, binary.BigEndian, &c.total); err != nil {
		return nil, fmt.Errorf("%w: reading total: %v", ErrCorruptSnapshot, err)
	}
	if err := binary.Read(r, binary.BigEndian, &c.strAlloc); err != nil {
		return nil, fmt.Errorf("%w: reading str_allocated: %v", ErrCorruptSnapshot, err)
	}
	var size32 uint32
	if err := binary.Read(r, binary.BigEndian, &size32); err != nil {
		return nil, fmt.Errorf("%w: reading size: %v", ErrCorruptSnapshot, err)
	}
	c.size = uint64(size32)
	if err := binary.Read(r, binary.BigEndian, &c.maxPrune); err != nil {
		return nil, fmt.Errorf("%w: reading max_prune: %v", ErrCorruptSnapshot, err)
	}

	cellsBytes, err := readBlob(r)
	if err != nil {
		return nil, err
	}
	keysBytes, err := readBlob(r)
	if err != nil {
		return nil, err
	}
	histoBytes, err := readBlob(r)
	if err != nil {
		return nil, err
	}
	hllBytes, err := readBlob(r)
	if err != nil {
		return nil, err
	}

	if len(cellsBytes) != len(c.cells)*cellRecordSize {
		return nil, fmt.Errorf("%w: cells blob has %d bytes, expected %d for %d buckets",
			ErrCorruptSnapshot, len(cellsBytes), len(c.cells)*cellRecordSize, len(c.cells))
	}

	keyOffset := 0
	for i := range c.cells {
		rec := cellsBytes[i*cellRecordSize : i*cellRecordSize+cellRecordSize]
		occupied := rec[0] != 0
		count := int64(binary.BigEndian.Uint64(rec[1:9]))
		if !occupied {
			c.cells[i] = cell{count: count}
			continue
		}
		nul := bytes.IndexByte(keysBytes[keyOffset:], 0)
		if nul == -1 {
			return nil, fmt.Errorf("%w: keys blob exhausted before all occupied slots were filled", ErrCorruptSnapshot)
		}
		key := make([]byte, nul)
		copy(key, keysBytes[keyOffset:keyOffset+nul])
		c.cells[i] = cell{key: key, count: count}
		keyOffset += nul + 1
	}

	if len(histoBytes) != histogramBins*4 {
		return nil, fmt.Errorf("%w: histogram blob has %d bytes, expected %d", ErrCorruptSnapshot, len(histoBytes), histogramBins*4)
	}
	for i := 0; i < histogramBins; i++ {
		c.histo[i] = binary.BigEndian.Uint32(histoBytes[i*4:])
	}

	if err := c.sketch.SetRegisters(hllBytes); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}

	return c, nil
}

func readBlob(r *bytes.Reader) ([]byte, error) {
	var length uint64
	if err := binary.Read(r, binary.BigEndian, &length); err != nil {
		return nil, fmt.Errorf("%w: reading blob length: %v", ErrCorruptSnapshot, err)
	}
	blob := make([]byte, length)
	if _, err := io.ReadFull(r, blob); err != nil {
		return nil, fmt.Errorf("%w: reading blob: %v", ErrCorruptSnapshot, err)
	}
	return blob, nil
}
