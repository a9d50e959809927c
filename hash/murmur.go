/*
Package hash implements the one hash primitive the rest of freqtable needs:
32-bit MurmurHash3 (the x86 variant) over a byte buffer with a caller-chosen
seed. The table uses a fixed seed of 42 for every key it ever hashes.
*/
package hash

import (
	"encoding/binary"
	"math/bits"
)

const (
	c1_32 = 0xcc9e2d51
	c2_32 = 0x1b873593
)

type digest32 struct {
	h1 uint32
}

func (d *digest32) bmix(p []byte, nblocks int) {
	h1 := d.h1
	for i := 0; i < nblocks; i++ {
		k1 := binary.LittleEndian.Uint32(p[i*4:])

		k1 *= c1_32
		k1 = bits.RotateLeft32(k1, 15)
		k1 *= c2_32

		h1 ^= k1
		h1 = bits.RotateLeft32(h1, 13)
		h1 = h1*5 + 0xe6546b64
	}
	d.h1 = h1
}

func (d *digest32) sum32(tail []byte, dlen uint) uint32 {
	h1 := d.h1

	var k1 uint32
	switch len(tail) & 3 {
	case 3:
		k1 ^= uint32(tail[2]) << 16
		fallthrough
	case 2:
		k1 ^= uint32(tail[1]) << 8
		fallthrough
	case 1:
		k1 ^= uint32(tail[0])
		k1 *= c1_32
		k1 = bits.RotateLeft32(k1, 15)
		k1 *= c2_32
		h1 ^= k1
	}

	h1 ^= uint32(dlen)
	h1 = fmix32(h1)

	return h1
}

func fmix32(k uint32) uint32 {
	k ^= k >> 16
	k *= 0x85ebca6b
	k ^= k >> 13
	k *= 0xc2b2ae35
	k ^= k >> 16
	return k
}

// Sum32 computes the 32-bit MurmurHash3 (x86 variant) of data, seeded with
// seed. The table feeds this exactly seed 42 for every key.
func Sum32(data []byte, seed uint32) uint32 {
	d := digest32{h1: seed}
	dlen := len(data)
	nblocks := dlen / 4
	d.bmix(data, nblocks)
	tail := data[nblocks*4:]
	return d.sum32(tail, uint(dlen))
}
