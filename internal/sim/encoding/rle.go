// Package encoding packs terrain textures for the wire: a small color table
// plus run-length encoded per-texel indices.
package encoding

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"fmt"
)

// EncodeRLE writes ids as base64 of uvarint (index, run) pairs.
func EncodeRLE(ids []uint16) string {
	var buf bytes.Buffer
	var tmp [binary.MaxVarintLen64]byte
	put := func(v uint64) {
		n := binary.PutUvarint(tmp[:], v)
		buf.Write(tmp[:n])
	}
	for i := 0; i < len(ids); {
		j := i + 1
		for j < len(ids) && ids[j] == ids[i] {
			j++
		}
		put(uint64(ids[i]))
		put(uint64(j - i))
		i = j
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes())
}

// DecodeRLE expands an EncodeRLE payload that must hold exactly n ids.
func DecodeRLE(b64 string, n int) ([]uint16, error) {
	raw, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, err
	}
	out := make([]uint16, 0, n)
	for i := 0; i < len(raw); {
		id, k := binary.Uvarint(raw[i:])
		if k <= 0 {
			return nil, fmt.Errorf("bad varint at %d", i)
		}
		i += k
		run, k := binary.Uvarint(raw[i:])
		if k <= 0 {
			return nil, fmt.Errorf("bad varint at %d", i)
		}
		i += k
		if id > 0xFFFF {
			return nil, fmt.Errorf("index too large: %d", id)
		}
		if run == 0 || run > uint64(n-len(out)) {
			return nil, fmt.Errorf("run of %d overflows %d ids", run, n)
		}
		for ; run > 0; run-- {
			out = append(out, uint16(id))
		}
	}
	if len(out) != n {
		return nil, fmt.Errorf("got %d ids, want %d", len(out), n)
	}
	return out, nil
}
