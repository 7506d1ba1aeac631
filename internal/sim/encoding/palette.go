package encoding

import (
	"errors"
	"fmt"
)

// ErrTooManyColors is returned when a texture cannot be indexed in 16 bits.
var ErrTooManyColors = errors.New("texture has more than 65536 colors")

// IndexRGBA splits opaque RGBA texels into "#rrggbb" colors, in order of
// first appearance, and one color index per texel. Alpha is dropped.
func IndexRGBA(rgba []byte) (palette []string, ids []uint16, err error) {
	if len(rgba)%4 != 0 {
		return nil, nil, fmt.Errorf("rgba length %d is not a multiple of 4", len(rgba))
	}
	seen := map[[3]byte]uint16{}
	ids = make([]uint16, 0, len(rgba)/4)
	for i := 0; i < len(rgba); i += 4 {
		c := [3]byte{rgba[i], rgba[i+1], rgba[i+2]}
		id, ok := seen[c]
		if !ok {
			if len(palette) > 0xFFFF {
				return nil, nil, ErrTooManyColors
			}
			id = uint16(len(palette))
			seen[c] = id
			palette = append(palette, fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2]))
		}
		ids = append(ids, id)
	}
	return palette, ids, nil
}

// ExpandRGBA reverses IndexRGBA with full alpha.
func ExpandRGBA(palette []string, ids []uint16) ([]byte, error) {
	colors := make([][3]byte, len(palette))
	for i, s := range palette {
		if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &colors[i][0], &colors[i][1], &colors[i][2]); err != nil {
			return nil, fmt.Errorf("palette[%d] %q: %w", i, s, err)
		}
	}
	out := make([]byte, 0, len(ids)*4)
	for i, id := range ids {
		if int(id) >= len(colors) {
			return nil, fmt.Errorf("texel %d: index %d outside palette of %d", i, id, len(colors))
		}
		c := colors[id]
		out = append(out, c[0], c[1], c[2], 255)
	}
	return out, nil
}
