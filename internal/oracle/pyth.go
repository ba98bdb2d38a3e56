package oracle

import (
	"encoding/binary"
	"fmt"

	"perpscope/internal/model"
)

// Pyth price account layout constants. Only the aggregate price is read;
// downstream consumers fix the scale at 1e-8 regardless of the stored
// exponent.
const (
	pythMagic       = 0xa1b2c3d4
	pythPriceOffset = 208
	pythMinSize     = pythPriceOffset + 8
	pythPriceScale  = 1e8
)

// ParsePrice extracts the aggregate unit price from a raw Pyth price
// account buffer.
func ParsePrice(data []byte) (float64, error) {
	if len(data) < pythMinSize {
		return 0, fmt.Errorf("%w: price account too short (%d bytes)", model.ErrOracleUnavailable, len(data))
	}
	if binary.LittleEndian.Uint32(data[0:4]) != pythMagic {
		return 0, fmt.Errorf("%w: bad price account magic", model.ErrOracleUnavailable)
	}
	raw := int64(binary.LittleEndian.Uint64(data[pythPriceOffset : pythPriceOffset+8]))
	return float64(raw) / pythPriceScale, nil
}
