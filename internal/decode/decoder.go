package decode

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"perpscope/internal/model"
)

// Fixed layouts, little-endian, after the 8-byte discriminator. Accounts may
// carry trailing fields beyond the layout; those are ignored.
const (
	poolSize     = DiscriminatorLength + 8 + 8
	custodySize  = DiscriminatorLength + 32 + 32 + 8 + 8 + 8
	positionSize = DiscriminatorLength + 32 + 32 + 8 + 8 + 8 + 1 + 8
)

// Pool decodes a pool account buffer.
func Pool(data []byte) (model.Pool, error) {
	if err := checkLayout(data, PoolDiscriminator, poolSize, "pool"); err != nil {
		return model.Pool{}, err
	}
	return model.Pool{
		AumUsd:              binary.LittleEndian.Uint64(data[8:16]),
		IncreasePositionBps: binary.LittleEndian.Uint64(data[16:24]),
	}, nil
}

// Custody decodes a custody account buffer.
func Custody(data []byte) (model.Custody, error) {
	if err := checkLayout(data, CustodyDiscriminator, custodySize, "custody"); err != nil {
		return model.Custody{}, err
	}
	var custody model.Custody
	copy(custody.Mint[:], data[8:40])
	copy(custody.Oracle[:], data[40:72])
	custody.Owned = binary.LittleEndian.Uint64(data[72:80])
	custody.Locked = binary.LittleEndian.Uint64(data[80:88])
	custody.HourlyFundingBps = binary.LittleEndian.Uint64(data[88:96])
	return custody, nil
}

// Position decodes a position account buffer.
func Position(data []byte) (model.Position, error) {
	if err := checkLayout(data, PositionDiscriminator, positionSize, "position"); err != nil {
		return model.Position{}, err
	}
	var position model.Position
	copy(position.Custody[:], data[8:40])
	copy(position.CollateralCustody[:], data[40:72])
	position.SizeUsd = binary.LittleEndian.Uint64(data[72:80])
	position.Price = binary.LittleEndian.Uint64(data[80:88])
	position.CollateralUsd = binary.LittleEndian.Uint64(data[88:96])

	side := model.Side(data[96])
	if side != model.SideLong && side != model.SideShort {
		return model.Position{}, fmt.Errorf("%w: position: invalid side %d", model.ErrDecode, data[96])
	}
	position.Side = side
	position.UpdateTime = int64(binary.LittleEndian.Uint64(data[97:105]))
	return position, nil
}

func checkLayout(data []byte, tag []byte, size int, kind string) error {
	if len(data) < DiscriminatorLength {
		return fmt.Errorf("%w: %s: buffer too short for discriminator (%d bytes)", model.ErrDecode, kind, len(data))
	}
	if !bytes.Equal(data[:DiscriminatorLength], tag) {
		return fmt.Errorf("%w: %s: discriminator mismatch", model.ErrDecode, kind)
	}
	if len(data) < size {
		return fmt.Errorf("%w: %s: buffer too short (%d < %d)", model.ErrDecode, kind, len(data), size)
	}
	return nil
}
