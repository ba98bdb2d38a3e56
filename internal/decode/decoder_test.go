package decode

import (
	"encoding/binary"
	"errors"
	"testing"

	"perpscope/internal/model"
)

func appendUint64(buf []byte, value uint64) []byte {
	var scratch [8]byte
	binary.LittleEndian.PutUint64(scratch[:], value)
	return append(buf, scratch[:]...)
}

func poolBytes(pool model.Pool) []byte {
	buf := append([]byte{}, PoolDiscriminator...)
	buf = appendUint64(buf, pool.AumUsd)
	buf = appendUint64(buf, pool.IncreasePositionBps)
	return buf
}

func custodyBytes(custody model.Custody) []byte {
	buf := append([]byte{}, CustodyDiscriminator...)
	buf = append(buf, custody.Mint[:]...)
	buf = append(buf, custody.Oracle[:]...)
	buf = appendUint64(buf, custody.Owned)
	buf = appendUint64(buf, custody.Locked)
	buf = appendUint64(buf, custody.HourlyFundingBps)
	return buf
}

func positionBytes(position model.Position) []byte {
	buf := append([]byte{}, PositionDiscriminator...)
	buf = append(buf, position.Custody[:]...)
	buf = append(buf, position.CollateralCustody[:]...)
	buf = appendUint64(buf, position.SizeUsd)
	buf = appendUint64(buf, position.Price)
	buf = appendUint64(buf, position.CollateralUsd)
	buf = append(buf, byte(position.Side))
	buf = appendUint64(buf, uint64(position.UpdateTime))
	return buf
}

func TestDecodePool(t *testing.T) {
	want := model.Pool{AumUsd: 5_000_000_000000, IncreasePositionBps: 7}

	got, err := Pool(poolBytes(want))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != want {
		t.Fatalf("pool mismatch: %+v != %+v", got, want)
	}
}

func TestDecodeCustody(t *testing.T) {
	want := model.Custody{
		Mint:             model.Address{1},
		Oracle:           model.Address{2},
		Owned:            1_000_000_000000,
		Locked:           500_000_000000,
		HourlyFundingBps: 10,
	}

	got, err := Custody(custodyBytes(want))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != want {
		t.Fatalf("custody mismatch: %+v != %+v", got, want)
	}
}

func TestDecodePosition(t *testing.T) {
	want := model.Position{
		Custody:           model.Address{3},
		CollateralCustody: model.Address{4},
		SizeUsd:           100_000_000000,
		Price:             90_000000,
		CollateralUsd:     10_000_000000,
		Side:              model.SideShort,
		UpdateTime:        1_700_000_000,
	}

	got, err := Position(positionBytes(want))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != want {
		t.Fatalf("position mismatch: %+v != %+v", got, want)
	}
}

func TestDecodeTrailingBytesIgnored(t *testing.T) {
	buf := append(poolBytes(model.Pool{AumUsd: 1}), make([]byte, 64)...)
	if _, err := Pool(buf); err != nil {
		t.Fatalf("unexpected error with trailing bytes: %v", err)
	}
}

func TestDecodeDiscriminatorMismatch(t *testing.T) {
	buf := custodyBytes(model.Custody{Owned: 1})

	if _, err := Pool(buf); !errors.Is(err, model.ErrDecode) {
		t.Fatalf("expected decode error for mismatched tag, got %v", err)
	}
	if _, err := Position(buf); !errors.Is(err, model.ErrDecode) {
		t.Fatalf("expected decode error for mismatched tag, got %v", err)
	}
}

func TestDecodeShortBuffer(t *testing.T) {
	if _, err := Pool(PoolDiscriminator[:4]); !errors.Is(err, model.ErrDecode) {
		t.Fatalf("expected decode error for truncated discriminator, got %v", err)
	}

	buf := custodyBytes(model.Custody{})
	if _, err := Custody(buf[:len(buf)-1]); !errors.Is(err, model.ErrDecode) {
		t.Fatalf("expected decode error for short buffer, got %v", err)
	}
}

func TestDecodePositionInvalidSide(t *testing.T) {
	buf := positionBytes(model.Position{Side: model.SideLong})
	buf[96] = 0

	if _, err := Position(buf); !errors.Is(err, model.ErrDecode) {
		t.Fatalf("expected decode error for invalid side, got %v", err)
	}
}
