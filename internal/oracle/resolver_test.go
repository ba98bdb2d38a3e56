package oracle

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"testing"

	"perpscope/internal/model"
)

type fakeReader map[model.Address][]byte

func (r fakeReader) AccountData(_ context.Context, address model.Address) ([]byte, error) {
	data, ok := r[address]
	if !ok {
		return nil, fmt.Errorf("account %s not found", address)
	}
	return data, nil
}

func priceAccountBytes(raw int64) []byte {
	buf := make([]byte, pythMinSize)
	binary.LittleEndian.PutUint32(buf[0:4], pythMagic)
	binary.LittleEndian.PutUint64(buf[pythPriceOffset:pythPriceOffset+8], uint64(raw))
	return buf
}

func TestIsStableBoundaries(t *testing.T) {
	cases := []struct {
		price float64
		want  bool
	}{
		{0.49, false},
		{0.5, true},
		{1.0, true},
		{1.49, true},
		{1.5, false},
		{100.0, false},
	}

	for _, tc := range cases {
		if got := IsStable(tc.price); got != tc.want {
			t.Fatalf("IsStable(%v) = %v, want %v", tc.price, got, tc.want)
		}
	}
}

func TestParsePrice(t *testing.T) {
	got, err := ParsePrice(priceAccountBytes(12_345_678_900))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 123.456789 {
		t.Fatalf("unexpected price: %v", got)
	}
}

func TestParsePriceBadMagic(t *testing.T) {
	buf := priceAccountBytes(100)
	buf[0] = 0

	if _, err := ParsePrice(buf); !errors.Is(err, model.ErrOracleUnavailable) {
		t.Fatalf("expected oracle error for bad magic, got %v", err)
	}
}

func TestParsePriceShortBuffer(t *testing.T) {
	if _, err := ParsePrice(make([]byte, 64)); !errors.Is(err, model.ErrOracleUnavailable) {
		t.Fatalf("expected oracle error for short buffer, got %v", err)
	}
}

func TestResolverResolve(t *testing.T) {
	oracleAddr := model.Address{9}
	custody := model.Custody{Mint: model.Address{1}, Oracle: oracleAddr}
	reader := fakeReader{oracleAddr: priceAccountBytes(100_000_000)}

	resolver := NewResolver(reader, nil)
	quote, err := resolver.Resolve(context.Background(), custody)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quote.Price != 1.0 {
		t.Fatalf("unexpected price: %v", quote.Price)
	}
	if !quote.Stable {
		t.Fatalf("price 1.0 should classify stable")
	}
}

func TestResolverMissingOracle(t *testing.T) {
	resolver := NewResolver(fakeReader{}, nil)

	_, err := resolver.Resolve(context.Background(), model.Custody{Oracle: model.Address{5}})
	if !errors.Is(err, model.ErrOracleUnavailable) {
		t.Fatalf("expected oracle error, got %v", err)
	}
}
