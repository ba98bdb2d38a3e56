package model

import (
	"fmt"

	"github.com/mr-tron/base58"
)

// AddressLength is the byte length of a program account address.
const AddressLength = 32

// Address is a 32-byte account address, rendered as base58.
type Address [AddressLength]byte

// ParseAddress converts a base58 string into an Address.
func ParseAddress(input string) (Address, error) {
	var addr Address
	data, err := base58.Decode(input)
	if err != nil {
		return Address{}, fmt.Errorf("invalid address %q: %w", input, err)
	}
	if len(data) != AddressLength {
		return Address{}, fmt.Errorf("invalid address length %d: %s", len(data), input)
	}
	copy(addr[:], data)
	return addr, nil
}

// String renders the address as base58.
func (a Address) String() string {
	return base58.Encode(a[:])
}

// IsZero reports whether the address is all zero bytes.
func (a Address) IsZero() bool {
	return a == Address{}
}

// MarshalText encodes the address as base58 for JSON output.
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText decodes a base58 address.
func (a *Address) UnmarshalText(text []byte) error {
	parsed, err := ParseAddress(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
