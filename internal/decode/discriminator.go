package decode

import "crypto/sha256"

// DiscriminatorLength is the byte length of an account discriminator tag.
const DiscriminatorLength = 8

// Discriminators for the three account kinds this tool reads.
var (
	PoolDiscriminator     = AccountDiscriminator("Pool")
	CustodyDiscriminator  = AccountDiscriminator("Custody")
	PositionDiscriminator = AccountDiscriminator("Position")
)

// AccountDiscriminator derives the 8-byte tag that prefixes every account of
// the named kind: the leading bytes of sha256("account:" + name).
func AccountDiscriminator(name string) []byte {
	sum := sha256.Sum256([]byte("account:" + name))
	return sum[:DiscriminatorLength]
}
