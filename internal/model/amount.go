package model

// usdDecimals is the implied decimal scale of on-chain USD and token amounts.
const usdDecimals = 1e6

// UIAmount converts a 6-decimal fixed-point amount into display units.
// Every fixed-point-to-float conversion goes through here.
func UIAmount(raw uint64) float64 {
	return float64(raw) / usdDecimals
}
