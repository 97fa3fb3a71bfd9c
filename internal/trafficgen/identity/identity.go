// Package identity generates plausible network identities: vendor-tagged
// hardware addresses and host addresses drawn from a configured block.
package identity

import (
	"math/rand"
	"net"
)

// NetworkIdentity is one complete identity to apply to an adapter. Built
// fresh for each rotation cycle and consumed once by the network manager.
type NetworkIdentity struct {
	HardwareAddr string
	Vendor       string
	IP           net.IP
	PrefixLen    int
	Gateway      net.IP
	DNS          net.IP
}

// Spoofer draws hardware and IP addresses from an injected random source so
// the selection logic can be tested with fixed seeds.
type Spoofer struct {
	rng *rand.Rand
}

// NewSpoofer creates a spoofer using the given random source
func NewSpoofer(rng *rand.Rand) *Spoofer {
	return &Spoofer{rng: rng}
}

// Generate builds a complete identity for the given block, gateway and DNS
// server. Returns ErrAddressExhausted if the block has no usable host left.
func (s *Spoofer) Generate(block *net.IPNet, gateway, dns net.IP) (*NetworkIdentity, error) {
	ip, err := s.PickAddress(block, gateway)
	if err != nil {
		return nil, err
	}

	hw := s.GenerateHardwareAddress()
	prefixLen, _ := block.Mask.Size()

	return &NetworkIdentity{
		HardwareAddr: hw.Address,
		Vendor:       hw.Vendor,
		IP:           ip,
		PrefixLen:    prefixLen,
		Gateway:      gateway,
		DNS:          dns,
	}, nil
}
