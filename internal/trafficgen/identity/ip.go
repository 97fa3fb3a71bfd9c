package identity

import (
	"fmt"
	"net"

	"trafficgen/pkg/errors"
)

// PickAddress returns a uniformly-chosen host address inside the block,
// excluding the network address, the broadcast address and the gateway.
// Returns ErrAddressExhausted when nothing usable remains; callers treat
// that as a skipped rotation cycle, not a fatal condition.
func (s *Spoofer) PickAddress(block *net.IPNet, gateway net.IP) (net.IP, error) {
	hosts := usableHosts(block, gateway)
	if len(hosts) == 0 {
		return nil, fmt.Errorf("%w: %s", errors.ErrAddressExhausted, block.String())
	}
	return hosts[s.rng.Intn(len(hosts))], nil
}

// usableHosts enumerates every address in the block except the network
// address, the broadcast address and the gateway. IPv4 only.
func usableHosts(block *net.IPNet, gateway net.IP) []net.IP {
	base := block.IP.To4()
	if base == nil {
		return nil
	}

	ones, bits := block.Mask.Size()
	size := uint32(1) << (bits - ones)

	network := ipToUint32(base)
	broadcast := network + size - 1
	gw := uint32(0)
	if g := gateway.To4(); g != nil {
		gw = ipToUint32(g)
	}

	var hosts []net.IP
	for n := network; ; n++ {
		if n != network && n != broadcast && n != gw {
			hosts = append(hosts, uint32ToIP(n))
		}
		if n == broadcast {
			break
		}
	}
	return hosts
}

// ipToUint32 converts a 4-byte IPv4 address to its uint32 representation
func ipToUint32(ip net.IP) uint32 {
	return uint32(ip[0])<<24 | uint32(ip[1])<<16 | uint32(ip[2])<<8 | uint32(ip[3])
}

// uint32ToIP converts a uint32 value to an IPv4 address
func uint32ToIP(n uint32) net.IP {
	return net.IPv4(byte(n>>24), byte(n>>16), byte(n>>8), byte(n)).To4()
}
