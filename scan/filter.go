package scan

import (
	"strings"

	"github.com/rigado/ble"
)

// AllowAll accepts every advertisement.
func AllowAll() ble.AdvFilter {
	return func(a ble.Advertisement) bool {
		return true
	}
}

// AllowName accepts advertisements whose local name matches, ignoring case.
func AllowName(name string) ble.AdvFilter {
	return func(a ble.Advertisement) bool {
		return strings.EqualFold(a.LocalName(), name)
	}
}

// AllowAddrs accepts advertisements from the given addresses. Addresses are
// normalized to lowercase on both sides.
func AllowAddrs(addrs ...string) ble.AdvFilter {
	set := make(map[string]struct{}, len(addrs))
	for _, s := range addrs {
		set[strings.ToLower(s)] = struct{}{}
	}
	return func(a ble.Advertisement) bool {
		addr := a.Addr()
		if addr == nil {
			return false
		}
		_, ok := set[strings.ToLower(addr.String())]
		return ok
	}
}

// MinRSSI accepts advertisements at or above the given signal level.
func MinRSSI(min int) ble.AdvFilter {
	return func(a ble.Advertisement) bool {
		return a.RSSI() >= min
	}
}

// All combines filters into a conjunction. With no filters it behaves like
// AllowAll.
func All(filters ...ble.AdvFilter) ble.AdvFilter {
	return func(a ble.Advertisement) bool {
		for _, f := range filters {
			if f != nil && !f(a) {
				return false
			}
		}
		return true
	}
}
