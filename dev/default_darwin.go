package dev

import (
	"github.com/pkg/errors"
	"github.com/rigado/ble"
	"github.com/rigado/ble/darwin"
)

// DefaultDevice ...
func DefaultDevice(opts ...ble.Option) (d ble.Device, err error) {
	return darwin.NewDevice(opts...)
}

// Transport is a no-op on darwin: the CoreBluetooth backend owns its own
// transport. H4 settings are rejected.
func Transport(hciIndex int, h4Socket, h4Uart string) (ble.Option, error) {
	if len(h4Socket) > 0 || len(h4Uart) > 0 {
		return nil, errors.New("h4 transports are not supported on darwin")
	}
	return nil, nil
}
