package dev

import (
	"time"

	"github.com/pkg/errors"
	"github.com/rigado/ble"
	"github.com/rigado/ble/linux"
	"github.com/rigado/ble/linux/hci/h4"
)

// DefaultDevice ...
func DefaultDevice(opts ...ble.Option) (d ble.Device, err error) {
	return linux.NewDevice(opts...)
}

const h4SocketTimeout = 2 * time.Second

// Transport picks the HCI transport from the mutually exclusive settings:
// HCI socket index, H4 socket address, H4 UART path.
func Transport(hciIndex int, h4Socket, h4Uart string) (ble.Option, error) {
	switch {
	case len(h4Socket) > 0 && len(h4Uart) > 0:
		return nil, errors.New("h4 socket and h4 uart are mutually exclusive")
	case len(h4Socket) > 0:
		return ble.OptTransportH4Socket(h4Socket, h4SocketTimeout), nil
	case len(h4Uart) > 0:
		return ble.OptTransportH4Uart(h4Uart, int(h4.DefaultSerialOptions().BaudRate)), nil
	case hciIndex >= 0:
		return ble.OptTransportHCISocket(hciIndex), nil
	}
	return nil, errors.New("no valid transport selected")
}
