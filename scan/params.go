package scan

import (
	"time"

	"github.com/rigado/ble/linux/hci/cmd"
)

// HCI scan timing is expressed in 0.625 ms units, 0x0004..0x4000.
const (
	scanUnit    = 625 * time.Microsecond
	scanUnitMin = 0x0004
	scanUnitMax = 0x4000
)

// Params builds the LE scan parameters for the controller. The window is
// clamped to the interval, both are clamped to the valid HCI range.
func Params(active bool, interval, window time.Duration) cmd.LESetScanParameters {
	iv := toUnits(interval)
	w := toUnits(window)
	if w > iv {
		w = iv
	}

	var typ uint8 // 0x00: passive
	if active {
		typ = 0x01
	}

	return cmd.LESetScanParameters{
		LEScanType:           typ,
		LEScanInterval:       iv,
		LEScanWindow:         w,
		OwnAddressType:       0x00, // public
		ScanningFilterPolicy: 0x00, // accept all
	}
}

func toUnits(d time.Duration) uint16 {
	u := d / scanUnit
	if u < scanUnitMin {
		return scanUnitMin
	}
	if u > scanUnitMax {
		return scanUnitMax
	}
	return uint16(u)
}
