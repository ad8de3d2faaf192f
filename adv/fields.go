package adv

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"

	"github.com/rigado/ble"
)

// Record is a single length/type/value structure from an advertising payload,
// in received order. Data excludes the length and type bytes.
type Record struct {
	Type byte
	Data []byte
}

func (r Record) String() string {
	switch r.Type {
	case TypeFlags:
		if len(r.Data) > 0 {
			return fmt.Sprintf("Flags(0x%02x)", r.Data[0])
		}
	case TypeShortName:
		return fmt.Sprintf("ShortName(%q)", string(r.Data))
	case TypeCompleteName:
		return fmt.Sprintf("Name(%q)", string(r.Data))
	case TypeTxPower:
		if len(r.Data) > 0 {
			return fmt.Sprintf("TxPower(%ddBm)", int(int8(r.Data[0])))
		}
	case TypeSomeUUID16, TypeAllUUID16, TypeSomeUUID32, TypeAllUUID32,
		TypeSomeUUID128, TypeAllUUID128:
		return fmt.Sprintf("Services(%x)", r.Data)
	case TypeSol16, TypeSol32, TypeSol128:
		return fmt.Sprintf("Solicited(%x)", r.Data)
	case TypeServiceData16, TypeServiceData32, TypeServiceData128:
		return fmt.Sprintf("ServiceData(%x)", r.Data)
	case TypeAppearance:
		if len(r.Data) >= 2 {
			return fmt.Sprintf("Appearance(0x%04x)", binary.LittleEndian.Uint16(r.Data))
		}
	case TypeManufacturerData:
		if len(r.Data) >= 2 {
			id := binary.LittleEndian.Uint16(r.Data)
			return fmt.Sprintf("Mfg(%s, %s)", CompanyName(id), hex.EncodeToString(r.Data[2:]))
		}
	}
	return fmt.Sprintf("Unknown(0x%02x, %x)", r.Type, r.Data)
}

// Fields is the decoded view of an advertising payload.
type Fields struct {
	records      []Record
	flags        *byte
	shortName    string
	completeName string
	txPower      *int
	appearance   *uint16
	services     []ble.UUID
	solicited    []ble.UUID
	serviceData  []ble.ServiceData
	mfg          []byte
}

// Records returns the raw records in received order, including types the
// decoder does not understand.
func (f *Fields) Records() []Record {
	return f.records
}

// Flags returns the flags octet if present.
func (f *Fields) Flags() (byte, bool) {
	if f.flags == nil {
		return 0, false
	}
	return *f.flags, true
}

// LocalName returns the complete local name, falling back to the shortened
// one.
func (f *Fields) LocalName() string {
	if f.completeName != "" {
		return f.completeName
	}
	return f.shortName
}

// TxPower returns the advertised TX power level if present.
func (f *Fields) TxPower() (int, bool) {
	if f.txPower == nil {
		return 0, false
	}
	return *f.txPower, true
}

// Appearance returns the appearance value if present.
func (f *Fields) Appearance() (uint16, bool) {
	if f.appearance == nil {
		return 0, false
	}
	return *f.appearance, true
}

// Services returns the advertised service UUIDs, complete and incomplete
// lists merged in received order.
func (f *Fields) Services() []ble.UUID {
	return f.services
}

// Solicited returns the solicited service UUIDs.
func (f *Fields) Solicited() []ble.UUID {
	return f.solicited
}

// ServiceData returns the service data entries.
func (f *Fields) ServiceData() []ble.ServiceData {
	return f.serviceData
}

// ManufacturerData returns the little-endian company identifier and the
// vendor payload that follows it.
func (f *Fields) ManufacturerData() (uint16, []byte, bool) {
	if len(f.mfg) < 2 {
		return 0, nil, false
	}
	return binary.LittleEndian.Uint16(f.mfg), f.mfg[2:], true
}
