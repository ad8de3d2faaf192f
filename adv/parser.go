package adv

import (
	"github.com/pkg/errors"
	"github.com/rigado/ble"
)

// Advertising data types.
// https://www.bluetooth.org/en-us/specification/assigned-numbers/generic-access-profile
const (
	TypeFlags            = 0x01
	TypeSomeUUID16       = 0x02
	TypeAllUUID16        = 0x03
	TypeSomeUUID32       = 0x04
	TypeAllUUID32        = 0x05
	TypeSomeUUID128      = 0x06
	TypeAllUUID128       = 0x07
	TypeShortName        = 0x08
	TypeCompleteName     = 0x09
	TypeTxPower          = 0x0a
	TypeSol16            = 0x14
	TypeSol128           = 0x15
	TypeServiceData16    = 0x16
	TypeAppearance       = 0x19
	TypeSol32            = 0x1f
	TypeServiceData32    = 0x20
	TypeServiceData128   = 0x21
	TypeManufacturerData = 0xff
)

var (
	ErrEmptyPayload = errors.New("nil/empty payload")
	ErrBadRecord    = errors.New("malformed record")
)

// uuidWidth maps the list and service data types to their UUID element size.
var uuidWidth = map[byte]int{
	TypeSomeUUID16:     2,
	TypeAllUUID16:      2,
	TypeSomeUUID32:     4,
	TypeAllUUID32:      4,
	TypeSomeUUID128:    16,
	TypeAllUUID128:     16,
	TypeSol16:          2,
	TypeSol32:          4,
	TypeSol128:         16,
	TypeServiceData16:  2,
	TypeServiceData32:  4,
	TypeServiceData128: 16,
}

// Decode parses an advertising payload (or a scan response appended to one)
// into its length/type/value records. Unknown record types are kept as raw
// records and skipped otherwise. A record running past the end of the payload
// is an error; the scanner treats that as a degraded report, not a fatal one.
func Decode(pdu []byte) (*Fields, error) {
	if len(pdu) == 0 {
		return nil, ErrEmptyPayload
	}

	f := &Fields{}
	for i := 0; i < len(pdu); {
		// length @ offset 0, type @ offset 1, value up to length-1 bytes
		length := int(pdu[i])

		// A zero length byte starts the padding of a fixed-size advertising
		// buffer; everything after it must be zero too. A record that runs
		// past the end of the payload, including a lone trailing length
		// byte, is truncated.
		if length == 0 {
			for _, b := range pdu[i:] {
				if b != 0 {
					return nil, errors.Wrapf(ErrBadRecord, "record @ %d: non-zero byte in padding", i)
				}
			}
			break
		}
		if i+length >= len(pdu) {
			return nil, errors.Wrapf(ErrBadRecord, "record @ %d: want %d bytes, have %d", i, i+length+1, len(pdu))
		}

		typ := pdu[i+1]
		value := pdu[i+2 : i+1+length]
		rec := Record{Type: typ, Data: append([]byte(nil), value...)}
		f.records = append(f.records, rec)

		if err := f.set(rec); err != nil {
			return nil, errors.Wrapf(err, "record @ %d type 0x%02x", i, typ)
		}

		i += length + 1
	}

	return f, nil
}

func (f *Fields) set(rec Record) error {
	switch rec.Type {
	case TypeFlags:
		if len(rec.Data) < 1 {
			return ErrBadRecord
		}
		b := rec.Data[0]
		f.flags = &b

	case TypeShortName:
		f.shortName = string(rec.Data)

	case TypeCompleteName:
		f.completeName = string(rec.Data)

	case TypeTxPower:
		if len(rec.Data) < 1 {
			return ErrBadRecord
		}
		p := int(int8(rec.Data[0]))
		f.txPower = &p

	case TypeAppearance:
		if len(rec.Data) < 2 {
			return ErrBadRecord
		}
		a := uint16(rec.Data[0]) | uint16(rec.Data[1])<<8
		f.appearance = &a

	case TypeSomeUUID16, TypeAllUUID16, TypeSomeUUID32, TypeAllUUID32,
		TypeSomeUUID128, TypeAllUUID128:
		u, err := uuidList(rec.Data, uuidWidth[rec.Type])
		if err != nil {
			return err
		}
		f.services = append(f.services, u...)

	case TypeSol16, TypeSol32, TypeSol128:
		u, err := uuidList(rec.Data, uuidWidth[rec.Type])
		if err != nil {
			return err
		}
		f.solicited = append(f.solicited, u...)

	case TypeServiceData16, TypeServiceData32, TypeServiceData128:
		w := uuidWidth[rec.Type]
		if len(rec.Data) < w {
			return ErrBadRecord
		}
		sd := ble.ServiceData{
			UUID: ble.UUID(append([]byte(nil), rec.Data[:w]...)),
			Data: append([]byte(nil), rec.Data[w:]...),
		}
		f.serviceData = append(f.serviceData, sd)

	case TypeManufacturerData:
		if len(rec.Data) < 2 {
			return ErrBadRecord
		}
		f.mfg = rec.Data

	default:
		// unknown type, kept in records only
	}
	return nil
}

// uuidList splits a list payload into UUIDs of the given width. The payload
// must be a non-empty whole number of elements.
func uuidList(b []byte, w int) ([]ble.UUID, error) {
	if len(b) == 0 || len(b)%w != 0 {
		return nil, errors.Wrapf(ErrBadRecord, "uuid list: %d bytes, element size %d", len(b), w)
	}
	u := make([]ble.UUID, 0, len(b)/w)
	for len(b) > 0 {
		u = append(u, ble.UUID(append([]byte(nil), b[:w]...)))
		b = b[w:]
	}
	return u, nil
}
