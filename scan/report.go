package scan

import (
	"encoding/hex"
	"strings"
	"time"

	"github.com/rigado/ble"

	"github.com/ganwell/microscan/adv"
)

// ServiceData is a decoded service data entry.
type ServiceData struct {
	UUID string `json:"uuid"`
	Data string `json:"data"`
}

// Report is one received advertisement, flattened for output. JSON keys
// follow ble.AdvertisementMapKeys where they overlap.
type Report struct {
	Time        time.Time     `json:"time"`
	Addr        string        `json:"mac"`
	AddrType    uint8         `json:"addrType"`
	EventType   uint8         `json:"eventType"`
	RSSI        int           `json:"rssi"`
	Connectable bool          `json:"connectable"`
	Name        string        `json:"name,omitempty"`
	TxPower     *int          `json:"txPower,omitempty"`
	Flags       *byte         `json:"flags,omitempty"`
	Appearance  *uint16       `json:"appearance,omitempty"`
	Services    []string      `json:"services,omitempty"`
	Solicited   []string      `json:"solicited,omitempty"`
	ServiceData []ServiceData `json:"serviceData,omitempty"`
	Company     string        `json:"company,omitempty"`
	CompanyID   *uint16       `json:"companyId,omitempty"`
	MfgData     string        `json:"mfg,omitempty"`

	// Records carries the raw AD structures for detailed rendering; not
	// serialized.
	Records []adv.Record `json:"-"`
}

// rawAdvertisement is the extended surface of the stack's HCI advertisement,
// exposing the raw payload bytes. Not part of ble.Advertisement, so it is
// reached via a type assertion.
type rawAdvertisement interface {
	EventType() uint8
	AddrType() uint8
	Data() []byte
	ScanResponse() []byte
}

// NewReport flattens an advertisement into a Report. Accessor and parse
// errors degrade the report rather than failing it: an advertisement that
// passed the filter is always reported.
func NewReport(a ble.Advertisement, at time.Time) Report {
	r := Report{Time: at}

	if addr := a.Addr(); addr != nil {
		r.Addr = strings.ToLower(addr.String())
	}
	r.RSSI = a.RSSI()
	r.Connectable = a.Connectable()
	r.Name = a.LocalName()

	raw, ok := a.(rawAdvertisement)
	if ok {
		r.EventType = raw.EventType()
		r.AddrType = raw.AddrType()
		if fields := decodeRaw(raw); fields != nil {
			r.fill(fields)
			return r
		}
	}

	// No raw payload (darwin, or an undecodable packet): fall back to the
	// stack's own accessors.
	p := a.TxPowerLevel()
	r.TxPower = &p
	r.Services = uuidStrings(a.Services())
	r.Solicited = uuidStrings(a.SolicitedService())
	r.ServiceData = serviceDataStrings(a.ServiceData())
	if md := a.ManufacturerData(); len(md) >= 2 {
		id := uint16(md[0]) | uint16(md[1])<<8
		r.CompanyID = &id
		r.Company = adv.CompanyName(id)
		r.MfgData = hex.EncodeToString(md[2:])
	}
	return r
}

func decodeRaw(raw rawAdvertisement) *adv.Fields {
	d := raw.Data()
	if len(d) == 0 {
		return nil
	}
	if sr := raw.ScanResponse(); len(sr) > 0 {
		d = append(append([]byte(nil), d...), sr...)
	}
	fields, err := adv.Decode(d)
	if err != nil {
		return nil
	}
	return fields
}

func (r *Report) fill(f *adv.Fields) {
	r.Records = f.Records()
	if n := f.LocalName(); n != "" {
		r.Name = n
	}
	if fl, ok := f.Flags(); ok {
		r.Flags = &fl
	}
	if p, ok := f.TxPower(); ok {
		r.TxPower = &p
	}
	if ap, ok := f.Appearance(); ok {
		r.Appearance = &ap
	}
	r.Services = uuidStrings(f.Services())
	r.Solicited = uuidStrings(f.Solicited())
	r.ServiceData = serviceDataStrings(f.ServiceData())
	if id, data, ok := f.ManufacturerData(); ok {
		r.CompanyID = &id
		r.Company = adv.CompanyName(id)
		r.MfgData = hex.EncodeToString(data)
	}
}

func uuidStrings(uu []ble.UUID) []string {
	if len(uu) == 0 {
		return nil
	}
	ss := make([]string, 0, len(uu))
	for _, u := range uu {
		ss = append(ss, u.String())
	}
	return ss
}

func serviceDataStrings(sd []ble.ServiceData) []ServiceData {
	if len(sd) == 0 {
		return nil
	}
	out := make([]ServiceData, 0, len(sd))
	for _, d := range sd {
		out = append(out, ServiceData{
			UUID: d.UUID.String(),
			Data: hex.EncodeToString(d.Data),
		})
	}
	return out
}
