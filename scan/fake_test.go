package scan

import (
	"github.com/rigado/ble"
)

// fakeAdv implements ble.Advertisement with canned values.
type fakeAdv struct {
	addr    string
	rssi    int
	name    string
	conn    bool
	txPower int
	mfg     []byte
	svcs    []ble.UUID
	svcData []ble.ServiceData
	sol     []ble.UUID
}

func (f *fakeAdv) LocalName() string                      { return f.name }
func (f *fakeAdv) ManufacturerData() []byte               { return f.mfg }
func (f *fakeAdv) ServiceData() []ble.ServiceData         { return f.svcData }
func (f *fakeAdv) Services() []ble.UUID                   { return f.svcs }
func (f *fakeAdv) OverflowService() []ble.UUID            { return nil }
func (f *fakeAdv) TxPowerLevel() int                      { return f.txPower }
func (f *fakeAdv) Connectable() bool                      { return f.conn }
func (f *fakeAdv) SolicitedService() []ble.UUID           { return f.sol }
func (f *fakeAdv) RSSI() int                              { return f.rssi }
func (f *fakeAdv) Addr() ble.Addr                         { return ble.NewAddr(f.addr) }
func (f *fakeAdv) AddrType() uint8                        { return 0 }
func (f *fakeAdv) Timestamp() int64                       { return 0 }
func (f *fakeAdv) Data() []byte                           { return nil }
func (f *fakeAdv) SrData() []byte                         { return nil }
func (f *fakeAdv) ToMap() (map[string]interface{}, error) { return nil, nil }

// fakeRawAdv additionally exposes the raw payload the way the linux HCI
// advertisement does.
type fakeRawAdv struct {
	fakeAdv
	raw   []byte
	sr    []byte
	event uint8
	atype uint8
}

func (f *fakeRawAdv) EventType() uint8     { return f.event }
func (f *fakeRawAdv) AddrType() uint8      { return f.atype }
func (f *fakeRawAdv) Data() []byte         { return f.raw }
func (f *fakeRawAdv) ScanResponse() []byte { return f.sr }

// pdu builds an advertising payload record by record.
type pdu struct {
	b []byte
}

func (p *pdu) add(typ byte, data []byte) *pdu {
	p.b = append(p.b, byte(len(data)+1), typ)
	p.b = append(p.b, data...)
	return p
}
