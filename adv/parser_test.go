package adv

import (
	"bytes"
	"reflect"
	"testing"
)

type testPdu struct {
	b []byte
}

func (t *testPdu) add(recTyp byte, recBytes []byte) {
	t.b = append(t.b, byte(len(recBytes)+1), recTyp)
	t.b = append(t.b, recBytes...)
}

func (t *testPdu) bytes() []byte {
	return t.b
}

func TestDecodeBeaconPayload(t *testing.T) {
	p := testPdu{}
	p.add(TypeFlags, []byte{0x06})
	p.add(TypeCompleteName, []byte("microscan"))
	p.add(TypeAllUUID16, []byte{0x0d, 0x18, 0x0f, 0x18})
	p.add(TypeTxPower, []byte{0xf8}) // -8 dBm
	p.add(TypeManufacturerData, []byte{0x59, 0x00, 0x01, 0x02, 0x03})

	f, err := Decode(p.bytes())
	if err != nil {
		t.Fatalf("decode error: %v", err)
	}

	if fl, ok := f.Flags(); !ok || fl != 0x06 {
		t.Fatalf("flags: got %#x, %v", fl, ok)
	}
	if n := f.LocalName(); n != "microscan" {
		t.Fatalf("name: got %q", n)
	}
	if pw, ok := f.TxPower(); !ok || pw != -8 {
		t.Fatalf("txpower: got %d, %v", pw, ok)
	}

	uu := f.Services()
	if len(uu) != 2 {
		t.Fatalf("services: got %d", len(uu))
	}
	if !bytes.Equal(uu[0], []byte{0x0d, 0x18}) || !bytes.Equal(uu[1], []byte{0x0f, 0x18}) {
		t.Fatalf("services: got %x", uu)
	}

	id, data, ok := f.ManufacturerData()
	if !ok || id != 0x0059 {
		t.Fatalf("company id: got %#x, %v", id, ok)
	}
	if !bytes.Equal(data, []byte{0x01, 0x02, 0x03}) {
		t.Fatalf("mfg data: got %x", data)
	}

	if len(f.Records()) != 5 {
		t.Fatalf("records: got %d", len(f.Records()))
	}
}

func TestDecodeCompleteNameWins(t *testing.T) {
	p := testPdu{}
	p.add(TypeShortName, []byte("micr"))
	p.add(TypeCompleteName, []byte("microscan"))

	f, err := Decode(p.bytes())
	if err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if n := f.LocalName(); n != "microscan" {
		t.Fatalf("got %q", n)
	}

	// shortened name only
	p = testPdu{}
	p.add(TypeShortName, []byte("micr"))

	f, err = Decode(p.bytes())
	if err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if n := f.LocalName(); n != "micr" {
		t.Fatalf("got %q", n)
	}
}

func TestDecodeServiceData(t *testing.T) {
	p := testPdu{}
	p.add(TypeServiceData16, []byte{0x0d, 0x18, 0x42, 0x43})

	f, err := Decode(p.bytes())
	if err != nil {
		t.Fatalf("decode error: %v", err)
	}

	sd := f.ServiceData()
	if len(sd) != 1 {
		t.Fatalf("service data: got %d entries", len(sd))
	}
	if !bytes.Equal(sd[0].UUID, []byte{0x0d, 0x18}) {
		t.Fatalf("uuid: got %x", sd[0].UUID)
	}
	if !reflect.DeepEqual(sd[0].Data, []byte{0x42, 0x43}) {
		t.Fatalf("data: got %x", sd[0].Data)
	}
}

func TestDecodeUnknownTypeKept(t *testing.T) {
	p := testPdu{}
	p.add(TypeFlags, []byte{0x04})
	p.add(0x30, []byte{0xaa, 0xbb}) // broadcast code, not decoded

	f, err := Decode(p.bytes())
	if err != nil {
		t.Fatalf("decode error: %v", err)
	}

	recs := f.Records()
	if len(recs) != 2 {
		t.Fatalf("records: got %d", len(recs))
	}
	if recs[1].Type != 0x30 || !bytes.Equal(recs[1].Data, []byte{0xaa, 0xbb}) {
		t.Fatalf("raw record: got %+v", recs[1])
	}
}

func TestDecodeErrors(t *testing.T) {
	if _, err := Decode(nil); err == nil {
		t.Fatal("nil payload: no error")
	}
	if _, err := Decode([]byte{}); err == nil {
		t.Fatal("empty payload: no error")
	}

	// non-zero byte hiding in the padding
	if _, err := Decode([]byte{0x00, 0x01}); err == nil {
		t.Fatal("non-zero padding: no error")
	}

	// record runs past the end of the payload
	if _, err := Decode([]byte{0x05, 0x09, 'a', 'b'}); err == nil {
		t.Fatal("truncated record: no error")
	}

	// lone trailing length byte is a truncated record, not padding
	p0 := testPdu{}
	p0.add(TypeFlags, []byte{0x06})
	if _, err := Decode(append(p0.bytes(), 0x03)); err == nil {
		t.Fatal("lone trailing length byte: no error")
	}

	// uuid list not a whole number of elements
	p := testPdu{}
	p.add(TypeAllUUID16, []byte{0x0d, 0x18, 0xaa})
	if _, err := Decode(p.bytes()); err == nil {
		t.Fatal("ragged uuid list: no error")
	}

	// empty uuid list
	p = testPdu{}
	p.add(TypeAllUUID128, []byte{})
	if _, err := Decode(p.bytes()); err == nil {
		t.Fatal("empty uuid list: no error")
	}

	// manufacturer data too short for the company id
	p = testPdu{}
	p.add(TypeManufacturerData, []byte{0x4c})
	if _, err := Decode(p.bytes()); err == nil {
		t.Fatal("short mfg data: no error")
	}
}

func TestDecodeZeroPadding(t *testing.T) {
	p := testPdu{}
	p.add(TypeFlags, []byte{0x06})
	p.add(TypeCompleteName, []byte("padded"))

	// fixed 31-byte advertising buffer, zero-padded after the last record
	buf := make([]byte, 31)
	copy(buf, p.bytes())

	f, err := Decode(buf)
	if err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if n := f.LocalName(); n != "padded" {
		t.Fatalf("name: got %q", n)
	}
	if len(f.Records()) != 2 {
		t.Fatalf("records: got %d", len(f.Records()))
	}
}

func TestDecodeSolicited(t *testing.T) {
	p := testPdu{}
	p.add(TypeSol16, []byte{0x12, 0x18})

	f, err := Decode(p.bytes())
	if err != nil {
		t.Fatalf("decode error: %v", err)
	}
	uu := f.Solicited()
	if len(uu) != 1 || !bytes.Equal(uu[0], []byte{0x12, 0x18}) {
		t.Fatalf("solicited: got %x", uu)
	}
}

func TestDecodeAppearance(t *testing.T) {
	p := testPdu{}
	p.add(TypeAppearance, []byte{0xc1, 0x03}) // keyboard

	f, err := Decode(p.bytes())
	if err != nil {
		t.Fatalf("decode error: %v", err)
	}
	a, ok := f.Appearance()
	if !ok || a != 0x03c1 {
		t.Fatalf("appearance: got %#x, %v", a, ok)
	}
}
