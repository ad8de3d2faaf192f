package scan

import "testing"

func TestAllowName(t *testing.T) {
	f := AllowName("Thingy")

	if !f(&fakeAdv{name: "thingy"}) {
		t.Fatal("case-insensitive match rejected")
	}
	if f(&fakeAdv{name: "other"}) {
		t.Fatal("wrong name accepted")
	}
	if f(&fakeAdv{}) {
		t.Fatal("empty name accepted")
	}
}

func TestAllowAddrs(t *testing.T) {
	f := AllowAddrs("AA:BB:CC:DD:EE:FF")

	if !f(&fakeAdv{addr: "aa:bb:cc:dd:ee:ff"}) {
		t.Fatal("normalized address rejected")
	}
	if f(&fakeAdv{addr: "11:22:33:44:55:66"}) {
		t.Fatal("unlisted address accepted")
	}
}

func TestMinRSSI(t *testing.T) {
	f := MinRSSI(-70)

	if !f(&fakeAdv{rssi: -60}) {
		t.Fatal("strong signal rejected")
	}
	if !f(&fakeAdv{rssi: -70}) {
		t.Fatal("boundary signal rejected")
	}
	if f(&fakeAdv{rssi: -80}) {
		t.Fatal("weak signal accepted")
	}
}

func TestAll(t *testing.T) {
	f := All(AllowName("beacon"), MinRSSI(-70))

	if !f(&fakeAdv{name: "beacon", rssi: -50}) {
		t.Fatal("matching advertisement rejected")
	}
	if f(&fakeAdv{name: "beacon", rssi: -90}) {
		t.Fatal("weak signal accepted")
	}
	if f(&fakeAdv{name: "other", rssi: -50}) {
		t.Fatal("wrong name accepted")
	}

	// empty conjunction allows everything, like AllowAll
	if !All()(&fakeAdv{}) {
		t.Fatal("empty conjunction rejected")
	}
	if !AllowAll()(&fakeAdv{}) {
		t.Fatal("AllowAll rejected")
	}
}
