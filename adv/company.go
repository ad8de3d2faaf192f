package adv

import "fmt"

// Company identifiers from the Bluetooth assigned numbers list. Only vendors
// commonly seen in advertisement captures are named; everything else renders
// as the raw identifier.
var companies = map[uint16]string{
	0x0000: "Ericsson",
	0x0001: "Nokia",
	0x0002: "Intel",
	0x0003: "IBM",
	0x0006: "Microsoft",
	0x000a: "Qualcomm",
	0x000f: "Broadcom",
	0x0059: "Nordic Semiconductor",
	0x0075: "Samsung Electronics",
	0x0087: "Garmin",
	0x00d2: "Dialog Semiconductor",
	0x00e0: "Google",
	0x0118: "Radius Networks",
	0x0157: "Anhui Huami",
	0x0171: "Amazon",
	0x01da: "Logitech",
	0x02e5: "Espressif",
	0x038f: "Xiaomi",
	0x004c: "Apple",
	0x006d: "Polar Electro",
	0x00c4: "LG Electronics",
	0x0131: "Cypress Semiconductor",
	0x0499: "Ruuvi Innovations",
}

// CompanyName resolves a manufacturer data company identifier to a vendor
// name, or a hex rendering when unknown.
func CompanyName(id uint16) string {
	if n, ok := companies[id]; ok {
		return n
	}
	return fmt.Sprintf("0x%04x", id)
}
