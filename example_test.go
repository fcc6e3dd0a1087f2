package nlattr_test

import (
	"fmt"

	"github.com/wlanstack/nlattr"
)

// Attribute types from the protocol this tree is destined for; the codec
// itself treats them as opaque.
const (
	attrScanSSIDs = 0x2d
	attrSSID      = 1
	attrLowPrio   = 2
)

// This example builds a nested scan-request attribute one level at a time,
// then reads it back the way a receiver would.
func ExampleNested() {
	ssids := nlattr.NewNested(attrScanSSIDs)
	ssids.Add(nlattr.NewString(attrSSID, "corp-wifi"))
	ssids.AddFlag(attrLowPrio)

	// An encoded container round-trips through any byte transport; a
	// receiver wraps the bytes and validates before use.
	rx := nlattr.ParseNested(ssids.Encode())
	if !rx.Valid() {
		fmt.Println("invalid buffer")
		return
	}

	ssid, _ := rx.GetString(attrSSID)
	fmt.Println("ssid:", ssid)
	fmt.Println("low priority:", rx.Has(attrLowPrio))
	fmt.Println("background:", rx.Has(3))

	// Output:
	// ssid: corp-wifi
	// low priority: true
	// background: false
}
