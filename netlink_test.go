package nlattr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/mdlayher/netlink"
	"github.com/mdlayher/netlink/nlenc"
)

func TestPayloadMatchesNetlinkMarshal(t *testing.T) {
	got := Payload(
		NewUint32(1, 1),
		NewString(2, "wlan0"),
		New(3, []byte{0xde, 0xad, 0xbe, 0xef, 0xde, 0xad}),
		NewFlag(4),
	)

	want := mustMarshalAttributes([]netlink.Attribute{
		{Type: 1, Data: nlenc.Uint32Bytes(1)},
		{Type: 2, Data: nlenc.Bytes("wlan0")},
		{Type: 3, Data: []byte{0xde, 0xad, 0xbe, 0xef, 0xde, 0xad}},
		{Type: 4},
	})

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected payload (-want +got):\n%s", diff)
	}
}

func TestPayloadDropsInvalidAttribute(t *testing.T) {
	got := Payload(
		NewUint16(1, 42),
		Parse([]byte{0x06}),
		NewFlag(2),
	)

	want := mustMarshalAttributes([]netlink.Attribute{
		{Type: 1, Data: nlenc.Uint16Bytes(42)},
		{Type: 2},
	})

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected payload (-want +got):\n%s", diff)
	}
}

func TestNestedAttributesDecode(t *testing.T) {
	n := NewNested(1)
	n.Add(NewUint32(2, 100))
	n.Add(NewString(3, "ap0"))
	n.AddFlag(4)

	got, err := n.Attributes()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []netlink.Attribute{
		{Type: 2, Data: nlenc.Uint32Bytes(100)},
		{Type: 3, Data: nlenc.Bytes("ap0")},
		{Type: 4},
	}

	if diff := diffAttributes(want, got); diff != "" {
		t.Fatalf("unexpected attributes (-want +got):\n%s", diff)
	}
}

func TestNestedAttributesInvalidContainer(t *testing.T) {
	n := ParseNested([]byte{0x06, 0x00})

	if _, err := n.Attributes(); !errors.Is(err, ErrMalformedAttribute) {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestFromAttributeWireEquivalence(t *testing.T) {
	na := netlink.Attribute{Type: 7, Data: nlenc.Uint16Bytes(0x1234)}

	want := mustMarshalAttributes([]netlink.Attribute{na})
	got := FromAttribute(na).Encode()

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected encoding (-want +got):\n%s", diff)
	}
}

func TestAttrAttributeConversion(t *testing.T) {
	a := NewString(2, "mesh0")

	got, err := a.Attribute()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := netlink.Attribute{
		Length: uint16(nlaHeaderLen + len("mesh0") + 1),
		Type:   2,
		Data:   nlenc.Bytes("mesh0"),
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected attribute (-want +got):\n%s", diff)
	}
}

func TestAttrAttributeConversionMalformed(t *testing.T) {
	if _, err := Parse([]byte{0x06}).Attribute(); !errors.Is(err, ErrMalformedAttribute) {
		t.Fatalf("unexpected error: %v", err)
	}
}

// diffAttributes compares two []netlink.Attribute after zeroing the length
// fields that make equality checks in testing difficult.
func diffAttributes(want, got []netlink.Attribute) string {
	if len(want) != len(got) {
		return cmp.Diff(want, got)
	}

	for i := range want {
		want[i].Length = 0
		got[i].Length = 0
	}

	return cmp.Diff(want, got, cmpopts.EquateEmpty())
}

func mustMarshalAttributes(attrs []netlink.Attribute) []byte {
	b, err := netlink.MarshalAttributes(attrs)
	if err != nil {
		panic(fmt.Sprintf("failed to marshal attributes: %v", err))
	}

	return b
}
