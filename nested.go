package nlattr

import (
	"github.com/mdlayher/netlink/nlenc"
)

// A Nested is an attribute whose payload is a flat concatenation of complete
// child attributes, each independently header-and-padding-complete.  Children
// are appended with Add or AddFlag and located by type with Has, Get, or the
// typed lookups.  Recursive nesting is achieved by adding a Nested as a
// child of another Nested.
//
// The container's buffer grows monotonically; only Add and AddFlag ever
// touch the length field.  A Nested is not safe for concurrent use.
type Nested struct {
	Attr
}

// NewNested creates an empty container: header only, zero payload.
func NewNested(typ uint16) Nested {
	var n Nested
	n.initHeader(typ, 0)
	return n
}

// ParseNested wraps an already-encoded nested attribute buffer.  As with
// Parse, no validation happens here and the caller must not modify b
// afterward.
func ParseNested(b []byte) Nested {
	return Nested{Attr{data: b}}
}

// Add appends child's full encoding to the container and grows the declared
// length by the same amount.  Every child is already alignment-padded, so
// the payload stays aligned without repacking; that invariant is what keeps
// Add O(len(child)).  A child that fails Valid, or one that would overflow
// the 16-bit length field, is dropped and logged.
func (n *Nested) Add(child Attr) {
	if len(n.data) < nlaHeaderLen {
		return
	}
	if !child.Valid() {
		logger.Error().Msg("dropping invalid child attribute")
		return
	}

	length := int(nlenc.Uint16(n.data[0:2])) + len(child.data)
	if length > 0xffff {
		typ, _ := child.Type()
		logger.Error().
			Uint16("type", typ).
			Int("length", length).
			Msg("dropping child attribute: container length field overflow")
		return
	}

	n.data = append(n.data, child.data...)
	nlenc.PutUint16(n.data[0:2], uint16(length))
}

// AddFlag appends a header-only child attribute.  The header is already
// alignment-sized, so no padding is involved.
func (n *Nested) AddFlag(typ uint16) {
	n.Add(NewFlag(typ))
}

// Has reports whether the container holds a child with the given type.
// Absence and a corrupt child stream are observably identical here; callers
// treat both as "attribute unavailable".
func (n *Nested) Has(typ uint16) bool {
	_, _, err := n.find(typ)
	return err == nil
}

// Get extracts the first child with the given type as a new, independently
// owned container; the copy guarantees later mutation of either side cannot
// alias into the other.  The extracted range is validated before being
// returned, so ok is false for a match whose bytes are inconsistent.
func (n *Nested) Get(typ uint16) (Nested, bool) {
	start, end, err := n.find(typ)
	if err != nil {
		return Nested{}, false
	}

	child := ParseNested(append([]byte(nil), n.data[start:end]...))
	if !child.Valid() {
		return Nested{}, false
	}
	return child, true
}

// GetBytes returns the payload of the first child with the given type.
func (n *Nested) GetBytes(typ uint16) ([]byte, bool) {
	c, ok := n.Get(typ)
	if !ok {
		return nil, false
	}
	return c.Bytes(), true
}

// GetString returns the string value of the first child with the given type.
func (n *Nested) GetString(typ uint16) (string, bool) {
	c, ok := n.Get(typ)
	if !ok {
		return "", false
	}
	return c.String(), true
}

// GetUint8 returns the uint8 value of the first child with the given type.
func (n *Nested) GetUint8(typ uint16) (uint8, bool) {
	c, ok := n.Get(typ)
	if !ok {
		return 0, false
	}
	v, err := c.Uint8()
	return v, err == nil
}

// GetUint16 returns the uint16 value of the first child with the given type.
func (n *Nested) GetUint16(typ uint16) (uint16, bool) {
	c, ok := n.Get(typ)
	if !ok {
		return 0, false
	}
	v, err := c.Uint16()
	return v, err == nil
}

// GetUint32 returns the uint32 value of the first child with the given type.
func (n *Nested) GetUint32(typ uint16) (uint32, bool) {
	c, ok := n.Get(typ)
	if !ok {
		return 0, false
	}
	v, err := c.Uint32()
	return v, err == nil
}

// find scans the container's children for the first one with the given type
// and returns the byte range of its full encoding, padding included.  Each
// step verifies that a complete header remains and that the child's aligned
// declared length stays inside the buffer before any field is trusted; a
// declared length below the header size would also stall the scan, so both
// are treated as corruption.  Corruption is logged and reported as
// errTruncatedAttribute, which the public boundary collapses to not-found.
func (n *Nested) find(typ uint16) (int, int, error) {
	// Skip the container's own header.
	off := nlaHeaderLen
	for off+nlaHeaderLen <= len(n.data) {
		length := int(nlenc.Uint16(n.data[off : off+2]))
		if length < nlaHeaderLen || off+nlaAlign(length) > len(n.data) {
			logger.Error().
				Int("offset", off).
				Int("length", length).
				Msg("broken nl80211 attribute in nested scan")
			return 0, 0, errTruncatedAttribute
		}

		if nlenc.Uint16(n.data[off+2:off+4]) == typ {
			return off, off + nlaAlign(length), nil
		}
		off += nlaAlign(length)
	}

	return 0, 0, errAttributeNotFound
}
