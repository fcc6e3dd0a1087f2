package nlattr

import (
	"github.com/mdlayher/netlink/nlenc"
)

// Definitions taken from Linux kernel source (include/uapi/linux/netlink.h).
const (
	// nlaAlignTo is the alignment boundary of an encoded attribute.
	// #define NLA_ALIGNTO 4
	nlaAlignTo = 4

	// nlaHeaderLen is the size of an attribute header: a uint16 length
	// field followed by a uint16 type field.  Already a multiple of
	// nlaAlignTo, so flag attributes need no padding of their own.
	nlaHeaderLen = 4

	// maxPayloadLen is the largest payload whose declared length still
	// fits the 16-bit header field.
	maxPayloadLen = 0xffff - nlaHeaderLen
)

// nlaAlign rounds n up to the next nlaAlignTo boundary.
// #define NLA_ALIGN(len) (((len) + NLA_ALIGNTO - 1) & ~(NLA_ALIGNTO - 1))
func nlaAlign(n int) int {
	return (n + nlaAlignTo - 1) & ^(nlaAlignTo - 1)
}

// An Attr is a single encoded netlink attribute: a header carrying the
// attribute's type and declared length, the payload, and zero padding up to
// the next 4-byte boundary.  The declared length covers the header and
// payload but never the padding.
//
// An Attr exclusively owns its backing buffer.  Construct one from a typed
// value with New, NewUint8, NewUint16, NewUint32, NewString, or NewFlag, or
// wrap a buffer received from the kernel with Parse.
type Attr struct {
	data []byte
}

// initHeader sizes the buffer for a payload of payloadLen bytes, zero-fills
// it, and writes the header.  Any previous contents are discarded.  A
// payload too large for the 16-bit length field leaves the attribute empty,
// so it fails Valid and is dropped by container appends.
func (a *Attr) initHeader(typ uint16, payloadLen int) {
	if payloadLen < 0 || payloadLen > maxPayloadLen {
		logger.Error().
			Uint16("type", typ).
			Int("payload_length", payloadLen).
			Msg("attribute payload does not fit a netlink attribute")
		a.data = nil
		return
	}

	a.data = make([]byte, nlaHeaderLen+nlaAlign(payloadLen))
	nlenc.PutUint16(a.data[0:2], uint16(nlaHeaderLen+payloadLen))
	nlenc.PutUint16(a.data[2:4], typ)
}

// Parse wraps an already-encoded attribute buffer, such as one produced by
// the kernel.  The buffer is not validated here; callers must check Valid
// before trusting any accessor.  Parse does not copy b, so the caller must
// not modify b afterward.
func Parse(b []byte) Attr {
	return Attr{data: b}
}

// New creates an attribute whose payload is the raw bytes of value,
// verbatim and unterminated.
func New(typ uint16, value []byte) Attr {
	var a Attr
	a.initHeader(typ, len(value))
	if a.data != nil {
		copy(a.data[nlaHeaderLen:], value)
	}
	return a
}

// NewUint8 creates an attribute with a one-byte integer payload.
func NewUint8(typ uint16, value uint8) Attr {
	var a Attr
	a.initHeader(typ, 1)
	nlenc.PutUint8(a.data[nlaHeaderLen:nlaHeaderLen+1], value)
	return a
}

// NewUint16 creates an attribute with a two-byte native-order integer
// payload.
func NewUint16(typ uint16, value uint16) Attr {
	var a Attr
	a.initHeader(typ, 2)
	nlenc.PutUint16(a.data[nlaHeaderLen:nlaHeaderLen+2], value)
	return a
}

// NewUint32 creates an attribute with a four-byte native-order integer
// payload.
func NewUint32(typ uint16, value uint32) Attr {
	var a Attr
	a.initHeader(typ, 4)
	nlenc.PutUint32(a.data[nlaHeaderLen:nlaHeaderLen+4], value)
	return a
}

// NewString creates an attribute whose payload is s followed by a NUL
// terminator.  The terminator is counted inside the declared length; any
// further padding bytes are zero as well, so the two are indistinguishable
// and String strips all of them on decode.
func NewString(typ uint16, s string) Attr {
	var a Attr
	a.initHeader(typ, len(s)+1)
	if a.data != nil {
		copy(a.data[nlaHeaderLen:], s)
	}
	return a
}

// NewFlag creates a header-only attribute whose presence alone conveys a
// boolean fact.
func NewFlag(typ uint16) Attr {
	var a Attr
	a.initHeader(typ, 0)
	return a
}

// Valid reports whether the buffer is self-consistent: at least header-sized,
// with an aligned declared length exactly matching the buffer size.  Every
// decode path must pass this gate before trusting header or payload fields.
func (a Attr) Valid() bool {
	if len(a.data) < nlaHeaderLen {
		return false
	}
	return nlaAlign(int(nlenc.Uint16(a.data[0:2]))) == len(a.data)
}

// Type returns the attribute's type field.  It returns
// ErrMalformedAttribute instead of reading past the end of a buffer too
// short to hold a header.
func (a Attr) Type() (uint16, error) {
	if len(a.data) < nlaHeaderLen {
		return 0, ErrMalformedAttribute
	}
	return nlenc.Uint16(a.data[2:4]), nil
}

// Length returns the attribute's declared length: header plus payload,
// excluding padding.
func (a Attr) Length() (uint16, error) {
	if len(a.data) < nlaHeaderLen {
		return 0, ErrMalformedAttribute
	}
	return nlenc.Uint16(a.data[0:2]), nil
}

// Encode returns the attribute's full wire encoding, including padding.  The
// returned slice aliases the attribute's buffer and must not be modified.
func (a Attr) Encode() []byte {
	return a.data
}

// payload returns the payload window declared by the header, clamped to the
// bytes actually present so a lying header can never cause an out-of-bounds
// read.
func (a Attr) payload() []byte {
	if len(a.data) < nlaHeaderLen {
		return nil
	}
	l := int(nlenc.Uint16(a.data[0:2]))
	if l > len(a.data) {
		l = len(a.data)
	}
	if l < nlaHeaderLen {
		return nil
	}
	return a.data[nlaHeaderLen:l]
}

// Uint8 decodes a one-byte integer payload.
func (a Attr) Uint8() (uint8, error) {
	p := a.payload()
	if len(p) < 1 {
		return 0, ErrMalformedAttribute
	}
	return nlenc.Uint8(p[0:1]), nil
}

// Uint16 decodes a two-byte native-order integer payload.
func (a Attr) Uint16() (uint16, error) {
	p := a.payload()
	if len(p) < 2 {
		return 0, ErrMalformedAttribute
	}
	return nlenc.Uint16(p[0:2]), nil
}

// Uint32 decodes a four-byte native-order integer payload.
func (a Attr) Uint32() (uint32, error) {
	p := a.payload()
	if len(p) < 4 {
		return 0, ErrMalformedAttribute
	}
	return nlenc.Uint32(p[0:4]), nil
}

// Bytes returns a copy of the payload, bounded by the declared length.
func (a Attr) Bytes() []byte {
	p := a.payload()
	out := make([]byte, len(p))
	copy(out, p)
	return out
}

// String decodes a string payload, stripping all trailing NUL bytes: the
// terminator and any padding are both zero, so they cannot be told apart.
// A value that legitimately ends in a zero byte loses it; such values do not
// round-trip.
func (a Attr) String() string {
	return nlenc.String(a.payload())
}
