package nlattr

import (
	"github.com/mdlayher/genetlink"
	"github.com/mdlayher/netlink"
)

// FromAttribute encodes a github.com/mdlayher/netlink attribute as an Attr.
// The attribute's Length field is ignored; the length is computed from the
// payload, matching netlink.MarshalAttributes.
func FromAttribute(a netlink.Attribute) Attr {
	return New(a.Type, a.Data)
}

// Attribute converts a valid Attr into a netlink.Attribute for use with the
// github.com/mdlayher/netlink package.  The attribute's payload is copied.
func (a Attr) Attribute() (netlink.Attribute, error) {
	if !a.Valid() {
		return netlink.Attribute{}, ErrMalformedAttribute
	}

	typ, err := a.Type()
	if err != nil {
		return netlink.Attribute{}, err
	}
	length, err := a.Length()
	if err != nil {
		return netlink.Attribute{}, err
	}

	return netlink.Attribute{
		Length: length,
		Type:   typ,
		Data:   a.Bytes(),
	}, nil
}

// Attributes decodes a valid container's children into netlink.Attribute
// values, in scan order.
func (n *Nested) Attributes() ([]netlink.Attribute, error) {
	if !n.Valid() {
		return nil, ErrMalformedAttribute
	}
	return netlink.UnmarshalAttributes(n.payload())
}

// Payload concatenates the encodings of zero or more top-level attributes
// into a message payload.  Attributes that fail Valid are dropped and
// logged, keeping the payload parseable.
func Payload(attrs ...Attr) []byte {
	var b []byte
	for _, a := range attrs {
		if !a.Valid() {
			logger.Error().Msg("dropping invalid attribute from payload")
			continue
		}
		b = append(b, a.data...)
	}
	return b
}

// Command frames top-level attributes as a generic netlink message carrying
// the given command and family version.  The caller supplies the family ID
// and header flags when sending, and owns the connection:
//
//	msg := nlattr.Command(unix.NL80211_CMD_TRIGGER_SCAN, familyVersion, attrs...)
//	msgs, err := conn.Execute(msg, familyID, netlink.Request|netlink.Acknowledge)
func Command(cmd, version uint8, attrs ...Attr) genetlink.Message {
	return genetlink.Message{
		Header: genetlink.Header{
			Command: cmd,
			Version: version,
		},
		Data: Payload(attrs...),
	}
}
