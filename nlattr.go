// Package nlattr implements the netlink attribute (TLV) encoding used by the
// nl80211 wireless configuration protocol: typed scalar attributes, opaque
// byte attributes, null-terminated string attributes, and nested attribute
// containers whose payloads are themselves sequences of attributes.
//
// The package only transforms byte buffers.  It opens no sockets and owns no
// protocol constants; attribute types are opaque integers meaningful to the
// caller.  Encoded buffers are handed to a transport such as
// github.com/mdlayher/genetlink, and buffers received from a transport are
// wrapped with Parse or ParseNested and gated with Valid before use.
//
// All multi-byte header and integer fields use the host's native byte order,
// as the kernel expects.
package nlattr

import (
	"errors"

	"github.com/rs/zerolog"
)

// ErrMalformedAttribute is returned by accessors when an attribute's buffer
// is too short to contain the field being read.  Callers that check Valid
// before decoding never see it.
var ErrMalformedAttribute = errors.New("malformed netlink attribute")

// errTruncatedAttribute indicates that a child attribute's declared length
// runs past the end of its container during a scan.  It never escapes this
// package: searches report it as not-found after logging.
var errTruncatedAttribute = errors.New("truncated netlink attribute")

// errAttributeNotFound is the ordinary no-match outcome of a scan.  It is
// not an error condition and is never logged.
var errAttributeNotFound = errors.New("attribute not found")

// logger reports corruption detected while scanning or appending.  It is
// disabled by default so the package stays silent in library use.
var logger = zerolog.Nop()

// SetLogger directs the package's corruption diagnostics to l.  Attribute
// instances are not safe for concurrent use and neither is SetLogger; call
// it once during setup.
func SetLogger(l zerolog.Logger) {
	logger = l
}
