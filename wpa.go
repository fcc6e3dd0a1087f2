package nlattr

import (
	"crypto/sha1"

	"golang.org/x/crypto/pbkdf2"
)

// NewPSK creates a byte attribute whose value is the 32-byte WPA2 pairwise
// master key derived from an SSID and passphrase: PBKDF2-SHA1 with the SSID
// as salt and 4096 iterations, per IEEE 802.11i.  Wireless daemons attach
// the result as NL80211_ATTR_PMK when building connect commands.
func NewPSK(typ uint16, ssid, passphrase string) Attr {
	return New(typ, pbkdf2.Key([]byte(passphrase), []byte(ssid), 4096, 32, sha1.New))
}
