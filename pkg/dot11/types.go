package dot11

// Cipher identifies the cipher suite bound to a key slot.
type Cipher uint8

const (
	CipherNone Cipher = iota
	CipherWEP40
	CipherWEP104
	CipherTKIP
	CipherCCMP
)

// String returns the cipher name.
func (c Cipher) String() string {
	switch c {
	case CipherNone:
		return "NONE"
	case CipherWEP40:
		return "WEP40"
	case CipherWEP104:
		return "WEP104"
	case CipherTKIP:
		return "TKIP"
	case CipherCCMP:
		return "CCMP"
	default:
		return "UNKNOWN"
	}
}

// IsWEP reports whether c is one of the WEP variants.
func (c Cipher) IsWEP() bool {
	return c == CipherWEP40 || c == CipherWEP104
}

// Security is the AP security kind recorded for a BSS.
type Security uint8

const (
	SecurityOpen Security = iota
	SecurityPSK
	SecuritySAE
	SecurityOWE
)

// String returns the security kind name.
func (s Security) String() string {
	switch s {
	case SecurityOpen:
		return "OPEN"
	case SecurityPSK:
		return "WPA2-PSK"
	case SecuritySAE:
		return "WPA3-SAE"
	case SecurityOWE:
		return "OWE"
	default:
		return "UNKNOWN"
	}
}

// Protected reports whether the BSS advertises privacy.
func (s Security) Protected() bool {
	return s == SecurityPSK || s == SecuritySAE || s == SecurityOWE
}

// AKMSuite returns the RSN AKM suite selector type for s.
func (s Security) AKMSuite() uint8 {
	switch s {
	case SecurityPSK:
		return 0x02
	case SecuritySAE:
		return 0x08
	case SecurityOWE:
		return 0x12
	default:
		return 0
	}
}

// ParseSecurity parses the names returned by Security.String plus the
// short forms "open", "psk", "sae" and "owe".
func ParseSecurity(s string) (Security, bool) {
	switch s {
	case "OPEN", "open":
		return SecurityOpen, true
	case "WPA2-PSK", "psk":
		return SecurityPSK, true
	case "WPA3-SAE", "sae":
		return SecuritySAE, true
	case "OWE", "owe":
		return SecurityOWE, true
	default:
		return 0, false
	}
}

// KeyMgmt is the key management mode active on an interface.
type KeyMgmt uint8

const (
	KeyMgmtNone KeyMgmt = iota
	KeyMgmtPSK
	KeyMgmtSAE
	KeyMgmtOWE
	KeyMgmt8021X
)

// String returns the key management mode name.
func (k KeyMgmt) String() string {
	switch k {
	case KeyMgmtNone:
		return "NONE"
	case KeyMgmtPSK:
		return "PSK"
	case KeyMgmtSAE:
		return "SAE"
	case KeyMgmtOWE:
		return "OWE"
	case KeyMgmt8021X:
		return "802.1X"
	default:
		return "UNKNOWN"
	}
}

// Active reports whether a key management protocol runs on the link.
func (k KeyMgmt) Active() bool {
	return k != KeyMgmtNone
}

// KeyMgmtFor maps a BSS security kind to the key management mode a station
// uses to join it.
func KeyMgmtFor(s Security) KeyMgmt {
	switch s {
	case SecurityPSK:
		return KeyMgmtPSK
	case SecuritySAE:
		return KeyMgmtSAE
	case SecurityOWE:
		return KeyMgmtOWE
	default:
		return KeyMgmtNone
	}
}

// ChannelFromFrequency returns the channel number for a 2.4 or 5 GHz
// centre frequency in MHz.
func ChannelFromFrequency(freq uint16) (uint8, bool) {
	switch {
	case freq == 2484:
		return 14, true
	case freq >= 2412 && freq <= 2472:
		return uint8((freq - 2407) / 5), true
	case freq >= 5000 && freq <= 5895:
		return uint8((freq - 5000) / 5), true
	default:
		return 0, false
	}
}
