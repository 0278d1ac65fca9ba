package dot11

import (
	"errors"
	"fmt"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
)

// Information element IDs used when synthesizing a BSS description.
const (
	ElementSSID           layers.Dot11InformationElementID = 0
	ElementRates          layers.Dot11InformationElementID = 1
	ElementDSSet          layers.Dot11InformationElementID = 3
	ElementHTCapabilities layers.Dot11InformationElementID = 45
	ElementRSN            layers.Dot11InformationElementID = 48
	ElementHTOperation    layers.Dot11InformationElementID = 61
	ElementExtCapability  layers.Dot11InformationElementID = 127
	ElementVendor         layers.Dot11InformationElementID = 221
)

// MaxSSIDLen is the longest SSID an element can carry.
const MaxSSIDLen = 32

// Lengths of the fixed-size element bodies.
const (
	htCapabilitiesLen = 26
	htOperationLen    = 22
	extCapabilityLen  = 8
)

var (
	ErrSSIDTooLong      = errors.New("ssid longer than 32 bytes")
	ErrTruncatedElement = errors.New("truncated information element")
)

var supportedRates = []byte{0x8c, 0x12, 0x98, 0x24, 0xb0, 0x48, 0x60, 0x6c}

// rsnPrefix is version 1, CCMP group, one CCMP pairwise and one AKM suite
// count, up to the AKM OUI.
var rsnPrefix = []byte{
	0x01, 0x00,
	0x00, 0x0f, 0xac, 0x04,
	0x01, 0x00, 0x00, 0x0f, 0xac, 0x04,
	0x01, 0x00, 0x00, 0x0f, 0xac,
}

// wmmParameters is a WMM parameter element body with default AC parameters.
var wmmParameters = []byte{
	0x00, 0x50, 0xf2, 0x02, 0x01, 0x01, 0x01, 0x00,
	0x03, 0xa4, 0x00, 0x00, 0x27, 0xa4, 0x00, 0x00,
	0x42, 0x43, 0x5e, 0x00, 0x62, 0x32, 0x2f, 0x00,
}

// Element is one decoded information element.
type Element struct {
	ID   layers.Dot11InformationElementID
	Data []byte
}

// BuildScanIEs builds the information element chain of a BSS with the
// given SSID, primary channel and security kind: SSID, rates, DS set,
// HT capabilities, RSN (protected BSS only), HT operation, extended
// capabilities and WMM parameters.
func BuildScanIEs(ssid []byte, channel uint8, sec Security) ([]byte, error) {
	if len(ssid) > MaxSSIDLen {
		return nil, ErrSSIDTooLong
	}

	htOp := make([]byte, htOperationLen)
	htOp[0] = channel

	elems := []gopacket.SerializableLayer{
		element(ElementSSID, ssid),
		element(ElementRates, supportedRates),
		element(ElementDSSet, []byte{channel}),
		element(ElementHTCapabilities, make([]byte, htCapabilitiesLen)),
	}
	if sec.Protected() {
		elems = append(elems, element(ElementRSN, rsnBody(sec)))
	}
	elems = append(elems,
		element(ElementHTOperation, htOp),
		element(ElementExtCapability, make([]byte, extCapabilityLen)),
		element(ElementVendor, wmmParameters),
	)

	buf := gopacket.NewSerializeBuffer()
	if err := gopacket.SerializeLayers(buf, serializeOptions, elems...); err != nil {
		return nil, fmt.Errorf("serialize elements: %w", err)
	}
	return buf.Bytes(), nil
}

func element(id layers.Dot11InformationElementID, info []byte) *layers.Dot11InformationElement {
	return &layers.Dot11InformationElement{
		ID:     id,
		Length: uint8(len(info)),
		Info:   info,
	}
}

func rsnBody(sec Security) []byte {
	body := make([]byte, 0, len(rsnPrefix)+3)
	body = append(body, rsnPrefix...)
	body = append(body, sec.AKMSuite())

	// PTKSA/GTKSA replay counters; SAE and OWE also require MFP.
	caps := byte(0x0c)
	if sec == SecuritySAE || sec == SecurityOWE {
		caps = 0xcc
	}
	return append(body, caps, 0x00)
}

// Elements splits an information element chain.
func Elements(b []byte) ([]Element, error) {
	var out []Element
	for len(b) > 0 {
		if len(b) < 2 {
			return out, ErrTruncatedElement
		}
		n := int(b[1])
		if len(b) < 2+n {
			return out, ErrTruncatedElement
		}
		out = append(out, Element{ID: layers.Dot11InformationElementID(b[0]), Data: b[2 : 2+n]})
		b = b[2+n:]
	}
	return out, nil
}

// FindElement returns the body of the first element with the given ID.
func FindElement(b []byte, id layers.Dot11InformationElementID) ([]byte, bool) {
	elems, _ := Elements(b)
	for _, e := range elems {
		if e.ID == id {
			return e.Data, true
		}
	}
	return nil, false
}
