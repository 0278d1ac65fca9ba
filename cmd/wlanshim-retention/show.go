package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"net/netip"
	"time"

	"github.com/wlanshim/wlanshim-go/pkg/retention"
	"github.com/wlanshim/wlanshim-go/pkg/station"
)

// printSnapshot writes a human-readable view of s. Key material and the
// PMK are masked unless showKeys is set.
func printSnapshot(w io.Writer, s *retention.Snapshot, showKeys bool) {
	fmt.Fprintf(w, "Version:     %d\n", s.Version)
	fmt.Fprintf(w, "Recovered:   %t\n", s.Recovered)
	if !s.SavedAt.IsZero() {
		fmt.Fprintf(w, "Saved at:    %s\n", s.SavedAt.UTC().Format(time.RFC3339))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Access point:")
	fmt.Fprintf(w, "  SSID:            %q\n", s.AP.SSID)
	fmt.Fprintf(w, "  BSSID:           %s\n", s.AP.BSSID)
	fmt.Fprintf(w, "  Security:        %s\n", s.AP.Security)
	fmt.Fprintf(w, "  Beacon interval: %d TU\n", s.AP.BeaconInterval)
	fmt.Fprintf(w, "  Frequency:       %d MHz\n", s.Channel.Frequency)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Station:")
	fmt.Fprintf(w, "  AID:      %d\n", s.Station.AID)
	fmt.Fprintf(w, "  Max idle: %d\n", s.Station.MaxIdle)
	for tid, ba := range s.TID.BlockAck {
		if ba != station.BlockAckInvalid {
			fmt.Fprintf(w, "  TID %d:    %s\n", tid, ba)
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Keys:")
	enabled := 0
	for _, k := range s.Keys {
		if !k.Enabled {
			continue
		}
		enabled++
		kind := "group"
		if k.Pairwise {
			kind = "pairwise"
		}
		fmt.Fprintf(w, "  [%d] %-8s tsc=%d material=%s\n", k.Index, kind, k.TSC, maskHex(k.Material[:], showKeys))
	}
	if enabled == 0 {
		fmt.Fprintln(w, "  (none)")
	}
	if s.HasPMK() {
		fmt.Fprintf(w, "  PMK: %s\n", maskHex(s.PMK[:], showKeys))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "IP:")
	if s.IP.IsZero() {
		fmt.Fprintln(w, "  (none)")
		return
	}
	fmt.Fprintf(w, "  Address: %s\n", netip.AddrFrom4(s.IP.Addr))
	fmt.Fprintf(w, "  Netmask: %s\n", netip.AddrFrom4(s.IP.Netmask))
	fmt.Fprintf(w, "  Gateway: %s\n", netip.AddrFrom4(s.IP.Gateway))
}

func maskHex(b []byte, show bool) string {
	if show {
		return hex.EncodeToString(b)
	}
	return fmt.Sprintf("<%d bytes>", len(b))
}
