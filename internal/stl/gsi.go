package stl

import "fmt"

// GSISize is the fixed byte length of the GSI header block.
const GSISize = 1024

// GSIOptions carries the fields of the GSI header a caller may want to
// customize; everything else is fixed per EBU-t3264.
type GSIOptions struct {
	Country   string // 3-letter country code, defaults to "AUS"
	Publisher string // up to 32 ASCII bytes
}

// buildGSI renders the 1024-byte GSI header. date is "yymmdd" for both the
// creation and revision date fields, per the spec's "today" policy.
func buildGSI(opts GSIOptions, date string, totalTTI, totalSubtitles int) []byte {
	b := make([]byte, GSISize)
	for i := range b {
		b[i] = ' '
	}

	putASCII(b, 0, "437")
	putASCII(b, 3, "STL25.01")
	b[11] = 0x31
	putASCII(b, 12, "00")
	putASCII(b, 14, "09")
	// 16..48 OPT, 48..224 OET/TPT/TET/TN/TC/SLR left as spaces.
	putASCII(b, 224, date)
	putASCII(b, 230, date)
	putASCII(b, 236, "01")
	putZeroPadded(b, 238, totalTTI, 5)
	putZeroPadded(b, 243, totalSubtitles, 5)
	putZeroPadded(b, 248, 1, 3)
	putZeroPadded(b, 251, 38, 2)
	putZeroPadded(b, 253, 23, 2)
	b[255] = 0x31
	putASCII(b, 256, "00000000")
	putASCII(b, 264, "00000000")
	b[272] = 0x31
	b[273] = 0x31

	country := opts.Country
	if country == "" {
		country = "AUS"
	}
	putASCII(b, 274, country)
	putASCII(b, 277, opts.Publisher)
	// 309..1024: EN, ECD, spares, UDA stay spaces.

	return b
}

func putASCII(b []byte, offset int, s string) {
	copy(b[offset:], s)
}

func putZeroPadded(b []byte, offset, value, width int) {
	s := fmt.Sprintf("%0*d", width, value)
	if len(s) > width {
		s = s[len(s)-width:]
	}
	copy(b[offset:], s)
}
