package stl

import "testing"

func TestBuildGSI_FixedOffsets(t *testing.T) {
	b := buildGSI(GSIOptions{}, "260731", 3, 2)
	if len(b) != GSISize {
		t.Fatalf("GSI length = %d, want %d", len(b), GSISize)
	}
	checks := []struct {
		offset int
		want   string
	}{
		{0, "437"},
		{3, "STL25.01"},
		{14, "09"},
		{224, "260731"},
		{230, "260731"},
		{236, "01"},
		{238, "00003"},
		{243, "00002"},
		{248, "001"},
		{251, "38"},
		{253, "23"},
		{274, "AUS"},
	}
	for _, c := range checks {
		got := string(b[c.offset : c.offset+len(c.want)])
		if got != c.want {
			t.Errorf("offset %d = %q, want %q", c.offset, got, c.want)
		}
	}
	if b[11] != 0x31 || b[255] != 0x31 || b[272] != 0x31 || b[273] != 0x31 {
		t.Error("expected literal 0x31 flags at DSC/TCS/TND/DSN offsets")
	}
	if b[1023] != ' ' {
		t.Error("expected trailing user-defined area to be space-padded")
	}
}

func TestBuildGSI_CustomCountryAndPublisher(t *testing.T) {
	b := buildGSI(GSIOptions{Country: "USA", Publisher: "Acme"}, "010101", 0, 0)
	if string(b[274:277]) != "USA" {
		t.Errorf("country = %q, want USA", b[274:277])
	}
	if string(b[277:281]) != "Acme" {
		t.Errorf("publisher prefix = %q, want Acme", b[277:281])
	}
	if b[281] != ' ' {
		t.Error("expected publisher field padded with spaces")
	}
}
