package mxf

import "testing"

func makeKey(rest ...byte) Key {
	var k Key
	copy(k[:4], FourCC[:])
	copy(k[4:], rest)
	return k
}

func TestClassifyKeyEssenceTable(t *testing.T) {
	cases := []struct {
		name string
		key  Key
		want KeyType
	}{
		{"video", makeKey(0x01, 0x02, 0x01, 0x01, 0x0D, 0x01, 0x03, 0x01, 0x15, 0x00, 0x00, 0x00), Video},
		{"audio", makeKey(0x01, 0x02, 0x01, 0x01, 0x0D, 0x01, 0x03, 0x01, 0x16, 0x00, 0x00, 0x00), Audio},
		{"data", makeKey(0x01, 0x02, 0x01, 0x01, 0x0D, 0x01, 0x03, 0x01, 0x17, 0x00, 0x00, 0x00), Data},
		{"system", makeKey(0x02, 0x05, 0x01, 0x01, 0x0D, 0x01, 0x03, 0x01, 0x04, 0x00, 0x00, 0x00), System},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := ClassifyKey(c.key); got != c.want {
				t.Errorf("got %v, want %v", got, c.want)
			}
		})
	}
}

func TestClassifyKeyTimecodeComponent(t *testing.T) {
	key := makeKey(0x02, 0x53, 0x01, 0x01, 0x0D, 0x01, 0x01, 0x01, 0x01, 0x14, 0x00, 0x00)
	if got := ClassifyKey(key); got != TimecodeComponent {
		t.Errorf("got %v, want TimecodeComponent", got)
	}
}

func TestClassifyKeyUnknown(t *testing.T) {
	key := makeKey(0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF)
	if got := ClassifyKey(key); got != Unknown {
		t.Errorf("got %v, want Unknown", got)
	}
}

func TestValidateFourCC(t *testing.T) {
	key := makeKey(0x01, 0x02, 0x01, 0x01, 0x0D, 0x01, 0x03, 0x01, 0x15, 0x00, 0x00, 0x00)
	if err := ValidateFourCC(key); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	key[0] = 0x00
	if err := ValidateFourCC(key); err == nil {
		t.Error("expected error for corrupted FourCC")
	}
}
