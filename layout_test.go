package gc

import "testing"

func TestParseLayoutBasicShapes(t *testing.T) {
	cases := []struct {
		layout string
		slots  []Slot
	}{
		{"**", []Slot{{Pointer, 8}, {Pointer, 8}}},
		{"**ll", []Slot{{Pointer, 8}, {Pointer, 8}, {Scalar, 8}, {Scalar, 8}}},
		{"i*d*", []Slot{{Scalar, 4}, {Pointer, 8}, {Scalar, 8}, {Pointer, 8}}},
		{"3*", []Slot{{Pointer, 8}, {Pointer, 8}, {Pointer, 8}}},
		{"*3", []Slot{{Pointer, 8}, {Pointer, 8}, {Pointer, 8}}},
		{"cb", []Slot{{Scalar, 1}, {Scalar, 1}}},
		{"", nil},
	}
	for _, c := range cases {
		got, err := ParseLayout(c.layout)
		if err != nil {
			t.Fatalf("ParseLayout(%q): unexpected error: %v", c.layout, err)
		}
		if len(got) != len(c.slots) {
			t.Fatalf("ParseLayout(%q) = %v, want %v", c.layout, got, c.slots)
		}
		for i := range got {
			if got[i] != c.slots[i] {
				t.Fatalf("ParseLayout(%q)[%d] = %v, want %v", c.layout, i, got[i], c.slots[i])
			}
		}
	}
}

func TestParseLayoutRejectsMalformed(t *testing.T) {
	bad := []string{
		"x",     // not in the alphabet
		"3",     // trailing digit with nothing to repeat
		"0*",    // zero repeat count
		"2*3",   // ambiguous: count prefix on a "*N" array token
		"*35",   // "*N" array form must be the final token (two digits here)
		"**1x",  // trailing digit not at the very end
	}
	for _, layout := range bad {
		if _, err := ParseLayout(layout); err == nil {
			t.Fatalf("ParseLayout(%q): expected error, got none", layout)
		}
	}
}

func TestPayloadSize(t *testing.T) {
	slots, err := ParseLayout("**ll")
	if err != nil {
		t.Fatal(err)
	}
	if got, want := payloadSize(slots), 2*8+2*8; got != want {
		t.Fatalf("payloadSize(\"**ll\") = %d, want %d", got, want)
	}
}
