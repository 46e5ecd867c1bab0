package storage

import "testing"

func TestHasMojibake(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"Hola, qué tal", false},
		{"plain ascii", false},
		{"", false},
		{"HolÃ¡ corrupted", true},
		{"smart â€œquotesâ€", true},
		{"emoji soup ðŸ˜€", true},
	}
	for _, c := range cases {
		if got := HasMojibake(c.in); got != c.want {
			t.Errorf("HasMojibake(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestDecodeText_CleanUTF8PassesThrough(t *testing.T) {
	in := "Capítulo 1: El niño y la montaña\n“Hola” — dijo."
	if got := DecodeText([]byte(in)); got != in {
		t.Errorf("clean text was altered: %q", got)
	}
}

func TestDecodeText_RepairsDoubleEncodedText(t *testing.T) {
	// UTF-8 text that went through a Latin-1 decode and was re-saved as
	// UTF-8. Re-decoding cannot help here; the substitution table applies.
	in := "CapÃ­tulo 1: El niÃ±o estÃ¡ aquÃ­"
	want := "Capítulo 1: El niño está aquí"
	if got := DecodeText([]byte(in)); got != want {
		t.Errorf("DecodeText = %q, want %q", got, want)
	}
}

func TestFixMojibake(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"Ã¡Ã©Ã­Ã³Ãº", "áéíóú"},
		{"Ã±oÃ±o", "ñoño"},
		{"Â¿QuÃ©?", "¿Qué?"},
		{"â€œholaâ€", "“hola”"},
		{"no artifacts here", "no artifacts here"},
	}
	for _, c := range cases {
		if got := FixMojibake(c.in); got != c.want {
			t.Errorf("FixMojibake(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
