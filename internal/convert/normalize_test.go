package convert

import "testing"

func TestNormalizeOutput(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "trailing whitespace",
			input: "hello   \nworld   \n",
			want:  "hello\nworld",
		},
		{
			name:  "multiple newlines",
			input: "hello\n\n\n\n\nworld",
			want:  "hello\n\nworld",
		},
		{
			name:  "crlf",
			input: "hello\r\nworld\r\n",
			want:  "hello\nworld",
		},
		{
			name:  "control characters",
			input: "hello\x00world\x01test",
			want:  "helloworldtest",
		},
		{
			name:  "tabs survive",
			input: "col\tcol\n",
			want:  "col\tcol",
		},
		{
			name:  "invalid utf8 dropped",
			input: "abc\xff\xfedef",
			want:  "abcdef",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeOutput(tt.input)
			if got != tt.want {
				t.Errorf("normalizeOutput(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestDecodeTextLatin1(t *testing.T) {
	// "café" in ISO-8859-1: é is 0xE9, invalid as UTF-8.
	input := []byte("caf\xe9 con leche, caf\xe9 solo, m\xe1s caf\xe9 por favor")

	got := decodeText(input)
	if got == "" {
		t.Fatal("decodeText returned empty string")
	}
	for _, bad := range []string{"\xe9", "\xe1"} {
		if containsByte(got, bad[0]) {
			t.Errorf("decoded output still contains raw byte %x: %q", bad[0], got)
		}
	}
}

func containsByte(s string, b byte) bool {
	for i := 0; i < len(s); i++ {
		if s[i] == b {
			return true
		}
	}
	return false
}
