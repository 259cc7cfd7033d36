package helpers

import (
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
)

func TestShortenAddr(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045", "0xd8dA…6045"},
		{"0x1234", "0x1234"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := ShortenAddr(tt.in); got != tt.want {
			t.Errorf("ShortenAddr(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEIP681(t *testing.T) {
	addr := common.HexToAddress("0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045")
	want := "ethereum:0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045@5"
	if got := EIP681(addr, 5); got != want {
		t.Errorf("EIP681 = %q, want %q", got, want)
	}
}

func TestGenerateQRCode(t *testing.T) {
	qr := GenerateQRCode("ethereum:0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045@5")
	if qr == "" {
		t.Fatal("GenerateQRCode returned empty output")
	}
	if len(strings.Split(qr, "\n")) < 10 {
		t.Errorf("QR code looks too small:\n%s", qr)
	}
}

func TestFadeStringKeepsText(t *testing.T) {
	if FadeString("", "#000000", "#FFFFFF") != "" {
		t.Error("empty input should stay empty")
	}
	out := FadeString("welcome", "#7EE787", "#82CFFD")
	for _, r := range "welcome" {
		if !strings.ContainsRune(out, r) {
			t.Errorf("FadeString dropped %q: %q", r, out)
		}
	}
}

func TestMinMax(t *testing.T) {
	if Max(2, 3) != 3 || Max(3, 2) != 3 {
		t.Error("Max")
	}
	if Min(2, 3) != 2 || Min(3, 2) != 2 {
		t.Error("Min")
	}
}
