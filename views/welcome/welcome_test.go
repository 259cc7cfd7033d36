package welcome

import (
	"strings"
	"testing"

	"ens-welcome-tui/config"
)

func TestHeading(t *testing.T) {
	tests := []struct {
		display string
		want    string
	}{
		{"", "Welcome to LearnWeb3 Associates!"},
		{"vitalik.eth", "Welcome to LearnWeb3 Associates vitalik.eth!"},
		{"0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045", "Welcome to LearnWeb3 Associates 0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045!"},
	}
	for _, tt := range tests {
		if got := Heading("LearnWeb3 Associates", tt.display); got != tt.want {
			t.Errorf("Heading(%q) = %q, want %q", tt.display, got, tt.want)
		}
	}
}

func TestButton(t *testing.T) {
	if got := Button(Props{}); !strings.Contains(got, ConnectLabel) {
		t.Errorf("disconnected button = %q", got)
	}
	if got := Button(Props{Connecting: true}); !strings.Contains(got, "waiting for wallet") {
		t.Errorf("connecting button = %q", got)
	}
	got := Button(Props{Connected: true})
	if !strings.Contains(got, ConnectedLabel) || strings.Contains(got, ConnectLabel) {
		t.Errorf("connected indicator = %q", got)
	}
}

func TestRender(t *testing.T) {
	p := Props{
		Width:     100,
		Branding:  config.Branding{Name: "LearnWeb3 Associates", Tagline: "It's an NFT collection for LearnWeb3Associates."},
		Display:   "alice.eth",
		Connected: true,
		Network:   config.Network{Name: "goerli", Label: "Goerli", ChainID: 5},
		Provider:  config.ProviderInjected,
	}
	out := Render(p)
	for _, want := range []string{"alice.eth", "It's an NFT collection", "Goerli", "injected"} {
		if !strings.Contains(out, want) {
			t.Errorf("Render output missing %q", want)
		}
	}

	p.Connected = false
	p.Display = ""
	if out := Render(p); strings.Contains(out, "Network:") {
		t.Error("status line is only shown once connected")
	}
}

func TestNav(t *testing.T) {
	if got := Nav(80, false); !strings.Contains(got, "connect") {
		t.Errorf("disconnected nav = %q", got)
	}
	if got := Nav(80, true); !strings.Contains(got, "copy address") {
		t.Errorf("connected nav = %q", got)
	}
}
