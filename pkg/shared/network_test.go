package shared

import (
	"testing"
)

func TestNormalizeNetworkCaseInsensitive(t *testing.T) {
	cases := []struct {
		input    string
		expected string
	}{
		{"MAINNET", NetworkMainnet},
		{"Mainnet", NetworkMainnet},
		{"TESTNET", NetworkTestnet},
		{"Testnet", NetworkTestnet},
		{"  mainnet  ", NetworkMainnet},
		{"  testnet  ", NetworkTestnet},
	}

	for _, tc := range cases {
		result, err := NormalizeNetwork(tc.input)
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", tc.input, err)
		}
		if result != tc.expected {
			t.Fatalf("expected %q for input %q, got %q", tc.expected, tc.input, result)
		}
	}
}

func TestNormalizeNetworkEmpty(t *testing.T) {
	result, err := NormalizeNetwork("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != NetworkTestnet {
		t.Fatalf("expected %q for empty input, got %q", NetworkTestnet, result)
	}
}

func TestNormalizeNetworkWhitespaceOnly(t *testing.T) {
	result, err := NormalizeNetwork("   ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != NetworkTestnet {
		t.Fatalf("expected %q for whitespace input, got %q", NetworkTestnet, result)
	}
}

func TestNormalizeNetworkPreviewnet(t *testing.T) {
	result, err := NormalizeNetwork(" PreviewNet ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != NetworkPreviewnet {
		t.Fatalf("expected %q, got %q", NetworkPreviewnet, result)
	}
}

func TestNormalizeNetworkUnsupported(t *testing.T) {
	_, err := NormalizeNetwork("devnet")
	if err == nil {
		t.Fatal("expected error for unsupported network")
	}
}

func TestNewHederaClient(t *testing.T) {
	for _, network := range []string{NetworkMainnet, NetworkTestnet, NetworkPreviewnet, ""} {
		client, err := NewHederaClient(network)
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", network, err)
		}
		if client == nil {
			t.Fatalf("expected non-nil client for %q", network)
		}
		client.Close()
	}
}

func TestNewHederaClientUnsupported(t *testing.T) {
	_, err := NewHederaClient("badnet")
	if err == nil {
		t.Fatal("expected error for unsupported network")
	}
}
