package security

import "testing"

func TestDeriveChannelTokenDeterministic(t *testing.T) {
	a := DeriveChannelToken("secret-value")
	b := DeriveChannelToken("secret-value")
	if a == "" {
		t.Fatal("derived token is empty")
	}
	if a != b {
		t.Fatal("same secret must derive the same token")
	}
	if a == DeriveChannelToken("other-secret") {
		t.Fatal("different secrets must derive different tokens")
	}
}

func TestDeriveChannelTokenEmptySecret(t *testing.T) {
	if got := DeriveChannelToken("   "); got != "" {
		t.Fatalf("blank secret derived %q, want empty", got)
	}
}

func TestResolveChannelTokenPrefersEnv(t *testing.T) {
	t.Setenv("WINSHELL_CHANNEL_TOKEN", "explicit-token")
	if got := ResolveChannelToken("secret"); got != "explicit-token" {
		t.Fatalf("resolved %q, want the explicit env token", got)
	}
}

func TestResolveChannelTokenDerivesFromSecret(t *testing.T) {
	t.Setenv("WINSHELL_CHANNEL_TOKEN", "")
	if got := ResolveChannelToken("secret"); got != DeriveChannelToken("secret") {
		t.Fatalf("resolved %q, want the derived token", got)
	}
}
