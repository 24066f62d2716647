package password

import (
	"strings"
	"testing"
)

func TestHashVerify_RoundTrip(t *testing.T) {
	phc, err := Hash(Default, "pwd12345")
	if err != nil {
		t.Fatalf("Hash err: %v", err)
	}
	if !strings.HasPrefix(phc, "$argon2id$v=19$") {
		t.Fatalf("unexpected PHC format: %q", phc)
	}
	if !Verify("pwd12345", phc) {
		t.Fatalf("expected verify ok")
	}
	if Verify("wrong-password", phc) {
		t.Fatalf("expected verify to fail for wrong password")
	}
}

func TestHash_EmptyPassword(t *testing.T) {
	if _, err := Hash(Default, ""); err == nil {
		t.Fatalf("expected error for empty password")
	}
}

func TestVerify_MalformedPHC(t *testing.T) {
	cases := []string{
		"",
		"plain-text",
		"$argon2id$v=18$m=65536,t=3,p=1$c2FsdA$ZGs",
		"$bcrypt$whatever",
		"$argon2id$v=19$m=65536,t=3,p=1$not-base64!!$ZGs",
	}
	for _, phc := range cases {
		if Verify("pwd12345", phc) {
			t.Fatalf("expected verify false for %q", phc)
		}
	}
}
