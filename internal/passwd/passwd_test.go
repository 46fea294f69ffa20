package passwd

import (
	"strings"
	"testing"
)

func TestHashAndVerify(t *testing.T) {
	h, err := Hash("correct horse")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if !strings.HasPrefix(h, "$argon2id$") {
		t.Fatalf("unexpected hash format: %q", h)
	}
	if strings.Contains(h, "correct horse") {
		t.Fatal("hash contains the plaintext")
	}
	if !Verify("correct horse", h) {
		t.Fatal("Verify rejected the right password")
	}
	if Verify("wrong horse", h) {
		t.Fatal("Verify accepted the wrong password")
	}
}

func TestHash_SaltsDiffer(t *testing.T) {
	h1, err := Hash("password")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	h2, err := Hash("password")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if h1 == h2 {
		t.Fatal("two hashes of the same password are identical, salt is not random")
	}
	if !Verify("password", h1) || !Verify("password", h2) {
		t.Fatal("either hash failed to verify")
	}
}

func TestVerify_MalformedStoredValue(t *testing.T) {
	for _, encoded := range []string{
		"",
		"plaintext",
		"$argon2id$",
		"$argon2id$v=19$m=65536,t=1,p=4$!!!$!!!",
		"$bcrypt$v=19$m=65536,t=1,p=4$c2FsdA$a2V5",
		// invalid cost parameters must not reach the key derivation,
		// which panics on zero rounds or parallelism
		"$argon2id$v=19$m=65536,t=0,p=4$c2FsdA$a2V5",
		"$argon2id$v=19$m=65536,t=1,p=0$c2FsdA$a2V5",
		"$argon2id$v=19$m=4294967295,t=1,p=4$c2FsdA$a2V5",
	} {
		if Verify("anything", encoded) {
			t.Fatalf("Verify accepted malformed stored value %q", encoded)
		}
	}
}

func TestAcceptable(t *testing.T) {
	if Acceptable("") || Acceptable("12345") {
		t.Fatal("short password accepted")
	}
	if !Acceptable("123456") {
		t.Fatal("six-character password rejected")
	}
}
