package identity

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/accesskeeper/internal/server/models"
)

func TestAnonymous(t *testing.T) {
	id := Anonymous()
	if !id.IsAnonymous() {
		t.Fatal("Anonymous() is not anonymous")
	}
	if id.User() != nil {
		t.Fatal("Anonymous() carries a user")
	}
	if id.Login() != "" {
		t.Fatal("Anonymous() has a login")
	}
}

func TestAuthenticated(t *testing.T) {
	u := &models.User{Login: "alice"}
	id := Authenticated(u)
	if id.IsAnonymous() {
		t.Fatal("Authenticated() reports anonymous")
	}
	if id.Login() != "alice" {
		t.Fatalf("Login() = %q", id.Login())
	}

	// nil user degrades to the sentinel
	if !Authenticated(nil).IsAnonymous() {
		t.Fatal("Authenticated(nil) is not anonymous")
	}
}

func TestContextRoundTrip(t *testing.T) {
	ctx := NewContext(context.Background(), Authenticated(&models.User{Login: "bob"}))

	id, err := FromContext(ctx)
	if err != nil {
		t.Fatalf("FromContext error: %v", err)
	}
	if id.Login() != "bob" {
		t.Fatalf("round-tripped login = %q", id.Login())
	}
}

func TestFromContext_NotWired(t *testing.T) {
	_, err := FromContext(context.Background())
	if !errors.Is(err, ErrNotResolved) {
		t.Fatalf("want ErrNotResolved, got %v", err)
	}
}
