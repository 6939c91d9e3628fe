package storage_test

import (
	"context"
	"errors"
	"testing"

	"github.com/croc-pos/api/internal/storage"
)

func TestUserCreateAndGet(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.CreateUser(ctx, storage.User{
		Email:        "gerente@croc.com.br",
		PasswordHash: "$2a$10$fakehashfakehashfakehash",
	}); err != nil {
		t.Fatalf("create user: %v", err)
	}

	user, err := store.GetUserByEmail(ctx, "gerente@croc.com.br")
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if user.PasswordHash != "$2a$10$fakehashfakehashfakehash" {
		t.Errorf("hash: got %q", user.PasswordHash)
	}
}

func TestUserGetNotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.GetUserByEmail(context.Background(), "outro@croc.com.br")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
