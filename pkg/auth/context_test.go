package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestWithIdentity_IdentityFromCtx(t *testing.T) {
	id := Identity{MemberID: uuid.New(), HouseholdID: uuid.New()}
	ctx := WithIdentity(context.Background(), id)

	got, err := IdentityFromCtx(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != id {
		t.Fatalf("expected %v, got %v", id, got)
	}
}

func TestIdentityFromCtx_EmptyContext(t *testing.T) {
	_, err := IdentityFromCtx(context.Background())
	if !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
}

func TestIdentityFromCtx_NilMemberID(t *testing.T) {
	ctx := WithIdentity(context.Background(), Identity{MemberID: uuid.Nil, HouseholdID: uuid.New()})
	_, err := IdentityFromCtx(ctx)
	if !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated for nil member id, got %v", err)
	}
}

func TestIdentityFromCtx_NilHouseholdID(t *testing.T) {
	ctx := WithIdentity(context.Background(), Identity{MemberID: uuid.New(), HouseholdID: uuid.Nil})
	_, err := IdentityFromCtx(ctx)
	if !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated for nil household id, got %v", err)
	}
}

func TestIdentityFromCtx_Isolation(t *testing.T) {
	id1 := Identity{MemberID: uuid.New(), HouseholdID: uuid.New()}
	id2 := Identity{MemberID: uuid.New(), HouseholdID: uuid.New()}

	ctx1 := WithIdentity(context.Background(), id1)
	ctx2 := WithIdentity(context.Background(), id2)

	got1, _ := IdentityFromCtx(ctx1)
	got2, _ := IdentityFromCtx(ctx2)

	if got1 != id1 {
		t.Fatalf("ctx1: expected %v, got %v", id1, got1)
	}
	if got2 != id2 {
		t.Fatalf("ctx2: expected %v, got %v", id2, got2)
	}
	if got1 == got2 {
		t.Fatal("expected different identities in isolated contexts")
	}
}
