package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/profibuy/storefront/internal/domain"
	"github.com/profibuy/storefront/pkg/logger"
)

func TestSessionLoadCreatesFreshSession(t *testing.T) {
	uc := NewSessionUC(newFakeSessionRepo(), logger.NewNop())

	for _, id := range []string{"", "expired"} {
		session, created, err := uc.Load(context.Background(), id)
		if err != nil {
			t.Fatalf("Load(%q): %v", id, err)
		}
		if !created || session.ID == "" || session.ID == id {
			t.Fatalf("Load(%q) should issue a new session, got %+v created=%v", id, session, created)
		}
		if !session.Cart.IsEmpty() {
			t.Fatal("fresh session must have an empty cart")
		}
	}
}

func TestSessionLoadExisting(t *testing.T) {
	repo := newFakeSessionRepo()
	uc := NewSessionUC(repo, logger.NewNop())
	ctx := context.Background()

	session := domain.NewSession("abc", time.Now())
	session.Token = "tok"
	if err := uc.Save(ctx, session); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, created, err := uc.Load(ctx, "abc")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if created || loaded.Token != "tok" {
		t.Fatalf("unexpected session %+v created=%v", loaded, created)
	}

	if err := uc.Destroy(ctx, "abc"); err != nil {
		t.Fatalf("Destroy: %v", err)
	}
	if _, created, _ := uc.Load(ctx, "abc"); !created {
		t.Fatal("destroyed session must not be loaded")
	}
}

func TestSessionRotate(t *testing.T) {
	repo := newFakeSessionRepo()
	uc := NewSessionUC(repo, logger.NewNop())
	ctx := context.Background()

	session := domain.NewSession("before-login", time.Now())
	session.Cart.Add(domain.CartItem{ProductID: "p1", Quantity: 2})
	if err := uc.Save(ctx, session); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if err := uc.Rotate(ctx, session); err != nil {
		t.Fatalf("Rotate: %v", err)
	}
	if session.ID == "before-login" {
		t.Fatal("id not rotated")
	}
	if _, created, _ := uc.Load(ctx, "before-login"); !created {
		t.Fatal("old id must not resolve after rotation")
	}

	loaded, created, err := uc.Load(ctx, session.ID)
	if err != nil || created || loaded.Cart.ItemCount() != 2 {
		t.Fatalf("rotated session lost: %+v created=%v err=%v", loaded, created, err)
	}
}

func TestSessionRotateKeepsIDOnFailure(t *testing.T) {
	repo := newFakeSessionRepo()
	repo.saveErr = errors.New("redis down")
	uc := NewSessionUC(repo, logger.NewNop())

	session := domain.NewSession("keep", time.Now())
	if err := uc.Rotate(context.Background(), session); err == nil {
		t.Fatal("expected error")
	}
	if session.ID != "keep" || session.Saved() {
		t.Fatalf("failed rotation must leave the session untouched: %+v", session)
	}
}
