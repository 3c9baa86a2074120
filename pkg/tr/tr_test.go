package tr

import (
	"context"
	"errors"
	"testing"

	"github.com/profibuy/storefront/pkg/e"
)

func TestTxFromCtxMissing(t *testing.T) {
	if _, err := TxFromCtx(context.Background()); !errors.Is(err, e.ErrTransactionNotFound) {
		t.Fatalf("expected ErrTransactionNotFound, got %v", err)
	}
}

func TestTxFromCtxIgnoresStringKey(t *testing.T) {
	ctx := context.WithValue(context.Background(), "tx", "not a tx") //nolint:staticcheck
	if _, err := TxFromCtx(ctx); err == nil {
		t.Fatal("expected error for untyped key")
	}
}
