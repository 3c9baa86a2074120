package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func item(productID string, qty int, price string) CartItem {
	return CartItem{
		ID:        "line-" + productID,
		ProductID: productID,
		Quantity:  qty,
		Price:     decimal.RequireFromString(price),
	}
}

func TestCartAddMergesQuantities(t *testing.T) {
	var cart Cart

	cart.Add(item("p1", 1, "10.00"))
	cart.Add(item("p1", 2, "10.00"))
	cart.Add(item("p2", 1, "5.50"))

	if len(cart.Items) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(cart.Items))
	}
	if cart.Items[0].Quantity != 3 {
		t.Fatalf("expected merged quantity 3, got %d", cart.Items[0].Quantity)
	}
	if cart.ItemCount() != 4 {
		t.Fatalf("expected item count 4, got %d", cart.ItemCount())
	}
}

func TestCartTotal(t *testing.T) {
	var cart Cart
	cart.Add(item("p1", 3, "19.99"))
	cart.Add(item("p2", 1, "0.03"))

	want := decimal.RequireFromString("60.00")
	if !cart.Total().Equal(want) {
		t.Fatalf("total mismatch: got %s want %s", cart.Total(), want)
	}
}

func TestCartSetQuantityNonPositiveRemoves(t *testing.T) {
	var cart Cart
	cart.Add(item("p1", 2, "1"))
	cart.Add(item("p2", 2, "1"))

	if !cart.SetQuantity("p1", 0) {
		t.Fatal("expected SetQuantity(0) to report removal")
	}
	if len(cart.Items) != 1 || cart.Items[0].ProductID != "p2" {
		t.Fatalf("unexpected items after removal: %+v", cart.Items)
	}

	if !cart.SetQuantity("p2", 7) {
		t.Fatal("expected SetQuantity to update existing line")
	}
	if cart.Items[0].Quantity != 7 {
		t.Fatalf("expected quantity 7, got %d", cart.Items[0].Quantity)
	}

	if cart.SetQuantity("missing", 1) {
		t.Fatal("SetQuantity on missing product should report false")
	}
}

func TestCartClear(t *testing.T) {
	var cart Cart
	cart.Add(item("p1", 1, "1"))
	cart.Clear()

	if !cart.IsEmpty() {
		t.Fatal("cart should be empty after Clear")
	}
	if !cart.Total().IsZero() {
		t.Fatalf("empty cart total should be zero, got %s", cart.Total())
	}
}

func TestCartVariantLines(t *testing.T) {
	var cart Cart
	red := item("p1", 1, "10")
	red.VariantID = "red"
	blue := item("p1", 2, "10")
	blue.VariantID = "blue"

	cart.Add(red)
	cart.Add(blue)
	cart.Add(red)

	if len(cart.Items) != 2 || cart.Items[0].Quantity != 2 || cart.Items[1].Quantity != 2 {
		t.Fatalf("variants must not merge: %+v", cart.Items)
	}

	if !cart.Remove("p1") || len(cart.Items) != 0 {
		t.Fatalf("Remove must drop every line of the product: %+v", cart.Items)
	}
	if cart.Remove("p1") {
		t.Fatal("second Remove must report false")
	}
}
