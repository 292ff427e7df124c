package cart

import (
	"testing"

	"github.com/google/uuid"
)

func TestLineKeyIsStable(t *testing.T) {
	t.Parallel()

	productID := uuid.New()
	colorID := uuid.New()

	plain := LineKey(productID, nil, nil)
	if plain != productID.String()+"::" {
		t.Fatalf("unexpected plain key %q", plain)
	}

	withColor := LineKey(productID, &colorID, nil)
	if withColor == plain {
		t.Fatal("expected color to change the key")
	}
	again := LineKey(productID, &colorID, nil)
	if withColor != again {
		t.Fatal("expected identical choices to map to the same key")
	}
}

func TestSessionUpsertAndSetQuantity(t *testing.T) {
	t.Parallel()

	productID := uuid.New()
	key := LineKey(productID, nil, nil)
	session := &Session{}

	session.Upsert(Line{Key: key, ProductID: productID, Quantity: 2})
	session.Upsert(Line{Key: key, ProductID: productID, Quantity: 3})
	if line := session.Find(key); line == nil || line.Quantity != 5 {
		t.Fatalf("expected merged quantity 5, got %+v", line)
	}

	if !session.SetQuantity(key, 1) {
		t.Fatal("expected key to exist")
	}
	if line := session.Find(key); line.Quantity != 1 {
		t.Fatalf("expected quantity 1, got %d", line.Quantity)
	}

	if !session.SetQuantity(key, 0) {
		t.Fatal("expected zero update to find the key")
	}
	if !session.IsEmpty() {
		t.Fatal("expected zero quantity to remove the line")
	}
	if session.SetQuantity(key, 2) {
		t.Fatal("expected missing key to report false")
	}
}
