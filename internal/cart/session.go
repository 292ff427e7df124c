package cart

import (
	"strings"

	"github.com/google/uuid"
)

// Line is one entry of a session cart: a product, an optional variant choice,
// and a quantity. Quantity is always positive while the line exists; dropping
// a line to zero removes it instead.
type Line struct {
	Key       string     `json:"key"`
	ProductID uuid.UUID  `json:"product_id"`
	ColorID   *uuid.UUID `json:"color_id,omitempty"`
	SizeID    *uuid.UUID `json:"size_id,omitempty"`
	Quantity  int        `json:"quantity"`
}

// Session is the ephemeral cart blob stored per merchant-scoped session.
// Lines keep insertion order so summaries render stably.
type Session struct {
	Lines []Line `json:"lines"`
}

// LineKey builds the composite key identifying a cart line. Absent color or
// size axes collapse to an empty segment so the same choice always maps to
// the same key.
func LineKey(productID uuid.UUID, colorID, sizeID *uuid.UUID) string {
	parts := []string{productID.String(), "", ""}
	if colorID != nil {
		parts[1] = colorID.String()
	}
	if sizeID != nil {
		parts[2] = sizeID.String()
	}
	return strings.Join(parts, ":")
}

// Find returns a pointer to the line with the given key, or nil.
func (s *Session) Find(key string) *Line {
	for i := range s.Lines {
		if s.Lines[i].Key == key {
			return &s.Lines[i]
		}
	}
	return nil
}

// Upsert adds quantity to an existing line or appends a new one.
func (s *Session) Upsert(line Line) {
	if existing := s.Find(line.Key); existing != nil {
		existing.Quantity += line.Quantity
		return
	}
	s.Lines = append(s.Lines, line)
}

// SetQuantity replaces a line's quantity; zero removes the line. Reports
// whether the key existed.
func (s *Session) SetQuantity(key string, quantity int) bool {
	for i := range s.Lines {
		if s.Lines[i].Key != key {
			continue
		}
		if quantity == 0 {
			s.Lines = append(s.Lines[:i], s.Lines[i+1:]...)
		} else {
			s.Lines[i].Quantity = quantity
		}
		return true
	}
	return false
}

// Remove deletes a line by key, reporting whether it existed.
func (s *Session) Remove(key string) bool {
	return s.SetQuantity(key, 0)
}

// IsEmpty reports whether the session holds no lines.
func (s *Session) IsEmpty() bool {
	return s == nil || len(s.Lines) == 0
}
