package domain

import "github.com/shopspring/decimal"

type CartLine struct {
	Product
	Quantity int
}

// A CartState is an immutable snapshot of a cart.
//
// Lines keep insertion order and hold at most one line per product ID.
type CartState struct {
	Lines []CartLine
}

// Total is recomputed on every call.
func (s CartState) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range s.Lines {
		total = total.Add(l.Price.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return total.Round(cents)
}

func (s CartState) ItemCount() int {
	var n int
	for _, l := range s.Lines {
		n += l.Quantity
	}
	return n
}

func (s CartState) Empty() bool {
	return len(s.Lines) == 0
}

func (s CartState) Line(id string) (CartLine, bool) {
	i := s.index(id)
	if i < 0 {
		return CartLine{}, false
	}
	return s.Lines[i], true
}

func (s CartState) index(id string) int {
	for i, l := range s.Lines {
		if l.ID == id {
			return i
		}
	}
	return -1
}

// A CartCommand is one of [AddCartItem], [UpdateCartQuantity],
// [RemoveCartItem] or [ClearCart].
type CartCommand interface {
	cartCommand()
}

type (
	AddCartItem struct {
		Product Product
	}

	// UpdateCartQuantity sets the quantity as given, non-positive values included.
	UpdateCartQuantity struct {
		ID       string
		Quantity int
	}

	RemoveCartItem struct {
		ID string
	}

	ClearCart struct{}
)

func (AddCartItem) cartCommand()        {}
func (UpdateCartQuantity) cartCommand() {}
func (RemoveCartItem) cartCommand()     {}
func (ClearCart) cartCommand()          {}

// ReduceCart applies cmd to s and returns the next snapshot. s is left untouched.
func ReduceCart(s CartState, cmd CartCommand) CartState {
	switch c := cmd.(type) {
	case AddCartItem:
		return s.add(c.Product)
	case UpdateCartQuantity:
		return s.setQuantity(c.ID, c.Quantity)
	case RemoveCartItem:
		return s.remove(c.ID)
	case ClearCart:
		return CartState{}
	default:
		return s
	}
}

func (s CartState) add(p Product) CartState {
	i := s.index(p.ID)
	if i < 0 {
		lines := make([]CartLine, len(s.Lines), len(s.Lines)+1)
		copy(lines, s.Lines)
		return CartState{append(lines, CartLine{Product: p, Quantity: 1})}
	}
	lines := s.cloneLines()
	lines[i].Quantity++
	return CartState{lines}
}

func (s CartState) setQuantity(id string, quantity int) CartState {
	i := s.index(id)
	if i < 0 {
		return s
	}
	lines := s.cloneLines()
	lines[i].Quantity = quantity
	return CartState{lines}
}

func (s CartState) remove(id string) CartState {
	i := s.index(id)
	if i < 0 {
		return s
	}
	lines := make([]CartLine, 0, len(s.Lines)-1)
	lines = append(lines, s.Lines[:i]...)
	lines = append(lines, s.Lines[i+1:]...)
	return CartState{lines}
}

func (s CartState) cloneLines() []CartLine {
	lines := make([]CartLine, len(s.Lines))
	copy(lines, s.Lines)
	return lines
}
