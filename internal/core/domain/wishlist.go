package domain

// A WishlistState is an immutable snapshot of saved products, unique by ID.
type WishlistState struct {
	Items []Product
}

func (s WishlistState) Contains(id string) bool {
	for _, p := range s.Items {
		if p.ID == id {
			return true
		}
	}
	return false
}

type WishlistCommand interface {
	wishlistCommand()
}

type (
	// AddWishlistItem is ignored when the product is already saved.
	AddWishlistItem struct {
		Product Product
	}

	RemoveWishlistItem struct {
		ID string
	}

	ClearWishlist struct{}
)

func (AddWishlistItem) wishlistCommand()    {}
func (RemoveWishlistItem) wishlistCommand() {}
func (ClearWishlist) wishlistCommand()      {}

func ReduceWishlist(s WishlistState, cmd WishlistCommand) WishlistState {
	switch c := cmd.(type) {
	case AddWishlistItem:
		if s.Contains(c.Product.ID) {
			return s
		}
		items := make([]Product, len(s.Items), len(s.Items)+1)
		copy(items, s.Items)
		return WishlistState{append(items, c.Product)}
	case RemoveWishlistItem:
		if !s.Contains(c.ID) {
			return s
		}
		items := make([]Product, 0, len(s.Items)-1)
		for _, p := range s.Items {
			if p.ID != c.ID {
				items = append(items, p)
			}
		}
		return WishlistState{items}
	case ClearWishlist:
		return WishlistState{}
	default:
		return s
	}
}
