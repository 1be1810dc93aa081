package domain

// CartItem is a snapshot of a product at the moment it was added, plus the
// selected quantity. Later catalog edits do not touch items already in a cart.
type CartItem struct {
	Product
	Quantity int `json:"quantity"`
}

// Cart holds a customer's in-progress selection. Items are keyed by product
// id: adding a product that is already present bumps its quantity instead of
// appending a duplicate. Item order is stable, new products append to the end.
type Cart struct {
	Items []CartItem `json:"items"`
}

// Add puts one unit of the product into the cart.
func (c *Cart) Add(p Product) {
	for i := range c.Items {
		if c.Items[i].ID == p.ID {
			c.Items[i].Quantity++
			return
		}
	}
	c.Items = append(c.Items, CartItem{Product: p, Quantity: 1})
}

// Remove deletes the item with the given product id. Absent ids are a no-op.
func (c *Cart) Remove(id string) {
	for i, item := range c.Items {
		if item.ID == id {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return
		}
	}
}

// UpdateQuantity adjusts an item's quantity by delta, clamped at 1. Removal
// is a separate explicit action, decrementing never drops an item. Absent ids
// are a no-op.
func (c *Cart) UpdateQuantity(id string, delta int) {
	for i := range c.Items {
		if c.Items[i].ID == id {
			q := c.Items[i].Quantity + delta
			if q < 1 {
				q = 1
			}
			c.Items[i].Quantity = q
			return
		}
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.Items = nil
}

// Total is the sum of price times quantity over all items. It is recomputed
// on every call, never cached.
func (c *Cart) Total() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// Count is the number of units across all items.
func (c *Cart) Count() int {
	var n int
	for _, item := range c.Items {
		n += item.Quantity
	}
	return n
}

// CloneItems returns a deep copy of the cart contents, suitable for freezing
// into an order.
func (c *Cart) CloneItems() []CartItem {
	items := make([]CartItem, len(c.Items))
	copy(items, c.Items)
	return items
}
