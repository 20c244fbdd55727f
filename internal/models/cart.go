package models

// CartLine is one candidate purchase line. Unit price and name are copied
// from the catalog at add time, so a later price change never affects an
// in-flight order.
type CartLine struct {
	ItemID    int64   `json:"item_id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
	LineTotal float64 `json:"line_total"`
}

// Cart accumulates lines for the order currently being built. It is owned by
// one session and is never persisted; only a successful submission turns it
// into order rows.
type Cart struct {
	Lines []CartLine `json:"lines"`
}

// Add appends a new line. Repeated adds of the same item are kept as
// separate lines, matching the checkout flow on the floor.
func (c *Cart) Add(itemID int64, name string, unitPrice float64, quantity int) {
	c.Lines = append(c.Lines, CartLine{
		ItemID:    itemID,
		Name:      name,
		UnitPrice: unitPrice,
		Quantity:  quantity,
		LineTotal: unitPrice * float64(quantity),
	})
}

// Clear empties the cart. Called on explicit clear, on logout and after a
// successful submission.
func (c *Cart) Clear() {
	c.Lines = nil
}

// Total returns the sum of all line totals, 0 for an empty cart.
func (c *Cart) Total() float64 {
	var total float64
	for _, line := range c.Lines {
		total += line.LineTotal
	}
	return total
}
