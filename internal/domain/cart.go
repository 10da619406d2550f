package domain

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartLine is a product snapshot taken when the product was added to the cart.
type CartLine struct {
	ID        string          `json:"id"`
	ProductID string          `json:"productId"`
	Title     string          `json:"title"`
	Price     decimal.Decimal `json:"price"`
	Discount  decimal.Decimal `json:"discount"`
	Image     string          `json:"image,omitempty"`
	Quantity  int             `json:"quantity"`
}

func (l CartLine) UnitPrice() decimal.Decimal {
	return EffectivePrice(l.Price, l.Discount)
}

func (l CartLine) Total() decimal.Decimal {
	return LineTotal(l.Price, l.Discount, l.Quantity)
}

// Cart holds at most one line per product id. Lines keep insertion order.
// A Cart belongs to a single session and is not safe for concurrent use.
type Cart struct {
	lines map[string]*CartLine
	order []string
}

func NewCart(lines ...CartLine) *Cart {
	c := &Cart{lines: make(map[string]*CartLine)}
	for _, l := range lines {
		c.AddItem(l)
	}
	return c
}

// AddItem merges quantities when the product is already in the cart and
// inserts a new line otherwise. Lines with a non-positive quantity are ignored.
func (c *Cart) AddItem(line CartLine) {
	c.init()
	if existing, ok := c.lines[line.ProductID]; ok {
		c.SetQuantity(line.ProductID, existing.Quantity+line.Quantity)
		return
	}
	if line.Quantity <= 0 {
		return
	}
	if line.ID == "" {
		line.ID = uuid.NewString()
	}
	c.lines[line.ProductID] = &line
	c.order = append(c.order, line.ProductID)
}

// SetQuantity replaces the quantity of a line; zero or below removes it.
func (c *Cart) SetQuantity(productID string, quantity int) {
	c.init()
	line, ok := c.lines[productID]
	if !ok {
		return
	}
	if quantity <= 0 {
		c.RemoveItem(productID)
		return
	}
	line.Quantity = quantity
}

func (c *Cart) RemoveItem(productID string) {
	c.init()
	if _, ok := c.lines[productID]; !ok {
		return
	}
	delete(c.lines, productID)
	for i, id := range c.order {
		if id == productID {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

func (c *Cart) Clear() {
	c.lines = make(map[string]*CartLine)
	c.order = nil
}

func (c *Cart) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(l.Total())
	}
	return total
}

func (c *Cart) Line(productID string) (CartLine, bool) {
	l, ok := c.lines[productID]
	if !ok {
		return CartLine{}, false
	}
	return *l, true
}

// Lines returns a copy of the lines in insertion order.
func (c *Cart) Lines() []CartLine {
	out := make([]CartLine, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, *c.lines[id])
	}
	return out
}

func (c *Cart) Len() int {
	return len(c.lines)
}

func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

func (c *Cart) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Lines())
}

func (c *Cart) UnmarshalJSON(data []byte) error {
	var lines []CartLine
	if err := json.Unmarshal(data, &lines); err != nil {
		return err
	}
	c.Clear()
	for _, l := range lines {
		c.AddItem(l)
	}
	return nil
}

func (c *Cart) init() {
	if c.lines == nil {
		c.lines = make(map[string]*CartLine)
	}
}
