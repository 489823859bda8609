package models

// PlaceholderImage is stored for cart lines added without an image.
const PlaceholderImage = "/placeholder.jpg"

// Cart represents the shopping cart held in the visitor's session
type Cart struct {
	Items []CartItem `json:"items"`
}

// CartItem represents one line of the shopping cart
type CartItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Stock    int     `json:"stock"`
	Quantity int     `json:"quantity"`
	Img      string  `json:"img"`
}

// Key returns the identity of the line: its id, or its name when no id is set.
func (i CartItem) Key() string {
	if i.ID != "" {
		return i.ID
	}
	return i.Name
}

// Matches reports whether the line is the one addressed by key.
func (i CartItem) Matches(key string) bool {
	return key != "" && i.Key() == key
}

// CartProduct is the product snapshot a client sends when adding to the cart
type CartProduct struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Stock int     `json:"stock"`
	Img   string  `json:"img"`
}

// Key returns the product id, or its name when no id is set.
func (p CartProduct) Key() string {
	if p.ID != "" {
		return p.ID
	}
	return p.Name
}

// CartAddInput holds data for adding a product to the cart
type CartAddInput struct {
	Product  *CartProduct `json:"product"`
	Quantity int          `json:"quantity"`
}

// CartUpdateInput holds data for changing the quantity of a cart line
type CartUpdateInput struct {
	ItemID   string `json:"itemId"`
	Quantity int    `json:"quantity"`
}

// CartRemoveInput holds data for removing a cart line
type CartRemoveInput struct {
	ItemID string `json:"itemId"`
}

// CartResponse is returned by every cart mutation
type CartResponse struct {
	Success bool  `json:"success"`
	Cart    *Cart `json:"cart"`
}
