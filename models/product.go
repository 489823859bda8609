package models

// Shop is a storefront in the catalog
type Shop struct {
	Slug        string    `json:"slug" yaml:"slug"`
	Name        string    `json:"name" yaml:"name"`
	Description string    `json:"description,omitempty" yaml:"description"`
	Img         string    `json:"img,omitempty" yaml:"img"`
	Popular     []string  `json:"popular,omitempty" yaml:"popular"`
	Products    []Product `json:"products,omitempty" yaml:"products"`
}

// Product represents product data in the catalog
type Product struct {
	ID    string  `json:"id" yaml:"id"`
	Name  string  `json:"name" yaml:"name"`
	Price float64 `json:"price" yaml:"price"`
	Stock int     `json:"stock" yaml:"stock"`
	Img   string  `json:"img" yaml:"img"`
	Shop  string  `json:"shop" yaml:"-"`
}

// CartProduct converts the catalog entry into the snapshot stored in a cart.
func (p Product) CartProduct() CartProduct {
	return CartProduct{ID: p.ID, Name: p.Name, Price: p.Price, Stock: p.Stock, Img: p.Img}
}
