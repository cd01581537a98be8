package models

// StockItem represents a consumable or spare part in stock
type StockItem struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Quantity    int    `json:"quantity"`
	MinQuantity int    `json:"minQuantity"`
	Unit        string `json:"unit"`
	LastRestock string `json:"lastRestock"` // YYYY-MM-DD
	Location    string `json:"location"`
}

// IsBelowMinimum reports whether the item is at or under its reorder threshold
func (s StockItem) IsBelowMinimum() bool {
	return s.Quantity <= s.MinQuantity
}
