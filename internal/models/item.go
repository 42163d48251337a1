package models

import "fmt"

// Item is one normalized listing from the search feed.
type Item struct {
	Name   string   `json:"name" validate:"required"`
	Price  float64  `json:"price" validate:"gte=0"`
	Link   string   `json:"link" validate:"required,url"`
	Image  string   `json:"image,omitempty" validate:"omitempty,url"`
	Images []string `json:"images"`

	ItemID int64 `json:"itemid,omitempty"`
	ShopID int64 `json:"shopid,omitempty"`
}

// Key is the deduplication identity for the listing. The feed carries a
// numeric shop/item id pair; titles are not guaranteed unique, so the ids
// win whenever both are present.
func (i Item) Key() string {
	if i.ShopID != 0 && i.ItemID != 0 {
		return fmt.Sprintf("%d.%d", i.ShopID, i.ItemID)
	}
	return i.Name
}
