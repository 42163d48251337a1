package feed

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/OtaviOuu/shopee-monitor/internal/capture"
	"github.com/OtaviOuu/shopee-monitor/internal/models"
	"github.com/OtaviOuu/shopee-monitor/internal/validate"
)

const (
	// SearchEndpoint identifies the catalog XHR the search page issues.
	SearchEndpoint = "api/v4/search/search_items"

	linkTemplate  = "https://shopee.com.br/%s-i.%d.%d"
	imageTemplate = "https://down-br.img.susercontent.com/file/%s_tn.webp"

	// The feed encodes prices as integers scaled by this factor.
	priceScale = 100000
)

type payload struct {
	Items []struct {
		ItemBasic itemBasic `json:"item_basic"`
	} `json:"items"`
}

type itemBasic struct {
	Name   string   `json:"name"`
	Price  int64    `json:"price"`
	Image  string   `json:"image"`
	Images []string `json:"images"`
	ItemID int64    `json:"itemid"`
	ShopID int64    `json:"shopid"`
}

// Extract maps a captured search_items body to normalized item records,
// in feed order. Missing optional fields (image, images, ids) are kept
// empty rather than failing the pass; entries that do not validate are
// dropped. A body that is not valid JSON yields capture.ErrDecode.
func Extract(body []byte) ([]models.Item, error) {
	var p payload
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, fmt.Errorf("%w: %v", capture.ErrDecode, err)
	}

	items := make([]models.Item, 0, len(p.Items))
	for _, entry := range p.Items {
		b := entry.ItemBasic

		item := models.Item{
			Name:   b.Name,
			Price:  float64(b.Price) / priceScale,
			Link:   fmt.Sprintf(linkTemplate, b.Name, b.ShopID, b.ItemID),
			Images: b.Images,
			ItemID: b.ItemID,
			ShopID: b.ShopID,
		}
		if b.Image != "" {
			item.Image = fmt.Sprintf(imageTemplate, b.Image)
		}
		if item.Images == nil {
			item.Images = []string{}
		}

		if err := validate.Struct(item); err != nil {
			slog.Warn("Dropping malformed feed entry", "name", b.Name, "error", err)
			continue
		}
		items = append(items, item)
	}
	return items, nil
}
