package domain

import "strings"

// Item is a scraped marketplace listing. Items are written in bulk by the
// ingestion job and never mutated in place; Price and EbayPrice are pointers
// because "absent" and "zero" are different states the UI must not conflate.
type Item struct {
	ID             string   `json:"id"`
	ProductName    string   `json:"product_name"`
	SearchTerm     string   `json:"search_term"`
	CategoryName   string   `json:"category_name,omitempty"`
	SellerName     string   `json:"seller_name"`
	SellerID       string   `json:"seller_id,omitempty"`
	Price          *float64 `json:"price,omitempty"`
	EbayPrice      *float64 `json:"ebay_price,omitempty"`
	AuctionEndTime string   `json:"auction_end_time,omitempty"`
	Bids           *int     `json:"bids,omitempty"`
	ImageURL       string   `json:"image_url,omitempty"`
}

// PriceValue returns the listing price with absence collapsed to 0 for
// comparison and sorting math only.
func (i Item) PriceValue() float64 {
	if i.Price == nil {
		return 0
	}
	return *i.Price
}

// EbayPriceValue returns the estimated resale price, 0 when absent.
func (i Item) EbayPriceValue() float64 {
	if i.EbayPrice == nil {
		return 0
	}
	return *i.EbayPrice
}

// MarginPercentage is profit as a fraction of resale price, 0-100.
// Zero or absent resale price yields 0, never a division by zero.
func (i Item) MarginPercentage() float64 {
	resale := i.EbayPriceValue()
	if resale <= 0 {
		return 0
	}
	return (resale - i.PriceValue()) / resale * 100
}

// PriceDifference is absolute profit, resale minus current price.
func (i Item) PriceDifference() float64 {
	return i.EbayPriceValue() - i.PriceValue()
}

// IsBuyItNow reports whether the listing has no competitive bidding.
func (i Item) IsBuyItNow() bool {
	return i.Bids == nil || *i.Bids == 0
}

// RemoteImage reports whether ImageURL is an absolute URL rather than a
// base64 payload. The two encodings look identical from the string alone,
// so the prefix is the only discriminator.
func (i Item) RemoteImage() bool {
	return strings.HasPrefix(i.ImageURL, "http")
}

// Settings is the singleton user configuration persisted under the
// "settings" key.
type Settings struct {
	Location          string   `json:"location"`
	MarginThreshold   float64  `json:"margin_threshold"`
	NotificationEmail string   `json:"notification_email"`
	NotificationPhone string   `json:"notification_phone"`
	NotificationType  string   `json:"notification_type"` // email | sms | both
	UpdateFrequency   string   `json:"update_frequency"`  // hourly | twice_daily | daily | weekly
	SearchTerms       []string `json:"search_terms"`
	SellerIDs         []string `json:"seller_ids"`
}

// DefaultSettings mirrors the seed values the app ships with.
func DefaultSettings() Settings {
	return Settings{
		Location:         "198",
		MarginThreshold:  50,
		NotificationType: "email",
		UpdateFrequency:  "daily",
		SearchTerms:      []string{"vintage camera"},
		SellerIDs:        []string{"19", "198"},
	}
}
