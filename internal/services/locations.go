package services

// sellerMap maps marketplace seller ids to display names. Static reference
// data shipped with the app; the ingestion job is the source of truth for
// which sellers actually have listings.
var sellerMap = map[string]string{
	"10":  "CA, Sacramento",
	"19":  "WA, Tacoma",
	"25":  "OR, Portland",
	"81":  "CA, San Francisco",
	"108": "ID, Boise",
	"145": "CA, San Diego",
	"177": "OR, Salem",
	"198": "WA, Spokane",
	"203": "WA, Seattle",
	"226": "NV, Reno",
}
