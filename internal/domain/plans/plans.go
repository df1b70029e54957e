package plans

// Plan is a purchasable credit pack. The catalog is static: packs change
// with releases, not at runtime, and checkout allow-lists against it.
type Plan struct {
	ID            int     `json:"id"`
	Name          string  `json:"name"`
	PriceUSD      float64 `json:"price"`
	Credits       int     `json:"credits"`
	StripePriceID string  `json:"-"`
}

const FreePlanID = 1

var catalog = []Plan{
	{ID: FreePlanID, Name: "Free", PriceUSD: 0, Credits: 10},
	{ID: 2, Name: "Pro Package", PriceUSD: 40, Credits: 120, StripePriceID: "price_pro_package"},
	{ID: 3, Name: "Premium Package", PriceUSD: 199, Credits: 2000, StripePriceID: "price_premium_package"},
}

// All returns the catalog in display order.
func All() []Plan {
	out := make([]Plan, len(catalog))
	copy(out, catalog)
	return out
}

// ByID looks a plan up by its numeric id.
func ByID(id int) (Plan, bool) {
	for _, p := range catalog {
		if p.ID == id {
			return p, true
		}
	}
	return Plan{}, false
}

// ByName looks a plan up by its display name (the label stored on
// transactions and in checkout metadata).
func ByName(name string) (Plan, bool) {
	for _, p := range catalog {
		if p.Name == name {
			return p, true
		}
	}
	return Plan{}, false
}
