package models

// Instrument describes one tradable stock. The set of instruments is fixed
// for the lifetime of the event.
type Instrument struct {
	Symbol      string `json:"symbol"`
	DisplayName string `json:"display_name"`
	Category    string `json:"category"`
}

// ListedInstruments returns the instruments tradable during the event, in
// display order.
func ListedInstruments() []Instrument {
	return []Instrument{
		{Symbol: "MSFT", DisplayName: "Microsoft", Category: "Technology"},
		{Symbol: "AAPL", DisplayName: "Apple", Category: "Technology"},
		{Symbol: "AMZN", DisplayName: "Amazon", Category: "E-commerce"},
		{Symbol: "NVDA", DisplayName: "NVIDIA", Category: "Semiconductors"},
		{Symbol: "TSLA", DisplayName: "Tesla", Category: "Automobile"},
		{Symbol: "GOOGL", DisplayName: "Google", Category: "Technology"},
		{Symbol: "META", DisplayName: "Meta", Category: "Social Media"},
		{Symbol: "WMT", DisplayName: "Walmart", Category: "Retail"},
		{Symbol: "JPM", DisplayName: "JP Morgan", Category: "Finance"},
		{Symbol: "V", DisplayName: "Visa", Category: "Finance"},
		{Symbol: "MA", DisplayName: "MasterCard", Category: "Finance"},
		{Symbol: "NFLX", DisplayName: "Netflix", Category: "Entertainment"},
		{Symbol: "ORCL", DisplayName: "Oracle Corporation", Category: "Technology"},
		{Symbol: "CRM", DisplayName: "Salesforce", Category: "Technology"},
		{Symbol: "CSCO", DisplayName: "Cisco", Category: "Technology"},
		{Symbol: "MCD", DisplayName: "McDonald's", Category: "Food and Beverage"},
		{Symbol: "ACN", DisplayName: "Accenture", Category: "Consulting"},
		{Symbol: "GS", DisplayName: "Goldman Sachs", Category: "Finance"},
		{Symbol: "QCOM", DisplayName: "Qualcomm", Category: "Semiconductors"},
		{Symbol: "CAT", DisplayName: "Caterpillar", Category: "Heavy Machinery"},
		{Symbol: "UBER", DisplayName: "Uber", Category: "Ride-hailing"},
		{Symbol: "C", DisplayName: "Citigroup", Category: "Finance"},
		{Symbol: "SHOP", DisplayName: "Shopify", Category: "E-commerce"},
		{Symbol: "SBUX", DisplayName: "Starbucks Corporation", Category: "Food and Beverage"},
		{Symbol: "SPOT", DisplayName: "Spotify", Category: "Entertainment"},
	}
}

// FindInstrument returns the listed instrument for a symbol, or nil when the
// symbol is not part of the event.
func FindInstrument(symbol string) *Instrument {
	for _, in := range ListedInstruments() {
		if in.Symbol == symbol {
			return &in
		}
	}
	return nil
}
