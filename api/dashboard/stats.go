package dashboard

import "slices"

// TileKind is how a stat is drawn
type TileKind string

const (
	TileNumber TileKind = "number"
	TileLine   TileKind = "line"
	TileDonut  TileKind = "donut"
)

// Stat describes a dashboard tile and the stats resource behind it
type Stat struct {
	Key      string
	Title    string
	Resource string
	Pre      string
	After    string
	Kind     TileKind
}

// Stats is the tile catalog of the JFM report
var Stats = []Stat{
	{Key: "expenses", Title: "Total expenses", Resource: "Expenses", Pre: "$", Kind: TileNumber},
	{Key: "sales", Title: "Total sales", Resource: "Sales", Pre: "$", Kind: TileNumber},
	{Key: "salesNo", Title: "Number of clients sold", Resource: "SalesNo", Kind: TileNumber},
	{Key: "roi", Title: "Return on investment", Resource: "ROI", Pre: "$", Kind: TileNumber},
	{Key: "newLeads", Title: "New leads", Resource: "NewLeads", Kind: TileNumber},
	{Key: "bookings", Title: "Bookings", Resource: "Bookings", Kind: TileNumber},
	{Key: "noShows", Title: "No Shows", Resource: "NoShows", Kind: TileNumber},
	{Key: "showNoSale", Title: "Showed but didn't purchase", Resource: "ShowNoSale", Kind: TileNumber},
	{Key: "leadsConv", Title: "Lead to booking conversion rate", Resource: "LeadsConv", After: "%", Kind: TileNumber},
	{Key: "bookingsConv", Title: "Booking to sales conversion rate", Resource: "BookingsConv", After: "%", Kind: TileNumber},
	{Key: "showRate", Title: "Show Up Rate", Resource: "ShowRate", After: "%", Kind: TileNumber},
	{Key: "membershipConv", Title: "Membership conversion rate", Resource: "MembershipConv", After: "%", Kind: TileNumber},
	{Key: "rank", Title: "Rank", Resource: "Rank", Pre: "#", Kind: TileNumber},
	{Key: "zenotiMembersNo", Title: "Active members", Resource: "ZenotiMembersNo", Kind: TileNumber},
}

// Resources returns the distinct resources of stats in catalog order
func Resources(stats []Stat) []string {
	out := make([]string, 0, len(stats))
	for _, s := range stats {
		if !slices.Contains(out, s.Resource) {
			out = append(out, s.Resource)
		}
	}
	return out
}

// Format renders a number tile value with its prefix and suffix
func (s Stat) Format(value string) string {
	return s.Pre + value + s.After
}
