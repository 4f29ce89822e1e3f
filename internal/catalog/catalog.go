// Package catalog holds the studio's immutable service and add-on catalog.
// Prices are tabulated per region in whole currency units and never derived
// from multipliers at runtime.
package catalog

// Region selects the currency and price column used for display.
type Region string

const (
	RegionMY  Region = "MY"
	RegionSG  Region = "SG"
	RegionINT Region = "INT"
)

// Valid reports whether r is a known region code.
func (r Region) Valid() bool {
	switch r {
	case RegionMY, RegionSG, RegionINT:
		return true
	}
	return false
}

// CurrencyPrefix returns the display prefix for amounts in this region.
func (r Region) CurrencyPrefix() string {
	switch r {
	case RegionMY:
		return "RM"
	case RegionSG:
		return "S$"
	default:
		return "$"
	}
}

// PriceTable maps a region to a whole-unit amount. Every entry in the
// catalog carries all three regions.
type PriceTable map[Region]int64

// ServiceOption is a top-level purchasable package.
type ServiceOption struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Prices      PriceTable `json:"prices"`
	Features    []string   `json:"features"`
	Popular     bool       `json:"popular"`
	Advanced    bool       `json:"advanced"`
}

// AddOn is an optional supplementary feature purchasable alongside a package.
type AddOn struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Prices      PriceTable `json:"prices"`
}

// DomainAddOnID is the add-on kept in sync with the "new domain" choice.
const DomainAddOnID = "domain"

// Services is the canonical package catalog, in display order.
var Services = []ServiceOption{
	{
		ID:          "landing",
		Name:        "Landing Page",
		Description: "A focused one-page site to launch a product or campaign.",
		Prices:      PriceTable{RegionMY: 1500, RegionSG: 1200, RegionINT: 800},
		Features: []string{
			"Single conversion-focused page",
			"Copy and layout polish",
			"Mobile-first build",
			"Basic analytics hookup",
		},
	},
	{
		ID:          "business",
		Name:        "Business Website",
		Description: "A multi-page site for an established business.",
		Prices:      PriceTable{RegionMY: 4500, RegionSG: 3800, RegionINT: 2500},
		Features: []string{
			"Up to 6 pages",
			"CMS-managed content",
			"Contact and enquiry forms",
			"On-page SEO foundations",
			"Launch support",
		},
		Popular: true,
	},
	{
		ID:          "custom",
		Name:        "Custom Web System",
		Description: "Bespoke builds, integrations, and anything beyond a brochure site.",
		Prices:      PriceTable{RegionMY: 0, RegionSG: 0, RegionINT: 0},
		Features: []string{
			"Scoped through a discovery call",
			"Custom integrations",
			"Tailored proposal and timeline",
		},
		Advanced: true,
	},
}

// AddOns is the canonical add-on catalog, in display order.
var AddOns = []AddOn{
	{
		ID:          DomainAddOnID,
		Name:        "Domain Registration",
		Description: "First-year registration of a new domain name.",
		Category:    "Essentials",
		Prices:      PriceTable{RegionMY: 80, RegionSG: 50, RegionINT: 20},
	},
	{
		ID:          "seo",
		Name:        "SEO Starter",
		Description: "Keyword research and on-page optimisation for launch.",
		Category:    "Growth",
		Prices:      PriceTable{RegionMY: 900, RegionSG: 700, RegionINT: 450},
	},
	{
		ID:          "copywriting",
		Name:        "Content Copywriting",
		Description: "Professionally written copy for every page.",
		Category:    "Content",
		Prices:      PriceTable{RegionMY: 600, RegionSG: 500, RegionINT: 300},
	},
	{
		ID:          "logo",
		Name:        "Logo Refresh",
		Description: "A refreshed logo and mini brand sheet.",
		Category:    "Brand",
		Prices:      PriceTable{RegionMY: 800, RegionSG: 650, RegionINT: 400},
	},
	{
		ID:          "care",
		Name:        "Care Plan",
		Description: "Twelve months of updates, backups, and small changes.",
		Category:    "Support",
		Prices:      PriceTable{RegionMY: 1200, RegionSG: 1000, RegionINT: 650},
	},
}

// MainGoals is the fixed option list for the project brief's primary goal.
var MainGoals = []string{
	"generate-leads",
	"sell-online",
	"showcase-portfolio",
	"build-credibility",
	"launch-product",
}

// ServiceByID returns the service with the given id, or nil.
func ServiceByID(id string) *ServiceOption {
	for i := range Services {
		if Services[i].ID == id {
			return &Services[i]
		}
	}
	return nil
}

// AddOnByID returns the add-on with the given id, or nil.
func AddOnByID(id string) *AddOn {
	for i := range AddOns {
		if AddOns[i].ID == id {
			return &AddOns[i]
		}
	}
	return nil
}

// ValidMainGoal reports whether goal is one of the fixed brief options.
func ValidMainGoal(goal string) bool {
	for _, g := range MainGoals {
		if g == goal {
			return true
		}
	}
	return false
}
