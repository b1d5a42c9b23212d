package catalog

import (
	"slices"

	"github.com/niksmo/pharmacy/internal/core/domain"
	"github.com/niksmo/pharmacy/internal/core/port"
	"github.com/shopspring/decimal"
)

var _ port.Catalog = (*Static)(nil)

const productImage = "https://images.pexels.com/photos/3683074/pexels-photo-3683074.jpeg?auto=compress&cs=tinysrgb&w=400"

var categories = []string{
	domain.CategoryAll, "Pain Relief", "Vitamins", "Supplements", "Prescription",
}

var products = []domain.Product{
	{
		ID:          "1",
		Name:        "Ibuprofen 200mg",
		Price:       decimal.RequireFromString("12.99"),
		Image:       productImage,
		Description: "Pain relief and anti-inflammatory medication. 100 tablets.",
		Category:    "Pain Relief",
		InStock:     true,
	},
	{
		ID:          "2",
		Name:        "Vitamin D3 1000 IU",
		Price:       decimal.RequireFromString("18.50"),
		Image:       productImage,
		Description: "Essential vitamin for bone health and immune support. 120 capsules.",
		Category:    "Vitamins",
		InStock:     true,
	},
	{
		ID:           "3",
		Name:         "Lisinopril 10mg",
		Price:        decimal.RequireFromString("25.00"),
		Image:        productImage,
		Description:  "Blood pressure medication. Prescription required. 30 tablets.",
		Category:     "Prescription",
		InStock:      true,
		Prescription: true,
	},
	{
		ID:          "4",
		Name:        "Omega-3 Fish Oil",
		Price:       decimal.RequireFromString("22.99"),
		Image:       productImage,
		Description: "Heart and brain health supplement. 180 softgels.",
		Category:    "Supplements",
		InStock:     true,
	},
	{
		ID:          "5",
		Name:        "Acetaminophen 500mg",
		Price:       decimal.RequireFromString("9.99"),
		Image:       productImage,
		Description: "Extra strength pain reliever and fever reducer. 100 caplets.",
		Category:    "Pain Relief",
		InStock:     true,
	},
	{
		ID:          "6",
		Name:        "Multivitamin Complete",
		Price:       decimal.RequireFromString("16.75"),
		Image:       productImage,
		Description: "Daily multivitamin with essential nutrients. 90 tablets.",
		Category:    "Vitamins",
		InStock:     true,
	},
	{
		ID:           "7",
		Name:         "Metformin 500mg",
		Price:        decimal.RequireFromString("15.50"),
		Image:        productImage,
		Description:  "Diabetes medication. Prescription required. 60 tablets.",
		Category:     "Prescription",
		InStock:      false,
		Prescription: true,
	},
	{
		ID:          "8",
		Name:        "Probiotics 50 Billion CFU",
		Price:       decimal.RequireFromString("29.99"),
		Image:       productImage,
		Description: "Digestive health support with 10 probiotic strains. 60 capsules.",
		Category:    "Supplements",
		InStock:     true,
	},
}

// A Static serves the compiled-in product list.
type Static struct{}

func New() Static {
	return Static{}
}

func (Static) Products() []domain.Product {
	return slices.Clone(products)
}

func (Static) Product(id string) (domain.Product, bool) {
	i := slices.IndexFunc(products, func(p domain.Product) bool {
		return p.ID == id
	})
	if i < 0 {
		return domain.Product{}, false
	}
	return products[i], true
}

func (Static) Categories() []string {
	return slices.Clone(categories)
}
