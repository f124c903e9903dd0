package stock

// Status classifies a quantity for display and for cart quantity rules.
type Status string

const (
	InStock    Status = "IN_STOCK"
	LowStock   Status = "LOW_STOCK"
	OutOfStock Status = "OUT_OF_STOCK"
)

// DefaultLowStockThreshold is the fixed cutoff below which (inclusive)
// a non-zero quantity shows as LOW_STOCK.
const DefaultLowStockThreshold = 5

// Display carries the label and icon a rendering layer shows per status.
type Display struct {
	Label string `json:"label"`
	Icon  string `json:"icon"`
}

var Displays = map[Status]Display{
	InStock:    {Label: "In stock", Icon: "check_circle"},
	LowStock:   {Label: "Low stock", Icon: "warning"},
	OutOfStock: {Label: "Out of stock", Icon: "cancel"},
}

func Classify(qty int) Status {
	return ClassifyWithThreshold(qty, DefaultLowStockThreshold)
}

func ClassifyWithThreshold(qty, threshold int) Status {
	switch {
	case qty <= 0:
		return OutOfStock
	case qty <= threshold:
		return LowStock
	default:
		return InStock
	}
}
