package booking

import "github.com/klinikdev/klinik-api/internal/model"

// Fixed service catalog, integer rupiah.
const (
	ConsultationFee int64 = 150000
	AdminFee        int64 = 10000
)

// DefaultItems is the catalog charged on every confirmed booking.
func DefaultItems() []model.ServiceItem {
	return []model.ServiceItem{
		{Name: "Consultation Fee", Price: ConsultationFee, Quantity: 1},
		{Name: "Admin Fee", Price: AdminFee, Quantity: 1},
	}
}

// CalculateFee maps service items and the insurance selection to the
// amounts owed. Without insurance the patient pays subtotal plus 10% tax.
// With insurance the carrier covers 70% of the subtotal and tax is waived,
// so the patient pays exactly 30% of the subtotal; the formula is kept
// as-is rather than normalized into a discount on a tax-inclusive total.
func CalculateFee(items []model.ServiceItem, insurance model.Insurance) model.FeeBreakdown {
	var subtotal int64
	for _, item := range items {
		subtotal += item.Price * int64(item.Quantity)
	}

	if insurance != model.InsuranceNone {
		return model.FeeBreakdown{
			Subtotal: subtotal,
			Tax:      0,
			Total:    subtotal * 30 / 100,
		}
	}

	tax := subtotal * 10 / 100
	return model.FeeBreakdown{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal + tax,
	}
}
