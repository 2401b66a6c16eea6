package wizard

import "marketplace-service/internal/models"

// Pricing constants for the flagship plan. Base premium is policy dependent;
// add-ons and riders are flat-priced units marketplace-wide.
const (
	DefaultBasePremium = 18500.0
	AddOnUnitPrice     = 2500.0
	RiderUnitPrice     = 800.0
	GSTRate            = 0.18
)

// ComputePremium derives the full premium breakdown from the base premium
// and the selected add-on/rider counts. Pure function, recomputed on demand.
func ComputePremium(basePremium float64, addOnCount, riderCount int) models.PremiumBreakdown {
	addOns := float64(addOnCount) * AddOnUnitPrice
	riders := float64(riderCount) * RiderUnitPrice
	gst := GSTRate * (basePremium + addOns + riders)
	total := basePremium + addOns + riders + gst

	return models.PremiumBreakdown{
		Base:   models.Rupees(basePremium),
		AddOns: models.Rupees(addOns),
		Riders: models.Rupees(riders),
		GST:    models.Rupees(gst),
		Total:  models.Rupees(total),
	}
}

// FormPremium computes the breakdown for a wizard session's selections.
func FormPremium(form *models.PurchaseForm, basePremium float64) models.PremiumBreakdown {
	if basePremium <= 0 {
		basePremium = DefaultBasePremium
	}
	return ComputePremium(basePremium, len(form.SelectedAddOns), len(form.SelectedRiders))
}
