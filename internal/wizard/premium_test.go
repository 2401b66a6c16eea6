package wizard

import (
	"testing"

	"marketplace-service/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestComputePremium_FlagshipExample(t *testing.T) {
	// 18500 + 2*2500 + 1*800 = 24300; GST at 18% is 4374
	breakdown := ComputePremium(DefaultBasePremium, 2, 1)

	assert.Equal(t, 18500.0, breakdown.Base.Amount)
	assert.Equal(t, 5000.0, breakdown.AddOns.Amount)
	assert.Equal(t, 800.0, breakdown.Riders.Amount)
	assert.InDelta(t, 4374.0, breakdown.GST.Amount, 0.001)
	assert.InDelta(t, 28674.0, breakdown.Total.Amount, 0.001)
	assert.Equal(t, "INR", breakdown.Total.Currency)
}

func TestComputePremium_NoSelections(t *testing.T) {
	breakdown := ComputePremium(DefaultBasePremium, 0, 0)

	assert.Equal(t, 0.0, breakdown.AddOns.Amount)
	assert.Equal(t, 0.0, breakdown.Riders.Amount)
	assert.InDelta(t, 18500.0*1.18, breakdown.Total.Amount, 0.001)
}

func TestComputePremium_GSTAppliesToWholeSubtotal(t *testing.T) {
	breakdown := ComputePremium(10000, 1, 1)

	subtotal := 10000.0 + AddOnUnitPrice + RiderUnitPrice
	assert.InDelta(t, subtotal*GSTRate, breakdown.GST.Amount, 0.001)
	assert.InDelta(t, subtotal*1.18, breakdown.Total.Amount, 0.001)
}

func TestFormPremium_UsesSelectionCounts(t *testing.T) {
	form := models.NewPurchaseForm("user-1", uuid.New())
	form.SelectedAddOns = []uuid.UUID{uuid.New(), uuid.New()}
	form.SelectedRiders = []uuid.UUID{uuid.New()}

	breakdown := FormPremium(form, 18500)

	assert.Equal(t, 5000.0, breakdown.AddOns.Amount)
	assert.Equal(t, 800.0, breakdown.Riders.Amount)
}

func TestFormPremium_FallsBackToDefaultBase(t *testing.T) {
	form := models.NewPurchaseForm("user-1", uuid.New())

	breakdown := FormPremium(form, 0)

	assert.Equal(t, DefaultBasePremium, breakdown.Base.Amount)
}
