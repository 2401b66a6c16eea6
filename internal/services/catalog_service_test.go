package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTelLink_StripsSpaces(t *testing.T) {
	assert.Equal(t, "tel:+912244558800", telLink("+91 22 4455 8800"))
	assert.Equal(t, "tel:1800-102-4477", telLink("1800-102-4477"))
}

func TestHaversineKm_KnownDistances(t *testing.T) {
	// Mumbai to Delhi is roughly 1150 km great-circle
	distance := haversineKm(19.0760, 72.8777, 28.6139, 77.2090)
	assert.InDelta(t, 1150, distance, 20)

	// identical points
	assert.InDelta(t, 0, haversineKm(19.0760, 72.8777, 19.0760, 72.8777), 0.001)
}

func TestHaversineKm_Symmetric(t *testing.T) {
	forward := haversineKm(12.9352, 77.6245, 28.6315, 77.2167)
	backward := haversineKm(28.6315, 77.2167, 12.9352, 77.6245)

	assert.InDelta(t, forward, backward, 0.0001)
}
