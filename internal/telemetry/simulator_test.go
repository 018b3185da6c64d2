package telemetry

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"zoumai/internal/models"
)

func TestFuelAlert(t *testing.T) {
	tests := []struct {
		name     string
		fuel     float64
		severity string
		raised   bool
	}{
		{"critical", 9.9, models.SeverityHigh, true},
		{"low", 15.0, models.SeverityMedium, true},
		{"boundary at threshold", 20.0, "", false},
		{"full", 87.5, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			severity, raised := FuelAlert(tt.fuel)
			assert.Equal(t, tt.raised, raised)
			assert.Equal(t, tt.severity, severity)
		})
	}
}

func TestSpeedAlert(t *testing.T) {
	tests := []struct {
		name     string
		speed    float64
		severity string
		raised   bool
	}{
		{"reckless", 95.0, models.SeverityHigh, true},
		{"over limit", 85.0, models.SeverityMedium, true},
		{"boundary at limit", 80.0, "", false},
		{"cruising", 50.0, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			severity, raised := SpeedAlert(tt.speed)
			assert.Equal(t, tt.raised, raised)
			assert.Equal(t, tt.severity, severity)
		})
	}
}

func TestPerturbStaysWithinJitterBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		lat, lng := Perturb(rng, defaultLat, defaultLng)
		assert.LessOrEqual(t, math.Abs(lat-defaultLat), maxJitterDeg)
		assert.LessOrEqual(t, math.Abs(lng-defaultLng), maxJitterDeg)
	}
}

func TestDistanceMeters(t *testing.T) {
	// 0.001° of latitude is roughly 111 m anywhere on the globe.
	d := DistanceMeters(48.8566, 2.3522, 48.8576, 2.3522)
	assert.InDelta(t, 111.2, d, 1.0)

	// Longitude shrinks with latitude; at ~49°N a degree is ~73 km.
	d = DistanceMeters(48.8566, 2.3522, 48.8566, 2.3532)
	assert.InDelta(t, 73.2, d, 1.5)

	assert.Zero(t, DistanceMeters(48.8566, 2.3522, 48.8566, 2.3522))
}
