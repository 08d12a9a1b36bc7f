package publishers

import (
	"time"

	"github.com/carangas-hq/carangas-catalog/internal/domain"
)

// EventVehicleObserved is emitted when a vehicle snapshot has not been announced before.
const EventVehicleObserved = "vehicle.observed"

// Event represents the payload published downstream.
type Event struct {
	Type        string         `json:"type"`
	Source      string         `json:"source"`
	Fingerprint string         `json:"fingerprint"`
	Vehicle     domain.Vehicle `json:"vehicle"`
	BrandKnown  *bool          `json:"brand_known,omitempty"`
	ObservedAt  time.Time      `json:"observed_at"`
}

// NewEvent constructs a vehicle.observed Event for a catalog snapshot.
func NewEvent(source, fingerprint string, vehicle domain.Vehicle) Event {
	return Event{
		Type:        EventVehicleObserved,
		Source:      source,
		Fingerprint: fingerprint,
		Vehicle:     vehicle,
		ObservedAt:  time.Now().UTC(),
	}
}

// WithBrandKnown annotates whether the vehicle brand matched the reference list.
func (e Event) WithBrandKnown(known bool) Event {
	e.BrandKnown = &known
	return e
}

// attributes returns the string attributes attached to queue/topic messages.
// Empty values are skipped because SQS and SNS reject them.
func (e Event) attributes() map[string]string {
	attrs := map[string]string{"event_type": e.Type}
	if e.Vehicle.ID != "" {
		attrs["vehicle_id"] = e.Vehicle.ID
	}
	if e.Vehicle.Brand != "" {
		attrs["brand"] = e.Vehicle.Brand
	}
	return attrs
}
