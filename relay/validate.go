package relay

import (
	"errors"
	"fmt"
)

// Validation bounds for the shared conveyor speed. Both ends are inclusive.
const (
	SpeedMin = 0.2
	SpeedMax = 1.0
)

// Hand sides accepted in hand_pickup_object frames.
const (
	HandLeft  = "left"
	HandRight = "right"
)

// Zones a pickup can be injected from via the outbound API.
var pickupZones = map[string]bool{
	"red":    true,
	"green":  true,
	"yellow": true,
}

var (
	errSpeedRequired     = errors.New("speed is required")
	errHandCountRequired = errors.New("handCount is required")
)

// validateSpeed checks a speed value against the closed interval
// [SpeedMin, SpeedMax].
func validateSpeed(v float64) error {
	if v < SpeedMin || v > SpeedMax {
		return fmt.Errorf("speed must be between %v and %v, got %v", SpeedMin, SpeedMax, v)
	}
	return nil
}

// validateSpeedUpdate rejects a speed_update whose field is missing or out of
// range.
func validateSpeedUpdate(p SpeedUpdate) error {
	if p.Speed == nil {
		return errSpeedRequired
	}
	return validateSpeed(*p.Speed)
}

// validateHandPickup rejects a hand_pickup_object whose hand side is not one
// of the two known values, or whose count is missing or negative.
func validateHandPickup(p HandPickupObject) error {
	if p.Hand != HandLeft && p.Hand != HandRight {
		return fmt.Errorf("hand must be %q or %q, got %q", HandLeft, HandRight, p.Hand)
	}
	if p.HandCount == nil {
		return errHandCountRequired
	}
	if *p.HandCount < 0 {
		return fmt.Errorf("handCount must be non-negative, got %v", *p.HandCount)
	}
	return nil
}

// validateErrorCount rejects a negative error count from the outbound API.
func validateErrorCount(count int) error {
	if count < 0 {
		return fmt.Errorf("error count must be non-negative, got %d", count)
	}
	return nil
}

// validatePickupZone rejects a zone the outbound API does not know about.
func validatePickupZone(zone string) error {
	if !pickupZones[zone] {
		return fmt.Errorf("unknown pickup zone %q", zone)
	}
	return nil
}
