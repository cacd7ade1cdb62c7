package relay

import "testing"

func TestValidateSpeedBoundsAreInclusive(t *testing.T) {
	if err := validateSpeed(0.2); err != nil {
		t.Errorf("speed 0.2 rejected: %v", err)
	}
	if err := validateSpeed(1.0); err != nil {
		t.Errorf("speed 1.0 rejected: %v", err)
	}
	if err := validateSpeed(0.19); err == nil {
		t.Error("speed 0.19 accepted")
	}
	if err := validateSpeed(1.01); err == nil {
		t.Error("speed 1.01 accepted")
	}
}

func TestValidateSpeedUpdateRequiresField(t *testing.T) {
	if err := validateSpeedUpdate(SpeedUpdate{}); err == nil {
		t.Error("missing speed accepted")
	}

	v := 0.5
	if err := validateSpeedUpdate(SpeedUpdate{Speed: &v}); err != nil {
		t.Errorf("speed 0.5 rejected: %v", err)
	}
}

func TestValidateHandPickup(t *testing.T) {
	count := func(v float64) *float64 { return &v }

	cases := []struct {
		name  string
		p     HandPickupObject
		valid bool
	}{
		{"left zero", HandPickupObject{Hand: HandLeft, HandCount: count(0)}, true},
		{"right positive", HandPickupObject{Hand: HandRight, HandCount: count(5)}, true},
		{"unknown side", HandPickupObject{Hand: "up", HandCount: count(1)}, false},
		{"negative count", HandPickupObject{Hand: HandLeft, HandCount: count(-1)}, false},
		{"missing count", HandPickupObject{Hand: HandRight}, false},
		{"empty hand", HandPickupObject{HandCount: count(1)}, false},
	}

	for _, tc := range cases {
		err := validateHandPickup(tc.p)
		if tc.valid && err != nil {
			t.Errorf("%s: rejected: %v", tc.name, err)
		}
		if !tc.valid && err == nil {
			t.Errorf("%s: accepted", tc.name)
		}
	}
}

func TestValidateErrorCount(t *testing.T) {
	if err := validateErrorCount(0); err != nil {
		t.Errorf("count 0 rejected: %v", err)
	}
	if err := validateErrorCount(12); err != nil {
		t.Errorf("count 12 rejected: %v", err)
	}
	if err := validateErrorCount(-1); err == nil {
		t.Error("count -1 accepted")
	}
}

func TestValidatePickupZone(t *testing.T) {
	for _, zone := range []string{"red", "green", "yellow"} {
		if err := validatePickupZone(zone); err != nil {
			t.Errorf("zone %q rejected: %v", zone, err)
		}
	}
	for _, zone := range []string{"blue", "", "RED"} {
		if err := validatePickupZone(zone); err == nil {
			t.Errorf("zone %q accepted", zone)
		}
	}
}
