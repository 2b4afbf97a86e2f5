package models

import "testing"

func TestParseRiderStatus(t *testing.T) {
	for _, valid := range []string{"pending", "active", "rejected", "deactivated", "in_delivery"} {
		if _, ok := ParseRiderStatus(valid); !ok {
			t.Errorf("expected %q to parse", valid)
		}
	}

	for _, invalid := range []string{"", "Active", "busy", "in-delivery"} {
		if _, ok := ParseRiderStatus(invalid); ok {
			t.Errorf("expected %q to be rejected", invalid)
		}
	}
}

func TestRiderStatusTransitions(t *testing.T) {
	testCases := []struct {
		from    RiderStatus
		to      RiderStatus
		allowed bool
	}{
		{RiderStatusPending, RiderStatusActive, true},
		{RiderStatusPending, RiderStatusRejected, true},
		{RiderStatusPending, RiderStatusDeactivated, false},
		{RiderStatusPending, RiderStatusInDelivery, false},
		{RiderStatusActive, RiderStatusInDelivery, true},
		{RiderStatusActive, RiderStatusDeactivated, true},
		{RiderStatusActive, RiderStatusPending, false},
		{RiderStatusInDelivery, RiderStatusActive, true},
		{RiderStatusInDelivery, RiderStatusDeactivated, false},
		{RiderStatusDeactivated, RiderStatusActive, true},
		{RiderStatusRejected, RiderStatusActive, false},
		{RiderStatusRejected, RiderStatusPending, false},
	}

	for _, tc := range testCases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.allowed {
			t.Errorf("%s -> %s: expected %v, got %v", tc.from, tc.to, tc.allowed, got)
		}
	}
}
