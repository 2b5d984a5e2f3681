package statemachine

import (
	"testing"

	"pharmacy-api/models"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		name  string
		from  models.CartStatus
		to    models.CartStatus
		actor string
		ok    bool
	}{
		{"checkout", models.StatusNew, models.StatusProcessing, "customer", true},
		{"staff ships", models.StatusProcessing, models.StatusShipped, "staff", true},
		{"staff completes", models.StatusShipped, models.StatusCompleted, "staff", true},
		{"customer cannot ship", models.StatusProcessing, models.StatusShipped, "customer", false},
		{"no skipping", models.StatusNew, models.StatusShipped, "staff", false},
		{"no going back", models.StatusShipped, models.StatusProcessing, "staff", false},
		{"completed is terminal", models.StatusCompleted, models.StatusNew, "staff", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := CanTransition(tc.from, tc.to, tc.actor)
			if tc.ok && err != nil {
				t.Fatalf("expected transition allowed, got %v", err)
			}
			if !tc.ok && err == nil {
				t.Fatalf("expected transition rejected")
			}
		})
	}
}

func TestValidTransitionsFrom(t *testing.T) {
	nexts := ValidTransitionsFrom(models.StatusNew)
	if len(nexts) != 1 || nexts[0] != models.StatusProcessing {
		t.Fatalf("expected NEW -> [PROCESSING], got %v", nexts)
	}
	if nexts := ValidTransitionsFrom(models.StatusCompleted); len(nexts) != 0 {
		t.Fatalf("expected COMPLETED to be terminal, got %v", nexts)
	}
}
