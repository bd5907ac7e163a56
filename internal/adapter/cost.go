package adapter

import "github.com/deparrow/console/models"

// EstimateCreditCost estimates the credit cost of a job from its spec.
// The estimate is attached to the submit request; the server recomputes the
// authoritative price with the same model and rejects the submission with
// [ErrPaymentRequired] when the balance cannot cover it.
func EstimateCreditCost(spec *models.JobSpec) float64 {
	baseCost := 1.0

	if spec == nil || spec.Resources == nil {
		return baseCost
	}

	// Memory: +0.1 per requested allocation.
	if spec.Resources.Memory != "" {
		baseCost += 0.1
	}

	// GPU: +2.0 when any GPU is requested.
	if spec.Resources.GPU != "" && spec.Resources.GPU != "0" {
		baseCost += 2.0
	}

	// Normalise to hours when a timeout is set.
	if spec.Timeout > 0 {
		baseCost *= float64(spec.Timeout) / 3600.0
	}

	// High priority carries a 50% surcharge.
	if spec.Priority > 50 {
		baseCost *= 1.5
	}

	return baseCost
}
