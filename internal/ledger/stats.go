package ledger

import "fluiq-workers/internal/models"

// Stats computes the dashboard aggregates. SuccessRate is the accepted share
// in whole percent, rounded half up, and 0 for an empty collection.
func Stats(deals []models.Deal) models.DealStats {
	stats := models.DealStats{Total: len(deals)}
	for _, d := range deals {
		switch {
		case d.Status.InProgress():
			stats.InProgress++
		case d.Status == models.DealStatusAccepted:
			stats.Accepted++
		case d.Status == models.DealStatusRejected:
			stats.Rejected++
		}
	}
	stats.SuccessRate = percentRoundHalfUp(stats.Accepted, stats.Total)
	return stats
}

// percentRoundHalfUp returns floor(100*part/total + 0.5) using integers only.
func percentRoundHalfUp(part, total int) int {
	if total == 0 {
		return 0
	}
	return (200*part + total) / (2 * total)
}
