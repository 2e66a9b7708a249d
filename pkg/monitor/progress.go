package monitor

import (
	"math"

	"agentscrape-go/pkg/models"
)

// Counts returns how many pages are done out of the total.
func Counts(pages []models.Webpage) (done, total int) {
	for _, p := range pages {
		if p.IsDone() {
			done++
		}
	}
	return done, len(pages)
}

// Progress returns the percentage of done pages rounded to the nearest
// integer. An empty collection is 0.
func Progress(pages []models.Webpage) int {
	done, total := Counts(pages)
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(done) / float64(total)))
}
