// Package rides implements the carpool matching core: finding compatible ride
// requests and resolving confirmations into shared groups.
package rides

import (
	"strings"

	"github.com/Roshanpeter07/GLIMCarPool/internal/config"
	"github.com/Roshanpeter07/GLIMCarPool/internal/dialogflow"
	"github.com/Roshanpeter07/GLIMCarPool/internal/models"
	"github.com/Roshanpeter07/GLIMCarPool/internal/storage"
)

// MatcherService decides which stored ride requests are compatible with a
// candidate trip. Matching is recomputed from the full table on every call;
// there is no cached index.
type MatcherService struct {
	Storage storage.Storage
}

// NewMatcherService creates a new Matcher.
func NewMatcherService(s storage.Storage) *MatcherService {
	return &MatcherService{Storage: s}
}

// FindMatches returns every stored request compatible with the given trip, in
// table order. Compatible means: same location ignoring case, same calendar
// date, and a time-of-day within the tolerance window. Rows belonging to
// excludeIdentity are skipped so a request never matches itself. Both Pending
// and Confirmed rows stay eligible, which lets late confirmers join a group
// that already formed.
func (m *MatcherService) FindMatches(location, date, timeStr, excludeIdentity string) ([]models.RideRequest, error) {
	requests, err := m.Storage.ListRequests()
	if err != nil {
		return nil, err
	}

	targetLocation := strings.ToLower(location)
	targetDate := dialogflow.NormalizeDate(date)
	targetHour := dialogflow.ExtractHour(timeStr)

	var matches []models.RideRequest
	for _, req := range requests {
		if req.Identity == excludeIdentity {
			continue
		}
		if strings.ToLower(req.Location) != targetLocation {
			continue
		}
		if req.Status != models.StatusPending && req.Status != models.StatusConfirmed {
			continue
		}
		if dialogflow.NormalizeDate(req.Date) != targetDate {
			continue
		}
		if hourDiff(dialogflow.ExtractHour(req.Time), targetHour) > config.MatchToleranceHours {
			continue
		}
		matches = append(matches, req)
	}
	return matches, nil
}

func hourDiff(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}
