package rides

import (
	"log"
	"time"

	"github.com/Roshanpeter07/GLIMCarPool/internal/config"
	"github.com/Roshanpeter07/GLIMCarPool/internal/dialogflow"
	"github.com/Roshanpeter07/GLIMCarPool/internal/models"
	"github.com/Roshanpeter07/GLIMCarPool/internal/storage"
)

// Service covers the non-confirmation ride operations: registering a new
// request, checking an identity's status, and listing the groups formed for
// a date.
type Service struct {
	Storage storage.Storage
	Matcher *MatcherService
}

// NewService creates a new ride Service.
func NewService(s storage.Storage, matcher *MatcherService) *Service {
	return &Service{Storage: s, Matcher: matcher}
}

// RegisterRequest normalizes the raw intent parameters, stores a new Pending
// request, and returns it together with the already-stored requests it
// matches. Missing parameters fall back to the same defaults the original
// conversation flow used.
func (s *Service) RegisterRequest(params map[string]any) (*models.RideRequest, []models.RideRequest, error) {
	name := fallback(dialogflow.ToScalarString(params[dialogflow.ParamGivenName]), config.DefaultDisplayName)
	identity := fallback(dialogflow.ToScalarString(params[dialogflow.ParamPhoneNumber]), config.DefaultIdentity)
	location := fallback(dialogflow.ToScalarString(params[dialogflow.ParamLocation]), config.DefaultLocation)
	dateStr := fallback(dialogflow.ToScalarString(params[dialogflow.ParamDate]), time.Now().Format(time.RFC3339))
	timeStr := fallback(dialogflow.ToScalarString(params[dialogflow.ParamTime]), config.DefaultTime)

	req := &models.RideRequest{
		Identity:    identity,
		DisplayName: name,
		Location:    location,
		Date:        dialogflow.NormalizeDate(dateStr),
		Time:        timeStr,
		Status:      models.StatusPending,
	}
	if err := s.Storage.SaveRequest(req); err != nil {
		return nil, nil, err
	}
	log.Printf("INFO: Registered ride request for %s (%s on %s at %s)", identity, location, req.Date, timeStr)

	matches, err := s.Matcher.FindMatches(location, dateStr, timeStr, identity)
	if err != nil {
		return nil, nil, err
	}
	return req, matches, nil
}

// CheckStatus returns the latest stored request for the identity, or
// ErrRequestNotFound when none exists.
func (s *Service) CheckStatus(identity string) (*models.RideRequest, error) {
	req, err := s.Storage.FindLatestRequestByIdentity(identity)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, ErrRequestNotFound
	}
	return req, nil
}

// AvailableRides lists the groups formed for the given date. An empty date
// means today. The resolved date is returned alongside the groups for the
// reply text.
func (s *Service) AvailableRides(dateStr string) (string, []models.Group, error) {
	if dateStr == "" {
		dateStr = time.Now().Format(time.RFC3339)
	}
	targetDate := dialogflow.NormalizeDate(dateStr)

	groups, err := s.Storage.ListGroupsByDate(targetDate)
	if err != nil {
		return "", nil, err
	}
	return targetDate, groups, nil
}

func fallback(value, def string) string {
	if value == "" {
		return def
	}
	return value
}
