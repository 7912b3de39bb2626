package storage

import (
	"context"
	"errors"
	"log"

	"github.com/Roshanpeter07/GLIMCarPool/internal/config"
	"github.com/Roshanpeter07/GLIMCarPool/internal/models"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Storage is the persistence contract consumed by the ride services and the
// webhook handler. The ride tables live in PostgreSQL; Redis backs the
// per-cluster confirmation locks.
type Storage interface {
	SaveRequest(req *models.RideRequest) error
	ListRequests() ([]models.RideRequest, error)
	FindLatestRequestByIdentity(identity string) (*models.RideRequest, error)
	AssignRequestGroup(requestID uint, groupID string) error

	SaveGroup(group *models.Group) error
	ListGroups() ([]models.Group, error)
	ListGroupsByDate(date string) ([]models.Group, error)

	AcquireConfirmLock(key string) (bool, error)
	ReleaseConfirmLock(key string) error
}

type Service struct {
	DB    *gorm.DB
	Redis *redis.Client
	Ctx   context.Context
}

// NewStorageService Constructor
func NewStorageService(db *gorm.DB, rdb *redis.Client) *Service {
	return &Service{
		DB:    db,
		Redis: rdb,
		Ctx:   context.Background(),
	}
}

// SaveRequest appends a new ride request row. No uniqueness is enforced:
// re-submissions by the same identity produce additional rows.
func (s *Service) SaveRequest(req *models.RideRequest) error {
	if err := s.DB.Create(req).Error; err != nil {
		log.Printf("ERROR: Failed to save ride request for %s: %v", req.Identity, err)
		return err
	}
	return nil
}

// ListRequests returns every ride request in creation order.
func (s *Service) ListRequests() ([]models.RideRequest, error) {
	var requests []models.RideRequest
	if err := s.DB.Order("created_at asc, id asc").Find(&requests).Error; err != nil {
		log.Printf("ERROR: Failed to list ride requests: %v", err)
		return nil, err
	}
	return requests, nil
}

// FindLatestRequestByIdentity returns the most recent request row for the
// given identity, or nil without an error when the identity has none.
func (s *Service) FindLatestRequestByIdentity(identity string) (*models.RideRequest, error) {
	var req models.RideRequest
	err := s.DB.Where("identity = ?", identity).
		Order("created_at desc, id desc").
		First(&req).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		log.Printf("ERROR: Failed to find request for identity %s: %v", identity, err)
		return nil, err
	}
	return &req, nil
}

// AssignRequestGroup stamps one request row with its resolved group and the
// Confirmed status. Both columns change in a single update so a row can never
// be observed confirmed without a group, or grouped while still pending.
func (s *Service) AssignRequestGroup(requestID uint, groupID string) error {
	result := s.DB.Model(&models.RideRequest{}).
		Where("id = ?", requestID).
		Updates(map[string]interface{}{
			"group_ref": groupID,
			"status":    models.StatusConfirmed,
		})

	if result.Error != nil {
		log.Printf("ERROR: Failed to assign group %s to request %d: %v", groupID, requestID, result.Error)
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SaveGroup appends a new group row.
func (s *Service) SaveGroup(group *models.Group) error {
	if group.State == "" {
		group.State = models.GroupStateForming
	}
	if err := s.DB.Create(group).Error; err != nil {
		log.Printf("ERROR: Failed to save group %s: %v", group.GroupID, err)
		return err
	}
	return nil
}

// ListGroups returns every formed group in creation order.
func (s *Service) ListGroups() ([]models.Group, error) {
	var groups []models.Group
	if err := s.DB.Order("created_at asc").Find(&groups).Error; err != nil {
		log.Printf("ERROR: Failed to list groups: %v", err)
		return nil, err
	}
	return groups, nil
}

// ListGroupsByDate returns the groups formed for one calendar date.
func (s *Service) ListGroupsByDate(date string) ([]models.Group, error) {
	var groups []models.Group
	if err := s.DB.Where("date = ?", date).Order("created_at asc").Find(&groups).Error; err != nil {
		log.Printf("ERROR: Failed to list groups for date %s: %v", date, err)
		return nil, err
	}
	return groups, nil
}

// AcquireConfirmLock takes the confirmation lock for one cluster key via
// SET NX. It returns false when another confirmation currently holds the
// lock. The TTL bounds how long a crashed holder can block the cluster.
func (s *Service) AcquireConfirmLock(key string) (bool, error) {
	ok, err := s.Redis.SetNX(s.Ctx, key, "locked", config.ConfirmLockTTL).Result()
	if err != nil {
		log.Printf("ERROR: Failed to acquire confirm lock %s: %v", key, err)
		return false, err
	}
	return ok, nil
}

// ReleaseConfirmLock drops the confirmation lock for one cluster key.
func (s *Service) ReleaseConfirmLock(key string) error {
	return s.Redis.Del(s.Ctx, key).Err()
}
