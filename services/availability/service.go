package availability

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"showdan/database"
	busytimeRepo "showdan/database/repository/busytime"
	"showdan/models"
	"showdan/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

// AvailabilityService owns users' busy ranges.
type AvailabilityService interface {
	Create(ctx context.Context, ownerID string, input models.BusyTimeInput) (*models.BusyTime, error)
	Insert(ctx context.Context, ownerID string, start, end time.Time, isAllDay bool, note string) (*models.BusyTime, error)
	QueryOverlapping(ctx context.Context, ownerID string, from, to time.Time) ([]models.BusyTime, error)
	ListRange(ctx context.Context, ownerID, startDate, endDate string) ([]models.BusyTime, error)
	DeleteOne(ctx context.Context, ownerID, id string) error
	DeleteForDay(ctx context.Context, ownerID, day string) (*models.DayDeletion, error)
}

// DefaultAvailabilityService implements AvailabilityService.
type DefaultAvailabilityService struct {
	BusyTimes busytimeRepo.BusyTimeRepository
	Tx        database.Transactor
	Locker    utils.Locker
	Location  *time.Location
	Logger    *zap.Logger
	Now       func() time.Time
}

func NewAvailabilityService(repo busytimeRepo.BusyTimeRepository, tx database.Transactor, locker utils.Locker, loc *time.Location, logger *zap.Logger) *DefaultAvailabilityService {
	return &DefaultAvailabilityService{
		BusyTimes: repo,
		Tx:        tx,
		Locker:    locker,
		Location:  loc,
		Logger:    logger,
		Now:       time.Now,
	}
}

func (s *DefaultAvailabilityService) Create(ctx context.Context, ownerID string, input models.BusyTimeInput) (*models.BusyTime, error) {
	start, err := time.Parse(time.RFC3339, input.StartAt)
	if err != nil {
		return nil, utils.NewInvalidArgument("startAt must be an RFC3339 timestamp")
	}
	end, err := time.Parse(time.RFC3339, input.EndAt)
	if err != nil {
		return nil, utils.NewInvalidArgument("endAt must be an RFC3339 timestamp")
	}
	isAllDay := true
	if input.IsAllDay != nil {
		isAllDay = *input.IsAllDay
	}
	return s.Insert(ctx, ownerID, start, end, isAllDay, strings.TrimSpace(input.Note))
}

// Insert stores a range without checking it against the owner's other ranges.
func (s *DefaultAvailabilityService) Insert(ctx context.Context, ownerID string, start, end time.Time, isAllDay bool, note string) (*models.BusyTime, error) {
	start, end = start.Truncate(Resolution).UTC(), end.Truncate(Resolution).UTC()
	if !end.After(start) {
		return nil, utils.NewInvalidArgument("end must be after start")
	}
	if len(note) > 255 {
		return nil, utils.NewInvalidArgument("note must be at most 255 characters")
	}

	bt := &models.BusyTime{
		ID:        uuid.NewString(),
		OwnerID:   ownerID,
		StartAt:   start,
		EndAt:     end,
		IsAllDay:  isAllDay,
		Note:      note,
		CreatedAt: s.Now().UTC(),
	}
	if err := s.BusyTimes.Insert(ctx, bt); err != nil {
		return nil, fmt.Errorf("insert busy time: %w", err)
	}
	return bt, nil
}

func (s *DefaultAvailabilityService) QueryOverlapping(ctx context.Context, ownerID string, from, to time.Time) ([]models.BusyTime, error) {
	if !to.After(from) {
		return nil, utils.NewInvalidArgument("range end must be after range start")
	}
	out, err := s.BusyTimes.ListOverlapping(ctx, ownerID, from, to)
	if err != nil {
		return nil, fmt.Errorf("query busy times: %w", err)
	}
	return out, nil
}

// ListRange lists ranges touching the inclusive day span. Missing dates default
// to today and thirty days after the start.
func (s *DefaultAvailabilityService) ListRange(ctx context.Context, ownerID, startDate, endDate string) ([]models.BusyTime, error) {
	first := s.Now().In(s.Location)
	if startDate != "" {
		d, err := time.ParseInLocation(dateLayout, startDate, s.Location)
		if err != nil {
			return nil, utils.NewInvalidArgument("start_date must be YYYY-MM-DD")
		}
		first = d
	}
	from, _ := DayBounds(first, s.Location)

	to := from.AddDate(0, 0, 30)
	if endDate != "" {
		d, err := time.ParseInLocation(dateLayout, endDate, s.Location)
		if err != nil {
			return nil, utils.NewInvalidArgument("end_date must be YYYY-MM-DD")
		}
		last, _ := DayBounds(d, s.Location)
		to = last.AddDate(0, 0, 1)
	}
	return s.QueryOverlapping(ctx, ownerID, from, to)
}

func (s *DefaultAvailabilityService) DeleteOne(ctx context.Context, ownerID, id string) error {
	bt, err := s.BusyTimes.GetByID(ctx, id)
	if errors.Is(err, database.ErrNotFound) {
		return utils.NewNotFound("busy time not found")
	}
	if err != nil {
		return fmt.Errorf("get busy time: %w", err)
	}
	if bt.OwnerID != ownerID {
		return utils.NewForbidden("busy time belongs to another user")
	}
	if err := s.BusyTimes.Delete(ctx, id); err != nil && !errors.Is(err, database.ErrNotFound) {
		return fmt.Errorf("delete busy time: %w", err)
	}
	return nil
}

// DeleteForDay clears one calendar day from the owner's ranges, keeping the time
// on either side of it.
func (s *DefaultAvailabilityService) DeleteForDay(ctx context.Context, ownerID, day string) (*models.DayDeletion, error) {
	d, err := time.ParseInLocation(dateLayout, strings.TrimSpace(day), s.Location)
	if err != nil {
		return nil, utils.NewInvalidArgument("day must be YYYY-MM-DD")
	}

	plan, err := s.clearDay(ctx, ownerID, d)
	if err != nil {
		return nil, err
	}

	s.Logger.Info("busy time removed for day",
		zap.String("ownerID", ownerID),
		zap.String("day", d.Format(dateLayout)),
		zap.Int("deleted", plan.Deleted()),
		zap.Int("modified", plan.Modified()),
		zap.Int("split", len(plan.Insert)))

	return &models.DayDeletion{
		Day:      d.Format(dateLayout),
		Deleted:  plan.Deleted(),
		Modified: plan.Modified(),
	}, nil
}

func (s *DefaultAvailabilityService) clearDay(ctx context.Context, ownerID string, day time.Time) (DayPlan, error) {
	release, err := s.Locker.Acquire(ctx, "busy:"+ownerID)
	if err != nil {
		return DayPlan{}, fmt.Errorf("lock busy times of %s: %w", ownerID, err)
	}
	defer release()

	dayStart, dayEnd := DayBounds(day, s.Location)

	var plan DayPlan
	err = s.Tx.WithTransaction(ctx, func(ctx context.Context) error {
		ranges, err := s.BusyTimes.ListOverlapping(ctx, ownerID, dayStart.Add(-Resolution), dayEnd.Add(Resolution))
		if err != nil {
			return err
		}
		plan = PlanDayDeletion(ranges, dayStart, dayEnd)

		for _, bt := range plan.Insert {
			bt.ID = uuid.NewString()
			bt.CreatedAt = s.Now().UTC()
			if err := s.BusyTimes.Insert(ctx, &bt); err != nil {
				return err
			}
		}
		for _, b := range plan.Update {
			if err := s.BusyTimes.SetBounds(ctx, b.ID, b.Start, b.End); err != nil {
				return err
			}
		}
		for _, id := range plan.Delete {
			if err := s.BusyTimes.Delete(ctx, id); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return DayPlan{}, fmt.Errorf("delete busy time for day: %w", err)
	}
	return plan, nil
}
