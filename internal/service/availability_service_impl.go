package service

import (
	"context"
	"fmt"
	"time"

	"github.com/pgorski/taskcal/internal/contract"
	"github.com/pgorski/taskcal/internal/domain"
	"github.com/pgorski/taskcal/internal/repository"
)

type availabilityService struct {
	availability repository.AvailabilityRepo
	scheduling   ScheduleService
}

func NewAvailabilityService(availability repository.AvailabilityRepo, scheduling ScheduleService) AvailabilityService {
	return &availabilityService{availability: availability, scheduling: scheduling}
}

func (s *availabilityService) Rules(ctx context.Context) ([]domain.AvailabilityRule, error) {
	return s.availability.ListRules(ctx)
}

// SetRules swaps the weekly calendar and reschedules everything from today:
// existing allocations were placed against the old capacity and may no
// longer fit.
func (s *availabilityService) SetRules(ctx context.Context, rules []domain.AvailabilityRule) (*contract.ScheduleResponse, error) {
	for _, r := range rules {
		if r.Weekday < 0 || r.Weekday > 6 {
			return nil, fmt.Errorf("weekday %d out of range", r.Weekday)
		}
		if r.Hours < 0 || r.Hours > 24 {
			return nil, fmt.Errorf("hours %d out of range for %s", r.Hours, r.Weekday)
		}
	}
	if err := s.availability.ReplaceRules(ctx, rules); err != nil {
		return nil, err
	}
	return s.rescheduleTolerant(ctx, contract.RescheduleRequest{})
}

func (s *availabilityService) Overrides(ctx context.Context) ([]domain.AvailabilityOverride, error) {
	return s.availability.ListOverrides(ctx)
}

// SetOverride pins one date's capacity (0 hours is an explicit day off) and
// reschedules from that date so nothing stays booked on shrunk capacity.
func (s *availabilityService) SetOverride(ctx context.Context, date domain.Date, hours int) (*contract.ScheduleResponse, error) {
	if hours < 0 || hours > 24 {
		return nil, fmt.Errorf("hours %d out of range for %s", hours, date)
	}
	o := domain.AvailabilityOverride{Date: date, Value: domain.ExplicitHours(hours)}
	if err := s.availability.SetOverride(ctx, o); err != nil {
		return nil, err
	}
	return s.rescheduleTolerant(ctx, contract.RescheduleRequest{From: rescheduleStart(date)})
}

func (s *availabilityService) ClearOverride(ctx context.Context, date domain.Date) (*contract.ScheduleResponse, error) {
	if err := s.availability.DeleteOverride(ctx, date); err != nil {
		return nil, err
	}
	return s.rescheduleTolerant(ctx, contract.RescheduleRequest{From: rescheduleStart(date)})
}

// rescheduleStart floors the cutover at today: history before today is
// never rewritten even when a past date's override changes.
func rescheduleStart(date domain.Date) *domain.Date {
	today := domain.Today(time.Local)
	if date.Before(today) {
		date = today
	}
	return &date
}

func (s *availabilityService) rescheduleTolerant(ctx context.Context, req contract.RescheduleRequest) (*contract.ScheduleResponse, error) {
	resp, err := s.scheduling.RescheduleFrom(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("rescheduling after availability change: %w", err)
	}
	return resp, nil
}
