package service

import (
	"context"
	"time"

	"clover/internal/apperr"
	"clover/internal/models"
	"clover/internal/repository"
)

type SubscriptionService interface {
	Plans() []models.Plan
	Active(ctx context.Context, userID string) (*models.UserSubscription, error)
	History(ctx context.Context, userID string) ([]models.UserSubscription, error)
	Subscribe(ctx context.Context, userID, planName string, period models.BillingPeriod) (*models.UserSubscription, error)
}

type subscriptionService struct {
	subRepo repository.SubscriptionRepository
	now     func() time.Time
}

func NewSubscriptionService(subRepo repository.SubscriptionRepository) SubscriptionService {
	return &subscriptionService{subRepo: subRepo, now: time.Now}
}

func (s *subscriptionService) Plans() []models.Plan {
	return models.Plans
}

func (s *subscriptionService) Active(ctx context.Context, userID string) (*models.UserSubscription, error) {
	return s.subRepo.Active(ctx, userID)
}

func (s *subscriptionService) History(ctx context.Context, userID string) ([]models.UserSubscription, error) {
	return s.subRepo.List(ctx, userID)
}

// Subscribe replaces any active subscription with the named plan. Price and
// points come from the server catalog.
func (s *subscriptionService) Subscribe(ctx context.Context, userID, planName string, period models.BillingPeriod) (*models.UserSubscription, error) {
	plan, err := models.FindPlan(planName)
	if err != nil {
		return nil, apperr.Invalid("plan", "%s", err.Error())
	}

	start := s.now()
	expires := start.AddDate(0, 1, 0)
	if period == models.BillingYearly {
		expires = start.AddDate(1, 0, 0)
	}

	sub := &models.UserSubscription{
		UserID:         userID,
		PlanName:       plan.Name,
		BillingPeriod:  period,
		PointsPerMonth: plan.PointsPerMonth,
		Price:          plan.Price(period),
		StartDate:      start,
		ExpirationDate: expires,
	}

	if err := s.subRepo.Subscribe(ctx, sub); err != nil {
		return nil, err
	}

	return sub, nil
}
