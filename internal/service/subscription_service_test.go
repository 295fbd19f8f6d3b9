package service

import (
	"context"
	"testing"
	"time"

	"clover/internal/apperr"
	"clover/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSubscriptionService_SubscribeUsesCatalog(t *testing.T) {
	now := time.Date(2024, 1, 31, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		period      models.BillingPeriod
		wantPrice   float64
		wantExpires time.Time
	}{
		{"monthly", models.BillingMonthly, 29.9, now.AddDate(0, 1, 0)},
		{"yearly", models.BillingYearly, 299, now.AddDate(1, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockSubscriptionRepository)
			repo.On("Subscribe", mock.Anything, mock.AnythingOfType("*models.UserSubscription")).Return(nil)

			svc := &subscriptionService{subRepo: repo, now: func() time.Time { return now }}
			sub, err := svc.Subscribe(context.Background(), testUserID, "pro", tt.period)

			require.NoError(t, err)
			assert.Equal(t, testUserID, sub.UserID)
			assert.Equal(t, "pro", sub.PlanName)
			assert.Equal(t, tt.wantPrice, sub.Price)
			assert.Equal(t, int64(2000), sub.PointsPerMonth)
			assert.Equal(t, now, sub.StartDate)
			assert.Equal(t, tt.wantExpires, sub.ExpirationDate)
			repo.AssertExpectations(t)
		})
	}
}

func TestSubscriptionService_UnknownPlan(t *testing.T) {
	repo := new(MockSubscriptionRepository)

	_, err := NewSubscriptionService(repo).Subscribe(context.Background(), testUserID, "enterprise", models.BillingMonthly)

	var verr *apperr.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "plan", verr.Field)
	repo.AssertNotCalled(t, "Subscribe", mock.Anything, mock.Anything)
}
