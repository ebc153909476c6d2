package merchant

import (
	"context"
	"time"
	// Time-Zone headers must resolve on hosts without a zoneinfo database.
	_ "time/tzdata"

	apperr "github.com/Rizan-Swivel/prod-qpon-auth-service/internal/errors"
	"github.com/Rizan-Swivel/prod-qpon-auth-service/internal/models"
)

// TodaySummary is the admin dashboard headline: accounts registered since
// local midnight, totals per role and the owners that are currently active.
type TodaySummary struct {
	NewMerchants     int64 `json:"noOfNewMerchants"`
	TotalMerchants   int64 `json:"totalMerchants"`
	ActiveMerchants  int64 `json:"totalActiveMerchants"`
	NewMobileUsers   int64 `json:"noOfNewMobileUsers"`
	TotalMobileUsers int64 `json:"totalMobileUsers"`
	NewBanks         int64 `json:"noOfNewBanks"`
	TotalBanks       int64 `json:"totalBanks"`
	ActiveBanks      int64 `json:"totalActiveBanks"`
}

// TodaySummary counts accounts against the start of the current day in
// timeZone. An empty timeZone uses the service default.
func (s *Service) TodaySummary(ctx context.Context, timeZone string) (*TodaySummary, error) {
	if timeZone == "" {
		timeZone = s.defaultTimeZone
	}
	loc, err := time.LoadLocation(timeZone)
	if err != nil {
		return nil, apperr.ErrValidation.Withf("invalid time zone %q", timeZone)
	}
	now := s.now().In(loc)
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	accounts := s.gateway.Reader().Accounts()
	count := func(role models.RoleType, since time.Time) (int64, error) {
		n, err := accounts.CountByRole(ctx, role, since)
		if err != nil {
			return 0, persistence("count accounts", err, string(role))
		}
		return n, nil
	}

	var summary TodaySummary
	counters := []struct {
		dst   *int64
		role  models.RoleType
		since time.Time
	}{
		{&summary.NewMerchants, models.RoleMerchant, midnight},
		{&summary.TotalMerchants, models.RoleMerchant, time.Time{}},
		{&summary.NewMobileUsers, models.RoleUser, midnight},
		{&summary.TotalMobileUsers, models.RoleUser, time.Time{}},
		{&summary.NewBanks, models.RoleBank, midnight},
		{&summary.TotalBanks, models.RoleBank, time.Time{}},
	}
	for _, c := range counters {
		if *c.dst, err = count(c.role, c.since); err != nil {
			return nil, err
		}
	}

	if summary.ActiveMerchants, err = s.ActiveMerchantCount(ctx); err != nil {
		return nil, err
	}
	if summary.ActiveBanks, err = s.ActiveBankCount(ctx); err != nil {
		return nil, err
	}
	return &summary, nil
}
