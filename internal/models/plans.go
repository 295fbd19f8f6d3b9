package models

import "fmt"

type Plan struct {
	Name           string  `json:"name"`
	MonthlyPrice   float64 `json:"monthly_price"`
	YearlyPrice    float64 `json:"yearly_price"`
	PointsPerMonth int64   `json:"points_per_month"`
}

// Plans is the server-side catalog; clients only name a plan and a period.
var Plans = []Plan{
	{Name: "starter", MonthlyPrice: 9.9, YearlyPrice: 99, PointsPerMonth: 500},
	{Name: "pro", MonthlyPrice: 29.9, YearlyPrice: 299, PointsPerMonth: 2000},
	{Name: "business", MonthlyPrice: 99, YearlyPrice: 990, PointsPerMonth: 10000},
}

func FindPlan(name string) (Plan, error) {
	for _, p := range Plans {
		if p.Name == name {
			return p, nil
		}
	}
	return Plan{}, fmt.Errorf("unknown plan %q", name)
}

func (p Plan) Price(period BillingPeriod) float64 {
	if period == BillingYearly {
		return p.YearlyPrice
	}
	return p.MonthlyPrice
}
