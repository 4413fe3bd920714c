package sim

import (
	"fmt"
	"time"
)

// Invoice is one tenant-month billing record.
type Invoice struct {
	ID        string  `json:"id"`
	TenantID  string  `json:"tenant_id"`
	Tenant    string  `json:"tenant"`
	Month     string  `json:"month"`
	GpuHours  float64 `json:"gpu_hours"`
	AmountUSD float64 `json:"amount_usd"`
	Status    string  `json:"status"`
}

// BillingData is the aggregate for the billing view.
type BillingData struct {
	TotalMRR            float64       `json:"total_mrr"`
	CurrentMonthRevenue float64       `json:"current_month_revenue"`
	OutstandingUSD      float64       `json:"outstanding_usd"`
	RevenueByMonth      []MetricPoint `json:"revenue_by_month"`
	Invoices            []Invoice     `json:"invoices"`
}

// Tier base GPU-hours per month and blended hourly rate.
var tierBilling = map[string]struct {
	baseHours float64
	rate      float64
}{
	"enterprise": {12000, 3.40},
	"pro":        {4000, 2.30},
	"starter":    {800, 1.60},
}

// Billing derives invoices per (tenant x trailing 3 months). Amounts
// come from tier base hours scaled by a per-cell noise variance in
// [0.85, 1.15). Only the current month's status is noise-rolled; prior
// months have settled and are always paid.
func (s *Simulator) Billing() BillingData {
	now := s.now()
	months := [3]time.Time{}
	for m := 0; m < 3; m++ {
		months[m] = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(2 - m), 0)
	}

	data := BillingData{}
	revenue := [3]float64{}
	for ti, t := range tenantCatalog {
		data.TotalMRR += t.MRR
		tb := tierBilling[t.Tier]
		for m := 0; m < 3; m++ {
			cell := ti*100 + m
			variance := 0.85 + smoothNoise(fieldSeed(cell, "cost"))*0.30
			hours := tb.baseHours * variance
			amount := round2(hours * tb.rate)

			status := "paid"
			if m == 2 {
				switch roll := fieldNoise(ti, "status"); {
				case roll > 0.85:
					status = "overdue"
				case roll > 0.45:
					status = "pending"
				}
			}

			monthKey := months[m].Format("2006-01")
			inv := Invoice{
				ID:        fmt.Sprintf("inv-%s-%s", t.ID, monthKey),
				TenantID:  t.ID,
				Tenant:    t.Name,
				Month:     monthKey,
				GpuHours:  round1(hours),
				AmountUSD: amount,
				Status:    status,
			}
			data.Invoices = append(data.Invoices, inv)
			revenue[m] += amount
			if status != "paid" {
				data.OutstandingUSD += amount
			}
		}
	}

	for m := 0; m < 3; m++ {
		data.RevenueByMonth = append(data.RevenueByMonth, MetricPoint{
			Timestamp: months[m].Format("2006-01"),
			Value:     round2(revenue[m]),
		})
	}
	data.CurrentMonthRevenue = round2(revenue[2])
	data.OutstandingUSD = round2(data.OutstandingUSD)
	data.TotalMRR = round2(data.TotalMRR)
	return data
}

// Pricing returns the published rate card.
func (s *Simulator) Pricing() []PricingPlan {
	return pricingPlans
}
