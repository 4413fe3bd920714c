package sim

import (
	"testing"
	"time"
)

func TestBilling_InvoiceGrid(t *testing.T) {
	s := testSim()
	b := s.Billing()
	if want := len(tenantCatalog) * 3; len(b.Invoices) != want {
		t.Fatalf("invoices = %d, want %d", len(b.Invoices), want)
	}
	if len(b.RevenueByMonth) != 3 {
		t.Fatalf("revenue series = %d months, want 3", len(b.RevenueByMonth))
	}
}

func TestBilling_PriorMonthsAlwaysPaid(t *testing.T) {
	s := testSim()
	b := s.Billing()
	current := testTime.Format("2006-01")
	for _, inv := range b.Invoices {
		if inv.Month != current && inv.Status != "paid" {
			t.Errorf("prior-month invoice %s has status %s, want paid", inv.ID, inv.Status)
		}
	}
}

func TestBilling_Deterministic(t *testing.T) {
	a := testSim().Billing()
	b := testSim().Billing()
	if len(a.Invoices) != len(b.Invoices) {
		t.Fatal("invoice counts differ")
	}
	for i := range a.Invoices {
		if a.Invoices[i] != b.Invoices[i] {
			t.Fatalf("invoice %d differs: %+v vs %+v", i, a.Invoices[i], b.Invoices[i])
		}
	}
}

func TestBilling_OutstandingCoversUnpaid(t *testing.T) {
	s := testSim()
	b := s.Billing()
	var unpaid float64
	for _, inv := range b.Invoices {
		if inv.Status != "paid" {
			unpaid += inv.AmountUSD
		}
	}
	if diff := b.OutstandingUSD - unpaid; diff > 0.01 || diff < -0.01 {
		t.Errorf("outstanding = %v, want %v", b.OutstandingUSD, unpaid)
	}
}

func TestBilling_MonthsTrailAnchor(t *testing.T) {
	s := NewWithClock(fixedClock(time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)))
	b := s.Billing()
	want := []string{"2025-11", "2025-12", "2026-01"}
	for i, mp := range b.RevenueByMonth {
		if mp.Timestamp != want[i] {
			t.Errorf("month %d = %s, want %s", i, mp.Timestamp, want[i])
		}
	}
}
