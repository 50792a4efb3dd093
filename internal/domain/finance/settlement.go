package finance

import (
	"github.com/fieldsales/backend/internal/domain/sales"
	"github.com/fieldsales/backend/internal/domain/trip"
	"github.com/shopspring/decimal"
)

// PaymentBreakdown splits collected sales money by payment method
type PaymentBreakdown struct {
	Cash         decimal.Decimal
	MpesaDeposit decimal.Decimal
	TillNumber   decimal.Decimal
	SendMoney    decimal.Decimal
}

// MobileTotal sums the three mobile-money methods
func (b PaymentBreakdown) MobileTotal() decimal.Decimal {
	return b.MpesaDeposit.Add(b.TillNumber).Add(b.SendMoney)
}

// TripSettlement is the full financial summary of an ended trip
type TripSettlement struct {
	TotalAllocated int
	TotalSold      int
	TotalReturned  int
	RemainingStock int

	GrossSales          decimal.Decimal
	UnsoldReturnsValue  decimal.Decimal
	ReturnsValue        decimal.Decimal
	NetSales            decimal.Decimal
	InitialStockValue   decimal.Decimal
	RemainingStockValue decimal.Decimal
	StockSoldPercentage int

	Payments PaymentBreakdown

	CompanyExpenses         decimal.Decimal
	PersonalExpenses        decimal.Decimal
	PendingCompanyExpenses  decimal.Decimal
	PendingPersonalExpenses decimal.Decimal
	TotalExpenses           decimal.Decimal
	CashExpenses            decimal.Decimal
	MpesaExpenses           decimal.Decimal

	CommissionRate                  decimal.Decimal
	CommissionEarned                decimal.Decimal
	CommissionAfterPersonalExpenses decimal.Decimal

	ExpectedDailySubmission decimal.Decimal
	ActualMoneyCollected    decimal.Decimal
	DailyVariance           decimal.Decimal
	FinalDistributorAmount  decimal.Decimal

	PhysicalCashBalance  decimal.Decimal
	PhysicalMpesaBalance decimal.Decimal
	TotalPhysicalMoney   decimal.Decimal
}

var hundred = decimal.NewFromInt(100)

// ComputeSettlement derives the settlement of a trip from its reconciled
// stock positions, its completed sales, its non-rejected expenses and the
// distributor's commission rate (a percentage). Money values are rounded
// to two decimal places at the end, never mid-calculation.
func ComputeSettlement(t *trip.Trip, positions []*trip.StockPosition, tripSales []*sales.Sale, expenses []*Expense, commissionRate decimal.Decimal) *TripSettlement {
	s := &TripSettlement{CommissionRate: commissionRate}

	for _, sale := range tripSales {
		if sale.Status != sales.SaleStatusCompleted {
			continue
		}
		total := sale.Total()
		s.GrossSales = s.GrossSales.Add(total)
		switch sale.PaymentMethod {
		case sales.PaymentCash:
			s.Payments.Cash = s.Payments.Cash.Add(total)
		case sales.PaymentMpesaDeposit:
			s.Payments.MpesaDeposit = s.Payments.MpesaDeposit.Add(total)
		case sales.PaymentTillNumber:
			s.Payments.TillNumber = s.Payments.TillNumber.Add(total)
		case sales.PaymentSendMoney:
			s.Payments.SendMoney = s.Payments.SendMoney.Add(total)
		}
	}

	s.UnsoldReturnsValue = trip.UnsoldReturnsValue(positions)
	s.ReturnsValue = trip.ReplacementReturnsValue(positions)
	s.NetSales = s.GrossSales.Sub(s.UnsoldReturnsValue)
	s.InitialStockValue = trip.InitialStockValue(positions)
	for _, pos := range positions {
		s.TotalAllocated += pos.Allocated
		s.TotalSold += pos.Sold
		s.TotalReturned += pos.Returned
		s.RemainingStock += pos.Remaining
		s.RemainingStockValue = s.RemainingStockValue.Add(pos.RemainingValue())
	}
	if s.InitialStockValue.IsPositive() {
		pct := s.GrossSales.Div(s.InitialStockValue).Mul(hundred)
		s.StockSoldPercentage = int(pct.Round(0).IntPart())
	}

	for _, e := range expenses {
		if !e.CountsTowardSettlement() {
			continue
		}
		if e.EffectiveType() == ExpenseTypePersonal {
			s.PersonalExpenses = s.PersonalExpenses.Add(e.Amount)
			if e.Status == ExpenseStatusPending {
				s.PendingPersonalExpenses = s.PendingPersonalExpenses.Add(e.Amount)
			}
		} else {
			s.CompanyExpenses = s.CompanyExpenses.Add(e.Amount)
			if e.Status == ExpenseStatusPending {
				s.PendingCompanyExpenses = s.PendingCompanyExpenses.Add(e.Amount)
			}
		}
		if e.PaymentMethod == ExpensePaidMpesa {
			s.MpesaExpenses = s.MpesaExpenses.Add(e.Amount)
		} else {
			s.CashExpenses = s.CashExpenses.Add(e.Amount)
		}
	}

	s.CommissionEarned = s.GrossSales.Mul(commissionRate).Div(hundred)
	s.CommissionAfterPersonalExpenses = s.CommissionEarned.Sub(s.PersonalExpenses)

	s.TotalExpenses = s.CompanyExpenses.Add(s.PersonalExpenses)
	s.ExpectedDailySubmission = s.GrossSales.Sub(s.TotalExpenses)
	if t != nil && t.ActualCashSubmission != nil {
		s.ActualMoneyCollected = *t.ActualCashSubmission
	}
	s.DailyVariance = s.ActualMoneyCollected.Sub(s.ExpectedDailySubmission)
	s.FinalDistributorAmount = s.CommissionAfterPersonalExpenses.Add(s.DailyVariance)

	s.PhysicalCashBalance = s.Payments.Cash.Sub(s.CashExpenses)
	s.PhysicalMpesaBalance = s.Payments.MobileTotal().Sub(s.MpesaExpenses)
	s.TotalPhysicalMoney = s.PhysicalCashBalance.Add(s.PhysicalMpesaBalance)

	s.round()
	return s
}

func (s *TripSettlement) round() {
	for _, v := range []*decimal.Decimal{
		&s.GrossSales, &s.UnsoldReturnsValue, &s.ReturnsValue, &s.NetSales,
		&s.InitialStockValue, &s.RemainingStockValue,
		&s.Payments.Cash, &s.Payments.MpesaDeposit, &s.Payments.TillNumber, &s.Payments.SendMoney,
		&s.CompanyExpenses, &s.PersonalExpenses,
		&s.PendingCompanyExpenses, &s.PendingPersonalExpenses, &s.TotalExpenses,
		&s.CashExpenses, &s.MpesaExpenses,
		&s.CommissionEarned, &s.CommissionAfterPersonalExpenses,
		&s.ExpectedDailySubmission, &s.ActualMoneyCollected, &s.DailyVariance,
		&s.FinalDistributorAmount, &s.PhysicalCashBalance, &s.PhysicalMpesaBalance,
		&s.TotalPhysicalMoney,
	} {
		*v = v.Round(2)
	}
}
