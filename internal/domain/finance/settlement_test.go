package finance

import (
	"testing"
	"time"

	"github.com/fieldsales/backend/internal/domain/catalog"
	"github.com/fieldsales/backend/internal/domain/sales"
	"github.com/fieldsales/backend/internal/domain/trip"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func endedTrip(t *testing.T, submission int64) *trip.Trip {
	t.Helper()
	tr, err := trip.NewTrip("John Kamau", "KDA 123X", "Thika Road")
	require.NoError(t, err)
	require.NoError(t, tr.Start(100, time.Now()))
	require.NoError(t, tr.End(150, time.Now().Add(time.Hour)))
	require.NoError(t, tr.RecordCashSubmission(decimal.NewFromInt(submission)))
	return tr
}

func saleOf(t *testing.T, tripID uuid.UUID, total int64, method sales.PaymentMethod) *sales.Sale {
	t.Helper()
	sale, err := sales.NewSale(&tripID, "customer", []sales.SaleItem{{
		ProductID: uuid.New(),
		Quantity:  1,
		UnitPrice: decimal.NewFromInt(total),
	}}, method, "agent-1")
	require.NoError(t, err)
	require.NoError(t, sale.Complete())
	return sale
}

func expenseOf(t *testing.T, tripID uuid.UUID, reason ExpenseReason, amount int64, method ExpensePayment) *Expense {
	t.Helper()
	e, err := NewExpense(tripID, reason, decimal.NewFromInt(amount), method, "", "agent-1")
	require.NoError(t, err)
	return e
}

func eq(t *testing.T, expected string, actual decimal.Decimal, label string) {
	t.Helper()
	want, err := decimal.NewFromString(expected)
	require.NoError(t, err)
	assert.True(t, actual.Equal(want), "%s: want %s, got %s", label, expected, actual)
}

func TestComputeSettlement(t *testing.T) {
	t.Run("commission variance and final amount", func(t *testing.T) {
		tr := endedTrip(t, 820)
		tripID := tr.ID

		tripSales := []*sales.Sale{saleOf(t, tripID, 1000, sales.PaymentCash)}
		expenses := []*Expense{
			expenseOf(t, tripID, ExpenseFuel, 100, ExpensePaidCash),  // company
			expenseOf(t, tripID, ExpenseMeals, 50, ExpensePaidCash), // personal
		}

		s := ComputeSettlement(tr, nil, tripSales, expenses, decimal.NewFromInt(10))

		eq(t, "1000", s.GrossSales, "gross sales")
		eq(t, "100", s.CompanyExpenses, "company expenses")
		eq(t, "50", s.PersonalExpenses, "personal expenses")
		eq(t, "100", s.CommissionEarned, "commission earned")
		eq(t, "50", s.CommissionAfterPersonalExpenses, "commission after personal")
		eq(t, "850", s.ExpectedDailySubmission, "expected submission")
		eq(t, "820", s.ActualMoneyCollected, "actual collected")
		eq(t, "-30", s.DailyVariance, "daily variance")
		eq(t, "20", s.FinalDistributorAmount, "final distributor amount")
		eq(t, "850", s.PhysicalCashBalance, "physical cash")
		eq(t, "0", s.PhysicalMpesaBalance, "physical mpesa")
		eq(t, "850", s.TotalPhysicalMoney, "total physical money")
		eq(t, "150", s.TotalExpenses, "total expenses")
		eq(t, "100", s.PendingCompanyExpenses, "pending company expenses")
		eq(t, "50", s.PendingPersonalExpenses, "pending personal expenses")
	})

	t.Run("payment breakdown groups mobile money", func(t *testing.T) {
		tr := endedTrip(t, 0)
		tripID := tr.ID

		tripSales := []*sales.Sale{
			saleOf(t, tripID, 300, sales.PaymentCash),
			saleOf(t, tripID, 200, sales.PaymentMpesaDeposit),
			saleOf(t, tripID, 150, sales.PaymentTillNumber),
			saleOf(t, tripID, 50, sales.PaymentSendMoney),
		}

		s := ComputeSettlement(tr, nil, tripSales, nil, decimal.Zero)

		eq(t, "700", s.GrossSales, "gross sales")
		eq(t, "300", s.Payments.Cash, "cash")
		eq(t, "200", s.Payments.MpesaDeposit, "mpesa deposit")
		eq(t, "150", s.Payments.TillNumber, "till number")
		eq(t, "50", s.Payments.SendMoney, "send money")
		eq(t, "400", s.Payments.MobileTotal(), "mobile total")
		eq(t, "400", s.PhysicalMpesaBalance, "physical mpesa")
	})

	t.Run("unsold returns reduce net sales and stock values flow through", func(t *testing.T) {
		tr := endedTrip(t, 0)
		tripID := tr.ID
		expiry := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)

		snapshot := catalog.ProductSnapshot{
			ProductID:       uuid.New(),
			Name:            "Yogurt 150ml",
			UnitPrice:       decimal.NewFromInt(240),
			PiecesPerPacket: 12,
			ShelfLifeDays:   14,
		}
		alloc, err := trip.NewAllocation(tripID, snapshot, 50, expiry, "manager")
		require.NoError(t, err)
		unsold, err := sales.NewReturnRecord(&tripID, snapshot.ProductID, snapshot.Name, 5, sales.ReturnUnsold, decimal.NewFromInt(20), &expiry, "", "agent-1")
		require.NoError(t, err)

		tripSales := []*sales.Sale{saleOf(t, tripID, 500, sales.PaymentCash)}
		positions := trip.BuildPositions([]*trip.Allocation{alloc}, tripSales, []*sales.ReturnRecord{unsold})

		s := ComputeSettlement(tr, positions, tripSales, nil, decimal.Zero)

		eq(t, "100", s.UnsoldReturnsValue, "unsold returns value")
		eq(t, "400", s.NetSales, "net sales")
		eq(t, "1000", s.InitialStockValue, "initial stock value")
		assert.Equal(t, 50, s.StockSoldPercentage)

		assert.Equal(t, 50, s.TotalAllocated)
		assert.Equal(t, 0, s.TotalSold)
		assert.Equal(t, 5, s.TotalReturned)
		assert.Equal(t, 55, s.RemainingStock)
	})

	t.Run("replacement returns value tracked apart from unsold", func(t *testing.T) {
		tr := endedTrip(t, 0)
		tripID := tr.ID
		expiry := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)

		snapshot := catalog.ProductSnapshot{
			ProductID:       uuid.New(),
			Name:            "Yogurt 150ml",
			UnitPrice:       decimal.NewFromInt(240),
			PiecesPerPacket: 12,
			ShelfLifeDays:   14,
		}
		alloc, err := trip.NewAllocation(tripID, snapshot, 50, expiry, "manager")
		require.NoError(t, err)
		damaged, err := sales.NewReturnRecord(&tripID, snapshot.ProductID, snapshot.Name, 3, sales.ReturnDamaged, decimal.NewFromInt(20), &expiry, "", "agent-1")
		require.NoError(t, err)
		unsold, err := sales.NewReturnRecord(&tripID, snapshot.ProductID, snapshot.Name, 5, sales.ReturnUnsold, decimal.NewFromInt(20), &expiry, "", "agent-1")
		require.NoError(t, err)

		positions := trip.BuildPositions([]*trip.Allocation{alloc}, nil, []*sales.ReturnRecord{damaged, unsold})
		s := ComputeSettlement(tr, positions, nil, nil, decimal.Zero)

		eq(t, "60", s.ReturnsValue, "replacement returns value")
		eq(t, "100", s.UnsoldReturnsValue, "unsold returns value")
		assert.Equal(t, 8, s.TotalReturned)
		assert.Equal(t, 52, s.RemainingStock)
	})

	t.Run("zero initial stock guards the percentage", func(t *testing.T) {
		tr := endedTrip(t, 0)
		s := ComputeSettlement(tr, nil, []*sales.Sale{saleOf(t, tr.ID, 100, sales.PaymentCash)}, nil, decimal.Zero)
		assert.Equal(t, 0, s.StockSoldPercentage)
	})

	t.Run("rejected expenses are excluded", func(t *testing.T) {
		tr := endedTrip(t, 0)
		rejected := expenseOf(t, tr.ID, ExpenseFuel, 500, ExpensePaidCash)
		require.NoError(t, rejected.Reject())
		approved := expenseOf(t, tr.ID, ExpenseFuel, 80, ExpensePaidMpesa)
		require.NoError(t, approved.Approve())

		s := ComputeSettlement(tr, nil, nil, []*Expense{rejected, approved}, decimal.Zero)

		eq(t, "80", s.CompanyExpenses, "company expenses")
		eq(t, "0", s.CashExpenses, "cash expenses")
		eq(t, "80", s.MpesaExpenses, "mpesa expenses")
		eq(t, "-80", s.PhysicalMpesaBalance, "physical mpesa")
	})

	t.Run("explicit expense type overrides the reason mapping", func(t *testing.T) {
		tr := endedTrip(t, 0)
		e := expenseOf(t, tr.ID, ExpenseOther, 40, ExpensePaidCash)
		e.Type = ExpenseTypePersonal

		s := ComputeSettlement(tr, nil, nil, []*Expense{e}, decimal.Zero)

		eq(t, "40", s.PersonalExpenses, "personal expenses")
		eq(t, "0", s.CompanyExpenses, "company expenses")
	})

	t.Run("money rounds to two decimal places", func(t *testing.T) {
		tr := endedTrip(t, 0)
		sale, err := sales.NewSale(&tr.ID, "customer", []sales.SaleItem{{
			ProductID: uuid.New(),
			Quantity:  3,
			UnitPrice: decimal.RequireFromString("33.333"),
		}}, sales.PaymentCash, "agent-1")
		require.NoError(t, err)
		require.NoError(t, sale.Complete())

		s := ComputeSettlement(tr, nil, []*sales.Sale{sale}, nil, decimal.NewFromInt(10))

		eq(t, "100", s.GrossSales, "gross sales rounded")
		eq(t, "10", s.CommissionEarned, "commission rounded")
	})
}

func TestExpenseEffectiveType(t *testing.T) {
	tripID := uuid.New()
	cases := map[ExpenseReason]ExpenseType{
		ExpenseFuel:        ExpenseTypeCompany,
		ExpenseMaintenance: ExpenseTypeCompany,
		ExpenseStationery:  ExpenseTypeCompany,
		ExpenseMeals:       ExpenseTypePersonal,
		ExpenseOther:       ExpenseTypeCompany,
	}
	for reason, want := range cases {
		e, err := NewExpense(tripID, reason, decimal.NewFromInt(10), ExpensePaidCash, "", "agent-1")
		require.NoError(t, err)
		assert.Equal(t, want, e.EffectiveType(), string(reason))
	}
}

func TestExpenseApproval(t *testing.T) {
	tripID := uuid.New()

	e, err := NewExpense(tripID, ExpenseFuel, decimal.NewFromInt(10), ExpensePaidCash, "", "agent-1")
	require.NoError(t, err)
	require.NoError(t, e.Approve())
	assert.Error(t, e.Reject())

	e2, err := NewExpense(tripID, ExpenseFuel, decimal.NewFromInt(10), ExpensePaidCash, "", "agent-1")
	require.NoError(t, err)
	require.NoError(t, e2.Reject())
	assert.False(t, e2.CountsTowardSettlement())
}
