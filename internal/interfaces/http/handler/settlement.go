package handler

import (
	tripapp "github.com/fieldsales/backend/internal/application/trip"
	"github.com/fieldsales/backend/internal/domain/finance"
	"github.com/gin-gonic/gin"
)

// SettlementHandler handles trip settlement endpoints
type SettlementHandler struct {
	BaseHandler
	settlementService *tripapp.SettlementService
}

// NewSettlementHandler creates a new SettlementHandler
func NewSettlementHandler(settlementService *tripapp.SettlementService) *SettlementHandler {
	return &SettlementHandler{settlementService: settlementService}
}

// PaymentBreakdownResponse groups completed sales by payment method
type PaymentBreakdownResponse struct {
	Cash         string `json:"cash"`
	MpesaDeposit string `json:"mpesa_deposit"`
	TillNumber   string `json:"till_number"`
	SendMoney    string `json:"send_money"`
	MobileTotal  string `json:"mobile_total"`
}

// SettlementResponse is the full settlement summary for a trip
type SettlementResponse struct {
	TotalAllocated int `json:"total_allocated"`
	TotalSold      int `json:"total_sold"`
	TotalReturned  int `json:"total_returned"`
	RemainingStock int `json:"remaining_stock"`

	GrossSales          string `json:"gross_sales"`
	UnsoldReturnsValue  string `json:"unsold_returns_value"`
	ReturnsValue        string `json:"returns_value"`
	NetSales            string `json:"net_sales"`
	InitialStockValue   string `json:"initial_stock_value"`
	RemainingStockValue string `json:"remaining_stock_value"`
	StockSoldPercentage int    `json:"stock_sold_percentage"`

	Payments PaymentBreakdownResponse `json:"payments"`

	CompanyExpenses         string `json:"company_expenses"`
	PersonalExpenses        string `json:"personal_expenses"`
	PendingCompanyExpenses  string `json:"pending_company_expenses"`
	PendingPersonalExpenses string `json:"pending_personal_expenses"`
	TotalExpenses           string `json:"total_expenses"`
	CashExpenses            string `json:"cash_expenses"`
	MpesaExpenses           string `json:"mpesa_expenses"`

	CommissionRate                  string `json:"commission_rate"`
	CommissionEarned                string `json:"commission_earned"`
	CommissionAfterPersonalExpenses string `json:"commission_after_personal_expenses"`

	ExpectedDailySubmission string `json:"expected_daily_submission"`
	ActualMoneyCollected    string `json:"actual_money_collected"`
	DailyVariance           string `json:"daily_variance"`
	FinalDistributorAmount  string `json:"final_distributor_amount"`

	PhysicalCashBalance  string `json:"physical_cash_balance"`
	PhysicalMpesaBalance string `json:"physical_mpesa_balance"`
	TotalPhysicalMoney   string `json:"total_physical_money"`
}

func toSettlementResponse(s *finance.TripSettlement) SettlementResponse {
	return SettlementResponse{
		TotalAllocated:      s.TotalAllocated,
		TotalSold:           s.TotalSold,
		TotalReturned:       s.TotalReturned,
		RemainingStock:      s.RemainingStock,
		GrossSales:          s.GrossSales.String(),
		UnsoldReturnsValue:  s.UnsoldReturnsValue.String(),
		ReturnsValue:        s.ReturnsValue.String(),
		NetSales:            s.NetSales.String(),
		InitialStockValue:   s.InitialStockValue.String(),
		RemainingStockValue: s.RemainingStockValue.String(),
		StockSoldPercentage: s.StockSoldPercentage,
		Payments: PaymentBreakdownResponse{
			Cash:         s.Payments.Cash.String(),
			MpesaDeposit: s.Payments.MpesaDeposit.String(),
			TillNumber:   s.Payments.TillNumber.String(),
			SendMoney:    s.Payments.SendMoney.String(),
			MobileTotal:  s.Payments.MobileTotal().String(),
		},
		CompanyExpenses:                 s.CompanyExpenses.String(),
		PersonalExpenses:                s.PersonalExpenses.String(),
		PendingCompanyExpenses:          s.PendingCompanyExpenses.String(),
		PendingPersonalExpenses:         s.PendingPersonalExpenses.String(),
		TotalExpenses:                   s.TotalExpenses.String(),
		CashExpenses:                    s.CashExpenses.String(),
		MpesaExpenses:                   s.MpesaExpenses.String(),
		CommissionRate:                  s.CommissionRate.String(),
		CommissionEarned:                s.CommissionEarned.String(),
		CommissionAfterPersonalExpenses: s.CommissionAfterPersonalExpenses.String(),
		ExpectedDailySubmission:         s.ExpectedDailySubmission.String(),
		ActualMoneyCollected:            s.ActualMoneyCollected.String(),
		DailyVariance:                   s.DailyVariance.String(),
		FinalDistributorAmount:          s.FinalDistributorAmount.String(),
		PhysicalCashBalance:             s.PhysicalCashBalance.String(),
		PhysicalMpesaBalance:            s.PhysicalMpesaBalance.String(),
		TotalPhysicalMoney:              s.TotalPhysicalMoney.String(),
	}
}

// Summary handles GET /trips/:id/settlement
func (h *SettlementHandler) Summary(c *gin.Context) {
	tripID, ok := h.parseID(c)
	if !ok {
		return
	}
	settlement, err := h.settlementService.Summary(c.Request.Context(), tripID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toSettlementResponse(settlement))
}
