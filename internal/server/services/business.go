package services

import (
	"context"
	"fmt"

	"github.com/legalchicks/lcen-portal/internal/common"
	"github.com/legalchicks/lcen-portal/internal/server/models"
	"github.com/legalchicks/lcen-portal/internal/server/repositories/business"
)

// NewExpense is the input of AddExpense. Amount is nil when not supplied.
type NewExpense struct {
	Category    string
	Description string
	Amount      *float64
}

// monthlyFigures is the fixed half-year chart shown on the business page.
var monthlyFigures = []models.MonthlyFigures{
	{Month: "Jan", Revenue: 75000, Expenses: 50000},
	{Month: "Feb", Revenue: 82000, Expenses: 55000},
	{Month: "Mar", Revenue: 95000, Expenses: 60000},
	{Month: "Apr", Revenue: 88000, Expenses: 58000},
	{Month: "May", Revenue: 105000, Expenses: 62000},
	{Month: "Jun", Revenue: 112000, Expenses: 68000},
}

type BusinessService struct {
	repo business.Repository
}

func NewBusinessService(repo business.Repository) *BusinessService {
	return &BusinessService{repo: repo}
}

func (s *BusinessService) Invoices(ctx context.Context) ([]models.Invoice, error) {
	inv, err := s.repo.Invoices(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: invoices: %v", common.ErrorInternal, err)
	}
	return inv, nil
}

// Expenses lists expenses newest first.
func (s *BusinessService) Expenses(ctx context.Context) ([]models.Expense, error) {
	exp, err := s.repo.Expenses(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: expenses: %v", common.ErrorInternal, err)
	}
	return exp, nil
}

func (s *BusinessService) AddExpense(ctx context.Context, in NewExpense) (*models.Expense, error) {
	if in.Category == "" || in.Description == "" || in.Amount == nil {
		return nil, common.ErrMissingFields
	}
	e, err := s.repo.AddExpense(ctx, models.Expense{
		Category:    in.Category,
		Description: in.Description,
		Amount:      *in.Amount,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: add expense: %v", common.ErrorInternal, err)
	}
	return &e, nil
}

// Profitability sums paid invoices against all expenses.
func (s *BusinessService) Profitability(ctx context.Context) (*models.Profitability, error) {
	inv, err := s.Invoices(ctx)
	if err != nil {
		return nil, err
	}
	exp, err := s.Expenses(ctx)
	if err != nil {
		return nil, err
	}

	var revenue, expenses float64
	for _, i := range inv {
		if i.Status == models.InvoicePaid {
			revenue += i.Amount
		}
	}
	for _, e := range exp {
		expenses += e.Amount
	}

	return &models.Profitability{
		TotalRevenue:      revenue,
		TotalExpenses:     expenses,
		NetProfit:         revenue - expenses,
		RevenueVsExpenses: append([]models.MonthlyFigures(nil), monthlyFigures...),
	}, nil
}
