package rest

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/legalchicks/lcen-portal/internal/common"
	"github.com/legalchicks/lcen-portal/internal/server/services"
)

const (
	msgExpenseMissing   = "Please provide category, description, and amount"
	msgBadAmount        = "Amount must be a number"
	msgInvoicesErr      = "Server error fetching invoices"
	msgExpensesErr      = "Server error fetching expenses"
	msgAddExpenseErr    = "Server error adding expense"
	msgProfitabilityErr = "Server error fetching profitability data"
)

var errBadAmount = errors.New("amount is not a number")

// flexAmount accepts a JSON number or a numeric string. NaN and infinities
// are rejected.
type flexAmount struct {
	set   bool
	value float64
	err   error
}

func (a *flexAmount) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	a.set = true
	var n float64
	if err := json.Unmarshal(b, &n); err == nil {
		a.value = n
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		a.err = errBadAmount
		return nil
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		a.err = errBadAmount
		return nil
	}
	a.value = n
	return nil
}

type addExpenseRequest struct {
	Category    string     `json:"category"`
	Description string     `json:"description"`
	Amount      flexAmount `json:"amount"`
}

func (s *Server) handleInvoices(w http.ResponseWriter, r *http.Request) {
	inv, err := s.svc.Business.Invoices(r.Context())
	if err != nil {
		s.logger.Error(r.Context(), "invoices", "error", err)
		errorJSON(w, http.StatusInternalServerError, msgInvoicesErr)
		return
	}
	writeJSON(w, http.StatusOK, inv)
}

func (s *Server) handleExpenses(w http.ResponseWriter, r *http.Request) {
	exp, err := s.svc.Business.Expenses(r.Context())
	if err != nil {
		s.logger.Error(r.Context(), "expenses", "error", err)
		errorJSON(w, http.StatusInternalServerError, msgExpensesErr)
		return
	}
	writeJSON(w, http.StatusOK, exp)
}

func (s *Server) handleAddExpense(w http.ResponseWriter, r *http.Request) {
	var req addExpenseRequest
	if err := decodeJSON(w, r, &req); err != nil {
		errorJSON(w, http.StatusBadRequest, msgBadRequestBody)
		return
	}
	if req.Amount.err != nil {
		errorJSON(w, http.StatusBadRequest, msgBadAmount)
		return
	}

	in := services.NewExpense{Category: req.Category, Description: req.Description}
	if req.Amount.set {
		in.Amount = &req.Amount.value
	}

	e, err := s.svc.Business.AddExpense(r.Context(), in)
	if err != nil {
		if errors.Is(err, common.ErrMissingFields) {
			errorJSON(w, http.StatusBadRequest, msgExpenseMissing)
			return
		}
		s.logger.Error(r.Context(), "add expense", "error", err)
		errorJSON(w, http.StatusInternalServerError, msgAddExpenseErr)
		return
	}
	writeJSON(w, http.StatusCreated, e)
}

func (s *Server) handleProfitability(w http.ResponseWriter, r *http.Request) {
	p, err := s.svc.Business.Profitability(r.Context())
	if err != nil {
		s.logger.Error(r.Context(), "profitability", "error", err)
		errorJSON(w, http.StatusInternalServerError, msgProfitabilityErr)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.svc.Analytics.Snapshot())
}
