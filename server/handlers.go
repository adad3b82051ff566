package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/zacgt/cgt"
	"github.com/zacgt/cgt/date"
)

// minTransactionsLength rejects bodies too short to hold a header and a line.
const minTransactionsLength = 10

// Bounds of the taxYear field of a request.
const (
	minTaxYear = 2000
	maxTaxYear = 2100
)

// request is the body of every POST endpoint.
type request struct {
	Transactions string `json:"transactions"`
	TaxYear      *int   `json:"taxYear,omitempty"`
}

// envelope is the body of every response.
type envelope struct {
	Success  bool                `json:"success"`
	Message  string              `json:"message,omitempty"`
	Data     any                 `json:"data,omitempty"`
	Metadata any                 `json:"metadata,omitempty"`
	Error    string              `json:"error,omitempty"`
	Errors   map[string][]string `json:"errors,omitempty"`
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message, detail string) {
	writeJSON(w, status, envelope{Success: false, Message: message, Error: detail})
}

// errorStatus maps an engine error to an HTTP status: bad input is the
// client's fault, anything else is ours.
func errorStatus(err error) int {
	var (
		parseErr        *cgt.ParseError
		derivationErr   *cgt.DerivationError
		insufficientErr *cgt.InsufficientBalanceError
		maxBytesErr     *http.MaxBytesError
	)
	switch {
	case errors.As(err, &maxBytesErr):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, cgt.ErrUnknownTaxYear):
		return http.StatusNotFound
	case errors.As(err, &parseErr), errors.As(err, &derivationErr), errors.As(err, &insufficientErr):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// decodeRequest reads and validates the body. It writes the error response
// and returns false when the request is unusable.
func (s *Server) decodeRequest(w http.ResponseWriter, r *http.Request, needTaxYear bool) (request, bool) {
	var req request
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(&req); err != nil {
		if status := errorStatus(err); status == http.StatusRequestEntityTooLarge {
			writeError(w, status, "Request too large", err.Error())
			return req, false
		}
		writeError(w, http.StatusBadRequest, "Invalid JSON body", err.Error())
		return req, false
	}

	problems := make(map[string][]string)
	switch {
	case strings.TrimSpace(req.Transactions) == "":
		problems["transactions"] = append(problems["transactions"], "The transactions field is required.")
	case len(req.Transactions) < minTransactionsLength:
		problems["transactions"] = append(problems["transactions"],
			fmt.Sprintf("The transactions field must be at least %d characters.", minTransactionsLength))
	}
	if needTaxYear {
		switch {
		case req.TaxYear == nil:
			problems["taxYear"] = append(problems["taxYear"], "The tax year field is required.")
		case *req.TaxYear < minTaxYear || *req.TaxYear > maxTaxYear:
			problems["taxYear"] = append(problems["taxYear"],
				fmt.Sprintf("The tax year field must be between %d and %d.", minTaxYear, maxTaxYear))
		}
	}
	if len(problems) > 0 {
		writeJSON(w, http.StatusUnprocessableEntity, envelope{Success: false, Message: "Validation failed", Errors: problems})
		return req, false
	}
	return req, true
}

// compute replays the ledger of req, writing the error response on failure.
func (s *Server) compute(w http.ResponseWriter, req request, failure string) (*computation, bool) {
	start := time.Now()
	comp, err := s.cache.compute(req.Transactions)
	if err != nil {
		s.logger.Info().
			Err(err).
			Str("correlation_id", w.Header().Get(correlationHeader)).
			Msg(failure)
		writeError(w, errorStatus(err), failure, err.Error())
		return nil, false
	}
	s.logger.Debug().
		Int("transactions", len(comp.transactions)).
		Int("disposals", len(comp.result.DisposalEvents)).
		Dur("duration", time.Since(start)).
		Str("correlation_id", w.Header().Get(correlationHeader)).
		Msg("Ledger computed")
	return comp, true
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Crypto Tax Calculator API is running",
		"version": Version,
		"endpoints": map[string]string{
			"POST /api/crypto-tax/calculate": "Calculate full tax report",
			"POST /api/crypto-tax/balances":  "Get current balances only",
			"POST /api/crypto-tax/tax-year":  "Get specific tax year summary",
			"POST /api/crypto-tax/validate":  "Validate transactions without calculating",
			"GET /api/crypto-tax/health":     "Health check",
		},
	})
}

func (s *Server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeRequest(w, r, false)
	if !ok {
		return
	}
	comp, ok := s.compute(w, req, "Failed to calculate crypto taxes")
	if !ok {
		return
	}

	res := comp.result
	writeJSON(w, http.StatusOK, envelope{
		Success: true,
		Message: "Tax calculations completed successfully",
		Data: map[string]any{
			"transactions":          cgt.IndexTransactions(comp.transactions),
			"balances":              res.Balances,
			"disposalEvents":        nonNil(res.DisposalEvents),
			"taxYearSummaries":      res.TaxYearSummaries,
			"yearBoundarySnapshots": res.YearBoundarySnapshots,
		},
		Metadata: res.Metadata(len(comp.transactions)),
	})
}

func (s *Server) handleBalances(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeRequest(w, r, false)
	if !ok {
		return
	}
	comp, ok := s.compute(w, req, "Failed to get balances")
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, envelope{
		Success: true,
		Data:    map[string]any{"balances": comp.result.Balances},
	})
}

func (s *Server) handleTaxYear(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeRequest(w, r, true)
	if !ok {
		return
	}
	comp, ok := s.compute(w, req, "Failed to get tax year summary")
	if !ok {
		return
	}

	year := date.TaxYear(*req.TaxYear)
	report, err := comp.result.ForTaxYear(year)
	if err != nil {
		writeJSON(w, errorStatus(err), map[string]any{
			"success":           false,
			"message":           fmt.Sprintf("No data found for tax year %d", year),
			"availableTaxYears": comp.result.TaxYears(),
		})
		return
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: report})
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeRequest(w, r, false)
	if !ok {
		return
	}
	transactions, err := cgt.Parse(req.Transactions)
	if err != nil {
		writeError(w, errorStatus(err), "Transaction validation failed", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, envelope{
		Success: true,
		Message: "Transactions are valid",
		Data:    cgt.Validate(transactions),
	})
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
