package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"workworth/internal/core"
	applog "workworth/internal/log"
)

type settingsRequest struct {
	Salary     decimal.Decimal `json:"salary"`
	DaysWorked decimal.Decimal `json:"daysWorked"`
}

type transactionRequest struct {
	Name     string          `json:"name"`
	Amount   decimal.Decimal `json:"amount"`
	LabelIDs []string        `json:"labelIds"`
}

type labelRequest struct {
	OldID string `json:"oldId"`
	Name  string `json:"name"`
	Color int32  `json:"color"`
}

type monthOffsetRequest struct {
	Offset int `json:"offset"`
}

type stateResponse struct {
	Salary           decimal.Decimal                `json:"salary"`
	DaysWorked       decimal.Decimal                `json:"daysWorked"`
	CurrentMonthYear string                         `json:"currentMonthYear"`
	Transactions     []core.Transaction             `json:"transactions"`
	Labels           []core.Label                   `json:"labels"`
	Summaries        map[string]core.MonthlySummary `json:"monthlySummaries"`
	Report           core.MonthReport               `json:"report"`
	CalendarDaysLeft int                            `json:"calendarDaysLeft"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}

	state, err := s.service.Snapshot(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Load snapshot failed", applog.FieldError, err)
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, stateResponse{
		Salary:           state.Salary,
		DaysWorked:       state.DaysWorked,
		CurrentMonthYear: state.CurrentMonthYear,
		Transactions:     state.Transactions,
		Labels:           state.Labels,
		Summaries:        state.Summaries,
		Report:           state.Report(),
		CalendarDaysLeft: core.CalendarDaysLeft(s.service.Now()),
	})
}

func (s *Server) handleSettings(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		profile, err := s.service.Profile(r.Context())
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, profile)
	case http.MethodPost:
		var req settingsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if err := s.service.UpdateSettings(r.Context(), req.Salary, req.DaysWorked); err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, nil)
	default:
		methodNotAllowed(w, "GET, POST")
	}
}

func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		month := strings.TrimSpace(r.URL.Query().Get("month"))
		txns, err := s.service.Transactions(r.Context(), month, parseFilter(r), parseSortOrder(r))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		if txns == nil {
			txns = []core.Transaction{}
		}
		writeJSON(w, http.StatusOK, txns)
	case http.MethodPost:
		var req transactionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		txn, err := s.service.AddTransaction(r.Context(), req.Name, req.Amount, req.LabelIDs)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, txn)
	default:
		methodNotAllowed(w, "GET, POST")
	}
}

func (s *Server) handleTransactionByID(w http.ResponseWriter, r *http.Request) {
	id := pathID(r, "/api/transactions/")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing transaction id")
		return
	}

	switch r.Method {
	case http.MethodPut:
		var req transactionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		txn, err := s.service.UpdateTransaction(r.Context(), id, req.Name, req.Amount, req.LabelIDs)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, txn)
	case http.MethodDelete:
		if err := s.service.DeleteTransaction(r.Context(), id); err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, nil)
	default:
		methodNotAllowed(w, "PUT, DELETE")
	}
}

func (s *Server) handleLabels(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		state, err := s.service.Snapshot(r.Context())
		if err != nil {
			writeDomainError(w, err)
			return
		}
		labels := state.Labels
		if labels == nil {
			labels = []core.Label{}
		}
		writeJSON(w, http.StatusOK, labels)
	case http.MethodPost:
		var req labelRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		label, err := s.service.AddOrUpdateLabel(r.Context(), req.OldID, req.Name, req.Color)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, label)
	default:
		methodNotAllowed(w, "GET, POST")
	}
}

func (s *Server) handleLabelByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		methodNotAllowed(w, "DELETE")
		return
	}
	id := pathID(r, "/api/labels/")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing label id")
		return
	}
	if err := s.service.DeleteLabel(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, nil)
}

func (s *Server) handleOverview(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}
	report, err := s.service.MonthOverview(r.Context(), strings.TrimSpace(r.URL.Query().Get("month")))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}
	groups, err := s.service.History(r.Context(), parseFilter(r), parseSortOrder(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, groups)
}

func (s *Server) handleDebugMonthOffset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, "POST")
		return
	}
	var req monthOffsetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.service.SetDebugMonthOffset(r.Context(), req.Offset); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, nil)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, "POST")
		return
	}
	if err := s.service.ResetAll(r.Context()); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, nil)
}
