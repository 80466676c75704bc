package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"gastos/internal/core"
	"gastos/internal/log"
	"gastos/internal/services"
)

type incomeRequest struct {
	Income json.RawMessage `json:"income"`
}

type addEntryRequest struct {
	Name string `json:"name"`
}

type setGroupRequest struct {
	Group *string `json:"group"`
}

type setAmountRequest struct {
	Value *string `json:"value"`
}

func (s *Server) handleGetBudget(w http.ResponseWriter, r *http.Request) {
	s.writeBudget(w)
}

func (s *Server) handleSetIncome(w http.ResponseWriter, r *http.Request) {
	var req incomeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		BadRequestError(err.Error()).Write(w)
		return
	}

	income, err := parseIncome(req.Income)
	if err != nil {
		UnprocessableEntityError("income must be a number").Write(w)
		return
	}

	s.store.SetIncome(r.Context(), income)
	s.requestLogger(r).InfoContext(r.Context(), "Income updated",
		log.FieldOperation, log.OpSetIncome,
		log.FieldIncome, income.String())
	s.writeBudget(w)
}

func (s *Server) handleAddEntry(w http.ResponseWriter, r *http.Request) {
	var req addEntryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		BadRequestError(err.Error()).Write(w)
		return
	}

	name := sanitizeInput(req.Name)
	added := true
	if err := s.store.AddEntry(r.Context(), name); err != nil {
		if !errors.Is(err, core.ErrDuplicateName) {
			s.writeEditError(w, r, err)
			return
		}
		added = false
	}

	s.requestLogger(r).InfoContext(r.Context(), "Add entry",
		log.FieldOperation, log.OpAddEntry,
		log.FieldEntryName, name,
		"added", added)

	NewJSONResponse().
		Body(addEntryView{Added: added, Budget: newBudgetView(s.store.Snapshot())}).
		Write(w)
}

func (s *Server) handleSetGroup(w http.ResponseWriter, r *http.Request) {
	idx, err := parseIndex(r)
	if err != nil {
		BadRequestError(err.Error()).Write(w)
		return
	}

	var req setGroupRequest
	if err := decodeJSON(w, r, &req); err != nil {
		BadRequestError(err.Error()).Write(w)
		return
	}
	if req.Group == nil {
		UnprocessableEntityError("group is required").Write(w)
		return
	}

	if err := s.store.SetEntryGroup(r.Context(), idx, core.Group(*req.Group)); err != nil {
		s.writeEditError(w, r, err)
		return
	}

	s.requestLogger(r).InfoContext(r.Context(), "Entry group updated",
		log.FieldOperation, log.OpSetGroup,
		log.FieldEntryIndex, idx,
		log.FieldGroup, *req.Group)
	s.writeBudget(w)
}

func (s *Server) handleSetAmount(w http.ResponseWriter, r *http.Request) {
	idx, err := parseIndex(r)
	if err != nil {
		BadRequestError(err.Error()).Write(w)
		return
	}

	field, err := core.ParseAmountField(r.PathValue("field"))
	if err != nil {
		NotFoundError("unknown entry field " + r.PathValue("field")).Write(w)
		return
	}

	var req setAmountRequest
	if err := decodeJSON(w, r, &req); err != nil {
		BadRequestError(err.Error()).Write(w)
		return
	}
	if req.Value == nil {
		UnprocessableEntityError("value is required").Write(w)
		return
	}

	if err := s.store.SetEntryAmount(r.Context(), idx, field, *req.Value); err != nil {
		s.writeEditError(w, r, err)
		return
	}

	s.requestLogger(r).InfoContext(r.Context(), "Entry amount updated",
		log.FieldOperation, log.OpSetAmount,
		log.FieldEntryIndex, idx,
		log.FieldAmountField, string(field))
	s.writeBudget(w)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	s.store.Reset(r.Context())
	s.writeBudget(w)
}

func handleGroups(w http.ResponseWriter, r *http.Request) {
	NewJSONResponse().Body(newGroupViews()).Write(w)
}

func (s *Server) writeBudget(w http.ResponseWriter) {
	NewJSONResponse().Body(newBudgetView(s.store.Snapshot())).Write(w)
}

// writeEditError maps a rejected store edit onto a response.
func (s *Server) writeEditError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, core.ErrIndexOutOfRange):
		NotFoundError("entry not found").Write(w)
	case services.IsUserError(err):
		UnprocessableEntityError(err.Error()).Write(w)
	default:
		log.LogError(r.Context(), s.requestLogger(r), "Budget edit failed", err, r.Pattern, nil)
		InternalServerError("internal error").Write(w)
	}
}

// requestLogger returns the request-scoped logger set by the trace middleware.
func (s *Server) requestLogger(r *http.Request) *log.Logger {
	if l, ok := log.LoggerFrom(r.Context()); ok {
		return l.WithComponent(log.ComponentHTTP)
	}
	return s.logger
}
