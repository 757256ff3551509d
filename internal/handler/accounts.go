package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gracebooks/api/internal/domain"
	"github.com/gracebooks/api/internal/repository"
)

// Machine-readable error codes carried next to the human-readable message.
const (
	codeNotFound      = "NOT_FOUND"
	codeDuplicateCode = "DUPLICATE_CODE"
	codeValidation    = "VALIDATION_ERROR"
	codeDatabase      = "DATABASE_ERROR"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

type accountResponse struct {
	ID           uuid.UUID `json:"id"`
	Code         string    `json:"code"`
	Name         string    `json:"name"`
	AccountType  string    `json:"account_type"`
	Category     string    `json:"category"`
	Description  *string   `json:"description"`
	IsActive     bool      `json:"is_active"`
	DisplayOrder int32     `json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func toAccountResponse(a domain.Account) accountResponse {
	return accountResponse{
		ID:           a.ID,
		Code:         a.Code,
		Name:         a.Name,
		AccountType:  string(a.Type),
		Category:     string(a.Category),
		Description:  a.Description,
		IsActive:     a.IsActive,
		DisplayOrder: a.DisplayOrder,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("ERROR: failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, errorResponse{Error: msg, Code: code})
}

// writeRepoError maps a repository failure onto the wire contract. Unexpected
// failures are logged with the operation and answered with a generic body so
// driver detail never reaches clients.
func writeRepoError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, codeNotFound, err.Error())
	case errors.Is(err, repository.ErrDuplicateCode):
		writeError(w, http.StatusConflict, codeDuplicateCode, err.Error())
	case errors.Is(err, repository.ErrInvalidData):
		writeError(w, http.StatusBadRequest, codeValidation, err.Error())
	default:
		log.Printf("ERROR: %s: %v", op, err)
		writeError(w, http.StatusInternalServerError, codeDatabase, "internal server error")
	}
}

// AccountHandler serves the chart of accounts over any AccountRepository.
type AccountHandler struct {
	repo repository.AccountRepository
}

func NewAccountHandler(repo repository.AccountRepository) *AccountHandler {
	return &AccountHandler{repo: repo}
}

func (h *AccountHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
}

func (h *AccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeValidation, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, codeValidation, err.Error())
		return
	}

	account, err := h.repo.Create(r.Context(), req)
	if err != nil {
		writeRepoError(w, "create account", err)
		return
	}

	writeJSON(w, http.StatusCreated, toAccountResponse(*account))
}

func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	var (
		accounts []domain.Account
		err      error
	)
	if raw := r.URL.Query().Get("account_type"); raw != "" {
		accountType, parseErr := domain.ParseAccountType(raw)
		if parseErr != nil {
			writeError(w, http.StatusBadRequest, codeValidation, parseErr.Error())
			return
		}
		accounts, err = h.repo.FindByType(r.Context(), accountType)
	} else {
		accounts, err = h.repo.FindAll(r.Context())
	}
	if err != nil {
		writeRepoError(w, "list accounts", err)
		return
	}

	responses := make([]accountResponse, len(accounts))
	for i, a := range accounts {
		responses[i] = toAccountResponse(a)
	}
	writeJSON(w, http.StatusOK, responses)
}

func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidation, "invalid account ID")
		return
	}

	account, err := h.repo.FindByID(r.Context(), id)
	if err != nil {
		writeRepoError(w, "get account", err)
		return
	}
	if account == nil {
		writeRepoError(w, "get account", fmt.Errorf("%w: %s", repository.ErrNotFound, id))
		return
	}

	writeJSON(w, http.StatusOK, toAccountResponse(*account))
}

func (h *AccountHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidation, "invalid account ID")
		return
	}

	var req domain.UpdateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeValidation, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, codeValidation, err.Error())
		return
	}

	account, err := h.repo.Update(r.Context(), id, req)
	if err != nil {
		writeRepoError(w, "update account", err)
		return
	}

	writeJSON(w, http.StatusOK, toAccountResponse(*account))
}

func (h *AccountHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidation, "invalid account ID")
		return
	}

	if err := h.repo.SoftDelete(r.Context(), id); err != nil {
		writeRepoError(w, "delete account", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
