package credits

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"workspace/internal/middleware"
	"workspace/internal/pkg/response"
)

type Handler struct {
	ledger *Ledger
}

func NewHandler(ledger *Ledger) *Handler {
	return &Handler{ledger: ledger}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/credits/balance", h.Balance)
	rg.GET("/credits/transactions", h.Transactions)
}

func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.POST("/credits/:id", h.Assign)
}

// Balance reports the balance of whichever account the caller draws from:
// the personal balance for individual users, the shared pool for
// organization members.
func (h *Handler) Balance(c *gin.Context) {
	sub, ok := middleware.Subject(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	ref := ResolveAccount(sub)
	balance, err := h.ledger.Balance(c.Request.Context(), ref)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			response.Error(c, http.StatusNotFound, "ACCOUNT_NOT_FOUND", "Credit account not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to read balance")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"account_kind": string(ref.Kind),
		"account_id":   ref.ID,
		"balance":      balance,
	})
}

func (h *Handler) Transactions(c *gin.Context) {
	sub, ok := middleware.Subject(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	txns, err := h.ledger.ListTransactions(c.Request.Context(), ResolveAccount(sub))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list transactions")
		return
	}
	response.Success(c, http.StatusOK, txns)
}

type assignRequest struct {
	CreditsToAssign int64 `json:"credits_to_assign" binding:"required,gt=0"`
}

// Assign grants credits to a user or organization by id. The id is tried as
// a user first, then as an organization.
func (h *Handler) Assign(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "id must be a positive integer")
		return
	}

	var req assignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "credits_to_assign must be a positive integer")
		return
	}

	ref, balance, err := h.ledger.Assign(c.Request.Context(), id, req.CreditsToAssign)
	if err != nil {
		switch {
		case errors.Is(err, ErrAccountNotFound):
			response.Error(c, http.StatusNotFound, "ACCOUNT_NOT_FOUND", "No user or organization with this id")
		case errors.Is(err, ErrInvalidAmount):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "credits_to_assign must be a positive integer")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to assign credits")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"account_kind": string(ref.Kind),
		"account_id":   ref.ID,
		"balance":      balance,
	})
}
