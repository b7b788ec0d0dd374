package handler

import (
	"errors"
	"net/http"

	"github.com/fundvault/fundvault/backend/go-services/internal/pool/repository"
	"github.com/fundvault/fundvault/backend/go-services/internal/pool/service"
	"github.com/fundvault/fundvault/backend/go-services/internal/reports"
	"github.com/fundvault/fundvault/backend/go-services/pkg/logger"
	"github.com/fundvault/fundvault/backend/go-services/pkg/metrics"
	"github.com/gin-gonic/gin"
)

// Handler exposes the pool ledger operations over HTTP. exporter may be nil
// when no object storage is configured; the export route then reports 503.
type Handler struct {
	svc      *service.Service
	exporter *reports.Exporter
}

func New(svc *service.Service, exporter *reports.Exporter) *Handler {
	return &Handler{svc: svc, exporter: exporter}
}

// Register mounts the routes. requireAdmin guards the mutating operations;
// pool creation, listing and the derived read views stay open.
func (h *Handler) Register(r *gin.Engine, requireAdmin gin.HandlerFunc) {
	g := r.Group("/pools")
	g.GET("", h.ListPools)
	g.POST("/create", h.CreatePool)
	g.POST("/add-person", requireAdmin, h.AddInvestor)
	g.POST("/admin/add-shares", requireAdmin, h.AddAdminShares)
	g.POST("/admin/buyout", requireAdmin, h.Buyout)
	g.GET("/:id/summary", h.Summary)
	g.POST("/:id/calculate-profit", h.CalculateProfit)
	g.GET("/:id/investors", h.ListInvestors)
	g.POST("/:id/export", requireAdmin, h.ExportStatement)
}

type createPoolRequest struct {
	Name        string   `json:"name" binding:"required"`
	TotalAmount *float64 `json:"totalAmount" binding:"required"`
	AdminShare  float64  `json:"adminShare"`
}

type addPersonRequest struct {
	PoolID       string   `json:"poolId" binding:"required"`
	PersonName   string   `json:"personName" binding:"required"`
	Amount       *float64 `json:"amount" binding:"required"`
	MobileNumber string   `json:"mobileNumber"`
	Password     string   `json:"password" binding:"required"`
}

type addSharesRequest struct {
	PoolID      string   `json:"poolId" binding:"required"`
	ExtraAmount *float64 `json:"extraAmount" binding:"required"`
}

type buyoutRequest struct {
	PoolID       string   `json:"poolId" binding:"required"`
	PersonID     string   `json:"personId" binding:"required"`
	BuyoutAmount *float64 `json:"buyoutAmount" binding:"required"`
}

type calculateProfitRequest struct {
	ProfitAmount *float64 `json:"profitAmount" binding:"required"`
}

func (h *Handler) ListPools(c *gin.Context) {
	pools, err := h.svc.ListPools(c.Request.Context())
	if err != nil {
		respondError(c, "list_pools", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "pools": pools})
}

func (h *Handler) CreatePool(c *gin.Context) {
	var req createPoolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "`name` and `totalAmount` are required")
		return
	}
	id, err := h.svc.CreatePool(c.Request.Context(), req.Name, *req.TotalAmount, req.AdminShare)
	if err != nil {
		respondError(c, "create_pool", err)
		return
	}
	metrics.LedgerOperations.WithLabelValues("create_pool", "ok").Inc()
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Pool created successfully.", "poolId": id})
}

func (h *Handler) AddInvestor(c *gin.Context) {
	var req addPersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "`poolId`, `personName`, `amount` and `password` are required")
		return
	}
	id, err := h.svc.AddInvestor(c.Request.Context(), service.AddInvestorParams{
		PoolID:   req.PoolID,
		Name:     req.PersonName,
		Amount:   *req.Amount,
		Mobile:   req.MobileNumber,
		Password: req.Password,
	})
	if err != nil {
		respondError(c, "add_investor", err)
		return
	}
	metrics.LedgerOperations.WithLabelValues("add_investor", "ok").Inc()
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Person added to pool successfully.", "personId": id})
}

func (h *Handler) AddAdminShares(c *gin.Context) {
	var req addSharesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "`poolId` and `extraAmount` are required")
		return
	}
	if err := h.svc.AddAdminShares(c.Request.Context(), req.PoolID, *req.ExtraAmount); err != nil {
		respondError(c, "add_admin_shares", err)
		return
	}
	metrics.LedgerOperations.WithLabelValues("add_admin_shares", "ok").Inc()
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Admin share updated successfully."})
}

func (h *Handler) Buyout(c *gin.Context) {
	var req buyoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "`poolId`, `personId` and `buyoutAmount` are required")
		return
	}
	txID, err := h.svc.Buyout(c.Request.Context(), service.BuyoutParams{
		PoolID:     req.PoolID,
		InvestorID: req.PersonID,
		Amount:     *req.BuyoutAmount,
	})
	if err != nil {
		respondError(c, "buyout", err)
		return
	}
	metrics.LedgerOperations.WithLabelValues("buyout", "ok").Inc()
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Buyout successful.", "transactionId": txID})
}

func (h *Handler) Summary(c *gin.Context) {
	sum, err := h.svc.Summarize(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "summary", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "summary": sum})
}

func (h *Handler) CalculateProfit(c *gin.Context) {
	var req calculateProfitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "`profitAmount` is required")
		return
	}
	dist, err := h.svc.ProfitDistribution(c.Request.Context(), c.Param("id"), *req.ProfitAmount)
	if err != nil {
		respondError(c, "calculate_profit", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "distribution": dist})
}

func (h *Handler) ListInvestors(c *gin.Context) {
	investors, err := h.svc.ListInvestors(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "list_investors", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": investors})
}

func (h *Handler) ExportStatement(c *gin.Context) {
	if h.exporter == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "error": "statement export is not configured"})
		return
	}
	sum, err := h.svc.Summarize(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "export_statement", err)
		return
	}
	st, err := h.exporter.ExportSummary(c.Request.Context(), c.Param("id"), sum)
	if err != nil {
		respondError(c, "export_statement", err)
		return
	}
	metrics.LedgerOperations.WithLabelValues("export_statement", "ok").Inc()
	c.JSON(http.StatusOK, gin.H{"success": true, "statement": st})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": msg})
}

// respondError maps service errors onto the JSON error envelope.
func respondError(c *gin.Context, op string, err error) {
	metrics.LedgerOperations.WithLabelValues(op, "error").Inc()

	var ve *service.ValidationError
	var ce *service.CapacityExceededError
	var ae *service.InvalidAmountError
	switch {
	case errors.As(err, &ve), errors.As(err, &ce), errors.As(err, &ae),
		errors.Is(err, service.ErrZeroInvestment):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "not found"})
	default:
		logger.Errorf("%s: %v", op, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "internal server error"})
	}
}
