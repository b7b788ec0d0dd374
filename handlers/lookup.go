package handlers

import (
	"errors"
	"net/http"

	"github.com/fundvault/fundvault/backend/go-services/internal/pool/service"
	"github.com/fundvault/fundvault/backend/go-services/pkg/logger"
	"github.com/gin-gonic/gin"
)

// LookupHandler serves the investor self-service lookup page
type LookupHandler struct {
	svc *service.Service
}

func NewLookupHandler(svc *service.Service) *LookupHandler {
	return &LookupHandler{svc: svc}
}

func (h *LookupHandler) Register(r gin.IRouter) {
	r.GET("/lookup", h.ShowForm)
	r.POST("/lookup", h.Submit)
}

// ShowForm renders the empty lookup form
func (h *LookupHandler) ShowForm(c *gin.Context) {
	c.HTML(http.StatusOK, "lookup-form.html", gin.H{"Name": ""})
}

// Submit verifies the investor credentials and renders their holdings with
// buyout history. Failures always show the same generic message.
func (h *LookupHandler) Submit(c *gin.Context) {
	name := c.PostForm("personName")
	password := c.PostForm("password")

	inv, history, err := h.svc.LookupInvestor(c.Request.Context(), name, password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.HTML(http.StatusUnauthorized, "lookup-form.html", gin.H{
				"Error": "Invalid name or password.",
				"Name":  name,
			})
			return
		}
		logger.Errorf("investor lookup failed: %v", err)
		c.HTML(http.StatusInternalServerError, "lookup-form.html", gin.H{
			"Error": "Something went wrong, please try again.",
			"Name":  name,
		})
		return
	}

	c.HTML(http.StatusOK, "investor-details.html", gin.H{
		"Investor":   inv,
		"Buyouts":    history,
		"HasBuyouts": len(history) > 0,
	})
}
