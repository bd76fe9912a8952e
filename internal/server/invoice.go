package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	invoicedomain "github.com/invoicely/invoicely/internal/invoice/domain"
	"github.com/invoicely/invoicely/internal/invoice/totals"
	"github.com/invoicely/invoicely/internal/ratelimit"
	"go.uber.org/zap"
)

// HeaderEditToken carries the secret bearer credential for mutations.
const HeaderEditToken = "X-Edit-Token"

type createInvoiceResponse struct {
	PublicID  string        `json:"publicId"`
	EditToken string        `json:"editToken"`
	Totals    totals.Totals `json:"totals"`
	Message   string        `json:"message"`
}

type updateInvoiceResponse struct {
	Message string         `json:"message"`
	Totals  *totals.Totals `json:"totals,omitempty"`
}

func (s *Server) CreateInvoice(c *gin.Context) {
	if !s.admit(c, s.admission.Create, "create") {
		return
	}

	var req invoicedomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invoicedomain.NewValidationError("body", "invalid_json", "request body must be valid JSON"))
		return
	}

	resp, err := s.invoiceSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, createInvoiceResponse{
		PublicID:  resp.PublicID,
		EditToken: resp.EditToken,
		Totals:    resp.Totals,
		Message:   "Invoice created successfully. Please save your edit token to make changes later.",
	})
}

func (s *Server) GetInvoice(c *gin.Context) {
	view, err := s.invoiceSvc.Get(c.Request.Context(), c.Param("publicId"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

func (s *Server) UpdateInvoice(c *gin.Context) {
	if !s.admit(c, s.admission.Mutate, "mutate") {
		return
	}

	var req invoicedomain.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invoicedomain.NewValidationError("body", "invalid_json", "request body must be valid JSON"))
		return
	}

	recomputed, err := s.invoiceSvc.Update(
		c.Request.Context(),
		c.Param("publicId"),
		strings.TrimSpace(c.GetHeader(HeaderEditToken)),
		req,
	)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, updateInvoiceResponse{
		Message: "Invoice updated successfully",
		Totals:  recomputed,
	})
}

func (s *Server) DeleteInvoice(c *gin.Context) {
	if !s.admit(c, s.admission.Mutate, "mutate") {
		return
	}

	err := s.invoiceSvc.Delete(
		c.Request.Context(),
		c.Param("publicId"),
		strings.TrimSpace(c.GetHeader(HeaderEditToken)),
	)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Invoice deleted successfully"})
}

func (s *Server) GetInvoicePDF(c *gin.Context) {
	view, err := s.invoiceSvc.Get(c.Request.Context(), c.Param("publicId"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	doc, err := s.renderer.RenderInvoice(c.Request.Context(), view)
	if err != nil {
		s.log.Error("pdf rendering failed",
			zap.String("public_id", view.PublicID),
			zap.Error(err),
		)
		AbortWithError(c, err)
		return
	}

	disposition := "inline"
	if c.Query("download") == "1" {
		disposition = "attachment"
	}
	filename := fmt.Sprintf("invoice-%s.pdf", view.PublicID)
	c.Header("Content-Disposition", fmt.Sprintf("%s; filename=%q", disposition, filename))
	c.Data(http.StatusOK, "application/pdf", doc)
}

// admit consults admission control before any state-changing work. A denial
// short-circuits the operation with no side effects. A failing limiter
// backend admits the request.
func (s *Server) admit(c *gin.Context, limiter ratelimit.Limiter, endpoint string) bool {
	key := endpoint + ":" + c.ClientIP()
	allowed, err := limiter.Allow(c.Request.Context(), key)
	if err != nil {
		s.log.Warn("admission control check failed",
			zap.String("endpoint", endpoint),
			zap.Error(err),
		)
		return true
	}
	if !allowed {
		s.metrics.RateLimited.WithLabelValues(endpoint).Inc()
		AbortWithError(c, ErrRateLimited)
		return false
	}
	return true
}
