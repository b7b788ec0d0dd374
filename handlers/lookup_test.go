package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/fundvault/fundvault/backend/go-services/internal/pool/repository"
	"github.com/fundvault/fundvault/backend/go-services/internal/pool/service"
	"github.com/gin-gonic/gin"
)

func setupLookupRouter(t *testing.T) (*gin.Engine, *service.Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := service.New(repository.NewMemoryRepo())
	r := gin.New()
	r.LoadHTMLGlob("../templates/*.html")
	NewLookupHandler(svc).Register(r)
	return r, svc
}

func postForm(r *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestLookup_ShowForm(t *testing.T) {
	r, _ := setupLookupRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/lookup", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Check Your Investment") {
		t.Fatalf("expected lookup form, got: %s", w.Body.String())
	}
}

func TestLookup_Success(t *testing.T) {
	r, svc := setupLookupRouter(t)
	ctx := context.Background()

	poolID, err := svc.CreatePool(ctx, "Fund A", 1000, 0)
	if err != nil {
		t.Fatalf("create pool: %v", err)
	}
	if _, err := svc.AddInvestor(ctx, service.AddInvestorParams{
		PoolID: poolID, Name: "alice", Amount: 250, Password: "hunter22",
	}); err != nil {
		t.Fatalf("add investor: %v", err)
	}

	w := postForm(r, "/lookup", url.Values{"personName": {"alice"}, "password": {"hunter22"}})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	body := w.Body.String()
	if !strings.Contains(body, "Hello, alice") || !strings.Contains(body, "250.00") {
		t.Fatalf("expected investor details, got: %s", body)
	}
	if !strings.Contains(body, "No buyouts yet") {
		t.Fatalf("expected empty buyout history, got: %s", body)
	}
}

func TestLookup_ShowsBuyoutHistory(t *testing.T) {
	r, svc := setupLookupRouter(t)
	ctx := context.Background()

	poolID, err := svc.CreatePool(ctx, "Fund A", 1000, 0)
	if err != nil {
		t.Fatalf("create pool: %v", err)
	}
	invID, err := svc.AddInvestor(ctx, service.AddInvestorParams{
		PoolID: poolID, Name: "alice", Amount: 250, Password: "hunter22",
	})
	if err != nil {
		t.Fatalf("add investor: %v", err)
	}
	if _, err := svc.Buyout(ctx, service.BuyoutParams{PoolID: poolID, InvestorID: invID, Amount: 100}); err != nil {
		t.Fatalf("buyout: %v", err)
	}

	w := postForm(r, "/lookup", url.Values{"personName": {"alice"}, "password": {"hunter22"}})
	body := w.Body.String()
	if !strings.Contains(body, "150.00") {
		t.Fatalf("expected reduced holding, got: %s", body)
	}
	if !strings.Contains(body, "100.00") {
		t.Fatalf("expected buyout amount in history, got: %s", body)
	}
}

func TestLookup_WrongPassword(t *testing.T) {
	r, svc := setupLookupRouter(t)
	ctx := context.Background()

	poolID, err := svc.CreatePool(ctx, "Fund A", 1000, 0)
	if err != nil {
		t.Fatalf("create pool: %v", err)
	}
	if _, err := svc.AddInvestor(ctx, service.AddInvestorParams{
		PoolID: poolID, Name: "alice", Amount: 250, Password: "hunter22",
	}); err != nil {
		t.Fatalf("add investor: %v", err)
	}

	w := postForm(r, "/lookup", url.Values{"personName": {"alice"}, "password": {"wrong"}})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Invalid name or password.") {
		t.Fatalf("expected generic error message, got: %s", w.Body.String())
	}
}

func TestLookup_UnknownNameSameMessage(t *testing.T) {
	r, _ := setupLookupRouter(t)

	w := postForm(r, "/lookup", url.Values{"personName": {"nobody"}, "password": {"whatever"}})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Invalid name or password.") {
		t.Fatalf("unknown name must produce the same message, got: %s", w.Body.String())
	}
}
