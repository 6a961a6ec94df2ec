package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/inventory-ledger/internal/application/inventory"
	"github.com/xiebiao/inventory-ledger/internal/domain/item"
	"github.com/xiebiao/inventory-ledger/internal/domain/ledger"
	"github.com/xiebiao/inventory-ledger/internal/infrastructure/config"
	"github.com/xiebiao/inventory-ledger/internal/infrastructure/persistence/memory"
	"github.com/xiebiao/inventory-ledger/internal/interface/http/handler"
	"github.com/xiebiao/inventory-ledger/internal/interface/http/router"
	apperrors "github.com/xiebiao/inventory-ledger/pkg/errors"
)

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type memoryGuard struct{ held map[string]bool }

func (g *memoryGuard) Acquire(_ context.Context, key string) (bool, error) {
	if g.held[key] {
		return false, nil
	}
	g.held[key] = true
	return true, nil
}

func (g *memoryGuard) Release(_ context.Context, key string) error {
	delete(g.held, key)
	return nil
}

func newTestRouter(t *testing.T, seed bool) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	now := time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	store := memory.NewStore()
	items := item.NewService(store.Items(), store.TxManager(), clock)
	ledgerService := ledger.NewService(store.Items(), store.Ledger(), store.TxManager(), clock)
	notifier := inventory.NewNotifier(items, nil, nil, clock)

	if seed {
		_, err := inventory.NewSeedUseCase(store.Items(), store.Ledger(), store.TxManager(), time.UTC, nil).Execute(t.Context())
		require.NoError(t, err)
	}

	cfg := &config.Config{Server: config.ServerConfig{Mode: gin.TestMode, MaxUploadBytes: 1 << 20}}
	return router.NewRouter(cfg, nil, router.Handlers{
		Item: handler.NewItemHandler(
			inventory.NewCreateItemUseCase(items, notifier),
			inventory.NewUpdateItemUseCase(items, notifier),
			inventory.NewDeleteItemUseCase(items, notifier),
			inventory.NewGetItemUseCase(items, ledgerService, 10),
			inventory.NewListItemsUseCase(items),
		),
		Stock: handler.NewStockHandler(
			inventory.NewApplyMovementUseCase(ledgerService, &memoryGuard{held: map[string]bool{}}, notifier, "Utilisateur actuel", nil),
			inventory.NewListTransactionsUseCase(items, ledgerService),
			inventory.NewOverviewUseCase(items),
		),
		File: handler.NewFileHandler(
			inventory.NewImportItemsUseCase(items, notifier, time.UTC, nil),
			inventory.NewExportItemsUseCase(items, clock),
			1<<20,
		),
	})
}

func do(t *testing.T, r *gin.Engine, method, path string, body string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, data interface{}) envelope {
	t.Helper()
	require.Equal(t, http.StatusOK, w.Code)
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	if data != nil && len(env.Data) > 0 {
		require.NoError(t, json.Unmarshal(env.Data, data))
	}
	return env
}

func TestPing(t *testing.T) {
	r := newTestRouter(t, false)
	w := do(t, r, http.MethodGet, "/ping", "")
	env := decode(t, w, nil)
	assert.Equal(t, 0, env.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestItemsCRUD(t *testing.T) {
	r := newTestRouter(t, false)

	var created inventory.ItemDTO
	env := decode(t, do(t, r, http.MethodPost, "/api/v1/items",
		`{"name":"Semences de blé","category":"Semences","quantity":500,"unit":"kg","minQuantity":100,"price":1250}`), &created)
	require.Equal(t, 0, env.Code, env.Message)
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, "2024-03-15", created.LastUpdated)

	var updated inventory.ItemDTO
	env = decode(t, do(t, r, http.MethodPatch, "/api/v1/items/1", `{"location":"Hangar nord"}`), &updated)
	require.Equal(t, 0, env.Code, env.Message)
	assert.Equal(t, "Hangar nord", updated.Location)
	assert.Equal(t, 500.0, updated.Quantity)

	var detail inventory.ItemDetail
	decode(t, do(t, r, http.MethodGet, "/api/v1/items/1", ""), &detail)
	assert.Equal(t, "normal", string(detail.Status))
	assert.Equal(t, 100.0, detail.StockPercentage)

	env = decode(t, do(t, r, http.MethodDelete, "/api/v1/items/1", ""), nil)
	assert.Equal(t, 0, env.Code)

	env = decode(t, do(t, r, http.MethodGet, "/api/v1/items/1", ""), nil)
	assert.Equal(t, apperrors.ErrCodeItemNotFound, env.Code)
}

func TestCreateItem_ValidationError(t *testing.T) {
	r := newTestRouter(t, false)

	env := decode(t, do(t, r, http.MethodPost, "/api/v1/items", `{"name":"","category":"Semences","unit":"kg"}`), nil)
	assert.Equal(t, apperrors.ErrCodeInvalidParams, env.Code)

	env = decode(t, do(t, r, http.MethodPost, "/api/v1/items", `{"name":`), nil)
	assert.Equal(t, apperrors.ErrCodeBindError, env.Code)

	env = decode(t, do(t, r, http.MethodGet, "/api/v1/items/abc", ""), nil)
	assert.Equal(t, apperrors.ErrCodeInvalidParams, env.Code)
}

func TestListItems_QueryParams(t *testing.T) {
	r := newTestRouter(t, true)

	var list inventory.ListItemsResponse
	decode(t, do(t, r, http.MethodGet, "/api/v1/items?category=Semences&sort=quantity&order=desc", ""), &list)
	require.Equal(t, 2, list.Total)
	assert.Equal(t, "Semences de blé", list.Items[0].Name)
	assert.Equal(t, "Semences de maïs hybride", list.Items[1].Name)
	assert.Len(t, list.Alerts, 1)
	assert.Equal(t, "all", list.Categories[0])

	env := decode(t, do(t, r, http.MethodGet, "/api/v1/items?sort=colour", ""), nil)
	assert.Equal(t, apperrors.ErrCodeInvalidParams, env.Code)
}

func TestApplyMovement(t *testing.T) {
	r := newTestRouter(t, true)

	var resp inventory.ApplyMovementResponse
	env := decode(t, do(t, r, http.MethodPost, "/api/v1/items/5/movements",
		`{"type":"out","quantity":100,"notes":"Semis"}`, "Idempotency-Key", "abc"), &resp)
	require.Equal(t, 0, env.Code, env.Message)
	assert.Equal(t, 75.0, resp.Before)
	assert.Equal(t, 0.0, resp.Item.Quantity)
	assert.Equal(t, "empty", string(resp.Status))
	assert.Equal(t, "Utilisateur actuel", resp.Transaction.User)

	env = decode(t, do(t, r, http.MethodPost, "/api/v1/items/5/movements",
		`{"type":"out","quantity":100}`, "Idempotency-Key", "abc"), nil)
	assert.Equal(t, apperrors.ErrCodeDuplicateRequest, env.Code)

	env = decode(t, do(t, r, http.MethodPost, "/api/v1/items/5/movements", `{"type":"in","quantity":0}`), nil)
	assert.Equal(t, apperrors.ErrCodeInvalidQuantity, env.Code)

	var txs struct {
		List  []inventory.TransactionDTO `json:"list"`
		Total int                        `json:"total"`
	}
	decode(t, do(t, r, http.MethodGet, "/api/v1/items/5/transactions", ""), &txs)
	require.Equal(t, 1, txs.Total)
	assert.Equal(t, "Semences de maïs hybride", txs.List[0].ItemName)

	decode(t, do(t, r, http.MethodGet, "/api/v1/transactions", ""), &txs)
	assert.Equal(t, 6, txs.Total)

	decode(t, do(t, r, http.MethodGet, "/api/v1/transactions?item_id=1", ""), &txs)
	assert.Equal(t, 2, txs.Total)
}

func TestAlertsOverviewCategories(t *testing.T) {
	r := newTestRouter(t, true)

	var alerts []map[string]interface{}
	decode(t, do(t, r, http.MethodGet, "/api/v1/alerts", ""), &alerts)
	require.Len(t, alerts, 1)
	assert.Equal(t, "warning", alerts[0]["status"])

	var ov struct {
		TotalItems    int    `json:"totalItems"`
		LowStockCount int    `json:"lowStockCount"`
		TotalValue    string `json:"totalValue"`
	}
	decode(t, do(t, r, http.MethodGet, "/api/v1/overview", ""), &ov)
	assert.Equal(t, 5, ov.TotalItems)
	assert.Equal(t, 1, ov.LowStockCount)
	// 500*1250 + 800*650 + 45*8500 + 1200*850 + 75*3200
	assert.Equal(t, "2787500", ov.TotalValue)

	var cats []string
	decode(t, do(t, r, http.MethodGet, "/api/v1/categories", ""), &cats)
	assert.Equal(t, []string{"all", "Semences", "Engrais", "Produits phytosanitaires", "Carburants"}, cats)
}

func TestExportAndTemplate(t *testing.T) {
	r := newTestRouter(t, true)

	w := do(t, r, http.MethodGet, "/api/v1/export", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename="inventaire_2024-03-15.csv"`, w.Header().Get("Content-Disposition"))
	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	assert.Len(t, lines, 6)

	w = do(t, r, http.MethodGet, "/api/v1/export?format=xlsx", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, inventory.ContentTypeXLSX, w.Header().Get("Content-Type"))

	env := decode(t, do(t, r, http.MethodGet, "/api/v1/export?format=pdf", ""), nil)
	assert.Equal(t, apperrors.ErrCodeBindError, env.Code)

	w = do(t, r, http.MethodGet, "/api/v1/import/template", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Body.String(), "id,name,category"))
}

func TestImport_RawCSVBody(t *testing.T) {
	r := newTestRouter(t, true)

	csv := "id,name,category,quantity,unit,minQuantity,price\n" +
		"1,Semences de blé,Semences,450,kg,100,1250\n" +
		"6,Fongicide,Produits phytosanitaires,12,L,5,90\n"
	req := httptest.NewRequest(http.MethodPost, "/api/v1/import", strings.NewReader(csv))
	req.Header.Set("Content-Type", "text/csv")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp inventory.ImportItemsResponse
	env := decode(t, w, &resp)
	require.Equal(t, 0, env.Code, env.Message)
	assert.Equal(t, 1, resp.Updated)
	assert.Equal(t, 1, resp.Added)
	assert.Equal(t, 0, resp.Skipped)
}

func TestImport_Multipart(t *testing.T) {
	r := newTestRouter(t, false)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "stock.csv")
	require.NoError(t, err)
	_, err = fw.Write([]byte("id,name,category,unit\n3,Avoine,Semences,kg\n,Sans id,Semences,kg\n"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/import", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp inventory.ImportItemsResponse
	env := decode(t, w, &resp)
	require.Equal(t, 0, env.Code, env.Message)
	assert.Equal(t, 1, resp.Added)
	assert.Equal(t, 1, resp.Skipped)
	require.Len(t, resp.RowErrors, 1)
	assert.Equal(t, 3, resp.RowErrors[0].Line)

	env = decode(t, do(t, r, http.MethodPost, "/api/v1/import", ""), nil)
	assert.Equal(t, apperrors.ErrCodeImportFile, env.Code)
}
