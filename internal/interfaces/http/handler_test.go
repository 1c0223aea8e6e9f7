package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	appprojects "trade-journal/internal/application/service/projects"
	apptrades "trade-journal/internal/application/service/trades"
	domain "trade-journal/internal/domain/entity/journal"
	interfaces "trade-journal/internal/domain/interfaces"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type memoryRepo struct {
	users    []domain.User
	projects []domain.Project
	trades   map[int64]domain.Trade
	legs     map[int64][]domain.Leg
	tags     map[int64][]domain.Tag

	lastCreate *domain.TradeCreateModel
	lastUpdate *domain.TradeUpdateModel
	deleted    []int64
}

func (m *memoryRepo) GetUserByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, user := range m.users {
		if user.Username == username {
			u := user
			return &u, nil
		}
	}
	return nil, interfaces.ErrUserNotFound
}

func (m *memoryRepo) GetUserByUUID(_ context.Context, userUUID uuid.UUID) (*domain.User, error) {
	for _, user := range m.users {
		if user.UUID == userUUID {
			u := user
			return &u, nil
		}
	}
	return nil, interfaces.ErrUserNotFound
}

func (m *memoryRepo) GetProjectByName(_ context.Context, userUUID uuid.UUID, name string) (*domain.Project, error) {
	for _, project := range m.projects {
		if project.UserUUID == userUUID && project.Name == name {
			p := project
			return &p, nil
		}
	}
	return nil, interfaces.ErrProjectNotFound
}

func (m *memoryRepo) GetProjectByID(_ context.Context, id int64) (*domain.Project, error) {
	for _, project := range m.projects {
		if project.ID == id {
			p := project
			return &p, nil
		}
	}
	return nil, interfaces.ErrProjectNotFound
}

func (m *memoryRepo) GetProjectsByUser(_ context.Context, userUUID uuid.UUID) ([]domain.Project, error) {
	var list []domain.Project
	for _, project := range m.projects {
		if project.UserUUID == userUUID {
			list = append(list, project)
		}
	}
	return list, nil
}

func (m *memoryRepo) GetTradeByID(_ context.Context, id int64) (*domain.Trade, error) {
	trade, ok := m.trades[id]
	if !ok {
		return nil, interfaces.ErrTradeNotFound
	}
	return &trade, nil
}

func (m *memoryRepo) GetTradesByProject(_ context.Context, projectID int64) ([]domain.Trade, error) {
	ids := make([]int64, 0, len(m.trades))
	for id := range m.trades {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var list []domain.Trade
	for _, id := range ids {
		if trade := m.trades[id]; trade.ProjectID == projectID {
			list = append(list, trade)
		}
	}
	return list, nil
}

func (m *memoryRepo) GetLegsByTradeID(_ context.Context, tradeID int64) ([]domain.Leg, error) {
	return m.legs[tradeID], nil
}

func (m *memoryRepo) GetTradeTags(_ context.Context, tradeID int64) ([]domain.Tag, error) {
	return m.tags[tradeID], nil
}

func (m *memoryRepo) AddTrade(_ context.Context, projectID int64, model *domain.TradeCreateModel) error {
	m.lastCreate = model
	return nil
}

func (m *memoryRepo) UpdateTrade(_ context.Context, tradeID int64, model *domain.TradeUpdateModel) error {
	m.lastUpdate = model
	return nil
}

func (m *memoryRepo) DeleteTradeByID(_ context.Context, tradeID int64) error {
	m.deleted = append(m.deleted, tradeID)
	return nil
}

func (m *memoryRepo) Close() {}

var ownerUUID = uuid.MustParse("7f9c24e5-2f3a-4b1d-9e6f-8a5b3c2d1e0f")

func newTestServer() (*Handler, *memoryRepo) {
	openDate := time.Date(2024, 3, 1, 14, 30, 0, 0, time.UTC)
	closePrice := decimal.NewFromFloat(2.1)
	repo := &memoryRepo{
		users:    []domain.User{{UUID: ownerUUID, Username: "demo"}},
		projects: []domain.Project{{ID: 10, UserUUID: ownerUUID, Name: "alpha"}},
		trades: map[int64]domain.Trade{
			1: {ID: 1, ProjectID: 10, Symbol: "SPY", OpenDate: openDate},
		},
		legs: map[int64][]domain.Leg{
			1: {{ID: 1, TradeID: 1, Side: "buy", Quantity: decimal.NewFromInt(10), OpenPrice: decimal.NewFromFloat(1.5), ClosePrice: &closePrice}},
		},
		tags: map[int64][]domain.Tag{
			1: {{ID: 1, Name: "earnings"}},
		},
	}

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	tradeService := apptrades.NewService(repo, repo, repo, logger)
	projectService := appprojects.NewService(repo, repo, logger)
	return NewHandler(tradeService, projectService, nil, 0), repo
}

func do(h *Handler, method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestGetMissingTradeReturnsNotFound(t *testing.T) {
	h, _ := newTestServer()

	w := do(h, http.MethodGet, "/trades/42", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"message":"That trade does not exist."}`, w.Body.String())
}

func TestGetTradeReturnsDTO(t *testing.T) {
	h, _ := newTestServer()

	w := do(h, http.MethodGet, "/trades/1", "")
	require.Equal(t, http.StatusOK, w.Code)

	var dto map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &dto))
	assert.Equal(t, "SPY", dto["symbol"])
	assert.Equal(t, float64(10), dto["project_id"])

	legs := dto["legs"].([]interface{})
	require.Len(t, legs, 1)
	leg := legs[0].(map[string]interface{})
	assert.Equal(t, "buy", leg["side"])
	assert.Equal(t, float64(10), leg["quantity"])
	assert.Equal(t, 1.5, leg["open_price"])
	assert.Equal(t, 2.1, leg["closePrice"])

	assert.Equal(t, []interface{}{"earnings"}, dto["tags"])
}

func TestListTrades(t *testing.T) {
	h, _ := newTestServer()

	w := do(h, http.MethodGet, "/projects/demo/alpha/trades", "")
	require.Equal(t, http.StatusOK, w.Code)

	var dtos []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &dtos))
	require.Len(t, dtos, 1)
	assert.Equal(t, "SPY", dtos[0]["symbol"])
}

func TestListTradesUnknownUser(t *testing.T) {
	h, _ := newTestServer()

	w := do(h, http.MethodGet, "/projects/nobody/alpha/trades", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"message":"User does not exist."}`, w.Body.String())
}

func TestCreateTradePersistsUppercasedSymbol(t *testing.T) {
	h, repo := newTestServer()

	body := `{
		"userUUID": "` + ownerUUID.String() + `",
		"symbol": "spy",
		"open_date": "2024-03-01T14:30:00Z",
		"legs": [{"side":"buy","quantity":10,"open_price":1.5}],
		"tags": ["earnings"]
	}`
	w := do(h, http.MethodPost, "/projects/demo/alpha", body)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Empty(t, w.Body.String())

	require.NotNil(t, repo.lastCreate)
	assert.Equal(t, "SPY", repo.lastCreate.Symbol)
}

func TestCreateTradeWithoutLegsIsBadRequest(t *testing.T) {
	h, repo := newTestServer()

	body := `{"userUUID":"` + ownerUUID.String() + `","symbol":"spy","open_date":"2024-03-01T14:30:00Z","legs":[]}`
	w := do(h, http.MethodPost, "/projects/demo/alpha", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"message":"A trade was not provided."}`, w.Body.String())
	assert.Nil(t, repo.lastCreate)
}

func TestCreateTradeForbidden(t *testing.T) {
	h, repo := newTestServer()

	body := `{"userUUID":"00000000-0000-0000-0000-000000000001","symbol":"spy","open_date":"2024-03-01T14:30:00Z","legs":[{"side":"buy","quantity":10,"open_price":1.5}]}`
	w := do(h, http.MethodPost, "/projects/demo/alpha", body)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"message":"Forbidden."}`, w.Body.String())
	assert.Nil(t, repo.lastCreate)
}

func TestUpdateTrade(t *testing.T) {
	h, repo := newTestServer()

	body := `{"userUUID":"` + ownerUUID.String() + `","symbol":"aapl"}`
	w := do(h, http.MethodPatch, "/trades/1", body)
	assert.Equal(t, http.StatusNoContent, w.Code)

	require.NotNil(t, repo.lastUpdate)
	require.NotNil(t, repo.lastUpdate.Symbol)
	assert.Equal(t, "AAPL", *repo.lastUpdate.Symbol)
	assert.Nil(t, repo.lastUpdate.OpeningNote)
}

func TestUpdateTradeForbidden(t *testing.T) {
	h, repo := newTestServer()

	body := `{"userUUID":"00000000-0000-0000-0000-000000000001","symbol":"aapl"}`
	w := do(h, http.MethodPatch, "/trades/1", body)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Nil(t, repo.lastUpdate)
}

func TestDeleteTrade(t *testing.T) {
	h, repo := newTestServer()

	body := `{"userUUID":"` + ownerUUID.String() + `"}`
	w := do(h, http.MethodDelete, "/trades/1", body)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, []int64{1}, repo.deleted)
}

func TestDeleteMissingTradeSucceeds(t *testing.T) {
	h, repo := newTestServer()

	body := `{"userUUID":"` + ownerUUID.String() + `"}`
	w := do(h, http.MethodDelete, "/trades/99", body)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, repo.deleted)
}

func TestDeleteTradeWithUnparseableIDSucceeds(t *testing.T) {
	h, repo := newTestServer()

	w := do(h, http.MethodDelete, "/trades/not-a-number", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, repo.deleted)
}

func TestDeleteTradeForbiddenWithoutBody(t *testing.T) {
	h, repo := newTestServer()

	w := do(h, http.MethodDelete, "/trades/1", "")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Empty(t, repo.deleted)
}

func TestListProjects(t *testing.T) {
	h, _ := newTestServer()

	w := do(h, http.MethodGet, "/projects/demo", "")
	require.Equal(t, http.StatusOK, w.Code)

	var dtos []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &dtos))
	require.Len(t, dtos, 1)
	assert.Equal(t, "alpha", dtos[0]["name"])
}

func TestHealth(t *testing.T) {
	h, _ := newTestServer()

	w := do(h, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
}
