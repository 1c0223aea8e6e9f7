package http

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"trade-journal/internal/application/failure"
	appinterfaces "trade-journal/internal/application/interfaces"
	appprojects "trade-journal/internal/application/service/projects"
	apptrades "trade-journal/internal/application/service/trades"
	domain "trade-journal/internal/domain/entity/journal"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

type Handler struct {
	router   *gin.Engine
	trades   *apptrades.Service
	projects *appprojects.Service
	cache    *redis.Client
	cacheTTL time.Duration
}

var _ appinterfaces.HTTPHandler = (*Handler)(nil)

func NewHandler(trades *apptrades.Service, projects *appprojects.Service, cache *redis.Client, cacheTTL time.Duration) *Handler {
	router := gin.New()
	router.Use(gin.Recovery())

	h := &Handler{
		router:   router,
		trades:   trades,
		projects: projects,
		cache:    cache,
		cacheTTL: cacheTTL,
	}
	h.registerRoutes()
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) registerRoutes() {
	h.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})

	pr := h.router.Group("/projects")
	if h.cache != nil {
		pr.Use(h.cacheMiddleware())
	}
	{
		pr.GET("/:username", h.listProjects)
		pr.GET("/:username/:project/trades", h.listTrades)
		pr.POST("/:username/:project", h.createTrade)
	}

	tr := h.router.Group("/trades")
	if h.cache != nil {
		tr.Use(h.cacheMiddleware())
	}
	{
		tr.GET("/:id", h.getTrade)
		tr.PATCH("/:id", h.updateTrade)
		tr.DELETE("/:id", h.deleteTrade)
	}
}

// Projects

func (h *Handler) listProjects(c *gin.Context) {
	list, err := h.projects.ListProjects(c.Request.Context(), c.Param("username"))
	if err != nil {
		writeFailure(c, err)
		return
	}
	dtos := make([]projectDTO, 0, len(list))
	for _, project := range list {
		dtos = append(dtos, toProjectDTO(project))
	}
	c.JSON(http.StatusOK, dtos)
}

// Trades

func (h *Handler) listTrades(c *gin.Context) {
	views, err := h.trades.ListTrades(c.Request.Context(), c.Param("username"), c.Param("project"))
	if err != nil {
		writeFailure(c, err)
		return
	}
	dtos := make([]tradeDTO, 0, len(views))
	for _, view := range views {
		dtos = append(dtos, toTradeDTO(view))
	}
	c.JSON(http.StatusOK, dtos)
}

func (h *Handler) getTrade(c *gin.Context) {
	id, ok := parseTradeID(c)
	if !ok {
		return
	}
	view, err := h.trades.GetTrade(c.Request.Context(), id)
	if err != nil {
		writeFailure(c, err)
		return
	}
	c.JSON(http.StatusOK, toTradeDTO(*view))
}

func (h *Handler) createTrade(c *gin.Context) {
	var payload createTradePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "A trade was not provided."})
		return
	}
	err := h.trades.CreateTrade(
		c.Request.Context(),
		c.Param("username"),
		c.Param("project"),
		payload.UserUUID,
		payload.toInput(),
	)
	if err != nil {
		writeFailure(c, err)
		return
	}
	c.Status(http.StatusCreated)
}

func (h *Handler) updateTrade(c *gin.Context) {
	id, ok := parseTradeID(c)
	if !ok {
		return
	}
	var payload updateTradePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "A trade was not provided."})
		return
	}
	if err := h.trades.UpdateTrade(c.Request.Context(), id, payload.UserUUID, payload.toInput()); err != nil {
		writeFailure(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) deleteTrade(c *gin.Context) {
	// Deletes are idempotent: an id that cannot name a trade is already gone.
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Status(http.StatusNoContent)
		return
	}
	// A missing or malformed body leaves UserUUID empty, which falls through
	// to the ownership check.
	var payload deleteTradePayload
	_ = c.ShouldBindJSON(&payload)

	if err := h.trades.DeleteTrade(c.Request.Context(), id, payload.UserUUID); err != nil {
		writeFailure(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// parseTradeID reads the :id param. A non-numeric id can never match a
// trade, so it reports the same not-found the lookup would.
func parseTradeID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "That trade does not exist."})
		return 0, false
	}
	return id, true
}

// Payloads

type legPayload struct {
	Side       string     `json:"side"`
	Quantity   float64    `json:"quantity"`
	OpenPrice  float64    `json:"open_price"`
	ClosePrice *float64   `json:"closePrice"`
	Strike     *float64   `json:"strike"`
	Expiration *time.Time `json:"expiration"`
	PutCall    *string    `json:"put_call"`
}

func (p legPayload) toInput() domain.LegInput {
	return domain.LegInput{
		Side:       p.Side,
		Quantity:   decimal.NewFromFloat(p.Quantity),
		OpenPrice:  decimal.NewFromFloat(p.OpenPrice),
		ClosePrice: floatToDecimal(p.ClosePrice),
		Strike:     floatToDecimal(p.Strike),
		Expiration: p.Expiration,
		PutCall:    p.PutCall,
	}
}

type createTradePayload struct {
	UserUUID    string       `json:"userUUID"`
	Symbol      string       `json:"symbol"`
	OpenDate    *time.Time   `json:"open_date"`
	OpeningNote *string      `json:"opening_note"`
	Legs        []legPayload `json:"legs"`
	Tags        []string     `json:"tags"`
}

func (p createTradePayload) toInput() domain.TradeCreateInput {
	return domain.TradeCreateInput{
		Symbol:      p.Symbol,
		OpenDate:    p.OpenDate,
		OpeningNote: p.OpeningNote,
		Legs:        legInputs(p.Legs),
		Tags:        p.Tags,
	}
}

type updateTradePayload struct {
	UserUUID    string       `json:"userUUID"`
	Symbol      *string      `json:"symbol"`
	OpenDate    *time.Time   `json:"open_date"`
	CloseDate   *time.Time   `json:"close_date"`
	OpeningNote *string      `json:"opening_note"`
	ClosingNote *string      `json:"closing_note"`
	Legs        []legPayload `json:"legs"`
	Tags        []string     `json:"tags"`
}

func (p updateTradePayload) toInput() domain.TradeUpdateInput {
	return domain.TradeUpdateInput{
		Symbol:      p.Symbol,
		OpenDate:    p.OpenDate,
		CloseDate:   p.CloseDate,
		OpeningNote: p.OpeningNote,
		ClosingNote: p.ClosingNote,
		Legs:        legInputs(p.Legs),
		Tags:        p.Tags,
	}
}

type deleteTradePayload struct {
	UserUUID string `json:"userUUID"`
}

func legInputs(payloads []legPayload) []domain.LegInput {
	if payloads == nil {
		return nil
	}
	inputs := make([]domain.LegInput, 0, len(payloads))
	for _, p := range payloads {
		inputs = append(inputs, p.toInput())
	}
	return inputs
}

func floatToDecimal(f *float64) *decimal.Decimal {
	if f == nil {
		return nil
	}
	d := decimal.NewFromFloat(*f)
	return &d
}

// DTOs

type legDTO struct {
	Side       string     `json:"side"`
	Quantity   float64    `json:"quantity"`
	OpenPrice  float64    `json:"open_price"`
	ClosePrice *float64   `json:"closePrice,omitempty"`
	Strike     *float64   `json:"strike,omitempty"`
	Expiration *time.Time `json:"expiration,omitempty"`
	PutCall    *string    `json:"put_call,omitempty"`
}

type tradeDTO struct {
	ID          int64      `json:"id"`
	Symbol      string     `json:"symbol"`
	OpenDate    time.Time  `json:"open_date"`
	CloseDate   *time.Time `json:"close_date,omitempty"`
	OpeningNote *string    `json:"opening_note,omitempty"`
	ClosingNote *string    `json:"closing_note,omitempty"`
	Legs        []legDTO   `json:"legs"`
	Tags        []string   `json:"tags"`
	ProjectID   int64      `json:"project_id"`
}

type projectDTO struct {
	ID       int64     `json:"id"`
	Name     string    `json:"name"`
	UserUUID uuid.UUID `json:"user_uuid"`
}

func toTradeDTO(view apptrades.TradeView) tradeDTO {
	legs := make([]legDTO, 0, len(view.Legs))
	for _, leg := range view.Legs {
		legs = append(legs, legDTO{
			Side:       leg.Side,
			Quantity:   leg.Quantity.InexactFloat64(),
			OpenPrice:  leg.OpenPrice.InexactFloat64(),
			ClosePrice: decimalToFloat(leg.ClosePrice),
			Strike:     decimalToFloat(leg.Strike),
			Expiration: leg.Expiration,
			PutCall:    leg.PutCall,
		})
	}
	tags := make([]string, 0, len(view.Tags))
	for _, tag := range view.Tags {
		tags = append(tags, tag.Name)
	}
	return tradeDTO{
		ID:          view.Trade.ID,
		Symbol:      view.Trade.Symbol,
		OpenDate:    view.Trade.OpenDate,
		CloseDate:   view.Trade.CloseDate,
		OpeningNote: view.Trade.OpeningNote,
		ClosingNote: view.Trade.ClosingNote,
		Legs:        legs,
		Tags:        tags,
		ProjectID:   view.Trade.ProjectID,
	}
}

func toProjectDTO(project domain.Project) projectDTO {
	return projectDTO{ID: project.ID, Name: project.Name, UserUUID: project.UserUUID}
}

func decimalToFloat(d *decimal.Decimal) *float64 {
	if d == nil {
		return nil
	}
	f := d.InexactFloat64()
	return &f
}

// Errors

func writeFailure(c *gin.Context, err error) {
	var f *failure.Failure
	if errors.As(err, &f) {
		c.JSON(statusFor(f.Kind), gin.H{"message": f.Message})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"message": "Something went wrong."})
}

func statusFor(kind failure.Kind) int {
	switch kind {
	case failure.KindNotFound:
		return http.StatusNotFound
	case failure.KindForbidden:
		return http.StatusForbidden
	case failure.KindBadRequest:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// cacheMiddleware caches GET responses in Redis; mutations pass through.
func (h *Handler) cacheMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if h.cache == nil || c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		key := h.cacheKey(c)
		ctx := c.Request.Context()

		if cached, err := h.cache.Get(ctx, key).Result(); err == nil {
			c.Data(http.StatusOK, "application/json", []byte(cached))
			c.Abort()
			return
		}

		recorder := &responseRecorder{
			ResponseWriter: c.Writer,
			status:         http.StatusOK,
			body:           &bytes.Buffer{},
		}
		c.Writer = recorder

		c.Next()

		if recorder.status >= 200 && recorder.status < 300 && recorder.body.Len() > 0 {
			_ = h.cache.Set(ctx, key, recorder.body.Bytes(), h.cacheTTL).Err()
		}
	}
}

type responseRecorder struct {
	gin.ResponseWriter
	body   *bytes.Buffer
	status int
}

func (r *responseRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *responseRecorder) Write(data []byte) (int, error) {
	if len(data) > 0 {
		r.body.Write(data)
	}
	return r.ResponseWriter.Write(data)
}

func (h *Handler) cacheKey(c *gin.Context) string {
	return fmt.Sprintf("cache:%s:%s", c.Request.Method, c.Request.URL.Path)
}
