package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"wildcraft/internal/app/auth"
	"wildcraft/internal/app/observe"
	"wildcraft/internal/app/ports"
	"wildcraft/internal/app/replay"
	"wildcraft/internal/app/session"
	"wildcraft/internal/app/status"
	"wildcraft/internal/domain/catalog"
	"wildcraft/internal/domain/survival"
	"wildcraft/internal/domain/world"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

const authorizationHeader = "Authorization"

var (
	ErrMissingBearerToken = errors.New("missing bearer token")
	ErrInvalidJSON        = errors.New("invalid json")
)

type SessionHost interface {
	Start(ctx context.Context) (*session.Controller, session.Snapshot, error)
	Get(id string) (*session.Controller, error)
	End(id string) error
}

type Handler struct {
	Sessions  SessionHost
	Tokens    auth.Tokens
	Catalog   *catalog.Catalog
	ObserveUC observe.UseCase
	StatusUC  status.UseCase
	ReplayUC  replay.UseCase
	KPI       kpiSnapshotProvider
}

func (h Handler) RegisterRoutes(s *server.Hertz) {
	s.Use(corsMiddleware())

	game := s.Group("/api/game")
	game.POST("", h.start)
	game.DELETE("", h.end)
	game.POST("/reset", h.reset)
	game.GET("/state", h.state)
	game.GET("/view", h.view)
	game.GET("/world", h.world)
	game.GET("/inventory/:item_id", h.inventory)
	game.POST("/move", h.move)
	game.POST("/travel", h.travel)
	game.POST("/collect", h.collect)
	game.POST("/craft", h.craft)
	game.POST("/use", h.use)
	game.POST("/drop", h.drop)
	game.POST("/advance-time", h.advanceTime)
	game.GET("/events", h.events)

	cat := s.Group("/api/catalog")
	cat.GET("/items", h.catalogItems)
	cat.GET("/recipes", h.catalogRecipes)

	s.GET("/ops/kpi", h.kpi)
}

type startResponse struct {
	SessionID string           `json:"session_id"`
	Token     string           `json:"token"`
	ExpiresAt time.Time        `json:"expires_at"`
	State     session.Snapshot `json:"state"`
}

type moveRequest struct {
	Direction string `json:"direction"`
}

type travelRequest struct {
	Section *int `json:"section"`
}

type collectRequest struct {
	ResourceID string `json:"resource_id"`
}

type craftRequest struct {
	RecipeID string `json:"recipe_id"`
}

type itemRequest struct {
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity,omitempty"`
}

type inventoryResponse struct {
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
}

func (h Handler) start(c context.Context, ctx *app.RequestContext) {
	ctrl, snap, err := h.Sessions.Start(c)
	if err != nil {
		writeError(ctx, err)
		return
	}
	tok, err := h.Tokens.Issue(ctrl.SessionID())
	if err != nil {
		_ = h.Sessions.End(ctrl.SessionID())
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusCreated, startResponse{
		SessionID: snap.SessionID,
		Token:     tok.Token,
		ExpiresAt: tok.ExpiresAt,
		State:     snap,
	})
}

func (h Handler) end(c context.Context, ctx *app.RequestContext) {
	ctrl, err := h.requireSession(c, ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	if err := h.Sessions.End(ctrl.SessionID()); err != nil {
		writeError(ctx, err)
		return
	}
	ctx.SetStatusCode(consts.StatusNoContent)
}

func (h Handler) reset(c context.Context, ctx *app.RequestContext) {
	h.command(c, ctx, func(ctrl *session.Controller) (session.Snapshot, error) {
		return ctrl.Reset(c)
	})
}

func (h Handler) state(c context.Context, ctx *app.RequestContext) {
	ctrl, err := h.requireSession(c, ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	resp, err := h.StatusUC.Execute(c, status.Request{SessionID: ctrl.SessionID()})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) view(c context.Context, ctx *app.RequestContext) {
	ctrl, err := h.requireSession(c, ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	resp, err := h.ObserveUC.Execute(c, observe.Request{SessionID: ctrl.SessionID()})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) world(c context.Context, ctx *app.RequestContext) {
	ctrl, err := h.requireSession(c, ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	w, err := ctrl.World(c)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, w)
}

func (h Handler) inventory(c context.Context, ctx *app.RequestContext) {
	ctrl, err := h.requireSession(c, ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	itemID := strings.TrimSpace(ctx.Param("item_id"))
	n, err := ctrl.Query(c, itemID)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, inventoryResponse{ItemID: itemID, Quantity: n})
}

func (h Handler) move(c context.Context, ctx *app.RequestContext) {
	var body moveRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeError(ctx, err)
		return
	}
	h.command(c, ctx, func(ctrl *session.Controller) (session.Snapshot, error) {
		dir, ok := world.ParseDirection(body.Direction)
		if !ok {
			return session.Snapshot{}, session.ErrInvalidDirection
		}
		return ctrl.Move(c, dir)
	})
}

func (h Handler) travel(c context.Context, ctx *app.RequestContext) {
	var body travelRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeError(ctx, err)
		return
	}
	h.command(c, ctx, func(ctrl *session.Controller) (session.Snapshot, error) {
		if body.Section == nil {
			return session.Snapshot{}, world.ErrInvalidSection
		}
		return ctrl.Travel(c, *body.Section)
	})
}

func (h Handler) collect(c context.Context, ctx *app.RequestContext) {
	var body collectRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeError(ctx, err)
		return
	}
	h.command(c, ctx, func(ctrl *session.Controller) (session.Snapshot, error) {
		return ctrl.Collect(c, strings.TrimSpace(body.ResourceID))
	})
}

func (h Handler) craft(c context.Context, ctx *app.RequestContext) {
	var body craftRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeError(ctx, err)
		return
	}
	h.command(c, ctx, func(ctrl *session.Controller) (session.Snapshot, error) {
		return ctrl.Craft(c, strings.TrimSpace(body.RecipeID))
	})
}

func (h Handler) use(c context.Context, ctx *app.RequestContext) {
	var body itemRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeError(ctx, err)
		return
	}
	h.command(c, ctx, func(ctrl *session.Controller) (session.Snapshot, error) {
		return ctrl.Use(c, strings.TrimSpace(body.ItemID))
	})
}

func (h Handler) drop(c context.Context, ctx *app.RequestContext) {
	var body itemRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeError(ctx, err)
		return
	}
	h.command(c, ctx, func(ctrl *session.Controller) (session.Snapshot, error) {
		return ctrl.Drop(c, strings.TrimSpace(body.ItemID), body.Quantity)
	})
}

func (h Handler) advanceTime(c context.Context, ctx *app.RequestContext) {
	h.command(c, ctx, func(ctrl *session.Controller) (session.Snapshot, error) {
		return ctrl.AdvanceTime(c)
	})
}

// command authenticates the caller, runs fn against their session and writes
// the resulting snapshot.
func (h Handler) command(c context.Context, ctx *app.RequestContext, fn func(*session.Controller) (session.Snapshot, error)) {
	ctrl, err := h.requireSession(c, ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	snap, err := fn(ctrl)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, snap)
}

func (h Handler) events(c context.Context, ctx *app.RequestContext) {
	ctrl, err := h.requireSession(c, ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	limit, _ := strconv.Atoi(ctx.Query("limit"))
	occurredFrom, _ := strconv.ParseInt(ctx.Query("occurred_from"), 10, 64)
	occurredTo, _ := strconv.ParseInt(ctx.Query("occurred_to"), 10, 64)
	resp, err := h.ReplayUC.Execute(c, replay.Request{
		SessionID:    ctrl.SessionID(),
		Limit:        limit,
		Type:         ctx.Query("type"),
		OccurredFrom: occurredFrom,
		OccurredTo:   occurredTo,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) catalogItems(_ context.Context, ctx *app.RequestContext) {
	if h.Catalog == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "catalog not configured", nil)
		return
	}
	ctx.JSON(consts.StatusOK, map[string]any{
		"items":     h.Catalog.Items(),
		"resources": h.Catalog.Resources(),
	})
}

func (h Handler) catalogRecipes(_ context.Context, ctx *app.RequestContext) {
	if h.Catalog == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "catalog not configured", nil)
		return
	}
	ctx.JSON(consts.StatusOK, map[string]any{"recipes": h.Catalog.Recipes()})
}

type kpiSnapshotProvider interface {
	SnapshotAny() any
}

func (h Handler) kpi(_ context.Context, ctx *app.RequestContext) {
	if h.KPI == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "kpi provider not configured", nil)
		return
	}
	ctx.JSON(consts.StatusOK, h.KPI.SnapshotAny())
}

func decodeJSON(ctx *app.RequestContext, out any) error {
	body := ctx.Request.Body()
	if len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return ErrInvalidJSON
	}
	return nil
}

// requireSession resolves the bearer token to a running session.
func (h Handler) requireSession(_ context.Context, ctx *app.RequestContext) (*session.Controller, error) {
	raw := auth.BearerToken(string(ctx.GetHeader(authorizationHeader)))
	if raw == "" {
		return nil, ErrMissingBearerToken
	}
	sessionID, err := h.Tokens.Verify(raw)
	if err != nil {
		return nil, err
	}
	return h.Sessions.Get(sessionID)
}

func writeError(ctx *app.RequestContext, err error) {
	var (
		shortfall *survival.InsufficientIngredientsError
		unknownID *catalog.UnknownIDError
	)
	switch {
	case errors.Is(err, ErrMissingBearerToken):
		writeErrorBody(ctx, consts.StatusUnauthorized, "missing_token", err.Error(), nil)
	case errors.Is(err, auth.ErrInvalidToken):
		writeErrorBody(ctx, consts.StatusUnauthorized, "invalid_token", err.Error(), nil)
	case errors.Is(err, session.ErrSessionNotFound):
		writeErrorBody(ctx, consts.StatusNotFound, "session_not_found", err.Error(), nil)
	case errors.Is(err, session.ErrGameOver):
		writeErrorBody(ctx, consts.StatusConflict, "game_over", err.Error(), nil)
	case errors.Is(err, session.ErrStopped):
		writeErrorBody(ctx, consts.StatusServiceUnavailable, "session_stopped", err.Error(), nil)
	case errors.Is(err, session.ErrResourceNotOnTile):
		writeErrorBody(ctx, consts.StatusConflict, "resource_not_on_tile", err.Error(), nil)
	case errors.Is(err, session.ErrInvalidDirection):
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_direction", err.Error(), nil)
	case errors.Is(err, world.ErrInvalidSection):
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_section", err.Error(), nil)
	case errors.As(err, &shortfall):
		writeErrorBody(ctx, consts.StatusConflict, "insufficient_ingredients", err.Error(), map[string]any{
			"recipe_id": shortfall.RecipeID,
			"missing":   shortfall.Missing,
		})
	case errors.Is(err, survival.ErrRecipeNotDiscovered):
		writeErrorBody(ctx, consts.StatusConflict, "recipe_not_discovered", err.Error(), nil)
	case errors.Is(err, survival.ErrItemNotConsumable):
		writeErrorBody(ctx, consts.StatusConflict, "item_not_consumable", err.Error(), nil)
	case errors.Is(err, survival.ErrUnknownResultItem):
		writeErrorBody(ctx, consts.StatusInternalServerError, "unknown_result_item", err.Error(), nil)
	case errors.As(err, &unknownID):
		var details map[string]any
		if unknownID.Suggestion != "" {
			details = map[string]any{"suggestion": unknownID.Suggestion}
		}
		code := "unknown_item"
		if errors.Is(err, catalog.ErrUnknownRecipe) {
			code = "unknown_recipe"
		}
		writeErrorBody(ctx, consts.StatusNotFound, code, err.Error(), details)
	case errors.Is(err, catalog.ErrUnknownRecipe):
		writeErrorBody(ctx, consts.StatusNotFound, "unknown_recipe", err.Error(), nil)
	case errors.Is(err, catalog.ErrUnknownItem):
		writeErrorBody(ctx, consts.StatusNotFound, "unknown_item", err.Error(), nil)
	case errors.Is(err, ErrInvalidJSON):
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", err.Error(), nil)
	case errors.Is(err, auth.ErrInvalidRequest),
		errors.Is(err, observe.ErrInvalidRequest),
		errors.Is(err, replay.ErrInvalidRequest),
		errors.Is(err, status.ErrInvalidRequest):
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", err.Error(), nil)
	case errors.Is(err, ports.ErrNotFound):
		writeErrorBody(ctx, consts.StatusNotFound, "not_found", err.Error(), nil)
	case errors.Is(err, ports.ErrConflict):
		writeErrorBody(ctx, consts.StatusConflict, "conflict", err.Error(), nil)
	case errors.Is(err, ports.ErrUnavailable):
		writeErrorBody(ctx, consts.StatusServiceUnavailable, "unavailable", err.Error(), nil)
	default:
		writeErrorBody(ctx, consts.StatusInternalServerError, "internal_error", "internal error", nil)
	}
}

func writeErrorBody(ctx *app.RequestContext, status int, code, message string, details map[string]any) {
	body := map[string]any{
		"code":    code,
		"message": message,
	}
	if len(details) > 0 {
		body["details"] = details
	}
	ctx.JSON(status, map[string]any{"error": body})
}
