package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/budget_engine/internal/core/domain"
	portssvc "github.com/SscSPs/budget_engine/internal/core/ports/services"
	"github.com/SscSPs/budget_engine/internal/dto"
	"github.com/SscSPs/budget_engine/internal/middleware"
	"github.com/gin-gonic/gin"
)

// scenarioHandler serves scenario summaries in a display currency.
type scenarioHandler struct {
	scenarioService      portssvc.ScenarioSvcFacade
	normalizationService portssvc.NormalizationSvc
}

func newScenarioHandler(ss portssvc.ScenarioSvcFacade, ns portssvc.NormalizationSvc) *scenarioHandler {
	return &scenarioHandler{scenarioService: ss, normalizationService: ns}
}

// RegisterScenarioRoutes registers routes under /scenarios.
func RegisterScenarioRoutes(rg *gin.RouterGroup, ss portssvc.ScenarioSvcFacade, ns portssvc.NormalizationSvc) {
	h := newScenarioHandler(ss, ns)

	scenario := rg.Group("/scenarios/:scenario_id")
	{
		scenario.GET("", h.getScenario)
		scenario.GET("/summary", h.getSummary)
		scenario.GET("/collections/:domain/totals", h.getCollectionTotals)
		scenario.GET("/goals", h.getGoals)
		scenario.PUT("/base-currency", h.updateBaseCurrency)
	}
}

// displayContext resolves the view currency from the optional ?currency= query parameter.
func (h *scenarioHandler) displayContext(c *gin.Context, logger *slog.Logger) (domain.DisplayCurrencyContext, bool) {
	display, err := h.normalizationService.DisplayContext(c.Request.Context(), c.Param("scenario_id"), c.Query("currency"))
	if err != nil {
		respondError(c, logger, err, "Failed to load scenario")
		return domain.DisplayCurrencyContext{}, false
	}
	return display, true
}

// getScenario godoc
// @Summary Get a scenario
// @Tags scenarios
// @Produce  json
// @Param   scenario_id path string true "Scenario ID"
// @Success 200 {object} dto.ScenarioResponse
// @Failure 404 {object} map[string]string "Scenario not found"
// @Failure 500 {object} map[string]string "Failed to retrieve scenario"
// @Security BearerAuth
// @Router /scenarios/{scenario_id} [get]
func (h *scenarioHandler) getScenario(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("scenario_id", c.Param("scenario_id")))

	scenario, err := h.scenarioService.GetScenario(c.Request.Context(), c.Param("scenario_id"))
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve scenario")
		return
	}
	c.JSON(http.StatusOK, dto.ToScenarioResponse(scenario))
}

// getSummary godoc
// @Summary Scenario summary
// @Description Converts every collection to the display currency and returns totals, goal schedules and the monthly remainder.
// @Description Records whose conversion is not available yet are shown at their native amount and counted as unconverted.
// @Tags scenarios
// @Produce  json
// @Param   scenario_id path string true "Scenario ID"
// @Param   currency query string false "Display currency override (3 letters)"
// @Success 200 {object} dto.ScenarioSummaryResponse
// @Failure 400 {object} map[string]string "Invalid currency"
// @Failure 404 {object} map[string]string "Scenario not found"
// @Failure 500 {object} map[string]string "Failed to build summary"
// @Security BearerAuth
// @Router /scenarios/{scenario_id}/summary [get]
func (h *scenarioHandler) getSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("scenario_id", c.Param("scenario_id")))
	display, ok := h.displayContext(c, logger)
	if !ok {
		return
	}

	summary, err := h.normalizationService.ScenarioSummary(c.Request.Context(), display)
	if err != nil {
		respondError(c, logger, err, "Failed to build summary")
		return
	}
	logger.Info("Scenario summary built",
		slog.String("currency", string(display.Effective())),
		slog.Int("unconverted", summary.Income.Unconverted+summary.Expenses.Unconverted+summary.Savings.Unconverted))
	c.JSON(http.StatusOK, dto.ToScenarioSummaryResponse(summary))
}

// getCollectionTotals godoc
// @Summary Totals of one collection
// @Description income and expense return frequency-normalized totals, saving returns the stock total, goal returns schedules.
// @Tags scenarios
// @Produce  json
// @Param   scenario_id path string true "Scenario ID"
// @Param   domain path string true "Collection" Enums(income, expense, saving, goal)
// @Param   currency query string false "Display currency override (3 letters)"
// @Success 200 {object} dto.CollectionSummaryResponse
// @Failure 400 {object} map[string]string "Unknown collection or invalid currency"
// @Failure 404 {object} map[string]string "Scenario not found"
// @Failure 500 {object} map[string]string "Failed to compute totals"
// @Security BearerAuth
// @Router /scenarios/{scenario_id}/collections/{domain}/totals [get]
func (h *scenarioHandler) getCollectionTotals(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(
		slog.String("scenario_id", c.Param("scenario_id")),
		slog.String("domain", c.Param("domain")))

	collection, err := domain.ParseCollectionDomain(c.Param("domain"))
	if err != nil {
		respondError(c, logger, err, "Failed to compute totals")
		return
	}
	display, ok := h.displayContext(c, logger)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	switch collection {
	case domain.DomainSaving:
		summary, err := h.normalizationService.SavingsSummary(ctx, display)
		if err != nil {
			respondError(c, logger, err, "Failed to compute totals")
			return
		}
		c.JSON(http.StatusOK, dto.ToSavingsSummaryResponse(summary))
	case domain.DomainGoal:
		summary, err := h.normalizationService.GoalSchedules(ctx, display)
		if err != nil {
			respondError(c, logger, err, "Failed to compute totals")
			return
		}
		c.JSON(http.StatusOK, dto.ToGoalsSummaryResponse(summary))
	default:
		summary, err := h.normalizationService.CollectionSummary(ctx, display, collection)
		if err != nil {
			respondError(c, logger, err, "Failed to compute totals")
			return
		}
		c.JSON(http.StatusOK, dto.ToCollectionSummaryResponse(summary))
	}
}

// getGoals godoc
// @Summary Goal schedules
// @Tags scenarios
// @Produce  json
// @Param   scenario_id path string true "Scenario ID"
// @Param   currency query string false "Display currency override (3 letters)"
// @Success 200 {object} dto.GoalsSummaryResponse
// @Failure 404 {object} map[string]string "Scenario not found"
// @Failure 500 {object} map[string]string "Failed to compute goal schedules"
// @Security BearerAuth
// @Router /scenarios/{scenario_id}/goals [get]
func (h *scenarioHandler) getGoals(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("scenario_id", c.Param("scenario_id")))
	display, ok := h.displayContext(c, logger)
	if !ok {
		return
	}
	summary, err := h.normalizationService.GoalSchedules(c.Request.Context(), display)
	if err != nil {
		respondError(c, logger, err, "Failed to compute goal schedules")
		return
	}
	c.JSON(http.StatusOK, dto.ToGoalsSummaryResponse(summary))
}

// updateBaseCurrency godoc
// @Summary Change a scenario's base currency
// @Description Cached conversions of the scenario are discarded and recomputed on the next read.
// @Tags scenarios
// @Accept  json
// @Produce  json
// @Param   scenario_id path string true "Scenario ID"
// @Param   request body dto.UpdateBaseCurrencyRequest true "New base currency"
// @Success 200 {object} dto.ScenarioResponse
// @Failure 400 {object} map[string]string "Invalid currency"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Scenario not found"
// @Failure 500 {object} map[string]string "Failed to update scenario"
// @Security BearerAuth
// @Router /scenarios/{scenario_id}/base-currency [put]
func (h *scenarioHandler) updateBaseCurrency(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("scenario_id", c.Param("scenario_id")))
	var req dto.UpdateBaseCurrencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateBaseCurrency", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	scenario, err := h.scenarioService.UpdateBaseCurrency(c.Request.Context(), c.Param("scenario_id"), req.BaseCurrency, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to update scenario")
		return
	}
	logger.Info("Base currency updated", slog.String("base_currency", string(scenario.BaseCurrency)))
	c.JSON(http.StatusOK, dto.ToScenarioResponse(scenario))
}
