package dto

import (
	"time"

	"github.com/SscSPs/budget_engine/internal/core/domain"
)

// UpdateBaseCurrencyRequest changes the currency a scenario is planned in.
type UpdateBaseCurrencyRequest struct {
	BaseCurrency string `json:"baseCurrency" binding:"required,len=3"`
}

// ScenarioResponse defines the data returned for a scenario.
type ScenarioResponse struct {
	ScenarioID    string           `json:"scenarioID"`
	Name          string           `json:"name"`
	BaseCurrency  CurrencyResponse `json:"baseCurrency"`
	LastUpdatedAt time.Time        `json:"lastUpdatedAt"`
	LastUpdatedBy string           `json:"lastUpdatedBy"`
}

// ToScenarioResponse converts a domain.Scenario to ScenarioResponse DTO
func ToScenarioResponse(s *domain.Scenario) ScenarioResponse {
	return ScenarioResponse{
		ScenarioID:    s.ScenarioID,
		Name:          s.Name,
		BaseCurrency:  ToCurrencyResponse(s.BaseCurrency),
		LastUpdatedAt: s.LastUpdatedAt,
		LastUpdatedBy: s.LastUpdatedBy,
	}
}
