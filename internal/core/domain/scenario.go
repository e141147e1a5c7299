package domain

// Scenario is a named budget plan with a base currency. Each scenario owns its own record collections.
type Scenario struct {
	ScenarioID   string       `json:"scenarioID" db:"scenario_id"`
	Name         string       `json:"name" db:"name"`
	BaseCurrency CurrencyCode `json:"baseCurrency" db:"base_currency_code"`
	AuditFields
}

// DisplayCurrencyContext is the single currency totals are shown in for one view of a scenario.
// It is a value: callers thread it through explicitly instead of keeping an ambient override.
type DisplayCurrencyContext struct {
	ScenarioID string       `json:"scenarioID"`
	Base       CurrencyCode `json:"baseCurrency"`
	Override   CurrencyCode `json:"override,omitempty"`
}

// NewDisplayCurrencyContext starts a context on the scenario's base currency.
func NewDisplayCurrencyContext(s Scenario) DisplayCurrencyContext {
	return DisplayCurrencyContext{ScenarioID: s.ScenarioID, Base: s.BaseCurrency}
}

// Effective returns the override when set, otherwise the base currency.
func (d DisplayCurrencyContext) Effective() CurrencyCode {
	if d.Override != "" {
		return d.Override
	}
	return d.Base
}

// IsOverridden reports whether the view shows a currency other than the base one.
func (d DisplayCurrencyContext) IsOverridden() bool {
	return d.Override != "" && d.Override != d.Base
}

// WithOverride returns a copy showing code. Overriding with the base currency clears the override.
func (d DisplayCurrencyContext) WithOverride(code CurrencyCode) DisplayCurrencyContext {
	if code == d.Base {
		code = ""
	}
	d.Override = code
	return d
}

// Reset drops any override, as when the view unmounts.
func (d DisplayCurrencyContext) Reset() DisplayCurrencyContext {
	d.Override = ""
	return d
}

// ForScenario keeps the context if it still belongs to s, and resets it to s's base currency
// when the scenario or its base currency changed.
func (d DisplayCurrencyContext) ForScenario(s Scenario) DisplayCurrencyContext {
	if d.ScenarioID != s.ScenarioID || d.Base != s.BaseCurrency {
		return NewDisplayCurrencyContext(s)
	}
	return d
}
