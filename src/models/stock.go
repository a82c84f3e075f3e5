package models

// MStock is an immutable quote snapshot shown on the dashboard.
type MStock struct {
	Code          string  `json:"code" yaml:"code"`
	Name          string  `json:"name" yaml:"name"`
	Price         float64 `json:"price" yaml:"price"`
	Change        float64 `json:"change" yaml:"change"`
	ChangePercent float64 `json:"changePercent" yaml:"change_percent"`
	Volume        float64 `json:"volume" yaml:"volume"`
}

// MSearchResult is the {code, name} projection produced by a search collaborator.
type MSearchResult struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// ToSearchResult projects a stock onto its search result form.
func (s MStock) ToSearchResult() MSearchResult {
	return MSearchResult{Code: s.Code, Name: s.Name}
}
