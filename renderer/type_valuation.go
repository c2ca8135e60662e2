package renderer

import "github.com/etnz/mwr"

// Valuation is the holdings report in json.
type Valuation struct {
	Date      string              `json:"date"`
	Total     string              `json:"total"`
	Positions []ValuationPosition `json:"positions"`
}

// ValuationPosition represents a single open position.
type ValuationPosition struct {
	Symbol      string `json:"symbol"`
	Shares      string `json:"shares"`
	Price       string `json:"price"`
	MarketValue string `json:"marketValue"`
	CostBasis   string `json:"costBasis"`
	Gain        string `json:"gain"`
	GainPercent string `json:"gainPercent"`
	Allocation  string `json:"allocation"`
}

// NewValuation creates the holdings report of s, limited to the top
// positions by market value. A non positive top keeps every position in
// order of first purchase.
func NewValuation(s *mwr.Snapshot, top int) *Valuation {
	positions := s.Positions()
	if top > 0 {
		positions = s.Top(top)
	}
	v := &Valuation{
		Date:      s.On().String(),
		Total:     s.TotalValue().String(),
		Positions: make([]ValuationPosition, 0, len(positions)),
	}
	for _, p := range positions {
		v.Positions = append(v.Positions, ValuationPosition{
			Symbol:      p.Symbol,
			Shares:      p.Shares.String(),
			Price:       p.CurrentPrice.String(),
			MarketValue: p.MarketValue().String(),
			CostBasis:   p.CostBasis.String(),
			Gain:        p.UnrealizedGain().SignedString(),
			GainPercent: p.UnrealizedGainPercent().SignedString(),
			Allocation:  s.Allocation(p).String(),
		})
	}
	return v
}
