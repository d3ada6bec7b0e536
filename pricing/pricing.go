// Package pricing turns a developed length and bend count into a selling
// price using the shop's configured rates. It is pure arithmetic: the
// calculator holds no ambient state, only the Settings value it is given,
// and every quote is recomputed from scratch.
package pricing

import "errors"

// StockUnitFeet is the length of one stick of stock. Sheet economics are
// quoted per 10-foot stick.
const StockUnitFeet = 10

// Settings are the five shop rates behind the trim formula. Cost and price
// fields must be positive and markup non-negative before pricing turns on.
type Settings struct {
	CostPerLF     float64 `form:"cost_per_lf" json:"cost_per_lf"`
	StockWidth    float64 `form:"stock_width" json:"stock_width"`
	MarkupPercent float64 `form:"markup_percent" json:"markup_percent"`
	PricePerBend  float64 `form:"price_per_bend" json:"price_per_bend"`
	CutPrice      float64 `form:"cut_price" json:"cut_price"`
}

// Validate reports the first rate that would make pricing meaningless.
// Saves are rejected on error and the stored settings kept as they were.
func (s Settings) Validate() error {
	switch {
	case s.CostPerLF <= 0:
		return errors.New("cost per linear foot must be greater than zero")
	case s.StockWidth <= 0:
		return errors.New("stock width must be greater than zero")
	case s.MarkupPercent < 0:
		return errors.New("markup percent cannot be negative")
	case s.PricePerBend <= 0:
		return errors.New("price per bend must be greater than zero")
	case s.CutPrice <= 0:
		return errors.New("cut price must be greater than zero")
	}
	return nil
}

// Configured reports whether pricing is enabled. An unconfigured calculator
// is not an error state: it quotes zeros and the UI prompts for rates.
func (s Settings) Configured() bool {
	return s.Validate() == nil
}

// Result is the full price breakdown for one trim profile.
type Result struct {
	TotalInches  float64 `json:"total_inches"`
	Bends        int     `json:"bends"`
	PricePerInch float64 `json:"price_per_inch"` // post-markup
	MaterialCost float64 `json:"material_cost"`
	MarkupAmount float64 `json:"markup_amount"`
	BendCost     float64 `json:"bend_cost"`
	CutCost      float64 `json:"cut_cost"`
	SellingPrice float64 `json:"selling_price"`
}

// Quote prices totalInches of developed length with the given bend count.
// Zero length or zero bends are fine and price to zero components. While
// the settings are incomplete every money field is zero.
func (s Settings) Quote(totalInches float64, bends int) Result {
	if !s.Configured() {
		return Result{TotalInches: totalInches, Bends: bends}
	}

	sheetCost := s.CostPerLF * StockUnitFeet
	costPerInch := sheetCost / s.StockWidth
	materialCost := totalInches * costPerInch

	multiplier := 1 + s.MarkupPercent/100
	pricePerInch := sheetCost * multiplier / s.StockWidth

	bendCost := float64(bends) * s.PricePerBend

	return Result{
		TotalInches:  totalInches,
		Bends:        bends,
		PricePerInch: pricePerInch,
		MaterialCost: materialCost,
		MarkupAmount: totalInches*pricePerInch - materialCost,
		BendCost:     bendCost,
		CutCost:      s.CutPrice,
		SellingPrice: totalInches*pricePerInch + bendCost + s.CutPrice,
	}
}
