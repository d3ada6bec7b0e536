package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"trim-quote/types"
)

func Calculate(c *gin.Context) {
	var req types.CalcRequest
	if err := c.ShouldBind(&req); err != nil {
		fmt.Println("Bind Error:", err)
	}

	rates := loadSettings()

	var totalInches float64
	for _, in := range req.Inches {
		totalInches += in
	}

	result := rates.Quote(totalInches, req.Bends)

	c.Writer.Header().Set("Content-Type", "text/html")

	if !rates.Configured() {
		c.String(http.StatusOK, `
		--
		<div id="config-prompt" hx-swap-oob="true" class="text-amber-700 text-sm">Enter pricing rates in Settings to enable quotes.</div>
	`)
		return
	}

	response := fmt.Sprintf(`
		$%.2f
		<div id="total-inches-div" hx-swap-oob="true" class="text-gray-900 font-mono">%.3f&quot;</div>
		<div id="price-inch-div" hx-swap-oob="true" class="text-gray-900 font-mono">$%.4f/in</div>
		<div id="material-div" hx-swap-oob="true" class="text-gray-900">$%.2f</div>
		<div id="markup-div" hx-swap-oob="true" class="text-gray-600">$%.2f</div>
		<div id="bend-div" hx-swap-oob="true" class="text-gray-900">$%.2f (%d bends)</div>
		<div id="cut-div" hx-swap-oob="true" class="text-gray-900">$%.2f</div>
		<div id="config-prompt" hx-swap-oob="true"></div>
	`, result.SellingPrice,
		result.TotalInches,
		result.PricePerInch,
		result.MaterialCost,
		result.MarkupAmount,
		result.BendCost, result.Bends,
		result.CutCost)

	c.String(http.StatusOK, response)
}
