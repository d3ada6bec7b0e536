package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"trim-quote/database"
	"trim-quote/pricing"
)

// loadSettings reads the single pricing row. A fresh database leaves every
// rate at zero, which keeps the calculator in its unconfigured state.
func loadSettings() pricing.Settings {
	var s pricing.Settings
	database.DB.QueryRow("SELECT cost_per_lf, stock_width, markup_percent, price_per_bend, cut_price FROM settings WHERE id=1").
		Scan(&s.CostPerLF, &s.StockWidth, &s.MarkupPercent, &s.PricePerBend, &s.CutPrice)
	return s
}

func ShowSettings(c *gin.Context) {
	rates := loadSettings()
	c.HTML(http.StatusOK, "settings.html", gin.H{
		"Rates":      rates,
		"Configured": rates.Configured(),
	})
}

// UpdateSettings validates before writing; a rejected save leaves the
// stored row exactly as it was.
func UpdateSettings(c *gin.Context) {
	var s pricing.Settings
	if err := c.ShouldBind(&s); err != nil {
		toastError(c, http.StatusBadRequest, "Bad settings payload")
		return
	}

	if err := s.Validate(); err != nil {
		toastError(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	_, err := database.DB.Exec(
		"UPDATE settings SET cost_per_lf=?, stock_width=?, markup_percent=?, price_per_bend=?, cut_price=? WHERE id=1",
		s.CostPerLF, s.StockWidth, s.MarkupPercent, s.PricePerBend, s.CutPrice)
	if err != nil {
		toastError(c, http.StatusInternalServerError, "Database Error")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Settings saved"})
}
