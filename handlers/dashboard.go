package handlers

import (
	"math/rand"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"trim-quote/geometry"
)

func ShowDashboard(c *gin.Context) {
	session := sessions.Default(c)
	username := session.Get("username")
	role := session.Get("role")

	rates := loadSettings()

	// One-shot handoff from the drawing surface: consume any applied totals
	// so the next page load starts decoupled again.
	data := gin.H{
		"Rates":      rates,
		"Configured": rates.Configured(),
		"User":       username,
		"IsAdmin":    role == "ADMIN",
		"GridStep":   geometry.GridStep,
		"MajorStep":  geometry.MajorGridStep,
		"Scale":      DefaultScale,
	}
	if inches, ok := session.Get("applied_inches").(float64); ok {
		data["AppliedInches"] = inches
	}
	if bends, ok := session.Get("applied_bends").(int); ok {
		data["AppliedBends"] = bends
	}
	session.Delete("applied_inches")
	session.Delete("applied_bends")
	session.Save()

	c.HTML(http.StatusOK, "index.html", data)
}

// AddLengthRow returns one more manual length input for the calculator
// form. The random id only keeps HTMX swap targets distinct.
func AddLengthRow(c *gin.Context) {
	newID := rand.Intn(90000) + 1000
	c.HTML(http.StatusOK, "length_row.html", gin.H{"ID": newID})
}

func RemoveLengthRow(c *gin.Context) {
	c.String(http.StatusOK, "")
}
