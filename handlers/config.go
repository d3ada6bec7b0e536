package handlers

import (
	"encoding/json"
	"html/template"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"trim-quote/database"
	"trim-quote/geometry"
	"trim-quote/types"
)

// API: save the calculator inputs as a named configuration. The current
// drawing, if any, is snapshotted alongside for later re-rendering; only
// the scalar inputs ever feed the calculator back.
func SaveConfig(c *gin.Context) {
	var req types.ConfigSubmission
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Configuration needs a name"})
		return
	}

	session := sessions.Default(c)
	user, _ := session.Get("username").(string)

	// Duplicate check against the latest save under the same name.
	var lastID, lastBends int
	err := database.DB.QueryRow(
		"SELECT id, bends FROM saved_configs WHERE name = ? ORDER BY created_at DESC, id DESC LIMIT 1",
		req.Name).Scan(&lastID, &lastBends)
	if err == nil && lastBends == req.Bends && sameLengths(lastID, req.Inches) {
		c.JSON(http.StatusConflict, gin.H{"error": "No changes detected (same lengths and bends as the last save)"})
		return
	}

	res, err := database.DB.Exec(
		"INSERT INTO saved_configs (name, bends, created_by) VALUES (?, ?, ?)",
		req.Name, req.Bends, user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database Error"})
		return
	}
	configID, _ := res.LastInsertId()

	stmt, _ := database.DB.Prepare(
		"INSERT INTO saved_config_lengths (config_id, position, inches) VALUES (?, ?, ?)")
	for i, inches := range req.Inches {
		stmt.Exec(configID, i, inches)
	}

	segStmt, _ := database.DB.Prepare(`INSERT INTO drawing_segments
		(config_id, label, start_x, start_y, end_x, end_y, has_hem, hem_at_start)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	for _, s := range drawings.Get(user).Segments() {
		segStmt.Exec(configID, s.Label, s.Start.X, s.Start.Y, s.End.X, s.End.Y, s.HasHem, s.HemAtStart)
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "config_id": configID})
}

// configLengths returns a configuration's saved length entries in position
// order.
func configLengths(configID int) []float64 {
	rows, err := database.DB.Query(
		"SELECT inches FROM saved_config_lengths WHERE config_id = ? ORDER BY position", configID)
	if err != nil {
		return nil
	}
	defer rows.Close()

	var inches []float64
	for rows.Next() {
		var v float64
		rows.Scan(&v)
		inches = append(inches, v)
	}
	return inches
}

func sameLengths(configID int, inches []float64) bool {
	saved := configLengths(configID)
	if len(saved) != len(inches) {
		return false
	}
	for i := range saved {
		if math.Abs(saved[i]-inches[i]) > 0.001 {
			return false
		}
	}
	return true
}

// Page: saved configuration list, newest first.
func ShowHistory(c *gin.Context) {
	session := sessions.Default(c)
	user := session.Get("username")
	isAdmin := session.Get("role") == "ADMIN"

	rows, _ := database.DB.Query(
		"SELECT id, name, bends, created_by, created_at FROM saved_configs ORDER BY created_at DESC, id DESC")

	var configs []types.SavedConfig
	for rows.Next() {
		var cfg types.SavedConfig
		rows.Scan(&cfg.ID, &cfg.Name, &cfg.Bends, &cfg.CreatedBy, &cfg.CreatedAt)
		configs = append(configs, cfg)
	}
	rows.Close()

	for i := range configs {
		configs[i].Inches = configLengths(configs[i].ID)
	}

	c.HTML(http.StatusOK, "history.html", gin.H{
		"Configs": configs,
		"User":    user,
		"IsAdmin": isAdmin,
	})
}

// Page: reopen the calculator with a saved configuration's inputs. The
// length and bend fields come from the saved scalars regardless of what the
// drawing surface currently shows; any saved segments ride along purely for
// display.
func LoadConfig(c *gin.Context) {
	configID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.Redirect(http.StatusFound, "/history")
		return
	}

	session := sessions.Default(c)
	username := session.Get("username")
	role := session.Get("role")

	var name string
	var bends int
	err = database.DB.QueryRow(
		"SELECT name, bends FROM saved_configs WHERE id=?", configID).Scan(&name, &bends)
	if err != nil {
		c.Redirect(http.StatusFound, "/history")
		return
	}

	inches := configLengths(configID)

	var segments []geometry.Segment
	segRows, _ := database.DB.Query(`SELECT id, label, start_x, start_y, end_x, end_y, has_hem, hem_at_start
		FROM drawing_segments WHERE config_id=?`, configID)
	for segRows.Next() {
		var s geometry.Segment
		segRows.Scan(&s.ID, &s.Label, &s.Start.X, &s.Start.Y, &s.End.X, &s.End.Y, &s.HasHem, &s.HemAtStart)
		segments = append(segments, s)
	}
	segmentJSON, _ := json.Marshal(segments)

	rates := loadSettings()

	c.HTML(http.StatusOK, "index.html", gin.H{
		"Rates":        rates,
		"Configured":   rates.Configured(),
		"User":         username,
		"IsAdmin":      role == "ADMIN",
		"GridStep":     geometry.GridStep,
		"MajorStep":    geometry.MajorGridStep,
		"Scale":        DefaultScale,
		"IsLoadMode":   true,
		"ConfigID":     configID,
		"ConfigName":   name,
		"LoadedInches": inches,
		"LoadedBends":  bends,
		"SegmentJSON":  template.JS(segmentJSON),
	})
}
