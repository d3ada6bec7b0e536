package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"trim-quote/drawing"
	"trim-quote/geometry"
	"trim-quote/types"
)

// DefaultScale is the canvas rendering scale in pixels per inch, used when
// a client does not report one. Domain coordinates are always inches; the
// scale only crosses the pixel boundary.
const DefaultScale = 20.0

var drawings = drawing.NewStore()

func currentUser(c *gin.Context) string {
	session := sessions.Default(c)
	user, _ := session.Get("username").(string)
	return user
}

func toastError(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"status": "error", "message": msg})
}

// drawingView builds the render model: every segment with its derived
// length, the joint angle to its predecessor, and the hem tip when hemmed.
func drawingView(st *drawing.State) gin.H {
	segs := st.Segments()
	views := make([]types.SegmentView, 0, len(segs))
	for i, s := range segs {
		v := types.SegmentView{Segment: s, Length: s.Length()}
		if i > 0 {
			angle := geometry.AngleBetween(segs[i-1], s)
			v.Angle = &angle
		}
		if s.HasHem {
			tip := s.HemTip()
			v.HemTip = &tip
		}
		views = append(views, v)
	}

	view := gin.H{
		"segments":     views,
		"selected_id":  st.SelectedID(),
		"total_inches": st.TotalLength(),
		"bends":        st.BendCount(),
		"grid_step":    geometry.GridStep,
		"major_step":   geometry.MajorGridStep,
	}
	if p, ok := st.Pending(); ok {
		view["pending"] = p
	}
	return view
}

func GetDrawing(c *gin.Context) {
	st := drawings.Get(currentUser(c))
	c.JSON(http.StatusOK, drawingView(st))
}

func PlacePoint(c *gin.Context) {
	var req types.PlacePointRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		toastError(c, http.StatusBadRequest, "Bad point payload")
		return
	}
	if req.Scale <= 0 {
		req.Scale = DefaultScale
	}

	st := drawings.Get(currentUser(c))
	st.PlacePoint(req.X, req.Y, req.Scale)
	c.JSON(http.StatusOK, drawingView(st))
}

func SelectSegment(c *gin.Context) {
	var req types.SelectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		toastError(c, http.StatusBadRequest, "Bad selection payload")
		return
	}

	st := drawings.Get(currentUser(c))
	if err := st.Select(req.ID); err != nil {
		toastError(c, http.StatusNotFound, "Segment not found")
		return
	}
	c.JSON(http.StatusOK, drawingView(st))
}

func DeleteSegment(c *gin.Context) {
	st := drawings.Get(currentUser(c))
	if err := st.DeleteSelected(); err != nil {
		toastError(c, http.StatusConflict, "No segment selected")
		return
	}
	c.JSON(http.StatusOK, drawingView(st))
}

func AddHem(c *gin.Context) {
	var req types.HemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		toastError(c, http.StatusBadRequest, "Bad hem payload")
		return
	}

	st := drawings.Get(currentUser(c))
	if err := st.AddHem(req.AtStart); err != nil {
		toastError(c, http.StatusConflict, "No segment selected")
		return
	}
	c.JSON(http.StatusOK, drawingView(st))
}

func RemoveHem(c *gin.Context) {
	st := drawings.Get(currentUser(c))
	if err := st.RemoveHem(); err != nil {
		if errors.Is(err, drawing.ErrNoHem) {
			toastError(c, http.StatusConflict, "Selected segment has no hem")
		} else {
			toastError(c, http.StatusConflict, "No segment selected")
		}
		return
	}
	c.JSON(http.StatusOK, drawingView(st))
}

func ClearDrawing(c *gin.Context) {
	var req types.ClearRequest
	c.ShouldBindJSON(&req) // absent body means unconfirmed

	st := drawings.Get(currentUser(c))
	if err := st.Clear(req.Confirmed); err != nil {
		c.JSON(http.StatusConflict, gin.H{
			"status":        "error",
			"needs_confirm": true,
			"message":       "Drawing is not empty. Clear it?",
		})
		return
	}
	c.JSON(http.StatusOK, drawingView(st))
}

// ApplyToCalculator is the one-shot bridge: it copies the drawing's current
// totals into the calculator inputs and then leaves the two sides decoupled
// until the next explicit apply.
func ApplyToCalculator(c *gin.Context) {
	st := drawings.Get(currentUser(c))

	session := sessions.Default(c)
	session.Set("applied_inches", st.TotalLength())
	session.Set("applied_bends", st.BendCount())
	session.Save()

	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"inches": st.TotalLength(),
		"bends":  st.BendCount(),
	})
}
