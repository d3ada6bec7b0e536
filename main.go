package main

import (
	"trim-quote/database"
	"trim-quote/handlers"
	"trim-quote/middleware"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

func main() {
	database.InitDB()
	r := gin.Default()
	r.LoadHTMLGlob("templates/*")

	store := cookie.NewStore([]byte("secret"))
	r.Use(sessions.Sessions("trimsession", store))

	r.GET("/login", handlers.ShowLogin)
	r.POST("/login", handlers.Login)
	r.GET("/logout", handlers.Logout)

	authorized := r.Group("/")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.GET("/", handlers.ShowDashboard)
		authorized.POST("/calculate", handlers.Calculate)
		authorized.GET("/length/add", handlers.AddLengthRow)
		authorized.DELETE("/length/remove", handlers.RemoveLengthRow)

		// DRAWING SURFACE
		authorized.GET("/drawing", handlers.GetDrawing)
		authorized.POST("/drawing/point", handlers.PlacePoint)
		authorized.POST("/drawing/select", handlers.SelectSegment)
		authorized.DELETE("/drawing/segment", handlers.DeleteSegment)
		authorized.POST("/drawing/hem", handlers.AddHem)
		authorized.DELETE("/drawing/hem", handlers.RemoveHem)
		authorized.POST("/drawing/clear", handlers.ClearDrawing)
		authorized.POST("/drawing/apply", handlers.ApplyToCalculator)

		// SAVED CONFIGURATIONS
		authorized.POST("/configs/save", handlers.SaveConfig)
		authorized.GET("/history", handlers.ShowHistory)
		authorized.GET("/configs/load/:id", handlers.LoadConfig)

		admin := authorized.Group("/settings")
		admin.Use(middleware.AdminRequired())
		{
			admin.GET("", handlers.ShowSettings)
			admin.POST("", handlers.UpdateSettings)
		}
	}

	r.Run(":8080")
}
