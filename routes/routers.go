package routes

import (
	"net/http"
	"strings"

	"travelhub/constants"
	"travelhub/controllers"
	_ "travelhub/docs"
	middlewares "travelhub/middleware"
	"travelhub/response"
	"travelhub/services"
	"travelhub/services/metrics"

	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// Dependencies là các service đã khởi tạo ở main
type Dependencies struct {
	Logger    *zap.Logger
	Tokens    *services.TokenService
	Auth      *services.AuthService
	Geography *services.GeographyService
	Providers *services.ProviderService
	Items     *services.BookableItemService
	Metrics   *metrics.Metrics
	Gatherer  prometheus.Gatherer
	Melody    *melody.Melody
}

func SetupRoutes(router *gin.Engine, deps Dependencies) {
	router.Use(middlewares.RequestID(), middlewares.Logger(deps.Logger), middlewares.Metrics(deps.Metrics))

	authController := controllers.NewAuthController(deps.Auth, deps.Logger)
	geoController := controllers.NewGeographyController(deps.Geography, deps.Logger)
	providerController := controllers.NewProviderController(deps.Providers, deps.Logger)
	itemController := controllers.NewBookableItemController(deps.Items, deps.Logger)

	authAny := middlewares.AuthMiddleware(deps.Tokens)
	ownerOnly := middlewares.AuthMiddleware(deps.Tokens, constants.RoleOwner)
	adminOnly := middlewares.AuthMiddleware(deps.Tokens, constants.RoleAdmin)

	v1 := router.Group("/api/v1")

	v1.POST("/auth/register", authController.Register)
	v1.GET("/auth/verify-email", authController.VerifyEmail)
	v1.POST("/auth/login", authController.Login)
	v1.GET("/auth/profile", authAny, authController.Profile)
	v1.POST("/auth/forgot-password", authController.ForgotPassword)
	v1.POST("/auth/reset-password", authController.ResetPassword)

	owner := v1.Group("/owner", ownerOnly)
	owner.POST("/providers", providerController.CreateProvider)
	owner.GET("/providers", providerController.ListMyProviders)
	owner.GET("/providers/:providerId", providerController.GetMyProvider)
	owner.PATCH("/providers/:providerId", providerController.UpdateMyProvider)
	owner.GET("/providers/:providerId/bookable-items", itemController.ListProviderItems)

	owner.POST("/bookable-items", itemController.CreateItem)
	owner.GET("/bookable-items/:idItem", itemController.GetItem)
	owner.POST("/bookable-items/:idItem/media", itemController.AddMedia)
	owner.POST("/bookable-items/:idItem/rooms", itemController.AddRoom)
	owner.POST("/bookable-items/:idItem/vehicle", itemController.UpsertVehicle)
	owner.POST("/bookable-items/:idItem/positions", itemController.AddPosition)

	geo := v1.Group("/admin/geography")
	geo.GET("/countries", geoController.ListCountries)
	geo.GET("/cities", geoController.ListCities)
	geo.GET("/areas", geoController.ListAreas)
	geo.GET("/pois", geoController.ListPointsOfInterest)

	geo.POST("/countries", adminOnly, geoController.CreateCountry)
	geo.PATCH("/countries/:id", adminOnly, geoController.UpdateCountry)
	geo.DELETE("/countries/:id", adminOnly, geoController.DeleteCountry)
	geo.POST("/cities", adminOnly, geoController.CreateCity)
	geo.PATCH("/cities/:id", adminOnly, geoController.UpdateCity)
	geo.DELETE("/cities/:id", adminOnly, geoController.DeleteCity)
	geo.POST("/areas", adminOnly, geoController.CreateArea)
	geo.PATCH("/areas/:id", adminOnly, geoController.UpdateArea)
	geo.DELETE("/areas/:id", adminOnly, geoController.DeleteArea)
	geo.POST("/pois", adminOnly, geoController.CreatePointOfInterest)
	geo.PATCH("/pois/:id", adminOnly, geoController.UpdatePointOfInterest)
	geo.DELETE("/pois/:id", adminOnly, geoController.DeletePointOfInterest)

	admin := v1.Group("/admin", adminOnly)
	admin.GET("/providers", providerController.ListProviders)
	admin.PATCH("/providers/:id", providerController.AdminUpdateProvider)
	admin.PATCH("/providers/:id/status", providerController.ReviewProvider)

	v1.GET("/bookable-items", itemController.Browse)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	if deps.Gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	//ws
	if deps.Melody != nil {
		router.GET("/ws", adminSocket(deps.Tokens, deps.Melody))
	}
}

// adminSocket chỉ nhận admin. Trình duyệt không gửi được header khi mở websocket nên cho phép ?token=
func adminSocket(tokens *services.TokenService, m *melody.Melody) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			token = strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
		}
		if token == "" {
			response.Unauthorized(c)
			return
		}

		info, err := tokens.Parse(token)
		if err != nil {
			response.Error(c, nil, err)
			return
		}
		if info.Role != constants.RoleAdmin {
			response.Forbidden(c)
			return
		}

		keys := map[string]interface{}{
			"role":   string(info.Role),
			"userId": info.UserId.String(),
		}
		if err := m.HandleRequestWithKeys(c.Writer, c.Request, keys); err != nil {
			c.Error(err)
		}
	}
}
