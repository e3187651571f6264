package server

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"

	"github.com/staynest/staynest-backend/internal/config"
	"github.com/staynest/staynest-backend/internal/handler"
	"github.com/staynest/staynest-backend/internal/mailer"
	appmw "github.com/staynest/staynest-backend/internal/middleware"
	"github.com/staynest/staynest-backend/internal/querycache"
	"github.com/staynest/staynest-backend/internal/repository"
	"github.com/staynest/staynest-backend/internal/service"
	"github.com/staynest/staynest-backend/internal/storage"
)

type Server struct {
	e        *echo.Echo
	Bookings service.BookingService
	sha      string
	build    string
}

func New(ctx context.Context, cfg *config.Config, db *gorm.DB, sha, buildTime string) (*Server, error) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = newRequestValidator()
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		AllowOriginFunc: func(origin string) (bool, error) {
			low := strings.ToLower(origin)
			if strings.HasPrefix(low, "http://localhost:") || strings.HasPrefix(low, "http://127.0.0.1:") ||
				strings.HasPrefix(low, "https://localhost:") || strings.HasPrefix(low, "https://127.0.0.1:") {
				return true, nil
			}
			u, err := url.Parse(origin)
			if err != nil {
				return false, nil
			}
			if u.Scheme != "http" && u.Scheme != "https" {
				return false, nil
			}
			host := u.Hostname()
			if strings.HasSuffix(host, "vercel.app") {
				return true, nil
			}
			return false, nil
		},
	}))

	cache := querycache.New(cfg.CacheTTL)

	propertyRepo := repository.NewPropertyRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	convRepo := repository.NewConversationRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	notifRepo := repository.NewNotificationRepository(db)

	mail := mailer.NewSendGrid(cfg.SendGridAPIKey, cfg.MailFromName, cfg.MailFromEmail)

	notifSvc := service.NewNotificationService(notifRepo, profileRepo, mail)
	propertySvc := service.NewPropertyService(propertyRepo, cache)
	bookingSvc := service.NewBookingService(bookingRepo, propertyRepo, cache, notifSvc)
	convSvc := service.NewConversationService(convRepo, propertyRepo, cache, notifSvc)
	reviewSvc := service.NewReviewService(reviewRepo, bookingRepo, propertyRepo, cache, notifSvc)
	profileSvc := service.NewProfileService(profileRepo)

	propertyHandler := handler.NewPropertyHandler(propertySvc)
	bookingHandler := handler.NewBookingHandler(bookingSvc)
	convHandler := handler.NewConversationHandler(convSvc)
	reviewHandler := handler.NewReviewHandler(reviewSvc)
	profileHandler := handler.NewProfileHandler(profileSvc)
	notifHandler := handler.NewNotificationHandler(notifSvc)

	var uploadHandler *handler.UploadHandler
	if cfg.StorageBucket != "" {
		uploader, err := storage.NewUploader(ctx, cfg.StorageBucket)
		if err != nil {
			return nil, err
		}
		uploadHandler = handler.NewUploadHandler(uploader)
	}

	authMw, err := appmw.NewAuthMiddleware(ctx, cfg.FirebaseProjectID)
	if err != nil {
		return nil, err
	}

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"ok":         "true",
			"git_sha":    sha,
			"build_time": buildTime,
		})
	})

	api := e.Group("/api")

	// Public reads; identity is attached when present so responses can be
	// personalized later without a route change.
	api.GET("/properties", propertyHandler.List, authMw.OptionalAuth)
	api.GET("/properties/:id", propertyHandler.Get, authMw.OptionalAuth)
	api.GET("/properties/:id/reviews", reviewHandler.ListByProperty, authMw.OptionalAuth)

	// Listings.
	api.POST("/properties", propertyHandler.Create, authMw.RequireAuth)
	api.PUT("/properties/:id", propertyHandler.Update, authMw.RequireAuth)
	api.DELETE("/properties/:id", propertyHandler.Delete, authMw.RequireAuth)
	api.GET("/me/properties", propertyHandler.ListMine, authMw.RequireAuth)

	// Bookings.
	api.POST("/properties/:id/bookings", bookingHandler.Create, authMw.RequireAuth)
	api.GET("/me/bookings", bookingHandler.ListMine, authMw.RequireAuth)
	api.GET("/me/host-bookings", bookingHandler.ListHosted, authMw.RequireAuth)
	api.POST("/bookings/:id/confirm", bookingHandler.Confirm, authMw.RequireAuth)
	api.POST("/bookings/:id/cancel", bookingHandler.Cancel, authMw.RequireAuth)

	// Messaging.
	api.POST("/properties/:id/conversations", convHandler.ContactHost, authMw.RequireAuth)
	api.GET("/conversations", convHandler.List, authMw.RequireAuth)
	api.GET("/conversations/:id", convHandler.Get, authMw.RequireAuth)
	api.GET("/conversations/:id/messages", convHandler.ListMessages, authMw.RequireAuth)
	api.POST("/conversations/:id/messages", convHandler.SendMessage, authMw.RequireAuth)
	api.POST("/conversations/:id/read", convHandler.MarkRead, authMw.RequireAuth)

	// Reviews.
	api.POST("/reviews", reviewHandler.Create, authMw.RequireAuth)

	// Profile.
	api.GET("/me", profileHandler.Get, authMw.RequireAuth)
	api.PUT("/me", profileHandler.Update, authMw.RequireAuth)
	api.POST("/me/become-host", profileHandler.BecomeHost, authMw.RequireAuth)

	// Notifications.
	api.GET("/notifications", notifHandler.List, authMw.RequireAuth)
	api.POST("/notifications/read-all", notifHandler.MarkAllRead, authMw.RequireAuth)

	// Uploads.
	if uploadHandler != nil {
		api.POST("/uploads", uploadHandler.Create, authMw.RequireAuth)
	}

	return &Server{e: e, Bookings: bookingSvc, sha: sha, build: buildTime}, nil
}

func (s *Server) Start(addr string) error {
	return s.e.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.e.Shutdown(ctx)
}
