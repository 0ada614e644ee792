package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"workspace/internal/config"
	"workspace/internal/database"
	"workspace/internal/domain"
	"workspace/internal/middleware"
	"workspace/internal/modules/auth"
	"workspace/internal/modules/booking"
	"workspace/internal/modules/catalog"
	"workspace/internal/modules/credits"
	"workspace/internal/modules/guest"
	"workspace/internal/modules/notification"
	jwtsvc "workspace/internal/pkg/jwt"
	"workspace/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}

	if err := db.AutoMigrate(
		&domain.Organization{},
		&domain.User{},
		&domain.Location{},
		&domain.RoomType{},
		&domain.RoomInstance{},
		&domain.Booking{},
		&domain.GuestInvitation{},
		&credits.CreditTransaction{},
		&notification.Notification{},
	); err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	bookingRepo := repository.NewBookingRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTAccessTTL)

	hub := notification.NewHub()
	notifRepo := notification.NewRepository(db)
	notifService := notification.NewService(notifRepo, hub)
	notifHandler := notification.NewHandler(notifService, hub)

	ledger := credits.NewLedger(db)
	creditsHandler := credits.NewHandler(ledger)

	guestService := guest.NewService(db, notifService)
	guestHandler := guest.NewHandler(guestService)

	policy := booking.PolicyFromConfig(cfg)
	bookingService := booking.NewService(
		db,
		bookingRepo,
		roomRepo,
		ledger,
		userRepo,
		policy,
		notifService,
		guestService,
	)
	bookingHandler := booking.NewHandler(bookingService)

	catalogService := catalog.NewService(roomRepo, bookingRepo, cfg.BookingLocation)
	catalogHandler := catalog.NewHandler(catalogService)

	authService := auth.NewService(userRepo, j)
	authHandler := auth.NewHandler(authService)

	if cfg.AppEnv == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(middleware.CORS())

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterRoutes(v1)
		catalogHandler.RegisterRoutes(v1)

		protected := v1.Group("/")
		protected.Use(middleware.JWTAuth(j))
		{
			bookingHandler.RegisterRoutes(protected)
			guestHandler.RegisterRoutes(protected)
			creditsHandler.RegisterRoutes(protected)
			notifHandler.RegisterRoutes(protected)
		}

		admin := v1.Group("/admin")
		admin.Use(middleware.JWTAuth(j), middleware.RequireRoles(domain.RoleSuperAdmin))
		{
			bookingHandler.RegisterAdminRoutes(admin)
			catalogHandler.RegisterAdminRoutes(admin)
			creditsHandler.RegisterAdminRoutes(admin)
		}
	}

	log.Println("listening on", cfg.HTTPAddr)
	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatal(err)
	}
}
