package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/viverodavinci/vivero-api/docs"
	"github.com/viverodavinci/vivero-api/internal/application/analytics"
	"github.com/viverodavinci/vivero-api/internal/application/auth"
	"github.com/viverodavinci/vivero-api/internal/application/sales"
	"github.com/viverodavinci/vivero-api/internal/application/usecase"
	"github.com/viverodavinci/vivero-api/internal/infrastructure/events"
	infrapdf "github.com/viverodavinci/vivero-api/internal/infrastructure/pdf"
	"github.com/viverodavinci/vivero-api/internal/infrastructure/postgres"
	"github.com/viverodavinci/vivero-api/internal/infrastructure/storage"
	"github.com/viverodavinci/vivero-api/internal/infrastructure/xmlreceipt"
	httpRouter "github.com/viverodavinci/vivero-api/internal/interfaces/http"
	"github.com/viverodavinci/vivero-api/pkg/config"
	"github.com/viverodavinci/vivero-api/pkg/logger"
)

const storeName = "Vivero Da Vinci"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	if cfg.DB.Migrate {
		if err := postgres.Migrate(cfg.DB.ConnectionString()); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		log.Info().Msg("migraciones aplicadas")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	employeeRepo := postgres.NewEmployeeRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	clientRepo := postgres.NewClientRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	images, err := storage.NewDiskImageStore(cfg.Upload.Dir, cfg.Upload.URLPrefix, cfg.Upload.MaxBytes)
	if err != nil {
		log.Fatal().Err(err).Str("dir", cfg.Upload.Dir).Msg("carpeta de imágenes")
	}

	// Eventos de ventas: Kafka si hay brokers, si no se descartan.
	var publisher sales.EventPublisher = events.NopPublisher{}
	if cfg.Kafka.Enabled() {
		kp := events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.SalesTopic, log)
		defer func() {
			if err := kp.Close(); err != nil {
				log.Error().Err(err).Msg("cerrar publicador kafka")
			}
		}()
		publisher = kp
		log.Info().Strs("brokers", cfg.Kafka.Brokers).Str("topic", cfg.Kafka.SalesTopic).Msg("eventos de ventas en kafka")
	}

	employeeUC := usecase.NewEmployeeUseCase(employeeRepo, cfg.Sales.DefaultEmployeePassword)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo)
	clientUC := usecase.NewClientUseCase(clientRepo)
	productUC := usecase.NewProductUseCase(productRepo, categoryRepo, images, log)
	saleUC := sales.NewSaleUseCase(txRunner, saleRepo, productRepo, clientRepo, publisher, cfg.Sales.Pricing, log)
	receiptUC := sales.NewReceiptUseCase(saleRepo, infrapdf.NewReceiptGenerator(storeName), xmlreceipt.NewBuilder(storeName))
	dashboardUC := analytics.NewDashboardUseCase(reportRepo, cfg.Sales.LowStockThreshold)
	authUC := auth.NewAuthUseCase(employeeRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		// margen para los campos del formulario además de la imagen
		BodyLimit:    int(cfg.Upload.MaxBytes) + 1<<20,
		ErrorHandler: httpRouter.ErrorHandler(log),
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestID())
	app.Use(httpRouter.RequestLogger(log))
	app.Use(cors.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    docs.SwaggerInfo.Title,
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:          authUC,
		EmployeeUC:      employeeUC,
		CategoryUC:      categoryUC,
		ClientUC:        clientUC,
		ProductUC:       productUC,
		SaleUC:          saleUC,
		ReceiptUC:       receiptUC,
		DashboardUC:     dashboardUC,
		JWTSecret:       cfg.JWT.Secret,
		ServiceName:     cfg.App.Name,
		UploadDir:       images.Dir(),
		UploadURLPrefix: images.URLPrefix(),
		Env:             cfg.App.Env,
		FrontendDist:    cfg.App.FrontendDist,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
