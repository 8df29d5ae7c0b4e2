// importer carga productos desde un CSV exportado de Excel y, opcionalmente,
// crea el primer empleado administrador.
//
// Uso:
//
//	go run ./cmd/importer -products productos.csv [-encoding latin1] \
//	    [-admin-email admin@vivero.com -admin-password secreto] [-dry-run]
//
// Con -dry-run todo se ejecuta contra un store en memoria y no se toca la base de datos.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/viverodavinci/vivero-api/internal/application/usecase"
	"github.com/viverodavinci/vivero-api/internal/domain/repository"
	"github.com/viverodavinci/vivero-api/internal/importer"
	"github.com/viverodavinci/vivero-api/internal/infrastructure/memstore"
	"github.com/viverodavinci/vivero-api/internal/infrastructure/postgres"
	"github.com/viverodavinci/vivero-api/pkg/config"
	"github.com/viverodavinci/vivero-api/pkg/logger"
)

type repos struct {
	employees  repository.EmployeeRepository
	categories repository.CategoryRepository
	products   repository.ProductRepository
}

func main() {
	productsPath := flag.String("products", "", "CSV name;description;price;stock;category")
	encoding := flag.String("encoding", importer.EncodingUTF8, "utf8 | latin1 | cp1252")
	adminName := flag.String("admin-name", "Administrador", "nombre del administrador inicial")
	adminEmail := flag.String("admin-email", "", "crea este administrador si no existe")
	adminPassword := flag.String("admin-password", "", "password del administrador inicial")
	dryRun := flag.Bool("dry-run", false, "validar sin escribir en la base de datos")
	flag.Parse()

	if *productsPath == "" && *adminEmail == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.Read()
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})
	ctx := context.Background()

	var r repos
	if *dryRun {
		store := memstore.New()
		r = repos{employees: store.Employees(), categories: store.Categories(), products: store.Products()}
		log.Info().Msg("modo dry-run: sin cambios en la base de datos")
	} else {
		if cfg.DB.Migrate {
			if err := postgres.Migrate(cfg.DB.ConnectionString()); err != nil {
				log.Fatal().Err(err).Msg("migraciones")
			}
		}
		pool, err := postgres.NewPool(ctx, cfg.DB, postgres.PoolOptions{MaxConns: 2})
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		r = repos{
			employees:  postgres.NewEmployeeRepository(pool),
			categories: postgres.NewCategoryRepository(pool),
			products:   postgres.NewProductRepository(pool),
		}
	}

	if err := run(ctx, r, log, options{
		productsPath:  *productsPath,
		encoding:      *encoding,
		adminName:     *adminName,
		adminEmail:    *adminEmail,
		adminPassword: *adminPassword,
		employeePass:  cfg.Sales.DefaultEmployeePassword,
	}); err != nil {
		log.Error().Err(err).Msg("importación fallida")
		os.Exit(1)
	}
}

type options struct {
	productsPath  string
	encoding      string
	adminName     string
	adminEmail    string
	adminPassword string
	employeePass  string
}

func run(ctx context.Context, r repos, log *logger.Logger, opts options) error {
	if opts.adminEmail != "" {
		employees := usecase.NewEmployeeUseCase(r.employees, opts.employeePass)
		created, err := employees.EnsureAdmin(ctx, opts.adminName, opts.adminEmail, opts.adminPassword)
		if err != nil {
			return fmt.Errorf("administrador: %w", err)
		}
		log.Info().Str("email", opts.adminEmail).Bool("creado", created).Msg("administrador")
	}

	if opts.productsPath == "" {
		return nil
	}
	f, err := os.Open(opts.productsPath)
	if err != nil {
		return fmt.Errorf("abrir CSV: %w", err)
	}
	defer f.Close()

	rows, rejected, err := importer.ReadRows(f, opts.encoding)
	if err != nil {
		return err
	}
	im := importer.New(
		usecase.NewProductUseCase(r.products, r.categories, nil, log),
		usecase.NewCategoryUseCase(r.categories),
		log,
	)
	res, err := im.Run(ctx, rows)
	if err != nil {
		return err
	}

	for _, re := range append(rejected, res.Rejected...) {
		log.Warn().Int("linea", re.Line).Str("motivo", re.Reason).Msg("fila descartada")
	}
	log.Info().
		Int("productos", res.Products).
		Int("categorias", res.Categories).
		Int("descartadas", len(rejected)+len(res.Rejected)).
		Msg("importación terminada")
	return nil
}
