package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/storefront/storefront/internal/catalog"
	"github.com/storefront/storefront/internal/config"
	"github.com/storefront/storefront/internal/database"
	"github.com/storefront/storefront/internal/email"
	"github.com/storefront/storefront/internal/logger"
	"github.com/storefront/storefront/internal/order"
)

var (
	configFile string
	timeout    time.Duration
)

var rootCmd = &cobra.Command{
	Use:           "storefrontctl",
	Short:         "Operator tool for the storefront backend",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check that MongoDB (and Redis, when rate limiting is on) is reachable",
	RunE:  runPing,
}

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Query the catalog the same way the HTTP API does",
}

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List categories",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withCatalog(cmd.Context(), func(ctx context.Context, svc *catalog.Service) (interface{}, error) {
			return svc.Categories(ctx)
		})
	},
}

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "List products",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withCatalog(cmd.Context(), func(ctx context.Context, svc *catalog.Service) (interface{}, error) {
			return svc.Products(ctx)
		})
	},
}

var productCmd = &cobra.Command{
	Use:   "product [id]",
	Short: "Show one product by its numeric id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid product id %q", args[0])
		}
		return withCatalog(cmd.Context(), func(ctx context.Context, svc *catalog.Service) (interface{}, error) {
			return svc.Product(ctx, id)
		})
	},
}

var heroCmd = &cobra.Command{
	Use:       "hero [desktop|mobile]",
	Short:     "Show a hero image set",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{string(catalog.HeroDesktop), string(catalog.HeroMobile)},
	RunE: func(cmd *cobra.Command, args []string) error {
		variant := catalog.HeroVariant(args[0])
		return withCatalog(cmd.Context(), func(ctx context.Context, svc *catalog.Service) (interface{}, error) {
			return svc.HeroImages(ctx, variant)
		})
	},
}

var mailCmd = &cobra.Command{
	Use:   "mail",
	Short: "Email provider utilities",
}

var mailTestCmd = &cobra.Command{
	Use:   "test [recipient]",
	Short: "Send a sample order confirmation through the configured provider",
	Args:  cobra.ExactArgs(1),
	RunE:  runMailTest,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "path to config file (default: ./config.yaml)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "overall command timeout")

	catalogCmd.AddCommand(categoriesCmd)
	catalogCmd.AddCommand(productsCmd)
	catalogCmd.AddCommand(productCmd)
	catalogCmd.AddCommand(heroCmd)
	mailCmd.AddCommand(mailTestCmd)

	rootCmd.AddCommand(pingCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(mailCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if configFile != "" {
		cfg, err = config.LoadFile(configFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

func commandContext(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return context.WithTimeout(parent, timeout)
}

func runPing(cmd *cobra.Command, args []string) error {
	log := logger.New("info", "text")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.Database.URI == "" {
		return fmt.Errorf("database.uri (MONGO_URI) is required")
	}

	ctx, cancel := commandContext(cmd.Context())
	defer cancel()

	mongo, err := database.NewMongo(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer mongo.Close(context.Background())
	log.Info().Str("database", cfg.Database.Name).Msg("MongoDB is reachable")

	if cfg.Security.RateLimiting.Enabled {
		rdb, err := database.NewRedis(cfg.Redis)
		if err != nil {
			return err
		}
		defer rdb.Close()
		log.Info().Str("addr", cfg.Redis.Addr()).Msg("Redis is reachable")
	}

	return nil
}

func withCatalog(parent context.Context, fn func(context.Context, *catalog.Service) (interface{}, error)) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.Database.URI == "" {
		return fmt.Errorf("database.uri (MONGO_URI) is required")
	}

	ctx, cancel := commandContext(parent)
	defer cancel()

	mongo, err := database.NewMongo(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer mongo.Close(context.Background())

	svc := catalog.NewService(catalog.NewMongoStore(mongo.DB, cfg.Database.QueryTimeout), logger.Nop())
	result, err := fn(ctx, svc)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func runMailTest(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.Email.Validate(); err != nil {
		return err
	}

	log := logger.New(cfg.Log.Level, "text")

	ctx, cancel := commandContext(cmd.Context())
	defer cancel()

	sender, err := email.NewSender(ctx, cfg.Email, log)
	if err != nil {
		return fmt.Errorf("failed to initialize email provider: %w", err)
	}

	svc := order.NewService(sender, order.Options{
		StoreName:       cfg.Order.StoreName,
		Subject:         cfg.Order.Subject,
		DispatchTimeout: cfg.Order.DispatchTimeout,
	}, log)

	req := &order.Request{
		CustomerDetails: &order.CustomerDetails{
			Name:    "Test Customer",
			Address: "1 Sample Street",
			Phone:   "000-0000",
			Email:   args[0],
		},
		Cart:          json.RawMessage(`[{"id": 1, "color": "black", "size": "M", "quantity": 1}]`),
		PaymentMethod: "COD",
	}

	if err := svc.Confirm(ctx, req, "storefrontctl"); err != nil {
		return err
	}

	log.Info().Str("provider", cfg.Email.Provider).Str("to", args[0]).Msg("sample confirmation sent")
	return nil
}
