package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/catalog-dash-poc-v1/client/internal/cart"
	"github.com/catalog-dash-poc-v1/client/internal/catalog"
	"github.com/catalog-dash-poc-v1/client/internal/core"
	"github.com/catalog-dash-poc-v1/client/internal/dashboard"
	"github.com/catalog-dash-poc-v1/client/internal/mutation"
	"github.com/catalog-dash-poc-v1/client/internal/query"
	"github.com/catalog-dash-poc-v1/client/internal/session"
	logx "github.com/catalog-dash-poc-v1/client/pkg/logger"
	pkgredis "github.com/catalog-dash-poc-v1/client/pkg/redis"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

// AppConfig defines all configurable parameters for the dashboard client,
// sourced from environment variables (loaded from .env for local runs).
type AppConfig struct {
	Environment string `envconfig:"ENVIRONMENT" default:"development"`

	// Infrastructure
	Redis pkgredis.Config

	// Remote catalog service
	Catalog catalog.Config

	// Dashboard behaviour
	Dashboard dashboard.Config

	// Local persistence identity and retention
	Owner    string `envconfig:"STATE_OWNER" default:"local"`
	StateTTL string `envconfig:"STATE_TTL" default:"720h"`

	// Demo credentials for the walkthrough
	Username string `envconfig:"DEMO_USERNAME" default:"emilys"`
	Password string `envconfig:"DEMO_PASSWORD" default:"emilyspass"`
}

func main() {
	fmt.Println("Starting catalog dashboard walkthrough...")
	ctx := context.Background()

	// Load .env file
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	// Load structured config from env
	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		log.Fatalf("Failed to process environment config: %v", err)
	}

	logx.Init(logx.LoggerOpts{Environment: core.ParseEnvironment(cfg.Environment)})

	rdb, err := cfg.Redis.New()
	if err != nil {
		log.Fatalf("Failed to initialise Redis client: %v", err)
	}
	defer rdb.Close()

	fmt.Println("Connected to Redis successfully")

	ttl, err := time.ParseDuration(cfg.StateTTL)
	if err != nil {
		log.Fatalf("Invalid STATE_TTL '%s': %v", cfg.StateTTL, err)
	}

	// ====================================================
	// Wire stores and layers
	sessions := session.NewStore(session.NewRedisRepository(rdb, cfg.Owner, ttl))
	cartStore := cart.NewStore(cart.NewRedisRepository(rdb, cfg.Owner, ttl))
	client := catalog.NewClient(cfg.Catalog, sessions)

	pageCache := query.NewPageCache()
	queries := query.NewService(client, pageCache)
	writes := mutation.NewService(client, pageCache)

	dash := dashboard.New(cfg.Dashboard, client, sessions, cartStore, queries, writes)
	if err := dash.Bootstrap(ctx); err != nil {
		log.Printf("Warning: cold start restore incomplete: %v", err)
	}

	// ====================================================
	// Scripted end-to-end walkthrough
	fmt.Println("\nStep 1: login")
	if err := dash.Login(ctx, catalog.Credentials{Username: cfg.Username, Password: cfg.Password}); err != nil {
		log.Fatalf("Login failed: %v", err)
	}

	fmt.Println("\nStep 2: categories")
	categories, err := dash.Categories(ctx)
	if err != nil {
		log.Fatalf("Failed to fetch categories: %v", err)
	}
	fmt.Printf("%d categories available\n", len(categories))

	fmt.Println("\nStep 3: first listing page")
	res, err := dash.Products(ctx)
	if err != nil {
		log.Fatalf("Failed to fetch products: %v", err)
	}
	printPage(res)

	fmt.Println("\nStep 4: debounced search")
	done := make(chan query.Result, 1)
	for _, partial := range []string{"p", "ph", "pho", "phone"} {
		dash.SetSearch(ctx, partial, func(r query.Result) { done <- r })
	}
	res = <-done
	printPage(res)

	fmt.Println("\nStep 5: category filter")
	dash.SetSearch(ctx, "", nil)
	if len(categories) > 0 {
		dash.SetCategory(categories[0].Slug)
	}
	res, err = dash.Products(ctx)
	if err != nil {
		log.Fatalf("Failed to fetch filtered products: %v", err)
	}
	printPage(res)

	fmt.Println("\nStep 6: add to cart")
	if len(res.Page.Products) > 0 {
		first := res.Page.Products[0]
		_ = dash.AddToCart(ctx, first)
		_ = dash.AddToCart(ctx, first)
		fmt.Printf("cart: %d items, total %s, open=%v\n",
			dash.Cart().TotalItems(), dash.Cart().TotalPrice(), dash.Cart().IsOpen())
	}

	fmt.Println("\nStep 7: create a product")
	created, err := dash.SubmitCreate(ctx, catalog.ProductInput{
		Title:       "Walkthrough Special",
		Description: "A product created by the scripted walkthrough.",
		Price:       decimal.NewFromFloat(19.99),
		Category:    "smartphones",
	})
	if err != nil {
		log.Fatalf("Failed to create product: %v", err)
	}
	fmt.Printf("created product id=%d; cached pages patched: %d\n", created.ID, pageCache.Len())

	fmt.Println("\nStep 8: edit the product")
	if _, err := dash.SubmitEdit(ctx, created.ID, catalog.ProductInput{
		Title:       "Walkthrough Special v2",
		Description: "A product edited by the scripted walkthrough.",
		Price:       decimal.NewFromFloat(24.99),
		Category:    "smartphones",
	}); err != nil {
		log.Printf("Warning: edit failed (expected for ids the service never stored): %v", err)
	}

	fmt.Println("\nStep 9: notifications and logout")
	for _, n := range dash.Notifications() {
		fmt.Printf("[%s] %s\n", n.Level, n.Message)
	}
	dash.Logout(ctx)

	fmt.Println("\nWalkthrough completed successfully!")
}

func printPage(res query.Result) {
	status := "fresh"
	if res.Stale {
		status = "stale"
	}
	fmt.Printf("page (%s): %d of %d products, skip=%d\n",
		status, len(res.Page.Products), res.Page.Total, res.Key.Skip)
	for i, p := range res.Page.Products {
		if i >= 3 {
			fmt.Println("  ...")
			break
		}
		fmt.Printf("  #%d %s (%s) %s\n", p.ID, p.Title, p.Category, p.Price)
	}
}
