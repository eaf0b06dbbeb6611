// Package main rental storefront API.
//
// @title           Sewa Barang API
// @version         1.0
// @description     rental storefront backend (catalog, cart, rentals, payments, chat).
// @BasePath        /
// @schemes         http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description  Use:  Bearer <JWT>
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"sewabarang/app/echoServer"
	authctrl "sewabarang/app/echoServer/controller/auth"
	cartctrl "sewabarang/app/echoServer/controller/cart"
	chatctrl "sewabarang/app/echoServer/controller/chat"
	paymentctrl "sewabarang/app/echoServer/controller/payment"
	productctrl "sewabarang/app/echoServer/controller/product"
	profilectrl "sewabarang/app/echoServer/controller/profile"
	rentalctrl "sewabarang/app/echoServer/controller/rental"
	"sewabarang/app/echoServer/validation"
	"sewabarang/config"
	cartrepo "sewabarang/repository/cart"
	chatrepo "sewabarang/repository/chat"
	productrepo "sewabarang/repository/product"
	rentalrepo "sewabarang/repository/rental"
	userrepo "sewabarang/repository/user"
	xenditrepo "sewabarang/repository/xendit"
	authsvc "sewabarang/service/auth"
	cartsvc "sewabarang/service/cart"
	catalogsvc "sewabarang/service/catalog"
	chatsvc "sewabarang/service/chat"
	paymentsvc "sewabarang/service/payment"
	rentalsvc "sewabarang/service/rental"
	"sewabarang/util/database"
)

func main() {

	cfg := config.Load()
	ctx := context.Background()

	// logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// DB: *sql.DB
	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	// repos
	pr := productrepo.New(db)
	rr := rentalrepo.New(db)
	cr := cartrepo.New(db)
	chr := chatrepo.New(db)
	ur := userrepo.New(db)
	xr := xenditrepo.NewHTTP(cfg.XenditAPIKey, cfg.XenditCBToken)

	// services
	as := authsvc.New(ur, cfg.JWTSecret)
	cats := catalogsvc.New(pr)
	rs := rentalsvc.New(db, pr, rr, xr)
	cs := cartsvc.New(cr, pr, ur, rs)
	chs := chatsvc.New(chr)
	ps := paymentsvc.New(db, xr, rr, pr)

	// overdue sweep
	sweeper := rentalsvc.NewSweeper(db, rr, pr)
	go func() {
		tick := time.NewTicker(10 * time.Minute)
		defer tick.Stop()
		for range tick.C {
			n, err := sweeper.ReleaseOverdue(ctx)
			if err != nil {
				log.Error("overdue sweep failed", "err", err)
				continue
			}
			if n > 0 {
				log.Info("overdue rentals released", "count", n)
			}
		}
	}()

	// controllers
	v := validator.New()
	authC := &authctrl.Controller{Svc: as, V: v, Log: log}
	productC := &productctrl.Controller{Svc: cats, V: v, Log: log}
	rentalC := &rentalctrl.Controller{Svc: rs, V: v, Log: log}
	cartC := &cartctrl.Controller{Svc: cs, V: v, Log: log}
	chatC := &chatctrl.Controller{Svc: chs, V: v, Log: log}
	profileC := &profilectrl.Controller{Svc: as, V: v, Log: log}
	paymentC := &paymentctrl.Controller{Svc: ps, Log: log}

	// echo
	e := echo.New()
	echoServer.RegisterMiddlewares(e)
	e.Validator = validation.New()

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]any{
			"status":  "ok",
			"message": "Service is healthy and connected",
		})
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	echoServer.Register(e, echoServer.C{
		Auth:    authC,
		Product: productC,
		Rental:  rentalC,
		Cart:    cartC,
		Chat:    chatC,
		Profile: profileC,
		Payment: paymentC,

		JWTSecret: cfg.JWTSecret,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}
	if port == "" {
		port = "8080"
	}

	log.Info("starting server", "port", port, "env", cfg.Env)

	e.Logger.Fatal(e.Start(":" + port))
}
