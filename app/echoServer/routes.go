package echoServer

import (
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	authctrl "sewabarang/app/echoServer/controller/auth"
	cartctrl "sewabarang/app/echoServer/controller/cart"
	chatctrl "sewabarang/app/echoServer/controller/chat"
	paymentctrl "sewabarang/app/echoServer/controller/payment"
	productctrl "sewabarang/app/echoServer/controller/product"
	profilectrl "sewabarang/app/echoServer/controller/profile"
	rentalctrl "sewabarang/app/echoServer/controller/rental"
	"sewabarang/app/echoServer/jwtx"
)

type C struct {
	Auth    *authctrl.Controller
	Product *productctrl.Controller
	Rental  *rentalctrl.Controller
	Cart    *cartctrl.Controller
	Chat    *chatctrl.Controller
	Profile *profilectrl.Controller
	Payment *paymentctrl.Controller

	JWTSecret string
}

func Register(e *echo.Echo, c C) {
	// Public
	pub := e.Group("/v1")
	pub.POST("/users/register", c.Auth.Register)
	pub.POST("/users/login", c.Auth.Login)

	// catalog browsing needs no session
	pub.GET("/products", c.Product.List)
	pub.GET("/products/:id", c.Product.Detail)
	pub.GET("/products/:id/quote", c.Product.Quote)

	// payment gateway callback
	pub.POST("/payment/xendit", c.Payment.HandleXendit)

	// Auth
	auth := e.Group("/v1")
	auth.Use(echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(c.JWTSecret),

		NewClaimsFunc: func(c echo.Context) jwt.Claims { return jwt.MapClaims{} },
	}))
	auth.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			uid, err := jwtx.UserIDFromContext(ctx)
			if err != nil {
				return ctx.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
			}
			ctx.Set("user_id", uid)
			return next(ctx)
		}
	})

	// Profile
	auth.GET("/users/me", c.Profile.Me)
	auth.PUT("/users/me", c.Profile.Update)

	// Cart
	auth.POST("/cart", c.Cart.Add)
	auth.GET("/cart", c.Cart.List)
	auth.PUT("/cart/:id", c.Cart.Update)
	auth.DELETE("/cart/:id", c.Cart.Remove)
	auth.DELETE("/cart", c.Cart.Clear)
	auth.POST("/cart/checkout", c.Cart.Checkout)

	// Rentals
	auth.POST("/rentals", c.Rental.Create)
	auth.POST("/rentals/:id/return", c.Rental.Return)
	auth.GET("/rentals/my", c.Rental.MyHistory)

	// Support chat
	auth.POST("/chat", c.Chat.Send)
	auth.GET("/chat", c.Chat.Poll)

	// Admin endpoints
	admin := auth.Group("", requireRole("admin"))
	admin.POST("/products", c.Product.Create)
	admin.POST("/products/:id/stock", c.Product.AddStock)
}

func requireRole(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			got, err := jwtx.RoleFromContext(ctx)
			if err != nil || got != role {
				return ctx.JSON(http.StatusForbidden, echo.Map{"message": "forbidden"})
			}
			return next(ctx)
		}
	}
}
