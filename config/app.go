package config

type App struct {
	Port          string `env:"APP_PORT" default:"8080"`
	DatabaseURL   string `env:"DATABASE_URL,required"`
	JWTSecret     string `env:"JWT_SECRET,required"`
	XenditAPIKey  string `env:"XENDIT_API_KEY"`
	XenditCBToken string `env:"XENDIT_CALLBACK_TOKEN"`
	Env           string `env:"APP_ENV" default:"dev"`
}
