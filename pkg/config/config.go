package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App    AppConfig
	HTTP   HTTPConfig
	Stripe StripeConfig
	Mail   MailConfig
	Public PublicConfig
	Dev    DevConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env  string // development, staging, production
	Name string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// StripeConfig credenciales del proveedor de pagos.
type StripeConfig struct {
	APIKey string // secret key sk_test_... / sk_live_...
}

// MailConfig transporte de email saliente.
type MailConfig struct {
	ResendAPIKey string
	From         string // remitente de todos los correos salientes
}

// PublicConfig identidad pública del servicio.
// Domain se usa para construir la URL del webhook y los links de billing.
type PublicConfig struct {
	Domain string // ej. invoices.example.com (sin esquema)
}

// DevConfig modo de pruebas: redirige todo email saliente a una casilla interna
// para no escribirle a clientes reales.
type DevConfig struct {
	Mode  bool
	Email string // casilla destino cuando Mode es true
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: STRIPE_API_KEY, RESEND_API_KEY, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:  getString(v, "APP_ENV", "development"),
			Name: getString(v, "APP_NAME", "invoice-sender"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Stripe: StripeConfig{
			APIKey: getString(v, "STRIPE_API_KEY", ""),
		},
		Mail: MailConfig{
			ResendAPIKey: getString(v, "RESEND_API_KEY", ""),
			From:         getString(v, "MAIL_FROM", ""),
		},
		Public: PublicConfig{
			Domain: getString(v, "PUBLIC_DOMAIN", ""),
		},
		Dev: DevConfig{
			Mode:  getString(v, "DEV_MODE", "false") == "true",
			Email: getString(v, "DEV_EMAIL", ""),
		},
	}

	return cfg, nil
}

// MissingVars lista las variables obligatorias que no fueron configuradas.
// El homepage las reporta para el diagnóstico de instalación.
func (c *Config) MissingVars() []string {
	var missing []string
	if c.Stripe.APIKey == "" {
		missing = append(missing, "STRIPE_API_KEY")
	}
	if c.Mail.ResendAPIKey == "" {
		missing = append(missing, "RESEND_API_KEY")
	}
	if c.Mail.From == "" {
		missing = append(missing, "MAIL_FROM")
	}
	if c.Public.Domain == "" {
		missing = append(missing, "PUBLIC_DOMAIN")
	}
	if c.Dev.Mode && c.Dev.Email == "" {
		missing = append(missing, "DEV_EMAIL")
	}
	return missing
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, _ := strconv.Atoi(v.GetString(key))
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
