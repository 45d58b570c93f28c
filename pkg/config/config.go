package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env
// y opcionalmente archivo).
type Config struct {
	App       AppConfig
	HTTP      HTTPConfig
	AWS       AWSConfig
	Scheduler SchedulerConfig
	PDF       PDFConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string // trace, debug, info, warn, error
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

// AWSConfig región para los clientes de SES y EventBridge.
type AWSConfig struct {
	Region string
}

// SchedulerConfig configuración de las reglas recurrentes: el rol con el que
// EventBridge ejecuta la regla y el ARN de la función que recibe el callback.
type SchedulerConfig struct {
	RoleARN   string // EVENT_ROLE
	TargetARN string // SEND_FUNCTION_ARN
}

// PDFConfig ruta donde el renderizador deja la copia del PDF generado.
type PDFConfig struct {
	Path string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde
// archivo). Las env vars tienen prioridad. Nombres esperados: APP_ENV,
// LOG_LEVEL, HTTP_PORT, AWS_REGION, EVENT_ROLE, SEND_FUNCTION_ARN, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "invoiceless"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		AWS: AWSConfig{
			Region: getString(v, "AWS_REGION", "us-east-1"),
		},
		Scheduler: SchedulerConfig{
			RoleARN:   getString(v, "EVENT_ROLE", ""),
			TargetARN: getString(v, "SEND_FUNCTION_ARN", ""),
		},
		PDF: PDFConfig{
			Path: getString(v, "INVOICE_PDF_PATH", "/tmp/invoice.pdf"),
		},
	}

	return cfg, nil
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
