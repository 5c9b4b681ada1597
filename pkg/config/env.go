package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/Abraxas-365/mailer/pkg/logx"
)

func applyEnv(cfg *Config) {
	envString("PORT", &cfg.Server.Port)
	envString("CORS_ORIGINS", &cfg.Server.CORSOrigins)
	envString("FRONTEND_DIR", &cfg.Server.FrontendDir)

	envString("SMTP_HOST", &cfg.SMTP.Host)
	envInt("SMTP_PORT", &cfg.SMTP.Port)
	envString("SMTP_USER", &cfg.SMTP.User)
	envString("SMTP_PASS", &cfg.SMTP.Password)

	envString("MAIL_TRANSPORT", &cfg.Mail.Transport)

	envString("AUTH_TOKEN", &cfg.Auth.Token)
	envString("ADMIN_USERNAME", &cfg.Auth.AdminUsername)
	envString("ADMIN_PASSWORD", &cfg.Auth.AdminPassword)

	envString("STORE_DRIVER", &cfg.Store.Driver)
	envString("DATA_DIR", &cfg.Store.DataDir)

	envString("AWS_REGION", &cfg.AWS.Region)
	envString("AWS_BUCKET", &cfg.AWS.Bucket)
	envString("AWS_PREFIX", &cfg.AWS.Prefix)

	envString("REDIS_HOST", &cfg.Redis.Host)
	envInt("REDIS_PORT", &cfg.Redis.Port)
	envString("REDIS_PASSWORD", &cfg.Redis.Password)
	envInt("REDIS_DB", &cfg.Redis.DB)
	envString("REDIS_PREFIX", &cfg.Redis.Prefix)

	envString("DB_HOST", &cfg.Database.Host)
	envInt("DB_PORT", &cfg.Database.Port)
	envString("DB_USER", &cfg.Database.User)
	envString("DB_PASSWORD", &cfg.Database.Password)
	envString("DB_NAME", &cfg.Database.Name)
	envString("DB_SSLMODE", &cfg.Database.SSLMode)
}

// envString overrides dst when key is set and non-blank.
func envString(key string, dst *string) {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		*dst = strings.TrimSpace(v)
	}
}

// envInt overrides dst when key holds an integer. Garbage is logged and ignored.
func envInt(key string, dst *int) {
	v, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(v) == "" {
		return
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		logx.WithField("key", key).WithError(err).Warn("Ignoring non-numeric environment value")
		return
	}
	*dst = n
}
