// cmd/container.go
//
// Composition root. Owns the record store infrastructure and wires every
// module. This is the only place that knows about all of them.
package main

import (
	"context"
	"fmt"

	"github.com/Abraxas-365/mailer/pkg/auth"
	"github.com/Abraxas-365/mailer/pkg/config"
	"github.com/Abraxas-365/mailer/pkg/docstore"
	"github.com/Abraxas-365/mailer/pkg/docstore/docstorepg"
	"github.com/Abraxas-365/mailer/pkg/docstore/docstoreredis"
	"github.com/Abraxas-365/mailer/pkg/fsx"
	"github.com/Abraxas-365/mailer/pkg/fsx/fsxlocal"
	"github.com/Abraxas-365/mailer/pkg/fsx/fsxs3"
	"github.com/Abraxas-365/mailer/pkg/logx"
	"github.com/Abraxas-365/mailer/pkg/mailx"
	"github.com/Abraxas-365/mailer/pkg/mailx/mailxconsole"
	"github.com/Abraxas-365/mailer/pkg/mailx/mailxsmtp"
	"github.com/Abraxas-365/mailer/pkg/smtpsettings/smtpsettingsinfra"
	"github.com/Abraxas-365/mailer/pkg/smtpsettings/smtpsettingssrv"
	"github.com/Abraxas-365/mailer/pkg/templates/templatesinfra"
	"github.com/Abraxas-365/mailer/pkg/templates/templatessrv"
	"github.com/Abraxas-365/mailer/pkg/users/usersinfra"
	"github.com/Abraxas-365/mailer/pkg/users/userssrv"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
)

// Container holds shared infrastructure and the wired modules.
type Container struct {
	Config *config.Config

	// Infrastructure, only the pieces the selected store driver needs
	DB         *sqlx.DB
	Redis      *redis.Client
	FileSystem fsx.FileSystem
	S3Client   *s3.Client
	Store      docstore.Backend

	// Services
	SettingsService *smtpsettingssrv.SettingsService
	TemplateService *templatessrv.TemplateService
	UserService     *userssrv.UserService
	AuthService     *auth.AuthService
	MailService     *mailx.Service

	// HTTP
	AuthMiddleware   *auth.TokenMiddleware
	AuthHandlers     *auth.AuthHandlers
	MailHandlers     *mailx.Handlers
	SettingsHandlers *smtpsettingssrv.SettingsHandlers
	TemplateHandlers *templatessrv.TemplateHandlers
	UserHandlers     *userssrv.UserHandlers
}

func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	logx.Info("🔧 Initializing application container...")

	c := &Container{Config: cfg}

	if err := c.initStore(ctx); err != nil {
		c.Cleanup()
		return nil, err
	}
	if err := c.initModules(); err != nil {
		c.Cleanup()
		return nil, err
	}

	logx.Info("✅ Application container initialized")
	return c, nil
}

// ---------------------------------------------------------------------------
// Infrastructure
// ---------------------------------------------------------------------------

func (c *Container) initStore(ctx context.Context) error {
	store := c.Config.Store

	switch store.Driver {
	case "local":
		localFS, err := fsxlocal.NewLocalFileSystem(store.DataDir)
		if err != nil {
			return fmt.Errorf("init local store: %w", err)
		}
		c.FileSystem = localFS
		c.Store = docstore.NewFSBackend(localFS)
		logx.Infof("  ✅ Local record store configured (path: %s)", localFS.GetBasePath())

	case "s3":
		aws := c.Config.AWS
		awsCfg, err := awsConfig.LoadDefaultConfig(ctx, awsConfig.WithRegion(aws.Region))
		if err != nil {
			return fmt.Errorf("load AWS SDK config: %w", err)
		}
		c.S3Client = s3.NewFromConfig(awsCfg)
		c.FileSystem = fsxs3.NewS3FileSystem(c.S3Client, aws.Bucket, aws.Prefix)
		c.Store = docstore.NewFSBackend(c.FileSystem)
		logx.Infof("  ✅ S3 record store configured (bucket: %s, region: %s)", aws.Bucket, aws.Region)

	case "redis":
		rc := c.Config.Redis
		c.Redis = redis.NewClient(&redis.Options{
			Addr:     rc.Addr(),
			Password: rc.Password,
			DB:       rc.DB,
		})
		if err := c.Redis.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("connect to redis at %s: %w", rc.Addr(), err)
		}
		c.Store = docstoreredis.NewRedisBackend(c.Redis, rc.Prefix)
		logx.Infof("  ✅ Redis record store connected (%s)", rc.Addr())

	case "postgres":
		db, err := sqlx.ConnectContext(ctx, "postgres", c.Config.Database.DSN())
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}
		c.DB = db
		backend := docstorepg.NewPostgresBackend(db)
		if err := backend.EnsureSchema(ctx); err != nil {
			return fmt.Errorf("ensure record store schema: %w", err)
		}
		c.Store = backend
		logx.Info("  ✅ Postgres record store connected")

	default:
		return fmt.Errorf("unknown store driver %q (use local, s3, redis or postgres)", store.Driver)
	}
	return nil
}

func (c *Container) mailFactory() mailx.TransportFactory {
	if c.Config.Mail.Transport == "console" {
		logx.Warn("  ⚠️ Console mail transport selected, messages are logged, not delivered")
		return mailxconsole.NewFactory()
	}
	return mailxsmtp.NewFactory()
}

// ---------------------------------------------------------------------------
// Module composition
// ---------------------------------------------------------------------------

func (c *Container) initModules() error {
	logx.Info("📦 Initializing modules...")

	// Users
	c.UserService = userssrv.NewUserService(usersinfra.NewDocstoreUserRepository(c.Store))
	c.UserHandlers = userssrv.NewUserHandlers(c.UserService)

	// Auth
	verifier := auth.NewStaticTokenVerifier(c.Config.Auth.Token)
	c.AuthService = auth.NewAuthService(verifier, auth.AdminCredentials{
		Username: c.Config.Auth.AdminUsername,
		Password: c.Config.Auth.AdminPassword,
	}, c.UserService)
	c.AuthMiddleware = auth.NewAuthMiddleware(verifier)
	c.AuthHandlers = auth.NewAuthHandlers(c.AuthService, verifier)

	// SMTP settings
	c.SettingsService = smtpsettingssrv.NewSettingsService(smtpsettingsinfra.NewDocstoreSettingsRepository(c.Store))
	c.SettingsHandlers = smtpsettingssrv.NewSettingsHandlers(c.SettingsService)

	// Templates
	c.TemplateService = templatessrv.NewTemplateService(templatesinfra.NewDocstoreTemplateRepository(c.Store))
	c.TemplateHandlers = templatessrv.NewTemplateHandlers(c.TemplateService)

	// Mail
	smtp := c.Config.SMTP
	resolver := mailx.NewResolver(c.SettingsService, mailx.Defaults{
		Host:     smtp.Host,
		Port:     smtp.Port,
		Username: smtp.User,
		Password: smtp.Password,
	})
	c.MailService = mailx.NewService(resolver, mailx.NewBuilder(c.mailFactory()))
	c.MailHandlers = mailx.NewHandlers(c.MailService)

	if smtp.Host == "" {
		logx.Warn("  ⚠️ SMTP_HOST is not set, users without stored settings cannot send")
	}

	logx.Info("  ✅ Modules wired")
	return nil
}

// ---------------------------------------------------------------------------
// Lifecycle
// ---------------------------------------------------------------------------

func (c *Container) Cleanup() {
	logx.Info("🧹 Cleaning up resources...")

	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			logx.Errorf("Error closing database: %v", err)
		} else {
			logx.Info("  ✅ Database connection closed")
		}
	}

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			logx.Errorf("Error closing Redis: %v", err)
		} else {
			logx.Info("  ✅ Redis connection closed")
		}
	}

	logx.Info("✅ Cleanup complete")
}
