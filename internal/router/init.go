package router

import (
	"errors"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-ddd-auth-core/config"
	"github.com/oksasatya/go-ddd-auth-core/internal/application"
	"github.com/oksasatya/go-ddd-auth-core/internal/container"
	"github.com/oksasatya/go-ddd-auth-core/internal/infrastructure/notify"
	"github.com/oksasatya/go-ddd-auth-core/internal/infrastructure/search"
	"github.com/oksasatya/go-ddd-auth-core/internal/infrastructure/security"
	handlers "github.com/oksasatya/go-ddd-auth-core/internal/interface/http"
	"github.com/oksasatya/go-ddd-auth-core/internal/interface/middleware"
	"github.com/oksasatya/go-ddd-auth-core/internal/router/modules"
	"github.com/oksasatya/go-ddd-auth-core/pkg/helpers"
	mailtpl "github.com/oksasatya/go-ddd-auth-core/pkg/mailer/templates"
)

type AuthModuleDeps struct {
	Register *application.RegisterUserUseCase
	Login    *application.LoginUseCase
	Identity *application.IdentityResolver
	Hooks    []application.RegistrationHook
}

// BuildAuthDeps assembles the use cases from the container. Both the HTTP
// server and cmd/seed call it after choosing the storage driver.
func BuildAuthDeps() (AuthModuleDeps, error) {
	cfg := container.GetConfig()
	if cfg == nil {
		return AuthModuleDeps{}, errors.New("config not set in container")
	}
	repo := container.GetUserRepository()
	if repo == nil {
		return AuthModuleDeps{}, errors.New("user repository not set in container")
	}
	logger := container.GetLogger()

	hasher, err := security.NewBcryptHasher(cfg.BcryptCost)
	if err != nil {
		return AuthModuleDeps{}, fmt.Errorf("hasher: %w", err)
	}
	tokens, err := security.NewJWTTokenService(security.JWTConfig{
		Secret:    cfg.JWTSecretKey,
		Algorithm: cfg.JWTAlgorithm,
		TTL:       cfg.AccessTTL(),
		TokenType: cfg.TokenType,
	}, logger)
	if err != nil {
		return AuthModuleDeps{}, fmt.Errorf("token service: %w", err)
	}

	return AuthModuleDeps{
		Register: application.NewRegisterUserUseCase(repo, hasher, logger),
		Login:    application.NewLoginUseCase(repo, hasher, tokens, logger),
		Identity: application.NewIdentityResolver(tokens, repo),
		Hooks:    registrationHooks(cfg),
	}, nil
}

func registrationHooks(cfg *config.Config) []application.RegistrationHook {
	var hooks []application.RegistrationHook
	if pub := container.GetRabbitPub(); pub != nil && cfg.MailSendEnabled {
		hooks = append(hooks, notify.NewWelcomeNotifier(pub, mailtpl.Brand{
			AppName:    cfg.AppName,
			SupportURL: cfg.SupportURL,
			LoginURL:   cfg.LoginURL,
		}))
	}
	if dir := userDirectory(); dir.Enabled() {
		hooks = append(hooks, dir)
	}
	return hooks
}

func userDirectory() *search.UserDirectory {
	return search.NewUserDirectory(container.GetES(), container.GetConfig().ESUsersIndex, container.GetLogger())
}

// healthPinger keeps a nil pool out of the interface so the memory driver
// reports as such.
func healthPinger() modules.Pinger {
	if pool := container.GetPGPool(); pool != nil {
		return pool
	}
	return nil
}

func limiter(max int, window time.Duration, key middleware.KeyFunc, allow middleware.AllowFunc) gin.HandlerFunc {
	cfg := container.GetConfig()
	if !cfg.RateLimitEnabled {
		return func(c *gin.Context) { c.Next() }
	}
	return middleware.RateLimit(container.GetRedis(), max, window, key, allow)
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) error {
	deps, err := BuildAuthDeps()
	if err != nil {
		return err
	}
	cfg := container.GetConfig()
	logger := container.GetLogger()

	guard := middleware.Auth(deps.Identity, logger)
	r.UseGlobal(limiter(cfg.RateLimitCalls, cfg.RateLimitWindow(), middleware.KeyByIP(), middleware.AllowPaths(modules.HealthPath)))
	userLimiter := limiter(cfg.RateLimitCalls, cfg.RateLimitWindow(), middleware.KeyByUserID(), nil)

	authHandler := handlers.NewAuthHandler(
		deps.Register,
		deps.Login,
		deps.Identity,
		deps.Hooks,
		logger,
		helpers.NewCookie(cfg.CookieDomain, cfg.CookieSecure),
	)
	r.AddRoot(modules.NewHealthModule(cfg.AppName, cfg.Version, cfg.Env, healthPinger()))
	r.Add(modules.NewAuthModule(authHandler, guard))
	r.Add(modules.NewUserModule(handlers.NewUserHandler(userDirectory(), logger), guard, userLimiter))

	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule(limiter(120, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())))
	}
	return nil
}
