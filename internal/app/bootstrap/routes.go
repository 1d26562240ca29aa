// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	aboutfeature "github.com/kcmcclub/clubsite/internal/app/features/about"
	accountsfeature "github.com/kcmcclub/clubsite/internal/app/features/accounts"
	activitiesfeature "github.com/kcmcclub/clubsite/internal/app/features/activities"
	dashboardfeature "github.com/kcmcclub/clubsite/internal/app/features/dashboard"
	departmentsfeature "github.com/kcmcclub/clubsite/internal/app/features/departments"
	donorsfeature "github.com/kcmcclub/clubsite/internal/app/features/donors"
	errorsfeature "github.com/kcmcclub/clubsite/internal/app/features/errors"
	healthfeature "github.com/kcmcclub/clubsite/internal/app/features/health"
	homefeature "github.com/kcmcclub/clubsite/internal/app/features/home"
	leadershipfeature "github.com/kcmcclub/clubsite/internal/app/features/leadership"
	loginfeature "github.com/kcmcclub/clubsite/internal/app/features/login"
	logoutfeature "github.com/kcmcclub/clubsite/internal/app/features/logout"
	membersfeature "github.com/kcmcclub/clubsite/internal/app/features/members"
	navbarfeature "github.com/kcmcclub/clubsite/internal/app/features/navbar"
	passwordfeature "github.com/kcmcclub/clubsite/internal/app/features/password"
	profilefeature "github.com/kcmcclub/clubsite/internal/app/features/profile"
	slidersfeature "github.com/kcmcclub/clubsite/internal/app/features/sliders"
	"github.com/kcmcclub/clubsite/internal/app/system/auth"
	"github.com/kcmcclub/clubsite/internal/domain/models"

	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup and
// Startup have completed. It initializes sessions and templates, then
// mounts the public site, the auth endpoints and the role-gated dashboard.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	if err := auth.InitSessionStore(appCfg.SessionKey, appCfg.SessionDomain, secure, logger); err != nil {
		logger.Error("session store init failed", zap.Error(err))
		return nil, err
	}

	// Initialize and boot the template engine once at startup.
	// Dev mode enables template reloading for faster iteration.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	errLog := errorsfeature.NewErrorLogger(logger)

	r := chi.NewRouter()

	// Global auth middleware: loads the session user into context.
	r.Use(auth.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Static assets with pre-compressed file support (gzip/brotli)
	r.Handle("/static/*", fileserver.Handler("/static", "public"))

	// Public site
	homeHandler := homefeature.NewHandler(deps.MongoDatabase, logger)
	r.Mount("/", homefeature.Routes(homeHandler))

	donorsHandler := donorsfeature.NewHandler(donorsfeature.SheetConfig{
		SpreadsheetID: appCfg.DonorSheetID,
		Range:         appCfg.DonorSheetRange,
		APIKey:        appCfg.DonorAPIKey,
	}, logger)
	r.Mount("/donors", donorsfeature.Routes(donorsHandler))

	// Authentication
	loginHandler := loginfeature.NewHandler(deps.MongoDatabase, errLog, logger)
	r.Mount("/login", loginfeature.Routes(loginHandler))

	logoutHandler := logoutfeature.NewHandler(logger)
	r.Mount("/logout", logoutfeature.Routes(logoutHandler))

	// Error pages
	errorsHandler := errorsfeature.NewHandler()
	r.Get("/forbidden", errorsHandler.Forbidden)
	r.Get("/unauthorized", errorsHandler.Unauthorized)

	// Role-gated dashboard. Leaders and up reach the content managers;
	// navbar and accounts additionally require admin or super_admin.
	r.Route("/dashboard", func(dr chi.Router) {
		dr.Use(auth.RequireSignedIn)
		dr.Use(auth.RequireRole(models.RoleLeader, models.RoleAdmin, models.RoleSuperAdmin))

		dashboardHandler := dashboardfeature.NewHandler(deps.MongoDatabase, logger)
		dr.Mount("/", dashboardfeature.Routes(dashboardHandler))

		slidersHandler := slidersfeature.NewHandler(deps.MongoDatabase, errLog, logger)
		dr.Mount("/sliders", slidersfeature.Routes(slidersHandler))

		aboutHandler := aboutfeature.NewHandler(deps.MongoDatabase, errLog, logger)
		dr.Mount("/about", aboutfeature.Routes(aboutHandler))

		leadershipHandler := leadershipfeature.NewHandler(deps.MongoDatabase, errLog, logger)
		dr.Mount("/leadership", leadershipfeature.Routes(leadershipHandler))

		membersHandler := membersfeature.NewHandler(deps.MongoDatabase, errLog, logger)
		dr.Mount("/members", membersfeature.Routes(membersHandler))

		departmentsHandler := departmentsfeature.NewHandler(deps.MongoDatabase, errLog, logger)
		dr.Mount("/departments", departmentsfeature.Routes(departmentsHandler))

		activitiesHandler := activitiesfeature.NewHandler(deps.MongoDatabase, errLog, logger)
		dr.Mount("/activities", activitiesfeature.Routes(activitiesHandler))

		passwordHandler := passwordfeature.NewHandler(deps.MongoDatabase, errLog, logger)
		dr.Mount("/password", passwordfeature.Routes(passwordHandler))

		// Profile refuses super_admin at the component level; leaders and
		// admins pass the route gate above.
		profileHandler := profilefeature.NewHandler(deps.MongoDatabase, errLog, logger)
		dr.Mount("/profile", profilefeature.Routes(profileHandler))

		// Admin-only managers
		dr.Group(func(ar chi.Router) {
			ar.Use(auth.RequireRole(models.RoleAdmin, models.RoleSuperAdmin))

			navbarHandler := navbarfeature.NewHandler(deps.MongoDatabase, errLog, logger)
			ar.Mount("/navbar", navbarfeature.Routes(navbarHandler))

			accountsHandler := accountsfeature.NewHandler(deps.MongoDatabase, errLog, logger)
			ar.Mount("/accounts", accountsfeature.Routes(accountsHandler))
		})
	})

	return r, nil
}
