// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"errors"

	accountstore "github.com/kcmcclub/clubsite/internal/app/store/accounts"
	"github.com/kcmcclub/clubsite/internal/app/system/normalize"
	"github.com/kcmcclub/clubsite/internal/domain/models"

	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built.
//
// When superadmin_email is configured, the account is created (with the
// configured initial password) or promoted to super_admin if it already
// exists, so a fresh deployment always has a way into the dashboard.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	email := normalize.Email(appCfg.SuperAdminEmail)
	if email == "" {
		return nil
	}

	store := accountstore.New(deps.MongoDatabase)

	acct, err := store.GetByEmail(ctx, email)
	if err == nil {
		if acct.Role == models.RoleSuperAdmin {
			return nil
		}
		acct.Role = models.RoleSuperAdmin
		if err := store.Update(ctx, acct.ID, acct); err != nil {
			return err
		}
		logger.Info("promoted account to super_admin", zap.String("email", email))
		return nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return err
	}

	password := appCfg.SuperAdminPassword
	if password == "" {
		password = models.DefaultStaffPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	_, err = store.Create(ctx, models.Account{
		Email:        email,
		FullName:     "Super Admin",
		Role:         models.RoleSuperAdmin,
		Status:       models.StatusActive,
		PasswordHash: string(hash),
	})
	if err != nil {
		return err
	}
	logger.Info("created super_admin account", zap.String("email", email))
	return nil
}
