package middleware

import (
	"fmt"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/rabbitmq/amqp091-go"

	"github.com/atlascrm/relgraph/backend/pkg/store"
)

type AppUser struct {
	UserID      int64
	Email       string
	Role        string
	Permissions []string
}

// Actor is the identity stamped into last_modified_by and the audit log.
func (u *AppUser) Actor() string {
	if u == nil {
		return ""
	}
	if u.Email != "" {
		return u.Email
	}
	return fmt.Sprintf("user:%d", u.UserID)
}

type App struct {
	DBConn         *pgxpool.Pool
	Store          store.Storage
	Queue          *amqp091.Channel
	Key            *keyfunc.Keyfunc
	MasterAPIKey   string
	MasterUserID   int64
	MasterUserRole string
}

type AppContext struct {
	echo.Context
	App  *App
	User *AppUser
}

func AppContextMiddleware(app *App) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cc := &AppContext{c, app, nil}
			return next(cc)
		}
	}
}
