package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/poolmvp/usersvc/internal/interface/http"
)

// UserModule wires the user CRUD handlers into routes:
// GET /users/, POST /users/, GET /users/:id

type UserModule struct {
	Handler *handlers.UserHandler
}

func NewUserModule(h *handlers.UserHandler) *UserModule {
	return &UserModule{Handler: h}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	{
		users.GET("/", m.Handler.List)
		users.POST("/", m.Handler.Create)
		users.GET("/:id", m.Handler.Get)
	}
}
