package healthz

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tripbudget/backend/internal/httperror"
	"github.com/tripbudget/backend/pkg/httputil"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

func RegisterRoutes(r *gin.RouterGroup, p Pinger) {
	r.OPTIONS("", Options)
	r.GET("", Get(p))
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			General
// @Success		204
// @Router			/healthz [options]
func Options(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Get health
// @Description	Returns the application health and, if not healthy, an error
// @Tags			General
// @Produce		json
// @Success		204
// @Failure		500	{object}	httperror.Error
// @Router			/healthz [get]
func Get(p Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := p.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusInternalServerError, httperror.New(err))
			return
		}

		c.Status(http.StatusNoContent)
	}
}
