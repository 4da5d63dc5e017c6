package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"library-backend/internal/domains/dashboard/model"
	"library-backend/internal/domains/dashboard/service"
	userModel "library-backend/internal/domains/user/model"
	"library-backend/internal/shared/middleware"
	"library-backend/internal/shared/response"
)

type DashboardHandler struct {
	service service.Service
}

func NewDashboardHandler(svc service.Service) *DashboardHandler {
	return &DashboardHandler{service: svc}
}

// Stats handles GET /v1/dashboard. Admins get library-wide numbers,
// everyone else their own circulation.
func (h *DashboardHandler) Stats(c *gin.Context) {
	ctx := c.Request.Context()

	var stats *model.Stats
	var err error
	if c.GetString(middleware.CtxRole) == userModel.RoleAdmin {
		stats, err = h.service.AdminStats(ctx)
	} else {
		stats, err = h.service.UserStats(ctx, c.GetString(middleware.CtxUserID))
	}
	if err != nil {
		response.InternalServerError(c, err.Error())
		return
	}

	response.Success(c, http.StatusOK, stats)
}
