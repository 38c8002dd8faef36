package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/afterschool-api/internal/middleware"
	"github.com/noah-isme/afterschool-api/internal/models"
	appErrors "github.com/noah-isme/afterschool-api/pkg/errors"
	"github.com/noah-isme/afterschool-api/pkg/response"
)

func principalFromContext(c *gin.Context) (models.Principal, bool) {
	claims, ok := middleware.Claims(c)
	if !ok {
		return models.Principal{}, false
	}
	return claims.Principal(), true
}

// idParam reads a positive integer path parameter.
func idParam(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, appErrors.WithDetails(appErrors.New(appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid path parameter"),
			map[string]string{name: name + " must be a positive integer"})
	}
	return id, nil
}

func bindError(err error, message string) error {
	return appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, message)
}

// scopedID resolves the caller and one path identifier, writing the error
// response itself when either is missing.
func scopedID(c *gin.Context, name string) (models.Principal, int64, bool) {
	p, ok := principalFromContext(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return models.Principal{}, 0, false
	}
	id, err := idParam(c, name)
	if err != nil {
		response.Error(c, err)
		return models.Principal{}, 0, false
	}
	return p, id, true
}

func courseScope(c *gin.Context) (models.Principal, int64, bool) {
	return scopedID(c, "courseId")
}
