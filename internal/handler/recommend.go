package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/agrigo/equipment-rental/internal/recommend"
	"github.com/agrigo/equipment-rental/internal/validate"
)

// RecommendHandler serves equipment suggestions. Its responses use
// the success/metadata envelope the mobile client already consumes,
// not the error envelope of the CRUD endpoints.
type RecommendHandler struct{}

// Predict handles POST /ml/predict.
func (h *RecommendHandler) Predict(c echo.Context) error {
	body, rej := validate.ParseBody(c.Request().Body)
	if rej != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"success": false,
			"error":   "cropType and farmStage are required fields",
		})
	}
	in, rej := validate.RecommendInput(body)
	if rej != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"success": false,
			"error":   "cropType and farmStage are required fields",
		})
	}
	return c.JSON(http.StatusOK, recommend.Predict(in.CropType, in.FarmStage, in.CropWeight))
}
