package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/teamsite/content-api/internal/core/service"
)

// LocaleHandler handles the locale reference list and its admin operations.
// The mutating routes sit behind the static-token middleware.
type LocaleHandler struct {
	service *service.LocaleService
}

func NewLocaleHandler(service *service.LocaleService) *LocaleHandler {
	return &LocaleHandler{service: service}
}

type createLocaleRequest struct {
	Language string `json:"language" validate:"required"`
}

// List handles GET /v1/locales: unauthenticated read feeding the editor's
// locale selector.
//
// @Summary      List known locale tags
// @Tags         locales
// @Produce      json
// @Success      200  {array}  domain.Locale
// @Router       /v1/locales [get]
func (h *LocaleHandler) List(c echo.Context) error {
	locales, err := h.service.ListLocales(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, locales)
}

// Create handles POST /v1/locales.
//
// @Summary      Register a locale tag
// @Tags         locales
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createLocaleRequest  true  "Locale to register"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /v1/locales [post]
func (h *LocaleHandler) Create(c echo.Context) error {
	var req createLocaleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request: malformed body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request: "+err.Error())
	}

	if err := h.service.CreateLocale(c.Request().Context(), req.Language); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Locale created"})
}

// Delete handles DELETE /v1/locales/:language.
//
// @Summary      Delete a locale tag
// @Tags         locales
// @Produce      json
// @Security     BearerAuth
// @Param        language  path      string  true  "Locale tag"
// @Success      200       {object}  map[string]string
// @Failure      401       {object}  map[string]string
// @Router       /v1/locales/{language} [delete]
func (h *LocaleHandler) Delete(c echo.Context) error {
	if err := h.service.DeleteLocale(c.Request().Context(), c.Param("language")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Locale deleted"})
}
