package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/teamsite/content-api/internal/core/domain"
	"github.com/teamsite/content-api/internal/core/ports"
)

// AssetHandler serves stored image files.
type AssetHandler struct {
	store ports.AssetStore
}

func NewAssetHandler(store ports.AssetStore) *AssetHandler {
	return &AssetHandler{store: store}
}

// Get handles GET /assets/:filename.
//
// @Summary      Serve a stored image asset
// @Tags         assets
// @Produce      image/webp
// @Param        filename  path  string  true  "Asset filename (<record id>.webp)"
// @Success      200
// @Failure      404  {object}  map[string]string
// @Router       /assets/{filename} [get]
func (h *AssetHandler) Get(c echo.Context) error {
	path, err := h.store.FilePath(c.Param("filename"))
	if err != nil {
		if errors.Is(err, domain.ErrAssetNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Asset not found")
		}
		return err
	}
	return c.File(path)
}
