package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/teamsite/content-api/internal/core/domain"
	"github.com/teamsite/content-api/internal/core/ports"
)

// RecordHandler handles HTTP requests for record operations.
type RecordHandler struct {
	service ports.RecordService
}

func NewRecordHandler(service ports.RecordService) *RecordHandler {
	return &RecordHandler{service: service}
}

// --- Request / Response types ---

type saveRecordRequest struct {
	Token       string `json:"token"`
	Kind        string `json:"kind"`
	ID          string `json:"id,omitempty"`
	Locale      string `json:"locale"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image,omitempty"`
}

type saveRecordResponse struct {
	Message string         `json:"message"`
	Record  *domain.Record `json:"record"`
}

type deleteRecordRequest struct {
	Token string `json:"token"`
	Kind  string `json:"kind"`
	ID    string `json:"id"`
}

// Save handles POST /v1/records, the upsert write: create when id is empty,
// partial update otherwise.
//
// @Summary      Create or update a record
// @Tags         records
// @Accept       json
// @Produce      json
// @Param        body  body      saveRecordRequest  true  "Record write request; token is the shared write secret"
// @Success      200   {object}  saveRecordResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /v1/records [post]
func (h *RecordHandler) Save(c echo.Context) error {
	var req saveRecordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request: malformed body")
	}

	kind, err := domain.ParseKind(req.Kind)
	if err != nil {
		return err
	}

	result, err := h.service.Save(c.Request().Context(), ports.SaveRecordInput{
		Token:       req.Token,
		Kind:        kind,
		ID:          req.ID,
		Name:        req.Name,
		Description: req.Description,
		Locale:      req.Locale,
		Image:       req.Image,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, saveRecordResponse{
		Message: result.Message,
		Record:  result.Record,
	})
}

// Delete handles DELETE /v1/records.
//
// @Summary      Delete a record and its asset
// @Tags         records
// @Accept       json
// @Produce      json
// @Param        body  body      deleteRecordRequest  true  "Record to delete"
// @Success      200   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /v1/records [delete]
func (h *RecordHandler) Delete(c echo.Context) error {
	var req deleteRecordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request: malformed body")
	}

	kind, err := domain.ParseKind(req.Kind)
	if err != nil {
		return err
	}

	err = h.service.Delete(c.Request().Context(), ports.DeleteRecordInput{
		Token: req.Token,
		Kind:  kind,
		ID:    req.ID,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Record deleted"})
}

// List handles GET /v1/records/:kind. The locale query parameter narrows the
// listing; without it all records of the kind are returned.
//
// @Summary      List records of a kind
// @Tags         records
// @Produce      json
// @Param        kind    path      string  true   "member or project"
// @Param        locale  query     string  false  "Locale tag filter"
// @Success      200     {array}   domain.Record
// @Failure      400     {object}  map[string]string
// @Router       /v1/records/{kind} [get]
func (h *RecordHandler) List(c echo.Context) error {
	kind, err := domain.ParseKind(c.Param("kind"))
	if err != nil {
		return err
	}

	records, err := h.service.ListRecords(c.Request().Context(), kind, c.QueryParam("locale"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, records)
}

// Get handles GET /v1/records/:kind/:id.
//
// @Summary      Get a record by id
// @Tags         records
// @Produce      json
// @Param        kind  path      string  true  "member or project"
// @Param        id    path      string  true  "Record id"
// @Success      200   {object}  domain.Record
// @Failure      404   {object}  map[string]string
// @Router       /v1/records/{kind}/{id} [get]
func (h *RecordHandler) Get(c echo.Context) error {
	kind, err := domain.ParseKind(c.Param("kind"))
	if err != nil {
		return err
	}

	rec, err := h.service.GetRecord(c.Request().Context(), kind, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rec)
}
