package controllers

import (
	"context"

	"travelhub/dto"
	"travelhub/response"
	"travelhub/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type GeographyController struct {
	Geo    *services.GeographyService
	Logger *zap.Logger
}

func NewGeographyController(geo *services.GeographyService, logger *zap.Logger) GeographyController {
	return GeographyController{Geo: geo, Logger: logger}
}

// ListCountries godoc
// @Summary      Danh sách quốc gia
// @Tags         geography
// @Produce      json
// @Param        q  query     string  false  "Tìm theo tên, không phân biệt dấu"
// @Success      200  {object}  response.Response
// @Router       /admin/geography/countries [get]
func (g GeographyController) ListCountries(c *gin.Context) {
	var q dto.GeoListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BindingError(c, err)
		return
	}
	list, err := g.Geo.ListCountries(c.Request.Context(), q.Q)
	g.respond(c, list, err)
}

func (g GeographyController) ListCities(c *gin.Context) {
	var q dto.GeoListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BindingError(c, err)
		return
	}
	list, err := g.Geo.ListCities(c.Request.Context(), q.CountryID, q.Q)
	g.respond(c, list, err)
}

func (g GeographyController) ListAreas(c *gin.Context) {
	var q dto.GeoListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BindingError(c, err)
		return
	}
	list, err := g.Geo.ListAreas(c.Request.Context(), q.CityID, q.Status, q.Q)
	g.respond(c, list, err)
}

func (g GeographyController) ListPointsOfInterest(c *gin.Context) {
	var q dto.GeoListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BindingError(c, err)
		return
	}
	list, err := g.Geo.ListPointsOfInterest(c.Request.Context(), q.AreaID, q.Q)
	g.respond(c, list, err)
}

func (g GeographyController) CreateCountry(c *gin.Context) { create(c, g.Logger, g.Geo.CreateCountry) }
func (g GeographyController) CreateCity(c *gin.Context)    { create(c, g.Logger, g.Geo.CreateCity) }
func (g GeographyController) CreateArea(c *gin.Context)    { create(c, g.Logger, g.Geo.CreateArea) }
func (g GeographyController) CreatePointOfInterest(c *gin.Context) {
	create(c, g.Logger, g.Geo.CreatePointOfInterest)
}

func (g GeographyController) UpdateCountry(c *gin.Context) { patch(c, g.Logger, g.Geo.UpdateCountry) }
func (g GeographyController) UpdateCity(c *gin.Context)    { patch(c, g.Logger, g.Geo.UpdateCity) }
func (g GeographyController) UpdateArea(c *gin.Context)    { patch(c, g.Logger, g.Geo.UpdateArea) }
func (g GeographyController) UpdatePointOfInterest(c *gin.Context) {
	patch(c, g.Logger, g.Geo.UpdatePointOfInterest)
}

func (g GeographyController) DeleteCountry(c *gin.Context) { remove(c, g.Logger, g.Geo.DeleteCountry) }
func (g GeographyController) DeleteCity(c *gin.Context)    { remove(c, g.Logger, g.Geo.DeleteCity) }
func (g GeographyController) DeleteArea(c *gin.Context)    { remove(c, g.Logger, g.Geo.DeleteArea) }
func (g GeographyController) DeletePointOfInterest(c *gin.Context) {
	remove(c, g.Logger, g.Geo.DeletePointOfInterest)
}

func (g GeographyController) respond(c *gin.Context, data interface{}, err error) {
	if err != nil {
		response.Error(c, g.Logger, err)
		return
	}
	response.Success(c, data)
}

// create, patch, remove dùng chung cho 4 cấp địa lý

func create[I any, T any](c *gin.Context, log *zap.Logger, fn func(context.Context, I) (*T, error)) {
	var input I
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BindingError(c, err)
		return
	}
	out, err := fn(c.Request.Context(), input)
	if err != nil {
		response.Error(c, log, err)
		return
	}
	response.Created(c, out)
}

func patch[I any, T any](c *gin.Context, log *zap.Logger, fn func(context.Context, uuid.UUID, I) (*T, error)) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var input I
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BindingError(c, err)
		return
	}
	out, err := fn(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, log, err)
		return
	}
	response.Success(c, out)
}

func remove(c *gin.Context, log *zap.Logger, fn func(context.Context, uuid.UUID) error) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := fn(c.Request.Context(), id); err != nil {
		response.Error(c, log, err)
		return
	}
	response.Success(c, nil)
}
