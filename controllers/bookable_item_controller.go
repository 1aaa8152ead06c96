package controllers

import (
	"travelhub/dto"
	"travelhub/response"
	"travelhub/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type BookableItemController struct {
	Items  *services.BookableItemService
	Logger *zap.Logger
}

func NewBookableItemController(items *services.BookableItemService, logger *zap.Logger) BookableItemController {
	return BookableItemController{Items: items, Logger: logger}
}

// CreateItem godoc
// @Summary      Tạo dịch vụ cho nhà cung cấp đã được duyệt
// @Tags         owner
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      dto.CreateBookableItemInput  true  "extraData phụ thuộc itemType"
// @Success      201   {object}  response.Response
// @Failure      403   {object}  response.Response
// @Router       /owner/bookable-items [post]
func (b BookableItemController) CreateItem(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var input dto.CreateBookableItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BindingError(c, err)
		return
	}

	item, err := b.Items.Create(c.Request.Context(), userID, input)
	if err != nil {
		response.Error(c, b.Logger, err)
		return
	}
	response.Created(c, item)
}

func (b BookableItemController) ListProviderItems(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	providerID, ok := paramID(c, "providerId")
	if !ok {
		return
	}

	var q dto.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BindingError(c, err)
		return
	}
	q.Normalize()

	items, total, err := b.Items.ListByProvider(c.Request.Context(), userID, providerID, q)
	if err != nil {
		response.Error(c, b.Logger, err)
		return
	}
	response.SuccessWithPagination(c, items, q.Page, q.Limit, int(total))
}

func (b BookableItemController) GetItem(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	itemID, ok := paramID(c, "idItem")
	if !ok {
		return
	}

	item, err := b.Items.Detail(c.Request.Context(), userID, itemID)
	if err != nil {
		response.Error(c, b.Logger, err)
		return
	}
	response.Success(c, item)
}

// AddMedia nhận multipart: image (bắt buộc), type image|video
func (b BookableItemController) AddMedia(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	itemID, ok := paramID(c, "idItem")
	if !ok {
		return
	}

	var input dto.AddMediaInput
	if err := c.ShouldBind(&input); err != nil {
		response.BindingError(c, err)
		return
	}
	// thiếu file thì service trả lỗi validation
	file, _ := c.FormFile("image")

	media, err := b.Items.AddMedia(c.Request.Context(), userID, itemID, input.Type, file)
	if err != nil {
		response.Error(c, b.Logger, err)
		return
	}
	response.Created(c, media)
}

func (b BookableItemController) AddRoom(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	itemID, ok := paramID(c, "idItem")
	if !ok {
		return
	}

	var input dto.RoomInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BindingError(c, err)
		return
	}

	room, err := b.Items.AddRoom(c.Request.Context(), userID, itemID, input)
	if err != nil {
		response.Error(c, b.Logger, err)
		return
	}
	response.Created(c, room)
}

func (b BookableItemController) UpsertVehicle(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	itemID, ok := paramID(c, "idItem")
	if !ok {
		return
	}

	var input dto.VehicleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BindingError(c, err)
		return
	}

	vehicle, err := b.Items.UpsertVehicle(c.Request.Context(), userID, itemID, input)
	if err != nil {
		response.Error(c, b.Logger, err)
		return
	}
	response.Success(c, vehicle)
}

func (b BookableItemController) AddPosition(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	itemID, ok := paramID(c, "idItem")
	if !ok {
		return
	}

	var input dto.PositionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BindingError(c, err)
		return
	}

	position, err := b.Items.AddPosition(c.Request.Context(), userID, itemID, input)
	if err != nil {
		response.Error(c, b.Logger, err)
		return
	}
	response.Created(c, position)
}

// Browse godoc
// @Summary      Khách xem dịch vụ trong khu vực
// @Tags         public
// @Produce      json
// @Param        areaId    query     string  true   "Khu vực"
// @Param        itemType  query     string  false  "tour | accommodation | vehicle | ticket"
// @Success      200       {object}  response.Response
// @Router       /bookable-items [get]
func (b BookableItemController) Browse(c *gin.Context) {
	var q dto.BrowseItemsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BindingError(c, err)
		return
	}
	q.Normalize()

	items, total, err := b.Items.Browse(c.Request.Context(), q)
	if err != nil {
		response.Error(c, b.Logger, err)
		return
	}
	response.SuccessWithPagination(c, items, q.Page, q.Limit, int(total))
}
