package controllers

import (
	"travelhub/dto"
	"travelhub/response"
	"travelhub/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ProviderController struct {
	Providers *services.ProviderService
	Logger    *zap.Logger
}

func NewProviderController(providers *services.ProviderService, logger *zap.Logger) ProviderController {
	return ProviderController{Providers: providers, Logger: logger}
}

// CreateProvider godoc
// @Summary      Owner đăng ký nhà cung cấp (chờ duyệt)
// @Tags         owner
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        name    formData  string  true   "Tên"
// @Param        areaId  formData  string  true   "Khu vực"
// @Param        phone   formData  string  true   "Số điện thoại"
// @Param        image   formData  file    false  "Ảnh đại diện"
// @Success      201     {object}  response.Response
// @Failure      403     {object}  response.Response
// @Router       /owner/providers [post]
func (p ProviderController) CreateProvider(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var input dto.CreateProviderInput
	if err := c.ShouldBind(&input); err != nil {
		response.BindingError(c, err)
		return
	}

	provider, err := p.Providers.Create(c.Request.Context(), userID, input)
	if err != nil {
		response.Error(c, p.Logger, err)
		return
	}
	response.Created(c, provider)
}

func (p ProviderController) ListMyProviders(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var q dto.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BindingError(c, err)
		return
	}
	q.Normalize()

	providers, total, err := p.Providers.ListMine(c.Request.Context(), userID, q)
	if err != nil {
		response.Error(c, p.Logger, err)
		return
	}
	response.SuccessWithPagination(c, providers, q.Page, q.Limit, int(total))
}

func (p ProviderController) GetMyProvider(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	providerID, ok := paramID(c, "providerId")
	if !ok {
		return
	}

	provider, err := p.Providers.GetMine(c.Request.Context(), userID, providerID)
	if err != nil {
		response.Error(c, p.Logger, err)
		return
	}
	response.Success(c, provider)
}

// UpdateMyProvider nhận multipart hoặc json, khu vực không đổi được
func (p ProviderController) UpdateMyProvider(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	providerID, ok := paramID(c, "providerId")
	if !ok {
		return
	}

	var input dto.UpdateProviderInput
	if err := c.ShouldBind(&input); err != nil {
		response.BindingError(c, err)
		return
	}

	provider, err := p.Providers.UpdateMine(c.Request.Context(), userID, providerID, input)
	if err != nil {
		response.Error(c, p.Logger, err)
		return
	}
	response.Success(c, provider)
}

// ListProviders godoc
// @Summary      Admin xem danh sách nhà cung cấp, mặc định pending
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "pending | active | inactive | all"
// @Param        page    query     int     false  "Trang, bắt đầu từ 0"
// @Param        limit   query     int     false  "Số dòng mỗi trang"
// @Success      200     {object}  response.Response
// @Router       /admin/providers [get]
func (p ProviderController) ListProviders(c *gin.Context) {
	var q dto.ProviderListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BindingError(c, err)
		return
	}
	q.Normalize()

	providers, total, err := p.Providers.ListForAdmin(c.Request.Context(), q)
	if err != nil {
		response.Error(c, p.Logger, err)
		return
	}
	response.SuccessWithPagination(c, providers, q.Page, q.Limit, int(total))
}

// ReviewProvider godoc
// @Summary      Duyệt nhà cung cấp đang pending
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                   true  "Provider id"
// @Param        body  body      dto.ReviewProviderInput  true  "active hoặc inactive"
// @Success      200   {object}  response.Response
// @Failure      409   {object}  response.Response
// @Router       /admin/providers/{id}/status [patch]
func (p ProviderController) ReviewProvider(c *gin.Context) {
	providerID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var input dto.ReviewProviderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BindingError(c, err)
		return
	}

	provider, err := p.Providers.Review(c.Request.Context(), providerID, input.Status)
	if err != nil {
		response.Error(c, p.Logger, err)
		return
	}
	response.Success(c, provider)
}

func (p ProviderController) AdminUpdateProvider(c *gin.Context) {
	providerID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var input dto.AdminUpdateProviderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BindingError(c, err)
		return
	}

	provider, err := p.Providers.AdminUpdate(c.Request.Context(), providerID, input)
	if err != nil {
		response.Error(c, p.Logger, err)
		return
	}
	response.Success(c, provider)
}
