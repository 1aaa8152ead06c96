package controllers

import (
	"travelhub/dto"
	"travelhub/response"
	"travelhub/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthController struct {
	Auth   *services.AuthService
	Logger *zap.Logger
}

func NewAuthController(auth *services.AuthService, logger *zap.Logger) AuthController {
	return AuthController{Auth: auth, Logger: logger}
}

// Register godoc
// @Summary      Đăng ký tài khoản
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      dto.RegisterInput  true  "Thông tin đăng ký"
// @Success      201   {object}  response.Response
// @Failure      400   {object}  response.Response
// @Failure      409   {object}  response.Response
// @Router       /auth/register [post]
func (a AuthController) Register(c *gin.Context) {
	var input dto.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BindingError(c, err)
		return
	}

	user, err := a.Auth.Register(c.Request.Context(), input)
	if err != nil {
		response.Error(c, a.Logger, err)
		return
	}
	response.Created(c, user)
}

// VerifyEmail godoc
// @Summary      Xác thực email
// @Tags         auth
// @Produce      json
// @Param        token  query     string  true  "Mã xác thực"
// @Success      200    {object}  response.Response
// @Router       /auth/verify-email [get]
func (a AuthController) VerifyEmail(c *gin.Context) {
	user, err := a.Auth.VerifyEmail(c.Request.Context(), c.Query("token"))
	if err != nil {
		response.Error(c, a.Logger, err)
		return
	}
	response.Success(c, user)
}

// Login godoc
// @Summary      Đăng nhập
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      dto.LoginInput  true  "Email và mật khẩu"
// @Success      200   {object}  response.Response
// @Failure      401   {object}  response.Response
// @Router       /auth/login [post]
func (a AuthController) Login(c *gin.Context) {
	var input dto.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BindingError(c, err)
		return
	}

	resp, err := a.Auth.Login(c.Request.Context(), input)
	if err != nil {
		response.Error(c, a.Logger, err)
		return
	}
	response.Success(c, resp)
}

// Profile godoc
// @Summary      Thông tin user đang đăng nhập
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response
// @Router       /auth/profile [get]
func (a AuthController) Profile(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	user, err := a.Auth.Profile(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, a.Logger, err)
		return
	}
	response.Success(c, user)
}

// ForgotPassword godoc
// @Summary      Yêu cầu đặt lại mật khẩu
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      dto.ForgotPasswordInput  true  "Email"
// @Success      200   {object}  response.Response
// @Router       /auth/forgot-password [post]
func (a AuthController) ForgotPassword(c *gin.Context) {
	var input dto.ForgotPasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BindingError(c, err)
		return
	}

	if err := a.Auth.ForgotPassword(c.Request.Context(), input.Email); err != nil {
		response.Error(c, a.Logger, err)
		return
	}
	response.Success(c, nil)
}

// ResetPassword godoc
// @Summary      Đặt lại mật khẩu bằng reset token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      dto.ResetPasswordInput  true  "Token và mật khẩu mới"
// @Success      200   {object}  response.Response
// @Router       /auth/reset-password [post]
func (a AuthController) ResetPassword(c *gin.Context) {
	var input dto.ResetPasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BindingError(c, err)
		return
	}

	if err := a.Auth.ResetPassword(c.Request.Context(), input); err != nil {
		response.Error(c, a.Logger, err)
		return
	}
	response.Success(c, nil)
}
