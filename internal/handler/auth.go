package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/sysu-ecnc-dev/newsroom/backend/internal/domain"
	"github.com/sysu-ecnc-dev/newsroom/backend/internal/otp"
	"github.com/sysu-ecnc-dev/newsroom/backend/internal/service"
	"github.com/sysu-ecnc-dev/newsroom/backend/internal/utils"
)

func (h *Handler) setTokenCookie(w http.ResponseWriter, token string, expiration time.Time) {
	// 通过 http-only 的 cookie 返回给客户端
	cookie := &http.Cookie{
		Name:     h.config.JWT.CookieName,
		Value:    token,
		Expires:  expiration,
		Path:     "/",
		HttpOnly: true,
		Secure:   false,
	}

	if h.config.Environment == "production" {
		cookie.Secure = true
		cookie.SameSite = http.SameSiteStrictMode
	}

	http.SetCookie(w, cookie)
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name" validate:"required,max=50"`
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	if !h.readAndValidate(w, r, &req) {
		return
	}
	if err := utils.ValidatePassword(req.Password); err != nil {
		h.badRequest(w, r, err)
		return
	}

	user, err := h.services.CreateUser.Exec(r.Context(), service.CreateUserParams{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.publishMail(r.Context(), domain.MailMessage{
		Type: domain.MailTypeWelcome,
		To:   user.Email,
		Data: domain.WelcomeMailData{Name: user.Name},
	})

	h.successResponse(w, r, "注册成功", user)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	if !h.readAndValidate(w, r, &req) {
		return
	}

	result, err := h.services.AuthenticateUser.Exec(r.Context(), service.AuthenticateUserParams{
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.setTokenCookie(w, result.Token, result.ExpiresAt)

	h.successResponse(w, r, "登录成功", result.User)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:    h.config.JWT.CookieName,
		Value:   "",
		Expires: time.Now().Add(-time.Hour),
		Path:    "/",
	})

	h.successResponse(w, r, "登出成功", nil)
}

func (h *Handler) RequireResetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name" validate:"required"`
	}

	if !h.readAndValidate(w, r, &req) {
		return
	}

	user, err := h.services.GetUser.ByName(r.Context(), req.Name)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	if user == nil {
		// 这里虽然已经知道了用户不存在，但是为了安全起见，还是告诉客户端邮件已发送，以防止接口被滥用
		h.successResponse(w, r, "重置密码所需验证码已通过邮件发送", nil)
		return
	}

	// 生成 OTP 并将 OTP 存到 redis
	ctx, cancel := context.WithTimeout(r.Context(), time.Duration(h.config.Redis.OperationExpiration)*time.Minute)
	defer cancel()

	code, err := h.otp.Issue(ctx, otp.PurposeResetPassword, user.Name)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	// 邮件中显示的过期时间以分钟为单位
	if err := h.mailer.Publish(r.Context(), domain.MailMessage{
		Type: domain.MailTypeResetPassword,
		To:   user.Email,
		Data: domain.ResetPasswordMailData{
			Name:       user.Name,
			OTP:        code,
			Expiration: int(h.otp.Expiration().Minutes()),
		},
	}); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "重置密码所需验证码已通过邮件发送", nil)
}

func (h *Handler) ConfirmResetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name" validate:"required"`
		OTP      string `json:"otp" validate:"required,len=6,numeric"`
		Password string `json:"password" validate:"required"`
	}

	if !h.readAndValidate(w, r, &req) {
		return
	}
	if err := utils.ValidatePassword(req.Password); err != nil {
		h.badRequest(w, r, err)
		return
	}

	// 检验 OTP
	ctx, cancel := context.WithTimeout(r.Context(), time.Duration(h.config.Redis.OperationExpiration)*time.Minute)
	defer cancel()

	if err := h.otp.Verify(ctx, otp.PurposeResetPassword, req.Name, req.OTP); err != nil {
		if errors.Is(err, otp.ErrMismatch) {
			h.badRequest(w, r, err)
			return
		}
		h.internalServerError(w, r, err)
		return
	}

	if err := h.services.ResetPassword.Exec(r.Context(), service.ResetPasswordParams{
		Name:        req.Name,
		NewPassword: req.Password,
	}); err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.successResponse(w, r, "重置密码成功", nil)
}
