package domain

import "net/http"

// Error 是所有用例对外返回的错误，Code 稳定不变，由传输层映射为协议状态码
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return e.Message
}

// Is 让 errors.Is 按错误种类（Code）比较
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

const (
	CodeBadRequest       = http.StatusBadRequest
	CodeUnauthorized     = http.StatusUnauthorized
	CodeResourceNotFound = http.StatusNotFound
	CodeInternal         = http.StatusInternalServerError
)

var (
	ErrBadRequest       = &Error{Code: CodeBadRequest, Message: "请求无效"}
	ErrUnauthorized     = &Error{Code: CodeUnauthorized, Message: "权限不足"}
	ErrResourceNotFound = &Error{Code: CodeResourceNotFound, Message: "资源不存在"}
	ErrInternal         = &Error{Code: CodeInternal, Message: "服务器内部错误"}
)

func NewBadRequestError(msg string) *Error {
	return &Error{Code: CodeBadRequest, Message: msg}
}

func NewResourceNotFoundError(msg string) *Error {
	return &Error{Code: CodeResourceNotFound, Message: msg}
}
