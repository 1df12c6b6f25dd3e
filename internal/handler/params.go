package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sysu-ecnc-dev/newsroom/backend/internal/domain"
)

func uint32Query(r *http.Request, name string) (*uint32, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return nil, errors.New("参数 " + name + " 无效")
	}
	n := uint32(v)
	return &n, nil
}

// readPageQuery 读取 page、perPage 和 query 参数，规范化由用例完成
func readPageQuery(r *http.Request) (domain.PageQuery, error) {
	page, err := uint32Query(r, "page")
	if err != nil {
		return domain.PageQuery{}, err
	}
	perPage, err := uint32Query(r, "perPage")
	if err != nil {
		return domain.PageQuery{}, err
	}

	q := domain.PageQuery{Page: page, PerPage: perPage}
	if query := r.URL.Query().Get("query"); query != "" {
		q.Query = &query
	}
	return q, nil
}

func boolQuery(r *http.Request, name string) (*bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, errors.New("参数 " + name + " 无效")
	}
	return &v, nil
}

func int32Query(r *http.Request, name string) (*int32, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return nil, errors.New("参数 " + name + " 无效")
	}
	n := int32(v)
	return &n, nil
}

func uuidQuery(r *http.Request, name string) (*uuid.UUID, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, errors.New("参数 " + name + " 无效")
	}
	return &id, nil
}

func uuidParam(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, errors.New("ID 无效")
	}
	return id, nil
}

func int32Param(r *http.Request, name string) (int32, error) {
	v, err := strconv.ParseInt(chi.URLParam(r, name), 10, 32)
	if err != nil {
		return 0, errors.New("ID 无效")
	}
	return int32(v), nil
}
