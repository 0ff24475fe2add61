//go:generate mockgen -source ./entitlementclient.go -destination=./mocks/entitlementclient.go -package=mocks
package entitlementclient

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/golang-jwt/jwt/v4"

	"github.com/iurnickita/entitlementsupport/internal/entitlementclient/config"
	"github.com/iurnickita/entitlementsupport/internal/metrics"
)

// Параметры поиска
type Query struct {
	Email     string
	Username  string
	CourseKey string
}

// JSON запрос на создание
type CreateRequest struct {
	CourseUUID string `json:"course_uuid"`
	User       string `json:"user"`
	Mode       string `json:"mode"`
	Reason     string `json:"reason"`
	Comments   string `json:"comments"`
}

// JSON запрос на перевыпуск. User в тело не попадает, он нужен для адреса
type UpdateRequest struct {
	EntitlementUUID string `json:"entitlement_uuid"`
	Reason          string `json:"reason"`
	Comments        string `json:"comments"`
	User            string `json:"-"`
}

// Сырой ответ API. Разбор тела на стороне вызывающего
type Response struct {
	StatusCode int
	Body       []byte
}

func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// StatusError is returned by Err for non-2xx responses.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("entitlement api status: %d", e.StatusCode)
}

func (r *Response) Err() error {
	if r.OK() {
		return nil
	}
	return &StatusError{StatusCode: r.StatusCode, Body: string(r.Body)}
}

const (
	paramUsernameOrEmail = "username_or_email"
	paramCourseKey       = "course_key"
	tokenTTL             = 5 * time.Minute
)

type Client interface {
	RequestEntitlements(ctx context.Context, query Query) (*Response, error)
	CreateEntitlement(ctx context.Context, req CreateRequest) (*Response, error)
	UpdateEntitlement(ctx context.Context, req UpdateRequest) (*Response, error)
}

type client struct {
	cfg   config.Config
	resty *resty.Client
}

func NewClient(cfg config.Config) Client {
	c := &client{cfg: cfg}

	c.resty = resty.New().
		SetBaseURL(cfg.BaseURL).
		SetHeader("Accept", "application/json").
		OnBeforeRequest(c.authorize).
		OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
			metrics.APIRequestsTotal.WithLabelValues(resp.Request.Method, strconv.Itoa(resp.StatusCode())).Inc()
			metrics.APIRequestDuration.WithLabelValues(resp.Request.Method).Observe(resp.Time().Seconds())
			return nil
		}).
		OnError(func(req *resty.Request, _ error) {
			metrics.APIRequestsTotal.WithLabelValues(req.Method, "error").Inc()
		})

	return c
}

func (c *client) RequestEntitlements(ctx context.Context, query Query) (*Response, error) {
	// поиск по email, если он не указан - по имени пользователя
	usernameOrEmail := query.Email
	if usernameOrEmail == "" {
		usernameOrEmail = query.Username
	}

	req := c.resty.R().
		SetContext(ctx).
		SetQueryParam(paramUsernameOrEmail, usernameOrEmail)
	if query.CourseKey != "" {
		req.SetQueryParam(paramCourseKey, query.CourseKey)
	}

	return c.send(req, http.MethodGet)
}

func (c *client) CreateEntitlement(ctx context.Context, body CreateRequest) (*Response, error) {
	req := c.resty.R().
		SetContext(ctx).
		SetQueryParam(paramUsernameOrEmail, body.User).
		SetBody(body)

	return c.send(req, http.MethodPost)
}

func (c *client) UpdateEntitlement(ctx context.Context, body UpdateRequest) (*Response, error) {
	req := c.resty.R().
		SetContext(ctx).
		SetQueryParam(paramUsernameOrEmail, body.User).
		SetBody(body)

	return c.send(req, http.MethodPut)
}

func (c *client) send(req *resty.Request, method string) (*Response, error) {
	req.Method = method
	req.URL = c.cfg.ListPath + "/"
	resp, err := req.Send()
	if err != nil {
		return nil, err
	}
	return &Response{StatusCode: resp.StatusCode(), Body: resp.Body()}, nil
}

// JWT для API, вместо cookie браузера
func (c *client) authorize(_ *resty.Client, req *resty.Request) error {
	if c.cfg.Secret == "" {
		return nil
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    c.cfg.Issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
	})
	signed, err := token.SignedString([]byte(c.cfg.Secret))
	if err != nil {
		return fmt.Errorf("sign api token: %w", err)
	}
	req.SetHeader("Authorization", "JWT "+signed)
	return nil
}
