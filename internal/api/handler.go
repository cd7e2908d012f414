package api

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/blog-articles-api/internal/config"
	"github.com/blog-articles-api/internal/database"
	"github.com/blog-articles-api/internal/metrics"
	"github.com/blog-articles-api/internal/models"
	"github.com/blog-articles-api/internal/repository"
	"github.com/blog-articles-api/internal/service"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ConnectFunc opens the per-invocation database scope. The returned
// closer releases it and is always called before the invocation ends.
type ConnectFunc func(ctx context.Context) (*service.Services, io.Closer, error)

// DBConnector returns a ConnectFunc that opens a fresh PostgreSQL
// connection for every call.
func DBConnector(cfg *config.DatabaseConfig, log zerolog.Logger) ConnectFunc {
	return func(ctx context.Context) (*service.Services, io.Closer, error) {
		db, err := database.Open(ctx, cfg, log)
		if err != nil {
			return nil, nil, err
		}
		return service.NewServices(repository.New(db), log), db, nil
	}
}

// Handler serves article requests delivered as API Gateway proxy events
type Handler struct {
	connect ConnectFunc
	log     zerolog.Logger
}

// NewHandler creates a Handler backed by the configured database
func NewHandler(cfg *config.Config, log zerolog.Logger) *Handler {
	return NewHandlerWithConnector(DBConnector(&cfg.Database, log), log)
}

// NewHandlerWithConnector creates a Handler with a custom connection scope
func NewHandlerWithConnector(connect ConnectFunc, log zerolog.Logger) *Handler {
	return &Handler{
		connect: connect,
		log:     log.With().Str("component", "handler").Logger(),
	}
}

// Handle processes one request. The error is always nil: every failure,
// including infrastructure errors, is reported in the response.
func (h *Handler) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	start := time.Now()

	method := req.HTTPMethod
	if method == "" {
		method = http.MethodGet
	}

	requestID := req.RequestContext.RequestID
	if requestID == "" {
		requestID = uuid.NewString()
	}
	log := h.log.With().Str("request_id", requestID).Str("method", method).Logger()

	if method == http.MethodOptions {
		resp := preflightResponse()
		metrics.Observe(method, "preflight", resp.StatusCode, time.Since(start))
		return resp, nil
	}

	res, action, err := h.dispatch(ctx, method, req, log)
	resp := toResponse(res, err)
	elapsed := time.Since(start)

	event := log.Info()
	if resp.StatusCode >= 400 {
		event = log.Warn()
	}
	if resp.StatusCode >= 500 {
		event = log.Error().Err(err)
	}
	event.
		Str("action", action).
		Int("status", resp.StatusCode).
		Dur("duration", elapsed).
		Msg("Request completed")

	metrics.Observe(method, action, resp.StatusCode, elapsed)

	return resp, nil
}

// dispatch routes the request and returns either a result or an error
// for the boundary to map. It also reports the action label for logs.
func (h *Handler) dispatch(ctx context.Context, method string, req events.APIGatewayProxyRequest, log zerolog.Logger) (*result, string, error) {
	if method != http.MethodGet && method != http.MethodPost {
		return nil, "none", errMethodNotAllowed
	}

	svc, closer, err := h.connect(ctx)
	if err != nil {
		return nil, "connect", err
	}
	defer func() {
		if err := closer.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to release database connection")
		}
	}()

	if method == http.MethodGet {
		return h.get(ctx, svc, req.QueryStringParameters)
	}
	return h.post(ctx, svc, req)
}

func (h *Handler) get(ctx context.Context, svc *service.Services, params map[string]string) (*result, string, error) {
	if id := params["id"]; id != "" {
		article, err := svc.Article.GetArticle(ctx, id)
		if err != nil {
			return nil, "get", err
		}
		return &result{status: http.StatusOK, body: article}, "get", nil
	}

	filter := models.NewArticleFilter(params["category"], params["search"])
	articles, err := svc.Article.ListArticles(ctx, filter)
	if err != nil {
		return nil, "list", err
	}
	return &result{status: http.StatusOK, body: articles}, "list", nil
}

func (h *Handler) post(ctx context.Context, svc *service.Services, req events.APIGatewayProxyRequest) (*result, string, error) {
	body, err := requestBody(req)
	if err != nil {
		return nil, "decode", err
	}

	action, err := models.ParseAction(body)
	if err != nil {
		return nil, "decode", err
	}

	switch a := action.(type) {
	case *models.CommentAction:
		created, err := svc.Comment.AddComment(ctx, a)
		if err != nil {
			return nil, string(models.ActionComment), err
		}
		return &result{status: http.StatusCreated, body: created}, string(models.ActionComment), nil

	case *models.RateAction:
		rating, err := svc.Rating.RateArticle(ctx, a)
		if err != nil {
			return nil, string(models.ActionRate), err
		}
		return &result{status: http.StatusOK, body: rating}, string(models.ActionRate), nil

	default:
		return nil, "unknown", errUnknownAction
	}
}

func requestBody(req events.APIGatewayProxyRequest) ([]byte, error) {
	if !req.IsBase64Encoded {
		return []byte(req.Body), nil
	}
	body, err := base64.StdEncoding.DecodeString(req.Body)
	if err != nil {
		return nil, fmt.Errorf("invalid base64 body: %w", err)
	}
	return body, nil
}
