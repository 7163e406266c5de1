// Package handler serves the component store over API Gateway proxy events.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"

	"github.com/jacentio/components/store"
)

// Components is the set of store operations exposed over HTTP.
type Components interface {
	List(ctx context.Context) ([]store.Component, error)
	Get(ctx context.Context, componentID string) (*store.Component, error)
	Update(ctx context.Context, componentID string, fields store.Fields) (*store.Component, error)
	UpdateStatus(ctx context.Context, componentID, status string) (*store.Component, error)
	Delete(ctx context.Context, componentID string) error
}

var _ Components = (*store.Store)(nil)

// Handler routes API Gateway requests to a Components implementation.
type Handler struct {
	components Components
	logger     *slog.Logger
}

// NewHandler creates a new request handler.
func NewHandler(c Components, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		components: c,
		logger:     logger,
	}
}

type statusRequest struct {
	Status *string `json:"status"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Handle serves a single API Gateway proxy request. It never returns a Go error:
// every failure is expressed as an HTTP status so API Gateway does not answer 502.
//
//	GET    /components
//	GET    /components/{id}
//	PATCH  /components/{id}
//	PUT    /components/{id}/status
//	DELETE /components/{id}
func (h *Handler) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	resp := h.route(ctx, req)

	h.logger.Info("handled request",
		"method", req.HTTPMethod,
		"path", req.Path,
		"status", resp.StatusCode,
	)
	return resp, nil
}

func (h *Handler) route(ctx context.Context, req events.APIGatewayProxyRequest) events.APIGatewayProxyResponse {
	parts := strings.Split(strings.Trim(req.Path, "/"), "/")
	if len(parts) == 0 || parts[0] != "components" {
		return h.errorResponse(http.StatusNotFound, "not found")
	}

	switch {
	case len(parts) == 1:
		if req.HTTPMethod != http.MethodGet {
			return h.errorResponse(http.StatusMethodNotAllowed, "method not allowed")
		}
		return h.list(ctx)

	case len(parts) == 2 && parts[1] != "":
		id := parts[1]
		switch req.HTTPMethod {
		case http.MethodGet:
			return h.get(ctx, id)
		case http.MethodPatch:
			return h.update(ctx, id, req.Body)
		case http.MethodDelete:
			return h.delete(ctx, id)
		default:
			return h.errorResponse(http.StatusMethodNotAllowed, "method not allowed")
		}

	case len(parts) == 3 && parts[1] != "" && parts[2] == "status":
		if req.HTTPMethod != http.MethodPut {
			return h.errorResponse(http.StatusMethodNotAllowed, "method not allowed")
		}
		return h.updateStatus(ctx, parts[1], req.Body)
	}

	return h.errorResponse(http.StatusNotFound, "not found")
}

func (h *Handler) list(ctx context.Context) events.APIGatewayProxyResponse {
	components, err := h.components.List(ctx)
	if err != nil {
		return h.storeError(err)
	}
	return h.jsonResponse(http.StatusOK, components)
}

func (h *Handler) get(ctx context.Context, id string) events.APIGatewayProxyResponse {
	c, err := h.components.Get(ctx, id)
	if err != nil {
		return h.storeError(err)
	}
	return h.jsonResponse(http.StatusOK, c)
}

func (h *Handler) update(ctx context.Context, id, body string) events.APIGatewayProxyResponse {
	var fields store.Fields
	if err := json.Unmarshal([]byte(body), &fields); err != nil {
		return h.errorResponse(http.StatusBadRequest, "invalid request body: "+err.Error())
	}

	c, err := h.components.Update(ctx, id, fields)
	if err != nil {
		return h.storeError(err)
	}
	return h.jsonResponse(http.StatusOK, c)
}

func (h *Handler) updateStatus(ctx context.Context, id, body string) events.APIGatewayProxyResponse {
	var sr statusRequest
	if err := json.Unmarshal([]byte(body), &sr); err != nil {
		return h.errorResponse(http.StatusBadRequest, "invalid request body: "+err.Error())
	}
	if sr.Status == nil {
		return h.errorResponse(http.StatusBadRequest, "status is required")
	}

	c, err := h.components.UpdateStatus(ctx, id, *sr.Status)
	if err != nil {
		return h.storeError(err)
	}
	return h.jsonResponse(http.StatusOK, c)
}

func (h *Handler) delete(ctx context.Context, id string) events.APIGatewayProxyResponse {
	if err := h.components.Delete(ctx, id); err != nil {
		return h.storeError(err)
	}
	return events.APIGatewayProxyResponse{StatusCode: http.StatusNoContent}
}

// storeError maps a store failure to an HTTP response.
func (h *Handler) storeError(err error) events.APIGatewayProxyResponse {
	if errors.Is(err, store.ErrNotFound) {
		return h.errorResponse(http.StatusNotFound, err.Error())
	}

	var se *store.StoreError
	if errors.As(err, &se) {
		h.logger.Error("store request failed",
			"op", se.Op,
			"code", se.Code(),
			"error", err,
		)
	} else {
		h.logger.Error("request failed", "error", err)
	}
	return h.errorResponse(http.StatusInternalServerError, "internal error")
}

func (h *Handler) errorResponse(status int, msg string) events.APIGatewayProxyResponse {
	return h.jsonResponse(status, errorResponse{Error: msg})
}

func (h *Handler) jsonResponse(status int, payload any) events.APIGatewayProxyResponse {
	body, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error("failed to marshal response", "error", err)
		return events.APIGatewayProxyResponse{StatusCode: http.StatusInternalServerError}
	}
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       string(body),
	}
}
