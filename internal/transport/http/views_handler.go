package http

import (
	"context"
	"net/http"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/light-bringer/invcat-service/internal/pkg/logx"
)

// ViewReader returns the rendering of an open catalog view. The gRPC catalog
// handler satisfies it, so both transports return the same document.
type ViewReader interface {
	GetView(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

// ViewsHandler serves GET /api/v1/views/{id}.
type ViewsHandler struct {
	views ViewReader
}

// NewViewsHandler creates a new HTTP views handler.
func NewViewsHandler(views ViewReader) *ViewsHandler {
	return &ViewsHandler{views: views}
}

var jsonOptions = protojson.MarshalOptions{UseProtoNames: true}

// ServeHTTP handles GET /api/v1/views/{id} requests.
func (h *ViewsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "view id is required")
		return
	}

	view, err := h.views.GetView(r.Context(), &structpb.Struct{Fields: map[string]*structpb.Value{
		"view_id": structpb.NewStringValue(id),
	}})
	if err != nil {
		st := status.Convert(err)
		writeError(w, httpStatus(st.Code()), st.Message())
		return
	}

	body, err := jsonOptions.Marshal(view)
	if err != nil {
		logx.Error().Err(err).Str("view_id", id).Msg("failed to encode view")
		writeError(w, http.StatusInternalServerError, "failed to encode view")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		logx.Debug().Err(err).Msg("failed to write view response")
	}
}

// httpStatus maps gRPC codes to HTTP status codes.
func httpStatus(code codes.Code) int {
	switch code {
	case codes.OK:
		return http.StatusOK
	case codes.InvalidArgument:
		return http.StatusBadRequest
	case codes.NotFound:
		return http.StatusNotFound
	case codes.Unauthenticated:
		return http.StatusUnauthorized
	case codes.Unavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
