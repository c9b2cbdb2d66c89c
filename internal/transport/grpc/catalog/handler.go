package catalog

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/light-bringer/invcat-service/internal/app/catalog/controller"
	"github.com/light-bringer/invcat-service/internal/app/catalog/domain"
	"github.com/light-bringer/invcat-service/internal/app/catalog/views"
)

// Handler implements CatalogServiceServer on top of the views registry.
// It's a thin coordinator: every intent is forwarded to the view's controller.
type Handler struct {
	views *views.Registry
}

var _ CatalogServiceServer = (*Handler)(nil)

// NewHandler creates a new gRPC catalog handler.
func NewHandler(registry *views.Registry) *Handler {
	return &Handler{views: registry}
}

// OpenView opens a view on page 1 and returns its first rendering.
func (h *Handler) OpenView(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	id, view, err := h.views.Open(ctx)
	if err != nil {
		return nil, mapDomainErrorToGRPC(err)
	}
	return renderView(id, view)
}

// GetView returns the current state of a view without fetching.
func (h *Handler) GetView(_ context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, c, err := h.lookup(req)
	if err != nil {
		return nil, err
	}
	return renderView(id, c.View())
}

// Search filters a view and moves it back to page 1.
func (h *Handler) Search(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, c, err := h.lookup(req)
	if err != nil {
		return nil, err
	}
	term, err := optionalTerm(req)
	if err != nil {
		return nil, err
	}
	return renderView(id, c.Search(ctx, term))
}

// GotoPage moves a view to another page.
func (h *Handler) GotoPage(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, c, err := h.lookup(req)
	if err != nil {
		return nil, err
	}
	page, err := requirePage(req)
	if err != nil {
		return nil, err
	}

	view, err := c.GotoPage(ctx, page)
	if err != nil {
		return nil, mapDomainErrorToGRPC(err)
	}
	return renderView(id, view)
}

// Refresh fetches the current page of a view again.
func (h *Handler) Refresh(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, c, err := h.lookup(req)
	if err != nil {
		return nil, err
	}
	return renderView(id, c.Refresh(ctx))
}

// CreateProduct adds a local product and returns {product, view}.
func (h *Handler) CreateProduct(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	// 1. Validate request
	id, c, err := h.lookup(req)
	if err != nil {
		return nil, err
	}
	doc, err := requireProduct(req)
	if err != nil {
		return nil, err
	}

	// 2. Map request → domain input
	fields, err := fieldsFromStruct(doc)
	if err != nil {
		return nil, invalidArgument(err)
	}

	// 3. Call controller
	product, view, err := c.CreateProduct(ctx, fields)
	if err != nil {
		return nil, mapDomainErrorToGRPC(err)
	}

	// 4. Return response
	return renderMutation(id, product, view)
}

// EditProduct edits a local product or a remote product on the view's page
// and returns {product, view}.
func (h *Handler) EditProduct(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, c, err := h.lookup(req)
	if err != nil {
		return nil, err
	}
	productID, err := requireProductID(req)
	if err != nil {
		return nil, err
	}
	doc, err := requireProduct(req)
	if err != nil {
		return nil, err
	}

	patch, err := patchFromStruct(doc)
	if err != nil {
		return nil, invalidArgument(err)
	}

	product, view, err := c.EditProduct(ctx, productID, patch)
	if err != nil {
		return nil, mapDomainErrorToGRPC(err)
	}
	return renderMutation(id, product, view)
}

// DeleteProduct deletes a local product or a remote product on the view's page.
func (h *Handler) DeleteProduct(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, c, err := h.lookup(req)
	if err != nil {
		return nil, err
	}
	productID, err := requireProductID(req)
	if err != nil {
		return nil, err
	}

	view, err := c.DeleteProduct(ctx, productID)
	if err != nil {
		return nil, mapDomainErrorToGRPC(err)
	}
	return renderView(id, view)
}

// CloseView drops a view.
func (h *Handler) CloseView(_ context.Context, req *structpb.Struct) (*emptypb.Empty, error) {
	id, err := requireViewID(req)
	if err != nil {
		return nil, err
	}
	if err := h.views.Close(id); err != nil {
		return nil, mapDomainErrorToGRPC(err)
	}
	return &emptypb.Empty{}, nil
}

func (h *Handler) lookup(req *structpb.Struct) (string, *controller.Controller, error) {
	id, err := requireViewID(req)
	if err != nil {
		return "", nil, err
	}
	c, err := h.views.Get(id)
	if err != nil {
		return "", nil, mapDomainErrorToGRPC(err)
	}
	return id, c, nil
}

func renderView(id string, view controller.View) (*structpb.Struct, error) {
	out, err := viewToStruct(id, view)
	if err != nil {
		return nil, status.Error(codes.Internal, "failed to encode view")
	}
	return out, nil
}

func renderMutation(id string, product *domain.Product, view controller.View) (*structpb.Struct, error) {
	p, err := productToStruct(product)
	if err != nil {
		return nil, status.Error(codes.Internal, "failed to encode product")
	}
	v, err := viewToStruct(id, view)
	if err != nil {
		return nil, status.Error(codes.Internal, "failed to encode view")
	}
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"product": structpb.NewStructValue(p),
		"view":    structpb.NewStructValue(v),
	}}, nil
}
