package catalog

import (
	"errors"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

var errPriceNotEditable = errors.New("price is derived: set original_price or discount_percentage")

// requireViewID returns the view_id of a request.
func requireViewID(req *structpb.Struct) (string, error) {
	v, ok := req.GetFields()["view_id"]
	if !ok {
		return "", status.Error(codes.InvalidArgument, "view_id is required")
	}
	id := v.GetStringValue()
	if id == "" {
		return "", status.Error(codes.InvalidArgument, "view_id must be a non-empty string")
	}
	return id, nil
}

// requireProductID returns the id of the product a request targets.
func requireProductID(req *structpb.Struct) (int64, error) {
	v, ok := req.GetFields()["id"]
	if !ok {
		return 0, status.Error(codes.InvalidArgument, "id is required")
	}
	id, err := integerValue("id", v)
	if err != nil {
		return 0, status.Error(codes.InvalidArgument, err.Error())
	}
	return id, nil
}

// requirePage returns the page number of a GotoPage request.
func requirePage(req *structpb.Struct) (int, error) {
	v, ok := req.GetFields()["page"]
	if !ok {
		return 0, status.Error(codes.InvalidArgument, "page is required")
	}
	n, err := integerValue("page", v)
	if err != nil {
		return 0, status.Error(codes.InvalidArgument, err.Error())
	}
	return int(n), nil
}

// optionalTerm returns the search term of a request, empty when absent.
func optionalTerm(req *structpb.Struct) (string, error) {
	term, err := optionalString(req.GetFields(), "term")
	if err != nil {
		return "", status.Error(codes.InvalidArgument, err.Error())
	}
	return term, nil
}

// requireProduct returns the product document of a create or edit request.
func requireProduct(req *structpb.Struct) (*structpb.Struct, error) {
	v, ok := req.GetFields()["product"]
	if !ok {
		return nil, status.Error(codes.InvalidArgument, "product is required")
	}
	s := v.GetStructValue()
	if s == nil {
		return nil, status.Error(codes.InvalidArgument, "product must be an object")
	}
	return s, nil
}

func invalidArgument(err error) error {
	return status.Error(codes.InvalidArgument, fmt.Sprintf("invalid product: %v", err))
}
