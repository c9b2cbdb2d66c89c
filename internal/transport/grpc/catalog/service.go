package catalog

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "invcat.catalog.v1.CatalogService"

// Full method names.
const (
	CatalogService_OpenView_FullMethodName      = "/" + ServiceName + "/OpenView"
	CatalogService_GetView_FullMethodName       = "/" + ServiceName + "/GetView"
	CatalogService_Search_FullMethodName        = "/" + ServiceName + "/Search"
	CatalogService_GotoPage_FullMethodName      = "/" + ServiceName + "/GotoPage"
	CatalogService_Refresh_FullMethodName       = "/" + ServiceName + "/Refresh"
	CatalogService_CreateProduct_FullMethodName = "/" + ServiceName + "/CreateProduct"
	CatalogService_EditProduct_FullMethodName   = "/" + ServiceName + "/EditProduct"
	CatalogService_DeleteProduct_FullMethodName = "/" + ServiceName + "/DeleteProduct"
	CatalogService_CloseView_FullMethodName     = "/" + ServiceName + "/CloseView"
)

// CatalogServiceServer is the server API for CatalogService. Requests and
// replies are google.protobuf.Struct documents.
type CatalogServiceServer interface {
	OpenView(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	GetView(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Search(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GotoPage(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Refresh(context.Context, *structpb.Struct) (*structpb.Struct, error)
	CreateProduct(context.Context, *structpb.Struct) (*structpb.Struct, error)
	EditProduct(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DeleteProduct(context.Context, *structpb.Struct) (*structpb.Struct, error)
	CloseView(context.Context, *structpb.Struct) (*emptypb.Empty, error)
}

// RegisterCatalogServiceServer registers srv on s.
func RegisterCatalogServiceServer(s grpc.ServiceRegistrar, srv CatalogServiceServer) {
	s.RegisterService(&CatalogService_ServiceDesc, srv)
}

// CatalogService_ServiceDesc describes CatalogService for grpc.Server.
var CatalogService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CatalogServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "OpenView", Handler: _CatalogService_OpenView_Handler},
		{MethodName: "GetView", Handler: structHandler(CatalogService_GetView_FullMethodName, CatalogServiceServer.GetView)},
		{MethodName: "Search", Handler: structHandler(CatalogService_Search_FullMethodName, CatalogServiceServer.Search)},
		{MethodName: "GotoPage", Handler: structHandler(CatalogService_GotoPage_FullMethodName, CatalogServiceServer.GotoPage)},
		{MethodName: "Refresh", Handler: structHandler(CatalogService_Refresh_FullMethodName, CatalogServiceServer.Refresh)},
		{MethodName: "CreateProduct", Handler: structHandler(CatalogService_CreateProduct_FullMethodName, CatalogServiceServer.CreateProduct)},
		{MethodName: "EditProduct", Handler: structHandler(CatalogService_EditProduct_FullMethodName, CatalogServiceServer.EditProduct)},
		{MethodName: "DeleteProduct", Handler: structHandler(CatalogService_DeleteProduct_FullMethodName, CatalogServiceServer.DeleteProduct)},
		{MethodName: "CloseView", Handler: structHandler(CatalogService_CloseView_FullMethodName, CatalogServiceServer.CloseView)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "invcat/catalog/v1/catalog.proto",
}

func _CatalogService_OpenView_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CatalogServiceServer).OpenView(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: CatalogService_OpenView_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(CatalogServiceServer).OpenView(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

// structHandler builds the method handler of a Struct-in RPC.
func structHandler[Out any](fullMethod string, call func(CatalogServiceServer, context.Context, *structpb.Struct) (Out, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(CatalogServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(CatalogServiceServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// CatalogServiceClient is the client API for CatalogService.
type CatalogServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewCatalogServiceClient creates a client over cc.
func NewCatalogServiceClient(cc grpc.ClientConnInterface) *CatalogServiceClient {
	return &CatalogServiceClient{cc: cc}
}

func (c *CatalogServiceClient) OpenView(ctx context.Context, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, CatalogService_OpenView_FullMethodName, &emptypb.Empty{}, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *CatalogServiceClient) GetView(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, CatalogService_GetView_FullMethodName, in, opts...)
}

func (c *CatalogServiceClient) Search(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, CatalogService_Search_FullMethodName, in, opts...)
}

func (c *CatalogServiceClient) GotoPage(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, CatalogService_GotoPage_FullMethodName, in, opts...)
}

func (c *CatalogServiceClient) Refresh(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, CatalogService_Refresh_FullMethodName, in, opts...)
}

func (c *CatalogServiceClient) CreateProduct(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, CatalogService_CreateProduct_FullMethodName, in, opts...)
}

func (c *CatalogServiceClient) EditProduct(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, CatalogService_EditProduct_FullMethodName, in, opts...)
}

func (c *CatalogServiceClient) DeleteProduct(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, CatalogService_DeleteProduct_FullMethodName, in, opts...)
}

func (c *CatalogServiceClient) CloseView(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) error {
	return c.cc.Invoke(ctx, CatalogService_CloseView_FullMethodName, in, &emptypb.Empty{}, opts...)
}

func (c *CatalogServiceClient) invoke(ctx context.Context, method string, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
