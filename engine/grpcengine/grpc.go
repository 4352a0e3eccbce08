package grpcengine

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// EngineServer is the server API for the Engine gRPC service.
//
// Every method carries a JSON envelope (wire.go) inside a protobuf bytes
// wrapper, so this package does not require a protoc/codegen toolchain.
//
// Proto definition: engine.proto.
type EngineServer interface {
	Read(context.Context, *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error)
	Sign(context.Context, *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error)
	CreateIngredient(context.Context, *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error)
	SignClaim(context.Context, *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error)
}

// UnimplementedEngineServer can be embedded to have forward compatible implementations.
type UnimplementedEngineServer struct{}

func (UnimplementedEngineServer) Read(context.Context, *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error) {
	return nil, status.Error(codes.Unimplemented, "method Read not implemented")
}
func (UnimplementedEngineServer) Sign(context.Context, *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error) {
	return nil, status.Error(codes.Unimplemented, "method Sign not implemented")
}
func (UnimplementedEngineServer) CreateIngredient(context.Context, *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error) {
	return nil, status.Error(codes.Unimplemented, "method CreateIngredient not implemented")
}
func (UnimplementedEngineServer) SignClaim(context.Context, *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error) {
	return nil, status.Error(codes.Unimplemented, "method SignClaim not implemented")
}

// RegisterEngineServer registers the Engine service on a gRPC server.
func RegisterEngineServer(s grpc.ServiceRegistrar, srv EngineServer) {
	s.RegisterService(&Engine_ServiceDesc, srv)
}

// EngineClient is the client API for the Engine gRPC service.
type EngineClient interface {
	Read(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error)
	Sign(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error)
	CreateIngredient(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error)
	SignClaim(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error)
}

type engineClient struct{ cc grpc.ClientConnInterface }

func NewEngineClient(cc grpc.ClientConnInterface) EngineClient { return &engineClient{cc: cc} }

func (c *engineClient) Read(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error) {
	out := new(wrapperspb.BytesValue)
	err := c.cc.Invoke(ctx, "/contentauth.c2pa.engine.v1.Engine/Read", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *engineClient) Sign(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error) {
	out := new(wrapperspb.BytesValue)
	err := c.cc.Invoke(ctx, "/contentauth.c2pa.engine.v1.Engine/Sign", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *engineClient) CreateIngredient(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error) {
	out := new(wrapperspb.BytesValue)
	err := c.cc.Invoke(ctx, "/contentauth.c2pa.engine.v1.Engine/CreateIngredient", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *engineClient) SignClaim(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error) {
	out := new(wrapperspb.BytesValue)
	err := c.cc.Invoke(ctx, "/contentauth.c2pa.engine.v1.Engine/SignClaim", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func _Engine_Read_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.BytesValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(EngineServer).Read(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/contentauth.c2pa.engine.v1.Engine/Read"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(EngineServer).Read(ctx, req.(*wrapperspb.BytesValue))
	}
	return interceptor(ctx, in, info, handler)
}

func _Engine_Sign_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.BytesValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(EngineServer).Sign(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/contentauth.c2pa.engine.v1.Engine/Sign"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(EngineServer).Sign(ctx, req.(*wrapperspb.BytesValue))
	}
	return interceptor(ctx, in, info, handler)
}

func _Engine_CreateIngredient_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.BytesValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(EngineServer).CreateIngredient(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/contentauth.c2pa.engine.v1.Engine/CreateIngredient"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(EngineServer).CreateIngredient(ctx, req.(*wrapperspb.BytesValue))
	}
	return interceptor(ctx, in, info, handler)
}

func _Engine_SignClaim_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.BytesValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(EngineServer).SignClaim(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/contentauth.c2pa.engine.v1.Engine/SignClaim"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(EngineServer).SignClaim(ctx, req.(*wrapperspb.BytesValue))
	}
	return interceptor(ctx, in, info, handler)
}

// Engine_ServiceDesc is the grpc.ServiceDesc for the Engine service.
var Engine_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "contentauth.c2pa.engine.v1.Engine",
	HandlerType: (*EngineServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Read", Handler: _Engine_Read_Handler},
		{MethodName: "Sign", Handler: _Engine_Sign_Handler},
		{MethodName: "CreateIngredient", Handler: _Engine_CreateIngredient_Handler},
		{MethodName: "SignClaim", Handler: _Engine_SignClaim_Handler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "engine.proto",
}
