// Package idp defines the gRPC contract of the SchoolDesk identity provider.
//
// The service has no generated stubs: messages are google.protobuf.Struct
// values whose fields mirror the REST authentication payloads, and the
// service descriptor is declared by hand.
package idp

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

const ServiceName = "schooldesk.idp.IdentityProvider"

// Full method names.
const (
	MethodSignIn         = "/" + ServiceName + "/SignIn"
	MethodSignUp         = "/" + ServiceName + "/SignUp"
	MethodSignOut        = "/" + ServiceName + "/SignOut"
	MethodForgetPassword = "/" + ServiceName + "/ForgetPassword"
)

// TokenMetadataKey carries the session token on SignOut.
const TokenMetadataKey = "authorization"

// Server is implemented by the identity provider.
type Server interface {
	SignIn(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	SignUp(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	SignOut(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	ForgetPassword(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

// RegisterServer attaches srv to a gRPC server.
func RegisterServer(s grpc.ServiceRegistrar, srv Server) {
	s.RegisterService(&ServiceDesc, srv)
}

type unaryMethod func(srv Server, ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)

func handler(fullMethod string, call unaryMethod) func(any, context.Context, func(any) error, grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(Server), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
			return call(srv.(Server), ctx, req.(*structpb.Struct))
		})
	}
}

var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*Server)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "SignIn", Handler: handler(MethodSignIn, Server.SignIn)},
		{MethodName: "SignUp", Handler: handler(MethodSignUp, Server.SignUp)},
		{MethodName: "SignOut", Handler: handler(MethodSignOut, Server.SignOut)},
		{MethodName: "ForgetPassword", Handler: handler(MethodForgetPassword, Server.ForgetPassword)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "schooldesk/idp",
}
