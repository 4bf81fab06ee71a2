package grpc

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/schooldesk/internal/common"
	"github.com/dmitrijs2005/schooldesk/internal/idp"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type ctxKey string

const TokenKey ctxKey = "token"

// tokenInterceptor requires a bearer token on SignOut and stores it in the
// context for the handler.
func (s *GRPCServer) tokenInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {

	if info.FullMethod == idp.MethodSignOut {

		var token string
		if md, ok := metadata.FromIncomingContext(ctx); ok {
			values := md.Get(idp.TokenMetadataKey)
			if len(values) > 0 {
				token = strings.TrimSpace(strings.TrimPrefix(values[0], common.BearerPrefix))
			}
		}
		if len(token) == 0 {
			return nil, status.Error(codes.Unauthenticated, "missing token")
		}

		ctx = context.WithValue(ctx, TokenKey, token)

	}

	return handler(ctx, req)
}

func tokenFromContext(ctx context.Context) string {
	t, _ := ctx.Value(TokenKey).(string)
	return t
}
