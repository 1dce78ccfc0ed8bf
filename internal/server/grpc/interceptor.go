package grpc

import (
	"context"

	"github.com/dmitrijs2005/factkeeper/internal/adminapi"
	"github.com/dmitrijs2005/factkeeper/internal/common"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// publicMethods are callable without an access token.
var publicMethods = map[string]bool{
	adminapi.FullMethod(adminapi.MethodLogin): true,
	adminapi.FullMethod(adminapi.MethodPing):  true,
}

func (s *GRPCServer) accessTokenInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {

	if !publicMethods[info.FullMethod] {

		var accessToken string
		if md, ok := metadata.FromIncomingContext(ctx); ok {
			values := md.Get(common.AccessTokenHeaderName)
			if len(values) > 0 {
				accessToken = values[0]
			}
		}
		if len(accessToken) == 0 {
			return nil, status.Error(codes.Unauthenticated, "missing token")
		}

		if err := s.sessions.Authorize(accessToken); err != nil {
			s.logger.Warn(ctx, "rejected admin call", "method", info.FullMethod, "error", err)
			return nil, status.Error(codes.Unauthenticated, "invalid or expired token")
		}
	}

	return handler(ctx, req)
}
