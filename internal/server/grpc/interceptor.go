package grpc

import (
	"context"

	"github.com/dmitrijs2005/accesskeeper/internal/identity"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

// accessTokenHeader is the incoming metadata key carrying the caller's
// access token.
const accessTokenHeader = "access_token"

// TokenResolver maps an opaque access token to an identity. Resolution never
// fails: anything unusable comes back as Anonymous.
type TokenResolver interface {
	UserFromAccessToken(ctx context.Context, token string) identity.Identity
}

// IdentityInterceptor resolves the caller's identity exactly once per call
// and attaches it to the context, where the guard and the handlers read it
// for the rest of the call.
func IdentityInterceptor(resolver TokenResolver) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		var token string
		if md, ok := metadata.FromIncomingContext(ctx); ok {
			if values := md.Get(accessTokenHeader); len(values) > 0 {
				token = values[0]
			}
		}

		id := resolver.UserFromAccessToken(ctx, token)

		return handler(identity.NewContext(ctx, id), req)
	}
}
