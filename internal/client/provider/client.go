// Package provider is the client of the external identity provider used by
// the "provider" auth mode.
package provider

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/schooldesk/internal/client/models"
	"github.com/dmitrijs2005/schooldesk/internal/common"
	"github.com/dmitrijs2005/schooldesk/internal/idp"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

type Client struct {
	conn   grpc.ClientConnInterface
	closer func() error
}

// Dial creates a client for the provider at addr. The connection is
// established lazily on the first call.
func Dial(addr string, opts ...grpc.DialOption) (*Client, error) {
	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)
	conn, err := grpc.NewClient(addr, opts...)
	if err != nil {
		return nil, err
	}
	return &Client{conn: conn, closer: conn.Close}, nil
}

// NewClient wraps an existing connection; Close is then a no-op.
func NewClient(conn grpc.ClientConnInterface) *Client {
	return &Client{conn: conn, closer: func() error { return nil }}
}

func (c *Client) Close() error {
	return c.closer()
}

func withToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Set(idp.TokenMetadataKey, common.BearerPrefix+token)
	return metadata.NewOutgoingContext(ctx, md)
}

func (c *Client) call(ctx context.Context, method string, in, out any) error {
	req, err := idp.Encode(in)
	if err != nil {
		return err
	}
	resp := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, method, req, resp); err != nil {
		return mapError(err)
	}
	if out == nil {
		return nil
	}
	return idp.Decode(resp, out)
}

func (c *Client) SignIn(ctx context.Context, email, password string) (*models.LoginResponse, error) {
	var resp models.LoginResponse
	if err := c.call(ctx, idp.MethodSignIn, models.LoginRequest{Email: email, Password: password}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) SignUp(ctx context.Context, req models.RegisterRequest) (*models.Identity, error) {
	var identity models.Identity
	if err := c.call(ctx, idp.MethodSignUp, req, &identity); err != nil {
		return nil, err
	}
	return &identity, nil
}

func (c *Client) SignOut(ctx context.Context, token string) error {
	return c.call(withToken(ctx, token), idp.MethodSignOut, struct{}{}, nil)
}

func (c *Client) ForgetPassword(ctx context.Context, email string) (string, error) {
	var resp struct {
		Message string `json:"message"`
	}
	if err := c.call(ctx, idp.MethodForgetPassword, map[string]string{"email": email}, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// Error carries the provider's message for codes that map to no sentinel.
type Error struct {
	Code    codes.Code
	Message string
}

func (e *Error) Error() string { return e.Message }

// mapError converts gRPC statuses into common sentinels. The provider's own
// message is kept so it can be shown to the user.
func mapError(err error) error {
	st, ok := status.FromError(err)
	if !ok {
		return fmt.Errorf("rpc error: %w", err)
	}
	switch st.Code() {
	case codes.Unauthenticated, codes.PermissionDenied:
		return fmt.Errorf("%w: %s", common.ErrorUnauthorized, st.Message())
	case codes.Unavailable, codes.DeadlineExceeded:
		return fmt.Errorf("%w: %s", common.ErrorUnavailable, st.Message())
	case codes.AlreadyExists:
		return fmt.Errorf("%w: %s", common.ErrorAlreadyExists, st.Message())
	default:
		return &Error{Code: st.Code(), Message: st.Message()}
	}
}
