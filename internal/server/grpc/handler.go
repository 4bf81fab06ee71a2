package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/schooldesk/internal/common"
	"github.com/dmitrijs2005/schooldesk/internal/idp"
	"github.com/dmitrijs2005/schooldesk/internal/server/metrics"
	"github.com/dmitrijs2005/schooldesk/internal/server/models"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

type identity struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type signInResponse struct {
	Token string   `json:"token"`
	User  identity `json:"user"`
}

func toIdentity(u *models.User) identity {
	return identity{ID: u.ID, Email: u.Email, Role: u.Role}
}

func decode(req *structpb.Struct, v any) error {
	if err := idp.Decode(req, v); err != nil {
		return status.Error(codes.InvalidArgument, "malformed request")
	}
	return nil
}

func encode(v any) (*structpb.Struct, error) {
	out, err := idp.Encode(v)
	if err != nil {
		return nil, status.Error(codes.Internal, "internal error")
	}
	return out, nil
}

func (s *GRPCServer) SignIn(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in credentials
	if err := decode(req, &in); err != nil {
		return nil, err
	}

	sess, err := s.users.Login(ctx, in.Email, in.Password)
	if err != nil {
		if errors.Is(err, common.ErrorInvalidCredentials) {
			metrics.LoginAttemptsTotal.WithLabelValues("grpc", metrics.ResultFailure).Inc()
			return nil, status.Error(codes.Unauthenticated, err.Error())
		}
		metrics.LoginAttemptsTotal.WithLabelValues("grpc", metrics.ResultError).Inc()
		return nil, status.Error(codes.Internal, "internal error")
	}

	metrics.LoginAttemptsTotal.WithLabelValues("grpc", metrics.ResultSuccess).Inc()
	s.logger.Info(ctx, "Signed in", "user_id", sess.User.ID)
	return encode(signInResponse{Token: sess.Token, User: toIdentity(sess.User)})
}

func (s *GRPCServer) SignUp(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in credentials
	if err := decode(req, &in); err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "Registration request")

	u, err := s.users.Register(ctx, in.Email, in.Password, in.Role)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorAlreadyExists):
			return nil, status.Error(codes.AlreadyExists, "an account with this email already exists")
		case errors.Is(err, common.ErrorInvalidEmail), errors.Is(err, common.ErrorInvalidRole), errors.Is(err, common.ErrorInvalidCredentials):
			return nil, status.Error(codes.InvalidArgument, err.Error())
		}
		s.logger.Error(ctx, err.Error())
		return nil, status.Error(codes.Internal, "internal error")
	}

	return encode(toIdentity(u))
}

func (s *GRPCServer) SignOut(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if err := s.users.Logout(ctx, tokenFromContext(ctx)); err != nil {
		return nil, status.Error(codes.Unauthenticated, "invalid token")
	}
	return &structpb.Struct{}, nil
}

func (s *GRPCServer) ForgetPassword(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in struct {
		Email string `json:"email"`
	}
	if err := decode(req, &in); err != nil {
		return nil, err
	}

	msg, err := s.users.ForgetPassword(ctx, in.Email)
	if err != nil {
		if errors.Is(err, common.ErrorInvalidEmail) {
			return nil, status.Error(codes.InvalidArgument, err.Error())
		}
		return nil, status.Error(codes.Internal, "internal error")
	}
	return encode(map[string]string{"message": msg})
}
