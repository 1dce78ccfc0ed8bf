package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/factkeeper/internal/adminapi"
	"github.com/dmitrijs2005/factkeeper/internal/common"
	"github.com/dmitrijs2005/factkeeper/internal/models"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// toStatus maps domain errors to gRPC status codes. Validation messages go
// back to the caller; internal causes do not.
func (s *GRPCServer) toStatus(ctx context.Context, method string, err error) error {
	switch {
	case errors.Is(err, common.ErrorValidation):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, common.ErrorNotFound):
		return status.Error(codes.NotFound, "not found")
	case errors.Is(err, common.ErrorUnauthorized):
		return status.Error(codes.Unauthenticated, "unauthorized")
	}
	s.logger.Error(ctx, "admin call failed", "method", method, "error", err)
	return status.Error(codes.Internal, "internal error")
}

func (s *GRPCServer) Login(ctx context.Context, req *adminapi.LoginRequest) (*adminapi.LoginResponse, error) {
	token, err := s.sessions.Login(ctx, req.Password)
	if err != nil {
		return nil, s.toStatus(ctx, adminapi.MethodLogin, err)
	}
	return &adminapi.LoginResponse{AccessToken: token}, nil
}

func (s *GRPCServer) ChangePassword(ctx context.Context, req *adminapi.ChangePasswordRequest) (*adminapi.Empty, error) {
	if err := s.sessions.ChangePassword(ctx, req.NewPassword, req.Confirmation); err != nil {
		return nil, s.toStatus(ctx, adminapi.MethodChangePassword, err)
	}
	return &adminapi.Empty{}, nil
}

func (s *GRPCServer) ListPending(ctx context.Context, _ *adminapi.Empty) (*adminapi.ListPendingResponse, error) {
	return &adminapi.ListPendingResponse{Submissions: s.facts.ListPending(ctx)}, nil
}

func (s *GRPCServer) Approve(ctx context.Context, req *adminapi.IDRequest) (*adminapi.FactResponse, error) {
	f, err := s.moderation.Approve(ctx, req.ID)
	if err != nil {
		return nil, s.toStatus(ctx, adminapi.MethodApprove, err)
	}
	return &adminapi.FactResponse{Fact: *f}, nil
}

func (s *GRPCServer) Reject(ctx context.Context, req *adminapi.IDRequest) (*adminapi.Empty, error) {
	if err := s.moderation.Reject(ctx, req.ID); err != nil {
		return nil, s.toStatus(ctx, adminapi.MethodReject, err)
	}
	return &adminapi.Empty{}, nil
}

func (s *GRPCServer) ListFacts(ctx context.Context, req *adminapi.ListFactsRequest) (*adminapi.ListFactsResponse, error) {
	var list []models.Fact
	switch {
	case req.Query != "":
		list = s.facts.Search(ctx, req.Query)
	case req.Category != "":
		list = s.facts.ListPublishedByCategory(ctx, req.Category)
	default:
		list = s.facts.ListPublished(ctx)
	}
	return &adminapi.ListFactsResponse{Facts: list}, nil
}

func (s *GRPCServer) CreateFact(ctx context.Context, req *adminapi.CreateFactRequest) (*adminapi.FactResponse, error) {
	f, err := s.facts.Create(ctx, req.Fact)
	if err != nil {
		return nil, s.toStatus(ctx, adminapi.MethodCreateFact, err)
	}
	return &adminapi.FactResponse{Fact: *f}, nil
}

func (s *GRPCServer) UpdateFact(ctx context.Context, req *adminapi.UpdateFactRequest) (*adminapi.FactResponse, error) {
	f, err := s.facts.Update(ctx, req.ID, req.Patch)
	if err != nil {
		return nil, s.toStatus(ctx, adminapi.MethodUpdateFact, err)
	}
	return &adminapi.FactResponse{Fact: *f}, nil
}

func (s *GRPCServer) DeleteFact(ctx context.Context, req *adminapi.IDRequest) (*adminapi.Empty, error) {
	if err := s.facts.Delete(ctx, req.ID); err != nil {
		return nil, s.toStatus(ctx, adminapi.MethodDeleteFact, err)
	}
	return &adminapi.Empty{}, nil
}

func (s *GRPCServer) ImportFacts(ctx context.Context, req *adminapi.ImportFactsRequest) (*adminapi.ImportFactsResponse, error) {
	if err := s.facts.Import(ctx, req.Facts); err != nil {
		return nil, s.toStatus(ctx, adminapi.MethodImportFacts, err)
	}
	return &adminapi.ImportFactsResponse{Count: len(req.Facts)}, nil
}

func (s *GRPCServer) Backup(ctx context.Context, _ *adminapi.Empty) (*adminapi.BackupResponse, error) {
	if s.backups == nil {
		return nil, status.Error(codes.FailedPrecondition, "backups are not configured")
	}
	res, err := s.backups.Snapshot(ctx)
	if err != nil {
		return nil, s.toStatus(ctx, adminapi.MethodBackup, err)
	}
	return &adminapi.BackupResponse{Key: res.Key, URL: res.URL}, nil
}

func (s *GRPCServer) Ping(ctx context.Context, _ *adminapi.Empty) (*adminapi.PingResponse, error) {
	return &adminapi.PingResponse{Status: "OK"}, nil
}
