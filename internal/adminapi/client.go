package adminapi

import (
	"context"

	"google.golang.org/grpc"
)

// AdminServiceClient is the client side of AdminServiceServer.
type AdminServiceClient interface {
	Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error)
	ChangePassword(ctx context.Context, in *ChangePasswordRequest, opts ...grpc.CallOption) (*Empty, error)
	ListPending(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*ListPendingResponse, error)
	Approve(ctx context.Context, in *IDRequest, opts ...grpc.CallOption) (*FactResponse, error)
	Reject(ctx context.Context, in *IDRequest, opts ...grpc.CallOption) (*Empty, error)
	ListFacts(ctx context.Context, in *ListFactsRequest, opts ...grpc.CallOption) (*ListFactsResponse, error)
	CreateFact(ctx context.Context, in *CreateFactRequest, opts ...grpc.CallOption) (*FactResponse, error)
	UpdateFact(ctx context.Context, in *UpdateFactRequest, opts ...grpc.CallOption) (*FactResponse, error)
	DeleteFact(ctx context.Context, in *IDRequest, opts ...grpc.CallOption) (*Empty, error)
	ImportFacts(ctx context.Context, in *ImportFactsRequest, opts ...grpc.CallOption) (*ImportFactsResponse, error)
	Backup(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*BackupResponse, error)
	Ping(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*PingResponse, error)
}

type adminServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewAdminServiceClient(cc grpc.ClientConnInterface) AdminServiceClient {
	return &adminServiceClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{CallOption()}, opts...)
	if err := cc.Invoke(ctx, FullMethod(method), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *adminServiceClient) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error) {
	return invoke[LoginResponse](ctx, c.cc, MethodLogin, in, opts)
}

func (c *adminServiceClient) ChangePassword(ctx context.Context, in *ChangePasswordRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, MethodChangePassword, in, opts)
}

func (c *adminServiceClient) ListPending(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*ListPendingResponse, error) {
	return invoke[ListPendingResponse](ctx, c.cc, MethodListPending, in, opts)
}

func (c *adminServiceClient) Approve(ctx context.Context, in *IDRequest, opts ...grpc.CallOption) (*FactResponse, error) {
	return invoke[FactResponse](ctx, c.cc, MethodApprove, in, opts)
}

func (c *adminServiceClient) Reject(ctx context.Context, in *IDRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, MethodReject, in, opts)
}

func (c *adminServiceClient) ListFacts(ctx context.Context, in *ListFactsRequest, opts ...grpc.CallOption) (*ListFactsResponse, error) {
	return invoke[ListFactsResponse](ctx, c.cc, MethodListFacts, in, opts)
}

func (c *adminServiceClient) CreateFact(ctx context.Context, in *CreateFactRequest, opts ...grpc.CallOption) (*FactResponse, error) {
	return invoke[FactResponse](ctx, c.cc, MethodCreateFact, in, opts)
}

func (c *adminServiceClient) UpdateFact(ctx context.Context, in *UpdateFactRequest, opts ...grpc.CallOption) (*FactResponse, error) {
	return invoke[FactResponse](ctx, c.cc, MethodUpdateFact, in, opts)
}

func (c *adminServiceClient) DeleteFact(ctx context.Context, in *IDRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, MethodDeleteFact, in, opts)
}

func (c *adminServiceClient) ImportFacts(ctx context.Context, in *ImportFactsRequest, opts ...grpc.CallOption) (*ImportFactsResponse, error) {
	return invoke[ImportFactsResponse](ctx, c.cc, MethodImportFacts, in, opts)
}

func (c *adminServiceClient) Backup(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*BackupResponse, error) {
	return invoke[BackupResponse](ctx, c.cc, MethodBackup, in, opts)
}

func (c *adminServiceClient) Ping(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*PingResponse, error) {
	return invoke[PingResponse](ctx, c.cc, MethodPing, in, opts)
}
