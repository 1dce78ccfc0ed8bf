package adminapi

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "factkeeper.admin.AdminService"

// Method names.
const (
	MethodLogin          = "Login"
	MethodChangePassword = "ChangePassword"
	MethodListPending    = "ListPending"
	MethodApprove        = "Approve"
	MethodReject         = "Reject"
	MethodListFacts      = "ListFacts"
	MethodCreateFact     = "CreateFact"
	MethodUpdateFact     = "UpdateFact"
	MethodDeleteFact     = "DeleteFact"
	MethodImportFacts    = "ImportFacts"
	MethodBackup         = "Backup"
	MethodPing           = "Ping"
)

// FullMethod returns "/<service>/<method>".
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

// AdminServiceServer is implemented by the admin gRPC server.
type AdminServiceServer interface {
	Login(context.Context, *LoginRequest) (*LoginResponse, error)
	ChangePassword(context.Context, *ChangePasswordRequest) (*Empty, error)
	ListPending(context.Context, *Empty) (*ListPendingResponse, error)
	Approve(context.Context, *IDRequest) (*FactResponse, error)
	Reject(context.Context, *IDRequest) (*Empty, error)
	ListFacts(context.Context, *ListFactsRequest) (*ListFactsResponse, error)
	CreateFact(context.Context, *CreateFactRequest) (*FactResponse, error)
	UpdateFact(context.Context, *UpdateFactRequest) (*FactResponse, error)
	DeleteFact(context.Context, *IDRequest) (*Empty, error)
	ImportFacts(context.Context, *ImportFactsRequest) (*ImportFactsResponse, error)
	Backup(context.Context, *Empty) (*BackupResponse, error)
	Ping(context.Context, *Empty) (*PingResponse, error)
}

// UnimplementedAdminServiceServer answers every call with codes.Unimplemented.
// Embed it to stay forward compatible.
type UnimplementedAdminServiceServer struct{}

func unimplemented(method string) error {
	return status.Errorf(codes.Unimplemented, "method %s not implemented", method)
}

func (UnimplementedAdminServiceServer) Login(context.Context, *LoginRequest) (*LoginResponse, error) {
	return nil, unimplemented(MethodLogin)
}
func (UnimplementedAdminServiceServer) ChangePassword(context.Context, *ChangePasswordRequest) (*Empty, error) {
	return nil, unimplemented(MethodChangePassword)
}
func (UnimplementedAdminServiceServer) ListPending(context.Context, *Empty) (*ListPendingResponse, error) {
	return nil, unimplemented(MethodListPending)
}
func (UnimplementedAdminServiceServer) Approve(context.Context, *IDRequest) (*FactResponse, error) {
	return nil, unimplemented(MethodApprove)
}
func (UnimplementedAdminServiceServer) Reject(context.Context, *IDRequest) (*Empty, error) {
	return nil, unimplemented(MethodReject)
}
func (UnimplementedAdminServiceServer) ListFacts(context.Context, *ListFactsRequest) (*ListFactsResponse, error) {
	return nil, unimplemented(MethodListFacts)
}
func (UnimplementedAdminServiceServer) CreateFact(context.Context, *CreateFactRequest) (*FactResponse, error) {
	return nil, unimplemented(MethodCreateFact)
}
func (UnimplementedAdminServiceServer) UpdateFact(context.Context, *UpdateFactRequest) (*FactResponse, error) {
	return nil, unimplemented(MethodUpdateFact)
}
func (UnimplementedAdminServiceServer) DeleteFact(context.Context, *IDRequest) (*Empty, error) {
	return nil, unimplemented(MethodDeleteFact)
}
func (UnimplementedAdminServiceServer) ImportFacts(context.Context, *ImportFactsRequest) (*ImportFactsResponse, error) {
	return nil, unimplemented(MethodImportFacts)
}
func (UnimplementedAdminServiceServer) Backup(context.Context, *Empty) (*BackupResponse, error) {
	return nil, unimplemented(MethodBackup)
}
func (UnimplementedAdminServiceServer) Ping(context.Context, *Empty) (*PingResponse, error) {
	return nil, unimplemented(MethodPing)
}

// unary adapts a typed server method to grpc.MethodDesc.
func unary[Req, Resp any](method string, call func(AdminServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(AdminServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod(method)}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(AdminServiceServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// ServiceDesc describes the admin service for grpc.Server.RegisterService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AdminServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(MethodLogin, AdminServiceServer.Login),
		unary(MethodChangePassword, AdminServiceServer.ChangePassword),
		unary(MethodListPending, AdminServiceServer.ListPending),
		unary(MethodApprove, AdminServiceServer.Approve),
		unary(MethodReject, AdminServiceServer.Reject),
		unary(MethodListFacts, AdminServiceServer.ListFacts),
		unary(MethodCreateFact, AdminServiceServer.CreateFact),
		unary(MethodUpdateFact, AdminServiceServer.UpdateFact),
		unary(MethodDeleteFact, AdminServiceServer.DeleteFact),
		unary(MethodImportFacts, AdminServiceServer.ImportFacts),
		unary(MethodBackup, AdminServiceServer.Backup),
		unary(MethodPing, AdminServiceServer.Ping),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "factkeeper/admin",
}

// RegisterAdminServiceServer registers srv on s.
func RegisterAdminServiceServer(s grpc.ServiceRegistrar, srv AdminServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}
