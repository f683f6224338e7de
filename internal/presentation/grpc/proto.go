package grpc

// proto.go describes revisional.v1.RevisionalService by hand. Messages are the
// application DTOs carried by the JSON codec.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/pCruvinel/octoapps-sub000/internal/application/dto"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "revisional.v1.RevisionalService"

// Full method names.
const (
	AnalyzeLoanMethod      = "/" + ServiceName + "/AnalyzeLoan"
	AnalyzeRevolvingMethod = "/" + ServiceName + "/AnalyzeRevolving"
	GenerateScheduleMethod = "/" + ServiceName + "/GenerateSchedule"
)

// RevisionalServiceServer is the server API for RevisionalService.
type RevisionalServiceServer interface {
	AnalyzeLoan(context.Context, *dto.LoanAnalysisRequest) (*dto.AnalysisResponse, error)
	AnalyzeRevolving(context.Context, *dto.RevolvingAnalysisRequest) (*dto.AnalysisResponse, error)
	GenerateSchedule(context.Context, *dto.ScheduleRequest) (*dto.ScheduleResponse, error)
	mustEmbedUnimplementedRevisionalServiceServer()
}

// UnimplementedRevisionalServiceServer provides forward-compatible default implementations.
type UnimplementedRevisionalServiceServer struct{}

func (UnimplementedRevisionalServiceServer) AnalyzeLoan(context.Context, *dto.LoanAnalysisRequest) (*dto.AnalysisResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method AnalyzeLoan not implemented")
}
func (UnimplementedRevisionalServiceServer) AnalyzeRevolving(context.Context, *dto.RevolvingAnalysisRequest) (*dto.AnalysisResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method AnalyzeRevolving not implemented")
}
func (UnimplementedRevisionalServiceServer) GenerateSchedule(context.Context, *dto.ScheduleRequest) (*dto.ScheduleResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GenerateSchedule not implemented")
}
func (UnimplementedRevisionalServiceServer) mustEmbedUnimplementedRevisionalServiceServer() {}

// RegisterRevisionalServiceServer registers the RevisionalServiceServer with the gRPC server.
func RegisterRevisionalServiceServer(s *grpclib.Server, srv RevisionalServiceServer) {
	s.RegisterService(&_RevisionalService_serviceDesc, srv) //nolint:revive // gRPC handler registration
}

//nolint:revive // gRPC handler registration
var _RevisionalService_serviceDesc = grpclib.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*RevisionalServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "AnalyzeLoan", Handler: _RevisionalService_AnalyzeLoan_Handler},           //nolint:revive // gRPC handler registration
		{MethodName: "AnalyzeRevolving", Handler: _RevisionalService_AnalyzeRevolving_Handler}, //nolint:revive // gRPC handler registration
		{MethodName: "GenerateSchedule", Handler: _RevisionalService_GenerateSchedule_Handler}, //nolint:revive // gRPC handler registration
	},
	Streams: []grpclib.StreamDesc{},
}

//nolint:revive,errcheck // gRPC handler registration
func _RevisionalService_AnalyzeLoan_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(dto.LoanAnalysisRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(RevisionalServiceServer).AnalyzeLoan(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: AnalyzeLoanMethod,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(RevisionalServiceServer).AnalyzeLoan(ctx, req.(*dto.LoanAnalysisRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _RevisionalService_AnalyzeRevolving_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(dto.RevolvingAnalysisRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(RevisionalServiceServer).AnalyzeRevolving(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: AnalyzeRevolvingMethod,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(RevisionalServiceServer).AnalyzeRevolving(ctx, req.(*dto.RevolvingAnalysisRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _RevisionalService_GenerateSchedule_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(dto.ScheduleRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(RevisionalServiceServer).GenerateSchedule(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: GenerateScheduleMethod,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(RevisionalServiceServer).GenerateSchedule(ctx, req.(*dto.ScheduleRequest))
	}
	return interceptor(ctx, in, info, handler)
}
