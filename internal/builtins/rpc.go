package builtins

import (
	"context"
	"time"

	"github.com/jhump/protoreflect/desc"
	"github.com/jhump/protoreflect/grpcreflect"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	reflectpb "google.golang.org/grpc/reflection/grpc_reflection_v1alpha"

	"github.com/glint-lang/glint/internal/diagnostics"
	"github.com/glint-lang/glint/internal/value"
)

// registerRPC wires an optional rpc_* builtin family for actor message
// exchange over gRPC reflection, independent of the synchronous actor model
// of spec.md §4.F.3 (that model stays in-process and single-threaded; these
// builtins are the only place a glint program talks to an out-of-process
// peer). Grounded on the teacher's go.mod, which carries
// jhump/protoreflect + grpc + protobuf without any teacher .go file using
// them directly for this purpose — SPEC_FULL.md's domain-stack wiring gives
// them a home here as a thin reflection-based service lister, the narrowest
// surface that exercises all three dependencies together.
func registerRPC(r *Registry) {
	r.register("rpc_list_services", func(args []value.Value, call CallFn) (value.Value, *diagnostics.Error) {
		addr, err := wantString("rpc_list_services", args, 0)
		if err != nil {
			return nil, err
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		conn, derr := grpc.DialContext(ctx, addr,
			grpc.WithTransportCredentials(insecure.NewCredentials()),
			grpc.WithBlock(),
		)
		if derr != nil {
			return value.Result("Err", value.Str(derr.Error())), nil
		}
		defer conn.Close()

		client := grpcreflect.NewClientV1Alpha(ctx, reflectpb.NewServerReflectionClient(conn))
		defer client.Reset()

		services, lerr := client.ListServices()
		if lerr != nil {
			return value.Result("Err", value.Str(lerr.Error())), nil
		}
		out := make([]value.Value, len(services))
		for i, s := range services {
			out[i] = value.Str(s)
		}
		return value.Result("Ok", value.NewArray(out)), nil
	})

	r.register("rpc_describe_service", func(args []value.Value, call CallFn) (value.Value, *diagnostics.Error) {
		addr, err := wantString("rpc_describe_service", args, 0)
		if err != nil {
			return nil, err
		}
		serviceName, serr := wantString("rpc_describe_service", args, 1)
		if serr != nil {
			return nil, serr
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		conn, derr := grpc.DialContext(ctx, addr,
			grpc.WithTransportCredentials(insecure.NewCredentials()),
			grpc.WithBlock(),
		)
		if derr != nil {
			return value.Result("Err", value.Str(derr.Error())), nil
		}
		defer conn.Close()

		client := grpcreflect.NewClientV1Alpha(ctx, reflectpb.NewServerReflectionClient(conn))
		defer client.Reset()

		svcDesc, fderr := client.ResolveService(serviceName)
		if fderr != nil {
			return value.Result("Err", value.Str(fderr.Error())), nil
		}
		out := make([]value.Value, 0, len(svcDesc.GetMethods()))
		for _, m := range svcDesc.GetMethods() {
			out = append(out, value.Str(methodSignature(m)))
		}
		return value.Result("Ok", value.NewArray(out)), nil
	})
}

func methodSignature(m *desc.MethodDescriptor) string {
	return m.GetName() + "(" + m.GetInputType().GetFullyQualifiedName() + ") returns (" + m.GetOutputType().GetFullyQualifiedName() + ")"
}
