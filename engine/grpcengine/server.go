package grpcengine

import (
	"context"
	"encoding/json"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"contentauth.dev/c2pa/engine"
	"contentauth.dev/c2pa/signer"
)

// Server exposes an engine.Engine over the Engine gRPC service. Signing
// always uses the server's own Signer: private keys stay in the serving
// process and only claim bytes cross the wire.
type Server struct {
	UnimplementedEngineServer
	Engine engine.Engine
	Signer signer.Signer
}

func (s *Server) Read(ctx context.Context, in *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error) {
	if s == nil || s.Engine == nil {
		return nil, status.Error(codes.FailedPrecondition, "missing engine")
	}
	var req readRequest
	if err := json.Unmarshal(in.GetValue(), &req); err != nil {
		return nil, status.Error(codes.InvalidArgument, "malformed read request")
	}
	asset, err := decodeAsset(req.Asset)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	res, err := s.Engine.Read(ctx, asset)
	if err != nil {
		return nil, mapErr(err)
	}
	if res == nil {
		return nil, status.Error(codes.Internal, "engine returned no read result")
	}
	return marshalReply(readResponse{ManifestStore: res.ManifestStore, Resources: res.Resources})
}

func (s *Server) Sign(ctx context.Context, in *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error) {
	if s == nil || s.Engine == nil {
		return nil, status.Error(codes.FailedPrecondition, "missing engine")
	}
	if s.Signer == nil {
		return nil, status.Error(codes.FailedPrecondition, "missing signer")
	}
	var req signRequest
	if err := json.Unmarshal(in.GetValue(), &req); err != nil {
		return nil, status.Error(codes.InvalidArgument, "malformed sign request")
	}
	asset, err := decodeAsset(req.Asset)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	res, err := s.Engine.Sign(ctx, engine.SignRequest{
		Manifest:   req.Manifest,
		Asset:      asset,
		OutputPath: req.OutputPath,
		Options: engine.SignOptions{
			Format:            req.Format,
			Embed:             req.Embed,
			RemoteManifestURL: req.RemoteManifestURL,
			ReserveSize:       req.ReserveSize,
		},
		Signer: s.Signer,
	})
	if err != nil {
		return nil, mapErr(err)
	}
	if res == nil {
		return nil, status.Error(codes.Internal, "engine returned no signing result")
	}
	return marshalReply(signResponse{Asset: res.Asset, OutputPath: res.OutputPath, Manifest: res.Manifest})
}

func (s *Server) CreateIngredient(ctx context.Context, in *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error) {
	if s == nil || s.Engine == nil {
		return nil, status.Error(codes.FailedPrecondition, "missing engine")
	}
	var req ingredientRequest
	if err := json.Unmarshal(in.GetValue(), &req); err != nil {
		return nil, status.Error(codes.InvalidArgument, "malformed ingredient request")
	}
	asset, err := decodeAsset(req.Asset)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	res, err := s.Engine.CreateIngredient(ctx, asset)
	if err != nil {
		return nil, mapErr(err)
	}
	if res == nil {
		return nil, status.Error(codes.Internal, "engine returned no ingredient result")
	}
	return marshalReply(ingredientResponse{Ingredient: res.Ingredient, Resources: res.Resources})
}

func (s *Server) SignClaim(ctx context.Context, in *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error) {
	if s == nil || s.Engine == nil {
		return nil, status.Error(codes.FailedPrecondition, "missing engine")
	}
	if s.Signer == nil {
		return nil, status.Error(codes.FailedPrecondition, "missing signer")
	}
	var req claimRequest
	if err := json.Unmarshal(in.GetValue(), &req); err != nil {
		return nil, status.Error(codes.InvalidArgument, "malformed claim request")
	}
	sig, err := s.Engine.SignClaim(ctx, req.Claim, req.ReserveSize, s.Signer)
	if err != nil {
		return nil, mapErr(err)
	}
	return marshalReply(claimResponse{Signature: sig})
}

func marshalReply(v interface{}) (*wrapperspb.BytesValue, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, status.Error(codes.Internal, "encode reply")
	}
	return wrapperspb.Bytes(b), nil
}

func mapErr(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, engine.ErrNoProvenance):
		return status.Error(codes.NotFound, engine.ErrNoProvenance.Error())
	case errors.Is(err, engine.ErrManifestBoxNotFound):
		return status.Error(codes.NotFound, engine.ErrManifestBoxNotFound.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}
