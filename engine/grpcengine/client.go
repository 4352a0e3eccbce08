// Package grpcengine connects this module to a provenance engine running in
// another process. The Client satisfies engine.Engine, so a remote engine
// drops in anywhere a local one would.
package grpcengine

import (
	"context"
	"encoding/json"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"contentauth.dev/c2pa/engine"
	"contentauth.dev/c2pa/signer"
)

// Client implements engine.Engine over the Engine gRPC service. The caller's
// signer is never transmitted; the server signs with its own identity.
type Client struct {
	cc     *grpc.ClientConn
	client EngineClient

	// Timeout applies per RPC when non-zero.
	Timeout time.Duration
}

var _ engine.Engine = (*Client)(nil)

type DialOptions struct {
	// Timeout applies to the initial dial when non-zero.
	Timeout time.Duration

	// MaxMsgBytes sets both send/recv max sizes when non-zero. Signed
	// assets travel inline, so size this to the largest expected asset.
	MaxMsgBytes int
}

func Dial(target string, opts DialOptions) (*Client, error) {
	dialOpts := []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	}
	if opts.MaxMsgBytes > 0 {
		dialOpts = append(dialOpts,
			grpc.WithDefaultCallOptions(
				grpc.MaxCallRecvMsgSize(opts.MaxMsgBytes),
				grpc.MaxCallSendMsgSize(opts.MaxMsgBytes),
			),
		)
	}

	ctx := context.Background()
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	cc, err := grpc.DialContext(ctx, target, dialOpts...)
	if err != nil {
		return nil, err
	}
	return &Client{cc: cc, client: NewEngineClient(cc), Timeout: 0}, nil
}

func (c *Client) Close() error {
	if c == nil || c.cc == nil {
		return nil
	}
	return c.cc.Close()
}

func (c *Client) Read(ctx context.Context, asset engine.Asset) (*engine.ReadResult, error) {
	wa, err := encodeAsset(asset)
	if err != nil {
		return nil, err
	}
	ctx, cancel := c.ctx(ctx)
	defer cancel()

	reply, err := c.invoke(ctx, c.client.Read, readRequest{Asset: wa})
	if err != nil {
		return nil, mapRPC(err)
	}
	var res readResponse
	if err := json.Unmarshal(reply.GetValue(), &res); err != nil {
		return nil, err
	}
	return &engine.ReadResult{ManifestStore: res.ManifestStore, Resources: res.Resources}, nil
}

func (c *Client) Sign(ctx context.Context, req engine.SignRequest) (*engine.SignResult, error) {
	wa, err := encodeAsset(req.Asset)
	if err != nil {
		return nil, err
	}
	ctx, cancel := c.ctx(ctx)
	defer cancel()

	reply, err := c.invoke(ctx, c.client.Sign, signRequest{
		Manifest:          req.Manifest,
		Asset:             wa,
		OutputPath:        req.OutputPath,
		Format:            req.Options.Format,
		Embed:             req.Options.Embed,
		RemoteManifestURL: req.Options.RemoteManifestURL,
		ReserveSize:       req.Options.ReserveSize,
	})
	if err != nil {
		return nil, mapRPC(err)
	}
	var res signResponse
	if err := json.Unmarshal(reply.GetValue(), &res); err != nil {
		return nil, err
	}
	return &engine.SignResult{Asset: res.Asset, OutputPath: res.OutputPath, Manifest: res.Manifest}, nil
}

func (c *Client) CreateIngredient(ctx context.Context, asset engine.Asset) (*engine.IngredientResult, error) {
	wa, err := encodeAsset(asset)
	if err != nil {
		return nil, err
	}
	ctx, cancel := c.ctx(ctx)
	defer cancel()

	reply, err := c.invoke(ctx, c.client.CreateIngredient, ingredientRequest{Asset: wa})
	if err != nil {
		return nil, mapRPC(err)
	}
	var res ingredientResponse
	if err := json.Unmarshal(reply.GetValue(), &res); err != nil {
		return nil, err
	}
	return &engine.IngredientResult{Ingredient: res.Ingredient, Resources: res.Resources}, nil
}

func (c *Client) SignClaim(ctx context.Context, claim []byte, reserveSize int, s signer.Signer) ([]byte, error) {
	// s is intentionally unused: the server holds the signing identity.
	_ = s
	ctx, cancel := c.ctx(ctx)
	defer cancel()

	reply, err := c.invoke(ctx, c.client.SignClaim, claimRequest{Claim: claim, ReserveSize: reserveSize})
	if err != nil {
		return nil, mapRPC(err)
	}
	var res claimResponse
	if err := json.Unmarshal(reply.GetValue(), &res); err != nil {
		return nil, err
	}
	return res.Signature, nil
}

type rpc func(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error)

func (c *Client) invoke(ctx context.Context, call rpc, req interface{}) (*wrapperspb.BytesValue, error) {
	b, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	return call(ctx, wrapperspb.Bytes(b))
}

func (c *Client) ctx(parent context.Context) (context.Context, context.CancelFunc) {
	if c.Timeout <= 0 {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, c.Timeout)
}
