package grpcengine

import (
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"contentauth.dev/c2pa/engine"
)

func mapRPC(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return err
	}

	switch st.Code() {
	case codes.NotFound:
		// The server sends NotFound for both recoverable read conditions;
		// the message tells them apart.
		if st.Message() == engine.ErrManifestBoxNotFound.Error() {
			return engine.ErrManifestBoxNotFound
		}
		return engine.ErrNoProvenance
	default:
		// Best-effort: if the server sent a known sentinel message under a
		// different code, preserve it.
		switch st.Message() {
		case engine.ErrNoProvenance.Error():
			return engine.ErrNoProvenance
		case engine.ErrManifestBoxNotFound.Error():
			return engine.ErrManifestBoxNotFound
		default:
			return err
		}
	}
}
