package c2pa

import "context"

// SignClaim signs raw claim bytes through the engine's claim-signing entry
// point with the call's effective signer. A non-positive reserveSize falls
// back to the signer's own reserve.
//
// Engine failures are wrapped as KindClaim; a missing signer fails as
// KindMissingSigner before the engine is reached.
func (c *Client) SignClaim(ctx context.Context, claim []byte, reserveSize int) ([]byte, error) {
	s := c.opts.Signer
	if s == nil {
		return nil, newError(KindMissingSigner, "c2pa: no signer configured for claim signing")
	}
	if reserveSize <= 0 {
		reserveSize = s.Reserve()
	}
	out, err := c.engine.SignClaim(ctx, claim, reserveSize, s)
	if err != nil {
		return nil, wrapError(KindClaim, "c2pa: engine claim signing failed", err)
	}
	return out, nil
}
