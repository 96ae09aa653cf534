// Package simulated is the payment gateway used by this storefront: every
// charge is approved. The reference it returns is an HMAC of the order id so
// it is stable and verifiable without storing gateway state.
package simulated

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"

	"github.com/techhubpro/storefront/internal/domain"
)

type Gateway struct {
	secret []byte
}

func NewGateway(secret string) *Gateway {
	if secret == "" {
		secret = "dev"
	}
	return &Gateway{secret: []byte(secret)}
}

func (g *Gateway) Charge(ctx context.Context, o *domain.Order) (string, error) {
	h := hmac.New(sha256.New, g.secret)
	h.Write([]byte(o.ID.String()))
	return hex.EncodeToString(h.Sum(nil))[:24], nil
}
