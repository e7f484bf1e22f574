package midtrans

import (
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"kitchen-planner/domain"
	"kitchen-planner/internal/utils"

	mt "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
)

type (
	// Gateway creates Snap payments and authenticates their notifications.
	Gateway interface {
		CreateTransaction(reference string, grossAmount int64, customer domain.PaymentCustomer) (token string, redirectURL string, err error)
		VerifySignature(n domain.MidtransNotification) bool
	}

	snapGateway struct {
		client    snap.Client
		serverKey string
	}
)

func NewGateway() Gateway {
	return NewGatewayWithKey(utils.GetConfig("SERVER_KEY"), utils.GetConfigBool("IsProd"))
}

func NewGatewayWithKey(serverKey string, isProd bool) Gateway {
	env := mt.Sandbox
	if isProd {
		env = mt.Production
	}
	g := &snapGateway{serverKey: serverKey}
	g.client.New(serverKey, env)
	return g
}

func (g *snapGateway) CreateTransaction(reference string, grossAmount int64, customer domain.PaymentCustomer) (string, string, error) {
	if g.serverKey == "" {
		return "", "", domain.ErrPaymentGatewayDisabled
	}
	req := &snap.Request{
		TransactionDetails: mt.TransactionDetails{
			OrderID:  reference,
			GrossAmt: grossAmount,
		},
		CustomerDetail: &mt.CustomerDetails{
			FName: customer.Name,
			Phone: customer.Phone,
		},
	}

	resp, mErr := g.client.CreateTransaction(req)
	if mErr != nil {
		return "", "", fmt.Errorf("midtrans: %s", mErr.Message)
	}
	return resp.Token, resp.RedirectURL, nil
}

// Signature is sha512(order_id + status_code + gross_amount + server_key).
func Signature(orderID, statusCode, grossAmount, serverKey string) string {
	sum := sha512.Sum512([]byte(orderID + statusCode + grossAmount + serverKey))
	return hex.EncodeToString(sum[:])
}

func (g *snapGateway) VerifySignature(n domain.MidtransNotification) bool {
	if g.serverKey == "" {
		return false
	}
	expected := Signature(n.OrderID, n.StatusCode, n.GrossAmount, g.serverKey)
	return subtle.ConstantTimeCompare([]byte(expected), []byte(n.SignatureKey)) == 1
}
