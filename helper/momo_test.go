package helper

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"movie_theater/model"
	"movie_theater/utils"

	"github.com/stretchr/testify/assert"
)

func newTestMoMoService(endpoint string) *MoMoService {
	return &MoMoService{
		Config: model.MoMoConfig{
			Endpoint:    endpoint,
			PartnerCode: "MOMO_PARTNER",
			AccessKey:   "access-key",
			SecretKey:   "secret-key",
			RedirectUrl: "https://example.com/return",
			IpnUrl:      "https://example.com/momo/ipn",
		},
		Client: &http.Client{Timeout: 5 * time.Second},
	}
}

func TestSign(t *testing.T) {
	svc := newTestMoMoService("")

	sig := svc.Sign("accessKey=access-key&amount=100000")
	assert.Len(t, sig, 64) // SHA-256 hex
	assert.Equal(t, sig, svc.Sign("accessKey=access-key&amount=100000"))

	other := newTestMoMoService("")
	other.Config.SecretKey = "other-key"
	assert.NotEqual(t, sig, other.Sign("accessKey=access-key&amount=100000"))
}

func TestBuildInitiateRawHash(t *testing.T) {
	svc := newTestMoMoService("")

	raw := svc.buildInitiateRawHash(220000, "BOOKING-abc", "Movie ticket payment", "REQ-xyz")
	assert.Equal(t,
		"accessKey=access-key&amount=220000&extraData=&ipnUrl=https://example.com/momo/ipn"+
			"&orderId=BOOKING-abc&orderInfo=Movie ticket payment&partnerCode=MOMO_PARTNER"+
			"&redirectUrl=https://example.com/return&requestId=REQ-xyz&requestType=captureWallet",
		raw)
}

func TestInitiatePayment(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req model.MoMoInitiateRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		assert.Equal(t, "MOMO_PARTNER", req.PartnerCode)
		assert.Equal(t, int64(220000), req.Amount)
		assert.Equal(t, "captureWallet", req.RequestType)
		assert.NotEmpty(t, req.Signature)

		json.NewEncoder(w).Encode(model.MoMoInitiateResponse{
			OrderId:    req.OrderId,
			ResultCode: 0,
			PayUrl:     "https://test.momo.vn/pay/abc",
		})
	}))
	defer server.Close()

	svc := newTestMoMoService(server.URL)
	result, err := svc.InitiatePayment(220000, "BOOKING-abc", "REQ-xyz", "Movie ticket payment")

	assert.NoError(t, err)
	assert.Equal(t, 0, result.ResultCode)
	assert.Equal(t, "https://test.momo.vn/pay/abc", result.PayUrl)
}

func TestInitiatePaymentGatewayError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	svc := newTestMoMoService(server.URL)
	_, err := svc.InitiatePayment(100000, "BOOKING-abc", "REQ-xyz", "Movie ticket payment")

	assertKind(t, err, utils.KindGatewayUnavailable)
}

func TestInitiatePaymentUnreachable(t *testing.T) {
	svc := newTestMoMoService("http://127.0.0.1:1")

	_, err := svc.InitiatePayment(100000, "BOOKING-abc", "REQ-xyz", "Movie ticket payment")
	assertKind(t, err, utils.KindGatewayUnavailable)
}

func callbackParams() model.MoMoCallbackParams {
	return model.MoMoCallbackParams{
		PartnerCode:  "MOMO_PARTNER",
		OrderId:      "BOOKING-abc",
		RequestId:    "REQ-xyz",
		Amount:       "220000",
		OrderInfo:    "Movie ticket payment",
		OrderType:    "momo_wallet",
		TransId:      "4088878653",
		ResultCode:   "0",
		Message:      "Successful.",
		PayType:      "qr",
		ResponseTime: "1756700000000",
		ExtraData:    "",
	}
}

func TestVerifyCallback(t *testing.T) {
	svc := newTestMoMoService("")

	params := callbackParams()
	params.Signature = svc.Sign(svc.buildCallbackRawHash(params))
	assert.NoError(t, svc.VerifyCallback(params))
}

func TestVerifyCallbackTampered(t *testing.T) {
	svc := newTestMoMoService("")

	params := callbackParams()
	params.Signature = svc.Sign(svc.buildCallbackRawHash(params))

	// Đổi amount sau khi ký: chữ ký không còn khớp
	params.Amount = "1000"
	assertKind(t, svc.VerifyCallback(params), utils.KindSecurityViolation)
}

func TestVerifyCallbackBadSignature(t *testing.T) {
	svc := newTestMoMoService("")

	params := callbackParams()
	params.Signature = "deadbeef"
	assertKind(t, svc.VerifyCallback(params), utils.KindSecurityViolation)
}
