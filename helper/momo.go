package helper

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"movie_theater/config"
	"movie_theater/model"
	"movie_theater/utils"
)

const MoMoRequestType = "captureWallet"
const MoMoPartnerName = "MovieTheater"

// MoMo Service
type MoMoService struct {
	Config model.MoMoConfig
	Client *http.Client
}

func NewMoMoService() *MoMoService {
	return &MoMoService{
		Config: model.MoMoConfig{
			Endpoint:    config.Config("MOMO_ENDPOINT"),
			PartnerCode: config.Config("MOMO_PARTNER_CODE"),
			AccessKey:   config.Config("MOMO_ACCESS_KEY"),
			SecretKey:   config.Config("MOMO_SECRET_KEY"),
			RedirectUrl: config.Config("MOMO_REDIRECT_URL"),
			IpnUrl:      config.Config("MOMO_IPN_URL"),
		},
		Client: &http.Client{Timeout: 15 * time.Second},
	}
}

// Sign ký HMAC-SHA256 (hex) lên chuỗi tham số chuẩn của MoMo
func (s *MoMoService) Sign(data string) string {
	h := hmac.New(sha256.New, []byte(s.Config.SecretKey))
	h.Write([]byte(data))
	return hex.EncodeToString(h.Sum(nil))
}

// Chuỗi ký khởi tạo thanh toán: thứ tự field do MoMo quy định
func (s *MoMoService) buildInitiateRawHash(amount int64, orderId, orderInfo, requestId string) string {
	return fmt.Sprintf("accessKey=%s&amount=%d&extraData=%s&ipnUrl=%s&orderId=%s&orderInfo=%s&partnerCode=%s&redirectUrl=%s&requestId=%s&requestType=%s",
		s.Config.AccessKey, amount, "", s.Config.IpnUrl, orderId, orderInfo,
		s.Config.PartnerCode, s.Config.RedirectUrl, requestId, MoMoRequestType)
}

// InitiatePayment gửi yêu cầu captureWallet sang MoMo, trả về payUrl
func (s *MoMoService) InitiatePayment(amount int64, orderId, requestId, orderInfo string) (*model.MoMoInitiateResponse, error) {
	rawHash := s.buildInitiateRawHash(amount, orderId, orderInfo, requestId)
	signature := s.Sign(rawHash)

	reqBody := model.MoMoInitiateRequest{
		PartnerCode: s.Config.PartnerCode,
		PartnerName: MoMoPartnerName,
		RequestId:   requestId,
		Amount:      amount,
		OrderId:     orderId,
		OrderInfo:   orderInfo,
		RedirectUrl: s.Config.RedirectUrl,
		IpnUrl:      s.Config.IpnUrl,
		Lang:        "vi",
		ExtraData:   "",
		RequestType: MoMoRequestType,
		Signature:   signature,
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	resp, err := s.Client.Post(s.Config.Endpoint, "application/json; charset=UTF-8", bytes.NewReader(payload))
	if err != nil {
		return nil, utils.GatewayError("Cannot reach MoMo", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, utils.GatewayError("Cannot read MoMo response", err)
	}

	if resp.StatusCode != http.StatusOK {
		log.Printf("MoMo API error: %s, responseCode: %d", string(body), resp.StatusCode)
		return nil, utils.GatewayError("MoMo payment initiation failed: "+string(body), nil)
	}

	var result model.MoMoInitiateResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, utils.GatewayError("Invalid MoMo response", err)
	}
	return &result, nil
}

// Chuỗi ký callback: thứ tự field KHÁC chuỗi khởi tạo, cũng do MoMo quy định
func (s *MoMoService) buildCallbackRawHash(p model.MoMoCallbackParams) string {
	return fmt.Sprintf("accessKey=%s&amount=%s&extraData=%s&message=%s&orderId=%s&orderInfo=%s&orderType=%s&partnerCode=%s&payType=%s&requestId=%s&responseTime=%s&resultCode=%s&transId=%s",
		s.Config.AccessKey, p.Amount, p.ExtraData, p.Message, p.OrderId, p.OrderInfo,
		p.OrderType, s.Config.PartnerCode, p.PayType, p.RequestId, p.ResponseTime,
		p.ResultCode, p.TransId)
}

// VerifyCallback ký lại tham số callback và so khớp chữ ký.
// Chữ ký sai → SecurityViolation, không được tin resultCode.
func (s *MoMoService) VerifyCallback(p model.MoMoCallbackParams) error {
	expected := s.Sign(s.buildCallbackRawHash(p))
	if !hmac.Equal([]byte(expected), []byte(p.Signature)) {
		log.Printf("Invalid MoMo callback signature for orderId: %s", p.OrderId)
		return utils.SecurityError("Invalid callback signature", nil)
	}
	return nil
}
