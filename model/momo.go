package model

type MoMoConfig struct {
	Endpoint    string
	PartnerCode string
	AccessKey   string
	SecretKey   string
	RedirectUrl string
	IpnUrl      string
}

// Body gửi sang MoMo khi khởi tạo thanh toán
type MoMoInitiateRequest struct {
	PartnerCode string `json:"partnerCode"`
	PartnerName string `json:"partnerName"`
	RequestId   string `json:"requestId"`
	Amount      int64  `json:"amount"`
	OrderId     string `json:"orderId"`
	OrderInfo   string `json:"orderInfo"`
	RedirectUrl string `json:"redirectUrl"`
	IpnUrl      string `json:"ipnUrl"`
	Lang        string `json:"lang"`
	ExtraData   string `json:"extraData"`
	RequestType string `json:"requestType"`
	Signature   string `json:"signature"`
}

type MoMoInitiateResponse struct {
	PartnerCode  string `json:"partnerCode"`
	OrderId      string `json:"orderId"`
	RequestId    string `json:"requestId"`
	Amount       int64  `json:"amount"`
	ResponseTime int64  `json:"responseTime"`
	Message      string `json:"message"`
	ResultCode   int    `json:"resultCode"`
	PayUrl       string `json:"payUrl"`
	Deeplink     string `json:"deeplink"`
	QrCodeUrl    string `json:"qrCodeUrl"`
}

// Tham số IPN callback từ MoMo (query/form)
type MoMoCallbackParams struct {
	PartnerCode  string `json:"partnerCode" query:"partnerCode" form:"partnerCode"`
	OrderId      string `json:"orderId" query:"orderId" form:"orderId"`
	RequestId    string `json:"requestId" query:"requestId" form:"requestId"`
	Amount       string `json:"amount" query:"amount" form:"amount"`
	OrderInfo    string `json:"orderInfo" query:"orderInfo" form:"orderInfo"`
	OrderType    string `json:"orderType" query:"orderType" form:"orderType"`
	TransId      string `json:"transId" query:"transId" form:"transId"`
	ResultCode   string `json:"resultCode" query:"resultCode" form:"resultCode"`
	Message      string `json:"message" query:"message" form:"message"`
	PayType      string `json:"payType" query:"payType" form:"payType"`
	ResponseTime string `json:"responseTime" query:"responseTime" form:"responseTime"`
	ExtraData    string `json:"extraData" query:"extraData" form:"extraData"`
	Signature    string `json:"signature" query:"signature" form:"signature"`
}

type InitiatePaymentInput struct {
	ScheduleId  uint   `json:"scheduleId" validate:"required,gt=0"`
	SeatIds     []uint `json:"seatIds" validate:"required,min=1,unique,dive,gt=0"`
	PromotionId *uint  `json:"promotionId" validate:"omitempty,gt=0"`
}
