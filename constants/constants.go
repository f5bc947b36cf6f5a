package constants

// Trạng thái ghế của suất chiếu
const (
	SeatAvailable = "AVAILABLE"
	SeatBooked    = "BOOKED"
)

// Loại ghế
const (
	SeatTypeNormal = "NORMAL"
	SeatTypeVIP    = "VIP"
)

// Trạng thái booking
const (
	BookingPending   = "PENDING"
	BookingPaid      = "PAID"
	BookingCancelled = "CANCELLED"
	BookingExpired   = "EXPIRED"
	BookingFailed    = "FAILED"
)

// Phụ thu ghế VIP (VND)
const VIPSurcharge = 20000.0

// Hủy vé phải trước giờ chiếu ít nhất 6 tiếng
const CancelCutoffHours = 6

// Timeout mặc định chờ MoMo callback (giây), override bằng MOMO_TIMEOUT_SECONDS
const DefaultPaymentTimeoutSeconds = 30

const PaymentMethodMoMo = "MOMO"
