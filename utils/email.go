package utils

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

// BookingEmailData dữ liệu cho email vé
type BookingEmailData struct {
	OrderCode   string
	MovieName   string
	Showtime    string
	Seats       string
	TotalAmount float64
}

// SendBookingConfirmationEmail gửi email xác nhận thanh toán, đính kèm QR của đơn
func SendBookingConfirmationEmail(to string, data BookingEmailData) {
	go func() { // Async để không delay response
		body := fmt.Sprintf(
			"<h3>Thanh toán thành công</h3>"+
				"<p>Mã đơn: <b>%s</b></p>"+
				"<p>Phim: %s</p>"+
				"<p>Suất chiếu: %s</p>"+
				"<p>Ghế: %s</p>"+
				"<p>Tổng tiền: %.0f VND</p>",
			data.OrderCode, data.MovieName, data.Showtime, data.Seats, data.TotalAmount)

		m := gomail.NewMessage()
		m.SetHeader("From", os.Getenv("SMTP_FROM"))
		m.SetHeader("To", to)
		m.SetHeader("Subject", "Xác nhận đặt vé #"+data.OrderCode)
		m.SetBody("text/html", body)

		qrBytes, err := GenerateQRCode(data.OrderCode, 400)
		if err == nil {
			m.Embed("qr_order.png", gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := io.Copy(w, bytes.NewReader(qrBytes))
				return err
			}))
		} else {
			log.Printf("Lỗi tạo QR cho đơn %s: %v", data.OrderCode, err)
		}

		port, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))
		d := gomail.NewDialer(os.Getenv("SMTP_HOST"), port, os.Getenv("SMTP_USERNAME"), os.Getenv("SMTP_PASSWORD"))
		if err := d.DialAndSend(m); err != nil {
			log.Printf("Lỗi gửi email xác nhận cho %s: %v", to, err)
		}
	}()
}

// SendCancelConfirmationEmail thông báo hủy vé thành công
func SendCancelConfirmationEmail(to, bookingCode, seatLabel string, refund float64) {
	go func() {
		body := fmt.Sprintf(
			"<h3>Hủy vé thành công</h3>"+
				"<p>Mã vé: <b>%s</b>, ghế %s</p>"+
				"<p>Số tiền hoàn: %.0f VND (3-7 ngày làm việc)</p>",
			bookingCode, seatLabel, refund)

		m := gomail.NewMessage()
		m.SetHeader("From", os.Getenv("SMTP_FROM"))
		m.SetHeader("To", to)
		m.SetHeader("Subject", "Hủy vé thành công - "+bookingCode)
		m.SetBody("text/html", body)

		port, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))
		d := gomail.NewDialer(os.Getenv("SMTP_HOST"), port, os.Getenv("SMTP_USERNAME"), os.Getenv("SMTP_PASSWORD"))
		if err := d.DialAndSend(m); err != nil {
			log.Printf("Lỗi gửi email hủy vé cho %s: %v", to, err)
		}
	}()
}
