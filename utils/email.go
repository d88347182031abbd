package utils

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"strconv"
	"strings"

	"cinema_retail/config"
	"cinema_retail/model"

	"github.com/gosimple/slug"
	"gopkg.in/gomail.v2"
)

// OrderConfirmationData dữ liệu cho template email
type OrderConfirmationData struct {
	OrderNumber string
	MovieName   string
	Showtime    string
	Seats       string
	TotalAmount float64
	DetailLink  string
	CancelledAt string
}

func buildDetailLink(order model.Order) string {
	base := config.ConfigOr("APP_URL", "http://localhost:5173")
	// slug tên phim chỉ để link đọc được, định danh vẫn là mã đơn
	return fmt.Sprintf("%s/invoice/%s/%d", base, slug.Make(order.FilmTitle), order.ID)
}

func confirmationData(order model.Order) OrderConfirmationData {
	showtime := ""
	if order.ShowTime != nil {
		showtime = order.ShowTime.Format("15:04 - 02/01/2006")
	}
	return OrderConfirmationData{
		OrderNumber: order.OrderNumber,
		MovieName:   order.FilmTitle,
		Showtime:    showtime,
		Seats:       strings.Join(order.SeatLabels, ", "),
		TotalAmount: order.TotalAmount,
		DetailLink:  buildDetailLink(order),
	}
}

func sendMail(to, subject, tmplPath string, data OrderConfirmationData) {
	tmpl, err := template.ParseFiles(tmplPath)
	if err != nil {
		log.Printf("Lỗi load template email: %v", err)
		return
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		log.Printf("Lỗi render template email: %v", err)
		return
	}

	host := config.Config("SMTP_HOST")
	port, _ := strconv.Atoi(config.ConfigOr("SMTP_PORT", "587"))
	username := config.Config("SMTP_USERNAME")
	password := config.Config("SMTP_PASSWORD")
	from := config.ConfigOr("SMTP_FROM", "CinemaPro <cinema_hub@gmail.com>")

	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body.String())

	d := gomail.NewDialer(host, port, username, password)
	if err := d.DialAndSend(m); err != nil {
		log.Printf("Lỗi gửi email đến %s: %v", to, err)
	} else {
		log.Printf("Đã gửi email xác nhận đến %s", to)
	}
}

// SendOrderConfirmationEmail gửi email xác nhận đặt vé (async, không chặn
// response)
func SendOrderConfirmationEmail(order model.Order) {
	if order.Email == "" {
		return
	}
	go sendMail(
		order.Email,
		fmt.Sprintf("Đặt vé thành công - Mã đơn: %s", order.OrderNumber),
		"templates/order_confirmation.html",
		confirmationData(order),
	)
}

// SendOrderCancelledEmail gửi email xác nhận hủy vé (async)
func SendOrderCancelledEmail(order model.Order) {
	if order.Email == "" {
		return
	}
	data := confirmationData(order)
	if order.CancelledAt != nil {
		data.CancelledAt = order.CancelledAt.Format("15:04 - 02/01/2006")
	}
	go sendMail(
		order.Email,
		fmt.Sprintf("Hủy vé thành công - Mã đơn: %s", order.OrderNumber),
		"templates/order_cancelled.html",
		data,
	)
}
