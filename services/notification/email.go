package notification

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"go.uber.org/zap"
	gomail "gopkg.in/gomail.v2"

	"seatwise/config"
	"seatwise/models"
	"seatwise/utils"
)

// Email template paths
const (
	requestedCustomerTemplate = "templates/email/booking_requested_customer.html"
	confirmedCustomerTemplate = "templates/email/booking_confirmed_customer.html"
	cancelledCustomerTemplate = "templates/email/booking_cancelled_customer.html"
	cancelledAdminTemplate    = "templates/email/booking_cancelled_admin.html"
	requestedAdminTemplate    = "templates/email/booking_requested_admin.html"
)

// EmailNotificationService delivers booking emails over SMTP.
type EmailNotificationService struct {
	Logger *zap.Logger
}

// NewEmailNotificationService constructs the production notifier.
func NewEmailNotificationService(logger *zap.Logger) *EmailNotificationService {
	return &EmailNotificationService{Logger: logger}
}

// bookingMailData is the template context shared by all booking emails.
type bookingMailData struct {
	RoomName    string
	SeatName    string
	GuestName   string
	Date        string
	Time        string
	ConfirmURL  string
	CancelURL   string
	CheckinURL  string
	CheckoutURL string
}

func replyURL(booking *models.Booking, action models.BookingAction, customerScope bool) string {
	token := utils.BookingReplyToken(booking.ID, booking.Start, customerScope)
	return fmt.Sprintf("%s/api/bookings/reply?id=%s&action=%s&token=%s",
		config.AppConfig.PublicBaseURL, booking.ID, action, token)
}

func mailData(booking *models.Booking, room *models.Room) bookingMailData {
	data := bookingMailData{
		RoomName:    room.Name,
		GuestName:   fmt.Sprintf("%s %s", booking.GuestFirstName, booking.GuestLastName),
		Date:        booking.Start.Format("2006-01-02"),
		Time:        fmt.Sprintf("%s-%s", booking.Start.Format("15:04"), booking.End.Format("15:04")),
		ConfirmURL:  replyURL(booking, models.ActionConfirm, true),
		CancelURL:   replyURL(booking, models.ActionMaybeCancel, true),
		CheckinURL:  replyURL(booking, models.ActionCheckin, true),
		CheckoutURL: replyURL(booking, models.ActionCheckout, true),
	}
	// Seats are not a separate concept for consultation rooms.
	if room.BookingMode != models.BookingModeConsultation {
		data.SeatName = booking.SeatID
	}
	return data
}

// adminMailData carries admin-scoped reply links on top of the booking data.
type adminMailData struct {
	bookingMailData
	GuestEmail      string
	AdminConfirmURL string
	AdminCancelURL  string
}

func (s *EmailNotificationService) BookingRequestedCustomer(ctx context.Context, booking *models.Booking, room *models.Room) error {
	return s.send(booking.GuestEmail, "Please confirm your booking", requestedCustomerTemplate, mailData(booking, room))
}

func (s *EmailNotificationService) BookingConfirmedCustomer(ctx context.Context, booking *models.Booking, room *models.Room) error {
	return s.send(booking.GuestEmail, "Your booking is confirmed", confirmedCustomerTemplate, mailData(booking, room))
}

func (s *EmailNotificationService) BookingCancelledCustomer(ctx context.Context, booking *models.Booking, room *models.Room) error {
	return s.send(booking.GuestEmail, "Your booking has been cancelled", cancelledCustomerTemplate, mailData(booking, room))
}

func (s *EmailNotificationService) BookingCancelledAdmin(ctx context.Context, booking *models.Booking, room *models.Room) error {
	to := config.AppConfig.NotificationEmail
	if to == "" {
		s.Logger.Warn("no notification email configured, dropping admin cancellation notice",
			zap.String("bookingID", booking.ID))
		return nil
	}
	data := adminMailData{
		bookingMailData: mailData(booking, room),
		GuestEmail:      booking.GuestEmail,
	}
	return s.send(to, "A booking has been cancelled", cancelledAdminTemplate, data)
}

func (s *EmailNotificationService) BookingRequestedAdmin(ctx context.Context, to, subject string, booking *models.Booking, room *models.Room) error {
	data := adminMailData{
		bookingMailData: mailData(booking, room),
		GuestEmail:      booking.GuestEmail,
		AdminConfirmURL: replyURL(booking, models.ActionConfirm, false),
		AdminCancelURL:  replyURL(booking, models.ActionCancel, false),
	}
	return s.send(to, subject, requestedAdminTemplate, data)
}

// send renders the template and delivers the message over SMTP.
func (s *EmailNotificationService) send(toEmail, subject, templatePath string, data interface{}) error {
	mailer := gomail.NewMessage()
	mailer.SetHeader("From", config.AppConfig.SMTPFrom)
	mailer.SetHeader("To", toEmail)
	mailer.SetHeader("Subject", subject)

	t, err := template.ParseFiles(templatePath)
	if err != nil {
		s.Logger.Error("failed to parse email template", zap.String("template", templatePath), zap.Error(err))
		return fmt.Errorf("failed to parse email template: %w", err)
	}

	var body bytes.Buffer
	if err := t.Execute(&body, data); err != nil {
		s.Logger.Error("failed to execute email template", zap.String("template", templatePath), zap.Error(err))
		return fmt.Errorf("failed to execute email template: %w", err)
	}

	mailer.SetBody("text/html", body.String())

	dialer := gomail.NewDialer(
		config.AppConfig.SMTPHost,
		config.AppConfig.SMTPPort,
		config.AppConfig.SMTPUsername,
		config.AppConfig.SMTPPassword,
	)

	if err := dialer.DialAndSend(mailer); err != nil {
		s.Logger.Error("failed to send email", zap.String("to", toEmail), zap.Error(err))
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.Logger.Info("email sent", zap.String("to", toEmail), zap.String("subject", subject))
	return nil
}
