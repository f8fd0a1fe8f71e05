package service

import (
	"context"
	"fmt"
	"strconv"

	"gopkg.in/gomail.v2"
)

type emailService struct {
	host     string
	port     int
	username string
	password string
	from     string
}

func NewEmailService(host, port, username, password, from string) EmailService {
	p, _ := strconv.Atoi(port)
	return &emailService{
		host:     host,
		port:     p,
		username: username,
		password: password,
		from:     from,
	}
}

func (s *emailService) send(m *gomail.Message) error {
	d := gomail.NewDialer(s.host, s.port, s.username, s.password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email via gomail: %w", err)
	}
	return nil
}

func (s *emailService) SendBookingConfirmation(ctx context.Context, email, name, vehicleName, pickup, ret string, totalCents int32) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Your booking is confirmed")

	body := fmt.Sprintf("Hello %s,\n\nYour booking of %s from %s to %s is confirmed.\n\nTotal: $%.2f\n\nBest regards,\nThe DriveHub Team",
		name, vehicleName, pickup, ret, float64(totalCents)/100)
	m.SetBody("text/plain", body)

	return s.send(m)
}

func (s *emailService) SendBookingDatesChanged(ctx context.Context, email, name, vehicleName, pickup, ret string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Your booking dates have changed")

	body := fmt.Sprintf("Hello %s,\n\nYour booking of %s has been moved to %s through %s.\n\nBest regards,\nThe DriveHub Team",
		name, vehicleName, pickup, ret)
	m.SetBody("text/plain", body)

	return s.send(m)
}

func (s *emailService) SendBookingCancellation(ctx context.Context, email, name, vehicleName string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Your booking has been cancelled")

	body := fmt.Sprintf("Hello %s,\n\nYour booking of %s has been cancelled.\n\nBest regards,\nThe DriveHub Team",
		name, vehicleName)
	m.SetBody("text/plain", body)

	return s.send(m)
}
