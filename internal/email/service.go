package email

import (
	"fmt"
	"log"
	"net/smtp"
)

// Service sends reminder emails via SMTP. With an empty host it logs the
// message instead of sending, which keeps local development mail-free.
type Service struct {
	host string
	port string
	from string
}

// NewService creates a new email service
func NewService(host, port, from string) *Service {
	return &Service{
		host: host,
		port: port,
		from: from,
	}
}

// SendPendingOrderReminder reminds a customer about an order that is still
// pending.
func (s *Service) SendPendingOrderReminder(to, customerName, orderID string, total float64) error {
	shortID := orderID
	if len(orderID) > 8 {
		shortID = orderID[:8]
	}
	subject := fmt.Sprintf("Reminder: your order %s is still pending", shortID)
	body := BuildPendingOrderReminderBody(customerName, orderID, total)
	return s.send(to, subject, body)
}

func (s *Service) send(to, subject, body string) error {
	if s.host == "" {
		log.Printf("[Email] SMTP not configured, skipping send to %s: %s", to, subject)
		return nil
	}
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=UTF-8\r\n\r\n%s",
		s.from, to, subject, body)
	addr := fmt.Sprintf("%s:%s", s.host, s.port)
	return smtp.SendMail(addr, nil, s.from, []string{to}, []byte(msg))
}
