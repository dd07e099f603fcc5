package mail

import (
	"log"
	"os"
)

const (
	envSendGridAPIKey = "SENDGRID_API_KEY"
	envSendGridFrom   = "SENDGRID_FROM" // e.g. orders@sristienterprises.in
	envStoreName      = "STORE_NAME"
)

// NewOrderMailerWithSendGrid builds the SendGrid-backed OrderMailer from the
// environment. Missing keys produce a mailer that fails at send time, which
// the checkout path logs and ignores.
func NewOrderMailerWithSendGrid() *OrderMailer {
	apiKey := os.Getenv(envSendGridAPIKey)
	fromAddr := os.Getenv(envSendGridFrom)
	storeName := os.Getenv(envStoreName)

	if apiKey == "" {
		log.Printf("[mail] WARN: SENDGRID_API_KEY is empty. OrderMailer will fail to send mail.")
	}
	if fromAddr == "" {
		log.Printf("[mail] WARN: SENDGRID_FROM is empty. OrderMailer will fail to send mail.")
	}
	if storeName == "" {
		storeName = "Sristi Enterprises"
	}

	client := NewSendGridClient(apiKey, storeName)
	mailer := NewOrderMailer(client, fromAddr, storeName)

	log.Printf("[mail] OrderMailerWithSendGrid initialized. from=%s store=%s", fromAddr, storeName)

	return mailer
}
