package services

import (
	"donation-gateway/config"
	"donation-gateway/logger"
	"donation-gateway/utils"
	"fmt"
	"strconv"

	"gopkg.in/gomail.v2"
)

// ReceiptMailer sends the donor a receipt once a payment is confirmed.
type ReceiptMailer interface {
	SendReceipt(to, name, invoiceNo string, amount float64) error
}

// SMTPMailer delivers receipts over SMTP.
type SMTPMailer struct{}

func NewSMTPMailer() *SMTPMailer {
	return &SMTPMailer{}
}

func (m *SMTPMailer) SendReceipt(to, name, invoiceNo string, amount float64) error {
	from := config.AppConfig.EmailFrom
	if from == "" {
		from = config.AppConfig.SMTPUser
	}
	if from == "" {
		return fmt.Errorf("email sender not configured (set EMAIL_FROM or SMTP_USER)")
	}

	if config.AppConfig.SMTPUser == "" || config.AppConfig.SMTPPass == "" {
		return fmt.Errorf("smtp credentials not configured (set SMTP_USER and SMTP_PASS)")
	}

	body := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
        <h2 style="color: #4CAF50;">Donation Received</h2>
        <p>Dear <strong>%s</strong>,</p>
        <p>Thank you for your donation. We have received and recorded your payment.</p>
        <table style="margin: 15px 0;">
            <tr><td style="padding: 4px 12px 4px 0;"><strong>Invoice</strong></td><td>%s</td></tr>
            <tr><td style="padding: 4px 12px 4px 0;"><strong>Amount</strong></td><td>%s</td></tr>
        </table>
        <p>May it be a blessing. Thank you for your generosity.</p>
    </div>
</body>
</html>`, name, invoiceNo, utils.FormatIDR(amount))

	msg := gomail.NewMessage()
	msg.SetHeader("From", from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", fmt.Sprintf("Donation receipt %s", invoiceNo))
	msg.SetBody("text/html", body)

	port := 587
	if p, err := strconv.Atoi(config.AppConfig.SMTPPort); err == nil {
		port = p
	}

	d := gomail.NewDialer(config.AppConfig.SMTPHost, port, config.AppConfig.SMTPUser, config.AppConfig.SMTPPass)
	if err := d.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send receipt email: %w", err)
	}

	logger.Info("Receipt email sent to %s", to)
	return nil
}
