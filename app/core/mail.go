package core

import (
	"crypto/tls"
	"errors"
	"log"

	"gopkg.in/gomail.v2"
)

func SendMail(from string, to []string, cc []string, bcc []string, subject string, body string, files []string) error {

	if Config.MailServer.SmtpHost == "" || Config.MailServer.SmtpPort == 0 {
		err := errors.New("mail server not configured")
		log.Println(err)
		return err
	}

	if from == "" {
		from = Config.MailServer.SmtpUsername
	}

	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", to...)
	if len(cc) > 0 {
		m.SetHeader("Cc", cc...)
	}
	if len(bcc) > 0 {
		m.SetHeader("Bcc", bcc...)
	}
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)
	if files != nil {
		for _, file := range files {
			m.Attach(file)
		}
	}

	d := gomail.NewDialer(Config.MailServer.SmtpHost, Config.MailServer.SmtpPort, Config.MailServer.SmtpUsername, Config.MailServer.SmtpPassword)
	d.TLSConfig = &tls.Config{InsecureSkipVerify: true, ServerName: Config.MailServer.SmtpHost}

	err := d.DialAndSend(m)
	if err != nil {
		log.Print(err)
	}
	return err
}
