package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	_ "github.com/lib/pq"
	"github.com/skip2/go-qrcode"

	"go.mau.fi/whatsmeow"
	"go.mau.fi/whatsmeow/store/sqlstore"
	"gopkg.in/gomail.v2"
)

var meowWhatsapp *whatsmeow.Client

func RemindersEnabled() bool {
	return os.Getenv("REMINDERS_ENABLED") == "true"
}

// GetReminderLead is how far ahead of a schedule's start a reminder goes out.
func GetReminderLead() time.Duration {
	v := os.Getenv("REMINDER_LEAD")
	if v == "" {
		return 24 * time.Hour
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 24 * time.Hour
	}
	return d
}

// GetReminderInterval is the background dispatch tick. Zero disables the ticker.
func GetReminderInterval() time.Duration {
	v := os.Getenv("REMINDER_INTERVAL")
	if v == "" {
		return 0
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0
	}
	return d
}

// InitEmailer builds the gomail dialer for the reminder email channel.
func InitEmailer() (*gomail.Dialer, string, error) {
	sender, err := getEmailSender()
	if err != nil {
		return nil, "", err
	}

	password, err := getEmailPassword()
	if err != nil {
		return nil, "", err
	}

	host, err := getSMTPHost()
	if err != nil {
		return nil, "", err
	}

	port, err := getSMTPPort()
	if err != nil {
		return nil, "", err
	}

	return gomail.NewDialer(host, port, sender, password), sender, nil
}

// InitWhatsapp connects the WhatsApp client, storing its device session on
// the same Postgres the app uses. On first run there is no session yet; the
// pairing QR is written to qrcode.png for an operator to scan.
func InitWhatsapp(ctx context.Context) (*whatsmeow.Client, error) {
	if os.Getenv("WHATSAPP_ENABLED") != "true" {
		return nil, nil
	}

	address := fmt.Sprintf("user=%s password=%s dbname=%s sslmode=disable",
		os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD"), os.Getenv("DB_DATABASE"))

	container, err := sqlstore.New("postgres", address, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open whatsapp session store: %w", err)
	}

	deviceStore, err := container.GetFirstDevice()
	if err != nil {
		return nil, fmt.Errorf("failed to load whatsapp device: %w", err)
	}

	mClient := whatsmeow.NewClient(deviceStore, nil)
	meowWhatsapp = mClient

	if meowWhatsapp.Store.ID == nil {
		qrChan, _ := meowWhatsapp.GetQRChannel(ctx)
		if err := meowWhatsapp.Connect(); err != nil {
			return nil, fmt.Errorf("failed to connect whatsapp client: %w", err)
		}

		for evt := range qrChan {
			if evt.Event == "code" {
				fmt.Println("")
				fmt.Println("IMPORTANT no WhatsApp session was found !!")
				fmt.Println("Need admin to scan the QR code for the server to run properly!")
				fmt.Println("Loading...")

				if err := generateQRCode(evt.Code, "qrcode.png"); err != nil {
					return nil, err
				}
				fmt.Println("QR code saved to qrcode.png")
			} else if evt.Event == "success" {
				break
			}
		}
	} else {
		if err := meowWhatsapp.Connect(); err != nil {
			return nil, fmt.Errorf("failed to connect whatsapp client: %w", err)
		}
	}

	return meowWhatsapp, nil
}

func generateQRCode(code, filename string) error {
	err := qrcode.WriteFile(code, qrcode.Medium, 512, filename)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}
	return nil
}

func getEmailSender() (string, error) {
	sender := os.Getenv("EMAIL_SENDER")
	if sender == "" {
		return "", fmt.Errorf("email sender invalid, value : %s", sender)
	}
	return sender, nil
}

func getEmailPassword() (string, error) {
	pass := os.Getenv("EMAIL_SENDER_PASSWORD")
	if pass == "" {
		return "", fmt.Errorf("email password invalid, value : %s", pass)
	}
	return pass, nil
}

func getSMTPHost() (string, error) {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		return "", fmt.Errorf("smtp host invalid, value : %s", host)
	}
	return host, nil
}

func getSMTPPort() (int, error) {
	port := os.Getenv("SMTP_PORT")
	if port == "" {
		return 0, fmt.Errorf("smtp port invalid, value : %s", port)
	}
	n, err := strconv.Atoi(port)
	if err != nil {
		return 0, fmt.Errorf("smtp port invalid, value : %s", port)
	}
	return n, nil
}
