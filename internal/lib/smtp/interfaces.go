// Package smtp предоставляет SMTP транспорт с STARTTLS и PLAIN-аутентификацией.
package smtp

import "io"

// Client минимальный набор команд SMTP, нужный для отправки письма.
type Client interface {
	Mail(from string) error
	Rcpt(to string) error
	Data() (io.WriteCloser, error)
	Quit() error
	Close() error
}
