package pg

import (
	"errors"

	"github.com/lib/pq"
)

type ErrorClassification int

const (
	NonRetriable ErrorClassification = iota
	Retriable
)

type PostgresErrorClassifier struct{}

func NewPostgresErrorClassifier() *PostgresErrorClassifier {
	return &PostgresErrorClassifier{}
}

// Classify разделяет ошибки Postgres на временные (сбой соединения,
// откат транзакции) и постоянные. Незнакомая ошибка считается постоянной.
func (c *PostgresErrorClassifier) Classify(err error) ErrorClassification {
	if err == nil {
		return NonRetriable
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return classifyPgError(pqErr)
	}

	return NonRetriable
}

func classifyPgError(pqErr *pq.Error) ErrorClassification {
	// Коды ошибок: https://www.postgresql.org/docs/current/errcodes-appendix.html
	switch pqErr.Code {
	// Класс 08 - ошибки соединения
	case "08000", "08001", "08003", "08004", "08006", "08007":
		return Retriable

	// Класс 40 - откат транзакции, включая deadlock
	case "40000", "40001", "40P01":
		return Retriable

	// 57P03 - сервер ещё не готов принимать соединения
	case "57P03":
		return Retriable
	}

	return NonRetriable
}
