package service

import (
	"context"
	"log"

	"portal-service/internal/backend"
	"portal-service/pkg/xerrors"

	"github.com/google/uuid"
)

// PaymentBackend is the slice of the backend client payments need.
type PaymentBackend interface {
	Pay(ctx context.Context, userID, applicationID string, req backend.PaymentRequest) (*backend.PaymentReceipt, error)
}

var validPaymentMethods = map[string]bool{
	"card":          true,
	"bank_transfer": true,
	"mobile_money":  true,
	"wallet":        true,
}

// PaymentService executes the payment-method selection flow. It generates
// the transaction reference; the backend owns actual settlement.
type PaymentService struct {
	api PaymentBackend
}

func NewPaymentService(api PaymentBackend) *PaymentService {
	return &PaymentService{api: api}
}

func (s *PaymentService) Pay(ctx context.Context, userID, applicationID, method, notes string) (*backend.PaymentReceipt, error) {
	if !validPaymentMethods[method] {
		return nil, xerrors.ErrInvalidPaymentMethod
	}

	req := backend.PaymentRequest{
		PaymentMethod: method,
		TransactionID: uuid.New().String(),
		Notes:         notes,
	}

	receipt, err := s.api.Pay(ctx, userID, applicationID, req)
	if err != nil {
		log.Printf("[ERROR] payment failed for application=%s user=%s: %v", applicationID, userID, err)
		return nil, xerrors.ErrPaymentFailed
	}

	log.Printf("[INFO] payment %s recorded for application=%s user=%s", receipt.TransactionID, applicationID, userID)
	return receipt, nil
}
