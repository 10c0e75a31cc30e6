package billing

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/invoice-sender/internal/domain"
	"github.com/jhoicas/invoice-sender/internal/domain/entity"
	"github.com/jhoicas/invoice-sender/pkg/logger"
)

// BillingPageUseCase arma los datos de la página de billing self-service y
// gestiona los links al portal de Stripe.
type BillingPageUseCase struct {
	payments PaymentsProvider
	mailer   EmailSender
	cfg      Config
	log      *logger.Logger
}

// NewBillingPageUseCase construye el caso de uso.
func NewBillingPageUseCase(payments PaymentsProvider, mailer EmailSender, cfg Config, log *logger.Logger) *BillingPageUseCase {
	return &BillingPageUseCase{payments: payments, mailer: mailer, cfg: cfg, log: log}
}

// BillingPageData todo lo necesario para renderizar la página de billing.
type BillingPageData struct {
	Customer     entity.CustomerData
	Company      entity.CompanyInfo
	Charges      []entity.ChargeData // hasta 100, sin paginación
	Subscription *entity.SubscriptionInfo
}

// GetBillingHistory reúne cliente, cargos, empresa y suscripción en paralelo
// (recursos disjuntos, el orden entre fetches es irrelevante).
func (uc *BillingPageUseCase) GetBillingHistory(ctx context.Context, customerID string) (*BillingPageData, error) {
	if customerID == "" {
		return nil, fmt.Errorf("%w: customerId is required", domain.ErrInvalidInput)
	}

	var data BillingPageData
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		customer, err := uc.payments.GetCustomerData(gctx, customerID)
		if err != nil {
			return err
		}
		data.Customer = *customer
		return nil
	})
	g.Go(func() error {
		charges, err := uc.payments.GetCustomerCharges(gctx, customerID)
		if err != nil {
			return err
		}
		data.Charges = charges
		return nil
	})
	g.Go(func() error {
		company, err := uc.payments.GetCompanyInfo(gctx)
		if err != nil {
			return err
		}
		data.Company = *company
		return nil
	})
	g.Go(func() (err error) {
		data.Subscription, err = uc.payments.GetSubscriptionInfo(gctx, customerID, "")
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("billing page: reunir datos: %w", err)
	}

	return &data, nil
}

// RequestBillingLink crea una sesión del portal de billing y envía la URL por
// email al cliente (o a la casilla interna bajo dev mode).
func (uc *BillingPageUseCase) RequestBillingLink(ctx context.Context, customerID string) error {
	if customerID == "" {
		return fmt.Errorf("%w: customerId is required", domain.ErrInvalidInput)
	}

	var (
		customer *entity.CustomerData
		company  *entity.CompanyInfo
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		customer, err = uc.payments.GetCustomerData(gctx, customerID)
		return err
	})
	g.Go(func() (err error) {
		company, err = uc.payments.GetCompanyInfo(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("billing link: reunir datos: %w", err)
	}

	if customer.Email == "" {
		return fmt.Errorf("%w: customer has no email address", domain.ErrInvalidInput)
	}

	portalURL, err := uc.payments.CreateBillingPortalSession(ctx, customerID, uc.cfg.BillingURL(customerID))
	if err != nil {
		return fmt.Errorf("billing link: crear sesión de portal: %w", err)
	}

	recipient := uc.cfg.Recipient(customer.Email)
	if err := uc.mailer.SendEmail(ctx, EmailMessage{
		From:    uc.cfg.MailFrom,
		To:      recipient,
		Subject: "Manage your billing information",
		HTML:    buildBillingLinkEmail(*company, *customer, portalURL),
	}); err != nil {
		return fmt.Errorf("billing link: enviar email: %w", err)
	}

	uc.log.Info().Str("customer_id", customerID).Msg("link de portal de billing enviado")
	return nil
}
