package billing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/facturador/internal/application/dto"
	"github.com/jhoicas/facturador/internal/domain"
	"github.com/jhoicas/facturador/internal/domain/entity"
	"github.com/jhoicas/facturador/internal/domain/repository"
	"github.com/jhoicas/facturador/pkg/logger"
)

// IssueInvoiceUseCase ensambla y persiste una factura en una sola transacción.
type IssueInvoiceUseCase struct {
	txRunner    IssuingTxRunner
	companyRepo repository.CompanyRepository
	assembler   *Assembler
	companyID   string
	log         *logger.Logger
}

// NewIssueInvoiceUseCase construye el caso de uso. companyID identifica el perfil del emisor.
func NewIssueInvoiceUseCase(
	txRunner IssuingTxRunner,
	companyRepo repository.CompanyRepository,
	assembler *Assembler,
	companyID string,
	log *logger.Logger,
) *IssueInvoiceUseCase {
	return &IssueInvoiceUseCase{
		txRunner:    txRunner,
		companyRepo: companyRepo,
		assembler:   assembler,
		companyID:   companyID,
		log:         log,
	}
}

// Issue emite la factura: toma el siguiente consecutivo del día y guarda
// cabecera, instantáneas de las partes y líneas. Si algo falla no queda
// consumido ningún número.
func (uc *IssueInvoiceUseCase) Issue(ctx context.Context, userID string, in dto.CreateInvoiceRequest) (*entity.Invoice, error) {
	input, err := uc.input(ctx, userID, in)
	if err != nil {
		return nil, err
	}

	var issued *entity.Invoice
	err = uc.txRunner.RunIssuing(ctx, func(numbers repository.NumberSequence, invoices repository.InvoiceRepository) error {
		inv, err := uc.assembler.Assemble(ctx, numbers, input)
		if err != nil {
			return err
		}
		if err := invoices.Create(ctx, inv); err != nil {
			return fmt.Errorf("issue: guardar factura: %w", err)
		}
		issued = inv
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("number", issued.Number).
		Str("invoice_id", issued.ID).
		Str("total", issued.Total.StringFixed(2)).
		Str("created_by", userID).
		Msg("factura emitida")
	return issued, nil
}

// Preview ensambla la factura sin persistirla ni consumir consecutivos. El
// número devuelto es provisional (primer consecutivo del día).
func (uc *IssueInvoiceUseCase) Preview(ctx context.Context, userID string, in dto.CreateInvoiceRequest) (*entity.Invoice, error) {
	input, err := uc.input(ctx, userID, in)
	if err != nil {
		return nil, err
	}
	return uc.assembler.Assemble(ctx, previewSequence{}, input)
}

func (uc *IssueInvoiceUseCase) input(ctx context.Context, userID string, in dto.CreateInvoiceRequest) (AssembleInput, error) {
	company, err := uc.companyRepo.GetByID(ctx, uc.companyID)
	if err != nil {
		return AssembleInput{}, fmt.Errorf("issue: obtener emisor: %w", err)
	}
	if company == nil {
		return AssembleInput{}, fmt.Errorf("%w: perfil del emisor %q", domain.ErrNotFound, uc.companyID)
	}

	input := AssembleInput{
		Order:        in.Order.ToOrder(),
		Company:      *company,
		PaymentTerms: strings.TrimSpace(in.PaymentTerms),
		CreatedBy:    userID,
	}
	if s := strings.TrimSpace(in.SupplyDate); s != "" {
		d, err := time.ParseInLocation(dto.DateLayout, s, uc.assembler.cfg.Location)
		if err != nil {
			verr := &domain.ValidationError{}
			verr.Add("supply_date", "must be a date in YYYY-MM-DD format")
			return AssembleInput{}, verr
		}
		input.SupplyDate = &d
	}
	return input, nil
}

// previewSequence contador que no consume números reales.
type previewSequence struct{}

func (previewSequence) Next(context.Context, time.Time) (int64, error) { return 1, nil }
