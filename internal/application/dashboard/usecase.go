// Package dashboard arma los modelos de vista del panel principal y el reporte
// de stock bajo a partir de los endpoints /reports/*.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/invorya-dashboard/internal/application/access"
	"github.com/jhoicas/invorya-dashboard/internal/application/dto"
	"github.com/jhoicas/invorya-dashboard/internal/domain"
	"github.com/jhoicas/invorya-dashboard/internal/infrastructure/gateway"
	"github.com/jhoicas/invorya-dashboard/pkg/logger"
)

const (
	lowStockThreshold = 10 // umbral usado por el widget de stock bajo
	expiringDays      = 30 // ventana del widget de lotes por vencer
	previewSize       = 5  // filas visibles en cada widget
)

// Claves de Errors en DashboardView.
const (
	SectionStats    = "stats"
	SectionLowStock = "low_stock"
	SectionExpiring = "expiring_batches"
)

// Reports endpoints de reportes que consume el dashboard. Lo implementa *api.ReportsAPI.
type Reports interface {
	LowStock(ctx context.Context, threshold int) (*dto.Envelope[[]dto.LowStockItem], error)
	ExpiringBatches(ctx context.Context, days int) (*dto.Envelope[[]dto.ExpiringBatch], error)
	InventoryValue(ctx context.Context) (*dto.Envelope[dto.InventoryValue], error)
	DashboardStats(ctx context.Context) (*dto.Envelope[dto.DashboardStats], error)
}

// PDFGenerator genera el documento del reporte de stock bajo.
type PDFGenerator interface {
	GenerateLowStockPDF(ctx context.Context, report *dto.LowStockReport) ([]byte, error)
}

// UseCase casos de uso del dashboard.
type UseCase struct {
	reports Reports
	users   access.UserSource
	perms   *access.Permissions
	pdf     PDFGenerator
	log     *logger.Logger
	now     func() time.Time
}

// NewUseCase construye el caso de uso. pdf puede ser nil si no se exporta.
func NewUseCase(reports Reports, users access.UserSource, pdf PDFGenerator, log *logger.Logger) *UseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{
		reports: reports,
		users:   users,
		perms:   access.New(users),
		pdf:     pdf,
		log:     log.Component("dashboard"),
		now:     time.Now,
	}
}

// Overview arma la vista /dashboard.
//
// Tres llamadas en paralelo:
//  1. DashboardStats          → tarjetas
//  2. LowStock(10)            → widget de stock bajo
//  3. ExpiringBatches(30)     → widget de lotes por vencer
//
// Un fallo parcial deja su sección vacía y lo registra en Errors. Si alguna
// llamada devuelve 401 la vista completa falla: la sesión ya no es válida.
func (uc *UseCase) Overview(ctx context.Context) (*dto.DashboardView, error) {
	u := uc.users.User()
	if u == nil {
		return nil, fmt.Errorf("dashboard: %w", domain.ErrUnauthorized)
	}

	view := &dto.DashboardView{
		User: dto.UserSummary{
			ID:       u.ID,
			Name:     u.FullName(),
			Email:    u.Email,
			Role:     u.Role.String(),
			TenantID: u.TenantID,
		},
		Capabilities: uc.perms.Snapshot(),
		Navigation:   Navigation(uc.perms),
	}

	// Sin ViewReports el backend respondería 403 a cada widget.
	if !uc.perms.CanViewReports() {
		return view, nil
	}

	type statsResult struct {
		stats *dto.Envelope[dto.DashboardStats]
		err   error
	}
	type lowStockResult struct {
		items *dto.Envelope[[]dto.LowStockItem]
		err   error
	}
	type expiringResult struct {
		batches *dto.Envelope[[]dto.ExpiringBatch]
		err     error
	}

	statsCh := make(chan statsResult, 1)
	lowCh := make(chan lowStockResult, 1)
	expCh := make(chan expiringResult, 1)

	go func() {
		r, err := uc.reports.DashboardStats(ctx)
		statsCh <- statsResult{r, err}
	}()
	go func() {
		r, err := uc.reports.LowStock(ctx, lowStockThreshold)
		lowCh <- lowStockResult{r, err}
	}()
	go func() {
		r, err := uc.reports.ExpiringBatches(ctx, expiringDays)
		expCh <- expiringResult{r, err}
	}()

	stats := <-statsCh
	low := <-lowCh
	exp := <-expCh

	for _, err := range []error{stats.err, low.err, exp.err} {
		if errors.Is(err, domain.ErrAuthenticationExpired) {
			return nil, fmt.Errorf("dashboard: %w", err)
		}
	}

	if err := envelopeErr(stats.stats, stats.err); err != nil {
		uc.sectionFailed(view, SectionStats, err)
	} else {
		s := stats.stats.Data
		view.Stats = &s
	}

	if err := envelopeErr(low.items, low.err); err != nil {
		uc.sectionFailed(view, SectionLowStock, err)
	} else {
		view.LowStockTotal = len(low.items.Data)
		view.LowStock = preview(low.items.Data)
	}

	if err := envelopeErr(exp.batches, exp.err); err != nil {
		uc.sectionFailed(view, SectionExpiring, err)
	} else {
		view.ExpiringTotal = len(exp.batches.Data)
		view.ExpiringBatches = preview(exp.batches.Data)
	}

	return view, nil
}

// LowStockPDF genera el reporte de stock bajo. La valorización es opcional:
// si falla, el PDF sale sin el bloque de totales.
func (uc *UseCase) LowStockPDF(ctx context.Context, threshold int) ([]byte, error) {
	u := uc.users.User()
	if u == nil {
		return nil, fmt.Errorf("reporte stock bajo: %w", domain.ErrUnauthorized)
	}
	if !uc.perms.CanViewReports() {
		return nil, fmt.Errorf("reporte stock bajo: %w", domain.ErrForbidden)
	}
	if uc.pdf == nil {
		return nil, fmt.Errorf("reporte stock bajo: generador PDF no configurado")
	}

	type valueResult struct {
		value *dto.Envelope[dto.InventoryValue]
		err   error
	}
	valueCh := make(chan valueResult, 1)
	go func() {
		r, err := uc.reports.InventoryValue(ctx)
		valueCh <- valueResult{r, err}
	}()

	items, err := uc.reports.LowStock(ctx, threshold)
	value := <-valueCh
	if err := envelopeErr(items, err); err != nil {
		return nil, fmt.Errorf("reporte stock bajo: %w", err)
	}

	report := &dto.LowStockReport{
		GeneratedAt: uc.now(),
		GeneratedBy: u.FullName(),
		TenantID:    u.TenantID,
		Threshold:   threshold,
		Items:       items.Data,
	}
	if verr := envelopeErr(value.value, value.err); verr != nil {
		uc.log.Warn().Err(verr).Msg("valorización no disponible para el reporte")
	} else {
		v := value.value.Data
		report.Value = &v
	}

	doc, err := uc.pdf.GenerateLowStockPDF(ctx, report)
	if err != nil {
		return nil, fmt.Errorf("reporte stock bajo: %w", err)
	}
	return doc, nil
}

func (uc *UseCase) sectionFailed(view *dto.DashboardView, section string, err error) {
	uc.log.Warn().Err(err).Str("section", section).Msg("sección del dashboard no disponible")
	if view.Errors == nil {
		view.Errors = make(map[string]string)
	}
	view.Errors[section] = errorMessage(err)
}

// envelopeErr unifica error de transporte y success:false.
func envelopeErr[T any](env *dto.Envelope[T], err error) error {
	if err != nil {
		return err
	}
	if env == nil || !env.Success {
		msg := "respuesta sin éxito"
		if env != nil && env.Message != "" {
			msg = env.Message
		}
		return fmt.Errorf("%w: %s", domain.ErrUnrecognized, msg)
	}
	return nil
}

func errorMessage(err error) string {
	if gerr, ok := gateway.AsError(err); ok && gerr.Message != "" {
		return gerr.Message
	}
	return err.Error()
}

func preview[T any](items []T) []T {
	if len(items) > previewSize {
		return items[:previewSize]
	}
	return items
}
