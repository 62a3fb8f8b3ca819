package dashboard_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/invorya-dashboard/internal/application/access"
	"github.com/jhoicas/invorya-dashboard/internal/application/dashboard"
	"github.com/jhoicas/invorya-dashboard/internal/application/dto"
	"github.com/jhoicas/invorya-dashboard/internal/domain"
	"github.com/jhoicas/invorya-dashboard/internal/domain/entity"
	"github.com/jhoicas/invorya-dashboard/internal/infrastructure/gateway"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dobles de test
// ──────────────────────────────────────────────────────────────────────────────

type staticUser struct{ u *entity.User }

func (s staticUser) User() *entity.User { return s.u }

func userWithRole(r entity.Role) access.UserSource {
	return staticUser{u: &entity.User{ID: "u1", FirstName: "Ana", LastName: "Ruiz", Email: "ana@acme.co", Role: r, TenantID: "t1"}}
}

type fakeReports struct {
	lowStock  []dto.LowStockItem
	expiring  []dto.ExpiringBatch
	statsErr  error
	lowErr    error
	valueErr  error
	threshold atomic.Int32
	days      atomic.Int32
	calls     atomic.Int32
	// delay simula latencia para comprobar que las llamadas van en paralelo.
	delay time.Duration
}

func (f *fakeReports) wait() {
	f.calls.Add(1)
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
}

func (f *fakeReports) LowStock(_ context.Context, threshold int) (*dto.Envelope[[]dto.LowStockItem], error) {
	f.wait()
	f.threshold.Store(int32(threshold))
	if f.lowErr != nil {
		return nil, f.lowErr
	}
	return &dto.Envelope[[]dto.LowStockItem]{Success: true, Data: f.lowStock}, nil
}

func (f *fakeReports) ExpiringBatches(_ context.Context, days int) (*dto.Envelope[[]dto.ExpiringBatch], error) {
	f.wait()
	f.days.Store(int32(days))
	return &dto.Envelope[[]dto.ExpiringBatch]{Success: true, Data: f.expiring}, nil
}

func (f *fakeReports) InventoryValue(context.Context) (*dto.Envelope[dto.InventoryValue], error) {
	f.wait()
	if f.valueErr != nil {
		return nil, f.valueErr
	}
	return &dto.Envelope[dto.InventoryValue]{Success: true, Data: dto.InventoryValue{TotalValue: decimal.NewFromInt(1500), ProductCount: 3}}, nil
}

func (f *fakeReports) DashboardStats(context.Context) (*dto.Envelope[dto.DashboardStats], error) {
	f.wait()
	if f.statsErr != nil {
		return nil, f.statsErr
	}
	return &dto.Envelope[dto.DashboardStats]{Success: true, Data: dto.DashboardStats{TotalProducts: 42, LowStockCount: 7}}, nil
}

type fakePDF struct {
	got *dto.LowStockReport
}

func (f *fakePDF) GenerateLowStockPDF(_ context.Context, r *dto.LowStockReport) ([]byte, error) {
	f.got = r
	return []byte("%PDF-1.3"), nil
}

func lowItems(n int) []dto.LowStockItem {
	out := make([]dto.LowStockItem, n)
	for i := range out {
		out[i] = dto.LowStockItem{ProductID: string(rune('a' + i)), CurrentQuantity: decimal.NewFromInt(int64(i))}
	}
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Overview
// ──────────────────────────────────────────────────────────────────────────────

func TestOverview_ArmaVistaCompleta(t *testing.T) {
	reports := &fakeReports{lowStock: lowItems(8), expiring: []dto.ExpiringBatch{{BatchID: "b1", DaysUntilExpiry: 3}}}
	uc := dashboard.NewUseCase(reports, userWithRole(entity.RoleManager), nil, nil)

	view, err := uc.Overview(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Ana Ruiz", view.User.Name)
	assert.Equal(t, "manager", view.User.Role)
	require.NotNil(t, view.Stats)
	assert.Equal(t, 42, view.Stats.TotalProducts)
	assert.Len(t, view.LowStock, 5, "solo la vista previa")
	assert.Equal(t, 8, view.LowStockTotal)
	assert.Len(t, view.ExpiringBatches, 1)
	assert.Equal(t, 1, view.ExpiringTotal)
	assert.Empty(t, view.Errors)
	assert.Equal(t, int32(10), reports.threshold.Load())
	assert.Equal(t, int32(30), reports.days.Load())
	assert.True(t, view.Capabilities["view_reports"])
	assert.False(t, view.Capabilities["manage_users"])
}

func TestOverview_LlamadasEnParalelo(t *testing.T) {
	reports := &fakeReports{delay: 100 * time.Millisecond}
	uc := dashboard.NewUseCase(reports, userWithRole(entity.RoleAdmin), nil, nil)

	start := time.Now()
	_, err := uc.Overview(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int32(3), reports.calls.Load())
	assert.Less(t, time.Since(start), 250*time.Millisecond)
}

func TestOverview_FalloParcial(t *testing.T) {
	reports := &fakeReports{
		statsErr: &gateway.Error{Kind: gateway.KindServerFault, Status: 500, Message: "Error del servidor. Intenta de nuevo más tarde."},
		expiring: []dto.ExpiringBatch{{BatchID: "b1"}},
	}
	uc := dashboard.NewUseCase(reports, userWithRole(entity.RoleAdmin), nil, nil)

	view, err := uc.Overview(context.Background())
	require.NoError(t, err)

	assert.Nil(t, view.Stats)
	assert.Equal(t, "Error del servidor. Intenta de nuevo más tarde.", view.Errors[dashboard.SectionStats])
	assert.Len(t, view.ExpiringBatches, 1)
	assert.NotContains(t, view.Errors, dashboard.SectionExpiring)
}

func TestOverview_401FallaLaVista(t *testing.T) {
	reports := &fakeReports{lowErr: &gateway.Error{Kind: gateway.KindAuthenticationExpired, Status: 401}}
	uc := dashboard.NewUseCase(reports, userWithRole(entity.RoleAdmin), nil, nil)

	_, err := uc.Overview(context.Background())
	assert.True(t, errors.Is(err, domain.ErrAuthenticationExpired))
}

func TestOverview_SinReportesParaRolUser(t *testing.T) {
	reports := &fakeReports{}
	uc := dashboard.NewUseCase(reports, userWithRole(entity.RoleUser), nil, nil)

	view, err := uc.Overview(context.Background())
	require.NoError(t, err)
	assert.Zero(t, reports.calls.Load())
	assert.Nil(t, view.Stats)

	var names []string
	for _, n := range view.Navigation {
		names = append(names, n.Name)
	}
	assert.Equal(t, []string{"Dashboard", "Inventory", "Batches", "Settings"}, names)
}

func TestOverview_SinUsuario(t *testing.T) {
	uc := dashboard.NewUseCase(&fakeReports{}, staticUser{}, nil, nil)
	_, err := uc.Overview(context.Background())
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
}

// ──────────────────────────────────────────────────────────────────────────────
// Navegación
// ──────────────────────────────────────────────────────────────────────────────

func TestNavigation_PorRol(t *testing.T) {
	cases := []struct {
		role  entity.Role
		names []string
	}{
		{entity.RoleAdmin, []string{"Dashboard", "Products", "Inventory", "Batches", "Reports", "Low Stock", "Logs", "Users", "Settings"}},
		{entity.RoleManager, []string{"Dashboard", "Products", "Inventory", "Batches", "Reports", "Low Stock", "Logs", "Settings"}},
		{entity.RoleUser, []string{"Dashboard", "Inventory", "Batches", "Settings"}},
		{entity.RoleUnknown, []string{"Dashboard", "Settings"}},
	}
	for _, tc := range cases {
		t.Run(string(tc.role), func(t *testing.T) {
			items := dashboard.Navigation(access.New(userWithRole(tc.role)))
			var names []string
			for _, it := range items {
				names = append(names, it.Name)
				if it.Name == "Low Stock" {
					assert.Equal(t, "Alert", it.Badge)
				}
			}
			assert.Equal(t, tc.names, names)
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Reporte PDF
// ──────────────────────────────────────────────────────────────────────────────

func TestLowStockPDF_ArmaReporte(t *testing.T) {
	gen := &fakePDF{}
	reports := &fakeReports{lowStock: lowItems(3)}
	uc := dashboard.NewUseCase(reports, userWithRole(entity.RoleManager), gen, nil)

	doc, err := uc.LowStockPDF(context.Background(), 15)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.3"), doc)

	require.NotNil(t, gen.got)
	assert.Equal(t, "Ana Ruiz", gen.got.GeneratedBy)
	assert.Equal(t, 15, gen.got.Threshold)
	assert.Len(t, gen.got.Items, 3)
	require.NotNil(t, gen.got.Value)
	assert.True(t, decimal.NewFromInt(1500).Equal(gen.got.Value.TotalValue))
}

func TestLowStockPDF_SinValorizacion(t *testing.T) {
	gen := &fakePDF{}
	reports := &fakeReports{valueErr: errors.New("boom")}
	uc := dashboard.NewUseCase(reports, userWithRole(entity.RoleAdmin), gen, nil)

	_, err := uc.LowStockPDF(context.Background(), 0)
	require.NoError(t, err)
	assert.Nil(t, gen.got.Value)
}

func TestLowStockPDF_RequiereViewReports(t *testing.T) {
	uc := dashboard.NewUseCase(&fakeReports{}, userWithRole(entity.RoleUser), &fakePDF{}, nil)
	_, err := uc.LowStockPDF(context.Background(), 10)
	assert.True(t, errors.Is(err, domain.ErrForbidden))
}
