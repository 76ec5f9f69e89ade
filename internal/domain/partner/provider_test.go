package partner

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tiendapro/backend/internal/domain/shared"
)

func TestNewProvider(t *testing.T) {
	p, err := NewProvider(uuid.New(), "prov-001", "Distribuidora El Sol")
	require.NoError(t, err)

	assert.Equal(t, "PROV-001", p.Code, "code should be uppercased")
	assert.Equal(t, ProviderStatusActive, p.Status)
	assert.True(t, p.IsActive())

	events := p.GetDomainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, "ProviderCreated", events[0].EventType())
}

func TestNewProvider_Validation(t *testing.T) {
	tests := []struct {
		name string
		code string
		pnam string
	}{
		{"empty code", "", "El Sol"},
		{"long code", string(make([]byte, 51)), "El Sol"},
		{"empty name", "P-1", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewProvider(uuid.New(), tc.code, tc.pnam)
			require.Error(t, err)
			assert.Equal(t, shared.KindValidation, shared.KindOf(err))
		})
	}
}

func TestProvider_Update(t *testing.T) {
	p, err := NewProvider(uuid.New(), "P-1", "El Sol")
	require.NoError(t, err)

	require.NoError(t, p.Update("El Sol SA", "Maria", "555-1234", "ventas@elsol.example", "Av. Central 100", "RFC123", "", 30))
	assert.Equal(t, "El Sol SA", p.Name)
	assert.Equal(t, 30, p.CreditDays)
	assert.Equal(t, 2, p.Version)

	err = p.Update("El Sol SA", "", "", "not-an-email", "", "", "", 0)
	require.Error(t, err)

	err = p.Update("El Sol SA", "", "", "", "", "", "", -1)
	require.Error(t, err)
}

func TestProvider_ActivateDeactivate(t *testing.T) {
	p, err := NewProvider(uuid.New(), "P-1", "El Sol")
	require.NoError(t, err)

	require.NoError(t, p.Deactivate())
	assert.False(t, p.IsActive())
	assert.Error(t, p.Deactivate())

	require.NoError(t, p.Activate())
	assert.True(t, p.IsActive())
	assert.Error(t, p.Activate())
}

func TestNewStore(t *testing.T) {
	s, err := NewStore(uuid.New(), "suc-01", "Sucursal Centro")
	require.NoError(t, err)
	assert.Equal(t, "SUC-01", s.Code)
	assert.True(t, s.IsActive())

	_, err = NewStore(uuid.New(), "", "Centro")
	assert.Error(t, err)
	_, err = NewStore(uuid.New(), "SUC-02", "")
	assert.Error(t, err)
}

func TestStore_Update(t *testing.T) {
	s, err := NewStore(uuid.New(), "SUC-01", "Centro")
	require.NoError(t, err)

	require.NoError(t, s.Update("Centro Historico", "Calle 5 #10", "555-0000"))
	assert.Equal(t, "Centro Historico", s.Name)

	assert.Error(t, s.Update("", "", ""))
}
