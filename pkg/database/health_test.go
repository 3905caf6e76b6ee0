package database

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPingMock(t *testing.T) (*Client, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewClientFromDB(db), mock
}

func TestHealth(t *testing.T) {
	probe := regexp.QuoteMeta(schemaProbe)

	tests := []struct {
		name       string
		setup      func(mock sqlmock.Sqlmock)
		wantStatus string
		wantSchema bool
		wantErr    error
	}{
		{
			name: "healthy",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectPing()
				mock.ExpectQuery(probe).WillReturnRows(sqlmock.NewRows([]string{"ready"}).AddRow(true))
			},
			wantStatus: "healthy",
			wantSchema: true,
		},
		{
			name: "ping fails",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectPing().WillReturnError(errors.New("connection refused"))
			},
			wantStatus: "unhealthy",
		},
		{
			name: "schema missing",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectPing()
				mock.ExpectQuery(probe).WillReturnRows(sqlmock.NewRows([]string{"ready"}).AddRow(false))
			},
			wantStatus: "unhealthy",
			wantErr:    ErrSchemaNotReady,
		},
		{
			name: "probe fails",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectPing()
				mock.ExpectQuery(probe).WillReturnError(errors.New("permission denied"))
			},
			wantStatus: "unhealthy",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, mock := newPingMock(t)
			tt.setup(mock)

			health, err := Health(context.Background(), client.DB())

			require.NotNil(t, health)
			assert.Equal(t, tt.wantStatus, health.Status)
			assert.Equal(t, tt.wantSchema, health.SchemaReady)
			if tt.wantStatus == "healthy" {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
