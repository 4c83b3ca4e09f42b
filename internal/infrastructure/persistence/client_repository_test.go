package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/cobranza/backend/internal/domain/ledger"
	"github.com/cobranza/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockClientRepository creates a GormClientRepository with a mocked SQL connection
func newMockClientRepository(t *testing.T) (*GormClientRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormClientRepository(&Database{DB: gormDB}), mock, mockDB
}

func TestGormClientRepository_FindByID(t *testing.T) {
	t.Run("finds existing client", func(t *testing.T) {
		repo, mock, mockDB := newMockClientRepository(t)
		defer mockDB.Close()

		clientID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "name", "tax_id", "balance"}).
			AddRow(clientID, "ACME Corp", "B-12345", decimal.Zero)

		mock.ExpectQuery(`SELECT \* FROM "clients" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(clientID, 1).
			WillReturnRows(rows)

		client, err := repo.FindByID(context.Background(), clientID)

		assert.NoError(t, err)
		assert.NotNil(t, client)
		assert.Equal(t, clientID, client.ID)
		assert.Equal(t, "ACME Corp", client.Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound for missing client", func(t *testing.T) {
		repo, mock, mockDB := newMockClientRepository(t)
		defer mockDB.Close()

		clientID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "clients" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(clientID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		client, err := repo.FindByID(context.Background(), clientID)

		assert.Error(t, err)
		assert.Nil(t, client)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormClientRepository_FindByIDForUpdate(t *testing.T) {
	t.Run("locks the client row", func(t *testing.T) {
		repo, mock, mockDB := newMockClientRepository(t)
		defer mockDB.Close()

		clientID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "name", "balance"}).
			AddRow(clientID, "ACME Corp", decimal.Zero)

		mock.ExpectQuery(`SELECT \* FROM "clients" WHERE id = \$1 ORDER BY .* LIMIT .* FOR UPDATE`).
			WithArgs(clientID, 1).
			WillReturnRows(rows)

		client, err := repo.FindByIDForUpdate(context.Background(), clientID)

		assert.NoError(t, err)
		assert.NotNil(t, client)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormClientRepository_FindByTaxID(t *testing.T) {
	t.Run("finds client by tax id", func(t *testing.T) {
		repo, mock, mockDB := newMockClientRepository(t)
		defer mockDB.Close()

		clientID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "name", "tax_id", "balance"}).
			AddRow(clientID, "ACME Corp", "B-12345", decimal.Zero)

		mock.ExpectQuery(`SELECT \* FROM "clients" WHERE tax_id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs("B-12345", 1).
			WillReturnRows(rows)

		client, err := repo.FindByTaxID(context.Background(), "B-12345")

		assert.NoError(t, err)
		assert.Equal(t, "B-12345", client.TaxID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects empty tax id without querying", func(t *testing.T) {
		repo, _, mockDB := newMockClientRepository(t)
		defer mockDB.Close()

		client, err := repo.FindByTaxID(context.Background(), "")

		assert.Error(t, err)
		assert.Nil(t, client)
	})
}

func TestGormClientRepository_Save(t *testing.T) {
	t.Run("saves client", func(t *testing.T) {
		repo, mock, mockDB := newMockClientRepository(t)
		defer mockDB.Close()

		client, err := ledger.NewClient("ACME Corp", "B-12345", "", "", "", "", "")
		require.NoError(t, err)

		mock.ExpectExec(`UPDATE "clients" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err = repo.Save(context.Background(), client)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormClientRepository_Delete(t *testing.T) {
	t.Run("deletes existing client", func(t *testing.T) {
		repo, mock, mockDB := newMockClientRepository(t)
		defer mockDB.Close()

		clientID := uuid.New()

		mock.ExpectExec(`DELETE FROM "clients" WHERE id = \$1`).
			WithArgs(clientID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Delete(context.Background(), clientID)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound when nothing was deleted", func(t *testing.T) {
		repo, mock, mockDB := newMockClientRepository(t)
		defer mockDB.Close()

		clientID := uuid.New()

		mock.ExpectExec(`DELETE FROM "clients" WHERE id = \$1`).
			WithArgs(clientID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(context.Background(), clientID)

		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormClientRepository_AddToBalance(t *testing.T) {
	t.Run("applies delta as an increment", func(t *testing.T) {
		repo, mock, mockDB := newMockClientRepository(t)
		defer mockDB.Close()

		clientID := uuid.New()

		mock.ExpectExec(`UPDATE "clients" SET "balance"=balance \+ \$1,"updated_at"=\$2 WHERE id = \$3`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.AddToBalance(context.Background(), clientID, decimal.NewFromInt(50))

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound for unknown client", func(t *testing.T) {
		repo, mock, mockDB := newMockClientRepository(t)
		defer mockDB.Close()

		mock.ExpectExec(`UPDATE "clients" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.AddToBalance(context.Background(), uuid.New(), decimal.NewFromInt(-10))

		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormClientRepository_ZeroBalances(t *testing.T) {
	t.Run("resets every non-zero balance", func(t *testing.T) {
		repo, mock, mockDB := newMockClientRepository(t)
		defer mockDB.Close()

		mock.ExpectExec(`UPDATE "clients" SET`).
			WillReturnResult(sqlmock.NewResult(0, 3))

		err := repo.ZeroBalances(context.Background())

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormClientRepository_SetBalance(t *testing.T) {
	t.Run("writes absolute balance", func(t *testing.T) {
		repo, mock, mockDB := newMockClientRepository(t)
		defer mockDB.Close()

		clientID := uuid.New()

		mock.ExpectExec(`UPDATE "clients" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.SetBalance(context.Background(), clientID, decimal.NewFromInt(-150))

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormClientRepository_FindAll(t *testing.T) {
	t.Run("applies search and pagination", func(t *testing.T) {
		repo, mock, mockDB := newMockClientRepository(t)
		defer mockDB.Close()

		rows := sqlmock.NewRows([]string{"id", "name", "balance"}).
			AddRow(uuid.New(), "ACME Corp", decimal.Zero).
			AddRow(uuid.New(), "ACME Labs", decimal.Zero)

		mock.ExpectQuery(`SELECT \* FROM "clients" WHERE name ILIKE .* ORDER BY .* LIMIT .*`).
			WillReturnRows(rows)

		filter := shared.DefaultFilter()
		filter.Search = "ACME"
		filter.OrderBy = "name"
		filter.OrderDir = "asc"

		clients, err := repo.FindAll(context.Background(), filter)

		assert.NoError(t, err)
		assert.Len(t, clients, 2)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
