package database

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/mbolis/event-intake/model"
	"github.com/stretchr/testify/require"
)

func openTestSQLite(t *testing.T) *SQLite {
	t.Helper()
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "intake.sqlite"))
	require.NoError(t, err)
	t.Cleanup(db.Close)
	return db
}

func TestSQLiteInsert(t *testing.T) {
	db := openTestSQLite(t)
	ctx := context.Background()

	row := model.Row{
		{Column: "team_name", Value: "Alpha"},
		{Column: "leader_name", Value: "A"},
		{Column: "leader_email", Value: "a@x.com"},
		{Column: "leader_university", Value: "USP"},
		{Column: "member2_name", Value: nil},
		{Column: "terms_accepted", Value: true},
	}

	id, err := db.Insert(ctx, "hackathon_inscricoes", row)
	require.NoError(t, err)
	require.Equal(t, int64(1), id)

	id, err = db.Insert(ctx, "hackathon_inscricoes", row)
	require.NoError(t, err)
	require.Equal(t, int64(2), id)

	var team string
	var member2 *string
	var terms bool
	err = db.db.QueryRow(`SELECT team_name, member2_name, terms_accepted FROM hackathon_inscricoes WHERE id = 1`).
		Scan(&team, &member2, &terms)
	require.NoError(t, err)
	require.Equal(t, "Alpha", team)
	require.Nil(t, member2)
	require.True(t, terms)
}

func TestSQLiteInsertFailureIsAtomic(t *testing.T) {
	db := openTestSQLite(t)
	ctx := context.Background()
	row := model.Row{{Column: "nome", Value: "Bia"}, {Column: "telefone", Value: "1199"}}

	_, err := db.Insert(ctx, "minicurso_fibra_inscricoes", row)
	require.NoError(t, err)

	_, err = db.Insert(ctx, "minicurso_fibra_inscricoes", row)
	var derr *Error
	require.True(t, errors.As(err, &derr))
	require.Equal(t, "Já existe uma inscrição registrada com estes dados.", derr.Message)
	require.NotEmpty(t, derr.Code)

	var n int
	require.NoError(t, db.db.QueryRow(`SELECT count(*) FROM minicurso_fibra_inscricoes`).Scan(&n))
	require.Equal(t, 1, n)
}

func TestSQLitePing(t *testing.T) {
	db := openTestSQLite(t)
	ctx := context.Background()

	require.NoError(t, db.Ping(ctx, "inscricoes"))
	require.Error(t, db.Ping(ctx, "palestras"))
}

func TestSQLiteReopenKeepsRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "intake.sqlite")
	db, err := OpenSQLite(path)
	require.NoError(t, err)
	_, err = db.Insert(context.Background(), "minicurso_quantica_inscricoes", model.Row{
		{Column: "nome", Value: "Caio"}, {Column: "telefone", Value: "1"}, {Column: "email", Value: "c@x.io"},
	})
	require.NoError(t, err)
	db.Close()

	db, err = OpenSQLite(path)
	require.NoError(t, err)
	defer db.Close()
	var n int
	require.NoError(t, db.db.QueryRow(`SELECT count(*) FROM minicurso_quantica_inscricoes`).Scan(&n))
	require.Equal(t, 1, n)
}

func TestSQLiteMigrationsApplied(t *testing.T) {
	db := openTestSQLite(t)

	var version int
	var dirty bool
	require.NoError(t, db.db.QueryRow(`SELECT version, dirty FROM schema_migrations`).Scan(&version, &dirty))
	require.Equal(t, 1, version)
	require.False(t, dirty)

	// already up to date
	require.NoError(t, migrateDB(db.db))

	for _, table := range []string{"inscricoes", "hackathon_inscricoes", "minicurso_quantica_inscricoes", "minicurso_fibra_inscricoes"} {
		require.NoError(t, db.Ping(context.Background(), table), table)
	}
}
