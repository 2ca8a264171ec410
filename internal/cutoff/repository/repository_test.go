package repository

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	cutoffdomain "github.com/smallbiznis/debitplan/internal/cutoff/domain"
	"github.com/smallbiznis/debitplan/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupRepo(t *testing.T) cutoffdomain.Repository {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&cutoffdomain.CutoffConfig{}, &cutoffdomain.CutoffWindow{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	return NewRepository(Param{DB: conn, GenID: node})
}

func TestCutoffConfigRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := setupRepo(t)

	require.NoError(t, repo.Create(ctx, &cutoffdomain.CutoffConfig{
		ID:             "CUT1",
		OrganisationID: "ORG1",
		Windows: []cutoffdomain.CutoffWindow{
			{CutoffDay: 15, BatchNumber: 2},
			{CutoffDay: 1, BatchNumber: 1},
		},
	}))

	cfg, err := repo.GetCutoffConfig(ctx, "ORG1", "CUT1")
	require.NoError(t, err)
	require.NotNil(t, cfg)
	require.Len(t, cfg.Windows, 2)
	assert.Equal(t, 1, cfg.Windows[0].CutoffDay)
	assert.Equal(t, 15, cfg.Windows[1].CutoffDay)
	assert.NotEmpty(t, cfg.Windows[0].ID)

	missing, err := repo.GetCutoffConfig(ctx, "ORG2", "CUT1")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestCutoffConfigCreateRejectsInvalid(t *testing.T) {
	ctx := context.Background()
	repo := setupRepo(t)

	err := repo.Create(ctx, &cutoffdomain.CutoffConfig{
		ID:             "CUT1",
		OrganisationID: "ORG1",
		Windows:        []cutoffdomain.CutoffWindow{{CutoffDay: 32, BatchNumber: 1}},
	})
	assert.ErrorIs(t, err, cutoffdomain.ErrInvalidCutoffDay)

	err = repo.Create(ctx, &cutoffdomain.CutoffConfig{
		ID:             "CUT1",
		OrganisationID: "ORG1",
		Windows:        []cutoffdomain.CutoffWindow{{CutoffDay: 1}},
	})
	assert.ErrorIs(t, err, cutoffdomain.ErrInvalidBatchNumber)

	require.NoError(t, repo.Create(ctx, &cutoffdomain.CutoffConfig{ID: "CUT1", OrganisationID: "ORG1"}))
	assert.ErrorIs(t, repo.Create(ctx, &cutoffdomain.CutoffConfig{ID: "CUT1", OrganisationID: "ORG1"}), db.ErrDuplicateKey)
}
