package cli_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/braian-rent/braian-api/internal/application/seed"
	"github.com/braian-rent/braian-api/internal/cli"
	"github.com/braian-rent/braian-api/internal/infrastructure/memory"
)

func memoryOpener(store *memory.Store) cli.Opener {
	return func(context.Context) (*cli.Backend, error) {
		return &cli.Backend{
			Users:      store.Users(),
			Tx:         store,
			Location:   time.UTC,
			BcryptCost: bcrypt.MinCost,
		}, nil
	}
}

func run(t *testing.T, store *memory.Store, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := cli.NewRootCmd(memoryOpener(store))
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

// ──── Datos ────

func TestSeed_ImprimeCredencialesDemo(t *testing.T) {
	store := memory.NewStore(time.UTC)

	out, err := run(t, store, "seed")
	require.NoError(t, err)
	assert.Contains(t, out, seed.DemoOwnerEmail)
	assert.Contains(t, out, seed.DemoPassword)
}

func TestUsersList_FormatoNumerado(t *testing.T) {
	store := memory.NewStore(time.UTC)
	_, err := run(t, store, "seed")
	require.NoError(t, err)

	out, err := run(t, store, "users", "list")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "👥 Użytkownicy w bazie danych:\n"))
	assert.Contains(t, out, "Marek Właściciel ("+seed.DemoOwnerEmail+") - OWNER")
	assert.Contains(t, out, "Anna Najemca ("+seed.DemoTenantEmail+") - TENANT")
	assert.Contains(t, out, "1. ")
	assert.Contains(t, out, "2. ")
}

func TestPropertyAdd_PropietarioExistente(t *testing.T) {
	store := memory.NewStore(time.UTC)
	_, err := run(t, store, "seed")
	require.NoError(t, err)

	out, err := run(t, store, "property", "add",
		"--owner", seed.DemoOwnerEmail,
		"--address", "ul. Przykładowa 123/45",
		"--city", "Warszawa",
		"--postal-code", "00-001",
		"--tenant-email", "jan.nowak@example.com",
		"--tenant-name", "Jan Nowak",
		"--rent", "3000",
	)
	require.NoError(t, err)
	assert.Contains(t, out, "🎉 Wszystko dodane pomyślnie!")
	assert.Contains(t, out, "💰 Kwota czynszu: 3000.00 zł")

	users, err := run(t, store, "users", "list")
	require.NoError(t, err)
	assert.Contains(t, users, "Jan Nowak (jan.nowak@example.com) - TENANT")
}

func TestPropertyAdd_PropietarioInexistente(t *testing.T) {
	store := memory.NewStore(time.UTC)

	_, err := run(t, store, "property", "add",
		"--owner", "nadie@example.com",
		"--address", "ul. Przykładowa 1",
		"--city", "Kraków",
		"--postal-code", "30-001",
		"--tenant-email", "t@example.com",
		"--tenant-name", "T",
		"--rent", "1200",
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nie został znaleziony")
}

func TestPropertyAdd_RentInvalido(t *testing.T) {
	store := memory.NewStore(time.UTC)

	_, err := run(t, store, "property", "add",
		"--owner", seed.DemoOwnerEmail,
		"--address", "ul. Przykładowa 1",
		"--city", "Kraków",
		"--postal-code", "30-001",
		"--tenant-email", "t@example.com",
		"--tenant-name", "T",
		"--rent", "mucho",
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--rent")
}

func TestMigrate_SinPostgres(t *testing.T) {
	_, err := run(t, memory.NewStore(time.UTC), "migrate", "status")
	assert.ErrorIs(t, err, cli.ErrNoMigrator)
}

// ──── Reporte de CI ────

func testEnv() cli.GitHubEnv {
	return cli.GitHubEnvFrom(func(key string) string {
		return map[string]string{
			"GITHUB_REPOSITORY": "braian/rent",
			"GITHUB_SHA":        "0123456789abcdef",
			"GITHUB_REF":        "refs/heads/main",
			"GITHUB_WORKFLOW":   "CI",
			"GITHUB_RUN_ID":     "42",
			"GITHUB_ACTOR":      "marek",
			"GITHUB_EVENT_NAME": "push",
		}[key]
	})
}

func TestPipelineReport_TituloYEnlaces(t *testing.T) {
	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	r := cli.BuildPipelineReport(testEnv(), "Unit Tests", "exit 1", "FAIL pkg", at)

	assert.Equal(t, "🚨 Pipeline Failed: Unit Tests (0123456)", r.Title)
	assert.Contains(t, r.Body, "- **Commit**: `0123456789abcdef`")
	assert.Contains(t, r.Body, "[View Run #42](https://github.com/braian/rent/actions/runs/42)")
	assert.Contains(t, r.Body, "[0123456](https://github.com/braian/rent/commit/0123456789abcdef)")
	assert.Contains(t, r.Body, "- `unit-tests`")
	assert.Contains(t, r.Body, "```\nexit 1\n```")
	assert.Contains(t, r.LogEntry, "## 2024-05-01T10:00:00Z")
}

func TestPipelineReport_ValoresPorDefecto(t *testing.T) {
	r := cli.BuildPipelineReport(cli.GitHubEnv{}, "", "", "", time.Now())

	assert.Equal(t, "🚨 Pipeline Failed: Unknown Job (unknown)", r.Title)
	assert.Contains(t, r.Body, "No error message provided")
	assert.Contains(t, r.Body, "No logs available")
}

func TestPipelineReport_LineasEscapadas(t *testing.T) {
	r := cli.BuildPipelineReport(testEnv(), "lint", "a\nb", "", time.Now())
	lines := r.Lines()

	require.Len(t, lines, 3)
	assert.Equal(t, "ISSUE_TITLE="+r.Title, lines[0])
	for _, l := range lines {
		assert.NotContains(t, l, "\n")
	}
	assert.Contains(t, lines[1], `a\nb`)
}

func TestInsertLogEntry_Marcador(t *testing.T) {
	doc := "# Errores\n\n" + cli.ErrorLogMarker + "\n"

	updated, ok := cli.InsertLogEntry(doc, "ENTRADA")
	require.True(t, ok)
	assert.Equal(t, "# Errores\n\nENTRADA\n\n"+cli.ErrorLogMarker+"\n", updated)

	same, ok := cli.InsertLogEntry("sin marcador", "ENTRADA")
	assert.False(t, ok)
	assert.Equal(t, "sin marcador", same)
}
