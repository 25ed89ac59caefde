package commands_test

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walletguard/walletguard/internal/activitylog"
	"github.com/walletguard/walletguard/internal/commands"
	"github.com/walletguard/walletguard/internal/finance"
	"github.com/walletguard/walletguard/internal/model"
	"github.com/walletguard/walletguard/internal/money"
	"github.com/walletguard/walletguard/internal/store"
)

const chaseFixture = "../importer/testdata/chase_checking.csv"

func runWalletguard(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := commands.NewRootCommand()
	var out, stderr bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func newWallet(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	_, err := runWalletguard(t, "init", dir, "--owner", "Test Owner")
	require.NoError(t, err)
	return dir
}

func expenses(t *testing.T, dir string) []model.Expense {
	t.Helper()
	out, err := store.NewService(dir, nil).Expenses()
	require.NoError(t, err)
	return out
}

func TestInit_CreatesStructure(t *testing.T) {
	dir := newWallet(t)

	for _, d := range []string{"data", "logs", "import", filepath.Join("import", "processed")} {
		info, err := os.Stat(filepath.Join(dir, d))
		require.NoError(t, err, "directory %s should exist", d)
		assert.True(t, info.IsDir(), "%s should be a directory", d)
	}
	for _, f := range []string{"incomes.csv", "expenses.csv", "cards.csv", "accounts.csv"} {
		_, err := os.Stat(filepath.Join(dir, "data", f))
		assert.NoError(t, err, "%s should exist", f)
	}
}

func TestInit_Config(t *testing.T) {
	dir := newWallet(t)

	data, err := os.ReadFile(filepath.Join(dir, "walletguard.yaml"))
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "name: Test Owner")
	assert.Contains(t, contents, "code: USD")
	assert.Contains(t, contents, "default_installments: 1")
}

func TestInit_Gitignore(t *testing.T) {
	dir := newWallet(t)

	data, err := os.ReadFile(filepath.Join(dir, ".gitignore"))
	require.NoError(t, err)
	assert.Contains(t, string(data), ".env")
}

func TestInit_RequiresOwner(t *testing.T) {
	_, err := runWalletguard(t, "init", t.TempDir())
	require.Error(t, err)
}

func TestInit_RejectsBadCurrency(t *testing.T) {
	_, err := runWalletguard(t, "init", t.TempDir(), "--owner", "x", "--currency", "NOPE")
	require.Error(t, err)
}

func TestInit_AlreadyInitialized(t *testing.T) {
	dir := newWallet(t)
	_, err := runWalletguard(t, "init", dir, "--owner", "Again")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already initialized")
}

func TestOpen_MissingWallet(t *testing.T) {
	_, err := runWalletguard(t, "summary", "--wallet", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "walletguard init")
}

func TestIncome_AddListRemove(t *testing.T) {
	dir := newWallet(t)

	out, err := runWalletguard(t, "income", "add", "-w", dir, "--date", "2026-03-01", "-d", "Salary", "-c", "work", "--value", "$2,500.50")
	require.NoError(t, err)
	assert.Contains(t, out, "Added income")

	out, err = runWalletguard(t, "income", "list", "-w", dir, "--month", "2026-03")
	require.NoError(t, err)
	assert.Contains(t, out, "Salary")
	assert.Contains(t, out, "$2,500.50")

	out, err = runWalletguard(t, "income", "list", "-w", dir, "--month", "2026-04")
	require.NoError(t, err)
	assert.NotContains(t, out, "Salary")

	incomes, err := store.NewService(dir, nil).Incomes()
	require.NoError(t, err)
	require.Len(t, incomes, 1)

	_, err = runWalletguard(t, "income", "rm", "-w", dir, incomes[0].ID[:8])
	require.NoError(t, err)
	incomes, err = store.NewService(dir, nil).Incomes()
	require.NoError(t, err)
	assert.Empty(t, incomes)
}

func TestIncome_RejectsNonNumericValue(t *testing.T) {
	dir := newWallet(t)
	_, err := runWalletguard(t, "income", "add", "-w", dir, "-d", "Salary", "--value", "lots")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "value")
}

func TestExpense_InstallmentsOnCard(t *testing.T) {
	dir := newWallet(t)
	_, err := runWalletguard(t, "card", "add", "-w", dir, "--name", "Visa", "--last-four", "4242", "--limit", "1000")
	require.NoError(t, err)

	out, err := runWalletguard(t, "expense", "add", "-w", dir,
		"--date", "2026-01-15", "-d", "Laptop", "--value", "100", "--card", "visa", "-n", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "Added expense")

	got := expenses(t, dir)
	require.Len(t, got, 3)
	assert.Equal(t, "Laptop (1/3)", got[0].Description)
	assert.Equal(t, "Laptop (3/3)", got[2].Description)
	assert.Equal(t, "33.33", got[0].Value.StringFixed(2))
	assert.Equal(t, "33.34", got[2].Value.StringFixed(2))
	assert.Equal(t, "2026-03-15", got[2].Date.Format("2006-01-02"))
	assert.True(t, finance.Sum(model.Expenses(got)).Equal(decimal.NewFromInt(100)))
	for _, e := range got {
		assert.NotEmpty(t, e.CardID)
	}

	out, err = runWalletguard(t, "card", "list", "-w", dir, "--month", "2026-01")
	require.NoError(t, err)
	assert.Contains(t, out, "Visa *4242")
	assert.Contains(t, out, "$966.67")
	assert.Contains(t, out, "3.33%")
}

func TestExpense_InstallmentsNeedCard(t *testing.T) {
	dir := newWallet(t)
	_, err := runWalletguard(t, "expense", "add", "-w", dir, "-d", "Laptop", "--value", "100", "-n", "2")
	require.Error(t, err)
	assert.Empty(t, expenses(t, dir))
}

func TestExpense_InstallmentsTooSmallWriteNothing(t *testing.T) {
	dir := newWallet(t)
	_, err := runWalletguard(t, "card", "add", "-w", dir, "--name", "Visa")
	require.NoError(t, err)

	_, err = runWalletguard(t, "expense", "add", "-w", dir, "-d", "Gum", "--value", "0.02", "--card", "Visa", "-n", "3")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too small")
	assert.Empty(t, expenses(t, dir))

	entries, err := activitylog.Read(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "card", entries[0].Kind)
}

func TestExpense_InstallmentsBadPartWritesNothing(t *testing.T) {
	dir := newWallet(t)
	_, err := runWalletguard(t, "card", "add", "-w", dir, "--name", "Visa")
	require.NoError(t, err)

	// Parts 1-9 fit the description limit; "(10/10)" pushes the last one over.
	long := strings.Repeat("x", 193)
	_, err = runWalletguard(t, "expense", "add", "-w", dir, "-d", long, "--value", "100", "--card", "Visa", "-n", "10")
	require.Error(t, err)
	assert.Empty(t, expenses(t, dir))
}

func TestCredit_ThousandsSeparator(t *testing.T) {
	out, err := runWalletguard(t, "credit", "5,000", "5,200", "-w", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "$5,000.00")
	assert.Contains(t, out, "-$200.00")
	assert.Contains(t, out, "104.00%")
}

func TestCredit_RejectsText(t *testing.T) {
	_, err := runWalletguard(t, "credit", "abc5000", "12", "-w", t.TempDir())
	require.ErrorIs(t, err, money.ErrNotANumber)
}

func TestExpense_UnknownCard(t *testing.T) {
	dir := newWallet(t)
	_, err := runWalletguard(t, "expense", "add", "-w", dir, "-d", "Coffee", "--value", "3.50", "--card", "amex")
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestAccount_AddList(t *testing.T) {
	dir := newWallet(t)
	_, err := runWalletguard(t, "account", "add", "-w", dir, "--name", "Checking", "--institution", "Chase", "--balance", "1200")
	require.NoError(t, err)
	_, err = runWalletguard(t, "account", "add", "-w", dir, "--name", "Loan", "--type", "cash", "--balance", "-200")
	require.NoError(t, err)

	out, err := runWalletguard(t, "account", "list", "-w", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Checking")
	assert.Contains(t, out, "$1,000.00")
}

func TestAccount_RejectsBadType(t *testing.T) {
	dir := newWallet(t)
	_, err := runWalletguard(t, "account", "add", "-w", dir, "--name", "X", "--type", "crypto")
	require.Error(t, err)
}

func TestInstallments(t *testing.T) {
	out, err := runWalletguard(t, "installments", "100", "3", "--first-due", "2026-01-31", "-w", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "$33.33")
	assert.Contains(t, out, "$33.34")
	assert.Contains(t, out, "$100.00")
	assert.Contains(t, out, "2026-02-28")
}

func TestInstallments_DefaultCountFromConfig(t *testing.T) {
	dir := newWallet(t)
	cfgPath := filepath.Join(dir, "walletguard.yaml")
	data, err := os.ReadFile(cfgPath)
	require.NoError(t, err)
	data = bytes.Replace(data, []byte("default_installments: 1"), []byte("default_installments: 4"), 1)
	require.NoError(t, os.WriteFile(cfgPath, data, 0o644))

	out, err := runWalletguard(t, "installments", "10", "-w", dir, "--first-due", "2026-01-01")
	require.NoError(t, err)
	assert.Contains(t, out, "$2.50")
	assert.Contains(t, out, "2026-04-01")
}

func TestInstallments_InvalidCount(t *testing.T) {
	_, err := runWalletguard(t, "installments", "100", "0", "-w", t.TempDir())
	require.ErrorIs(t, err, finance.ErrInvalidArgument)

	_, err = runWalletguard(t, "installments", "100", "three", "-w", t.TempDir())
	require.Error(t, err)
}

func TestCredit(t *testing.T) {
	out, err := runWalletguard(t, "credit", "1000", "250", "-w", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "$750.00")
	assert.Contains(t, out, "25.00%")

	out, err = runWalletguard(t, "credit", "0", "50", "-w", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "0.00%")
}

func TestImport_FileAndDedup(t *testing.T) {
	dir := newWallet(t)

	out, err := runWalletguard(t, "import", "-w", dir, "--category", "bank", chaseFixture)
	require.NoError(t, err)
	assert.Contains(t, out, "1 incomes, 5 expenses, 0 skipped")

	out, err = runWalletguard(t, "import", "-w", dir, chaseFixture)
	require.NoError(t, err)
	assert.Contains(t, out, "0 incomes, 0 expenses, 6 skipped")

	out, err = runWalletguard(t, "summary", "-w", dir, "--month", "2025-01")
	require.NoError(t, err)
	assert.Contains(t, out, "$3,500.00")
	assert.Contains(t, out, "$1,027.17")
	assert.Contains(t, out, "$2,472.83")
}

func TestImport_Inbox(t *testing.T) {
	dir := newWallet(t)
	data, err := os.ReadFile(chaseFixture)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "import", "jan.csv"), data, 0o644))

	out, err := runWalletguard(t, "import", "-w", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "jan.csv")

	_, err = os.Stat(filepath.Join(dir, "import", "processed", "jan.csv"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "import", "jan.csv"))
	assert.True(t, os.IsNotExist(err))

	out, err = runWalletguard(t, "import", "-w", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Nothing to import")
}

func TestImport_BadRowWritesNothing(t *testing.T) {
	dir := newWallet(t)
	path := filepath.Join(t.TempDir(), "feb.csv")
	data := "date,description,amount\n2025-02-01,Salary,3000\n2025-02-02," + strings.Repeat("x", 250) + ",-12.50\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	_, err := runWalletguard(t, "import", "-w", dir, "--format", "simple", path)
	require.Error(t, err)

	incomes, err := store.NewService(dir, nil).Incomes()
	require.NoError(t, err)
	assert.Empty(t, incomes)
	assert.Empty(t, expenses(t, dir))
}

func TestImport_UnknownFormat(t *testing.T) {
	dir := newWallet(t)
	_, err := runWalletguard(t, "import", "-w", dir, "--format", "ofx", chaseFixture)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chase, simple")
}

func TestExport(t *testing.T) {
	dir := newWallet(t)
	_, err := runWalletguard(t, "import", "-w", dir, chaseFixture)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "wallet.xlsx")
	_, err = runWalletguard(t, "export", "-w", dir, path)
	require.NoError(t, err)
	_, err = os.Stat(path)
	require.NoError(t, err)

	_, err = runWalletguard(t, "export", "-w", dir, filepath.Join(t.TempDir(), "wallet.csv"))
	require.Error(t, err)
}

func TestLog(t *testing.T) {
	dir := newWallet(t)

	out, err := runWalletguard(t, "log", "-w", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "No activity yet")

	_, err = runWalletguard(t, "card", "add", "-w", dir, "--name", "Visa")
	require.NoError(t, err)
	_, err = runWalletguard(t, "account", "add", "-w", dir, "--name", "Savings", "--type", "savings")
	require.NoError(t, err)

	entries, err := activitylog.Read(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, activitylog.ActionAdded, entries[0].Action)
	assert.Equal(t, "card", entries[0].Kind)

	out, err = runWalletguard(t, "log", "-w", dir, "--tail", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Savings")
	assert.NotContains(t, out, "Visa")
}

func TestGitHistory(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	dir := t.TempDir()
	_, err := runWalletguard(t, "init", dir, "--owner", "Test Owner", "--email", "owner@example.com", "--git")
	require.NoError(t, err)

	_, err = runWalletguard(t, "card", "add", "-w", dir, "--name", "Visa")
	require.NoError(t, err)
	_, err = runWalletguard(t, "expense", "add", "-w", dir, "-d", "Phone", "--value", "300", "--card", "Visa", "-n", "3")
	require.NoError(t, err)

	out, err := runWalletguard(t, "log", "-w", dir, "--commits")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "walletguard: added expense")
	assert.Contains(t, lines[0], "(+2 more)")
	assert.Contains(t, lines[1], "walletguard: added card")
	assert.Equal(t, "walletguard: init wallet for Test Owner", lines[2])
}

func TestGitHistory_NotARepo(t *testing.T) {
	dir := newWallet(t)
	_, err := runWalletguard(t, "log", "-w", dir, "--commits")
	require.Error(t, err)
}
