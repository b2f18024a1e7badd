package browser_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/playwright-community/playwright-go"

	accountDomain "github.com/nakawebsvcs/kahuawaiwai/internal/domain/account"
)

// TestAdminUsers_CreateUser fills the create form and expects the new
// account to appear in the user table after the reload.
func TestAdminUsers_CreateUser(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping browser test in short mode")
	}

	app := newTestApp(t)
	page := app.newPage(t)
	app.login(t, page)

	if _, err := page.Goto(app.BaseURL + "/admin/users"); err != nil {
		t.Fatalf("failed to navigate to admin panel: %v", err)
	}

	form := page.Locator("#create-user-form")
	if err := form.Locator("input[name=email]").Fill("haumana@test.com"); err != nil {
		t.Fatalf("failed to fill email: %v", err)
	}
	if err := form.Locator("input[name=password]").Fill("SecurePass123!"); err != nil {
		t.Fatalf("failed to fill password: %v", err)
	}
	if err := form.Locator("button[type=submit]").Click(); err != nil {
		t.Fatalf("failed to submit create form: %v", err)
	}

	// The page reloads on success and the table shows the new row
	err := page.Locator(".user-table >> text=haumana@test.com").WaitFor(playwright.LocatorWaitForOptions{
		Timeout: playwright.Float(5000),
	})
	if err != nil {
		t.Fatalf("new user did not appear in the table: %v", err)
	}
}

// TestAdminUsers_CreateDuplicateShowsError creates a user with an email
// that is already taken and expects the inline error message.
func TestAdminUsers_CreateDuplicateShowsError(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping browser test in short mode")
	}

	app := newTestApp(t)
	page := app.newPage(t)
	app.login(t, page)

	if _, err := page.Goto(app.BaseURL + "/admin/users"); err != nil {
		t.Fatalf("failed to navigate to admin panel: %v", err)
	}

	form := page.Locator("#create-user-form")
	if err := form.Locator("input[name=email]").Fill("admin@test.com"); err != nil {
		t.Fatalf("failed to fill email: %v", err)
	}
	if err := form.Locator("input[name=password]").Fill("SecurePass123!"); err != nil {
		t.Fatalf("failed to fill password: %v", err)
	}
	if err := form.Locator("button[type=submit]").Click(); err != nil {
		t.Fatalf("failed to submit create form: %v", err)
	}

	err := page.Locator("#admin-status").WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(5000),
	})
	if err != nil {
		t.Fatal("error message was not shown for a duplicate email")
	}
}

// TestAdminUsers_DeleteUser removes a seeded account through the table
// and expects its row to disappear.
func TestAdminUsers_DeleteUser(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping browser test in short mode")
	}

	app := newTestApp(t)
	ctx := context.Background()

	acct := accountDomain.Account{
		ID:        uuid.New().String(),
		Email:     "doomed@test.com",
		Role:      accountDomain.RoleUser,
		Status:    accountDomain.StatusActive,
		CreatedAt: time.Now(),
	}
	if err := acct.SetPassword("SecurePass123!"); err != nil {
		t.Fatalf("failed to set password: %v", err)
	}
	if err := app.Stores.AccountStore.Save(ctx, acct); err != nil {
		t.Fatalf("failed to seed account: %v", err)
	}

	page := app.newPage(t)
	app.login(t, page)

	if _, err := page.Goto(app.BaseURL + "/admin/users"); err != nil {
		t.Fatalf("failed to navigate to admin panel: %v", err)
	}

	// Accept the confirm() dialog
	page.OnDialog(func(d playwright.Dialog) {
		d.Accept()
	})

	btn := page.Locator("button.delete-user[data-email='doomed@test.com']")
	if err := btn.Click(); err != nil {
		t.Fatalf("failed to click delete: %v", err)
	}

	err := page.Locator(".user-table >> text=doomed@test.com").WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateDetached,
		Timeout: playwright.Float(5000),
	})
	if err != nil {
		t.Fatalf("deleted user still visible in the table: %v", err)
	}

	if _, err := app.Stores.AccountStore.GetByID(ctx, acct.ID); err == nil {
		t.Error("account row still present after delete")
	}
}

// TestAdminUsers_ReaderCannotOpenPanel verifies a non-admin account
// cannot reach the admin page.
func TestAdminUsers_ReaderCannotOpenPanel(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping browser test in short mode")
	}

	app := newTestApp(t)
	ctx := context.Background()

	acct := accountDomain.Account{
		ID:        uuid.New().String(),
		Email:     "reader@test.com",
		Role:      accountDomain.RoleUser,
		Status:    accountDomain.StatusActive,
		CreatedAt: time.Now(),
	}
	if err := acct.SetPassword("SecurePass123!"); err != nil {
		t.Fatalf("failed to set password: %v", err)
	}
	if err := app.Stores.AccountStore.Save(ctx, acct); err != nil {
		t.Fatalf("failed to seed account: %v", err)
	}

	page := app.newPage(t)
	app.loginAs(t, page, "reader@test.com", "SecurePass123!")

	resp, err := page.Goto(app.BaseURL + "/admin/users")
	if err != nil {
		t.Fatalf("failed to navigate: %v", err)
	}
	if resp.Status() != 404 {
		t.Errorf("got status %d, want 404 for a non-admin visitor", resp.Status())
	}
}
