package handlers_test

import (
	"encoding/json"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/footpoets/claimsdb/internal/config"
	"github.com/footpoets/claimsdb/internal/handlers"
	"github.com/footpoets/claimsdb/internal/models"
	"github.com/footpoets/claimsdb/internal/services"
	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	// Auto-migrate models
	err = db.AutoMigrate(
		&models.User{},
		&models.UserMeta{},
		&models.Poet{},
		&models.PoetMeta{},
		&models.Poem{},
		&models.Connection{},
		&models.BatchStep{},
		&models.Message{},
		&models.MessageRecipient{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

// setupApp wires a fiber app with the claim routes over the given db
func setupApp(t *testing.T, db *gorm.DB, cfg *config.Config) *fiber.App {
	log := zap.NewNop()

	claimStore := services.NewClaimStore(db, cfg.Keys)
	connections := services.NewConnectionStore(db, cfg.Keys)
	steps := services.NewStepTracker(db, cfg.BatchStepKey, cfg.BatchScopedSteps)
	batch := services.NewReassigner(db, cfg.BatchPageSize, log)
	sync := services.NewProfileSync(db, cfg.Keys)
	messenger := services.NewMessenger(db, cfg.NotifyUserIDs, log)

	claimService := services.NewClaimService(db, cfg, claimStore, connections, messenger, log)
	resolveService := services.NewResolveService(db, cfg, claimStore, connections, steps,
		batch, sync, messenger, log)

	app := fiber.New()
	handler := &handlers.ClaimHandler{Claims: claimService, Resolve: resolveService}
	app.Post("/api/ajax/claim_poet", handler.ClaimPoet)
	app.Post("/api/ajax/claim_stop", handler.ClaimStop)
	app.Post("/api/ajax/claim_process", handler.ClaimProcess)

	return app
}

func testConfig() *config.Config {
	return &config.Config{
		DBType:           "sqlite",
		SessionSecret:    "test-secret",
		HoldingUserID:    5,
		NotifyUserIDs:    []uint64{1},
		BatchPageSize:    10,
		BatchStepKey:     "_poets_resolution_step",
		BatchScopedSteps: true,
		Keys:             config.DefaultMetaKeys(),
	}
}

func postForm(t *testing.T, app *fiber.App, path string, form url.Values) map[string]string {
	t.Helper()

	req := httptest.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}

	var result map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	return result
}

// TestClaimPoet tests the POST /api/ajax/claim_poet endpoint
func TestClaimPoet(t *testing.T) {
	db := setupTestDB(t)
	cfg := testConfig()
	app := setupApp(t, db, cfg)

	user := models.User{Username: "wilfred", DisplayName: "wilfred"}
	db.Create(&user)
	poet := models.Poet{Title: "Wilfred Owen", AuthorID: cfg.HoldingUserID}
	db.Create(&poet)

	result := postForm(t, app, "/api/ajax/claim_poet", url.Values{
		"claiming_user_id": {strconv.FormatUint(user.UserID, 10)},
		"claimed_poet_id":  {strconv.FormatUint(poet.PoetID, 10)},
		"claim_type":       {"standard"},
	})

	if result["error"] != "" {
		t.Errorf("Expected no error, got %q", result["error"])
	}
	if result["message"] != "Thanks! Your claim has been sent. A site editor will let you know the moment your claim has been approved." {
		t.Errorf("Unexpected message: %q", result["message"])
	}
}

// TestClaimPoetMissingUser tests validation on the claim endpoint
func TestClaimPoetMissingUser(t *testing.T) {
	db := setupTestDB(t)
	app := setupApp(t, db, testConfig())

	result := postForm(t, app, "/api/ajax/claim_poet", url.Values{
		"claimed_poet_id": {"1"},
		"claim_type":      {"standard"},
	})

	if result["error"] != "Oh dear, something went wrong. No user ID was received." {
		t.Errorf("Unexpected error: %q", result["error"])
	}
	if result["status"] != "Please reload the page and try again." {
		t.Errorf("Unexpected status: %q", result["status"])
	}
}

// TestClaimStop tests the POST /api/ajax/claim_stop endpoint
func TestClaimStop(t *testing.T) {
	db := setupTestDB(t)
	app := setupApp(t, db, testConfig())

	user := models.User{Username: "wilfred", DisplayName: "wilfred"}
	db.Create(&user)

	result := postForm(t, app, "/api/ajax/claim_stop", url.Values{
		"claiming_user_id": {strconv.FormatUint(user.UserID, 10)},
		"claim_stop":       {"yes"},
	})

	if result["message"] != "Thanks! You won't see this form again." {
		t.Errorf("Unexpected message: %q", result["message"])
	}
}

// TestClaimStopMissingFlag tests that the opt-out requires its confirmation flag
func TestClaimStopMissingFlag(t *testing.T) {
	db := setupTestDB(t)
	app := setupApp(t, db, testConfig())

	user := models.User{Username: "wilfred", DisplayName: "wilfred"}
	db.Create(&user)

	result := postForm(t, app, "/api/ajax/claim_stop", url.Values{
		"claiming_user_id": {strconv.FormatUint(user.UserID, 10)},
		"claim_stop":       {"no"},
	})

	if result["error"] != "Oh dear, something went wrong. No claim stopping flag was received." {
		t.Errorf("Unexpected error: %q", result["error"])
	}
	if result["message"] != "" {
		t.Errorf("Expected no message, got %q", result["message"])
	}
}

// TestClaimProcess tests the POST /api/ajax/claim_process stepping protocol
func TestClaimProcess(t *testing.T) {
	db := setupTestDB(t)
	cfg := testConfig()
	app := setupApp(t, db, cfg)

	user := models.User{Username: "wilfred", DisplayName: "wilfred"}
	db.Create(&user)
	poet := models.Poet{Title: "Wilfred Owen", AuthorID: cfg.HoldingUserID}
	db.Create(&poet)

	claimStore := services.NewClaimStore(db, cfg.Keys)
	if err := claimStore.OpenClaim(poet.PoetID, user.UserID); err != nil {
		t.Fatalf("Failed to open claim: %v", err)
	}

	form := url.Values{
		"claiming_user_id": {strconv.FormatUint(user.UserID, 10)},
		"claimed_poet_id":  {strconv.FormatUint(poet.PoetID, 10)},
		"resolution":       {"accept"},
	}

	// First step transfers the profile
	result := postForm(t, app, "/api/ajax/claim_process", form)
	if result["finished"] != "false" {
		t.Errorf("Expected finished \"false\", got %q", result["finished"])
	}
	if result["status"] != "Assigned poet profile" {
		t.Errorf("Unexpected status: %q", result["status"])
	}

	// No poems, so the next step terminates
	result = postForm(t, app, "/api/ajax/claim_process", form)
	if result["finished"] != "true" {
		t.Errorf("Expected finished \"true\", got %q", result["finished"])
	}

	var updated models.Poet
	db.First(&updated, poet.PoetID)
	if updated.AuthorID != user.UserID {
		t.Errorf("Expected poet author %d, got %d", user.UserID, updated.AuthorID)
	}
}

// TestClaimProcessReject tests that a rejection never moves content
func TestClaimProcessReject(t *testing.T) {
	db := setupTestDB(t)
	cfg := testConfig()
	app := setupApp(t, db, cfg)

	user := models.User{Username: "wilfred", DisplayName: "wilfred"}
	db.Create(&user)
	poet := models.Poet{Title: "Wilfred Owen", AuthorID: cfg.HoldingUserID}
	db.Create(&poet)

	claimStore := services.NewClaimStore(db, cfg.Keys)
	if err := claimStore.OpenClaim(poet.PoetID, user.UserID); err != nil {
		t.Fatalf("Failed to open claim: %v", err)
	}

	result := postForm(t, app, "/api/ajax/claim_process", url.Values{
		"claiming_user_id": {strconv.FormatUint(user.UserID, 10)},
		"claimed_poet_id":  {strconv.FormatUint(poet.PoetID, 10)},
		"resolution":       {"reject"},
	})
	if result["finished"] != "true" {
		t.Errorf("Expected finished \"true\", got %q", result["finished"])
	}

	var updated models.Poet
	db.First(&updated, poet.PoetID)
	if updated.AuthorID != cfg.HoldingUserID {
		t.Errorf("Expected poet to stay with holding user %d, got %d", cfg.HoldingUserID, updated.AuthorID)
	}
}
