package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"bondledger/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique
// email/username.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	n := nextID()
	return CreateTestUserWithCredentials(t, db, fmt.Sprintf("user%d@test.com", n), fmt.Sprintf("user%d", n))
}

// CreateTestUserWithCredentials creates a user with the given email and
// username. The password is always "password123".
func CreateTestUserWithCredentials(t *testing.T, db *gorm.DB, email, username string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    email,
		Username: username,
		Password: string(hash),
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// TestWallet returns a syntactically valid, unique wallet address.
func TestWallet(t *testing.T) string {
	t.Helper()
	return fmt.Sprintf("0x%040d", nextID())
}

// CreateTestInvestment appends an investment row directly, bypassing the
// ledger service's catalog validation.
func CreateTestInvestment(t *testing.T, db *gorm.DB, userID, bondID uint, wallet string, amount float64) *models.Investment {
	t.Helper()

	inv := &models.Investment{
		UserID:          userID,
		BondID:          bondID,
		InvestorAddress: wallet,
		Amount:          amount,
		Timestamp:       time.Now(),
	}
	if err := db.Create(inv).Error; err != nil {
		t.Fatalf("failed to create test investment: %v", err)
	}
	return inv
}

// NewBondFixture returns bond terms usable with a catalog in tests:
// 4.50% coupon, minimum investment 10, maturing ten years out.
func NewBondFixture(id uint) models.Bond {
	now := time.Now()
	return models.Bond{
		ID:                id,
		Name:              fmt.Sprintf("Test Bond %d", id),
		Issuer:            "Test Issuer",
		FaceValue:         100_000,
		CouponRate:        450,
		IssueDate:         now.AddDate(-1, 0, 0).Format(time.RFC3339),
		MaturityDate:      now.AddDate(10, 0, 0).Format(time.RFC3339),
		Description:       "Fixture bond",
		MinimumInvestment: 10,
		BondTokenAddress:  "0x0000000000000000000000000000000000000099",
	}
}
