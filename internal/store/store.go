// Package store implements the durable investment ledger: user accounts and
// the append-only investment table. The store is deliberately ignorant of
// bond terms; validating an investment against the bond catalog is the
// ledger service's job. Uniqueness of email and username is enforced by
// database unique indexes, so concurrent duplicate registrations cannot
// both succeed regardless of interleaving.
package store

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "bondledger/internal/errors"
	"bondledger/internal/models"
	"bondledger/internal/pagination"
)

// Store provides atomic access to the ledger tables.
type Store struct {
	db *gorm.DB
}

// New creates a Store over an opened gorm connection. The connection must be
// opened with TranslateError so unique violations surface as
// gorm.ErrDuplicatedKey.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// CreateUser inserts a new user. Email and username are lowercased so the
// unique indexes give case-insensitive uniqueness atomically with the
// insert; there is no check-then-act window.
func (s *Store) CreateUser(email, username, passwordHash string) (*models.User, error) {
	user := &models.User{
		Email:    strings.ToLower(email),
		Username: strings.ToLower(username),
		Password: passwordHash,
	}

	if err := s.db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, s.classifyDuplicate(user.Email, err)
		}
		return nil, apperrors.Wrap(apperrors.ErrStorageUnavailable, err)
	}
	return user, nil
}

// classifyDuplicate decides which unique index an insert collided with.
// The insert already failed atomically; this read only picks the error code.
func (s *Store) classifyDuplicate(email string, cause error) error {
	var count int64
	if err := s.db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err == nil && count > 0 {
		return apperrors.Wrap(apperrors.ErrDuplicateEmail, cause)
	}
	return apperrors.Wrap(apperrors.ErrDuplicateUsername, cause)
}

// GetUserByEmail retrieves a user by email, case-insensitively.
func (s *Store) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", strings.ToLower(email)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrStorageUnavailable, err)
	}
	return &user, nil
}

// GetUserByUsername retrieves a user by username, case-insensitively.
func (s *Store) GetUserByUsername(username string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("username = ?", strings.ToLower(username)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrStorageUnavailable, err)
	}
	return &user, nil
}

// GetUserByID retrieves a user by id.
func (s *Store) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrStorageUnavailable, err)
	}
	return &user, nil
}

// RecordInvestment appends a row to the ledger and returns it with its
// freshly assigned id. The store does not validate the amount against the
// bond minimum or check bond existence; callers do that against the catalog
// before committing. A zero timestamp defaults to the insert time.
func (s *Store) RecordInvestment(userID, bondID uint, investorAddress string, amount float64, timestamp time.Time, transactionHash string) (*models.Investment, error) {
	if timestamp.IsZero() {
		timestamp = time.Now()
	}

	investment := &models.Investment{
		UserID:          userID,
		BondID:          bondID,
		InvestorAddress: investorAddress,
		Amount:          amount,
		Timestamp:       timestamp,
		TransactionHash: transactionHash,
	}

	if err := s.db.Create(investment).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorageUnavailable, err)
	}
	return investment, nil
}

// recentFirst orders ledger scans most-recent-first, with id as a stable
// tie-break for rows created in the same instant.
func recentFirst(db *gorm.DB) *gorm.DB {
	return db.Order("created_at DESC, id DESC")
}

// InvestmentsByUser returns all investments recorded for a user,
// most-recent-first.
func (s *Store) InvestmentsByUser(userID uint) ([]models.Investment, error) {
	var investments []models.Investment
	if err := s.db.Scopes(recentFirst).Where("user_id = ?", userID).Find(&investments).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorageUnavailable, err)
	}
	return investments, nil
}

// InvestmentsByWallet returns all investments recorded for a wallet address,
// matched case-insensitively, most-recent-first.
func (s *Store) InvestmentsByWallet(address string) ([]models.Investment, error) {
	var investments []models.Investment
	if err := s.db.Scopes(recentFirst).
		Where("LOWER(investor_address) = LOWER(?)", address).
		Find(&investments).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorageUnavailable, err)
	}
	return investments, nil
}

// InvestmentsByBond returns all investments recorded against a bond,
// most-recent-first. The bond may no longer exist in the catalog.
func (s *Store) InvestmentsByBond(bondID uint) ([]models.Investment, error) {
	var investments []models.Investment
	if err := s.db.Scopes(recentFirst).Where("bond_id = ?", bondID).Find(&investments).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorageUnavailable, err)
	}
	return investments, nil
}

// AllInvestments returns the full ledger, most-recent-first.
func (s *Store) AllInvestments() ([]models.Investment, error) {
	var investments []models.Investment
	if err := s.db.Scopes(recentFirst).Find(&investments).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorageUnavailable, err)
	}
	return investments, nil
}

// InvestmentsPage returns one page of the ledger, most-recent-first, along
// with the total row count.
func (s *Store) InvestmentsPage(req pagination.PageRequest) ([]models.Investment, int64, error) {
	var total int64
	if err := s.db.Model(&models.Investment{}).Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(apperrors.ErrStorageUnavailable, err)
	}

	var investments []models.Investment
	if err := s.db.Scopes(recentFirst, pagination.Paginate(req)).Find(&investments).Error; err != nil {
		return nil, 0, apperrors.Wrap(apperrors.ErrStorageUnavailable, err)
	}
	return investments, total, nil
}
